// Package patch turns source images into persisted canonical patches.
//
// A batch fetches each reference from an image source, decodes and
// normalizes it, cuts the patches and stores them. One bad image never
// aborts the batch: undecodable inputs are skipped, other failures are
// counted as errors, and the run record reports the totals.
package patch
