// Package split runs stratified cross-validation splits over stored records.
//
// It loads image records, projects them onto the configured stratify field,
// assigns outer folds, computes every fold's train/val/test sets on a bounded
// worker pool and persists the fold ids, a split manifest and a run record.
package split
