// Package store provides file-based persistence for artguard's records.
//
// It contains concrete implementations of the domain storage interfaces,
// serialising data as JSON on disk and patch pixels as JPEG. All methods are
// concurrency-safe via internal locking. Files live under the configured home
// directory:
//
//	records.json                          image records (RecordFileStore)
//	runs.json                             run records (RunFileStore)
//	runs/<run_id>/splits.json             split manifests (SplitFileStore)
//	patches/<image_id>/<type>/<id>.jpg    patch pixels (PatchFileStore)
//	patches/<image_id>/patches.json       patch records (PatchFileStore)
//
// Writes go through a temp file and rename, so readers never observe a
// partially written file.
package store
