// Package split assigns dataset items to stratified cross-validation folds and
// derives the nested train/validation/test partition of every fold.
//
// # Algorithm
//
// Outer folds: items are grouped by stratum (empty strata become "UNKNOWN"),
// each group is sorted by hashkey(outer_seed, id, "outer") and item i of the
// sorted group goes to fold i mod k. Per-stratum fold sizes therefore differ
// by at most one.
//
// Inner split: for fold f the test set is every item assigned to f. The rest
// is grouped by stratum again, each group is sorted by
// hashkey(inner_seed, id, "inner:fold=f") and the first round(n*val_fraction)
// ids become validation. round is half-to-even. The three output lists are
// finally sorted by their own salted keys (":train", ":val", ":test").
//
// # Determinism
//
// Every order is derived from the stable key with ties broken by id, so the
// results depend only on the item set, the seeds and the parameters, never on
// input order or map iteration order.
//
// # Errors
//
// ErrInvalidConfiguration is returned for k_folds <= 0 and for val_fraction
// outside [0, 1). Empty input yields empty results.
package split
