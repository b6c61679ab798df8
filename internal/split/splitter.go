package split

import (
	"fmt"
	"math"
	"strconv"

	"artguard/internal/domain"
	"artguard/internal/hashkey"
)

const outerSalt = "outer"

// Splitter runs the split algorithms with a fixed key function.
type Splitter struct {
	key hashkey.Func
}

// New returns a Splitter ordering items with key. A nil key selects hashkey.Key.
func New(key hashkey.Func) *Splitter {
	if key == nil {
		key = hashkey.Key
	}
	return &Splitter{key: key}
}

var std = New(hashkey.Key)

// AssignFolds assigns every item a fold with the default key function.
func AssignFolds(items []domain.DatasetItem, kFolds int, outerSeed int64) (domain.FoldAssignment, error) {
	return std.AssignFolds(items, kFolds, outerSeed)
}

// Split computes one fold's SplitSet with the default key function.
func Split(
	items []domain.DatasetItem,
	assignment domain.FoldAssignment,
	foldID int,
	innerSeed int64,
	valFraction float64,
) (domain.SplitSet, error) {
	return std.Split(items, assignment, foldID, innerSeed, valFraction)
}

// AllSplits computes every fold's SplitSet with the default key function.
func AllSplits(
	items []domain.DatasetItem,
	assignment domain.FoldAssignment,
	kFolds int,
	innerSeed int64,
	valFraction float64,
) (map[int]domain.SplitSet, error) {
	return std.AllSplits(items, assignment, kFolds, innerSeed, valFraction)
}

// AssignFolds groups items by stratum, orders each group by its outer key and
// deals the group round-robin over kFolds folds.
func (s *Splitter) AssignFolds(
	items []domain.DatasetItem,
	kFolds int,
	outerSeed int64,
) (domain.FoldAssignment, error) {
	if err := ValidateFolds(kFolds); err != nil {
		return nil, err
	}
	assignment := make(domain.FoldAssignment, len(items))
	for _, group := range Group(items) {
		ids := idsOf(group)
		hashkey.SortIDs(ids, s.key, outerSeed, outerSalt)
		for rank, id := range ids {
			assignment[id] = rank % kFolds
		}
	}
	return assignment, nil
}

// Split partitions items for fold foldID. Items assigned to foldID form the
// test set; items assigned elsewhere, or not at all, form the train pool,
// from which each stratum contributes ValCount(n, valFraction) items to
// validation.
func (s *Splitter) Split(
	items []domain.DatasetItem,
	assignment domain.FoldAssignment,
	foldID int,
	innerSeed int64,
	valFraction float64,
) (domain.SplitSet, error) {
	if err := ValidateValFraction(valFraction); err != nil {
		return domain.SplitSet{}, err
	}

	test := []string{}
	pool := make([]domain.DatasetItem, 0, len(items))
	for _, it := range items {
		if fold, ok := assignment[it.ID]; ok && fold == foldID {
			test = append(test, it.ID)
			continue
		}
		pool = append(pool, it)
	}

	salt := innerSalt(foldID)
	train, val := []string{}, []string{}
	for _, group := range Group(pool) {
		ids := idsOf(group)
		hashkey.SortIDs(ids, s.key, innerSeed, salt)
		nVal := ValCount(len(ids), valFraction)
		val = append(val, ids[:nVal]...)
		train = append(train, ids[nVal:]...)
	}

	hashkey.SortIDs(train, s.key, innerSeed, salt+":train")
	hashkey.SortIDs(val, s.key, innerSeed, salt+":val")
	hashkey.SortIDs(test, s.key, innerSeed, salt+":test")

	return domain.SplitSet{Train: train, Val: val, Test: test}, nil
}

// AllSplits runs Split for every fold in [0, kFolds).
func (s *Splitter) AllSplits(
	items []domain.DatasetItem,
	assignment domain.FoldAssignment,
	kFolds int,
	innerSeed int64,
	valFraction float64,
) (map[int]domain.SplitSet, error) {
	if err := ValidateFolds(kFolds); err != nil {
		return nil, err
	}
	out := make(map[int]domain.SplitSet, kFolds)
	for fold := 0; fold < kFolds; fold++ {
		set, err := s.Split(items, assignment, fold, innerSeed, valFraction)
		if err != nil {
			return nil, err
		}
		out[fold] = set
	}
	return out, nil
}

// ValCount is the number of validation items taken from a stratum of n
// train-pool items. Exact halves round to the even neighbour.
func ValCount(n int, valFraction float64) int {
	return int(math.RoundToEven(float64(n) * valFraction))
}

// ValidateFolds rejects non-positive fold counts.
func ValidateFolds(kFolds int) error {
	if kFolds <= 0 {
		return fmt.Errorf("%w: k_folds must be positive, got %d", ErrInvalidConfiguration, kFolds)
	}
	return nil
}

// ValidateValFraction rejects fractions outside [0, 1), NaN included.
func ValidateValFraction(valFraction float64) error {
	if !(valFraction >= 0 && valFraction < 1) {
		return fmt.Errorf("%w: val_fraction must be in [0, 1), got %v", ErrInvalidConfiguration, valFraction)
	}
	return nil
}

func innerSalt(foldID int) string {
	return "inner:fold=" + strconv.Itoa(foldID)
}
