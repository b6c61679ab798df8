package split

import (
	"sort"

	"artguard/internal/domain"
)

// FoldCounts tallies, per stratum, how many items landed in each fold.
// Items missing from assignment or assigned outside [0, kFolds) are ignored.
func FoldCounts(
	items []domain.DatasetItem,
	assignment domain.FoldAssignment,
	kFolds int,
) map[string][]int {
	counts := make(map[string][]int)
	for _, it := range items {
		fold, ok := assignment[it.ID]
		if !ok || fold < 0 || fold >= kFolds {
			continue
		}
		s := it.StratumOrUnknown()
		if counts[s] == nil {
			counts[s] = make([]int, kFolds)
		}
		counts[s][fold]++
	}
	return counts
}

// Strata returns the stratum names of counts in sorted order.
func Strata(counts map[string][]int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
