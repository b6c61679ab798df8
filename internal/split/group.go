package split

import "artguard/internal/domain"

// Group buckets items by stratum. Items with an empty stratum land in
// domain.UnknownStratum. Order within a group is unspecified.
func Group(items []domain.DatasetItem) map[string][]domain.DatasetItem {
	groups := make(map[string][]domain.DatasetItem)
	for _, it := range items {
		key := it.StratumOrUnknown()
		groups[key] = append(groups[key], it)
	}
	return groups
}

func idsOf(items []domain.DatasetItem) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
