package pr

import "sort"

// excludeIDs returns pool without the excluded ids, preserving order.
func excludeIDs(pool []string, exclude ...string) []string {
	excluded := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}

	candidates := make([]string, 0, len(pool))
	for _, id := range pool {
		if _, skip := excluded[id]; !skip {
			candidates = append(candidates, id)
		}
	}
	return candidates
}

// rankByLoad orders candidates by ascending current review load, ties broken
// by ascending user id. Candidates missing from loads count as zero. The
// ordering is what makes assignment reproducible: the least-loaded teammate
// always comes first, never map iteration order.
func rankByLoad(candidates []string, loads map[string]int) []string {
	ranked := append([]string(nil), candidates...)

	sort.Slice(ranked, func(i, j int) bool {
		li, lj := loads[ranked[i]], loads[ranked[j]]
		if li != lj {
			return li < lj
		}
		return ranked[i] < ranked[j]
	})

	return ranked
}
