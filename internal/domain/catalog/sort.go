package catalog

import "sort"

// SortByRank orders projects by ascending rank in place. Unranked projects
// sort after every ranked one and ties keep their relative order.
func SortByRank(projects []Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		a, b := projects[i].Rank, projects[j].Rank
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
}
