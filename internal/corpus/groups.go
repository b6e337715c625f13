package corpus

import "sort"

// Document is one scanned PDF and its page count.
type Document struct {
	Path  string
	Pages int
}

// Groups maps a page count to the paths sharing it, in scan order.
type Groups map[int][]string

// Group buckets docs by page count. A non-positive page count fails the whole
// grouping since it cannot be weighted.
func Group(docs []Document) (Groups, error) {
	groups := make(Groups)
	for _, d := range docs {
		if d.Pages <= 0 {
			return nil, &DegenerateWeightError{Path: d.Path, Pages: d.Pages}
		}
		groups[d.Pages] = append(groups[d.Pages], d.Path)
	}
	return groups, nil
}

// Total is the number of paths across all groups.
func (g Groups) Total() int {
	n := 0
	for _, paths := range g {
		n += len(paths)
	}
	return n
}

// PageCounts returns the distinct page counts in ascending order.
func (g Groups) PageCounts() []int {
	keys := make([]int, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Contains reports whether path is in any group.
func (g Groups) Contains(path string) bool {
	for _, paths := range g {
		for _, p := range paths {
			if p == path {
				return true
			}
		}
	}
	return false
}
