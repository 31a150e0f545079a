package memory

import "slices"

// sortStable orders the slice with the comparator, keeping the relative order
// of equal elements so filtered results stay deterministic. A nil comparator
// leaves the slice untouched.
func sortStable[T any](items []T, cmp func(a, b T) int) {
	if cmp == nil {
		return
	}
	slices.SortStableFunc(items, cmp)
}
