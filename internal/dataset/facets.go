package dataset

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Facets returns the distinct non-empty values of valueOf across items,
// sorted descending so the most recent scheme, year or phase comes first.
func Facets[T any](items []T, valueOf func(T) string) []string {
	if valueOf == nil {
		return []string{}
	}

	seen := make(map[string]struct{})
	facets := []string{}
	for _, item := range items {
		v := valueOf(item)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		facets = append(facets, v)
	}

	SortDescending(facets)
	return facets
}

// SortDescending sorts values in place in descending collation order.
func SortDescending(values []string) {
	col := collate.New(language.Und)
	slices.SortStableFunc(values, func(a, b string) int {
		return col.CompareString(b, a)
	})
}
