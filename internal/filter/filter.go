// Package filter derives the visible, ordered subset of gallery items.
package filter

import (
	"slices"
	"strings"

	"prompt-gallery/internal/model"
)

// Visible returns the items matching category and query, stably sorted by Order.
//
// A category of "" or model.AllCategories disables category filtering. Items whose
// categories are unset never match a specific category. The query is trimmed and
// matched case-insensitively as a substring of the prompt; items without a prompt never
// match a non-empty query. The input slice is not modified.
func Visible(items []model.Item, category string, query string) []model.Item {
	category = strings.TrimSpace(category)
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if category != "" && category != model.AllCategories {
			if it.Categories == nil || !it.HasCategory(model.ID(category)) {
				continue
			}
		}
		if q != "" {
			if it.Prompt == "" || !strings.Contains(strings.ToLower(it.Prompt), q) {
				continue
			}
		}
		out = append(out, it)
	}
	sortByOrder(out)
	return out
}

// SortedByOrder returns a copy of items stably sorted by Order ascending.
func SortedByOrder(items []model.Item) []model.Item {
	out := slices.Clone(items)
	if out == nil {
		out = []model.Item{}
	}
	sortByOrder(out)
	return out
}

func sortByOrder(items []model.Item) {
	slices.SortStableFunc(items, func(a, b model.Item) int {
		switch {
		case a.Order < b.Order:
			return -1
		case a.Order > b.Order:
			return 1
		default:
			return 0
		}
	})
}
