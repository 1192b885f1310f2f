package view

import (
	"prompt-gallery/internal/filter"
	"prompt-gallery/internal/model"
)

// SortList is the sort dialog's working copy of the items. Nothing is persisted until the
// caller saves Items().
type SortList struct {
	items []model.Item
}

// NewSortList starts from every item (filters ignored) in display order.
func NewSortList(items []model.Item) SortList {
	return SortList{items: filter.SortedByOrder(items)}
}

func (l SortList) Len() int { return len(l.items) }

func (l SortList) Items() []model.Item {
	out := make([]model.Item, len(l.items))
	copy(out, l.items)
	return out
}

// Move swaps the item at index with its neighbour delta positions away. Moves that would
// leave the list are ignored. It returns the item's new index.
func (l *SortList) Move(index, delta int) int {
	target := index + delta
	if index < 0 || index >= len(l.items) || target < 0 || target >= len(l.items) {
		return index
	}
	l.items[index], l.items[target] = l.items[target], l.items[index]
	return target
}

// CanMove reports whether Move(index, delta) would change the list.
func (l SortList) CanMove(index, delta int) bool {
	target := index + delta
	return index >= 0 && index < len(l.items) && target >= 0 && target < len(l.items)
}
