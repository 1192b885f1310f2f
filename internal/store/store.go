// Package store holds the client-side gallery snapshot and UI state.
package store

import (
	"slices"
	"sync"

	"prompt-gallery/internal/model"
)

// Snapshot is the full in-memory copy of items and categories as last fetched.
type Snapshot struct {
	Items      []model.Item
	Categories []model.Category
}

func (s Snapshot) clone() Snapshot {
	return Snapshot{
		Items:      slices.Clone(s.Items),
		Categories: slices.Clone(s.Categories),
	}
}

// FindItem returns the item with the given id.
func (s Snapshot) FindItem(id model.ID) (model.Item, bool) {
	for _, it := range s.Items {
		if it.ID == id {
			return it, true
		}
	}
	return model.Item{}, false
}

// FindCategory returns the category with the given id.
func (s Snapshot) FindCategory(id model.ID) (model.Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}

// Store is the authoritative client-side cache. The snapshot is only ever replaced
// wholesale, so readers never observe a partially updated state.
//
// Reloads are sequenced: BeginReload hands out increasing tokens and ReplaceAll drops any
// result older than the newest one already applied. Two overlapping reloads therefore
// cannot let a slow, stale response overwrite a fresher one.
type Store struct {
	mu      sync.RWMutex
	snap    Snapshot
	loaded  bool
	issued  uint64
	applied uint64
}

func New() *Store {
	return &Store{}
}

// BeginReload returns the sequence token for a reload that is about to start.
func (s *Store) BeginReload() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// ReplaceAll installs a new snapshot fetched by the reload identified by token.
// It reports false (and changes nothing) when a newer reload has already been applied.
func (s *Store) ReplaceAll(token uint64, items []model.Item, categories []model.Category) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token <= s.applied {
		return false
	}
	if items == nil {
		items = []model.Item{}
	}
	if categories == nil {
		categories = []model.Category{}
	}
	s.snap = Snapshot{Items: slices.Clone(items), Categories: slices.Clone(categories)}
	s.applied = token
	s.loaded = true
	return true
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.clone()
}

// Loaded reports whether at least one reload has been applied.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *Store) FindItem(id model.ID) (model.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.FindItem(id)
}
