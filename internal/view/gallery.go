// Package view turns store state into plain render models. Building is pure: the same
// snapshot and UI state always produce an equal Gallery, so a frontend can regenerate its
// whole screen on every change.
package view

import (
	"prompt-gallery/internal/filter"
	"prompt-gallery/internal/model"
	"prompt-gallery/internal/store"
)

const (
	AllLabel   = "All"
	EmptyText  = "No prompts found"
	LoginText  = "Login"
	LogoutText = "Logout"
)

type Tab struct {
	ID     string
	Label  string
	Active bool
}

type Card struct {
	ID       model.ID
	Prompt   string
	ImageURL string
	Labels   []string
	Order    model.Order
	// Editable is set in admin mode; the frontend shows edit and delete controls.
	Editable bool
}

type Gallery struct {
	Tabs         []Tab
	Cards        []Card
	Empty        bool
	AdminToolbar bool
	AuthLabel    string
	Query        string
}

// BuildGallery derives the gallery screen from a snapshot and the current UI state.
func BuildGallery(snap store.Snapshot, ui store.UIState) Gallery {
	current := ui.CurrentCategory
	if current == "" {
		current = model.AllCategories
	}

	tabs := make([]Tab, 0, len(snap.Categories)+1)
	tabs = append(tabs, Tab{ID: model.AllCategories, Label: AllLabel, Active: current == model.AllCategories})
	for _, c := range snap.Categories {
		tabs = append(tabs, Tab{ID: c.ID.String(), Label: c.Name, Active: current == c.ID.String()})
	}

	visible := filter.Visible(snap.Items, current, ui.SearchQuery)
	cards := make([]Card, 0, len(visible))
	for _, it := range visible {
		cards = append(cards, Card{
			ID:       it.ID,
			Prompt:   it.Prompt,
			ImageURL: it.ImageURL,
			Labels:   CategoryLabels(it.Categories, snap.Categories),
			Order:    it.Order,
			Editable: ui.IsAdmin,
		})
	}

	auth := LoginText
	if ui.IsAdmin {
		auth = LogoutText
	}
	return Gallery{
		Tabs:         tabs,
		Cards:        cards,
		Empty:        len(cards) == 0,
		AdminToolbar: ui.IsAdmin,
		AuthLabel:    auth,
		Query:        ui.SearchQuery,
	}
}

// CategoryLabels resolves category ids to names. An id with no matching category (for
// example after the category was deleted) is shown as the raw id.
func CategoryLabels(ids model.CategorySet, categories []model.Category) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		label := id.String()
		for _, c := range categories {
			if c.ID == id {
				label = c.Name
				break
			}
		}
		out = append(out, label)
	}
	return out
}

// ActiveTab returns the index of the active tab, or 0.
func (g Gallery) ActiveTab() int {
	for i, t := range g.Tabs {
		if t.Active {
			return i
		}
	}
	return 0
}
