package view

import (
	"reflect"
	"testing"

	"prompt-gallery/internal/model"
	"prompt-gallery/internal/store"
)

func sampleSnapshot() store.Snapshot {
	return store.Snapshot{
		Items: []model.Item{
			{ID: "1", Prompt: "cat", Order: 1, Categories: model.CategorySet{"c1"}},
			{ID: "2", Prompt: "dog", Order: 0, Categories: model.CategorySet{"c2"}},
		},
		Categories: []model.Category{
			{ID: "c1", Name: "Cats"},
			{ID: "c2", Name: "Dogs"},
		},
	}
}

func cardIDs(g Gallery) []model.ID {
	var out []model.ID
	for _, c := range g.Cards {
		out = append(out, c.ID)
	}
	return out
}

func TestBuildGallery_AllCategoriesSortedByOrder(t *testing.T) {
	t.Parallel()

	g := BuildGallery(sampleSnapshot(), store.NewUIState())

	if got, want := cardIDs(g), []model.ID{"2", "1"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v; got %v", want, got)
	}
	if len(g.Tabs) != 3 || g.Tabs[0].Label != AllLabel || !g.Tabs[0].Active {
		t.Fatalf("unexpected tabs: %+v", g.Tabs)
	}
	if g.Empty {
		t.Fatalf("expected non-empty gallery")
	}
	if g.AdminToolbar || g.AuthLabel != LoginText {
		t.Fatalf("expected logged-out chrome; got toolbar=%v auth=%q", g.AdminToolbar, g.AuthLabel)
	}
	for _, c := range g.Cards {
		if c.Editable {
			t.Fatalf("card %s editable while logged out", c.ID)
		}
	}
}

func TestBuildGallery_CategoryAndSearch(t *testing.T) {
	t.Parallel()

	ui := store.NewUIState()
	ui.SelectCategory("c1")
	g := BuildGallery(sampleSnapshot(), ui)
	if got, want := cardIDs(g), []model.ID{"1"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("category filter: expected %v; got %v", want, got)
	}
	if g.ActiveTab() != 1 {
		t.Fatalf("expected tab 1 active; got %d", g.ActiveTab())
	}

	ui = store.NewUIState()
	ui.SetSearch("DO")
	g = BuildGallery(sampleSnapshot(), ui)
	if got, want := cardIDs(g), []model.ID{"2"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("search: expected %v; got %v", want, got)
	}

	ui.SetSearch("zebra")
	if g := BuildGallery(sampleSnapshot(), ui); !g.Empty {
		t.Fatalf("expected empty state")
	}
}

func TestBuildGallery_AdminShowsControls(t *testing.T) {
	t.Parallel()

	ui := store.NewUIState()
	if !ui.Login("s3cret", "s3cret") {
		t.Fatalf("expected login to succeed")
	}
	g := BuildGallery(sampleSnapshot(), ui)
	if !g.AdminToolbar || g.AuthLabel != LogoutText {
		t.Fatalf("expected admin chrome; got toolbar=%v auth=%q", g.AdminToolbar, g.AuthLabel)
	}
	for _, c := range g.Cards {
		if !c.Editable {
			t.Fatalf("card %s not editable in admin mode", c.ID)
		}
	}
}

func TestBuildGallery_Idempotent(t *testing.T) {
	t.Parallel()

	snap := sampleSnapshot()
	ui := store.NewUIState()
	a := BuildGallery(snap, ui)
	b := BuildGallery(snap, ui)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical galleries:\n%+v\n%+v", a, b)
	}
	if !reflect.DeepEqual(snap, sampleSnapshot()) {
		t.Fatalf("snapshot mutated")
	}
}

func TestCategoryLabels_FallsBackToRawID(t *testing.T) {
	t.Parallel()

	snap := sampleSnapshot()
	snap.Categories = snap.Categories[1:] // "c1" deleted, item 1 still references it

	g := BuildGallery(snap, store.NewUIState())
	var cat Card
	for _, c := range g.Cards {
		if c.ID == "1" {
			cat = c
		}
	}
	if got, want := cat.Labels, []string{"c1"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v; got %v", want, got)
	}

	got := CategoryLabels(model.CategorySet{"c2", "gone"}, snap.Categories)
	if want := []string{"Dogs", "gone"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v; got %v", want, got)
	}
	if got := CategoryLabels(nil, snap.Categories); len(got) != 0 {
		t.Fatalf("expected no labels for unset categories; got %v", got)
	}
}

func TestModals_Lifecycle(t *testing.T) {
	t.Parallel()

	var m Modals
	if m.Any() {
		t.Fatalf("expected all closed")
	}
	m.Open(SurfaceEdit)
	m.Open(SurfaceConfirm)
	if top, _ := m.Top(); top != SurfaceConfirm {
		t.Fatalf("expected confirm on top; got %v", top)
	}

	if s, ok := m.BackdropClick(); !ok || s != SurfaceConfirm {
		t.Fatalf("expected backdrop to close confirm; got %v %v", s, ok)
	}
	if !m.IsOpen(SurfaceEdit) || m.IsOpen(SurfaceConfirm) {
		t.Fatalf("unexpected state after backdrop click")
	}

	m.Open(SurfaceImage)
	m.Open(SurfaceEdit)
	if top, _ := m.Top(); top != SurfaceEdit {
		t.Fatalf("reopen should move edit to top; got %v", top)
	}

	m.CloseAll()
	if m.Any() {
		t.Fatalf("expected escape to close everything")
	}
	if _, ok := m.BackdropClick(); ok {
		t.Fatalf("backdrop click with nothing open should be a no-op")
	}
	if m.Close(SurfaceSort) {
		t.Fatalf("closing a closed surface should report false")
	}
}

func TestSortList_Move(t *testing.T) {
	t.Parallel()

	l := NewSortList(sampleSnapshot().Items)
	ids := func() []model.ID {
		var out []model.ID
		for _, it := range l.Items() {
			out = append(out, it.ID)
		}
		return out
	}
	if got, want := ids(), []model.ID{"2", "1"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected initial %v; got %v", want, got)
	}

	if idx := l.Move(0, -1); idx != 0 {
		t.Fatalf("out-of-range move should keep index; got %d", idx)
	}
	if idx := l.Move(1, 1); idx != 1 {
		t.Fatalf("out-of-range move should keep index; got %d", idx)
	}
	if idx := l.Move(0, 1); idx != 1 {
		t.Fatalf("expected new index 1; got %d", idx)
	}
	if got, want := ids(), []model.ID{"1", "2"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v; got %v", want, got)
	}
	if l.CanMove(0, -1) || !l.CanMove(0, 1) {
		t.Fatalf("unexpected CanMove results")
	}
}
