package filter

import (
	"reflect"
	"testing"

	"prompt-gallery/internal/model"
)

func scenarioItems() []model.Item {
	return []model.Item{
		{ID: "1", Prompt: "cat", Order: 1, Categories: model.CategorySet{"c1"}},
		{ID: "2", Prompt: "dog", Order: 0, Categories: model.CategorySet{"c2"}},
	}
}

func ids(items []model.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, string(it.ID))
	}
	return out
}

func TestVisible_Scenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		category string
		query    string
		want     []string
	}{
		{name: "all sorts by order", category: model.AllCategories, want: []string{"2", "1"}},
		{name: "empty category behaves like all", category: "", want: []string{"2", "1"}},
		{name: "category c1", category: "c1", want: []string{"1"}},
		{name: "search do", category: model.AllCategories, query: "do", want: []string{"2"}},
		{name: "search is case-insensitive", category: model.AllCategories, query: "DO", want: []string{"2"}},
		{name: "search is trimmed", category: model.AllCategories, query: "  cAt ", want: []string{"1"}},
		{name: "category and search combine", category: "c2", query: "cat", want: []string{}},
		{name: "unknown category", category: "nope", want: []string{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ids(Visible(scenarioItems(), tt.category, tt.query))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestVisible_UnsetCategoriesFailClosed(t *testing.T) {
	t.Parallel()

	items := []model.Item{
		{ID: "a", Prompt: "untagged"},
		{ID: "b", Prompt: "tagged", Categories: model.CategorySet{"c1"}},
	}
	if got := ids(Visible(items, "c1", "")); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("specific category: got %v", got)
	}
	if got := ids(Visible(items, model.AllCategories, "")); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("all: got %v", got)
	}
}

func TestVisible_MissingPromptExcludedWhenSearching(t *testing.T) {
	t.Parallel()

	items := []model.Item{
		{ID: "a"},
		{ID: "b", Prompt: "a red fox"},
	}
	if got := ids(Visible(items, model.AllCategories, "fox")); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("got %v", got)
	}
	// Whitespace-only queries are no query at all.
	if got := ids(Visible(items, model.AllCategories, "   ")); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("blank query: got %v", got)
	}
}

func TestVisible_StableForEqualOrder(t *testing.T) {
	t.Parallel()

	items := []model.Item{
		{ID: "x", Order: 3},
		{ID: "a", Order: 1},
		{ID: "b", Order: 1},
		{ID: "c"},
		{ID: "d", Order: 1},
		{ID: "e"},
	}
	want := []string{"c", "e", "a", "b", "d", "x"}
	if got := ids(Visible(items, model.AllCategories, "")); !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestVisible_PureAndNonMutating(t *testing.T) {
	t.Parallel()

	items := scenarioItems()
	before := append([]model.Item(nil), items...)

	first := Visible(items, model.AllCategories, "")
	second := Visible(items, model.AllCategories, "")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output for identical input")
	}
	if !reflect.DeepEqual(items, before) {
		t.Fatalf("input was mutated: %v", items)
	}

	// Mutating the result must not leak back into the input.
	first[0].Prompt = "changed"
	if items[1].Prompt != "dog" {
		t.Fatalf("result aliases input")
	}
}

func TestSortedByOrder(t *testing.T) {
	t.Parallel()

	items := scenarioItems()
	got := SortedByOrder(items)
	if !reflect.DeepEqual(ids(got), []string{"2", "1"}) {
		t.Fatalf("got %v", ids(got))
	}
	if items[0].ID != "1" {
		t.Fatalf("input reordered")
	}
	if out := SortedByOrder(nil); out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", out)
	}
}
