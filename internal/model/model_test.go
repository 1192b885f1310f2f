package model

import (
	"encoding/json"
	"testing"
)

func TestItemUnmarshal_TolerantFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		in         string
		wantID     ID
		wantOrder  Order
		wantUnset  bool
		wantCats   []string
		wantPrompt string
		wantImage  string
	}{
		{
			name:       "numeric id and order",
			in:         `{"id":1,"prompt":"cat","order":1,"categories":["c1"]}`,
			wantID:     "1",
			wantOrder:  1,
			wantCats:   []string{"c1"},
			wantPrompt: "cat",
		},
		{
			name:      "string order from spreadsheet",
			in:        `{"id":"a","order":"2.5","categories":[]}`,
			wantID:    "a",
			wantOrder: 2.5,
			wantCats:  []string{},
		},
		{
			name:      "empty order string",
			in:        `{"id":"a","order":"","categories":["x",7]}`,
			wantID:    "a",
			wantOrder: 0,
			wantCats:  []string{"x", "7"},
		},
		{
			name:       "numeric prompt cell",
			in:         `{"id":2,"prompt":12345,"imageUrl":null,"categories":[],"order":0}`,
			wantID:     "2",
			wantCats:   []string{},
			wantPrompt: "12345",
		},
		{
			name:       "boolean cells",
			in:         `{"id":"b","prompt":true,"imageUrl":false,"categories":[]}`,
			wantID:     "b",
			wantCats:   []string{},
			wantPrompt: "true",
			wantImage:  "false",
		},
		{
			name:      "NaN order reads as zero",
			in:        `{"id":"a","order":"NaN","categories":[]}`,
			wantID:    "a",
			wantOrder: 0,
			wantCats:  []string{},
		},
		{
			name:      "infinite order reads as zero",
			in:        `{"id":"a","order":"-Inf","categories":[]}`,
			wantID:    "a",
			wantOrder: 0,
			wantCats:  []string{},
		},
		{
			name:      "missing categories is unset",
			in:        `{"id":"a"}`,
			wantID:    "a",
			wantUnset: true,
		},
		{
			name:      "comma string categories is unset",
			in:        `{"id":"a","categories":"c1,c2"}`,
			wantID:    "a",
			wantUnset: true,
		},
		{
			name:      "null categories is unset",
			in:        `{"id":"a","categories":null}`,
			wantID:    "a",
			wantUnset: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var it Item
			if err := json.Unmarshal([]byte(tt.in), &it); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if it.ID != tt.wantID {
				t.Fatalf("id: want %q, got %q", tt.wantID, it.ID)
			}
			if it.Order != tt.wantOrder {
				t.Fatalf("order: want %v, got %v", tt.wantOrder, it.Order)
			}
			if it.Prompt != tt.wantPrompt {
				t.Fatalf("prompt: want %q, got %q", tt.wantPrompt, it.Prompt)
			}
			if it.ImageURL != tt.wantImage {
				t.Fatalf("imageUrl: want %q, got %q", tt.wantImage, it.ImageURL)
			}
			if tt.wantUnset {
				if it.Categories != nil {
					t.Fatalf("expected unset categories, got %#v", it.Categories)
				}
				return
			}
			got := make([]string, 0, len(it.Categories))
			for _, c := range it.Categories {
				got = append(got, string(c))
			}
			if len(got) != len(tt.wantCats) {
				t.Fatalf("categories: want %v, got %v", tt.wantCats, got)
			}
			for i := range got {
				if got[i] != tt.wantCats[i] {
					t.Fatalf("categories: want %v, got %v", tt.wantCats, got)
				}
			}
		})
	}
}

func TestItemsUnmarshal_OneOddCellKeepsTheList(t *testing.T) {
	t.Parallel()

	in := `[{"id":1,"prompt":"cat","imageUrl":"","categories":["c1"],"order":1},` +
		`{"id":2,"prompt":12345,"imageUrl":"","categories":[],"order":"NaN"}]`
	var items []Item
	if err := json.Unmarshal([]byte(in), &items); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(items) != 2 || items[1].Prompt != "12345" {
		t.Fatalf("unexpected items: %#v", items)
	}
	// A decoded item must always encode back for updateItem/updateOrder.
	if _, err := json.Marshal(items); err != nil {
		t.Fatalf("re-encode: %v", err)
	}

	var cats []Category
	if err := json.Unmarshal([]byte(`[{"id":3,"name":2024}]`), &cats); err != nil {
		t.Fatalf("unmarshal categories: %v", err)
	}
	if cats[0].ID != "3" || cats[0].Name != "2024" {
		t.Fatalf("unexpected category: %#v", cats[0])
	}
}

func TestCategorySetMarshal_UnsetWritesEmptyArray(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(Item{ID: "x", Prompt: "p"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	cats, ok := raw["categories"].([]any)
	if !ok || len(cats) != 0 {
		t.Fatalf("expected empty categories array, got %#v", raw["categories"])
	}
}

func TestItemHasCategory(t *testing.T) {
	t.Parallel()

	it := Item{Categories: CategorySet{"c1", "c2"}}
	if !it.HasCategory("c2") {
		t.Fatalf("expected c2 membership")
	}
	if it.HasCategory("c3") {
		t.Fatalf("did not expect c3 membership")
	}
	if (Item{}).HasCategory("c1") {
		t.Fatalf("unset categories must not match")
	}
}
