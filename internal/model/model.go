package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// AllCategories is the category filter value that disables category filtering.
const AllCategories = "all"

// ID is an opaque record identifier. Spreadsheet-backed stores often emit numeric ids,
// so numbers decode into their decimal string form.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// CategorySet is the list of category ids an item is tagged with.
//
// A nil set means "unset": the field was missing or was not a JSON array. Unset sets
// never match a specific category filter.
type CategorySet []ID

func (s *CategorySet) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '[' {
		*s = nil
		return nil
	}
	var raw []ID
	if err := json.Unmarshal(b, &raw); err != nil {
		*s = nil
		return nil
	}
	if raw == nil {
		raw = []ID{}
	}
	*s = raw
	return nil
}

// MarshalJSON always writes an array; backends expect a list even for untagged items.
func (s CategorySet) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]ID(s))
}

func (s CategorySet) Contains(id ID) bool {
	for _, c := range s {
		if c == id {
			return true
		}
	}
	return false
}

// Order is the numeric display sort key. Missing, empty and non-numeric values read as 0.
type Order float64

func (o *Order) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*o = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			*o = 0
			return nil
		}
		*o = Order(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		*o = 0
		return nil
	}
	*o = Order(f)
	return nil
}

// Text is a free-text cell. Spreadsheet backends hand back numbers and booleans for
// cells that look like them; any non-string scalar keeps its JSON literal form.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	*t = Text(b)
	return nil
}

type Item struct {
	ID         ID          `json:"id,omitempty"`
	Prompt     string      `json:"prompt"`
	ImageURL   string      `json:"imageUrl"`
	Categories CategorySet `json:"categories"`
	Order      Order       `json:"order"`
}

func (it *Item) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID         ID          `json:"id"`
		Prompt     Text        `json:"prompt"`
		ImageURL   Text        `json:"imageUrl"`
		Categories CategorySet `json:"categories"`
		Order      Order       `json:"order"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*it = Item{
		ID:         raw.ID,
		Prompt:     string(raw.Prompt),
		ImageURL:   string(raw.ImageURL),
		Categories: raw.Categories,
		Order:      raw.Order,
	}
	return nil
}

func (it Item) HasCategory(id ID) bool {
	return it.Categories.Contains(id)
}

type Category struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

func (c *Category) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID   ID   `json:"id"`
		Name Text `json:"name"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*c = Category{ID: raw.ID, Name: string(raw.Name)}
	return nil
}
