package mutate

import (
	"context"
	"slices"
	"strings"

	"prompt-gallery/internal/intake"
	"prompt-gallery/internal/model"
)

// Draft is the contents of the add/edit dialog. EditingID is empty for a new item.
type Draft struct {
	EditingID  model.ID
	Prompt     string
	ImageURL   string
	Categories []model.ID
	Order      model.Order
	Staged     *intake.Staged
}

// DraftFor pre-fills a draft from an existing item.
func DraftFor(it model.Item) Draft {
	return Draft{
		EditingID:  it.ID,
		Prompt:     it.Prompt,
		ImageURL:   it.ImageURL,
		Categories: slices.Clone([]model.ID(it.Categories)),
		Order:      it.Order,
	}
}

func (d Draft) IsEdit() bool { return d.EditingID != "" }

// Stage attaches a local file, replacing any file staged before.
func (d *Draft) Stage(s intake.Staged) {
	d.Staged = &s
}

// ClearImage drops both the staged file and the image URL.
func (d *Draft) ClearImage() {
	d.Staged = nil
	d.ImageURL = ""
}

func (d Draft) HasCategory(id model.ID) bool {
	return slices.Contains(d.Categories, id)
}

func (d *Draft) ToggleCategory(id model.ID) {
	if i := slices.Index(d.Categories, id); i >= 0 {
		d.Categories = slices.Delete(d.Categories, i, i+1)
		return
	}
	d.Categories = append(d.Categories, id)
}

// SaveDraft validates the draft, uploads a staged image first when there is one, and then
// adds or updates the record. A failed upload aborts before the record is submitted.
func (c *Coordinator) SaveDraft(ctx context.Context, d Draft) (model.Item, error) {
	prompt := strings.TrimSpace(d.Prompt)
	if prompt == "" {
		return model.Item{}, c.invalid("prompt", "Prompt is required")
	}

	imageURL := strings.TrimSpace(d.ImageURL)
	if d.Staged != nil {
		url, err := c.UploadImage(ctx, d.Staged.DataURL, intake.UploadFilename(c.now()))
		if err != nil {
			return model.Item{}, err
		}
		imageURL = url
	}

	item := model.Item{
		ID:         d.EditingID,
		Prompt:     prompt,
		ImageURL:   imageURL,
		Categories: model.CategorySet(slices.Clone(d.Categories)),
		Order:      d.Order,
	}
	if item.Categories == nil {
		item.Categories = model.CategorySet{}
	}
	if d.IsEdit() {
		return c.UpdateItem(ctx, item)
	}
	return c.AddItem(ctx, item)
}
