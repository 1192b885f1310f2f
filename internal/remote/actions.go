package remote

import (
	"context"
	"encoding/json"
	"strings"

	"prompt-gallery/internal/model"
)

// Backend action names (the "action" query parameter / body field).
const (
	ActionGetItems       = "getItems"
	ActionGetCategories  = "getCategories"
	ActionAddItem        = "addItem"
	ActionUpdateItem     = "updateItem"
	ActionDeleteItem     = "deleteItem"
	ActionAddCategory    = "addCategory"
	ActionDeleteCategory = "deleteCategory"
	ActionUpdateOrder    = "updateOrder"
	ActionUploadImage    = "uploadImage"
)

func (c *Client) GetItems(ctx context.Context) ([]model.Item, error) {
	raw, err := c.FetchQuery(ctx, ActionGetItems)
	if err != nil {
		return nil, err
	}
	var items []model.Item
	if err := decodeInto(ActionGetItems, raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetCategories(ctx context.Context) ([]model.Category, error) {
	raw, err := c.FetchQuery(ctx, ActionGetCategories)
	if err != nil {
		return nil, err
	}
	var cats []model.Category
	if err := decodeInto(ActionGetCategories, raw, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (c *Client) AddItem(ctx context.Context, item model.Item) (model.Item, error) {
	item.ID = ""
	return c.submitItem(ctx, ActionAddItem, item)
}

func (c *Client) UpdateItem(ctx context.Context, item model.Item) (model.Item, error) {
	return c.submitItem(ctx, ActionUpdateItem, item)
}

func (c *Client) submitItem(ctx context.Context, action string, item model.Item) (model.Item, error) {
	raw, err := c.SubmitCommand(ctx, action, map[string]any{"item": item})
	if err != nil {
		return model.Item{}, err
	}
	// Some backends acknowledge with {"success":true} instead of echoing the record.
	var out model.Item
	if err := json.Unmarshal(raw, &out); err != nil {
		return item, nil
	}
	if out.ID == "" {
		out.ID = item.ID
	}
	return out, nil
}

func (c *Client) DeleteItem(ctx context.Context, id model.ID) error {
	_, err := c.SubmitCommand(ctx, ActionDeleteItem, map[string]any{"id": id})
	return err
}

func (c *Client) AddCategory(ctx context.Context, name string) (model.Category, error) {
	raw, err := c.SubmitCommand(ctx, ActionAddCategory, map[string]any{"name": name})
	if err != nil {
		return model.Category{}, err
	}
	var out model.Category
	if err := json.Unmarshal(raw, &out); err != nil {
		return model.Category{Name: name}, nil
	}
	if out.Name == "" {
		out.Name = name
	}
	return out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id model.ID) error {
	_, err := c.SubmitCommand(ctx, ActionDeleteCategory, map[string]any{"id": id})
	return err
}

// UpdateOrder sends the full reordered list; the backend assigns order values by position.
func (c *Client) UpdateOrder(ctx context.Context, items []model.Item) error {
	if items == nil {
		items = []model.Item{}
	}
	_, err := c.SubmitCommand(ctx, ActionUpdateOrder, map[string]any{"items": items})
	return err
}

// UploadImage uploads an encoded image and returns the hosted reference.
func (c *Client) UploadImage(ctx context.Context, base64Payload, filename string) (string, error) {
	raw, err := c.SubmitCommand(ctx, ActionUploadImage, map[string]any{
		"base64":   base64Payload,
		"filename": filename,
	})
	if err != nil {
		return "", err
	}
	var out struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", ProtocolError{Action: ActionUploadImage, Reason: err.Error()}
	}
	if strings.TrimSpace(out.ImageURL) == "" {
		return "", ProtocolError{Action: ActionUploadImage, Reason: "response has no imageUrl"}
	}
	return out.ImageURL, nil
}

func decodeInto(action string, raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return ProtocolError{Action: action, Reason: err.Error()}
	}
	return nil
}
