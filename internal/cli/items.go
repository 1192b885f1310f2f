package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"prompt-gallery/internal/filter"
	"prompt-gallery/internal/intake"
	"prompt-gallery/internal/model"
	"prompt-gallery/internal/mutate"
	"prompt-gallery/internal/store"
	"prompt-gallery/internal/view"
)

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "items",
		Aliases: []string{"item"},
		Short:   "Gallery item commands",
	}
	cmd.AddCommand(newItemsListCmd(app))
	cmd.AddCommand(newItemsShowCmd(app))
	cmd.AddCommand(newItemsAddCmd(app))
	cmd.AddCommand(newItemsUpdateCmd(app))
	cmd.AddCommand(newItemsDeleteCmd(app))
	cmd.AddCommand(newItemsReorderCmd(app))
	return cmd
}

// itemTable renders items with their category names resolved. JSON output is the plain
// item array.
type itemTable struct {
	items      []model.Item
	categories []model.Category
}

func (t itemTable) MarshalJSON() ([]byte, error) {
	items := t.items
	if items == nil {
		items = []model.Item{}
	}
	return json.Marshal(items)
}

func (t itemTable) TableHeaders() []string {
	return []string{"ID", "ORDER", "CATEGORIES", "PROMPT", "IMAGE"}
}

func (t itemTable) TableRows() [][]string {
	rows := make([][]string, 0, len(t.items))
	for _, it := range t.items {
		rows = append(rows, []string{
			string(it.ID),
			fmt.Sprintf("%g", float64(it.Order)),
			strings.Join(view.CategoryLabels(it.Categories, t.categories), ", "),
			oneLine(it.Prompt, 60),
			it.ImageURL,
		})
	}
	return rows
}

func oneLine(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func newItemsListCmd(app *App) *cobra.Command {
	var category string
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List visible items (category + search filter, sorted by order)",
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, err := app.coordinator(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := coord.Reload(cmd.Context()); err != nil {
				return err
			}
			ui := store.NewUIState()
			ui.SelectCategory(category)
			ui.SetSearch(search)
			snap := coord.Store().Snapshot()
			items := filter.Visible(snap.Items, ui.CurrentCategory, ui.SearchQuery)
			return writeOut(cmd, app, itemTable{items: items, categories: snap.Categories})
		},
	}

	cmd.Flags().StringVar(&category, "category", model.AllCategories, "Category id (default: all)")
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive prompt substring")
	return cmd
}

func newItemsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, err := app.coordinator(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := coord.Reload(cmd.Context()); err != nil {
				return err
			}
			snap := coord.Store().Snapshot()
			it, ok := snap.FindItem(model.ID(strings.TrimSpace(args[0])))
			if !ok {
				return writeErr(cmd, errNotFound("item", args[0]))
			}
			if strings.EqualFold(app.Format, "text") {
				return writeOut(cmd, app, itemTable{items: []model.Item{it}, categories: snap.Categories})
			}
			return writeOut(cmd, app, it)
		},
	}
	return cmd
}

type itemFlags struct {
	prompt     string
	imageURL   string
	imageFile  string
	categories []string
	clearImage bool
}

func (f *itemFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.prompt, "prompt", "", "Prompt text")
	cmd.Flags().StringVar(&f.imageURL, "image-url", "", "Image URL")
	cmd.Flags().StringVar(&f.imageFile, "image-file", "", "Local image file to upload")
	cmd.Flags().StringSliceVar(&f.categories, "category", nil, "Category id (repeatable)")
	cmd.MarkFlagsMutuallyExclusive("image-url", "image-file")
}

// apply copies the flags that were set onto d and stages the image file, if any.
func (f *itemFlags) apply(cmd *cobra.Command, d *mutate.Draft) error {
	flags := cmd.Flags()
	if flags.Changed("prompt") {
		d.Prompt = f.prompt
	}
	if f.clearImage {
		d.ClearImage()
	}
	if flags.Changed("image-url") {
		d.ClearImage()
		d.ImageURL = strings.TrimSpace(f.imageURL)
	}
	if flags.Changed("category") {
		d.Categories = make([]model.ID, 0, len(f.categories))
		for _, c := range f.categories {
			if c = strings.TrimSpace(c); c != "" {
				d.Categories = append(d.Categories, model.ID(c))
			}
		}
	}
	if path := intake.NormalizeDroppedPath(f.imageFile); path != "" {
		st, err := intake.Stage(cmd.Context(), path)
		if err != nil {
			return fmt.Errorf("stage %s: %w", path, err)
		}
		d.Stage(st)
	}
	return nil
}

func newItemsAddCmd(app *App) *cobra.Command {
	var f itemFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item (uploads --image-file first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAdmin(); err != nil {
				return writeErr(cmd, err)
			}
			coord, err := app.coordinator(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			var d mutate.Draft
			if err := f.apply(cmd, &d); err != nil {
				return writeErr(cmd, err)
			}
			it, err := coord.SaveDraft(cmd.Context(), d)
			if err != nil {
				return err
			}
			return writeOut(cmd, app, it)
		},
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("prompt")
	addPasswordFlag(cmd, app)
	return cmd
}

func newItemsUpdateCmd(app *App) *cobra.Command {
	var f itemFlags

	cmd := &cobra.Command{
		Use:   "update <item-id>",
		Short: "Update an item (unspecified fields keep their current values)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAdmin(); err != nil {
				return writeErr(cmd, err)
			}
			coord, err := app.coordinator(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := coord.Reload(cmd.Context()); err != nil {
				return err
			}
			it, ok := coord.Store().FindItem(model.ID(strings.TrimSpace(args[0])))
			if !ok {
				return writeErr(cmd, errNotFound("item", args[0]))
			}
			d := mutate.DraftFor(it)
			if err := f.apply(cmd, &d); err != nil {
				return writeErr(cmd, err)
			}
			saved, err := coord.SaveDraft(cmd.Context(), d)
			if err != nil {
				return err
			}
			return writeOut(cmd, app, saved)
		},
	}

	f.register(cmd)
	cmd.Flags().BoolVar(&f.clearImage, "clear-image", false, "Remove the image")
	addPasswordFlag(cmd, app)
	return cmd
}

func newItemsDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <item-id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAdmin(); err != nil {
				return writeErr(cmd, err)
			}
			coord, err := app.coordinator(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := model.ID(strings.TrimSpace(args[0]))
			if err := coord.DeleteItem(cmd.Context(), id); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{"deleted": id})
		},
	}
	addPasswordFlag(cmd, app)
	return cmd
}

func newItemsReorderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorder <item-id>...",
		Short: "Move the given items to the front, in the given order",
		Long: strings.TrimSpace(`
Items not named keep their relative order after the named ones. The whole list is
sent in one request and order values become the new positions (0, 1, 2, ...).`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAdmin(); err != nil {
				return writeErr(cmd, err)
			}
			coord, err := app.coordinator(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := coord.Reload(cmd.Context()); err != nil {
				return err
			}
			ids := make([]model.ID, 0, len(args))
			for _, a := range args {
				ids = append(ids, model.ID(strings.TrimSpace(a)))
			}
			ordered, err := reorderByIDs(coord.Store().Snapshot().Items, ids)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := coord.Reorder(cmd.Context(), ordered); err != nil {
				return err
			}
			snap := coord.Store().Snapshot()
			return writeOut(cmd, app, itemTable{items: filter.SortedByOrder(snap.Items), categories: snap.Categories})
		},
	}
	addPasswordFlag(cmd, app)
	return cmd
}

// reorderByIDs puts the named items first, in argument order, followed by the rest in
// their current display order. Duplicate ids are ignored after their first mention.
func reorderByIDs(items []model.Item, ids []model.ID) ([]model.Item, error) {
	sorted := filter.SortedByOrder(items)
	byID := make(map[model.ID]model.Item, len(sorted))
	for _, it := range sorted {
		byID[it.ID] = it
	}

	out := make([]model.Item, 0, len(sorted))
	seen := make(map[model.ID]bool, len(ids))
	for _, id := range ids {
		it, ok := byID[id]
		if !ok {
			return nil, errNotFound("item", string(id))
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, it)
	}
	for _, it := range sorted {
		if !seen[it.ID] {
			out = append(out, it)
		}
	}
	return out, nil
}
