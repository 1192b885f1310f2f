package cli

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"prompt-gallery/internal/model"
)

func newCategoriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cats"},
		Short:   "Category commands",
	}
	cmd.AddCommand(newCategoriesListCmd(app))
	cmd.AddCommand(newCategoriesAddCmd(app))
	cmd.AddCommand(newCategoriesDeleteCmd(app))
	return cmd
}

type categoryTable struct {
	categories []model.Category
	items      []model.Item
}

func (t categoryTable) MarshalJSON() ([]byte, error) {
	cats := t.categories
	if cats == nil {
		cats = []model.Category{}
	}
	return json.Marshal(cats)
}

func (t categoryTable) TableHeaders() []string {
	return []string{"ID", "NAME", "ITEMS"}
}

func (t categoryTable) TableRows() [][]string {
	counts := make(map[model.ID]int, len(t.categories))
	for _, it := range t.items {
		for _, id := range it.Categories {
			counts[id]++
		}
	}
	rows := make([][]string, 0, len(t.categories))
	for _, c := range t.categories {
		rows = append(rows, []string{string(c.ID), c.Name, strconv.Itoa(counts[c.ID])})
	}
	return rows
}

func newCategoriesListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, err := app.coordinator(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := coord.Reload(cmd.Context()); err != nil {
				return err
			}
			snap := coord.Store().Snapshot()
			return writeOut(cmd, app, categoryTable{categories: snap.Categories, items: snap.Items})
		},
	}
	return cmd
}

func newCategoriesAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAdmin(); err != nil {
				return writeErr(cmd, err)
			}
			coord, err := app.coordinator(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := coord.AddCategory(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return writeOut(cmd, app, c)
		},
	}
	addPasswordFlag(cmd, app)
	return cmd
}

func newCategoriesDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <category-id>",
		Short: "Delete a category (items keep the dangling id)",
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
			if err := coord.Reload(cmd.Context()); err != nil {
				return err
			}
			if _, ok := coord.Store().Snapshot().FindCategory(id); !ok {
				return writeErr(cmd, errNotFound("category", string(id)))
			}
			if err := coord.DeleteCategory(cmd.Context(), id); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{"deleted": id})
		},
	}
	addPasswordFlag(cmd, app)
	return cmd
}
