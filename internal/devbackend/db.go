// Package devbackend is a local stand-in for the hosted gallery backend. It speaks the same
// single-endpoint action protocol and keeps its tables in SQLite.
package devbackend

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"prompt-gallery/internal/model"
)

var (
	ErrItemNotFound     = errors.New("item not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// DB holds the item and category tables (and, by default, uploaded images).
type DB struct {
	db *sql.DB
}

// OpenDB opens (creating if needed) the SQLite database at path. ":memory:" gives a private
// in-memory database.
func OpenDB(ctx context.Context, path string) (*DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = ":memory:"
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A :memory: database exists per connection.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			prompt TEXT NOT NULL,
			image_url TEXT NOT NULL DEFAULT '',
			categories_json TEXT NOT NULL DEFAULT '[]',
			ord REAL NOT NULL DEFAULT 0,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS images (
			name TEXT PRIMARY KEY,
			mime TEXT NOT NULL,
			data BLOB NOT NULL,
			created_at_unixms INTEGER NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (d *DB) Close() error { return d.db.Close() }

// Items returns every item in insertion order; clients sort by order themselves.
func (d *DB) Items(ctx context.Context) ([]model.Item, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT id, prompt, image_url, categories_json, ord FROM items ORDER BY created_at_unixms, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Item{}
	for rows.Next() {
		var (
			it       model.Item
			id, cats string
			ord      float64
		)
		if err := rows.Scan(&id, &it.Prompt, &it.ImageURL, &cats, &ord); err != nil {
			return nil, err
		}
		it.ID = model.ID(id)
		it.Order = model.Order(ord)
		if err := json.Unmarshal([]byte(cats), &it.Categories); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (d *DB) Categories(ctx context.Context) ([]model.Category, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY created_at_unixms, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Category{}
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out = append(out, model.Category{ID: model.ID(id), Name: name})
	}
	return out, rows.Err()
}

// AddItem stores it under a fresh id, appended after every existing item.
func (d *DB) AddItem(ctx context.Context, it model.Item) (model.Item, error) {
	var count int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
		return model.Item{}, err
	}
	it.ID = model.ID(uuid.NewString())
	it.Order = model.Order(count)
	if it.Categories == nil {
		it.Categories = model.CategorySet{}
	}
	cats, err := json.Marshal(it.Categories)
	if err != nil {
		return model.Item{}, err
	}
	_, err = d.db.ExecContext(ctx,
		`INSERT INTO items(id, prompt, image_url, categories_json, ord, created_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`,
		string(it.ID), it.Prompt, it.ImageURL, string(cats), float64(it.Order), time.Now().UnixMilli(),
	)
	if err != nil {
		return model.Item{}, err
	}
	return it, nil
}

// UpdateItem replaces prompt, image and categories. The stored order is kept.
func (d *DB) UpdateItem(ctx context.Context, it model.Item) (model.Item, error) {
	if it.Categories == nil {
		it.Categories = model.CategorySet{}
	}
	cats, err := json.Marshal(it.Categories)
	if err != nil {
		return model.Item{}, err
	}
	res, err := d.db.ExecContext(ctx,
		`UPDATE items SET prompt = ?, image_url = ?, categories_json = ? WHERE id = ?`,
		it.Prompt, it.ImageURL, string(cats), string(it.ID),
	)
	if err != nil {
		return model.Item{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Item{}, ErrItemNotFound
	}
	var ord float64
	if err := d.db.QueryRowContext(ctx, `SELECT ord FROM items WHERE id = ?`, string(it.ID)).Scan(&ord); err != nil {
		return model.Item{}, err
	}
	it.Order = model.Order(ord)
	return it, nil
}

func (d *DB) DeleteItem(ctx context.Context, id model.ID) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (d *DB) AddCategory(ctx context.Context, name string) (model.Category, error) {
	c := model.Category{ID: model.ID(uuid.NewString()), Name: name}
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO categories(id, name, created_at_unixms) VALUES(?, ?, ?)`,
		string(c.ID), c.Name, time.Now().UnixMilli(),
	)
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

// DeleteCategory removes the category row only. Items that reference it keep the id.
func (d *DB) DeleteCategory(ctx context.Context, id model.ID) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// UpdateOrder sets each listed item's order to its index. Unknown ids are skipped.
func (d *DB) UpdateOrder(ctx context.Context, ids []model.ID) error {
	tx, err := d.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for i, id := range ids {
		if _, err := tx.ExecContext(ctx, `UPDATE items SET ord = ? WHERE id = ?`, float64(i), string(id)); err != nil {
			return err
		}
	}
	return tx.Commit()
}
