package mutate

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"prompt-gallery/internal/model"
	"prompt-gallery/internal/store"
)

// Remote is the set of backend actions the coordinator drives. *remote.Client implements it.
type Remote interface {
	GetItems(ctx context.Context) ([]model.Item, error)
	GetCategories(ctx context.Context) ([]model.Category, error)
	AddItem(ctx context.Context, item model.Item) (model.Item, error)
	UpdateItem(ctx context.Context, item model.Item) (model.Item, error)
	DeleteItem(ctx context.Context, id model.ID) error
	AddCategory(ctx context.Context, name string) (model.Category, error)
	DeleteCategory(ctx context.Context, id model.ID) error
	UpdateOrder(ctx context.Context, items []model.Item) error
	UploadImage(ctx context.Context, base64Payload, filename string) (string, error)
}

// Coordinator runs every backend mutation through the same lifecycle: loading indicator,
// remote call, full reload, notification. It never edits the store locally; the store only
// changes through a reload.
type Coordinator struct {
	remote Remote
	store  *store.Store
	notify Notifier
	log    *zap.Logger
	now    func() time.Time
}

type Option func(*Coordinator)

func WithLogger(l *zap.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.log = l
		}
	}
}

// WithClock overrides the clock used for upload filenames.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		if now != nil {
			c.now = now
		}
	}
}

func New(r Remote, st *store.Store, n Notifier, opts ...Option) *Coordinator {
	if n == nil {
		n = NopNotifier{}
	}
	c := &Coordinator{
		remote: r,
		store:  st,
		notify: n,
		log:    zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Coordinator) Store() *store.Store { return c.store }

// Reload fetches both lists in parallel and replaces the snapshot. A reload overtaken by a
// newer one is dropped silently.
func (c *Coordinator) Reload(ctx context.Context) error {
	c.notify.ShowLoading(opReload.loading)
	if err := c.reload(ctx); err != nil {
		c.fail(opReload, err)
		return err
	}
	c.notify.HideLoading()
	return nil
}

func (c *Coordinator) reload(ctx context.Context) error {
	token := c.store.BeginReload()

	var (
		items      []model.Item
		categories []model.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = c.remote.GetItems(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = c.remote.GetCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if !c.store.ReplaceAll(token, items, categories) {
		c.log.Debug("stale reload discarded", zap.Uint64("token", token))
		return nil
	}
	c.log.Debug("snapshot replaced",
		zap.Uint64("token", token),
		zap.Int("items", len(items)),
		zap.Int("categories", len(categories)),
	)
	c.notify.SnapshotReplaced()
	return nil
}

// apply runs call and, once the backend accepted it, reloads before reporting success.
func (c *Coordinator) apply(ctx context.Context, op operation, call func(context.Context) error) error {
	c.notify.ShowLoading(op.loading)
	if err := call(ctx); err != nil {
		c.fail(op, err)
		return err
	}

	reloadErr := c.reload(ctx)
	c.notify.HideLoading()
	c.notify.Toast(ToastSuccess, op.success)
	c.log.Info("mutation applied", zap.String("op", op.name))
	if reloadErr != nil {
		c.notify.Toast(ToastError, opReload.failure+": "+reloadErr.Error())
		c.log.Warn("reload after mutation failed", zap.String("op", op.name), zap.Error(reloadErr))
	}
	return nil
}

func (c *Coordinator) fail(op operation, err error) {
	c.notify.HideLoading()
	c.notify.Toast(ToastError, op.failure+": "+err.Error())
	c.log.Error("operation failed", zap.String("op", op.name), zap.Error(err))
}

func (c *Coordinator) invalid(field, msg string) error {
	c.notify.Toast(ToastWarning, msg)
	return ValidationError{Field: field, Message: msg}
}

// AddItem submits a new record; any id on item is ignored.
func (c *Coordinator) AddItem(ctx context.Context, item model.Item) (model.Item, error) {
	item.Prompt = strings.TrimSpace(item.Prompt)
	if item.Prompt == "" {
		return model.Item{}, c.invalid("prompt", "Prompt is required")
	}
	item.ID = ""
	var created model.Item
	err := c.apply(ctx, opAddItem, func(ctx context.Context) error {
		var err error
		created, err = c.remote.AddItem(ctx, item)
		return err
	})
	return created, err
}

func (c *Coordinator) UpdateItem(ctx context.Context, item model.Item) (model.Item, error) {
	if item.ID == "" {
		return model.Item{}, c.invalid("id", "Item id is required")
	}
	item.Prompt = strings.TrimSpace(item.Prompt)
	if item.Prompt == "" {
		return model.Item{}, c.invalid("prompt", "Prompt is required")
	}
	var updated model.Item
	err := c.apply(ctx, opUpdateItem, func(ctx context.Context) error {
		var err error
		updated, err = c.remote.UpdateItem(ctx, item)
		return err
	})
	return updated, err
}

func (c *Coordinator) DeleteItem(ctx context.Context, id model.ID) error {
	if id == "" {
		return c.invalid("id", "Item id is required")
	}
	return c.apply(ctx, opDeleteItem, func(ctx context.Context) error {
		return c.remote.DeleteItem(ctx, id)
	})
}

func (c *Coordinator) AddCategory(ctx context.Context, name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, c.invalid("name", "Category name is required")
	}
	var created model.Category
	err := c.apply(ctx, opAddCategory, func(ctx context.Context) error {
		var err error
		created, err = c.remote.AddCategory(ctx, name)
		return err
	})
	return created, err
}

// DeleteCategory removes the category only; items keep the (now dangling) id.
func (c *Coordinator) DeleteCategory(ctx context.Context, id model.ID) error {
	if id == "" {
		return c.invalid("id", "Category id is required")
	}
	return c.apply(ctx, opDeleteCategory, func(ctx context.Context) error {
		return c.remote.DeleteCategory(ctx, id)
	})
}

// Reorder persists items in the given order with a single request.
func (c *Coordinator) Reorder(ctx context.Context, items []model.Item) error {
	return c.apply(ctx, opReorder, func(ctx context.Context) error {
		return c.remote.UpdateOrder(ctx, items)
	})
}

// UploadImage sends a data URL (or raw base64) and returns the hosted image URL. No reload
// follows; the URL is only used by the record submitted next.
func (c *Coordinator) UploadImage(ctx context.Context, payload, filename string) (string, error) {
	if payload == "" {
		return "", c.invalid("image", "No image selected")
	}
	c.notify.ShowLoading(opUploadImage.loading)
	url, err := c.remote.UploadImage(ctx, payload, filename)
	if err != nil {
		c.fail(opUploadImage, err)
		return "", err
	}
	c.notify.HideLoading()
	c.log.Info("image uploaded", zap.String("filename", filename), zap.String("url", url))
	return url, nil
}
