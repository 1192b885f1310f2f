package devbackend

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prompt-gallery/internal/model"
	"prompt-gallery/internal/mutate"
	"prompt-gallery/internal/remote"
	"prompt-gallery/internal/store"
)

// 1x1 transparent PNG.
const pixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

func newTestServer(t *testing.T) (*httptest.Server, *remote.Client) {
	t.Helper()
	db, err := OpenDB(context.Background(), filepath.Join(t.TempDir(), "gallery.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	srv := httptest.NewServer(NewServer(db).Handler())
	t.Cleanup(srv.Close)

	c, err := remote.New(srv.URL+"/exec", remote.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return srv, c
}

func TestAddItem_AppearsAfterReload(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()
	coord := mutate.New(c, store.New(), nil)

	created, err := coord.AddItem(ctx, model.Item{Prompt: "a red fox", Categories: model.CategorySet{}})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, ok := coord.Store().FindItem(created.ID)
	require.True(t, ok)
	assert.Equal(t, "a red fox", got.Prompt)
	assert.Equal(t, model.Order(0), got.Order)

	second, err := coord.AddItem(ctx, model.Item{Prompt: "a blue whale"})
	require.NoError(t, err)
	assert.Equal(t, model.Order(1), second.Order)
}

func TestUpdateAndDeleteItem(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()

	created, err := c.AddItem(ctx, model.Item{Prompt: "draft"})
	require.NoError(t, err)

	created.Prompt = "final"
	created.Categories = model.CategorySet{"c1"}
	updated, err := c.UpdateItem(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Prompt)
	assert.True(t, updated.HasCategory("c1"))

	require.NoError(t, c.DeleteItem(ctx, created.ID))
	items, err := c.GetItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	err = c.DeleteItem(ctx, created.ID)
	var re remote.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "item not found", re.Message)
}

func TestDeleteCategory_LeavesDanglingIDs(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()

	cat, err := c.AddCategory(ctx, "Animals")
	require.NoError(t, err)
	_, err = c.AddItem(ctx, model.Item{Prompt: "cat", Categories: model.CategorySet{cat.ID}})
	require.NoError(t, err)

	require.NoError(t, c.DeleteCategory(ctx, cat.ID))

	cats, err := c.GetCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)
	items, err := c.GetItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].HasCategory(cat.ID))
}

func TestUpdateOrder_AssignsIndexes(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()

	a, err := c.AddItem(ctx, model.Item{Prompt: "a"})
	require.NoError(t, err)
	b, err := c.AddItem(ctx, model.Item{Prompt: "b"})
	require.NoError(t, err)

	require.NoError(t, c.UpdateOrder(ctx, []model.Item{b, a}))

	items, err := c.GetItems(ctx)
	require.NoError(t, err)
	orders := map[model.ID]model.Order{}
	for _, it := range items {
		orders[it.ID] = it.Order
	}
	assert.Equal(t, model.Order(0), orders[b.ID])
	assert.Equal(t, model.Order(1), orders[a.ID])
}

func TestUploadImage_ServesStoredBytes(t *testing.T) {
	srv, c := newTestServer(t)
	ctx := context.Background()

	url, err := c.UploadImage(ctx, "data:image/png;base64,"+pixelPNG, "prompt-1.png")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, srv.URL+"/images/"), url)
	assert.True(t, strings.HasSuffix(url, "-prompt-1.png"), url)

	resp, err := srv.Client().Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	want, _ := base64.StdEncoding.DecodeString(pixelPNG)
	assert.Equal(t, want, body)
}

func TestUploadImage_RawBase64DetectsType(t *testing.T) {
	mimeType, data, err := decodeImagePayload(pixelPNG)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.NotEmpty(t, data)

	_, _, err = decodeImagePayload("data:image/png,notbase64")
	assert.Error(t, err)
	_, _, err = decodeImagePayload("")
	assert.Error(t, err)
}

func TestErrorsAreReportedInBody(t *testing.T) {
	srv, c := newTestServer(t)
	ctx := context.Background()

	_, err := c.FetchQuery(ctx, "nope")
	var re remote.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "unknown action: nope", re.Message)

	_, err = c.AddCategory(ctx, "   ")
	require.ErrorAs(t, err, &re)

	resp, err := srv.Client().Get(srv.URL + "/images/missing.png")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOpenDB_InMemory(t *testing.T) {
	db, err := OpenDB(context.Background(), "")
	require.NoError(t, err)
	defer db.Close()

	items, err := db.Items(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
