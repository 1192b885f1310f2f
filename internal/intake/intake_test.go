package intake

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write png: %v", err)
	}
	return path
}

func TestStage_PNG(t *testing.T) {
	t.Parallel()

	path := writePNG(t, t.TempDir(), "shot.png", 3, 2)
	s, err := Stage(context.Background(), path)
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	if s.MIME != "image/png" {
		t.Fatalf("expected image/png, got %q", s.MIME)
	}
	if s.Width != 3 || s.Height != 2 {
		t.Fatalf("expected 3x2, got %dx%d", s.Width, s.Height)
	}
	if s.Name != "shot.png" {
		t.Fatalf("unexpected name %q", s.Name)
	}
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(s.DataURL, prefix) {
		t.Fatalf("unexpected data url prefix: %q", s.DataURL[:30])
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(s.DataURL, prefix))
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if int64(len(raw)) != s.Size {
		t.Fatalf("payload size %d != staged size %d", len(raw), s.Size)
	}
}

func TestStage_RejectsNonImage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("just text"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := Stage(context.Background(), path)
	if !errors.Is(err, ErrNotImage) {
		t.Fatalf("expected ErrNotImage, got %v", err)
	}
}

func TestStage_MisnamedImageIsDetectedByContent(t *testing.T) {
	t.Parallel()

	path := writePNG(t, t.TempDir(), "photo.txt", 1, 1)
	s, err := Stage(context.Background(), path)
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	if s.MIME != "image/png" {
		t.Fatalf("expected sniffed image/png, got %q", s.MIME)
	}
}

func TestStage_SVGFallsBackToExtension(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "icon.svg")
	svg := `<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"></svg>`
	if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := Stage(context.Background(), path)
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	if s.MIME != "image/svg+xml" {
		t.Fatalf("expected image/svg+xml, got %q", s.MIME)
	}
}

func TestStage_CancelledContext(t *testing.T) {
	t.Parallel()

	path := writePNG(t, t.TempDir(), "a.png", 1, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Stage(ctx, path); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestStage_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Stage(context.Background(), filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := Stage(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestNormalizeDroppedPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "  /tmp/a.png  ", want: "/tmp/a.png"},
		{in: "'/tmp/my shot.png'", want: "/tmp/my shot.png"},
		{in: `"/tmp/my shot.png"`, want: "/tmp/my shot.png"},
		{in: `/tmp/my\ shot.png`, want: "/tmp/my shot.png"},
		{in: "file:///tmp/my%20shot.png", want: "/tmp/my shot.png"},
	}
	for _, tt := range tests {
		if got := NormalizeDroppedPath(tt.in); got != tt.want {
			t.Fatalf("NormalizeDroppedPath(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUploadFilename(t *testing.T) {
	t.Parallel()

	ts := time.UnixMilli(1700000000123)
	if got := UploadFilename(ts); got != "prompt-1700000000123.png" {
		t.Fatalf("unexpected filename %q", got)
	}
}
