// Package intake stages local image files for upload.
package intake

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotImage is returned when a staged file is not an image/* type.
var ErrNotImage = errors.New("not an image file")

// Staged is an image file read into memory and encoded for upload.
type Staged struct {
	Name string
	Path string
	MIME string
	Size int64

	// Width/Height are best-effort preview metadata (0 when the format is not decodable).
	Width  int
	Height int

	// DataURL is data:<mime>;base64,<payload>; it is what the upload action receives.
	DataURL string
}

// Stage reads path, checks that it is an image and encodes it as a data URL.
// No size or dimension limits are enforced.
func Stage(ctx context.Context, path string) (Staged, error) {
	path = NormalizeDroppedPath(path)
	if path == "" {
		return Staged{}, errors.New("no file given")
	}

	f, err := os.Open(path)
	if err != nil {
		return Staged{}, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return Staged{}, err
	}
	if st.IsDir() {
		return Staged{}, fmt.Errorf("%s is a directory", path)
	}

	data, err := readAll(ctx, f)
	if err != nil {
		return Staged{}, err
	}

	mt := DetectMIME(path, data)
	if !strings.HasPrefix(mt, "image/") {
		return Staged{}, fmt.Errorf("%s (%s): %w", filepath.Base(path), mt, ErrNotImage)
	}

	s := Staged{
		Name:    filepath.Base(path),
		Path:    path,
		MIME:    mt,
		Size:    int64(len(data)),
		DataURL: EncodeDataURL(mt, data),
	}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		s.Width, s.Height = cfg.Width, cfg.Height
	}
	return s, nil
}

// readAll reads r in chunks so a cancelled context stops large reads early.
func readAll(ctx context.Context, r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	chunk := make([]byte, 256<<10)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := r.Read(chunk)
		buf.Write(chunk[:n])
		if errors.Is(err, io.EOF) {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// DetectMIME sniffs the content type, falling back to the file extension when sniffing
// is inconclusive (e.g. SVG, which sniffs as text/xml).
func DetectMIME(path string, data []byte) string {
	sniffed := http.DetectContentType(data)
	if i := strings.IndexByte(sniffed, ';'); i >= 0 {
		sniffed = strings.TrimSpace(sniffed[:i])
	}
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		if i := strings.IndexByte(byExt, ';'); i >= 0 {
			byExt = strings.TrimSpace(byExt[:i])
		}
		if strings.HasPrefix(byExt, "image/") && (sniffed == "text/xml" || sniffed == "text/plain" || sniffed == "application/octet-stream") {
			return byExt
		}
	}
	return sniffed
}

func EncodeDataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// NormalizeDroppedPath cleans a path pasted by a terminal drag-and-drop: surrounding
// quotes, file:// URLs and backslash-escaped spaces.
func NormalizeDroppedPath(p string) string {
	p = strings.TrimSpace(p)
	if len(p) >= 2 {
		if (p[0] == '\'' && p[len(p)-1] == '\'') || (p[0] == '"' && p[len(p)-1] == '"') {
			p = p[1 : len(p)-1]
		}
	}
	if strings.HasPrefix(p, "file://") {
		if u, err := url.Parse(p); err == nil {
			p = u.Path
		}
	}
	p = strings.ReplaceAll(p, `\ `, " ")
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	return p
}

// UploadFilename is the generated name for an uploaded image.
func UploadFilename(t time.Time) string {
	return fmt.Sprintf("prompt-%d.png", t.UnixMilli())
}
