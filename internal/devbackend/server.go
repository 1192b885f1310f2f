package devbackend

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"prompt-gallery/internal/model"
)

const maxRequestBytes = 32 << 20

// Server answers the gallery action protocol. Failures are reported the way the hosted
// backend reports them: HTTP 200 with a {"error": "..."} body.
type Server struct {
	db        *DB
	images    ImageStore
	publicURL string
	log       *zap.Logger
}

type Option func(*Server)

func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithImageStore replaces the default SQLite image store.
func WithImageStore(st ImageStore) Option {
	return func(s *Server) {
		if st != nil {
			s.images = st
		}
	}
}

// WithPublicURL sets the base used in returned image URLs. By default it is derived from
// the request's Host header.
func WithPublicURL(u string) Option {
	return func(s *Server) {
		s.publicURL = strings.TrimRight(strings.TrimSpace(u), "/")
	}
}

func NewServer(db *DB, opts ...Option) *Server {
	s := &Server{
		db:     db,
		images: db.Images(),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/images/", s.serveImage)
	mux.HandleFunc("/", s.serveAction)
	return mux
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.log.Info("dev backend listening", zap.String("addr", ln.Addr().String()))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

type commandBody struct {
	Action   string          `json:"action"`
	Item     json.RawMessage `json:"item"`
	ID       model.ID        `json:"id"`
	Name     string          `json:"name"`
	Items    []model.Item    `json:"items"`
	Base64   string          `json:"base64"`
	Filename string          `json:"filename"`
}

func (s *Server) serveAction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var (
		action string
		result any
		err    error
	)
	switch r.Method {
	case http.MethodGet:
		action = r.URL.Query().Get("action")
		result, err = s.query(r.Context(), action)
	case http.MethodPost:
		var body commandBody
		body, err = decodeCommand(r)
		action = body.Action
		if err == nil {
			result, err = s.command(r.Context(), r, body)
		}
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("action", action),
		zap.Duration("took", time.Since(start)),
	}
	if err != nil {
		s.log.Warn("action failed", append(fields, zap.Error(err))...)
		writeJSON(w, map[string]string{"error": err.Error()})
		return
	}
	s.log.Info("action", fields...)
	writeJSON(w, result)
}

func decodeCommand(r *http.Request) (commandBody, error) {
	var body commandBody
	b, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		return body, err
	}
	if err := json.Unmarshal(b, &body); err != nil {
		return body, fmt.Errorf("invalid request body: %w", err)
	}
	return body, nil
}

func (s *Server) query(ctx context.Context, action string) (any, error) {
	switch action {
	case "getItems":
		return s.db.Items(ctx)
	case "getCategories":
		return s.db.Categories(ctx)
	case "":
		return nil, errors.New("missing action")
	default:
		return nil, fmt.Errorf("unknown action: %s", action)
	}
}

func (s *Server) command(ctx context.Context, r *http.Request, body commandBody) (any, error) {
	switch body.Action {
	case "addItem", "updateItem":
		var it model.Item
		if len(body.Item) == 0 || json.Unmarshal(body.Item, &it) != nil {
			return nil, errors.New("missing item")
		}
		if body.Action == "addItem" {
			return s.db.AddItem(ctx, it)
		}
		if it.ID == "" {
			return nil, errors.New("missing item id")
		}
		return s.db.UpdateItem(ctx, it)
	case "deleteItem":
		if body.ID == "" {
			return nil, errors.New("missing id")
		}
		if err := s.db.DeleteItem(ctx, body.ID); err != nil {
			return nil, err
		}
		return map[string]bool{"success": true}, nil
	case "addCategory":
		name := strings.TrimSpace(body.Name)
		if name == "" {
			return nil, errors.New("missing name")
		}
		return s.db.AddCategory(ctx, name)
	case "deleteCategory":
		if body.ID == "" {
			return nil, errors.New("missing id")
		}
		if err := s.db.DeleteCategory(ctx, body.ID); err != nil {
			return nil, err
		}
		return map[string]bool{"success": true}, nil
	case "updateOrder":
		ids := make([]model.ID, 0, len(body.Items))
		for _, it := range body.Items {
			ids = append(ids, it.ID)
		}
		if err := s.db.UpdateOrder(ctx, ids); err != nil {
			return nil, err
		}
		return map[string]bool{"success": true}, nil
	case "uploadImage":
		url, err := s.upload(ctx, r, body.Base64, body.Filename)
		if err != nil {
			return nil, err
		}
		return map[string]string{"imageUrl": url}, nil
	case "":
		return nil, errors.New("missing action")
	default:
		return nil, fmt.Errorf("unknown action: %s", body.Action)
	}
}

func (s *Server) upload(ctx context.Context, r *http.Request, payload, filename string) (string, error) {
	mimeType, data, err := decodeImagePayload(payload)
	if err != nil {
		return "", err
	}
	base := path.Base(strings.TrimSpace(filename))
	if base == "." || base == "/" || base == "" {
		base = "image"
	}
	name := uuid.NewString() + "-" + base
	if err := s.images.Put(ctx, name, mimeType, data); err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return s.baseURL(r) + "/images/" + name, nil
}

// decodeImagePayload accepts raw base64 or a data URL.
func decodeImagePayload(payload string) (string, []byte, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return "", nil, errors.New("missing base64")
	}
	mimeType := ""
	if rest, ok := strings.CutPrefix(payload, "data:"); ok {
		meta, encoded, found := strings.Cut(rest, ",")
		if !found || !strings.HasSuffix(meta, ";base64") {
			return "", nil, errors.New("invalid data url")
		}
		mimeType = strings.TrimSuffix(meta, ";base64")
		payload = encoded
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64: %w", err)
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return mimeType, data, nil
}

func (s *Server) baseURL(r *http.Request) string {
	if s.publicURL != "" {
		return s.publicURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func (s *Server) serveImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/images/")
	if name == "" || strings.Contains(name, "/") {
		http.NotFound(w, r)
		return
	}
	data, mimeType, err := s.images.Get(r.Context(), name)
	if errors.Is(err, ErrImageNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.log.Error("read image", zap.String("name", name), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
