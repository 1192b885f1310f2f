package tui

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru/v2"
)

const markdownCacheSize = 256

var (
	mdRendererMu sync.Mutex
	// Renderers are cached per wrap width and style. WithAutoStyle can block on terminal
	// background queries, so a fixed style is chosen up front.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// markdownCache memoizes rendered prompts by style, width and text.
type markdownCache struct {
	cache *lru.Cache[string, string]
}

func newMarkdownCache() *markdownCache {
	c, err := lru.New[string, string](markdownCacheSize)
	if err != nil {
		return &markdownCache{}
	}
	return &markdownCache{cache: c}
}

func (c *markdownCache) render(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}
	key := markdownStyle() + ":" + strconv.Itoa(width) + ":" + md
	if c != nil && c.cache != nil {
		if out, ok := c.cache.Get(key); ok {
			return out
		}
	}
	out := renderMarkdown(md, width)
	if c != nil && c.cache != nil {
		c.cache.Add(key, out)
	}
	return out
}

func renderMarkdown(md string, width int) string {
	style := markdownStyle()
	key := style + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	mdRendererMu.Unlock()

	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRendererMu.Lock()
		if existing := mdRenderers[key]; existing != nil {
			r = existing
		} else {
			mdRenderers[key] = rr
			r = rr
		}
		mdRendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

func markdownStyle() string {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return "notty"
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("GALLERY_TUI_THEME"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
