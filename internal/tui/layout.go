package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and height lines
// tall, so joined blocks line up.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i, ln := range lines {
		// Bound the work on pathological lines before measuring them.
		if width > 0 && len(ln) > 8192 {
			ln = xansi.Cut(ln, 0, width)
		}
		w := xansi.StringWidth(ln)
		if w > width {
			ln = truncate(ln, width)
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}
	return strings.Join(lines, "\n")
}

// truncate cuts s to width columns, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	switch {
	case width <= 0:
		return ""
	case xansi.StringWidth(s) <= width:
		return s
	case width == 1:
		return xansi.Cut(s, 0, 1)
	default:
		return xansi.Cut(s, 0, width-1) + "…"
	}
}

// wrapLines wraps plain text to width and keeps at most maxLines lines, marking the last
// line when text was dropped.
func wrapLines(s string, width, maxLines int) []string {
	if width <= 0 || maxLines <= 0 {
		return nil
	}
	s = strings.Join(strings.Fields(s), " ")
	wrapped := strings.Split(xansi.Wrap(s, width, " "), "\n")
	if len(wrapped) <= maxLines {
		return wrapped
	}
	out := wrapped[:maxLines]
	last := out[maxLines-1]
	if xansi.StringWidth(last) >= width {
		last = xansi.Cut(last, 0, width-1)
	}
	out[maxLines-1] = last + "…"
	return out
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
