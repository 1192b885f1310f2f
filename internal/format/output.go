package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table is implemented by payloads that have a tabular text rendering.
type Table interface {
	TableHeaders() []string
	TableRows() [][]string
}

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - text
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "text":
		return WriteText(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteText renders a Table as an aligned plain table. Strings print as-is; anything
// else falls back to indented JSON.
func WriteText(w io.Writer, v any) error {
	switch x := v.(type) {
	case Table:
		rows := x.TableRows()
		if len(rows) == 0 {
			_, err := fmt.Fprintln(w, "(none)")
			return err
		}
		t := table.New().
			Border(lipgloss.HiddenBorder()).
			BorderHeader(false).
			Headers(x.TableHeaders()...).
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				st := lipgloss.NewStyle().PaddingRight(2)
				if row == table.HeaderRow {
					return st.Bold(true)
				}
				return st
			})
		_, err := fmt.Fprintln(w, t.String())
		return err
	case string:
		_, err := fmt.Fprintln(w, x)
		return err
	default:
		return WriteJSON(w, v, true)
	}
}
