package format

import (
	"bytes"
	"strings"
	"testing"
)

type rows [][]string

func (r rows) TableHeaders() []string { return []string{"ID", "NAME"} }
func (r rows) TableRows() [][]string  { return r }

func TestWrite_JSONIsDefault(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"a": 1}, "", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := buf.String(); got != "{\"a\":1}\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestWrite_PrettyJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"a": 1}, "json", true); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"a\": 1\n") {
		t.Fatalf("expected indented output; got %q", buf.String())
	}
}

func TestWrite_TextTable(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := Write(&buf, rows{{"c1", "Cats"}, {"c2", "Dogs"}}, "text", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"ID", "NAME", "c1", "Cats", "Dogs"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestWrite_TextEmptyTable(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := Write(&buf, rows{}, "text", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "(none)" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()
	if err := Write(&bytes.Buffer{}, 1, "edn", false); err == nil {
		t.Fatalf("expected error")
	}
}
