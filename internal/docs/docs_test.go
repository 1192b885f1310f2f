package docs

import (
	"reflect"
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	t.Parallel()
	want := []string{"config", "keys", "protocol"}
	if got := Topics(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Topics() = %v, want %v", got, want)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()
	body, ok := Get(" Protocol ")
	if !ok || !strings.Contains(body, "uploadImage") {
		t.Fatalf("expected protocol topic; ok=%v", ok)
	}
	for _, bad := range []string{"", "nope", "../docs"} {
		if _, ok := Get(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}
