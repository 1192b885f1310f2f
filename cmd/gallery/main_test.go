package main

import (
	"reflect"
	"testing"
)

func TestRewriteEndpointArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"gallery"},
			want: []string{"gallery"},
		},
		{
			name: "url first token",
			in:   []string{"gallery", "https://script.example.com/exec"},
			want: []string{"gallery", "--endpoint", "https://script.example.com/exec"},
		},
		{
			name: "url after value flag",
			in:   []string{"gallery", "--log-file", "/tmp/g.log", "http://127.0.0.1:8787"},
			want: []string{"gallery", "--log-file", "/tmp/g.log", "--endpoint", "http://127.0.0.1:8787"},
		},
		{
			name: "url after equals flag",
			in:   []string{"gallery", "--timeout=5s", "http://127.0.0.1:8787"},
			want: []string{"gallery", "--timeout=5s", "--endpoint", "http://127.0.0.1:8787"},
		},
		{
			name: "url after bool flag",
			in:   []string{"gallery", "--debug", "HTTPS://x.example/exec"},
			want: []string{"gallery", "--debug", "--endpoint", "HTTPS://x.example/exec"},
		},
		{
			name: "url after double dash",
			in:   []string{"gallery", "--", "https://x.example/exec"},
			want: []string{"gallery", "--endpoint", "https://x.example/exec"},
		},
		{
			name: "subcommand not rewritten",
			in:   []string{"gallery", "items", "list"},
			want: []string{"gallery", "items", "list"},
		},
		{
			name: "endpoint flag value not rewritten",
			in:   []string{"gallery", "--endpoint", "https://x.example/exec", "items", "list"},
			want: []string{"gallery", "--endpoint", "https://x.example/exec", "items", "list"},
		},
		{
			name: "non-url positional not rewritten",
			in:   []string{"gallery", "wat"},
			want: []string{"gallery", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteEndpointArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteEndpointArgs(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
