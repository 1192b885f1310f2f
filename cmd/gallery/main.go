package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"prompt-gallery/internal/cli"
)

func isEndpointURL(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func rewriteEndpointArgs(argv []string) []string {
	// Convenience: `gallery <url>` works like `gallery --endpoint <url>`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv before parsing.
	// Persistent flags may come first (e.g. `gallery --debug <url>`), so we look for the first
	// positional token, not just argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--config":   true,
		"--endpoint": true,
		"--timeout":  true,
		"--format":   true,
		"--log-file": true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isEndpointURL(argv[i+1]) {
				out := make([]string, 0, len(argv))
				out = append(out, argv[:i]...)
				out = append(out, "--endpoint", argv[i+1])
				out = append(out, argv[i+2:]...)
				return out
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++ // skip value if present
			}
			continue
		}

		// First positional token.
		if isEndpointURL(a) {
			out := make([]string, 0, len(argv)+1)
			out = append(out, argv[:i]...)
			out = append(out, "--endpoint", a)
			out = append(out, argv[i+1:]...)
			return out
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteEndpointArgs(os.Args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, os.Args[1:]); err != nil {
		stop()
		os.Exit(1)
	}
}
