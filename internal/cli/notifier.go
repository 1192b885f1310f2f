package cli

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"prompt-gallery/internal/mutate"
)

// stderrNotifier renders coordinator notifications as plain lines on stderr so stdout
// stays machine-readable.
type stderrNotifier struct {
	mu  sync.Mutex
	w   io.Writer
	log *zap.Logger
}

func newStderrNotifier(w io.Writer, log *zap.Logger) *stderrNotifier {
	return &stderrNotifier{w: w, log: log}
}

func (n *stderrNotifier) ShowLoading(text string) {
	n.log.Debug("loading", zap.String("text", text))
}

func (n *stderrNotifier) HideLoading() {}

func (n *stderrNotifier) Toast(kind mutate.ToastKind, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "%s: %s\n", kind, text)
}

func (n *stderrNotifier) SnapshotReplaced() {}
