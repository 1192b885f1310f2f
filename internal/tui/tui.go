// Package tui is the interactive terminal gallery.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"prompt-gallery/internal/mutate"
	"prompt-gallery/internal/store"
)

type Options struct {
	// Endpoint is shown in the header only.
	Endpoint string
	// AdminSecret is the shared password that enables admin mode. Empty disables admin mode.
	AdminSecret string
	Log         *zap.Logger
}

// Run starts the full-screen gallery against remote and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, remote mutate.Remote, opts Options) error {
	applyThemePreference()
	applyColorProfilePreference()

	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	notify := &teaNotifier{}
	coord := mutate.New(remote, store.New(), notify, mutate.WithLogger(log))

	m := newAppModel(ctx, coord, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	// Bound before Run so the initial reload can already report progress.
	notify.bind(p.Send)
	_, err := p.Run()
	return err
}
