package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"prompt-gallery/internal/mutate"
)

type loadingMsg struct{ text string }

type hideLoadingMsg struct{}

type toastMsg struct {
	kind mutate.ToastKind
	text string
}

type toastDoneMsg struct{ seq int }

type snapshotReplacedMsg struct{}

// teaNotifier forwards coordinator notifications into the program's message loop. It is
// called from command goroutines; tea.Program.Send is safe for that.
type teaNotifier struct {
	send func(tea.Msg)
}

func (n *teaNotifier) bind(send func(tea.Msg)) { n.send = send }

func (n *teaNotifier) post(msg tea.Msg) {
	if n == nil || n.send == nil {
		return
	}
	n.send(msg)
}

func (n *teaNotifier) ShowLoading(text string) { n.post(loadingMsg{text: text}) }
func (n *teaNotifier) HideLoading()            { n.post(hideLoadingMsg{}) }
func (n *teaNotifier) Toast(kind mutate.ToastKind, text string) {
	n.post(toastMsg{kind: kind, text: text})
}
func (n *teaNotifier) SnapshotReplaced() { n.post(snapshotReplacedMsg{}) }
