package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"prompt-gallery/internal/intake"
	"prompt-gallery/internal/model"
	"prompt-gallery/internal/mutate"
)

type opKind int

const (
	opReload opKind = iota
	opSaveItem
	opDeleteItem
	opAddCategory
	opDeleteCategory
	opReorder
)

// opDoneMsg reports a finished coordinator call. Notifications were already delivered
// through the notifier; the message only lets dialogs decide whether to close.
type opDoneMsg struct {
	op  opKind
	err error
}

type stagedMsg struct {
	seq    int
	staged intake.Staged
	err    error
}

type copiedMsg struct{ err error }

func (m appModel) reloadCmd() tea.Cmd {
	coord, ctx := m.coord, m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: opReload, err: coord.Reload(ctx)}
	}
}

func (m appModel) saveDraftCmd(d mutate.Draft) tea.Cmd {
	coord, ctx := m.coord, m.ctx
	return func() tea.Msg {
		_, err := coord.SaveDraft(ctx, d)
		return opDoneMsg{op: opSaveItem, err: err}
	}
}

func (m appModel) deleteItemCmd(id model.ID) tea.Cmd {
	coord, ctx := m.coord, m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: opDeleteItem, err: coord.DeleteItem(ctx, id)}
	}
}

func (m appModel) addCategoryCmd(name string) tea.Cmd {
	coord, ctx := m.coord, m.ctx
	return func() tea.Msg {
		_, err := coord.AddCategory(ctx, name)
		return opDoneMsg{op: opAddCategory, err: err}
	}
}

func (m appModel) deleteCategoryCmd(id model.ID) tea.Cmd {
	coord, ctx := m.coord, m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: opDeleteCategory, err: coord.DeleteCategory(ctx, id)}
	}
}

func (m appModel) reorderCmd(items []model.Item) tea.Cmd {
	coord, ctx := m.coord, m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: opReorder, err: coord.Reorder(ctx, items)}
	}
}

func (m appModel) stageCmd(seq int, path string) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		st, err := intake.Stage(ctx, path)
		return stagedMsg{seq: seq, staged: st, err: err}
	}
}

func (m appModel) copyCmd(text string) tea.Cmd {
	write := m.clipboard
	return func() tea.Msg {
		return copiedMsg{err: write(text)}
	}
}

func toastExpireCmd(seq int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg { return toastDoneMsg{seq: seq} })
}
