package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"prompt-gallery/internal/mutate"
	"prompt-gallery/internal/view"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeInputs()
		return m, nil

	case loadingMsg:
		wasLoading := m.loading
		m.loading = true
		m.loadingText = msg.text
		if !wasLoading {
			return m, m.spinner.Tick
		}
		return m, nil

	case hideLoadingMsg:
		m.loading = false
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case toastMsg:
		return m, m.showToast(msg.kind, msg.text)

	case toastDoneMsg:
		if msg.seq == m.toastSeq {
			m.toast = toastState{}
		}
		return m, nil

	case snapshotReplacedMsg:
		m.clampCursor()
		m.clampDialogCursors()
		return m, nil

	case opDoneMsg:
		return m.handleOpDone(msg)

	case stagedMsg:
		return m.handleStaged(msg)

	case copiedMsg:
		if msg.err != nil {
			m.log.Warn("copy to clipboard failed", zap.Error(msg.err))
			return m, m.showToast(mutate.ToastError, "Copy failed")
		}
		return m, m.showToast(mutate.ToastSuccess, "Prompt copied")

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and other input-internal messages go to whichever input has focus.
	return m, m.updateFocusedInput(msg)
}

func (m *appModel) showToast(kind mutate.ToastKind, text string) tea.Cmd {
	m.toastSeq++
	m.toast = toastState{kind: kind, text: text}
	return toastExpireCmd(m.toastSeq)
}

func (m appModel) handleOpDone(msg opDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// The coordinator already notified and logged; dialogs stay open for another try.
		return m, nil
	}
	switch msg.op {
	case opSaveItem:
		m.closeModal(view.SurfaceEdit)
	case opAddCategory:
		m.newCategory.Reset()
	case opReorder:
		m.closeModal(view.SurfaceSort)
	}
	m.clampCursor()
	m.clampDialogCursors()
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	// Escape still dismisses dialogs under the loading overlay.
	if msg.String() == "esc" && m.modals.Any() {
		m.closeAllModals()
		return m, nil
	}
	// Everything else waits until the running operation settles.
	if m.loading {
		return m, nil
	}
	if top, ok := m.modals.Top(); ok {
		return m.updateModal(top, msg)
	}
	if m.searching {
		return m.updateSearch(msg)
	}
	return m.updateGallery(msg)
}

func (m appModel) updateGallery(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	g := m.gallery()
	n := len(g.Cards)
	cols := m.columns()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		m.cursor = clamp(m.cursor-1, 0, n-1)
		return m, nil
	case key.Matches(msg, m.keys.Right):
		m.cursor = clamp(m.cursor+1, 0, n-1)
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor+cols < n {
			m.cursor += cols
		}
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		m.cycleCategory(g, 1)
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.cycleCategory(g, -1)
		return m, nil
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Open):
		if card, ok := m.selectedCard(); ok {
			m.openImage(card)
		}
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		if card, ok := m.selectedCard(); ok {
			return m, m.copyCmd(card.Prompt)
		}
		return m, nil
	case key.Matches(msg, m.keys.Login):
		if m.ui.IsAdmin {
			m.ui.Logout()
			return m, m.showToast(mutate.ToastInfo, "Admin mode disabled")
		}
		return m, m.openLogin()
	case key.Matches(msg, m.keys.Reload):
		return m, m.reloadCmd()
	}

	if !m.ui.IsAdmin {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Add):
		return m, m.openEdit(mutate.Draft{})
	case key.Matches(msg, m.keys.Edit):
		card, ok := m.selectedCard()
		if !ok {
			return m, nil
		}
		it, ok := m.store.FindItem(card.ID)
		if !ok {
			return m, nil
		}
		return m, m.openEdit(mutate.DraftFor(it))
	case key.Matches(msg, m.keys.Delete):
		if card, ok := m.selectedCard(); ok {
			m.openConfirm(confirmState{
				action: confirmDeleteItem,
				id:     card.ID,
				title:  "Delete item",
				body:   "Delete this item? This cannot be undone.",
			})
		}
		return m, nil
	case key.Matches(msg, m.keys.Categories):
		return m, m.openCategories()
	case key.Matches(msg, m.keys.Sort):
		m.openSort()
		return m, nil
	}
	return m, nil
}

func (m *appModel) cycleCategory(g view.Gallery, delta int) {
	if len(g.Tabs) == 0 {
		return
	}
	idx := (g.ActiveTab() + delta + len(g.Tabs)) % len(g.Tabs)
	m.ui.SelectCategory(g.Tabs[idx].ID)
	m.cursor = 0
}

func (m appModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.Reset()
		m.ui.SetSearch("")
		fallthrough
	case "enter":
		m.searching = false
		m.search.Blur()
		m.clampCursor()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.ui.SetSearch(m.search.Value())
	m.cursor = 0
	return m, cmd
}

func (m appModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.loading || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	top, ok := m.modals.Top()
	if !ok {
		return m, nil
	}
	box := m.renderModal(top)
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	x0 := (m.width - w) / 2
	y0 := (m.bodyHeight() - h) / 2
	inside := msg.X >= x0 && msg.X < x0+w && msg.Y >= y0 && msg.Y < y0+h
	if inside {
		return m, nil
	}
	if s, ok := m.modals.BackdropClick(); ok {
		m.resetSurface(s)
	}
	return m, nil
}

func (m *appModel) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	top, ok := m.modals.Top()
	switch {
	case !ok && m.searching:
		m.search, cmd = m.search.Update(msg)
	case ok && top == view.SurfaceLogin:
		m.password, cmd = m.password.Update(msg)
	case ok && top == view.SurfaceEdit:
		switch m.editFocus {
		case editFieldPrompt:
			m.prompt, cmd = m.prompt.Update(msg)
		case editFieldImageURL:
			m.imageURL, cmd = m.imageURL.Update(msg)
		case editFieldImageFile:
			m.imageFile, cmd = m.imageFile.Update(msg)
		}
	case ok && top == view.SurfaceCategories && m.catFocus == categoriesFocusInput:
		m.newCategory, cmd = m.newCategory.Update(msg)
	}
	return cmd
}

func (m *appModel) resizeInputs() {
	bodyW := modalBodyWidth(modalWidth(m.width))
	m.prompt.SetWidth(bodyW)
	m.imageURL.Width = bodyW - 1
	m.imageFile.Width = bodyW - 1
	m.password.Width = bodyW - 1
	m.newCategory.Width = bodyW - 1
	if w := m.width - 4; w > 10 && w < 60 {
		m.search.Width = w
	}
}
