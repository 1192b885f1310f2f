package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"prompt-gallery/internal/intake"
	"prompt-gallery/internal/model"
	"prompt-gallery/internal/mutate"
	"prompt-gallery/internal/view"
)

func (m *appModel) openLogin() tea.Cmd {
	m.password.Reset()
	m.loginErr = false
	m.modals.Open(view.SurfaceLogin)
	return m.password.Focus()
}

func (m *appModel) openEdit(d mutate.Draft) tea.Cmd {
	m.draft = d
	m.prompt.SetValue(d.Prompt)
	m.imageURL.SetValue(d.ImageURL)
	m.imageFile.Reset()
	m.catCursor = 0
	m.staging = false
	m.stageErr = ""
	m.stageSeq++
	m.modals.Open(view.SurfaceEdit)
	return m.focusEditField(editFieldPrompt)
}

func (m *appModel) openImage(card view.Card) {
	m.imageItem = model.Item{ID: card.ID, Prompt: card.Prompt, ImageURL: card.ImageURL}
	m.modals.Open(view.SurfaceImage)
}

func (m *appModel) openCategories() tea.Cmd {
	m.newCategory.Reset()
	m.catFocus = categoriesFocusInput
	m.catListIdx = 0
	m.modals.Open(view.SurfaceCategories)
	return m.newCategory.Focus()
}

func (m *appModel) openSort() {
	m.sortList = view.NewSortList(m.store.Snapshot().Items)
	m.sortCursor = 0
	m.modals.Open(view.SurfaceSort)
}

func (m *appModel) openConfirm(c confirmState) {
	c.focus = confirmFocusConfirm
	m.confirm = c
	m.modals.Open(view.SurfaceConfirm)
}

func (m *appModel) closeModal(s view.Surface) {
	m.modals.Close(s)
	m.resetSurface(s)
}

func (m *appModel) closeAllModals() {
	for _, s := range []view.Surface{
		view.SurfaceLogin, view.SurfaceEdit, view.SurfaceImage,
		view.SurfaceCategories, view.SurfaceSort, view.SurfaceConfirm,
	} {
		m.resetSurface(s)
	}
	m.modals.CloseAll()
}

// resetSurface clears the transient state of a dialog that has just been closed.
func (m *appModel) resetSurface(s view.Surface) {
	switch s {
	case view.SurfaceLogin:
		m.password.Reset()
		m.password.Blur()
		m.loginErr = false
	case view.SurfaceEdit:
		m.draft = mutate.Draft{}
		m.prompt.Reset()
		m.imageURL.Reset()
		m.imageFile.Reset()
		m.blurEditInputs()
		m.staging = false
		m.stageErr = ""
		// Invalidate any file read still in flight.
		m.stageSeq++
	case view.SurfaceImage:
		m.imageItem = model.Item{}
	case view.SurfaceCategories:
		m.newCategory.Reset()
		m.newCategory.Blur()
	case view.SurfaceSort:
		m.sortList = view.SortList{}
		m.sortCursor = 0
	case view.SurfaceConfirm:
		m.confirm = confirmState{}
	}
}

func (m *appModel) clampDialogCursors() {
	m.catCursor = clamp(m.catCursor, 0, len(m.snapshotCategories())-1)
	m.catListIdx = clamp(m.catListIdx, 0, len(m.snapshotCategories())-1)
	m.sortCursor = clamp(m.sortCursor, 0, m.sortList.Len()-1)
}

func (m appModel) updateModal(top view.Surface, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch top {
	case view.SurfaceLogin:
		return m.updateLogin(msg)
	case view.SurfaceEdit:
		return m.updateEdit(msg)
	case view.SurfaceImage:
		return m.updateImage(msg)
	case view.SurfaceCategories:
		return m.updateCategories(msg)
	case view.SurfaceSort:
		return m.updateSort(msg)
	case view.SurfaceConfirm:
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m appModel) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		if m.ui.Login(m.password.Value(), m.opts.AdminSecret) {
			m.closeModal(view.SurfaceLogin)
			m.clampCursor()
			return m, m.showToast(mutate.ToastSuccess, "Admin mode enabled")
		}
		m.loginErr = true
		m.password.Reset()
		return m, m.password.Focus()
	}
	var cmd tea.Cmd
	m.password, cmd = m.password.Update(msg)
	return m, cmd
}

func (m appModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		if m.staging {
			return m, m.showToast(mutate.ToastWarning, "Image is still loading")
		}
		m.syncDraft()
		return m, m.saveDraftCmd(m.draft)
	case "tab":
		return m, m.focusEditField((m.editFocus + 1) % editFieldCount)
	case "shift+tab":
		return m, m.focusEditField((m.editFocus + editFieldCount - 1) % editFieldCount)
	case "ctrl+x":
		m.draft.ClearImage()
		m.imageURL.Reset()
		m.imageFile.Reset()
		m.stageErr = ""
		m.stageSeq++
		m.staging = false
		return m, nil
	}

	var cmd tea.Cmd
	switch m.editFocus {
	case editFieldPrompt:
		m.prompt, cmd = m.prompt.Update(msg)
	case editFieldImageURL:
		if msg.String() == "enter" {
			return m, m.focusEditField(editFieldImageFile)
		}
		m.imageURL, cmd = m.imageURL.Update(msg)
	case editFieldImageFile:
		if msg.String() == "enter" {
			return m, m.stageFromInput()
		}
		m.imageFile, cmd = m.imageFile.Update(msg)
		// Dropping a file onto the terminal pastes its path.
		if msg.Paste {
			return m, tea.Batch(cmd, m.stageFromInput())
		}
	case editFieldCategories:
		cats := m.snapshotCategories()
		switch msg.String() {
		case "up", "k":
			m.catCursor = clamp(m.catCursor-1, 0, len(cats)-1)
		case "down", "j":
			m.catCursor = clamp(m.catCursor+1, 0, len(cats)-1)
		case " ", "enter", "x":
			if m.catCursor >= 0 && m.catCursor < len(cats) {
				m.draft.ToggleCategory(cats[m.catCursor].ID)
			}
		}
	}
	return m, cmd
}

func (m *appModel) stageFromInput() tea.Cmd {
	path := intake.NormalizeDroppedPath(m.imageFile.Value())
	if path == "" {
		return nil
	}
	m.stageSeq++
	m.staging = true
	m.stageErr = ""
	return m.stageCmd(m.stageSeq, path)
}

func (m appModel) handleStaged(msg stagedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.stageSeq || !m.modals.IsOpen(view.SurfaceEdit) {
		return m, nil
	}
	m.staging = false
	if msg.err != nil {
		if errors.Is(msg.err, intake.ErrNotImage) {
			m.stageErr = "Not an image file"
			return m, m.showToast(mutate.ToastWarning, "Please choose an image file")
		}
		m.stageErr = msg.err.Error()
		m.log.Warn("stage image failed", zap.Error(msg.err))
		return m, nil
	}
	m.draft.Stage(msg.staged)
	m.imageFile.Reset()
	m.stageErr = ""
	return m, nil
}

func (m appModel) updateImage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "c":
		return m, m.copyCmd(m.imageItem.Prompt)
	case "enter", "q":
		m.closeModal(view.SurfaceImage)
	}
	return m, nil
}

func (m appModel) updateCategories(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cats := m.snapshotCategories()
	if msg.String() == "tab" || msg.String() == "shift+tab" {
		if m.catFocus == categoriesFocusInput {
			m.catFocus = categoriesFocusList
			m.newCategory.Blur()
			return m, nil
		}
		m.catFocus = categoriesFocusInput
		return m, m.newCategory.Focus()
	}

	if m.catFocus == categoriesFocusInput {
		if msg.String() == "enter" {
			return m, m.addCategoryCmd(strings.TrimSpace(m.newCategory.Value()))
		}
		var cmd tea.Cmd
		m.newCategory, cmd = m.newCategory.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "up", "k":
		m.catListIdx = clamp(m.catListIdx-1, 0, len(cats)-1)
	case "down", "j":
		m.catListIdx = clamp(m.catListIdx+1, 0, len(cats)-1)
	case "d", "x", "delete":
		if m.catListIdx >= 0 && m.catListIdx < len(cats) {
			c := cats[m.catListIdx]
			m.openConfirm(confirmState{
				action: confirmDeleteCategory,
				id:     c.ID,
				title:  "Delete category",
				body:   "Delete category \"" + c.Name + "\"? Items keep their other categories.",
			})
		}
	}
	return m, nil
}

func (m appModel) updateSort(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.sortCursor = clamp(m.sortCursor-1, 0, m.sortList.Len()-1)
	case "down", "j":
		m.sortCursor = clamp(m.sortCursor+1, 0, m.sortList.Len()-1)
	case "shift+up", "K":
		m.sortCursor = m.sortList.Move(m.sortCursor, -1)
	case "shift+down", "J":
		m.sortCursor = m.sortList.Move(m.sortCursor, 1)
	case "enter", "ctrl+s":
		return m, m.reorderCmd(m.sortList.Items())
	}
	return m, nil
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		if m.confirm.focus == confirmFocusConfirm {
			m.confirm.focus = confirmFocusCancel
		} else {
			m.confirm.focus = confirmFocusConfirm
		}
		return m, nil
	case "n":
		m.closeModal(view.SurfaceConfirm)
		return m, nil
	case "y":
		return m.confirmAccepted()
	case "enter":
		if m.confirm.focus == confirmFocusConfirm {
			return m.confirmAccepted()
		}
		m.closeModal(view.SurfaceConfirm)
		return m, nil
	}
	return m, nil
}

func (m appModel) confirmAccepted() (tea.Model, tea.Cmd) {
	c := m.confirm
	m.closeModal(view.SurfaceConfirm)
	switch c.action {
	case confirmDeleteItem:
		return m, m.deleteItemCmd(c.id)
	case confirmDeleteCategory:
		return m, m.deleteCategoryCmd(c.id)
	}
	return m, nil
}
