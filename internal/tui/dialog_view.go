package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"prompt-gallery/internal/intake"
	"prompt-gallery/internal/model"
	"prompt-gallery/internal/view"
)

func modalWidth(screenW int) int {
	if screenW <= 0 {
		screenW = 80
	}
	if screenW < 44 {
		return max(screenW-2, 20)
	}
	return clamp(screenW-8, 40, 84)
}

// modalBodyWidth is the usable content width inside a modal of the given outer width
// (rounded border plus one column of padding on each side).
func modalBodyWidth(width int) int {
	return max(width-4, 10)
}

func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)
	header := lipgloss.NewStyle().Bold(true).Width(bodyW).Render(title)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1).
		Width(width - 2).
		Render(header + "\n\n" + content)
}

func (m appModel) renderModal(s view.Surface) string {
	w := modalWidth(m.width)
	switch s {
	case view.SurfaceLogin:
		return m.renderLogin(w)
	case view.SurfaceEdit:
		return m.renderEdit(w)
	case view.SurfaceImage:
		return m.renderImage(w)
	case view.SurfaceCategories:
		return m.renderCategories(w)
	case view.SurfaceSort:
		return m.renderSort(w)
	case view.SurfaceConfirm:
		return renderConfirmModal(w, m.confirm.title, m.confirm.body, "Delete", "Cancel", m.confirm.focus)
	}
	return ""
}

func fieldLabel(text string, focused bool) string {
	st := lipgloss.NewStyle().Bold(true)
	if focused {
		st = st.Foreground(colorAccent)
		text = "› " + text
	} else {
		text = "  " + text
	}
	return st.Render(text)
}

func errorLine(text string) string {
	return lipgloss.NewStyle().Foreground(colorToastError).Render(text)
}

func (m appModel) renderLogin(w int) string {
	lines := []string{
		"Enter the admin password to manage the gallery.",
		"",
		m.password.View(),
	}
	if m.loginErr {
		lines = append(lines, errorLine("Incorrect password"))
	}
	lines = append(lines, "", styleMuted().Render("enter: login   esc: cancel"))
	return renderModalBox(w, "Admin login", strings.Join(lines, "\n"))
}

func (m appModel) renderEdit(w int) string {
	bodyW := modalBodyWidth(w)
	title := "Add item"
	if m.draft.IsEdit() {
		title = "Edit item"
	}

	lines := []string{
		fieldLabel("Prompt", m.editFocus == editFieldPrompt),
		m.prompt.View(),
		"",
		fieldLabel("Image URL", m.editFocus == editFieldImageURL),
		m.imageURL.View(),
		fieldLabel("Image file", m.editFocus == editFieldImageFile),
		m.imageFile.View(),
		m.imagePreviewLine(bodyW),
		"",
		fieldLabel("Categories", m.editFocus == editFieldCategories),
	}

	cats := m.snapshotCategories()
	if len(cats) == 0 {
		lines = append(lines, styleMuted().Render("  No categories yet"))
	}
	for i, c := range cats {
		box := "[ ]"
		if m.draft.HasCategory(c.ID) {
			box = "[x]"
		}
		line := "  " + box + " " + c.Name
		if m.editFocus == editFieldCategories && i == m.catCursor {
			line = lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Render(line)
		}
		lines = append(lines, truncate(line, bodyW))
	}

	lines = append(lines, "", styleMuted().Width(bodyW).Render(
		"tab: next field   space: toggle category   ctrl+x: remove image   ctrl+s: save   esc: cancel"))
	return renderModalBox(w, title, strings.Join(lines, "\n"))
}

func (m appModel) imagePreviewLine(width int) string {
	switch {
	case m.staging:
		return styleMuted().Render("  Reading image…")
	case m.stageErr != "":
		return errorLine(truncate("  "+m.stageErr, width))
	case m.draft.Staged != nil:
		return truncate("  "+stagedSummary(*m.draft.Staged), width)
	case strings.TrimSpace(m.imageURL.Value()) != "":
		return styleMuted().Render(truncate("  Current: "+shortURL(strings.TrimSpace(m.imageURL.Value())), width))
	default:
		return styleMuted().Render("  No image")
	}
}

func stagedSummary(s intake.Staged) string {
	parts := []string{"Staged " + s.Name, s.MIME, humanize.Bytes(uint64(s.Size))}
	if s.Width > 0 && s.Height > 0 {
		parts = append(parts, fmt.Sprintf("%d×%d", s.Width, s.Height))
	}
	return strings.Join(parts, " · ")
}

func (m appModel) renderImage(w int) string {
	bodyW := modalBodyWidth(w)
	it := m.imageItem

	var lines []string
	if it.ImageURL != "" {
		lines = append(lines, "▣ "+truncate(it.ImageURL, bodyW-2))
	} else {
		lines = append(lines, styleMuted().Render("No image"))
	}
	if labels := m.itemLabels(it.ID); len(labels) > 0 {
		badges := make([]string, 0, len(labels))
		for _, l := range labels {
			badges = append(badges, styleBadge().Render(l))
		}
		lines = append(lines, truncate(strings.Join(badges, " "), bodyW))
	}
	lines = append(lines, "")

	prompt := m.markdown.render(it.Prompt, bodyW)
	promptLines := strings.Split(prompt, "\n")
	maxLines := max(m.bodyHeight()-12, 3)
	if len(promptLines) > maxLines {
		promptLines = append(promptLines[:maxLines-1], styleMuted().Render("…"))
	}
	lines = append(lines, promptLines...)
	lines = append(lines, "", styleMuted().Render("c: copy prompt   esc: close"))
	return renderModalBox(w, "Prompt", strings.Join(lines, "\n"))
}

func (m appModel) itemLabels(id model.ID) []string {
	snap := m.store.Snapshot()
	for _, it := range snap.Items {
		if it.ID == id {
			return view.CategoryLabels(it.Categories, snap.Categories)
		}
	}
	return nil
}

func (m appModel) renderCategories(w int) string {
	bodyW := modalBodyWidth(w)
	lines := []string{
		fieldLabel("New category", m.catFocus == categoriesFocusInput),
		m.newCategory.View(),
		"",
		fieldLabel("Categories", m.catFocus == categoriesFocusList),
	}
	cats := m.snapshotCategories()
	if len(cats) == 0 {
		lines = append(lines, styleMuted().Render("  No categories yet"))
	}
	for i, c := range cats {
		line := "  " + c.Name
		if m.catFocus == categoriesFocusList && i == m.catListIdx {
			line = lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Render(line)
		}
		lines = append(lines, truncate(line, bodyW))
	}
	lines = append(lines, "", styleMuted().Width(bodyW).Render(
		"tab: switch focus   enter: add   d: delete selected   esc: close"))
	return renderModalBox(w, "Manage categories", strings.Join(lines, "\n"))
}

func (m appModel) renderSort(w int) string {
	bodyW := modalBodyWidth(w)
	items := m.sortList.Items()

	visible := max(m.bodyHeight()-10, 3)
	start := 0
	if m.sortCursor >= visible {
		start = m.sortCursor - visible + 1
	}
	end := min(start+visible, len(items))

	var lines []string
	if len(items) == 0 {
		lines = append(lines, styleMuted().Render("Nothing to sort"))
	}
	for i := start; i < end; i++ {
		line := fmt.Sprintf("%3d. %s", i+1, strings.Join(strings.Fields(items[i].Prompt), " "))
		line = truncate(line, bodyW)
		if i == m.sortCursor {
			line = lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", m.sortHint(bodyW))
	return renderModalBox(w, "Sort items", strings.Join(lines, "\n"))
}

// sortHint dims the move keys that would do nothing at the list edges.
func (m appModel) sortHint(w int) string {
	moveKey := func(label string, delta int) string {
		if m.sortList.CanMove(m.sortCursor, delta) {
			return label
		}
		return lipgloss.NewStyle().Foreground(colorDisabled).Render(label)
	}
	hint := "↑/↓: select   " + moveKey("K", -1) + "/" + moveKey("J", 1) +
		" or shift+↑/↓: move   enter: save order   esc: cancel"
	return styleMuted().Width(w).Render(hint)
}

func renderConfirmModal(width int, title string, body string, confirmLabel string, cancelLabel string, focus confirmModalFocus) string {
	// No borders on the buttons: nested bordered components inside a modal render
	// background artifacts on some terminals.
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	}
	if focus == confirmFocusCancel {
		cancel = btnActive.Render(cancelLabel)
	}
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, " ", cancel)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   y/n   esc: cancel")

	content := strings.Join([]string{
		lipgloss.NewStyle().Width(bodyW).Render(body),
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}
