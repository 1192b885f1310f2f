package tui

import (
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"prompt-gallery/internal/view"
)

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	var body string
	switch top, ok := m.modals.Top(); {
	case m.loading:
		body = m.viewLoading()
	case ok:
		body = lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, m.renderModal(top))
	default:
		body = m.viewGallery(m.gallery())
	}
	return normalizePane(body, m.width, m.bodyHeight()) + "\n" + m.viewFooter()
}

// bodyHeight is the screen height minus the footer line.
func (m appModel) bodyHeight() int {
	if m.height < 2 {
		return 1
	}
	return m.height - 1
}

func (m appModel) viewLoading() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 3).
		Render(m.spinner.View() + " " + m.loadingText)
	return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, box)
}

func (m appModel) viewFooter() string {
	if m.toast.text != "" {
		st := lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(colorAccentFg).
			Background(toastColor(m.toast.kind))
		return truncate(st.Render(m.toast.text), m.width)
	}
	var help string
	if top, ok := m.modals.Top(); ok {
		help = "esc: close " + top.String()
	} else if m.searching {
		help = "enter: done  esc: clear search"
	} else {
		k := m.keys
		help = helpLine(k.Left, k.Right, k.NextTab, k.Search, k.Open, k.Copy, k.Login, k.Reload, k.Quit)
	}
	return styleMuted().Render(truncate(help, m.width))
}

func (m appModel) viewGallery(g view.Gallery) string {
	lines := []string{m.viewHeader(g), m.viewTabs(g), m.viewSearch(g)}
	if g.AdminToolbar {
		k := m.keys
		toolbar := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("Admin") + "  " +
			styleMuted().Render(helpLine(k.Add, k.Edit, k.Delete, k.Categories, k.Sort))
		lines = append(lines, toolbar)
	}
	lines = append(lines, "")

	gridH := m.bodyHeight() - len(lines)
	if g.Empty {
		text := view.EmptyText
		if !m.store.Loaded() {
			text = notLoadedText
		}
		empty := styleMuted().Render(text)
		lines = append(lines, lipgloss.Place(m.width, max(gridH, 1), lipgloss.Center, lipgloss.Center, empty))
	} else {
		lines = append(lines, m.viewGrid(g.Cards, gridH))
	}
	return strings.Join(lines, "\n")
}

func (m appModel) viewHeader(g view.Gallery) string {
	title := lipgloss.NewStyle().Bold(true).Render("Prompt Gallery")
	auth := "L: " + g.AuthLabel
	if g.AdminToolbar {
		auth = lipgloss.NewStyle().Foreground(colorToastSuccess).Render("● admin") + "  " + auth
	}
	left := title
	if host := endpointHost(m.opts.Endpoint); host != "" {
		left += "  " + styleMuted().Render(host)
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(auth)
	if gap < 1 {
		return truncate(left, m.width)
	}
	return left + strings.Repeat(" ", gap) + auth
}

func (m appModel) viewTabs(g view.Gallery) string {
	active := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(colorAccentFg).Background(colorAccent)
	inactive := lipgloss.NewStyle().Padding(0, 1).Foreground(colorSurfaceFg)
	parts := make([]string, 0, len(g.Tabs))
	for _, t := range g.Tabs {
		if t.Active {
			parts = append(parts, active.Render(t.Label))
		} else {
			parts = append(parts, inactive.Render(t.Label))
		}
	}
	return truncate(strings.Join(parts, " "), m.width)
}

func (m appModel) viewSearch(g view.Gallery) string {
	if m.searching {
		return m.search.View()
	}
	if g.Query != "" {
		return "/ " + g.Query + "  " + styleMuted().Render("(/ to edit)")
	}
	return styleMuted().Render("/ search")
}

func (m appModel) viewGrid(cards []view.Card, height int) string {
	cols := m.columns()
	cardH := cardHeight(cards)
	rowsFit := max(height/(cardH+cardGap), 1)
	row := m.cursor / cols
	start := 0
	if row >= rowsFit {
		start = row - rowsFit + 1
	}

	var rows []string
	for r := start; r < start+rowsFit; r++ {
		from := r * cols
		if from >= len(cards) {
			break
		}
		to := min(from+cols, len(cards))
		rendered := make([]string, 0, 2*(to-from))
		for i := from; i < to; i++ {
			if i > from {
				rendered = append(rendered, strings.Repeat(" ", cardGap))
			}
			rendered = append(rendered, renderCard(cards[i], i == m.cursor, cardH))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return strings.Join(rows, strings.Repeat("\n", cardGap+1))
}

const cardPromptLines = 3

const notLoadedText = "Gallery not loaded yet (r to reload)"

func cardHeight(cards []view.Card) int {
	h := cardPromptLines + 2 // image, labels
	for _, c := range cards {
		if c.Editable {
			return h + 1
		}
	}
	return h
}

func renderCard(c view.Card, selected bool, contentH int) string {
	inner := cardWidth - 4

	lines := wrapLines(c.Prompt, inner, cardPromptLines)
	for len(lines) < cardPromptLines {
		lines = append(lines, "")
	}

	img := styleMuted().Render("no image")
	if c.ImageURL != "" {
		img = "▣ " + styleMuted().Render(shortURL(c.ImageURL))
	}
	lines = append(lines, img)

	badges := make([]string, 0, len(c.Labels))
	for _, l := range c.Labels {
		badges = append(badges, styleBadge().Render(l))
	}
	lines = append(lines, strings.Join(badges, " "))

	if c.Editable {
		lines = append(lines, styleMuted().Render("e edit · d delete"))
	}

	st := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder).
		Padding(0, 1)
	if selected {
		st = st.BorderForeground(colorSelectedBorder).Bold(true)
	}
	return st.Render(normalizePane(strings.Join(lines, "\n"), inner, contentH))
}

func shortURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	name := u.Path
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return u.Host
	}
	return u.Host + "/…/" + name
}

func endpointHost(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return u.Host
}
