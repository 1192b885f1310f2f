package tui

import "github.com/charmbracelet/bubbles/key"

type galleryKeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Search     key.Binding
	Open       key.Binding
	Copy       key.Binding
	Login      key.Binding
	Reload     key.Binding
	Quit       key.Binding
	Add        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Categories key.Binding
	Sort       key.Binding
}

func defaultKeys() galleryKeyMap {
	return galleryKeyMap{
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextTab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next category")),
		PrevTab:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev category")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "view")),
		Copy:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy prompt")),
		Login:      key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "login")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Categories: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "categories")),
		Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
	}
}

// helpLine renders "key: desc" pairs for the footer.
func helpLine(bindings ...key.Binding) string {
	out := ""
	for i, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		if i > 0 && out != "" {
			out += "  "
		}
		out += h.Key + ": " + h.Desc
	}
	return out
}
