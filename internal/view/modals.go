package view

type Surface int

const (
	SurfaceLogin Surface = iota
	SurfaceEdit
	SurfaceImage
	SurfaceCategories
	SurfaceSort
	SurfaceConfirm
)

func (s Surface) String() string {
	switch s {
	case SurfaceLogin:
		return "login"
	case SurfaceEdit:
		return "edit"
	case SurfaceImage:
		return "image"
	case SurfaceCategories:
		return "categories"
	case SurfaceSort:
		return "sort"
	case SurfaceConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// Modals tracks which dialog surfaces are open. Each surface is independently closed or
// open; opening an already open surface moves it to the top. The zero value has every
// surface closed.
type Modals struct {
	stack []Surface
}

func (m *Modals) Open(s Surface) {
	m.Close(s)
	m.stack = append(m.stack, s)
}

// Close closes s. It reports whether s was open.
func (m *Modals) Close(s Surface) bool {
	for i, open := range m.stack {
		if open == s {
			m.stack = append(m.stack[:i], m.stack[i+1:]...)
			return true
		}
	}
	return false
}

// CloseAll closes every open surface (the global Escape key).
func (m *Modals) CloseAll() {
	m.stack = m.stack[:0]
}

func (m Modals) IsOpen(s Surface) bool {
	for _, open := range m.stack {
		if open == s {
			return true
		}
	}
	return false
}

// Top returns the most recently opened surface still open.
func (m Modals) Top() (Surface, bool) {
	if len(m.stack) == 0 {
		return 0, false
	}
	return m.stack[len(m.stack)-1], true
}

func (m Modals) Any() bool { return len(m.stack) > 0 }

// BackdropClick closes the top-most surface, returning it.
func (m *Modals) BackdropClick() (Surface, bool) {
	top, ok := m.Top()
	if !ok {
		return 0, false
	}
	m.Close(top)
	return top, true
}
