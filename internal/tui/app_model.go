package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"prompt-gallery/internal/model"
	"prompt-gallery/internal/mutate"
	"prompt-gallery/internal/store"
	"prompt-gallery/internal/view"
)

const (
	cardWidth     = 34
	cardGap       = 1
	toastDuration = 3 * time.Second
)

type editField int

const (
	editFieldPrompt editField = iota
	editFieldImageURL
	editFieldImageFile
	editFieldCategories
	editFieldCount
)

type categoriesFocus int

const (
	categoriesFocusInput categoriesFocus = iota
	categoriesFocusList
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

type confirmAction int

const (
	confirmDeleteItem confirmAction = iota
	confirmDeleteCategory
)

type confirmState struct {
	action confirmAction
	id     model.ID
	title  string
	body   string
	focus  confirmModalFocus
}

type toastState struct {
	kind mutate.ToastKind
	text string
}

type appModel struct {
	ctx    context.Context
	coord  *mutate.Coordinator
	store  *store.Store
	ui     store.UIState
	modals view.Modals
	keys   galleryKeyMap
	opts   Options
	log    *zap.Logger

	width  int
	height int
	cursor int

	searching bool
	search    textinput.Model

	loading     bool
	loadingText string
	spinner     spinner.Model

	toast    toastState
	toastSeq int

	password textinput.Model
	loginErr bool

	draft       mutate.Draft
	editFocus   editField
	prompt      textarea.Model
	imageURL    textinput.Model
	imageFile   textinput.Model
	catCursor   int
	stageSeq    int
	staging     bool
	stageErr    string
	editErr     string
	imageItem   model.Item
	newCategory textinput.Model
	catFocus    categoriesFocus
	catListIdx  int
	sortList    view.SortList
	sortCursor  int
	confirm     confirmState

	markdown  *markdownCache
	clipboard func(string) error
}

func newAppModel(ctx context.Context, coord *mutate.Coordinator, opts Options) appModel {
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	m := appModel{
		ctx:         ctx,
		coord:       coord,
		store:       coord.Store(),
		ui:          store.NewUIState(),
		keys:        defaultKeys(),
		opts:        opts,
		log:         log,
		loading:     true,
		loadingText: "Loading data…",
		markdown:    newMarkdownCache(),
		clipboard:   copyToClipboard,
	}

	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))

	m.search = textinput.New()
	m.search.Prompt = "/ "
	m.search.Placeholder = "Search prompts"
	m.search.CharLimit = 200
	m.search.Width = 40

	m.password = textinput.New()
	m.password.Prompt = ""
	m.password.Placeholder = "Admin password"
	m.password.EchoMode = textinput.EchoPassword
	m.password.EchoCharacter = '•'
	m.password.CharLimit = 256
	m.password.Width = 40

	m.prompt = textarea.New()
	m.prompt.Placeholder = "Prompt (markdown)"
	m.prompt.CharLimit = 0
	m.prompt.ShowLineNumbers = false
	m.prompt.SetWidth(60)
	m.prompt.SetHeight(6)

	m.imageURL = textinput.New()
	m.imageURL.Prompt = ""
	m.imageURL.Placeholder = "https://…"
	m.imageURL.CharLimit = 2048
	m.imageURL.Width = 56

	m.imageFile = textinput.New()
	m.imageFile.Prompt = ""
	m.imageFile.Placeholder = "Type or drop an image path, then enter"
	m.imageFile.CharLimit = 4096
	m.imageFile.Width = 56

	m.newCategory = textinput.New()
	m.newCategory.Prompt = ""
	m.newCategory.Placeholder = "New category name"
	m.newCategory.CharLimit = 120
	m.newCategory.Width = 40

	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.reloadCmd())
}

// gallery rebuilds the view model from the current state. It is pure, so it is simply
// recomputed wherever it is needed.
func (m appModel) gallery() view.Gallery {
	return view.BuildGallery(m.store.Snapshot(), m.ui)
}

func (m appModel) columns() int {
	w := m.width
	if w <= 0 {
		w = 80
	}
	cols := (w + cardGap) / (cardWidth + cardGap)
	if cols < 1 {
		cols = 1
	}
	return cols
}

func (m appModel) selectedCard() (view.Card, bool) {
	g := m.gallery()
	if m.cursor < 0 || m.cursor >= len(g.Cards) {
		return view.Card{}, false
	}
	return g.Cards[m.cursor], true
}

func (m *appModel) clampCursor() {
	n := len(m.gallery().Cards)
	m.cursor = clamp(m.cursor, 0, n-1)
}

func (m appModel) snapshotCategories() []model.Category {
	return m.store.Snapshot().Categories
}

func (m *appModel) blurEditInputs() {
	m.prompt.Blur()
	m.imageURL.Blur()
	m.imageFile.Blur()
}

func (m *appModel) focusEditField(f editField) tea.Cmd {
	m.editFocus = f
	m.blurEditInputs()
	switch f {
	case editFieldPrompt:
		return m.prompt.Focus()
	case editFieldImageURL:
		return m.imageURL.Focus()
	case editFieldImageFile:
		return m.imageFile.Focus()
	}
	return nil
}

// syncDraft copies the edit inputs into the draft.
func (m *appModel) syncDraft() {
	m.draft.Prompt = m.prompt.Value()
	m.draft.ImageURL = strings.TrimSpace(m.imageURL.Value())
}
