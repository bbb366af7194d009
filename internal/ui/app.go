package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/five82/bookshelf/internal/booksapi"
	"github.com/five82/bookshelf/internal/prefs"
	"github.com/five82/bookshelf/internal/state"
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *state.Controller
	ThemeName  string
	// Prefs persists theme changes; nil disables saving.
	Prefs  *prefs.Store
	Logger *zerolog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx   context.Context
	ctrl  *state.Controller
	prefs *prefs.Store
	log   zerolog.Logger
	keys  keyMap

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	selected int
	showHelp bool
	spinner  spinner.Model
	form     *bookForm

	view state.View
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme
	}
	theme := GetTheme(themeName)

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "ui").Logger()
	}

	spin := spinner.New()
	spin.Spinner = spinner.Spinner{Frames: spinner.Dot.Frames, FPS: spinnerInterval}
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	return Model{
		ctx:     ctx,
		ctrl:    opts.Controller,
		prefs:   opts.Prefs,
		log:     log,
		keys:    DefaultKeyMap(),
		theme:   theme,
		spinner: spin,
		view:    state.NewView(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return state.Mount{} },
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Everything else belongs to the controller: mount and client results.
	return m.dispatch(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.form != nil {
		return m.place(m.form.view(m.theme))
	}
	return m.renderMain()
}

// dispatch runs one event through the controller and brings the local UI
// state (form, selection) in line with the resulting view.
func (m Model) dispatch(msg tea.Msg) (Model, tea.Cmd) {
	if m.ctrl == nil {
		return m, nil
	}
	prevForm := m.view.Form
	var cmd tea.Cmd
	m.view, cmd = m.ctrl.Update(m.view, msg)

	switch {
	case !m.view.FormOpen():
		m.form = nil
	case prevForm != m.view.Form || m.form == nil:
		form := newBookForm(m.view.Editing, m.view.Authors)
		m.form = &form
	default:
		if _, ok := msg.(state.AuthorsFetched); ok {
			m.form.setAuthors(m.view.Authors)
		}
	}

	m.clampSelection()
	return m, cmd
}

func (m *Model) clampSelection() {
	if m.selected >= len(m.view.Books) {
		m.selected = len(m.view.Books) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.form != nil {
		return m.handleFormKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	case key.Matches(msg, m.keys.DismissError):
		return m.dispatch(state.DismissError{})
	case key.Matches(msg, m.keys.Reload):
		return m.dispatch(state.Mount{})
	case key.Matches(msg, m.keys.NextAuthor):
		return m.cycleAuthorFilter(1)
	case key.Matches(msg, m.keys.PrevAuthor):
		return m.cycleAuthorFilter(-1)
	case key.Matches(msg, m.keys.ClearFilter):
		if m.view.AuthorFilter == nil {
			return m, nil
		}
		return m.dispatch(state.FilterChanged{})
	}

	// The table is hidden while loading.
	if m.view.Loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Create):
		return m.dispatch(state.OpenCreateForm{})
	case key.Matches(msg, m.keys.Edit):
		if book, ok := m.selectedBook(); ok {
			return m.dispatch(state.OpenUpdateForm{Book: book})
		}
	case key.Matches(msg, m.keys.Delete):
		if book, ok := m.selectedBook(); ok {
			return m.dispatch(state.DeleteRequested{ID: book.ID})
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.view.Books)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = max(len(m.view.Books)-1, 0)
	}
	return m, nil
}

// handleFormKey handles keyboard input while the book form is open.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		return m.dispatch(state.CloseForm{})
	case key.Matches(msg, m.keys.Submit):
		form := *m.form
		payload, ok := form.payload()
		m.form = &form
		if !ok {
			return m, nil
		}
		return m.dispatch(state.SaveRequested{Payload: payload})
	}

	form, cmd := m.form.update(msg, m.keys)
	m.form = &form
	return m, cmd
}

func (m Model) selectedBook() (booksapi.Book, bool) {
	if m.selected < 0 || m.selected >= len(m.view.Books) {
		return booksapi.Book{}, false
	}
	return m.view.Books[m.selected], true
}

// cycleAuthorFilter steps through "all authors" followed by each author.
func (m Model) cycleAuthorFilter(delta int) (Model, tea.Cmd) {
	authors := m.view.Authors
	if len(authors) == 0 {
		return m, nil
	}
	idx := 0
	if m.view.AuthorFilter != nil {
		for i, a := range authors {
			if a.ID == *m.view.AuthorFilter {
				idx = i + 1
			}
		}
	}
	n := len(authors) + 1
	idx = (idx + delta + n) % n
	if idx == 0 {
		return m.dispatch(state.FilterChanged{})
	}
	id := authors[idx-1].ID
	return m.dispatch(state.FilterChanged{AuthorID: &id})
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	if m.prefs == nil {
		return
	}
	if err := m.prefs.SetTheme(m.theme.Name); err != nil {
		m.log.Warn().Err(err).Msg("save theme")
	}
}

// renderMain renders the title, filter, table, toast and footer.
func (m Model) renderMain() string {
	styles := m.theme.Styles()

	tableHeight := m.height - chromeHeight + 2
	if m.view.Error != "" {
		tableHeight -= toastHeight
	}
	tableHeight = max(tableHeight, 4)

	var b strings.Builder
	b.WriteString(styles.Title.Render("Books App"))
	b.WriteString("\n")
	b.WriteString(m.renderFilter())
	b.WriteString("\n")
	b.WriteString(m.renderBooks(tableHeight))
	b.WriteString("\n")
	if m.view.Error != "" {
		b.WriteString(m.renderToast())
		b.WriteString("\n")
	}
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderToast() string {
	styles := m.theme.Styles()
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Danger)).
		Padding(0, 1).
		Width(max(m.width-2, 10)).
		Render(styles.DangerText.Render(m.view.Error) + styles.FaintText.Render("  x to dismiss"))
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	var parts []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, styles.AccentText.Render(h.Key)+" "+styles.MutedText.Render(h.Desc))
	}
	return strings.Join(parts, styles.FaintText.Render("  •  "))
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
