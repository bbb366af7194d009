package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bookshelf/internal/booksapi"
	"github.com/five82/bookshelf/internal/draft"
)

// Form fields in focus order. fieldNewAuthor only exists while the new
// author option is selected.
const (
	fieldTitle = iota
	fieldYear
	fieldStatus
	fieldAuthor
	fieldNewAuthor
)

type statusOption struct {
	value booksapi.Status
	label string
}

var statusOptions = []statusOption{
	{"", "Select a Status"},
	{booksapi.StatusPublished, booksapi.StatusPublished.Label()},
	{booksapi.StatusDraft, booksapi.StatusDraft.Label()},
}

// bookForm is the create/update modal. Text inputs mirror the draft and are
// copied into it before anything reads the draft.
type bookForm struct {
	draft     draft.Draft
	options   []draft.Option
	title     textinput.Model
	year      textinput.Model
	newAuthor textinput.Model
	focus     int
	err       string
}

func newBookForm(book *booksapi.Book, authors []booksapi.Author) bookForm {
	f := bookForm{
		draft:     draft.New(book),
		title:     newInput("Book title", 255),
		year:      newInput("e.g. 1949", 6),
		newAuthor: newInput("Author name", 255),
	}
	f.title.SetValue(f.draft.Title)
	f.year.SetValue(f.draft.Year)
	f.setAuthors(authors)
	f.focusField(fieldTitle)
	return f
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = fieldWidth
	in.Prompt = ""
	return in
}

// setAuthors refreshes the selector while keeping the current choice.
func (f *bookForm) setAuthors(authors []booksapi.Author) {
	f.options = draft.Options(authors)
}

func (f bookForm) fieldCount() int {
	if f.draft.IsNewAuthor() {
		return fieldNewAuthor + 1
	}
	return fieldAuthor + 1
}

func (f *bookForm) focusField(i int) {
	f.focus = i
	inputs := map[int]*textinput.Model{
		fieldTitle:     &f.title,
		fieldYear:      &f.year,
		fieldNewAuthor: &f.newAuthor,
	}
	for idx, in := range inputs {
		if idx == i {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func (f *bookForm) input() *textinput.Model {
	switch f.focus {
	case fieldTitle:
		return &f.title
	case fieldYear:
		return &f.year
	case fieldNewAuthor:
		return &f.newAuthor
	}
	return nil
}

// update handles every key except submit and cancel, which the model owns.
func (f bookForm) update(msg tea.KeyMsg, keys keyMap) (bookForm, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.NextField):
		f.focusField((f.focus + 1) % f.fieldCount())
		return f, nil
	case key.Matches(msg, keys.PrevField):
		f.focusField((f.focus - 1 + f.fieldCount()) % f.fieldCount())
		return f, nil
	case key.Matches(msg, keys.OptionPrev), key.Matches(msg, keys.OptionNext):
		delta := 1
		if key.Matches(msg, keys.OptionPrev) {
			delta = -1
		}
		switch f.focus {
		case fieldStatus:
			f.cycleStatus(delta)
			return f, nil
		case fieldAuthor:
			f.cycleAuthor(delta)
			return f, nil
		}
	}

	in := f.input()
	if in == nil {
		return f, nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	f.sync()
	return f, cmd
}

func (f *bookForm) cycleStatus(delta int) {
	idx := 0
	for i, opt := range statusOptions {
		if opt.value == f.draft.Status {
			idx = i
		}
	}
	idx = (idx + delta + len(statusOptions)) % len(statusOptions)
	f.draft.Status = statusOptions[idx].value
}

func (f *bookForm) cycleAuthor(delta int) {
	idx := f.draft.SelectedIndex(f.options)
	idx = (idx + delta + len(f.options)) % len(f.options)
	f.draft.Select(f.options[idx])
	if f.draft.IsNewAuthor() {
		f.newAuthor.SetValue("")
	}
}

// sync copies the text inputs into the draft.
func (f *bookForm) sync() {
	f.draft.Title = f.title.Value()
	f.draft.Year = f.year.Value()
	f.draft.SetNewAuthorName(f.newAuthor.Value())
}

// payload validates the form. Validation failures stay on the form.
func (f *bookForm) payload() (booksapi.BookPayload, bool) {
	f.sync()
	p, err := f.draft.Payload()
	if err != nil {
		f.err = err.Error()
		return booksapi.BookPayload{}, false
	}
	f.err = ""
	return p, true
}

func (f bookForm) statusLabel() string {
	for _, opt := range statusOptions {
		if opt.value == f.draft.Status {
			return opt.label
		}
	}
	return f.draft.Status.Label()
}

func (f bookForm) authorLabel() string {
	idx := f.draft.SelectedIndex(f.options)
	if idx == 0 {
		if name := f.draft.AuthorName(); name != "" {
			return name
		}
	}
	if idx < len(f.options) {
		return f.options[idx].Label
	}
	return ""
}

func (f bookForm) view(theme Theme) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(f.draft.Heading()))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", formWidth-6)))
	b.WriteString("\n\n")

	label := func(field int, text string) string {
		text = lipgloss.NewStyle().Width(18).Render(text)
		if f.focus == field {
			return styles.AccentText.Render(text)
		}
		return styles.MutedText.Render(text)
	}
	selectValue := func(field int, text string) string {
		if f.focus == field {
			return styles.AccentText.Render("‹ " + text + " ›")
		}
		return styles.Text.Render("  " + text)
	}

	b.WriteString(label(fieldTitle, "Title"))
	b.WriteString(f.title.View())
	b.WriteString("\n\n")
	b.WriteString(label(fieldYear, "Year"))
	b.WriteString(f.year.View())
	b.WriteString("\n\n")
	b.WriteString(label(fieldStatus, "Status"))
	b.WriteString(selectValue(fieldStatus, f.statusLabel()))
	b.WriteString("\n\n")
	b.WriteString(label(fieldAuthor, "Author"))
	b.WriteString(selectValue(fieldAuthor, f.authorLabel()))
	b.WriteString("\n\n")
	if f.draft.IsNewAuthor() {
		b.WriteString(label(fieldNewAuthor, "New Author Name"))
		b.WriteString(f.newAuthor.View())
		b.WriteString("\n\n")
	}

	if f.err != "" {
		b.WriteString(styles.DangerText.Render(f.err))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.FaintText.Render("Enter: " + f.draft.SubmitLabel() + "  •  Esc: Cancel  •  Tab: Next field"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(formWidth).
		Render(b.String())
}
