// Package draft holds the in-progress edits of the create/update book form.
package draft

import (
	"strconv"
	"strings"

	"github.com/five82/bookshelf/internal/booksapi"
)

// AuthorChoice is what the author selector currently holds: NoAuthor,
// ExistingAuthor or NewAuthor.
type AuthorChoice interface {
	isAuthorChoice()
}

// NoAuthor is the blank placeholder selection.
type NoAuthor struct{}

// ExistingAuthor references an author the backend already knows.
type ExistingAuthor struct {
	ID   int64
	Name string
}

// NewAuthor is an author typed in by the user, created on save.
type NewAuthor struct {
	Name string
}

func (NoAuthor) isAuthorChoice()       {}
func (ExistingAuthor) isAuthorChoice() {}
func (NewAuthor) isAuthorChoice()      {}

// Draft is the unsaved state of the book form.
type Draft struct {
	BookID *int64
	Title  string
	Year   string
	Status booksapi.Status
	Author AuthorChoice
}

// New starts a draft. A nil book yields a blank create form; otherwise the
// fields are copied from the book.
func New(book *booksapi.Book) Draft {
	if book == nil {
		return Draft{Author: NoAuthor{}}
	}
	d := Draft{
		Title:  book.Title,
		Year:   strconv.Itoa(book.Year),
		Status: book.Status,
		Author: ExistingAuthor{ID: book.Author.ID, Name: book.Author.Name},
	}
	if book.ID != 0 {
		id := book.ID
		d.BookID = &id
	}
	if book.Author.ID == 0 && book.Author.Name == "" {
		d.Author = NoAuthor{}
	}
	return d
}

// IsUpdate reports whether submitting updates an existing book.
func (d Draft) IsUpdate() bool {
	return d.BookID != nil && *d.BookID != 0
}

// Heading is the form title.
func (d Draft) Heading() string {
	if d.IsUpdate() {
		return "Update Book"
	}
	return "Create Book"
}

// SubmitLabel is the text of the submit control.
func (d Draft) SubmitLabel() string {
	if d.IsUpdate() {
		return "Update"
	}
	return "Create"
}

// IsNewAuthor reports whether the free-text author name field is shown.
func (d Draft) IsNewAuthor() bool {
	_, ok := d.Author.(NewAuthor)
	return ok
}

// AuthorName returns the name carried by the current selection.
func (d Draft) AuthorName() string {
	switch a := d.Author.(type) {
	case ExistingAuthor:
		return a.Name
	case NewAuthor:
		return a.Name
	default:
		return ""
	}
}

// SetNewAuthorName updates the typed name. It has no effect unless the new
// author option is selected.
func (d *Draft) SetNewAuthorName(name string) {
	if d.IsNewAuthor() {
		d.Author = NewAuthor{Name: name}
	}
}

// Select applies a selector option. The new author sentinel clears any
// previous id and name.
func (d *Draft) Select(opt Option) {
	switch opt.Kind {
	case OptionAuthor:
		d.Author = ExistingAuthor{ID: opt.Author.ID, Name: opt.Author.Name}
	case OptionNewAuthor:
		d.Author = NewAuthor{}
	default:
		d.Author = NoAuthor{}
	}
}

// Payload validates the draft and converts it into the write model.
func (d Draft) Payload() (booksapi.BookPayload, error) {
	in := submission{
		Title:  strings.TrimSpace(d.Title),
		Year:   strings.TrimSpace(d.Year),
		Status: string(d.Status),
		Author: strings.TrimSpace(d.AuthorName()),
	}
	if err := validate(in); err != nil {
		return booksapi.BookPayload{}, err
	}
	year, err := strconv.Atoi(in.Year)
	if err != nil {
		return booksapi.BookPayload{}, &ValidationError{Fields: map[string]string{"year": "year must be a whole number"}}
	}

	// The title goes out as typed; trimming only decides whether it is blank.
	payload := booksapi.BookPayload{
		Title:      d.Title,
		Year:       year,
		Status:     d.Status,
		AuthorName: in.Author,
	}
	if d.IsUpdate() {
		id := *d.BookID
		payload.ID = &id
	}
	if existing, ok := d.Author.(ExistingAuthor); ok {
		payload.AuthorID = existing.ID
	}
	return payload, nil
}
