package state

import (
	"slices"

	"github.com/five82/bookshelf/internal/booksapi"
)

// FormMode says which book form, if any, is open.
type FormMode int

const (
	FormClosed FormMode = iota
	FormCreate
	FormUpdate
)

// ErrorSource records which transition surfaced the current error.
type ErrorSource int

const (
	ErrorNone ErrorSource = iota
	ErrorFetch
	ErrorMutation
	ErrorAuthors
)

// View is the complete UI-facing state. It is a plain value: every change
// goes through Controller.Update.
type View struct {
	Books        []booksapi.Book   `json:"books"`
	Loading      bool              `json:"loading"`
	Error        string            `json:"error,omitempty"`
	ErrorSource  ErrorSource       `json:"errorSource,omitempty"`
	AuthorFilter *int64            `json:"authorFilter,omitempty"`
	Form         FormMode          `json:"form"`
	Editing      *booksapi.Book    `json:"editing,omitempty"`
	Authors      []booksapi.Author `json:"authors,omitempty"`

	// Busy is set while a save or delete is outstanding; further mutations
	// are refused until it settles.
	Busy bool `json:"busy"`
	// FetchSeq identifies the latest issued book fetch. Results carrying an
	// older sequence are dropped.
	FetchSeq   uint64 `json:"fetchSeq"`
	AuthorsSeq uint64 `json:"authorsSeq"`
	// ErrorGen changes whenever a new error is shown so that an older
	// expiry timer cannot clear it.
	ErrorGen uint64 `json:"errorGen"`
}

// NewView returns the state of a freshly mounted screen.
func NewView() View {
	return View{
		Books:   []booksapi.Book{},
		Loading: true,
	}
}

// FormOpen reports whether a create or update form is shown.
func (v View) FormOpen() bool {
	return v.Form != FormClosed
}

// FilterAuthor returns the author the list is narrowed to, if known.
func (v View) FilterAuthor() (booksapi.Author, bool) {
	if v.AuthorFilter == nil {
		return booksapi.Author{}, false
	}
	idx := slices.IndexFunc(v.Authors, func(a booksapi.Author) bool { return a.ID == *v.AuthorFilter })
	if idx < 0 {
		return booksapi.Author{ID: *v.AuthorFilter}, false
	}
	return v.Authors[idx], true
}

func cloneBooks(books []booksapi.Book) []booksapi.Book {
	if len(books) == 0 {
		return []booksapi.Book{}
	}
	return slices.Clone(books)
}
