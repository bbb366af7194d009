package state

import "github.com/five82/bookshelf/internal/booksapi"

// User-driven events.
type (
	// Mount loads the list for the current filter and refreshes authors.
	Mount struct{}

	// FilterChanged narrows the list to one author; nil shows every book.
	FilterChanged struct{ AuthorID *int64 }

	// SaveRequested submits a create or update form.
	SaveRequested struct{ Payload booksapi.BookPayload }

	// DeleteRequested removes one book.
	DeleteRequested struct{ ID int64 }

	OpenCreateForm struct{}
	OpenUpdateForm struct{ Book booksapi.Book }
	CloseForm      struct{}
	DismissError   struct{}

	// ErrorExpired fires when the error display window of generation Gen ends.
	ErrorExpired struct{ Gen uint64 }
)

// Results of client calls.
type (
	BooksFetched struct {
		Seq   uint64
		Books []booksapi.Book
		Err   error
	}

	AuthorsFetched struct {
		Seq     uint64
		Authors []booksapi.Author
		Err     error
	}

	MutationSettled struct {
		Op  string
		Err error
	}
)
