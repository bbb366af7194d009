package state

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/bookshelf/internal/booksapi"
)

const (
	// DefaultErrorDisplay is how long an error stays on screen.
	DefaultErrorDisplay = 5 * time.Second
	defaultTimeout      = 10 * time.Second

	OpSave   = "save"
	OpDelete = "delete"
)

// Options configures a Controller.
type Options struct {
	// Context bounds every client call; cancel it to abandon in-flight work.
	Context      context.Context
	Timeout      time.Duration
	ErrorDisplay time.Duration
	Logger       *zerolog.Logger
}

// Controller owns the state transitions of the books screen. It holds no
// state itself; Update folds events into a View and returns the commands
// that perform client calls.
type Controller struct {
	books        booksapi.BookService
	authors      booksapi.AuthorLister
	ctx          context.Context
	timeout      time.Duration
	errorDisplay time.Duration
	log          zerolog.Logger
}

// NewController wires a controller to its resource clients.
func NewController(books booksapi.BookService, authors booksapi.AuthorLister, opts Options) *Controller {
	c := &Controller{
		books:        books,
		authors:      authors,
		ctx:          opts.Context,
		timeout:      opts.Timeout,
		errorDisplay: opts.ErrorDisplay,
		log:          zerolog.Nop(),
	}
	if c.ctx == nil {
		c.ctx = context.Background()
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.errorDisplay <= 0 {
		c.errorDisplay = DefaultErrorDisplay
	}
	if opts.Logger != nil {
		c.log = opts.Logger.With().Str("component", "controller").Logger()
	}
	return c
}

// Update applies one event. Events that are not controller events leave the
// view untouched.
func (c *Controller) Update(v View, msg tea.Msg) (View, tea.Cmd) {
	switch ev := msg.(type) {
	case Mount:
		var fetch, authors tea.Cmd
		v, fetch = c.fetchBooks(v)
		v, authors = c.fetchAuthors(v)
		return v, tea.Batch(fetch, authors)

	case FilterChanged:
		v.AuthorFilter = copyID(ev.AuthorID)
		return c.fetchBooks(v)

	case BooksFetched:
		if ev.Seq != v.FetchSeq {
			c.log.Debug().Uint64("seq", ev.Seq).Uint64("latest", v.FetchSeq).Msg("dropping stale book list")
			return v, nil
		}
		// A mutation issued after this fetch still owns the spinner.
		v.Loading = v.Busy
		if ev.Err != nil {
			return c.fail(v, ErrorFetch, "list books", ev.Err)
		}
		v.Books = cloneBooks(ev.Books)
		if v.ErrorSource == ErrorFetch {
			v = clearError(v)
		}
		return v, nil

	case AuthorsFetched:
		if ev.Seq != v.AuthorsSeq {
			return v, nil
		}
		if ev.Err != nil {
			return c.fail(v, ErrorAuthors, "list authors", ev.Err)
		}
		v.Authors = append([]booksapi.Author(nil), ev.Authors...)
		if v.ErrorSource == ErrorAuthors {
			v = clearError(v)
		}
		return v, nil

	case SaveRequested:
		if v.Busy {
			c.log.Info().Msg("save ignored: another change is in flight")
			return v, nil
		}
		v.Form = FormClosed
		v.Editing = nil
		v.Loading = true
		v.Busy = true
		return v, c.mutate(OpSave, func(ctx context.Context) error {
			_, err := c.books.SaveBook(ctx, ev.Payload)
			return err
		})

	case DeleteRequested:
		if v.Busy {
			c.log.Info().Int64("id", ev.ID).Msg("delete ignored: another change is in flight")
			return v, nil
		}
		v.Loading = true
		v.Busy = true
		return v, c.mutate(OpDelete, func(ctx context.Context) error {
			return c.books.RemoveBook(ctx, ev.ID)
		})

	case MutationSettled:
		v.Busy = false
		var errCmd, fetch tea.Cmd
		if ev.Err != nil {
			v, errCmd = c.fail(v, ErrorMutation, ev.Op+" book", ev.Err)
		}
		v, fetch = c.fetchBooks(v)
		return v, tea.Batch(errCmd, fetch)

	case OpenCreateForm:
		v.Form = FormCreate
		v.Editing = nil
		return c.fetchAuthors(v)

	case OpenUpdateForm:
		book := ev.Book
		v.Form = FormUpdate
		v.Editing = &book
		return c.fetchAuthors(v)

	case CloseForm:
		v.Form = FormClosed
		v.Editing = nil
		return v, nil

	case DismissError:
		return clearError(v), nil

	case ErrorExpired:
		if ev.Gen == v.ErrorGen && v.Error != "" {
			return clearError(v), nil
		}
		return v, nil
	}
	return v, nil
}

func (c *Controller) fetchBooks(v View) (View, tea.Cmd) {
	v.Loading = true
	v.FetchSeq++
	seq := v.FetchSeq
	filter := copyID(v.AuthorFilter)
	return v, func() tea.Msg {
		ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
		defer cancel()
		books, err := c.books.ListBooks(ctx, filter)
		return BooksFetched{Seq: seq, Books: books, Err: err}
	}
}

func (c *Controller) fetchAuthors(v View) (View, tea.Cmd) {
	v.AuthorsSeq++
	seq := v.AuthorsSeq
	return v, func() tea.Msg {
		ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
		defer cancel()
		authors, err := c.authors.ListAuthors(ctx)
		return AuthorsFetched{Seq: seq, Authors: authors, Err: err}
	}
}

func (c *Controller) mutate(op string, call func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
		defer cancel()
		return MutationSettled{Op: op, Err: call(ctx)}
	}
}

// fail shows err and schedules its expiry.
func (c *Controller) fail(v View, source ErrorSource, what string, err error) (View, tea.Cmd) {
	c.log.Warn().Err(err).Str("op", what).Msg("request failed")
	v.Error = booksapi.Message(err)
	v.ErrorSource = source
	v.ErrorGen++
	gen := v.ErrorGen
	return v, tea.Tick(c.errorDisplay, func(time.Time) tea.Msg {
		return ErrorExpired{Gen: gen}
	})
}

func clearError(v View) View {
	v.Error = ""
	v.ErrorSource = ErrorNone
	return v
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
