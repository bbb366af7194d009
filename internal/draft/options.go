package draft

import "github.com/five82/bookshelf/internal/booksapi"

// OptionKind tells selector entries apart.
type OptionKind int

const (
	OptionPlaceholder OptionKind = iota
	OptionAuthor
	OptionNewAuthor
)

const (
	placeholderLabel = "Select an Author"
	newAuthorLabel   = "[Add new author]"
)

// Option is one entry of the author selector.
type Option struct {
	Kind   OptionKind
	Author booksapi.Author
	Label  string
}

// Options returns the selector entries: the placeholder, one per author in
// the given order, then the new author sentinel.
func Options(authors []booksapi.Author) []Option {
	opts := make([]Option, 0, len(authors)+2)
	opts = append(opts, Option{Kind: OptionPlaceholder, Label: placeholderLabel})
	for _, a := range authors {
		opts = append(opts, Option{Kind: OptionAuthor, Author: a, Label: a.Name})
	}
	return append(opts, Option{Kind: OptionNewAuthor, Label: newAuthorLabel})
}

// SelectedIndex returns the index in opts matching the current choice, or 0
// (the placeholder) when an existing author is not among opts.
func (d Draft) SelectedIndex(opts []Option) int {
	for i, opt := range opts {
		switch choice := d.Author.(type) {
		case ExistingAuthor:
			if opt.Kind == OptionAuthor && opt.Author.ID == choice.ID {
				return i
			}
		case NewAuthor:
			if opt.Kind == OptionNewAuthor {
				return i
			}
		}
	}
	return 0
}
