package main

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/bookshelf/internal/app"
	"github.com/five82/bookshelf/internal/booksapi"
	"github.com/five82/bookshelf/internal/draft"
)

func newListCmd(flags *globalFlags) *cobra.Command {
	var authorID int64
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books, optionally for one author",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var filter *int64
			if cmd.Flags().Changed("author") {
				filter = &authorID
			}
			return withEnv(cmd, flags, func(env *app.Env) error {
				books, err := env.Client.ListBooks(cmd.Context(), filter)
				if err != nil {
					return errors.New(booksapi.Message(err))
				}
				return writeBooks(cmd.OutOrStdout(), books, flags.noColor)
			})
		},
	}
	cmd.Flags().Int64Var(&authorID, "author", 0, "only list books by this author id")
	return cmd
}

func newAuthorsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "authors",
		Short: "List authors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, flags, func(env *app.Env) error {
				authors, err := env.Client.ListAuthors(cmd.Context())
				if err != nil {
					return errors.New(booksapi.Message(err))
				}
				return writeAuthors(cmd.OutOrStdout(), authors, flags.noColor)
			})
		},
	}
}

type saveFlags struct {
	id         int64
	title      string
	year       string
	status     string
	authorID   int64
	authorName string
}

func newSaveCmd(flags *globalFlags) *cobra.Command {
	var sf saveFlags
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Create a book, or update one with --id",
		Example: "  bookshelf save --title Dune --year 1965 --status published --author-name \"Frank Herbert\"\n" +
			"  bookshelf save --id 3 --title Dune --year 1965 --status draft --author-id 2",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, flags, func(env *app.Env) error {
				payload, err := sf.payload(cmd, env)
				if err != nil {
					return err
				}
				book, err := env.Client.SaveBook(cmd.Context(), payload)
				if err != nil {
					return errors.New(booksapi.Message(err))
				}
				verb := "created"
				if payload.IsUpdate() {
					verb = "updated"
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s book %d: %s (%d, %s) by %s\n",
					verb, book.ID, book.Title, book.Year, book.Status.Label(), book.Author.Name)
				return err
			})
		},
	}
	f := cmd.Flags()
	f.Int64Var(&sf.id, "id", 0, "id of the book to update")
	f.StringVar(&sf.title, "title", "", "book title")
	f.StringVar(&sf.year, "year", "", "publication year")
	f.StringVar(&sf.status, "status", "", "published or draft")
	f.Int64Var(&sf.authorID, "author-id", 0, "existing author id")
	f.StringVar(&sf.authorName, "author-name", "", "author name; creates the author when --author-id is not set")
	cmd.MarkFlagsMutuallyExclusive("author-id", "author-name")
	return cmd
}

// payload runs the flags through the same draft validation the form uses.
func (sf saveFlags) payload(cmd *cobra.Command, env *app.Env) (booksapi.BookPayload, error) {
	d := draft.New(nil)
	if sf.id != 0 {
		id := sf.id
		d.BookID = &id
	}
	d.Title = sf.title
	d.Year = sf.year
	d.Status = booksapi.Status(strings.ToLower(strings.TrimSpace(sf.status)))

	switch {
	case sf.authorID != 0:
		authors, err := env.Client.ListAuthors(cmd.Context())
		if err != nil {
			return booksapi.BookPayload{}, errors.New(booksapi.Message(err))
		}
		found := false
		for _, opt := range draft.Options(authors) {
			if opt.Kind == draft.OptionAuthor && opt.Author.ID == sf.authorID {
				d.Select(opt)
				found = true
				break
			}
		}
		if !found {
			return booksapi.BookPayload{}, fmt.Errorf("no author with id %d", sf.authorID)
		}
	case strings.TrimSpace(sf.authorName) != "":
		d.Select(draft.Option{Kind: draft.OptionNewAuthor})
		d.SetNewAuthorName(sf.authorName)
	}

	payload, err := d.Payload()
	if err != nil {
		return booksapi.BookPayload{}, fmt.Errorf("invalid book: %w", err)
	}
	return payload, nil
}

func newDeleteCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid book id %q", args[0])
			}
			return withEnv(cmd, flags, func(env *app.Env) error {
				if err := env.Client.RemoveBook(cmd.Context(), id); err != nil {
					return errors.New(booksapi.Message(err))
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "deleted book %d\n", id)
				return err
			})
		},
	}
}

func newStatusCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "status ID STATUS",
		Short:   "Change the status of a book, keeping its other fields",
		Example: "  bookshelf status 3 published",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid book id %q", args[0])
			}
			status, err := booksapi.ParseStatus(args[1])
			if err != nil {
				return err
			}
			return withEnv(cmd, flags, func(env *app.Env) error {
				books, err := env.Client.ListBooks(cmd.Context(), nil)
				if err != nil {
					return errors.New(booksapi.Message(err))
				}
				idx := slices.IndexFunc(books, func(b booksapi.Book) bool { return b.ID == id })
				if idx < 0 {
					return fmt.Errorf("no book with id %d", id)
				}
				payload := booksapi.PayloadFromBook(books[idx])
				payload.Status = status
				book, err := env.Client.SaveBook(cmd.Context(), payload)
				if err != nil {
					return errors.New(booksapi.Message(err))
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "book %d is now %s\n", book.ID, book.Status.Label())
				return err
			})
		},
	}
}
