package booksapi

import (
	"fmt"
	"strings"
)

// Status is the publication state of a book.
type Status string

const (
	StatusPublished Status = "published"
	StatusDraft     Status = "draft"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPublished, StatusDraft}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPublished, StatusDraft:
		return true
	default:
		return false
	}
}

// Label returns the human readable name, or the raw value for unknown statuses.
func (s Status) Label() string {
	switch s {
	case StatusPublished:
		return "Published"
	case StatusDraft:
		return "Draft"
	default:
		return string(s)
	}
}

// ParseStatus accepts a status value case-insensitively.
func ParseStatus(value string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(value)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q", value)
	}
	return s, nil
}

// Author mirrors /authors/ entries.
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Book is the read model returned by /books/. The author is embedded.
type Book struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Year   int    `json:"year"`
	Status Status `json:"status"`
	Author Author `json:"author"`
}

// BookPayload is the write model for create and update. A nil ID creates a
// new book. The author travels as id plus name, never as an embedded object;
// AuthorID 0 asks the server to create an author named AuthorName.
type BookPayload struct {
	ID         *int64 `json:"id,omitempty"`
	Title      string `json:"title"`
	Year       int    `json:"year"`
	Status     Status `json:"status"`
	AuthorID   int64  `json:"author_id"`
	AuthorName string `json:"author_name"`
}

// IsUpdate reports whether the payload targets an existing book.
func (p BookPayload) IsUpdate() bool {
	return p.ID != nil && *p.ID != 0
}

// PayloadFromBook builds an update payload carrying the book's current values.
func PayloadFromBook(b Book) BookPayload {
	id := b.ID
	return BookPayload{
		ID:         &id,
		Title:      b.Title,
		Year:       b.Year,
		Status:     b.Status,
		AuthorID:   b.Author.ID,
		AuthorName: b.Author.Name,
	}
}
