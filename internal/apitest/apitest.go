// Package apitest runs an in-memory books backend for tests.
package apitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/five82/bookshelf/internal/apiurl"
	"github.com/five82/bookshelf/internal/booksapi"
)

// BasePath is where the fake mounts its routes.
const BasePath = "/api"

// Request records one call received by the fake.
type Request struct {
	Method string
	Path   string
	Query  string
	Body   string
	Header http.Header
}

// Server is a books backend kept in memory.
type Server struct {
	*httptest.Server

	mu           sync.Mutex
	authors      []booksapi.Author
	books        []booksapi.Book
	nextAuthorID int64
	nextBookID   int64
	requests     []Request
	failures     map[string][]int
}

// New starts a fake backend that shuts down with the test.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		nextAuthorID: 1,
		nextBookID:   1,
		failures:     make(map[string][]int),
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

// Builder returns the URL builder pointing at the fake.
func (s *Server) Builder() apiurl.Builder {
	return apiurl.Builder{Origin: s.URL, BasePath: BasePath}
}

// SeedAuthor stores an author and returns it with its assigned id.
func (s *Server) SeedAuthor(name string) booksapi.Author {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addAuthorLocked(name)
}

// SeedBook stores a book written by an existing author.
func (s *Server) SeedBook(title string, year int, status booksapi.Status, author booksapi.Author) booksapi.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	book := booksapi.Book{ID: s.nextBookID, Title: title, Year: year, Status: status, Author: author}
	s.nextBookID++
	s.books = append(s.books, book)
	return book
}

// FailNext makes the next request with method answer with status.
func (s *Server) FailNext(method string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = append(s.failures[method], status)
}

// Books returns a copy of the stored books.
func (s *Server) Books() []booksapi.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.books)
}

// Authors returns a copy of the stored authors.
func (s *Server) Authors() []booksapi.Author {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.authors)
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)
	r.Route(BasePath, func(r chi.Router) {
		r.Get("/authors/", s.listAuthors)
		r.Get("/books/", s.listBooks)
		r.Post("/books/", s.createBook)
		r.Put("/books/{id}", s.updateBook)
		r.Delete("/books/{id}", s.deleteBook)
	})
	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   string(body),
			Header: r.Header.Clone(),
		})
		var status int
		if queued := s.failures[r.Method]; len(queued) > 0 {
			status = queued[0]
			s.failures[r.Method] = queued[1:]
		}
		s.mu.Unlock()

		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listAuthors(w http.ResponseWriter, _ *http.Request) {
	authors := s.Authors()
	if authors == nil {
		authors = []booksapi.Author{}
	}
	writeJSON(w, http.StatusOK, authors)
}

func (s *Server) listBooks(w http.ResponseWriter, r *http.Request) {
	books := s.Books()
	if raw := r.URL.Query().Get("author_id"); raw != "" {
		authorID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid author_id", http.StatusUnprocessableEntity)
			return
		}
		books = slices.DeleteFunc(books, func(b booksapi.Book) bool { return b.Author.ID != authorID })
	}
	if books == nil {
		books = []booksapi.Book{}
	}
	writeJSON(w, http.StatusOK, books)
}

func (s *Server) createBook(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	book := booksapi.Book{ID: s.nextBookID}
	s.nextBookID++
	s.applyLocked(&book, payload)
	s.books = append(s.books, book)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, book)
}

func (s *Server) updateBook(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusUnprocessableEntity)
		return
	}
	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	idx := slices.IndexFunc(s.books, func(b booksapi.Book) bool { return b.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		http.Error(w, "book not found", http.StatusNotFound)
		return
	}
	s.applyLocked(&s.books[idx], payload)
	book := s.books[idx]
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, book)
}

func (s *Server) deleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusUnprocessableEntity)
		return
	}
	s.mu.Lock()
	before := len(s.books)
	s.books = slices.DeleteFunc(s.books, func(b booksapi.Book) bool { return b.ID == id })
	removed := len(s.books) != before
	s.mu.Unlock()
	if !removed {
		http.Error(w, "book not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// applyLocked copies payload fields onto book, resolving the author the way
// the real backend does: an existing id wins, then an exact name match, and
// otherwise a new author is created.
func (s *Server) applyLocked(book *booksapi.Book, payload booksapi.BookPayload) {
	book.Title = strings.TrimSpace(payload.Title)
	book.Year = payload.Year
	book.Status = payload.Status
	book.Author = s.authorForLocked(payload.AuthorID, strings.TrimSpace(payload.AuthorName))
}

func (s *Server) authorForLocked(id int64, name string) booksapi.Author {
	if id != 0 {
		if idx := slices.IndexFunc(s.authors, func(a booksapi.Author) bool { return a.ID == id }); idx >= 0 {
			return s.authors[idx]
		}
	}
	if idx := slices.IndexFunc(s.authors, func(a booksapi.Author) bool { return a.Name == name }); idx >= 0 {
		return s.authors[idx]
	}
	return s.addAuthorLocked(name)
}

func (s *Server) addAuthorLocked(name string) booksapi.Author {
	author := booksapi.Author{ID: s.nextAuthorID, Name: name}
	s.nextAuthorID++
	s.authors = append(s.authors, author)
	return author
}

func decodePayload(w http.ResponseWriter, r *http.Request) (booksapi.BookPayload, bool) {
	var payload booksapi.BookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid body", http.StatusUnprocessableEntity)
		return booksapi.BookPayload{}, false
	}
	if strings.TrimSpace(payload.Title) == "" ||
		strings.TrimSpace(payload.AuthorName) == "" ||
		!payload.Status.Valid() {
		http.Error(w, "invalid book", http.StatusUnprocessableEntity)
		return booksapi.BookPayload{}, false
	}
	return payload, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
