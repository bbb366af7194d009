package booksapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/five82/bookshelf/internal/apiurl"
)

// AuthorLister lists authors for selectors and filters.
type AuthorLister interface {
	ListAuthors(ctx context.Context) ([]Author, error)
}

// BookService covers the book operations the controller drives.
type BookService interface {
	ListBooks(ctx context.Context, authorFilter *int64) ([]Book, error)
	SaveBook(ctx context.Context, payload BookPayload) (Book, error)
	RemoveBook(ctx context.Context, id int64) error
}

// Ensure Client implements both interfaces at compile time.
var (
	_ AuthorLister = (*Client)(nil)
	_ BookService  = (*Client)(nil)
)

const (
	defaultUserAgent = "bookshelf/0.1"
	requestTimeout   = 10 * time.Second
	requestIDHeader  = "X-Request-ID"
)

// Options tune a Client. Zero values use defaults.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
	Logger     *zerolog.Logger
}

// Client talks to the books HTTP API. Every method issues exactly one request.
type Client struct {
	urls      apiurl.Builder
	http      *http.Client
	userAgent string
	log       zerolog.Logger
}

// NewClient builds a Client rooted at urls. The resulting base URL must be
// absolute since there is no page origin to resolve against.
func NewClient(urls apiurl.Builder, opts Options) (*Client, error) {
	base := urls.Base()
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", base, err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return nil, fmt.Errorf("api base %q is not absolute; set an api origin", base)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = requestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	return &Client{
		urls:      urls,
		http:      httpClient,
		userAgent: userAgent,
		log:       logger.With().Str("component", "booksapi").Logger(),
	}, nil
}

// BaseURL returns the API base the client resolves against.
func (c *Client) BaseURL() string {
	return c.urls.Base()
}

// ListAuthors retrieves every author.
func (c *Client) ListAuthors(ctx context.Context) ([]Author, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var authors []Author
	if err := c.do(ctx, http.MethodGet, c.urls.Resolve("/authors/"), nil, &authors); err != nil {
		return nil, err
	}
	return authors, nil
}

// ListBooks retrieves books, narrowed to one author when authorFilter is set.
func (c *Client) ListBooks(ctx context.Context, authorFilter *int64) ([]Book, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	endpoint := c.urls.Resolve("/books/")
	if authorFilter != nil {
		values := url.Values{}
		values.Set("author_id", strconv.FormatInt(*authorFilter, 10))
		endpoint += "?" + values.Encode()
	}
	var books []Book
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// SaveBook updates the book named by payload.ID, or creates one when the ID
// is absent.
func (c *Client) SaveBook(ctx context.Context, payload BookPayload) (Book, error) {
	if c == nil {
		return Book{}, fmt.Errorf("client is nil")
	}
	method := http.MethodPost
	endpoint := c.urls.Resolve("/books/")
	if payload.IsUpdate() {
		method = http.MethodPut
		endpoint = c.urls.Resolve("/books/" + strconv.FormatInt(*payload.ID, 10))
	}
	var saved Book
	if err := c.do(ctx, method, endpoint, payload, &saved); err != nil {
		return Book{}, err
	}
	return saved, nil
}

// RemoveBook deletes a book. A zero id is silently ignored.
func (c *Client) RemoveBook(ctx context.Context, id int64) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if id == 0 {
		return nil
	}
	return c.do(ctx, http.MethodDelete, c.urls.Resolve("/books/"+strconv.FormatInt(id, 10)), nil, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &UnexpectedError{Op: "encode request", Err: err}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &UnexpectedError{Op: "create request", Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().
			Err(err).
			Str("request_id", requestID).
			Str("method", method).
			Str("url", endpoint).
			Msg("request failed")
		return &UnexpectedError{Op: "execute request", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("url", endpoint).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("api request")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &RequestError{
			Method:     method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			StatusText: statusText(resp),
		}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return &UnexpectedError{Op: "decode response", Err: io.ErrUnexpectedEOF}
		}
		return &UnexpectedError{Op: "decode response", Err: err}
	}
	return nil
}

// statusText returns the reason phrase sent by the server, falling back to
// the standard text for the code.
func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); reason != "" {
		return reason
	}
	return http.StatusText(resp.StatusCode)
}
