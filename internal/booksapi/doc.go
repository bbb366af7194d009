// Package booksapi provides the HTTP client for the books backend.
//
// # Overview
//
// The backend owns all persistence. This package wraps its two resources,
// books and authors, behind a small Client whose methods each issue exactly
// one request: no retries, no caching, no batching.
//
// # Endpoints
//
//   - GET    {base}/authors/                  list authors
//   - GET    {base}/books/[?author_id=<id>]   list books, optionally by author
//   - POST   {base}/books/                    create a book
//   - PUT    {base}/books/{id}                replace a book
//   - DELETE {base}/books/{id}                delete a book
//
// {base} comes from an apiurl.Builder (origin plus base path).
//
// # Write model
//
// Books are read with the author embedded but written as a BookPayload that
// carries author_id and author_name. An author_id of 0 together with a name
// introduces a new author; whether every backend honours that convention is
// an assumption of the contract, not something this client checks.
//
// # Errors
//
// Non-2xx responses become *RequestError with the message
// "Error: <status text>". Anything that fails before a status is known, or a
// body that cannot be decoded, becomes *UnexpectedError. Message maps any
// error to the text shown in the UI.
//
// # Usage
//
//	client, err := booksapi.NewClient(apiurl.Builder{Origin: "http://localhost:8000"}, booksapi.Options{})
//	if err != nil {
//		return err
//	}
//	books, err := client.ListBooks(ctx, nil)
package booksapi
