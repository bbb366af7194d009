// Package state holds the view state of the books screen and the controller
// that moves it forward.
//
// # Overview
//
// View is a plain value: the book list, the loading flag, the error toast,
// the author filter and which form is open. The UI never edits it directly.
// Every user action and every client result is an event, and
// Controller.Update folds that event into a new View while returning the
// Bubble Tea command that performs the next client call.
//
//	user action ──→ Update(view, event) ──→ (view', cmd)
//	                      ↑                        │
//	                      └──── result event ←─────┘
//
// # Transitions
//
//	Mount / FilterChanged   Loading=true, issue fetch (FetchSeq+1)
//	BooksFetched            matching seq only; replace Books or set Error
//	SaveRequested           close form, Loading=true, Busy=true, save
//	DeleteRequested         Loading=true, Busy=true, remove
//	MutationSettled         Busy=false, Error on failure, then fetch
//	OpenCreateForm/Update   show form, reload authors
//	CloseForm               hide form
//	DismissError            clear Error
//	ErrorExpired{Gen}       clear Error if Gen is still current
//
// # Ordering
//
// Only one save or delete runs at a time: while Busy is set further
// SaveRequested and DeleteRequested events are ignored. Each fetch carries
// the sequence number it was issued under and results from an older fetch
// are dropped, so the list always reflects the most recent request.
//
// A failed fetch keeps the previous Books. A fetch that succeeds clears an
// error raised by an earlier fetch but leaves a failed save or delete on
// screen until it expires or is dismissed.
//
// # Errors
//
// Error holds the user-facing text from booksapi.Message. Setting it bumps
// ErrorGen and schedules ErrorExpired after DefaultErrorDisplay; dismissing
// or replacing the error makes the pending timer harmless.
package state
