// Package ui is the Bubble Tea front end of bookshelf.
//
// # Screen
//
//	Books App
//	By Author: Select an Author  (a/A to change, 0 for all)
//	┌──────────────── Books (2) ────────────────┐
//	│Title             Year   Status     Author │
//	│1984              1949   Published  Orwell │
//	└───────────────────────────────────────────┘
//	╭ Error: Not Found  x to dismiss ╮          (only while an error is set)
//	n Create book • e/enter Edit book • ...
//
// While the book list is loading the table body is replaced by a spinner.
// The create/update form and the help overlay are centered modals.
//
// # State
//
// Model keeps only presentation state: size, theme, selected row, the open
// form and the help flag. Everything else lives in a state.View owned by
// the model and changed exclusively through state.Controller.Update. Key
// presses become controller events; the commands the controller returns
// perform the HTTP calls and come back as result messages, which Update
// hands to the controller again.
//
// # Form
//
// bookForm wraps a draft.Draft with text inputs for title, year and the new
// author name, and two option selectors (status, author) cycled with
// left/right. Submitting validates the draft; failures are shown inside the
// form and nothing is sent.
//
// # Themes
//
// Three palettes (Nightfox, Kanagawa, Slate) are cycled with T. The choice
// is persisted through prefs when a store is configured.
package ui
