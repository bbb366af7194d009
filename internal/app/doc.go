// Package app wires configuration, logging, the books API client, the
// controller and the UI together. It is the composition root of bookshelf.
//
// # Startup
//
//	Run()
//	  ├─> Setup()
//	  │     ├─> config.Load()         flags > env > .env > TOML > defaults
//	  │     ├─> logging.New()         JSON lines to the log file
//	  │     └─> booksapi.NewClient()  rooted at the configured API
//	  ├─> prefs.Open().Load()         theme
//	  ├─> state.NewController()       bound to ctx and the client
//	  └─> ui.Run()                    blocks until quit
//
// The one-shot CLI commands call Setup with LogToStderr and use Env.Client
// directly.
//
// # Errors
//
// Configuration, log file and client construction errors are fatal and
// returned from Setup. Request failures during the session are not: the
// controller shows them in the UI and logs them.
//
// Cancelling ctx stops in-flight requests and the TUI; that is not reported
// as an error.
package app
