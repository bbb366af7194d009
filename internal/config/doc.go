// Package config resolves bookshelf settings.
//
// # Sources
//
// Values are layered, highest precedence first:
//
//  1. Overrides passed from command-line flags
//  2. Process environment (BOOKSHELF_API_ORIGIN, BOOKSHELF_API_BASE_PATH,
//     BOOKSHELF_LOG_LEVEL)
//  3. A .env file (./.env unless another path is given)
//  4. ~/.config/bookshelf/config.toml
//  5. Built-in defaults
//
// Empty values at any layer fall through to the next one. A missing TOML
// file or default .env file is not an error.
//
// # TOML Format
//
//	api_origin = "http://localhost:8000"
//	api_base_path = "/api"
//	timeout_seconds = 10
//	log_file = "~/.local/state/bookshelf/bookshelf.log"
//	log_level = "info"
//
// Tilde expansion is applied to the config path and log_file.
//
// # Usage
//
//	cfg, err := config.Load(config.Options{})
//	if err != nil {
//		return err
//	}
//	client, err := booksapi.NewClient(cfg.URLBuilder(), booksapi.Options{Timeout: cfg.Timeout})
package config
