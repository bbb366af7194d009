// Package logtail reads and formats the tail of the bookshelf log file.
//
// # Reading
//
// Read keeps a ring buffer of maxLines entries while scanning the file once,
// so memory stays proportional to the requested tail rather than the file:
//
//	lines, err := logtail.Read(cfg.LogPath(), 200)
//
// A maxLines of zero or less returns the whole file. A missing file is not
// an error; there is simply nothing to show yet.
//
// # Formatting
//
// The TUI writes zerolog JSON lines. Filter drops entries below a level and
// Render turns the rest back into zerolog's console format. Lines that are
// not JSON pass through untouched.
//
//	logtail.Render(os.Stdout, logtail.Filter(lines, zerolog.WarnLevel), false)
package logtail
