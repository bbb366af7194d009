package ui

import "time"

// Overlay widths.
const (
	helpWidth = 44
	formWidth = 56
)

// Book table column widths; the title column takes what is left.
const (
	colYear    = 6
	colStatus  = 11
	colAuthor  = 24
	minTitle   = 12
	fieldWidth = 34
)

const (
	// Lines around the table: title, filter line, header row, box borders
	// and footer.
	chromeHeight = 6

	// Reserved at the bottom while an error is shown.
	toastHeight = 3
)

const spinnerInterval = 100 * time.Millisecond
