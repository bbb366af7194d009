package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bookshelf/internal/booksapi"
)

// Theme is a named palette for the book screens.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	SurfaceAlt string // Table box when unfocused
	FocusBg    string // Table box when focused

	// Table colors
	SelectionBg   string
	SelectionText string

	// Border colors
	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Warning string // Title and help keys
	Danger  string // Errors

	Status map[booksapi.Status]string
}

// Styles are the text styles shared by every view.
type Styles struct {
	Text       lipgloss.Style
	MutedText  lipgloss.Style
	FaintText  lipgloss.Style
	AccentText lipgloss.Style
	DangerText lipgloss.Style
	Title      lipgloss.Style

	status   map[booksapi.Status]string
	fallback string
}

// Styles builds the Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	fg := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	return Styles{
		Text:       fg(t.Text),
		MutedText:  fg(t.Muted),
		FaintText:  fg(t.Faint),
		AccentText: fg(t.Accent),
		DangerText: fg(t.Danger).Bold(true),
		Title:      fg(t.Warning).Bold(true),
		status:     t.Status,
		fallback:   t.Text,
	}
}

// StatusText colors a status cell. Unknown statuses use the text color.
func (s Styles) StatusText(status booksapi.Status) lipgloss.Style {
	color, ok := s.status[status]
	if !ok {
		color = s.fallback
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name, falling back to Nightfox.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

func nightfoxTheme() Theme {
	// https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name:          "Nightfox",
		Background:    "#131a24",
		SurfaceAlt:    "#212e3f",
		FocusBg:       "#29394f",
		SelectionBg:   "#2b3b51",
		SelectionText: "#cdcecf",
		Border:        "#39506d",
		BorderFocus:   "#719cd6",
		Text:          "#cdcecf",
		Muted:         "#738091",
		Faint:         "#71839b",
		Accent:        "#719cd6",
		Warning:       "#dbc074",
		Danger:        "#c94f6d",
		Status: map[booksapi.Status]string{
			booksapi.StatusPublished: "#81b29a",
			booksapi.StatusDraft:     "#dbc074",
		},
	}
}

func kanagawaTheme() Theme {
	// https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name:          "Kanagawa",
		Background:    "#16161D",
		SurfaceAlt:    "#2A2A37",
		FocusBg:       "#2A2A37",
		SelectionBg:   "#2D4F67",
		SelectionText: "#DCD7BA",
		Border:        "#54546D",
		BorderFocus:   "#7E9CD8",
		Text:          "#DCD7BA",
		Muted:         "#C8C093",
		Faint:         "#727169",
		Accent:        "#7E9CD8",
		Warning:       "#E6C384",
		Danger:        "#E46876",
		Status: map[booksapi.Status]string{
			booksapi.StatusPublished: "#98BB6C",
			booksapi.StatusDraft:     "#E6C384",
		},
	}
}

func slateTheme() Theme {
	// Tailwind slate/sky
	return Theme{
		Name:          "Slate",
		Background:    "#020617",
		SurfaceAlt:    "#1e293b",
		FocusBg:       "#283548",
		SelectionBg:   "#0284c7",
		SelectionText: "#f8fafc",
		Border:        "#334155",
		BorderFocus:   "#38bdf8",
		Text:          "#f1f5f9",
		Muted:         "#94a3b8",
		Faint:         "#64748b",
		Accent:        "#38bdf8",
		Warning:       "#f59e0b",
		Danger:        "#ef4444",
		Status: map[booksapi.Status]string{
			booksapi.StatusPublished: "#22c55e",
			booksapi.StatusDraft:     "#f59e0b",
		},
	}
}
