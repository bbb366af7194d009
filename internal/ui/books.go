package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/five82/bookshelf/internal/booksapi"
)

// renderBooks renders the table pane.
func (m Model) renderBooks(height int) string {
	styles := m.theme.Styles()
	title := fmt.Sprintf("Books (%d)", len(m.view.Books))

	if m.view.Loading {
		loader := m.spinner.View() + " " + styles.MutedText.Render("Loading...")
		content := lipgloss.Place(m.width-2, height-2, lipgloss.Center, lipgloss.Center, loader)
		return m.renderTitledBox(title, content, m.width, height, false)
	}
	if len(m.view.Books) == 0 {
		content := lipgloss.Place(m.width-2, height-2, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("No books yet. Press n to create one."))
		return m.renderTitledBox(title, content, m.width, height, true)
	}
	return m.renderTitledBox(title, m.renderTable(m.width-2), m.width, height, true)
}

// renderTable renders the header row followed by one row per book.
func (m Model) renderTable(width int) string {
	bgColor := m.theme.FocusBg
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()
	cols := columnWidths(width)

	header := bg.Render(joinColumns(cols, "Title", "Year", "Status", "Author"), styles.MutedText.Bold(true))
	lines := []string{bg.FillLine(header, width)}

	for i, book := range m.view.Books {
		lines = append(lines, m.formatBookRow(book, cols, width, i == m.selected))
	}
	return strings.Join(lines, "\n")
}

// formatBookRow renders one book. The selected row uses the selection
// colors for every cell to keep contrast.
func (m Model) formatBookRow(book booksapi.Book, cols [4]int, width int, selected bool) string {
	bgColor := m.theme.FocusBg
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)

	var textStyle, statusStyle lipgloss.Style
	if selected {
		textStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		statusStyle = textStyle
	} else {
		styles := m.theme.Styles()
		textStyle = styles.Text
		statusStyle = styles.StatusText(book.Status)
	}

	title := bg.Render(pad(book.Title, cols[0]), textStyle)
	year := bg.Render(pad(strconv.Itoa(book.Year), cols[1]), textStyle)
	status := bg.Render(pad(book.Status.Label(), cols[2]), statusStyle)
	author := bg.Render(pad(book.Author.Name, cols[3]), textStyle)

	row := title + bg.Space() + year + bg.Space() + status + bg.Space() + author
	return bg.FillLine(row, width)
}

// renderFilter renders the author filter line.
func (m Model) renderFilter() string {
	styles := m.theme.Styles()
	label := styles.MutedText.Render("By Author: ")

	value := "Select an Author"
	if author, ok := m.view.FilterAuthor(); ok {
		value = author.Name
	} else if m.view.AuthorFilter != nil {
		value = fmt.Sprintf("Author #%d", *m.view.AuthorFilter)
	}
	hint := styles.FaintText.Render("  (a/A to change, 0 for all)")
	return label + styles.AccentText.Render(value) + hint
}

// renderTitledBox renders content in a box with the title embedded in the top border.
// Matches the frame style: ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	titleLen := runewidth.StringWidth(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).Background(lipgloss.Color(bgColorStr))
	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines, bg.Render("│", borderStyle)+contentStyle.Render(line)+bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}

// columnWidths splits width into title, year, status and author columns.
func columnWidths(width int) [4]int {
	author := colAuthor
	title := width - colYear - colStatus - author - 3
	if title < minTitle {
		author = max(author-(minTitle-title), 8)
		title = max(width-colYear-colStatus-author-3, minTitle)
	}
	return [4]int{title, colYear, colStatus, author}
}

func joinColumns(cols [4]int, values ...string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = pad(v, cols[i])
	}
	return strings.Join(parts, " ")
}

// pad truncates or right-pads s to exactly width cells.
func pad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(s, width, "…")
	return runewidth.FillRight(s, width)
}
