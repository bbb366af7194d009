package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/five82/bookshelf/internal/booksapi"
)

const defaultTableWidth = 100

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#719cd6")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#39506d"))
)

func terminalFd(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}

func isTerminal(w io.Writer) bool {
	_, ok := terminalFd(w)
	return ok
}

func terminalWidth(w io.Writer) int {
	fd, ok := terminalFd(w)
	if !ok {
		return defaultTableWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultTableWidth
	}
	return width
}

// writeRows prints a bordered table on a terminal and tab separated values
// otherwise, so output can be piped into cut or awk.
func writeRows(w io.Writer, headers []string, rows [][]string, noColor bool) error {
	if !isTerminal(w) {
		for _, row := range rows {
			if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
				return err
			}
		}
		return nil
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		Width(min(terminalWidth(w), defaultTableWidth)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				if noColor {
					return cellStyle.Bold(true)
				}
				return headerStyle
			}
			return cellStyle
		})
	if !noColor {
		t = t.BorderStyle(borderStyle)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func writeBooks(w io.Writer, books []booksapi.Book, noColor bool) error {
	rows := make([][]string, 0, len(books))
	for _, b := range books {
		rows = append(rows, []string{
			strconv.FormatInt(b.ID, 10),
			b.Title,
			strconv.Itoa(b.Year),
			b.Status.Label(),
			b.Author.Name,
		})
	}
	return writeRows(w, []string{"ID", "Title", "Year", "Status", "Author"}, rows, noColor)
}

func writeAuthors(w io.Writer, authors []booksapi.Author, noColor bool) error {
	rows := make([][]string, 0, len(authors))
	for _, a := range authors {
		rows = append(rows, []string{strconv.FormatInt(a.ID, 10), a.Name})
	}
	return writeRows(w, []string{"ID", "Name"}, rows, noColor)
}
