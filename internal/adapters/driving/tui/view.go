package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("fast10k"))
	b.WriteString("\n\n")
	b.WriteString(a.styles.InputBox.Render(a.input.View()))
	b.WriteString("\n\n")

	if len(a.results) > 0 {
		b.WriteString(a.renderResults())
		b.WriteString("\n")
	}

	status := a.status
	if a.err != nil {
		status = a.styles.Error.Render(status)
	} else {
		status = a.styles.Status.Render(status)
	}
	b.WriteString(status)
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("enter search · tab focus · j/k move · esc clear · q quit"))

	return b.String()
}

func (a *App) renderResults() string {
	header := fmt.Sprintf("%-12s %-8s %-30s %-28s %s",
		"DATE", "SYM", "COMPANY", "TYPE", "FORMAT")

	rows := []string{a.styles.TableHeader.Render(header)}
	visible := a.visibleRows()
	for i, doc := range a.results {
		if i >= visible {
			rows = append(rows, a.styles.Help.Render(fmt.Sprintf("… %d more", len(a.results)-visible)))
			break
		}
		row := fmt.Sprintf("%-12s %-8s %-30s %-28s %s",
			doc.DateString(), doc.Ticker,
			clip(doc.CompanyName, 30), clip(doc.FilingType.String(), 28), doc.Format)
		if i == a.selected {
			row = a.styles.Selected.Render(row)
		} else {
			row = a.styles.Row.Render(row)
		}
		rows = append(rows, row)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// visibleRows caps the table to the terminal height, leaving room for
// the input, status and help lines.
func (a *App) visibleRows() int {
	if a.height == 0 {
		return 20
	}
	rows := a.height - 10
	if rows < 3 {
		rows = 3
	}
	return rows
}

// clip shortens a cell to width runes.
func clip(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
