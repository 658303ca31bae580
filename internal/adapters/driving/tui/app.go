// Package tui implements the interactive catalog browser on bubbletea,
// following the Elm architecture: one model, messages in, view out.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fast10k/fast10k-cli/internal/core/domain"
	"github.com/fast10k/fast10k-cli/internal/core/ports/driving"
)

// searchTimeout bounds one interactive search, including a possible
// transparent index refresh.
const searchTimeout = 2 * time.Minute

// resultsMsg carries finished search results into the update loop.
type resultsMsg struct {
	docs []domain.Document
	err  error
}

// App is the TUI model.
type App struct {
	search driving.SearchService

	input    textinput.Model
	styles   Styles
	results  []domain.Document
	selected int
	status   string
	err      error

	width   int
	height  int
	loading bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the TUI against the search service.
func NewApp(search driving.SearchService) *App {
	input := textinput.New()
	input.Placeholder = "ticker, e.g. AAPL or 7203"
	input.Focus()
	input.CharLimit = 64

	return &App{
		search: search,
		input:  input,
		styles: DefaultStyles(),
		status: "Enter a ticker and press Enter to search",
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.SetWindowTitle("fast10k - filing search"),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case resultsMsg:
		a.loading = false
		if msg.err != nil {
			a.err = msg.err
			a.status = msg.err.Error()
			return a, nil
		}
		a.err = nil
		a.results = msg.docs
		a.selected = 0
		a.status = fmt.Sprintf("%d result(s)", len(msg.docs))
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if !a.input.Focused() || msg.String() == "ctrl+c" {
				return a, tea.Quit
			}
		case "enter":
			return a, a.runSearch()
		case "esc":
			a.input.SetValue("")
			a.results = nil
			a.status = "Enter a ticker and press Enter to search"
			a.input.Focus()
			return a, nil
		case "up", "k":
			if !a.input.Focused() && a.selected > 0 {
				a.selected--
				return a, nil
			}
		case "down", "j":
			if !a.input.Focused() && a.selected < len(a.results)-1 {
				a.selected++
				return a, nil
			}
		case "tab":
			if a.input.Focused() {
				a.input.Blur()
			} else {
				a.input.Focus()
			}
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// runSearch kicks off an asynchronous catalog search for the current
// input. A stale EDINET index refreshes transparently underneath.
func (a *App) runSearch() tea.Cmd {
	ticker := a.input.Value()
	if ticker == "" {
		return nil
	}

	a.loading = true
	a.status = "Searching " + ticker + "..."
	a.input.Blur()

	search := a.search
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()

		q := domain.Query{Ticker: ticker}
		if domain.SourceEDINET.NormalizeTicker(ticker) != ticker || isNumeric(ticker) {
			q.Source = domain.SourceEDINET
			q.Ticker = domain.SourceEDINET.NormalizeTicker(ticker)
		}

		docs, err := search.Search(ctx, q, 50)
		return resultsMsg{docs: docs, err: err}
	}
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// SelectedDocument returns the highlighted result, if any.
func (a *App) SelectedDocument() *domain.Document {
	if a.selected < 0 || a.selected >= len(a.results) {
		return nil
	}
	return &a.results[a.selected]
}
