// Package tui provides the interactive `browse` surface for paging through
// search results without re-invoking the CLI per query.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"coderag/internal/store"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	kindStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	scoreStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	snippetStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Padding(0, 2)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	inputBarStyle = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderTop(true).Padding(0, 1)
)

// Searcher is the capability the browse model needs from the orchestrator:
// run a query under the given mode and return ranked results.
type Searcher func(query, mode string) ([]store.SearchResult, error)

// resultItem adapts a store.SearchResult to bubbles/list.Item.
type resultItem struct {
	result store.SearchResult
}

func (i resultItem) FilterValue() string { return i.result.Name + " " + i.result.FilePath }

// resultDelegate renders one resultItem per list row.
type resultDelegate struct{}

func (d resultDelegate) Height() int                         { return 1 }
func (d resultDelegate) Spacing() int                        { return 0 }
func (d resultDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d resultDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(resultItem)
	if !ok {
		return
	}
	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}
	name := it.result.Name
	if name == "" {
		name = "(anonymous)"
	}
	fmt.Fprintf(w, "%s%s %s  %s:%d  %s",
		cursor,
		titleStyle.Render(name),
		kindStyle.Render("["+it.result.Kind+"]"),
		it.result.FilePath, it.result.StartLine,
		scoreStyle.Render(fmt.Sprintf("%.3f", it.result.Score)),
	)
}

// keymap binds the browse model's extra key handling beyond list.Model's
// own navigation bindings.
type keymap struct {
	search key.Binding
	quit   key.Binding
	mode   key.Binding
}

func defaultKeymap() keymap {
	return keymap{
		search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		mode:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "cycle mode")),
	}
}

// Model is the browse screen's bubbletea model: a query bar over a
// results list, with the selected result's snippet shown below.
type Model struct {
	search  Searcher
	list    list.Model
	input   textinput.Model
	keys    keymap
	editing bool
	mode    string
	modes   []string
	status  string
	snippet bool
}

// New builds a browse Model. includeSnippet controls whether the selected
// result's snippet is shown below the results list.
func New(search Searcher, includeSnippet bool) Model {
	delegate := resultDelegate{}
	l := list.New(nil, delegate, 0, 0)
	l.Title = "coderag browse"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	ti := textinput.New()
	ti.Placeholder = "search query..."
	ti.Prompt = "/ "
	ti.CharLimit = 200

	return Model{
		search:  search,
		list:    l,
		input:   ti,
		keys:    defaultKeymap(),
		mode:    "hybrid",
		modes:   []string{"hybrid", "semantic", "keyword"},
		snippet: includeSnippet,
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 3
		m.list.SetSize(msg.Width, msg.Height-headerHeight)
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			switch msg.String() {
			case "enter":
				m.editing = false
				query := m.input.Value()
				m.input.Blur()
				return m, m.runSearch(query)
			case "esc":
				m.editing = false
				m.input.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.search):
			m.editing = true
			m.input.Focus()
			return m, nil
		case key.Matches(msg, m.keys.mode):
			m.cycleMode()
			if m.input.Value() != "" {
				return m, m.runSearch(m.input.Value())
			}
			return m, nil
		}

	case searchResultsMsg:
		m.status = msg.status
		items := make([]list.Item, len(msg.results))
		for i, r := range msg.results {
			items[i] = resultItem{result: r}
		}
		return m, m.list.SetItems(items)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) cycleMode() {
	for i, mode := range m.modes {
		if mode == m.mode {
			m.mode = m.modes[(i+1)%len(m.modes)]
			return
		}
	}
	m.mode = m.modes[0]
}

type searchResultsMsg struct {
	results []store.SearchResult
	status  string
}

func (m Model) runSearch(query string) tea.Cmd {
	search := m.search
	mode := m.mode
	return func() tea.Msg {
		results, err := search(query, mode)
		if err != nil {
			return searchResultsMsg{status: "error: " + err.Error()}
		}
		return searchResultsMsg{
			results: results,
			status:  fmt.Sprintf("%d results for %q (%s)", len(results), query, mode),
		}
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(m.list.View())
	b.WriteString("\n")
	if m.snippet {
		if it, ok := m.list.SelectedItem().(resultItem); ok && it.result.Snippet != "" {
			b.WriteString(snippetStyle.Render(it.result.Snippet))
			b.WriteString("\n")
		}
	}
	if m.editing {
		b.WriteString(inputBarStyle.Render(m.input.View()))
	} else {
		b.WriteString(inputBarStyle.Render("/ search   tab cycle mode (" + m.mode + ")   q quit"))
	}
	return b.String()
}

// Run starts the browse TUI and blocks until the user quits.
func Run(search Searcher, includeSnippet bool) error {
	p := tea.NewProgram(New(search, includeSnippet), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
