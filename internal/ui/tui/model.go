// Package tui is the interactive watch screen: one row per source with its
// latest outcome, and the diagnostic or symbol table of the selected row.
package tui

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"splc/internal/core/app"
	"splc/internal/ui/report"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981")).
		Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

// entry is the latest known outcome for one source.
type entry struct {
	path    string
	ok      bool
	summary string
	detail  string
	symbols string
	at      time.Time
}

func (e entry) Title() string { return e.path }
func (e entry) Description() string {
	return e.at.Format("15:04:05") + "  " + e.summary
}
func (e entry) FilterValue() string { return e.path }

type panelMode int

const (
	panelDetail panelMode = iota
	panelSymbols
)

// updateMsg carries one rendered pipeline outcome into the program.
type updateMsg entry

type model struct {
	files      list.Model
	entries    map[string]entry
	mode       panelMode
	runs       int
	failures   int
	lastUpdate time.Time
}

func initialModel() model {
	files := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	files.Title = "Sources"
	files.SetShowStatusBar(false)
	files.SetFilteringEnabled(true)
	return model{files: files, entries: map[string]entry{}}
}

// fromUpdate renders u while the source it came from is still on disk.
func fromUpdate(u app.Update) updateMsg {
	e := entry{path: u.Path, at: u.At, ok: u.Err == nil}
	st := report.Styles{Color: true}
	var buf bytes.Buffer
	if u.Err != nil {
		src, _ := os.ReadFile(u.Path)
		_ = report.Diagnostic(&buf, u.Err, string(src), st)
		e.summary = failStyle.Render("failed")
		e.detail = buf.String()
		return updateMsg(e)
	}
	_ = report.Summary(&buf, u.Result, st)
	e.summary = okStyle.Render("ok") + fmt.Sprintf(" %d tokens, %d symbols", len(u.Result.Tokens), u.Result.Symbols.Len())
	e.detail = buf.String()
	buf.Reset()
	_ = report.Symbols(&buf, u.Result.Symbols, report.FormatText, st)
	e.symbols = buf.String()
	return updateMsg(e)
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.files.FilterState() != list.Filtering {
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "tab":
				if m.mode == panelDetail {
					m.mode = panelSymbols
				} else {
					m.mode = panelDetail
				}
				return m, nil
			}
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		height := (msg.Height - v - 6) / 2
		if height < 5 {
			height = 5
		}
		m.files.SetSize(msg.Width-h, height)
	case updateMsg:
		e := entry(msg)
		m.entries[e.path] = e
		m.runs++
		if !e.ok {
			m.failures++
		}
		m.lastUpdate = e.at
		m.files.SetItems(m.items())
		return m, nil
	}

	var cmd tea.Cmd
	m.files, cmd = m.files.Update(msg)
	return m, cmd
}

func (m model) items() []list.Item {
	paths := make([]string, 0, len(m.entries))
	for p := range m.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	items := make([]list.Item, 0, len(paths))
	for _, p := range paths {
		items = append(items, m.entries[p])
	}
	return items
}

func (m model) selected() (entry, bool) {
	e, ok := m.files.SelectedItem().(entry)
	return e, ok
}

func (m model) View() string {
	failing := 0
	for _, e := range m.entries {
		if !e.ok {
			failing++
		}
	}
	status := statusStyle.Render(fmt.Sprintf("Last update: %s | %d sources | %d runs, %d failed",
		m.lastUpdate.Format("15:04:05"), len(m.entries), m.runs, m.failures))
	summary := okStyle.Render("All sources accepted")
	if failing > 0 {
		summary = failStyle.Render(fmt.Sprintf("%d failing", failing))
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("SPL Watch"), status, summary)
	return docStyle.Render(header + "\n" + renderHelp(m) + "\n\n" + m.files.View() + "\n\n" + renderPanel(m))
}
