package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ProgressUpdate either advances the counter line or carries a line to
// print above it.
type ProgressUpdate struct {
	Current int
	Total   int
	Name    string
	Line    string
}

type Model struct {
	updates  <-chan ProgressUpdate
	current  int
	total    int
	name     string
	quitting bool
}

type doneMsg struct{}

type updateMsg ProgressUpdate

func NewModel(updates <-chan ProgressUpdate) Model {
	return Model{updates: updates}
}

func (m Model) Init() tea.Cmd {
	return listenForUpdates(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		if msg.Line != "" {
			return m, tea.Sequence(tea.Println(msg.Line), listenForUpdates(m.updates))
		}
		m.current = msg.Current
		m.total = msg.Total
		m.name = msg.Name
		return m, listenForUpdates(m.updates)
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	default:
		return m, nil
	}
}

// View renders the single counter line; it is empty once the run is done so
// the line is cleared before the summary prints.
func (m Model) View() string {
	if m.quitting || m.total == 0 {
		return ""
	}
	return AccentStyle.Render(fmt.Sprintf("Processing: %d/%d (%s)", m.current, m.total, m.name))
}

func listenForUpdates(updates <-chan ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return updateMsg(update)
	}
}
