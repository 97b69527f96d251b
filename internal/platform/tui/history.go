package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ghostchase/internal/storage"
)

// History layout constants
const (
	maxRuns          = 100 // Max runs to load
	detailHeight     = 8   // Rows reserved for the level breakdown
	minHistoryHeight = 6
)

// HistoryStore is the part of the results journal the history screen reads.
type HistoryStore interface {
	RecentRuns(limit int) ([]storage.RunEntry, error)
	RunLevels(runID int64) ([]storage.LevelEntry, error)
}

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Quit}}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "previous run"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next run"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing recorded runs.
type HistoryModel struct {
	store    HistoryStore
	runs     []storage.RunEntry
	levels   []storage.LevelEntry // levels of the selected run
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	err      error
	width    int
	height   int
	quitting bool
}

// NewHistoryModel creates a history model and loads the recent runs.
func NewHistoryModel(store HistoryStore, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		store:  store,
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}

	m.runs, m.err = store.RecentRuns(maxRuns)
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates the runs table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Run", Width: 6},
		{Title: "Date", Width: 14},
		{Title: "Policy", Width: 8},
		{Title: "Won", Width: 7},
		{Title: "Steps", Width: 7},
		{Title: "Outcome", Width: 16},
	}

	height := m.height - detailHeight - 6
	if height < minHistoryHeight {
		height = minHistoryHeight
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table from the loaded runs.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", r.ID),
			r.CreatedAt.Format("Jan 02 15:04"),
			r.Policy,
			fmt.Sprintf("%d/%d", r.Won, r.Levels),
			fmt.Sprintf("%d", r.Steps),
			r.Outcome,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
	m.loadLevels()
}

// loadLevels loads the level breakdown of the selected run.
func (m *HistoryModel) loadLevels() {
	m.levels = nil
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return
	}
	levels, err := m.store.RunLevels(m.runs[i].ID)
	if err != nil {
		m.err = err
		return
	}
	m.levels = levels
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			m.loadLevels()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(cursor)
		m.loadLevels()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.MarginBottom(1).Render("RUN HISTORY"))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(tableStyle.Render(emptyStyle.Render("No runs recorded yet.\nPlay with --db to keep a journal.")))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
		b.WriteString("\n")
		b.WriteString(m.renderLevels())
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(lostStyle.Render(m.err.Error()))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderLevels renders the level breakdown of the selected run.
func (m HistoryModel) renderLevels() string {
	if len(m.levels) == 0 {
		return statusStyle.Render("  no levels were loaded in this run")
	}

	var b strings.Builder
	for i, l := range m.levels {
		if i == detailHeight {
			b.WriteString(statusStyle.Render(fmt.Sprintf("  ... +%d more", len(m.levels)-detailHeight)))
			break
		}
		line := fmt.Sprintf("  %2d  %-30s %-16s steps %-5d collected %d/%d",
			l.Number, l.Path, l.State, l.Steps, l.Collected, l.Total)
		b.WriteString(statusStyle.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// RunHistory runs the history screen.
func RunHistory(store HistoryStore, width, height int) error {
	model := NewHistoryModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
