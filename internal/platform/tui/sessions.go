package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-story/internal/storage"
)

// Sessions layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the layout sidebar
	sidebarWidth       = 20  // Width of layout sidebar
	maxSessions        = 100 // Max sessions to load per layout
)

// SessionStore is the part of the storage the viewer reads.
type SessionStore interface {
	Layouts() ([]string, error)
	RecentSessions(layout string, limit int) ([]storage.Session, error)
}

// SessionsKeyMap defines the key bindings for the session log viewer.
type SessionsKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextLayout key.Binding
	PrevLayout key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SessionsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLayout, k.PrevLayout, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k SessionsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLayout, k.PrevLayout},
		{k.Quit},
	}
}

// DefaultSessionsKeyMap returns default key bindings.
func DefaultSessionsKeyMap() SessionsKeyMap {
	return SessionsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextLayout: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next layout"),
		),
		PrevLayout: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev layout"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SessionsModel is the Bubble Tea model for the session log.
type SessionsModel struct {
	store       SessionStore
	layouts     []string
	cursor      int
	sessions    []storage.Session
	loadErr     error
	table       table.Model
	help        help.Model
	keys        SessionsKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewSessionsModel creates a session log viewer.
func NewSessionsModel(store SessionStore, width, height int) SessionsModel {
	m := SessionsModel{
		store:       store,
		keys:        DefaultSessionsKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.layouts, m.loadErr = store.Layouts()
	m.table = m.createTable()
	if len(m.layouts) > 0 {
		m.loadSessions(m.layouts[0])
	}
	return m
}

// createTable creates a new table sized to the window.
func (m *SessionsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Frames", Width: 8},
		{Title: "Time", Width: 8},
		{Title: "Avg FPS", Width: 8},
		{Title: "Pacing", Width: 12},
		{Title: "Date", Width: 14},
	}

	height := m.height - 8 // Leave room for header, help, and margins
	if height < 3 {
		height = 3
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

// loadSessions loads the log for one layout.
func (m *SessionsModel) loadSessions(layout string) {
	m.sessions, m.loadErr = m.store.RecentSessions(layout, maxSessions)
	m.updateTableRows()
}

// updateTableRows refills the table from the loaded sessions.
func (m *SessionsModel) updateTableRows() {
	m.table.SetRows(sessionRows(m.sessions))
	m.table.GotoTop()
}

// sessionRows formats sessions as table rows.
func sessionRows(sessions []storage.Session) []table.Row {
	rows := make([]table.Row, len(sessions))
	for i, s := range sessions {
		rows[i] = table.Row{
			fmt.Sprintf("%d", s.ID),
			fmt.Sprintf("%d", s.Frames),
			fmt.Sprintf("%.1fs", float64(s.ElapsedMS)/1000),
			fmt.Sprintf("%.1f", s.AverageFPS()),
			s.Pacing,
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the model.
func (m SessionsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the viewer.
func (m SessionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextLayout):
			if len(m.layouts) > 0 {
				m.cursor = (m.cursor + 1) % len(m.layouts)
				m.loadSessions(m.layouts[m.cursor])
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevLayout):
			if len(m.layouts) > 0 {
				m.cursor = (m.cursor - 1 + len(m.layouts)) % len(m.layouts)
				m.loadSessions(m.layouts[m.cursor])
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling and everything else goes to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Layout returns the layout currently shown, or "" when the log is empty.
func (m SessionsModel) Layout() string {
	if len(m.layouts) == 0 {
		return ""
	}
	return m.layouts[m.cursor]
}

// View renders the viewer.
func (m SessionsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "SESSIONS"
	if layout := m.Layout(); layout != "" {
		title = fmt.Sprintf("SESSIONS - %s", layout)
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, titleStyle.Render(title)))
	b.WriteString("\n\n")

	content := m.renderTableContent()
	if m.showSidebar {
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", content)
	}
	b.WriteString(content)

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar renders the layout list.
func (m SessionsModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Layouts\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, layout := range m.layouts {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + layout))
		sidebar.WriteString("\n")
	}

	return sidebarStyle.Render(sidebar.String())
}

// renderTableContent renders the table, the load error, or an empty message.
func (m SessionsModel) renderTableContent() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return boxStyle.Render(emptyStyle.Render("Cannot read the session log:\n" + m.loadErr.Error()))
	case len(m.sessions) == 0:
		return boxStyle.Render(emptyStyle.Render("No sessions recorded yet.\nRun 'story play --db <path>' to record one."))
	}
	return boxStyle.Render(m.table.View())
}

// RunSessions runs the session log viewer until the user quits.
func RunSessions(store SessionStore, width, height int) error {
	p := tea.NewProgram(
		NewSessionsModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
