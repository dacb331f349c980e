package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-story/internal/world"
)

// PickerKeyMap defines the key bindings for the layout picker.
type PickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// DefaultPickerKeyMap returns default key bindings.
func DefaultPickerKeyMap() PickerKeyMap {
	return PickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("up", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("down", "next"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// PickerModel is the Bubble Tea model for choosing a layout.
type PickerModel struct {
	items    []world.LayoutInfo
	cursor   int
	width    int
	height   int
	keys     PickerKeyMap
	quitting bool
	selected *world.LayoutInfo // Set when the user picks a layout
}

// NewPickerModel creates a picker over the given layouts.
func NewPickerModel(items []world.LayoutInfo, width, height int) PickerModel {
	return PickerModel{
		items:  items,
		width:  width,
		height: height,
		keys:   DefaultPickerKeyMap(),
	}
}

// Init initializes the picker.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.Select):
			if len(m.items) > 0 {
				selected := m.items[m.cursor]
				m.selected = &selected
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the picker.
func (m PickerModel) View() string {
	if m.quitting || m.selected != nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	footerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	lines := []string{
		titleStyle.Render("  S T O R Y  "),
		"",
		"Select a layout",
		"",
	}
	for i, item := range m.items {
		line := fmt.Sprintf("  %s  (%s)", item.Title, item.ID)
		if i == m.cursor {
			line = activeStyle.Render(fmt.Sprintf("> %s  (%s)", item.Title, item.ID))
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", footerStyle.Render("Up/Down: Navigate  |  Enter: Play  |  Q: Quit"))

	block := lipgloss.JoinVertical(lipgloss.Center, lines...)
	if m.width == 0 {
		return block + "\n"
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
}

// Selected returns the picked layout, or nil if none was picked.
func (m PickerModel) Selected() *world.LayoutInfo {
	return m.selected
}

// RunPicker shows the layout picker and returns the chosen layout id, or ""
// when the user quit without choosing.
func RunPicker(width, height int) (string, error) {
	p := tea.NewProgram(
		NewPickerModel(world.Layouts(), width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(PickerModel)
	if !ok || m.Selected() == nil {
		return "", nil
	}
	return m.Selected().ID, nil
}
