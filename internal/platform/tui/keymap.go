package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-story/internal/core"
)

// KeyMap holds the play bindings. Terminals report presses only, so every
// mapped key yields a key-down event.
type KeyMap struct {
	Quit  key.Binding
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding
	Jump  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Jump, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Jump, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings. ctrl+c counts as escape
// because the terminal is in raw mode while playing.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("left/a", "walk left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("right/d", "walk right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("up/w", "look up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("down/s", "look down"),
		),
		Jump: key.NewBinding(
			key.WithKeys(" ", "z"),
			key.WithHelp("space/z", "jump"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to loop events.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a mapper with the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	return &KeyMapper{keys: keys}
}

// MapKey returns the event for msg, or false for unbound keys.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (core.Event, bool) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.Press(core.KeyEscape), true
	case key.Matches(msg, km.keys.Left):
		return core.Press(core.KeyLeft), true
	case key.Matches(msg, km.keys.Right):
		return core.Press(core.KeyRight), true
	case key.Matches(msg, km.keys.Up):
		return core.Press(core.KeyUp), true
	case key.Matches(msg, km.keys.Down):
		return core.Press(core.KeyDown), true
	case key.Matches(msg, km.keys.Jump):
		return core.Press(core.KeyJump), true
	}
	return core.Event{}, false
}
