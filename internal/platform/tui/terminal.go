// Package tui is the terminal platform: a Bubble Tea program owns the
// screen and the keyboard while the game loop pushes finished frames to it
// and polls the keys it collected.
package tui

import (
	"errors"
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-story/internal/core"
)

// eventBuffer bounds the keys held between polls. Keys beyond it are dropped.
const eventBuffer = 64

// ErrNotRunning is returned when the terminal is used before Init.
var ErrNotRunning = errors.New("tui: terminal not running")

// frameMsg carries a rendered frame into the program.
type frameMsg string

// TerminalOptions configures a Terminal. Zero fields take defaults.
type TerminalOptions struct {
	Keys   *KeyMap
	Logger *log.Logger
	// Program options appended after the alternate screen option; tests use
	// tea.WithInput and tea.WithOutput here.
	ProgramOptions []tea.ProgramOption
}

// Terminal implements the game platform on top of Bubble Tea.
type Terminal struct {
	mapper   *KeyMapper
	logger   *log.Logger
	progOpts []tea.ProgramOption

	events  chan core.Event
	program *tea.Program
	done    chan struct{}

	mu      sync.Mutex
	final   terminalModel
	runErr  error
	dropped int
}

// NewTerminal creates a terminal platform. Nothing touches the tty until Init.
func NewTerminal(opts TerminalOptions) *Terminal {
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Terminal{
		mapper:   NewKeyMapper(keys),
		logger:   logger,
		progOpts: opts.ProgramOptions,
	}
}

// Init switches to the alternate screen, hides the cursor and starts
// collecting keys.
func (t *Terminal) Init() error {
	if t.program != nil {
		return errors.New("tui: terminal already initialized")
	}

	t.events = make(chan core.Event, eventBuffer)
	t.done = make(chan struct{})

	model := terminalModel{mapper: t.mapper, push: t.push}
	opts := append([]tea.ProgramOption{tea.WithAltScreen()}, t.progOpts...)
	t.program = tea.NewProgram(model, opts...)

	go func() {
		final, err := t.program.Run()
		t.mu.Lock()
		if m, ok := final.(terminalModel); ok {
			t.final = m
		}
		t.runErr = err
		t.mu.Unlock()
		close(t.done)
	}()

	t.logger.Info("terminal initialized")
	return nil
}

// push queues ev without blocking the Bubble Tea event loop.
func (t *Terminal) push(ev core.Event) {
	select {
	case t.events <- ev:
	default:
		t.mu.Lock()
		t.dropped++
		t.mu.Unlock()
	}
}

// Poll returns at most one pending event and never blocks. If the program
// has died underneath the loop it reports escape so the loop can end.
func (t *Terminal) Poll() (core.Event, bool) {
	if t.program == nil {
		return core.Event{}, false
	}
	select {
	case ev := <-t.events:
		return ev, true
	default:
	}
	select {
	case <-t.done:
		return core.Press(core.KeyEscape), true
	default:
		return core.Event{}, false
	}
}

// Present renders s and hands it to the program for display.
func (t *Terminal) Present(s *core.Screen) {
	if t.program == nil {
		return
	}
	t.program.Send(frameMsg(RenderScreen(s)))
}

// Quit restores the terminal and waits for the program to exit.
func (t *Terminal) Quit() {
	if t.program == nil {
		return
	}
	t.program.Quit()
	<-t.done
	t.program = nil

	if err := t.Err(); err != nil {
		t.logger.Error("terminal exited with error", "error", err)
	}
	if n := t.Dropped(); n > 0 {
		t.logger.Warn("keys dropped while the loop was busy", "count", n)
	}
	t.logger.Info("terminal restored")
}

// Err returns the error the program exited with, if any.
func (t *Terminal) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.runErr != nil && !errors.Is(t.runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", t.runErr)
	}
	return nil
}

// Dropped returns how many keys were discarded because the buffer was full.
func (t *Terminal) Dropped() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dropped
}

// LastFrame returns the last frame the program displayed before exiting.
func (t *Terminal) LastFrame() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.final.frame
}

// terminalModel only displays frames and forwards keys. It never quits on
// its own; the loop decides when to stop.
type terminalModel struct {
	mapper *KeyMapper
	push   func(core.Event)
	frame  string
	width  int
	height int
}

func (m terminalModel) Init() tea.Cmd {
	return nil
}

func (m terminalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if ev, ok := m.mapper.MapKey(msg); ok {
			m.push(ev)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case frameMsg:
		m.frame = string(msg)
	}
	return m, nil
}

func (m terminalModel) View() string {
	if m.width == 0 || m.height == 0 {
		return m.frame
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.frame)
}
