// Package game owns the main loop: it brings the platform up, builds the
// map and the player, then runs input -> update -> draw -> present -> sleep
// once per frame until escape is pressed.
package game

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-story/internal/assets"
	"github.com/vovakirdan/tui-story/internal/core"
	"github.com/vovakirdan/tui-story/internal/graphics"
	"github.com/vovakirdan/tui-story/internal/sprite"
	"github.com/vovakirdan/tui-story/internal/units"
	"github.com/vovakirdan/tui-story/internal/world"
)

// View size in tiles: 640 x 480 pixels.
const (
	ViewCols units.Tile = 20
	ViewRows units.Tile = 15
)

var (
	// ErrResourceLoad means the map or the player could not be built.
	// The loop never runs in that case.
	ErrResourceLoad = errors.New("game: cannot continue without sprite resources")
	// ErrAlreadyStarted is returned by Start while the loop is running.
	ErrAlreadyStarted = errors.New("game: already started")
	// ErrStopped is returned by Start once Stop has been called. A Game
	// runs at most once; create a new one to play again.
	ErrStopped = errors.New("game: stopped")
)

// State is the lifecycle stage of a Game.
type State int

const (
	StateUninitialized State = iota
	StateRunning
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Platform is the window and input collaborator.
type Platform interface {
	// Init brings up rendering and input and hides the cursor.
	Init() error
	// Quit tears down what Init brought up.
	Quit()

	core.EventSource
	graphics.Presenter
}

// ActorLoader builds the actor the loop updates and draws each frame.
type ActorLoader func(gfx *graphics.Graphics) (sprite.Updatable, error)

// PlayerSpec describes the default player sprite.
type PlayerSpec struct {
	Sheet    string
	Col, Row units.Tile
	Frames   units.Frame
	FPS      units.FPS
	X, Y     units.Game
}

// DefaultPlayer returns the walking player standing left of the obstacle course.
func DefaultPlayer() PlayerSpec {
	return PlayerSpec{
		Sheet:  "assets/base/MyChar.bmp",
		Col:    0,
		Row:    0,
		Frames: 3,
		FPS:    15,
		X:      units.Tile(6).ToGame(),
		Y:      units.Tile(13).ToGame(),
	}
}

// PlayerLoader loads the animated sprite described by spec.
func PlayerLoader(spec PlayerSpec) ActorLoader {
	return func(gfx *graphics.Graphics) (sprite.Updatable, error) {
		s, err := sprite.NewAnimated(gfx, spec.Sheet, spec.Col, spec.Row, 1, 1, spec.FPS, spec.Frames)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// Options configures a Game. Zero fields take defaults.
type Options struct {
	Runtime   core.RuntimeConfig
	Player    PlayerSpec
	LoadActor ActorLoader // overrides Player when set
	Clock     Clock
	Catalog   *assets.Catalog
	Logger    *log.Logger
}

// DefaultOptions returns options with the default runtime config and player.
func DefaultOptions() Options {
	return Options{
		Runtime: core.DefaultConfig(),
		Player:  DefaultPlayer(),
	}
}

// Stats summarizes a finished run.
type Stats struct {
	Frames  int          // Frames updated, drawn and presented
	Elapsed units.Millis // Clock time from the first frame to the end of the last
}

// Game is the loop owner.
type Game struct {
	cfg       core.RuntimeConfig
	platform  Platform
	clock     Clock
	catalog   *assets.Catalog
	logger    *log.Logger
	loadActor ActorLoader
	actorX    units.Game
	actorY    units.Game

	state      State
	platformUp bool
	gfx        *graphics.Graphics
	world      *world.Map
	actor      sprite.Updatable
	stats      Stats
}

// New creates a game driven by platform.
func New(platform Platform, opts Options) *Game {
	g := &Game{
		cfg:       opts.Runtime,
		platform:  platform,
		clock:     opts.Clock,
		catalog:   opts.Catalog,
		logger:    opts.Logger,
		loadActor: opts.LoadActor,
		actorX:    opts.Player.X,
		actorY:    opts.Player.Y,
	}

	if g.cfg.TargetFramerate <= 0 {
		g.cfg.TargetFramerate = core.DefaultConfig().TargetFramerate
	}
	if g.cfg.MapID == "" {
		g.cfg.MapID = core.DefaultConfig().MapID
	}
	if g.clock == nil {
		g.clock = NewSystemClock()
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.loadActor == nil {
		g.loadActor = PlayerLoader(opts.Player)
	}
	return g
}

// FrameDelay is the per-frame sleep for a target rate, in whole
// milliseconds: 60 fps gives 16, not 16.67.
func FrameDelay(targetFramerate int) units.Millis {
	return units.FPS(targetFramerate).FrameTime()
}

// State returns the current lifecycle stage.
func (g *Game) State() State {
	return g.state
}

// Stats returns the counters of the last run.
func (g *Game) Stats() Stats {
	return g.stats
}

// Map returns the world built by Start, or nil before that.
func (g *Game) Map() *world.Map {
	return g.world
}

// Start brings the platform up, builds the world and the player, and runs
// the loop until escape is pressed. It blocks for the whole run.
//
// A resource failure returns an error wrapping ErrResourceLoad before the
// first frame. The caller should treat it as fatal. Call Stop afterwards
// in every case to tear the platform down.
//
// Start returns ErrAlreadyStarted while a run is in progress and ErrStopped
// after Stop, including a Stop that came before any Start.
func (g *Game) Start() error {
	switch g.state {
	case StateRunning:
		return ErrAlreadyStarted
	case StateStopped:
		return ErrStopped
	}

	if g.catalog == nil {
		cat, err := assets.Default()
		if err != nil {
			g.state = StateStopped
			return fmt.Errorf("%w: %w", ErrResourceLoad, err)
		}
		g.catalog = cat
	}

	g.logger.Info("initializing platform")
	if err := g.platform.Init(); err != nil {
		g.state = StateStopped
		return fmt.Errorf("game: platform init: %w", err)
	}
	g.platformUp = true

	g.gfx = graphics.New(g.catalog, g.platform, ViewCols, ViewRows)

	m, err := world.CreateLayout(g.cfg.MapID, g.gfx)
	if err != nil {
		g.logger.Error("cannot build layout", "layout", g.cfg.MapID, "error", err)
		g.state = StateStopped
		return fmt.Errorf("%w: %w", ErrResourceLoad, err)
	}
	g.world = m

	actor, err := g.loadActor(g.gfx)
	if err != nil {
		g.logger.Error("cannot load player", "error", err)
		g.state = StateStopped
		return fmt.Errorf("%w: %w", ErrResourceLoad, err)
	}
	g.actor = actor
	g.logger.Info("player loaded")

	g.state = StateRunning
	g.eventLoop()
	g.state = StateStopped
	return nil
}

// Stop tears the platform down. It is safe to call more than once, and
// before or after Start.
func (g *Game) Stop() {
	if g.platformUp {
		g.logger.Info("quitting platform")
		g.platform.Quit()
		g.platformUp = false
	}
	g.state = StateStopped
}

// eventLoop runs frames until escape is seen. Exactly one event is polled
// per frame; anything else queued waits for later frames.
func (g *Game) eventLoop() {
	frameDelay := FrameDelay(g.cfg.TargetFramerate)
	lastUpdateTime := g.clock.Ticks()
	firstFrame := lastUpdateTime
	running := true

	g.logger.Info("loop started",
		"layout", g.cfg.MapID,
		"fps", g.cfg.TargetFramerate,
		"frame_delay_ms", int64(frameDelay),
		"pacing", g.cfg.Pacing.String(),
	)

	for running {
		startTime := g.clock.Ticks()

		// The quit takes effect at the next loop check, so this frame is
		// still drawn.
		if ev, ok := g.platform.Poll(); ok && ev.IsKeyDown(core.KeyEscape) {
			running = false
		}

		currentTime := g.clock.Ticks()
		g.update(currentTime - lastUpdateTime)
		lastUpdateTime = currentTime

		g.draw()
		g.gfx.SwitchBuffers()
		g.stats.Frames++

		g.clock.Sleep(g.frameSleep(startTime, frameDelay))
	}

	g.stats.Elapsed = g.clock.Ticks() - firstFrame
	g.logger.Info("loop stopped", "frames", g.stats.Frames, "elapsed_ms", int64(g.stats.Elapsed))
}

func (g *Game) update(elapsed units.Millis) {
	g.actor.StepTime(elapsed)
	g.actor.Update()
	g.world.Update(elapsed)
}

// draw paints back to front: backdrop, decorations, actor, foreground.
func (g *Game) draw() {
	g.world.DrawBackground(g.gfx)
	g.world.DrawSprites(g.gfx)
	g.actor.Draw(g.gfx, g.actorX, g.actorY)
	g.world.Draw(g.gfx)
}

// frameSleep returns the end-of-frame sleep. Fixed pacing ignores the time
// the frame took; compensated pacing subtracts it.
func (g *Game) frameSleep(startTime, frameDelay units.Millis) units.Millis {
	if g.cfg.Pacing != core.PacingCompensated {
		return frameDelay
	}
	spent := g.clock.Ticks() - startTime
	if spent >= frameDelay {
		return 0
	}
	return frameDelay - spent
}
