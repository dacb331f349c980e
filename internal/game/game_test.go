package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-story/internal/core"
	"github.com/vovakirdan/tui-story/internal/graphics"
	"github.com/vovakirdan/tui-story/internal/sprite"
	"github.com/vovakirdan/tui-story/internal/units"
)

// pollLimit ends a runaway loop instead of hanging the test.
const pollLimit = 1000

// fakePlatform replays one scripted poll result per frame. A nil entry
// means no event was pending that frame.
type fakePlatform struct {
	script   []*core.Event
	polls    int
	inits    int
	quits    int
	initErr  error
	presents []string
	journal  *[]string
}

func (p *fakePlatform) Init() error {
	p.inits++
	return p.initErr
}

func (p *fakePlatform) Quit() { p.quits++ }

func (p *fakePlatform) Poll() (core.Event, bool) {
	p.polls++
	if p.polls > pollLimit {
		return core.Press(core.KeyEscape), true
	}
	if len(p.script) == 0 {
		return core.Event{}, false
	}
	ev := p.script[0]
	p.script = p.script[1:]
	if ev == nil {
		return core.Event{}, false
	}
	return *ev, true
}

func (p *fakePlatform) Present(s *core.Screen) {
	p.presents = append(p.presents, s.String())
	if p.journal != nil {
		*p.journal = append(*p.journal, "present")
	}
}

// fakeClock only moves when slept on, or when work is simulated.
type fakeClock struct {
	now    units.Millis
	sleeps []units.Millis
}

func (c *fakeClock) Ticks() units.Millis { return c.now }

func (c *fakeClock) Sleep(d units.Millis) {
	c.sleeps = append(c.sleeps, d)
	c.now += d
}

// fakeActor records the calls the loop makes on it.
type fakeActor struct {
	steps    []units.Millis
	updates  int
	draws    int
	journal  *[]string
	onUpdate func()
}

func (a *fakeActor) log(s string) {
	if a.journal != nil {
		*a.journal = append(*a.journal, s)
	}
}

func (a *fakeActor) Draw(graphics.Context, units.Game, units.Game) {
	a.draws++
	a.log("draw")
}

func (a *fakeActor) StepTime(elapsed units.Millis) {
	a.steps = append(a.steps, elapsed)
	a.log("step")
}

func (a *fakeActor) Update() {
	a.updates++
	a.log("update")
	if a.onUpdate != nil {
		a.onUpdate()
	}
}

func key(k core.Key) *core.Event {
	ev := core.Press(k)
	return &ev
}

// quitOn scripts escape on the given 1-based frame with idle frames before it.
func quitOn(frame int) []*core.Event {
	script := make([]*core.Event, frame)
	script[frame-1] = key(core.KeyEscape)
	return script
}

func newTestGame(p *fakePlatform, clock *fakeClock, actor *fakeActor, rt core.RuntimeConfig) *Game {
	opts := DefaultOptions()
	opts.Runtime = rt
	opts.Clock = clock
	opts.LoadActor = func(*graphics.Graphics) (sprite.Updatable, error) { return actor, nil }
	return New(p, opts)
}

func TestFrameDelay(t *testing.T) {
	tests := []struct {
		rate int
		want units.Millis
	}{
		{60, 16},
		{30, 33},
		{1, 1000},
		{1000, 1},
		{0, 0},
	}

	for _, tt := range tests {
		if got := FrameDelay(tt.rate); got != tt.want {
			t.Errorf("FrameDelay(%d) = %d, want %d", tt.rate, got, tt.want)
		}
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "uninitialized", StateUninitialized.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "stopped", StateStopped.String())
	assert.Equal(t, "State(9)", State(9).String())
}

func TestLoopRunsUntilEscape(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		p := &fakePlatform{script: quitOn(n)}
		actor := &fakeActor{}
		g := newTestGame(p, &fakeClock{}, actor, core.DefaultConfig())

		require.NoError(t, g.Start())

		// The quit frame is still updated, drawn and presented.
		assert.Equal(t, n, actor.updates, "updates for quit on frame %d", n)
		assert.Equal(t, n, actor.draws, "draws for quit on frame %d", n)
		assert.Len(t, p.presents, n)
		assert.Equal(t, n, p.polls)
		assert.Equal(t, n, g.Stats().Frames)
		assert.Equal(t, StateStopped, g.State())
	}
}

func TestLoopPollsOneEventPerFrame(t *testing.T) {
	// Jump and escape are both pending before the first frame; escape is
	// only seen on the second poll.
	p := &fakePlatform{script: []*core.Event{key(core.KeyJump), key(core.KeyEscape)}}
	actor := &fakeActor{}
	g := newTestGame(p, &fakeClock{}, actor, core.DefaultConfig())

	require.NoError(t, g.Start())
	assert.Equal(t, 2, actor.updates)
	assert.Equal(t, 2, p.polls)
}

func TestLoopIgnoresOtherKeys(t *testing.T) {
	p := &fakePlatform{script: []*core.Event{
		key(core.KeyLeft),
		nil,
		{Type: core.EventKeyUp, Key: core.KeyEscape},
		key(core.KeyUnknown),
		key(core.KeyEscape),
	}}
	actor := &fakeActor{}
	g := newTestGame(p, &fakeClock{}, actor, core.DefaultConfig())

	require.NoError(t, g.Start())
	assert.Equal(t, 5, actor.updates)
}

func TestLoopFrameOrder(t *testing.T) {
	var journal []string
	p := &fakePlatform{script: quitOn(2), journal: &journal}
	actor := &fakeActor{journal: &journal}
	g := newTestGame(p, &fakeClock{}, actor, core.DefaultConfig())

	require.NoError(t, g.Start())
	want := []string{
		"step", "update", "draw", "present",
		"step", "update", "draw", "present",
	}
	assert.Equal(t, want, journal)
}

func TestLoopFixedPacing(t *testing.T) {
	clock := &fakeClock{}
	actor := &fakeActor{}
	// Each update takes 6ms of simulated work.
	actor.onUpdate = func() { clock.now += 6 }
	g := newTestGame(&fakePlatform{script: quitOn(4)}, clock, actor, core.DefaultConfig())

	require.NoError(t, g.Start())
	assert.Equal(t, []units.Millis{16, 16, 16, 16}, clock.sleeps)
	// First frame sees no elapsed time; later ones see sleep plus work.
	assert.Equal(t, []units.Millis{0, 22, 22, 22}, actor.steps)
	assert.Equal(t, units.Millis(4*22), g.Stats().Elapsed)
}

func TestLoopCompensatedPacing(t *testing.T) {
	tests := []struct {
		name  string
		work  units.Millis
		sleep units.Millis
		step  units.Millis
	}{
		{"light frame", 6, 10, 16},
		{"exact frame", 16, 0, 16},
		{"heavy frame", 20, 0, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{}
			actor := &fakeActor{}
			actor.onUpdate = func() { clock.now += tt.work }
			rt := core.DefaultConfig()
			rt.Pacing = core.PacingCompensated
			g := newTestGame(&fakePlatform{script: quitOn(3)}, clock, actor, rt)

			require.NoError(t, g.Start())
			assert.Equal(t, []units.Millis{tt.sleep, tt.sleep, tt.sleep}, clock.sleeps)
			assert.Equal(t, []units.Millis{0, tt.step, tt.step}, actor.steps)
		})
	}
}

func TestLoopUsesTargetFramerate(t *testing.T) {
	clock := &fakeClock{}
	rt := core.DefaultConfig()
	rt.TargetFramerate = 30
	g := newTestGame(&fakePlatform{script: quitOn(2)}, clock, &fakeActor{}, rt)

	require.NoError(t, g.Start())
	assert.Equal(t, []units.Millis{33, 33}, clock.sleeps)
}

func TestStateTransitions(t *testing.T) {
	actor := &fakeActor{}
	p := &fakePlatform{script: quitOn(1)}
	g := newTestGame(p, &fakeClock{}, actor, core.DefaultConfig())
	assert.Equal(t, StateUninitialized, g.State())

	var during State
	actor.onUpdate = func() { during = g.State() }

	require.NoError(t, g.Start())
	assert.Equal(t, StateRunning, during)
	assert.Equal(t, StateStopped, g.State())
	assert.Equal(t, 0, p.quits, "Start leaves teardown to Stop")

	g.Stop()
	g.Stop()
	assert.Equal(t, 1, p.inits)
	assert.Equal(t, 1, p.quits)

	assert.ErrorIs(t, g.Start(), ErrStopped)
	assert.Equal(t, 1, p.inits)
}

func TestStartWhileRunning(t *testing.T) {
	actor := &fakeActor{}
	p := &fakePlatform{script: quitOn(2)}
	g := newTestGame(p, &fakeClock{}, actor, core.DefaultConfig())

	var errs []error
	actor.onUpdate = func() { errs = append(errs, g.Start()) }

	require.NoError(t, g.Start())
	require.Len(t, errs, 2)
	for _, err := range errs {
		assert.ErrorIs(t, err, ErrAlreadyStarted)
	}
	assert.Equal(t, 1, p.inits)
	assert.Equal(t, StateStopped, g.State())
}

func TestStopBeforeStart(t *testing.T) {
	p := &fakePlatform{}
	g := newTestGame(p, &fakeClock{}, &fakeActor{}, core.DefaultConfig())

	g.Stop()
	assert.Equal(t, 0, p.quits)
	assert.Equal(t, StateStopped, g.State())

	err := g.Start()
	assert.ErrorIs(t, err, ErrStopped)
	assert.NotErrorIs(t, err, ErrAlreadyStarted)
	assert.Equal(t, 0, p.inits)
}

func TestActorLoadFailureIsFatal(t *testing.T) {
	missing := errors.New("MyChar.bmp not found")
	p := &fakePlatform{script: quitOn(1)}
	opts := DefaultOptions()
	opts.Clock = &fakeClock{}
	opts.LoadActor = func(*graphics.Graphics) (sprite.Updatable, error) { return nil, missing }
	g := New(p, opts)

	err := g.Start()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResourceLoad)
	assert.ErrorIs(t, err, missing)
	assert.Equal(t, StateStopped, g.State())
	assert.Equal(t, 0, p.polls, "no frame runs after a load failure")
	assert.Empty(t, p.presents)

	g.Stop()
	assert.Equal(t, 1, p.quits)
}

func TestMissingPlayerSheetIsFatal(t *testing.T) {
	p := &fakePlatform{script: quitOn(1)}
	opts := DefaultOptions()
	opts.Clock = &fakeClock{}
	opts.Player.Sheet = "assets/base/Nobody.bmp"
	g := New(p, opts)

	err := g.Start()
	assert.ErrorIs(t, err, ErrResourceLoad)
	assert.Zero(t, g.Stats().Frames)
}

func TestUnknownLayoutIsFatal(t *testing.T) {
	p := &fakePlatform{script: quitOn(1)}
	rt := core.DefaultConfig()
	rt.MapID = "nowhere"
	g := newTestGame(p, &fakeClock{}, &fakeActor{}, rt)

	err := g.Start()
	assert.ErrorIs(t, err, ErrResourceLoad)
	assert.Nil(t, g.Map())
}

func TestPlatformInitFailure(t *testing.T) {
	boom := errors.New("no tty")
	p := &fakePlatform{initErr: boom}
	g := newTestGame(p, &fakeClock{}, &fakeActor{}, core.DefaultConfig())

	err := g.Start()
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrResourceLoad)

	g.Stop()
	assert.Equal(t, 0, p.quits)
}

func TestDefaultsFillZeroOptions(t *testing.T) {
	g := New(&fakePlatform{}, Options{})
	assert.Equal(t, 60, g.cfg.TargetFramerate)
	assert.Equal(t, "test", g.cfg.MapID)
	assert.NotNil(t, g.clock)
	assert.NotNil(t, g.logger)
	assert.NotNil(t, g.loadActor)
}

func TestPainterOrder(t *testing.T) {
	tests := []struct {
		name     string
		row, col units.Tile
		want     string
	}{
		// Open air: the player covers the backdrop.
		{"in the open", 13, 6, "o/"},
		// Wall: the foreground tile is painted over the player.
		{"behind a wall", 13, 3, "▓▓"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePlatform{script: quitOn(1)}
			opts := DefaultOptions()
			opts.Clock = &fakeClock{}
			opts.Player.X = tt.col.ToGame()
			opts.Player.Y = tt.row.ToGame()
			g := New(p, opts)

			require.NoError(t, g.Start())
			require.Len(t, p.presents, 1)

			rows := strings.Split(p.presents[0], "\n")
			require.Greater(t, len(rows), int(tt.row))
			line := []rune(rows[tt.row])
			x := int(tt.col) * 2
			assert.Equal(t, tt.want, string(line[x:x+2]))
		})
	}
}

func TestDefaultFrameShowsWorld(t *testing.T) {
	p := &fakePlatform{script: quitOn(1)}
	opts := DefaultOptions()
	opts.Clock = &fakeClock{}
	g := New(p, opts)

	require.NoError(t, g.Start())
	require.NotNil(t, g.Map())

	rows := strings.Split(p.presents[0], "\n")
	require.Len(t, rows, int(ViewRows))
	// Floor row is solid wall.
	assert.Contains(t, rows[ViewRows-1], "▓▓▓▓")
	// Chain segments hang at column 2 over the backdrop.
	assert.Equal(t, '╥', []rune(rows[ViewRows-4])[5])
	assert.Equal(t, '╨', []rune(rows[ViewRows-2])[5])
	// Open air shows the backdrop.
	assert.Equal(t, "· ", string([]rune(rows[1])[2:4]))
}
