package sprite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-story/internal/assets"
	"github.com/vovakirdan/tui-story/internal/graphics"
	"github.com/vovakirdan/tui-story/internal/units"
)

const testManifest = `
sheets:
  - path: sheet.bmp
    cols: 8
    rows: 4
`

type blit struct {
	src  graphics.Region
	x, y units.Game
}

// recorder is a graphics.Context that remembers every blit.
type recorder struct {
	blits []blit
}

func (r *recorder) Blit(_ *graphics.Image, src graphics.Region, x, y units.Game) {
	r.blits = append(r.blits, blit{src: src, x: x, y: y})
}

func (r *recorder) Viewport() (units.Game, units.Game) { return 640, 480 }

func newGraphics(t *testing.T) *graphics.Graphics {
	t.Helper()
	cat, err := assets.Parse([]byte(testManifest))
	require.NoError(t, err)
	return graphics.New(cat, nil, 20, 15)
}

var (
	_ Updatable  = (*Sprite)(nil)
	_ Updatable  = (*AnimatedSprite)(nil)
	_ Updatable  = (*Segment)(nil)
	_ Animatable = (*Strip)(nil)
)

func TestStaticSpriteDraw(t *testing.T) {
	s, err := New(newGraphics(t), "sheet.bmp", 1, 0, 1, 1)
	require.NoError(t, err)

	var rec recorder
	s.Draw(&rec, 64, 96)
	s.StepTime(1000)
	s.Update()
	s.Draw(&rec, 64, 96)

	require.Len(t, rec.blits, 2)
	assert.Equal(t, blit{src: graphics.TileRegion(1, 0), x: 64, y: 96}, rec.blits[0])
	assert.Equal(t, rec.blits[0], rec.blits[1], "static sprite must not change over time")
}

func TestNewUnknownImage(t *testing.T) {
	_, err := New(newGraphics(t), "missing.bmp", 0, 0, 1, 1)
	assert.ErrorIs(t, err, assets.ErrUnknownImage)

	_, err = NewAnimated(newGraphics(t), "missing.bmp", 0, 0, 1, 1, 15, 3)
	assert.ErrorIs(t, err, assets.ErrUnknownImage)
}

func TestSpriteIDsAreUnique(t *testing.T) {
	gfx := newGraphics(t)
	a, err := New(gfx, "sheet.bmp", 0, 0, 1, 1)
	require.NoError(t, err)
	b, err := New(gfx, "sheet.bmp", 0, 0, 1, 1)
	require.NoError(t, err)

	assert.NotEqual(t, a.SpriteID(), b.SpriteID())
	assert.Equal(t, a.SpriteID(), IDOf(a))
	assert.Equal(t, ID(0), IDOf(struct{}{}))
}

func TestAnimatedSpriteAdvances(t *testing.T) {
	// 15 fps -> 66ms per frame
	s, err := NewAnimated(newGraphics(t), "sheet.bmp", 0, 0, 1, 1, 15, 3)
	require.NoError(t, err)

	s.StepTime(40)
	s.Update()
	assert.Equal(t, units.Frame(0), s.Frame(), "not enough time for a frame")

	s.StepTime(30)
	s.Update()
	assert.Equal(t, units.Frame(1), s.Frame())

	// Accumulator was reset, 40ms is not enough again.
	s.StepTime(40)
	s.Update()
	assert.Equal(t, units.Frame(1), s.Frame())

	s.StepTime(30)
	s.Update()
	assert.Equal(t, units.Frame(2), s.Frame())

	s.StepTime(66)
	s.Update()
	assert.Equal(t, units.Frame(0), s.Frame(), "should wrap after the last frame")
}

func TestAnimatedSpriteDrawsCurrentFrame(t *testing.T) {
	s, err := NewAnimated(newGraphics(t), "sheet.bmp", 2, 1, 1, 1, 30, 3)
	require.NoError(t, err)

	var rec recorder
	s.Draw(&rec, 0, 0)
	s.StepTime(33)
	s.Update()
	s.Draw(&rec, 0, 0)

	require.Len(t, rec.blits, 2)
	assert.Equal(t, graphics.TileRegion(2, 1), rec.blits[0].src)
	assert.Equal(t, graphics.TileRegion(3, 1), rec.blits[1].src)
}

func TestAnimationValidation(t *testing.T) {
	gfx := newGraphics(t)
	_, err := NewAnimated(gfx, "sheet.bmp", 0, 0, 1, 1, 0, 3)
	assert.Error(t, err)
	_, err = NewAnimated(gfx, "sheet.bmp", 0, 0, 1, 1, 15, 0)
	assert.Error(t, err)
	_, err = NewStrip(gfx, "sheet.bmp", 0, 0, 0, 15, 1)
	assert.Error(t, err)
}

func TestStripSegmentsShareState(t *testing.T) {
	strip, err := NewStrip(newGraphics(t), "sheet.bmp", 4, 0, 3, 10, 2)
	require.NoError(t, err)
	require.Equal(t, 3, strip.Len())

	top, mid, bottom := strip.Segment(0), strip.Segment(1), strip.Segment(2)
	assert.Same(t, strip, top.Strip())
	assert.Same(t, strip, bottom.Strip())
	assert.Same(t, top, strip.Segment(0))
	assert.Equal(t, strip.SpriteID(), IDOf(mid))

	// Stepping through one segment moves the whole strip.
	mid.StepTime(100)
	mid.Update()
	assert.Equal(t, units.Frame(1), strip.Frame())

	var rec recorder
	top.Draw(&rec, 0, 0)
	mid.Draw(&rec, 0, 32)
	bottom.Draw(&rec, 0, 64)
	assert.Equal(t, []blit{
		{src: graphics.TileRegion(4, 1), x: 0, y: 0},
		{src: graphics.TileRegion(5, 1), x: 0, y: 32},
		{src: graphics.TileRegion(6, 1), x: 0, y: 64},
	}, rec.blits)
}
