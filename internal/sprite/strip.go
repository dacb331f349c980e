package sprite

import (
	"fmt"

	"github.com/vovakirdan/tui-story/internal/graphics"
	"github.com/vovakirdan/tui-story/internal/units"
)

// Strip is one logical sprite whose pieces sit in separate map cells, like
// a hanging chain. Pieces come from consecutive sheet tiles and all share
// the strip's animation state, so they always show the same frame.
//
// Successive animation frames are laid out one row below the previous one.
type Strip struct {
	id       ID
	image    *graphics.Image
	col, row units.Tile
	segments []*Segment
	anim     animation
}

// NewStrip creates a strip of n one-tile pieces starting at (col, row).
func NewStrip(gfx *graphics.Graphics, path string, col, row units.Tile, n int,
	fps units.FPS, frames units.Frame) (*Strip, error) {
	if n < 1 {
		return nil, fmt.Errorf("sprite: strip needs at least one segment, got %d", n)
	}
	anim, err := newAnimation(fps, frames)
	if err != nil {
		return nil, err
	}
	img, err := gfx.LoadImage(path)
	if err != nil {
		return nil, err
	}

	s := &Strip{
		id:    nextID(),
		image: img,
		col:   col,
		row:   row,
		anim:  anim,
	}
	s.segments = make([]*Segment, n)
	for i := range s.segments {
		s.segments[i] = &Segment{strip: s, index: units.Tile(i)}
	}
	return s, nil
}

// SpriteID returns the strip's identity.
func (s *Strip) SpriteID() ID { return s.id }

// Len returns the number of segments.
func (s *Strip) Len() int { return len(s.segments) }

// Segment returns piece i. Segments are created once; repeated calls return
// the same value.
func (s *Strip) Segment(i int) *Segment {
	return s.segments[i]
}

// Frame returns the frame currently shown by every segment.
func (s *Strip) Frame() units.Frame { return s.anim.current }

// StepTime accumulates elapsed time for all segments at once.
func (s *Strip) StepTime(elapsed units.Millis) {
	s.anim.step(elapsed)
}

// Update advances the shared frame.
func (s *Strip) Update() {
	s.anim.advance()
}

func (s *Strip) drawSegment(ctx graphics.Context, index units.Tile, x, y units.Game) {
	src := graphics.TileRegion(s.col+index, s.row+units.Tile(s.anim.current))
	ctx.Blit(s.image, src, x, y)
}

// Segment is one piece of a Strip. Its animation calls go to the strip.
type Segment struct {
	strip *Strip
	index units.Tile
}

// SpriteID returns the owning strip's identity.
func (g *Segment) SpriteID() ID { return g.strip.id }

// Strip returns the owning strip.
func (g *Segment) Strip() *Strip { return g.strip }

// Draw blits this piece at (x, y).
func (g *Segment) Draw(ctx graphics.Context, x, y units.Game) {
	g.strip.drawSegment(ctx, g.index, x, y)
}

// StepTime forwards to the strip.
func (g *Segment) StepTime(elapsed units.Millis) { g.strip.StepTime(elapsed) }

// Update forwards to the strip.
func (g *Segment) Update() { g.strip.Update() }
