// Package sprite defines the capabilities on-screen actors share and the
// sprite types that implement them.
package sprite

import (
	"sync/atomic"

	"github.com/vovakirdan/tui-story/internal/graphics"
	"github.com/vovakirdan/tui-story/internal/units"
)

// Drawable renders itself at a world position. Draw must not change the
// actor's state.
type Drawable interface {
	Draw(ctx graphics.Context, x, y units.Game)
}

// Animatable advances over time. StepTime accumulates elapsed time;
// Update turns the accumulated time into discrete state changes.
type Animatable interface {
	StepTime(elapsed units.Millis)
	Update()
}

// Updatable is an actor that is both drawn and animated.
type Updatable interface {
	Drawable
	Animatable
}

// ID identifies one sprite instance. Cells sharing a sprite share its ID.
type ID uint32

var lastID atomic.Uint32

func nextID() ID {
	return ID(lastID.Add(1))
}

// Identified is implemented by every sprite type in this package.
type Identified interface {
	SpriteID() ID
}

// IDOf returns the identity of u, or 0 if u does not carry one.
func IDOf(u any) ID {
	if id, ok := u.(Identified); ok {
		return id.SpriteID()
	}
	return 0
}

// Sprite is a static region of an image.
type Sprite struct {
	id     ID
	image  *graphics.Image
	source graphics.Region
}

// New loads path and creates a static sprite showing the w x h tiles at (col, row).
func New(gfx *graphics.Graphics, path string, col, row, w, h units.Tile) (*Sprite, error) {
	img, err := gfx.LoadImage(path)
	if err != nil {
		return nil, err
	}
	return &Sprite{
		id:     nextID(),
		image:  img,
		source: graphics.Region{Col: col, Row: row, W: w, H: h},
	}, nil
}

// SpriteID returns the sprite's identity.
func (s *Sprite) SpriteID() ID { return s.id }

// Draw blits the sprite's region at (x, y).
func (s *Sprite) Draw(ctx graphics.Context, x, y units.Game) {
	ctx.Blit(s.image, s.source, x, y)
}

// StepTime is a no-op; static sprites have no animation state.
func (s *Sprite) StepTime(units.Millis) {}

// Update is a no-op.
func (s *Sprite) Update() {}
