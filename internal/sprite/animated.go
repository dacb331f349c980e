package sprite

import (
	"fmt"

	"github.com/vovakirdan/tui-story/internal/graphics"
	"github.com/vovakirdan/tui-story/internal/units"
)

// animation is the frame-timing state shared by animated sprite kinds.
type animation struct {
	fps     units.FPS
	frames  units.Frame
	current units.Frame
	elapsed units.Millis
}

func newAnimation(fps units.FPS, frames units.Frame) (animation, error) {
	if frames < 1 {
		return animation{}, fmt.Errorf("sprite: need at least one frame, got %d", frames)
	}
	if fps < 1 {
		return animation{}, fmt.Errorf("sprite: fps must be positive, got %d", fps)
	}
	return animation{fps: fps, frames: frames}, nil
}

func (a *animation) step(elapsed units.Millis) {
	a.elapsed += elapsed
}

// advance moves to the next frame once a full frame time has accumulated,
// wrapping after the last frame.
func (a *animation) advance() {
	if a.elapsed < a.fps.FrameTime() {
		return
	}
	a.elapsed = 0
	a.current++
	if a.current >= a.frames {
		a.current = 0
	}
}

// AnimatedSprite cycles through frames laid out left to right on a sheet.
type AnimatedSprite struct {
	id    ID
	image *graphics.Image
	first graphics.Region
	anim  animation
}

// NewAnimated creates a sprite whose frame i is the w x h region at
// (col + i*w, row).
func NewAnimated(gfx *graphics.Graphics, path string, col, row, w, h units.Tile,
	fps units.FPS, frames units.Frame) (*AnimatedSprite, error) {
	anim, err := newAnimation(fps, frames)
	if err != nil {
		return nil, err
	}
	img, err := gfx.LoadImage(path)
	if err != nil {
		return nil, err
	}
	return &AnimatedSprite{
		id:    nextID(),
		image: img,
		first: graphics.Region{Col: col, Row: row, W: w, H: h},
		anim:  anim,
	}, nil
}

// SpriteID returns the sprite's identity.
func (s *AnimatedSprite) SpriteID() ID { return s.id }

// Frame returns the frame currently shown.
func (s *AnimatedSprite) Frame() units.Frame { return s.anim.current }

// Draw blits the current frame at (x, y).
func (s *AnimatedSprite) Draw(ctx graphics.Context, x, y units.Game) {
	src := s.first
	src.Col += units.Tile(s.anim.current) * s.first.W
	ctx.Blit(s.image, src, x, y)
}

// StepTime accumulates elapsed time.
func (s *AnimatedSprite) StepTime(elapsed units.Millis) {
	s.anim.step(elapsed)
}

// Update advances the frame if enough time has accumulated.
func (s *AnimatedSprite) Update() {
	s.anim.advance()
}
