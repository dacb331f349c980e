// Package backdrop draws the static image behind every other layer.
package backdrop

import (
	"github.com/vovakirdan/tui-story/internal/graphics"
	"github.com/vovakirdan/tui-story/internal/units"
)

// Size is the edge length of a backdrop image, in tiles.
const Size units.Tile = 4

// FixedBackdrop repeats one image across the whole viewport. It does not
// scroll with the world.
type FixedBackdrop struct {
	image *graphics.Image
}

// New loads the backdrop image at path.
func New(gfx *graphics.Graphics, path string) (*FixedBackdrop, error) {
	img, err := gfx.LoadImage(path)
	if err != nil {
		return nil, err
	}
	return &FixedBackdrop{image: img}, nil
}

// Draw covers the viewport with copies of the backdrop image.
func (b *FixedBackdrop) Draw(ctx graphics.Context) {
	w, h := ctx.Viewport()
	step := Size.ToGame()
	src := graphics.Region{W: Size, H: Size}

	for x := units.Game(0); x < w; x += step {
		for y := units.Game(0); y < h; y += step {
			ctx.Blit(b.image, src, x, y)
		}
	}
}
