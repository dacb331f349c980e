// Package collision holds the shapes used for world queries.
package collision

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-story/internal/units"
)

// Rectangle is an axis-aligned box in world pixels covering
// [X, X+Width) x [Y, Y+Height).
type Rectangle struct {
	X, Y          units.Game
	Width, Height units.Game
}

// NewRectangle creates a rectangle with its top-left corner at (x, y).
func NewRectangle(x, y, w, h units.Game) Rectangle {
	return Rectangle{X: x, Y: y, Width: w, Height: h}
}

// FromTile returns the rectangle covering exactly one tile.
func FromTile(row, col units.Tile) Rectangle {
	return NewRectangle(col.ToGame(), row.ToGame(), units.TileSize, units.TileSize)
}

// Left returns the near horizontal edge.
func (r Rectangle) Left() units.Game { return r.X }

// Right returns the far horizontal edge (exclusive).
func (r Rectangle) Right() units.Game { return r.X + r.Width }

// Top returns the near vertical edge.
func (r Rectangle) Top() units.Game { return r.Y }

// Bottom returns the far vertical edge (exclusive).
func (r Rectangle) Bottom() units.Game { return r.Y + r.Height }

// Cols returns the inclusive range of tile columns the rectangle overlaps.
// An empty rectangle yields last < first.
func (r Rectangle) Cols() (first, last units.Tile) {
	return r.Left().ToTile(), lastTile(r.Right())
}

// Rows returns the inclusive range of tile rows the rectangle overlaps.
func (r Rectangle) Rows() (first, last units.Tile) {
	return r.Top().ToTile(), lastTile(r.Bottom())
}

// lastTile returns the tile holding the points just before an exclusive
// edge, so an edge landing anywhere inside a tile includes that tile.
func lastTile(edge units.Game) units.Tile {
	return units.Tile(math.Ceil(float64(edge/units.TileSize))) - 1
}

// String formats the rectangle as x,y wxh.
func (r Rectangle) String() string {
	return fmt.Sprintf("%g,%g %gx%g", r.X, r.Y, r.Width, r.Height)
}
