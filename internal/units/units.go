// Package units defines the coordinate and time types shared by the world,
// the sprites and the game loop. Tile-grid indices, pixel positions and
// durations are distinct types and only mix through explicit conversion.
package units

import (
	"math"
	"time"
)

// TileSize is the edge length of one square tile in game units (pixels).
const TileSize Game = 32

// Tile is an index into the tile grid (a row or a column).
type Tile int

// Game is a position or length in world pixel space.
type Game float64

// Millis is a non-negative duration in milliseconds.
type Millis int64

// FPS is a rate in frames per second.
type FPS int

// Frame is an index into an animation.
type Frame int

// ToGame converts a tile index to the pixel position of the tile's top-left edge.
func (t Tile) ToGame() Game {
	return Game(t) * TileSize
}

// ToTile returns the index of the tile containing g.
// The conversion floors, so it is lossy: g.ToTile().ToGame() <= g.
func (g Game) ToTile() Tile {
	return Tile(math.Floor(float64(g / TileSize)))
}

// Duration converts m to a time.Duration.
func (m Millis) Duration() time.Duration {
	return time.Duration(m) * time.Millisecond
}

// FrameTime returns how long one frame lasts at rate f.
// Integer division, so 60 fps yields 16ms.
func (f FPS) FrameTime() Millis {
	if f <= 0 {
		return 0
	}
	return Millis(1000 / int64(f))
}
