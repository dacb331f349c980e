package world

import (
	"fmt"

	"github.com/vovakirdan/tui-story/internal/collision"
	"github.com/vovakirdan/tui-story/internal/sprite"
	"github.com/vovakirdan/tui-story/internal/units"
)

// TileType classifies a cell for collision.
type TileType int

const (
	Air  TileType = iota // not collidable
	Wall                 // collidable
)

// String returns the classification name.
func (t TileType) String() string {
	switch t {
	case Air:
		return "Air"
	case Wall:
		return "Wall"
	default:
		return fmt.Sprintf("TileType(%d)", int(t))
	}
}

// CollisionTile is a snapshot of one cell returned from a collision query.
// It is a copy; changing it does not change the map.
type CollisionTile struct {
	TileType TileType
	Row      units.Tile
	Col      units.Tile
}

// Tile is one grid cell. Copying a Tile copies its classification and
// shares its sprite, so every copy of a wall tile draws the same instance.
type Tile struct {
	Type   TileType
	Sprite sprite.Updatable // nil draws nothing
}

// airTile is the empty cell every grid starts with.
var airTile = Tile{Type: Air}

// fromSprite creates a tile of type tt drawn by s.
func fromSprite(s sprite.Updatable, tt TileType) Tile {
	return Tile{Type: tt, Sprite: s}
}

// OutOfBoundsError is the panic value of grid accesses outside the map.
// Reaching it is a programming error in the caller.
type OutOfBoundsError struct {
	Rect              collision.Rectangle // query that produced the indices, if any
	FirstRow, LastRow units.Tile
	FirstCol, LastCol units.Tile
	Rows, Cols        units.Tile
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("world: rectangle %v covers rows %d..%d, cols %d..%d outside %dx%d map",
		e.Rect, e.FirstRow, e.LastRow, e.FirstCol, e.LastCol, e.Rows, e.Cols)
}

// grid is a fixed-size rows x cols layer stored row-major.
type grid struct {
	rows, cols units.Tile
	cells      []Tile
}

func newGrid(rows, cols units.Tile) grid {
	g := grid{rows: rows, cols: cols, cells: make([]Tile, int(rows*cols))}
	for i := range g.cells {
		g.cells[i] = airTile
	}
	return g
}

func (g *grid) inBounds(row, col units.Tile) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// at returns the cell at [row][col]. Out-of-range indices panic.
func (g *grid) at(row, col units.Tile) Tile {
	g.mustContain(row, col)
	return g.cells[row*g.cols+col]
}

func (g *grid) set(row, col units.Tile, t Tile) {
	g.mustContain(row, col)
	g.cells[row*g.cols+col] = t
}

func (g *grid) mustContain(row, col units.Tile) {
	if !g.inBounds(row, col) {
		panic(&OutOfBoundsError{
			FirstRow: row, LastRow: row,
			FirstCol: col, LastCol: col,
			Rows: g.rows, Cols: g.cols,
		})
	}
}

// each calls fn for every cell in row-major order.
func (g *grid) each(fn func(row, col units.Tile, t Tile)) {
	for row := units.Tile(0); row < g.rows; row++ {
		for col := units.Tile(0); col < g.cols; col++ {
			fn(row, col, g.cells[row*g.cols+col])
		}
	}
}
