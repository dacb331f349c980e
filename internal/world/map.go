// Package world holds the tile map: a decorative background-sprite layer,
// a collidable foreground layer and the backdrop behind both.
package world

import (
	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/tui-story/internal/backdrop"
	"github.com/vovakirdan/tui-story/internal/collision"
	"github.com/vovakirdan/tui-story/internal/graphics"
	"github.com/vovakirdan/tui-story/internal/sprite"
	"github.com/vovakirdan/tui-story/internal/units"
)

// Asset paths used by the test layout.
const (
	TilesetPath  = "assets/base/Stage/PrtCave.bmp"
	BackdropPath = "assets/base/bkBlue.bmp"
)

// Test layout dimensions: 20 x 15 tiles fills a 640 x 480 view.
const (
	TestRows units.Tile = 15
	TestCols units.Tile = 20
)

// Map is a fixed-size world. Indices are always [row][col], row 0 on top.
type Map struct {
	background *backdrop.FixedBackdrop
	sprites    grid
	tiles      grid
}

// CreateTestMap builds the demo cave:
//
//   - a wall floor along the bottom row,
//   - walls in the first and last column for the full height,
//   - a small obstacle course near the floor, about 2 tiles in,
//   - a 3-tile chain hanging left of the obstacle course, in the
//     non-colliding sprite layer.
//
// Every wall cell shares one sprite, and the chain's three cells share one
// strip.
func CreateTestMap(gfx *graphics.Graphics) (*Map, error) {
	const rows, cols = TestRows, TestCols

	bk, err := backdrop.New(gfx, BackdropPath)
	if err != nil {
		return nil, err
	}
	wallSprite, err := sprite.New(gfx, TilesetPath, 1, 0, 1, 1)
	if err != nil {
		return nil, err
	}
	chain, err := sprite.NewStrip(gfx, TilesetPath, 11, 2, 3, 15, 1)
	if err != nil {
		return nil, err
	}

	m := &Map{
		background: bk,
		sprites:    newGrid(rows, cols),
		tiles:      newGrid(rows, cols),
	}
	wall := fromSprite(wallSprite, Wall)

	// floor
	for col := units.Tile(0); col < cols; col++ {
		m.tiles.set(rows-1, col, wall)
	}

	// safety walls
	for row := units.Tile(0); row < rows; row++ {
		m.tiles.set(row, 0, wall)
		m.tiles.set(row, cols-1, wall)
	}

	m.tiles.set(rows-2, 3, wall)
	m.tiles.set(rows-2, 5, wall)
	m.tiles.set(rows-3, 4, wall)
	m.tiles.set(rows-4, 3, wall)
	m.tiles.set(rows-5, 2, wall)

	m.sprites.set(rows-4, 2, fromSprite(chain.Segment(0), Air))
	m.sprites.set(rows-3, 2, fromSprite(chain.Segment(1), Air))
	m.sprites.set(rows-2, 2, fromSprite(chain.Segment(2), Air))

	return m, nil
}

// Rows returns the map height in tiles.
func (m *Map) Rows() units.Tile { return m.tiles.rows }

// Cols returns the map width in tiles.
func (m *Map) Cols() units.Tile { return m.tiles.cols }

// TileType returns the classification of the foreground cell at [row][col].
func (m *Map) TileType(row, col units.Tile) TileType {
	return m.tiles.at(row, col).Type
}

// Sprite returns the foreground sprite at [row][col], or nil.
func (m *Map) Sprite(row, col units.Tile) sprite.Updatable {
	return m.tiles.at(row, col).Sprite
}

// BackgroundSprite returns the decorative sprite at [row][col], or nil.
func (m *Map) BackgroundSprite(row, col units.Tile) sprite.Updatable {
	return m.sprites.at(row, col).Sprite
}

// DrawBackground draws the backdrop over the full viewport.
func (m *Map) DrawBackground(ctx graphics.Context) {
	m.background.Draw(ctx)
}

// DrawSprites draws the decorative layer.
func (m *Map) DrawSprites(ctx graphics.Context) {
	drawLayer(ctx, &m.sprites)
}

// Draw draws the collidable foreground layer.
func (m *Map) Draw(ctx graphics.Context) {
	drawLayer(ctx, &m.tiles)
}

func drawLayer(ctx graphics.Context, g *grid) {
	g.each(func(row, col units.Tile, t Tile) {
		if t.Sprite != nil {
			t.Sprite.Draw(ctx, col.ToGame(), row.ToGame())
		}
	})
}

// Update is a no-op for the test layout.
//
// Background sprites are shared between cells, so animating them would
// move every chain and wall in lock-step. Should this ever step sprites,
// it must go through DistinctSprites so a sprite referenced by several
// cells advances once per frame.
func (m *Map) Update(units.Millis) {}

// DistinctSprites returns every sprite referenced by the map once, in
// row-major order of first appearance (sprite layer first, then tiles).
// Sprites that carry no sprite.ID are returned once per cell.
func (m *Map) DistinctSprites() []sprite.Updatable {
	seen := intmap.New[sprite.ID, struct{}](8)
	var out []sprite.Updatable

	collect := func(_, _ units.Tile, t Tile) {
		if t.Sprite == nil {
			return
		}
		id := sprite.IDOf(t.Sprite)
		if id != 0 {
			if _, ok := seen.Get(id); ok {
				return
			}
			seen.Put(id, struct{}{})
		}
		out = append(out, t.Sprite)
	}
	m.sprites.each(collect)
	m.tiles.each(collect)
	return out
}

// InBounds reports whether every tile the rectangle overlaps lies inside
// the map, that is whether CollidingTiles accepts it.
func (m *Map) InBounds(rect collision.Rectangle) bool {
	firstRow, lastRow := rect.Rows()
	firstCol, lastCol := rect.Cols()
	return m.tiles.inBounds(firstRow, firstCol) && m.tiles.inBounds(lastRow, lastCol)
}

// CollidingTiles returns a snapshot of every foreground cell the rectangle
// overlaps, row-major.
//
// The check uses the outside bounds of the rectangle and the tiles only, so
// it may report a tile whose visible pixels do not touch the rectangle.
//
// A rectangle reaching outside the map is a programming error: the call
// panics with *OutOfBoundsError.
func (m *Map) CollidingTiles(rect collision.Rectangle) []CollisionTile {
	firstRow, lastRow := rect.Rows()
	firstCol, lastCol := rect.Cols()

	if !m.tiles.inBounds(firstRow, firstCol) || !m.tiles.inBounds(lastRow, lastCol) {
		panic(&OutOfBoundsError{
			Rect:     rect,
			FirstRow: firstRow, LastRow: lastRow,
			FirstCol: firstCol, LastCol: lastCol,
			Rows: m.tiles.rows, Cols: m.tiles.cols,
		})
	}

	var out []CollisionTile
	for row := firstRow; row <= lastRow; row++ {
		for col := firstCol; col <= lastCol; col++ {
			out = append(out, CollisionTile{
				TileType: m.tiles.at(row, col).Type,
				Row:      row,
				Col:      col,
			})
		}
	}
	return out
}
