// Package graphics is the rendering context sprites and maps draw against.
// It maps world pixel space onto a terminal cell screen: one tile is
// assets.GlyphWidth cells wide and one cell tall.
package graphics

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-story/internal/assets"
	"github.com/vovakirdan/tui-story/internal/core"
	"github.com/vovakirdan/tui-story/internal/units"
)

// Pixel size of one screen cell.
const (
	cellWidth  = units.TileSize / assets.GlyphWidth
	cellHeight = units.TileSize
)

// Region is a rectangle of a sheet, in tiles.
type Region struct {
	Col, Row units.Tile
	W, H     units.Tile
}

// TileRegion is the 1x1 region at (col, row).
func TileRegion(col, row units.Tile) Region {
	return Region{Col: col, Row: row, W: 1, H: 1}
}

// Image is a loaded sheet. Images are shared: loading the same path twice
// yields the same *Image.
type Image struct {
	path  string
	sheet *assets.Sheet
}

// Path returns the path the image was loaded from.
func (i *Image) Path() string {
	return i.path
}

// Context is what drawables render into.
// Implementations must not be retained past the draw call.
type Context interface {
	// Blit draws region src of img with its top-left corner at (x, y).
	Blit(img *Image, src Region, x, y units.Game)
	// Viewport returns the visible world size.
	Viewport() (w, h units.Game)
}

// Presenter receives each finished frame.
type Presenter interface {
	Present(s *core.Screen)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(s *core.Screen)

// Present calls f(s).
func (f PresenterFunc) Present(s *core.Screen) {
	f(s)
}

// Graphics owns the back buffer and the image cache.
type Graphics struct {
	catalog   *assets.Catalog
	presenter Presenter
	screen    *core.Screen
	cache     map[string]*Image
	width     units.Game
	height    units.Game
}

// New creates a rendering context with a viewport of cols x rows tiles.
func New(catalog *assets.Catalog, presenter Presenter, cols, rows units.Tile) *Graphics {
	return &Graphics{
		catalog:   catalog,
		presenter: presenter,
		screen:    core.NewScreen(int(cols)*assets.GlyphWidth, int(rows)),
		cache:     make(map[string]*Image),
		width:     cols.ToGame(),
		height:    rows.ToGame(),
	}
}

// LoadImage resolves path through the asset catalog. Results are cached.
func (g *Graphics) LoadImage(path string) (*Image, error) {
	if img, ok := g.cache[path]; ok {
		return img, nil
	}
	sheet, err := g.catalog.Sheet(path)
	if err != nil {
		return nil, fmt.Errorf("graphics: load %s: %w", path, err)
	}
	img := &Image{path: path, sheet: sheet}
	g.cache[path] = img
	return img, nil
}

// Viewport returns the visible world size in game units.
func (g *Graphics) Viewport() (w, h units.Game) {
	return g.width, g.height
}

// Blit draws a sheet region. Space runes are transparent and anything
// falling outside the screen is clipped.
func (g *Graphics) Blit(img *Image, src Region, x, y units.Game) {
	originX := int(math.Floor(float64(x / cellWidth)))
	originY := int(math.Floor(float64(y / cellHeight)))

	for r := units.Tile(0); r < src.H; r++ {
		for c := units.Tile(0); c < src.W; c++ {
			glyph, ok := img.sheet.Glyph(src.Col+c, src.Row+r)
			if !ok {
				continue
			}
			cx := originX + int(c)*assets.GlyphWidth
			cy := originY + int(r)
			for i, rn := range glyph.Runes {
				if rn == ' ' {
					continue
				}
				g.screen.SetCell(cx+i, cy, core.Cell{Rune: rn, Color: glyph.Color})
			}
		}
	}
}

// SwitchBuffers hands the finished frame to the presenter and starts a
// fresh back buffer.
func (g *Graphics) SwitchBuffers() {
	if g.presenter != nil {
		g.presenter.Present(g.screen)
	}
	g.screen.Clear()
}

// Screen exposes the back buffer.
func (g *Graphics) Screen() *core.Screen {
	return g.screen
}
