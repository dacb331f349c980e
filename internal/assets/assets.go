// Package assets resolves image paths to terminal glyph sheets.
// The manifest is embedded at build time; paths are opaque keys.
package assets

import (
	_ "embed"
	"errors"
	"fmt"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-story/internal/core"
	"github.com/vovakirdan/tui-story/internal/units"
)

//go:embed sheets.yaml
var defaultManifest []byte

// GlyphWidth is the number of screen cells one tile glyph occupies.
const GlyphWidth = 2

// ErrUnknownImage is returned when a path has no sheet in the manifest.
var ErrUnknownImage = errors.New("assets: unknown image")

// Glyph is how one tile of a sheet looks on screen.
// A space rune is transparent.
type Glyph struct {
	Runes [GlyphWidth]rune
	Color core.Color
}

// transparent is the glyph of tiles with no definition and no fill.
var transparent = Glyph{Runes: [GlyphWidth]rune{' ', ' '}}

// Sheet is an image described as a grid of tile glyphs.
type Sheet struct {
	Path string
	Cols units.Tile
	Rows units.Tile

	fill   Glyph
	glyphs map[tilePos]Glyph
}

type tilePos struct {
	col, row units.Tile
}

// Glyph returns the glyph of the tile at (col, row) of the sheet.
// ok is false when the position lies outside the sheet.
func (s *Sheet) Glyph(col, row units.Tile) (g Glyph, ok bool) {
	if col < 0 || col >= s.Cols || row < 0 || row >= s.Rows {
		return transparent, false
	}
	if g, found := s.glyphs[tilePos{col, row}]; found {
		return g, true
	}
	return s.fill, true
}

// Catalog holds every sheet of a manifest, keyed by path.
type Catalog struct {
	sheets map[string]*Sheet
}

// Sheet returns the sheet registered for path.
func (c *Catalog) Sheet(path string) (*Sheet, error) {
	s, ok := c.sheets[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownImage, path)
	}
	return s, nil
}

// Len returns the number of sheets in the catalog.
func (c *Catalog) Len() int {
	return len(c.sheets)
}

// Default parses the embedded manifest.
func Default() (*Catalog, error) {
	return Parse(defaultManifest)
}

type manifestFile struct {
	Sheets []sheetSpec `yaml:"sheets"`
}

type sheetSpec struct {
	Path  string     `yaml:"path"`
	Cols  int        `yaml:"cols"`
	Rows  int        `yaml:"rows"`
	Fill  *glyphSpec `yaml:"fill"`
	Tiles []tileSpec `yaml:"tiles"`
}

type glyphSpec struct {
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

type tileSpec struct {
	Col   int    `yaml:"col"`
	Row   int    `yaml:"row"`
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

// Parse builds a catalog from manifest YAML.
func Parse(data []byte) (*Catalog, error) {
	var mf manifestFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("assets: cannot parse manifest: %w", err)
	}

	c := &Catalog{sheets: make(map[string]*Sheet, len(mf.Sheets))}
	for _, spec := range mf.Sheets {
		sheet, err := buildSheet(spec)
		if err != nil {
			return nil, err
		}
		if _, dup := c.sheets[sheet.Path]; dup {
			return nil, fmt.Errorf("assets: duplicate sheet %s", sheet.Path)
		}
		c.sheets[sheet.Path] = sheet
	}
	return c, nil
}

func buildSheet(spec sheetSpec) (*Sheet, error) {
	if spec.Path == "" {
		return nil, errors.New("assets: sheet without path")
	}
	if spec.Cols <= 0 || spec.Rows <= 0 {
		return nil, fmt.Errorf("assets: %s: invalid size %dx%d", spec.Path, spec.Cols, spec.Rows)
	}

	s := &Sheet{
		Path:   spec.Path,
		Cols:   units.Tile(spec.Cols),
		Rows:   units.Tile(spec.Rows),
		fill:   transparent,
		glyphs: make(map[tilePos]Glyph, len(spec.Tiles)),
	}

	if spec.Fill != nil {
		g, err := spec.Fill.toGlyph()
		if err != nil {
			return nil, fmt.Errorf("assets: %s: fill: %w", spec.Path, err)
		}
		s.fill = g
	}

	for _, ts := range spec.Tiles {
		if ts.Col < 0 || ts.Col >= spec.Cols || ts.Row < 0 || ts.Row >= spec.Rows {
			return nil, fmt.Errorf("assets: %s: tile (%d,%d) outside %dx%d sheet",
				spec.Path, ts.Col, ts.Row, spec.Cols, spec.Rows)
		}
		g, err := glyphSpec{Glyph: ts.Glyph, Color: ts.Color}.toGlyph()
		if err != nil {
			return nil, fmt.Errorf("assets: %s: tile (%d,%d): %w", spec.Path, ts.Col, ts.Row, err)
		}
		s.glyphs[tilePos{units.Tile(ts.Col), units.Tile(ts.Row)}] = g
	}
	return s, nil
}

func (gs glyphSpec) toGlyph() (Glyph, error) {
	if n := utf8.RuneCountInString(gs.Glyph); n != GlyphWidth {
		return Glyph{}, fmt.Errorf("glyph %q has %d runes, want %d", gs.Glyph, n, GlyphWidth)
	}
	color, err := core.ParseColor(gs.Color)
	if err != nil {
		return Glyph{}, err
	}

	var g Glyph
	i := 0
	for _, r := range gs.Glyph {
		g.Runes[i] = r
		i++
	}
	g.Color = color
	return g, nil
}
