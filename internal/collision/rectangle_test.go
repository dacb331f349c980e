package collision

import (
	"testing"

	"github.com/vovakirdan/tui-story/internal/units"
)

func TestRectangleEdges(t *testing.T) {
	r := NewRectangle(10, 20, 30, 40)

	if r.Left() != 10 {
		t.Errorf("Left() = %v, expected 10", r.Left())
	}
	if r.Right() != 40 {
		t.Errorf("Right() = %v, expected 40", r.Right())
	}
	if r.Top() != 20 {
		t.Errorf("Top() = %v, expected 20", r.Top())
	}
	if r.Bottom() != 60 {
		t.Errorf("Bottom() = %v, expected 60", r.Bottom())
	}
}

func TestFromTileCoversOneTile(t *testing.T) {
	r := FromTile(3, 7)

	if first, last := r.Cols(); first != 7 || last != 7 {
		t.Errorf("columns = %d..%d, expected 7..7", first, last)
	}
	if first, last := r.Rows(); first != 3 || last != 3 {
		t.Errorf("rows = %d..%d, expected 3..3", first, last)
	}
	if r.Width != units.TileSize || r.Height != units.TileSize {
		t.Errorf("size = %vx%v", r.Width, r.Height)
	}
}

func TestTileRanges(t *testing.T) {
	tests := []struct {
		name        string
		r           Rectangle
		first, last units.Tile
	}{
		{"aligned tile", NewRectangle(32, 0, 32, 1), 1, 1},
		{"inside one tile", NewRectangle(40, 0, 10, 1), 1, 1},
		{"far edge just past a tile", NewRectangle(10.5, 0, 22, 1), 0, 1},
		{"sliver at tile start", NewRectangle(32, 0, 0.5, 1), 1, 1},
		{"near edge just before a tile", NewRectangle(31.9, 0, 0.2, 1), 0, 1},
		{"negative position", NewRectangle(-0.5, 0, 1, 1), -1, 0},
		{"empty", NewRectangle(32, 0, 0, 1), 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := tt.r.Cols()
			if first != tt.first || last != tt.last {
				t.Errorf("Cols() = %d..%d, expected %d..%d", first, last, tt.first, tt.last)
			}

			// Rows follow the same rule on the other axis.
			swapped := NewRectangle(tt.r.Y, tt.r.X, tt.r.Height, tt.r.Width)
			first, last = swapped.Rows()
			if first != tt.first || last != tt.last {
				t.Errorf("Rows() = %d..%d, expected %d..%d", first, last, tt.first, tt.last)
			}
		})
	}
}

func TestRectangleString(t *testing.T) {
	if got := NewRectangle(1.5, 2, 3, 4).String(); got != "1.5,2 3x4" {
		t.Errorf("String() = %q", got)
	}
}
