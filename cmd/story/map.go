package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-story/internal/assets"
	"github.com/vovakirdan/tui-story/internal/collision"
	"github.com/vovakirdan/tui-story/internal/core"
	"github.com/vovakirdan/tui-story/internal/game"
	"github.com/vovakirdan/tui-story/internal/graphics"
	"github.com/vovakirdan/tui-story/internal/platform/tui"
	"github.com/vovakirdan/tui-story/internal/units"
	"github.com/vovakirdan/tui-story/internal/world"
)

var flagProbe string

var mapCmd = &cobra.Command{
	Use:   "map <layout>",
	Short: "Render a layout and probe its collision grid",
	Long: `Draw one frame of the layout without the player and print it.

With --probe x,y,w,h (pixels, one tile is 32) the tiles the rectangle
overlaps are outlined and listed with their classification, exactly as
the collision query reports them.

Examples:
  story map test
  story map test --probe 96,400,64,40`,
	Args: cobra.ExactArgs(1),
	Run:  runMap,
}

func init() {
	mapCmd.Flags().StringVar(&flagProbe, "probe", "", "Collision probe rectangle x,y,w,h in pixels")
}

func runMap(cmd *cobra.Command, args []string) {
	layoutID := args[0]

	if !world.LayoutExists(layoutID) {
		fmt.Fprintf(os.Stderr, "Error: unknown layout %q\n", layoutID)
		fmt.Fprintln(os.Stderr, "Run 'story maps' to see available layouts.")
		os.Exit(1)
	}

	var probe *collision.Rectangle
	if flagProbe != "" {
		rect, err := parseProbe(flagProbe)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		probe = &rect
	}

	catalog, err := assets.Default()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading assets: %v\n", err)
		os.Exit(1)
	}
	gfx := graphics.New(catalog, nil, game.ViewCols, game.ViewRows)

	m, err := world.CreateLayout(layoutID, gfx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building layout: %v\n", err)
		os.Exit(1)
	}

	m.DrawBackground(gfx)
	m.DrawSprites(gfx)
	m.Draw(gfx)
	screen := gfx.Screen()

	var hits []world.CollisionTile
	if probe != nil {
		if !m.InBounds(*probe) {
			fmt.Fprintf(os.Stderr, "Error: probe %v reaches outside the %dx%d map\n",
				*probe, m.Rows(), m.Cols())
			os.Exit(1)
		}
		hits = m.CollidingTiles(*probe)
		if box, ok := tileBox(hits); ok {
			screen.DrawBox(box, core.ColorBrightYellow)
		}
	}

	if w, _, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil && w < screen.Width() {
		fmt.Fprintf(os.Stderr, "Warning: terminal is %d columns wide, the map needs %d\n", w, screen.Width())
	}

	fmt.Println(tui.RenderScreen(screen))

	if probe == nil {
		return
	}

	fmt.Println()
	fmt.Printf("Probe %v covers %d tiles:\n", *probe, len(hits))
	fmt.Printf("  %-4s  %-4s  %s\n", "Row", "Col", "Type")
	fmt.Printf("  %-4s  %-4s  %s\n", "---", "---", "----")

	wallStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	walls := 0
	for _, h := range hits {
		kind := h.TileType.String()
		if h.TileType == world.Wall {
			kind = wallStyle.Render(kind)
			walls++
		}
		fmt.Printf("  %-4d  %-4d  %s\n", h.Row, h.Col, kind)
	}

	fmt.Println()
	if len(hits) == 0 {
		fmt.Println("Colliding: none")
		return
	}
	if walls > 0 {
		fmt.Printf("Colliding: %d wall tile(s)\n", walls)
	} else {
		fmt.Println("Colliding: none")
	}
}

// parseProbe parses "x,y,w,h" in pixels.
func parseProbe(s string) (collision.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return collision.Rectangle{}, fmt.Errorf("probe %q: want x,y,w,h", s)
	}

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return collision.Rectangle{}, fmt.Errorf("probe %q: %w", s, err)
		}
		v[i] = f
	}
	if v[2] <= 0 || v[3] <= 0 {
		return collision.Rectangle{}, fmt.Errorf("probe %q: width and height must be positive", s)
	}
	return collision.NewRectangle(units.Game(v[0]), units.Game(v[1]), units.Game(v[2]), units.Game(v[3])), nil
}

// tileBox returns the screen cells covering the probed tiles. hits is
// row-major, so its first and last entries are opposite corners. It reports
// false when there is nothing to outline.
func tileBox(hits []world.CollisionTile) (core.Rect, bool) {
	if len(hits) == 0 {
		return core.Rect{}, false
	}
	first, last := hits[0], hits[len(hits)-1]
	return core.NewRect(
		int(first.Col)*assets.GlyphWidth,
		int(first.Row),
		int(last.Col-first.Col+1)*assets.GlyphWidth,
		int(last.Row-first.Row+1),
	), true
}
