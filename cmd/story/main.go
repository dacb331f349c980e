// story is a terminal platformer runtime: a fixed-delay game loop drawing a
// tile map and an animated player.
//
// Usage:
//
//	story play [layout]      - Run the game loop (esc quits)
//	story menu               - Pick a layout interactively
//	story maps               - List available layouts
//	story map <layout>       - Render a layout and probe its collision grid
//	story sessions           - Browse recorded play sessions
//
// Global flags:
//
//	--fps <rate>       - Override the target frame rate
//	--pacing <mode>    - fixed or compensated
//	--config <path>    - Custom config YAML
//	--log <path>       - Log file (default: ~/.story/story.log)
//	--db <path>        - Record sessions in this SQLite database
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-story/internal/config"
)

var (
	// Global flags
	flagFPS     int
	flagPacing  string
	flagConfig  string
	flagLogPath string
	flagDBPath  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "story",
	Short: "Story - a tile platformer running in your terminal",
	Long: `Story runs a fixed-delay platformer loop in the terminal: a tiled
backdrop, a cave of wall tiles, a hanging chain and an animated player.

Available commands:
  play      - Run the game loop
  menu      - Pick a layout, then play it
  maps      - Show all available layouts
  map       - Render a layout and probe its collision grid
  sessions  - Browse recorded play sessions

Examples:
  story play
  story play --fps 30 --pacing compensated
  story map test --probe 96,400,64,40
  story play --db ~/.story/sessions.db
  story sessions --db ~/.story/sessions.db`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Target frame rate (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagPacing, "pacing", "", "Frame pacing: fixed or compensated (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.story/story.log", "Log file path (empty disables logging)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "SQLite database for the session log (empty = do not record)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(sessionsCmd)
}

// loadConfig loads the config file and applies flag overrides.
func loadConfig() (config.StoryConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagFPS != 0 {
		cfg.Display.TargetFramerate = flagFPS
	}
	if flagPacing != "" {
		cfg.Display.Pacing = flagPacing
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// openLogger creates the file logger. The terminal belongs to the game while
// it runs, so nothing is logged to stderr by default.
func openLogger(path string) (*log.Logger, io.WriteCloser, error) {
	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          "story",
	}
	if path == "" {
		return log.NewWithOptions(io.Discard, opts), nopCloser{io.Discard}, nil
	}

	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return log.NewWithOptions(f, opts), f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// expandHome expands a leading ~ to the home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
