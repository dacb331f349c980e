package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-story/internal/config"
	"github.com/vovakirdan/tui-story/internal/game"
	"github.com/vovakirdan/tui-story/internal/platform/tui"
	"github.com/vovakirdan/tui-story/internal/storage"
	"github.com/vovakirdan/tui-story/internal/units"
	"github.com/vovakirdan/tui-story/internal/world"
)

var playCmd = &cobra.Command{
	Use:   "play [layout]",
	Short: "Run the game loop",
	Long: `Start the game loop on the given layout (default from config).

Controls:
  Esc/Ctrl+C  - Quit

Only one key is read per frame; keys pressed faster than the frame rate
wait for later frames.

Examples:
  story play
  story play test --fps 30
  story play --pacing compensated --db ~/.story/sessions.db`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(args) == 1 {
		cfg.Map.ID = args[0]
	}

	if !world.LayoutExists(cfg.Map.ID) {
		fmt.Fprintf(os.Stderr, "Error: unknown layout %q\n", cfg.Map.ID)
		fmt.Fprintln(os.Stderr, "Run 'story maps' to see available layouts.")
		os.Exit(1)
	}

	logger, logFile, err := openLogger(flagLogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	rt := cfg.ToRuntime()
	opts := game.DefaultOptions()
	opts.Runtime = rt
	opts.Player = playerSpec(cfg.Player)
	opts.Logger = logger

	term := tui.NewTerminal(tui.TerminalOptions{Logger: logger})
	g := game.New(term, opts)

	startErr := g.Start()
	g.Stop()

	if startErr != nil {
		// The terminal is restored; the reason goes to stderr too.
		logger.SetOutput(io.MultiWriter(logFile, os.Stderr))
		logger.Fatal("cannot continue", "error", startErr)
	}

	stats := g.Stats()
	sess := storage.Session{
		Layout:    rt.MapID,
		Frames:    stats.Frames,
		ElapsedMS: int64(stats.Elapsed),
		TargetFPS: rt.TargetFramerate,
		Pacing:    rt.Pacing.String(),
	}
	fmt.Printf("Played %d frames in %.1fs (%.1f fps)\n",
		sess.Frames, float64(sess.ElapsedMS)/1000, sess.AverageFPS())

	if flagDBPath != "" {
		recordSession(sess)
	}
}

// recordSession appends the run to the session log. Failures only warn.
func recordSession(sess storage.Session) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open session database: %v\n", err)
		return
	}
	defer store.Close()

	if _, err := store.SaveSession(sess); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not record session: %v\n", err)
	}
}

// playerSpec converts the player config section.
func playerSpec(p config.PlayerConfig) game.PlayerSpec {
	return game.PlayerSpec{
		Sheet:  p.Sheet,
		Col:    units.Tile(p.Col),
		Row:    units.Tile(p.Row),
		Frames: units.Frame(p.Frames),
		FPS:    units.FPS(p.FPS),
		X:      units.Game(p.X),
		Y:      units.Game(p.Y),
	}
}
