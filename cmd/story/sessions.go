package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-story/internal/platform/tui"
	"github.com/vovakirdan/tui-story/internal/storage"
)

var (
	flagLayout string
	flagPlain  bool
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Browse recorded play sessions",
	Long: `Show the session log written by 'story play --db <path>'.

On a terminal the log opens in an interactive table; with --plain, or
when output is redirected, the most recent sessions are printed.

Examples:
  story sessions --db ~/.story/sessions.db
  story sessions --db ~/.story/sessions.db --plain --layout test`,
	Run: runSessions,
}

func init() {
	sessionsCmd.Flags().StringVar(&flagLayout, "layout", "", "Only show sessions of this layout (plain output)")
	sessionsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the log instead of opening the viewer")
}

func runSessions(cmd *cobra.Command, args []string) {
	if flagDBPath == "" {
		fmt.Fprintln(os.Stderr, "Error: no session database; pass --db <path>")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	width, height, sizeErr := term.GetSize(int(os.Stdout.Fd()))
	if flagPlain || sizeErr != nil {
		printSessions(store)
		return
	}

	if err := tui.RunSessions(store, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printSessions(store *storage.Store) {
	sessions, err := store.RecentSessions(flagLayout, 20)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		return
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'story play --db <path>' to record one.")
		return
	}

	fmt.Printf("  %-5s  %-8s  %-8s  %-8s  %-8s  %-12s  %s\n",
		"ID", "Layout", "Frames", "Time", "Avg FPS", "Pacing", "Date")
	fmt.Printf("  %-5s  %-8s  %-8s  %-8s  %-8s  %-12s  %s\n",
		"--", "------", "------", "----", "-------", "------", "----")

	for _, s := range sessions {
		fmt.Printf("  %-5d  %-8s  %-8d  %-8s  %-8.1f  %-12s  %s\n",
			s.ID, s.Layout, s.Frames,
			fmt.Sprintf("%.1fs", float64(s.ElapsedMS)/1000),
			s.AverageFPS(), s.Pacing,
			s.CreatedAt.Format("2006-01-02 15:04"))
	}

	if flagLayout != "" {
		if total, err := store.TotalFrames(flagLayout); err == nil {
			fmt.Println()
			fmt.Printf("Total frames on %s: %d\n", flagLayout, total)
		}
	}
}
