package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-story/internal/world"
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List all available layouts",
	Long:  `Shows a list of all map layouts that can be played.`,
	Run:   runMaps,
}

func runMaps(cmd *cobra.Command, args []string) {
	layouts := world.Layouts()

	if len(layouts) == 0 {
		fmt.Println("No layouts available.")
		return
	}

	fmt.Println("Available layouts:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, l := range layouts {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, l := range layouts {
		fmt.Printf("  %-*s  %s\n", maxIDLen, l.ID, l.Title)
	}

	fmt.Println()
	fmt.Println("Run 'story play <id>' to play a layout.")
}
