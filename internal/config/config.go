// Package config provides YAML-based configuration loading for the story
// runtime.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-story/internal/core"
)

// StoryConfig contains all runtime configuration.
type StoryConfig struct {
	Display DisplayConfig `yaml:"display"`
	Map     MapConfig     `yaml:"map"`
	Player  PlayerConfig  `yaml:"player"`
}

// DisplayConfig defines frame pacing.
type DisplayConfig struct {
	TargetFramerate int    `yaml:"target_framerate"`
	Pacing          string `yaml:"pacing"`
}

// MapConfig selects the layout.
type MapConfig struct {
	ID string `yaml:"id"`
}

// PlayerConfig defines the player sprite and its position in pixels.
type PlayerConfig struct {
	Sheet  string  `yaml:"sheet"`
	Col    int     `yaml:"col"`
	Row    int     `yaml:"row"`
	Frames int     `yaml:"frames"`
	FPS    int     `yaml:"fps"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
}

// Validate reports the first setting the loop cannot run with.
func (c StoryConfig) Validate() error {
	if c.Display.TargetFramerate <= 0 || c.Display.TargetFramerate > 1000 {
		return fmt.Errorf("config: target_framerate must be in 1..1000, got %d", c.Display.TargetFramerate)
	}
	if _, err := core.ParsePacing(c.Display.Pacing); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Map.ID == "" {
		return fmt.Errorf("config: map id is empty")
	}
	if c.Player.Sheet == "" {
		return fmt.Errorf("config: player sheet is empty")
	}
	if c.Player.Frames <= 0 || c.Player.FPS <= 0 {
		return fmt.Errorf("config: player needs frames > 0 and fps > 0, got %d and %d",
			c.Player.Frames, c.Player.FPS)
	}
	if c.Player.Col < 0 || c.Player.Row < 0 {
		return fmt.Errorf("config: player source tile %d,%d is negative", c.Player.Col, c.Player.Row)
	}
	return nil
}

// ToRuntime converts the config into what the loop needs at start.
// The config must be valid.
func (c StoryConfig) ToRuntime() core.RuntimeConfig {
	pacing, err := core.ParsePacing(c.Display.Pacing)
	if err != nil {
		pacing = core.PacingFixed
	}
	return core.RuntimeConfig{
		TargetFramerate: c.Display.TargetFramerate,
		Pacing:          pacing,
		MapID:           c.Map.ID,
	}
}
