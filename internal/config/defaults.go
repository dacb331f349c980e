package config

import (
	_ "embed"
)

//go:embed defaults/story.yaml
var defaultStoryYAML []byte

// DefaultStoryConfig returns the built-in configuration.
func DefaultStoryConfig() StoryConfig {
	return StoryConfig{
		Display: DisplayConfig{
			TargetFramerate: 60,
			Pacing:          "fixed",
		},
		Map: MapConfig{
			ID: "test",
		},
		Player: PlayerConfig{
			Sheet:  "assets/base/MyChar.bmp",
			Col:    0,
			Row:    0,
			Frames: 3,
			FPS:    15,
			X:      192,
			Y:      416,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultStoryYAML
}
