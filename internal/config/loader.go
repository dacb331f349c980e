package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "story.yaml"

// Load loads the story configuration.
// Search order: customPath -> ~/.story/configs/story.yaml -> ./configs/story.yaml -> embedded default.
//
// Keys missing from a file keep their default values. A custom path that
// cannot be read or parsed is an error; the other locations are skipped.
func Load(customPath string) (StoryConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return StoryConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return StoryConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(fileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", fileName)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultStoryYAML)
	if err != nil {
		return DefaultStoryConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse overlays data on the hardcoded defaults and validates the result.
func parse(data []byte) (StoryConfig, error) {
	cfg := DefaultStoryConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return StoryConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return StoryConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a config file in the user's config directory.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".story", "configs", filename)
}
