package core

import (
	"fmt"
	"strings"
)

// Pacing selects how the loop sleeps at the end of a frame.
type Pacing int

const (
	// PacingFixed always sleeps the full frame delay, whatever the frame cost.
	PacingFixed Pacing = iota
	// PacingCompensated sleeps max(0, delay - time spent in the frame).
	PacingCompensated
)

// String returns the configuration name of the pacing mode.
func (p Pacing) String() string {
	switch p {
	case PacingCompensated:
		return "compensated"
	default:
		return "fixed"
	}
}

// ParsePacing resolves a pacing name; the empty string means fixed.
func ParsePacing(s string) (Pacing, error) {
	switch strings.ToLower(s) {
	case "", "fixed":
		return PacingFixed, nil
	case "compensated":
		return PacingCompensated, nil
	default:
		return PacingFixed, fmt.Errorf("unknown pacing %q (want fixed or compensated)", s)
	}
}

// RuntimeConfig contains the settings the loop needs at start.
type RuntimeConfig struct {
	TargetFramerate int    // Frames per second the loop aims for (default 60)
	Pacing          Pacing // End-of-frame sleep strategy
	MapID           string // Layout to build at start
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TargetFramerate: 60,
		Pacing:          PacingFixed,
		MapID:           "test",
	}
}
