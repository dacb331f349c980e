package game

import (
	"time"

	"github.com/vovakirdan/tui-story/internal/units"
)

// Clock is the timing collaborator of the loop.
type Clock interface {
	// Ticks returns monotonic milliseconds since some fixed origin.
	Ticks() units.Millis
	// Sleep suspends the caller for d milliseconds.
	Sleep(d units.Millis)
}

// SystemClock measures wall time from its creation.
type SystemClock struct {
	start time.Time
}

// NewSystemClock returns a clock whose origin is now.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Ticks returns milliseconds since the clock was created.
func (c *SystemClock) Ticks() units.Millis {
	return units.Millis(time.Since(c.start).Milliseconds())
}

// Sleep blocks for d; non-positive durations return immediately.
func (c *SystemClock) Sleep(d units.Millis) {
	if d <= 0 {
		return
	}
	time.Sleep(d.Duration())
}
