package display

import (
	"math"
	"strings"
)

// ProgressBar renders a fixed-width ASCII fill.
type ProgressBar struct {
	width int
}

// NewProgressBar creates a bar; widths below 1 fall back to 20.
func NewProgressBar(width int) *ProgressBar {
	if width < 1 {
		width = 20
	}
	return &ProgressBar{width: width}
}

// Render returns "[=====     ]" for a percentage in [0,100]; out-of-range
// values are clamped.
func (pb *ProgressBar) Render(percent float64) string {
	percent = math.Max(0, math.Min(100, percent))
	filled := int(percent * float64(pb.width) / 100)

	var b strings.Builder
	b.Grow(pb.width + 2)
	b.WriteByte('[')
	b.WriteString(strings.Repeat("=", filled))
	b.WriteString(strings.Repeat(" ", pb.width-filled))
	b.WriteByte(']')
	return b.String()
}
