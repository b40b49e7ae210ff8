package widget

import (
	"math"
	"strconv"
	"strings"

	"pkt.systems/tabterm/text"
)

const (
	fullBlock  = "█"
	lightShade = "░"
)

// ProgressBar renders a fraction as a bar of block cells and a percentage.
type ProgressBar struct {
	value float64
	fill  text.Color
	empty text.Color
}

// NewProgressBar returns an empty green bar.
func NewProgressBar() *ProgressBar {
	return &ProgressBar{fill: text.Green, empty: text.Default}
}

// SetValue sets the fraction, clamped to [0, 1].
func (b *ProgressBar) SetValue(v float64) {
	switch {
	case math.IsNaN(v) || v < 0:
		v = 0
	case v > 1:
		v = 1
	}
	b.value = v
}

func (b *ProgressBar) Value() float64 { return b.value }

func (b *ProgressBar) SetFillColor(c text.Color)  { b.fill = c }
func (b *ProgressBar) SetEmptyColor(c text.Color) { b.empty = c }

// Line renders the bar with width cells.
func (b *ProgressBar) Line(width int) text.Line {
	if width <= 0 {
		width = 1
	}
	filled := int(b.value*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	pct := int(b.value*100 + 0.5)

	line := text.Colored("[", text.BrightBlack)
	if filled > 0 {
		line = line.AddColored(strings.Repeat(fullBlock, filled), b.fill)
	}
	if width-filled > 0 {
		line = line.AddColored(strings.Repeat(lightShade, width-filled), b.empty)
	}
	return line.AddColored("] ", text.BrightBlack).
		Add(strconv.Itoa(pct)+"%", text.Style{}.Bold())
}
