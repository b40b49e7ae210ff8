// Package frame composes one full-screen frame into a single byte buffer.
package frame

import (
	"strconv"

	"pkt.systems/tabterm/core"
	"pkt.systems/tabterm/schema"
	"pkt.systems/tabterm/text"
)

const (
	cornerTopLeft     = "┌"
	cornerTopRight    = "┐"
	cornerBottomLeft  = "└"
	cornerBottomRight = "┘"
	rule              = "─"
	border            = "│"

	frameStart = "\x1b[H\x1b[0m"
	frameEnd   = "\x1b[J"
)

var (
	dimStyle    = text.Fg(text.BrightBlack)
	activeStyle = text.Style{}.Bold().Reversed()
	plainStyle  = text.Style{}
)

// Input is everything needed to draw one frame.
type Input struct {
	Size schema.Size
	// Tabs are the page titles in order.
	Tabs      []string
	Active    int
	TabOffset int
	// Lines is the active page's full buffer.
	Lines  []text.Line
	Offset int
	Hint   Hint
}

// Frame is a composed screen.
type Frame struct {
	Bytes []byte
	// Tabs is the tab window that was drawn. Its First is the next TabOffset.
	Tabs core.TabWindow
	// Offset is the scroll offset that was drawn, clamped to the buffer.
	Offset int
}

// ContentRows returns the number of content rows a terminal rows tall shows.
func ContentRows(rows int) int {
	if rows-3 < 1 {
		return 1
	}
	return rows - 3
}

// ContentWidth returns the number of columns available to a content line.
func ContentWidth(cols int) int {
	return cols - 3
}

// Compose assembles the frame for in. It reports false without building
// anything when the terminal is below the minimum size.
func Compose(in Input) (Frame, bool) {
	if !in.Size.Fits() {
		return Frame{}, false
	}
	cols, rows := in.Size.Cols, in.Size.Rows
	buf := make([]byte, 0, cols*rows*8)
	buf = append(buf, frameStart...)

	win := core.LayoutTabs(in.Tabs, in.Active, in.TabOffset, cols)
	buf = appendTopBorder(buf, in.Tabs, in.Active, win, cols)

	contentRows := ContentRows(rows)
	total := len(in.Lines)
	offset := in.Offset
	if limit := core.MaxOffset(total, contentRows); offset > limit {
		offset = limit
	}
	if offset < 0 {
		offset = 0
	}
	buf = appendContent(buf, in.Lines, offset, contentRows, cols)
	buf = appendBottomBorder(buf, in.Hint.String(), ScrollIndicator(offset, contentRows, total), cols, rows)
	buf = append(buf, frameEnd...)
	return Frame{Bytes: buf, Tabs: win, Offset: offset}, true
}

func appendStyled(buf []byte, s string, st text.Style) []byte {
	buf = st.AppendBegin(buf)
	buf = append(buf, s...)
	return append(buf, text.Reset()...)
}

func appendRepeat(buf []byte, s string, n int) []byte {
	for ; n > 0; n-- {
		buf = append(buf, s...)
	}
	return buf
}

func appendSpaces(buf []byte, n int) []byte {
	return appendRepeat(buf, " ", n)
}

func appendTopBorder(buf []byte, labels []string, active int, win core.TabWindow, cols int) []byte {
	buf = appendStyled(buf, cornerTopLeft+rule, dimStyle)
	if !win.Empty() {
		if win.MoreLeft {
			buf = appendStyled(buf, "<", dimStyle)
			buf = append(buf, ' ')
		}
		for i := win.First; i <= win.Last; i++ {
			label := " " + win.Label(labels, i) + " "
			if i == active {
				buf = appendStyled(buf, label, activeStyle)
			} else {
				buf = plainStyle.AppendBegin(buf)
				buf = append(buf, label...)
			}
			if i < win.Last {
				buf = appendStyled(buf, "|", dimStyle)
			}
		}
		if win.MoreRight {
			buf = append(buf, ' ')
			buf = appendStyled(buf, ">", dimStyle)
		}
	}
	if remaining := cols - 3 - win.Width(labels); remaining > 0 {
		buf = dimStyle.AppendBegin(buf)
		buf = appendRepeat(buf, rule, remaining)
		buf = append(buf, text.Reset()...)
	}
	return appendStyled(buf, cornerTopRight, dimStyle)
}

func appendCursor(buf []byte, row int) []byte {
	buf = append(buf, "\x1b["...)
	buf = strconv.AppendInt(buf, int64(row), 10)
	return append(buf, ";1H"...)
}

func appendContent(buf []byte, lines []text.Line, offset, contentRows, cols int) []byte {
	width := ContentWidth(cols)
	for row := 0; row < contentRows; row++ {
		buf = appendCursor(buf, 2+row)
		buf = appendStyled(buf, border, dimStyle)
		if idx := offset + row; idx < len(lines) {
			line := lines[idx]
			buf = append(buf, ' ')
			buf = line.AppendRender(buf, width)
			if w := line.Width(); w < width {
				buf = appendSpaces(buf, width-w)
			}
		} else {
			buf = appendSpaces(buf, cols-2)
		}
		buf = appendStyled(buf, border, dimStyle)
	}
	return buf
}

func appendBottomBorder(buf []byte, hint, scroll string, cols, rows int) []byte {
	inner := cols - 2
	scrollWidth := text.Width(scroll)
	if scrollWidth > inner {
		scroll = text.Truncate(scroll, inner)
		scrollWidth = text.Width(scroll)
	}
	hint = text.Truncate(hint, inner-scrollWidth)
	fixed := text.Width(hint) + scrollWidth
	left := (inner - fixed) / 2
	right := inner - fixed - left

	buf = appendCursor(buf, rows-1)
	buf = dimStyle.AppendBegin(buf)
	buf = append(buf, cornerBottomLeft...)
	buf = appendRepeat(buf, rule, left)
	buf = append(buf, text.Reset()...)
	buf = append(buf, hint...)
	buf = dimStyle.AppendBegin(buf)
	buf = appendRepeat(buf, rule, right)
	if scroll != "" {
		buf = append(buf, text.Reset()...)
		buf = append(buf, scroll...)
		buf = dimStyle.AppendBegin(buf)
	}
	buf = append(buf, cornerBottomRight...)
	return append(buf, text.Reset()...)
}
