package core

import "pkt.systems/tabterm/text"

// Tab bar geometry. Each label is drawn as " label " and neighbours are
// separated by one column. Overflow indicators take two columns each.
const (
	tabPadding     = 2
	tabSeparator   = 1
	indicatorWidth = 2
	// frameReserve covers the two corners and the leading rule segment.
	frameReserve = 3
)

// TabWindow is the visible slice of the tab bar.
type TabWindow struct {
	First     int
	Last      int
	MoreLeft  bool
	MoreRight bool
	// ClipWidth is the width a lone visible label is cut to when it cannot
	// fit even by itself. It is -1 when no clipping is needed.
	ClipWidth int
}

// Empty reports whether no tab is visible.
func (w TabWindow) Empty() bool {
	return w.Last < w.First
}

// Label returns the label of tab i as it is drawn, clipped when required.
func (w TabWindow) Label(labels []string, i int) string {
	if i < 0 || i >= len(labels) {
		return ""
	}
	if w.ClipWidth >= 0 {
		return text.Truncate(labels[i], w.ClipWidth)
	}
	return labels[i]
}

// Width returns the number of columns the visible tabs and indicators use.
func (w TabWindow) Width(labels []string) int {
	if w.Empty() {
		return 0
	}
	width := 0
	if w.MoreLeft {
		width += indicatorWidth
	}
	for i := w.First; i <= w.Last; i++ {
		if i > w.First {
			width += tabSeparator
		}
		width += text.Width(w.Label(labels, i)) + tabPadding
	}
	if w.MoreRight {
		width += indicatorWidth
	}
	return width
}

// LayoutTabs picks which tabs fit in a bar totalWidth columns wide. offset is
// the first tab drawn in the previous frame; the returned First becomes the
// next frame's offset. The window only scrolls right when the active tab
// would otherwise fall off the end, and only scrolls left when the active tab
// precedes offset.
func LayoutTabs(labels []string, active, offset, totalWidth int) TabWindow {
	n := len(labels)
	if n == 0 {
		return TabWindow{First: 0, Last: -1, ClipWidth: -1}
	}
	active = clampIndex(active, n)
	first := clampIndex(offset, n)
	if active < first {
		first = active
	}

	widths := make([]int, n)
	for i, label := range labels {
		widths[i] = text.Width(label) + tabPadding
	}

	last := lastVisible(widths, first, budgetFor(totalWidth, first))
	for active > last && first < active {
		first++
		last = lastVisible(widths, first, budgetFor(totalWidth, first))
	}
	if last < active {
		last = active
	}

	win := TabWindow{
		First:     first,
		Last:      last,
		MoreLeft:  first > 0,
		MoreRight: last < n-1,
		ClipWidth: -1,
	}

	// A lone label that still overflows is cut on a code point boundary.
	if win.Width(labels) > totalWidth-frameReserve {
		avail := totalWidth - frameReserve - tabPadding
		if win.MoreLeft {
			avail -= indicatorWidth
		}
		if win.MoreRight {
			avail -= indicatorWidth
		}
		if avail < 0 {
			avail = 0
		}
		win.ClipWidth = avail
	}
	return win
}

func budgetFor(totalWidth, first int) int {
	budget := totalWidth - frameReserve
	if first > 0 {
		budget -= indicatorWidth
	}
	return budget
}

// lastVisible returns the last tab that fits after first. Every tab but the
// final one keeps room for the right indicator.
func lastVisible(widths []int, first, budget int) int {
	used := widths[first]
	last := first
	for i := first + 1; i < len(widths); i++ {
		reserve := 0
		if i+1 < len(widths) {
			reserve = indicatorWidth
		}
		if used+tabSeparator+widths[i]+reserve > budget {
			break
		}
		used += tabSeparator + widths[i]
		last = i
	}
	return last
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
