package core

// Viewport tracks the scroll offset of a content buffer against a visible
// row count. Offset is the index of the first visible line; 0 is the top.
//
// The offset stays within [0, MaxOffset(total, visible)] as long as it is
// only changed through ScrollUp, ScrollDown, Clamp and EnsureVisible.
type Viewport struct {
	offset int
}

// MaxOffset returns the largest valid offset for total lines shown in visible
// rows. A non-positive visible count means the whole buffer is visible.
func MaxOffset(total, visible int) int {
	if visible <= 0 {
		visible = total
	}
	if total <= visible {
		return 0
	}
	return total - visible
}

// Offset returns the index of the first visible line.
func (v *Viewport) Offset() int {
	return v.offset
}

// ScrollUp moves the offset n lines towards the top.
func (v *Viewport) ScrollUp(n int) {
	if n <= 0 {
		return
	}
	v.offset -= n
	if v.offset < 0 {
		v.offset = 0
	}
}

// ScrollDown moves the offset n lines towards the bottom, stopping when the
// last line reaches the bottom row.
func (v *Viewport) ScrollDown(n, total, visible int) {
	if n <= 0 {
		return
	}
	limit := MaxOffset(total, visible)
	if v.offset+n > limit {
		v.offset = limit
		return
	}
	v.offset += n
}

// Clamp pulls the offset back into range after the buffer or the visible row
// count shrank.
func (v *Viewport) Clamp(total, visible int) {
	if limit := MaxOffset(total, visible); v.offset > limit {
		v.offset = limit
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

// EnsureVisible scrolls the minimum distance needed to show row.
func (v *Viewport) EnsureVisible(row, total, visible int) {
	if row < 0 || row >= total || visible <= 0 {
		return
	}
	if row < v.offset {
		v.offset = row
	} else if row >= v.offset+visible {
		v.offset = row - visible + 1
	}
	v.Clamp(total, visible)
}

// Reset returns to the top.
func (v *Viewport) Reset() {
	v.offset = 0
}

// Window returns the half-open range [start, end) of lines visible at the
// current offset.
func (v *Viewport) Window(total, visible int) (start, end int) {
	if visible <= 0 {
		visible = total
	}
	start = v.offset
	if start > total {
		start = total
	}
	end = start + visible
	if end > total {
		end = total
	}
	return start, end
}
