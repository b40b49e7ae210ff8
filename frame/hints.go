package frame

import "strconv"

// Hint selects the status text drawn in the bottom border.
type Hint int

const (
	HintScroll Hint = iota
	HintSelect
	HintMultiSelect
)

const (
	scrollHint      = " [q] quit  [←→] tabs  [↑↓] scroll "
	selectHint      = " [q] quit  [←→] tabs  [↑↓] select  [Enter] choose "
	multiSelectHint = " [q] quit  [←→] tabs  [↑↓] select  [Space] toggle  [Enter] confirm "
)

// HintFor picks the hint for a page with or without a selector.
func HintFor(hasSelector, multi bool) Hint {
	switch {
	case hasSelector && multi:
		return HintMultiSelect
	case hasSelector:
		return HintSelect
	default:
		return HintScroll
	}
}

func (h Hint) String() string {
	switch h {
	case HintSelect:
		return selectHint
	case HintMultiSelect:
		return multiSelectHint
	default:
		return scrollHint
	}
}

// ScrollIndicator returns " start-end/total " for a buffer taller than rows,
// or "" when everything fits.
func ScrollIndicator(offset, rows, total int) string {
	if total <= rows {
		return ""
	}
	end := offset + rows
	if end > total {
		end = total
	}
	b := make([]byte, 0, 24)
	b = append(b, ' ')
	b = strconv.AppendInt(b, int64(offset+1), 10)
	b = append(b, '-')
	b = strconv.AppendInt(b, int64(end), 10)
	b = append(b, '/')
	b = strconv.AppendInt(b, int64(total), 10)
	b = append(b, ' ')
	return string(b)
}
