// Package widget holds small collaborators built on the engine: a selectable
// list and a progress bar.
package widget

import (
	"pkt.systems/tabterm/schema"
	"pkt.systems/tabterm/text"
)

const (
	cursorMark   = "> "
	noCursorMark = "  "
	checkedBox   = "[x] "
	uncheckedBox = "[ ] "
)

type listItem struct {
	label    string
	action   func()
	selected bool
}

// List is a vertical list with a cursor. In multi-select mode Space toggles
// a checkbox on the cursor item.
type List struct {
	items       []listItem
	cursor      int
	multi       bool
	onSelect    func(index int, label string)
	normalStyle text.Style
	cursorStyle text.Style
}

// NewList returns an empty list with a reversed cursor.
func NewList() *List {
	return &List{cursorStyle: text.Style{}.Reversed()}
}

// AddItem appends an item. action, when non-nil, runs on Enter.
func (l *List) AddItem(label string, action func()) {
	l.items = append(l.items, listItem{label: label, action: action})
}

// OnSelect registers a hook called on every Enter after the item action.
func (l *List) OnSelect(fn func(index int, label string)) {
	l.onSelect = fn
}

func (l *List) SetNormalStyle(st text.Style) { l.normalStyle = st }
func (l *List) SetCursorStyle(st text.Style) { l.cursorStyle = st }
func (l *List) SetMultiSelect(enabled bool)  { l.multi = enabled }

// MultiSelect reports whether checkboxes are shown.
func (l *List) MultiSelect() bool { return l.multi }

// Len returns the item count.
func (l *List) Len() int { return len(l.items) }

// Cursor returns the highlighted index.
func (l *List) Cursor() int { return l.cursor }

// Item returns the label at i, or "" when out of range.
func (l *List) Item(i int) string {
	if i < 0 || i >= len(l.items) {
		return ""
	}
	return l.items[i].label
}

// Current returns the label under the cursor.
func (l *List) Current() string {
	return l.Item(l.cursor)
}

// Selected returns the checked labels in order.
func (l *List) Selected() []string {
	var out []string
	for _, item := range l.items {
		if item.selected {
			out = append(out, item.label)
		}
	}
	return out
}

// ClearSelection unchecks every item.
func (l *List) ClearSelection() {
	for i := range l.items {
		l.items[i].selected = false
	}
}

// Clear drops every item and hook and restores the default styles.
func (l *List) Clear() {
	l.items = nil
	l.cursor = 0
	l.onSelect = nil
	l.normalStyle = text.Style{}
	l.cursorStyle = text.Style{}.Reversed()
}

// HandleKey moves the cursor, runs actions on Enter and toggles on Space.
// Moves past either end are not consumed so the page can scroll instead.
func (l *List) HandleKey(key schema.Key) bool {
	if len(l.items) == 0 {
		return false
	}
	switch key {
	case schema.KeyUp:
		if l.cursor > 0 {
			l.cursor--
			return true
		}
	case schema.KeyDown:
		if l.cursor+1 < len(l.items) {
			l.cursor++
			return true
		}
	case schema.KeyEnter:
		item := l.items[l.cursor]
		if item.action != nil {
			item.action()
		}
		if l.onSelect != nil {
			l.onSelect(l.cursor, item.label)
		}
		return true
	case schema.KeySpace:
		if l.multi {
			l.items[l.cursor].selected = !l.items[l.cursor].selected
			return true
		}
	}
	return false
}

// Lines renders one line per item, truncated to width columns.
func (l *List) Lines(width int) []text.Line {
	lines := make([]text.Line, 0, len(l.items))
	for i, item := range l.items {
		st := l.normalStyle
		mark := noCursorMark
		if i == l.cursor {
			st = l.cursorStyle
			mark = cursorMark
		}
		if l.multi {
			box := uncheckedBox
			if item.selected {
				box = checkedBox
			}
			label := item.label
			prefix := text.Width(mark) + text.Width(box)
			if width > prefix {
				label = text.Truncate(label, width-prefix)
			}
			lines = append(lines, text.Styled(mark, st).
				AddColored(box, text.BrightBlack).
				Add(label, st))
			continue
		}
		content := mark + item.label
		if width > 0 {
			content = text.Truncate(content, width)
		}
		lines = append(lines, text.Styled(content, st))
	}
	return lines
}
