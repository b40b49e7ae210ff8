package core

import (
	"pkt.systems/tabterm/schema"
	"pkt.systems/tabterm/text"
)

// Selector is an interactive widget attached below a page's static lines.
// It gets the first chance to handle a key while its page is active.
type Selector interface {
	// HandleKey reports whether the key was consumed.
	HandleKey(key schema.Key) bool
	// Lines renders the selector for width content columns.
	Lines(width int) []text.Line
	Len() int
	MultiSelect() bool
}

// Cursored is implemented by selectors that track a highlighted item. The
// page keeps that item's row on screen.
type Cursored interface {
	Cursor() int
}

// Page is one tab: a title, static content lines, an optional selector and
// the scroll state of the combined buffer.
type Page struct {
	title    string
	lines    []text.Line
	selector Selector
	view     Viewport
}

// NewPage returns an empty page.
func NewPage(title string) *Page {
	return &Page{title: title}
}

func (p *Page) Title() string { return p.title }

// SetTitle renames the tab.
func (p *Page) SetTitle(title string) { p.title = title }

// AddLine appends a static line.
func (p *Page) AddLine(line text.Line) {
	p.lines = append(p.lines, line)
}

// AddText appends an unstyled static line.
func (p *Page) AddText(s string) {
	p.lines = append(p.lines, text.Plain(s))
}

// AddLines appends static lines in order.
func (p *Page) AddLines(lines ...text.Line) {
	p.lines = append(p.lines, lines...)
}

// AddBlank appends an empty line.
func (p *Page) AddBlank() {
	p.lines = append(p.lines, text.Plain(""))
}

// UpdateLine replaces static line i. Out of range indexes are ignored.
func (p *Page) UpdateLine(i int, line text.Line) {
	if i < 0 || i >= len(p.lines) {
		return
	}
	p.lines[i] = line
}

// Clear drops the static lines and scrolls back to the top. The selector
// stays attached.
func (p *Page) Clear() {
	p.lines = nil
	p.view.Reset()
}

// SetSelector attaches s below the static lines; nil detaches.
func (p *Page) SetSelector(s Selector) {
	p.selector = s
}

func (p *Page) Selector() Selector { return p.selector }

// StaticLines returns the number of static lines.
func (p *Page) StaticLines() int { return len(p.lines) }

// TotalLines counts static lines plus selector items.
func (p *Page) TotalLines() int {
	total := len(p.lines)
	if p.selector != nil {
		total += p.selector.Len()
	}
	return total
}

// Content returns the full buffer for a content area width columns wide.
// Static lines come first. Selector lines are rendered one column narrower.
func (p *Page) Content(width int) []text.Line {
	if p.selector == nil {
		return p.lines
	}
	list := p.selector.Lines(width - 1)
	out := make([]text.Line, 0, len(p.lines)+len(list))
	out = append(out, p.lines...)
	return append(out, list...)
}

// Offset returns the scroll offset.
func (p *Page) Offset() int { return p.view.Offset() }

// ScrollUp scrolls n lines towards the top.
func (p *Page) ScrollUp(n int) {
	p.view.ScrollUp(n)
}

// ScrollDown scrolls n lines towards the bottom against visible rows.
func (p *Page) ScrollDown(n, visible int) {
	p.view.ScrollDown(n, p.TotalLines(), visible)
}

// Fit clamps the scroll offset to the current buffer and row count.
func (p *Page) Fit(visible int) {
	p.view.Clamp(p.TotalLines(), visible)
}

// HandleKey offers key to the selector. When the selector consumes it and
// exposes a cursor, the cursor row is scrolled into view.
func (p *Page) HandleKey(key schema.Key, visible int) bool {
	if p.selector == nil || !p.selector.HandleKey(key) {
		return false
	}
	if c, ok := p.selector.(Cursored); ok {
		p.view.EnsureVisible(len(p.lines)+c.Cursor(), p.TotalLines(), visible)
	}
	return true
}
