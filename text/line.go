package text

// Span is a run of UTF-8 text drawn in one style.
type Span struct {
	Text  string
	Style Style
}

// Line is an ordered sequence of spans rendered left to right. Lines are
// values: Add returns a new line and never touches the receiver's spans.
type Line struct {
	spans []Span
}

// NewLine builds a line from spans.
func NewLine(spans ...Span) Line {
	if len(spans) == 0 {
		return Line{}
	}
	return Line{spans: append([]Span(nil), spans...)}
}

// Plain returns a single unstyled span line.
func Plain(s string) Line {
	return Line{spans: []Span{{Text: s}}}
}

// Styled returns a single span line drawn in st.
func Styled(s string, st Style) Line {
	return Line{spans: []Span{{Text: s, Style: st}}}
}

// Colored returns a single span line with foreground c.
func Colored(s string, c Color) Line {
	return Styled(s, Fg(c))
}

// Add returns a copy of l with one more span appended.
func (l Line) Add(s string, st Style) Line {
	spans := make([]Span, len(l.spans), len(l.spans)+1)
	copy(spans, l.spans)
	return Line{spans: append(spans, Span{Text: s, Style: st})}
}

// AddColored appends a span with foreground c.
func (l Line) AddColored(s string, c Color) Line {
	return l.Add(s, Fg(c))
}

// Spans returns a copy of the line's spans.
func (l Line) Spans() []Span {
	return append([]Span(nil), l.spans...)
}

// Len returns the number of spans.
func (l Line) Len() int {
	return len(l.spans)
}

// Width returns the display width of the line's text.
func (l Line) Width() int {
	width := 0
	for _, span := range l.spans {
		width += Width(span.Text)
	}
	return width
}

// PlainText returns the concatenated span text without styling.
func (l Line) PlainText() string {
	n := 0
	for _, span := range l.spans {
		n += len(span.Text)
	}
	b := make([]byte, 0, n)
	for _, span := range l.spans {
		b = append(b, span.Text...)
	}
	return string(b)
}

// AppendRender appends the styled rendering of l to dst. When maxWidth is
// positive the text is truncated to that many columns; a span cut short is
// still closed with a reset so its style never leaks.
func (l Line) AppendRender(dst []byte, maxWidth int) []byte {
	bounded := maxWidth > 0
	remaining := maxWidth
	for _, span := range l.spans {
		if bounded && remaining <= 0 {
			break
		}
		content := span.Text
		if bounded {
			if w := Width(content); w > remaining {
				content = Truncate(content, remaining)
				remaining = 0
			} else {
				remaining -= w
			}
		}
		dst = span.Style.AppendBegin(dst)
		dst = append(dst, content...)
		dst = append(dst, resetSGR...)
	}
	return dst
}

// Render returns the styled rendering of l limited to maxWidth columns, or
// unbounded when maxWidth is zero.
func (l Line) Render(maxWidth int) string {
	return string(l.AppendRender(make([]byte, 0, len(l.spans)*32), maxWidth))
}
