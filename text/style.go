package text

import "strconv"

// Color is one of the 16 ANSI colors or Default.
type Color uint8

const (
	Default Color = iota
	Black
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

// fgCode returns the SGR foreground parameter, or 0 for Default and unknown values.
func (c Color) fgCode() int {
	switch {
	case c >= Black && c <= White:
		return 30 + int(c-Black)
	case c >= BrightBlack && c <= BrightWhite:
		return 90 + int(c-BrightBlack)
	default:
		return 0
	}
}

const (
	csi      = "\x1b["
	resetSGR = "\x1b[0m"
)

// Style is an immutable set of colors and attributes. The zero value renders
// as a plain reset.
type Style struct {
	fg        Color
	bg        Color
	bold      bool
	underline bool
	reverse   bool
}

// Fg returns a style with only the foreground color set.
func Fg(c Color) Style {
	return Style{fg: c}
}

func (s Style) Bold() Style      { s.bold = true; return s }
func (s Style) Underline() Style { s.underline = true; return s }
func (s Style) Reversed() Style  { s.reverse = true; return s }
func (s Style) Fg(c Color) Style { s.fg = c; return s }
func (s Style) Bg(c Color) Style { s.bg = c; return s }

// Foreground returns the foreground color.
func (s Style) Foreground() Color { return s.fg }

// Background returns the background color.
func (s Style) Background() Color { return s.bg }

// AppendBegin appends the SGR sequence selecting s. The sequence always
// starts from a reset so spans never inherit attributes.
func (s Style) AppendBegin(dst []byte) []byte {
	dst = append(dst, csi...)
	dst = append(dst, '0')
	if s.bold {
		dst = append(dst, ";1"...)
	}
	if s.underline {
		dst = append(dst, ";4"...)
	}
	if s.reverse {
		dst = append(dst, ";7"...)
	}
	if code := s.fg.fgCode(); code != 0 {
		dst = append(dst, ';')
		dst = strconv.AppendInt(dst, int64(code), 10)
	}
	// Background codes sit 10 above the foreground codes in both ranges.
	if code := s.bg.fgCode(); code != 0 {
		dst = append(dst, ';')
		dst = strconv.AppendInt(dst, int64(code+10), 10)
	}
	return append(dst, 'm')
}

// Begin returns the SGR sequence selecting s.
func (s Style) Begin() string {
	return string(s.AppendBegin(make([]byte, 0, 16)))
}

// Reset returns the sequence clearing every attribute.
func Reset() string {
	return resetSGR
}
