package text

import "unicode/utf8"

// Width returns the number of display columns s occupies. Each well-formed
// code point counts as one column. A byte that starts an invalid or
// truncated sequence, or a stray continuation byte, is skipped.
func Width(s string) int {
	width := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if r == utf8.RuneError && size <= 1 {
			continue
		}
		width++
	}
	return width
}

// Truncate returns the longest prefix of s whose Width does not exceed
// maxWidth. The cut always falls on a code point boundary.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	width := 0
	i := 0
	for i < len(s) && width < maxWidth {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if r == utf8.RuneError && size <= 1 {
			continue
		}
		width++
	}
	return s[:i]
}

// Fit truncates s to width columns and pads it with spaces to exactly width.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = Truncate(s, width)
	if pad := width - Width(s); pad > 0 {
		b := make([]byte, 0, len(s)+pad)
		b = append(b, s...)
		for ; pad > 0; pad-- {
			b = append(b, ' ')
		}
		return string(b)
	}
	return s
}
