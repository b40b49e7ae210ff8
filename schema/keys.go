package schema

// Key is a decoded logical input event.
type Key int

const (
	// KeyNone means no input arrived within the poll interval.
	KeyNone Key = iota
	KeyQuit
	KeyInterrupt
	KeyResize
	KeyEnter
	KeySpace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyOther
)

var keyNames = [...]string{
	KeyNone:      "none",
	KeyQuit:      "quit",
	KeyInterrupt: "interrupt",
	KeyResize:    "resize",
	KeyEnter:     "enter",
	KeySpace:     "space",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyOther:     "other",
}

func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return "unknown"
	}
	return keyNames[k]
}

// Stops reports whether the key ends the run loop.
func (k Key) Stops() bool {
	return k == KeyQuit || k == KeyInterrupt
}
