// Package terminal owns the controlling terminal: raw mode, size queries,
// frame writes and restoration on exit or fatal signal.
package terminal

import (
	"fmt"
	"time"

	"pkt.systems/tabterm/keys"
	"pkt.systems/tabterm/schema"
)

const (
	hideCursorSeq = "\x1b[?25l"
	showCursorSeq = "\x1b[?25h"
)

// restoreSeq shows the cursor, clears the screen and homes the cursor. It is
// allocated once so the termination path performs a single fixed write.
var restoreSeq = []byte(showCursorSeq + "\x1b[2J\x1b[1;1H")

// RestoreSequence returns a copy of the bytes written when a session ends.
func RestoreSequence() []byte {
	return append([]byte(nil), restoreSeq...)
}

// Platform is the OS terminal underneath a Session.
type Platform interface {
	// EnterRawMode saves the current attributes and switches to raw input
	// with a bounded read timeout.
	EnterRawMode() error
	// ExitRawMode restores the saved attributes. It is a no-op when raw
	// mode is not active.
	ExitRawMode() error
	// Size queries the current size, falling back to 80x24.
	Size() schema.Size
	// Write writes p in full or returns an error wrapping ErrWriteAborted.
	Write(p []byte) error
	HideCursor() error
	ShowCursor() error
	// Keys returns a decoder over the terminal input. resize is polled by
	// decoders that rely on an out-of-band resize notification.
	Keys(resize func() bool) keys.Reader
}

// ConsoleOptions tunes the OS console.
type ConsoleOptions struct {
	// PollInterval bounds a single input read.
	PollInterval time.Duration
	// DrainLimit caps the bytes skipped for one unknown CSI sequence.
	DrainLimit int
}

func (o ConsoleOptions) withDefaults() ConsoleOptions {
	if o.PollInterval <= 0 {
		o.PollInterval = schema.DefaultPollInterval
	}
	if o.DrainLimit <= 0 {
		o.DrainLimit = schema.DefaultDrainLimit
	}
	return o
}

// writeAll loops until p is written. Short writes and retryable errors keep
// the loop going; anything else ends it.
func writeAll(write func([]byte) (int, error), p []byte, retryable func(error) bool) error {
	for len(p) > 0 {
		n, err := write(p)
		if n > 0 {
			p = p[n:]
		}
		if err != nil {
			if retryable != nil && retryable(err) {
				continue
			}
			return fmt.Errorf("%w: %w", schema.ErrWriteAborted, err)
		}
		if n <= 0 {
			return fmt.Errorf("%w: zero-length write", schema.ErrWriteAborted)
		}
	}
	return nil
}
