// Package keys turns raw terminal input into schema.Key events.
package keys

import "pkt.systems/tabterm/schema"

const (
	esc = 0x1b
	etx = 0x03
)

// Reader yields one logical key per call. KeyNone means nothing arrived
// within one poll interval.
type Reader interface {
	Next() schema.Key
}

// ByteSource yields one input byte per call. ok is false when no byte
// arrived within the poll interval or the read failed.
type ByteSource interface {
	NextByte() (b byte, ok bool)
}

// ByteSourceFunc adapts a function to ByteSource.
type ByteSourceFunc func() (byte, bool)

func (f ByteSourceFunc) NextByte() (byte, bool) { return f() }

// Decoder is the byte-level key state machine used on POSIX terminals.
type Decoder struct {
	src        ByteSource
	resize     func() bool
	drainLimit int
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithDrainLimit caps how many bytes are discarded while skipping an
// unrecognised CSI sequence. Non-positive values keep the default.
func WithDrainLimit(n int) Option {
	return func(d *Decoder) {
		if n > 0 {
			d.drainLimit = n
		}
	}
}

// NewDecoder returns a decoder reading from src. resize, when non-nil, is
// polled before every read and must report and clear a pending resize.
func NewDecoder(src ByteSource, resize func() bool, opts ...Option) *Decoder {
	d := &Decoder{src: src, resize: resize, drainLimit: schema.DefaultDrainLimit}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Next decodes one key. A pending resize wins over buffered input.
func (d *Decoder) Next() schema.Key {
	if d.resize != nil && d.resize() {
		return schema.KeyResize
	}
	b, ok := d.src.NextByte()
	if !ok {
		return schema.KeyNone
	}
	switch b {
	case '\r':
		return schema.KeyEnter
	case 'q', 'Q':
		return schema.KeyQuit
	case etx:
		return schema.KeyInterrupt
	case ' ':
		return schema.KeySpace
	case esc:
		return d.escape()
	}
	return schema.KeyOther
}

func (d *Decoder) escape() schema.Key {
	first, ok := d.src.NextByte()
	if !ok {
		return schema.KeyOther
	}
	second, ok := d.src.NextByte()
	if !ok {
		return schema.KeyOther
	}
	if first != '[' {
		return schema.KeyOther
	}
	switch second {
	case 'A':
		return schema.KeyUp
	case 'B':
		return schema.KeyDown
	case 'C':
		return schema.KeyRight
	case 'D':
		return schema.KeyLeft
	}
	if isDigit(second) {
		d.drain()
	}
	return schema.KeyOther
}

// drain discards the rest of a parameterised CSI sequence up to and
// including its final letter.
func (d *Decoder) drain() {
	for i := 0; i < d.drainLimit; i++ {
		b, ok := d.src.NextByte()
		if !ok || isLetter(b) {
			return
		}
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
