package keys

import "pkt.systems/tabterm/schema"

// Windows virtual key codes the decoder recognises.
const (
	VKReturn uint16 = 0x0d
	VKSpace  uint16 = 0x20
	VKLeft   uint16 = 0x25
	VKUp     uint16 = 0x26
	VKRight  uint16 = 0x27
	VKDown   uint16 = 0x28
)

// EventKind classifies a console input record.
type EventKind int

const (
	EventOther EventKind = iota
	EventKey
	EventResize
)

// Record is the platform-neutral view of one console input record.
type Record struct {
	Kind       EventKind
	KeyDown    bool
	VirtualKey uint16
	Char       rune
}

// RecordSource is a console input queue.
type RecordSource interface {
	// Wait blocks for at most one poll interval and reports whether input
	// is pending.
	Wait() bool
	// NextRecord pops one pending record; ok is false when the queue is empty.
	NextRecord() (rec Record, ok bool)
}

// DecodeRecord maps one record to a key. ok is false for records that carry
// no key, such as key releases and bare modifier presses.
func DecodeRecord(rec Record) (key schema.Key, ok bool) {
	switch rec.Kind {
	case EventResize:
		return schema.KeyResize, true
	case EventKey:
	default:
		return schema.KeyNone, false
	}
	if !rec.KeyDown {
		return schema.KeyNone, false
	}
	if rec.VirtualKey == VKReturn {
		return schema.KeyEnter, true
	}
	switch rec.Char {
	case 'q', 'Q':
		return schema.KeyQuit, true
	case etx:
		return schema.KeyInterrupt, true
	}
	switch rec.VirtualKey {
	case VKLeft:
		return schema.KeyLeft, true
	case VKRight:
		return schema.KeyRight, true
	case VKUp:
		return schema.KeyUp, true
	case VKDown:
		return schema.KeyDown, true
	case VKSpace:
		return schema.KeySpace, true
	}
	if rec.Char != 0 {
		return schema.KeyOther, true
	}
	return schema.KeyNone, false
}

// RecordDecoder reads keys from a console input queue.
type RecordDecoder struct {
	src RecordSource
}

// NewRecordDecoder returns a decoder over src.
func NewRecordDecoder(src RecordSource) *RecordDecoder {
	return &RecordDecoder{src: src}
}

// Next waits one poll interval and returns the first record that decodes
// to a key. Records without a key are consumed and skipped.
func (d *RecordDecoder) Next() schema.Key {
	if !d.src.Wait() {
		return schema.KeyNone
	}
	for {
		rec, ok := d.src.NextRecord()
		if !ok {
			return schema.KeyNone
		}
		if key, ok := DecodeRecord(rec); ok {
			return key
		}
	}
}
