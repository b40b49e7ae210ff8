//go:build windows

package terminal

import (
	"encoding/binary"
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/term"

	"pkt.systems/tabterm/keys"
	"pkt.systems/tabterm/schema"
)

const (
	utf8CodePage = 65001

	keyEvent              = 0x0001
	windowBufferSizeEvent = 0x0004
)

var (
	kernel32                          = windows.NewLazySystemDLL("kernel32.dll")
	procReadConsoleInputW             = kernel32.NewProc("ReadConsoleInputW")
	procGetNumberOfConsoleInputEvents = kernel32.NewProc("GetNumberOfConsoleInputEvents")
)

// inputRecord mirrors INPUT_RECORD: an event type followed by a 16 byte union.
type inputRecord struct {
	eventType uint16
	_         uint16
	event     [16]byte
}

// Console is the Windows console attached to the process.
type Console struct {
	in       windows.Handle
	out      windows.Handle
	pollMS   uint32
	mu       sync.Mutex
	armed    bool
	inMode   uint32
	outMode  uint32
	codePage uint32
}

// NewConsole returns the console bound to the standard handles.
func NewConsole(opts ConsoleOptions) *Console {
	opts = opts.withDefaults()
	in, _ := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	out, _ := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE)
	return &Console{in: in, out: out, pollMS: uint32(opts.PollInterval.Milliseconds())}
}

// EnterRawMode enables VT output processing, reduces input to window
// events and key records, and switches output to UTF-8.
func (c *Console) EnterRawMode() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.armed {
		return nil
	}
	if !term.IsTerminal(int(c.in)) {
		return schema.ErrNotTerminal
	}
	if err := windows.GetConsoleMode(c.out, &c.outMode); err != nil {
		return fmt.Errorf("%w: get output mode: %w", schema.ErrRawMode, err)
	}
	if err := windows.GetConsoleMode(c.in, &c.inMode); err != nil {
		return fmt.Errorf("%w: get input mode: %w", schema.ErrRawMode, err)
	}
	cp, err := windows.GetConsoleOutputCP()
	if err != nil {
		return fmt.Errorf("%w: get code page: %w", schema.ErrRawMode, err)
	}
	c.codePage = cp
	if err := windows.SetConsoleMode(c.out, c.outMode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
		return fmt.Errorf("%w: set output mode: %w", schema.ErrRawMode, err)
	}
	if err := windows.SetConsoleMode(c.in, windows.ENABLE_WINDOW_INPUT); err != nil {
		_ = windows.SetConsoleMode(c.out, c.outMode)
		return fmt.Errorf("%w: set input mode: %w", schema.ErrRawMode, err)
	}
	_ = windows.SetConsoleOutputCP(utf8CodePage)
	c.armed = true
	return nil
}

func (c *Console) ExitRawMode() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.armed {
		return nil
	}
	c.armed = false
	errOut := windows.SetConsoleMode(c.out, c.outMode)
	errIn := windows.SetConsoleMode(c.in, c.inMode)
	_ = windows.SetConsoleOutputCP(c.codePage)
	if errOut != nil {
		return fmt.Errorf("restore output mode: %w", errOut)
	}
	if errIn != nil {
		return fmt.Errorf("restore input mode: %w", errIn)
	}
	return nil
}

func (c *Console) Size() schema.Size {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(c.out, &info); err != nil {
		return schema.Size{Cols: schema.DefaultCols, Rows: schema.DefaultRows}
	}
	cols := int(info.Window.Right-info.Window.Left) + 1
	rows := int(info.Window.Bottom-info.Window.Top) + 1
	if cols <= 0 || rows <= 0 {
		return schema.Size{Cols: schema.DefaultCols, Rows: schema.DefaultRows}
	}
	return schema.Size{Cols: cols, Rows: rows}
}

func (c *Console) Write(p []byte) error {
	return writeAll(func(b []byte) (int, error) {
		return windows.Write(c.out, b)
	}, p, nil)
}

func (c *Console) HideCursor() error {
	return c.Write([]byte(hideCursorSeq))
}

func (c *Console) ShowCursor() error {
	return c.Write([]byte(showCursorSeq))
}

// Keys decodes console input records. Resizes arrive as records, so resize
// is not consulted.
func (c *Console) Keys(func() bool) keys.Reader {
	return keys.NewRecordDecoder(&recordQueue{in: c.in, pollMS: c.pollMS})
}

type recordQueue struct {
	in     windows.Handle
	pollMS uint32
}

func (q *recordQueue) Wait() bool {
	ev, err := windows.WaitForSingleObject(q.in, q.pollMS)
	return err == nil && ev == windows.WAIT_OBJECT_0
}

func (q *recordQueue) NextRecord() (keys.Record, bool) {
	var pending uint32
	r, _, _ := procGetNumberOfConsoleInputEvents.Call(uintptr(q.in), uintptr(unsafe.Pointer(&pending)))
	if r == 0 || pending == 0 {
		return keys.Record{}, false
	}
	var rec inputRecord
	var read uint32
	r, _, _ = procReadConsoleInputW.Call(uintptr(q.in), uintptr(unsafe.Pointer(&rec)), 1, uintptr(unsafe.Pointer(&read)))
	if r == 0 || read == 0 {
		return keys.Record{}, false
	}
	return decodeInputRecord(rec), true
}

// decodeInputRecord unpacks KEY_EVENT_RECORD: bKeyDown at 0, wVirtualKeyCode
// at 6 and the UTF-16 char at 10.
func decodeInputRecord(rec inputRecord) keys.Record {
	switch rec.eventType {
	case windowBufferSizeEvent:
		return keys.Record{Kind: keys.EventResize}
	case keyEvent:
		return keys.Record{
			Kind:       keys.EventKey,
			KeyDown:    binary.LittleEndian.Uint32(rec.event[0:4]) != 0,
			VirtualKey: binary.LittleEndian.Uint16(rec.event[6:8]),
			Char:       rune(binary.LittleEndian.Uint16(rec.event[10:12])),
		}
	default:
		return keys.Record{Kind: keys.EventOther}
	}
}
