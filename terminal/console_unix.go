//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package terminal

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"pkt.systems/tabterm/keys"
	"pkt.systems/tabterm/schema"
)

// Console is the POSIX terminal on stdin/stdout.
type Console struct {
	in         int
	out        int
	vtime      uint8
	drainLimit int

	mu    sync.Mutex
	saved *unix.Termios
}

// NewConsole returns the console bound to the process's stdin and stdout.
func NewConsole(opts ConsoleOptions) *Console {
	opts = opts.withDefaults()
	return &Console{
		in:         int(os.Stdin.Fd()),
		out:        int(os.Stdout.Fd()),
		vtime:      pollToVTIME(opts.PollInterval),
		drainLimit: opts.DrainLimit,
	}
}

// pollToVTIME converts a poll interval to termios deciseconds.
func pollToVTIME(d time.Duration) uint8 {
	ds := d / (100 * time.Millisecond)
	if ds < 1 {
		return 1
	}
	if ds > 255 {
		return 255
	}
	return uint8(ds)
}

func (c *Console) EnterRawMode() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.saved != nil {
		return nil
	}
	if !term.IsTerminal(c.in) {
		return schema.ErrNotTerminal
	}
	orig, err := unix.IoctlGetTermios(c.in, ioctlGetTermios)
	if err != nil {
		return fmt.Errorf("%w: get termios: %w", schema.ErrRawMode, err)
	}
	raw := *orig
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = c.vtime
	if err := unix.IoctlSetTermios(c.in, ioctlSetTermios, &raw); err != nil {
		return fmt.Errorf("%w: set termios: %w", schema.ErrRawMode, err)
	}
	c.saved = orig
	return nil
}

func (c *Console) ExitRawMode() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.saved == nil {
		return nil
	}
	saved := c.saved
	c.saved = nil
	if err := unix.IoctlSetTermios(c.in, ioctlSetTermios, saved); err != nil {
		return fmt.Errorf("restore termios: %w", err)
	}
	return nil
}

func (c *Console) Size() schema.Size {
	ws, err := unix.IoctlGetWinsize(c.out, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return schema.Size{Cols: schema.DefaultCols, Rows: schema.DefaultRows}
	}
	return schema.Size{Cols: int(ws.Col), Rows: int(ws.Row)}
}

func (c *Console) Write(p []byte) error {
	return writeAll(func(b []byte) (int, error) {
		return unix.Write(c.out, b)
	}, p, retryableWrite)
}

func retryableWrite(err error) bool {
	return errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN)
}

func (c *Console) HideCursor() error {
	return c.Write([]byte(hideCursorSeq))
}

func (c *Console) ShowCursor() error {
	return c.Write([]byte(showCursorSeq))
}

// Keys decodes bytes from stdin. Each read returns after at most one VTIME
// interval.
func (c *Console) Keys(resize func() bool) keys.Reader {
	return keys.NewDecoder(fdSource(c.in), resize, keys.WithDrainLimit(c.drainLimit))
}

type fdSource int

func (fd fdSource) NextByte() (byte, bool) {
	var b [1]byte
	n, err := unix.Read(int(fd), b[:])
	if err != nil || n <= 0 {
		return 0, false
	}
	return b[0], true
}
