package terminal

import (
	"bytes"
	"errors"
	"os"
	"sync"
	"testing"

	"pkt.systems/tabterm/keys"
	"pkt.systems/tabterm/schema"
)

type fakePlatform struct {
	mu       sync.Mutex
	out      bytes.Buffer
	raw      bool
	entered  int
	exited   int
	hidden   bool
	enterErr error
	// block, when set, stalls writes of len(p) > 64 halfway through.
	block   chan struct{}
	started chan struct{}
}

func (f *fakePlatform) EnterRawMode() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enterErr != nil {
		return f.enterErr
	}
	f.raw = true
	f.entered++
	return nil
}

func (f *fakePlatform) ExitRawMode() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.raw {
		f.raw = false
		f.exited++
	}
	return nil
}

func (f *fakePlatform) Size() schema.Size { return schema.Size{Cols: 80, Rows: 24} }

func (f *fakePlatform) Write(p []byte) error {
	if f.block != nil && len(p) > 64 {
		half := len(p) / 2
		f.mu.Lock()
		f.out.Write(p[:half])
		f.mu.Unlock()
		close(f.started)
		<-f.block
		p = p[half:]
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.out.Write(p)
	return nil
}

func (f *fakePlatform) HideCursor() error {
	f.mu.Lock()
	f.hidden = true
	f.mu.Unlock()
	return nil
}

func (f *fakePlatform) ShowCursor() error {
	f.mu.Lock()
	f.hidden = false
	f.mu.Unlock()
	return nil
}

func (f *fakePlatform) Keys(resize func() bool) keys.Reader {
	return keys.NewDecoder(keys.ByteSourceFunc(func() (byte, bool) { return 0, false }), resize)
}

func (f *fakePlatform) written() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]byte(nil), f.out.Bytes()...)
}

func (f *fakePlatform) state() (raw bool, exited int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.raw, f.exited
}

// withoutSignals keeps tests from installing process signal handlers.
func withoutSignals(t *testing.T) {
	t.Helper()
	notify, stop := signalNotify, signalStop
	signalNotify = func(chan<- os.Signal, ...os.Signal) {}
	signalStop = func(chan<- os.Signal) {}
	t.Cleanup(func() {
		signalNotify, signalStop = notify, stop
	})
}

var errBroken = errors.New("broken pipe")
