package terminal

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"pkt.systems/pslog"
	"pkt.systems/tabterm/internal/logx"
	"pkt.systems/tabterm/keys"
	"pkt.systems/tabterm/schema"
)

// DefaultRestoreWait bounds how long the termination path waits for an
// in-flight frame write before writing the restore sequence anyway.
const DefaultRestoreWait = 250 * time.Millisecond

// current is the one open session in this process.
var current atomic.Pointer[Session]

// SessionOptions configures a Session.
type SessionOptions struct {
	// ExitCode is the status used when a termination signal ends the process.
	ExitCode int
	// Exit ends the process. Defaults to os.Exit.
	Exit func(code int)
	// RestoreWait overrides DefaultRestoreWait.
	RestoreWait time.Duration
}

// Session is the process-wide terminal session. It owns raw mode for its
// lifetime and restores the terminal on Close or on SIGINT/SIGTERM.
//
// The signal path only touches writeMu, the platform's Write and
// ExitRawMode, and the exit function.
type Session struct {
	platform Platform
	log      pslog.Logger
	exitCode int
	exit     func(int)
	wait     time.Duration

	writeMu sync.Mutex
	resize  atomic.Bool
	closed  atomic.Bool

	terminate chan os.Signal
	winch     chan os.Signal
	done      chan struct{}
	closeOnce sync.Once
}

// Open enters raw mode on p, hides the cursor and installs the signal
// watchers. Only one session may be open at a time.
func Open(ctx context.Context, p Platform, opts SessionOptions) (*Session, error) {
	s := &Session{
		platform:  p,
		log:       pslog.Ctx(ctx),
		exitCode:  opts.ExitCode,
		exit:      opts.Exit,
		wait:      opts.RestoreWait,
		terminate: make(chan os.Signal, 1),
		winch:     make(chan os.Signal, 1),
		done:      make(chan struct{}),
	}
	if s.exit == nil {
		s.exit = os.Exit
	}
	if s.wait <= 0 {
		s.wait = DefaultRestoreWait
	}
	if !current.CompareAndSwap(nil, s) {
		return nil, schema.ErrSessionActive
	}
	if err := p.EnterRawMode(); err != nil {
		current.CompareAndSwap(s, nil)
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}
	if err := p.HideCursor(); err != nil {
		s.log.Warn("terminal hide cursor failed", "err", err)
	}
	s.watch()
	logx.WithSize(s.log, p.Size()).Debug("terminal session open")
	return s, nil
}

// Active reports whether a session is open in this process.
func Active() bool {
	return current.Load() != nil
}

func (s *Session) watch() {
	notifyTerminate(s.terminate)
	notifyResize(s.winch)
	go func() {
		for {
			select {
			case <-s.winch:
				s.resize.Store(true)
			case sig := <-s.terminate:
				s.onTerminate(sig)
				return
			case <-s.done:
				return
			}
		}
	}()
}

func notifyTerminate(ch chan<- os.Signal) {
	signalNotify(ch, os.Interrupt, syscall.SIGTERM)
}

// onTerminate restores the terminal and ends the process. It writes the
// fixed restore sequence once, resets the attributes and exits without
// running deferred cleanup.
func (s *Session) onTerminate(os.Signal) {
	s.closed.Store(true)
	locked := s.lockWithin(s.wait)
	_ = s.platform.Write(restoreSeq)
	_ = s.platform.ExitRawMode()
	current.CompareAndSwap(s, nil)
	s.exit(s.exitCode)
	// Only reached when exit is replaced.
	if locked {
		s.writeMu.Unlock()
	}
}

func (s *Session) lockWithin(d time.Duration) bool {
	deadline := time.Now().Add(d)
	for {
		if s.writeMu.TryLock() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// TakeResize reports and clears a pending resize notification.
func (s *Session) TakeResize() bool {
	return s.resize.Swap(false)
}

// Keys returns the key decoder for this session.
func (s *Session) Keys() keys.Reader {
	return s.platform.Keys(s.TakeResize)
}

// Size returns the current terminal size.
func (s *Session) Size() schema.Size {
	return s.platform.Size()
}

// WriteFrame writes one composed frame in a single platform write.
func (s *Session) WriteFrame(frame []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.closed.Load() {
		return schema.ErrWriteAborted
	}
	return s.platform.Write(frame)
}

// Close restores the terminal. It is safe to call more than once.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		signalStop(s.terminate)
		signalStop(s.winch)

		s.writeMu.Lock()
		wasClosed := s.closed.Swap(true)
		if !wasClosed {
			if werr := s.platform.Write(restoreSeq); werr != nil {
				s.log.Warn("terminal restore write failed", "err", werr)
			}
		}
		s.writeMu.Unlock()

		if rerr := s.platform.ExitRawMode(); rerr != nil {
			s.log.Warn("terminal exit raw mode failed", "err", rerr)
			err = rerr
		}
		current.CompareAndSwap(s, nil)
		s.log.Debug("terminal session closed")
	})
	return err
}
