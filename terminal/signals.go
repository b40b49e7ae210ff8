package terminal

import "os/signal"

// Indirection for tests that must not install process signal handlers.
var (
	signalNotify = signal.Notify
	signalStop   = signal.Stop
)
