package schema

import "errors"

var (
	// ErrNotTerminal indicates stdin is not attached to a terminal.
	ErrNotTerminal = errors.New("not a terminal")
	// ErrRawMode indicates the terminal refused the raw-mode attributes.
	ErrRawMode = errors.New("raw mode unavailable")
	// ErrSessionActive indicates a terminal session is already open in this process.
	ErrSessionActive = errors.New("terminal session already active")
	// ErrWriteAborted indicates a frame write stopped on an unrecoverable error.
	ErrWriteAborted = errors.New("terminal write aborted")
	// ErrNoPages indicates the app was run without any pages.
	ErrNoPages = errors.New("no pages")
)
