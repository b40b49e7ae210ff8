package schema

import "time"

// Size is a terminal size in display columns and rows.
type Size struct {
	Cols int
	Rows int
}

const (
	// MinFrameCols is the narrowest terminal a frame is composed for.
	MinFrameCols = 10
	// MinFrameRows is the shortest terminal a frame is composed for.
	MinFrameRows = 5

	// DefaultCols and DefaultRows are reported when the size query fails.
	DefaultCols = 80
	DefaultRows = 24

	// DefaultPollInterval bounds how long a single input read may block.
	DefaultPollInterval = 100 * time.Millisecond
	// DefaultDrainLimit caps the bytes consumed while draining one CSI sequence.
	DefaultDrainLimit = 32
)

// Fits reports whether the size is at or above the frame floor.
func (s Size) Fits() bool {
	return s.Cols >= MinFrameCols && s.Rows >= MinFrameRows
}
