//go:build windows

package terminal

import "os"

// Console resizes arrive as input records.
func notifyResize(chan<- os.Signal) {}
