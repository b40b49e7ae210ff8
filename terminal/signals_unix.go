//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package terminal

import (
	"os"

	"golang.org/x/sys/unix"
)

func notifyResize(ch chan<- os.Signal) {
	signalNotify(ch, unix.SIGWINCH)
}
