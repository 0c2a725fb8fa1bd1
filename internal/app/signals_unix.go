//go:build !windows

package app

import (
	"os"
	"syscall"
)

// contSignals are the signals that mean the shell brought us back to the
// foreground after a Ctrl-Z.
func contSignals() []os.Signal { return []os.Signal{syscall.SIGCONT} }
