//go:build !windows

package registry

import (
	"errors"

	"golang.org/x/sys/unix"
)

// ProcessAlive checks for a process without delivering a signal (kill -0).
// EPERM means the process exists but belongs to another user.
func ProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}
