//go:build windows

package registry

import (
	"golang.org/x/sys/windows"
)

// ProcessAlive checks whether a process handle can be opened for pid.
func ProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
	if err != nil {
		return false
	}
	_ = windows.CloseHandle(h)
	return true
}
