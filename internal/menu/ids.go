package menu

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// Action tags encoded in menu identifiers.
const (
	TagSwitch     = "switch"
	TagRevert     = "revert"
	TagQuit       = "quit"
	TagHeader     = "header"
	TagNoSessions = "no_sessions"
	TagSession    = "session"
)

// IDAllocator issues identifiers that are unique for the lifetime of the
// process. The native menu backend keys entities by identifier globally, so
// a value is never handed out twice, across any number of rebuilds.
type IDAllocator struct {
	next atomic.Uint64
}

// Next returns base with a fresh "_<n>" suffix.
func (a *IDAllocator) Next(base string) string {
	n := a.next.Add(1) - 1
	return base + "_" + strconv.FormatUint(n, 10)
}

// Issued returns how many identifiers have been allocated.
func (a *IDAllocator) Issued() uint64 {
	return a.next.Load()
}

// StripSuffix removes a trailing "_<digits>" uniqueness suffix. Identifiers
// without one are returned unchanged.
func StripSuffix(id string) string {
	i := strings.LastIndexByte(id, '_')
	if i < 0 || i == len(id)-1 {
		return id
	}
	for _, c := range id[i+1:] {
		if c < '0' || c > '9' {
			return id
		}
	}
	return id[:i]
}

// SwitchAction returns the canonical identifier for a switch entry.
func SwitchAction(controlPort int, sessionID, provider, model string) string {
	return strings.Join([]string{TagSwitch, strconv.Itoa(controlPort), sessionID, provider, model}, ":")
}

// RevertAction returns the canonical identifier for a revert entry.
func RevertAction(controlPort int, sessionID string) string {
	return strings.Join([]string{TagRevert, strconv.Itoa(controlPort), sessionID}, ":")
}
