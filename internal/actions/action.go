// Package actions decodes clicked menu identifiers and carries them out
// against the session control APIs.
package actions

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oh-my-claude/menubar/internal/menu"
)

// Kind is the type of a decoded menu action.
type Kind int

const (
	KindSwitch Kind = iota + 1
	KindRevert
	KindQuit
)

func (k Kind) String() string {
	switch k {
	case KindSwitch:
		return menu.TagSwitch
	case KindRevert:
		return menu.TagRevert
	case KindQuit:
		return menu.TagQuit
	default:
		return "unknown"
	}
}

// Action is a typed user request decoded from a menu identifier.
type Action struct {
	Kind        Kind
	ControlPort int
	SessionID   string
	Provider    string // switch only
	Model       string // switch only
}

func (a Action) String() string {
	switch a.Kind {
	case KindSwitch:
		return fmt.Sprintf("switch %s@%d to %s/%s", a.SessionID, a.ControlPort, a.Provider, a.Model)
	case KindRevert:
		return fmt.Sprintf("revert %s@%d", a.SessionID, a.ControlPort)
	default:
		return a.Kind.String()
	}
}

// Decode turns a menu identifier into an action. The second return value is
// false for non-actionable identifiers: labels, groups, unknown tags, a
// wrong field count or an invalid port.
func Decode(id string) (Action, bool) {
	parts := strings.Split(menu.StripSuffix(id), ":")

	switch parts[0] {
	case menu.TagQuit:
		return Action{Kind: KindQuit}, true

	case menu.TagSwitch:
		if len(parts) != 5 {
			return Action{}, false
		}
		port, ok := parsePort(parts[1])
		if !ok || parts[2] == "" || parts[3] == "" || parts[4] == "" {
			return Action{}, false
		}
		return Action{
			Kind:        KindSwitch,
			ControlPort: port,
			SessionID:   parts[2],
			Provider:    parts[3],
			Model:       parts[4],
		}, true

	case menu.TagRevert:
		if len(parts) != 3 {
			return Action{}, false
		}
		port, ok := parsePort(parts[1])
		if !ok || parts[2] == "" {
			return Action{}, false
		}
		return Action{Kind: KindRevert, ControlPort: port, SessionID: parts[2]}, true
	}

	return Action{}, false
}

func parsePort(s string) (int, bool) {
	port, err := strconv.Atoi(s)
	if err != nil || port <= 0 || port > 65535 {
		return 0, false
	}
	return port, true
}
