package menu

import (
	"strconv"
	"strings"

	"github.com/oh-my-claude/menubar/internal/models"
)

// Fingerprint summarizes the fields of views that affect the menu. It is
// order-sensitive; string fields are quoted so distinct inputs never
// collide.
func Fingerprint(views []models.SessionView) string {
	var b strings.Builder
	for _, v := range views {
		b.WriteString(strconv.Quote(v.SessionID))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(v.ControlPort))
		b.WriteByte(':')
		b.WriteString(strconv.FormatBool(v.Healthy))
		b.WriteByte(':')
		b.WriteString(strconv.FormatBool(v.Switched))
		b.WriteByte(':')
		b.WriteString(strconv.Quote(v.Provider))
		b.WriteByte(':')
		b.WriteString(strconv.Quote(v.Model))
		b.WriteByte('|')
	}
	return b.String()
}
