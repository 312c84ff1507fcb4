package menu

import (
	"strings"
)

// Render draws the menu as an indented text tree. Disabled items are shown
// in brackets.
func Render(m *Menu) string {
	var b strings.Builder
	m.Walk(func(item *Item, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		if item.IsGroup() {
			b.WriteString("▸ ")
		} else {
			b.WriteString("- ")
		}
		if item.Enabled {
			b.WriteString(item.Title)
		} else {
			b.WriteString("[" + item.Title + "]")
		}
		b.WriteByte('\n')
	})
	return b.String()
}
