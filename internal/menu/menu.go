// Package menu builds the tray menu from session views and decides when it
// must be replaced.
package menu

// Item is one entry in the menu tree. Items with children are groups
// (submenus); items without children are leaves.
type Item struct {
	ID       string
	Title    string
	Tooltip  string
	Enabled  bool
	Children []*Item
}

// IsGroup reports whether the item opens a submenu.
func (i *Item) IsGroup() bool {
	return len(i.Children) > 0
}

// Menu is a complete tree handed to a Host in one piece.
type Menu struct {
	Tooltip string
	Items   []*Item
}

// Walk visits every item depth-first in display order.
func (m *Menu) Walk(fn func(item *Item, depth int)) {
	var walk func(items []*Item, depth int)
	walk = func(items []*Item, depth int) {
		for _, it := range items {
			fn(it, depth)
			walk(it.Children, depth+1)
		}
	}
	walk(m.Items, 0)
}

// IDs returns every identifier in the tree in display order.
func (m *Menu) IDs() []string {
	var ids []string
	m.Walk(func(item *Item, _ int) {
		ids = append(ids, item.ID)
	})
	return ids
}

// Host installs a menu tree. Implementations replace whatever menu they
// currently show with m; the previous tree is discarded as a whole.
type Host interface {
	SetMenu(m *Menu) error
}

// HostFunc adapts a function to Host.
type HostFunc func(m *Menu) error

// SetMenu calls f(m).
func (f HostFunc) SetMenu(m *Menu) error {
	return f(m)
}
