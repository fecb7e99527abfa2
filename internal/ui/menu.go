package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/planetview/internal/catalog"
)

// menu is one dropdown: a button in the menu bar and the planets it lists.
type menu struct {
	label string
	group string
	items []catalog.PlanetSpec
	x     int // Column of the button's left edge
}

func (m menu) button() string {
	return " " + m.label + " ▾ "
}

func (m menu) width() int {
	w := lipgloss.Width(m.button())
	for _, it := range m.items {
		if iw := lipgloss.Width(it.Name) + 4; iw > w {
			w = iw
		}
	}
	return w
}

// menuBar holds the dropdowns. At most one is open at a time.
type menuBar struct {
	menus  []menu
	open   int // Index of the open menu, -1 when all are closed
	cursor int // Highlighted item of the open menu
}

// menuStart is the column of the first button; menuGap separates buttons.
const (
	menuStart = 1
	menuGap   = 1
)

var menuGroups = []struct {
	group string
	label string
}{
	{catalog.GroupTerrestrial, "Terrestrial Planets"},
	{catalog.GroupJovian, "Jovian Planets"},
}

// newMenuBar builds one dropdown per catalog group. Planets outside the
// known groups are collected in a trailing "Other" menu.
func newMenuBar(c *catalog.Catalog) menuBar {
	bar := menuBar{open: -1}

	known := make(map[string]bool)
	for _, g := range menuGroups {
		known[g.group] = true
		if items := c.Group(g.group); len(items) > 0 {
			bar.menus = append(bar.menus, menu{label: g.label, group: g.group, items: items})
		}
	}

	var other []catalog.PlanetSpec
	for _, p := range c.All() {
		if !known[p.Group] {
			other = append(other, p)
		}
	}
	if len(other) > 0 {
		bar.menus = append(bar.menus, menu{label: "Other", items: other})
	}

	x := menuStart
	for i := range bar.menus {
		bar.menus[i].x = x
		x += lipgloss.Width(bar.menus[i].button()) + menuGap
	}
	return bar
}

func (b menuBar) isOpen() bool {
	return b.open >= 0 && b.open < len(b.menus)
}

// toggle opens menu i, closing any other, or closes it if already open.
// The cursor starts on the active planet when the menu lists it.
func (b *menuBar) toggle(i int, active string) {
	if i < 0 || i >= len(b.menus) {
		return
	}
	if b.open == i {
		b.close()
		return
	}
	b.open = i
	b.cursor = 0
	for j, it := range b.menus[i].items {
		if it.Key == active {
			b.cursor = j
		}
	}
}

// toggleGroup toggles the menu listing group.
func (b *menuBar) toggleGroup(group, active string) {
	for i, m := range b.menus {
		if m.group == group {
			b.toggle(i, active)
			return
		}
	}
}

func (b *menuBar) close() {
	b.open = -1
	b.cursor = 0
}

// move shifts the cursor within the open menu, wrapping at the ends.
func (b *menuBar) move(delta int) {
	if !b.isOpen() {
		return
	}
	n := len(b.menus[b.open].items)
	if n == 0 {
		return
	}
	b.cursor = ((b.cursor+delta)%n + n) % n
}

// shift opens the neighbouring menu.
func (b *menuBar) shift(delta int, active string) {
	if !b.isOpen() || len(b.menus) < 2 {
		return
	}
	n := len(b.menus)
	b.toggle(((b.open+delta)%n+n)%n, active)
}

// current returns the highlighted item of the open menu.
func (b menuBar) current() (catalog.PlanetSpec, bool) {
	if !b.isOpen() {
		return catalog.PlanetSpec{}, false
	}
	items := b.menus[b.open].items
	if b.cursor < 0 || b.cursor >= len(items) {
		return catalog.PlanetSpec{}, false
	}
	return items[b.cursor], true
}

// buttonAt returns the menu whose button covers column x, or -1.
func (b menuBar) buttonAt(x int) int {
	for i, m := range b.menus {
		if x >= m.x && x < m.x+lipgloss.Width(m.button()) {
			return i
		}
	}
	return -1
}

// itemAt returns the item of the open menu at column x and dropdown row y
// (0 is the first row below the bar), or -1.
func (b menuBar) itemAt(x, y int) int {
	if !b.isOpen() {
		return -1
	}
	m := b.menus[b.open]
	if y < 0 || y >= len(m.items) || x < m.x || x >= m.x+m.width() {
		return -1
	}
	return y
}

var (
	buttonStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	buttonOpenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("#7B2CBF")).Bold(true)
	itemStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("235"))
	itemCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("#9D4EDD")).Bold(true)
	itemActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EC4899")).Background(lipgloss.Color("235")).Bold(true)
)

// view renders the menu bar line.
func (b menuBar) view() string {
	var sb strings.Builder
	col := 0
	for i, m := range b.menus {
		if pad := m.x - col; pad > 0 {
			sb.WriteString(strings.Repeat(" ", pad))
			col += pad
		}
		style := buttonStyle
		if i == b.open {
			style = buttonOpenStyle
		}
		sb.WriteString(style.Render(m.button()))
		col += lipgloss.Width(m.button())
	}
	return sb.String()
}

// items renders the open dropdown as lines indented under its button.
func (b menuBar) items(active string) []string {
	if !b.isOpen() {
		return nil
	}
	m := b.menus[b.open]
	w := m.width()
	indent := strings.Repeat(" ", m.x)

	lines := make([]string, len(m.items))
	for i, it := range m.items {
		marker := "  "
		style := itemStyle
		if it.Key == active {
			marker = "● "
			style = itemActiveStyle
		}
		if i == b.cursor {
			style = itemCursorStyle
		}
		lines[i] = indent + style.Width(w).Render(marker+it.Name)
	}
	return lines
}
