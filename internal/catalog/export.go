package catalog

import (
	"fmt"
	"io"
	"strings"
)

// WriteTable prints the catalog as a plain text table.
func WriteTable(w io.Writer, c *Catalog) {
	fmt.Fprintf(w, "%-10s %-10s %-12s %-5s %s\n", "Key", "Name", "Group", "Rings", "Texture")
	fmt.Fprintln(w, strings.Repeat("─", 72))

	for _, p := range c.All() {
		rings := "no"
		if p.HasRings() {
			rings = "yes"
		}
		fmt.Fprintf(w, "%-10s %-10s %-12s %-5s %s\n",
			truncate(p.Key, 10),
			truncate(p.Name, 10),
			truncate(p.Group, 12),
			rings,
			p.Texture,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d planets\n", c.Len())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
