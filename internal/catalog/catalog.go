// Package catalog holds the static table of planets the viewer can display.
package catalog

import (
	"github.com/cockroachdb/errors"
)

// Menu groups. The UI builds one dropdown per group.
const (
	GroupTerrestrial = "terrestrial"
	GroupJovian      = "jovian"
)

// PlanetSpec describes one displayable planet.
type PlanetSpec struct {
	Key         string `toml:"key"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Texture     string `toml:"texture"`
	RingTexture string `toml:"ring_texture,omitempty"`
	Group       string `toml:"group"`
}

// HasRings reports whether the planet is drawn with a ring mesh.
func (p PlanetSpec) HasRings() bool {
	return p.RingTexture != ""
}

// Catalog is an ordered, immutable set of planets indexed by key.
type Catalog struct {
	specs []PlanetSpec
	index map[string]int
}

// New validates specs and builds a catalog preserving their order.
func New(specs []PlanetSpec) (*Catalog, error) {
	c := &Catalog{
		specs: make([]PlanetSpec, len(specs)),
		index: make(map[string]int, len(specs)),
	}
	copy(c.specs, specs)

	ringed := ""
	for i, s := range c.specs {
		switch {
		case s.Key == "":
			return nil, errors.Newf("planet %d: empty key", i)
		case s.Name == "":
			return nil, errors.Newf("planet %q: empty name", s.Key)
		case s.Texture == "":
			return nil, errors.Newf("planet %q: empty texture", s.Key)
		}
		if _, dup := c.index[s.Key]; dup {
			return nil, errors.Newf("planet %q: duplicate key", s.Key)
		}
		if s.HasRings() {
			if ringed != "" {
				return nil, errors.WithHint(
					errors.Newf("planet %q: ring texture already used by %q", s.Key, ringed),
					"only one planet may carry a ring texture")
			}
			ringed = s.Key
		}
		c.index[s.Key] = i
	}

	return c, nil
}

// MustNew is like New but panics on invalid input.
func MustNew(specs []PlanetSpec) *Catalog {
	c, err := New(specs)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the planet for key. Unknown keys report false.
func (c *Catalog) Lookup(key string) (PlanetSpec, bool) {
	i, ok := c.index[key]
	if !ok {
		return PlanetSpec{}, false
	}
	return c.specs[i], true
}

// All returns the planets in catalog order.
func (c *Catalog) All() []PlanetSpec {
	out := make([]PlanetSpec, len(c.specs))
	copy(out, c.specs)
	return out
}

// Keys returns the planet keys in catalog order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.specs))
	for i, s := range c.specs {
		keys[i] = s.Key
	}
	return keys
}

// Group returns the planets belonging to one menu group, in catalog order.
func (c *Catalog) Group(name string) []PlanetSpec {
	var out []PlanetSpec
	for _, s := range c.specs {
		if s.Group == name {
			out = append(out, s)
		}
	}
	return out
}

// Len returns the number of planets.
func (c *Catalog) Len() int {
	return len(c.specs)
}
