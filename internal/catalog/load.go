package catalog

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
)

// file is the on-disk layout of a catalog:
//
//	[[planet]]
//	key = "earth"
//	name = "Earth"
//	texture = "textures/earth_texture.jpg"
//	group = "terrestrial"
type file struct {
	Planets []PlanetSpec `toml:"planet"`
}

// Parse decodes a TOML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}
	if len(f.Planets) == 0 {
		return nil, errors.WithHint(errors.New("catalog has no planets"),
			"declare entries as [[planet]] tables")
	}
	return New(f.Planets)
}

// LoadFile reads a TOML catalog from path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read catalog %s", path)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog %s", path)
	}
	return c, nil
}

// Marshal encodes the catalog in the format accepted by Parse.
func (c *Catalog) Marshal() ([]byte, error) {
	data, err := toml.Marshal(file{Planets: c.All()})
	if err != nil {
		return nil, errors.Wrap(err, "encode catalog")
	}
	return data, nil
}
