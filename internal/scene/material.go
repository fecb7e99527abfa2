package scene

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Shading selects how a material reacts to lights.
type Shading int

const (
	// ShadingStandard is lit by the scene's ambient and directional lights.
	ShadingStandard Shading = iota
	// ShadingBasic ignores lights and shows the texel color as is.
	ShadingBasic
)

func (s Shading) String() string {
	switch s {
	case ShadingStandard:
		return "standard"
	case ShadingBasic:
		return "basic"
	default:
		return "unknown"
	}
}

// Side selects which faces of a surface are drawn.
type Side int

const (
	FrontSide Side = iota
	DoubleSide
)

// Sampler yields the color and alpha of a texture at UV coordinates.
type Sampler interface {
	Sample(u, v float64) (colorful.Color, float64)
}

// Texture is a slot for an image referenced by path. The image arrives
// asynchronously; until then the material draws its fallback color.
type Texture struct {
	Ref   string
	Image Sampler
}

// NewTexture returns an empty slot for ref.
func NewTexture(ref string) *Texture {
	return &Texture{Ref: ref}
}

// Ready reports whether the image has been delivered.
func (t *Texture) Ready() bool {
	return t != nil && t.Image != nil
}

// Material describes the surface appearance of a mesh.
type Material struct {
	Shading     Shading
	Map         *Texture
	Color       colorful.Color // Used where Map is missing or not yet loaded
	Side        Side
	Transparent bool
}

// DefaultColor is the untextured surface color.
var DefaultColor = colorful.Color{R: 1, G: 1, B: 1}

// Sample returns the surface color and alpha at uv.
func (m Material) Sample(u, v float64) (colorful.Color, float64) {
	if m.Map.Ready() {
		c, a := m.Map.Image.Sample(u, v)
		if !m.Transparent {
			a = 1
		}
		return c, a
	}
	return m.Color, 1
}
