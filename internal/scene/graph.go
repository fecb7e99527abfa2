package scene

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Light is a uniform white or tinted light source.
type Light struct {
	Color     colorful.Color
	Intensity float64
}

// DirectionalLight shines from Position toward the origin.
type DirectionalLight struct {
	Light
	Position Vec3
}

// Direction returns the unit vector pointing from the surface to the light.
func (d DirectionalLight) Direction() Vec3 {
	return d.Position.Normalized()
}

// Graph is the set of meshes drawn every frame, plus the scene lights.
// It holds references only; meshes are owned by whoever attached them.
type Graph struct {
	Ambient     Light
	Directional DirectionalLight

	meshes []*Mesh
}

// NewGraph returns an empty graph with the default lighting rig.
func NewGraph() *Graph {
	white := colorful.Color{R: 1, G: 1, B: 1}
	return &Graph{
		Ambient: Light{Color: white, Intensity: 0.5},
		Directional: DirectionalLight{
			Light:    Light{Color: white, Intensity: 0.8},
			Position: Vec3{X: 5, Y: 3, Z: 5},
		},
	}
}

// Attach adds m to the drawn set. Attaching an attached mesh is a no-op.
func (g *Graph) Attach(m *Mesh) {
	if m == nil || g.Contains(m) {
		return
	}
	g.meshes = append(g.meshes, m)
}

// Detach removes m from the drawn set and reports whether it was present.
func (g *Graph) Detach(m *Mesh) bool {
	for i, n := range g.meshes {
		if n == m {
			g.meshes = append(g.meshes[:i], g.meshes[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether m is attached.
func (g *Graph) Contains(m *Mesh) bool {
	for _, n := range g.meshes {
		if n == m {
			return true
		}
	}
	return false
}

// Meshes returns the attached meshes in attach order.
func (g *Graph) Meshes() []*Mesh {
	out := make([]*Mesh, len(g.meshes))
	copy(out, g.meshes)
	return out
}

// Len returns the number of attached meshes.
func (g *Graph) Len() int {
	return len(g.meshes)
}
