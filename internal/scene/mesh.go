package scene

// Mesh is a node of the render graph: a geometry drawn with a material,
// placed relative to its parent, with optional children.
type Mesh struct {
	Name     string
	Geometry Geometry
	Material Material
	Position Vec3
	Rotation Euler

	parent   *Mesh
	children []*Mesh
}

// NewMesh creates a mesh at the origin with no rotation.
func NewMesh(name string, g Geometry, mat Material) *Mesh {
	return &Mesh{Name: name, Geometry: g, Material: mat}
}

// Add attaches child to m. A child already attached elsewhere is moved.
func (m *Mesh) Add(child *Mesh) {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = m
	m.children = append(m.children, child)
}

// Remove detaches child from m.
func (m *Mesh) Remove(child *Mesh) bool {
	for i, c := range m.children {
		if c == child {
			m.children = append(m.children[:i], m.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Children returns the direct children of m.
func (m *Mesh) Children() []*Mesh {
	out := make([]*Mesh, len(m.children))
	copy(out, m.children)
	return out
}

// Parent returns the mesh m is attached to, or nil.
func (m *Mesh) Parent() *Mesh {
	return m.parent
}

// Local returns the transform of m relative to its parent.
func (m *Mesh) Local() Transform {
	return Transform{R: m.Rotation.Matrix(), T: m.Position}
}

// Walk visits m and its descendants depth-first with their world transforms.
func (m *Mesh) Walk(parent Transform, fn func(*Mesh, Transform)) {
	world := parent.Compose(m.Local())
	fn(m, world)
	for _, c := range m.children {
		c.Walk(world, fn)
	}
}

// Textures returns the texture slots used by m and its descendants.
func (m *Mesh) Textures() []*Texture {
	var out []*Texture
	m.Walk(IdentityTransform(), func(n *Mesh, _ Transform) {
		if n.Material.Map != nil {
			out = append(out, n.Material.Map)
		}
	})
	return out
}

// SameStructure reports whether m and o have equal geometry, material
// parameters, placement and children. Loaded texture images are ignored;
// only their references are compared.
func (m *Mesh) SameStructure(o *Mesh) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.Name != o.Name ||
		m.Geometry != o.Geometry ||
		m.Position != o.Position ||
		m.Rotation != o.Rotation ||
		!sameMaterial(m.Material, o.Material) ||
		len(m.children) != len(o.children) {
		return false
	}
	for i := range m.children {
		if !m.children[i].SameStructure(o.children[i]) {
			return false
		}
	}
	return true
}

func sameMaterial(a, b Material) bool {
	if a.Shading != b.Shading || a.Side != b.Side ||
		a.Transparent != b.Transparent || a.Color != b.Color {
		return false
	}
	if (a.Map == nil) != (b.Map == nil) {
		return false
	}
	return a.Map == nil || a.Map.Ref == b.Map.Ref
}
