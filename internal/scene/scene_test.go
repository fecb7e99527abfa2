package scene

import (
	"math"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func assertVec(t *testing.T, want, got Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "X")
	assert.InDelta(t, want.Y, got.Y, tol, "Y")
	assert.InDelta(t, want.Z, got.Z, tol, "Z")
}

func TestEulerQuarterTurnAboutX(t *testing.T) {
	tr := Transform{R: Euler{X: -math.Pi / 2}.Matrix()}

	// The +Z normal of a flat ring ends up on the +Y polar axis.
	assertVec(t, V(0, 1, 0), tr.Direction(V(0, 0, 1)))
	assertVec(t, V(1, 0, 0), tr.Direction(V(1, 0, 0)))
	assertVec(t, V(0, 0, -1), tr.Direction(V(0, 1, 0)))
}

func TestEulerOrderXYZ(t *testing.T) {
	e := Euler{X: 0.3, Y: -1.1, Z: 2.0}
	want := Euler{X: e.X}.Matrix().
		Mul3(Euler{Y: e.Y}.Matrix()).
		Mul3(Euler{Z: e.Z}.Matrix())

	got := e.Matrix()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, want.At(i, j), got.At(i, j), tol)
		}
	}

	// Row 0 of Rx·Ry·Rz is (cos y·cos z, -cos y·sin z, sin y).
	assert.InDelta(t, math.Cos(e.Y)*math.Cos(e.Z), got.At(0, 0), tol)
	assert.InDelta(t, -math.Cos(e.Y)*math.Sin(e.Z), got.At(0, 1), tol)
	assert.InDelta(t, math.Sin(e.Y), got.At(0, 2), tol)
}

func TestTransformRoundTrip(t *testing.T) {
	tr := Transform{R: Euler{X: 0.5, Y: 0.2}.Matrix(), T: V(1, 2, 3)}
	p := V(-4, 0.5, 7)

	assertVec(t, p, tr.InversePoint(tr.Point(p)))
	assertVec(t, p, tr.InverseDirection(tr.Direction(p)))
}

func TestTransformCompose(t *testing.T) {
	parent := Transform{R: Euler{Z: math.Pi / 2}.Matrix(), T: V(1, 0, 0)}
	child := Transform{R: Euler{X: -math.Pi / 2}.Matrix(), T: V(1, 0, 0)}
	world := parent.Compose(child)
	p := V(0.3, -2, 1.5)

	// Composition equals applying the child, then the parent.
	assertVec(t, parent.Point(child.Point(p)), world.Point(p))
	// The child origin sits one unit along the parent's rotated X axis.
	assertVec(t, V(1, 1, 0), world.Point(Vec3{}))
	assertVec(t, p, world.InversePoint(world.Point(p)))
}

func TestSphereIntersect(t *testing.T) {
	s := SphereGeometry{Radius: 2, WidthSegments: 64, HeightSegments: 64}

	hit, ok := s.Intersect(V(0, 0, 5), V(0, 0, -1))
	require.True(t, ok)
	assert.InDelta(t, 3.0, hit.T, tol)
	assertVec(t, V(0, 0, 2), hit.Point)
	assertVec(t, V(0, 0, 1), hit.Normal)
	assert.True(t, hit.Front)

	// +Z is a quarter of the way around from -X.
	assert.InDelta(t, 0.75, hit.U, tol)
	assert.InDelta(t, 0.5, hit.V, tol)

	_, ok = s.Intersect(V(0, 3, 5), V(0, 0, -1))
	assert.False(t, ok)

	_, ok = s.Intersect(V(0, 0, 5), V(0, 0, 1))
	assert.False(t, ok, "sphere behind the ray origin")
}

func TestSphereIntersectPoles(t *testing.T) {
	s := SphereGeometry{Radius: 2}

	hit, ok := s.Intersect(V(0, 5, 0), V(0, -1, 0))
	require.True(t, ok)
	assert.InDelta(t, 1.0, hit.V, tol)

	hit, ok = s.Intersect(V(0, -5, 0), V(0, 1, 0))
	require.True(t, ok)
	assert.InDelta(t, 0.0, hit.V, tol)
}

func TestRingIntersect(t *testing.T) {
	r := RingGeometry{InnerRadius: 2.5, OuterRadius: 4.5, ThetaSegments: 64}

	hit, ok := r.Intersect(V(3, 0, 5), V(0, 0, -1))
	require.True(t, ok)
	assert.True(t, hit.Front)
	assert.InDelta(t, 5.0, hit.T, tol)
	assert.InDelta(t, (3.0/4.5+1)/2, hit.U, tol)
	assert.InDelta(t, 0.5, hit.V, tol)

	hit, ok = r.Intersect(V(3, 0, -5), V(0, 0, 1))
	require.True(t, ok)
	assert.False(t, hit.Front)

	_, ok = r.Intersect(V(1, 0, 5), V(0, 0, -1))
	assert.False(t, ok, "inside the inner radius")

	_, ok = r.Intersect(V(5, 0, 5), V(0, 0, -1))
	assert.False(t, ok, "outside the outer radius")

	_, ok = r.Intersect(V(3, 0, 5), V(1, 0, 0))
	assert.False(t, ok, "parallel to the plane")
}

func TestGraphAttachDetach(t *testing.T) {
	g := NewGraph()
	a := NewMesh("a", SphereGeometry{Radius: 1}, Material{})
	b := NewMesh("b", SphereGeometry{Radius: 1}, Material{})

	g.Attach(a)
	g.Attach(a)
	g.Attach(b)
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []*Mesh{a, b}, g.Meshes())

	assert.True(t, g.Detach(a))
	assert.False(t, g.Detach(a))
	assert.False(t, g.Contains(a))
	assert.Equal(t, []*Mesh{b}, g.Meshes())
}

func TestGraphDefaultLights(t *testing.T) {
	g := NewGraph()
	assert.Equal(t, 0.5, g.Ambient.Intensity)
	assert.Equal(t, 0.8, g.Directional.Intensity)
	assertVec(t, V(5, 3, 5).Normalized(), g.Directional.Direction())
}

func TestMeshChildren(t *testing.T) {
	parent := NewMesh("p", SphereGeometry{Radius: 2}, Material{Map: NewTexture("p.jpg")})
	child := NewMesh("c", RingGeometry{InnerRadius: 1, OuterRadius: 2}, Material{Map: NewTexture("c.png")})
	parent.Position = V(1, 0, 0)
	child.Position = V(0, 1, 0)
	child.Rotation = Euler{X: -math.Pi / 2}

	parent.Add(child)
	require.Len(t, parent.Children(), 1)
	assert.Same(t, parent, child.Parent())

	var names []string
	var childWorld Transform
	parent.Walk(IdentityTransform(), func(m *Mesh, w Transform) {
		names = append(names, m.Name)
		if m == child {
			childWorld = w
		}
	})
	assert.Equal(t, []string{"p", "c"}, names)
	assertVec(t, V(1, 1, 0), childWorld.Point(Vec3{}))

	var refs []string
	for _, tex := range parent.Textures() {
		refs = append(refs, tex.Ref)
	}
	assert.Equal(t, []string{"p.jpg", "c.png"}, refs)

	assert.True(t, parent.Remove(child))
	assert.Nil(t, child.Parent())
	assert.Empty(t, parent.Children())
}

func TestSameStructure(t *testing.T) {
	build := func(ref string) *Mesh {
		m := NewMesh("m", SphereGeometry{Radius: 2, WidthSegments: 8, HeightSegments: 8},
			Material{Map: NewTexture(ref), Color: DefaultColor})
		return m
	}

	a, b := build("x.jpg"), build("x.jpg")
	assert.NotSame(t, a, b)
	assert.True(t, a.SameStructure(b))

	b.Material.Map.Image = solid{}
	assert.True(t, a.SameStructure(b), "loaded images are ignored")

	assert.False(t, a.SameStructure(build("y.jpg")))

	c := build("x.jpg")
	c.Add(NewMesh("ring", RingGeometry{InnerRadius: 1, OuterRadius: 2}, Material{}))
	assert.False(t, a.SameStructure(c))
}

func TestCameraRay(t *testing.T) {
	cam := NewCamera()

	o, d := cam.Ray(0, 0)
	assertVec(t, V(0, 0, 5), o)
	assertVec(t, V(0, 0, -1), d)

	cam.SetAspect(200, 100)
	assert.Equal(t, 2.0, cam.Aspect)

	_, right := cam.Ray(1, 0)
	assert.Greater(t, right.X, 0.0)
	_, top := cam.Ray(0, 1)
	assert.Greater(t, top.Y, 0.0)

	cam.SetAspect(0, 10)
	assert.Equal(t, 1.0, cam.Aspect)
}

func TestSphericalRoundTrip(t *testing.T) {
	v := V(1, 2, 3)
	assertVec(t, v, SphericalFrom(v).Offset())

	s := SphericalFrom(V(0, 0, 5))
	assert.InDelta(t, 5.0, s.Radius, tol)
	assert.InDelta(t, 0.0, s.Theta, tol)
	assert.InDelta(t, math.Pi/2, s.Phi, tol)
}

func TestOrbitControlsDampedRotation(t *testing.T) {
	cam := NewCamera()
	c := NewOrbitControls(cam)

	c.RotateLeft(0.5)
	pending := c.Update(cam)
	assert.True(t, pending)
	assert.Less(t, c.State().Orbit.Theta, 0.0)
	assert.Less(t, cam.Position.X, 0.0)

	for i := 0; i < 500 && c.Update(cam); i++ {
	}
	assert.False(t, c.Update(cam))
	assert.InDelta(t, -0.5, c.State().Orbit.Theta, 1e-3)
}

func TestOrbitControlsUndamped(t *testing.T) {
	cam := NewCamera()
	c := NewOrbitControls(cam)
	c.EnableDamping = false

	c.RotateUp(0.25)
	assert.False(t, c.Update(cam))
	assert.InDelta(t, math.Pi/2-0.25, c.State().Orbit.Phi, tol)
}

func TestOrbitControlsPolarClamp(t *testing.T) {
	cam := NewCamera()
	c := NewOrbitControls(cam)
	c.EnableDamping = false

	c.RotateUp(-10)
	c.Update(cam)
	assert.Less(t, c.State().Orbit.Phi, math.Pi)
	assert.Greater(t, c.State().Orbit.Phi, math.Pi-1e-3)
}

func TestOrbitControlsDollyClamp(t *testing.T) {
	cam := NewCamera()
	c := NewOrbitControls(cam)

	c.Dolly(1.25)
	c.Update(cam)
	assert.InDelta(t, 4.0, c.State().Orbit.Radius, tol)

	c.Dolly(100)
	c.Update(cam)
	assert.Equal(t, c.MinDistance, c.State().Orbit.Radius)

	c.Dolly(0.0001)
	c.Update(cam)
	assert.Equal(t, c.MaxDistance, c.State().Orbit.Radius)
}

func TestOrbitControlsPanDisabledByDefault(t *testing.T) {
	cam := NewCamera()
	c := NewOrbitControls(cam)

	c.Pan(V(1, 0, 0))
	c.Update(cam)
	assert.Equal(t, Vec3{}, c.State().Target)

	c.EnablePan = true
	c.EnableDamping = false
	c.Pan(V(1, 0, 0))
	c.Update(cam)
	assertVec(t, V(1, 0, 0), c.State().Target)
	assertVec(t, V(1, 0, 0), cam.Target)
}

func TestOrbitControlsReset(t *testing.T) {
	cam := NewCamera()
	c := NewOrbitControls(cam)
	c.EnablePan = true

	c.RotateLeft(1)
	c.RotateUp(0.3)
	c.Dolly(2)
	c.Pan(V(0, 1, 0))
	c.Update(cam)
	c.RotateLeft(1)
	require.NotEqual(t, c.DefaultState(), c.State())

	c.Reset(cam)
	assert.Equal(t, c.DefaultState(), c.State())
	assertVec(t, V(0, 0, 5), cam.Position)
	assertVec(t, Vec3{}, cam.Target)
}

type solid struct{}

func (solid) Sample(u, v float64) (colorful.Color, float64) {
	return colorful.Color{R: 1}, 1
}
