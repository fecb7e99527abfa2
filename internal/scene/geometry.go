package scene

import (
	"math"
)

const hitEpsilon = 1e-9

// Hit describes a ray/geometry intersection in the geometry's local space.
type Hit struct {
	T      float64 // Ray parameter; the hit point is origin + T*dir
	Point  Vec3
	Normal Vec3 // Unit normal of the front face
	U, V   float64
	Front  bool // True when the ray arrives from the front face side
}

// Geometry is a shape that can be intersected by rays in its local space.
type Geometry interface {
	Intersect(origin, dir Vec3) (Hit, bool)
}

// SphereGeometry is a UV sphere centered at the local origin.
// Width and height segments describe the tessellation density.
type SphereGeometry struct {
	Radius         float64
	WidthSegments  int
	HeightSegments int
}

// Intersect returns the nearest intersection in front of origin.
//
// Texture coordinates follow the usual equirectangular sphere mapping:
// U grows with longitude measured from -X toward +Z, V is 1 at the +Y pole.
func (s SphereGeometry) Intersect(origin, dir Vec3) (Hit, bool) {
	a := dir.Dot(dir)
	b := 2 * origin.Dot(dir)
	c := origin.Dot(origin) - s.Radius*s.Radius

	disc := b*b - 4*a*c
	if a == 0 || disc < 0 {
		return Hit{}, false
	}
	sq := math.Sqrt(disc)

	t := (-b - sq) / (2 * a)
	if t <= hitEpsilon {
		t = (-b + sq) / (2 * a)
		if t <= hitEpsilon {
			return Hit{}, false
		}
	}

	p := origin.Add(dir.Scale(t))
	n := p.Normalized()

	theta := math.Acos(clamp(n.Y, -1, 1))
	phi := math.Atan2(n.Z, -n.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}

	return Hit{
		T:      t,
		Point:  p,
		Normal: n,
		U:      phi / (2 * math.Pi),
		V:      1 - theta/math.Pi,
		Front:  dir.Dot(n) < 0,
	}, true
}

// RingGeometry is a flat annulus in the local XY plane facing +Z.
type RingGeometry struct {
	InnerRadius   float64
	OuterRadius   float64
	ThetaSegments int
}

// Intersect returns the intersection with the annulus plane, if the hit
// point falls between the inner and outer radius.
//
// Texture coordinates are planar: the outer radius maps to the [0,1] square.
func (r RingGeometry) Intersect(origin, dir Vec3) (Hit, bool) {
	if math.Abs(dir.Z) < hitEpsilon {
		return Hit{}, false
	}
	t := -origin.Z / dir.Z
	if t <= hitEpsilon {
		return Hit{}, false
	}

	p := origin.Add(dir.Scale(t))
	rad := math.Hypot(p.X, p.Y)
	if rad < r.InnerRadius || rad > r.OuterRadius {
		return Hit{}, false
	}

	return Hit{
		T:      t,
		Point:  p,
		Normal: Vec3{Z: 1},
		U:      (p.X/r.OuterRadius + 1) / 2,
		V:      (p.Y/r.OuterRadius + 1) / 2,
		Front:  dir.Z < 0,
	}, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
