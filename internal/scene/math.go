// Package scene provides the render graph: meshes, lights, camera and
// orbit controls.
package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 represents a 3D vector in world or local space.
type Vec3 struct {
	X, Y, Z float64
}

// V is shorthand for constructing a Vec3.
func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalized returns a unit vector in the same direction.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return v.Scale(1 / n)
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(u Vec3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Cross returns the cross product v × u.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		X: v.Y*u.Z - v.Z*u.Y,
		Y: v.Z*u.X - v.X*u.Z,
		Z: v.X*u.Y - v.Y*u.X,
	}
}

// vec converts v for use with mgl64 matrices.
func (v Vec3) vec() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromVec(v mgl64.Vec3) Vec3 {
	return Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// Euler is a rotation in radians applied in X, then Y, then Z order of
// the intrinsic axes (matrix Rx·Ry·Rz).
type Euler struct {
	X, Y, Z float64
}

// Matrix returns the rotation matrix for e.
func (e Euler) Matrix() mgl64.Mat3 {
	return mgl64.Rotate3DX(e.X).Mul3(mgl64.Rotate3DY(e.Y)).Mul3(mgl64.Rotate3DZ(e.Z))
}

// Transform is a rigid placement: rotate, then translate.
type Transform struct {
	R mgl64.Mat3
	T Vec3
}

// IdentityTransform places an object at the origin without rotation.
func IdentityTransform() Transform {
	return Transform{R: mgl64.Ident3()}
}

// Compose returns the transform of a child placed by local inside t.
func (t Transform) Compose(local Transform) Transform {
	return Transform{
		R: t.R.Mul3(local.R),
		T: t.T.Add(t.Direction(local.T)),
	}
}

// Point maps a local point to the parent frame.
func (t Transform) Point(p Vec3) Vec3 {
	return t.Direction(p).Add(t.T)
}

// InversePoint maps a parent-frame point into local space.
func (t Transform) InversePoint(p Vec3) Vec3 {
	return t.InverseDirection(p.Sub(t.T))
}

// Direction maps a local direction to the parent frame.
func (t Transform) Direction(d Vec3) Vec3 {
	return fromVec(t.R.Mul3x1(d.vec()))
}

// InverseDirection maps a parent-frame direction into local space. R is
// orthonormal, so its transpose is its inverse.
func (t Transform) InverseDirection(d Vec3) Vec3 {
	return fromVec(t.R.Transpose().Mul3x1(d.vec()))
}
