package scene

import (
	"math"
)

// Default camera parameters.
const (
	DefaultFOV      = 75.0
	DefaultNear     = 0.1
	DefaultFar      = 1000.0
	DefaultDistance = 5.0
)

// Camera is a perspective camera looking from Position toward Target.
type Camera struct {
	FOV    float64 // Vertical field of view in degrees
	Aspect float64 // Width / height of the drawing surface
	Near   float64
	Far    float64

	Position Vec3
	Target   Vec3
	Up       Vec3
}

// NewCamera returns a camera on the +Z axis looking at the origin.
func NewCamera() *Camera {
	return &Camera{
		FOV:      DefaultFOV,
		Aspect:   1,
		Near:     DefaultNear,
		Far:      DefaultFar,
		Position: Vec3{Z: DefaultDistance},
		Up:       Vec3{Y: 1},
	}
}

// Aspect returns the width/height ratio, or 1 for degenerate sizes.
func Aspect(width, height int) float64 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float64(width) / float64(height)
}

// SetAspect updates the aspect ratio from drawing surface dimensions.
func (c *Camera) SetAspect(width, height int) {
	c.Aspect = Aspect(width, height)
}

// Ray returns the world-space ray through normalized device coordinates
// (x, y), each in [-1, 1] with +y up. The direction is unit length.
func (c *Camera) Ray(x, y float64) (origin, dir Vec3) {
	forward := c.Target.Sub(c.Position).Normalized()
	right := forward.Cross(c.Up).Normalized()
	up := right.Cross(forward)

	tanHalf := math.Tan(c.FOV * math.Pi / 360)
	dir = forward.
		Add(right.Scale(x * tanHalf * c.Aspect)).
		Add(up.Scale(y * tanHalf)).
		Normalized()
	return c.Position, dir
}
