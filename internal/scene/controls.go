package scene

import (
	"math"
)

// Spherical is an orbit position around a target: distance, azimuth around
// +Y measured from +Z (Theta) and polar angle from +Y (Phi).
type Spherical struct {
	Radius float64
	Theta  float64
	Phi    float64
}

// SphericalFrom converts an offset vector to spherical coordinates.
func SphericalFrom(v Vec3) Spherical {
	r := v.Norm()
	if r == 0 {
		return Spherical{}
	}
	return Spherical{
		Radius: r,
		Theta:  math.Atan2(v.X, v.Z),
		Phi:    math.Acos(clamp(v.Y/r, -1, 1)),
	}
}

// Offset converts back to a vector relative to the target.
func (s Spherical) Offset() Vec3 {
	sinPhi := math.Sin(s.Phi)
	return Vec3{
		X: s.Radius * sinPhi * math.Sin(s.Theta),
		Y: s.Radius * math.Cos(s.Phi),
		Z: s.Radius * sinPhi * math.Cos(s.Theta),
	}
}

// InteractionState is the user-controlled camera state: where the camera
// orbits, plus rotation, dolly and pan input not yet applied.
type InteractionState struct {
	Target     Vec3
	Orbit      Spherical
	DeltaTheta float64
	DeltaPhi   float64
	Scale      float64
	Pan        Vec3
}

const (
	polarEpsilon = 1e-6
	settleBelow  = 1e-5
)

// OrbitControls moves a camera around a target in response to input.
// Input accumulates as pending deltas; Update applies them, easing them
// out over several frames when damping is enabled.
type OrbitControls struct {
	EnableDamping bool
	DampingFactor float64
	EnablePan     bool
	EnableZoom    bool
	MinDistance   float64
	MaxDistance   float64

	state   InteractionState
	initial InteractionState
}

// NewOrbitControls captures cam's current placement as the reset state.
func NewOrbitControls(cam *Camera) *OrbitControls {
	s := InteractionState{
		Target: cam.Target,
		Orbit:  SphericalFrom(cam.Position.Sub(cam.Target)),
		Scale:  1,
	}
	return &OrbitControls{
		EnableDamping: true,
		DampingFactor: 0.1,
		EnableZoom:    true,
		MinDistance:   2.5,
		MaxDistance:   50,
		state:         s,
		initial:       s,
	}
}

// RotateLeft queues an azimuth rotation in radians.
func (c *OrbitControls) RotateLeft(angle float64) {
	c.state.DeltaTheta -= angle
}

// RotateUp queues a polar rotation in radians.
func (c *OrbitControls) RotateUp(angle float64) {
	c.state.DeltaPhi -= angle
}

// Dolly queues a zoom. Factors above 1 move the camera closer.
func (c *OrbitControls) Dolly(factor float64) {
	if !c.EnableZoom || factor <= 0 {
		return
	}
	c.state.Scale /= factor
}

// Pan queues a target translation. Ignored unless EnablePan is set.
func (c *OrbitControls) Pan(offset Vec3) {
	if !c.EnablePan {
		return
	}
	c.state.Pan = c.state.Pan.Add(offset)
}

// Update applies pending input and positions cam. It reports whether
// input is still pending, meaning further frames will move the camera.
func (c *OrbitControls) Update(cam *Camera) bool {
	s := &c.state

	if c.EnableDamping {
		s.Orbit.Theta += s.DeltaTheta * c.DampingFactor
		s.Orbit.Phi += s.DeltaPhi * c.DampingFactor
		s.Target = s.Target.Add(s.Pan.Scale(c.DampingFactor))
	} else {
		s.Orbit.Theta += s.DeltaTheta
		s.Orbit.Phi += s.DeltaPhi
		s.Target = s.Target.Add(s.Pan)
	}

	s.Orbit.Phi = clamp(s.Orbit.Phi, polarEpsilon, math.Pi-polarEpsilon)
	s.Orbit.Radius = clamp(s.Orbit.Radius*s.Scale, c.MinDistance, c.MaxDistance)
	s.Scale = 1

	if c.EnableDamping {
		s.DeltaTheta = settle(s.DeltaTheta * (1 - c.DampingFactor))
		s.DeltaPhi = settle(s.DeltaPhi * (1 - c.DampingFactor))
		s.Pan = Vec3{
			X: settle(s.Pan.X * (1 - c.DampingFactor)),
			Y: settle(s.Pan.Y * (1 - c.DampingFactor)),
			Z: settle(s.Pan.Z * (1 - c.DampingFactor)),
		}
	} else {
		s.DeltaTheta, s.DeltaPhi, s.Pan = 0, 0, Vec3{}
	}

	c.place(cam)
	return s.DeltaTheta != 0 || s.DeltaPhi != 0 || s.Pan != (Vec3{})
}

// Reset restores the state captured at construction and positions cam.
func (c *OrbitControls) Reset(cam *Camera) {
	c.state = c.initial
	if cam != nil {
		c.place(cam)
	}
}

// State returns the current interaction state.
func (c *OrbitControls) State() InteractionState {
	return c.state
}

// DefaultState returns the state Reset restores.
func (c *OrbitControls) DefaultState() InteractionState {
	return c.initial
}

func (c *OrbitControls) place(cam *Camera) {
	cam.Target = c.state.Target
	cam.Position = c.state.Target.Add(c.state.Orbit.Offset())
}

func settle(v float64) float64 {
	if math.Abs(v) < settleBelow {
		return 0
	}
	return v
}
