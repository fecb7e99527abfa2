// Package body builds the meshes that represent a planet in the scene.
package body

import (
	"math"

	"github.com/litescript/planetview/internal/catalog"
	"github.com/litescript/planetview/internal/scene"
)

// Sphere and ring dimensions shared by every planet.
const (
	SphereRadius   = 2.0
	SphereSegments = 64

	RingInnerRadius = 2.5
	RingOuterRadius = 4.5
	RingSegments    = 64
)

// RingTilt turns the ring plane, which faces +Z, onto the sphere's
// equatorial plane so its normal lies along the +Y polar axis.
var RingTilt = scene.Euler{X: -0.5 * math.Pi}

// BuildPlain returns a lit, textured sphere for spec.
func BuildPlain(spec catalog.PlanetSpec) *scene.Mesh {
	return scene.NewMesh(spec.Key,
		scene.SphereGeometry{
			Radius:         SphereRadius,
			WidthSegments:  SphereSegments,
			HeightSegments: SphereSegments,
		},
		scene.Material{
			Shading: scene.ShadingStandard,
			Map:     scene.NewTexture(spec.Texture),
			Color:   scene.DefaultColor,
		})
}

// BuildRinged returns the sphere for spec with a ring child attached.
func BuildRinged(spec catalog.PlanetSpec) *scene.Mesh {
	planet := BuildPlain(spec)

	rings := scene.NewMesh(spec.Key+"-rings",
		scene.RingGeometry{
			InnerRadius:   RingInnerRadius,
			OuterRadius:   RingOuterRadius,
			ThetaSegments: RingSegments,
		},
		scene.Material{
			Shading:     scene.ShadingBasic,
			Map:         scene.NewTexture(spec.RingTexture),
			Color:       scene.DefaultColor,
			Side:        scene.DoubleSide,
			Transparent: true,
		})
	rings.Rotation = RingTilt
	planet.Add(rings)

	return planet
}

// Build picks the constructor by whether spec carries a ring texture.
func Build(spec catalog.PlanetSpec) *scene.Mesh {
	if spec.HasRings() {
		return BuildRinged(spec)
	}
	return BuildPlain(spec)
}
