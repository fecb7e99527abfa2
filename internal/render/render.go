// Package render ray-casts the scene graph into a pixel frame sized for
// half-block terminal cells.
package render

import (
	"cmp"
	"math"
	"slices"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/planetview/internal/scene"
)

// minCoverage is the accumulated alpha below which a pixel counts as empty.
const minCoverage = 0.05

// Pixel is one sample of the frame. Alpha 0 means nothing was hit.
type Pixel struct {
	Color colorful.Color
	Alpha float64
}

// Empty reports whether nothing visible covers the pixel.
func (p Pixel) Empty() bool {
	return p.Alpha < minCoverage
}

// Frame is a grid of pixels, two pixel rows per terminal cell row.
type Frame struct {
	Width  int
	Height int
	Pix    []Pixel
}

// NewFrame allocates an empty frame for cols×rows terminal cells.
func NewFrame(cols, rows int) *Frame {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return &Frame{
		Width:  cols,
		Height: rows * 2,
		Pix:    make([]Pixel, cols*rows*2),
	}
}

// At returns the pixel at (x, y).
func (f *Frame) At(x, y int) Pixel {
	return f.Pix[y*f.Width+x]
}

// Coverage returns the number of non-empty pixels.
func (f *Frame) Coverage() int {
	n := 0
	for _, p := range f.Pix {
		if !p.Empty() {
			n++
		}
	}
	return n
}

// PixelAspect returns the camera aspect ratio for a cols×rows viewport.
// Half-block cells are about twice as tall as wide, so each cell holds
// two square pixels stacked vertically.
func PixelAspect(cols, rows int) float64 {
	return scene.Aspect(cols, rows*2)
}

// Draw renders g as seen through cam into a frame of cols×rows cells.
func Draw(g *scene.Graph, cam *scene.Camera, cols, rows int) *Frame {
	f := NewFrame(cols, rows)
	if f.Width == 0 || f.Height == 0 {
		return f
	}

	meshes := g.Meshes()
	light := lighting{
		ambient: scaled(g.Ambient.Color, g.Ambient.Intensity),
		sun:     scaled(g.Directional.Color, g.Directional.Intensity),
		sunDir:  g.Directional.Direction(),
		near:    cam.Near,
		far:     cam.Far,
	}

	for y := 0; y < f.Height; y++ {
		ny := 1 - 2*(float64(y)+0.5)/float64(f.Height)
		for x := 0; x < f.Width; x++ {
			nx := 2*(float64(x)+0.5)/float64(f.Width) - 1
			origin, dir := cam.Ray(nx, ny)
			f.Pix[y*f.Width+x] = light.trace(meshes, origin, dir)
		}
	}
	return f
}

type lighting struct {
	ambient colorful.Color
	sun     colorful.Color
	sunDir  scene.Vec3
	near    float64
	far     float64
}

type surfaceHit struct {
	t      float64
	normal scene.Vec3
	mesh   *scene.Mesh
	u, v   float64
}

// trace composites every surface along the ray front to back.
func (l lighting) trace(meshes []*scene.Mesh, origin, dir scene.Vec3) Pixel {
	var hits []surfaceHit
	for _, root := range meshes {
		root.Walk(scene.IdentityTransform(), func(m *scene.Mesh, w scene.Transform) {
			if m.Geometry == nil {
				return
			}
			h, ok := m.Geometry.Intersect(w.InversePoint(origin), w.InverseDirection(dir))
			if !ok || h.T < l.near || h.T > l.far {
				return
			}
			n := h.Normal
			if !h.Front {
				if m.Material.Side != scene.DoubleSide {
					return
				}
				n = n.Scale(-1)
			}
			hits = append(hits, surfaceHit{
				t:      h.T,
				normal: w.Direction(n),
				mesh:   m,
				u:      h.U,
				v:      h.V,
			})
		})
	}
	if len(hits) == 0 {
		return Pixel{}
	}
	slices.SortFunc(hits, func(a, b surfaceHit) int { return cmp.Compare(a.t, b.t) })

	var acc colorful.Color
	coverage := 0.0
	for _, h := range hits {
		c, a := l.shade(h)
		w := a * (1 - coverage)
		acc = add(acc, scaled(c, w))
		coverage += w
		if coverage >= 0.999 {
			break
		}
	}
	if coverage < minCoverage {
		return Pixel{}
	}
	return Pixel{Color: acc.Clamped(), Alpha: coverage}
}

func (l lighting) shade(h surfaceHit) (colorful.Color, float64) {
	mat := h.mesh.Material
	c, a := mat.Sample(h.u, h.v)
	if mat.Shading == scene.ShadingBasic {
		return c, a
	}

	diffuse := math.Max(0, h.normal.Dot(l.sunDir))
	lit := add(l.ambient, scaled(l.sun, diffuse))
	return colorful.Color{R: c.R * lit.R, G: c.G * lit.G, B: c.B * lit.B}.Clamped(), a
}

func scaled(c colorful.Color, s float64) colorful.Color {
	return colorful.Color{R: c.R * s, G: c.G * s, B: c.B * s}
}

func add(a, b colorful.Color) colorful.Color {
	return colorful.Color{R: a.R + b.R, G: a.G + b.G, B: a.B + b.B}
}
