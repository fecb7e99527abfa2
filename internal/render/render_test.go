package render

import (
	"strings"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/planetview/internal/body"
	"github.com/litescript/planetview/internal/catalog"
	"github.com/litescript/planetview/internal/scene"
)

type flat struct {
	c colorful.Color
	a float64
}

func (f flat) Sample(u, v float64) (colorful.Color, float64) {
	return f.c, f.a
}

func setup(t *testing.T, key string, cols, rows int) (*scene.Graph, *scene.Camera, *scene.Mesh) {
	t.Helper()
	spec, ok := catalog.Default().Lookup(key)
	require.True(t, ok)

	g := scene.NewGraph()
	m := body.Build(spec)
	g.Attach(m)

	cam := scene.NewCamera()
	cam.Aspect = PixelAspect(cols, rows)
	return g, cam, m
}

func TestDrawEmptyGraph(t *testing.T) {
	f := Draw(scene.NewGraph(), scene.NewCamera(), 10, 5)

	assert.Equal(t, 10, f.Width)
	assert.Equal(t, 10, f.Height)
	assert.Zero(t, f.Coverage())
}

func TestDrawZeroSize(t *testing.T) {
	g, cam, _ := setup(t, "earth", 0, 0)
	f := Draw(g, cam, 0, 0)
	assert.Zero(t, f.Coverage())
	assert.Equal(t, "", f.Encode())
}

func TestDrawSphereCentered(t *testing.T) {
	g, cam, _ := setup(t, "earth", 40, 20)
	f := Draw(g, cam, 40, 20)

	assert.False(t, f.At(20, 20).Empty(), "center is covered")
	assert.True(t, f.At(0, 0).Empty(), "corner is empty")
	assert.True(t, f.At(39, 39).Empty(), "corner is empty")
}

func TestDrawLighting(t *testing.T) {
	g, cam, _ := setup(t, "earth", 40, 20)
	f := Draw(g, cam, 40, 20)

	// The directional light sits at +X, so the right limb is brighter.
	left := f.At(13, 20).Color
	right := f.At(26, 20).Color
	assert.Greater(t, right.R, left.R)

	// Ambient light keeps the unlit side from going black.
	assert.Greater(t, left.R, 0.0)
}

func TestDrawUsesTexture(t *testing.T) {
	g, cam, m := setup(t, "mars", 20, 10)
	m.Material.Map.Image = flat{c: colorful.Color{R: 1}, a: 1}

	f := Draw(g, cam, 20, 10)
	center := f.At(10, 10).Color
	assert.Greater(t, center.R, 0.0)
	assert.Zero(t, center.G)
	assert.Zero(t, center.B)
}

func TestDrawNearestSurfaceWins(t *testing.T) {
	solid := func(name string, c colorful.Color, z float64) *scene.Mesh {
		tex := scene.NewTexture(name + ".png")
		tex.Image = flat{c: c, a: 1}
		m := scene.NewMesh(name, scene.SphereGeometry{Radius: 1}, scene.Material{Shading: scene.ShadingBasic, Map: tex})
		m.Position = scene.V(0, 0, z)
		return m
	}

	// The far sphere is attached first; draw order must follow depth.
	g := scene.NewGraph()
	g.Attach(solid("far", colorful.Color{R: 1}, -3))
	g.Attach(solid("near", colorful.Color{B: 1}, 0))

	cam := scene.NewCamera()
	cam.Aspect = PixelAspect(20, 10)
	center := Draw(g, cam, 20, 10).At(10, 10)

	require.False(t, center.Empty())
	assert.InDelta(t, 1.0, center.Color.B, 1e-9)
	assert.Zero(t, center.Color.R)
}

func TestDrawRingsBesideSphere(t *testing.T) {
	g, cam, m := setup(t, "saturn", 60, 20)
	ring := m.Children()[0]
	ring.Material.Map.Image = flat{c: colorful.Color{G: 1}, a: 1}
	m.Material.Map.Image = flat{c: colorful.Color{B: 1}, a: 1}

	// Look from slightly above the equator so the ring plane is visible.
	ctl := scene.NewOrbitControls(cam)
	ctl.EnableDamping = false
	ctl.RotateUp(0.3)
	ctl.Update(cam)

	f := Draw(g, cam, 60, 20)

	green := 0
	for _, p := range f.Pix {
		if !p.Empty() && p.Color.G > 0.9 && p.Color.B < 0.1 {
			green++
		}
	}
	assert.Greater(t, green, 0, "unlit ring pixels keep the texel color")
}

func TestDrawTransparentRingShowsSphere(t *testing.T) {
	g, cam, m := setup(t, "saturn", 40, 20)
	m.Children()[0].Material.Map.Image = flat{c: colorful.Color{G: 1}, a: 0}

	withClearRing := Draw(g, cam, 40, 20)

	g.Detach(m)
	plain := body.BuildPlain(catalog.PlanetSpec{Key: "saturn", Name: "Saturn", Texture: "t.jpg"})
	g.Attach(plain)
	without := Draw(g, cam, 40, 20)

	assert.Equal(t, without.Coverage(), withClearRing.Coverage())
}

func TestRingBacksideVisible(t *testing.T) {
	g, cam, m := setup(t, "saturn", 60, 20)
	m.Children()[0].Material.Map.Image = flat{c: colorful.Color{G: 1}, a: 1}

	ctl := scene.NewOrbitControls(cam)
	ctl.EnableDamping = false
	ctl.RotateUp(-0.3) // below the ring plane
	ctl.Update(cam)

	f := Draw(g, cam, 60, 20)
	green := 0
	for _, p := range f.Pix {
		if !p.Empty() && p.Color.G > 0.9 {
			green++
		}
	}
	assert.Greater(t, green, 0)
}

func TestEncode(t *testing.T) {
	f := NewFrame(3, 2)
	red := Pixel{Color: colorful.Color{R: 1}, Alpha: 1}
	f.Pix[0] = red   // row 0 top, col 0
	f.Pix[3+1] = red // row 0 bottom, col 1
	f.Pix[2] = red   // col 2 top
	f.Pix[3+2] = red // col 2 bottom

	lines := strings.Split(f.Encode(), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "▀")
	assert.Contains(t, lines[0], "▄")
	assert.Equal(t, "   ", stripANSI(lines[1]))
}

func TestCellGlyphs(t *testing.T) {
	f := NewFrame(1, 1)
	assert.Equal(t, ' ', f.cell(0, 0).glyph)

	f.Pix[0] = Pixel{Color: colorful.Color{R: 1}, Alpha: 1}
	c := f.cell(0, 0)
	assert.Equal(t, upperHalf, c.glyph)
	assert.Equal(t, "#ff0000", c.fg)
	assert.Empty(t, c.bg)

	f.Pix[1] = Pixel{Color: colorful.Color{B: 1}, Alpha: 1}
	c = f.cell(0, 0)
	assert.Equal(t, upperHalf, c.glyph)
	assert.Equal(t, "#0000ff", c.bg)

	f.Pix[0] = Pixel{}
	c = f.cell(0, 0)
	assert.Equal(t, lowerHalf, c.glyph)
	assert.Equal(t, "#0000ff", c.fg)
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
