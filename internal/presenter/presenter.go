// Package presenter owns the displayed planet and swaps it on selection.
package presenter

import (
	"github.com/cockroachdb/errors"

	"github.com/litescript/planetview/internal/body"
	"github.com/litescript/planetview/internal/catalog"
	"github.com/litescript/planetview/internal/scene"
)

// ErrUnknownPlanet is returned when a selection key is not in the catalog.
// Callers treat it as a no-op.
var ErrUnknownPlanet = errors.New("unknown planet")

// Selection is what the UI needs after a successful swap.
type Selection struct {
	Key         string
	Title       string
	Description string

	// Generation identifies the body this selection built. Texture loads
	// must present it to ApplyTexture.
	Generation uint64
	// Textures lists the texture references the new body waits on.
	Textures []string
}

// Presenter holds the single displayed body and the camera controls that
// are reset with every swap. It is not safe for concurrent use; all calls
// come from the UI event loop.
type Presenter struct {
	catalog  *catalog.Catalog
	graph    *scene.Graph
	camera   *scene.Camera
	controls *scene.OrbitControls

	current    *scene.Mesh
	spec       catalog.PlanetSpec
	generation uint64
}

// New returns a presenter with nothing displayed.
func New(c *catalog.Catalog, g *scene.Graph, cam *scene.Camera, controls *scene.OrbitControls) *Presenter {
	return &Presenter{
		catalog:  c,
		graph:    g,
		camera:   cam,
		controls: controls,
	}
}

// SelectPlanet replaces the displayed body with a fresh one for key and
// resets the camera controls. Reselecting the displayed key rebuilds too,
// which gives the user a way to reset the camera.
//
// An unknown key returns ErrUnknownPlanet and changes nothing.
func (p *Presenter) SelectPlanet(key string) (Selection, error) {
	spec, ok := p.catalog.Lookup(key)
	if !ok {
		return Selection{}, errors.Wrapf(ErrUnknownPlanet, "select %q", key)
	}

	if p.current != nil {
		p.graph.Detach(p.current)
		p.current = nil
	}

	next := body.Build(spec)
	p.graph.Attach(next)
	p.controls.Reset(p.camera)

	p.current = next
	p.spec = spec
	p.generation++

	return Selection{
		Key:         spec.Key,
		Title:       spec.Name,
		Description: spec.Description,
		Generation:  p.generation,
		Textures:    textureRefs(next),
	}, nil
}

// Seed performs the startup selection. If key is unknown it falls back to
// the default planet, then to the first catalog entry.
func (p *Presenter) Seed(key string) (Selection, error) {
	candidates := []string{key, catalog.DefaultKey}
	if keys := p.catalog.Keys(); len(keys) > 0 {
		candidates = append(candidates, keys[0])
	}
	for _, k := range candidates {
		sel, err := p.SelectPlanet(k)
		if err == nil {
			return sel, nil
		}
	}
	return Selection{}, errors.WithHint(
		errors.Wrap(ErrUnknownPlanet, "seed"),
		"the catalog is empty")
}

// ApplyTexture delivers a loaded image to every texture slot of the
// displayed body referencing ref. Results for an earlier generation are
// dropped. It reports whether any slot was filled.
func (p *Presenter) ApplyTexture(generation uint64, ref string, img scene.Sampler) bool {
	if p.current == nil || generation != p.generation || img == nil {
		return false
	}
	applied := false
	for _, tex := range p.current.Textures() {
		if tex.Ref == ref {
			tex.Image = img
			applied = true
		}
	}
	return applied
}

// Current returns the displayed planet, or false before the first selection.
func (p *Presenter) Current() (catalog.PlanetSpec, bool) {
	return p.spec, p.current != nil
}

// Body returns the displayed body, or nil before the first selection.
func (p *Presenter) Body() *scene.Mesh {
	return p.current
}

// Generation returns the generation of the displayed body.
func (p *Presenter) Generation() uint64 {
	return p.generation
}

// Catalog returns the catalog selections resolve against.
func (p *Presenter) Catalog() *catalog.Catalog {
	return p.catalog
}

// Graph returns the render graph the body is attached to.
func (p *Presenter) Graph() *scene.Graph {
	return p.graph
}

// Camera returns the camera the controls drive.
func (p *Presenter) Camera() *scene.Camera {
	return p.camera
}

// Controls returns the orbit controls reset on every selection.
func (p *Presenter) Controls() *scene.OrbitControls {
	return p.controls
}

// NewScene wires a presenter to a fresh graph, camera and controls.
func NewScene(c *catalog.Catalog) *Presenter {
	cam := scene.NewCamera()
	return New(c, scene.NewGraph(), cam, scene.NewOrbitControls(cam))
}

func textureRefs(m *scene.Mesh) []string {
	var refs []string
	seen := make(map[string]bool)
	for _, tex := range m.Textures() {
		if tex.Ref == "" || seen[tex.Ref] {
			continue
		}
		seen[tex.Ref] = true
		refs = append(refs, tex.Ref)
	}
	return refs
}
