package ui

import (
	"context"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/litescript/planetview/internal/logging"
	"github.com/litescript/planetview/internal/presenter"
	"github.com/litescript/planetview/internal/render"
)

// WriteSnapshot selects key, loads its textures synchronously and writes
// one encoded cols×rows frame to w. Texture failures are logged and the
// frame is drawn with the untextured fallback colour.
func WriteSnapshot(ctx context.Context, w io.Writer, p *presenter.Presenter, loader TextureLoader, logger *logging.Logger, key string, cols, rows int) error {
	if logger == nil {
		logger = logging.Discard()
	}
	if cols <= 0 || rows <= 0 {
		return errors.Newf("invalid snapshot size %dx%d", cols, rows)
	}

	sel, err := p.SelectPlanet(key)
	if err != nil {
		return errors.WithHint(err, "run `planetview list` to see the available planets")
	}

	if loader != nil {
		for _, ref := range sel.Textures {
			img, err := loader.Load(ctx, ref)
			if err != nil {
				if ctx.Err() != nil {
					return errors.Wrap(err, "snapshot")
				}
				logger.Warn("Texture load failed: %v", err)
				continue
			}
			if img != nil {
				p.ApplyTexture(sel.Generation, ref, img)
			}
		}
	}

	p.Camera().Aspect = render.PixelAspect(cols, rows)
	f := render.Draw(p.Graph(), p.Camera(), cols, rows)
	if _, err := io.WriteString(w, f.Encode()+"\n"); err != nil {
		return errors.Wrap(err, "write snapshot")
	}
	logger.Debug("Rendered %s at %dx%d (%d pixels covered)", sel.Title, cols, rows, f.Coverage())
	return nil
}
