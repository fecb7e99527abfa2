package texture

import (
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// DefaultMaxSize bounds the longer side of decoded textures. The terminal
// viewport is far smaller, so larger images only cost memory.
const DefaultMaxSize = 512

// Loader reads texture references relative to an asset root.
type Loader struct {
	Root    string
	MaxSize int
}

// NewLoader returns a loader for assets under root.
func NewLoader(root string, maxSize int) *Loader {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Loader{Root: root, MaxSize: maxSize}
}

// Path resolves ref to a file path. Absolute references are used as is.
func (l *Loader) Path(ref string) string {
	if filepath.IsAbs(ref) || l.Root == "" {
		return ref
	}
	return filepath.Join(l.Root, filepath.FromSlash(ref))
}

// Load reads and decodes the image for ref.
func (l *Loader) Load(ctx context.Context, ref string) (*Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrapf(err, "load texture %s", ref)
	}

	path := l.Path(ref)
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "open texture %s", ref),
			"check the --assets directory")
	}
	defer f.Close()

	img, err := Decode(f, l.MaxSize)
	if err != nil {
		return nil, errors.Wrapf(err, "texture %s", path)
	}
	return img, nil
}

// Decode reads a JPEG or PNG image from r.
func Decode(r io.Reader, maxSize int) (*Image, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}
	b := src.Bounds()
	if b.Empty() {
		return nil, errors.Newf("empty %s image", format)
	}
	return FromImage(src, maxSize), nil
}
