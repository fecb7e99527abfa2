// Package texture loads surface images and samples them by UV coordinate.
package texture

import (
	"image"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
)

// Image is a decoded texture in sRGB with straight (non-premultiplied) alpha.
type Image struct {
	width  int
	height int
	color  []colorful.Color
	alpha  []float64
}

// FromImage converts src, scaling it down so neither side exceeds maxSize.
// A maxSize of zero or less keeps the original size.
func FromImage(src image.Image, maxSize int) *Image {
	b := src.Bounds()
	w, h := fit(b.Dx(), b.Dy(), maxSize)

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	}

	img := &Image{
		width:  w,
		height: h,
		color:  make([]colorful.Color, w*h),
		alpha:  make([]float64, w*h),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := dst.NRGBAAt(x, y)
			i := y*w + x
			img.color[i] = colorful.Color{
				R: float64(c.R) / 255,
				G: float64(c.G) / 255,
				B: float64(c.B) / 255,
			}
			img.alpha[i] = float64(c.A) / 255
		}
	}
	return img
}

// fit returns w×h scaled to fit within max on its longer side.
func fit(w, h, max int) (int, int) {
	if max <= 0 || (w <= max && h <= max) {
		return w, h
	}
	if w >= h {
		return max, maxInt(1, h*max/w)
	}
	return maxInt(1, w*max/h), max
}

// Size returns the texture dimensions in texels.
func (im *Image) Size() (int, int) {
	return im.width, im.height
}

// Sample returns the bilinearly filtered color and alpha at (u, v).
// U wraps horizontally; V is clamped, with v=1 at the top row.
func (im *Image) Sample(u, v float64) (colorful.Color, float64) {
	if im.width == 0 || im.height == 0 {
		return colorful.Color{}, 0
	}

	fx := u*float64(im.width) - 0.5
	fy := (1-v)*float64(im.height) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	c00, a00 := im.at(x0, y0)
	c10, a10 := im.at(x0+1, y0)
	c01, a01 := im.at(x0, y0+1)
	c11, a11 := im.at(x0+1, y0+1)

	top := c00.BlendRgb(c10, tx)
	bottom := c01.BlendRgb(c11, tx)
	a := lerp(lerp(a00, a10, tx), lerp(a01, a11, tx), ty)

	return top.BlendRgb(bottom, ty).Clamped(), a
}

func (im *Image) at(x, y int) (colorful.Color, float64) {
	x %= im.width
	if x < 0 {
		x += im.width
	}
	if y < 0 {
		y = 0
	} else if y >= im.height {
		y = im.height - 1
	}
	i := y*im.width + x
	return im.color[i], im.alpha[i]
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
