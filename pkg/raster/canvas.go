// Package raster is a software implementation of starfield.Canvas on top of
// image.RGBA. It backs the terminal host and headless snapshots.
package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/gonewx/starfield/pkg/starfield"
)

var _ starfield.Canvas = (*Canvas)(nil)

// glowStrength scales the halo's peak opacity relative to the disc.
const glowStrength = 0.35

// Canvas keeps its pixels between frames; only Resize clears it.
type Canvas struct {
	img *image.RGBA
}

// New creates a cleared w x h canvas.
func New(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the pixel buffer. Contents are cleared to transparent,
// even when the size did not change.
func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

// Size returns the pixel dimensions.
func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the backing image. It is replaced on Resize.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// At returns the premultiplied pixel at (x, y).
func (c *Canvas) At(x, y int) color.RGBA {
	return c.img.RGBAAt(x, y)
}

// FillRect blends col over every pixel whose center lies inside the rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	x0, y0, x1, y1 := c.clip(x, y, x+w, y+h)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.blend(px, py, col, 1)
		}
	}
}

// FillCircle draws an anti-aliased disc of radius r. glow > 0 first lays a
// halo that fades out quadratically over glow pixels past the edge.
func (c *Canvas) FillCircle(cx, cy, r float64, col color.NRGBA, glow float64) {
	if r <= 0 {
		return
	}
	if glow < 0 {
		glow = 0
	}

	outer := r + glow + 1
	x0, y0, x1, y1 := c.clip(cx-outer, cy-outer, cx+outer, cy+outer)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			d := math.Hypot(float64(px)+0.5-cx, float64(py)+0.5-cy)

			if glow > 0 && d > r && d < r+glow {
				f := 1 - (d-r)/glow
				c.blend(px, py, col, f*f*glowStrength)
			}

			// one pixel ramp across the edge
			if cov := r + 0.5 - d; cov > 0 {
				c.blend(px, py, col, math.Min(cov, 1))
			}
		}
	}
}

// clip converts a float rectangle to the pixel range whose centers it covers.
func (c *Canvas) clip(x0, y0, x1, y1 float64) (int, int, int, int) {
	b := c.img.Bounds()
	ix0 := clampInt(int(math.Ceil(x0-0.5)), b.Min.X, b.Max.X)
	iy0 := clampInt(int(math.Ceil(y0-0.5)), b.Min.Y, b.Max.Y)
	ix1 := clampInt(int(math.Ceil(x1-0.5)), b.Min.X, b.Max.X)
	iy1 := clampInt(int(math.Ceil(y1-0.5)), b.Min.Y, b.Max.Y)
	return ix0, iy0, ix1, iy1
}

// blend composites a straight-alpha color with extra coverage over the
// premultiplied destination pixel (source-over).
func (c *Canvas) blend(x, y int, col color.NRGBA, coverage float64) {
	a := coverage * float64(col.A) / 255
	if a <= 0 {
		return
	}
	i := c.img.PixOffset(x, y)
	pix := c.img.Pix[i : i+4 : i+4]
	inv := 1 - a
	pix[0] = channel(float64(col.R)*a + float64(pix[0])*inv)
	pix[1] = channel(float64(col.G)*a + float64(pix[1])*inv)
	pix[2] = channel(float64(col.B)*a + float64(pix[2])*inv)
	pix[3] = channel(255*a + float64(pix[3])*inv)
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
