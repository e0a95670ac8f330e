package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/starfield/pkg/starfield"
)

// glowRings 光晕由若干同心半透明圆叠加模拟
const (
	glowRings     = 3
	glowRingAlpha = 0.12
)

// ImageCanvas is a starfield.Canvas backed by an offscreen ebiten image.
// The image is never cleared by ebiten, which is what produces the trails.
type ImageCanvas struct {
	img           *ebiten.Image
	width, height int
}

var _ starfield.Canvas = (*ImageCanvas)(nil)

// NewImageCanvas creates an empty canvas; Resize allocates the image.
func NewImageCanvas() *ImageCanvas {
	return &ImageCanvas{}
}

// Resize reallocates the offscreen image, dropping its contents.
func (c *ImageCanvas) Resize(w, h int) {
	if c.img != nil {
		c.img.Deallocate()
		c.img = nil
	}
	c.width, c.height = max(w, 0), max(h, 0)
	if c.width == 0 || c.height == 0 {
		return
	}
	c.img = ebiten.NewImage(c.width, c.height)
}

// Size returns the image size.
func (c *ImageCanvas) Size() (int, int) {
	return c.width, c.height
}

// Image returns the offscreen image, nil while the canvas has no area.
func (c *ImageCanvas) Image() *ebiten.Image {
	return c.img
}

// FillRect blends a translucent rectangle over the image.
func (c *ImageCanvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	if c.img == nil {
		return
	}
	vector.FillRect(c.img, float32(x), float32(y), float32(w), float32(h), col, false)
}

// FillCircle draws the disc, with concentric translucent rings for the glow.
func (c *ImageCanvas) FillCircle(cx, cy, r float64, col color.NRGBA, glow float64) {
	if c.img == nil || r <= 0 {
		return
	}
	if glow > 0 {
		halo := col
		halo.A = uint8(float64(col.A) * glowRingAlpha)
		for i := glowRings; i >= 1; i-- {
			rr := r + glow*float64(i)/glowRings
			vector.FillCircle(c.img, float32(cx), float32(cy), float32(rr), halo, true)
		}
	}
	vector.FillCircle(c.img, float32(cx), float32(cy), float32(r), col, true)
}
