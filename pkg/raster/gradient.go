package raster

import (
	"image"
	"image/color"
)

// BackgroundStops is the page background behind the star field:
// black, via #0a0a1a, to #1a1033.
var BackgroundStops = []color.RGBA{
	{R: 0, G: 0, B: 0, A: 255},
	{R: 10, G: 10, B: 26, A: 255},
	{R: 26, G: 16, B: 51, A: 255},
}

// VerticalGradient renders evenly spaced color stops from top to bottom.
func VerticalGradient(w, h int, stops ...color.RGBA) *image.RGBA {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if len(stops) == 0 || w == 0 || h == 0 {
		return img
	}

	for y := 0; y < h; y++ {
		c := gradientAt(stops, float64(y)/float64(max(h-1, 1)))
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// gradientAt interpolates stops at t in [0,1].
func gradientAt(stops []color.RGBA, t float64) color.RGBA {
	if len(stops) == 1 || t <= 0 {
		return stops[0]
	}
	if t >= 1 {
		return stops[len(stops)-1]
	}
	pos := t * float64(len(stops)-1)
	i := int(pos)
	f := pos - float64(i)
	a, b := stops[i], stops[i+1]
	lerp := func(x, y uint8) uint8 {
		return channel(float64(x) + (float64(y)-float64(x))*f)
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}
