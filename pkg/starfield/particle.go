package starfield

import "image/color"

// Particle is one star. X and Y live in surface coordinates, Z is the
// distance from the viewer and shrinks every frame.
type Particle struct {
	X, Y  float64
	Z     float64
	Size  float64
	Color color.NRGBA
}

// Rand is the randomness a Field needs. *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// spawn places p at a random planar position with the given depth.
func spawn(p *Particle, rng Rand, w, h, z float64) {
	p.X = rng.Float64() * w
	p.Y = rng.Float64() * h
	p.Z = z
}
