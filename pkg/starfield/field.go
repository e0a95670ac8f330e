package starfield

// Field is the particle set of one session together with the surface size it
// was generated for.
type Field struct {
	params    Params
	particles []Particle
	width     float64
	height    float64
}

// NewField creates an empty field. Call Reset to populate it.
func NewField(params Params) *Field {
	return &Field{params: params.clone()}
}

// Reset discards every particle and generates a fresh set for a w x h
// surface. A surface without area yields an empty field.
//
// 每个粒子：X ∈ [0,w)，Y ∈ [0,h)，Z ∈ (0,w]，颜色从调色板均匀抽取，
// 尺寸 ∈ [MinSize, MaxSize)。
func (f *Field) Reset(w, h int, rng Rand) {
	f.width, f.height = float64(w), float64(h)
	if w <= 0 || h <= 0 {
		f.particles = nil
		return
	}

	f.particles = make([]Particle, f.params.Count)
	sizeSpan := f.params.MaxSize - f.params.MinSize
	for i := range f.particles {
		p := &f.particles[i]
		// w - [0,w) keeps the depth strictly positive
		spawn(p, rng, f.width, f.height, f.width-rng.Float64()*f.width)
		p.Color = f.params.Palette[rng.IntN(len(f.params.Palette))]
		p.Size = f.params.MinSize + rng.Float64()*sizeSpan
	}
}

// Advance moves p one frame closer to the viewer. A particle that reaches the
// viewer is recycled to the far plane at a new planar position.
func (f *Field) Advance(p *Particle, rng Rand) {
	p.Z -= f.params.Speed
	if p.Z <= 0 {
		spawn(p, rng, f.width, f.height, f.width)
	}
}

// Project applies the perspective divide and returns screen coordinates.
func (f *Field) Project(p Particle) (sx, sy float64) {
	k := f.params.Focal / p.Z
	return p.X*k + f.width/2, p.Y*k + f.height/2
}

// Visible reports whether a projected point lies on the surface.
func (f *Field) Visible(sx, sy float64) bool {
	return sx >= 0 && sx < f.width && sy >= 0 && sy < f.height
}

// Radius maps depth to the rendered radius. Closer particles are larger;
// the result is never negative.
func (f *Field) Radius(p Particle) float64 {
	r := (1 - p.Z/f.width) * p.Size * 2
	if r < 0 {
		return 0
	}
	return r
}

// Glow returns the blur radius for a disc of radius r, zero for no glow.
func (f *Field) Glow(r float64) float64 {
	if r > f.params.GlowThreshold {
		return f.params.GlowBlur
	}
	return 0
}

// Frame paints the trail over c and then advances, projects and draws every
// particle. It returns the number of discs drawn.
func (f *Field) Frame(c Canvas, rng Rand) int {
	if len(f.particles) == 0 {
		return 0
	}

	c.FillRect(0, 0, f.width, f.height, f.params.Trail)

	drawn := 0
	for i := range f.particles {
		p := &f.particles[i]
		f.Advance(p, rng)

		sx, sy := f.Project(*p)
		if !f.Visible(sx, sy) {
			continue
		}
		r := f.Radius(*p)
		c.FillCircle(sx, sy, r, p.Color, f.Glow(r))
		drawn++
	}
	return drawn
}

// Len returns the number of particles.
func (f *Field) Len() int {
	return len(f.particles)
}

// Size returns the surface size the field was generated for.
func (f *Field) Size() (w, h float64) {
	return f.width, f.height
}

// Particles returns a copy of the particle set.
func (f *Field) Particles() []Particle {
	return append([]Particle(nil), f.particles...)
}
