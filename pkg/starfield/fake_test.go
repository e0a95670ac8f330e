package starfield

import (
	"image/color"
	"math/rand/v2"
)

// circleCall records one FillCircle.
type circleCall struct {
	X, Y, R, Glow float64
	Color         color.NRGBA
}

// recordingCanvas is a Canvas that records every call.
type recordingCanvas struct {
	w, h      int
	resizes   int
	rects     int
	circles   []circleCall
	lastRect  [4]float64
	lastTrail color.NRGBA
}

func (c *recordingCanvas) Resize(w, h int) {
	c.w, c.h = w, h
	c.resizes++
}

func (c *recordingCanvas) Size() (int, int) { return c.w, c.h }

func (c *recordingCanvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	c.rects++
	c.lastRect = [4]float64{x, y, w, h}
	c.lastTrail = col
}

func (c *recordingCanvas) FillCircle(cx, cy, r float64, col color.NRGBA, glow float64) {
	c.circles = append(c.circles, circleCall{X: cx, Y: cy, R: r, Glow: glow, Color: col})
}

// fakeHost drives a session by hand and counts every callback that fires.
type fakeHost struct {
	FrameLoop
	ResizeNotifier

	canvas     *recordingCanvas
	noCanvas   bool
	ignoreStop bool // keeps cancelled frames queued, like a host that races teardown
	w, h       int
}

func newFakeHost(w, h int) *fakeHost {
	return &fakeHost{canvas: &recordingCanvas{}, w: w, h: h}
}

func (h *fakeHost) AcquireCanvas() (Canvas, bool) {
	if h.noCanvas {
		return nil, false
	}
	return h.canvas, true
}

func (h *fakeHost) Viewport() (int, int) { return h.w, h.h }

func (h *fakeHost) CancelFrame(id FrameID) {
	if h.ignoreStop {
		return
	}
	h.FrameLoop.CancelFrame(id)
}

func (h *fakeHost) AddResizeListener(fn func()) ListenerID { return h.ResizeNotifier.Add(fn) }

func (h *fakeHost) RemoveResizeListener(id ListenerID) { h.ResizeNotifier.Remove(id) }

func (h *fakeHost) resizeTo(w, ht int) {
	h.w, h.h = w, ht
	h.ResizeNotifier.Notify()
}

// seqRand replays a fixed sequence of floats.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

func (r *seqRand) IntN(n int) int {
	return int(r.Float64() * float64(n))
}

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}
