package starfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStartMountsOnce(t *testing.T) {
	host := newFakeHost(800, 600)
	s := NewSession(host, DefaultParams(), WithRand(seeded()))

	require.True(t, s.Start())
	assert.True(t, s.Running())
	assert.Equal(t, 1, host.canvas.resizes, "surface sized once on mount")
	assert.Equal(t, 800, host.canvas.w)
	assert.Equal(t, 600, host.canvas.h)
	assert.Equal(t, 800, s.Field().Len())
	assert.Equal(t, uint64(1), s.Frames(), "first frame is drawn synchronously")
	assert.Equal(t, 1, host.Pending(), "exactly one frame outstanding")
	assert.Equal(t, 1, host.ResizeNotifier.Len())

	assert.False(t, s.Start(), "second Start is rejected")
	assert.Equal(t, 1, host.Pending())
	assert.Equal(t, 1, host.ResizeNotifier.Len())
}

func TestSessionFrameChain(t *testing.T) {
	host := newFakeHost(800, 600)
	s := NewSession(host, DefaultParams(), WithRand(seeded()))
	require.True(t, s.Start())

	for i := 0; i < 100; i++ {
		require.Equal(t, 1, host.Tick())
		require.Equal(t, 1, host.Pending(), "each frame schedules exactly one successor")
	}
	assert.Equal(t, uint64(101), s.Frames())
	assert.Equal(t, 101, host.canvas.rects)
}

func TestSessionResizeRegenerates(t *testing.T) {
	host := newFakeHost(800, 600)
	s := NewSession(host, DefaultParams(), WithRand(seeded()))
	require.True(t, s.Start())
	host.Tick()

	before := s.Particles()
	host.resizeTo(1024, 300)

	assert.Equal(t, 2, host.canvas.resizes)
	assert.Equal(t, 1024, host.canvas.w)
	assert.Equal(t, 300, host.canvas.h)

	after := s.Particles()
	require.Len(t, after, 800)
	assert.NotEqual(t, before, after)
	for _, p := range after {
		require.True(t, p.X >= 0 && p.X < 1024, "x %v", p.X)
		require.True(t, p.Y >= 0 && p.Y < 300, "y %v", p.Y)
		require.True(t, p.Z > 0 && p.Z <= 1024, "z %v", p.Z)
	}

	// rapid resizes are each handled in full
	for i := 1; i <= 5; i++ {
		host.resizeTo(100*i, 50*i)
		w, h := s.Field().Size()
		assert.Equal(t, float64(100*i), w)
		assert.Equal(t, float64(50*i), h)
		assert.Equal(t, 800, s.Field().Len())
	}
	assert.Equal(t, 1, host.Pending(), "resize does not schedule frames")
}

func TestSessionStopCancelsEverything(t *testing.T) {
	host := newFakeHost(800, 600)
	s := NewSession(host, DefaultParams(), WithRand(seeded()))
	require.True(t, s.Start())
	host.Tick()
	host.Tick()

	require.Equal(t, 800, s.Field().Len())
	s.Stop()
	assert.False(t, s.Running())
	assert.Equal(t, 0, host.Pending())
	assert.Equal(t, 0, host.ResizeNotifier.Len())
	assert.Zero(t, s.Field().Len(), "particle set is discarded on stop")
	assert.Empty(t, s.Particles())

	frames := s.Frames()
	resizes := host.canvas.resizes
	rects := host.canvas.rects
	for i := 0; i < 10; i++ {
		assert.Equal(t, 0, host.Tick())
		host.resizeTo(640+i, 480)
	}
	assert.Equal(t, frames, s.Frames())
	assert.Equal(t, resizes, host.canvas.resizes)
	assert.Equal(t, rects, host.canvas.rects)

	// idempotent
	s.Stop()
	s.Stop()
	assert.Equal(t, 0, host.Pending())
	assert.False(t, s.Start(), "a stopped session cannot be restarted")
}

func TestSessionStaleCallbackAfterStop(t *testing.T) {
	host := newFakeHost(800, 600)
	host.ignoreStop = true
	s := NewSession(host, DefaultParams(), WithRand(seeded()))
	require.True(t, s.Start())

	s.Stop()
	require.Equal(t, 1, host.Pending(), "host kept the cancelled callback")

	assert.Empty(t, s.Particles(), "particle set is discarded on stop")
	rects := host.canvas.rects
	assert.Equal(t, 1, host.Tick(), "host fires the stale callback")
	assert.Equal(t, 0, host.Pending(), "stale callback does not reschedule")
	assert.Equal(t, uint64(1), s.Frames())
	assert.Equal(t, rects, host.canvas.rects)
	assert.Empty(t, s.Particles(), "stale callback does not repopulate the field")
}

func TestSessionWithoutCanvas(t *testing.T) {
	host := newFakeHost(800, 600)
	host.noCanvas = true
	s := NewSession(host, DefaultParams(), WithRand(seeded()))

	assert.False(t, s.Start())
	assert.False(t, s.Running())
	assert.Equal(t, 0, host.Pending())
	assert.Equal(t, 0, host.ResizeNotifier.Len())
	assert.Equal(t, 0, s.Field().Len())

	s.Stop()
	assert.False(t, s.Start(), "mount cycle is over")
}

func TestSessionStopBeforeStart(t *testing.T) {
	host := newFakeHost(800, 600)
	s := NewSession(host, DefaultParams())
	s.Stop()

	assert.False(t, s.Start())
	assert.Equal(t, 0, host.Pending())
}

func TestSessionSeedIsReproducible(t *testing.T) {
	a := NewSession(newFakeHost(800, 600), DefaultParams(), WithSeed(42))
	b := NewSession(newFakeHost(800, 600), DefaultParams(), WithSeed(42))
	require.True(t, a.Start())
	require.True(t, b.Start())

	assert.Equal(t, a.Particles(), b.Particles())
}

func TestSessionReconfigure(t *testing.T) {
	host := newFakeHost(800, 600)
	s := NewSession(host, DefaultParams(), WithRand(seeded()))

	bad := DefaultParams()
	bad.Count = 0
	assert.Error(t, s.Reconfigure(bad))

	p := DefaultParams()
	p.Count = 50
	require.NoError(t, s.Reconfigure(p))
	assert.Equal(t, 0, s.Field().Len(), "idle session is not populated")

	require.True(t, s.Start())
	assert.Equal(t, 50, s.Field().Len())

	p.Count = 120
	require.NoError(t, s.Reconfigure(p))
	assert.Equal(t, 120, s.Field().Len())
	assert.Equal(t, 1, host.Pending())
	assert.Equal(t, 1, host.ResizeNotifier.Len())
}

func TestFrameLoopCancelInsideBatch(t *testing.T) {
	var l FrameLoop
	var ran []string

	var second FrameID
	l.RequestFrame(func() {
		ran = append(ran, "first")
		l.CancelFrame(second)
		l.RequestFrame(func() { ran = append(ran, "next") })
	})
	second = l.RequestFrame(func() { ran = append(ran, "second") })

	assert.Equal(t, 1, l.Tick())
	assert.Equal(t, []string{"first"}, ran)
	assert.Equal(t, 1, l.Pending())

	assert.Equal(t, 1, l.Tick())
	assert.Equal(t, []string{"first", "next"}, ran)
	assert.Equal(t, 0, l.Pending())

	l.CancelFrame(999)
	assert.Equal(t, 0, l.Tick())
}

func TestResizeNotifier(t *testing.T) {
	var n ResizeNotifier
	var calls []int

	a := n.Add(func() { calls = append(calls, 1) })
	n.Add(func() { calls = append(calls, 2) })
	n.Notify()
	assert.Equal(t, []int{1, 2}, calls)

	n.Remove(a)
	n.Remove(a)
	n.Notify()
	assert.Equal(t, []int{1, 2, 2}, calls)
	assert.Equal(t, 1, n.Len())
}
