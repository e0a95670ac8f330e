package game

import (
	"github.com/gonewx/starfield/pkg/starfield"
)

// CanvasFactory creates the drawing surface the first time a session asks
// for one.
type CanvasFactory func() starfield.Canvas

// Host adapts the ebiten game loop to starfield.Host.
//
// ebiten 在 Layout 中报告窗口尺寸，在 Update 中驱动每一帧：
//   - SetViewport 由 Layout 调用，尺寸变化只做记录
//   - Tick 由 Update 调用，先派发挂起的 resize，再执行帧回调
//
// 这样 resize 总是在下一帧之前完成粒子重建。
type Host struct {
	frames    starfield.FrameLoop
	listeners starfield.ResizeNotifier

	newCanvas     CanvasFactory
	canvas        starfield.Canvas
	width, height int
	pendingResize bool
}

var _ starfield.Host = (*Host)(nil)

// NewHost creates a host. A nil factory uses an ebiten offscreen image.
func NewHost(factory CanvasFactory) *Host {
	if factory == nil {
		factory = func() starfield.Canvas { return NewImageCanvas() }
	}
	return &Host{newCanvas: factory}
}

// AcquireCanvas returns the surface. It is unavailable until the first
// Layout reported a non-empty window.
func (h *Host) AcquireCanvas() (starfield.Canvas, bool) {
	if h.width <= 0 || h.height <= 0 {
		return nil, false
	}
	if h.canvas == nil {
		h.canvas = h.newCanvas()
	}
	if h.canvas == nil {
		return nil, false
	}
	return h.canvas, true
}

// Canvas returns the surface handed out by AcquireCanvas, or nil.
func (h *Host) Canvas() starfield.Canvas {
	return h.canvas
}

// Viewport returns the last size reported by Layout.
func (h *Host) Viewport() (int, int) {
	return h.width, h.height
}

// SetViewport records the outside size. Listeners run on the next Tick.
func (h *Host) SetViewport(w, ht int) {
	if w == h.width && ht == h.height {
		return
	}
	h.width, h.height = w, ht
	h.pendingResize = true
}

// RequestFrame implements starfield.Host.
func (h *Host) RequestFrame(fn func()) starfield.FrameID {
	return h.frames.RequestFrame(fn)
}

// CancelFrame implements starfield.Host.
func (h *Host) CancelFrame(id starfield.FrameID) {
	h.frames.CancelFrame(id)
}

// AddResizeListener implements starfield.Host.
func (h *Host) AddResizeListener(fn func()) starfield.ListenerID {
	return h.listeners.Add(fn)
}

// RemoveResizeListener implements starfield.Host.
func (h *Host) RemoveResizeListener(id starfield.ListenerID) {
	h.listeners.Remove(id)
}

// Tick dispatches a pending resize and runs the queued frame callbacks.
// It returns the number of frame callbacks run.
func (h *Host) Tick() int {
	if h.pendingResize {
		h.pendingResize = false
		h.listeners.Notify()
	}
	return h.frames.Tick()
}

// PendingFrames returns the number of scheduled frame callbacks.
func (h *Host) PendingFrames() int {
	return h.frames.Pending()
}

// Listeners returns the number of registered resize listeners.
func (h *Host) Listeners() int {
	return h.listeners.Len()
}
