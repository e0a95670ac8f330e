// Package terminal renders the star field in a terminal with tcell.
//
// Each character cell shows two vertically stacked pixels using the upper
// half block: the foreground color is the top pixel, the background color the
// bottom one. The logical surface is therefore cols x rows*2.
package terminal

import (
	"context"
	"image"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/gonewx/starfield/pkg/raster"
	"github.com/gonewx/starfield/pkg/starfield"
)

const (
	halfBlock       = '▀'
	defaultInterval = 16 * time.Millisecond // ~60 FPS
	minColors       = 8
)

// Host implements starfield.Host on a tcell screen. Everything except event
// polling runs on the goroutine that calls Run (or Step/HandleEvent).
type Host struct {
	screen   tcell.Screen
	logger   *zap.Logger
	interval time.Duration

	frames    starfield.FrameLoop
	listeners starfield.ResizeNotifier
	canvas    *raster.Canvas

	background *image.RGBA
}

var _ starfield.Host = (*Host)(nil)

// New creates a host for an initialized screen.
func New(screen tcell.Screen, logger *zap.Logger) *Host {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Host{
		screen:   screen,
		logger:   logger,
		interval: defaultInterval,
	}
}

// SetInterval changes the frame period. Non-positive values are ignored.
func (h *Host) SetInterval(d time.Duration) {
	if d > 0 {
		h.interval = d
	}
}

// AcquireCanvas returns the raster surface. Monochrome terminals have none.
func (h *Host) AcquireCanvas() (starfield.Canvas, bool) {
	if h.screen.Colors() < minColors {
		h.logger.Debug("terminal has too few colors", zap.Int("colors", h.screen.Colors()))
		return nil, false
	}
	if h.canvas == nil {
		h.canvas = raster.New(0, 0)
	}
	return h.canvas, true
}

// Viewport returns the surface size in half-block pixels.
func (h *Host) Viewport() (int, int) {
	cols, rows := h.screen.Size()
	return cols, rows * 2
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

// PendingFrames returns the number of scheduled frame callbacks.
func (h *Host) PendingFrames() int {
	return h.frames.Pending()
}

// Listeners returns the number of registered resize listeners.
func (h *Host) Listeners() int {
	return h.listeners.Len()
}

// Step runs the queued frame callbacks and presents the canvas.
func (h *Host) Step() int {
	n := h.frames.Tick()
	h.present()
	return n
}

// HandleEvent processes one tcell event and reports whether the user asked
// to quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
		cols, rows := ev.Size()
		h.logger.Debug("terminal resized", zap.Int("cols", cols), zap.Int("rows", rows))
		h.listeners.Notify()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return true
			}
		}
	}
	return false
}

// Run drives frames until ctx is done or the user quits. before, if set, is
// called on the loop goroutine ahead of every frame. The caller owns the
// screen and must Fini it after Run returns, which also ends the polling
// goroutine.
func (h *Host) Run(ctx context.Context, before func()) error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if h.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if before != nil {
				before()
			}
			h.Step()
		}
	}
}

// present copies the canvas to the screen, composited over the page
// background.
func (h *Host) present() {
	if h.canvas == nil {
		return
	}
	cols, rows := h.screen.Size()
	w, ht := h.canvas.Size()
	if w == 0 || ht == 0 {
		return
	}

	if h.background == nil || h.background.Bounds().Dx() != w || h.background.Bounds().Dy() != ht {
		h.background = raster.VerticalGradient(w, ht, raster.BackgroundStops...)
	}

	for y := 0; y < rows && 2*y < ht; y++ {
		for x := 0; x < cols && x < w; x++ {
			top := h.pixel(x, 2*y)
			bottom := top
			if 2*y+1 < ht {
				bottom = h.pixel(x, 2*y+1)
			}
			style := tcell.StyleDefault.Foreground(toColor(top)).Background(toColor(bottom))
			h.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	h.screen.Show()
}

// pixel composites the premultiplied canvas pixel over the background.
func (h *Host) pixel(x, y int) color.RGBA {
	src := h.canvas.At(x, y)
	bg := h.background.RGBAAt(x, y)
	inv := 255 - uint32(src.A)
	return color.RGBA{
		R: uint8(uint32(src.R) + uint32(bg.R)*inv/255),
		G: uint8(uint32(src.G) + uint32(bg.G)*inv/255),
		B: uint8(uint32(src.B) + uint32(bg.B)*inv/255),
		A: 255,
	}
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
