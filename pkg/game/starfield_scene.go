package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/gonewx/starfield/pkg/raster"
	"github.com/gonewx/starfield/pkg/starfield"
)

// StarfieldScene is the background layer: the page gradient with the star
// field composited on top. It mounts its session once the window has a size
// and stops it on Unmount.
type StarfieldScene struct {
	host    *Host
	session *starfield.Session
	logger  *zap.Logger

	mounted    bool
	background *ebiten.Image
	bgW, bgH   int
}

// NewStarfieldScene 创建星空背景图层
func NewStarfieldScene(host *Host, session *starfield.Session, logger *zap.Logger) *StarfieldScene {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StarfieldScene{
		host:    host,
		session: session,
		logger:  logger,
	}
}

// Update mounts the session on the first tick with a known viewport.
func (s *StarfieldScene) Update(deltaTime float64) {
	if s.mounted {
		return
	}
	w, h := s.host.Viewport()
	if w <= 0 || h <= 0 {
		return
	}
	s.mounted = true
	if !s.session.Start() {
		s.logger.Warn("starfield disabled: no drawing surface")
	}
}

// Mounted reports whether the scene has tried to start its session.
func (s *StarfieldScene) Mounted() bool {
	return s.mounted
}

// Draw paints the gradient and the star field image.
func (s *StarfieldScene) Draw(screen *ebiten.Image) {
	w, h := s.host.Viewport()
	if w <= 0 || h <= 0 {
		return
	}
	if s.background == nil || s.bgW != w || s.bgH != h {
		if s.background != nil {
			s.background.Deallocate()
		}
		s.background = ebiten.NewImageFromImage(raster.VerticalGradient(w, h, raster.BackgroundStops...))
		s.bgW, s.bgH = w, h
	}
	screen.DrawImage(s.background, nil)

	if c, ok := s.host.Canvas().(*ImageCanvas); ok && c.Image() != nil {
		screen.DrawImage(c.Image(), nil)
	}
}

// Unmount stops the session. Safe to call more than once.
func (s *StarfieldScene) Unmount() {
	s.session.Stop()
	if s.background != nil {
		s.background.Deallocate()
		s.background = nil
	}
}
