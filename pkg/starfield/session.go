package starfield

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

type sessionState int

const (
	stateIdle sessionState = iota
	stateRunning
	stateStopped
)

// Session is one mount-to-teardown lifecycle of the renderer. All methods
// must be called from the host's render thread.
type Session struct {
	host   Host
	params Params
	rng    Rand
	logger *zap.Logger

	field  *Field
	canvas Canvas

	state    sessionState
	frameID  FrameID
	listener ListenerID
	frames   uint64
	drawn    int
}

// Option configures a Session.
type Option func(*Session)

// WithRand injects the random source. Sessions created without it use a
// time-seeded PCG.
func WithRand(rng Rand) Option {
	return func(s *Session) {
		s.rng = rng
	}
}

// WithSeed seeds a PCG random source, for reproducible fields.
func WithSeed(seed uint64) Option {
	return func(s *Session) {
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates an idle session. params are assumed valid; callers that
// take params from outside should Validate them first.
func NewSession(host Host, params Params, opts ...Option) *Session {
	s := &Session{
		host:   host,
		params: params.clone(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	s.field = NewField(s.params)
	return s
}

// Start mounts the renderer: it sizes the surface, generates the field, draws
// the first frame and listens for resizes. It returns false, without
// scheduling anything, when the session was already started or the host has
// no usable canvas.
func (s *Session) Start() bool {
	if s.state != stateIdle {
		return false
	}

	canvas, ok := s.host.AcquireCanvas()
	if !ok || canvas == nil {
		s.state = stateStopped
		s.logger.Debug("drawing surface unavailable, animation disabled")
		return false
	}
	s.canvas = canvas
	s.state = stateRunning

	s.resize()
	s.frame()
	s.listener = s.host.AddResizeListener(s.resize)

	w, h := s.canvas.Size()
	s.logger.Debug("session started",
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Int("particles", s.field.Len()))
	return true
}

// Stop tears the session down: the pending frame is cancelled, the resize
// listener removed and the particle set discarded. After Stop returns no frame or resize callback mutates or
// draws anything. Stop is idempotent.
func (s *Session) Stop() {
	if s.state != stateRunning {
		s.state = stateStopped
		return
	}
	s.state = stateStopped
	s.host.CancelFrame(s.frameID)
	s.host.RemoveResizeListener(s.listener)
	s.field = NewField(s.params)
	s.logger.Debug("session stopped", zap.Uint64("frames", s.frames))
}

// Reconfigure swaps the params and, on a running session, regenerates the
// field as a resize would.
func (s *Session) Reconfigure(params Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	s.params = params.clone()
	s.field = NewField(s.params)
	if s.state == stateRunning {
		s.resize()
	}
	s.logger.Info("params reloaded", zap.Int("count", params.Count), zap.Float64("speed", params.Speed))
	return nil
}

// Running reports whether the session is animating.
func (s *Session) Running() bool {
	return s.state == stateRunning
}

// Frames returns the number of frames rendered so far.
func (s *Session) Frames() uint64 {
	return s.frames
}

// Drawn returns the number of particles drawn in the last frame.
func (s *Session) Drawn() int {
	return s.drawn
}

// Particles returns a copy of the current particle set.
func (s *Session) Particles() []Particle {
	return s.field.Particles()
}

// Field exposes the field for inspection.
func (s *Session) Field() *Field {
	return s.field
}

func (s *Session) resize() {
	if s.state != stateRunning {
		return
	}
	w, h := s.host.Viewport()
	s.canvas.Resize(w, h)
	s.field.Reset(w, h, s.rng)
}

func (s *Session) frame() {
	if s.state != stateRunning {
		return
	}
	s.drawn = s.field.Frame(s.canvas, s.rng)
	s.frames++
	s.frameID = s.host.RequestFrame(s.frame)
}
