package sim

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/san-kum/orbsim/internal/classifier"
	"github.com/san-kum/orbsim/internal/cloud"
)

// Session owns one point cloud and the mutable state that animates it.
// All methods are safe for concurrent use; frames are serialized.
type Session struct {
	mu         sync.Mutex
	samples    *cloud.Samples
	state      cloud.FrameState
	visual     *cloud.VisualState
	scratch    *cloud.VisualState
	params     cloud.Params
	classifier *classifier.Classifier
	observers  []Observer
	logger     *slog.Logger
	frames     int
	seeded     bool
}

type Option func(*Session)

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(s *Session) { s.observers = append(s.observers, o) }
}

func NewSession(samples *cloud.Samples, params cloud.Params, c *classifier.Classifier, opts ...Option) (*Session, error) {
	if samples == nil || samples.Len() == 0 {
		return nil, cloud.InvalidArgument("samples", "empty point cloud")
	}
	if c == nil {
		c = classifier.New()
	}
	params.Clamp()
	s := &Session{
		samples:    samples,
		visual:     cloud.NewVisualState(samples.Len()),
		scratch:    cloud.NewVisualState(samples.Len()),
		params:     params,
		classifier: c,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Session) AddObserver(o Observer) {
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

// Seed classifies the initial frame and uploads the static arrays. Step
// seeds implicitly when it has not been called.
func (s *Session) Seed() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seedLocked()
}

func (s *Session) seedLocked() error {
	if err := s.classifier.Seed(s.samples, &s.state, &s.params, s.visual); err != nil {
		return err
	}
	s.seeded = true
	return nil
}

// Step advances the animation by elapsed and reclassifies every point. On
// error the frame is skipped: the phase and the previous flags stay in place.
func (s *Session) Step(elapsed float64) (Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.seeded {
		if err := s.seedLocked(); err != nil {
			return Frame{}, fmt.Errorf("seed: %w", err)
		}
	}

	start := time.Now()
	if err := s.classifier.Update(s.samples, &s.state, elapsed, &s.params, s.scratch); err != nil {
		s.logger.Warn("frame skipped",
			slog.Int("frame", s.frames),
			slog.String("error", err.Error()))
		for _, o := range s.observers {
			if eo, ok := o.(ErrorObserver); ok {
				eo.OnError(s.frames, err)
			}
		}
		return Frame{}, FrameError{Index: s.frames, Err: err}
	}
	s.visual, s.scratch = s.scratch, s.visual

	a, b := s.visual.LobeCounts()
	f := Frame{
		Index:     s.frames,
		Elapsed:   elapsed,
		Phase:     s.state.Phase,
		Threshold: s.state.Threshold,
		Visible:   a + b,
		LobeA:     a,
		LobeB:     b,
		Duration:  time.Since(start),
	}
	s.frames++

	for _, o := range s.observers {
		o.OnFrame(f)
	}
	return f, nil
}

// Run steps a fixed number of frames with a constant dt, without a clock.
func (s *Session) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if cfg.Frames <= 0 {
		return nil, fmt.Errorf("frames must be positive, got %d", cfg.Frames)
	}
	if cfg.Dt < 0 {
		return nil, fmt.Errorf("dt must not be negative, got %f", cfg.Dt)
	}

	result := &Result{
		Phases:        make([]float64, 0, cfg.Frames),
		VisibleCounts: make([]int, 0, cfg.Frames),
		LobeACounts:   make([]int, 0, cfg.Frames),
	}

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		f, err := s.Step(cfg.Dt)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		result.FramesTaken++
		result.Phases = append(result.Phases, f.Phase)
		result.VisibleCounts = append(result.VisibleCounts, f.Visible)
		result.LobeACounts = append(result.LobeACounts, f.LobeA)
	}

	s.logger.Debug("run finished",
		slog.Int("frames", result.FramesTaken),
		slog.Int("errors", len(result.Errors)))
	return result, nil
}

// RunRealtime steps once per tick at fps until ctx is done, taking elapsed
// from clock.
func (s *Session) RunRealtime(ctx context.Context, fps int, clock Clock) error {
	if fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", fps)
	}
	if clock == nil {
		clock = &ElapsedClock{}
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	clock.Elapsed(time.Now())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			// frame errors are logged in Step and the loop keeps going
			_, _ = s.Step(clock.Elapsed(now))
		}
	}
}

func (s *Session) Params() cloud.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// UpdateParams applies fn to the tunables and clamps the result.
func (s *Session) UpdateParams(fn func(p *cloud.Params)) cloud.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.params)
	s.params.Clamp()
	return s.params
}

func (s *Session) Phase() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Phase
}

func (s *Session) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

func (s *Session) Samples() *cloud.Samples { return s.samples }

func (s *Session) Classifier() *classifier.Classifier { return s.classifier }

// Snapshot returns a copy of the current visual flags.
func (s *Session) Snapshot() *cloud.VisualState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visual.Clone()
}

// View calls fn with the live flags while holding the frame lock. fn must
// not retain them.
func (s *Session) View(fn func(samples *cloud.Samples, visual *cloud.VisualState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.samples, s.visual)
}
