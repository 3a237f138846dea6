// Package classifier advances the animation phase and recomputes every point's
// visibility and lobe each frame.
package classifier

import (
	"fmt"
	"log/slog"

	"github.com/san-kum/orbsim/internal/cloud"
	"github.com/san-kum/orbsim/internal/compute"
)

// DefaultSpeedScale converts elapsed seconds × speed into phase. It is an
// empirical constant, not a derived rate.
const DefaultSpeedScale = 2e-11

// Sink receives the static arrays once and the flags every frame.
type Sink interface {
	Upload(s *cloud.Samples, v *cloud.VisualState) error
	Publish(v *cloud.VisualState) error
}

type Classifier struct {
	backend    compute.Backend
	sink       Sink
	speedScale float64
	formula    compute.Formula
	logger     *slog.Logger
}

type Option func(*Classifier)

func WithBackend(b compute.Backend) Option {
	return func(c *Classifier) { c.backend = b }
}

func WithSink(s Sink) Option {
	return func(c *Classifier) { c.sink = s }
}

func WithSpeedScale(scale float64) Option {
	return func(c *Classifier) { c.speedScale = scale }
}

// WithFormula selects the classified quantity. FormulaMixed makes the proportion
// tunables take effect, which changes what is displayed.
func WithFormula(f compute.Formula) Option {
	return func(c *Classifier) { c.formula = f }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Classifier) { c.logger = l }
}

func New(opts ...Option) *Classifier {
	c := &Classifier{
		speedScale: DefaultSpeedScale,
		formula:    compute.FormulaInterference,
	}
	for _, o := range opts {
		o(c)
	}
	if c.backend == nil {
		c.backend = compute.AutoSelect(0)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

func (c *Classifier) Backend() compute.Backend { return c.backend }
func (c *Classifier) Formula() compute.Formula { return c.formula }
func (c *Classifier) SpeedScale() float64      { return c.speedScale }

// Update advances the phase by elapsed*speed*scale, reclassifies every point
// into out and republishes the flags to the sink.
//
// A length mismatch between samples and out fails with cloud.ErrInvalidArgument
// before the phase moves. If the sink rejects the frame the phase is left
// unchanged, but out already holds the rejected flags.
func (c *Classifier) Update(s *cloud.Samples, state *cloud.FrameState, elapsed float64, params *cloud.Params, out *cloud.VisualState) error {
	if err := cloud.CheckLengths(s, out); err != nil {
		return err
	}
	if state == nil || params == nil {
		return cloud.InvalidArgument("state", "nil frame state or params")
	}

	next := *state
	next.Advance(elapsed, params.Speed, c.speedScale)
	next.Threshold = params.Threshold

	c.classify(s, &next, params, out)

	if c.sink != nil {
		if err := c.sink.Publish(out); err != nil {
			return fmt.Errorf("publish frame: %w", err)
		}
	}
	*state = next
	return nil
}

// Seed classifies the initial frame without moving the phase and uploads the
// static arrays together with those flags.
func (c *Classifier) Seed(s *cloud.Samples, state *cloud.FrameState, params *cloud.Params, out *cloud.VisualState) error {
	if err := cloud.CheckLengths(s, out); err != nil {
		return err
	}
	if state == nil || params == nil {
		return cloud.InvalidArgument("state", "nil frame state or params")
	}

	state.Threshold = params.Threshold
	c.classify(s, state, params, out)

	c.logger.Debug("seeded point cloud",
		slog.Int("points", s.Len()),
		slog.Int("visible", out.VisibleCount()),
		slog.String("backend", c.backend.Name()),
		slog.String("formula", c.formula.String()))

	if c.sink != nil {
		if err := c.sink.Upload(s, out); err != nil {
			return fmt.Errorf("upload samples: %w", err)
		}
	}
	return nil
}

func (c *Classifier) classify(s *cloud.Samples, state *cloud.FrameState, params *cloud.Params, out *cloud.VisualState) {
	c.backend.Classify(compute.Job{
		Samples: s,
		Out:     out,
		Phase:   state.Phase,
		Cutoff:  state.Cutoff(),
		Formula: c.formula,
		N:       float64(params.NProportion),
		M:       float64(params.MProportion),
	})
}
