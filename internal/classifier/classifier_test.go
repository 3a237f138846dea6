package classifier_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbsim/internal/classifier"
	"github.com/san-kum/orbsim/internal/cloud"
	"github.com/san-kum/orbsim/internal/compute"
	"github.com/san-kum/orbsim/internal/sampler"
)

type countingSink struct {
	uploads    int
	publishes  int
	lastLen    int
	publishErr error
}

func (c *countingSink) Upload(s *cloud.Samples, v *cloud.VisualState) error {
	c.uploads++
	c.lastLen = v.Len()
	return nil
}

func (c *countingSink) Publish(v *cloud.VisualState) error {
	c.publishes++
	c.lastLen = v.Len()
	return c.publishErr
}

func visibleSet(v *cloud.VisualState) []bool {
	out := make([]bool, v.Len())
	copy(out, v.Visible)
	return out
}

var _ = Describe("Classifier", func() {
	var (
		samples *cloud.Samples
		params  cloud.Params
		state   cloud.FrameState
		out     *cloud.VisualState
		sink    *countingSink
		c       *classifier.Classifier
	)

	BeforeEach(func() {
		var err error
		samples, err = sampler.Generate(40000, sampler.DefaultCubeWidth, 99)
		Expect(err).NotTo(HaveOccurred())
		params = cloud.DefaultParams()
		state = cloud.FrameState{}
		out = cloud.NewVisualState(samples.Len())
		sink = &countingSink{}
		c = classifier.New(classifier.WithSink(sink), classifier.WithBackend(compute.NewCPUBackend(4)))
	})

	It("rejects a mismatched output without advancing the phase", func() {
		state.Phase = 3
		err := c.Update(samples, &state, 1, &params, cloud.NewVisualState(samples.Len()-1))
		Expect(errors.Is(err, cloud.ErrInvalidArgument)).To(BeTrue())
		Expect(state.Phase).To(Equal(3.0))
		Expect(sink.publishes).To(BeZero())
	})

	It("is idempotent when no time elapses", func() {
		state.Phase = 0.7
		Expect(c.Update(samples, &state, 0, &params, out)).To(Succeed())
		first := out.Clone()
		Expect(c.Update(samples, &state, 0, &params, out)).To(Succeed())
		Expect(out).To(Equal(first))
		Expect(state.Phase).To(Equal(0.7))
	})

	It("advances the phase strictly for positive elapsed time and speed", func() {
		c = classifier.New(classifier.WithSpeedScale(1e-3))
		before := state.Phase
		Expect(c.Update(samples, &state, 1.0/60, &params, out)).To(Succeed())
		Expect(state.Phase).To(BeNumerically(">", before))
		Expect(state.Phase).To(BeNumerically("~", before+1.0/60*0.5*1e-3, 1e-15))
	})

	It("advances by elapsed*speed*scale with the default scale", func() {
		Expect(c.SpeedScale()).To(Equal(classifier.DefaultSpeedScale))
		Expect(c.Update(samples, &state, 1e9, &params, out)).To(Succeed())
		Expect(state.Phase).To(BeNumerically("~", 1e9*0.5*2e-11, 1e-12))
		Expect(state.Threshold).To(Equal(params.Threshold))
	})

	It("publishes the full flags exactly once per frame", func() {
		for i := 0; i < 5; i++ {
			Expect(c.Update(samples, &state, 0.016, &params, out)).To(Succeed())
		}
		Expect(sink.publishes).To(Equal(5))
		Expect(sink.uploads).To(BeZero())
		Expect(sink.lastLen).To(Equal(samples.Len()))
	})

	It("wraps sink failures", func() {
		sink.publishErr = errors.New("buffer lost")
		state.Phase = 0.4
		err := c.Update(samples, &state, 0.016, &params, out)
		Expect(err).To(MatchError(ContainSubstring("buffer lost")))
		Expect(state.Phase).To(Equal(0.4))
	})

	It("seeds and uploads without moving the phase", func() {
		state.Phase = 1.25
		Expect(c.Seed(samples, &state, &params, out)).To(Succeed())
		Expect(sink.uploads).To(Equal(1))
		Expect(sink.publishes).To(BeZero())
		Expect(state.Phase).To(Equal(1.25))

		seeded := out.Clone()
		Expect(c.Update(samples, &state, 0, &params, out)).To(Succeed())
		Expect(out).To(Equal(seeded))
	})

	It("never shows more points at a higher threshold", func() {
		state.Phase = 2.1
		thresholds := []float32{0.01, 0.05, 0.1, 0.3, 0.5, 0.8, 0.999}
		var prev []bool
		for _, th := range thresholds {
			params.Threshold = th
			Expect(c.Update(samples, &state, 0, &params, out)).To(Succeed())
			cur := visibleSet(out)
			if prev != nil {
				for i := range cur {
					if cur[i] {
						Expect(prev[i]).To(BeTrue(), "point %d appeared at threshold %v", i, th)
					}
				}
			}
			prev = cur
		}
	})

	It("shows almost nothing at the maximum threshold", func() {
		params.Threshold = cloud.MaxThreshold
		Expect(c.Update(samples, &state, 0, &params, out)).To(Succeed())
		Expect(out.VisibleCount()).To(BeNumerically("<", samples.Len()/50))
	})

	It("resets the lobe of hidden points", func() {
		params.Threshold = cloud.MaxThreshold
		Expect(c.Update(samples, &state, 0, &params, out)).To(Succeed())
		for i, vis := range out.Visible {
			if !vis {
				Expect(out.Lobe[i]).To(Equal(cloud.LobeB))
			}
		}
	})

	It("repeats the pattern after a full period", func() {
		c = classifier.New(classifier.WithSpeedScale(1), classifier.WithSink(sink))
		params.Speed = 1
		Expect(c.Update(samples, &state, 0, &params, out)).To(Succeed())
		start := out.Clone()

		steps := 97
		for i := 0; i < steps; i++ {
			Expect(c.Update(samples, &state, 2*math.Pi/float64(steps), &params, out)).To(Succeed())
		}
		Expect(state.Phase).To(BeNumerically("~", 2*math.Pi, 1e-9))

		mismatch := 0
		for i := range out.Visible {
			if out.Visible[i] != start.Visible[i] || (out.Visible[i] && out.Lobe[i] != start.Lobe[i]) {
				mismatch++
			}
		}
		Expect(mismatch).To(BeNumerically("<=", 2))
	})

	It("swaps lobes half a period later", func() {
		c = classifier.New(classifier.WithSpeedScale(1))
		params.Speed = 1
		Expect(c.Update(samples, &state, 0, &params, out)).To(Succeed())
		start := out.Clone()
		Expect(c.Update(samples, &state, math.Pi, &params, out)).To(Succeed())

		swapped, total := 0, 0
		for i := range out.Visible {
			if start.Visible[i] && out.Visible[i] {
				total++
				if start.Lobe[i] != out.Lobe[i] {
					swapped++
				}
			}
		}
		Expect(total).To(BeNumerically(">", 0))
		Expect(swapped).To(Equal(total))
	})
})

var _ = Describe("hand-computed scenario", func() {
	var (
		samples *cloud.Samples
		out     *cloud.VisualState
		params  cloud.Params
	)

	BeforeEach(func() {
		var err error
		samples, err = sampler.FromPositions([][3]float32{{0, 1, 0}, {1, 0, 0}, {0, -1, 0}, {0, 0, 1}})
		Expect(err).NotTo(HaveOccurred())
		out = cloud.NewVisualState(4)
		params = cloud.DefaultParams()
		params.Threshold = 0.5
	})

	It("matches the expected flags at phase 0", func() {
		// (0,1,0): sin θ = 0, I = 0
		// (1,0,0): φ = π/2, cos(−π/2) ≈ 0
		// (0,−1,0): sin π ≈ 0
		// (0,0,1): I = 2·e^−1·1.4·e^−½ ≈ 0.6248 > 0.05
		expected := 2 * math.Exp(-1) * 1.4 * math.Exp(-0.5)
		Expect(expected).To(BeNumerically("~", 0.6248, 1e-4))

		state := cloud.FrameState{Phase: 0}
		Expect(classifier.New().Update(samples, &state, 0, &params, out)).To(Succeed())
		Expect(out.Visible).To(Equal([]bool{false, false, false, true}))
		Expect(out.Lobe).To(Equal([]cloud.Lobe{cloud.LobeB, cloud.LobeB, cloud.LobeB, cloud.LobeA}))
	})

	It("flips the lobe at phase π", func() {
		state := cloud.FrameState{Phase: math.Pi}
		Expect(classifier.New(classifier.WithBackend(compute.NewSerialBackend())).Update(samples, &state, 0, &params, out)).To(Succeed())
		Expect(out.Visible).To(Equal([]bool{false, false, false, true}))
		Expect(out.Lobe[3]).To(Equal(cloud.LobeB))
	})

	It("shows the +x point a quarter period later", func() {
		state := cloud.FrameState{Phase: math.Pi / 2}
		Expect(classifier.New().Update(samples, &state, 0, &params, out)).To(Succeed())
		Expect(out.Visible).To(Equal([]bool{false, true, false, false}))
		Expect(out.Lobe[1]).To(Equal(cloud.LobeA))
	})
})
