package sampler_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbsim/internal/cloud"
	"github.com/san-kum/orbsim/internal/sampler"
)

var _ = Describe("Generate", func() {
	It("rejects a zero count", func() {
		_, err := sampler.Generate(0, 13, 1)
		Expect(errors.Is(err, cloud.ErrInvalidArgument)).To(BeTrue())
	})

	It("rejects a non-positive width", func() {
		for _, w := range []float32{0, -1, float32(math.NaN()), float32(math.Inf(1))} {
			_, err := sampler.Generate(10, w, 1)
			Expect(errors.Is(err, cloud.ErrInvalidArgument)).To(BeTrue(), "width %v", w)
		}
	})

	It("is deterministic for a seed, independent of workers", func() {
		a, err := sampler.New(1).Generate(20000, 13, 42)
		Expect(err).NotTo(HaveOccurred())
		b, err := sampler.New(8).Generate(20000, 13, 42)
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(b))
	})

	It("changes with the seed", func() {
		a, _ := sampler.Generate(100, 13, 1)
		b, _ := sampler.Generate(100, 13, 2)
		Expect(a.Positions).NotTo(Equal(b.Positions))
	})

	Context("with a default-sized cube", func() {
		var s *cloud.Samples

		BeforeEach(func() {
			var err error
			s, err = sampler.Generate(50000, sampler.DefaultCubeWidth, 7)
			Expect(err).NotTo(HaveOccurred())
		})

		It("allocates one slot per point in every array", func() {
			Expect(s.Len()).To(Equal(50000))
			Expect(s.Positions).To(HaveLen(3 * 50000))
			Expect(cloud.CheckLengths(s, cloud.NewVisualState(50000))).To(Succeed())
		})

		It("keeps positions inside the cube", func() {
			for _, c := range s.Positions {
				Expect(c).To(BeNumerically(">=", -6.5))
				Expect(c).To(BeNumerically("<=", 6.5))
			}
		})

		It("keeps angles and radius in range", func() {
			for i := 0; i < s.Len(); i++ {
				Expect(s.Radius[i]).To(BeNumerically(">=", 0))
				Expect(s.Polar[i]).To(BeNumerically(">=", 0))
				Expect(s.Polar[i]).To(BeNumerically("<=", sampler.Pi32))
				Expect(s.Azimuth[i]).To(BeNumerically(">", -sampler.Pi32))
				Expect(s.Azimuth[i]).To(BeNumerically("<=", sampler.Pi32))
			}
		})

		It("caches exact squares of the amplitudes", func() {
			for i := 0; i < s.Len(); i++ {
				Expect(float64(s.AmpSSq[i])).To(BeNumerically("~", float64(s.AmpS[i])*float64(s.AmpS[i]), 1e-6))
				Expect(float64(s.AmpPSq[i])).To(BeNumerically("~", float64(s.AmpP[i])*float64(s.AmpP[i]), 1e-6))
			}
		})

		It("keeps the s amplitude positive and the p amplitude non-negative", func() {
			for i := 0; i < s.Len(); i++ {
				Expect(s.AmpS[i]).To(BeNumerically(">", 0))
				Expect(s.AmpP[i]).To(BeNumerically(">=", 0))
			}
		})
	})
})

var _ = Describe("FromPositions", func() {
	It("rejects an empty point list", func() {
		_, err := sampler.FromPositions(nil)
		Expect(errors.Is(err, cloud.ErrInvalidArgument)).To(BeTrue())
	})

	It("defines the origin without NaN", func() {
		s, err := sampler.FromPositions([][3]float32{{0, 0, 0}})
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Radius[0]).To(BeZero())
		Expect(s.Polar[0]).To(BeZero())
		Expect(s.Azimuth[0]).To(BeZero())
		Expect(s.AmpS[0]).To(Equal(float32(1)))
		Expect(s.AmpP[0]).To(BeZero())
	})

	It("computes the hand-derived scalars", func() {
		s, err := sampler.FromPositions([][3]float32{{0, 1, 0}, {1, 0, 0}, {0, -1, 0}, {0, 0, 1}})
		Expect(err).NotTo(HaveOccurred())

		e1 := math.Exp(-1)
		pEq := 1.4 * math.Exp(-0.5)

		Expect(s.Radius).To(Equal([]float32{1, 1, 1, 1}))
		Expect(s.Polar).To(Equal([]float32{0, float32(math.Pi / 2), sampler.Pi32, float32(math.Pi / 2)}))
		Expect(s.Azimuth).To(Equal([]float32{0, float32(math.Pi / 2), 0, 0}))
		for i := 0; i < 4; i++ {
			Expect(float64(s.AmpS[i])).To(BeNumerically("~", e1, 1e-7))
		}
		Expect(float64(s.AmpP[0])).To(BeNumerically("~", 0, 1e-7))
		Expect(float64(s.AmpP[1])).To(BeNumerically("~", pEq, 1e-6))
		Expect(float64(s.AmpP[2])).To(BeNumerically("~", 0, 1e-7))
		Expect(float64(s.AmpP[3])).To(BeNumerically("~", pEq, 1e-6))
	})
})
