package spring_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/kinema/internal/motion"
	"github.com/san-kum/kinema/internal/spring"
)

var _ = Describe("analytic solution", func() {
	var desc spring.Description

	BeforeEach(func() {
		desc = spring.Description{Mass: 1, Stiffness: 100, Damping: 10}
	})

	Describe("boundary conditions", func() {
		It("starts at the start value with the launch velocity", func() {
			s, err := spring.New(desc, 0.3, 1, 4, motion.DefaultTolerance)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Position(0)).To(BeNumerically("~", 0.3, 1e-12))
			Expect(s.Velocity(0)).To(BeNumerically("~", 4, 1e-12))
		})

		It("approaches the end value as time grows", func() {
			s, err := spring.New(desc, 0, 1, 0, motion.DefaultTolerance)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Position(10)).To(BeNumerically("~", 1, 1e-6))
			Expect(s.Velocity(10)).To(BeNumerically("~", 0, 1e-6))
		})
	})

	Describe("velocity consistency", func() {
		It("matches the finite difference of position in every regime", func() {
			for _, ratio := range []float64{0.3, 1.0, 2.5} {
				d := spring.WithDampingRatio(1, 150, ratio)
				s, err := spring.New(d, 0, 1, 2, motion.DefaultTolerance)
				Expect(err).NotTo(HaveOccurred())

				const h = 1e-6
				for _, t := range []float64{0.05, 0.2, 0.5} {
					numeric := (s.Position(t+h) - s.Position(t-h)) / (2 * h)
					Expect(s.Velocity(t)).To(BeNumerically("~", numeric, 1e-4),
						"ratio %f t %f", ratio, t)
				}
			}
		})
	})

	Describe("settle duration", func() {
		It("shrinks as damping approaches critical from below", func() {
			loose, err := spring.New(spring.WithDampingRatio(1, 100, 0.2), 0, 1, 0, motion.DefaultTolerance)
			Expect(err).NotTo(HaveOccurred())
			tight, err := spring.New(spring.WithDampingRatio(1, 100, 0.8), 0, 1, 0, motion.DefaultTolerance)
			Expect(err).NotTo(HaveOccurred())
			Expect(tight.Duration()).To(BeNumerically("<", loose.Duration()))
		})

		It("is zero when already settled", func() {
			s, err := spring.New(desc, 5, 5, 0, motion.DefaultTolerance)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Duration()).To(BeZero())
		})

		It("tightens with a tighter tolerance", func() {
			coarse, err := spring.New(desc, 0, 1, 0, motion.Tolerance{Distance: 0.1, Velocity: 1})
			Expect(err).NotTo(HaveOccurred())
			fine, err := spring.New(desc, 0, 1, 0, motion.Tolerance{Distance: 0.001, Velocity: 0.01})
			Expect(err).NotTo(HaveOccurred())
			Expect(fine.Duration()).To(BeNumerically(">", coarse.Duration()))
		})
	})

	Describe("retargeting", func() {
		It("hands the in-flight velocity to the new spring", func() {
			s, err := spring.New(desc, 0, 1, 0, motion.DefaultTolerance)
			Expect(err).NotTo(HaveOccurred())

			const tCut = 0.1
			v := s.Velocity(tCut)
			x := s.Position(tCut)
			Expect(math.Abs(v)).To(BeNumerically(">", 0))

			next, err := s.CopyWith(x, 0, v)
			Expect(err).NotTo(HaveOccurred())
			Expect(next.Position(0)).To(BeNumerically("~", x, 1e-12))
			Expect(next.Velocity(0)).To(BeNumerically("~", v, 1e-12))
		})
	})

	Describe("fling description", func() {
		It("is slightly overdamped so it cannot oscillate", func() {
			Expect(spring.DefaultFling.DampingRatio()).To(BeNumerically(">", 1))
			Expect(spring.DefaultFling.Regime()).To(Equal(spring.Overdamped))
		})
	})
})
