package circuit

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FrequencyResponse", func() {
	var m *Model

	BeforeEach(func() {
		var err error
		m, err = Evaluate(DefaultParameters())
		Expect(err).NotTo(HaveOccurred())
	})

	DescribeTable("returns n strictly increasing, finite samples",
		func(n int) {
			resp, err := m.FrequencyResponse(n)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp).To(HaveLen(n))

			floor := 20 * math.Log10(MagnitudeFloor)
			for i, p := range resp {
				Expect(math.IsNaN(p.GainDB) || math.IsInf(p.GainDB, 0)).To(BeFalse())
				Expect(math.IsNaN(p.PhaseDeg) || math.IsInf(p.PhaseDeg, 0)).To(BeFalse())
				Expect(p.GainDB).To(BeNumerically(">=", floor))
				if i > 0 {
					Expect(p.Frequency).To(BeNumerically(">", resp[i-1].Frequency))
				}
			}
		},
		Entry("single point", 1),
		Entry("two points", 2),
		Entry("default", DefaultSamples),
		Entry("odd count", 37),
	)

	It("spans the sweep limits", func() {
		resp, err := m.FrequencyResponse(DefaultSamples)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp[0].Frequency).To(BeNumerically("~", SweepStart, 1e-9))
		Expect(resp[len(resp)-1].Frequency).To(BeNumerically("~", SweepStop, 1e-6))
	})

	It("starts the single-point sweep at the lower limit", func() {
		resp, err := m.FrequencyResponse(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp[0].Frequency).To(Equal(SweepStart))
	})

	It("applies both poles to magnitude and phase", func() {
		resp, err := m.FrequencyResponse(DefaultSamples)
		Expect(err).NotTo(HaveOccurred())

		fcLow := m.LowCorner()
		Expect(fcLow).To(BeNumerically("~", 1/(2*math.Pi), 1e-12))

		av := math.Abs(m.AC().AvBypassed)
		for _, i := range []int{0, 500, 999} {
			p := resp[i]
			f := p.Frequency
			mag := av * f / math.Sqrt(f*f+fcLow*fcLow) * HighCorner / math.Sqrt(f*f+HighCorner*HighCorner)
			Expect(p.GainDB).To(BeNumerically("~", 20*math.Log10(mag), 1e-9))
			phase := -180 + math.Atan(f/fcLow)*180/math.Pi - math.Atan(f/HighCorner)*180/math.Pi
			Expect(p.PhaseDeg).To(BeNumerically("~", phase, 1e-9))
		}

		// The high corner sits on the last sample: -3 dB from midband.
		last := resp[len(resp)-1]
		Expect(last.GainDB).To(BeNumerically("~", m.Corners().MidbandDB-10*math.Log10(2), 1e-3))
		Expect(last.PhaseDeg).To(BeNumerically("~", -180+90-45, 0.01))
	})

	It("floors the gain when the amplifier has no gain", func() {
		p := DefaultParameters()
		p.VBE = 0
		p.Vcc = 1e-300
		low, err := Evaluate(p)
		Expect(err).NotTo(HaveOccurred())

		resp, err := low.FrequencyResponse(10)
		Expect(err).NotTo(HaveOccurred())
		for _, pt := range resp {
			Expect(pt.GainDB).To(Equal(20 * math.Log10(MagnitudeFloor)))
		}
	})

	DescribeTable("rejects non-positive sample counts",
		func(n int) {
			resp, err := m.FrequencyResponse(n)
			Expect(resp).To(BeNil())
			Expect(errors.Is(err, ErrInvalidArgument)).To(BeTrue())
		},
		Entry("zero", 0),
		Entry("negative", -5),
	)

	It("exposes columns aligned with the samples", func() {
		resp, err := m.FrequencyResponse(16)
		Expect(err).NotTo(HaveOccurred())
		fs, gs, ps := resp.Frequencies(), resp.Gains(), resp.Phases()
		Expect(fs).To(HaveLen(16))
		for i := range resp {
			Expect(fs[i]).To(Equal(resp[i].Frequency))
			Expect(gs[i]).To(Equal(resp[i].GainDB))
			Expect(ps[i]).To(Equal(resp[i].PhaseDeg))
		}
	})
})

var _ = Describe("Corners", func() {
	It("summarises the passband", func() {
		m, err := Evaluate(DefaultParameters())
		Expect(err).NotTo(HaveOccurred())
		c := m.Corners()
		Expect(c.Low).To(BeNumerically("~", 0.159154943092, 1e-9))
		Expect(c.High).To(Equal(HighCorner))
		Expect(c.MidbandDB).To(BeNumerically("~", 60.1834591557, 1e-6))
	})
})
