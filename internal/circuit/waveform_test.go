package circuit

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Waveforms", func() {
	DescribeTable("covers five periods of the input",
		func(freq float64, n int) {
			m, err := Evaluate(withField(DefaultParameters(), "freq", freq))
			Expect(err).NotTo(HaveOccurred())

			wf, err := m.Waveforms(n)
			Expect(err).NotTo(HaveOccurred())
			Expect(wf).To(HaveLen(n))
			Expect(wf[0].Time).To(Equal(0.0))
			Expect(wf[n-1].Time).To(BeNumerically("~", Periods/freq, 1e-15))
			Expect(wf.SampleInterval()).To(BeNumerically("~", Periods/freq/float64(n-1), 1e-15))
		},
		Entry("1 kHz", 1000.0, DefaultSamples),
		Entry("100 Hz", 100.0, 250),
		Entry("10 kHz, two samples", 10e3, 2),
	)

	It("superimposes the scaled input on the collector bias", func() {
		m, err := Evaluate(DefaultParameters())
		Expect(err).NotTo(HaveOccurred())
		wf, err := m.Waveforms(DefaultSamples)
		Expect(err).NotTo(HaveOccurred())

		p, op, ac := m.Parameters(), m.OperatingPoint(), m.AC()
		for _, s := range wf {
			vin := p.VinAmp * math.Sin(2*math.Pi*p.Freq*s.Time)
			Expect(s.Vin).To(BeNumerically("~", vin, 1e-12))
			Expect(s.VoutAC).To(Equal(ac.AvBypassed * s.Vin))
			Expect(s.VoutTotal).To(Equal(op.VC + s.VoutAC))
		}
	})

	It("stays finite for the largest accepted frequency", func() {
		m, err := Evaluate(withField(DefaultParameters(), "freq", math.MaxFloat64))
		Expect(err).NotTo(HaveOccurred())
		wf, err := m.Waveforms(16)
		Expect(err).NotTo(HaveOccurred())

		for _, s := range wf {
			for _, v := range []float64{s.Time, s.Vin, s.VoutAC, s.VoutTotal} {
				Expect(math.IsNaN(v) || math.IsInf(v, 0)).To(BeFalse())
			}
		}
		Expect(wf[0].Vin).To(Equal(0.0))
		Expect(wf[0].VoutTotal).To(Equal(m.OperatingPoint().VC))
	})

	It("keeps the columns index-aligned", func() {
		m, err := Evaluate(DefaultParameters())
		Expect(err).NotTo(HaveOccurred())
		wf, err := m.Waveforms(64)
		Expect(err).NotTo(HaveOccurred())

		ts, vin, vac, vtot := wf.Times(), wf.Vin(), wf.VoutAC(), wf.VoutTotal()
		for _, col := range [][]float64{ts, vin, vac, vtot} {
			Expect(col).To(HaveLen(64))
		}
		Expect(vtot[10]).To(Equal(wf[10].VoutTotal))
		Expect(vac[20]).To(Equal(wf[20].VoutAC))
	})

	It("returns the bias point alone for a single sample", func() {
		m, err := Evaluate(DefaultParameters())
		Expect(err).NotTo(HaveOccurred())
		wf, err := m.Waveforms(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(wf).To(Equal(Waveform{{Time: 0, Vin: 0, VoutAC: 0, VoutTotal: m.OperatingPoint().VC}}))
		Expect(wf.SampleInterval()).To(BeZero())
	})

	It("rejects non-positive sample counts", func() {
		m, err := Evaluate(DefaultParameters())
		Expect(err).NotTo(HaveOccurred())
		_, err = m.Waveforms(0)
		Expect(errors.Is(err, ErrInvalidArgument)).To(BeTrue())

		var aerr *InvalidArgumentError
		Expect(errors.As(err, &aerr)).To(BeTrue())
		Expect(aerr.Name).To(Equal("samples"))
	})
})

var _ = Describe("Sensitivity", func() {
	It("fills the RC/RE gain grid", func() {
		grid, err := Sensitivity(DefaultRCRange, DefaultRERange, DefaultSensitivityPoints)
		Expect(err).NotTo(HaveOccurred())

		r, c := grid.Gains.Dims()
		Expect(r).To(Equal(DefaultSensitivityPoints))
		Expect(c).To(Equal(DefaultSensitivityPoints))
		Expect(grid.RC[0]).To(Equal(1e3))
		Expect(grid.RC[r-1]).To(Equal(10e3))
		Expect(grid.RE[c-1]).To(Equal(3e3))

		Expect(grid.Gains.At(0, 0)).To(BeNumerically("~", 2.0, 1e-12))
		Expect(grid.Gains.At(r-1, 0)).To(BeNumerically("~", 20.0, 1e-12))
		Expect(grid.Gains.At(r-1, c-1)).To(BeNumerically("~", 10.0/3.0, 1e-12))
	})

	It("rejects empty or inverted ranges", func() {
		_, err := Sensitivity(Range{Min: 0, Max: 1}, DefaultRERange, 4)
		Expect(errors.Is(err, ErrInvalidParameter)).To(BeTrue())

		_, err = Sensitivity(DefaultRCRange, Range{Min: 3e3, Max: 1e3}, 4)
		Expect(errors.Is(err, ErrInvalidParameter)).To(BeTrue())

		_, err = Sensitivity(DefaultRCRange, DefaultRERange, 0)
		Expect(errors.Is(err, ErrInvalidArgument)).To(BeTrue())
	})
})
