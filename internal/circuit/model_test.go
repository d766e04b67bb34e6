package circuit

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Evaluate", func() {
	Context("with default parameters", func() {
		var m *Model

		BeforeEach(func() {
			var err error
			m, err = Evaluate(DefaultParameters())
			Expect(err).NotTo(HaveOccurred())
		})

		It("matches the golden operating point", func() {
			op := m.OperatingPoint()
			Expect(op.IB).To(BeNumerically("~", 56.5e-6, 1e-12))
			Expect(op.IC).To(BeNumerically("~", 5.65e-3, 1e-12))
			Expect(op.IE).To(BeNumerically("~", 5.7065e-3, 1e-12))
			Expect(op.VE).To(BeNumerically("~", 5.7065, 1e-9))
			Expect(op.VB).To(BeNumerically("~", 6.4065, 1e-9))
			Expect(op.VC).To(BeNumerically("~", -14.555, 1e-9))
			Expect(op.VCE).To(BeNumerically("~", -20.2615, 1e-9))
		})

		It("matches the golden AC parameters", func() {
			ac := m.AC()
			Expect(ac.Gm).To(BeNumerically("~", 0.217307692308, 1e-9))
			Expect(ac.AvBypassed).To(BeNumerically("~", -1021.34615385, 1e-6))
			Expect(ac.AvWithRE).To(BeNumerically("~", -4.67847075405, 1e-9))
			Expect(ac.Rin).To(Equal(DefaultRB))
			Expect(ac.Rout).To(Equal(DefaultRC))
		})

		It("keeps the parameters it was built from", func() {
			Expect(m.Parameters()).To(Equal(DefaultParameters()))
		})
	})

	It("is deterministic", func() {
		a, err := Evaluate(DefaultParameters())
		Expect(err).NotTo(HaveOccurred())
		b, err := Evaluate(DefaultParameters())
		Expect(err).NotTo(HaveOccurred())
		Expect(a.OperatingPoint()).To(Equal(b.OperatingPoint()))
		Expect(a.AC()).To(Equal(b.AC()))
	})

	It("is idempotent across A, B, A re-evaluation", func() {
		pa := DefaultParameters()
		pb := pa
		pb.RC = 2.2e3
		pb.Vcc = 9

		first, err := Evaluate(pa)
		Expect(err).NotTo(HaveOccurred())
		other, err := Evaluate(pb)
		Expect(err).NotTo(HaveOccurred())
		again, err := Evaluate(pa)
		Expect(err).NotTo(HaveOccurred())

		Expect(other.OperatingPoint()).NotTo(Equal(first.OperatingPoint()))
		Expect(again.OperatingPoint()).To(Equal(first.OperatingPoint()))
		Expect(again.AC()).To(Equal(first.AC()))
	})

	DescribeTable("bias and gain relations",
		func(p Parameters) {
			m, err := Evaluate(p)
			Expect(err).NotTo(HaveOccurred())
			op, ac := m.OperatingPoint(), m.AC()

			Expect(math.Abs(op.IE - (op.IC + op.IB))).To(BeNumerically("<=", 1e-9*math.Abs(op.IE)))
			Expect(ac.AvBypassed).To(Equal(-ac.Gm * p.RC))
			Expect(math.Abs(ac.AvWithRE)).To(BeNumerically("<=", math.Abs(ac.AvBypassed)))
			Expect(op.VCE).To(BeNumerically("~", op.VC-op.VE, 1e-12))
		},
		Entry("defaults", DefaultParameters()),
		Entry("no emitter resistor", withField(DefaultParameters(), "re", 0)),
		Entry("large base resistor", withField(DefaultParameters(), "rb", 470e3)),
		Entry("low beta", withField(DefaultParameters(), "beta", 20)),
		Entry("low supply", withField(DefaultParameters(), "vcc", 5)),
	)

	Context("with invalid parameters", func() {
		It("rejects the all-zero bias denominator", func() {
			p := DefaultParameters()
			p.RB, p.Beta, p.RE = 0, 0, 0

			m, err := Evaluate(p)
			Expect(m).To(BeNil())
			Expect(errors.Is(err, ErrInvalidParameter)).To(BeTrue())

			var perr *InvalidParameterError
			Expect(errors.As(err, &perr)).To(BeTrue())
			Expect(perr.Field).To(Equal("rb"))
		})

		DescribeTable("names the offending field",
			func(field string, value float64) {
				_, err := Evaluate(withField(DefaultParameters(), field, value))
				var perr *InvalidParameterError
				Expect(errors.As(err, &perr)).To(BeTrue())
				Expect(perr.Field).To(Equal(field))
				Expect(err.Error()).To(ContainSubstring(field))
			},
			Entry("negative collector resistor", "rc", -4.7e3),
			Entry("zero supply", "vcc", 0.0),
			Entry("negative emitter resistor", "re", -1.0),
			Entry("VBE above supply", "vbe", 12.5),
			Entry("negative VBE", "vbe", -0.1),
			Entry("zero frequency", "freq", 0.0),
			Entry("zero coupling capacitor", "c1", 0.0),
			Entry("negative amplitude", "vin_amp", -0.01),
			Entry("NaN beta", "beta", math.NaN()),
			Entry("infinite base resistor", "rb", math.Inf(1)),
		)
	})
})

var _ = Describe("Region", func() {
	DescribeTable("classifies VCE against the rails",
		func(p Parameters, want Region) {
			m, err := Evaluate(p)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Region()).To(Equal(want))
		},
		// defaults: IC = 5.65 mA pulls VC far below VE
		Entry("collector pulled below emitter", DefaultParameters(), RegionSaturation),
		// VC = 11.435 V, VE = 5.7065 V
		Entry("mid-rail", withField(DefaultParameters(), "rc", 100), RegionActive),
		// IB ≈ 1.12 µA leaves VCE ≈ 11.36 V
		Entry("starved base", withField(DefaultParameters(), "rb", 10e6), RegionCutoff),
	)

	It("reports the output swing to the nearest rail", func() {
		m, err := Evaluate(withField(DefaultParameters(), "rc", 1e3))
		Expect(err).NotTo(HaveOccurred())
		// VC = 12 - 5.65 = 6.35 V
		Expect(m.OutputSwing()).To(BeNumerically("~", 5.65, 1e-9))
	})
})

var _ = Describe("Components", func() {
	It("lists every schematic part with live values", func() {
		m, err := Evaluate(DefaultParameters())
		Expect(err).NotTo(HaveOccurred())

		parts := m.Components()
		names := make([]string, len(parts))
		for i, c := range parts {
			names[i] = c.Name
		}
		Expect(names).To(Equal([]string{"Vin", "RB", "RC", "RE", "Q1", "Vcc"}))
		Expect(parts[1].Info).To(ContainElement("sets IB = 56.5 µA"))
	})
})

func withField(p Parameters, name string, value float64) Parameters {
	out, err := p.With(name, value)
	if err != nil {
		panic(err)
	}
	return out
}
