package circuit

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Parameters", func() {
	It("validates the defaults", func() {
		Expect(DefaultParameters().Validate()).To(Succeed())
	})

	It("round-trips every named field", func() {
		p := DefaultParameters()
		for i, name := range ParamNames {
			next, err := p.With(name, float64(i+1))
			Expect(err).NotTo(HaveOccurred())
			v, err := next.Get(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(float64(i + 1)))
		}
	})

	It("leaves the receiver untouched", func() {
		p := DefaultParameters()
		_, err := p.With("rc", 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.RC).To(Equal(DefaultRC))
	})

	It("rejects unknown names", func() {
		_, err := DefaultParameters().Get("rl")
		Expect(err).To(MatchError(ContainSubstring("unknown param")))
		_, err = DefaultParameters().With("rl", 1)
		Expect(err).To(HaveOccurred())
	})

	It("exposes a map keyed by name", func() {
		m := DefaultParameters().Map()
		Expect(m).To(HaveLen(len(ParamNames)))
		Expect(m).To(HaveKeyWithValue("beta", DefaultBeta))
		Expect(m).To(HaveKeyWithValue("vin_amp", DefaultVinAmp))
	})
})
