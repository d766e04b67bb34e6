package circuit

import "math"

// ThermalVoltage is kT/q at room temperature.
const ThermalVoltage = 0.026

// OperatingPoint is the DC bias of the amplifier.
type OperatingPoint struct {
	IB  float64 `json:"ib"`
	IC  float64 `json:"ic"`
	IE  float64 `json:"ie"`
	VB  float64 `json:"vb"`
	VC  float64 `json:"vc"`
	VE  float64 `json:"ve"`
	VCE float64 `json:"vce"`
}

// ACParameters are the small-signal quantities around the operating point.
type ACParameters struct {
	Gm         float64 `json:"gm"`
	AvWithRE   float64 `json:"av_with_re"`
	AvBypassed float64 `json:"av_bypassed"`
	Rin        float64 `json:"rin"`
	Rout       float64 `json:"rout"`
}

// Model is an evaluated amplifier. It is never mutated after Evaluate.
type Model struct {
	params Parameters
	op     OperatingPoint
	ac     ACParameters
}

// Evaluate validates p and derives the operating point and AC parameters.
// Either a fully evaluated model or an error is returned.
func Evaluate(p Parameters) (*Model, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	m := &Model{params: p}
	m.op = computeOperatingPoint(p)
	m.ac = computeACParameters(p, m.op)

	if err := m.checkFinite(); err != nil {
		return nil, err
	}
	return m, nil
}

// computeOperatingPoint uses the single-resistor base bias equation; RB is
// treated as the only resistor between the supply and the base.
func computeOperatingPoint(p Parameters) OperatingPoint {
	var op OperatingPoint
	op.IB = (p.Vcc - p.VBE) / (p.RB + p.Beta*p.RE)
	op.IC = p.Beta * op.IB
	op.IE = op.IC + op.IB

	op.VE = op.IE * p.RE
	op.VB = p.VBE + op.VE
	op.VC = p.Vcc - op.IC*p.RC
	op.VCE = op.VC - op.VE
	return op
}

func computeACParameters(p Parameters, op OperatingPoint) ACParameters {
	gm := op.IC / ThermalVoltage
	return ACParameters{
		Gm:         gm,
		AvWithRE:   -gm * p.RC / (1 + gm*p.RE),
		AvBypassed: -gm * p.RC,
		Rin:        p.RB,
		Rout:       p.RC,
	}
}

func (m *Model) checkFinite() error {
	derived := []struct {
		name  string
		value float64
	}{
		{"ib", m.op.IB}, {"ic", m.op.IC}, {"ie", m.op.IE},
		{"vb", m.op.VB}, {"vc", m.op.VC}, {"ve", m.op.VE}, {"vce", m.op.VCE},
		{"gm", m.ac.Gm}, {"av_with_re", m.ac.AvWithRE}, {"av_bypassed", m.ac.AvBypassed},
	}
	for _, d := range derived {
		if math.IsNaN(d.value) || math.IsInf(d.value, 0) {
			return &InvalidParameterError{Field: d.name, Value: d.value, Reason: "parameters produce a non-finite result"}
		}
	}
	return nil
}

func (m *Model) Parameters() Parameters {
	return m.params
}

func (m *Model) OperatingPoint() OperatingPoint {
	return m.op
}

func (m *Model) AC() ACParameters {
	return m.ac
}
