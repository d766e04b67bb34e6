package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/rubberduckies12/DigitalSignalProcessing/internal/circuit"
)

// SweepPoint records the model state for one value of the swept parameter.
// Err is set when that value does not evaluate; the sweep carries on.
type SweepPoint struct {
	Value    float64        `json:"value"`
	VCE      float64        `json:"vce"`
	IC       float64        `json:"ic"`
	AvWithRE float64        `json:"av_with_re"`
	Region   circuit.Region `json:"region"`
	Err      error          `json:"-"`
}

// SweepParameter evaluates base with the named parameter stepped linearly
// over r. base itself is left untouched.
func SweepParameter(base circuit.Parameters, name string, r circuit.Range, steps int) ([]SweepPoint, error) {
	if steps < 2 {
		return nil, fmt.Errorf("%w: need at least 2 steps, got %d", ErrInvalidSweep, steps)
	}
	if r.Max < r.Min {
		return nil, fmt.Errorf("%w: max %g below min %g", ErrInvalidSweep, r.Max, r.Min)
	}
	if _, err := base.Get(name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSweep, err)
	}

	values := floats.Span(make([]float64, steps), r.Min, r.Max)
	results := make([]SweepPoint, 0, steps)
	for _, v := range values {
		pt := SweepPoint{Value: v}
		p, err := base.With(name, v)
		if err == nil {
			var m *circuit.Model
			if m, err = circuit.Evaluate(p); err == nil {
				op := m.OperatingPoint()
				pt.VCE = op.VCE
				pt.IC = op.IC
				pt.AvWithRE = m.AC().AvWithRE
				pt.Region = m.Region()
			}
		}
		pt.Err = err
		results = append(results, pt)
	}
	return results, nil
}
