package circuit

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Range is a closed interval of resistor values in ohms.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Default sensitivity sweep of the dashboard heatmap.
var (
	DefaultRCRange = Range{Min: 1e3, Max: 10e3}
	DefaultRERange = Range{Min: 0.5e3, Max: 3e3}
)

const DefaultSensitivityPoints = 20

// SensitivityGrid holds the approximate gain |Av| ≈ RC/RE. Rows follow RC,
// columns follow RE.
type SensitivityGrid struct {
	RC    []float64
	RE    []float64
	Gains *mat.Dense
}

// Sensitivity evaluates RC/RE over an n×n grid spanning rc and re.
func Sensitivity(rc, re Range, n int) (*SensitivityGrid, error) {
	if err := checkSamples(n); err != nil {
		return nil, err
	}
	if err := rc.validate("rc"); err != nil {
		return nil, err
	}
	if err := re.validate("re"); err != nil {
		return nil, err
	}

	rcs := span(rc, n)
	res := span(re, n)

	gains := mat.NewDense(n, n, nil)
	for i, rcv := range rcs {
		for j, rev := range res {
			gains.Set(i, j, rcv/rev)
		}
	}
	return &SensitivityGrid{RC: rcs, RE: res, Gains: gains}, nil
}

func (r Range) validate(name string) error {
	if r.Min <= 0 {
		return &InvalidParameterError{Field: name + ".min", Value: r.Min, Reason: "must be greater than zero"}
	}
	if r.Max < r.Min {
		return &InvalidParameterError{Field: name + ".max", Value: r.Max, Reason: "must not be below min"}
	}
	return nil
}

func span(r Range, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = r.Min
		return out
	}
	return floats.Span(out, r.Min, r.Max)
}
