package circuit

import (
	"fmt"
	"math"
)

// Component defaults of the reference amplifier.
const (
	DefaultVcc    = 12.0
	DefaultRB     = 100e3
	DefaultRC     = 4.7e3
	DefaultRE     = 1e3
	DefaultC1     = 10e-6
	DefaultC2     = 10e-6
	DefaultCE     = 100e-6
	DefaultBeta   = 100.0
	DefaultVBE    = 0.7
	DefaultVinAmp = 0.01
	DefaultFreq   = 1000.0

	// DefaultSamples is the sample count used for sweeps and waveforms.
	DefaultSamples = 1000
)

// Parameters holds the component values of one amplifier configuration.
type Parameters struct {
	Vcc    float64 `yaml:"vcc" json:"vcc"`
	RB     float64 `yaml:"rb" json:"rb"`
	RC     float64 `yaml:"rc" json:"rc"`
	RE     float64 `yaml:"re" json:"re"`
	C1     float64 `yaml:"c1" json:"c1"`
	C2     float64 `yaml:"c2" json:"c2"`
	CE     float64 `yaml:"ce" json:"ce"`
	Beta   float64 `yaml:"beta" json:"beta"`
	VBE    float64 `yaml:"vbe" json:"vbe"`
	VinAmp float64 `yaml:"vin_amp" json:"vin_amp"`
	Freq   float64 `yaml:"freq" json:"freq"`
}

// ParamNames lists parameter keys in display order.
var ParamNames = []string{"vcc", "rb", "rc", "re", "c1", "c2", "ce", "beta", "vbe", "vin_amp", "freq"}

func DefaultParameters() Parameters {
	return Parameters{
		Vcc:    DefaultVcc,
		RB:     DefaultRB,
		RC:     DefaultRC,
		RE:     DefaultRE,
		C1:     DefaultC1,
		C2:     DefaultC2,
		CE:     DefaultCE,
		Beta:   DefaultBeta,
		VBE:    DefaultVBE,
		VinAmp: DefaultVinAmp,
		Freq:   DefaultFreq,
	}
}

// Validate reports the first parameter that would make the bias or
// frequency equations undefined.
func (p Parameters) Validate() error {
	for _, name := range ParamNames {
		v, _ := p.Get(name)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &InvalidParameterError{Field: name, Value: v, Reason: "must be finite"}
		}
	}

	positive := []struct {
		name  string
		value float64
	}{
		{"vcc", p.Vcc},
		{"rb", p.RB},
		{"rc", p.RC},
		{"c1", p.C1},
		{"c2", p.C2},
		{"ce", p.CE},
		{"beta", p.Beta},
		{"freq", p.Freq},
	}
	for _, f := range positive {
		if f.value <= 0 {
			return &InvalidParameterError{Field: f.name, Value: f.value, Reason: "must be greater than zero"}
		}
	}

	if p.RE < 0 {
		return &InvalidParameterError{Field: "re", Value: p.RE, Reason: "must not be negative"}
	}
	if p.VBE < 0 || p.VBE >= p.Vcc {
		return &InvalidParameterError{Field: "vbe", Value: p.VBE, Reason: "must be in [0, vcc)"}
	}
	if p.VinAmp < 0 {
		return &InvalidParameterError{Field: "vin_amp", Value: p.VinAmp, Reason: "must not be negative"}
	}
	return nil
}

// Get returns the named parameter.
func (p Parameters) Get(name string) (float64, error) {
	switch name {
	case "vcc":
		return p.Vcc, nil
	case "rb":
		return p.RB, nil
	case "rc":
		return p.RC, nil
	case "re":
		return p.RE, nil
	case "c1":
		return p.C1, nil
	case "c2":
		return p.C2, nil
	case "ce":
		return p.CE, nil
	case "beta":
		return p.Beta, nil
	case "vbe":
		return p.VBE, nil
	case "vin_amp":
		return p.VinAmp, nil
	case "freq":
		return p.Freq, nil
	}
	return 0, fmt.Errorf("unknown param: %s", name)
}

// With returns a copy of p with the named parameter replaced. The result
// is not validated.
func (p Parameters) With(name string, value float64) (Parameters, error) {
	switch name {
	case "vcc":
		p.Vcc = value
	case "rb":
		p.RB = value
	case "rc":
		p.RC = value
	case "re":
		p.RE = value
	case "c1":
		p.C1 = value
	case "c2":
		p.C2 = value
	case "ce":
		p.CE = value
	case "beta":
		p.Beta = value
	case "vbe":
		p.VBE = value
	case "vin_amp":
		p.VinAmp = value
	case "freq":
		p.Freq = value
	default:
		return p, fmt.Errorf("unknown param: %s", name)
	}
	return p, nil
}

// Map returns every parameter keyed by name.
func (p Parameters) Map() map[string]float64 {
	out := make(map[string]float64, len(ParamNames))
	for _, name := range ParamNames {
		out[name], _ = p.Get(name)
	}
	return out
}
