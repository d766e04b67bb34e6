package circuit

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Sweep limits and corner constants of the frequency response.
const (
	SweepStart = 10.0
	SweepStop  = 1e6

	// HighCorner is a fixed upper pole, not derived from device capacitances.
	HighCorner = 1e6

	// MagnitudeFloor keeps the dB conversion away from log10(0).
	MagnitudeFloor = 1e-10
)

// ResponsePoint is one sample of the frequency response.
type ResponsePoint struct {
	Frequency float64 `json:"frequency"`
	GainDB    float64 `json:"gain_db"`
	PhaseDeg  float64 `json:"phase_deg"`
}

// FrequencyResponse is ordered by strictly increasing frequency.
type FrequencyResponse []ResponsePoint

// LowCorner returns the input coupling corner 1/(2π·Rin·C1).
func (m *Model) LowCorner() float64 {
	return 1 / (2 * math.Pi * m.ac.Rin * m.params.C1)
}

// FrequencyResponse samples n log-spaced frequencies in [SweepStart, SweepStop].
func (m *Model) FrequencyResponse(n int) (FrequencyResponse, error) {
	if err := checkSamples(n); err != nil {
		return nil, err
	}

	freqs := logSweep(n)
	fcLow := m.LowCorner()
	fcHigh := HighCorner
	av := math.Abs(m.ac.AvBypassed)

	resp := make(FrequencyResponse, n)
	for i, f := range freqs {
		hLow := f / math.Sqrt(f*f+fcLow*fcLow)
		hHigh := fcHigh / math.Sqrt(f*f+fcHigh*fcHigh)
		mag := av * hLow * hHigh

		resp[i] = ResponsePoint{
			Frequency: f,
			GainDB:    20 * math.Log10(math.Max(mag, MagnitudeFloor)),
			PhaseDeg:  -180 + math.Atan(f/fcLow)*180/math.Pi - math.Atan(f/fcHigh)*180/math.Pi,
		}
	}
	return resp, nil
}

func logSweep(n int) []float64 {
	freqs := make([]float64, n)
	if n == 1 {
		freqs[0] = SweepStart
		return freqs
	}
	return floats.LogSpan(freqs, SweepStart, SweepStop)
}

func (r FrequencyResponse) Frequencies() []float64 {
	out := make([]float64, len(r))
	for i, p := range r {
		out[i] = p.Frequency
	}
	return out
}

func (r FrequencyResponse) Gains() []float64 {
	out := make([]float64, len(r))
	for i, p := range r {
		out[i] = p.GainDB
	}
	return out
}

func (r FrequencyResponse) Phases() []float64 {
	out := make([]float64, len(r))
	for i, p := range r {
		out[i] = p.PhaseDeg
	}
	return out
}
