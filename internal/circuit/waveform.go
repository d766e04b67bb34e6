package circuit

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Periods is the number of input signal periods covered by Waveforms.
const Periods = 5

// WaveformSample is one time step of the input and output signals.
type WaveformSample struct {
	Time      float64 `json:"time"`
	Vin       float64 `json:"vin"`
	VoutAC    float64 `json:"vout_ac"`
	VoutTotal float64 `json:"vout_total"`
}

// Waveform is ordered by time.
type Waveform []WaveformSample

// Waveforms samples n points over [0, Periods/freq]. The output is the
// linear small-signal response superimposed on VC; no clipping is modelled.
func (m *Model) Waveforms(n int) (Waveform, error) {
	if err := checkSamples(n); err != nil {
		return nil, err
	}

	times := make([]float64, n)
	if n > 1 {
		floats.Span(times, 0, Periods/m.params.Freq)
	}

	// Phase follows the sample index, not freq·t, so it stays finite for any
	// finite freq.
	wf := make(Waveform, n)
	for i, t := range times {
		var phase float64
		if n > 1 {
			phase = 2 * math.Pi * Periods * float64(i) / float64(n-1)
		}
		vin := m.params.VinAmp * math.Sin(phase)
		vout := m.ac.AvBypassed * vin
		wf[i] = WaveformSample{
			Time:      t,
			Vin:       vin,
			VoutAC:    vout,
			VoutTotal: m.op.VC + vout,
		}
	}
	return wf, nil
}

// SampleInterval returns the spacing between consecutive samples, or zero
// for fewer than two samples.
func (w Waveform) SampleInterval() float64 {
	if len(w) < 2 {
		return 0
	}
	return w[1].Time - w[0].Time
}

func (w Waveform) Times() []float64 {
	out := make([]float64, len(w))
	for i, s := range w {
		out[i] = s.Time
	}
	return out
}

func (w Waveform) Vin() []float64 {
	out := make([]float64, len(w))
	for i, s := range w {
		out[i] = s.Vin
	}
	return out
}

func (w Waveform) VoutAC() []float64 {
	out := make([]float64, len(w))
	for i, s := range w {
		out[i] = s.VoutAC
	}
	return out
}

func (w Waveform) VoutTotal() []float64 {
	out := make([]float64, len(w))
	for i, s := range w {
		out[i] = s.VoutTotal
	}
	return out
}
