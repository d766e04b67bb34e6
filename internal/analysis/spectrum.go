package analysis

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/rubberduckies12/DigitalSignalProcessing/internal/circuit"
)

// Bin is one frequency bin of a single-sided spectrum.
type Bin struct {
	Frequency float64 `json:"frequency"`
	Amplitude float64 `json:"amplitude"`
}

// Spectrum is a single-sided amplitude spectrum, bin 0 is DC.
type Spectrum struct {
	Signal Signal `json:"signal"`
	Bins   []Bin  `json:"bins"`
}

// NewSpectrum transforms the selected waveform column. Amplitudes are scaled
// so a sinusoid of amplitude A shows up as A in its bin.
func NewSpectrum(w circuit.Waveform, which Signal) (*Spectrum, error) {
	x, err := which.column(w)
	if err != nil {
		return nil, err
	}
	n := len(x)
	if n < 2 {
		return nil, fmt.Errorf("%w: spectrum needs at least 2, got %d", ErrTooFewSamples, n)
	}
	dt := w.SampleInterval()
	if dt <= 0 {
		return nil, fmt.Errorf("%w: non-increasing sample times", ErrTooFewSamples)
	}

	coeffs := fft.FFTReal(x)
	half := n/2 + 1
	bins := make([]Bin, half)
	df := 1 / (float64(n) * dt)
	for k := 0; k < half; k++ {
		amp := cmplx.Abs(coeffs[k]) / float64(n)
		if k > 0 && !(n%2 == 0 && k == n/2) {
			amp *= 2
		}
		bins[k] = Bin{Frequency: float64(k) * df, Amplitude: amp}
	}
	return &Spectrum{Signal: which, Bins: bins}, nil
}

// Dominant returns the strongest non-DC bin.
func (s *Spectrum) Dominant() (Bin, bool) {
	if s == nil || len(s.Bins) < 2 {
		return Bin{}, false
	}
	best := s.Bins[1]
	for _, b := range s.Bins[2:] {
		if b.Amplitude > best.Amplitude {
			best = b
		}
	}
	return best, true
}

// DC returns the mean level of the signal.
func (s *Spectrum) DC() float64 {
	if s == nil || len(s.Bins) == 0 {
		return 0
	}
	return s.Bins[0].Amplitude
}

func (s *Spectrum) Frequencies() []float64 {
	out := make([]float64, len(s.Bins))
	for i, b := range s.Bins {
		out[i] = b.Frequency
	}
	return out
}

func (s *Spectrum) Amplitudes() []float64 {
	out := make([]float64, len(s.Bins))
	for i, b := range s.Bins {
		out[i] = b.Amplitude
	}
	return out
}
