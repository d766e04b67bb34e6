package analysis

import (
	"errors"
	"fmt"

	"github.com/rubberduckies12/DigitalSignalProcessing/internal/circuit"
)

var (
	ErrUnknownSignal = errors.New("analysis: unknown signal")
	ErrTooFewSamples = errors.New("analysis: too few samples")
	ErrInvalidSweep  = errors.New("analysis: invalid sweep")
)

// Signal selects one column of a waveform.
type Signal string

const (
	SignalVin       Signal = "vin"
	SignalVoutAC    Signal = "vout_ac"
	SignalVoutTotal Signal = "vout_total"
)

// Signals lists the selectable waveform columns.
var Signals = []Signal{SignalVin, SignalVoutAC, SignalVoutTotal}

func ParseSignal(s string) (Signal, error) {
	for _, sig := range Signals {
		if string(sig) == s {
			return sig, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSignal, s)
}

func (s Signal) column(w circuit.Waveform) ([]float64, error) {
	switch s {
	case SignalVin:
		return w.Vin(), nil
	case SignalVoutAC:
		return w.VoutAC(), nil
	case SignalVoutTotal:
		return w.VoutTotal(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSignal, string(s))
}
