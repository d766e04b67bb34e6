package analysis

import (
	"math"

	"github.com/rubberduckies12/DigitalSignalProcessing/internal/circuit"
)

// BandwidthDrop is the gain drop from the peak that marks a band edge.
const BandwidthDrop = 3.0

// Bandwidth finds the -3 dB edges relative to the peak gain of a sampled
// response, interpolating linearly in log frequency. An edge that lies outside
// the sweep is reported as the first or last swept frequency. ok is false for
// responses with fewer than two points.
func Bandwidth(r circuit.FrequencyResponse) (lo, hi float64, ok bool) {
	if len(r) < 2 {
		return 0, 0, false
	}

	peak := 0
	for i, p := range r {
		if p.GainDB > r[peak].GainDB {
			peak = i
		}
	}
	level := r[peak].GainDB - BandwidthDrop

	lo = r[0].Frequency
	for i := peak; i > 0; i-- {
		if r[i-1].GainDB < level {
			lo = crossing(r[i-1], r[i], level)
			break
		}
	}

	hi = r[len(r)-1].Frequency
	for i := peak; i < len(r)-1; i++ {
		if r[i+1].GainDB < level {
			hi = crossing(r[i], r[i+1], level)
			break
		}
	}
	return lo, hi, true
}

func crossing(a, b circuit.ResponsePoint, level float64) float64 {
	frac := (level - a.GainDB) / (b.GainDB - a.GainDB)
	if math.IsNaN(frac) || math.IsInf(frac, 0) {
		frac = 0.5
	}
	la, lb := math.Log10(a.Frequency), math.Log10(b.Frequency)
	return math.Pow(10, la+frac*(lb-la))
}
