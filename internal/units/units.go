// Package units formats circuit quantities with engineering prefixes.
package units

import (
	"fmt"
	"math"
)

// Format renders value with three decimals and the largest prefix that keeps
// the mantissa at or above one.
func Format(value float64, unit string) string {
	abs := math.Abs(value)
	switch {
	case math.IsNaN(value) || math.IsInf(value, 0):
		return fmt.Sprintf("%v %s", value, unit)
	case abs == 0:
		return fmt.Sprintf("%.3f %s", value, unit)
	case abs >= 1e6:
		return fmt.Sprintf("%.3f M%s", value/1e6, unit)
	case abs >= 1e3:
		return fmt.Sprintf("%.3f k%s", value/1e3, unit)
	case abs >= 1:
		return fmt.Sprintf("%.3f %s", value, unit)
	case abs >= 1e-3:
		return fmt.Sprintf("%.3f m%s", value*1e3, unit)
	case abs >= 1e-6:
		return fmt.Sprintf("%.3f µ%s", value*1e6, unit)
	case abs >= 1e-9:
		return fmt.Sprintf("%.3f n%s", value*1e9, unit)
	case abs >= 1e-12:
		return fmt.Sprintf("%.3f p%s", value*1e12, unit)
	default:
		return fmt.Sprintf("%.3e %s", value, unit)
	}
}

func Frequency(freq float64) string {
	switch {
	case freq >= 1e6:
		return fmt.Sprintf("%.3f MHz", freq/1e6)
	case freq >= 1e3:
		return fmt.Sprintf("%.3f kHz", freq/1e3)
	default:
		return fmt.Sprintf("%.3f Hz", freq)
	}
}

func Decibels(db float64) string {
	return fmt.Sprintf("%.2f dB", db)
}

func Phase(deg float64) string {
	return fmt.Sprintf("%.1f°", deg)
}

// Gain renders a voltage gain magnitude with its sign.
func Gain(av float64) string {
	if math.Abs(av) >= 1000 || (av != 0 && math.Abs(av) < 0.001) {
		return fmt.Sprintf("%.2e", av)
	}
	return fmt.Sprintf("%.3g", av)
}
