package config

import "math"

// Bound is the adjustable range of one parameter in the dashboard.
type Bound struct {
	Min, Max, Step float64
}

// Bounds mirror the slider ranges of the parameter panel, in SI units.
var Bounds = map[string]Bound{
	"vcc":     {Min: 5, Max: 20, Step: 0.5},
	"rb":      {Min: 10e3, Max: 500e3, Step: 10e3},
	"rc":      {Min: 1e3, Max: 10e3, Step: 100},
	"re":      {Min: 100, Max: 5e3, Step: 100},
	"vin_amp": {Min: 1e-3, Max: 50e-3, Step: 1e-3},
	"freq":    {Min: 100, Max: 10e3, Step: 100},
}

// BoundedParams lists the adjustable parameters in panel order.
var BoundedParams = []string{"vcc", "rb", "rc", "re", "vin_amp", "freq"}

// Clamp limits v to the bound.
func (b Bound) Clamp(v float64) float64 {
	return math.Max(b.Min, math.Min(b.Max, v))
}

// Nudge moves v by steps increments and clamps the result.
func (b Bound) Nudge(v float64, steps int) float64 {
	return b.Clamp(v + float64(steps)*b.Step)
}
