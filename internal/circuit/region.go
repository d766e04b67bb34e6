package circuit

import (
	"fmt"
	"math"
)

// Region classifies the bias point for display.
type Region string

const (
	RegionActive     Region = "active"
	RegionSaturation Region = "saturation"
	RegionCutoff     Region = "cutoff"
)

// RegionMargin is the headroom VCE needs from either rail to count as active.
const RegionMargin = 2.0

// Region reports where VCE sits between the rails. Out-of-range bias points
// are classified, never rejected.
func (m *Model) Region() Region {
	switch {
	case m.op.VCE <= RegionMargin:
		return RegionSaturation
	case m.op.VCE >= m.params.Vcc-RegionMargin:
		return RegionCutoff
	default:
		return RegionActive
	}
}

// OutputSwing is the symmetric collector swing available before hitting a rail.
func (m *Model) OutputSwing() float64 {
	return math.Min(m.op.VC, m.params.Vcc-m.op.VC)
}

// Corners summarises the passband of the frequency response.
type Corners struct {
	Low       float64 `json:"low"`
	High      float64 `json:"high"`
	MidbandDB float64 `json:"midband_db"`
}

func (m *Model) Corners() Corners {
	return Corners{
		Low:       m.LowCorner(),
		High:      HighCorner,
		MidbandDB: 20 * math.Log10(math.Max(math.Abs(m.ac.AvBypassed), MagnitudeFloor)),
	}
}

// Component describes one part of the schematic with its live values.
type Component struct {
	Name string
	Role string
	Info []string
}

// Components lists the schematic parts in drawing order.
func (m *Model) Components() []Component {
	p := m.params
	return []Component{
		{Name: "Vin", Role: "AC input signal", Info: []string{
			fmt.Sprintf("amplitude %.1f mV", p.VinAmp*1e3),
			fmt.Sprintf("frequency %g Hz", p.Freq),
		}},
		{Name: "RB", Role: "base bias resistor", Info: []string{
			fmt.Sprintf("%.1f kΩ", p.RB/1e3),
			fmt.Sprintf("sets IB = %.1f µA", m.op.IB*1e6),
		}},
		{Name: "RC", Role: "collector resistor", Info: []string{
			fmt.Sprintf("%.1f kΩ", p.RC/1e3),
			"sets gain ≈ RC/RE",
		}},
		{Name: "RE", Role: "emitter resistor", Info: []string{
			fmt.Sprintf("%.1f kΩ", p.RE/1e3),
			"provides stability",
		}},
		{Name: "Q1", Role: "NPN transistor", Info: []string{
			fmt.Sprintf("β = %g", p.Beta),
			fmt.Sprintf("VBE = %g V", p.VBE),
			fmt.Sprintf("gm = %.3f S", m.ac.Gm),
		}},
		{Name: "Vcc", Role: "supply voltage", Info: []string{
			fmt.Sprintf("%g V", p.Vcc),
		}},
	}
}
