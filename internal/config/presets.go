package config

import (
	"sort"

	"github.com/rubberduckies12/DigitalSignalProcessing/internal/circuit"
)

var Presets = map[string]circuit.Parameters{
	"default": circuit.DefaultParameters(),
	"high_gain": {
		Vcc: 15, RB: 470e3, RC: 2.2e3, RE: 470,
		C1: 10e-6, C2: 10e-6, CE: 100e-6,
		Beta: 150, VBE: 0.7, VinAmp: 0.005, Freq: 1000,
	},
	"low_supply": {
		Vcc: 5, RB: 220e3, RC: 1e3, RE: 220,
		C1: 22e-6, C2: 22e-6, CE: 220e-6,
		Beta: 100, VBE: 0.65, VinAmp: 0.01, Freq: 1000,
	},
	"audio": {
		Vcc: 12, RB: 330e3, RC: 3.3e3, RE: 680,
		C1: 1e-6, C2: 1e-6, CE: 47e-6,
		Beta: 200, VBE: 0.7, VinAmp: 0.02, Freq: 440,
	},
}

func GetPreset(name string) (circuit.Parameters, bool) {
	p, ok := Presets[name]
	return p, ok
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
