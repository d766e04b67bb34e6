package units

import (
	"math"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		value float64
		unit  string
		want  string
	}{
		{0, "V", "0.000 V"},
		{12, "V", "12.000 V"},
		{-14.555, "V", "-14.555 V"},
		{100e3, "Ω", "100.000 kΩ"},
		{4.7e3, "Ω", "4.700 kΩ"},
		{2.2e6, "Ω", "2.200 MΩ"},
		{0.00565, "A", "5.650 mA"},
		{5.65e-5, "A", "56.500 µA"},
		{1e-5, "F", "10.000 µF"},
		{4.7e-9, "F", "4.700 nF"},
		{22e-12, "F", "22.000 pF"},
		{1e-15, "F", "1.000e-15 F"},
		{math.Inf(1), "V", "+Inf V"},
	}
	for _, tt := range tests {
		if got := Format(tt.value, tt.unit); got != tt.want {
			t.Errorf("Format(%g, %q) = %q, want %q", tt.value, tt.unit, got, tt.want)
		}
	}
}

func TestFrequency(t *testing.T) {
	tests := []struct {
		freq float64
		want string
	}{
		{10, "10.000 Hz"},
		{0.159154943, "0.159 Hz"},
		{1000, "1.000 kHz"},
		{1e6, "1.000 MHz"},
	}
	for _, tt := range tests {
		if got := Frequency(tt.freq); got != tt.want {
			t.Errorf("Frequency(%g) = %q, want %q", tt.freq, got, tt.want)
		}
	}
}

func TestGainAndDecibels(t *testing.T) {
	if got := Gain(-4.67847075405); got != "-4.68" {
		t.Errorf("Gain = %q", got)
	}
	if got := Gain(-1021.34615385); got != "-1.02e+03" {
		t.Errorf("Gain = %q", got)
	}
	if got := Decibels(60.1834591557); got != "60.18 dB" {
		t.Errorf("Decibels = %q", got)
	}
	if got := Phase(-90); got != "-90.0°" {
		t.Errorf("Phase = %q", got)
	}
}
