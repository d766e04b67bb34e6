package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rubberduckies12/DigitalSignalProcessing/internal/circuit"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Circuit != circuit.DefaultParameters() {
		t.Errorf("expected default circuit, got %+v", cfg.Circuit)
	}
	if cfg.Samples != circuit.DefaultSamples {
		t.Errorf("expected %d samples, got %d", circuit.DefaultSamples, cfg.Samples)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "amp.yaml")
	data := "circuit:\n  rc: 2200\n  freq: 440\nsamples: 256\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Circuit.RC != 2200 {
		t.Errorf("expected rc 2200, got %f", cfg.Circuit.RC)
	}
	if cfg.Circuit.Freq != 440 {
		t.Errorf("expected freq 440, got %f", cfg.Circuit.Freq)
	}
	if cfg.Circuit.Vcc != circuit.DefaultVcc {
		t.Errorf("expected default vcc, got %f", cfg.Circuit.Vcc)
	}
	if cfg.Samples != 256 {
		t.Errorf("expected 256 samples, got %d", cfg.Samples)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("circuit: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "amp.yaml")
	cfg := DefaultConfig()
	cfg.Circuit.Beta = 250
	cfg.LogLevel = "debug"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Circuit != cfg.Circuit {
		t.Errorf("circuit mismatch: got %+v, want %+v", loaded.Circuit, cfg.Circuit)
	}
	if loaded.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %s", loaded.LogLevel)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"negative rc", func(c *Config) { c.Circuit.RC = -1 }, circuit.ErrInvalidParameter},
		{"zero samples", func(c *Config) { c.Samples = 0 }, circuit.ErrInvalidArgument},
		{"zero sensitivity points", func(c *Config) { c.Sensitivity.Points = 0 }, circuit.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.target) {
				t.Errorf("Validate() = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	p, ok := GetPreset("high_gain")
	if !ok {
		t.Fatal("expected preset")
	}
	if p.RB != 470e3 {
		t.Errorf("expected rb 470k, got %f", p.RB)
	}

	if _, ok := GetPreset("nonexistent"); ok {
		t.Error("expected no preset for unknown name")
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		p, _ := GetPreset(name)
		if err := p.Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestListPresets(t *testing.T) {
	got := ListPresets()
	want := []string{"audio", "default", "high_gain", "low_supply"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestBounds(t *testing.T) {
	b := Bounds["vcc"]

	if got := b.Nudge(12, 1); got != 12.5 {
		t.Errorf("expected 12.5, got %f", got)
	}
	if got := b.Nudge(19.8, 2); got != 20 {
		t.Errorf("expected clamp to 20, got %f", got)
	}
	if got := b.Clamp(1); got != 5 {
		t.Errorf("expected clamp to 5, got %f", got)
	}

	for name := range Bounds {
		if _, err := circuit.DefaultParameters().Get(name); err != nil {
			t.Errorf("bound %s has no parameter: %v", name, err)
		}
	}

	if len(BoundedParams) != len(Bounds) {
		t.Fatalf("expected %d bounded params, got %d", len(Bounds), len(BoundedParams))
	}
	for _, name := range BoundedParams {
		if _, ok := Bounds[name]; !ok {
			t.Errorf("%s listed without a bound", name)
		}
	}
}
