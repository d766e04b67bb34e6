package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rubberduckies12/DigitalSignalProcessing/internal/circuit"
)

func model(t *testing.T) *circuit.Model {
	t.Helper()
	m, err := circuit.Evaluate(circuit.DefaultParameters())
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	return m
}

func assertSVG(t *testing.T, buf *bytes.Buffer, texts ...string) {
	t.Helper()
	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Fatalf("output is not svg: %.80q", out)
	}
	for _, s := range texts {
		if !strings.Contains(out, s) {
			t.Errorf("svg missing %q", s)
		}
	}
}

func TestBodeSVG(t *testing.T) {
	r, err := model(t).FrequencyResponse(200)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := BodeSVG(&buf, r); err != nil {
		t.Fatalf("bode: %v", err)
	}
	assertSVG(t, &buf, "Frequency response", "Gain (dB)")
}

func TestWaveformSVG(t *testing.T) {
	wf, err := model(t).Waveforms(200)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WaveformSVG(&buf, wf); err != nil {
		t.Fatalf("waveform: %v", err)
	}
	assertSVG(t, &buf, "Time (ms)", "Vout (V)")
}

func TestSensitivitySVG(t *testing.T) {
	g, err := circuit.Sensitivity(circuit.DefaultRCRange, circuit.DefaultRERange, 5)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := SensitivitySVG(&buf, g); err != nil {
		t.Fatalf("sensitivity: %v", err)
	}
	assertSVG(t, &buf, "Gain sensitivity")
}

func TestEmptyInputs(t *testing.T) {
	var buf bytes.Buffer
	if err := BodeSVG(&buf, nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("bode: expected ErrEmpty, got %v", err)
	}
	if err := WaveformSVG(&buf, nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("waveform: expected ErrEmpty, got %v", err)
	}

	g, err := circuit.Sensitivity(circuit.DefaultRCRange, circuit.DefaultRERange, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := SensitivitySVG(&buf, g); !errors.Is(err, ErrEmpty) {
		t.Errorf("sensitivity: expected ErrEmpty, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be written on error, got %d bytes", buf.Len())
	}
}
