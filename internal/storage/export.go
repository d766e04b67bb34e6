package storage

import (
	"encoding/json"
	"io"

	"github.com/rubberduckies12/DigitalSignalProcessing/internal/circuit"
)

// ExportData is the single-document JSON form of a run.
type ExportData struct {
	RunMetadata
	Response circuit.FrequencyResponse `json:"response"`
	Waveform circuit.Waveform          `json:"waveform"`
}

func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	resp, err := s.LoadResponse(runID)
	if err != nil {
		return err
	}
	wf, err := s.LoadWaveform(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{RunMetadata: *meta, Response: resp, Waveform: wf})
}
