// Package storage persists evaluated amplifier runs on disk. Each run lives
// in its own directory holding metadata.json, response.csv and waveform.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/go-logr/logr"

	"github.com/rubberduckies12/DigitalSignalProcessing/internal/circuit"
	"github.com/rubberduckies12/DigitalSignalProcessing/internal/logging"
)

const (
	metadataFile = "metadata.json"
	responseFile = "response.csv"
	waveformFile = "waveform.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

// Kind selects one of the stored arrays.
type Kind string

const (
	KindResponse Kind = "response"
	KindWaveform Kind = "waveform"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindResponse, KindWaveform:
		return Kind(s), nil
	}
	return "", fmt.Errorf("storage: unknown kind %q", s)
}

func (k Kind) file() string {
	if k == KindWaveform {
		return waveformFile
	}
	return responseFile
}

type Store struct {
	baseDir string
	log     logr.Logger
	now     func() time.Time
	create  func(name string) (*os.File, error)
}

type Option func(*Store)

func WithLogger(log logr.Logger) Option {
	return func(s *Store) { s.log = log }
}

func New(baseDir string, opts ...Option) *Store {
	s := &Store{baseDir: baseDir, log: logr.Discard(), now: time.Now, create: os.Create}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID             string                 `json:"id"`
	Timestamp      time.Time              `json:"timestamp"`
	Samples        int                    `json:"samples"`
	Parameters     circuit.Parameters     `json:"parameters"`
	OperatingPoint circuit.OperatingPoint `json:"operating_point"`
	AC             circuit.ACParameters   `json:"ac"`
	Region         circuit.Region         `json:"region"`
	Swing          float64                `json:"swing"`
	Corners        circuit.Corners        `json:"corners"`
}

// Save samples m at the given resolution and writes a new run.
func (s *Store) Save(m *circuit.Model, samples int) (string, error) {
	resp, err := m.FrequencyResponse(samples)
	if err != nil {
		return "", err
	}
	wf, err := m.Waveforms(samples)
	if err != nil {
		return "", err
	}

	ts := s.now()
	runID, runDir, err := s.createRunDir(ts)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:             runID,
		Timestamp:      ts,
		Samples:        samples,
		Parameters:     m.Parameters(),
		OperatingPoint: m.OperatingPoint(),
		AC:             m.AC(),
		Region:         m.Region(),
		Swing:          m.OutputSwing(),
		Corners:        m.Corners(),
	}
	if err := s.writeRun(runDir, meta, resp, wf); err != nil {
		if rmErr := os.RemoveAll(runDir); rmErr != nil {
			s.log.Error(rmErr, "remove incomplete run", "dir", runDir)
		}
		return "", err
	}

	s.log.V(logging.DEBUG).Info("run saved", "id", runID, "dir", runDir, "samples", samples)
	return runID, nil
}

// writeRun writes the arrays before the metadata; List only sees runs whose
// metadata exists.
func (s *Store) writeRun(runDir string, meta RunMetadata, resp circuit.FrequencyResponse, wf circuit.Waveform) error {
	respRows := make([][]float64, len(resp))
	for i, p := range resp {
		respRows[i] = []float64{p.Frequency, p.GainDB, p.PhaseDeg}
	}
	if err := s.writeCSV(filepath.Join(runDir, responseFile), responseHeader, respRows); err != nil {
		return err
	}

	wfRows := make([][]float64, len(wf))
	for i, w := range wf {
		wfRows[i] = []float64{w.Time, w.Vin, w.VoutAC, w.VoutTotal}
	}
	if err := s.writeCSV(filepath.Join(runDir, waveformFile), waveformHeader, wfRows); err != nil {
		return err
	}

	return s.writeJSON(filepath.Join(runDir, metadataFile), meta)
}

var (
	responseHeader = []string{"frequency", "gain_db", "phase_deg"}
	waveformHeader = []string{"time", "vin", "vout_ac", "vout_total"}
)

// createRunDir claims a fresh cea_<unix-nanos> directory, stepping the id
// forward on collision.
func (s *Store) createRunDir(ts time.Time) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	nanos := ts.UnixNano()
	for {
		runID := fmt.Sprintf("cea_%d", nanos)
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", err
		}
		nanos++
	}
}

func (s *Store) writeJSON(path string, v any) error {
	f, err := s.create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *Store) writeCSV(path string, header []string, rows [][]float64) error {
	f, err := s.create(path)
	if err != nil {
		return err
	}
	if err := encodeCSV(f, header, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func encodeCSV(out io.Writer, header []string, rows [][]float64) error {
	w := csv.NewWriter(out)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			s.log.V(logging.DEBUG).Info("skipping run", "dir", entry.Name(), "error", err.Error())
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

// Latest returns the most recent run.
func (s *Store) Latest() (*RunMetadata, error) {
	runs, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("%w: no runs in %s", ErrRunNotFound, s.baseDir)
	}
	return &runs[len(runs)-1], nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(s.path(runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse %s metadata: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadResponse(runID string) (circuit.FrequencyResponse, error) {
	rows, err := s.readCSV(runID, KindResponse, len(responseHeader))
	if err != nil {
		return nil, err
	}
	resp := make(circuit.FrequencyResponse, len(rows))
	for i, r := range rows {
		resp[i] = circuit.ResponsePoint{Frequency: r[0], GainDB: r[1], PhaseDeg: r[2]}
	}
	return resp, nil
}

func (s *Store) LoadWaveform(runID string) (circuit.Waveform, error) {
	rows, err := s.readCSV(runID, KindWaveform, len(waveformHeader))
	if err != nil {
		return nil, err
	}
	wf := make(circuit.Waveform, len(rows))
	for i, r := range rows {
		wf[i] = circuit.WaveformSample{Time: r[0], Vin: r[1], VoutAC: r[2], VoutTotal: r[3]}
	}
	return wf, nil
}

func (s *Store) readCSV(runID string, kind Kind, cols int) ([][]float64, error) {
	f, err := s.open(runID, kind)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = cols
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", runID, kind, err)
	}
	if len(records) < 2 {
		return [][]float64{}, nil
	}

	rows := make([][]float64, 0, len(records)-1)
	for i, rec := range records[1:] {
		row := make([]float64, cols)
		for j, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("read %s %s row %d: %w", runID, kind, i+1, err)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *Store) open(runID string, kind Kind) (*os.File, error) {
	f, err := os.Open(s.path(runID, kind.file()))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	return f, nil
}

func (s *Store) path(runID, name string) string {
	return filepath.Join(s.baseDir, filepath.Base(runID), name)
}

// ExportCSV copies the stored array of a run to w unchanged.
func (s *Store) ExportCSV(w io.Writer, runID string, kind Kind) error {
	f, err := s.open(runID, kind)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}
