// Package session holds the mutable current parameters behind the dashboard
// and CLI. A Session keeps the last successfully evaluated model and the last
// good value of every panel, so a bad edit or a failing panel never blanks
// the rest of the display.
package session

import (
	"fmt"
	"sync"

	"github.com/go-logr/logr"

	"github.com/rubberduckies12/DigitalSignalProcessing/internal/analysis"
	"github.com/rubberduckies12/DigitalSignalProcessing/internal/circuit"
	"github.com/rubberduckies12/DigitalSignalProcessing/internal/logging"
)

// Panel names one independently rendered part of a snapshot.
type Panel string

const (
	PanelOperatingPoint Panel = "operating_point"
	PanelAC             Panel = "ac"
	PanelResponse       Panel = "response"
	PanelWaveform       Panel = "waveform"
	PanelSpectrum       Panel = "spectrum"
)

// Panels lists every panel in display order.
var Panels = []Panel{PanelOperatingPoint, PanelAC, PanelResponse, PanelWaveform, PanelSpectrum}

// Snapshot is a consistent view of the session. Parameters, OperatingPoint,
// AC and the derived scalars always belong to the same evaluation. A panel
// listed in Errors holds its last good value instead.
type Snapshot struct {
	Parameters     circuit.Parameters
	Samples        int
	OperatingPoint circuit.OperatingPoint
	AC             circuit.ACParameters
	Region         circuit.Region
	Swing          float64
	Corners        circuit.Corners
	Components     []circuit.Component

	Response circuit.FrequencyResponse
	Waveform circuit.Waveform
	Spectrum *analysis.Spectrum

	Errors map[Panel]error
}

func (s Snapshot) Err(p Panel) error {
	return s.Errors[p]
}

type Option func(*Session)

func WithLogger(log logr.Logger) Option {
	return func(s *Session) { s.log = log }
}

// WithSamples sets the initial array resolution. Invalid values surface as
// panel errors, not as a construction failure.
func WithSamples(n int) Option {
	return func(s *Session) { s.samples = n }
}

func WithCacheSize(n int) Option {
	return func(s *Session) { s.cache = newArrayCache(n) }
}

// Session serialises parameter updates. All methods are safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	log     logr.Logger
	model   *circuit.Model
	samples int
	cache   *arrayCache

	last arrays
}

// New evaluates p once and builds the initial panels. It fails if p is invalid.
func New(p circuit.Parameters, opts ...Option) (*Session, error) {
	s := &Session{
		log:     logr.Discard(),
		samples: circuit.DefaultSamples,
		cache:   newArrayCache(DefaultCacheSize),
	}
	for _, opt := range opts {
		opt(s)
	}

	m, err := circuit.Evaluate(p)
	if err != nil {
		return nil, fmt.Errorf("initial parameters: %w", err)
	}
	s.model = m
	s.snapshotLocked()
	s.log.V(logging.DEBUG).Info("session started", "samples", s.samples, "region", m.Region())
	return s, nil
}

// Update replaces the current parameters. Invalid parameters are rejected and
// the previous model stays current; the returned snapshot reflects it.
func (s *Session) Update(p circuit.Parameters) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.updateLocked(p)
	return s.snapshotLocked(), err
}

// Set changes a single named parameter of the current set. The read of the
// current set and the swap happen under one lock so concurrent edits to
// different fields all survive.
func (s *Session) Set(name string, value float64) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.model.Parameters().With(name, value)
	if err == nil {
		err = s.updateLocked(p)
	}
	return s.snapshotLocked(), err
}

func (s *Session) updateLocked(p circuit.Parameters) error {
	m, err := circuit.Evaluate(p)
	if err != nil {
		s.log.V(logging.DEBUG).Info("rejected parameters", "error", err.Error())
		return err
	}
	s.model = m
	s.log.V(logging.DEBUG).Info("parameters updated",
		"vce", m.OperatingPoint().VCE, "region", m.Region(), "av", m.AC().AvWithRE)
	return nil
}

// SetSamples changes the array resolution. An invalid n is reported on the
// array panels of every later snapshot until it is changed again.
func (s *Session) SetSamples(n int) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = n
	s.log.V(logging.DEBUG).Info("samples changed", "samples", n)
	return s.snapshotLocked()
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) Parameters() circuit.Parameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Parameters()
}

func (s *Session) Model() *circuit.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model
}

func (s *Session) snapshotLocked() Snapshot {
	m := s.model
	snap := Snapshot{
		Parameters:     m.Parameters(),
		Samples:        s.samples,
		OperatingPoint: m.OperatingPoint(),
		AC:             m.AC(),
		Region:         m.Region(),
		Swing:          m.OutputSwing(),
		Corners:        m.Corners(),
		Components:     m.Components(),
		Errors:         make(map[Panel]error),
	}

	key := cacheKey{params: m.Parameters(), samples: s.samples}
	if a, ok := s.cache.Get(key); ok {
		s.last = a
	} else {
		s.last = s.buildArrays(m, snap.Errors)
		if len(snap.Errors) == 0 {
			s.cache.Set(key, s.last)
		}
	}

	snap.Response = s.last.response
	snap.Waveform = s.last.waveform
	snap.Spectrum = s.last.spectrum
	return snap
}

// buildArrays computes each array panel on its own. A failing panel records
// its error and keeps the previous value.
func (s *Session) buildArrays(m *circuit.Model, errs map[Panel]error) arrays {
	next := s.last

	if r, err := m.FrequencyResponse(s.samples); err != nil {
		errs[PanelResponse] = err
	} else {
		next.response = r
	}

	wf, err := m.Waveforms(s.samples)
	if err != nil {
		errs[PanelWaveform] = err
		errs[PanelSpectrum] = fmt.Errorf("waveform unavailable: %w", err)
	} else {
		next.waveform = wf
		if spec, err := analysis.NewSpectrum(wf, analysis.SignalVoutTotal); err != nil {
			errs[PanelSpectrum] = err
		} else {
			next.spectrum = spec
		}
	}

	for p, err := range errs {
		s.log.V(logging.DEBUG).Info("panel failed", "panel", p, "error", err.Error())
	}
	return next
}
