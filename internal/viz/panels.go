package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/rubberduckies12/DigitalSignalProcessing/internal/analysis"
	"github.com/rubberduckies12/DigitalSignalProcessing/internal/circuit"
	"github.com/rubberduckies12/DigitalSignalProcessing/internal/session"
	"github.com/rubberduckies12/DigitalSignalProcessing/internal/units"
)

type panelKind int

const (
	panelWaveform panelKind = iota
	panelResponse
	panelSpectrum
	panelTransfer
	panelSensitivity
	panelSchematic
	numPanels
)

var panelTitles = [numPanels]string{
	"WAVEFORMS", "FREQUENCY RESPONSE", "SPECTRUM", "TRANSFER CURVE", "GAIN SENSITIVITY", "CIRCUIT",
}

// sessionPanel maps a view onto the session panel whose data it draws.
func (k panelKind) sessionPanel() (session.Panel, bool) {
	switch k {
	case panelWaveform, panelTransfer:
		return session.PanelWaveform, true
	case panelResponse:
		return session.PanelResponse, true
	case panelSpectrum:
		return session.PanelSpectrum, true
	}
	return "", false
}

// heatRamp runs from low to high gain in the 256-colour palette.
var heatRamp = []string{"17", "19", "21", "27", "33", "39", "45", "51", "49", "47", "46", "118", "190", "226", "220", "214", "208", "202", "196"}

func (d Dashboard) renderPanel(k panelKind, width int) string {
	var body string
	switch k {
	case panelWaveform:
		body = d.waveformPanel(width)
	case panelResponse:
		body = d.responsePanel(width)
	case panelSpectrum:
		body = d.spectrumPanel(width)
	case panelTransfer:
		body = d.transferPanel(width)
	case panelSensitivity:
		body = d.sensitivityPanel()
	case panelSchematic:
		body = d.schematicPanel()
	}

	if p, ok := k.sessionPanel(); ok {
		if err := d.snap.Err(p); err != nil {
			body = d.st.errText.Render("⚠ "+err.Error()) + "\n" + d.st.subtle.Render("showing last good data") + "\n" + body
		}
	}
	return d.st.box(panelTitles[k], body, width+4)
}

func (d Dashboard) waveformPanel(width int) string {
	wf := d.snap.Waveform
	if len(wf) < 2 {
		return d.st.subtle.Render("not enough samples to plot")
	}

	mv := wf.Vin()
	for i := range mv {
		mv[i] *= 1e3
	}
	in := asciigraph.Plot(mv,
		asciigraph.Height(5), asciigraph.Width(width-10), asciigraph.Precision(2),
		asciigraph.SeriesColors(asciigraph.Green), asciigraph.Caption("Vin (mV)"))
	out := asciigraph.Plot(wf.VoutTotal(),
		asciigraph.Height(8), asciigraph.Width(width-10), asciigraph.Precision(2),
		asciigraph.SeriesColors(asciigraph.DarkOrange),
		asciigraph.Caption(fmt.Sprintf("Vout total (V), Av = %s", units.Gain(d.snap.AC.AvBypassed))))

	measured := ""
	if times, err := analysis.Crossings(wf, analysis.SignalVin, 0); err == nil {
		if f, ok := analysis.MeasuredFrequency(times); ok {
			measured = "\n" + d.st.subtle.Render("measured "+units.Frequency(f)+" over "+fmt.Sprint(circuit.Periods)+" periods")
		}
	}
	return in + "\n\n" + out + measured
}

func (d Dashboard) responsePanel(width int) string {
	r := d.snap.Response
	if len(r) < 2 {
		return d.st.subtle.Render("not enough samples to plot")
	}

	gain := asciigraph.Plot(r.Gains(),
		asciigraph.Height(7), asciigraph.Width(width-10), asciigraph.Precision(1),
		asciigraph.SeriesColors(asciigraph.Cyan), asciigraph.Caption("Gain (dB), 10 Hz to 1 MHz log"))
	phase := asciigraph.Plot(r.Phases(),
		asciigraph.Height(5), asciigraph.Width(width-10), asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.IndianRed), asciigraph.Caption("Phase (°)"))

	c := d.snap.Corners
	info := fmt.Sprintf("fc low %s   fc high %s   midband %s",
		units.Frequency(c.Low), units.Frequency(c.High), units.Decibels(c.MidbandDB))
	if lo, hi, ok := analysis.Bandwidth(r); ok {
		info += fmt.Sprintf("\n-3 dB band in sweep %s to %s", units.Frequency(lo), units.Frequency(hi))
	}
	return gain + "\n\n" + phase + "\n" + d.st.subtle.Render(info)
}

// spectrumBins limits the plotted spectrum to the low harmonics.
const spectrumBins = 60

func (d Dashboard) spectrumPanel(width int) string {
	s := d.snap.Spectrum
	if s == nil || len(s.Bins) < 3 {
		return d.st.subtle.Render("no spectrum available")
	}

	amps := s.Amplitudes()[1:]
	if len(amps) > spectrumBins {
		amps = amps[:spectrumBins]
	}
	chart := asciigraph.Plot(amps,
		asciigraph.Height(10), asciigraph.Width(width-10), asciigraph.Precision(2),
		asciigraph.SeriesColors(asciigraph.Yellow),
		asciigraph.Caption(fmt.Sprintf("|Vout| (V) per bin, %s per bin", units.Frequency(s.Bins[1].Frequency))))

	info := fmt.Sprintf("DC %s", units.Format(s.DC(), "V"))
	if b, ok := s.Dominant(); ok {
		info += fmt.Sprintf("   peak %s at %s", units.Format(b.Amplitude, "V"), units.Frequency(b.Frequency))
	}
	return chart + "\n" + d.st.subtle.Render(info)
}

func (d Dashboard) transferPanel(width int) string {
	wf := d.snap.Waveform
	if len(wf) == 0 {
		return d.st.subtle.Render("no waveform available")
	}
	plot := analysis.PlotASCII(analysis.TransferCurve(wf), width, 14)
	return plot + d.st.subtle.Render(fmt.Sprintf("x: Vin  y: Vout total  slope %s", units.Gain(d.snap.AC.AvBypassed)))
}

func (d Dashboard) sensitivityPanel() string {
	if d.sensErr != nil {
		return d.st.errText.Render("⚠ " + d.sensErr.Error())
	}
	g := d.sens
	if g == nil {
		return d.st.subtle.Render("no sensitivity grid")
	}

	rows, cols := g.Gains.Dims()
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := g.Gains.At(i, j)
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}

	markRow := nearest(g.RC, d.snap.Parameters.RC)
	markCol := nearest(g.RE, d.snap.Parameters.RE)
	marker := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))

	var b strings.Builder
	for i := rows - 1; i >= 0; i-- {
		b.WriteString(d.st.subtle.Render(fmt.Sprintf("%6.1fk ", g.RC[i]/1e3)))
		for j := 0; j < cols; j++ {
			if i == markRow && j == markCol {
				b.WriteString(marker.Render("◆◆"))
				continue
			}
			norm := 0.0
			if hi > lo {
				norm = (g.Gains.At(i, j) - lo) / (hi - lo)
			}
			c := heatRamp[int(norm*float64(len(heatRamp)-1))]
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("██"))
		}
		b.WriteString("\n")
	}
	b.WriteString(d.st.subtle.Render(fmt.Sprintf("        RE %s to %s, rows RC", units.Format(g.RE[0], "Ω"), units.Format(g.RE[len(g.RE)-1], "Ω"))))
	b.WriteString("\n" + d.st.subtle.Render(fmt.Sprintf("|Av| ≈ RC/RE from %.2f to %.2f, ◆ current", lo, hi)))
	return b.String()
}

// nearest returns the index of the grid value closest to v, or -1 when v
// lies outside the grid.
func nearest(grid []float64, v float64) int {
	if len(grid) == 0 || v < grid[0] || v > grid[len(grid)-1] {
		return -1
	}
	best := 0
	for i, g := range grid {
		if math.Abs(g-v) < math.Abs(grid[best]-v) {
			best = i
		}
	}
	return best
}

func (d Dashboard) schematicPanel() string {
	var b strings.Builder
	b.WriteString(drawSchematic(d.snap.Parameters, d.snap.OperatingPoint).String())
	b.WriteString("\n")
	for _, c := range d.snap.Components {
		b.WriteString(d.st.active.Render(fmt.Sprintf("%-4s", c.Name)) + d.st.subtle.Render(c.Role))
		if len(c.Info) > 0 {
			b.WriteString(d.st.subtle.Render(": ") + d.st.value.Render(strings.Join(c.Info, ", ")))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
