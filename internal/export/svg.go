// Package export renders amplifier results as SVG charts.
package export

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/rubberduckies12/DigitalSignalProcessing/internal/circuit"
)

// Default chart size.
var (
	Width  = 8 * vg.Inch
	Height = 6 * vg.Inch
)

var ErrEmpty = errors.New("export: nothing to plot")

var (
	gainColor  = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	phaseColor = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
	inColor    = color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}
	outColor   = color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}
)

// BodeSVG draws gain and phase against a log frequency axis, one above the
// other.
func BodeSVG(w io.Writer, r circuit.FrequencyResponse) error {
	if len(r) == 0 {
		return fmt.Errorf("%w: empty frequency response", ErrEmpty)
	}
	freqs := r.Frequencies()

	gain, err := linePlot("Frequency response", "Frequency (Hz)", "Gain (dB)", freqs, r.Gains(), gainColor)
	if err != nil {
		return err
	}
	logAxis(gain)

	phase, err := linePlot("", "Frequency (Hz)", "Phase (°)", freqs, r.Phases(), phaseColor)
	if err != nil {
		return err
	}
	logAxis(phase)

	return stack(w, gain, phase)
}

// WaveformSVG draws the input above the total output voltage, time in ms.
func WaveformSVG(w io.Writer, wf circuit.Waveform) error {
	if len(wf) == 0 {
		return fmt.Errorf("%w: empty waveform", ErrEmpty)
	}
	ms := wf.Times()
	for i := range ms {
		ms[i] *= 1e3
	}
	mv := wf.Vin()
	for i := range mv {
		mv[i] *= 1e3
	}

	in, err := linePlot("Input and output waveforms", "Time (ms)", "Vin (mV)", ms, mv, inColor)
	if err != nil {
		return err
	}
	out, err := linePlot("", "Time (ms)", "Vout (V)", ms, wf.VoutTotal(), outColor)
	if err != nil {
		return err
	}
	return stack(w, in, out)
}

// SensitivitySVG draws the RC/RE gain grid as a heat map.
func SensitivitySVG(w io.Writer, g *circuit.SensitivityGrid) error {
	if g == nil || len(g.RC) < 2 || len(g.RE) < 2 {
		return fmt.Errorf("%w: heat map needs at least a 2×2 grid", ErrEmpty)
	}

	p := plot.New()
	p.Title.Text = "Gain sensitivity |Av| ≈ RC/RE"
	p.X.Label.Text = "RE (kΩ)"
	p.Y.Label.Text = "RC (kΩ)"
	p.Add(plotter.NewHeatMap(sensitivityGrid{g}, palette.Heat(16, 1)))

	wt, err := p.WriterTo(Width, Height, "svg")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// sensitivityGrid adapts the gain matrix to plotter.GridXYZ with RE along
// columns and RC along rows.
type sensitivityGrid struct {
	g *circuit.SensitivityGrid
}

func (s sensitivityGrid) Dims() (c, r int)   { return len(s.g.RE), len(s.g.RC) }
func (s sensitivityGrid) Z(c, r int) float64 { return s.g.Gains.At(r, c) }
func (s sensitivityGrid) X(c int) float64    { return s.g.RE[c] / 1e3 }
func (s sensitivityGrid) Y(r int) float64    { return s.g.RC[r] / 1e3 }

func linePlot(title, xLabel, yLabel string, xs, ys []float64, c color.Color) (*plot.Plot, error) {
	xys := make(plotter.XYs, len(xs))
	for i := range xs {
		xys[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = c
	line.LineStyle.Width = vg.Points(1.5)

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid(), line)
	return p, nil
}

func logAxis(p *plot.Plot) {
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
}

// stack draws plots in equal rows of one SVG canvas.
func stack(w io.Writer, plots ...*plot.Plot) error {
	img := vgsvg.New(Width, Height)
	dc := draw.New(img)

	rows := make([][]*plot.Plot, len(plots))
	for i, p := range plots {
		rows[i] = []*plot.Plot{p}
	}
	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
		PadY:      vg.Millimeter * 4,
	}

	canvases := plot.Align(rows, tiles, dc)
	for i, p := range plots {
		p.Draw(canvases[i][0])
	}

	_, err := img.WriteTo(w)
	return err
}
