package analysis

import (
	"math"
	"strings"

	"github.com/rubberduckies12/DigitalSignalProcessing/internal/circuit"
)

// Point is a pair of plotted values.
type Point struct {
	X, Y float64
}

// TransferCurve pairs input against output voltage for every sample. For the
// linear model the curve is a straight line through (0, VC) with slope Av.
func TransferCurve(w circuit.Waveform) []Point {
	pts := make([]Point, len(w))
	for i, s := range w {
		pts[i] = Point{X: s.Vin, Y: s.VoutTotal}
	}
	return pts
}

// PlotASCII renders points on a width×height rune canvas with 10% padding
// and draws the zero axes when they fall inside the view.
func PlotASCII(points []Point, width, height int) string {
	if len(points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// Crossings returns the interpolated times at which the selected signal rises
// through threshold.
func Crossings(w circuit.Waveform, which Signal, threshold float64) ([]float64, error) {
	x, err := which.column(w)
	if err != nil {
		return nil, err
	}

	var times []float64
	for i := 1; i < len(x); i++ {
		prev, curr := x[i-1], x[i]
		if prev < threshold && curr >= threshold {
			frac := (threshold - prev) / (curr - prev)
			if math.IsNaN(frac) || math.IsInf(frac, 0) {
				frac = 0.5
			}
			t0, t1 := w[i-1].Time, w[i].Time
			times = append(times, t0+frac*(t1-t0))
		}
	}
	return times, nil
}

// MeasuredFrequency estimates the signal frequency from the mean spacing of
// its crossings. ok is false when fewer than two crossings exist.
func MeasuredFrequency(crossings []float64) (float64, bool) {
	if len(crossings) < 2 {
		return 0, false
	}
	span := crossings[len(crossings)-1] - crossings[0]
	if span <= 0 {
		return 0, false
	}
	return float64(len(crossings)-1) / span, true
}
