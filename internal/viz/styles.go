package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rubberduckies12/DigitalSignalProcessing/internal/circuit"
)

// styles is the set of lipgloss styles derived from one theme.
type styles struct {
	title    lipgloss.Style
	subtle   lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	active   lipgloss.Style
	keyHint  lipgloss.Style
	key      lipgloss.Style
	errText  lipgloss.Style
	header   lipgloss.Style
	panel    lipgloss.Style
	stats    lipgloss.Style
	barHigh  lipgloss.Style
	barLow   lipgloss.Style
	regionOK lipgloss.Style
	regionNo lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		subtle:  lipgloss.NewStyle().Foreground(t.Muted),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		active:  lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		keyHint: lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		key:     lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		errText: lipgloss.NewStyle().Foreground(t.Error),
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(0, 2).
			Width(46),
		barHigh:  lipgloss.NewStyle().Foreground(t.Success),
		barLow:   lipgloss.NewStyle().Foreground(t.Muted),
		regionOK: lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		regionNo: lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
	}
}

// positionBar shows where v sits inside [lo, hi].
func (s styles) positionBar(v, lo, hi float64, width int) string {
	ratio := 0.0
	if hi > lo {
		ratio = (v - lo) / (hi - lo)
	}
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return s.barHigh.Render(strings.Repeat("█", filled)) + s.barLow.Render(strings.Repeat("░", width-filled))
}

func (s styles) region(r circuit.Region) string {
	if r == circuit.RegionActive {
		return s.regionOK.Render(strings.ToUpper(string(r)))
	}
	return s.regionNo.Render(strings.ToUpper(string(r)))
}

// box renders content in a rounded panel with the title on the first line.
func (s styles) box(title, content string, width int) string {
	return s.panel.Width(width).Render(s.title.Render(title) + "\n" + content)
}

func (s styles) hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(s.key.Render(pairs[i]) + s.keyHint.Render(" "+pairs[i+1]))
	}
	return b.String()
}

func separator(width int) string {
	if width < 8 {
		return strings.Repeat("─", width)
	}
	mid := width / 2
	return strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3)
}
