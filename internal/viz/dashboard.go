package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"

	"github.com/rubberduckies12/DigitalSignalProcessing/internal/circuit"
	"github.com/rubberduckies12/DigitalSignalProcessing/internal/config"
	"github.com/rubberduckies12/DigitalSignalProcessing/internal/logging"
	"github.com/rubberduckies12/DigitalSignalProcessing/internal/session"
	"github.com/rubberduckies12/DigitalSignalProcessing/internal/units"
)

// Resolution limits for the [ and ] keys.
const (
	minSamples = 16
	maxSamples = 8192
)

// Options configure a Dashboard.
type Options struct {
	Sensitivity config.SensitivityConfig
	Theme       string
	Log         logr.Logger
}

// Dashboard is the Bubble Tea model of the interactive amplifier view.
type Dashboard struct {
	sess *session.Session
	snap session.Snapshot
	log  logr.Logger

	// lastErr is the most recent rejected edit; the session keeps the
	// previous parameters when it is set.
	lastErr error

	base      circuit.Parameters
	presets   []string
	presetIdx int

	cursor  int
	editing bool
	editBuf string

	panel    panelKind
	theme    int
	st       styles
	showHelp bool

	sens    *circuit.SensitivityGrid
	sensErr error

	width, height int
}

func NewDashboard(sess *session.Session, opts Options) Dashboard {
	log := opts.Log
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	d := Dashboard{
		sess:      sess,
		snap:      sess.Snapshot(),
		log:       log,
		base:      sess.Parameters(),
		presets:   config.ListPresets(),
		presetIdx: -1,
		theme:     themeIndex(opts.Theme),
		width:     120,
		height:    40,
	}
	d.st = newStyles(Themes[d.theme])

	sc := opts.Sensitivity
	if sc.Points == 0 {
		sc = config.SensitivityConfig{RC: circuit.DefaultRCRange, RE: circuit.DefaultRERange, Points: circuit.DefaultSensitivityPoints}
	}
	d.sens, d.sensErr = circuit.Sensitivity(sc.RC, sc.RE, sc.Points)
	return d
}

func (d Dashboard) Init() tea.Cmd { return nil }

func (d Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if d.editing {
			return d.editKey(msg), nil
		}
		return d.handleKey(msg)
	case tea.WindowSizeMsg:
		d.width, d.height = msg.Width, msg.Height
	}
	return d, nil
}

func (d Dashboard) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return d, tea.Quit
	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}
	case "down", "j":
		if d.cursor < len(config.BoundedParams)-1 {
			d.cursor++
		}
	case "left", "h":
		d = d.nudge(-1)
	case "right", "l":
		d = d.nudge(1)
	case "enter", " ":
		v, _ := d.snap.Parameters.Get(d.selected())
		d.editing, d.editBuf = true, strconv.FormatFloat(v, 'g', -1, 64)
	case "r":
		d = d.apply(d.base)
	case "p":
		d.presetIdx = (d.presetIdx + 1) % len(d.presets)
		p, _ := config.GetPreset(d.presets[d.presetIdx])
		d.base = p
		d = d.apply(p)
	case "tab":
		d.panel = (d.panel + 1) % numPanels
	case "shift+tab":
		d.panel = (d.panel + numPanels - 1) % numPanels
	case "[":
		d = d.resample(d.snap.Samples / 2)
	case "]":
		d = d.resample(d.snap.Samples * 2)
	case "t":
		d.theme = (d.theme + 1) % len(Themes)
		d.st = newStyles(Themes[d.theme])
	case "?":
		d.showHelp = !d.showHelp
	}
	return d, nil
}

func (d Dashboard) editKey(msg tea.KeyMsg) Dashboard {
	switch msg.String() {
	case "enter":
		v, err := strconv.ParseFloat(d.editBuf, 64)
		d.editing, d.editBuf = false, ""
		if err != nil {
			d.lastErr = fmt.Errorf("%s: not a number", d.selected())
			return d
		}
		return d.set(d.selected(), v)
	case "esc":
		d.editing, d.editBuf = false, ""
	case "backspace":
		if len(d.editBuf) > 0 {
			d.editBuf = d.editBuf[:len(d.editBuf)-1]
		}
	default:
		if s := msg.String(); len(s) == 1 && strings.ContainsAny(s, "0123456789.-+eE") {
			d.editBuf += s
		}
	}
	return d
}

func (d Dashboard) selected() string {
	return config.BoundedParams[d.cursor]
}

// nudge steps the selected parameter and clamps it to its bound.
func (d Dashboard) nudge(steps int) Dashboard {
	name := d.selected()
	v, _ := d.snap.Parameters.Get(name)
	return d.set(name, config.Bounds[name].Nudge(v, steps))
}

func (d Dashboard) set(name string, v float64) Dashboard {
	d.snap, d.lastErr = d.sess.Set(name, v)
	if d.lastErr != nil {
		d.log.V(logging.DEBUG).Info("edit rejected", "param", name, "value", v, "error", d.lastErr.Error())
	}
	return d
}

func (d Dashboard) apply(p circuit.Parameters) Dashboard {
	d.snap, d.lastErr = d.sess.Update(p)
	return d
}

func (d Dashboard) resample(n int) Dashboard {
	if n < minSamples {
		n = minSamples
	}
	if n > maxSamples {
		n = maxSamples
	}
	d.snap = d.sess.SetSamples(n)
	return d
}

func (d Dashboard) View() string {
	graphWidth := d.width - 60
	if graphWidth < 30 {
		graphWidth = 30
	}

	main := d.renderPanel(d.panel, graphWidth)
	view := lipgloss.JoinHorizontal(lipgloss.Top, main, d.st.stats.Render(d.statsView()))
	if d.showHelp {
		return d.helpView() + "\n\n" + view
	}
	return view
}

func (d Dashboard) statsView() string {
	var s strings.Builder
	snap := d.snap

	s.WriteString(d.st.header.Render("COMMON-EMITTER AMPLIFIER") + "\n")
	if d.presetIdx >= 0 {
		s.WriteString(d.st.subtle.Render("preset "+d.presets[d.presetIdx]) + "\n")
	}
	s.WriteString("\n")

	row := func(label, value string) {
		s.WriteString(d.st.label.Render(label) + d.st.value.Render(value) + "\n")
	}
	op := snap.OperatingPoint
	row("Region", d.st.region(snap.Region))
	row("IB", units.Format(op.IB, "A"))
	row("IC", units.Format(op.IC, "A"))
	row("VC", units.Format(op.VC, "V"))
	row("VE", units.Format(op.VE, "V"))
	row("VCE", units.Format(op.VCE, "V"))
	row("Swing", "±"+units.Format(snap.Swing, "V"))
	s.WriteString("\n")
	row("gm", units.Format(snap.AC.Gm, "S"))
	row("Av (RE)", units.Gain(snap.AC.AvWithRE))
	row("Av (bypass)", units.Gain(snap.AC.AvBypassed))
	row("Rin", units.Format(snap.AC.Rin, "Ω"))
	row("Rout", units.Format(snap.AC.Rout, "Ω"))
	row("Samples", strconv.Itoa(snap.Samples))

	s.WriteString("\n" + d.st.title.Render("PARAMETERS") + "\n")
	for i, name := range config.BoundedParams {
		b := config.Bounds[name]
		v, _ := snap.Parameters.Get(name)
		val := units.Format(v, paramUnit(name))
		if d.editing && i == d.cursor {
			val = d.editBuf + "_"
		}
		line := fmt.Sprintf("%-8s %s %s", name, d.st.positionBar(v, b.Min, b.Max, 10), val)
		if i == d.cursor {
			s.WriteString(d.st.active.Render("▸ ") + line + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}

	if d.lastErr != nil {
		s.WriteString("\n" + d.st.errText.Render("⚠ "+d.lastErr.Error()) + "\n")
		s.WriteString(d.st.subtle.Render("keeping last good values") + "\n")
	}

	s.WriteString("\n" + d.st.subtle.Render(separator(40)) + "\n")
	s.WriteString(d.st.hints("j/k", "select", "h/l", "adjust", "enter", "edit") + "\n")
	s.WriteString(d.st.hints("tab", "panel", "p", "preset", "r", "reset") + "\n")
	s.WriteString(d.st.hints("[ ]", "samples", "t", "theme", "?", "help", "q", "quit"))
	return s.String()
}

func paramUnit(name string) string {
	switch name {
	case "vcc", "vbe", "vin_amp":
		return "V"
	case "rb", "rc", "re":
		return "Ω"
	case "c1", "c2", "ce":
		return "F"
	case "freq":
		return "Hz"
	}
	return ""
}

func (d Dashboard) helpView() string {
	return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  j/k      - Select parameter         ║
║  h/l      - Step parameter           ║
║  Enter    - Type a value             ║
║  Esc      - Cancel typing            ║
║  Tab      - Next panel               ║
║  P        - Cycle presets            ║
║  R        - Reset to preset          ║
║  [ ]      - Halve/double samples     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`
}

// Run starts the dashboard on the alternate screen and blocks until it exits.
func Run(d Dashboard) error {
	_, err := tea.NewProgram(d, tea.WithAltScreen()).Run()
	return err
}
