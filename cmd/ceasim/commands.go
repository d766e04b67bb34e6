package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/rubberduckies12/DigitalSignalProcessing/internal/analysis"
	"github.com/rubberduckies12/DigitalSignalProcessing/internal/circuit"
	"github.com/rubberduckies12/DigitalSignalProcessing/internal/config"
	"github.com/rubberduckies12/DigitalSignalProcessing/internal/export"
	"github.com/rubberduckies12/DigitalSignalProcessing/internal/session"
	"github.com/rubberduckies12/DigitalSignalProcessing/internal/storage"
	"github.com/rubberduckies12/DigitalSignalProcessing/internal/units"
	"github.com/rubberduckies12/DigitalSignalProcessing/internal/viz"
)

const (
	graphHeight = 10
	graphWidth  = 80
)

func (a *app) runDashboard(cmd *cobra.Command, args []string) error {
	sess, err := session.New(a.cfg.Circuit,
		session.WithLogger(a.log),
		session.WithSamples(a.cfg.Samples))
	if err != nil {
		return err
	}
	return viz.Run(viz.NewDashboard(sess, viz.Options{
		Sensitivity: a.cfg.Sensitivity,
		Log:         a.log,
	}))
}

func (a *app) evalCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "print operating point and AC parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.model()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, evalSummary(m))
			}
			return printEval(out, m)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

type summary struct {
	Parameters     circuit.Parameters     `json:"parameters"`
	OperatingPoint circuit.OperatingPoint `json:"operating_point"`
	AC             circuit.ACParameters   `json:"ac"`
	Region         circuit.Region         `json:"region"`
	Swing          float64                `json:"swing"`
	Corners        circuit.Corners        `json:"corners"`
}

func evalSummary(m *circuit.Model) summary {
	return summary{
		Parameters:     m.Parameters(),
		OperatingPoint: m.OperatingPoint(),
		AC:             m.AC(),
		Region:         m.Region(),
		Swing:          m.OutputSwing(),
		Corners:        m.Corners(),
	}
}

func printEval(out io.Writer, m *circuit.Model) error {
	op, ac, c := m.OperatingPoint(), m.AC(), m.Corners()

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DC OPERATING POINT\t")
	fmt.Fprintf(w, "  IB\t%s\n", units.Format(op.IB, "A"))
	fmt.Fprintf(w, "  IC\t%s\n", units.Format(op.IC, "A"))
	fmt.Fprintf(w, "  IE\t%s\n", units.Format(op.IE, "A"))
	fmt.Fprintf(w, "  VB\t%s\n", units.Format(op.VB, "V"))
	fmt.Fprintf(w, "  VC\t%s\n", units.Format(op.VC, "V"))
	fmt.Fprintf(w, "  VE\t%s\n", units.Format(op.VE, "V"))
	fmt.Fprintf(w, "  VCE\t%s\n", units.Format(op.VCE, "V"))
	fmt.Fprintf(w, "  region\t%s\n", m.Region())
	fmt.Fprintf(w, "  swing\t±%s\n", units.Format(m.OutputSwing(), "V"))
	fmt.Fprintln(w, "AC PARAMETERS\t")
	fmt.Fprintf(w, "  gm\t%s\n", units.Format(ac.Gm, "S"))
	fmt.Fprintf(w, "  Av (with RE)\t%s\n", units.Gain(ac.AvWithRE))
	fmt.Fprintf(w, "  Av (bypassed)\t%s\n", units.Gain(ac.AvBypassed))
	fmt.Fprintf(w, "  Rin\t%s\n", units.Format(ac.Rin, "Ω"))
	fmt.Fprintf(w, "  Rout\t%s\n", units.Format(ac.Rout, "Ω"))
	fmt.Fprintln(w, "PASSBAND\t")
	fmt.Fprintf(w, "  fc low\t%s\n", units.Frequency(c.Low))
	fmt.Fprintf(w, "  fc high\t%s\n", units.Frequency(c.High))
	fmt.Fprintf(w, "  midband\t%s\n", units.Decibels(c.MidbandDB))
	return w.Flush()
}

func (a *app) responseCmd() *cobra.Command {
	var asCSV bool
	cmd := &cobra.Command{
		Use:   "response",
		Short: "plot the frequency response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.model()
			if err != nil {
				return err
			}
			r, err := m.FrequencyResponse(a.cfg.Samples)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asCSV {
				return writeResponseCSV(out, r)
			}
			return printResponse(out, m, r)
		},
	}
	cmd.Flags().BoolVar(&asCSV, "csv", false, "print rows as CSV")
	return cmd
}

func printResponse(out io.Writer, m *circuit.Model, r circuit.FrequencyResponse) error {
	if len(r) < 2 {
		return writeResponseCSV(out, r)
	}
	fmt.Fprintln(out, asciigraph.Plot(r.Gains(),
		asciigraph.Height(graphHeight), asciigraph.Width(graphWidth),
		asciigraph.Caption("gain (dB), 10 Hz to 1 MHz log-spaced")))
	fmt.Fprintln(out)
	fmt.Fprintln(out, asciigraph.Plot(r.Phases(),
		asciigraph.Height(graphHeight/2), asciigraph.Width(graphWidth), asciigraph.Precision(0),
		asciigraph.Caption("phase (°)")))
	fmt.Fprintln(out)

	c := m.Corners()
	fmt.Fprintf(out, "fc low: %s  fc high: %s  midband: %s\n",
		units.Frequency(c.Low), units.Frequency(c.High), units.Decibels(c.MidbandDB))
	if lo, hi, ok := analysis.Bandwidth(r); ok {
		fmt.Fprintf(out, "-3 dB band within sweep: %s to %s\n", units.Frequency(lo), units.Frequency(hi))
	}
	return nil
}

func (a *app) waveformCmd() *cobra.Command {
	var asCSV, transfer bool
	cmd := &cobra.Command{
		Use:   "waveform",
		Short: "plot input and output waveforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.model()
			if err != nil {
				return err
			}
			wf, err := m.Waveforms(a.cfg.Samples)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case asCSV:
				return writeWaveformCSV(out, wf)
			case transfer:
				fmt.Fprint(out, analysis.PlotASCII(analysis.TransferCurve(wf), graphWidth, 20))
				fmt.Fprintf(out, "x: vin  y: vout_total  slope %s\n", units.Gain(m.AC().AvBypassed))
				return nil
			}
			return printWaveform(out, wf)
		},
	}
	cmd.Flags().BoolVar(&asCSV, "csv", false, "print rows as CSV")
	cmd.Flags().BoolVar(&transfer, "transfer", false, "plot vout against vin")
	return cmd
}

func printWaveform(out io.Writer, wf circuit.Waveform) error {
	if len(wf) < 2 {
		return writeWaveformCSV(out, wf)
	}
	fmt.Fprintln(out, asciigraph.Plot(wf.Vin(),
		asciigraph.Height(graphHeight/2), asciigraph.Width(graphWidth), asciigraph.Precision(4),
		asciigraph.Caption("vin (V)")))
	fmt.Fprintln(out)
	fmt.Fprintln(out, asciigraph.Plot(wf.VoutTotal(),
		asciigraph.Height(graphHeight), asciigraph.Width(graphWidth),
		asciigraph.Caption("vout total (V)")))
	fmt.Fprintln(out)

	times, err := analysis.Crossings(wf, analysis.SignalVin, 0)
	if err != nil {
		return err
	}
	if f, ok := analysis.MeasuredFrequency(times); ok {
		fmt.Fprintf(out, "measured input frequency: %s\n", units.Frequency(f))
	}
	return nil
}

func (a *app) spectrumCmd() *cobra.Command {
	var (
		signal string
		bins   int
		asCSV  bool
	)
	cmd := &cobra.Command{
		Use:   "spectrum",
		Short: "amplitude spectrum of a waveform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sig, err := analysis.ParseSignal(signal)
			if err != nil {
				return err
			}
			m, err := a.model()
			if err != nil {
				return err
			}
			wf, err := m.Waveforms(a.cfg.Samples)
			if err != nil {
				return err
			}
			spec, err := analysis.NewSpectrum(wf, sig)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asCSV {
				w := csv.NewWriter(out)
				w.Write([]string{"frequency", "amplitude"})
				for _, b := range spec.Bins {
					w.Write([]string{formatFloat(b.Frequency), formatFloat(b.Amplitude)})
				}
				w.Flush()
				return w.Error()
			}

			amps := spec.Amplitudes()[1:]
			if bins > 0 && len(amps) > bins {
				amps = amps[:bins]
			}
			if len(amps) > 1 {
				fmt.Fprintln(out, asciigraph.Plot(amps,
					asciigraph.Height(graphHeight), asciigraph.Width(graphWidth), asciigraph.Precision(4),
					asciigraph.Caption(fmt.Sprintf("|%s| per bin, %s per bin", sig, units.Frequency(spec.Bins[1].Frequency)))))
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "dc: %s\n", units.Format(spec.DC(), "V"))
			if b, ok := spec.Dominant(); ok {
				fmt.Fprintf(out, "dominant: %s at %s\n", units.Format(b.Amplitude, "V"), units.Frequency(b.Frequency))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&signal, "signal", string(analysis.SignalVoutTotal), "vin, vout_ac or vout_total")
	cmd.Flags().IntVar(&bins, "bins", 60, "number of bins to plot (0 for all)")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "print bins as CSV")
	return cmd
}

func (a *app) sweepCmd() *cobra.Command {
	var (
		param   string
		lo, hi  float64
		steps   int
		svgPath string
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "gain sensitivity grid, or sweep one parameter with --param",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if param != "" {
				return a.sweepParameter(out, param, circuit.Range{Min: lo, Max: hi}, steps)
			}

			sc := a.cfg.Sensitivity
			g, err := circuit.Sensitivity(sc.RC, sc.RE, sc.Points)
			if err != nil {
				return err
			}
			if svgPath != "" {
				return writeFile(svgPath, func(w io.Writer) error { return export.SensitivitySVG(w, g) })
			}
			return printSensitivity(out, g)
		},
	}
	cmd.Flags().StringVar(&param, "param", "", "parameter to sweep")
	cmd.Flags().Float64Var(&lo, "min", 0, "sweep start")
	cmd.Flags().Float64Var(&hi, "max", 0, "sweep end")
	cmd.Flags().IntVar(&steps, "steps", 10, "number of sweep points")
	cmd.Flags().StringVar(&svgPath, "svg", "", "write the sensitivity heat map to this SVG file")
	return cmd
}

func (a *app) sweepParameter(out io.Writer, param string, r circuit.Range, steps int) error {
	pts, err := analysis.SweepParameter(a.cfg.Circuit, param, r, steps)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tIC\tVCE\tAv\tREGION\n", param)
	for _, p := range pts {
		if p.Err != nil {
			fmt.Fprintf(w, "%g\t-\t-\t-\t%v\n", p.Value, p.Err)
			continue
		}
		fmt.Fprintf(w, "%g\t%s\t%s\t%s\t%s\n", p.Value,
			units.Format(p.IC, "A"), units.Format(p.VCE, "V"), units.Gain(p.AvWithRE), p.Region)
	}
	return w.Flush()
}

func printSensitivity(out io.Writer, g *circuit.SensitivityGrid) error {
	w := tabwriter.NewWriter(out, 0, 0, 1, ' ', tabwriter.AlignRight)
	fmt.Fprint(w, "RC\\RE\t")
	for _, re := range g.RE {
		fmt.Fprintf(w, "%.0f\t", re)
	}
	fmt.Fprintln(w)
	for i, rc := range g.RC {
		fmt.Fprintf(w, "%.0f\t", rc)
		for j := range g.RE {
			fmt.Fprintf(w, "%.2f\t", g.Gains.At(i, j))
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func (a *app) store() *storage.Store {
	return storage.New(a.cfg.DataDir, storage.WithLogger(a.log))
}

func (a *app) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "evaluate the amplifier and save the run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.model()
			if err != nil {
				return err
			}
			runID, err := a.store().Save(m, a.cfg.Samples)
			if err != nil {
				return err
			}
			a.log.Info("run saved", "id", runID, "region", m.Region())
			fmt.Fprintln(cmd.OutOrStdout(), runID)
			return nil
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := a.store().List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "no runs found")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTIME\tVCC\tRC\tRE\tAV\tREGION\tSAMPLES")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\t%s\t%s\t%d\n",
					run.ID,
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.Parameters.Vcc,
					run.Parameters.RC,
					run.Parameters.RE,
					units.Gain(run.AC.AvWithRE),
					run.Region,
					run.Samples,
				)
			}
			return w.Flush()
		},
	}
}

// resolveRun returns the given run id, or the latest run when none is given.
func (a *app) resolveRun(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	meta, err := a.store().Latest()
	if err != nil {
		return "", err
	}
	return meta.ID, nil
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved run (latest by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID, err := a.resolveRun(args)
			if err != nil {
				return err
			}
			st := a.store()
			meta, err := st.Load(runID)
			if err != nil {
				return err
			}
			resp, err := st.LoadResponse(runID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			p := meta.Parameters
			fmt.Fprintf(out, "run: %s\n", meta.ID)
			fmt.Fprintf(out, "time: %s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "samples: %d\n\n", meta.Samples)

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Vcc\t%s\tRB\t%s\n", units.Format(p.Vcc, "V"), units.Format(p.RB, "Ω"))
			fmt.Fprintf(w, "RC\t%s\tRE\t%s\n", units.Format(p.RC, "Ω"), units.Format(p.RE, "Ω"))
			fmt.Fprintf(w, "beta\t%g\tVBE\t%s\n", p.Beta, units.Format(p.VBE, "V"))
			fmt.Fprintf(w, "vin\t%s\tfreq\t%s\n", units.Format(p.VinAmp, "V"), units.Frequency(p.Freq))
			fmt.Fprintf(w, "IC\t%s\tVCE\t%s\n", units.Format(meta.OperatingPoint.IC, "A"), units.Format(meta.OperatingPoint.VCE, "V"))
			fmt.Fprintf(w, "Av\t%s\tregion\t%s\n", units.Gain(meta.AC.AvWithRE), meta.Region)
			if err := w.Flush(); err != nil {
				return err
			}
			if lo, hi, ok := analysis.Bandwidth(resp); ok {
				fmt.Fprintf(out, "\n-3 dB band within sweep: %s to %s\n", units.Frequency(lo), units.Frequency(hi))
			}
			return nil
		},
	}
}

func (a *app) exportCSVCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "print a stored array of a run as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := storage.ParseKind(kind)
			if err != nil {
				return err
			}
			runID, err := a.resolveRun(args)
			if err != nil {
				return err
			}
			return a.store().ExportCSV(cmd.OutOrStdout(), runID, k)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(storage.KindResponse), "response or waveform")
	return cmd
}

func (a *app) exportJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "print a run with its arrays as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID, err := a.resolveRun(args)
			if err != nil {
				return err
			}
			return a.store().ExportJSON(cmd.OutOrStdout(), runID)
		},
	}
}

func (a *app) plotCmd() *cobra.Command {
	var kind, outPath string
	cmd := &cobra.Command{
		Use:   "plot [run_id|-]",
		Short: "write a Bode or waveform SVG for a run, or for the current parameters with -",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := outPath
			if path == "" {
				path = kind + ".svg"
			}

			var (
				resp circuit.FrequencyResponse
				wf   circuit.Waveform
				err  error
			)
			if args[0] == "-" {
				m, err := a.model()
				if err != nil {
					return err
				}
				if resp, err = m.FrequencyResponse(a.cfg.Samples); err != nil {
					return err
				}
				if wf, err = m.Waveforms(a.cfg.Samples); err != nil {
					return err
				}
			} else {
				st := a.store()
				if resp, err = st.LoadResponse(args[0]); err != nil {
					return err
				}
				if wf, err = st.LoadWaveform(args[0]); err != nil {
					return err
				}
			}

			switch kind {
			case "bode":
				err = writeFile(path, func(w io.Writer) error { return export.BodeSVG(w, resp) })
			case "waveform":
				err = writeFile(path, func(w io.Writer) error { return export.WaveformSVG(w, wf) })
			default:
				return fmt.Errorf("unknown plot kind: %s (want bode or waveform)", kind)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "bode", "bode or waveform")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <kind>.svg)")
	return cmd
}

func (a *app) presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list parameter presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tVCC\tRB\tRC\tRE\tBETA\tFREQ")
			for _, name := range config.ListPresets() {
				p, _ := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%g\t%g\n", name, p.Vcc, p.RB, p.RC, p.RE, p.Beta, p.Freq)
			}
			return w.Flush()
		},
	}
}

func (a *app) initConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the resolved configuration as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "ceasim.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Save(path, a.cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
}

func writeResponseCSV(out io.Writer, r circuit.FrequencyResponse) error {
	w := csv.NewWriter(out)
	w.Write([]string{"frequency", "gain_db", "phase_deg"})
	for _, p := range r {
		w.Write([]string{formatFloat(p.Frequency), formatFloat(p.GainDB), formatFloat(p.PhaseDeg)})
	}
	w.Flush()
	return w.Error()
}

func writeWaveformCSV(out io.Writer, wf circuit.Waveform) error {
	w := csv.NewWriter(out)
	w.Write([]string{"time", "vin", "vout_ac", "vout_total"})
	for _, s := range wf {
		w.Write([]string{formatFloat(s.Time), formatFloat(s.Vin), formatFloat(s.VoutAC), formatFloat(s.VoutTotal)})
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeFile renders into memory first so a failed render leaves no file.
func writeFile(path string, write func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
