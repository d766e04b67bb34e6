package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rubberduckies12/DigitalSignalProcessing/internal/circuit"
	"github.com/rubberduckies12/DigitalSignalProcessing/internal/config"
	"github.com/rubberduckies12/DigitalSignalProcessing/internal/logging"
)

// envPrefix scopes environment overrides, e.g. CEASIM_VCC or CEASIM_LOG_LEVEL.
const envPrefix = "CEASIM"

// circuitFlags maps command-line flag names onto parameter names.
var circuitFlags = []struct {
	flag, param, usage string
}{
	{"vcc", "vcc", "supply voltage (V)"},
	{"rb", "rb", "base resistor (Ω)"},
	{"rc", "rc", "collector resistor (Ω)"},
	{"re", "re", "emitter resistor (Ω)"},
	{"c1", "c1", "input coupling capacitor (F)"},
	{"c2", "c2", "output coupling capacitor (F)"},
	{"ce", "ce", "emitter bypass capacitor (F)"},
	{"beta", "beta", "current gain"},
	{"vbe", "vbe", "base-emitter drop (V)"},
	{"vin", "vin_amp", "input amplitude (V)"},
	{"freq", "freq", "input frequency (Hz)"},
}

// app carries the resolved configuration shared by every command.
type app struct {
	v   *viper.Viper
	cfg *config.Config
	log logr.Logger
}

// main is the entry point for the ceasim CLI; it launches the dashboard when
// no subcommand is given and exits with status 1 on error.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: logr.Discard()}

	rootCmd := &cobra.Command{
		Use:           "ceasim",
		Short:         "common-emitter amplifier workbench",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			a.log.V(logging.DEBUG).Info("command started", "command", cmd.CommandPath())
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.log.V(logging.DEBUG).Info("command finished", "command", cmd.CommandPath())
		},
		RunE: a.runDashboard,
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file path (yaml)")
	pf.String("preset", "", "start from a named preset")
	pf.String("data", config.DefaultDataDir, "data directory")
	pf.Int("samples", circuit.DefaultSamples, "samples per sweep and waveform")
	pf.String("log-level", config.DefaultLogLevel, "log level: error, warn, info, debug, trace")
	for _, f := range circuitFlags {
		pf.Float64(f.flag, 0, f.usage)
	}
	a.bind(pf)

	rootCmd.AddCommand(
		a.evalCmd(),
		a.responseCmd(),
		a.waveformCmd(),
		a.spectrumCmd(),
		a.sweepCmd(),
		a.runCmd(),
		a.listCmd(),
		a.showCmd(),
		a.exportCSVCmd(),
		a.exportJSONCmd(),
		a.plotCmd(),
		a.presetsCmd(),
		a.initConfigCmd(),
		&cobra.Command{
			Use:   "dashboard",
			Short: "interactive terminal dashboard",
			Args:  cobra.NoArgs,
			RunE:  a.runDashboard,
		},
	)
	return rootCmd
}

func (a *app) bind(fs *pflag.FlagSet) {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if err := a.v.BindPFlags(fs); err != nil {
		panic(fmt.Sprintf("bind flags: %v", err))
	}
}

// load resolves the configuration: defaults, then the config file, then the
// preset, then environment and flags for individual values.
func (a *app) load() error {
	cfg := config.DefaultConfig()
	if path := a.v.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if name := a.v.GetString("preset"); name != "" {
		p, ok := config.GetPreset(name)
		if !ok {
			return fmt.Errorf("unknown preset: %s (have %s)", name, strings.Join(config.ListPresets(), ", "))
		}
		cfg.Circuit = p
	}

	for _, f := range circuitFlags {
		if !a.v.IsSet(f.flag) {
			continue
		}
		p, err := cfg.Circuit.With(f.param, a.v.GetFloat64(f.flag))
		if err != nil {
			return err
		}
		cfg.Circuit = p
	}
	if a.v.IsSet("samples") {
		cfg.Samples = a.v.GetInt("samples")
	}
	if a.v.IsSet("data") {
		cfg.DataDir = a.v.GetString("data")
	}
	if a.v.IsSet("log-level") {
		cfg.LogLevel = a.v.GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log
	a.log.V(logging.DEBUG).Info("configuration resolved",
		"samples", cfg.Samples, "data", cfg.DataDir, "vcc", cfg.Circuit.Vcc, "rc", cfg.Circuit.RC)
	return nil
}

func (a *app) model() (*circuit.Model, error) {
	start := time.Now()
	m, err := circuit.Evaluate(a.cfg.Circuit)
	if err != nil {
		return nil, err
	}
	a.log.V(logging.TRACE).Info("model evaluated", "elapsed", time.Since(start), "region", m.Region())
	return m, nil
}
