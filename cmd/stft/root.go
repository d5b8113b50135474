package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-stft/internal/config"
)

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"log-level": "log_level",
	"window":    "analysis.window",
	"size":      "analysis.window_size",
	"step":      "analysis.step_size",
	"reduction": "analysis.reduction",
	"backend":   "analysis.backend",
	"floor":     "analysis.decibel_floor",
	"periodic":  "analysis.periodic",
	"alpha":     "analysis.alpha",
	"chunk":     "analysis.chunk_size",
	"flush":     "analysis.flush",
	"format":    "analysis.format",
	"addr":      "server.addr",
	"origin":    "server.allowed_origins",
}

type app struct {
	v          *viper.Viper
	cfgFile    string
	logConsole bool
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	root := &cobra.Command{
		Use:   "stft",
		Short: "Streaming short-time Fourier transform tools",
		Long: `stft frames an audio stream into overlapping windows and computes one
spectral column per window position.

It can describe the available window functions, analyze WAV files into
CSV or NDJSON spectrograms and serve live analysis over a websocket.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initialize(cmd)
		},
	}

	defaults := config.Default()

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "YAML configuration file")
	root.PersistentFlags().String("log-level", defaults.LogLevel, "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&a.logConsole, "log-console", false, "human readable log output")

	root.AddCommand(
		newWindowsCmd(a, defaults.Analysis),
		newAnalyzeCmd(a, defaults.Analysis),
		newServeCmd(a, defaults.Server),
		newConfigCmd(a),
		newVersionCmd(),
	)

	return root
}

// initialize merges the configuration file, environment and flags, then
// sets up logging.
func (a *app) initialize(cmd *cobra.Command) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", a.cfgFile, err)
		}
	}

	if err := bindFlags(cmd, a.v); err != nil {
		return err
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	return setupLogging(cmd.ErrOrStderr(), cfg.LogLevel, a.logConsole)
}

// bindFlags binds each known flag to its configuration key so that a flag
// set on the command line wins over file and environment values.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}

		if err := v.BindPFlag(key, f); err != nil {
			lastErr = err
		}
	})

	return lastErr
}

func setupLogging(w io.Writer, level string, console bool) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("%w: log_level: %w", config.ErrInvalid, err)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000"}
	}
	log.Logger = zerolog.New(w).Level(lvl).With().Timestamp().Logger()

	return nil
}
