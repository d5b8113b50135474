// Package config holds the tooling configuration shared by the CLI and the
// streaming server. Values come from defaults, an optional YAML file, STFT_*
// environment variables and command-line flags, merged by viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-stft/dsp/spectrum"
	"github.com/cwbudde/algo-stft/dsp/stft"
	"github.com/cwbudde/algo-stft/dsp/transform"
	"github.com/cwbudde/algo-stft/dsp/window"
)

// EnvPrefix prefixes every environment variable read by the tooling.
const EnvPrefix = "STFT"

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid value")

// Config is the complete tooling configuration.
type Config struct {
	LogLevel string         `mapstructure:"log_level" yaml:"log_level"`
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
}

// AnalysisConfig describes one STFT engine and how the CLI feeds it.
type AnalysisConfig struct {
	Window       string  `mapstructure:"window" yaml:"window"`
	WindowSize   int     `mapstructure:"window_size" yaml:"window_size"`
	StepSize     int     `mapstructure:"step_size" yaml:"step_size"`
	Reduction    string  `mapstructure:"reduction" yaml:"reduction"`
	Backend      string  `mapstructure:"backend" yaml:"backend"`
	DecibelFloor float64 `mapstructure:"decibel_floor" yaml:"decibel_floor"`
	Periodic     bool    `mapstructure:"periodic" yaml:"periodic"`
	// Alpha is the parametric window shape; negative selects the window default.
	Alpha     float64 `mapstructure:"alpha" yaml:"alpha"`
	ChunkSize int     `mapstructure:"chunk_size" yaml:"chunk_size"`
	Flush     bool    `mapstructure:"flush" yaml:"flush"`
	Format    string  `mapstructure:"format" yaml:"format"`
}

// ServerConfig configures the websocket streaming service.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	ReadBufferSize  int           `mapstructure:"read_buffer_size" yaml:"read_buffer_size"`
	WriteBufferSize int           `mapstructure:"write_buffer_size" yaml:"write_buffer_size"`
	MaxMessageBytes int64         `mapstructure:"max_message_bytes" yaml:"max_message_bytes"`
	QueueDepth      int           `mapstructure:"queue_depth" yaml:"queue_depth"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

// NewViper returns a viper instance with defaults and STFT_* environment
// lookup configured.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	return v
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")

	v.SetDefault("analysis.window", window.TypeHann.String())
	v.SetDefault("analysis.window_size", 1024)
	v.SetDefault("analysis.step_size", 512)
	v.SetDefault("analysis.reduction", spectrum.ReductionMagnitude.String())
	v.SetDefault("analysis.backend", transform.BackendAuto.String())
	v.SetDefault("analysis.decibel_floor", spectrum.DefaultDecibelFloor)
	v.SetDefault("analysis.periodic", false)
	v.SetDefault("analysis.alpha", -1.0)
	v.SetDefault("analysis.chunk_size", 3000)
	v.SetDefault("analysis.flush", false)
	v.SetDefault("analysis.format", "csv")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_buffer_size", 16*1024)
	v.SetDefault("server.write_buffer_size", 16*1024)
	v.SetDefault("server.max_message_bytes", 1<<20)
	v.SetDefault("server.queue_depth", 64)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.allowed_origins", []string{})
}

// Default returns the configuration with only defaults applied.
func Default() Config {
	cfg, err := Load(NewViper())
	if err != nil {
		panic(err)
	}

	return *cfg
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Analysis.Validate(); err != nil {
		return err
	}

	return c.Server.Validate()
}

// Validate checks names and sizes without building an engine.
func (a AnalysisConfig) Validate() error {
	if _, err := window.ParseType(a.Window); err != nil {
		return fmt.Errorf("%w: analysis.window: %w", ErrInvalid, err)
	}

	if a.WindowSize <= 0 {
		return fmt.Errorf("%w: analysis.window_size must be > 0, got %d", ErrInvalid, a.WindowSize)
	}

	if a.StepSize < 0 {
		return fmt.Errorf("%w: analysis.step_size must be >= 0, got %d", ErrInvalid, a.StepSize)
	}

	red, err := spectrum.ParseReduction(a.Reduction)
	if err != nil {
		return fmt.Errorf("%w: analysis.reduction: %w", ErrInvalid, err)
	}

	if _, err := transform.ParseBackend(a.Backend); err != nil {
		return fmt.Errorf("%w: analysis.backend: %w", ErrInvalid, err)
	}

	if a.DecibelFloor <= 0 {
		return fmt.Errorf("%w: analysis.decibel_floor must be > 0, got %v", ErrInvalid, a.DecibelFloor)
	}

	if a.ChunkSize <= 0 {
		return fmt.Errorf("%w: analysis.chunk_size must be > 0, got %d", ErrInvalid, a.ChunkSize)
	}

	switch strings.ToLower(a.Format) {
	case "csv", "json", "features":
	default:
		return fmt.Errorf("%w: analysis.format must be csv, json or features, got %q", ErrInvalid, a.Format)
	}

	// Column features are defined on linear magnitudes.
	if strings.EqualFold(a.Format, "features") && red != spectrum.ReductionMagnitude {
		return fmt.Errorf("%w: analysis.format features needs reduction magnitude, got %s", ErrInvalid, red)
	}

	return nil
}

// Validate checks the server section.
func (s ServerConfig) Validate() error {
	if s.Addr == "" {
		return fmt.Errorf("%w: server.addr must not be empty", ErrInvalid)
	}

	if s.MaxMessageBytes <= 0 {
		return fmt.Errorf("%w: server.max_message_bytes must be > 0", ErrInvalid)
	}

	if s.QueueDepth <= 0 {
		return fmt.Errorf("%w: server.queue_depth must be > 0", ErrInvalid)
	}

	return nil
}

// Options translates the analysis settings into engine options.
func (a AnalysisConfig) Options() ([]stft.Option, error) {
	red, err := spectrum.ParseReduction(a.Reduction)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	backend, err := transform.ParseBackend(a.Backend)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	opts := []stft.Option{
		stft.WithReduction(red),
		stft.WithBackend(backend),
		stft.WithDecibelFloor(a.DecibelFloor),
	}

	if a.Periodic {
		opts = append(opts, stft.WithPeriodicWindow())
	}

	if a.Alpha >= 0 {
		opts = append(opts, stft.WithWindowAlpha(a.Alpha))
	}

	if a.Flush {
		opts = append(opts, stft.WithFlush())
	}

	return opts, nil
}

// NewEngine builds an engine of the requested precision from the analysis
// settings.
func NewEngine[F algofft.Float, C algofft.Complex](a AnalysisConfig) (*stft.EngineT[F, C], error) {
	opts, err := a.Options()
	if err != nil {
		return nil, err
	}

	return stft.NewFromNameT[F, C](a.Window, a.WindowSize, a.StepSize, opts...)
}

// YAML renders the configuration.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: marshal yaml: %w", err)
	}

	return out, nil
}
