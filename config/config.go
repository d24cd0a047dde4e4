// Package config holds engine and tool settings and loads them from TOML.
//
//	render_jobs = 20000
//	pick_format = "rgb8"
//	log_level   = "info"
//
// Unset keys keep their defaults.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/scene-runtime/errors"
	"github.com/wippyai/scene-runtime/gpu"
	"github.com/wippyai/scene-runtime/linker"
	"github.com/wippyai/scene-runtime/render"
)

// DefaultFile is the configuration file name tools look for.
const DefaultFile = "scene.toml"

// Config contains the settings that control an engine.
type Config struct {
	// RenderJobs is the number of render jobs available per frame.
	// Jobs beyond it are dropped for that frame.
	RenderJobs int `toml:"render_jobs"`

	// PickFormat is the color format of the pick framebuffer,
	// "rgb8" or "rgb565" (GL ES).
	PickFormat string `toml:"pick_format"`

	// LogLevel is a zap level name.
	LogLevel string `toml:"log_level"`

	// StackProbe overrides the name of the stack probe symbol
	// compiled code may reference. Empty selects the platform default.
	StackProbe string `toml:"stack_probe"`

	// WordSize is the relocation word size in bytes. Zero selects the
	// host pointer size, the only other accepted value.
	WordSize int `toml:"word_size"`
}

// Default returns a Config with standard values.
func Default() *Config {
	return &Config{
		RenderJobs: render.DefaultCapacity,
		PickFormat: gpu.PickRGB8.String(),
		LogLevel:   "info",
	}
}

// Load reads a TOML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.PhaseConfig, errors.KindNotFound).
			Path(path).
			Cause(err).
			Detail("read configuration").
			Build()
	}
	return Parse(bytes.NewReader(data))
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(r io.Reader) (*Config, error) {
	c := Default()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "decode configuration")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks ranges and names.
func (c *Config) Validate() error {
	if c.RenderJobs <= 0 {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("render_jobs").
			Value(c.RenderJobs).
			Detail("must be positive").
			Build()
	}
	if _, ok := gpu.ParsePickFormat(c.PickFormat); !ok {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("pick_format").
			Value(c.PickFormat).
			Detail("unknown pick format %q", c.PickFormat).
			Build()
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("log_level").
			Value(c.LogLevel).
			Cause(err).
			Build()
	}
	if c.WordSize != 0 && c.WordSize != linker.HostWordSize {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("word_size").
			Value(c.WordSize).
			Detail("host words are %d bytes", linker.HostWordSize).
			Build()
	}
	return nil
}

// Pick returns the parsed pick format.
func (c *Config) Pick() gpu.PickFormat {
	f, _ := gpu.ParsePickFormat(c.PickFormat)
	return f
}

// Level returns the parsed log level, info when invalid.
func (c *Config) Level() zapcore.Level {
	l, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}

// LinkerOptions returns the relocation options.
func (c *Config) LinkerOptions() linker.Options {
	opts := linker.DefaultOptions()
	if c.WordSize != 0 {
		opts.WordSize = c.WordSize
	}
	return opts
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
