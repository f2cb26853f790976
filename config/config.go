package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Miuzarte/FpsOverlay/fps"
	"github.com/Miuzarte/FpsOverlay/log"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const DEFAULT_PATH = "fpsoverlay.yaml"

var logger = log.New("Config")

var (
	ErrInvalidDuration = errors.New("config: invalid duration")
	ErrInvalidLogLevel = errors.New("config: invalid log level")
	ErrInvalidFontSize = errors.New("config: invalid font size")
)

// Duration accepts either a Go duration string ("500ms") or plain seconds (0.5).
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: not a scalar", ErrInvalidDuration, value.Line)
	}
	if secs, err := strconv.ParseFloat(value.Value, 64); err == nil {
		*d = Duration(secs * float64(time.Second))
		return nil
	}
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("%w: line %d: %q", ErrInvalidDuration, value.Line, value.Value)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

type Config struct {
	// Window over which the current FPS and frame time are averaged, [0, 2s].
	SampleDuration Duration `yaml:"sample_duration"`

	FontSize float32 `yaml:"font_size"`
	ShowCPU  bool    `yaml:"show_cpu"`

	// Rate of the synthetic frame loop in headless mode.
	HeadlessFps int `yaml:"headless_fps"`

	// Empty disables the prometheus endpoint.
	MetricsAddr string `yaml:"metrics_addr"`

	LogLevel string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		SampleDuration: Duration(fps.DefaultSampleDuration),
		FontSize:       16,
		ShowCPU:        true,
		HeadlessFps:    60,
		LogLevel:       zerolog.LevelInfoValue,
	}
}

func (c Config) Sample() time.Duration {
	return time.Duration(c.SampleDuration)
}

func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// Normalize clamps values that have a known range and rejects the rest.
func (c *Config) Normalize() error {
	c.SampleDuration = Duration(fps.ClampSampleDuration(c.Sample()))

	if c.FontSize <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidFontSize, c.FontSize)
	}
	if c.HeadlessFps <= 0 {
		c.HeadlessFps = Default().HeadlessFps
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}

// Parse overlays data on the defaults, so absent keys keep their default.
func Parse(data []byte) (Config, error) {
	c := Default()
	err := yaml.Unmarshal(data, &c)
	if err != nil {
		return c, fmt.Errorf("failed to parse config: %w", err)
	}
	err = c.Normalize()
	if err != nil {
		return c, err
	}
	return c, nil
}

// Load returns the defaults when path does not exist.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug().Str("path", path).Msg("config not found, using defaults")
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("failed to read config %q: %w", path, err)
	}
	return Parse(data)
}

func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	err = os.WriteFile(path, data, 0o664)
	if err != nil {
		return fmt.Errorf("failed to write config %q: %w", path, err)
	}
	return nil
}
