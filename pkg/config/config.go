// Package config loads render settings from PATHTRACER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable name
const Prefix = "PATHTRACER"

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the settings of one render. Zero values for Height, Samples and
// MaxDepth and a negative MinAttenuation defer to the scene's own settings.
type Config struct {
	Scene          string  `envconfig:"SCENE" default:"default"`
	Width          int     `envconfig:"WIDTH" default:"400"`
	Height         int     `envconfig:"HEIGHT" default:"0"`
	Samples        int     `envconfig:"SAMPLES" default:"0"`
	MaxDepth       int     `envconfig:"MAX_DEPTH" default:"0"`
	MinAttenuation float64 `envconfig:"MIN_ATTENUATION" default:"-1"`
	Workers        int     `envconfig:"WORKERS" default:"0"`
	Seed           int64   `envconfig:"SEED" default:"42"`
	Output         string  `envconfig:"OUTPUT" default:""`
	Format         string  `envconfig:"FORMAT" default:""`
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("loading %s_* environment: %w", Prefix, err)
	}
	return &cfg, nil
}

// Validate rejects sizes that cannot produce an image
func (c *Config) Validate() error {
	switch {
	case c.Scene == "":
		return fmt.Errorf("%w: empty scene name", ErrInvalidConfig)
	case c.Width <= 0:
		return fmt.Errorf("%w: width %d", ErrInvalidConfig, c.Width)
	case c.Height < 0:
		return fmt.Errorf("%w: height %d", ErrInvalidConfig, c.Height)
	case c.Samples < 0:
		return fmt.Errorf("%w: samples %d", ErrInvalidConfig, c.Samples)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max depth %d", ErrInvalidConfig, c.MaxDepth)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// NumWorkers returns Workers, or the CPU count when unset
func (c *Config) NumWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
