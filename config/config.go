// Package config loads sandbox settings: compiled defaults, then a TOML file,
// then SCATTER_* environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/joeshaw/envdecode"
	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/scatter/sampler"
)

// Config is the full sandbox configuration
type Config struct {
	Sampler sampler.Config `toml:"sampler"`
	Scatter Scatter        `toml:"scatter"`
	Camera  Camera         `toml:"camera"`
	Sandbox Sandbox        `toml:"sandbox"`
}

// Scatter is the request issued on every resample
type Scatter struct {
	Count         int     `toml:"count" env:"SCATTER_COUNT"`
	MinSeparation float64 `toml:"min_separation" env:"SCATTER_MIN_SEPARATION"`
	EdgeMargin    float64 `toml:"edge_margin" env:"SCATTER_EDGE_MARGIN"`
}

// Request converts to a sampler request
func (s Scatter) Request() sampler.Request {
	return sampler.Request{
		Count:         s.Count,
		MinSeparation: s.MinSeparation,
		EdgeMargin:    s.EdgeMargin,
	}
}

type Camera struct {
	// OrthographicSize is half the visible world height
	OrthographicSize float64 `toml:"orthographic_size" env:"SCATTER_ORTHOGRAPHIC_SIZE"`
	// CellAspect is terminal cell height over width, rows are scaled by it
	CellAspect float64 `toml:"cell_aspect" env:"SCATTER_CELL_ASPECT"`
}

type Sandbox struct {
	Seed  uint64 `toml:"seed" env:"SCATTER_SEED"`
	Sound bool   `toml:"sound" env:"SCATTER_SOUND"`
	Debug bool   `toml:"debug" env:"SCATTER_DEBUG"`
}

func Default() Config {
	return Config{
		Sampler: sampler.DefaultConfig(),
		Scatter: Scatter{
			Count:         24,
			MinSeparation: 3,
			EdgeMargin:    0.05,
		},
		Camera: Camera{
			OrthographicSize: 10,
			CellAspect:       2,
		},
	}
}

// Load builds a Config from defaults, the file at path (skipped when empty)
// and the environment, in that order
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := Decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode overlays TOML data onto cfg, unknown keys are rejected
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// Encode renders cfg as TOML
func Encode(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

// ApplyEnv overlays SCATTER_* variables; unset variables leave fields alone
func ApplyEnv(cfg *Config) error {
	err := envdecode.Decode(cfg)
	if err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return fmt.Errorf("decode environment: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	if err := c.Sampler.Validate(); err != nil {
		return fmt.Errorf("sampler: %w", err)
	}
	s := c.Scatter
	if s.Count < 0 {
		return fmt.Errorf("scatter: %w: count %d is negative", sampler.ErrInvalidArgument, s.Count)
	}
	if !(s.MinSeparation >= 0) {
		return fmt.Errorf("scatter: %w: min separation %v is negative", sampler.ErrInvalidArgument, s.MinSeparation)
	}
	if !(s.EdgeMargin >= 0 && s.EdgeMargin <= c.Sampler.MaxMargin) {
		return fmt.Errorf("scatter: %w: edge margin %v outside [0, %v]", sampler.ErrInvalidArgument, s.EdgeMargin, c.Sampler.MaxMargin)
	}
	if !(c.Camera.OrthographicSize > 0) {
		return fmt.Errorf("camera: %w: orthographic size %v must be positive", sampler.ErrInvalidArgument, c.Camera.OrthographicSize)
	}
	if !(c.Camera.CellAspect > 0) {
		return fmt.Errorf("camera: %w: cell aspect %v must be positive", sampler.ErrInvalidArgument, c.Camera.CellAspect)
	}
	// TOML integers are signed 64-bit, larger seeds cannot round-trip through a file
	if c.Sandbox.Seed > math.MaxInt64 {
		return fmt.Errorf("sandbox: %w: seed %d exceeds %d", sampler.ErrInvalidArgument, c.Sandbox.Seed, int64(math.MaxInt64))
	}
	return nil
}
