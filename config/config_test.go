package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/scatter/sampler"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scatter.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
	if cfg.Sampler != sampler.DefaultConfig() {
		t.Errorf("Expected default sampler schedule, got %+v", cfg.Sampler)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[sampler]
relax_factor = 4.0
hard_cap_factor = 6.0

[scatter]
count = 50
min_separation = 1.5

[camera]
orthographic_size = 20.0

[sandbox]
seed = 77
sound = true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Sampler.RelaxFactor != 4 || cfg.Sampler.HardCapFactor != 6 {
		t.Errorf("Sampler factors not loaded: %+v", cfg.Sampler)
	}
	// Keys absent from the file keep their defaults
	if cfg.Sampler.RelaxScale != sampler.DefaultRelaxScale {
		t.Errorf("Expected default relax scale, got %v", cfg.Sampler.RelaxScale)
	}
	if cfg.Scatter.Count != 50 || cfg.Scatter.MinSeparation != 1.5 {
		t.Errorf("Scatter not loaded: %+v", cfg.Scatter)
	}
	if cfg.Scatter.EdgeMargin != Default().Scatter.EdgeMargin {
		t.Errorf("Expected default edge margin, got %v", cfg.Scatter.EdgeMargin)
	}
	if cfg.Camera.OrthographicSize != 20 || cfg.Camera.CellAspect != 2 {
		t.Errorf("Camera not loaded: %+v", cfg.Camera)
	}
	if cfg.Sandbox.Seed != 77 || !cfg.Sandbox.Sound || cfg.Sandbox.Debug {
		t.Errorf("Sandbox not loaded: %+v", cfg.Sandbox)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[scatter]
count = 50
edge_margin = 0.1
`)
	t.Setenv("SCATTER_COUNT", "12")
	t.Setenv("SCATTER_RELAX_SCALE", "0.25")
	t.Setenv("SCATTER_DEBUG", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Scatter.Count != 12 {
		t.Errorf("Expected env count 12, got %d", cfg.Scatter.Count)
	}
	if cfg.Scatter.EdgeMargin != 0.1 {
		t.Errorf("Expected file edge margin 0.1, got %v", cfg.Scatter.EdgeMargin)
	}
	if cfg.Sampler.RelaxScale != 0.25 {
		t.Errorf("Expected env relax scale 0.25, got %v", cfg.Sampler.RelaxScale)
	}
	if !cfg.Sandbox.Debug {
		t.Error("Expected env debug flag")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		invalid bool
	}{
		{"Unknown key", "[scatter]\ncolour = 3\n", false},
		{"Malformed", "[scatter\ncount = 3\n", false},
		{"Wrong type", "[scatter]\ncount = \"many\"\n", false},
		{"Margin out of range", "[scatter]\nedge_margin = 0.6\n", true},
		{"Negative separation", "[scatter]\nmin_separation = -2.0\n", true},
		{"Bad schedule", "[sampler]\nhard_cap_factor = 1.0\n", true},
		{"Zero camera", "[camera]\northographic_size = 0.0\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Expected error")
			}
			if tt.invalid && !errors.Is(err, sampler.ErrInvalidArgument) {
				t.Errorf("Expected ErrInvalidArgument, got %v", err)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestLoadBadEnv(t *testing.T) {
	t.Setenv("SCATTER_COUNT", "lots")
	if _, err := Load(""); err == nil {
		t.Error("Expected error for unparsable env value")
	}
}

func TestEncodeDecodes(t *testing.T) {
	cfg := Default()
	cfg.Scatter.Count = 99
	cfg.Sandbox.Seed = 5

	data, err := Encode(cfg)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	got := Default()
	if err := Decode(data, &got); err != nil {
		t.Fatalf("Decode of encoded config failed: %v\n%s", err, data)
	}
	if got != cfg {
		t.Errorf("Expected %+v, got %+v", cfg, got)
	}
}

func TestScatterRequest(t *testing.T) {
	s := Scatter{Count: 3, MinSeparation: 1.25, EdgeMargin: 0.2}
	want := sampler.Request{Count: 3, MinSeparation: 1.25, EdgeMargin: 0.2}
	if got := s.Request(); got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestValidateSeedFitsTOML(t *testing.T) {
	cfg := Default()
	cfg.Sandbox.Seed = math.MaxInt64
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Largest signed seed should be valid: %v", err)
	}
	if _, err := Encode(cfg); err != nil {
		t.Errorf("Largest signed seed should encode: %v", err)
	}

	cfg.Sandbox.Seed = math.MaxUint64
	if err := cfg.Validate(); !errors.Is(err, sampler.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for unsigned-only seed, got %v", err)
	}

	t.Setenv("SCATTER_SEED", "18446744073709551615")
	if _, err := Load(""); !errors.Is(err, sampler.ErrInvalidArgument) {
		t.Errorf("Expected env seed above int64 range rejected, got %v", err)
	}
}
