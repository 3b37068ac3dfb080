package sampler

import (
	"fmt"
	"math"

	"github.com/lixenwraith/scatter/viewport"
)

// Default relaxation schedule, empirical values that produce acceptable
// scatters for item and spawn placement
const (
	// DefaultRelaxFactor: separation relaxes once iterations exceed count times this
	DefaultRelaxFactor = 2.0

	// DefaultHardCapFactor: sampling stops once iterations exceed count times this
	DefaultHardCapFactor = 3.0

	// DefaultRelaxScale multiplies the requested separation after relaxation
	DefaultRelaxScale = 0.5
)

// Config tunes the rejection loop
type Config struct {
	RelaxFactor   float64 `toml:"relax_factor" env:"SCATTER_RELAX_FACTOR"`
	HardCapFactor float64 `toml:"hard_cap_factor" env:"SCATTER_HARD_CAP_FACTOR"`
	RelaxScale    float64 `toml:"relax_scale" env:"SCATTER_RELAX_SCALE"`
	MaxMargin     float64 `toml:"max_margin" env:"SCATTER_MAX_MARGIN"`
}

func DefaultConfig() Config {
	return Config{
		RelaxFactor:   DefaultRelaxFactor,
		HardCapFactor: DefaultHardCapFactor,
		RelaxScale:    DefaultRelaxScale,
		MaxMargin:     viewport.MaxMargin,
	}
}

// Validate checks the schedule is well formed
// The hard cap must not precede relaxation or the relaxed phase never runs
func (c Config) Validate() error {
	switch {
	case !(c.RelaxFactor > 0):
		return fmt.Errorf("%w: relax factor %v must be positive", ErrInvalidArgument, c.RelaxFactor)
	case !(c.HardCapFactor > 0) || math.IsInf(c.HardCapFactor, 0):
		return fmt.Errorf("%w: hard cap factor %v must be positive and finite", ErrInvalidArgument, c.HardCapFactor)
	case c.HardCapFactor < c.RelaxFactor:
		return fmt.Errorf("%w: hard cap factor %v below relax factor %v", ErrInvalidArgument, c.HardCapFactor, c.RelaxFactor)
	case !(c.RelaxScale >= 0 && c.RelaxScale <= 1):
		return fmt.Errorf("%w: relax scale %v outside [0, 1]", ErrInvalidArgument, c.RelaxScale)
	case !(c.MaxMargin >= 0 && c.MaxMargin <= viewport.MaxMargin):
		return fmt.Errorf("%w: max margin %v outside [0, %v]", ErrInvalidArgument, c.MaxMargin, viewport.MaxMargin)
	}
	return nil
}
