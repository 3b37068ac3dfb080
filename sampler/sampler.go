// Package sampler scatters points across a viewport with a minimum pairwise
// separation, relaxing the separation when the space gets crowded and giving
// up after a bounded number of draws.
package sampler

import (
	"fmt"
	"log"
	"math"

	"github.com/lixenwraith/scatter/viewport"
	"github.com/lixenwraith/scatter/vmath"
)

// maxPrealloc caps the up-front capacity of the accepted slice
const maxPrealloc = 1024

// ErrInvalidArgument is shared with viewport so callers match a single sentinel
var ErrInvalidArgument = viewport.ErrInvalidArgument

// Request describes one scatter
type Request struct {
	Count         int
	MinSeparation float64
	// EdgeMargin is the fraction of each axis excluded at both ends
	EdgeMargin float64
}

// Result holds accepted points in acceptance order
type Result struct {
	Points []vmath.Vec2

	Requested int
	// Shortfall is the number of points that could not be placed
	Shortfall  int
	Iterations int
	// Relaxed is set once the separation was scaled down
	Relaxed bool
}

// Partial reports whether fewer points than requested were placed
func (r Result) Partial() bool {
	return r.Shortfall > 0
}

// Sampler runs the rejection loop with a fixed Config
// Holds no mutable state; concurrent use is safe when each call gets its own Viewport
type Sampler struct {
	cfg Config
}

func New(cfg Config) (*Sampler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Sampler{cfg: cfg}, nil
}

// Config returns the active configuration
func (s *Sampler) Config() Config {
	return s.cfg
}

// Sample draws up to req.Count points from vp
// A short result is not an error: check Result.Partial
func (s *Sampler) Sample(req Request, vp viewport.Viewport) (Result, error) {
	if err := s.validate(req); err != nil {
		return Result{}, err
	}

	res := Result{Requested: req.Count}
	if req.Count == 0 {
		return res, nil
	}
	if vp == nil {
		return Result{}, fmt.Errorf("%w: nil viewport", ErrInvalidArgument)
	}

	count := float64(req.Count)
	relaxAfter := count * s.cfg.RelaxFactor
	hardCap := count * s.cfg.HardCapFactor
	relaxed := req.MinSeparation * s.cfg.RelaxScale

	// Count only bounds the loop, most of a large request may never be placed
	accepted := make([]vmath.Vec2, 0, min(req.Count, maxPrealloc))
	iterations := 0

	for len(accepted) < req.Count {
		iterations++

		candidate, err := vp.RandomPointInBounds(req.EdgeMargin)
		if err != nil {
			return Result{}, fmt.Errorf("draw %d: %w", iterations, err)
		}

		separation := req.MinSeparation
		if float64(iterations) > relaxAfter {
			separation = relaxed
			res.Relaxed = true
		}

		if !tooClose(candidate, accepted, separation) {
			accepted = append(accepted, candidate)
		}

		if float64(iterations) > hardCap {
			break
		}
	}

	res.Points = accepted
	res.Iterations = iterations
	res.Shortfall = req.Count - len(accepted)

	if res.Partial() {
		log.Printf("sampler: %d of %d locations could not be placed, decrease the count or the separation",
			res.Shortfall, req.Count)
	}

	return res, nil
}

func (s *Sampler) validate(req Request) error {
	if req.Count < 0 {
		return fmt.Errorf("%w: count %d is negative", ErrInvalidArgument, req.Count)
	}
	if math.IsNaN(req.MinSeparation) || req.MinSeparation < 0 {
		return fmt.Errorf("%w: min separation %v is negative", ErrInvalidArgument, req.MinSeparation)
	}
	if math.IsNaN(req.EdgeMargin) || req.EdgeMargin < 0 || req.EdgeMargin > s.cfg.MaxMargin {
		return fmt.Errorf("%w: edge margin %v outside [0, %v]", ErrInvalidArgument, req.EdgeMargin, s.cfg.MaxMargin)
	}
	return nil
}

// tooClose reports whether p is strictly nearer than sep to any accepted point
func tooClose(p vmath.Vec2, accepted []vmath.Vec2, sep float64) bool {
	if sep <= 0 {
		return false
	}
	sepSq := sep * sep
	for _, q := range accepted {
		if vmath.V2DistSq(p, q) < sepSq {
			return true
		}
	}
	return false
}

var defaultSampler = &Sampler{cfg: DefaultConfig()}

// Sample runs req with DefaultConfig
func Sample(req Request, vp viewport.Viewport) (Result, error) {
	return defaultSampler.Sample(req, vp)
}
