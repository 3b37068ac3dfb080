// Package viewport maps between screen space and a bounded 2D world space
// seen through an orthographic camera, and draws random points inside it.
package viewport

import (
	"errors"

	"github.com/lixenwraith/scatter/vmath"
)

// MaxMargin is the largest edge margin fraction a draw accepts
// At 0.5 the usable band on each axis collapses to the centre line
const MaxMargin = 0.5

// ErrInvalidArgument reports a parameter outside its documented domain
var ErrInvalidArgument = errors.New("invalid argument")

// Viewport supplies the bounded space points are sampled from
type Viewport interface {
	// RandomPointInBounds draws a point uniformly from the bounded space,
	// excluding a marginFraction band along each axis edge
	RandomPointInBounds(marginFraction float64) (vmath.Vec2, error)
	// HalfExtents returns the half-width and half-height of the bounded space
	HalfExtents() (halfWidth, halfHeight float64)
}
