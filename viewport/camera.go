package viewport

import (
	"fmt"
	"math"

	"github.com/lixenwraith/scatter/vmath"
)

// Camera is an orthographic camera over a pixel screen
// Screen origin is bottom-left, X right, Y up; world origin is the camera position
// Not safe for concurrent use: draws advance the shared Rand
type Camera struct {
	Position vmath.Vec2

	// OrthographicSize is half the visible world height
	OrthographicSize float64

	PixelWidth  int
	PixelHeight int

	// MaxMargin caps accepted margin fractions, 0 selects the package MaxMargin
	MaxMargin float64

	Rand *vmath.FastRand
}

// NewCamera returns a camera centred on the world origin
func NewCamera(pixelWidth, pixelHeight int, orthographicSize float64, rng *vmath.FastRand) *Camera {
	return &Camera{
		OrthographicSize: orthographicSize,
		PixelWidth:       pixelWidth,
		PixelHeight:      pixelHeight,
		MaxMargin:        MaxMargin,
		Rand:             rng,
	}
}

// Resize updates the pixel dimensions, keeping world height fixed
func (c *Camera) Resize(pixelWidth, pixelHeight int) {
	c.PixelWidth = pixelWidth
	c.PixelHeight = pixelHeight
}

// AspectRatio returns width over height, 0 for an empty screen
func (c *Camera) AspectRatio() float64 {
	if c.PixelHeight <= 0 {
		return 0
	}
	return float64(c.PixelWidth) / float64(c.PixelHeight)
}

// HalfExtents returns the visible world half-width and half-height
func (c *Camera) HalfExtents() (halfWidth, halfHeight float64) {
	return c.OrthographicSize * c.AspectRatio(), c.OrthographicSize
}

// OrthographicExtents returns HalfExtents as a vector
func (c *Camera) OrthographicExtents() vmath.Vec2 {
	hw, hh := c.HalfExtents()
	return vmath.Vec2{X: hw, Y: hh}
}

// ScreenToWorld maps a pixel coordinate to world space
func (c *Camera) ScreenToWorld(screen vmath.Vec2) vmath.Vec2 {
	if c.PixelWidth <= 0 || c.PixelHeight <= 0 {
		return c.Position
	}
	hw, hh := c.HalfExtents()
	nx := screen.X/float64(c.PixelWidth)*2 - 1
	ny := screen.Y/float64(c.PixelHeight)*2 - 1
	return vmath.Vec2{
		X: c.Position.X + nx*hw,
		Y: c.Position.Y + ny*hh,
	}
}

// WorldToScreen maps a world coordinate to pixel space
func (c *Camera) WorldToScreen(world vmath.Vec2) vmath.Vec2 {
	hw, hh := c.HalfExtents()
	if hw == 0 || hh == 0 {
		return vmath.Vec2{}
	}
	d := vmath.V2Sub(world, c.Position)
	return vmath.Vec2{
		X: (d.X/hw + 1) / 2 * float64(c.PixelWidth),
		Y: (d.Y/hh + 1) / 2 * float64(c.PixelHeight),
	}
}

// IsInsideScreen reports whether a pixel coordinate lies on screen
func (c *Camera) IsInsideScreen(screen vmath.Vec2) bool {
	return screen.X >= 0 && screen.X < float64(c.PixelWidth) &&
		screen.Y >= 0 && screen.Y < float64(c.PixelHeight)
}

// DistanceToNearestEdges returns the per-axis distance from a world point to
// the closest visible edge on that axis; components go negative off screen
func (c *Camera) DistanceToNearestEdges(world vmath.Vec2) vmath.Vec2 {
	offset := vmath.V2Abs(vmath.V2Sub(world, c.Position))
	return vmath.V2Sub(c.OrthographicExtents(), offset)
}

// RandomScreenPoint draws a pixel coordinate with margin excluded on each edge
func (c *Camera) RandomScreenPoint(marginFraction float64) (vmath.Vec2, error) {
	if err := c.checkMargin(marginFraction); err != nil {
		return vmath.Vec2{}, err
	}
	hi := 1 - marginFraction
	return vmath.Vec2{
		X: c.Rand.Range(marginFraction, hi) * float64(c.PixelWidth),
		Y: c.Rand.Range(marginFraction, hi) * float64(c.PixelHeight),
	}, nil
}

// RandomPointInBounds draws a world point from the visible area minus margin
func (c *Camera) RandomPointInBounds(marginFraction float64) (vmath.Vec2, error) {
	screen, err := c.RandomScreenPoint(marginFraction)
	if err != nil {
		return vmath.Vec2{}, err
	}
	return c.ScreenToWorld(screen), nil
}

// RandomWorldPoint is RandomPointInBounds shifted by origin
func (c *Camera) RandomWorldPoint(marginFraction float64, origin vmath.Vec2) (vmath.Vec2, error) {
	p, err := c.RandomPointInBounds(marginFraction)
	if err != nil {
		return vmath.Vec2{}, err
	}
	return vmath.V2Add(origin, p), nil
}

func (c *Camera) checkMargin(marginFraction float64) error {
	limit := c.MaxMargin
	if limit <= 0 || limit > MaxMargin {
		limit = MaxMargin
	}
	if math.IsNaN(marginFraction) || marginFraction < 0 || marginFraction > limit {
		return fmt.Errorf("%w: margin fraction %v outside [0, %v]", ErrInvalidArgument, marginFraction, limit)
	}
	if c.Rand == nil {
		return fmt.Errorf("%w: camera has no random source", ErrInvalidArgument)
	}
	return nil
}
