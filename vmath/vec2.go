package vmath

import "math"

// Vec2 is a float64 2D point or vector in world space
type Vec2 struct {
	X, Y float64
}

func V2Add(a, b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func V2Sub(a, b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func V2Scale(v Vec2, s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// V2Mul multiplies component-wise
func V2Mul(a, b Vec2) Vec2 {
	return Vec2{a.X * b.X, a.Y * b.Y}
}

func V2Dot(a, b Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

func V2MagSq(v Vec2) float64 {
	return v.X*v.X + v.Y*v.Y
}

func V2Mag(v Vec2) float64 {
	return math.Sqrt(V2MagSq(v))
}

// V2DistSq returns squared Euclidean distance, avoids sqrt in comparison loops
func V2DistSq(a, b Vec2) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// V2Dist returns Euclidean distance
func V2Dist(a, b Vec2) float64 {
	return math.Sqrt(V2DistSq(a, b))
}

// V2Abs returns the vector with both components made non-negative
func V2Abs(v Vec2) Vec2 {
	return Vec2{math.Abs(v.X), math.Abs(v.Y)}
}

func V2Normalize(v Vec2) Vec2 {
	mag := V2Mag(v)
	if mag == 0 {
		return Vec2{}
	}
	inv := 1.0 / mag
	return Vec2{v.X * inv, v.Y * inv}
}

// V2FromAngle returns the unit vector for an angle in degrees
// 0° points along +X, 90° along +Y
func V2FromAngle(degrees float64) Vec2 {
	rad := degrees * math.Pi / 180
	return Vec2{math.Cos(rad), math.Sin(rad)}
}
