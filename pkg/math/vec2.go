// Package math provides the 2D vector type used by object geometry.
package math

import "math"

// Vec2 is a point or offset in map pixel space.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

// Rotate returns v rotated clockwise by deg degrees around the origin,
// matching Tiled's object rotation (y axis points down).
func (v Vec2) Rotate(deg float32) Vec2 {
	if deg == 0 {
		return v
	}
	sin, cos := math.Sincos(float64(deg) * math.Pi / 180)
	x, y := float64(v.X), float64(v.Y)
	return Vec2{
		X: float32(x*cos - y*sin),
		Y: float32(x*sin + y*cos),
	}
}

// Bounds returns the axis-aligned box enclosing points.
// An empty slice yields two zero vectors.
func Bounds(points []Vec2) (lo, hi Vec2) {
	if len(points) == 0 {
		return Vec2{}, Vec2{}
	}
	lo, hi = points[0], points[0]
	for _, p := range points[1:] {
		lo.X = min(lo.X, p.X)
		lo.Y = min(lo.Y, p.Y)
		hi.X = max(hi.X, p.X)
		hi.Y = max(hi.Y, p.Y)
	}
	return lo, hi
}

// PathLength returns the summed length of the segments joining points.
// Set closed to include the segment from the last point back to the first.
func PathLength(points []Vec2, closed bool) float32 {
	if len(points) < 2 {
		return 0
	}
	var total float32
	for i := 1; i < len(points); i++ {
		total += points[i].Sub(points[i-1]).Length()
	}
	if closed {
		total += points[0].Sub(points[len(points)-1]).Length()
	}
	return total
}
