// Package core provides fundamental types and utilities shared by the game
// and the platform layer. It has no Bubble Tea dependency so the simulation
// stays pure and testable.
package core

import "math"

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// AABB is an axis-aligned box in continuous field units.
// X and Y are the top-left corner; Y grows downward.
type AABB struct {
	X, Y float64
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (b AABB) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b AABB) Bottom() float64 {
	return b.Y + b.H
}

// Center returns the center point of the box.
func (b AABB) Center() Vec2 {
	return Vec2{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Intersects reports whether two boxes overlap. Touching edges do not count.
func (b AABB) Intersects(other AABB) bool {
	if b.X >= other.Right() || other.X >= b.Right() {
		return false
	}
	if b.Y >= other.Bottom() || other.Y >= b.Bottom() {
		return false
	}
	return true
}

// ClosestPoint returns the point of the box nearest to p.
func (b AABB) ClosestPoint(p Vec2) Vec2 {
	return Vec2{
		X: ClampF(p.X, b.X, b.Right()),
		Y: ClampF(p.Y, b.Y, b.Bottom()),
	}
}

// CircleIntersects reports whether a circle at c with radius r overlaps the box.
func (b AABB) CircleIntersects(c Vec2, r float64) bool {
	d := c.Sub(b.ClosestPoint(c))
	return d.X*d.X+d.Y*d.Y < r*r
}

// Vec2 is a 2D vector in field units.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the magnitude of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// WithLen rescales v to the given magnitude.
// A zero vector stays zero.
func (v Vec2) WithLen(l float64) Vec2 {
	m := v.Len()
	if m == 0 {
		return Vec2{}
	}
	return v.Scale(l / m)
}

// FromAngle returns a vector of length l pointing at angle (radians).
func FromAngle(angle, l float64) Vec2 {
	return Vec2{X: math.Cos(angle) * l, Y: math.Sin(angle) * l}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
