// Package vmath provides the 2D vector primitive shared by transforms and
// render submissions.
package vmath

import "math"

// Epsilon is the length below which a vector is treated as zero.
const Epsilon float32 = 0.001

// Vec2 is an immutable 2D float vector. Screen space: +Y points down.
type Vec2 struct {
	X float32
	Y float32
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

func Zero() Vec2  { return Vec2{} }
func One() Vec2   { return Vec2{X: 1, Y: 1} }
func Left() Vec2  { return Vec2{X: -1} }
func Right() Vec2 { return Vec2{X: 1} }
func Up() Vec2    { return Vec2{Y: -1} }
func Down() Vec2  { return Vec2{Y: 1} }

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Mul multiplies component-wise.
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{X: v.X * o.X, Y: v.Y * o.Y}
}

func (v Vec2) Div(s float32) Vec2 {
	return Vec2{X: v.X / s, Y: v.Y / s}
}

func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

func (v Vec2) Dot(o Vec2) float32 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) LenSqr() float32 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Len() float32 {
	return float32(math.Sqrt(float64(v.LenSqr())))
}

// Normalized returns the unit vector in the direction of v, or the zero
// vector when v is shorter than Epsilon.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l < Epsilon {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Lerp interpolates from v towards o by t.
func (v Vec2) Lerp(o Vec2, t float32) Vec2 {
	return Vec2{X: Lerp(v.X, o.X, t), Y: Lerp(v.Y, o.Y, t)}
}

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	return min(max(x, lo), hi)
}
