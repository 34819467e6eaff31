package geom

import (
	"fmt"
	"math"
)

// Vec2 is a 2D vector. All methods take value receivers and return new
// vectors, so Vec2 values can be shared freely between goroutines.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Div(f float64) Vec2 { return Vec2{v.X / f, v.Y / f} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

// SqMag returns the squared magnitude.
func (v Vec2) SqMag() float64 { return v.X*v.X + v.Y*v.Y }

func (v Vec2) Mag() float64 { return math.Sqrt(v.SqMag()) }

// Arg returns the polar angle in (-pi, pi].
func (v Vec2) Arg() float64 { return math.Atan2(v.Y, v.X) }

// Norm returns the unit vector pointing in the same direction. At the
// zero vector the result is NaN in both components; callers must not
// normalize a zero vector.
func (v Vec2) Norm() Vec2 {
	m := v.Mag()
	return Vec2{v.X / m, v.Y / m}
}

// Perp returns v rotated a quarter turn clockwise: (y, -x).
func (v Vec2) Perp() Vec2 { return Vec2{v.Y, -v.X} }

// IsValid reports whether both components are finite.
func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// Rect is an axis-aligned rectangle spanned by two corner points.
type Rect struct {
	Min, Max Vec2
}

// Contains reports whether p lies inside r, borders included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return r.Min.Add(r.Max).Div(2)
}
