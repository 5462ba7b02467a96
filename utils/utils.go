package utils

import "math"

// Vec is a 2D vector used for positions, velocities and accelerations.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

func (v Vec) Dot(o Vec) float64 { return v.X*o.X + v.Y*o.Y }

func (v Vec) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

// Norm returns the unit vector in the direction of v, or the zero vector
// when v is (near) zero length.
func (v Vec) Norm() Vec {
	l := v.Len()
	if l < 1e-9 {
		return Vec{}
	}
	return Vec{v.X / l, v.Y / l}
}

// ClampLen scales v down so its length does not exceed max. Vectors already
// within the bound are returned unchanged.
func (v Vec) ClampLen(max float64) Vec {
	l := v.Len()
	if l <= max || l < 1e-9 {
		return v
	}
	return Vec{v.X / l * max, v.Y / l * max}
}

// IsFinite reports whether both components are real numbers.
func (v Vec) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

func Distance(a, b Vec) float64 { return a.Sub(b).Len() }

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
