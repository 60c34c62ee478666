// Package geom holds the primitive solids and rigid transforms the assembly is built from.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is a rigid transform: a rotation followed by a translation.
type Transform struct {
	R [3][3]float64
	T r3.Vec
}

// Identity returns the transform that leaves every point in place.
func Identity() Transform {
	return Transform{R: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// Translation returns a transform moving points by v.
func Translation(v r3.Vec) Transform {
	t := Identity()
	t.T = v
	return t
}

// Rotation returns a rotation of angle radians about axis, through pivot.
// The angle follows the right hand rule around axis.
func Rotation(axis r3.Vec, angle float64, pivot r3.Vec) Transform {
	a := r3.Unit(axis)
	s, c := math.Sincos(angle)
	k := 1 - c
	x, y, z := a.X, a.Y, a.Z
	t := Transform{R: [3][3]float64{
		{c + x*x*k, x*y*k - z*s, x*z*k + y*s},
		{y*x*k + z*s, c + y*y*k, y*z*k - x*s},
		{z*x*k - y*s, z*y*k + x*s, c + z*z*k},
	}}
	// keep the pivot fixed
	t.T = r3.Sub(pivot, t.ApplyVector(pivot))
	return t
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Apply maps the point p.
func (t Transform) Apply(p r3.Vec) r3.Vec {
	return r3.Add(t.ApplyVector(p), t.T)
}

// ApplyVector maps the direction v, ignoring translation.
func (t Transform) ApplyVector(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: t.R[0][0]*v.X + t.R[0][1]*v.Y + t.R[0][2]*v.Z,
		Y: t.R[1][0]*v.X + t.R[1][1]*v.Y + t.R[1][2]*v.Z,
		Z: t.R[2][0]*v.X + t.R[2][1]*v.Y + t.R[2][2]*v.Z,
	}
}

// Then returns the transform that applies t first and next second.
func (t Transform) Then(next Transform) Transform {
	var out Transform
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				out.R[i][j] += next.R[i][k] * t.R[k][j]
			}
		}
	}
	out.T = next.Apply(t.T)
	return out
}

// Compose returns the transform applying ts in order, left to right.
func Compose(ts ...Transform) Transform {
	out := Identity()
	for _, t := range ts {
		out = out.Then(t)
	}
	return out
}

// Inverse returns the transform undoing t.
func (t Transform) Inverse() Transform {
	var inv Transform
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			inv.R[i][j] = t.R[j][i]
		}
	}
	inv.T = r3.Scale(-1, inv.ApplyVector(t.T))
	return inv
}

// Near reports whether a and b are within tol of each other on every axis.
func Near(a, b r3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

// AxisAngle returns the rotation part of t as a unit axis and an angle in
// [0, π] following the right hand rule. The identity yields angle 0 and the z axis.
func (t Transform) AxisAngle() (r3.Vec, float64) {
	r := t.R
	c := (r[0][0] + r[1][1] + r[2][2] - 1) / 2
	angle := math.Acos(math.Max(-1, math.Min(1, c)))
	if angle < 1e-12 {
		return r3.Vec{Z: 1}, 0
	}
	if math.Pi-angle > 1e-6 {
		axis := r3.Vec{X: r[2][1] - r[1][2], Y: r[0][2] - r[2][0], Z: r[1][0] - r[0][1]}
		return r3.Unit(axis), angle
	}
	// half turn: R = 2aaᵀ - I, read the axis off the largest diagonal term
	xx, yy, zz := (r[0][0]+1)/2, (r[1][1]+1)/2, (r[2][2]+1)/2
	var axis r3.Vec
	switch {
	case xx >= yy && xx >= zz:
		x := math.Sqrt(xx)
		axis = r3.Vec{X: x, Y: (r[0][1] + r[1][0]) / (4 * x), Z: (r[0][2] + r[2][0]) / (4 * x)}
	case yy >= zz:
		y := math.Sqrt(yy)
		axis = r3.Vec{X: (r[0][1] + r[1][0]) / (4 * y), Y: y, Z: (r[1][2] + r[2][1]) / (4 * y)}
	default:
		z := math.Sqrt(zz)
		axis = r3.Vec{X: (r[0][2] + r[2][0]) / (4 * z), Y: (r[1][2] + r[2][1]) / (4 * z), Z: z}
	}
	return r3.Unit(axis), math.Pi
}
