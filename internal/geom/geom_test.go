package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-9

func TestTranslationRoundTrip(t *testing.T) {
	v := r3.Vec{X: 0.3, Y: -0.02, Z: 0.015}
	p := r3.Vec{X: 0.123, Y: 4.5, Z: -0.7}

	back := Translation(v).Then(Translation(r3.Scale(-1, v)))
	require.True(t, Near(p, back.Apply(p), tol))
}

func TestRotationRoundTrip(t *testing.T) {
	axis := r3.Vec{Y: -1}
	there := Rotation(axis, Radians(60), r3.Vec{})
	back := Rotation(axis, Radians(-60), r3.Vec{})

	for _, p := range []r3.Vec{{X: 0.6}, {X: -0.3, Y: 0.01, Z: 0.025}, {Z: 1}} {
		require.True(t, Near(p, back.Apply(there.Apply(p)), tol))
	}
}

func TestRotationKeepsPivot(t *testing.T) {
	pivot := r3.Vec{X: 0.6}
	r := Rotation(r3.Vec{Y: 1}, Radians(60), pivot)
	require.True(t, Near(pivot, r.Apply(pivot), tol))

	// +60 degrees about +y takes +x toward -z
	p := r.Apply(r3.Vec{X: 1.6})
	require.InDelta(t, 0.6+math.Cos(Radians(60)), p.X, tol)
	require.InDelta(t, -math.Sin(Radians(60)), p.Z, tol)
}

func TestThenOrderMatters(t *testing.T) {
	r := Rotation(r3.Vec{Z: 1}, Radians(90), r3.Vec{})
	tr := Translation(r3.Vec{X: 1})

	a := r.Then(tr).Apply(r3.Vec{X: 1})
	b := tr.Then(r).Apply(r3.Vec{X: 1})
	require.True(t, Near(r3.Vec{X: 1, Y: 1}, a, tol))
	require.True(t, Near(r3.Vec{Y: 2}, b, tol))
	require.True(t, Near(b, Compose(tr, r).Apply(r3.Vec{X: 1}), tol))
}

func TestInverse(t *testing.T) {
	tr := Compose(
		Rotation(r3.Vec{X: 1, Y: 1}, 0.7, r3.Vec{Z: 2}),
		Translation(r3.Vec{X: 0.5, Y: -3}),
	)
	p := r3.Vec{X: 1, Y: 2, Z: 3}
	require.True(t, Near(p, tr.Inverse().Apply(tr.Apply(p)), tol))
}

func TestBoxBounds(t *testing.T) {
	b := NewBox(WorldXY(), 0.08, 0.01, 0.04).Transformed(Translation(r3.Vec{Z: -0.02}))
	got := b.Bounds()
	require.True(t, Near(r3.Vec{X: -0.04, Y: -0.005, Z: -0.04}, got.Min, tol))
	require.True(t, Near(r3.Vec{X: 0.04, Y: 0.005, Z: 0}, got.Max, tol))
}

func TestCylinderBounds(t *testing.T) {
	c := NewCylinder(r3.Vec{X: 0.3}, r3.Vec{Y: 1}, 0.025, 0.02)
	got := c.Bounds()
	require.True(t, Near(r3.Vec{X: 0.275, Y: -0.01, Z: -0.025}, got.Min, tol))
	require.True(t, Near(r3.Vec{X: 0.325, Y: 0.01, Z: 0.025}, got.Max, tol))
}

func TestTransformedLeavesSource(t *testing.T) {
	c := NewCylinder(r3.Vec{}, r3.Vec{Y: 1}, 0.01, 0.07)
	moved := c.Transformed(Translation(r3.Vec{X: 0.6}))
	require.Equal(t, r3.Vec{}, c.Center())
	require.True(t, Near(r3.Vec{X: 0.6}, moved.Center(), tol))
}

func TestCylinderFrame(t *testing.T) {
	for _, n := range []r3.Vec{{Y: 1}, {X: 1}, {X: 1, Y: 1, Z: 1}} {
		f := NewCylinder(r3.Vec{}, n, 1, 1).Frame()
		require.InDelta(t, 0, r3.Dot(f.XAxis, f.YAxis), tol)
		require.True(t, Near(r3.Unit(n), f.ZAxis(), tol))
	}
}

func TestAxisAngleRebuildsRotation(t *testing.T) {
	axes := []r3.Vec{{Y: -1}, {Y: 1}, {X: 1, Y: 2, Z: -0.5}, {Z: 1}}
	angles := []float64{Radians(60), Radians(-60), Radians(179.9999), math.Pi, 0.3}
	for _, a := range axes {
		for _, ang := range angles {
			r := Rotation(a, ang, r3.Vec{})
			axis, angle := r.AxisAngle()
			rebuilt := Rotation(axis, angle, r3.Vec{})
			for _, p := range []r3.Vec{{X: 1}, {Y: 1}, {Z: 1}, {X: 0.3, Y: -0.2, Z: 0.7}} {
				require.True(t, Near(r.Apply(p), rebuilt.Apply(p), 1e-6), "axis %v angle %v", a, ang)
			}
		}
	}

	axis, angle := Identity().AxisAngle()
	require.Zero(t, angle)
	require.Equal(t, r3.Vec{Z: 1}, axis)
}
