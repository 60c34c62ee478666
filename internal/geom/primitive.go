package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Primitive is a solid leaf of a CSG tree. Implementations are immutable values.
type Primitive interface {
	// Bounds returns the axis aligned bounding box of the solid.
	Bounds() r3.Box
	// Place returns a copy of the primitive moved by t.
	Place(t Transform) Primitive

	primitive()
}

// Frame is a right handed coordinate system.
type Frame struct {
	Origin r3.Vec
	XAxis  r3.Vec
	YAxis  r3.Vec
}

// WorldXY is the frame at the origin aligned with the world axes.
func WorldXY() Frame {
	return Frame{XAxis: r3.Vec{X: 1}, YAxis: r3.Vec{Y: 1}}
}

// ZAxis returns the frame normal.
func (f Frame) ZAxis() r3.Vec {
	return r3.Unit(r3.Cross(f.XAxis, f.YAxis))
}

// Transformed returns the frame moved by t.
func (f Frame) Transformed(t Transform) Frame {
	return Frame{
		Origin: t.Apply(f.Origin),
		XAxis:  t.ApplyVector(f.XAxis),
		YAxis:  t.ApplyVector(f.YAxis),
	}
}

// ToWorld returns the transform mapping frame-local coordinates to world coordinates.
func (f Frame) ToWorld() Transform {
	x, y, z := r3.Unit(f.XAxis), r3.Unit(f.YAxis), f.ZAxis()
	return Transform{
		R: [3][3]float64{
			{x.X, y.X, z.X},
			{x.Y, y.Y, z.Y},
			{x.Z, y.Z, z.Z},
		},
		T: f.Origin,
	}
}

// Plane is an oriented plane through Point.
type Plane struct {
	Point  r3.Vec
	Normal r3.Vec
}

// Circle lies in Plane, centered on the plane point.
type Circle struct {
	Plane  Plane
	Radius float64
}

// Box is centered on its frame origin.
type Box struct {
	Frame               Frame
	XSize, YSize, ZSize float64
}

// NewBox returns a box with the given extents centered on frame.
func NewBox(frame Frame, xsize, ysize, zsize float64) Box {
	return Box{Frame: frame, XSize: xsize, YSize: ysize, ZSize: zsize}
}

func (Box) primitive() {}

// Corners returns the eight box corners in world coordinates.
func (b Box) Corners() [8]r3.Vec {
	w := b.Frame.ToWorld()
	var out [8]r3.Vec
	for i := range out {
		p := r3.Vec{X: b.XSize / 2, Y: b.YSize / 2, Z: b.ZSize / 2}
		if i&1 != 0 {
			p.X = -p.X
		}
		if i&2 != 0 {
			p.Y = -p.Y
		}
		if i&4 != 0 {
			p.Z = -p.Z
		}
		out[i] = w.Apply(p)
	}
	return out
}

func (b Box) Bounds() r3.Box {
	c := b.Corners()
	return BoundsOf(c[:])
}

// Transformed returns the box moved by t.
func (b Box) Transformed(t Transform) Box {
	b.Frame = b.Frame.Transformed(t)
	return b
}

func (b Box) Place(t Transform) Primitive { return b.Transformed(t) }

// Cylinder is centered on its base circle center and extends Height/2 both ways
// along the circle normal.
type Cylinder struct {
	Circle Circle
	Height float64
}

// NewCylinder returns a cylinder of the given radius and height around the axis
// through center along normal.
func NewCylinder(center, normal r3.Vec, radius, height float64) Cylinder {
	return Cylinder{Circle: Circle{Plane: Plane{Point: center, Normal: normal}, Radius: radius}, Height: height}
}

func (Cylinder) primitive() {}

// Center returns the cylinder center.
func (c Cylinder) Center() r3.Vec { return c.Circle.Plane.Point }

// Axis returns the unit axis direction.
func (c Cylinder) Axis() r3.Vec { return r3.Unit(c.Circle.Plane.Normal) }

// Radius returns the radius of the base circle.
func (c Cylinder) Radius() float64 { return c.Circle.Radius }

// Frame returns a frame at the cylinder center whose Z axis is the cylinder axis.
func (c Cylinder) Frame() Frame {
	z := c.Axis()
	helper := r3.Vec{X: 1}
	if math.Abs(z.X) > 0.9 {
		helper = r3.Vec{Y: 1}
	}
	x := r3.Unit(r3.Cross(helper, z))
	return Frame{Origin: c.Center(), XAxis: x, YAxis: r3.Cross(z, x)}
}

func (c Cylinder) Bounds() r3.Box {
	n := c.Axis()
	h, r := c.Height/2, c.Circle.Radius
	ext := func(ni float64) float64 {
		return math.Abs(ni)*h + r*math.Sqrt(math.Max(0, 1-ni*ni))
	}
	e := r3.Vec{X: ext(n.X), Y: ext(n.Y), Z: ext(n.Z)}
	return r3.Box{Min: r3.Sub(c.Center(), e), Max: r3.Add(c.Center(), e)}
}

// Transformed returns the cylinder moved by t.
func (c Cylinder) Transformed(t Transform) Cylinder {
	c.Circle.Plane.Point = t.Apply(c.Circle.Plane.Point)
	c.Circle.Plane.Normal = t.ApplyVector(c.Circle.Plane.Normal)
	return c
}

func (c Cylinder) Place(t Transform) Primitive { return c.Transformed(t) }

// BoundsOf returns the bounding box of pts. An empty slice yields the zero box.
func BoundsOf(pts []r3.Vec) r3.Box {
	if len(pts) == 0 {
		return r3.Box{}
	}
	b := r3.Box{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b.Min = r3.Vec{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)}
		b.Max = r3.Vec{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)}
	}
	return b
}

// Merge returns the smallest box containing a and b.
func Merge(a, b r3.Box) r3.Box {
	return BoundsOf([]r3.Vec{a.Min, a.Max, b.Min, b.Max})
}
