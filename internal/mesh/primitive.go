package mesh

import (
	"fmt"
	"math"

	"github.com/marcuswu/linkage-assembly/internal/geom"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultSegments is the number of sides used for cylinders shown as primitives.
const DefaultSegments = 32

// Solid presents a primitive as a shape. The primitive keeps its modelling
// position; moves accumulate in Placement and are applied when tessellating.
type Solid struct {
	Primitive geom.Primitive
	Placement geom.Transform
	Segments  int
}

// NewSolid returns p at its own position.
func NewSolid(p geom.Primitive) Solid {
	return Solid{Primitive: p, Placement: geom.Identity()}
}

// Placed returns the primitive at its final position.
func (s Solid) Placed() geom.Primitive {
	return s.Primitive.Place(s.Placement)
}

// Tessellate returns the closed triangle mesh of the placed primitive.
// It panics when the solid holds no primitive.
func (s Solid) Tessellate() Mesh {
	m, err := FromPrimitive(s.Primitive, s.Segments)
	if err != nil {
		panic(err)
	}
	return m.Transformed(s.Placement)
}

// Transformed returns the solid moved by t.
func (s Solid) Transformed(t geom.Transform) Solid {
	s.Placement = s.Placement.Then(t)
	return s
}

// FromPrimitive tessellates p. Cylinders use segments sides, DefaultSegments when segments < 3.
func FromPrimitive(p geom.Primitive, segments int) (Mesh, error) {
	switch p := p.(type) {
	case geom.Box:
		return box(p), nil
	case geom.Cylinder:
		if segments < 3 {
			segments = DefaultSegments
		}
		return cylinder(p, segments), nil
	}
	return Mesh{}, fmt.Errorf("cannot tessellate %T", p)
}

func box(b geom.Box) Mesh {
	c := b.Corners()
	// corner index bits: 1 = -x, 2 = -y, 4 = -z
	return Mesh{
		Name:     "box",
		Vertices: c[:],
		Faces: [][3]int{
			{0, 2, 6}, {0, 6, 4}, // +x
			{1, 5, 7}, {1, 7, 3}, // -x
			{0, 4, 5}, {0, 5, 1}, // +y
			{2, 3, 7}, {2, 7, 6}, // -y
			{0, 1, 3}, {0, 3, 2}, // +z
			{4, 6, 7}, {4, 7, 5}, // -z
		},
	}
}

func cylinder(c geom.Cylinder, n int) Mesh {
	w := c.Frame().ToWorld()
	h := c.Height / 2
	r := c.Radius()
	m := Mesh{Name: "cylinder"}
	for i := 0; i < n; i++ {
		s, co := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		m.Vertices = append(m.Vertices,
			w.Apply(r3.Vec{X: r * co, Y: r * s, Z: h}),
			w.Apply(r3.Vec{X: r * co, Y: r * s, Z: -h}),
		)
	}
	top, bottom := len(m.Vertices), len(m.Vertices)+1
	m.Vertices = append(m.Vertices, w.Apply(r3.Vec{Z: h}), w.Apply(r3.Vec{Z: -h}))
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		t0, b0, t1, b1 := 2*i, 2*i+1, 2*j, 2*j+1
		m.Faces = append(m.Faces,
			[3]int{t0, b0, b1}, [3]int{t0, b1, t1},
			[3]int{top, t0, t1},
			[3]int{bottom, b1, b0},
		)
	}
	return m
}
