// Package mesh holds the indexed triangle meshes produced by the mesh pipeline.
package mesh

import (
	"math"

	"github.com/marcuswu/linkage-assembly/internal/geom"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is an indexed triangle mesh. Meshes are treated as values: nothing in
// this package modifies a mesh after it has been built.
type Mesh struct {
	Name     string
	Vertices []r3.Vec
	Faces    [][3]int
}

// Edge is an undirected edge with A < B.
type Edge struct{ A, B int }

func newEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

func (m Mesh) VertexCount() int { return len(m.Vertices) }

func (m Mesh) FaceCount() int { return len(m.Faces) }

func (m Mesh) IsEmpty() bool { return len(m.Faces) == 0 }

// Bounds returns the bounding box of the vertices.
func (m Mesh) Bounds() r3.Box {
	return geom.BoundsOf(m.Vertices)
}

// Transformed returns a copy of the mesh moved by t. The receiver is unchanged.
func (m Mesh) Transformed(t geom.Transform) Mesh {
	out := Mesh{
		Name:     m.Name,
		Vertices: make([]r3.Vec, len(m.Vertices)),
		Faces:    make([][3]int, len(m.Faces)),
	}
	for i, v := range m.Vertices {
		out.Vertices[i] = t.Apply(v)
	}
	copy(out.Faces, m.Faces)
	return out
}

// Renamed returns the mesh under a new name, sharing its geometry.
func (m Mesh) Renamed(name string) Mesh {
	m.Name = name
	return m
}

// Edges counts how many faces use each undirected edge.
func (m Mesh) Edges() map[Edge]int {
	out := make(map[Edge]int, len(m.Faces)*3/2)
	for _, f := range m.Faces {
		out[newEdge(f[0], f[1])]++
		out[newEdge(f[1], f[2])]++
		out[newEdge(f[2], f[0])]++
	}
	return out
}

// IsClosed reports whether every edge is shared by exactly two faces.
func (m Mesh) IsClosed() bool {
	if m.IsEmpty() {
		return false
	}
	for _, n := range m.Edges() {
		if n != 2 {
			return false
		}
	}
	return true
}

// Triangle returns the corner positions of face i.
func (m Mesh) Triangle(i int) [3]r3.Vec {
	f := m.Faces[i]
	return [3]r3.Vec{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]}
}

// Normal returns the unit normal of face i, or the zero vector for a degenerate face.
func (m Mesh) Normal(i int) r3.Vec {
	t := m.Triangle(i)
	n := r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0]))
	if l := r3.Norm(n); l > 0 {
		return r3.Scale(1/l, n)
	}
	return r3.Vec{}
}

// Area returns the total surface area.
func (m Mesh) Area() float64 {
	var a float64
	for i := range m.Faces {
		t := m.Triangle(i)
		a += r3.Norm(r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0]))) / 2
	}
	return a
}

// Volume returns the signed enclosed volume. It is only meaningful for closed meshes.
func (m Mesh) Volume() float64 {
	var v float64
	for i := range m.Faces {
		t := m.Triangle(i)
		v += r3.Dot(t[0], r3.Cross(t[1], t[2])) / 6
	}
	return v
}

// Tessellate returns the mesh itself, so a Mesh can stand wherever a shape is presented.
func (m Mesh) Tessellate() Mesh { return m }

// Merge concatenates meshes into one, keeping each part's faces.
func Merge(name string, parts ...Mesh) Mesh {
	out := Mesh{Name: name}
	for _, p := range parts {
		base := len(out.Vertices)
		out.Vertices = append(out.Vertices, p.Vertices...)
		for _, f := range p.Faces {
			out.Faces = append(out.Faces, [3]int{f[0] + base, f[1] + base, f[2] + base})
		}
	}
	return out
}

// MaxDistance returns the largest distance between corresponding vertices of
// two meshes with the same vertex count, or +Inf when the counts differ.
func MaxDistance(a, b Mesh) float64 {
	if len(a.Vertices) != len(b.Vertices) {
		return math.Inf(1)
	}
	var d float64
	for i := range a.Vertices {
		d = math.Max(d, r3.Norm(r3.Sub(a.Vertices[i], b.Vertices[i])))
	}
	return d
}
