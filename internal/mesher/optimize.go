package mesher

import (
	"math"

	"github.com/marcuswu/linkage-assembly/internal/mesh"
	"github.com/soypat/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	projectIterations = 3
	// fraction of the cell size used as the finite difference step
	gradientStep = 1e-3
	// a vertex never moves further than this many cells in total
	maxShiftCells = 0.5
)

// project moves every vertex toward the zero level set of s along the field
// gradient. Faces are copied untouched, so connectivity is preserved.
func project(m mesh.Mesh, s sdf.SDF3, cell float64) mesh.Mesh {
	out := mesh.Mesh{
		Name:     m.Name,
		Vertices: make([]r3.Vec, len(m.Vertices)),
		Faces:    make([][3]int, len(m.Faces)),
	}
	copy(out.Faces, m.Faces)
	eps := cell * gradientStep
	limit := cell * maxShiftCells
	for i, start := range m.Vertices {
		p := start
		for it := 0; it < projectIterations; it++ {
			d := s.Evaluate(p)
			if d == 0 {
				break
			}
			g := gradient(s, p, eps)
			g2 := r3.Dot(g, g)
			if g2 < 1e-12 {
				break
			}
			p = r3.Sub(p, r3.Scale(d/g2, g))
		}
		if shift := r3.Sub(p, start); r3.Norm(shift) > limit {
			p = r3.Add(start, r3.Scale(limit/r3.Norm(shift), shift))
		}
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) {
			p = start
		}
		out.Vertices[i] = p
	}
	return out
}

func gradient(s sdf.SDF3, p r3.Vec, eps float64) r3.Vec {
	dx := r3.Vec{X: eps}
	dy := r3.Vec{Y: eps}
	dz := r3.Vec{Z: eps}
	return r3.Scale(1/(2*eps), r3.Vec{
		X: s.Evaluate(r3.Add(p, dx)) - s.Evaluate(r3.Sub(p, dx)),
		Y: s.Evaluate(r3.Add(p, dy)) - s.Evaluate(r3.Sub(p, dy)),
		Z: s.Evaluate(r3.Add(p, dz)) - s.Evaluate(r3.Sub(p, dz)),
	})
}
