package mesher

import (
	"github.com/marcuswu/linkage-assembly/internal/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// cubeTets splits a cell into six tetrahedra around its main diagonal. Every
// cell uses the same split, so the diagonals on shared faces agree and the
// surface extracted from neighbouring cells joins without gaps.
// Corners are encoded as bit 0 = +x, bit 1 = +y, bit 2 = +z.
var cubeTets = [6][4]int{
	{0, 1, 3, 7},
	{0, 1, 5, 7},
	{0, 2, 3, 7},
	{0, 2, 6, 7},
	{0, 4, 5, 7},
	{0, 4, 6, 7},
}

type edgeKey struct{ a, b int }

// polygonizer extracts the zero level set of a sampled grid. Vertices are
// keyed by the lattice edge they lie on, so every vertex is shared by all
// triangles touching that edge.
type polygonizer struct {
	g     *grid
	verts map[edgeKey]int
	out   mesh.Mesh
}

func polygonize(g *grid, name string) mesh.Mesh {
	p := &polygonizer{g: g, verts: make(map[edgeKey]int), out: mesh.Mesh{Name: name}}
	var corner [8]int
	for k := 0; k < g.nz; k++ {
		for j := 0; j < g.ny; j++ {
			for i := 0; i < g.nx; i++ {
				for c := range corner {
					corner[c] = g.index(i+c&1, j+(c>>1)&1, k+(c>>2)&1)
				}
				for _, t := range cubeTets {
					p.tet([4]int{corner[t[0]], corner[t[1]], corner[t[2]], corner[t[3]]})
				}
			}
		}
	}
	return p.out
}

func (p *polygonizer) inside(n int) bool {
	return p.g.values[n] < 0
}

func (p *polygonizer) tet(n [4]int) {
	var in, out []int
	for _, v := range n {
		if p.inside(v) {
			in = append(in, v)
		} else {
			out = append(out, v)
		}
	}
	switch len(in) {
	case 1:
		p.triangle(in, out, p.vertex(in[0], out[0]), p.vertex(in[0], out[1]), p.vertex(in[0], out[2]))
	case 3:
		p.triangle(in, out, p.vertex(in[0], out[0]), p.vertex(in[1], out[0]), p.vertex(in[2], out[0]))
	case 2:
		// quad around the tet, split along a diagonal joining opposite edges
		a := p.vertex(in[0], out[0])
		b := p.vertex(in[0], out[1])
		c := p.vertex(in[1], out[1])
		d := p.vertex(in[1], out[0])
		p.triangle(in, out, a, b, c)
		p.triangle(in, out, a, c, d)
	}
}

// vertex returns the surface vertex on the lattice edge between an inside and an outside node.
func (p *polygonizer) vertex(in, out int) int {
	key := edgeKey{a: in, b: out}
	if key.a > key.b {
		key.a, key.b = key.b, key.a
	}
	if v, ok := p.verts[key]; ok {
		return v
	}
	pa, pb := p.g.positionOf(key.a), p.g.positionOf(key.b)
	va, vb := p.g.values[key.a], p.g.values[key.b]
	t := va / (va - vb)
	v := len(p.out.Vertices)
	p.out.Vertices = append(p.out.Vertices, r3.Add(pa, r3.Scale(t, r3.Sub(pb, pa))))
	p.verts[key] = v
	return v
}

// triangle appends a face wound so its normal points from the inside nodes to the outside ones.
func (p *polygonizer) triangle(in, out []int, a, b, c int) {
	va, vb, vc := p.out.Vertices[a], p.out.Vertices[b], p.out.Vertices[c]
	n := r3.Cross(r3.Sub(vb, va), r3.Sub(vc, va))
	if r3.Dot(n, r3.Sub(p.centroid(out), p.centroid(in))) < 0 {
		b, c = c, b
	}
	p.out.Faces = append(p.out.Faces, [3]int{a, b, c})
}

func (p *polygonizer) centroid(nodes []int) r3.Vec {
	var s r3.Vec
	for _, n := range nodes {
		s = r3.Add(s, p.g.positionOf(n))
	}
	return r3.Scale(1/float64(len(nodes)), s)
}
