package mesher

import (
	"math"

	"github.com/soypat/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

// padCells keeps the surface away from the grid border so every surface
// triangle lies strictly inside the sampled volume.
const padCells = 2

// grid holds field samples on a regular lattice of nodes.
type grid struct {
	origin     r3.Vec
	step       float64
	nx, ny, nz int // cells per axis; nodes are one more
	values     []float64
}

func newGrid(bounds r3.Box, step float64) *grid {
	size := r3.Sub(bounds.Max, bounds.Min)
	cells := func(extent float64) int {
		return int(math.Ceil(extent/step)) + 2*padCells
	}
	// grow the step until the lattice fits in memory
	for {
		n := float64(cells(size.X)+1) * float64(cells(size.Y)+1) * float64(cells(size.Z)+1)
		if n <= maxGridNodes {
			break
		}
		step *= math.Cbrt(n / maxGridNodes)
	}
	g := &grid{
		step: step,
		nx:   cells(size.X),
		ny:   cells(size.Y),
		nz:   cells(size.Z),
	}
	// center the lattice on the bounds
	span := r3.Vec{X: float64(g.nx) * step, Y: float64(g.ny) * step, Z: float64(g.nz) * step}
	center := r3.Scale(0.5, r3.Add(bounds.Min, bounds.Max))
	g.origin = r3.Sub(center, r3.Scale(0.5, span))
	return g
}

func (g *grid) index(i, j, k int) int {
	return (k*(g.ny+1)+j)*(g.nx+1) + i
}

func (g *grid) position(i, j, k int) r3.Vec {
	return r3.Vec{
		X: g.origin.X + float64(i)*g.step,
		Y: g.origin.Y + float64(j)*g.step,
		Z: g.origin.Z + float64(k)*g.step,
	}
}

// positionOf returns the position of the node with linear index n.
func (g *grid) positionOf(n int) r3.Vec {
	i := n % (g.nx + 1)
	n /= g.nx + 1
	j := n % (g.ny + 1)
	k := n / (g.ny + 1)
	return g.position(i, j, k)
}

func (g *grid) nodes() int {
	return (g.nx + 1) * (g.ny + 1) * (g.nz + 1)
}

// sample evaluates s at every node.
func (g *grid) sample(s sdf.SDF3) {
	g.values = make([]float64, g.nodes())
	for k := 0; k <= g.nz; k++ {
		for j := 0; j <= g.ny; j++ {
			for i := 0; i <= g.nx; i++ {
				g.values[g.index(i, j, k)] = s.Evaluate(g.position(i, j, k))
			}
		}
	}
}
