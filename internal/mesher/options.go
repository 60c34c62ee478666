package mesher

import (
	"errors"
	"fmt"
	"math"

	"github.com/marcuswu/linkage-assembly/internal/csg"
)

var ErrInvalidOptions = errors.New("invalid mesh options")

// Options control the fidelity of the generated mesh. They never change the
// shape described by the tree.
//
// Sizing is uniform: the whole tree is sampled on one grid whose spacing comes
// from a single radius, so curvature sizing refines flat regions as much as the
// tightest curve. Node counts grow with the cube of MinNodesCircle; the rod at
// 64 nodes per circle yields several hundred thousand vertices.
type Options struct {
	// MeshSizeFromCurvature sizes cells from the tightest curvature in the tree
	// instead of the loosest.
	MeshSizeFromCurvature bool `toml:"meshsize_from_curvature"`
	// MinNodesCircle is the minimum number of nodes along a full circular edge.
	MinNodesCircle int `toml:"min_nodes_circle"`
}

// DefaultOptions returns the options used when none are set.
func DefaultOptions() Options {
	return Options{MinNodesCircle: 16}
}

func (o Options) Validate() error {
	if o.MinNodesCircle <= 0 {
		return fmt.Errorf("%w: min_nodes_circle must be positive, got %d", ErrInvalidOptions, o.MinNodesCircle)
	}
	return nil
}

const (
	// cells per box extent when a tree has no curved surfaces
	boxCellsPerExtent = 4
	// thinnest box extent must span at least this many cells
	minCellsAcross = 2
	// upper bound on sampled grid nodes
	maxGridNodes = 16 << 20
)

// cellSize picks the grid spacing for tree under o.
func cellSize(tree csg.Node, o Options) float64 {
	h := math.Inf(1)
	if lo, hi, ok := csg.RadiusRange(tree); ok {
		r := hi
		if o.MeshSizeFromCurvature {
			r = lo
		}
		h = 2 * math.Pi * r / float64(o.MinNodesCircle)
	}
	if e := csg.MinBoxExtent(tree); e > 0 {
		if math.IsInf(h, 1) {
			h = e / boxCellsPerExtent
		}
		h = math.Min(h, e/minCellsAcross)
	}
	return h
}
