// Package csg assembles primitives into boolean operation trees.
//
// A tree is built from Leaf, Union and Difference. Construction never
// validates; Validate is run by the mesh pipeline when the tree is evaluated.
package csg

import (
	"errors"
	"fmt"
	"math"

	"github.com/marcuswu/linkage-assembly/internal/geom"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	ErrEmptyOperands       = errors.New("operation has no operands")
	ErrUnknownOperation    = errors.New("unknown operation")
	ErrNilNode             = errors.New("nil node")
	ErrDegeneratePrimitive = errors.New("degenerate primitive")
	ErrUnsupportedTree     = errors.New("tree cannot be split into bodies")
)

// Node is either a *Solid or an Operation.
type Node interface {
	node()
}

// Solid is a tree leaf wrapping a primitive.
type Solid struct {
	Primitive geom.Primitive
}

func (*Solid) node() {}

// Leaf wraps p as a tree node.
func Leaf(p geom.Primitive) *Solid {
	return &Solid{Primitive: p}
}

// Op names a boolean operation.
type Op int

const (
	OpUnion Op = iota
	OpDifference
)

func (o Op) String() string {
	switch o {
	case OpUnion:
		return "union"
	case OpDifference:
		return "difference"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Operation applies Op to an ordered list of operands.
// For OpDifference the first operand is the base and the rest are removed from it.
type Operation struct {
	Op       Op
	Operands []Node
}

func (Operation) node() {}

// Union returns the union of nodes.
func Union(nodes ...Node) Operation {
	return Operation{Op: OpUnion, Operands: nodes}
}

// Difference returns base minus every node in cuts. A difference with no
// cuts is the base itself.
func Difference(base Node, cuts ...Node) Operation {
	return Operation{Op: OpDifference, Operands: append([]Node{base}, cuts...)}
}

// Walk calls fn for n and every node below it, depth first, parents first.
func Walk(n Node, fn func(Node)) {
	fn(n)
	if op, ok := n.(Operation); ok {
		for _, c := range op.Operands {
			Walk(c, fn)
		}
	}
}

// Leaves returns the primitives of the tree in operand order.
func Leaves(n Node) []geom.Primitive {
	var out []geom.Primitive
	Walk(n, func(n Node) {
		if s, ok := n.(*Solid); ok && s != nil {
			out = append(out, s.Primitive)
		}
	})
	return out
}

// Validate reports the first structural or geometric problem in the tree.
func Validate(n Node) error {
	return validate(n, "root")
}

func validate(n Node, path string) error {
	switch n := n.(type) {
	case nil:
		return fmt.Errorf("%s: %w", path, ErrNilNode)
	case *Solid:
		if n == nil || n.Primitive == nil {
			return fmt.Errorf("%s: %w", path, ErrNilNode)
		}
		if err := checkPrimitive(n.Primitive); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return nil
	case Operation:
		if n.Op != OpUnion && n.Op != OpDifference {
			return fmt.Errorf("%s: %w: %s", path, ErrUnknownOperation, n.Op)
		}
		if len(n.Operands) == 0 {
			return fmt.Errorf("%s: %s: %w", path, n.Op, ErrEmptyOperands)
		}
		for i, c := range n.Operands {
			if err := validate(c, fmt.Sprintf("%s/%s[%d]", path, n.Op, i)); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%s: %w: %T", path, ErrUnknownOperation, n)
	}
}

func checkPrimitive(p geom.Primitive) error {
	switch p := p.(type) {
	case geom.Box:
		if !(p.XSize > 0 && p.YSize > 0 && p.ZSize > 0) {
			return fmt.Errorf("%w: box extents %g x %g x %g", ErrDegeneratePrimitive, p.XSize, p.YSize, p.ZSize)
		}
		if r3.Norm(r3.Cross(p.Frame.XAxis, p.Frame.YAxis)) == 0 {
			return fmt.Errorf("%w: box frame axes are parallel", ErrDegeneratePrimitive)
		}
	case geom.Cylinder:
		if !(p.Circle.Radius > 0 && p.Height > 0) {
			return fmt.Errorf("%w: cylinder radius %g height %g", ErrDegeneratePrimitive, p.Circle.Radius, p.Height)
		}
		if r3.Norm(p.Circle.Plane.Normal) == 0 {
			return fmt.Errorf("%w: cylinder normal is zero", ErrDegeneratePrimitive)
		}
	default:
		return fmt.Errorf("%w: unsupported primitive %T", ErrDegeneratePrimitive, p)
	}
	return nil
}

// Bounds returns a box containing the solid described by n. Removed material is
// ignored, so the box is conservative for differences.
func Bounds(n Node) r3.Box {
	switch n := n.(type) {
	case *Solid:
		return n.Primitive.Bounds()
	case Operation:
		if len(n.Operands) == 0 {
			return r3.Box{}
		}
		if n.Op == OpDifference {
			return Bounds(n.Operands[0])
		}
		b := Bounds(n.Operands[0])
		for _, c := range n.Operands[1:] {
			b = geom.Merge(b, Bounds(c))
		}
		return b
	}
	return r3.Box{}
}

// RadiusRange returns the smallest and largest cylinder radius in the tree.
// ok is false when the tree has no cylinders.
func RadiusRange(n Node) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range Leaves(n) {
		if c, isCyl := p.(geom.Cylinder); isCyl {
			lo = math.Min(lo, c.Radius())
			hi = math.Max(hi, c.Radius())
			ok = true
		}
	}
	return lo, hi, ok
}

// MinBoxExtent returns the smallest box extent in the tree, or 0 when there are no boxes.
func MinBoxExtent(n Node) float64 {
	out := math.Inf(1)
	for _, p := range Leaves(n) {
		if b, isBox := p.(geom.Box); isBox {
			out = math.Min(out, math.Min(b.XSize, math.Min(b.YSize, b.ZSize)))
		}
	}
	if math.IsInf(out, 1) {
		return 0
	}
	return out
}
