package csg

import (
	"fmt"

	"github.com/marcuswu/linkage-assembly/internal/geom"
)

// Body is a primitive with other primitives removed from it.
type Body struct {
	Base geom.Primitive
	Cuts []geom.Primitive
}

// Bodies rewrites n as a list of bodies whose union is n. It fails with
// ErrUnsupportedTree when something removed is itself a difference.
func Bodies(n Node) ([]Body, error) {
	if err := Validate(n); err != nil {
		return nil, err
	}
	return bodies(n)
}

func bodies(n Node) ([]Body, error) {
	switch n := n.(type) {
	case *Solid:
		return []Body{{Base: n.Primitive}}, nil
	case Operation:
		if n.Op == OpUnion {
			var out []Body
			for _, c := range n.Operands {
				bs, err := bodies(c)
				if err != nil {
					return nil, err
				}
				out = append(out, bs...)
			}
			return out, nil
		}
		base, err := bodies(n.Operands[0])
		if err != nil {
			return nil, err
		}
		var cuts []geom.Primitive
		for i, c := range n.Operands[1:] {
			ps, ok := unionLeaves(c)
			if !ok {
				return nil, fmt.Errorf("difference operand %d: %w", i+1, ErrUnsupportedTree)
			}
			cuts = append(cuts, ps...)
		}
		for i := range base {
			base[i].Cuts = append(append([]geom.Primitive(nil), base[i].Cuts...), cuts...)
		}
		return base, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownOperation, n)
}

// unionLeaves flattens a tree made only of unions.
func unionLeaves(n Node) ([]geom.Primitive, bool) {
	switch n := n.(type) {
	case *Solid:
		return []geom.Primitive{n.Primitive}, true
	case Operation:
		if n.Op != OpUnion {
			return nil, false
		}
		var out []geom.Primitive
		for _, c := range n.Operands {
			ps, ok := unionLeaves(c)
			if !ok {
				return nil, false
			}
			out = append(out, ps...)
		}
		return out, true
	}
	return nil, false
}
