package csg

import (
	"fmt"

	"github.com/marcuswu/linkage-assembly/internal/geom"
	"github.com/soypat/sdf"
	form3 "github.com/soypat/sdf/form3/must3"
	"gonum.org/v1/gonum/spatial/r3"
)

// SDF evaluates the tree into a signed distance field. The tree is validated first.
func SDF(n Node) (sdf.SDF3, error) {
	if err := Validate(n); err != nil {
		return nil, err
	}
	return toSDF(n)
}

func toSDF(n Node) (sdf.SDF3, error) {
	switch n := n.(type) {
	case *Solid:
		return primitiveSDF(n.Primitive)
	case Operation:
		children := make([]sdf.SDF3, 0, len(n.Operands))
		for _, c := range n.Operands {
			s, err := toSDF(c)
			if err != nil {
				return nil, err
			}
			children = append(children, s)
		}
		switch n.Op {
		case OpUnion:
			if len(children) == 1 {
				return children[0], nil
			}
			return sdf.Union3D(children...), nil
		case OpDifference:
			out := children[0]
			for _, cut := range children[1:] {
				out = sdf.Difference3D(out, cut)
			}
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownOperation, n)
}

func primitiveSDF(p geom.Primitive) (sdf.SDF3, error) {
	switch p := p.(type) {
	case geom.Box:
		s := form3.Box(r3.Vec{X: p.XSize, Y: p.YSize, Z: p.ZSize}, 0)
		return place(s, p.Frame.ToWorld()), nil
	case geom.Cylinder:
		// library cylinders are centered on the origin along z
		s := form3.Cylinder(p.Height, p.Radius(), 0)
		return place(s, p.Frame().ToWorld()), nil
	}
	return nil, fmt.Errorf("%w: unsupported primitive %T", ErrDegeneratePrimitive, p)
}

// place moves a field centered on the origin into the world by a rigid transform.
func place(s sdf.SDF3, toWorld geom.Transform) sdf.SDF3 {
	m := sdf.Translate3d(toWorld.T)
	if axis, angle := toWorld.AxisAngle(); angle != 0 {
		m = m.Mul(sdf.Rotate3d(axis, angle))
	}
	return sdf.Transform3D(s, m)
}
