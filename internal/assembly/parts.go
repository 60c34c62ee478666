// Package assembly builds the rod, anchor plate and connector and places
// three of each.
package assembly

import (
	"github.com/marcuswu/linkage-assembly/internal/csg"
	"github.com/marcuswu/linkage-assembly/internal/geom"
	"github.com/marcuswu/linkage-assembly/internal/mesher"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	rodLength    = 0.6
	rodThickness = 0.02
	rodWidth     = 0.05
	rodEyeRadius = 0.025
	rodHole      = 0.01

	plateWidth     = 0.08
	plateThickness = 0.01
	plateDepth     = 0.04
	plateDrop      = -0.02
	plateEyeRadius = 0.04
	plateHole      = 0.01

	connectorRadius = 0.01
	connectorLength = 0.07
)

// pins run along y
var pinAxis = r3.Vec{Y: 1}

// RodTree is a bar with a rounded eye and a pin hole at each end.
func RodTree() csg.Node {
	box := geom.NewBox(geom.WorldXY(), rodLength, rodThickness, rodWidth)
	cyl1 := geom.NewCylinder(r3.Vec{X: rodLength / 2}, pinAxis, rodEyeRadius, rodThickness)
	cyl2 := geom.NewCylinder(r3.Vec{X: -rodLength / 2}, pinAxis, rodEyeRadius, rodThickness)
	hole1 := geom.NewCylinder(r3.Vec{X: rodLength / 2}, pinAxis, rodHole, rodThickness)
	hole2 := geom.NewCylinder(r3.Vec{X: -rodLength / 2}, pinAxis, rodHole, rodThickness)

	return csg.Difference(
		csg.Difference(csg.Union(csg.Leaf(box), csg.Leaf(cyl1), csg.Leaf(cyl2)), csg.Leaf(hole1)),
		csg.Leaf(hole2),
	)
}

// PlateTree is an anchor plate: a block hanging below a round eye with a pin hole.
func PlateTree() csg.Node {
	box := geom.NewBox(geom.WorldXY(), plateWidth, plateThickness, plateDepth)
	box = box.Transformed(geom.Translation(r3.Vec{Z: plateDrop}))

	cylinder := geom.NewCylinder(r3.Vec{}, pinAxis, plateEyeRadius, plateThickness)
	hole := geom.NewCylinder(r3.Vec{}, pinAxis, plateHole, plateThickness)

	return csg.Difference(csg.Union(csg.Leaf(box), csg.Leaf(cylinder)), csg.Leaf(hole))
}

// Connector is the pin joining rods and plates.
func Connector() geom.Cylinder {
	return geom.NewCylinder(r3.Vec{}, pinAxis, connectorRadius, connectorLength)
}

// RodOptions are the mesh options for the rod.
func RodOptions() mesher.Options {
	return mesher.Options{MeshSizeFromCurvature: true, MinNodesCircle: 16}
}

// PlateOptions are the mesh options for the plate.
func PlateOptions() mesher.Options {
	return mesher.Options{MeshSizeFromCurvature: true, MinNodesCircle: 32}
}
