package assembly

import (
	"context"
	"fmt"

	"github.com/marcuswu/linkage-assembly/internal/csg"
	"github.com/marcuswu/linkage-assembly/internal/geom"
	"github.com/marcuswu/linkage-assembly/internal/mesh"
	"github.com/marcuswu/linkage-assembly/internal/mesher"
	"github.com/marcuswu/linkage-assembly/internal/scene"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/spatial/r3"
)

// Kind tells the parts apart.
type Kind string

const (
	KindRod       Kind = "rod"
	KindPlate     Kind = "plate"
	KindConnector Kind = "connector"
)

// Instance is one placed part.
type Instance struct {
	Name  string
	Kind  Kind
	Shape scene.Shape
	// Placement maps the part's modelling coordinates to its final position.
	Placement geom.Transform
	// nil means the presenter default
	FaceColor *scene.Color
	LineColor *scene.Color
}

var (
	grey  = scene.Color{R: 0.4, G: 0.4, B: 0.4}
	greyL = scene.Color{R: 0.6, G: 0.6, B: 0.6}
	black = scene.Color{}
	blkL  = scene.Color{R: 0.2, G: 0.2, B: 0.2}
	white = scene.Color{R: 1, G: 1, B: 1}
	whtL  = scene.Color{R: 0.8, G: 0.8, B: 0.8}
)

// Placements returns the placement of every instance, by name, in presentation order.
// The rod placements include the initial shift of the rod by half its length.
func Placements() []NamedPlacement {
	shift := geom.Translation(r3.Vec{X: 0.3})
	r1 := geom.Rotation(r3.Vec{Y: -1}, geom.Radians(60), r3.Vec{})
	r2 := geom.Rotation(r3.Vec{Y: 1}, geom.Radians(60), r3.Vec{X: 0.6})

	con2 := geom.Translation(r3.Vec{X: 0.6})
	return []NamedPlacement{
		{"rod1", KindRod, geom.Compose(shift, r1)},
		{"rod2", KindRod, geom.Compose(shift, r2, geom.Translation(r3.Vec{Y: 0.02}))},
		{"rod3", KindRod, geom.Compose(shift, r2, geom.Translation(r3.Vec{Y: -0.02}))},
		{"plate1", KindPlate, geom.Translation(r3.Vec{Y: 0.015})},
		{"plate2", KindPlate, geom.Translation(r3.Vec{Y: -0.015})},
		{"plate3", KindPlate, geom.Translation(r3.Vec{X: 0.6})},
		{"con1", KindConnector, geom.Identity()},
		{"con2", KindConnector, con2},
		{"con3", KindConnector, geom.Compose(con2, r1)},
	}
}

// NamedPlacement is the final transform of one instance.
type NamedPlacement struct {
	Name      string
	Kind      Kind
	Transform geom.Transform
}

// Compose places three rods, three plates and three connectors. rod, plate and
// connector are left as they were passed in.
func Compose(rod, plate mesh.Mesh, connector geom.Cylinder) []Instance {
	// move the rod so its left eye sits on the origin
	shift := geom.Translation(r3.Vec{X: 0.3})
	rod = rod.Transformed(shift)

	r := geom.Rotation(r3.Vec{Y: -1}, geom.Radians(60), r3.Vec{})
	rod1 := rod.Transformed(r)

	r = geom.Rotation(r3.Vec{Y: 1}, geom.Radians(60), r3.Vec{X: 0.6})
	rod2 := rod.Transformed(r)
	rod2 = rod2.Transformed(geom.Translation(r3.Vec{Y: 0.02}))
	rod3 := rod.Transformed(r)
	rod3 = rod3.Transformed(geom.Translation(r3.Vec{Y: -0.02}))

	plate1 := plate.Transformed(geom.Translation(r3.Vec{Y: 0.015}))
	plate2 := plate.Transformed(geom.Translation(r3.Vec{Y: -0.015}))
	plate3 := plate.Transformed(geom.Translation(r3.Vec{X: 0.6}))

	con1 := mesh.NewSolid(connector)
	con2 := con1.Transformed(geom.Translation(r3.Vec{X: 0.6}))
	con3 := con2.Transformed(geom.Rotation(r3.Vec{Y: -1}, geom.Radians(60), r3.Vec{}))

	placements := Placements()
	shapes := []scene.Shape{
		rod1.Renamed("rod1"), rod2.Renamed("rod2"), rod3.Renamed("rod3"),
		plate1.Renamed("plate1"), plate2.Renamed("plate2"), plate3.Renamed("plate3"),
		con1, con2, con3,
	}
	faces := []*scene.Color{nil, &grey, &grey, &black, &black, &black, &white, &white, &white}
	lines := []*scene.Color{nil, &greyL, &greyL, &blkL, &blkL, &blkL, &whtL, &whtL, &whtL}

	out := make([]Instance, len(shapes))
	for i, s := range shapes {
		out[i] = Instance{
			Name:      placements[i].Name,
			Kind:      placements[i].Kind,
			Shape:     s,
			Placement: placements[i].Transform,
			FaceColor: faces[i],
			LineColor: lines[i],
		}
	}
	return out
}

// Parts are the meshed components before placement.
type Parts struct {
	Rod       mesh.Mesh
	Plate     mesh.Mesh
	Connector geom.Cylinder
}

// BuildParts meshes the rod and the plate.
func BuildParts(ctx context.Context, rodOpts, plateOpts mesher.Options) (Parts, error) {
	rod, err := mesher.Build(ctx, RodTree(), "rod", rodOpts)
	if err != nil {
		return Parts{}, fmt.Errorf("build rod: %w", err)
	}
	plate, err := mesher.Build(ctx, PlateTree(), "plate", plateOpts)
	if err != nil {
		return Parts{}, fmt.Errorf("build plate: %w", err)
	}
	return Parts{Rod: rod, Plate: plate, Connector: Connector()}, nil
}

// Build meshes the components and places them.
func Build(ctx context.Context, rodOpts, plateOpts mesher.Options) ([]Instance, error) {
	parts, err := BuildParts(ctx, rodOpts, plateOpts)
	if err != nil {
		return nil, err
	}
	instances := Compose(parts.Rod, parts.Plate, parts.Connector)
	log.Info().Int("instances", len(instances)).Msg("assembly composed")
	return instances, nil
}

// Populate adds every instance to sc in order.
func Populate(sc *scene.Scene, instances []Instance) {
	for _, inst := range instances {
		var opts []scene.AddOption
		if inst.FaceColor != nil {
			opts = append(opts, scene.WithFaceColor(*inst.FaceColor))
		}
		if inst.LineColor != nil {
			opts = append(opts, scene.WithLineColor(*inst.LineColor))
		}
		sc.Add(inst.Name, inst.Shape, opts...)
	}
}

// PlacedTree is an instance described as a positioned solid rather than a mesh.
type PlacedTree struct {
	Name      string
	Kind      Kind
	Tree      csg.Node
	Placement geom.Transform
}

// Trees returns every instance as a tree with its placement, in presentation order.
func Trees() []PlacedTree {
	trees := map[Kind]csg.Node{
		KindRod:       RodTree(),
		KindPlate:     PlateTree(),
		KindConnector: csg.Leaf(Connector()),
	}
	placements := Placements()
	out := make([]PlacedTree, len(placements))
	for i, p := range placements {
		out[i] = PlacedTree{Name: p.Name, Kind: p.Kind, Tree: trees[p.Kind], Placement: p.Transform}
	}
	return out
}
