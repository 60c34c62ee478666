package assembly

import (
	"context"
	"testing"

	"github.com/marcuswu/linkage-assembly/internal/geom"
	"github.com/marcuswu/linkage-assembly/internal/mesh"
	"github.com/marcuswu/linkage-assembly/internal/scene"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-9

// stand-ins for the meshed parts; placement does not depend on the mesh contents
func fakeParts(t *testing.T) (mesh.Mesh, mesh.Mesh) {
	t.Helper()
	rod, err := mesh.FromPrimitive(geom.NewBox(geom.WorldXY(), 0.6, 0.02, 0.05), 0)
	require.NoError(t, err)
	plate, err := mesh.FromPrimitive(geom.NewBox(geom.WorldXY(), 0.08, 0.01, 0.04), 0)
	require.NoError(t, err)
	return rod.Renamed("rod"), plate.Renamed("plate")
}

func TestComposeNineInstances(t *testing.T) {
	rod, plate := fakeParts(t)
	instances := Compose(rod, plate, Connector())
	require.Len(t, instances, 9)

	count := map[Kind]int{}
	for _, inst := range instances {
		count[inst.Kind]++
	}
	require.Equal(t, map[Kind]int{KindRod: 3, KindPlate: 3, KindConnector: 3}, count)

	sc := scene.New(scene.DefaultWindow(), scene.DefaultCamera())
	Populate(sc, instances)
	require.Equal(t, 9, sc.Len())
}

func TestComposeLeavesInputs(t *testing.T) {
	rod, plate := fakeParts(t)
	rodBefore := append([]r3.Vec(nil), rod.Vertices...)
	plateBefore := append([]r3.Vec(nil), plate.Vertices...)
	con := Connector()

	Compose(rod, plate, con)
	require.Equal(t, rodBefore, rod.Vertices)
	require.Equal(t, plateBefore, plate.Vertices)
	require.Equal(t, Connector(), con)
}

func TestComposeMatchesPlacements(t *testing.T) {
	rod, plate := fakeParts(t)
	instances := Compose(rod, plate, Connector())
	base := map[Kind]mesh.Mesh{
		KindRod:       rod,
		KindPlate:     plate,
		KindConnector: mesh.NewSolid(Connector()).Tessellate(),
	}
	for _, inst := range instances {
		want := base[inst.Kind].Transformed(inst.Placement)
		require.Less(t, mesh.MaxDistance(want, inst.Shape.Tessellate()), tol, inst.Name)
	}
}

func TestRodEyesLandOnPins(t *testing.T) {
	placements := Placements()
	at := func(name string, p r3.Vec) r3.Vec {
		for _, pl := range placements {
			if pl.Name == name {
				return pl.Transform.Apply(p)
			}
		}
		t.Fatalf("no placement %s", name)
		return r3.Vec{}
	}
	left, right := r3.Vec{X: -0.3}, r3.Vec{X: 0.3}

	// rod1 hinges on the origin pin
	require.True(t, geom.Near(r3.Vec{}, at("rod1", left), tol))
	// rod2 and rod3 hinge on the pin at x = 0.6, offset along the pin
	require.True(t, geom.Near(r3.Vec{X: 0.6, Y: 0.02}, at("rod2", right), tol))
	require.True(t, geom.Near(r3.Vec{X: 0.6, Y: -0.02}, at("rod3", right), tol))
	// rod1 and rod2/3 meet at the apex, where con3 sits
	apex := at("con3", r3.Vec{})
	require.True(t, geom.Near(apex, at("rod1", right), tol))
	require.True(t, geom.Near(r3.Vec{X: apex.X, Y: 0.02, Z: apex.Z}, at("rod2", left), tol))
	require.InDelta(t, 0.3, apex.X, tol)
}

func TestColors(t *testing.T) {
	rod, plate := fakeParts(t)
	instances := Compose(rod, plate, Connector())
	require.Nil(t, instances[0].FaceColor)
	require.Equal(t, scene.Color{R: 0.4, G: 0.4, B: 0.4}, *instances[1].FaceColor)
	require.Equal(t, scene.Color{}, *instances[3].FaceColor)
	require.Equal(t, scene.Color{R: 0.8, G: 0.8, B: 0.8}, *instances[8].LineColor)

	sc := scene.New(scene.DefaultWindow(), scene.DefaultCamera())
	Populate(sc, instances)
	require.Equal(t, scene.DefaultFaceColor, sc.Entries()[0].FaceColor)
}

func TestTrees(t *testing.T) {
	trees := Trees()
	require.Len(t, trees, 9)
	require.Equal(t, "con3", trees[8].Name)
	require.Equal(t, KindConnector, trees[8].Kind)
}

func TestBuild(t *testing.T) {
	if testing.Short() {
		t.Skip("meshes both components")
	}
	instances, err := Build(context.Background(), RodOptions(), PlateOptions())
	require.NoError(t, err)
	require.Len(t, instances, 9)
	for _, inst := range instances[:6] {
		require.True(t, inst.Shape.Tessellate().IsClosed(), inst.Name)
	}
}
