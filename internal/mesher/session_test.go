package mesher_test

import (
	"context"
	"testing"

	"github.com/marcuswu/linkage-assembly/internal/assembly"
	"github.com/marcuswu/linkage-assembly/internal/csg"
	"github.com/marcuswu/linkage-assembly/internal/geom"
	"github.com/marcuswu/linkage-assembly/internal/mesher"
	"github.com/stretchr/testify/require"
)

func TestStateOrder(t *testing.T) {
	s := mesher.New(assembly.PlateTree(), "plate")
	require.Equal(t, mesher.Configured, s.State())

	_, err := s.Extract()
	require.ErrorIs(t, err, mesher.ErrWrongState)
	require.ErrorIs(t, s.GenerateMesh(), mesher.ErrWrongState)
	require.ErrorIs(t, s.OptimizeMesh(), mesher.ErrWrongState)

	require.NoError(t, s.SetOptions(assembly.PlateOptions()))
	require.NoError(t, s.ComputeTree())
	require.Equal(t, mesher.Evaluated, s.State())

	// options are frozen once the tree is evaluated
	require.ErrorIs(t, s.SetOptions(mesher.DefaultOptions()), mesher.ErrWrongState)
	require.Equal(t, assembly.PlateOptions(), s.Options())

	_, err = s.Extract()
	require.ErrorIs(t, err, mesher.ErrWrongState)

	require.NoError(t, s.GenerateMesh())
	require.NoError(t, s.OptimizeMesh())
	m, err := s.Extract()
	require.NoError(t, err)
	require.Equal(t, "plate", m.Name)
	require.Equal(t, mesher.Extracted, s.State())

	_, err = s.Extract()
	require.ErrorIs(t, err, mesher.ErrWrongState)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	require.Equal(t, mesher.Closed, s.State())
	require.ErrorIs(t, s.ComputeTree(), mesher.ErrClosed)
}

func TestInvalidOptions(t *testing.T) {
	s := mesher.New(assembly.PlateTree(), "plate")
	defer s.Close()
	err := s.SetOptions(mesher.Options{MinNodesCircle: 0})
	require.ErrorIs(t, err, mesher.ErrInvalidOptions)
}

func TestMalformedTree(t *testing.T) {
	box := csg.Leaf(geom.NewBox(geom.WorldXY(), 1, 1, 1))
	_, err := mesher.Build(context.Background(), csg.Difference(csg.Union(), box), "bad", mesher.DefaultOptions())
	require.ErrorIs(t, err, csg.ErrEmptyOperands)

	s := mesher.New(csg.Union(), "bad")
	require.ErrorIs(t, s.ComputeTree(), csg.ErrEmptyOperands)
	require.Equal(t, mesher.Configured, s.State())
	require.NoError(t, s.Close())
}

func TestEmptyResult(t *testing.T) {
	small := csg.Leaf(geom.NewBox(geom.WorldXY(), 1, 1, 1))
	big := csg.Leaf(geom.NewBox(geom.WorldXY(), 2, 2, 2))
	_, err := mesher.Build(context.Background(), csg.Difference(small, big), "gone", mesher.DefaultOptions())
	require.ErrorIs(t, err, mesher.ErrEmptyMesh)
}

func TestBuildHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := mesher.Build(ctx, assembly.RodTree(), "rod", assembly.RodOptions())
	require.ErrorIs(t, err, context.Canceled)
}

func TestRodIsClosed(t *testing.T) {
	m, err := mesher.Build(context.Background(), assembly.RodTree(), "rod", assembly.RodOptions())
	require.NoError(t, err)
	require.True(t, m.IsClosed())

	b := m.Bounds()
	const slack = 0.005
	require.InDelta(t, -0.325, b.Min.X, slack)
	require.InDelta(t, 0.325, b.Max.X, slack)
	require.InDelta(t, 0.02, b.Max.Y-b.Min.Y, slack)
	require.Greater(t, m.Volume(), 0.0)
}

func TestPlateIsClosed(t *testing.T) {
	m, err := mesher.Build(context.Background(), assembly.PlateTree(), "plate", assembly.PlateOptions())
	require.NoError(t, err)
	require.True(t, m.IsClosed())

	b := m.Bounds()
	// thickness along the pin axis
	require.LessOrEqual(t, b.Max.Y-b.Min.Y, 0.05)
	// the eye reaches 0.04 above and below the pin, the block ends at -0.04
	const slack = 0.006
	require.InDelta(t, 0.04, b.Max.Z, slack)
	require.InDelta(t, -0.04, b.Min.Z, slack)
	require.InDelta(t, 0.04, b.Max.X, slack)
}

func TestDeterministic(t *testing.T) {
	for _, c := range []struct {
		name string
		tree csg.Node
		opts mesher.Options
	}{
		{"rod", assembly.RodTree(), assembly.RodOptions()},
		{"plate", assembly.PlateTree(), assembly.PlateOptions()},
	} {
		t.Run(c.name, func(t *testing.T) {
			a, err := mesher.Build(context.Background(), c.tree, c.name, c.opts)
			require.NoError(t, err)
			b, err := mesher.Build(context.Background(), c.tree, c.name, c.opts)
			require.NoError(t, err)
			require.Equal(t, a.VertexCount(), b.VertexCount())
			require.Equal(t, a.FaceCount(), b.FaceCount())
			require.Equal(t, a.Bounds(), b.Bounds())
		})
	}
}

func TestFinerOptionsGiveMoreVertices(t *testing.T) {
	tree := assembly.PlateTree()
	coarse, err := mesher.Build(context.Background(), tree, "plate", mesher.Options{MinNodesCircle: 8})
	require.NoError(t, err)
	fine, err := mesher.Build(context.Background(), tree, "plate", assembly.PlateOptions())
	require.NoError(t, err)
	require.True(t, coarse.IsClosed())
	require.Greater(t, fine.VertexCount(), coarse.VertexCount())
}
