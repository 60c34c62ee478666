package scene

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/marcuswu/linkage-assembly/internal/geom"
	"github.com/marcuswu/linkage-assembly/internal/mesh"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func cube(size float64) mesh.Mesh {
	m, _ := mesh.FromPrimitive(geom.NewBox(geom.WorldXY(), size, size, size), 0)
	return m
}

func TestAddDefaults(t *testing.T) {
	s := New(DefaultWindow(), DefaultCamera())
	red := Color{R: 1}
	s.Add("a", cube(1))
	s.Add("b", cube(1), WithFaceColor(red))
	s.Add("c", cube(1), WithFaceColor(red), WithLineColor(red))

	e := s.Entries()
	require.Len(t, e, 3)
	require.Equal(t, []string{"a", "b", "c"}, []string{e[0].Name, e[1].Name, e[2].Name})
	require.Equal(t, DefaultFaceColor, e[0].FaceColor)
	require.Equal(t, DefaultLineColor, e[0].LineColor)
	require.Equal(t, red, e[1].FaceColor)
	require.Equal(t, DefaultLineColor, e[1].LineColor)
	require.Equal(t, red, e[2].LineColor)
}

func TestCameraView(t *testing.T) {
	c := DefaultCamera()
	got := c.View().Apply(r3.Vec{})
	require.True(t, geom.Near(r3.Vec{X: -0.25, Y: -0.25, Z: -1}, got, 1e-12))

	plain := Camera{Distance: 2}
	require.True(t, geom.Near(r3.Vec{X: 1, Z: -2}, plain.View().Apply(r3.Vec{X: 1}), 1e-12))
}

func TestSnapshotRender(t *testing.T) {
	s := New(Window{Width: 100, Height: 100}, Camera{Distance: 1, FOV: 45})
	red := Color{R: 1}
	s.Add("cube", cube(0.5), WithFaceColor(red), WithLineColor(red))

	img, err := Snapshot{}.Render(context.Background(), s)
	require.NoError(t, err)
	require.Equal(t, 100, img.Bounds().Dx())
	require.Equal(t, 100, img.Bounds().Dy())

	r, g, b, _ := img.At(50, 50).RGBA()
	require.Greater(t, r, uint32(0xc000))
	require.Less(t, g, uint32(0x4000))
	require.Less(t, b, uint32(0x4000))

	r, g, b, _ = img.At(2, 2).RGBA()
	require.Equal(t, []uint32{0xffff, 0xffff, 0xffff}, []uint32{r, g, b})
}

func TestSnapshotShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.png")
	s := New(Window{Width: 64, Height: 48}, DefaultCamera())
	s.Add("cube", cube(0.1))

	require.NoError(t, Snapshot{Path: path}.Show(context.Background(), s))
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestSnapshotBadWindow(t *testing.T) {
	s := New(Window{}, DefaultCamera())
	_, err := Snapshot{}.Render(context.Background(), s)
	require.ErrorIs(t, err, ErrBadWindow)
}

func TestCameraValidate(t *testing.T) {
	require.NoError(t, DefaultCamera().Validate())
	for _, c := range []Camera{
		{Distance: 0, FOV: 45},
		{Distance: -1, FOV: 45},
		{Distance: 1, FOV: 0},
		{Distance: 1, FOV: 180},
	} {
		require.ErrorIs(t, c.Validate(), ErrBadCamera, "%+v", c)
	}
}
