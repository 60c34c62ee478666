package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/marcuswu/linkage-assembly/internal/mesher"
	"github.com/marcuswu/linkage-assembly/internal/scene"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "linkage.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, mesher.Options{MeshSizeFromCurvature: true, MinNodesCircle: 16}, cfg.Rod)
	require.Equal(t, mesher.Options{MeshSizeFromCurvature: true, MinNodesCircle: 32}, cfg.Plate)
	require.Equal(t, scene.Window{Width: 1600, Height: 900}, cfg.Window)
	require.Equal(t, 30.0, cfg.Camera.RZ)
	require.Equal(t, -75.0, cfg.Camera.RX)
}

func TestOverrides(t *testing.T) {
	path := write(t, `
[rod]
min_nodes_circle = 24

[camera]
distance = 2.5

[export]
step = "out/assembly.step"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 24, cfg.Rod.MinNodesCircle)
	require.True(t, cfg.Rod.MeshSizeFromCurvature)
	require.Equal(t, 32, cfg.Plate.MinNodesCircle)
	require.Equal(t, 2.5, cfg.Camera.Distance)
	require.Equal(t, -75.0, cfg.Camera.RX)
	require.Equal(t, "out/assembly.step", cfg.Export.STEP)
}

func TestRejectsBadValues(t *testing.T) {
	_, err := Load(write(t, "[plate]\nmin_nodes_circle = 0\n"))
	require.ErrorIs(t, err, mesher.ErrInvalidOptions)

	_, err = Load(write(t, "[window]\nwidth = -1\n"))
	require.ErrorIs(t, err, scene.ErrBadWindow)

	_, err = Load(write(t, "[camera]\ndistance = 0.0\n"))
	require.ErrorIs(t, err, scene.ErrBadCamera)

	_, err = Load(write(t, "[camera]\nfov = 180.0\n"))
	require.ErrorIs(t, err, scene.ErrBadCamera)

	_, err = Load(write(t, "[camera]\nfov = -5.0\n"))
	require.ErrorIs(t, err, scene.ErrBadCamera)

	_, err = Load(write(t, "[rod]\nmin_nodes = 3\n"))
	require.Error(t, err)
}
