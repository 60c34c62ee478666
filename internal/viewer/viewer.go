// Package viewer shows a scene in an interactive raylib window.
package viewer

import (
	"context"
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/marcuswu/linkage-assembly/internal/scene"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/spatial/r3"
)

var ErrNoDisplay = errors.New("viewer window could not be opened")

// Viewer is an interactive presenter. Show blocks until the window is closed.
type Viewer struct {
	Title string
	// Orbit lets the mouse move the camera.
	Orbit bool
}

type drawable struct {
	tris []rl.Vector3 // three per triangle
	face rl.Color
	line rl.Color
	// unique edges, two points each
	edges []rl.Vector3
}

func color(c scene.Color) rl.Color {
	to := func(v float64) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return rl.NewColor(to(c.R), to(c.G), to(c.B), 255)
}

func vec(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

func prepare(s *scene.Scene) []drawable {
	entries := s.Entries()
	out := make([]drawable, 0, len(entries))
	for _, e := range entries {
		m := e.Shape.Tessellate()
		d := drawable{face: color(e.FaceColor), line: color(e.LineColor)}
		for i := range m.Faces {
			t := m.Triangle(i)
			d.tris = append(d.tris, vec(t[0]), vec(t[1]), vec(t[2]))
		}
		for edge := range m.Edges() {
			d.edges = append(d.edges, vec(m.Vertices[edge.A]), vec(m.Vertices[edge.B]))
		}
		out = append(out, d)
	}
	return out
}

// camera places a raylib camera where the scene camera's view transform puts it.
func camera(c scene.Camera) rl.Camera3D {
	toWorld := c.View().Inverse()
	var cam rl.Camera3D
	cam.Position = vec(toWorld.Apply(r3.Vec{}))
	cam.Target = vec(toWorld.Apply(r3.Vec{Z: -c.Distance}))
	cam.Up = vec(toWorld.ApplyVector(r3.Vec{Y: 1}))
	cam.Fovy = float32(c.FOV)
	if cam.Fovy <= 0 {
		cam.Fovy = float32(scene.DefaultCamera().FOV)
	}
	cam.Projection = rl.CameraPerspective
	return cam
}

// Show opens the window and draws s until the user closes it or ctx is done.
func (v Viewer) Show(ctx context.Context, s *scene.Scene) error {
	title := v.Title
	if title == "" {
		title = "linkage"
	}
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(int32(s.Window.Width), int32(s.Window.Height), title)
	if !rl.IsWindowReady() {
		return ErrNoDisplay
	}
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	items := prepare(s)
	cam := camera(s.Camera)
	log.Info().Int("entries", len(items)).Msg("viewer open")

	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			break
		}
		if v.Orbit {
			rl.UpdateCamera(&cam, rl.CameraOrbital)
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.White)
		rl.BeginMode3D(cam)
		rl.DisableBackfaceCulling()
		for _, d := range items {
			for i := 0; i+2 < len(d.tris); i += 3 {
				rl.DrawTriangle3D(d.tris[i], d.tris[i+1], d.tris[i+2], d.face)
			}
			for i := 0; i+1 < len(d.edges); i += 2 {
				rl.DrawLine3D(d.edges[i], d.edges[i+1], d.line)
			}
		}
		rl.EnableBackfaceCulling()
		rl.EndMode3D()
		rl.EndDrawing()
	}
	log.Info().Msg("viewer closed")
	return ctx.Err()
}
