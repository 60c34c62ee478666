// Package scene collects placed shapes with their colors and hands them to a presenter.
package scene

import (
	"context"
	"errors"
	"fmt"

	"github.com/marcuswu/linkage-assembly/internal/geom"
	"github.com/marcuswu/linkage-assembly/internal/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Shape is anything that can be drawn as triangles.
type Shape interface {
	Tessellate() mesh.Mesh
}

// Color is an RGB triple with components in [0, 1].
type Color struct {
	R, G, B float64
}

var (
	DefaultFaceColor = Color{R: 0.9, G: 0.9, B: 0.9}
	DefaultLineColor = Color{R: 0.2, G: 0.2, B: 0.2}
)

// Window is the presenter viewport size in pixels.
type Window struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Camera is an orbit camera pose. Angles are in degrees.
type Camera struct {
	RZ       float64 `toml:"rz"`
	RX       float64 `toml:"rx"`
	TX       float64 `toml:"tx"`
	TY       float64 `toml:"ty"`
	Distance float64 `toml:"distance"`
	// vertical field of view
	FOV float64 `toml:"fov"`
}

// DefaultWindow is 1600x900.
func DefaultWindow() Window {
	return Window{Width: 1600, Height: 900}
}

// DefaultCamera looks down at the assembly from the front left.
func DefaultCamera() Camera {
	return Camera{RZ: 30, RX: -75, TX: -0.25, TY: -0.25, Distance: 1, FOV: 45}
}

var ErrBadCamera = errors.New("camera distance must be positive and fov within (0, 180)")

// Validate rejects poses no presenter can look through.
func (c Camera) Validate() error {
	if c.Distance <= 0 || c.FOV <= 0 || c.FOV >= 180 {
		return fmt.Errorf("%w: distance %g, fov %g", ErrBadCamera, c.Distance, c.FOV)
	}
	return nil
}

// View returns the world to camera transform: rotate about z by RZ, then about
// x by RX, then shift by (TX, TY, -Distance). The camera looks down its -z axis.
func (c Camera) View() geom.Transform {
	return geom.Compose(
		geom.Rotation(r3.Vec{Z: 1}, geom.Radians(c.RZ), r3.Vec{}),
		geom.Rotation(r3.Vec{X: 1}, geom.Radians(c.RX), r3.Vec{}),
		geom.Translation(r3.Vec{X: c.TX, Y: c.TY, Z: -c.Distance}),
	)
}

// Entry is one shape in the scene.
type Entry struct {
	Name      string
	Shape     Shape
	FaceColor Color
	LineColor Color
}

// AddOption customizes an entry.
type AddOption func(*Entry)

func WithFaceColor(c Color) AddOption {
	return func(e *Entry) { e.FaceColor = c }
}

func WithLineColor(c Color) AddOption {
	return func(e *Entry) { e.LineColor = c }
}

// Scene is an ordered list of shapes seen through one camera.
type Scene struct {
	Window  Window
	Camera  Camera
	entries []Entry
}

// New returns an empty scene.
func New(w Window, c Camera) *Scene {
	return &Scene{Window: w, Camera: c}
}

// Add appends shape. Colors not given fall back to the defaults.
func (s *Scene) Add(name string, shape Shape, opts ...AddOption) {
	e := Entry{Name: name, Shape: shape, FaceColor: DefaultFaceColor, LineColor: DefaultLineColor}
	for _, opt := range opts {
		opt(&e)
	}
	s.entries = append(s.entries, e)
}

// Entries returns the shapes in insertion order.
func (s *Scene) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

func (s *Scene) Len() int { return len(s.entries) }

// Presenter shows a scene. Show may block until the user is done with it.
type Presenter interface {
	Show(ctx context.Context, s *Scene) error
}
