package scene

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/fogleman/gg"
	"github.com/marcuswu/linkage-assembly/internal/geom"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/spatial/r3"
)

// near clipping distance in front of the camera
const nearPlane = 1e-3

var ErrBadWindow = errors.New("window size must be positive")

// Snapshot renders the scene into a PNG file without opening a window.
type Snapshot struct {
	Path      string
	LineWidth float64
	// Background defaults to white.
	Background *Color
}

// Show renders s and writes it to Path.
func (p Snapshot) Show(ctx context.Context, s *Scene) error {
	img, err := p.Render(ctx, s)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(p.Path, img); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	log.Info().Str("path", p.Path).Int("entries", s.Len()).Msg("snapshot written")
	return nil
}

type drawTri struct {
	pts   [3]r3.Vec // camera space
	depth float64
	face  Color
	line  Color
	shade float64
}

// Render draws s with the painter's algorithm and flat shading.
func (p Snapshot) Render(ctx context.Context, s *Scene) (image.Image, error) {
	w, h := s.Window.Width, s.Window.Height
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadWindow, w, h)
	}
	view := s.Camera.View()

	var tris []drawTri
	for _, e := range s.entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m := e.Shape.Tessellate().Transformed(view)
		for i := range m.Faces {
			t := m.Triangle(i)
			if t[0].Z > -nearPlane || t[1].Z > -nearPlane || t[2].Z > -nearPlane {
				continue
			}
			n := m.Normal(i)
			tris = append(tris, drawTri{
				pts:   t,
				depth: (t[0].Z + t[1].Z + t[2].Z) / 3,
				face:  e.FaceColor,
				line:  e.LineColor,
				shade: 0.35 + 0.65*math.Abs(n.Z),
			})
		}
	}
	// farthest first
	sort.SliceStable(tris, func(i, j int) bool { return tris[i].depth < tris[j].depth })

	dc := gg.NewContext(w, h)
	bg := Color{R: 1, G: 1, B: 1}
	if p.Background != nil {
		bg = *p.Background
	}
	dc.SetRGB(bg.R, bg.G, bg.B)
	dc.Clear()

	lw := p.LineWidth
	if lw <= 0 {
		lw = 0.5
	}
	dc.SetLineWidth(lw)
	proj := projector(s.Camera, w, h)
	for _, t := range tris {
		for k, pt := range t.pts {
			x, y := proj(pt)
			if k == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
		dc.SetRGB(t.face.R*t.shade, t.face.G*t.shade, t.face.B*t.shade)
		dc.FillPreserve()
		dc.SetRGB(t.line.R, t.line.G, t.line.B)
		dc.Stroke()
	}
	return dc.Image(), nil
}

// projector maps camera space points to pixel coordinates.
func projector(c Camera, w, h int) func(r3.Vec) (float64, float64) {
	fov := c.FOV
	if fov <= 0 {
		fov = DefaultCamera().FOV
	}
	f := 1 / math.Tan(geom.Radians(fov)/2)
	half := float64(h) / 2
	return func(p r3.Vec) (float64, float64) {
		x := float64(w)/2 + f*p.X/-p.Z*half
		y := half - f*p.Y/-p.Z*half
		return x, y
	}
}
