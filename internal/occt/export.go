// Package occt writes the placed solids through OpenCascade.
package occt

import (
	"errors"
	"fmt"

	"github.com/marcuswu/linkage-assembly/internal/assembly"
	"github.com/marcuswu/linkage-assembly/internal/csg"
	"github.com/marcuswu/linkage-assembly/internal/geom"
	"github.com/marcuswu/makercad"
	"github.com/marcuswu/makercad/sketcher"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/spatial/r3"
)

// the model is in metres, CAD files are in millimetres
const unitScale = 1000.

var ErrNothingToExport = errors.New("no export path given")

func vector(v r3.Vec) *sketcher.Vector {
	return sketcher.NewVectorFromValues(v.X*unitScale, v.Y*unitScale, v.Z*unitScale)
}

func direction(v r3.Vec) *sketcher.Vector {
	v = r3.Unit(v)
	return sketcher.NewVectorFromValues(v.X, v.Y, v.Z)
}

// Export builds every tree as OpenCascade solids at its placement and writes a
// STEP file and/or a STL file. Empty paths are skipped.
func Export(trees []assembly.PlacedTree, stepPath, stlPath string) error {
	if stepPath == "" && stlPath == "" {
		return ErrNothingToExport
	}
	cad := makercad.NewMakerCad()

	// solid appends the OpenCascade solid for p
	solid := func(list makercad.ListOfShape, p geom.Primitive) (makercad.ListOfShape, error) {
		switch p := p.(type) {
		case geom.Box:
			// boxes grow from their plane along the normal
			z := p.Frame.ZAxis()
			base := r3.Sub(p.Frame.Origin, r3.Scale(p.ZSize/2, z))
			plane := &sketcher.PlaneParameters{
				Location: vector(base),
				Normal:   direction(z),
				X:        direction(p.Frame.XAxis),
			}
			return append(list, cad.MakeBox(plane, p.XSize*unitScale, p.YSize*unitScale, p.ZSize*unitScale, true)), nil
		case geom.Cylinder:
			f := p.Frame()
			base := r3.Sub(p.Center(), r3.Scale(p.Height/2, p.Axis()))
			plane := &sketcher.PlaneParameters{
				Location: vector(base),
				Normal:   direction(p.Axis()),
				X:        direction(f.XAxis),
			}
			return append(list, cad.MakeCylinder(plane, p.Radius()*unitScale, p.Height*unitScale)), nil
		}
		return list, fmt.Errorf("occt: unsupported primitive %T", p)
	}

	var shapes makercad.ListOfShape
	for _, t := range trees {
		bodies, err := csg.Bodies(t.Tree)
		if err != nil {
			return fmt.Errorf("occt: %s: %w", t.Name, err)
		}
		for i, b := range bodies {
			base, err := solid(nil, b.Base.Place(t.Placement))
			if err != nil {
				return err
			}
			if len(b.Cuts) == 0 {
				shapes = append(shapes, base...)
				continue
			}
			var cuts makercad.ListOfShape
			for _, c := range b.Cuts {
				if cuts, err = solid(cuts, c.Place(t.Placement)); err != nil {
					return err
				}
			}
			op, err := cad.Remove(base[0], cuts)
			if err != nil {
				return fmt.Errorf("occt: %s body %d: %w", t.Name, i, err)
			}
			shapes = append(shapes, op.Shape())
		}
		log.Debug().Str("component", t.Name).Int("bodies", len(bodies)).Msg("solids built")
	}

	if stepPath != "" {
		cad.ExportStep(stepPath, shapes)
		log.Info().Str("path", stepPath).Int("solids", len(shapes)).Msg("step exported")
	}
	if stlPath != "" {
		cad.ExportStl(stlPath, shapes, makercad.QualityHigh)
		log.Info().Str("path", stlPath).Int("solids", len(shapes)).Msg("stl exported")
	}
	return nil
}
