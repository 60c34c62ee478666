package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/marcuswu/linkage-assembly/internal/assembly"
	"github.com/marcuswu/linkage-assembly/internal/config"
	"github.com/marcuswu/linkage-assembly/internal/csg"
	"github.com/marcuswu/linkage-assembly/internal/mesh"
	"github.com/marcuswu/linkage-assembly/internal/mesher"
	"github.com/marcuswu/linkage-assembly/internal/occt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newBuildCmd(o *options) *cobra.Command {
	var (
		stlDir      string
		assemblySTL string
		step        string
		occSTL      string
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Mesh the components, place the instances and print a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load()
			if err != nil {
				return err
			}
			overrideString(&cfg.Export.STLDir, stlDir)
			overrideString(&cfg.Export.AssemblySTL, assemblySTL)
			overrideString(&cfg.Export.STEP, step)
			overrideString(&cfg.Export.OCCSTL, occSTL)

			instances, err := assembly.Build(cmd.Context(), cfg.Rod, cfg.Plate)
			if err != nil {
				return err
			}
			if err := summarize(cmd.OutOrStdout(), instances); err != nil {
				return err
			}
			return export(cmd.Context(), cfg, instances)
		},
	}
	cmd.Flags().StringVar(&stlDir, "stl-dir", "", "write rod.stl and plate.stl rendered from the fields into this directory")
	cmd.Flags().StringVar(&assemblySTL, "assembly-stl", "", "write every placed instance into one STL file")
	cmd.Flags().StringVar(&step, "step", "", "write the placed solids as STEP through OpenCascade")
	cmd.Flags().StringVar(&occSTL, "occ-stl", "", "write the placed solids as STL through OpenCascade")
	return cmd
}

func overrideString(dst *string, flag string) {
	if flag != "" {
		*dst = flag
	}
}

func summarize(w io.Writer, instances []assembly.Instance) error {
	if _, err := fmt.Fprintf(w, "%-8s %-10s %9s %9s\n", "NAME", "KIND", "VERTICES", "FACES"); err != nil {
		return err
	}
	for _, inst := range instances {
		m := inst.Shape.Tessellate()
		if _, err := fmt.Fprintf(w, "%-8s %-10s %9d %9d\n", inst.Name, inst.Kind, m.VertexCount(), m.FaceCount()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d instances\n", len(instances))
	return err
}

func export(ctx context.Context, cfg config.Config, instances []assembly.Instance) error {
	ex := cfg.Export
	if ex.STLDir != "" {
		if err := os.MkdirAll(ex.STLDir, 0o755); err != nil {
			return err
		}
		components := []struct {
			name string
			tree csg.Node
		}{
			{"rod", assembly.RodTree()},
			{"plate", assembly.PlateTree()},
		}
		for _, c := range components {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(ex.STLDir, c.name+".stl")
			if err := fieldSTL(c.tree, c.name, path, ex.STLCells); err != nil {
				return err
			}
		}
	}
	if ex.AssemblySTL != "" {
		parts := make([]mesh.Mesh, 0, len(instances))
		for _, inst := range instances {
			parts = append(parts, inst.Shape.Tessellate())
		}
		if err := writeSTL(ex.AssemblySTL, mesh.Merge("assembly", parts...)); err != nil {
			return err
		}
	}
	if ex.STEP != "" || ex.OCCSTL != "" {
		if err := occt.Export(assembly.Trees(), ex.STEP, ex.OCCSTL); err != nil {
			return err
		}
	}
	return nil
}

// fieldSTL evaluates tree in its own session and exports the library rendering.
func fieldSTL(tree csg.Node, name, path string, cells int) error {
	s := mesher.New(tree, name)
	defer s.Close()
	if err := s.ComputeTree(); err != nil {
		return err
	}
	return s.ExportSTL(path, cells)
}

func writeSTL(path string, m mesh.Mesh) error {
	if err := m.WriteSTL(path); err != nil {
		return err
	}
	log.Info().Str("path", path).Int("faces", m.FaceCount()).Msg("assembly stl written")
	return nil
}
