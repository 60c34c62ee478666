package cli

import (
	"github.com/marcuswu/linkage-assembly/internal/assembly"
	"github.com/marcuswu/linkage-assembly/internal/config"
	"github.com/marcuswu/linkage-assembly/internal/scene"
	"github.com/marcuswu/linkage-assembly/internal/viewer"
	"github.com/spf13/cobra"
)

func newViewCmd(o *options) *cobra.Command {
	var orbit bool
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Build the assembly and show it in an interactive window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load()
			if err != nil {
				return err
			}
			sc, err := buildScene(cmd, cfg)
			if err != nil {
				return err
			}
			return viewer.Viewer{Title: "linkage", Orbit: orbit}.Show(cmd.Context(), sc)
		},
	}
	cmd.Flags().BoolVar(&orbit, "orbit", false, "let the camera orbit the assembly")
	return cmd
}

func buildScene(cmd *cobra.Command, cfg config.Config) (*scene.Scene, error) {
	instances, err := assembly.Build(cmd.Context(), cfg.Rod, cfg.Plate)
	if err != nil {
		return nil, err
	}
	sc := scene.New(cfg.Window, cfg.Camera)
	assembly.Populate(sc, instances)
	return sc, nil
}
