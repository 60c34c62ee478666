package cli

import (
	"github.com/marcuswu/linkage-assembly/internal/scene"
	"github.com/spf13/cobra"
)

func newSnapshotCmd(o *options) *cobra.Command {
	var (
		out       string
		lineWidth float64
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Build the assembly and render the camera view to a PNG file",
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
			return scene.Snapshot{Path: out, LineWidth: lineWidth}.Show(cmd.Context(), sc)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "linkage.png", "PNG file to write")
	cmd.Flags().Float64Var(&lineWidth, "line-width", 0.5, "edge stroke width in pixels")
	return cmd
}
