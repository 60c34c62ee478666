// Package cli implements the linkage command line.
package cli

import (
	"context"

	"github.com/marcuswu/linkage-assembly/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type options struct {
	verbose    bool
	configPath string
}

// NewRootCommand returns the linkage command tree.
func NewRootCommand() *cobra.Command {
	var o options
	root := &cobra.Command{
		Use:          "linkage",
		Short:        "Build, mesh and present the rod and anchor plate linkage",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if o.verbose {
				level = zerolog.DebugLevel
			}
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).Level(level)
		},
	}
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVarP(&o.configPath, "config", "c", "", "TOML settings file")

	root.AddCommand(newBuildCmd(&o))
	root.AddCommand(newViewCmd(&o))
	root.AddCommand(newSnapshotCmd(&o))
	return root
}

// Execute runs the command tree.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (o *options) load() (config.Config, error) {
	return config.Load(o.configPath)
}
