// Package cmd implements the scenegraph CLI.
//
// Every command loads a scene document (the first argument, else
// scene.yaml in the working directory, else a built-in demo), builds it
// into a UserInterface and runs frames against it:
//
//	scenegraph layout  # table of layout results per node
//	scenegraph draw    # rasterize one frame to the terminal
//	scenegraph dot     # node tree as Graphviz DOT or SVG
//	scenegraph preview # interactive viewer
package cmd

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Execute runs the CLI with the process arguments.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "scenegraph",
		Short: "Lay out, draw and inspect retained-mode scene documents",
		Long: `scenegraph loads a YAML or TOML scene document, builds it into a
retained-mode scene graph and runs measure, arrange and draw passes on it.

Use "scenegraph <command> --help" for more information about a command.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if opts.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	flags.IntVar(&opts.width, "width", 80, "screen width in cells, overrides the document viewport")
	flags.IntVar(&opts.height, "height", 24, "screen height in cells, overrides the document viewport")
	flags.StringVar(&opts.font, "font", fontCell, "text metrics: cell (one unit per terminal cell) or bitmap (7x13 pixel face)")

	root.AddCommand(
		newLayoutCmd(opts),
		newDrawCmd(opts),
		newDotCmd(opts),
		newPreviewCmd(opts),
		newVersionCmd(),
	)
	return root
}
