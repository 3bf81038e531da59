package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-drift/scenegraph/pkg/scene"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "scenegraph %s (built %s)\n", Version, BuildTime)
			fmt.Fprintf(out, "scene schema %s\n", scene.SchemaVersion)
		},
	}
}
