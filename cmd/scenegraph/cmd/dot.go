package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-drift/scenegraph/cmd/scenegraph/internal/treeviz"
)

func newDotCmd(opts *options) *cobra.Command {
	var (
		svg    bool
		layout bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "dot [scene]",
		Short: "Export the node tree as Graphviz DOT or SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd, args, false)
			if err != nil {
				return err
			}
			if layout {
				s.frame(nil)
			}
			data := []byte(treeviz.ToDOT(s.ui, s.root, treeviz.Options{Layout: layout}))
			if svg {
				data, err = treeviz.RenderSVG(cmd.Context(), string(data))
				if err != nil {
					return fmt.Errorf("render svg: %w", err)
				}
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			s.logger.Info("wrote tree", "path", output, "nodes", s.ui.Len())
			return nil
		},
	}
	cmd.Flags().BoolVar(&svg, "svg", false, "render to SVG instead of DOT source")
	cmd.Flags().BoolVar(&layout, "layout", false, "lay the scene out and include sizes in node labels")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	return cmd
}
