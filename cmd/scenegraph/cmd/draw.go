package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-drift/scenegraph/pkg/graphics"
	"github.com/go-drift/scenegraph/pkg/term"
)

func newDrawCmd(opts *options) *cobra.Command {
	var plain, commands bool

	cmd := &cobra.Command{
		Use:   "draw [scene]",
		Short: "Rasterize one frame to the terminal",
		Long: `Run one full frame over the scene and replay the recorded draw commands
onto a grid of terminal cells. With --commands the recorded command list is
printed instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd, args, false)
			if err != nil {
				return err
			}
			cols, rows := s.cells()
			screen := term.New(cols, rows, term.WithCellSize(s.cellSize))
			ctx := graphics.NewDrawingContext()
			frame := s.frame(ctx)

			out := cmd.OutOrStdout()
			if commands {
				for i, c := range ctx.Commands() {
					fmt.Fprintf(out, "%3d %-6s node=%d bounds=%v color=%s\n", i, c.Kind, c.Node, c.Bounds, c.Color.Hex())
				}
				return nil
			}
			ctx.Replay(screen)
			if plain {
				fmt.Fprintln(out, screen.String())
			} else {
				fmt.Fprintln(out, screen.Render())
			}
			s.logger.Debug("drew scene", "cells", fmt.Sprintf("%dx%d", cols, rows), "commands", frame.Stats.Commands)
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print characters only, without colors")
	cmd.Flags().BoolVar(&commands, "commands", false, "print the recorded draw commands")
	return cmd
}
