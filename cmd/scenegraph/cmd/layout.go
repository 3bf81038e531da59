package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/go-drift/scenegraph/pkg/graphics"
	"github.com/go-drift/scenegraph/pkg/ui"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

func newLayoutCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "layout [scene]",
		Short: "Print the layout of every node",
		Long: `Run one measure and arrange pass over the scene and print a table of
each node's desired size, actual size, local position and screen position.
Collapsed nodes are listed without layout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd, args, false)
			if err != nil {
				return err
			}
			frame := s.frame(nil)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, layoutTable(s.ui, s.root))
			if summary := s.errorSummary(); summary != "" {
				fmt.Fprintln(out, summary)
			}
			s.logger.Info("laid out scene",
				"nodes", s.ui.Len(),
				"viewport", formatVec(s.viewport),
				"measures", frame.Stats.Measures,
				"errors", s.errorCount(),
				"elapsed", frame.Elapsed)
			return nil
		},
	}
}

func layoutTable(u *ui.UserInterface, root ui.Handle) string {
	var rows [][]string
	u.Walk(root, func(h ui.Handle, n *ui.Node, depth int) bool {
		name := strings.Repeat("  ", depth) + ui.KindName(n.Kind())
		if n.Name() != "" {
			name += " " + dimStyle.Render(n.Name())
		}
		row := []string{name, h.String()}
		info, err := u.Layout(h)
		if err != nil || !info.ArrangeValid || n.Visibility() == graphics.Collapsed {
			row = append(row, "-", "-", "-", "-")
		} else {
			row = append(row,
				formatVec(info.DesiredSize),
				formatVec(info.ActualSize),
				formatVec(info.ActualLocalPosition),
				formatVec(info.ScreenPosition))
		}
		rows = append(rows, row)
		return true
	})

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("Node", "Handle", "Desired", "Size", "Local", "Screen").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return t.Render()
}

func formatVec(v graphics.Vector) string {
	return fmt.Sprintf("%g,%g", v.X, v.Y)
}
