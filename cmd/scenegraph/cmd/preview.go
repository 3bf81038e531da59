package cmd

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/go-drift/scenegraph/pkg/graphics"
	"github.com/go-drift/scenegraph/pkg/term"
	"github.com/go-drift/scenegraph/pkg/ui"
)

var (
	frameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func newPreviewCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "preview [scene]",
		Short: "View a scene interactively",
		Long: `Show the scene in the terminal and lay it out again whenever the terminal
is resized. Click buttons and scroll bars with the mouse, scroll with the
wheel or the arrow keys, and quit with q.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Log lines would tear the full-screen view.
			s, err := opts.open(cmd, args, true)
			if err != nil {
				return err
			}
			cols, rows := s.cells()
			m := newPreviewModel(s, term.New(cols, rows, term.WithCellSize(s.cellSize)))
			p := tea.NewProgram(m,
				tea.WithContext(cmd.Context()),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
			)
			_, err = p.Run()
			return err
		},
	}
}

// previewModel is the bubbletea model of the preview command. The screen is
// inset by one cell on each side for the frame border.
type previewModel struct {
	s      *session
	screen *term.Screen
	ctx    *graphics.DrawingContext
	status string
}

func newPreviewModel(s *session, screen *term.Screen) *previewModel {
	m := &previewModel{s: s, screen: screen, ctx: graphics.NewDrawingContext()}
	m.render()
	return m
}

func (m *previewModel) Init() tea.Cmd {
	return nil
}

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.scroll(graphics.Vec(0, -1))
		case "down", "j":
			m.scroll(graphics.Vec(0, 1))
		case "left", "h":
			m.scroll(graphics.Vec(-1, 0))
		case "right", "l":
			m.scroll(graphics.Vec(1, 0))
		}
	case tea.WindowSizeMsg:
		m.screen.Resize(max(1, msg.Width-2), max(1, msg.Height-3))
		m.s.viewport = m.screen.Viewport()
	case tea.MouseMsg:
		m.mouse(msg)
	}
	m.render()
	return m, nil
}

func (m *previewModel) View() string {
	return frameStyle.Render(m.screen.Render()) + "\n" + statusStyle.Render(m.status)
}

// toScene maps a terminal cell to the scene point at the cell's center.
func (m *previewModel) toScene(x, y int) graphics.Vector {
	cell := m.screen.CellSize()
	return graphics.Vec((float64(x-1)+0.5)*cell.X, (float64(y-1)+0.5)*cell.Y)
}

func (m *previewModel) mouse(msg tea.MouseMsg) {
	p := m.toScene(msg.X, msg.Y)
	cell := m.screen.CellSize()
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.s.ui.Scroll(p, graphics.Vec(0, -3*cell.Y))
	case msg.Button == tea.MouseButtonWheelDown:
		m.s.ui.Scroll(p, graphics.Vec(0, 3*cell.Y))
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.s.ui.Click(p)
	case msg.Action == tea.MouseActionMotion:
		m.s.ui.UpdateMouse(p)
	}
}

// scroll scrolls whatever is under the center of the screen.
func (m *previewModel) scroll(cells graphics.Vector) {
	cell := m.screen.CellSize()
	center := m.screen.Viewport().Scale(0.5)
	m.s.ui.Scroll(center, graphics.Vec(cells.X*cell.X, cells.Y*cell.Y))
}

func (m *previewModel) render() {
	m.s.errs.Reset()
	frame, _ := m.s.ui.Update(m.s.viewport, m.ctx)
	m.screen.Clear()
	m.ctx.Replay(m.screen)

	cols, rows := m.screen.Size()
	parts := []string{fmt.Sprintf("%dx%d", cols, rows), fmt.Sprintf("%d cmds", frame.Stats.Commands)}
	for _, e := range frame.Events {
		parts = append(parts, describeEvent(m.s.ui, e))
	}
	if n := m.s.errorCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d errors", n))
	}
	m.status = strings.Join(parts, " · ")
}

func describeEvent(u *ui.UserInterface, e ui.SourcedEvent) string {
	name := e.Source.String()
	if n, err := u.Node(e.Source); err == nil && n.Name() != "" {
		name = n.Name()
	}
	return name + " " + e.Event.EventName()
}
