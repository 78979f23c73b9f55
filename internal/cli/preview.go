package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dockgrid/pkg/dock"
	"github.com/matzehuels/dockgrid/pkg/fonts"
	"github.com/matzehuels/dockgrid/pkg/render"
)

const (
	// Surface pixels per terminal cell. Cells are about twice as tall as
	// they are wide.
	cellW, cellH = 8.0, 16.0

	// frameInterval is the redraw period while items animate.
	frameInterval = time.Second / 30

	// chromeRows are the rows taken by the header, the frame border and
	// the status line.
	chromeRows = 4
	chromeCols = 2
)

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [scene.toml|scene.yaml]",
		Short: "Drag items between containers in the terminal",
		Long: `Drag items between containers in the terminal.

The scene is laid out on a surface the size of the terminal and follows it
when the window is resized. Press the left mouse button on an item to pick
it up, move it and release it over a container to dock it. Items released
elsewhere float where they were dropped.

Keys: r resets the scene, q quits.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSceneFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.newPreviewModel(args[0])
			if err != nil {
				return err
			}
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}

// tickMsg advances animations.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// previewModel is the bubbletea model of the preview command.
type previewModel struct {
	cli    *CLI
	path   string
	reg    *dock.Registry
	drag   *dock.Drag
	canvas *render.Canvas
	cols   int
	rows   int
	status string
}

func (c *CLI) newPreviewModel(path string) (*previewModel, error) {
	reg, _, err := c.loadScene(path, 0, 0, fonts.DefaultName)
	if err != nil {
		return nil, err
	}
	m := &previewModel{cli: c, path: path, reg: reg, cols: 80, rows: 24 - chromeRows}
	m.status = fmt.Sprintf("%d containers · %d items", len(reg.Containers()), len(reg.Items()))
	m.resize()
	return m, nil
}

func (m *previewModel) Init() tea.Cmd {
	return tick()
}

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.reset()
		}
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width-chromeCols, 1)
		m.rows = max(msg.Height-chromeRows, 1)
		m.resize()
	case tea.MouseMsg:
		m.mouse(msg)
	case tickMsg:
		if m.reg.Tick(time.Time(msg)) {
			m.redraw()
		}
		return m, tick()
	}
	return m, nil
}

func (m *previewModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(appName+" preview") + " " + StyleDim.Render(m.path))
	b.WriteString("\n")
	b.WriteString(styleFrame.Render(m.canvas.String()))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().MaxWidth(m.cols + chromeCols).Render(m.status))
	return b.String()
}

// resize lays the scene out on a surface matching the canvas.
func (m *previewModel) resize() {
	if err := m.reg.Resize(float64(m.cols)*cellW, float64(m.rows)*cellH); err != nil {
		m.status = renderError(err)
	}
	m.redraw()
}

func (m *previewModel) reset() {
	reg, _, err := m.cli.loadScene(m.path, 0, 0, fonts.DefaultName)
	if err != nil {
		m.status = renderError(err)
		return
	}
	m.reg, m.drag = reg, nil
	m.status = "Reset " + m.path
	m.resize()
}

func (m *previewModel) redraw() {
	m.canvas = render.RenderText(render.Capture(m.reg), m.cols, m.rows)
}

// mouse maps terminal cells inside the frame to surface pixels and drives
// the drag session.
func (m *previewModel) mouse(msg tea.MouseMsg) {
	x, y := m.canvas.ToSurface(msg.X-1, msg.Y-2)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if m.drag = m.reg.BeginDrag(x, y); m.drag != nil {
			m.status = "Dragging " + m.drag.Item().Label
		}
	case tea.MouseActionMotion:
		if m.drag != nil && m.drag.Move(x, y) {
			m.redraw()
		}
	case tea.MouseActionRelease:
		if m.drag == nil {
			return
		}
		it := m.drag.Item()
		if m.drag.End(x, y) {
			m.status = styleIconSuccess.Render(iconSuccess) + " " + it.Label + " docked in " + it.Container().Name
		} else if it.Floating() {
			m.status = styleIconInfo.Render(iconInfo) + " " + it.Label + " floats"
		} else {
			m.status = styleIconWarning.Render(iconWarning) + " " + it.Label + " returned to " + it.Container().Name
		}
		m.drag = nil
		m.redraw()
	}
}
