package debugger

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/Urethramancer/rm16/device"
)

// pollInterval matches spec §5's "roughly 30 times per second" video poll.
const pollInterval = time.Second / 30

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// dashboard is the bubbletea model for the optional graphical debugger
// view opened by Harness.RunDashboard, rendering registers, flags and the
// video bank side by side. No REPL command or emu flag opens it; "dev
// graphics" only attaches the video bank observer.
type dashboard struct {
	h      *Harness
	cells  [device.Cells]device.Cell
	err    error
	frames int
}

func (m dashboard) Init() tea.Cmd {
	return tick()
}

func (m dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "s":
			if _, err := m.h.Step(); err != nil {
				m.err = err
			}
		}
		return m, nil

	case tickMsg:
		if m.h.Video != nil {
			if cells, changed := m.h.Video.Poll(); changed {
				m.cells = cells
			}
		}
		m.frames++
		return m, tick()
	}
	return m, nil
}

func (m dashboard) View() string {
	var screen strings.Builder
	for row := 0; row < device.Height; row++ {
		for col := 0; col < device.Width; col++ {
			g := m.cells[row*device.Width+col].Glyph
			if g == 0 {
				g = ' '
			}
			screen.WriteByte(g)
		}
		screen.WriteByte('\n')
	}

	status := strings.Join(m.h.RegisterLines(), "\n") + "\n" + m.h.FlagLine()
	if m.err != nil {
		status += "\nerror: " + m.err.Error()
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).Render(screen.String()),
		lipgloss.NewStyle().Padding(0, 1).Render(status+"\n\n"+spew.Sdump(m.h.CPU.Reg)),
	)
}

// RunDashboard opens the TUI dashboard, blocking until the user quits.
func (h *Harness) RunDashboard() error {
	if h.Video == nil {
		h.AttachGraphics()
	}
	_, err := tea.NewProgram(dashboard{h: h}).Run()
	return err
}
