package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/kinema/internal/controller"
	"github.com/san-kum/kinema/internal/motion"
)

const historyCapacity = 600

type TickMsg time.Time

// Model drives one scalar controller from a Bubble Tea frame clock.
type Model struct {
	ctrl    *controller.Controller
	name    string
	fps     int
	elapsed time.Duration
	running bool
	err     error

	valueHistory    []float64
	velocityHistory []float64
}

func NewModel(ctrl *controller.Controller, name string, fps int) Model {
	if fps <= 0 {
		fps = 60
	}
	return Model{
		ctrl:            ctrl,
		name:            name,
		fps:             fps,
		running:         true,
		valueHistory:    make([]float64, 0, historyCapacity),
		velocityHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.err = m.ctrl.Reset()
			m.elapsed = 0
			m.valueHistory = m.valueHistory[:0]
			m.velocityHistory = m.velocityHistory[:0]
		case "f":
			_, m.err = m.ctrl.Forward()
			m.elapsed = 0
		case "b":
			_, m.err = m.ctrl.Reverse()
			m.elapsed = 0
		case "s":
			_, m.err = m.ctrl.Stop()
		}
	case TickMsg:
		if m.running && m.ctrl.IsAnimating() {
			m.elapsed += time.Second / time.Duration(m.fps)
			m.err = m.ctrl.Tick(m.elapsed)
		}
		m.record()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) record() {
	m.valueHistory = append(m.valueHistory, m.ctrl.Value())
	if len(m.valueHistory) > historyCapacity {
		m.valueHistory = m.valueHistory[1:]
	}
	m.velocityHistory = append(m.velocityHistory, m.ctrl.Velocity())
	if len(m.velocityHistory) > historyCapacity {
		m.velocityHistory = m.velocityHistory[1:]
	}
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")

	if m.running {
		s.WriteString(statusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(statusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.valueHistory) > 1 {
		chart := asciigraph.Plot(tail(m.valueHistory, 120),
			asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("value"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	if len(m.velocityHistory) > 1 {
		chart := asciigraph.Plot(tail(m.velocityHistory, 120),
			asciigraph.Height(4), asciigraph.Width(60), asciigraph.Caption("velocity"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Value") + valueStyle.Render(fmt.Sprintf("%.4f", m.ctrl.Value())) + "\n")
	s.WriteString(labelStyle.Render("Velocity") + valueStyle.Render(fmt.Sprintf("%.4f", m.ctrl.Velocity())) + "\n")
	s.WriteString(labelStyle.Render("Status") + valueStyle.Render(m.ctrl.Status().String()) + "\n")
	s.WriteString(labelStyle.Render("Direction") + valueStyle.Render(directionLabel(m.ctrl.Direction())) + "\n")
	s.WriteString(labelStyle.Render("Elapsed") + valueStyle.Render(fmt.Sprintf("%.2fs", m.elapsed.Seconds())) + "\n")
	if m.err != nil {
		s.WriteString(labelStyle.Render("Error") + valueStyle.Render(m.err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render("SP:Pause R:Reset F:Forward B:Back S:Stop Q:Quit"))
	return panelStyle.Render(s.String())
}

func directionLabel(d motion.Direction) string {
	if d == motion.Reverse {
		return "reverse"
	}
	return "forward"
}

func tail(vals []float64, n int) []float64 {
	if len(vals) <= n {
		return vals
	}
	return vals[len(vals)-n:]
}

// Run starts the live view and blocks until the user quits.
func Run(ctrl *controller.Controller, name string, fps int) error {
	p := tea.NewProgram(NewModel(ctrl, name, fps))
	_, err := p.Run()
	return err
}
