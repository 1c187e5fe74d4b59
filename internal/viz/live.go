// Package viz renders a live terminal view of a running simulation.
package viz

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/tleroux/flightdyn/internal/forces"
	"github.com/tleroux/flightdyn/internal/rigid"
	"github.com/tleroux/flightdyn/internal/vehicle"
)

const historyCapacity = 600

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model steps the simulation at the configured frame rate and renders
// the current state plus an altitude trace.
type Model struct {
	veh       *vehicle.Vehicle
	model     forces.Model
	kin       *rigid.Kinematics
	t         float64
	fps       int
	running   bool
	initState rigid.State
	altitude  []float64
}

func NewModel(veh *vehicle.Vehicle, model forces.Model, initState rigid.State, dt float64, fps int) Model {
	kin := rigid.NewKinematics(dt)
	kin.SetState(initState)
	return Model{
		veh:       veh,
		model:     model,
		kin:       kin,
		fps:       fps,
		running:   true,
		initState: initState.Clone(),
		altitude:  make([]float64, 0, historyCapacity),
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
			m.kin.SetState(m.initState)
			m.t = 0
			m.altitude = m.altitude[:0]
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances the simulation by one kernel time step.
func (m *Model) step() {
	state := m.kin.State()
	force, torque := m.model.ForceTorque(&state, m.t)
	m.kin.SetInput(force, torque)
	m.kin.ComputeDerivatives(m.veh.Inertia(), m.veh.RotationMatrix(state.Attitude()))
	m.kin.Step()
	m.t += m.kin.Dt()

	state = m.kin.State()
	m.altitude = append(m.altitude, -state.Position()[2])
	if len(m.altitude) > historyCapacity {
		m.altitude = m.altitude[1:]
	}
}

func (m Model) View() string {
	state := m.kin.State()
	pos := state.Position()
	att := state.Attitude()
	vel := state.Velocity()
	rates := state.Rates()

	rows := []struct {
		label string
		value string
	}{
		{"time", fmt.Sprintf("%8.2f s", m.t)},
		{"altitude", fmt.Sprintf("%8.1f m", -pos[2])},
		{"north/east", fmt.Sprintf("%7.1f / %7.1f m", pos[0], pos[1])},
		{"roll", fmt.Sprintf("%8.1f deg", att[0]*180/math.Pi)},
		{"pitch", fmt.Sprintf("%8.1f deg", att[1]*180/math.Pi)},
		{"yaw", fmt.Sprintf("%8.1f deg", att[2]*180/math.Pi)},
		{"airspeed", fmt.Sprintf("%8.1f m/s", vel.Len())},
		{"rates", fmt.Sprintf("%5.2f %5.2f %5.2f rad/s", rates[0], rates[1], rates[2])},
	}

	stats := ""
	for _, r := range rows {
		stats += labelStyle.Render(r.label) + valueStyle.Render(r.value) + "\n"
	}

	graph := ""
	if len(m.altitude) > 1 {
		graph = asciigraph.Plot(m.altitude, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("altitude (m)"))
	}

	status := "running"
	if !m.running {
		status = "paused"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(fmt.Sprintf("flightdyn live [%s]", status)),
		lipgloss.JoinHorizontal(lipgloss.Top, statsStyle.Render(stats), graphStyle.Render(graph)),
		helpStyle.Render("space pause · r reset · q quit"),
	)
}

// Run starts the live view and blocks until the user quits.
func Run(veh *vehicle.Vehicle, model forces.Model, initState rigid.State, dt float64, fps int) error {
	p := tea.NewProgram(NewModel(veh, model, initState, dt, fps))
	_, err := p.Run()
	return err
}
