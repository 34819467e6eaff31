package viz

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gliderlab/internal/config"
	"github.com/san-kum/gliderlab/internal/export"
	"github.com/san-kum/gliderlab/internal/field"
	"github.com/san-kum/gliderlab/internal/geom"
	"github.com/san-kum/gliderlab/internal/glider"
	"github.com/san-kum/gliderlab/internal/integrators"
	"github.com/san-kum/gliderlab/internal/search"
)

const (
	canvasWidth  = 80
	canvasHeight = 24
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

type searchDoneMsg struct {
	best search.Candidate
	traj []geom.Vec2
	err  error
}

// Model is the interactive glider field viewer. It owns one planetary
// system at a time and regenerates it wholesale on reseed.
type Model struct {
	cfg      *config.Config
	sys      *field.System
	trajs    [][]geom.Vec2
	best     *search.Candidate
	bestTraj []geom.Vec2

	head      int
	maxLen    int
	searching bool
	showField bool
	status    string
}

func NewModel(cfg *config.Config) (Model, error) {
	m := Model{cfg: cfg}
	if err := m.regenerate(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// regenerate rebuilds the system and glider fan for the current seed.
// Planet placement and glider starts consume the same RNG stream, as
// the original program did.
func (m *Model) regenerate() error {
	rng := rand.New(rand.NewSource(m.cfg.Seed))

	sys, err := field.NewRandom(m.cfg.Planets, m.cfg.MaxMass, m.cfg.Rect(), rng)
	if err != nil {
		return err
	}
	m.sys = sys

	tracer, err := m.newTracer()
	if err != nil {
		return err
	}

	m.trajs = m.trajs[:0]
	m.maxLen = 0
	for i := 0; i < m.cfg.Gliders; i++ {
		start := field.RandomPoint(sys.Bounds, rng)
		traj := tracer.Trace(start, glider.CoinFlip(rng))
		if len(traj) > m.maxLen {
			m.maxLen = len(traj)
		}
		m.trajs = append(m.trajs, traj)
	}

	m.best = nil
	m.bestTraj = nil
	m.head = 2
	m.status = fmt.Sprintf("seed %d", m.cfg.Seed)
	return nil
}

func (m *Model) newTracer() (*glider.Tracer, error) {
	tracer := glider.NewTracer(m.sys, m.cfg.Spiral, m.cfg.MaxSteps)

	scheme, err := glider.SchemeByName(m.cfg.Scheme)
	if err != nil {
		return nil, err
	}
	tracer.Scheme = scheme
	tracer.StepSize = m.cfg.StepSize

	stepper, err := integrators.ByName(m.cfg.Integrator)
	if err != nil {
		return nil, err
	}
	tracer.Stepper = stepper
	return tracer, nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) searchCmd() tea.Cmd {
	cfg := m.cfg
	sys := m.sys
	return func() tea.Msg {
		searcher := search.New(sys, cfg.Spiral, cfg.MaxSteps)
		searcher.Attempts = cfg.Attempts
		searcher.StepSize = cfg.StepSize
		scheme, err := glider.SchemeByName(cfg.Scheme)
		if err != nil {
			return searchDoneMsg{err: err}
		}
		searcher.Scheme = scheme
		stepper, err := integrators.ByName(cfg.Integrator)
		if err != nil {
			return searchDoneMsg{err: err}
		}
		searcher.Stepper = stepper

		best, err := searcher.Run(context.Background(), cfg.Seed)
		if err != nil {
			return searchDoneMsg{err: err}
		}

		tracer := glider.NewTracer(sys, cfg.Spiral, cfg.MaxSteps)
		tracer.Scheme = scheme
		tracer.StepSize = cfg.StepSize
		tracer.Stepper = stepper
		return searchDoneMsg{best: best, traj: tracer.Trace(best.Start, best.Hand)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.cfg.Seed++
			if err := m.regenerate(); err != nil {
				m.status = err.Error()
			}
		case "s":
			if !m.searching {
				m.searching = true
				m.status = "searching..."
				return m, m.searchCmd()
			}
		case "f":
			m.showField = !m.showField
		case "e":
			path := fmt.Sprintf("gliders_%d.svg", m.cfg.Seed)
			if err := export.SceneToSVG(path, m.sys, m.visibleTrajs()); err != nil {
				m.status = err.Error()
			} else {
				m.status = "wrote " + path
			}
		case "+", "=":
			m.cfg.Spiral += 0.01
			m.retrace()
		case "-", "_":
			m.cfg.Spiral -= 0.01
			m.retrace()
		}
	case searchDoneMsg:
		m.searching = false
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			best := msg.best
			m.best = &best
			m.bestTraj = msg.traj
			m.status = fmt.Sprintf("best score %.0f at %s", best.Score, best.Start)
		}
	case TickMsg:
		if m.head < m.maxLen {
			m.head += 4
		}
		return m, tick()
	}
	return m, nil
}

// retrace redraws all gliders with the current parameters but the same
// system and the same start points.
func (m *Model) retrace() {
	tracer, err := m.newTracer()
	if err != nil {
		m.status = err.Error()
		return
	}

	rng := rand.New(rand.NewSource(m.cfg.Seed))
	// Burn the draws consumed by planet placement so starts match the
	// regenerate stream.
	if _, err := field.NewRandom(m.cfg.Planets, m.cfg.MaxMass, m.cfg.Rect(), rng); err != nil {
		m.status = err.Error()
		return
	}

	m.maxLen = 0
	for i := range m.trajs {
		start := field.RandomPoint(m.sys.Bounds, rng)
		m.trajs[i] = tracer.Trace(start, glider.CoinFlip(rng))
		if len(m.trajs[i]) > m.maxLen {
			m.maxLen = len(m.trajs[i])
		}
	}
	m.best = nil
	m.bestTraj = nil
	m.status = fmt.Sprintf("spiral %.2f", m.cfg.Spiral)
}

func (m Model) visibleTrajs() [][]geom.Vec2 {
	if m.bestTraj != nil {
		return append(m.trajs, m.bestTraj)
	}
	return m.trajs
}

func (m Model) View() string {
	plot := NewPlot(canvasWidth, canvasHeight, m.sys.Bounds)

	if m.showField {
		plot.VectorField(m.sys.Gravity, m.sys.Bounds.Width()/24)
	}
	plot.Planets(m.sys)
	for _, traj := range m.trajs {
		head := m.head
		if head > len(traj) {
			head = len(traj)
		}
		plot.Trajectory(traj[:head])
	}
	if m.bestTraj != nil {
		plot.Trajectory(m.bestTraj)
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render("GLIDER FIELD") + "\n")
	s.WriteString(m.statusLine() + "\n\n")
	s.WriteString(labelStyle.Render("Seed") + valueStyle.Render(fmt.Sprintf("%d", m.cfg.Seed)) + "\n")
	s.WriteString(labelStyle.Render("Planets") + valueStyle.Render(fmt.Sprintf("%d", len(m.sys.Planets))) + "\n")
	s.WriteString(labelStyle.Render("Spiral") + valueStyle.Render(fmt.Sprintf("%.2f", m.cfg.Spiral)) + "\n")
	s.WriteString(labelStyle.Render("Scheme") + valueStyle.Render(m.cfg.Scheme) + "\n")
	s.WriteString(labelStyle.Render("Gliders") + valueStyle.Render(fmt.Sprintf("%d", len(m.trajs))) + "\n")

	if m.best != nil {
		s.WriteString("\n" + labelStyle.Render("Best") + valueStyle.Render(fmt.Sprintf("%.0f (%s)", m.best.Score, m.best.Hand)) + "\n")
		if chart := potentialChart(m.sys, m.bestTraj); chart != "" {
			s.WriteString(graphStyle.Render(chart) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("\n──────────────────────\nR:Reseed S:Search F:Field\nE:SVG +/-:Spiral Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(plot.String()),
		statsStyle.Render(s.String()))
}

func (m Model) statusLine() string {
	if m.searching {
		return "SEARCHING"
	}
	return m.status
}

// potentialChart plots the gravitational potential along a trajectory.
func potentialChart(sys *field.System, traj []geom.Vec2) string {
	if len(traj) < 2 {
		return ""
	}
	data := make([]float64, 0, len(traj))
	for _, p := range traj {
		v := sys.Potential(p)
		if v != v || v < -1e6 { // NaN or singular sample
			continue
		}
		data = append(data, v)
	}
	if len(data) < 2 {
		return ""
	}
	return asciigraph.Plot(data, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("potential"))
}

// RunLive starts the interactive viewer.
func RunLive(cfg *config.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
