package viz

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/metrics"
	"github.com/san-kum/ballsim/internal/shapes"
)

const (
	historyCapacity = 600
	panelWidth      = 45

	// canvas offset on screen, from canvasStyle padding
	padTop  = 1
	padLeft = 2

	minCols = 20
	minRows = 8
)

var canvasStyle = lipgloss.NewStyle().Padding(padTop, padLeft)

type TickMsg time.Time

// Model drives a simulation from the terminal clock and mouse.
type Model struct {
	cfg      *config.Config
	sim      *dynamo.Simulation
	terminal *metrics.TerminalApproach
	decor    []shapes.Drawable
	canvas   *Canvas
	keys     KeyMap
	help     help.Model
	theme    Theme
	logger   *log.Logger

	running bool
	energy  []float64
	err     error
}

// NewModel builds the simulation described by cfg on a cols x rows canvas.
func NewModel(cfg *config.Config, cols, rows int, logger *log.Logger) (Model, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	decor, err := shapes.Decor(cfg.Decor)
	if err != nil {
		return Model{}, err
	}
	m := Model{
		cfg:     cfg,
		decor:   decor,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		theme:   GetTheme(cfg.Render.Theme),
		logger:  logger,
		running: true,
		energy:  make([]float64, 0, historyCapacity),
	}
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	m.resize(cols, rows)
	m.draw()
	return m, nil
}

func (m Model) tick() tea.Cmd {
	fps := m.cfg.Render.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.running = !m.running
		case key.Matches(msg, m.keys.Step):
			if !m.running {
				m.advance()
				m.draw()
			}
		case key.Matches(msg, m.keys.Reset):
			if err := m.reset(); err != nil {
				m.err = err
			}
			m.draw()
		case key.Matches(msg, m.keys.Theme):
			m.theme = NextTheme(m.theme.Name)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.spawnAt(msg.X-padLeft, msg.Y-padTop)
		}
	case tea.WindowSizeMsg:
		m.resize(CanvasSize(msg.Width, msg.Height))
		m.draw()
	case TickMsg:
		if m.running {
			m.advance()
		}
		m.draw()
		return m, m.tick()
	}
	return m, nil
}

// spawnAt queues a body at the world point under terminal cell (col, row).
// It joins the simulation on the next tick.
func (m *Model) spawnAt(col, row int) {
	if col < 0 || row < 0 || col >= m.canvas.Width || row >= m.canvas.Height {
		return
	}
	pos := m.canvas.View.CellToWorld(col, row)
	p, err := m.cfg.SpawnAt(pos)
	if err == nil {
		err = m.sim.RequestSpawn(p)
	}
	if err != nil {
		m.err = err
		m.logger.Warn("spawn rejected", "pos", pos, "err", err)
	}
}

func (m *Model) advance() {
	if err := m.sim.Tick(); err != nil {
		m.err = err
		m.running = false
		m.logger.Error("tick failed", "err", err)
		return
	}
	m.energy = append(m.energy, metrics.Total(m.sim.Bodies()))
	if len(m.energy) > historyCapacity {
		m.energy = m.energy[1:]
	}
}

// reset rebuilds the simulation from the config.
func (m *Model) reset() error {
	sim, err := m.cfg.NewSimulation(dynamo.WithLogger(m.logger))
	if err != nil {
		return err
	}
	m.terminal = metrics.NewTerminalApproach()
	sim.AddMetric(m.terminal)
	m.sim = sim
	m.energy = m.energy[:0]
	m.err = nil
	return nil
}

// CanvasSize is the canvas that fits a terminal of the given size next to
// the side panel.
func CanvasSize(width, height int) (cols, rows int) {
	return width - panelWidth - 2*padLeft - 1, height - 2*padTop
}

func (m *Model) resize(cols, rows int) {
	cols = max(cols, minCols)
	rows = max(rows, minRows)
	m.canvas = NewCanvas(cols, rows)
	m.canvas.View = FitViewport(m.cfg.World.Width, m.cfg.World.Height, cols, rows)
}

func (m *Model) draw() {
	shapes.DrawFrame(m.canvas, m.decor, m.sim.Bodies())
}

// Simulation exposes the running simulation.
func (m Model) Simulation() *dynamo.Simulation { return m.sim }

func (m Model) Running() bool { return m.running }

func (m Model) Canvas() *Canvas { return m.canvas }

func (m Model) Theme() Theme { return m.theme }

func (m Model) Err() error { return m.err }

func (m Model) View() string {
	st := m.theme.styles()
	var s strings.Builder

	status := st.running.Render("RUNNING")
	if !m.running {
		status = st.paused.Render("PAUSED")
	}
	s.WriteString(st.title.Render("BALLSIM") + "  " + status + "\n")

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(st.chart.Render(chart) + "\n")
	}

	energy := 0.0
	if len(m.energy) > 0 {
		energy = m.energy[len(m.energy)-1]
	}
	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Tick", fmt.Sprintf("%d", m.sim.Ticks()))
	row("Bodies", fmt.Sprintf("%d", m.sim.Len()))
	if n := m.sim.Pending(); n > 0 {
		row("Pending", fmt.Sprintf("%d", n))
	}
	row("Energy", fmt.Sprintf("%.2f", energy))
	row("Collisions", fmt.Sprintf("%d", m.sim.Collisions()))
	row("Terminal", fmt.Sprintf("%.0f%%", 100*m.terminal.Value()))
	row("Theme", m.theme.Name)

	if m.err != nil {
		s.WriteString("\n" + st.err.Render(m.err.Error()) + "\n")
	}
	s.WriteString(st.help.Render(m.help.View(m.keys)))

	canvasView := canvasStyle.Render(m.canvas.Render())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.panel.Render(s.String()))
}
