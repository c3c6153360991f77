package viz

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/forktal/internal/config"
	"github.com/san-kum/forktal/internal/export"
	"github.com/san-kum/forktal/internal/fractal"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	panelWidth      = 40
	historyCapacity = 120
)

type TickMsg time.Time

// Model is the live fractal view. The field is sized to the terminal and
// rebuilt, keeping its viewport, whenever the terminal is resized.
type Model struct {
	cfg           *config.Config
	field         *fractal.Field
	initial       fractal.Viewport
	buf           []byte
	painter       *pixelPainter
	running       bool
	last          time.Time
	history       []float64
	width, height int
	showHelp      bool
	message       string
	snapshotDir   string
	now           func() time.Time
}

func NewModel(cfg *config.Config) Model {
	m := Model{
		cfg:     cfg,
		initial: cfg.View(),
		painter: newPixelPainter(),
		running: true,
		history: make([]float64, 0, historyCapacity),
		width:   defaultCols,
		height:  defaultRows,
		now:     time.Now,
	}
	m.resize(m.initial)
	return m
}

// canvasSize is the field size in pixels for the current terminal.
func (m *Model) canvasSize() (int, int) {
	cols := m.width - panelWidth
	if cols < 8 {
		cols = 8
	}
	rows := m.height - 1
	if rows < 4 {
		rows = 4
	}
	return cols, rows * 2
}

func (m *Model) resize(view fractal.Viewport) {
	w, h := m.canvasSize()
	opts := append(m.cfg.FieldOptions(), fractal.WithViewport(view))
	m.field = fractal.New(w, h, opts...)
	m.buf = make([]byte, w*h*4)
	m.history = m.history[:0]
	log.Printf("field %dx%d over %s", w, h, view)
}

func (m Model) interval() time.Duration {
	fps := m.cfg.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval(), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize(m.field.Viewport())
		return m, nil
	case TickMsg:
		m.advance(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

// advance feeds the wall time since the previous tick into the field.
func (m *Model) advance(now time.Time) {
	if m.last.IsZero() {
		m.last = now
		return
	}
	dt := now.Sub(m.last)
	m.last = now
	if !m.running {
		return
	}

	before := m.field.GlobalStep()
	m.field.Step(dt)
	if m.field.GlobalStep() != before {
		m.history = append(m.history, 100*m.field.EscapedFraction())
		if len(m.history) > historyCapacity {
			m.history = m.history[1:]
		}
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	pan := m.cfg.PanFraction
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.field.Zoom()
		m.history = m.history[:0]
	case "right", "l":
		m.shift(m.field.ScaleWidth()*pan, 0)
	case "left", "h":
		m.shift(-m.field.ScaleWidth()*pan, 0)
	case "up", "k":
		m.shift(0, -m.field.ScaleHeight()*pan)
	case "down", "j":
		m.shift(0, m.field.ScaleHeight()*pan)
	case "p":
		m.running = !m.running
	case "r":
		m.resize(m.initial)
	case "s":
		m.snapshot()
	case "t":
		NextTheme()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) shift(dx, dy float64) {
	m.field.Shift(dx, dy)
	m.history = m.history[:0]
}

func (m *Model) snapshot() {
	path := filepath.Join(m.snapshotDir, export.SnapshotName(m.now()))
	if err := export.SavePNG(path, m.field); err != nil {
		m.message = "snapshot failed: " + err.Error()
		log.Printf("snapshot: %v", err)
		return
	}
	m.message = "saved " + path
}

func (m Model) View() string {
	m.field.Draw(m.buf)
	canvas := m.painter.Paint(m.buf, m.field.Width(), m.field.Height())

	body := lipgloss.JoinHorizontal(lipgloss.Top, canvas, m.panel())
	if m.showHelp {
		return helpOverlay + "\n" + body
	}
	return body
}

func (m Model) panel() string {
	var s strings.Builder
	s.WriteString(headerStyle().Render(GradientText("FORKTAL", CurrentTheme.Primary, CurrentTheme.Secondary)) + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(statusStyle(m.running).Render(status) + "\n\n")

	v := m.field.Viewport()
	row := func(label, value string) {
		s.WriteString(labelStyle().Render(label) + valueStyle().Render(value) + "\n")
	}
	row("Re", fmt.Sprintf("%.6g .. %.6g", v.X.Min, v.X.Max))
	row("Im", fmt.Sprintf("%.6g .. %.6g", v.Y.Min, v.Y.Max))
	row("Width", fmt.Sprintf("%.3e", m.field.ScaleWidth()))
	row("Grid", fmt.Sprintf("%dx%d", m.field.Width(), m.field.Height()))
	row("Step", fmt.Sprintf("%d", m.field.GlobalStep()))
	row("Tick", m.field.Tick().String())

	frac := m.field.EscapedFraction()
	row("Escaped", fmt.Sprintf("%.1f%%", 100*frac))
	s.WriteString(ProgressBar(frac, panelWidth-8) + "\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(5),
			asciigraph.Width(panelWidth-14),
			asciigraph.Caption("escaped % per step"))
		s.WriteString(graphStyle().Render(chart) + "\n")
	}

	if m.message != "" {
		s.WriteString("\n" + valueStyle().Render(m.message) + "\n")
	}

	s.WriteString(helpStyle().Render(Separator(panelWidth-8) + "\nSP:Zoom ←↑↓→:Pan P:Pause\nR:Reset S:Snap T:Theme ?:Help"))
	return panelStyle().Render(s.String())
}

const helpOverlay = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Zoom into the middle     ║
║  Arrows   - Pan (h/j/k/l too)        ║
║  P        - Pause/Resume stepping    ║
║  R        - Reset viewport           ║
║  S        - Save PNG snapshot        ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q / Esc  - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts the viewer on the alternate screen.
func Run(cfg *config.Config) error {
	SetTheme(cfg.Theme)
	_, err := tea.NewProgram(NewModel(cfg), tea.WithAltScreen()).Run()
	return err
}
