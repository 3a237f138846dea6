package viz

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbsim/internal/cloud"
	"github.com/san-kum/orbsim/internal/export"
	"github.com/san-kum/orbsim/internal/render"
	"github.com/san-kum/orbsim/internal/sim"
)

const (
	defaultWidth    = 80
	defaultHeight   = 24
	statsWidth      = 44
	historyCapacity = 600
	drawBudget      = 40000

	thresholdStep  = 0.02
	speedStep      = 0.05
	proportionStep = 0.05
	rotateStep     = 0.1

	// resetSpeed is clamped to cloud.MaxSpeed.
	resetSpeed = 5

	// below this many rad/s the elapsed clock shows a still picture
	frozenRate = 1e-6
)

type TickMsg time.Time

type Options struct {
	FPS     int
	Theme   string
	Axes    bool
	Grid    bool
	Clock   sim.Clock
	Extent  float64 // half the cube width
	GIFPath string
	Logger  *slog.Logger
	// Geometry, when set, is the sink the session publishes into and the
	// model draws from it instead of reading the session directly.
	Geometry *render.Geometry
}

// Model drives a session from Bubble Tea ticks and draws every frame.
type Model struct {
	session       *sim.Session
	clock         sim.Clock
	interval      time.Duration
	fps           int
	width, height int
	canvas        *Canvas
	camera        *render.Camera
	extent        float64
	theme         Theme
	running       bool
	showAxes      bool
	showGrid      bool
	showHelp      bool
	recording     bool
	frames        []*image.Paletted
	gifPath       string
	visibleHist   []float64
	balanceHist   []float64
	last          sim.Frame
	lastErr       error
	drawn         int
	geometry      *render.Geometry
	flagsVersion  uint64
	viewDirty     bool
	logger        *slog.Logger
}

func NewModel(session *sim.Session, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Clock == nil {
		opts.Clock = &sim.ElapsedClock{}
	}
	if opts.Extent <= 0 {
		opts.Extent = 6.5
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "orbital.gif"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return Model{
		session:     session,
		clock:       opts.Clock,
		interval:    time.Second / time.Duration(opts.FPS),
		fps:         opts.FPS,
		width:       defaultWidth,
		height:      defaultHeight,
		canvas:      NewCanvas(defaultWidth, defaultHeight),
		camera:      render.NewCamera(opts.Extent),
		extent:      opts.Extent,
		theme:       GetTheme(opts.Theme),
		running:     true,
		showAxes:    opts.Axes,
		showGrid:    opts.Grid,
		gifPath:     opts.GIFPath,
		visibleHist: make([]float64, 0, historyCapacity),
		balanceHist: make([]float64, 0, historyCapacity),
		geometry:    opts.Geometry,
		viewDirty:   true,
		logger:      opts.Logger,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the session.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		// the clock advances while paused so resuming does not jump
		elapsed := m.clock.Elapsed(time.Time(msg))
		if m.running {
			m.step(elapsed)
		}
		m.draw()
		if m.recording {
			m.frames = append(m.frames, CaptureFrame(m.canvas, m.theme))
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.recording {
			m.saveGIF()
		}
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "up", "k":
		m.session.UpdateParams(func(p *cloud.Params) { p.SetThreshold(p.Threshold + thresholdStep) })
	case "down", "j":
		m.session.UpdateParams(func(p *cloud.Params) { p.SetThreshold(p.Threshold - thresholdStep) })
	case "right", "l":
		m.session.UpdateParams(func(p *cloud.Params) { p.SetSpeed(p.Speed + speedStep) })
	case "left", "h":
		m.session.UpdateParams(func(p *cloud.Params) { p.SetSpeed(p.Speed - speedStep) })
	case "n":
		m.session.UpdateParams(func(p *cloud.Params) { p.SetNProportion(p.NProportion + proportionStep) })
	case "N":
		m.session.UpdateParams(func(p *cloud.Params) { p.SetNProportion(p.NProportion - proportionStep) })
	case "m":
		m.session.UpdateParams(func(p *cloud.Params) { p.SetMProportion(p.MProportion + proportionStep) })
	case "M":
		m.session.UpdateParams(func(p *cloud.Params) { p.SetMProportion(p.MProportion - proportionStep) })
	case "x":
		m.camera.RotateX(rotateStep)
	case "X":
		m.camera.RotateX(-rotateStep)
	case "y":
		m.camera.RotateY(rotateStep)
	case "Y":
		m.camera.RotateY(-rotateStep)
	case "z":
		m.camera.RotateZ(rotateStep)
	case "Z":
		m.camera.RotateZ(-rotateStep)
	case "+", "=":
		m.camera.ZoomIn()
	case "-", "_":
		m.camera.ZoomOut()
	case "r":
		m.reset()
	case "a":
		m.showAxes = !m.showAxes
	case "c":
		m.showGrid = !m.showGrid
	case "t":
		m.theme = NextTheme(m.theme.Name)
	case "g":
		if m.recording {
			m.saveGIF()
			m.recording = false
			m.frames = nil
		} else {
			m.recording = true
			m.frames = make([]*image.Paletted, 0)
		}
	case "?":
		m.showHelp = !m.showHelp
	}
	m.viewDirty = true
	return m, nil
}

// reset restores the camera and the display toggles and sets the speed to
// its maximum. Threshold and proportions are kept.
func (m *Model) reset() {
	m.session.UpdateParams(func(p *cloud.Params) { p.SetSpeed(resetSpeed) })
	m.showAxes = false
	m.showGrid = true
	m.camera.Reset()
}

func (m *Model) resize(w, h int) {
	cw := max(w-statsWidth-6, 20)
	ch := max(h-2, 8)
	m.width, m.height = cw, ch
	m.canvas = NewCanvas(cw, ch)
	m.viewDirty = true
}

func (m *Model) step(elapsed float64) {
	f, err := m.session.Step(elapsed)
	if err != nil {
		m.lastErr = err
		return
	}
	m.lastErr = nil
	m.last = f

	m.visibleHist = appendCapped(m.visibleHist, float64(f.Visible))
	if f.Visible > 0 {
		m.balanceHist = appendCapped(m.balanceHist, float64(f.LobeA)/float64(f.Visible))
	}
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

// draw repaints the canvas. With a geometry it only repaints when the flag
// buffers were republished or the view changed.
func (m *Model) draw() {
	if m.geometry != nil && !m.consumeFlags() && !m.viewDirty {
		return
	}
	m.viewDirty = false
	m.canvas.Clear()
	if m.showGrid {
		Render3D(m.canvas, CreateCubeWireframe(2*m.extent), m.camera)
	}
	if m.showAxes {
		Render3D(m.canvas, CreateAxesWireframe(m.extent*0.8), m.camera)
	}
	if m.geometry != nil {
		stride := (m.last.Visible + drawBudget - 1) / drawBudget
		m.drawn = DrawGeometry(m.canvas, m.camera, m.geometry, stride)
		return
	}
	m.session.View(func(s *cloud.Samples, v *cloud.VisualState) {
		m.drawn = DrawCloud(m.canvas, m.camera, s, v, drawBudget)
	})
}

func (m *Model) consumeFlags() bool {
	if m.geometry.Count() == 0 {
		return false
	}
	dirty := false
	for _, name := range []string{cloud.AttrVisible, cloud.AttrLobe} {
		ok, err := m.geometry.Consume(name, func(a *render.Attribute) { m.flagsVersion = a.Version })
		if err != nil {
			m.logger.Warn("consume flags", slog.String("attribute", name), slog.String("error", err.Error()))
			continue
		}
		dirty = dirty || ok
	}
	return dirty
}

// frozen reports whether the elapsed clock advances the phase too slowly to
// see at the current speed.
func (m Model) frozen() bool {
	if _, ok := m.clock.(sim.EpochClock); ok {
		return false
	}
	p := m.session.Params()
	return p.Speed > 0 && float64(p.Speed)*m.session.Classifier().SpeedScale() < frozenRate
}

func (m *Model) saveGIF() {
	if len(m.frames) == 0 {
		return
	}
	f, err := os.Create(m.gifPath)
	if err != nil {
		m.logger.Error("create gif", slog.String("path", m.gifPath), slog.String("error", err.Error()))
		return
	}
	defer f.Close()
	if err := export.WriteGIF(f, m.frames, max(100/m.fps, 1)); err != nil {
		m.logger.Error("encode gif", slog.String("path", m.gifPath), slog.String("error", err.Error()))
		return
	}
	m.logger.Info("saved gif", slog.String("path", m.gifPath), slog.Int("frames", len(m.frames)))
}

// View renders the TUI interface.
func (m Model) View() string {
	th := m.theme
	header := lipgloss.NewStyle().Foreground(th.Primary).Bold(true)

	var s strings.Builder
	s.WriteString(header.Render("HYDROGEN 1s + 2pz") + "\n")

	status := StatusRunning.Render("RUNNING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	if m.recording {
		status += " " + StatusRecording.Render(fmt.Sprintf("REC %d", len(m.frames)))
	}
	s.WriteString(status + "\n\n")

	p := m.session.Params()
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Phase", fmt.Sprintf("%.4f rad", m.last.Phase))
	row("Threshold", fmt.Sprintf("%s %.2f", ProgressBar(float64(p.Threshold), 10), p.Threshold))
	row("Speed", fmt.Sprintf("%s %.2f", ProgressBar(float64(p.Speed), 10), p.Speed))
	sn, sm := p.SqrtProportions()
	row("s / p", fmt.Sprintf("%.2f / %.2f (amp %.2f / %.2f)", p.NProportion, p.MProportion, sn, sm))
	row("Visible", fmt.Sprintf("%d (%d drawn)", m.last.Visible, m.drawn))
	row("Lobes", lipgloss.NewStyle().Foreground(th.LobeA).Render(fmt.Sprintf("A %d", m.last.LobeA))+"  "+
		lipgloss.NewStyle().Foreground(th.LobeB).Render(fmt.Sprintf("B %d", m.last.LobeB)))
	row("Frame", fmt.Sprintf("%.1f ms", float64(m.last.Duration.Microseconds())/1000))
	c := m.session.Classifier()
	row("Backend", c.Backend().Name()+" / "+c.Formula().String())
	if m.geometry != nil {
		row("Buffers", fmt.Sprintf("v%d", m.flagsVersion))
	}
	if m.frozen() {
		s.WriteString(lipgloss.NewStyle().Foreground(th.Warning).Render(frozenHint) + "\n")
	}
	if m.lastErr != nil {
		s.WriteString(lipgloss.NewStyle().Foreground(th.Warning).Render("skipped: "+m.lastErr.Error()) + "\n")
	}

	if len(m.visibleHist) > 1 {
		chart := asciigraph.Plot(m.visibleHist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Visible points"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	if len(m.balanceHist) > 0 {
		s.WriteString(labelStyle.Render("Lobe A") + SparklineChart(m.balanceHist, 28) + "\n")
	}

	s.WriteString(helpStyle.Render("SP:Pause ↑↓:Thresh ←→:Speed\nn/N m/M:Mix xyz:Rotate +/-:Zoom\nR:Reset T:Theme G:Record ?:Help Q:Quit"))

	canvasView := canvasStyle.Render(m.canvas.Render(th))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume animation   ║
║  Up/K     - Raise threshold          ║
║  Down/J   - Lower threshold          ║
║  Right/L  - Faster                   ║
║  Left/H   - Slower                   ║
║  n / N    - More / less 1s share     ║
║  m / M    - More / less 2pz share    ║
║  x y z    - Rotate (shift reverses)  ║
║  + / -    - Zoom in / out            ║
║  R        - Reset view, max speed    ║
║  A / C    - Toggle axes / cube       ║
║  T        - Cycle themes             ║
║  G        - Toggle GIF recording     ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
 The default speed scale barely moves the
 phase; try --preset lively or legacy.`

const frozenHint = "phase ~still: try --preset lively or legacy"

// Run starts the full-screen program and blocks until it exits.
func Run(session *sim.Session, opts Options) error {
	if err := session.Seed(); err != nil {
		return fmt.Errorf("seed session: %w", err)
	}
	_, err := tea.NewProgram(NewModel(session, opts), tea.WithAltScreen()).Run()
	return err
}
