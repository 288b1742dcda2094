// Package tui runs a desktop in the terminal.
//
// The [Model] is a bubbletea model that translates terminal mouse events into
// pixel-space pointer events for a [desktop.Desktop], paints the icons from
// its placement snapshot, and shows the detail [Overlay] when an app is
// launched. Terminal cells are mapped to pixels through a [Grid] so the
// engine keeps working in the same units as any other host.
package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/folio/pkg/canvas"
	"github.com/matzehuels/folio/pkg/desktop"
)

const (
	headerRows = 2
	footerRows = 2
)

const (
	dockHint = "Double-click apps to launch • Drag to customize layout • q quit"
	dropHint = "Drop here to place the app"
)

var ghostBorder = lipgloss.Border{
	Top: "┄", Bottom: "┄", Left: "┆", Right: "┆",
	TopLeft: "┌", TopRight: "┐", BottomLeft: "└", BottomRight: "┘",
}

type frameMsg struct{}

// Options configures a Model.
type Options struct {
	Cell   canvas.Size // pixels per terminal cell; zero uses DefaultCell
	Logger *log.Logger
}

// Model is the bubbletea model of a terminal desktop.
type Model struct {
	desktop *desktop.Desktop
	overlay *Overlay
	grid    Grid
	logger  *log.Logger

	width, height int
	animating     bool
	status        string
}

// New creates a model for d. Launches open the detail overlay.
func New(d *desktop.Desktop, opts Options) *Model {
	if opts.Cell.Width <= 0 || opts.Cell.Height <= 0 {
		opts.Cell = DefaultCell
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	m := &Model{
		desktop: d,
		overlay: NewOverlay(d.Catalog()),
		grid:    Grid{Cell: opts.Cell},
		logger:  opts.Logger,
	}
	d.Subscribe(m.overlay.Consume)
	return m
}

// Overlay returns the detail overlay.
func (m *Model) Overlay() *Overlay { return m.overlay }

// Run starts the program and blocks until the user quits or ctx is done.
func Run(ctx context.Context, m *Model) error {
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle("folio")
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.BlurMsg:
		if m.desktop.Cancel() {
			m.logger.Debug("drag cancelled", "reason", "focus lost")
			m.status = ""
			return m, m.animate()
		}
	case frameMsg:
		if m.desktop.Tick() {
			return m, m.frame()
		}
		m.animating = false
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "q":
		if m.overlay.IsOpen() {
			m.overlay.Close()
			return nil
		}
		return tea.Quit
	case "esc":
		if m.overlay.IsOpen() {
			m.overlay.Close()
			return nil
		}
		if m.desktop.Cancel() {
			m.status = ""
			return m.animate()
		}
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.overlay.IsOpen() {
		if msg.Action == tea.MouseActionPress && !m.insidePanel(msg.X, msg.Y) {
			m.overlay.Close()
		}
		return nil
	}

	var kind desktop.PointerKind
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		kind = desktop.Press
	case msg.Action == tea.MouseActionMotion:
		kind = desktop.Move
	case msg.Action == tea.MouseActionRelease:
		kind = desktop.Release
	default:
		return nil
	}

	out := m.desktop.HandlePointer(desktop.PointerEvent{
		Kind: kind,
		Pos:  m.grid.Pixel(msg.X, msg.Y),
	}, m.container())

	if out.Err != nil {
		m.logger.Debug("pointer event rejected", "kind", kind, "id", out.ID, "err", out.Err)
	}
	switch out.Kind {
	case desktop.Committed:
		m.logger.Debug("icon placed", "id", out.ID, "x", out.Position.X, "y", out.Position.Y)
		m.status = "placed " + m.title(out.ID)
	case desktop.Launched:
		m.status = "launched " + m.title(out.ID)
	case desktop.Suppressed:
		m.status = ""
	}
	return m.animate()
}

// container is the canvas rectangle in pixels, sampled from the current
// terminal size.
func (m *Model) container() canvas.Rect {
	return m.grid.Rect(0, headerRows, m.width, m.canvasRows())
}

func (m *Model) canvasRows() int {
	return max(m.height-headerRows-footerRows, 0)
}

func (m *Model) title(id string) string {
	if app, ok := m.desktop.Catalog().Get(id); ok {
		return app.Title
	}
	return id
}

func (m *Model) animate() tea.Cmd {
	if m.animating || !m.desktop.Moving() {
		return nil
	}
	m.animating = true
	return m.frame()
}

func (m *Model) frame() tea.Cmd {
	fps := m.desktop.Config().FPS
	return tea.Tick(time.Second/time.Duration(fps), func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

// panelOrigin returns the top-left cell and size of the overlay panel.
func (m *Model) panelOrigin() (x, y, w, h int) {
	panel := m.overlay.View(m.width)
	w, h = lipgloss.Width(panel), lipgloss.Height(panel)
	x = max((m.width-w)/2, 0)
	y = headerRows + max((m.canvasRows()-h)/2, 0)
	return x, y, w, h
}

func (m *Model) insidePanel(col, row int) bool {
	x, y, w, h := m.panelOrigin()
	return col >= x && col < x+w && row >= y && row < y+h
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render("Featured Applications"))
	b.WriteByte('\n')
	b.WriteString(styleHint.Render(m.status))
	b.WriteByte('\n')

	if m.overlay.IsOpen() {
		b.WriteString(m.viewOverlay())
	} else {
		b.WriteString(m.paint().String())
	}

	b.WriteString("\n\n")
	hint := styleHint.Render(dockHint)
	if m.desktop.Drag().Active() {
		hint = styleDockHit.Render(dropHint)
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, hint))
	return b.String()
}

func (m *Model) viewOverlay() string {
	x, y, _, _ := m.panelOrigin()
	lines := strings.Split(m.overlay.View(m.width), "\n")
	pad := strings.Repeat(" ", x)

	rows := m.canvasRows()
	out := make([]string, rows)
	for i := range out {
		if j := i - (y - headerRows); j >= 0 && j < len(lines) {
			out[i] = pad + lines[j]
		}
	}
	return strings.Join(out, "\n")
}

// paint draws the drop ghost and then every icon back-to-front.
func (m *Model) paint() *surface {
	s := newSurface(m.width, m.canvasRows())
	cfg := m.desktop.Config()
	cols, rows := m.grid.Span(cfg.Footprint)

	if preview, ok := m.desktop.Drag().Preview(m.container()); ok {
		x, y := m.grid.Cell(preview)
		s.box(x, y, cols, rows, ghostBorder, &styleGhost)
	}

	for _, ic := range m.desktop.Icons() {
		x, y := m.grid.Cell(ic.Display)
		border, text := &styleIcon, &styleIconText
		if ic.Dragging {
			border, text = &styleDragged, &styleDragged
		}
		s.fill(x, y, cols, rows)
		s.box(x, y, cols, rows, lipgloss.RoundedBorder(), border)

		inner := cols - 2
		if rows >= 3 {
			centered(s, x+1, y+rows/2-boolInt(rows >= 4), inner, ic.App.Glyph(), text)
		}
		if rows >= 4 {
			centered(s, x+1, y+rows-2, inner, ic.App.Title, text)
		}
	}
	return s
}

func centered(s *surface, x, y, width int, str string, st *lipgloss.Style) {
	w := lipgloss.Width(str)
	if w > width {
		s.text(x, y, str, width, st)
		return
	}
	s.text(x+(width-w)/2, y, str, width, st)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
