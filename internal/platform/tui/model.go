package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tilegen/internal/config"
	"github.com/vovakirdan/tui-tilegen/internal/core"
	"github.com/vovakirdan/tui-tilegen/internal/runner"
	"github.com/vovakirdan/tui-tilegen/internal/wfc"
)

// ChromeRows is the number of lines drawn below the grid box.
const ChromeRows = 2

var (
	statusStyles = map[runner.Status]lipgloss.Style{
		runner.StatusRunning:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		runner.StatusComplete:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		runner.StatusContradiction: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		runner.StatusStepLimit:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	}
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// WatchModel is the Bubble Tea model that animates a generation session.
type WatchModel struct {
	session  *runner.Session
	painter  *Painter
	screen   *core.Screen
	area     core.Rect // grid cells inside the border
	config   core.RuntimeConfig
	pace     *config.Pace
	keys     WatchKeyMap
	help     help.Model
	input    core.InputFrame
	paused   bool
	ticking  bool
	quitting bool
	err      error // restart failure
}

// NewWatchModel creates a watch model for an already seeded session.
func NewWatchModel(s *runner.Session, cfg core.RuntimeConfig) WatchModel {
	screen := core.NewScreen(s.Width()+2, s.Height()+2)

	h := help.New()
	h.ShowAll = false
	if cfg.ScreenW > 0 {
		h.Width = cfg.ScreenW
	}

	// Unthrottled runs are only possible headless
	rate := cfg.TickRate
	if rate <= 0 {
		rate = config.MaxTickRate
	}

	m := WatchModel{
		session: s,
		painter: NewPainter(s.Tileset()),
		screen:  screen,
		area:    screen.Bounds().Inset(1),
		config:  cfg,
		pace:    config.NewPace(rate),
		keys:    DefaultWatchKeyMap(),
		help:    h,
		input:   core.NewInputFrame(),
		ticking: true,
	}
	m.drawFrame()
	return m
}

// drawFrame draws the grid border with the tileset name in its top edge
// when the name fits between the corners.
func (m *WatchModel) drawFrame() {
	m.screen.DrawBox(m.screen.Bounds(), core.ColorGray)
	title := " " + m.session.Tileset().Name + " "
	if utf8.RuneCountInString(title)+4 <= m.screen.Width() {
		m.screen.DrawText(2, 0, title)
	}
}

// Init starts the tick loop.
func (m WatchModel) Init() tea.Cmd {
	return tickCmd(m.pace.Interval())
}

// Update handles messages and updates the model state.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey maps a key to an action and applies it right away.
func (m WatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.input.Set(action)
	}
	return m.applyInput()
}

// applyInput consumes the pending input frame.
func (m WatchModel) applyInput() (tea.Model, tea.Cmd) {
	defer m.input.Clear()

	var cmd tea.Cmd
	if m.input.Has(core.ActionPause) {
		m.paused = !m.paused
	}
	if m.input.Has(core.ActionFaster) {
		m.pace.Faster()
	}
	if m.input.Has(core.ActionSlower) {
		m.pace.Slower()
	}
	if m.input.Has(core.ActionToggleHelp) {
		m.help.ShowAll = !m.help.ShowAll
	}
	if m.input.Has(core.ActionStep) && m.paused {
		m.advance()
	}
	if m.input.Has(core.ActionRestart) {
		m.restart()
		if !m.ticking && m.session.Status() == runner.StatusRunning {
			m.ticking = true
			cmd = tickCmd(m.pace.Interval())
		}
	}
	return m, cmd
}

// handleTick advances the session unless paused and schedules the next
// tick while the session is running.
func (m WatchModel) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused {
		m.advance()
	}
	if m.session.Status() != runner.StatusRunning {
		m.ticking = false
		return m, nil
	}
	return m, tickCmd(m.pace.Interval())
}

// advance runs one session tick and paints what it placed.
func (m *WatchModel) advance() {
	placements, err := m.session.Tick()
	for _, p := range placements {
		m.painter.Paint(m.screen, m.area, p)
	}

	var ce *wfc.ContradictionError
	if errors.As(err, &ce) {
		x, y := screenPos(m.area, ce.Pos)
		m.screen.SetCell(x, y, 'X', core.ColorBrightRed)
	}
}

// restart starts the session over with a fresh time based seed.
func (m *WatchModel) restart() {
	m.err = m.session.Restart(time.Now().UnixNano())
	m.screen.Clear()
	m.drawFrame()
}

// View renders the grid, a status line and the help footer.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// statusLine describes the session: tileset, seed, progress and state.
func (m WatchModel) statusLine() string {
	s := m.session
	info := fmt.Sprintf("%s  seed %d  step %d  %d/%d cells  %d/s  ",
		s.Tileset().Name, s.Seed(), s.Ticks(), s.Collapsed(), s.Total(), m.pace.Rate())

	state := statusStyles[s.Status()].Render(s.Status().String())
	if m.paused && s.Status() == runner.StatusRunning {
		state = pausedStyle.Render("paused")
	}

	line := dimStyle.Render(info) + state
	switch {
	case m.err != nil:
		line += "  " + statusStyles[runner.StatusContradiction].Render(m.err.Error())
	case s.Err() != nil:
		line += "  " + dimStyle.Render(s.Err().Error())
	}
	return line
}

// Paused reports whether generation is paused.
func (m WatchModel) Paused() bool {
	return m.paused
}

// Screen returns the screen buffer the grid is painted into.
func (m WatchModel) Screen() *core.Screen {
	return m.screen
}

// RunWatch starts the Bubble Tea program that animates s.
func RunWatch(s *runner.Session, cfg core.RuntimeConfig) error {
	model := NewWatchModel(s, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
