// Package tui provides a Bubble Tea TUI for replaying recorded sessions.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aircanvas/aircanvas/core"
	"github.com/aircanvas/aircanvas/playback"
)

// ── Styles ────────────

var (
	// Title bar at the very top
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	stateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	kindGestureStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	kindGenerationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)
)

// ── Messages ────────────

// deliveredMsg carries one replayed timeline event into the UI loop. gen ties
// the message to the run that produced it so a restart can discard stragglers
// from the run it cancelled.
type deliveredMsg struct {
	gen   int
	event core.TimelineEvent
}

// doneMsg signals that a run delivered its full timeline.
type doneMsg struct {
	gen int
}

type tickMsg time.Time

// Speed bounds for the +/- keys.
const (
	minSpeed = 0.25
	maxSpeed = 16.0
)

// ── Model ────────────

// Model is the root Bubble Tea model for the replay view.
type Model struct {
	session *core.RecordingSession
	engine  *playback.Engine
	speed   float64

	ch    chan tea.Msg
	gen   int
	total int
	count int
	done  bool

	lines    []string
	progress progress.Model
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

// New creates a replay model for a sealed session wired to engine. The first
// run is started by Run; the r key starts fresh ones.
func New(s *core.RecordingSession, engine *playback.Engine, speed float64) Model {
	return Model{
		session:  s,
		engine:   engine,
		speed:    speed,
		ch:       make(chan tea.Msg, s.EventCount()+8),
		total:    s.EventCount(),
		progress: progress.New(progress.WithDefaultGradient()),
	}
}

// startRun begins a fresh playback run feeding the UI channel. Earlier runs
// are cancelled by the engine; their generation number no longer matches.
func (m *Model) startRun() error {
	m.gen++
	gen := m.gen
	ch := m.ch
	return m.engine.Start(m.session, func(ev core.TimelineEvent) error {
		ch <- deliveredMsg{gen: gen, event: ev}
		return nil
	}, func(o *playback.RunOptions) {
		o.Speed = m.speed
		o.OnComplete = func() {
			ch <- doneMsg{gen: gen}
		}
	})
}

func waitForMsg(ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg { return <-ch }
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ── Bubble Tea interface ────────────

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForMsg(m.ch), tickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.engine.Stop()
			return m, tea.Quit
		case " ":
			state := m.engine.State()
			switch {
			case state.IsPlaying:
				m.engine.Pause()
			case state.IsPaused:
				m.engine.Resume()
			}
			return m, nil
		case "r":
			m.lines = nil
			m.count = 0
			wasDone := m.done
			m.done = false
			if err := m.startRun(); err != nil {
				m.done = true
				return m, nil
			}
			m.refreshLog()
			if wasDone {
				// The wait and tick loops stopped with the finished run.
				return m, tea.Batch(waitForMsg(m.ch), tickCmd())
			}
			return m, nil
		case "+", "=":
			// Speed applies to the next restart; a running schedule keeps its
			// deadlines.
			if m.speed < maxSpeed {
				m.speed *= 2
			}
			return m, nil
		case "-":
			if m.speed > minSpeed {
				m.speed /= 2
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case deliveredMsg:
		if msg.gen != m.gen {
			return m, waitForMsg(m.ch)
		}
		m.count++
		m.lines = append(m.lines, renderEvent(msg.event))
		m.refreshLog()
		return m, waitForMsg(m.ch)

	case doneMsg:
		if msg.gen != m.gen {
			return m, waitForMsg(m.ch)
		}
		m.done = true
		return m, nil

	case tickMsg:
		if m.done {
			return m, nil
		}
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.progress.Width = msg.Width - 4
		m.initViewport()
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	title := titleStyle.Width(m.width).Render("  aircanvas replay  " + m.session.ID)

	state := m.engine.State()
	label := "IDLE"
	switch {
	case m.done:
		label = "DONE"
	case state.IsPlaying:
		label = "PLAYING"
	case state.IsPaused:
		label = "PAUSED"
	}
	position := state.CurrentTimeMs
	if m.done {
		position = m.session.DurationMs
	}
	pct := 0.0
	if m.session.DurationMs > 0 {
		pct = position / m.session.DurationMs
	} else if m.done {
		pct = 1.0
	}
	if pct > 1 {
		pct = 1
	}
	info := fmt.Sprintf("  %s  %s / %s  %sx  %s",
		m.progress.ViewAs(pct),
		formatMs(position),
		formatMs(m.session.DurationMs),
		formatSpeed(m.speed),
		stateStyle.Render(label),
	)

	content := m.viewport.View()

	hint := "  space pause/resume  r restart  +/- speed  ↑/↓ scroll  q quit"
	counter := fmt.Sprintf("%d/%d events", m.count, m.total)
	pad := m.width - lipgloss.Width(hint) - len(counter) - 2
	if pad < 1 {
		pad = 1
	}
	statusBar := statusBarStyle.Width(m.width).Render(
		hint + strings.Repeat(" ", pad) + counter,
	)

	return lipgloss.JoinVertical(lipgloss.Left, title, info, content, statusBar)
}

// ── Viewport management ────────────

func (m *Model) initViewport() {
	// title(1) + info(1) + statusBar(1) = 3 fixed rows
	vpHeight := m.height - 3
	if vpHeight < 1 {
		vpHeight = 1
	}
	vp := viewport.New(m.width, vpHeight)
	vp.SetContent(m.logContent())
	vp.GotoBottom()
	m.viewport = vp
}

func (m *Model) refreshLog() {
	m.viewport.SetContent(m.logContent())
	m.viewport.GotoBottom()
}

func (m *Model) logContent() string {
	if len(m.lines) == 0 {
		return dimStyle.Render("\n  (waiting for events)")
	}
	return "\n" + strings.Join(m.lines, "\n")
}

// ── Rendering helpers ────────────

func renderEvent(ev core.TimelineEvent) string {
	ts := timeStyle.Render(formatMs(ev.TimestampMs()))
	switch ev.Kind {
	case core.EventKindGesture:
		g := ev.Gesture
		line := fmt.Sprintf("  %s  %s  %s", ts, kindGestureStyle.Render("GESTURE "), g.Type)
		if g.Handedness != core.HandednessUnknown {
			line += dimStyle.Render("  (" + string(g.Handedness) + ")")
		}
		return line
	case core.EventKindGeneration:
		g := ev.Generation
		prompt := g.PromptSnapshot
		if len(prompt) > 60 {
			prompt = prompt[:57] + "..."
		}
		return fmt.Sprintf("  %s  %s  %s  %s", ts, kindGenerationStyle.Render("IMAGE   "), g.RequestID, dimStyle.Render(prompt))
	}
	return fmt.Sprintf("  %s  %s", ts, dimStyle.Render("(unknown event)"))
}

func formatMs(ms float64) string {
	d := time.Duration(ms * float64(time.Millisecond))
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000
	return fmt.Sprintf("%02d:%02d.%03d", minutes, seconds, millis)
}

func formatSpeed(speed float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", speed), "0"), ".")
}

// Run starts a replay run and drives the TUI until it finishes or the user
// quits. The engine is stopped before returning.
func Run(s *core.RecordingSession, speed float64) error {
	engine := playback.New()
	m := New(s, engine, speed)
	if err := m.startRun(); err != nil {
		return err
	}
	defer engine.Stop()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
