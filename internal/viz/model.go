package viz

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/sortsim/internal/algorithm"
	"github.com/san-kum/sortsim/internal/player"
	"github.com/san-kum/sortsim/internal/trace"
)

const (
	barRows     = 10
	chartWidth  = 30
	chartHeight = 5
	eventBuffer = 16
)

// refreshMsg tells the model that the player moved on its own.
type refreshMsg struct{}

type completeMsg struct{}

// detachMsg releases the pending waitForEvent without re-arming it.
type detachMsg struct{}

// Model is the step player view. It drives a *player.Player and redraws
// whenever the player's cursor changes, including timer-driven advances.
type Model struct {
	p          *player.Player
	info       algorithm.Info
	regenerate func() []int
	events     chan tea.Msg
	speed      float64
	showChart  bool
	showHelp   bool
	done       bool
	width      int
}

// NewModel wraps p, which must already hold a trace. regenerate, if set,
// supplies a new input for the N key.
func NewModel(p *player.Player, info algorithm.Info, speed float64, regenerate func() []int) Model {
	m := Model{
		p:          p,
		info:       info,
		regenerate: regenerate,
		events:     make(chan tea.Msg, eventBuffer),
		speed:      player.ClampSpeed(speed),
		showChart:  true,
		width:      80,
	}
	p.AddObserver(player.ObserverFunc(func(int, trace.Step) { m.notify(refreshMsg{}) }))
	p.OnComplete(func() { m.notify(completeMsg{}) })
	return m
}

// notify never blocks: the view reads the player directly, so a dropped
// refresh only coalesces redraws.
func (m Model) notify(msg tea.Msg) {
	select {
	case m.events <- msg:
	default:
	}
}

// detach pauses the player and wakes the pending waitForEvent so the model
// can be dropped. Any queued message ends the wait, so a full buffer is fine.
func (m Model) detach() {
	m.p.Pause()
	m.notify(detachMsg{})
}

func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg { return <-m.events }
}

func (m Model) Init() tea.Cmd {
	return m.waitForEvent()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case refreshMsg:
		return m, m.waitForEvent()
	case completeMsg:
		m.done = true
		return m, m.waitForEvent()
	case detachMsg:
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.p.Pause()
		return m, tea.Quit
	case " ", "p":
		if m.p.State() == player.Playing {
			m.p.Pause()
		} else {
			m.p.Play(m.speed)
		}
	case "right", "l":
		m.p.StepForward()
	case "left", "h":
		m.p.StepBackward()
	case "+", "=":
		m.speed = player.ClampSpeed(m.speed + player.SpeedStep)
		m.p.SetSpeed(m.speed)
	case "-", "_":
		m.speed = player.ClampSpeed(m.speed - player.SpeedStep)
		m.p.SetSpeed(m.speed)
	case "r":
		m.done = false
		m.p.Reset(m.p.Trace())
	case "n":
		if m.regenerate != nil {
			tr, err := algorithm.Generate(m.info.ID, m.regenerate())
			if err == nil {
				m.done = false
				m.p.Reset(tr)
			}
		}
	case "c":
		m.showChart = !m.showChart
	case "t":
		NextTheme()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// Done reports whether the trace was played to the end since the last
// rewind.
func (m Model) Done() bool { return m.done }

func (m Model) View() string {
	step := m.p.CurrentStep()
	cursor, total := m.p.Cursor(), m.p.Len()

	var left strings.Builder
	left.WriteString(titleStyle().Render(strings.ToUpper(m.info.Name)) + "  ")
	left.WriteString(mutedStyle().Render(string(m.info.Difficulty)) + "\n\n")
	left.WriteString(renderBars(step, m.p.State() == player.Completed) + "\n\n")
	left.WriteString(valueStyle.Render(step.Description) + "\n")

	var right strings.Builder
	right.WriteString(m.status() + "\n\n")
	right.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d / %d", cursor+1, total)) + "\n")
	right.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%.1fx", m.speed)) + "\n")
	right.WriteString(labelStyle.Render("Progress") + ProgressBar(progress(cursor, total), 16) + "\n")
	if m.showChart {
		right.WriteString(graphStyle.Render(InversionChart(m.p.Trace(), cursor, chartWidth, chartHeight, "Inversions")) + "\n")
	}
	right.WriteString(helpStyle.Render(keyHints("space", "play", "←/→", "step", "+/-", "speed") + "\n" +
		keyHints("r", "rewind", "n", "new", "?", "help", "q", "quit")))

	view := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(left.String()),
		sidePanelStyle.Render(right.String()))
	if m.showHelp {
		return helpOverlay + "\n\n" + view
	}
	return view
}

func (m Model) status() string {
	switch m.p.State() {
	case player.Playing:
		return statusPlaying.Render("▶ PLAYING")
	case player.Completed:
		return statusCompleted.Render("✓ SORTED")
	case player.Paused:
		return statusPaused.Render("❚❚ PAUSED")
	}
	return statusPaused.Render("READY")
}

func progress(cursor, total int) float64 {
	if total <= 1 {
		return 1
	}
	return float64(cursor) / float64(total-1)
}

// renderBars draws one column per value, tallest value barRows high, with
// the value and position printed underneath.
func renderBars(step trace.Step, sorted bool) string {
	seq := step.Sequence
	if len(seq) == 0 {
		return mutedStyle().Render("(empty)")
	}
	lo, hi := slices.Min(seq), slices.Max(seq)

	heights := make([]int, len(seq))
	for i, v := range seq {
		heights[i] = barRows
		if hi > lo {
			heights[i] = 1 + (v-lo)*(barRows-1)/(hi-lo)
		}
	}

	var b strings.Builder
	for row := barRows; row >= 1; row-- {
		for i := range seq {
			cell := "   "
			if heights[i] >= row {
				cell = barStyle(step, i, sorted).Render("██") + " "
			}
			b.WriteString(cell)
		}
		b.WriteString("\n")
	}
	for i, v := range seq {
		b.WriteString(barStyle(step, i, sorted).Render(fmt.Sprintf("%-3d", v)))
	}
	b.WriteString("\n")
	for i := range seq {
		b.WriteString(mutedStyle().Render(fmt.Sprintf("%-3d", i)))
	}
	return b.String()
}

func barStyle(step trace.Step, i int, sorted bool) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(CurrentTheme.Bar)
	switch {
	case step.IsMutated(i):
		return s.Foreground(CurrentTheme.Mutate).Bold(true)
	case step.IsComparing(i):
		return s.Foreground(CurrentTheme.Compare).Bold(true)
	case sorted:
		return s.Foreground(CurrentTheme.Sorted)
	}
	return s
}

const helpOverlay = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Play/Pause               ║
║  ←/H      - Previous step            ║
║  →/L      - Next step                ║
║  +/-      - Speed up/down (0.5x)     ║
║  R        - Rewind to the start      ║
║  N        - New random input         ║
║  C        - Toggle inversion chart   ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// Run shows the player full screen until the user quits.
func Run(p *player.Player, info algorithm.Info, speed float64, regenerate func() []int) error {
	_, err := tea.NewProgram(NewModel(p, info, speed, regenerate), tea.WithAltScreen()).Run()
	return err
}
