package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/sortsim/internal/algorithm"
	"github.com/san-kum/sortsim/internal/player"
	"github.com/san-kum/sortsim/internal/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(key(k))
		m = updated.(Model)
	}
	return m
}

func newTestModel(t *testing.T) (Model, *player.Player, *player.ManualClock) {
	t.Helper()
	clock := player.NewManualClock()
	p := player.New(clock)
	p.Reset(trace.Selection([]int{2, 1}))
	info, err := algorithm.Lookup(algorithm.Selection)
	require.NoError(t, err)
	return NewModel(p, info, 2.0, func() []int { return []int{4, 3, 2, 1} }), p, clock
}

func TestModelManualNavigation(t *testing.T) {
	m, p, _ := newTestModel(t)

	m = press(t, m, "l", "l")
	assert.Equal(t, 2, p.Cursor())
	assert.Equal(t, player.Paused, p.State())

	m = press(t, m, "h")
	assert.Equal(t, 1, p.Cursor())

	press(t, m, "r")
	assert.Equal(t, 0, p.Cursor())
	assert.Equal(t, player.Idle, p.State())
}

func TestModelPlayback(t *testing.T) {
	m, p, clock := newTestModel(t)

	m = press(t, m, " ")
	assert.Equal(t, player.Playing, p.State())
	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, 1, p.Cursor())

	m = press(t, m, " ")
	assert.Equal(t, player.Paused, p.State())
	clock.Advance(5 * time.Second)
	assert.Equal(t, 1, p.Cursor())

	m = press(t, m, "+")
	assert.Equal(t, 2.5, p.Speed())
	press(t, m, "-", "-", "-", "-", "-", "-")
	assert.Equal(t, player.MinSpeed, p.Speed())
}

func TestModelEvents(t *testing.T) {
	m, p, _ := newTestModel(t)

	m = press(t, m, "l")
	msg := m.Init()()
	assert.IsType(t, refreshMsg{}, msg)

	for p.Cursor() < p.Len()-1 {
		m = press(t, m, "l")
	}
	m = press(t, m, "l")
	assert.Equal(t, player.Completed, p.State())

	var sawComplete bool
	for len(m.events) > 0 {
		msg := <-m.events
		updated, _ := m.Update(msg)
		m = updated.(Model)
		if _, ok := msg.(completeMsg); ok {
			sawComplete = true
		}
	}
	assert.True(t, sawComplete)
	assert.True(t, m.Done())
}

func TestModelRegenerate(t *testing.T) {
	m, p, _ := newTestModel(t)
	press(t, m, "n")
	assert.Equal(t, []int{4, 3, 2, 1}, p.CurrentStep().Sequence)
	assert.Equal(t, player.Idle, p.State())
}

func TestModelView(t *testing.T) {
	m, _, _ := newTestModel(t)
	view := m.View()
	assert.Contains(t, view, "SELECTION SORT")
	assert.Contains(t, view, "Start with the unsorted array")
	assert.Contains(t, view, "1 / 6")

	m = press(t, m, "?")
	assert.Contains(t, m.View(), "KEYBOARD SHORTCUTS")
}

func TestRenderBars(t *testing.T) {
	assert.Contains(t, renderBars(trace.Step{}, false), "(empty)")

	out := renderBars(trace.Step{Sequence: []int{2, 1}, Comparing: []int{0, 1}}, false)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, barRows+2)
	assert.Contains(t, out, "██")
}

func TestInversionChart(t *testing.T) {
	tr := trace.Bubble([]int{3, 1, 2})
	assert.NotEmpty(t, InversionChart(tr, 0, 20, 4, ""))
	assert.Contains(t, InversionChart(tr, -1, 20, 4, "Inversions"), "Inversions")
}

func TestThemes(t *testing.T) {
	defer SetTheme(ThemeCyberpunk.Name)

	SetTheme("ocean")
	assert.Equal(t, "ocean", CurrentTheme.Name)
	NextTheme()
	assert.Equal(t, "sunset", CurrentTheme.Name)
	NextTheme()
	assert.Equal(t, "cyberpunk", CurrentTheme.Name)

	assert.Equal(t, "cyberpunk", GetTheme("nope").Name)
	assert.Len(t, ThemeNames(), len(Themes))
}

func TestMenu(t *testing.T) {
	clock := player.NewManualClock()
	m := NewMenu(func() []int { return []int{3, 1, 2} }, 1, clock)
	assert.Contains(t, m.View(), "SORT QUEST")

	step := func(k string) {
		updated, _ := m.Update(key(k))
		m = updated.(Menu)
	}

	step("j")
	assert.Equal(t, algorithm.Selection, m.Selected().ID)
	step("enter")
	assert.Contains(t, m.View(), "SELECTION SORT")

	step("l")
	assert.Equal(t, 1, m.live.p.Cursor())

	old := m.live
	step("esc")
	assert.Contains(t, m.View(), "SORT QUEST")
	assert.Equal(t, player.Paused, old.p.State())

	// The player's event channel must end with a message that releases the
	// pending wait; otherwise each trip back to the menu strands a goroutine.
	var last tea.Msg
	for len(old.events) > 0 {
		last = <-old.events
	}
	assert.Equal(t, detachMsg{}, last)

	_, cmd := old.Update(detachMsg{})
	assert.Nil(t, cmd)
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, 10, strings.Count(ProgressBar(0.5, 10), "█")+strings.Count(ProgressBar(0.5, 10), "░"))
	assert.Equal(t, 1.0, progress(0, 1))
	assert.Equal(t, 0.5, progress(1, 3))
}
