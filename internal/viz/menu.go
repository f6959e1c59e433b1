package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/sortsim/internal/algorithm"
	"github.com/san-kum/sortsim/internal/player"
)

const (
	stateMenu = iota
	statePlayer
)

var (
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	selectedDesc  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	idleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	idleDesc      = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
)

var difficultyStyle = map[algorithm.Difficulty]lipgloss.Style{
	algorithm.Easy:   lipgloss.NewStyle().Foreground(lipgloss.Color("82")),
	algorithm.Medium: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	algorithm.Hard:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
}

// Menu lists the algorithms and opens a player for the chosen one. Each
// selection sorts a fresh input from next.
type Menu struct {
	state  int
	cursor int
	algos  []algorithm.Info
	next   func() []int
	speed  float64
	clock  player.Clock
	live   Model
}

func NewMenu(next func() []int, speed float64, clock player.Clock) Menu {
	return Menu{
		state: stateMenu,
		algos: algorithm.All(),
		next:  next,
		speed: speed,
		clock: clock,
	}
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == statePlayer {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
			m.live.detach()
			m.state = stateMenu
			return m, nil
		}
		updated, cmd := m.live.Update(msg)
		m.live = updated.(Model)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.algos)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m, m.open()
	}
	return m, nil
}

func (m *Menu) open() tea.Cmd {
	info := m.algos[m.cursor]
	tr, err := algorithm.Generate(info.ID, m.next())
	if err != nil {
		return nil
	}
	p := player.New(m.clock)
	p.Reset(tr)
	m.live = NewModel(p, info, m.speed, m.next)
	m.state = statePlayer
	return m.live.Init()
}

// Selected returns the algorithm under the cursor.
func (m Menu) Selected() algorithm.Info { return m.algos[m.cursor] }

func (m Menu) View() string {
	if m.state == statePlayer {
		return m.live.View()
	}

	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle().Render("SORT QUEST") + "\n    " + mutedStyle().Render("learn sorting one step at a time") + "\n    " + separator(34) + "\n\n")
	for i, info := range m.algos {
		diff := difficultyStyle[info.Difficulty].Render(fmt.Sprintf("%-7s", info.Difficulty))
		desc := info.Description
		if len(desc) > 48 {
			desc = desc[:45] + "..."
		}
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s %s %s\n", cursorStyle.Render("▸"), selectedStyle.Render(fmt.Sprintf("%-16s", info.Name)), diff, selectedDesc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s %s %s\n", idleStyle.Render(fmt.Sprintf("%-16s", info.Name)), diff, idleDesc.Render(desc)))
		}
	}
	b.WriteString("\n    " + keyHints("j/k", "navigate", "enter", "select", "esc", "back", "q", "quit") + "\n")
	return b.String()
}

// RunMenu shows the algorithm menu full screen until the user quits.
func RunMenu(next func() []int, speed float64) error {
	_, err := tea.NewProgram(NewMenu(next, speed, nil), tea.WithAltScreen()).Run()
	return err
}
