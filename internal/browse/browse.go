// Package browse is an interactive terminal browser over the knowledgebase.
package browse

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dpalmer-anl/ase/kb"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

type model struct {
	store  kb.Store
	names  []string
	cursor int

	detail *kb.Model
	err    error

	width  int
	height int
}

func newModel(store kb.Store, names []string) model {
	return model{store: store, names: names, width: 80, height: 24}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			m.detail = nil
			m.err = nil
		case "down", "j":
			if m.cursor < len(m.names)-1 {
				m.cursor++
			}
			m.detail = nil
			m.err = nil
		case "enter":
			if len(m.names) == 0 {
				return m, nil
			}
			m.detail, m.err = m.store.Lookup(m.names[m.cursor])
		case "esc":
			m.detail = nil
			m.err = nil
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(cyan.Render("knowledgebase models"))
	b.WriteString("\n\n")

	if len(m.names) == 0 {
		b.WriteString(dim.Render("no models found"))
		b.WriteString("\n")
	}

	// keep the cursor visible in tall lists
	visible := m.height - 8
	if visible < 3 {
		visible = 3
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(m.names) {
		end = len(m.names)
	}

	for i := start; i < end; i++ {
		name := m.names[i]
		if i == m.cursor {
			b.WriteString(white.Render("> " + name))
		} else {
			b.WriteString(dim.Render("  " + name))
		}
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(yellow.Render(m.err.Error()))
		b.WriteString("\n")
	} else if m.detail != nil {
		b.WriteString("\n")
		b.WriteString(green.Render(m.detail.Type.String()))
		b.WriteString("\n")
		b.WriteString(dim.Render("species  ") + white.Render(strings.Join(m.detail.Species, " ")) + "\n")
		if m.detail.Type == kb.ItemSimulatorModel {
			b.WriteString(dim.Render("simulator") + " " + white.Render(m.detail.SimulatorName) + "\n")
			b.WriteString(dim.Render("units    ") + " " + white.Render(m.detail.Units) + "\n")
			for _, line := range m.detail.ModelDefn {
				b.WriteString(dim.Render("defn     ") + " " + white.Render(line) + "\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(dimmer.Render("↑/↓ move · enter details · esc back · q quit"))
	b.WriteString("\n")
	return b.String()
}

// Run opens the browser over the given store. The store must be able to
// enumerate its models.
func Run(store kb.Store) error {
	lister, ok := store.(kb.Lister)
	if !ok {
		return fmt.Errorf("browse: knowledgebase store cannot enumerate models")
	}
	names, err := lister.Names()
	if err != nil {
		return err
	}

	p := tea.NewProgram(newModel(store, names), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
