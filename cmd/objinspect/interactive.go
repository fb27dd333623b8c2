package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/objective/class"
	"github.com/wippyai/objective/handle"
	"github.com/wippyai/objective/instance"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateBrowse modelState = iota
	stateEdit
)

type interactiveModel struct {
	err      error
	class    class.Class
	table    *handle.Table
	inst     *instance.Instance
	schema   string
	status   string
	rows     []row
	input    textinput.Model
	selected int
	handle   handle.Handle
	state    modelState
}

type loadedMsg struct {
	err   error
	class class.Class
	table *handle.Table
	inst  *instance.Instance
	rows  []row
	h     handle.Handle
}

type storedMsg struct {
	err  error
	path string
}

func newInteractiveModel(schema string) *interactiveModel {
	return &interactiveModel{schema: schema, state: stateBrowse}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.load
}

func (m *interactiveModel) load() tea.Msg {
	c, err := lookupSchema(m.schema)
	if err != nil {
		return loadedMsg{err: err}
	}
	table := handle.NewTable()
	h, err := table.Insert(instance.New(c))
	if err != nil {
		table.Close()
		return loadedMsg{err: err}
	}
	inst, _ := table.Get(h)

	var leaves []row
	for _, r := range walk(c) {
		if r.leaf() && !r.shadowed {
			leaves = append(leaves, r)
		}
	}
	return loadedMsg{class: c, table: table, inst: inst, rows: leaves, h: h}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.close()
			return m, tea.Quit

		case "q":
			if m.state == stateBrowse {
				m.close()
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateBrowse && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateBrowse && m.selected < len(m.rows)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateBrowse:
				if len(m.rows) > 0 {
					m.startEdit()
					return m, textinput.Blink
				}
			case stateEdit:
				m.state = stateBrowse
				return m, m.store(m.rows[m.selected], m.input.Value())
			}

		case "esc":
			if m.state == stateEdit {
				m.state = stateBrowse
				m.input.Blur()
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.class = msg.class
		m.table = msg.table
		m.inst = msg.inst
		m.rows = msg.rows
		m.handle = msg.h

	case storedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.status = "stored " + msg.path
		} else {
			m.status = ""
		}
	}

	if m.state == stateEdit {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) startEdit() {
	r := m.rows[m.selected]
	ti := textinput.New()
	ti.Prompt = r.name + " = "
	ti.Placeholder = r.class.String()
	ti.Width = 40
	ti.SetValue(m.current(r))
	ti.Focus()
	m.input = ti
	m.state = stateEdit
	m.err = nil
	m.status = ""
}

func (m *interactiveModel) current(r row) string {
	var out string
	m.inst.View(func(g *instance.ReadGuard) error {
		out = formatValue(g, r.lens)
		return nil
	})
	return out
}

func (m *interactiveModel) store(r row, text string) tea.Cmd {
	return func() tea.Msg {
		typ, _ := r.class.Type()
		v, err := parseValue(typ, text)
		if err != nil {
			return storedMsg{err: err}
		}
		err = m.inst.Update(func(g *instance.WriteGuard) error {
			ref, err := g.Through(r.lens)
			if err != nil {
				return err
			}
			return ref.Set(v)
		})
		return storedMsg{err: err, path: r.name}
	}
}

func (m *interactiveModel) close() {
	if m.table != nil {
		m.table.Close()
	}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.inst == nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.inst == nil {
		return "Building schema..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Object Inspector"))
	fmt.Fprintf(&b, " %s  %s  handle %d\n\n", m.class, m.class.Layout(), m.handle)

	values := make([]string, len(m.rows))
	m.inst.View(func(g *instance.ReadGuard) error {
		for i, r := range m.rows {
			values[i] = formatValue(g, r.lens)
		}
		return nil
	})

	for i, r := range m.rows {
		line := fmt.Sprintf("%-24s %-10s @%-4d %s", r.name, r.class, r.offset, values[i])
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.state {
	case stateBrowse:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n")
		} else if m.status != "" {
			b.WriteString(resultStyle.Render(m.status))
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("↑/↓ select • enter edit • q quit"))
	case stateEdit:
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter store • esc cancel"))
	}

	return b.String()
}

func runInteractive(schema string) error {
	m := newInteractiveModel(schema)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	m.close()
	return err
}
