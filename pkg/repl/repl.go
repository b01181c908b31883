// Package repl implements an interactive line-at-a-time Mython session on
// top of bubbletea/bubbles/lipgloss, adapted from another pack example's
// REPL to drive a persistent interpreter.Interpreter instead of a
// script-compiling engine, since Mython has no expression-only "wrap and
// call" form.
package repl

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mython/pkg/driver"
	"mython/pkg/interpreter"
)

type theme struct {
	accent lipgloss.Color
	ok     lipgloss.Color
	fail   lipgloss.Color
	muted  lipgloss.Color
}

var themes = map[string]theme{
	"default": {"#3B82F6", "#10B981", "#EF4444", "#6B7280"},
	"dark":    {"#8B5CF6", "#22C55E", "#F87171", "#4B5563"},
}

func resolveTheme(name string) theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["default"]
}

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type keyMap struct {
	Up, Down, Enter, Quit, Clear key.Binding
}

var keys = keyMap{
	Up:    key.NewBinding(key.WithKeys("up")),
	Down:  key.NewBinding(key.WithKeys("down")),
	Enter: key.NewBinding(key.WithKeys("enter")),
	Quit:  key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d")),
	Clear: key.NewBinding(key.WithKeys("ctrl+l")),
}

type model struct {
	textInput  textinput.Model
	interp     *interpreter.Interpreter
	history    []historyEntry
	cmdHistory []string
	historyIdx int
	width      int
	height     int
	quitting   bool
	th         theme
}

// New builds the REPL model: an interpreter with a persistent global scope
// that survives across submissions, styled from cfg.
func New(cfg *driver.Config) tea.Model {
	if cfg == nil {
		cfg = driver.DefaultConfig()
	}
	ti := textinput.New()
	ti.Placeholder = "mython statement..."
	ti.Prompt = cfg.Repl.Prompt
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	return model{
		textInput:  ti,
		interp:     interpreter.New(&bytes.Buffer{}),
		historyIdx: -1,
		th:         resolveTheme(cfg.Repl.Theme),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.textInput.Width = msg.Width - 10
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Clear):
			m.history = nil
			return m, nil
		case key.Matches(msg, keys.Up):
			if len(m.cmdHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.cmdHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil
		case key.Matches(msg, keys.Down):
			if m.historyIdx != -1 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.textInput.CursorEnd()
			}
			return m, nil
		case key.Matches(msg, keys.Enter):
			line := strings.TrimSpace(m.textInput.Value())
			if line == "" {
				return m, nil
			}
			output, isErr := m.evaluate(line)
			m.history = append(m.history, historyEntry{input: line, output: output, isErr: isErr})
			m.cmdHistory = append(m.cmdHistory, line)
			m.textInput.SetValue("")
			m.historyIdx = -1
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// evaluate runs one line as a complete Mython program, sharing the
// interpreter's global scope with every prior submission. Its Print
// output is captured for this call only via SetOutput.
func (m model) evaluate(line string) (string, bool) {
	var out bytes.Buffer
	m.interp.SetOutput(&out)
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	if err := m.interp.RunProgram(line); err != nil {
		return err.Error(), true
	}
	if out.Len() == 0 {
		return "(no output)", false
	}
	return strings.TrimSuffix(out.String(), "\n"), false
}

func (m model) View() string {
	if m.quitting {
		return lipgloss.NewStyle().Foreground(m.th.muted).Render("Goodbye!\n")
	}

	accent := lipgloss.NewStyle().Foreground(m.th.accent).Bold(true)
	ok := lipgloss.NewStyle().Foreground(m.th.ok)
	fail := lipgloss.NewStyle().Foreground(m.th.fail)
	muted := lipgloss.NewStyle().Foreground(m.th.muted)

	var b strings.Builder
	b.WriteString(accent.Render("mython repl") + " " + muted.Render(strings.Repeat("-", 40)) + "\n\n")

	for _, entry := range m.history {
		b.WriteString(muted.Render("  > ") + entry.input + "\n")
		if entry.isErr {
			b.WriteString("  " + fail.Render(entry.output) + "\n")
		} else {
			b.WriteString("  " + ok.Render(entry.output) + "\n")
		}
	}

	b.WriteString("\n" + m.textInput.View() + "\n\n")
	b.WriteString(muted.Render("ctrl+l clear  ctrl+c quit"))
	return b.String()
}

// Run starts the interactive session on the current terminal.
func Run(cfg *driver.Config) error {
	_, err := tea.NewProgram(New(cfg)).Run()
	return err
}
