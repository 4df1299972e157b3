package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/wasm-ir/ir"
	"github.com/wippyai/wasm-ir/wasm"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type funcEntry struct {
	name string
	sig  string
	text string
	dot  string
	idx  int
}

type browserModel struct {
	err      error
	filename string
	validate bool
	funcs    []funcEntry
	viewport viewport.Model
	selected int
	showDot  bool
	ready    bool
}

type loadedMsg struct {
	err   error
	funcs []funcEntry
}

func newBrowserModel(filename string, validate bool) *browserModel {
	return &browserModel{filename: filename, validate: validate}
}

func (m *browserModel) Init() tea.Cmd {
	return m.loadModule
}

func (m *browserModel) loadModule() tea.Msg {
	data, err := os.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}

	if m.validate {
		if err := validateModule(data); err != nil {
			return loadedMsg{err: fmt.Errorf("validate: %w", err)}
		}
	}

	mod, err := wasm.ParseModule(data)
	if err != nil {
		return loadedMsg{err: err}
	}
	env, err := ir.NewModuleEnv(mod)
	if err != nil {
		return loadedMsg{err: err}
	}

	funcs := make([]funcEntry, 0, len(mod.Funcs))
	for i := range mod.Funcs {
		f, err := env.BuildDeclaredFunction(i)
		if err != nil {
			return loadedMsg{err: fmt.Errorf("function %d: %w", i, err)}
		}
		name := f.Name
		if name == "" {
			name = fmt.Sprintf("func_%d", i)
		}
		funcs = append(funcs, funcEntry{
			idx:  i,
			name: name,
			sig:  signature(f),
			text: ir.Print(f),
			dot:  ir.Dot(f),
		})
	}

	return loadedMsg{funcs: funcs}
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.refreshContent()
			}

		case "down", "j":
			if m.selected < len(m.funcs)-1 {
				m.selected++
				m.refreshContent()
			}

		case "d":
			m.showDot = !m.showDot
			m.refreshContent()
		}

	case tea.WindowSizeMsg:
		headerHeight := len(m.funcs) + 5
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight)
			m.ready = true
			m.refreshContent()
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.funcs = msg.funcs
		m.refreshContent()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *browserModel) refreshContent() {
	if !m.ready || len(m.funcs) == 0 {
		return
	}
	f := m.funcs[m.selected]
	if m.showDot {
		m.viewport.SetContent(f.dot)
	} else {
		m.viewport.SetContent(f.text)
	}
	m.viewport.GotoTop()
}

func (m *browserModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if len(m.funcs) == 0 {
		return "Loading module..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("IR Browser"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	for i, f := range m.funcs {
		line := fmt.Sprintf("%s %s", f.name, f.sig)
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + funcStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.ready {
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
	}

	mode := "text"
	if m.showDot {
		mode = "dot"
	}
	b.WriteString(helpStyle.Render(fmt.Sprintf("↑/↓ select • d toggle view (%s) • pgup/pgdn scroll • q quit", mode)))
	return b.String()
}

func runInteractive(filename string, validate bool) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive mode requires a terminal")
	}
	p := tea.NewProgram(newBrowserModel(filename, validate), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
