// ============================================================================
// knuth - Math Typesetting Service
// ============================================================================
//
// Package:     preview
// Description: Bubbletea model for the interactive math preview
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	mdwerror "github.com/msto63/knuth/foundation/core/error"
	"github.com/msto63/knuth/foundation/texmath/parser"
	"github.com/msto63/knuth/internal/knuth/service"
	"github.com/msto63/knuth/internal/renderer/terminal"
)

// Mode selects what the content panel shows
type Mode int

const (
	ModeBoxes Mode = iota
	ModeAST
)

// String returns the panel title of the mode
func (m Mode) String() string {
	if m == ModeAST {
		return "parse tree"
	}
	return "box tree"
}

// Backend renders and parses markup; *service.Service implements it
type Backend interface {
	Render(ctx context.Context, req service.RenderRequest) (*service.RenderResult, error)
	Parse(ctx context.Context, input string) (*service.ParseResult, error)
}

// Config holds preview configuration
type Config struct {
	Backend Backend
	Input   string
	Style   string
	Plain   bool // disable colors in the box tree
}

// Model is the Bubbletea model of the preview
type Model struct {
	// State
	width  int
	height int
	ready  bool
	mode   Mode

	// Components
	input    textinput.Model
	viewport viewport.Model

	// Last render
	rendered string
	result   *service.RenderResult
	parse    *service.ParseResult
	err      error
	duration time.Duration

	// Configuration
	backend Backend
	style   string
	plain   bool
}

// New creates a preview model
func New(cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = `\frac{a}{b}+x^2`
	ti.Prompt = "math> "
	ti.CharLimit = 4096
	ti.SetValue(cfg.Input)
	ti.Focus()

	return Model{
		input:   ti,
		backend: cfg.Backend,
		style:   cfg.Style,
		plain:   cfg.Plain,
	}
}

// Init renders the initial input
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.render(m.input.Value()))
}

// render runs the backend on input
func (m Model) render(input string) tea.Cmd {
	backend, style := m.backend, m.style
	return func() tea.Msg {
		start := time.Now()
		ctx := context.Background()

		result, err := backend.Render(ctx, service.RenderRequest{Input: input, Style: style})
		if err != nil {
			return renderedMsg{input: input, err: err, duration: time.Since(start)}
		}
		parse, err := backend.Parse(ctx, input)
		return renderedMsg{input: input, result: result, parse: parse, err: err, duration: time.Since(start)}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.render(m.input.Value())
		case tea.KeyTab:
			if m.mode == ModeBoxes {
				m.mode = ModeAST
			} else {
				m.mode = ModeBoxes
			}
			m.updateViewportContent()
			return m, nil
		case tea.KeyPgUp:
			m.viewport.ViewUp()
			return m, nil
		case tea.KeyPgDown:
			m.viewport.ViewDown()
			return m, nil
		}

		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 5 // title + input panel
		footerHeight := 4 // panel border + status + help
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - 10
		m.updateViewportContent()

	case renderedMsg:
		m.rendered = service.Normalize(msg.input)
		m.result = msg.result
		m.parse = msg.parse
		m.err = msg.err
		m.duration = msg.duration
		m.updateViewportContent()
		m.viewport.GotoTop()
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.content())
}

// content returns the text of the content panel
func (m Model) content() string {
	if m.err != nil {
		return m.errorContent()
	}
	switch m.mode {
	case ModeAST:
		if m.parse == nil {
			return ""
		}
		data, err := json.MarshalIndent(m.parse.AST, "", "  ")
		if err != nil {
			return err.Error()
		}
		return m.parse.Formatted + "\n\n" + string(data)
	default:
		if m.result == nil {
			return ""
		}
		return terminal.Render(m.result.Tree, terminal.Options{Plain: m.plain, Metrics: true})
	}
}

// errorContent shows the rejected input with a caret under the offending
// position when the error carries one
func (m Model) errorContent() string {
	var b strings.Builder
	b.WriteString(StatusErrorStyle.Render(string(mdwerror.GetCode(m.err))))
	b.WriteString("\n")
	b.WriteString(m.err.Error())

	var pe *parser.ParseError
	if errors.As(m.err, &pe) && pe.Position <= len(m.rendered) {
		column := utf8.RuneCountInString(m.rendered[:pe.Position])
		b.WriteString("\n\n")
		b.WriteString(m.rendered)
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", column))
		b.WriteString(CaretStyle.Render("^"))
	}
	return b.String()
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading preview..."
	}

	var b strings.Builder

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		LogoStyle.Render(Logo),
		"   ",
		ModeStyle.Render("["+m.mode.String()+"]"),
	)
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(InputPanelStyle.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(ContentPanelStyle.Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("enter: render  tab: box/parse tree  pgup/pgdn: scroll  ctrl+c: quit"))

	return b.String()
}

func (m Model) renderStatusBar() string {
	switch {
	case m.err != nil:
		return StatusErrorStyle.Render(fmt.Sprintf("error: %s", mdwerror.GetCode(m.err)))
	case m.result != nil:
		return StatusOKStyle.Render(fmt.Sprintf("rendered %s in %s (%s)",
			m.result.Style, m.duration.Round(time.Microsecond), m.result.Source))
	default:
		return ""
	}
}

// Run starts the preview program
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
