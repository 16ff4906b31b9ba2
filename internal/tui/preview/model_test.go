package preview

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	mdwlog "github.com/msto63/knuth/foundation/core/log"
	"github.com/msto63/knuth/internal/knuth/service"
	"github.com/msto63/knuth/pkg/core/logging"
)

func newTestModel(t *testing.T, input string) Model {
	t.Helper()
	cfg := service.DefaultConfig()
	cfg.Logger = logging.Wrap(mdwlog.Discard())
	svc, err := service.NewService(cfg)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	t.Cleanup(svc.Close)

	m := New(Config{Backend: svc, Input: input, Plain: true})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

// rendered runs the render command for the current input and applies it
func rendered(t *testing.T, m Model) Model {
	t.Helper()
	msg := m.render(m.input.Value())()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func TestModel_BoxView(t *testing.T) {
	m := rendered(t, newTestModel(t, "x^2"))

	if m.err != nil {
		t.Fatalf("render error = %v", m.err)
	}
	view := m.View()
	for _, want := range []string{"[katex]", `"x"`, `"2"`, "box tree", "rendered text"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestModel_ToggleMode(t *testing.T) {
	m := rendered(t, newTestModel(t, "x^2"))

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	if cmd != nil {
		t.Error("tab returned a command")
	}
	if m.mode != ModeAST {
		t.Fatalf("mode = %v, want parse tree", m.mode)
	}
	if view := m.View(); !strings.Contains(view, "supsub") || !strings.Contains(view, "parse tree") {
		t.Errorf("View() =\n%s", view)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if updated.(Model).mode != ModeBoxes {
		t.Error("second tab did not return to the box tree")
	}
}

func TestModel_Error(t *testing.T) {
	m := rendered(t, newTestModel(t, "x^^2"))

	if m.err == nil {
		t.Fatal("expected an error")
	}
	content := m.content()
	if !strings.Contains(content, "DOUBLE_SUPERSCRIPT") {
		t.Errorf("content = %s", content)
	}
	lines := strings.Split(content, "\n")
	last := lines[len(lines)-1]
	if strings.TrimSpace(last) != "^" {
		t.Errorf("caret line = %q", last)
	}
	if !strings.Contains(m.View(), "error: DOUBLE_SUPERSCRIPT") {
		t.Errorf("status bar missing error:\n%s", m.View())
	}
}

func TestModel_Keys(t *testing.T) {
	m := newTestModel(t, "a")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not quit")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter returned no command")
	}
	msg, ok := cmd().(renderedMsg)
	if !ok {
		t.Fatalf("enter produced %T", msg)
	}
	if msg.input != "a" || msg.err != nil || msg.result == nil {
		t.Errorf("renderedMsg = %+v", msg)
	}
}

func TestModel_TypingUpdatesInput(t *testing.T) {
	m := newTestModel(t, "a")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	if got := updated.(Model).input.Value(); got != "ab" {
		t.Errorf("input = %q, want ab", got)
	}
}

func TestModel_NotReady(t *testing.T) {
	m := New(Config{})
	if got := m.View(); got != "Loading preview..." {
		t.Errorf("View() = %q", got)
	}
}
