package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mdwerror "github.com/msto63/knuth/foundation/core/error"
	"github.com/msto63/knuth/foundation/texmath/registry"
	"github.com/msto63/knuth/internal/knuth/api"
	"github.com/msto63/knuth/pkg/core/config"
	"github.com/msto63/knuth/pkg/core/version"
)

// writeConfig writes a default config into a temp dir and returns its path
func writeConfig(t *testing.T, modify func(*config.Config)) string {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.General.DataDir = dir
	cfg.General.LogLevel = "error"
	if modify != nil {
		modify(cfg)
	}
	path := filepath.Join(dir, "knuth.toml")
	if err := cfg.Write(path, false); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRenderCommand(t *testing.T) {
	cfgPath := writeConfig(t, nil)

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  []string
	}{
		{
			name: "text",
			args: []string{"render", "--config", cfgPath, "--format", "text", "x^2"},
			want: []string{"x2\n"},
		},
		{
			name:  "stdin",
			stdin: "\\frac{a}{b}\n",
			args:  []string{"render", "--config", cfgPath, "--format", "text"},
			want:  []string{"ab\n"},
		},
		{
			name: "html",
			args: []string{"render", "--config", cfgPath, "x"},
			want: []string{`<span class="katex">`, `<span class="mathit">x</span>`},
		},
		{
			name: "html document",
			args: []string{"render", "--config", cfgPath, "--document", "x"},
			want: []string{"<!DOCTYPE html>", `class="katex"`},
		},
		{
			name: "tree",
			args: []string{"render", "--config", cfgPath, "--format", "tree", "--plain", "x"},
			want: []string{"[katex]", "[mathit]", `"x"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output = %q, want it to contain %q", out, w)
				}
			}
		})
	}
}

func TestRenderCommandJSON(t *testing.T) {
	cfgPath := writeConfig(t, nil)

	out, _, err := execute(t, "", "render", "--config", cfgPath, "--format", "json", "--style", "display", "x")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var resp api.RenderResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if resp.Input != "x" {
		t.Errorf("Input = %q, want %q", resp.Input, "x")
	}
	if resp.Style != "display" {
		t.Errorf("Style = %q, want %q", resp.Style, "display")
	}
	if resp.Text != "x" {
		t.Errorf("Text = %q, want %q", resp.Text, "x")
	}
	if len(resp.Tree) == 0 {
		t.Error("Tree is empty")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	cfgPath := writeConfig(t, nil)

	_, errOut, err := execute(t, "", "render", "--config", cfgPath, "x^^2")
	if !mdwerror.HasCode(err, mdwerror.CodeDoubleSuperscript) {
		t.Fatalf("error = %v, want code %s", err, mdwerror.CodeDoubleSuperscript)
	}
	if !strings.Contains(errOut, "x^^2") || !strings.Contains(errOut, "^\n") {
		t.Errorf("stderr = %q, want the input with a caret", errOut)
	}

	if _, _, err := execute(t, "", "render", "--config", cfgPath, "--format", "pdf", "x"); err == nil {
		t.Error("expected error for unknown format")
	}

	disabled := writeConfig(t, func(c *config.Config) { c.Render.DisableFractions = true })
	_, _, err = execute(t, "", "render", "--config", disabled, `\frac{a}{b}`)
	if !mdwerror.HasCode(err, mdwerror.CodeUnsupportedConstruct) {
		t.Errorf("error = %v, want code %s", err, mdwerror.CodeUnsupportedConstruct)
	}
}

func TestParseCommand(t *testing.T) {
	cfgPath := writeConfig(t, nil)

	tests := []struct {
		name   string
		format string
		want   []string
	}{
		{"text", "text", []string{"frac"}},
		{"json", "json", []string{`"type": "frac"`, `"type": "mathord"`}},
		{"yaml", "yaml", []string{"type: frac", "type: mathord", "value: a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, "", "parse", "--config", cfgPath, "--format", tt.format, `\frac{a}{b}`)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output = %q, want it to contain %q", out, w)
				}
			}
		})
	}
}

func TestSymbolsCommand(t *testing.T) {
	out, _, err := execute(t, "", "symbols", "--category", "color", "--format", "json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var entries []registry.Entry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("no color commands listed")
	}
	for _, e := range entries {
		if e.Category != "color" {
			t.Errorf("entry %s has category %q", e.Command, e.Category)
		}
	}

	table, _, err := execute(t, "", "symbols", "--category", "color")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(table, "COMMAND") || !strings.Contains(table, entries[0].Command) {
		t.Errorf("table = %q, want header and %s", table, entries[0].Command)
	}

	if _, _, err := execute(t, "", "symbols", "--category", "nope"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "knuth.toml")

	out, _, err := execute(t, "", "config", "init", path)
	if err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("output = %q, want the path", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	if _, _, err := execute(t, "", "config", "init", path); err == nil {
		t.Error("expected error when the file exists")
	}
	if _, _, err := execute(t, "", "config", "init", "--force", path); err != nil {
		t.Errorf("config init --force error = %v", err)
	}

	out, _, err = execute(t, "", "config", "show", "--config", path)
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	for _, w := range []string{"[render]", "grpc_port = 9310"} {
		if !strings.Contains(out, w) {
			t.Errorf("config show = %q, want it to contain %q", out, w)
		}
	}
}

func TestCacheCommands(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, func(c *config.Config) {
		c.Cache.Enabled = true
		c.Cache.Path = filepath.Join(dir, "renders.db")
	})

	out, _, err := execute(t, "", "cache", "stats", "--config", cfgPath)
	if err != nil {
		t.Fatalf("cache stats error = %v", err)
	}
	if !strings.Contains(out, "renders:") {
		t.Errorf("stats = %q, want a renders line", out)
	}

	out, _, err = execute(t, "", "cache", "prune", "--config", cfgPath, "--older-than", "1h")
	if err != nil {
		t.Fatalf("cache prune error = %v", err)
	}
	if !strings.Contains(out, "Removed 0 render(s)") {
		t.Errorf("prune = %q", out)
	}

	noCache := writeConfig(t, nil)
	_, _, err = execute(t, "", "cache", "stats", "--config", noCache)
	if !mdwerror.HasCode(err, mdwerror.CodeMissingConfig) {
		t.Errorf("error = %v, want code %s", err, mdwerror.CodeMissingConfig)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "", "version", "--short")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != version.Platform+"\n" {
		t.Errorf("version --short = %q, want %q", out, version.Platform+"\n")
	}

	out, _, err = execute(t, "", "version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "engine") || !strings.Contains(out, version.Engine) {
		t.Errorf("version = %q", out)
	}
}

func TestReadInput(t *testing.T) {
	got, err := readInput([]string{"a", "+", "b"}, nil)
	if err != nil || got != "a + b" {
		t.Errorf("readInput(args) = %q, %v", got, err)
	}
	got, err = readInput([]string{"-"}, strings.NewReader("x^2\r\n"))
	if err != nil || got != "x^2" {
		t.Errorf("readInput(-) = %q, %v", got, err)
	}
}

func TestPrintPosition(t *testing.T) {
	at := func(pos int) error {
		return mdwerror.New("parse error").WithCode(mdwerror.CodeTypeMismatch).WithDetail("position", pos)
	}

	tests := []struct {
		name  string
		input string
		err   error
		want  string
	}{
		{"ascii", "x^^2", at(2), "  x^^2\n    ^\n"},
		// offsets refer to the composed form "é+x"
		{"decomposed input", "e\u0301+x", at(2), "  \u00e9+x\n   ^\n"},
		{"no position", "x", mdwerror.New("failed"), ""},
		{"out of range", "x", at(5), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printPosition(&buf, tt.input, tt.err)
			if buf.String() != tt.want {
				t.Errorf("printPosition() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}
