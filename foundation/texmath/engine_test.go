package texmath

import (
	"errors"
	"strings"
	"testing"

	mdwerror "github.com/msto63/knuth/foundation/core/error"
	mdwlog "github.com/msto63/knuth/foundation/core/log"
	"github.com/msto63/knuth/foundation/texmath/ast"
	"github.com/msto63/knuth/foundation/texmath/boxtree"
	"github.com/msto63/knuth/foundation/texmath/layout"
	"github.com/msto63/knuth/foundation/texmath/parser"
	"github.com/msto63/knuth/foundation/texmath/style"
)

func newTestEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	opts.Logger = mdwlog.Discard()
	e, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

func TestEngine_ParseToAST(t *testing.T) {
	e := newTestEngine(t, Options{})
	nodes, err := e.ParseToAST(`\frac{a}{b}`)
	if err != nil {
		t.Fatalf("ParseToAST() error = %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	frac, ok := nodes[0].(*ast.Frac)
	if !ok {
		t.Fatalf("node is %T, want *ast.Frac", nodes[0])
	}
	if frac.Variant != "frac" {
		t.Errorf("variant = %q", frac.Variant)
	}
	if got := ast.Format(frac.Numer); got != `ordgroup[mathord"a"]` {
		t.Errorf("numerator = %s", got)
	}
	if got := ast.Format(frac.Denom); got != `ordgroup[mathord"b"]` {
		t.Errorf("denominator = %s", got)
	}
}

func TestEngine_RenderToBoxTree(t *testing.T) {
	tests := []struct {
		name         string
		defaultStyle string
		wantClass    string
	}{
		{"text default", "", style.Text.Class()},
		{"display", "display", style.Display.Class()},
		{"script", "script", style.Script.Class()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, Options{DefaultStyle: tt.defaultStyle})
			tree, err := e.RenderToBoxTree("x^2+y")
			if err != nil {
				t.Fatalf("RenderToBoxTree() error = %v", err)
			}
			if !tree.HasClass(layout.RootClass) {
				t.Errorf("root classes = %v", tree.Classes())
			}
			inner, ok := tree.Child(0).(*boxtree.Box)
			if !ok {
				t.Fatalf("inner is %T", tree.Child(0))
			}
			if got := strings.Join(inner.Classes(), " "); got != tt.wantClass {
				t.Errorf("inner classes = %q, want %q", got, tt.wantClass)
			}
			if got := boxtree.PlainText(tree); got != "x2+y" {
				t.Errorf("text = %q", got)
			}
		})
	}
}

func TestEngine_Errors(t *testing.T) {
	t.Run("parse error", func(t *testing.T) {
		e := newTestEngine(t, Options{})
		tree, err := e.RenderToBoxTree("x^^2")
		if tree != nil {
			t.Error("partial output returned")
		}
		var perr *parser.ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("err = %T, want *parser.ParseError", err)
		}
		if perr.Code() != mdwerror.CodeDoubleSuperscript {
			t.Errorf("code = %s", perr.Code())
		}
	})

	t.Run("build error", func(t *testing.T) {
		e := newTestEngine(t, Options{Environment: layout.Environment{FractionsUnsupported: true}})
		_, err := e.RenderToBoxTree(`1+\tfrac{1}{2}`)
		var berr *layout.BuildError
		if !errors.As(err, &berr) {
			t.Fatalf("err = %T, want *layout.BuildError", err)
		}
		if !mdwerror.HasCode(err, mdwerror.CodeUnsupportedConstruct) {
			t.Errorf("code = %s", mdwerror.GetCode(err))
		}
		if !mdwerror.GetCode(err).IsUserError() {
			t.Error("unsupported construct should classify as a user error")
		}
	})

	t.Run("input too long", func(t *testing.T) {
		e := newTestEngine(t, Options{MaxInputLength: 3})
		_, err := e.ParseToAST("abcd")
		if !mdwerror.HasCode(err, mdwerror.CodeInputTooLong) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("invalid default style", func(t *testing.T) {
		_, err := New(Options{Logger: mdwlog.Discard(), DefaultStyle: "huge"})
		if !mdwerror.HasCode(err, mdwerror.CodeInvalidConfig) {
			t.Errorf("err = %v, want INVALID_CONFIG", err)
		}
	})
}

func TestEngine_DeepNestingWithinLimits(t *testing.T) {
	e := newTestEngine(t, Options{})
	input := strings.Repeat("x^{", parser.DefaultMaxDepth/2) + "y" + strings.Repeat("}", parser.DefaultMaxDepth/2)
	if _, err := e.RenderToBoxTree(input); err != nil {
		t.Errorf("RenderToBoxTree() error = %v", err)
	}
}

func TestPackageFunctions(t *testing.T) {
	nodes, err := ParseToAST("{x+y}")
	if err != nil {
		t.Fatalf("ParseToAST() error = %v", err)
	}
	if got := ast.FormatList(nodes); got != `ordgroup[mathord"x" bin"+" mathord"y"]` {
		t.Errorf("ParseToAST() = %s", got)
	}
	tree, err := RenderToBoxTree("{x+y}")
	if err != nil {
		t.Fatalf("RenderToBoxTree() error = %v", err)
	}
	if tree.Height() <= 0 {
		t.Errorf("height = %v", tree.Height())
	}
}
