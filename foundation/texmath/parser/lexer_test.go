package parser

import (
	"errors"
	"testing"

	mdwerror "github.com/msto63/knuth/foundation/core/error"
)

func TestLexer_Lex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		pos      int
		wantType string
		wantText string
		wantPos  int
		wantNext int
	}{
		{"letter", "x", 0, TypeMathOrd, "x", 0, 1},
		{"digit", "7", 0, TypeTextOrd, "7", 0, 1},
		{"skips whitespace", "  \t+", 0, TypeBin, "+", 3, 4},
		{"relation", "<", 0, TypeRel, "<", 0, 1},
		{"punctuation", ";", 0, TypePunct, ";", 0, 1},
		{"open", "[", 0, TypeOpen, "[", 0, 1},
		{"close", "!", 0, TypeClose, "!", 0, 1},
		{"textord char", "|", 0, TypeTextOrd, "|", 0, 1},
		{"prime", "'", 0, TypePrime, "'", 0, 1},
		{"superscript", "^", 0, TypeSuperscript, "^", 0, 1},
		{"subscript", "_", 0, TypeSubscript, "_", 0, 1},
		{"left brace", "{", 0, TypeLeftBrace, "{", 0, 1},
		{"right brace", "}", 0, TypeRightBrace, "}", 0, 1},
		{"word command", `\alpha+`, 0, `\alpha`, `\alpha`, 0, 6},
		{"symbol command", `\,x`, 0, `\,`, `\,`, 0, 2},
		{"space command", `\ x`, 0, `\ `, `\ `, 0, 2},
		{"command stops at digit", `\frac12`, 0, `\frac`, `\frac`, 0, 5},
		{"mid input", "ab", 1, TypeMathOrd, "b", 1, 2},
		{"eof", "x ", 1, TypeEOF, "", 2, 2},
		{"empty", "", 0, TypeEOF, "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := NewLexer(tt.input).Lex(tt.pos)
			if err != nil {
				t.Fatalf("Lex() error = %v", err)
			}
			if tok.Type != tt.wantType || tok.Text != tt.wantText {
				t.Errorf("Lex() = %s %q, want %s %q", tok.Type, tok.Text, tt.wantType, tt.wantText)
			}
			if tok.Position != tt.wantPos || tok.Next != tt.wantNext {
				t.Errorf("Lex() span = [%d,%d), want [%d,%d)", tok.Position, tok.Next, tt.wantPos, tt.wantNext)
			}
		})
	}
}

func TestLexer_UnexpectedCharacter(t *testing.T) {
	for _, input := range []string{"#", "x&", "é", `\`} {
		t.Run(input, func(t *testing.T) {
			_, err := Tokenize(NewLexer(input))
			if err == nil {
				t.Fatal("expected an error")
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error type = %T, want *ParseError", err)
			}
			if !mdwerror.HasCode(err, mdwerror.CodeUnexpectedCharacter) {
				t.Errorf("code = %s", perr.Code())
			}
		})
	}
}

func TestLexer_Idempotent(t *testing.T) {
	l := NewLexer(`x^{\alpha}`)
	first, _ := l.Lex(1)
	second, _ := l.Lex(1)
	if first != second {
		t.Errorf("Lex(1) differs between calls: %v vs %v", first, second)
	}
}

func TestTokenize(t *testing.T) {
	tokens, err := Tokenize(NewLexer(`\frac {a} {b}`))
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	want := []string{`\frac`, "{", TypeMathOrd, "}", "{", TypeMathOrd, "}"}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, tok := range tokens {
		if tok.Type != want[i] {
			t.Errorf("token %d = %s, want %s", i, tok.Type, want[i])
		}
	}
}
