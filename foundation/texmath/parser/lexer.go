// File: lexer.go
// Title: texmath Token Source
// Description: Position-addressed lexer for math markup. Lex is a pure
//              function of the input and a byte offset: leading whitespace is
//              skipped, commands are a backslash followed by a run of ASCII
//              letters or by one character, and single characters map onto
//              generic token types.
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial lexer implementation

package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Generic token types. Command tokens use their own text as type.
const (
	TypeEOF         = "EOF"
	TypeTextOrd     = "textord"
	TypeMathOrd     = "mathord"
	TypeBin         = "bin"
	TypeRel         = "rel"
	TypePunct       = "punct"
	TypeOpen        = "open"
	TypeClose       = "close"
	TypePrime       = "'"
	TypeSuperscript = "^"
	TypeSubscript   = "_"
	TypeLeftBrace   = "{"
	TypeRightBrace  = "}"
)

// Token is one lexed token. Position is the offset of its first byte, Next
// the offset just past it.
type Token struct {
	Type     string
	Text     string
	Position int
	Next     int
}

// String returns a string representation of the token
func (t Token) String() string {
	if t.Type == TypeEOF {
		return "EOF"
	}
	if t.Type == t.Text {
		return t.Type
	}
	return fmt.Sprintf("%s(%s)", t.Type, t.Text)
}

// TokenSource yields the token starting at or after a byte offset. The same
// offset must always yield the same token.
type TokenSource interface {
	Lex(position int) (Token, error)
}

// singleChars maps single characters onto generic token types
var singleChars = map[rune]string{
	'/': TypeTextOrd, '|': TypeTextOrd, '@': TypeTextOrd, '.': TypeTextOrd,
	'"': TypeTextOrd, '`': TypeTextOrd,
	'*': TypeBin, '+': TypeBin, '-': TypeBin,
	'=': TypeRel, '<': TypeRel, '>': TypeRel,
	',': TypePunct, ';': TypePunct,
	'\'': TypePrime, '^': TypeSuperscript, '_': TypeSubscript,
	'{': TypeLeftBrace, '}': TypeRightBrace,
	'(': TypeOpen, '[': TypeOpen,
	')': TypeClose, ']': TypeClose, '?': TypeClose, '!': TypeClose,
}

// Lexer tokenizes a fixed input string
type Lexer struct {
	input string
}

// NewLexer creates a lexer over input
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Input returns the lexed string
func (l *Lexer) Input() string {
	return l.input
}

// Lex returns the token at position after skipping whitespace
func (l *Lexer) Lex(position int) (Token, error) {
	pos := l.skipWhitespace(position)
	if pos >= len(l.input) {
		return Token{Type: TypeEOF, Position: len(l.input), Next: len(l.input)}, nil
	}

	r, size := utf8.DecodeRuneInString(l.input[pos:])

	if r == '\\' && pos+1 < len(l.input) {
		end := pos + 1
		for end < len(l.input) && isASCIILetter(l.input[end]) {
			end++
		}
		if end == pos+1 {
			_, n := utf8.DecodeRuneInString(l.input[end:])
			end += n
		}
		text := l.input[pos:end]
		return Token{Type: text, Text: text, Position: pos, Next: end}, nil
	}

	text := l.input[pos : pos+size]
	switch {
	case r < utf8.RuneSelf && isASCIILetter(byte(r)):
		return Token{Type: TypeMathOrd, Text: text, Position: pos, Next: pos + size}, nil
	case r >= '0' && r <= '9':
		return Token{Type: TypeTextOrd, Text: text, Position: pos, Next: pos + size}, nil
	}
	if typ, ok := singleChars[r]; ok {
		return Token{Type: typ, Text: text, Position: pos, Next: pos + size}, nil
	}

	return Token{}, newUnexpectedCharacter(text, pos)
}

func (l *Lexer) skipWhitespace(pos int) int {
	for pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[pos:])
		if !unicode.IsSpace(r) {
			break
		}
		pos += size
	}
	return pos
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// Tokenize lexes the whole input, EOF excluded
func Tokenize(src TokenSource) ([]Token, error) {
	var tokens []Token
	pos := 0
	for {
		tok, err := src.Lex(pos)
		if err != nil {
			return tokens, err
		}
		if tok.Type == TypeEOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
		pos = tok.Next
	}
}
