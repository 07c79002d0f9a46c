// Package lexer implements the Jack tokenizer: a comment-stripping
// preprocessing pass followed by a tokenization and classification
// pass, exposed through a random-access token cursor (spec.md §4.1).
package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cwbudde/jackc/internal/diag"
	"github.com/cwbudde/jackc/pkg/token"
)

// Tokenizer holds the full, classified token stream for one Jack
// source file and a cursor into it. Per spec.md §4.1, the cursor
// model is an indexed random-access buffer: every token is produced
// up front by Tokenize, then walked with HasMore/Advance.
type Tokenizer struct {
	file    string
	tokens  []token.Token
	current int // index of the current token; -1 before the first Advance
}

// New tokenizes src (the full contents of one Jack source file named
// file, used only for diagnostics) and returns a ready Tokenizer
// positioned before the first token. It fails fatally on the first
// LexError (spec.md §7: lexical errors are fatal).
func New(src, file string) (*Tokenizer, error) {
	clean, err := stripComments(src)
	if err != nil {
		if le, ok := err.(*diag.LexError); ok {
			le.File = file
		}
		return nil, err
	}

	toks, err := tokenize(clean, file)
	if err != nil {
		return nil, err
	}

	return &Tokenizer{file: file, tokens: toks, current: -1}, nil
}

// HasMore reports whether there is a token after the current one.
func (t *Tokenizer) HasMore() bool {
	return t.current+1 < len(t.tokens)
}

// Advance moves to the next token. Precondition: HasMore().
func (t *Tokenizer) Advance() {
	if !t.HasMore() {
		panic("lexer: Advance called with no more tokens")
	}
	t.current++
}

// Current returns the token under the cursor. Precondition: Advance
// has been called at least once.
func (t *Tokenizer) Current() token.Token {
	if t.current < 0 {
		panic("lexer: Current called before the first Advance")
	}
	return t.tokens[t.current]
}

// TokenType returns the type of the current token.
func (t *Tokenizer) TokenType() token.Type {
	return t.Current().Type
}

// Keyword returns the current token's keyword spelling.
// Precondition: TokenType() == token.Keyword.
func (t *Tokenizer) Keyword() string {
	cur := t.Current()
	if cur.Type != token.Keyword {
		panic("lexer: Keyword called on a non-keyword token")
	}
	return cur.Literal
}

// Symbol returns the current token's symbol character.
// Precondition: TokenType() == token.Symbol.
func (t *Tokenizer) Symbol() rune {
	cur := t.Current()
	if cur.Type != token.Symbol {
		panic("lexer: Symbol called on a non-symbol token")
	}
	return rune(cur.Literal[0])
}

// Identifier returns the current token's name.
// Precondition: TokenType() == token.Identifier.
func (t *Tokenizer) Identifier() string {
	cur := t.Current()
	if cur.Type != token.Identifier {
		panic("lexer: Identifier called on a non-identifier token")
	}
	return cur.Literal
}

// IntVal returns the current token's integer value.
// Precondition: TokenType() == token.IntegerConstant.
func (t *Tokenizer) IntVal() int {
	cur := t.Current()
	if cur.Type != token.IntegerConstant {
		panic("lexer: IntVal called on a non-integer token")
	}
	return cur.IntVal
}

// StringVal returns the current token's string contents (quotes stripped).
// Precondition: TokenType() == token.StringConstant.
func (t *Tokenizer) StringVal() string {
	cur := t.Current()
	if cur.Type != token.StringConstant {
		panic("lexer: StringVal called on a non-string token")
	}
	return cur.Literal
}

// Tokens returns every classified token, for tooling (the "tokens"
// CLI subcommand, and whole-stream tests) that wants the
// full stream rather than a live cursor.
func (t *Tokenizer) Tokens() []token.Token {
	return t.tokens
}

// tokenize runs spec.md §4.1's tokenization and classification passes
// over comment-stripped source.
func tokenize(src, file string) ([]token.Token, error) {
	var toks []token.Token

	var buf strings.Builder
	bufStart := token.Position{}

	line, col := 1, 0
	lineText := func() string { return sourceLine(src, line) }

	flush := func() error {
		if buf.Len() == 0 {
			return nil
		}
		lit := buf.String()
		buf.Reset()
		tok, err := classify(lit, bufStart, lineText())
		if err != nil {
			return withFile(err, file)
		}
		toks = append(toks, tok)
		return nil
	}

	runes := []rune(src)
	i := 0
	for i < len(runes) {
		r := runes[i]

		switch {
		case r == '"':
			if err := flush(); err != nil {
				return nil, err
			}
			start := token.Position{Line: line, Column: col + 1}
			var sb strings.Builder
			sb.WriteRune('"')
			startLine := line
			i++
			col++
			closed := false
			for i < len(runes) {
				if runes[i] == '\n' {
					return nil, &diag.LexError{
						Kind: diag.BadString,
						Pos:  start,
						Line: sourceLine(src, startLine),
						File: file,
					}
				}
				sb.WriteRune(runes[i])
				if runes[i] == '"' {
					i++
					col++
					closed = true
					break
				}
				i++
				col++
			}
			if !closed {
				return nil, &diag.LexError{
					Kind: diag.BadString,
					Pos:  start,
					Line: sourceLine(src, startLine),
					File: file,
				}
			}
			tok, err := classify(sb.String(), start, sourceLine(src, startLine))
			if err != nil {
				return nil, withFile(err, file)
			}
			toks = append(toks, tok)
			continue

		case unicode.IsSpace(r):
			if err := flush(); err != nil {
				return nil, err
			}
			if r == '\n' {
				line++
				col = 0
			} else {
				col++
			}
			i++
			continue

		case token.Symbols[r]:
			if err := flush(); err != nil {
				return nil, err
			}
			pos := token.Position{Line: line, Column: col + 1}
			tok, err := classify(string(r), pos, lineText())
			if err != nil {
				return nil, withFile(err, file)
			}
			toks = append(toks, tok)
			col++
			i++
			continue

		default:
			if buf.Len() == 0 {
				bufStart = token.Position{Line: line, Column: col + 1}
			}
			buf.WriteRune(r)
			col++
			i++
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}

	return toks, nil
}

// withFile attaches the source file name to a *diag.LexError, if err is one.
func withFile(err error, file string) error {
	if le, ok := err.(*diag.LexError); ok {
		le.File = file
	}
	return err
}

// classify implements spec.md §4.1's classification priority order:
// keyword, symbol, integer constant, string constant, identifier.
func classify(lit string, pos token.Position, line string) (token.Token, error) {
	switch {
	case token.Keywords[lit]:
		return token.Token{Type: token.Keyword, Literal: lit, Pos: pos, Line: line}, nil

	case len(lit) == 1 && token.Symbols[rune(lit[0])]:
		return token.Token{Type: token.Symbol, Literal: lit, Pos: pos, Line: line}, nil

	case isAllDigits(lit):
		n, err := strconv.Atoi(lit)
		if err != nil || n < 0 || n > token.MaxIntegerConstant {
			return token.Token{}, &diag.LexError{Kind: diag.IntOutOfRange, Pos: pos, Line: line}
		}
		return token.Token{Type: token.IntegerConstant, Literal: lit, IntVal: n, Pos: pos, Line: line}, nil

	case len(lit) > 1 && lit[0] == '"' && lit[len(lit)-1] == '"':
		return token.Token{Type: token.StringConstant, Literal: lit[1 : len(lit)-1], Pos: pos, Line: line}, nil

	case isValidIdentifier(lit):
		return token.Token{Type: token.Identifier, Literal: lit, Pos: pos, Line: line}, nil

	default:
		return token.Token{}, &diag.LexError{Kind: diag.BadToken, Pos: pos, Line: line}
	}
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(s)
	if unicode.IsDigit(first) {
		return false
	}
	for _, r := range s {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return true
}
