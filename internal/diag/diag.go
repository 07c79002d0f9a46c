// Package diag formats compiler diagnostics with source context,
// line/column information, and a caret pointing at the offending
// location. It is the diagnostic sink of spec.md §7, kept separate
// from the VM output sink.
package diag

import (
	"fmt"
	"strings"

	"github.com/cwbudde/jackc/pkg/token"
)

// LexKind distinguishes the four fatal lexical failures: the three
// spec.md §7 names plus IntOutOfRange.
type LexKind int

const (
	UnterminatedComment LexKind = iota
	BadString
	BadToken
	IntOutOfRange
)

func (k LexKind) String() string {
	switch k {
	case UnterminatedComment:
		return "unterminated comment"
	case BadString:
		return "unterminated or malformed string literal"
	case BadToken:
		return "unclassifiable token"
	case IntOutOfRange:
		return "integer constant out of range (0-32767)"
	default:
		return "lexical error"
	}
}

// LexError is raised by the tokenizer's comment-removal or
// tokenization passes. It is always fatal.
type LexError struct {
	Kind LexKind
	Pos  token.Position
	Line string
	File string
}

func (e *LexError) Error() string {
	return NewCompilerError(e.Pos, e.Kind.String(), e.Line, e.File).Format(false)
}

// SyntaxError records a token that did not match the expected set at
// some grammar position. The engine never recovers from one.
type SyntaxError struct {
	Pos      token.Position
	Line     string
	File     string
	Actual   token.Token
	Expected []string
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("unexpected %s %q, expected one of %s",
		e.Actual.Type, e.Actual.Literal, strings.Join(e.Expected, ", "))
	return NewCompilerError(e.Pos, msg, e.Line, e.File).Format(false)
}

// SemanticError records an identifier used where the symbol table has
// no binding for it. Per spec.md §7 this is optional: the engine may
// surface it instead of emitting ill-defined output.
type SemanticError struct {
	Pos  token.Position
	Line string
	File string
	Name string
}

func (e *SemanticError) Error() string {
	msg := fmt.Sprintf("undeclared identifier %q", e.Name)
	return NewCompilerError(e.Pos, msg, e.Line, e.File).Format(false)
}

// CompilerError is the common rendering shape behind all three
// diagnostic kinds above: a message anchored at a position, with the
// originating source line available for a caret display.
type CompilerError struct {
	Message string
	Line    string
	File    string
	Pos     token.Position
}

// NewCompilerError builds a CompilerError. line is the single source
// line the position falls on (already known by the caller — the
// tokenizer and engine both carry it on Token.Line).
func NewCompilerError(pos token.Position, message, line, file string) *CompilerError {
	return &CompilerError{Pos: pos, Message: message, Line: line, File: file}
}

func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the error with a source line and caret. If color is
// true, the caret is wrapped in ANSI red-bold escapes.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "Error at line %d:%d\n", e.Pos.Line, e.Pos.Column)
	}

	if e.Line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(e.Line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+max(e.Pos.Column-1, 0)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FormatErrors renders a batch of compiler errors separated by blank lines.
func FormatErrors(errs []*CompilerError, color bool) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Format(color))
	}
	return strings.Join(parts, "\n\n")
}

// ToCompilerError normalizes any of this package's error kinds (and
// any plain error) into a *CompilerError for uniform CLI rendering.
func ToCompilerError(err error) *CompilerError {
	switch e := err.(type) {
	case *LexError:
		return NewCompilerError(e.Pos, e.Kind.String(), e.Line, e.File)
	case *SyntaxError:
		msg := fmt.Sprintf("unexpected %s %q, expected one of %s",
			e.Actual.Type, e.Actual.Literal, strings.Join(e.Expected, ", "))
		return NewCompilerError(e.Pos, msg, e.Line, e.File)
	case *SemanticError:
		return NewCompilerError(e.Pos, fmt.Sprintf("undeclared identifier %q", e.Name), e.Line, e.File)
	case *CompilerError:
		return e
	default:
		return NewCompilerError(token.Position{}, err.Error(), "", "")
	}
}
