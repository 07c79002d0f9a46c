// Package compiler implements the Jack Compilation Engine: a
// recursive-descent parser with one token of lookahead that is
// synchronized with VM code emission, per spec.md §4.4.
package compiler

import (
	"fmt"

	"github.com/cwbudde/jackc/internal/diag"
	"github.com/cwbudde/jackc/internal/symtab"
	"github.com/cwbudde/jackc/internal/vmwriter"
	"github.com/cwbudde/jackc/pkg/token"
)

// tokenCursor is the subset of *lexer.Tokenizer the engine depends on.
// Declared as an interface so tests can drive the engine from a
// synthetic token stream without going through the real lexer.
type tokenCursor interface {
	HasMore() bool
	Advance()
	Current() token.Token
	TokenType() token.Type
	Keyword() string
	Symbol() rune
	Identifier() string
	IntVal() int
	StringVal() string
}

// Engine compiles one Jack class, read from tz, into VM instructions
// written to vm. Per spec.md §6, the next call after New must be
// CompileClass.
type Engine struct {
	tz   tokenCursor
	vm   *vmwriter.Writer
	st   *symtab.Table
	file string

	className string
	subKind   string // "constructor" | "function" | "method"
	isVoid    bool

	whileCounter int
	ifCounter    int
}

// New creates a compilation engine over tz, writing to vm. file names
// the source for diagnostics.
func New(tz tokenCursor, vm *vmwriter.Writer, file string) *Engine {
	return &Engine{
		tz:   tz,
		vm:   vm,
		st:   symtab.New(),
		file: file,
	}
}

// advance consumes the current token if there is another one to move
// to, matching the tokenizer's own has-more guard so that consuming
// the final token of the stream never panics.
func (e *Engine) advance() {
	if e.tz.HasMore() {
		e.tz.Advance()
	}
}

func (e *Engine) syntaxErr(expected []string) error {
	tok := e.tz.Current()
	return &diag.SyntaxError{
		Pos:      tok.Pos,
		Line:     tok.Line,
		File:     e.file,
		Actual:   tok,
		Expected: expected,
	}
}

func (e *Engine) expectKeyword(keywords ...string) (string, error) {
	tok := e.tz.Current()
	if tok.Type == token.Keyword {
		for _, kw := range keywords {
			if tok.Literal == kw {
				e.advance()
				return kw, nil
			}
		}
	}
	return "", e.syntaxErr(keywords)
}

func (e *Engine) expectSymbol(symbols ...rune) (rune, error) {
	tok := e.tz.Current()
	if tok.Type == token.Symbol {
		s := rune(tok.Literal[0])
		for _, sym := range symbols {
			if s == sym {
				e.advance()
				return s, nil
			}
		}
	}
	expected := make([]string, len(symbols))
	for i, s := range symbols {
		expected[i] = string(s)
	}
	return 0, e.syntaxErr(expected)
}

func (e *Engine) expectIdentifier() (string, error) {
	tok := e.tz.Current()
	if tok.Type == token.Identifier {
		e.advance()
		return tok.Literal, nil
	}
	return "", e.syntaxErr([]string{"identifier"})
}

func (e *Engine) expectInt() (int, error) {
	tok := e.tz.Current()
	if tok.Type == token.IntegerConstant {
		e.advance()
		return tok.IntVal, nil
	}
	return 0, e.syntaxErr([]string{"integerConstant"})
}

func (e *Engine) expectString() (string, error) {
	tok := e.tz.Current()
	if tok.Type == token.StringConstant {
		e.advance()
		return tok.Literal, nil
	}
	return "", e.syntaxErr([]string{"stringConstant"})
}

// atTypeStart reports whether the current token can begin a type
// (int/char/boolean, or a class-name identifier).
func (e *Engine) atTypeStart() bool {
	if e.tz.TokenType() == token.Identifier {
		return true
	}
	if e.tz.TokenType() == token.Keyword {
		switch e.tz.Keyword() {
		case "int", "char", "boolean":
			return true
		}
	}
	return false
}

func (e *Engine) expectType() (string, error) {
	if e.tz.TokenType() == token.Keyword {
		return e.expectKeyword("int", "char", "boolean")
	}
	return e.expectIdentifier()
}

// SymbolTable exposes the engine's symbol table. Class-scope entries
// (Static/Field) are stable once CompileClass returns; subroutine-scope
// entries reflect only whichever subroutine was compiled last, since
// each StartSubroutine call clears the previous one.
func (e *Engine) SymbolTable() *symtab.Table {
	return e.st
}

// ClassName returns the name of the class being compiled, populated
// once CompileClass has consumed the `class` header.
func (e *Engine) ClassName() string {
	return e.className
}

// segmentFor maps a symbol's storage kind to its VM segment, per
// spec.md §3's fixed mapping.
func segmentFor(kind symtab.Kind) vmwriter.Segment {
	return vmwriter.Segment(kind.Segment())
}

// lookupVariable resolves name against the symbol table. An
// unresolved name surfaces as a SemanticError instead of silently
// emitting a nonsensical segment/index pair.
func (e *Engine) lookupVariable(name string) (vmwriter.Segment, int, error) {
	kind, ok := e.st.KindOf(name)
	if !ok {
		tok := e.tz.Current()
		return "", 0, &diag.SemanticError{Pos: tok.Pos, Line: tok.Line, File: e.file, Name: name}
	}
	idx, _ := e.st.IndexOf(name)
	return segmentFor(kind), idx, nil
}

func isCurrentSymbol(tz tokenCursor, s rune) bool {
	return tz.TokenType() == token.Symbol && tz.Symbol() == s
}

func isCurrentKeyword(tz tokenCursor, kws ...string) bool {
	if tz.TokenType() != token.Keyword {
		return false
	}
	k := tz.Keyword()
	for _, kw := range kws {
		if k == kw {
			return true
		}
	}
	return false
}

// CompileClass compiles the single class in the token stream,
// per spec.md §4.4. It is the only entry point named in spec.md §6.
func (e *Engine) CompileClass() error {
	// The cursor starts before the first token.
	e.advance()

	if _, err := e.expectKeyword("class"); err != nil {
		return err
	}
	name, err := e.expectIdentifier()
	if err != nil {
		return err
	}
	e.className = name

	if _, err := e.expectSymbol('{'); err != nil {
		return err
	}

	for isCurrentKeyword(e.tz, "static", "field") {
		if err := e.compileClassVarDec(); err != nil {
			return err
		}
	}

	for isCurrentKeyword(e.tz, "constructor", "function", "method") {
		if err := e.compileSubroutine(); err != nil {
			return err
		}
	}

	// Any token after the closing brace is trailing content.
	trailing := e.tz.HasMore()
	if _, err := e.expectSymbol('}'); err != nil {
		return err
	}

	if trailing {
		tok := e.tz.Current()
		return &diag.SyntaxError{
			Pos:      tok.Pos,
			Line:     tok.Line,
			File:     e.file,
			Actual:   tok,
			Expected: []string{"<end of file>"},
		}
	}

	return nil
}

func kindForClassVar(kw string) symtab.Kind {
	if kw == "static" {
		return symtab.Static
	}
	return symtab.Field
}

func (e *Engine) compileClassVarDec() error {
	kw, err := e.expectKeyword("static", "field")
	if err != nil {
		return err
	}
	kind := kindForClassVar(kw)

	typ, err := e.expectType()
	if err != nil {
		return err
	}
	name, err := e.expectIdentifier()
	if err != nil {
		return err
	}
	e.st.Define(name, typ, kind)

	for isCurrentSymbol(e.tz, ',') {
		if _, err := e.expectSymbol(','); err != nil {
			return err
		}
		name, err := e.expectIdentifier()
		if err != nil {
			return err
		}
		e.st.Define(name, typ, kind)
	}

	_, err = e.expectSymbol(';')
	return err
}

func (e *Engine) compileSubroutine() error {
	e.st.StartSubroutine()
	e.whileCounter = 0
	e.ifCounter = 0

	kind, err := e.expectKeyword("constructor", "function", "method")
	if err != nil {
		return err
	}
	e.subKind = kind

	if kind == "method" {
		// Bind `this` before the declared parameter list so user
		// parameters occupy argument indices 1... (spec.md §4.4).
		e.st.Define("this", e.className, symtab.Argument)
	}

	isVoid, err := e.expectVoidOrType()
	if err != nil {
		return err
	}
	e.isVoid = isVoid

	subName, err := e.expectIdentifier()
	if err != nil {
		return err
	}

	if _, err := e.expectSymbol('('); err != nil {
		return err
	}
	if err := e.compileParameterList(); err != nil {
		return err
	}
	if _, err := e.expectSymbol(')'); err != nil {
		return err
	}

	return e.compileSubroutineBody(subName)
}

// expectVoidOrType consumes a subroutine's declared return type and
// reports whether it was `void`.
func (e *Engine) expectVoidOrType() (bool, error) {
	if e.tz.TokenType() == token.Keyword && e.tz.Keyword() == "void" {
		if _, err := e.expectKeyword("void"); err != nil {
			return false, err
		}
		return true, nil
	}
	if _, err := e.expectType(); err != nil {
		return false, err
	}
	return false, nil
}

func (e *Engine) compileParameterList() error {
	if !e.atTypeStart() {
		return nil
	}

	typ, err := e.expectType()
	if err != nil {
		return err
	}
	name, err := e.expectIdentifier()
	if err != nil {
		return err
	}
	e.st.Define(name, typ, symtab.Argument)

	for isCurrentSymbol(e.tz, ',') {
		if _, err := e.expectSymbol(','); err != nil {
			return err
		}
		typ, err := e.expectType()
		if err != nil {
			return err
		}
		name, err := e.expectIdentifier()
		if err != nil {
			return err
		}
		e.st.Define(name, typ, symtab.Argument)
	}

	return nil
}

func (e *Engine) compileSubroutineBody(subName string) error {
	if _, err := e.expectSymbol('{'); err != nil {
		return err
	}

	for isCurrentKeyword(e.tz, "var") {
		if err := e.compileVarDec(); err != nil {
			return err
		}
	}

	e.vm.WriteFunction(fmt.Sprintf("%s.%s", e.className, subName), e.st.VarCount(symtab.Local))

	switch e.subKind {
	case "method":
		e.vm.WritePush(vmwriter.Argument, 0)
		e.vm.WritePop(vmwriter.Pointer, 0)
	case "constructor":
		e.vm.WritePush(vmwriter.Constant, e.st.VarCount(symtab.Field))
		e.vm.WriteCall("Memory.alloc", 1)
		e.vm.WritePop(vmwriter.Pointer, 0)
	}

	if err := e.compileStatements(); err != nil {
		return err
	}

	_, err := e.expectSymbol('}')
	return err
}

func (e *Engine) compileVarDec() error {
	if _, err := e.expectKeyword("var"); err != nil {
		return err
	}
	typ, err := e.expectType()
	if err != nil {
		return err
	}
	name, err := e.expectIdentifier()
	if err != nil {
		return err
	}
	e.st.Define(name, typ, symtab.Local)

	for isCurrentSymbol(e.tz, ',') {
		if _, err := e.expectSymbol(','); err != nil {
			return err
		}
		name, err := e.expectIdentifier()
		if err != nil {
			return err
		}
		e.st.Define(name, typ, symtab.Local)
	}

	_, err = e.expectSymbol(';')
	return err
}
