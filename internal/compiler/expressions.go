package compiler

import (
	"github.com/cwbudde/jackc/internal/vmwriter"
	"github.com/cwbudde/jackc/pkg/token"
)

// binaryOps maps a binary operator symbol to the instruction it emits.
// '-' lives here as Sub only: subtraction is the binary meaning of
// '-', negation is a unary-term concern handled separately in
// compileTerm so that Neg is never reachable through this table.
var binaryOps = map[rune]vmwriter.Arithmetic{
	'+': vmwriter.Add,
	'-': vmwriter.Sub,
	'&': vmwriter.And,
	'|': vmwriter.Or,
	'<': vmwriter.Lt,
	'>': vmwriter.Gt,
	'=': vmwriter.Eq,
}

// unaryOps maps a unary operator symbol to the instruction it emits.
var unaryOps = map[rune]vmwriter.Arithmetic{
	'-': vmwriter.Neg,
	'~': vmwriter.Not,
	'^': vmwriter.ShiftLeft,
	'#': vmwriter.ShiftRight,
}

func isBinaryOpSymbol(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '&', '|', '<', '>', '=':
		return true
	}
	return false
}

func isUnaryOpSymbol(r rune) bool {
	_, ok := unaryOps[r]
	return ok
}

func (e *Engine) compileExpression() error {
	if err := e.compileTerm(); err != nil {
		return err
	}

	for e.tz.TokenType() == token.Symbol && isBinaryOpSymbol(e.tz.Symbol()) {
		op := e.tz.Symbol()
		if _, err := e.expectSymbol(op); err != nil {
			return err
		}
		if err := e.compileTerm(); err != nil {
			return err
		}

		switch op {
		case '*':
			e.vm.WriteCall("Math.multiply", 2)
		case '/':
			e.vm.WriteCall("Math.divide", 2)
		default:
			e.vm.WriteArithmetic(binaryOps[op])
		}
	}

	return nil
}

func (e *Engine) compileTerm() error {
	switch e.tz.TokenType() {
	case token.IntegerConstant:
		n, err := e.expectInt()
		if err != nil {
			return err
		}
		e.vm.WritePush(vmwriter.Constant, n)
		return nil

	case token.StringConstant:
		return e.compileStringConstant()

	case token.Keyword:
		return e.compileKeywordConstant()

	case token.Identifier:
		return e.compileIdentifierTerm()

	case token.Symbol:
		s := e.tz.Symbol()
		if s == '(' {
			if _, err := e.expectSymbol('('); err != nil {
				return err
			}
			if err := e.compileExpression(); err != nil {
				return err
			}
			_, err := e.expectSymbol(')')
			return err
		}
		// Unary terms are dispatched on the symbol accessor, never the
		// keyword accessor: a unary operator is always a symbol token.
		if isUnaryOpSymbol(s) {
			if _, err := e.expectSymbol(s); err != nil {
				return err
			}
			if err := e.compileTerm(); err != nil {
				return err
			}
			e.vm.WriteArithmetic(unaryOps[s])
			return nil
		}
	}

	return e.syntaxErr([]string{"term"})
}

func (e *Engine) compileStringConstant() error {
	s, err := e.expectString()
	if err != nil {
		return err
	}
	e.vm.WritePush(vmwriter.Constant, len(s))
	e.vm.WriteCall("String.new", 1)
	for _, c := range s {
		e.vm.WritePush(vmwriter.Constant, int(c))
		e.vm.WriteCall("String.appendChar", 2)
	}
	return nil
}

func (e *Engine) compileKeywordConstant() error {
	kw, err := e.expectKeyword("true", "false", "null", "this")
	if err != nil {
		return err
	}
	switch kw {
	case "true":
		e.vm.WritePush(vmwriter.Constant, 0)
		e.vm.WriteArithmetic(vmwriter.Not)
	case "false", "null":
		e.vm.WritePush(vmwriter.Constant, 0)
	case "this":
		e.vm.WritePush(vmwriter.Pointer, 0)
	}
	return nil
}

func (e *Engine) compileIdentifierTerm() error {
	name, err := e.expectIdentifier()
	if err != nil {
		return err
	}

	switch {
	case isCurrentSymbol(e.tz, '['):
		if _, err := e.expectSymbol('['); err != nil {
			return err
		}
		if err := e.compileExpression(); err != nil {
			return err
		}
		if _, err := e.expectSymbol(']'); err != nil {
			return err
		}
		seg, idx, err := e.lookupVariable(name)
		if err != nil {
			return err
		}
		e.vm.WritePush(seg, idx)
		e.vm.WriteArithmetic(vmwriter.Add)
		e.vm.WritePop(vmwriter.Pointer, 1)
		e.vm.WritePush(vmwriter.That, 0)
		return nil

	case isCurrentSymbol(e.tz, '.') || isCurrentSymbol(e.tz, '('):
		return e.compileSubroutineCall(name)

	default:
		seg, idx, err := e.lookupVariable(name)
		if err != nil {
			return err
		}
		e.vm.WritePush(seg, idx)
		return nil
	}
}
