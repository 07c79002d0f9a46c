package compiler

import (
	"fmt"

	"github.com/cwbudde/jackc/internal/vmwriter"
)

func (e *Engine) compileStatements() error {
	for isCurrentKeyword(e.tz, "let", "if", "while", "do", "return") {
		var err error
		switch e.tz.Keyword() {
		case "let":
			err = e.compileLet()
		case "if":
			err = e.compileIf()
		case "while":
			err = e.compileWhile()
		case "do":
			err = e.compileDo()
		case "return":
			err = e.compileReturn()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) compileLet() error {
	if _, err := e.expectKeyword("let"); err != nil {
		return err
	}
	name, err := e.expectIdentifier()
	if err != nil {
		return err
	}

	isArray := false
	if isCurrentSymbol(e.tz, '[') {
		isArray = true
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
	}

	if _, err := e.expectSymbol('='); err != nil {
		return err
	}
	if err := e.compileExpression(); err != nil {
		return err
	}
	if _, err := e.expectSymbol(';'); err != nil {
		return err
	}

	if isArray {
		// The target address sits on the stack under the freshly
		// computed RHS value, so stash the RHS in temp 0 before
		// repointing `that`.
		e.vm.WritePop(vmwriter.Temp, 0)
		e.vm.WritePop(vmwriter.Pointer, 1)
		e.vm.WritePush(vmwriter.Temp, 0)
		e.vm.WritePop(vmwriter.That, 0)
		return nil
	}

	seg, idx, err := e.lookupVariable(name)
	if err != nil {
		return err
	}
	e.vm.WritePop(seg, idx)
	return nil
}

func (e *Engine) compileWhile() error {
	n := e.whileCounter
	e.whileCounter++
	expLabel := fmt.Sprintf("WHILE_EXP%d", n)
	endLabel := fmt.Sprintf("WHILE_END%d", n)

	if _, err := e.expectKeyword("while"); err != nil {
		return err
	}

	e.vm.WriteLabel(expLabel)
	if _, err := e.expectSymbol('('); err != nil {
		return err
	}
	if err := e.compileExpression(); err != nil {
		return err
	}
	if _, err := e.expectSymbol(')'); err != nil {
		return err
	}

	e.vm.WriteArithmetic(vmwriter.Not)
	e.vm.WriteIf(endLabel)

	if _, err := e.expectSymbol('{'); err != nil {
		return err
	}
	if err := e.compileStatements(); err != nil {
		return err
	}
	if _, err := e.expectSymbol('}'); err != nil {
		return err
	}

	e.vm.WriteGoto(expLabel)
	e.vm.WriteLabel(endLabel)
	return nil
}

func (e *Engine) compileIf() error {
	n := e.ifCounter
	e.ifCounter++
	trueLabel := fmt.Sprintf("IF_TRUE%d", n)
	falseLabel := fmt.Sprintf("IF_FALSE%d", n)
	endLabel := fmt.Sprintf("IF_END%d", n)

	if _, err := e.expectKeyword("if"); err != nil {
		return err
	}
	if _, err := e.expectSymbol('('); err != nil {
		return err
	}
	if err := e.compileExpression(); err != nil {
		return err
	}
	if _, err := e.expectSymbol(')'); err != nil {
		return err
	}

	e.vm.WriteIf(trueLabel)
	e.vm.WriteGoto(falseLabel)
	e.vm.WriteLabel(trueLabel)

	if _, err := e.expectSymbol('{'); err != nil {
		return err
	}
	if err := e.compileStatements(); err != nil {
		return err
	}
	if _, err := e.expectSymbol('}'); err != nil {
		return err
	}

	if isCurrentKeyword(e.tz, "else") {
		e.vm.WriteGoto(endLabel)
		e.vm.WriteLabel(falseLabel)

		if _, err := e.expectKeyword("else"); err != nil {
			return err
		}
		if _, err := e.expectSymbol('{'); err != nil {
			return err
		}
		if err := e.compileStatements(); err != nil {
			return err
		}
		if _, err := e.expectSymbol('}'); err != nil {
			return err
		}

		e.vm.WriteLabel(endLabel)
		return nil
	}

	e.vm.WriteLabel(falseLabel)
	return nil
}

func (e *Engine) compileDo() error {
	if _, err := e.expectKeyword("do"); err != nil {
		return err
	}
	name, err := e.expectIdentifier()
	if err != nil {
		return err
	}
	if err := e.compileSubroutineCall(name); err != nil {
		return err
	}
	if _, err := e.expectSymbol(';'); err != nil {
		return err
	}
	// `do` discards the callee's return value.
	e.vm.WritePop(vmwriter.Temp, 0)
	return nil
}

func (e *Engine) compileReturn() error {
	if _, err := e.expectKeyword("return"); err != nil {
		return err
	}

	if isCurrentSymbol(e.tz, ';') {
		if e.isVoid {
			e.vm.WritePush(vmwriter.Constant, 0)
		}
	} else {
		if err := e.compileExpression(); err != nil {
			return err
		}
	}

	if _, err := e.expectSymbol(';'); err != nil {
		return err
	}
	e.vm.WriteReturn()
	return nil
}

// compileSubroutineCall compiles the `(.subName)? ( exprList )` tail of
// a call whose leading identifier (name) has already been consumed, per
// spec.md §4.4's subroutine-call resolution rules:
//   - name is a known local/field/static/argument variable followed by
//     `.` => method call on that object; push the object as argument 0.
//   - name is unresolved followed by `.` => static call on a class.
//   - no `.` => method call on the current object (`this`).
func (e *Engine) compileSubroutineCall(name string) error {
	var callee string
	nArgs := 0

	if isCurrentSymbol(e.tz, '.') {
		if _, err := e.expectSymbol('.'); err != nil {
			return err
		}
		member, err := e.expectIdentifier()
		if err != nil {
			return err
		}
		if typ, ok := e.st.TypeOf(name); ok {
			kind, _ := e.st.KindOf(name)
			idx, _ := e.st.IndexOf(name)
			e.vm.WritePush(segmentFor(kind), idx)
			nArgs++
			callee = typ + "." + member
		} else {
			callee = name + "." + member
		}
	} else {
		e.vm.WritePush(vmwriter.Pointer, 0)
		nArgs++
		callee = e.className + "." + name
	}

	if _, err := e.expectSymbol('('); err != nil {
		return err
	}
	n, err := e.compileExpressionList()
	if err != nil {
		return err
	}
	nArgs += n
	if _, err := e.expectSymbol(')'); err != nil {
		return err
	}

	e.vm.WriteCall(callee, nArgs)
	return nil
}

func (e *Engine) compileExpressionList() (int, error) {
	if isCurrentSymbol(e.tz, ')') {
		return 0, nil
	}

	count := 0
	if err := e.compileExpression(); err != nil {
		return 0, err
	}
	count++

	for isCurrentSymbol(e.tz, ',') {
		if _, err := e.expectSymbol(','); err != nil {
			return 0, err
		}
		if err := e.compileExpression(); err != nil {
			return 0, err
		}
		count++
	}

	return count, nil
}
