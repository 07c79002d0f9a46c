package compiler

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cwbudde/jackc/internal/lexer"
	"github.com/cwbudde/jackc/internal/vmwriter"
)

func compileSource(t *testing.T, src string) string {
	t.Helper()
	tz, err := lexer.New(src, "test.jack")
	if err != nil {
		t.Fatalf("lexer.New: %v", err)
	}
	var buf bytes.Buffer
	vm := vmwriter.New(&buf)
	eng := New(tz, vm, "test.jack")
	if err := eng.CompileClass(); err != nil {
		t.Fatalf("CompileClass: %v", err)
	}
	return buf.String()
}

func TestCompileEmptyVoidFunction(t *testing.T) {
	src := `
class Main {
    function void run() {
        return;
    }
}`
	got := compileSource(t, src)
	want := "function Main.run 0\n" +
		"push constant 0\n" +
		"return\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestCompileConstructorAndMethod(t *testing.T) {
	src := `
class Point {
    field int x, y;

    constructor Point new(int ax, int ay) {
        let x = ax;
        let y = ay;
        return this;
    }

    method int getX() {
        return x;
    }
}`
	got := compileSource(t, src)
	want := "function Point.new 0\n" +
		"push constant 2\n" +
		"call Memory.alloc 1\n" +
		"pop pointer 0\n" +
		"push argument 0\n" +
		"pop this 0\n" +
		"push argument 1\n" +
		"pop this 1\n" +
		"push pointer 0\n" +
		"return\n" +
		"function Point.getX 0\n" +
		"push argument 0\n" +
		"pop pointer 0\n" +
		"push this 0\n" +
		"return\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestCompileArrayAssignment(t *testing.T) {
	src := `
class Main {
    function void run() {
        var Array a;
        let a[0] = 5;
        return;
    }
}`
	got := compileSource(t, src)
	want := "function Main.run 1\n" +
		"push constant 0\n" +
		"push local 0\n" +
		"add\n" +
		"push constant 5\n" +
		"pop temp 0\n" +
		"pop pointer 1\n" +
		"push temp 0\n" +
		"pop that 0\n" +
		"push constant 0\n" +
		"return\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestCompileWhileLoop(t *testing.T) {
	src := `
class Main {
    function void run() {
        var int i;
        let i = 0;
        while (i) {
            let i = 0;
        }
        return;
    }
}`
	got := compileSource(t, src)
	if !strings.Contains(got, "label WHILE_EXP0\n") ||
		!strings.Contains(got, "label WHILE_END0\n") ||
		!strings.Contains(got, "if-goto WHILE_END0\n") ||
		!strings.Contains(got, "goto WHILE_EXP0\n") {
		t.Fatalf("missing while-loop labels, got:\n%s", got)
	}
}

func TestCompileStringLiteralCall(t *testing.T) {
	src := `
class Main {
    function void run() {
        do Output.printString("Hi");
        return;
    }
}`
	got := compileSource(t, src)
	want := "function Main.run 0\n" +
		"push constant 2\n" +
		"call String.new 1\n" +
		"push constant 72\n" +
		"call String.appendChar 2\n" +
		"push constant 105\n" +
		"call String.appendChar 2\n" +
		"call Output.printString 1\n" +
		"pop temp 0\n" +
		"push constant 0\n" +
		"return\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestCompileMethodVsFunctionCall(t *testing.T) {
	src := `
class Main {
    function void run() {
        var Point p;
        let p = Point.new(3, 4);
        do p.getX();
        return;
    }
}`
	got := compileSource(t, src)
	want := "function Main.run 1\n" +
		"push constant 3\n" +
		"push constant 4\n" +
		"call Point.new 2\n" +
		"pop local 0\n" +
		"push local 0\n" +
		"call Point.getX 1\n" +
		"pop temp 0\n" +
		"push constant 0\n" +
		"return\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestCompileIfElse(t *testing.T) {
	src := `
class Main {
    function void run() {
        if (true) {
            return;
        } else {
            return;
        }
    }
}`
	got := compileSource(t, src)
	if !strings.Contains(got, "if-goto IF_TRUE0\n") ||
		!strings.Contains(got, "goto IF_FALSE0\n") ||
		!strings.Contains(got, "label IF_TRUE0\n") ||
		!strings.Contains(got, "label IF_FALSE0\n") ||
		!strings.Contains(got, "goto IF_END0\n") ||
		!strings.Contains(got, "label IF_END0\n") {
		t.Fatalf("missing if/else labels, got:\n%s", got)
	}
}

func TestCompileUnaryNegNeverEmitsViaBinaryTable(t *testing.T) {
	// `-x` must emit neg from the unary-term path, and the binary `-`
	// in `a - b` must emit sub from the binary operator table, not both
	// resolve to neg.
	src := `
class Main {
    function int run() {
        var int a, b;
        return -a - b;
    }
}`
	got := compileSource(t, src)
	wantOrder := []string{"push local 0", "neg", "push local 1", "sub"}
	idx := 0
	for _, line := range strings.Split(got, "\n") {
		if idx < len(wantOrder) && line == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("expected neg then sub in sequence, got:\n%s", got)
	}
}

func TestCompileUndeclaredVariableIsSemanticError(t *testing.T) {
	src := `
class Main {
    function void run() {
        let x = 1;
        return;
    }
}`
	tz, err := lexer.New(src, "test.jack")
	if err != nil {
		t.Fatalf("lexer.New: %v", err)
	}
	var buf bytes.Buffer
	vm := vmwriter.New(&buf)
	eng := New(tz, vm, "test.jack")
	err = eng.CompileClass()
	if err == nil {
		t.Fatalf("expected semantic error for undeclared variable")
	}
}

func TestCompileTrailingContentFails(t *testing.T) {
	src := `
class Main {
}
class Extra {
}`
	tz, err := lexer.New(src, "test.jack")
	if err != nil {
		t.Fatalf("lexer.New: %v", err)
	}
	var buf bytes.Buffer
	vm := vmwriter.New(&buf)
	eng := New(tz, vm, "test.jack")
	if err := eng.CompileClass(); err == nil {
		t.Fatalf("expected trailing content error")
	}
}
