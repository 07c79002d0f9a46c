package vmwriter

import (
	"bytes"
	"testing"
)

func TestWriterEmitsExpectedVocabulary(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	w.WritePush(Constant, 7)
	w.WritePop(Local, 2)
	w.WriteArithmetic(Add)
	w.WriteArithmetic(Neg)
	w.WriteLabel("LOOP0")
	w.WriteGoto("LOOP0")
	w.WriteIf("END0")
	w.WriteCall("Math.multiply", 2)
	w.WriteFunction("Main.main", 3)
	w.WriteReturn()

	want := "push constant 7\n" +
		"pop local 2\n" +
		"add\n" +
		"neg\n" +
		"label LOOP0\n" +
		"goto LOOP0\n" +
		"if-goto END0\n" +
		"call Math.multiply 2\n" +
		"function Main.main 3\n" +
		"return\n"

	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestNoHeaderOrTrailer(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	w.WriteReturn()
	if buf.String() != "return\n" {
		t.Fatalf("expected exactly one bare instruction line, got %q", buf.String())
	}
}
