package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func TestCompileOneFileWritesVMOutput(t *testing.T) {
	dir := t.TempDir()
	src := `
class Main {
    function void main() {
        do Output.printString("Hello, world!");
        return;
    }
}`
	inPath := filepath.Join(dir, "Main.jack")
	if err := os.WriteFile(inPath, []byte(src), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	compileVerbose = false
	if err := compileOneFile(inPath, ""); err != nil {
		t.Fatalf("compileOneFile: %v", err)
	}

	out, err := os.ReadFile(filepath.Join(dir, "Main.vm"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	snaps.MatchSnapshot(t, "Main.jack compiled output", string(out))
}
