package compiler

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/jackc/internal/lexer"
	"github.com/cwbudde/jackc/internal/vmwriter"
)

// TestFixtures compiles every .jack file under testdata/fixtures and
// compares the emitted VM text against its .vm sibling, following the
// same expected-file convention as the upstream fixture harness this
// was adapted from.
func TestFixtures(t *testing.T) {
	jackFiles, err := filepath.Glob("../../testdata/fixtures/*.jack")
	if err != nil {
		t.Fatalf("glob fixtures: %v", err)
	}
	if len(jackFiles) == 0 {
		t.Fatal("no fixtures found under testdata/fixtures")
	}

	for _, jackFile := range jackFiles {
		name := strings.TrimSuffix(filepath.Base(jackFile), ".jack")
		t.Run(name, func(t *testing.T) {
			src, err := os.ReadFile(jackFile)
			if err != nil {
				t.Fatalf("read %s: %v", jackFile, err)
			}
			wantPath := strings.TrimSuffix(jackFile, ".jack") + ".vm"
			want, err := os.ReadFile(wantPath)
			if err != nil {
				t.Fatalf("read %s: %v", wantPath, err)
			}

			tz, err := lexer.New(string(src), filepath.Base(jackFile))
			if err != nil {
				t.Fatalf("lexer.New: %v", err)
			}
			var buf bytes.Buffer
			vm := vmwriter.New(&buf)
			eng := New(tz, vm, filepath.Base(jackFile))
			if err := eng.CompileClass(); err != nil {
				t.Fatalf("CompileClass: %v", err)
			}

			got := strings.TrimRight(buf.String(), "\n")
			wantTrimmed := strings.TrimRight(string(want), "\n")
			if got != wantTrimmed {
				t.Fatalf("%s: got:\n%s\nwant:\n%s", name, got, wantTrimmed)
			}
		})
	}
}
