package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/jackc/internal/compiler"
	"github.com/cwbudde/jackc/internal/lexer"
	"github.com/cwbudde/jackc/internal/vmwriter"
	"github.com/spf13/cobra"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols <file.jack>",
	Short: "Compile a class and print its class-scope symbol table",
	Long: `Compile a Jack class and print the Static/Field bindings the
compiler resolved for it: name, declared type, VM segment, and index.

This is a debugging aid for the symbol table independent of the
emitted VM code; subroutine-scope bindings (arguments and locals) are
not shown since they only survive for the subroutine compiled last.`,
	Args: cobra.ExactArgs(1),
	RunE: runSymbols,
}

func init() {
	rootCmd.AddCommand(symbolsCmd)
}

func runSymbols(_ *cobra.Command, args []string) error {
	filename := args[0]
	src, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	tz, err := lexer.New(string(src), filename)
	if err != nil {
		printDiagnostic(err)
		return fmt.Errorf("tokenizing %s failed", filename)
	}

	vm := vmwriter.New(io.Discard)
	eng := compiler.New(tz, vm, filename)
	if err := eng.CompileClass(); err != nil {
		printDiagnostic(err)
		return fmt.Errorf("compiling %s failed", filename)
	}

	fmt.Printf("class %s\n", eng.ClassName())
	for _, e := range eng.SymbolTable().ClassScope() {
		fmt.Printf("  %-4s %-10s %-8s %d\n", e.Name, e.Type, e.Kind.Segment(), e.Index)
	}
	return nil
}
