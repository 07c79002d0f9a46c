package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/jackc/internal/compiler"
	"github.com/cwbudde/jackc/internal/diag"
	"github.com/cwbudde/jackc/internal/lexer"
	"github.com/cwbudde/jackc/internal/vmwriter"
	"github.com/spf13/cobra"
)

var (
	compileOutput  string
	compileVerbose bool
)

var compileCmd = &cobra.Command{
	Use:   "compile <file.jack|directory>",
	Short: "Compile Jack source into Hack VM instructions",
	Long: `Compile one Jack class file, or every .jack file in a directory,
into Hack VM instructions.

Each input file produces a sibling .vm file with the same base name.

Examples:
  # Compile a single class
  jackc compile Main.jack

  # Compile every class in a program directory
  jackc compile ./Pong

  # Compile a single class to a specific output file
  jackc compile Main.jack -o out/Main.vm`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "output file (single-file input only; default: <input>.vm)")
	compileCmd.Flags().BoolVarP(&compileVerbose, "verbose", "v", false, "verbose output")
}

func runCompile(_ *cobra.Command, args []string) error {
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if !info.IsDir() {
		return compileOneFile(path, compileOutput)
	}

	if compileOutput != "" {
		return fmt.Errorf("--output cannot be used when compiling a directory")
	}

	files, err := filepath.Glob(filepath.Join(path, "*.jack"))
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", path, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no .jack files found in %s", path)
	}

	for _, f := range files {
		if err := compileOneFile(f, ""); err != nil {
			return err
		}
	}
	return nil
}

func compileOneFile(inputPath, outputPath string) error {
	src, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", inputPath, err)
	}
	input := string(src)

	if outputPath == "" {
		ext := filepath.Ext(inputPath)
		outputPath = strings.TrimSuffix(inputPath, ext) + ".vm"
	}

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "Compiling %s...\n", inputPath)
	}

	tz, err := lexer.New(input, inputPath)
	if err != nil {
		printDiagnostic(err)
		return fmt.Errorf("tokenizing %s failed", inputPath)
	}

	var buf bytes.Buffer
	vm := vmwriter.New(&buf)
	eng := compiler.New(tz, vm, inputPath)
	if err := eng.CompileClass(); err != nil {
		printDiagnostic(err)
		return fmt.Errorf("compiling %s failed", inputPath)
	}

	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outputPath, err)
	}

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "VM code written to %s (%d bytes)\n", outputPath, buf.Len())
	} else {
		fmt.Printf("Compiled %s -> %s\n", inputPath, outputPath)
	}

	return nil
}

func printDiagnostic(err error) {
	fmt.Fprintln(os.Stderr, diag.ToCompilerError(err).Format(true))
}
