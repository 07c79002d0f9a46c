package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/jackc/internal/lexer"
	"github.com/cwbudde/jackc/pkg/token"
	"github.com/spf13/cobra"
)

var (
	tokensShowPos  bool
	tokensShowType bool
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file.jack>",
	Short: "Tokenize a Jack file and print the resulting tokens",
	Long: `Tokenize a Jack class file and print each token on its own line.

This is useful for debugging the tokenizer and comment-stripping pass
independent of the compiler.

Examples:
  jackc tokens Main.jack
  jackc tokens --show-type --show-pos Main.jack`,
	Args: cobra.ExactArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().BoolVar(&tokensShowPos, "show-pos", false, "show token positions (line:column)")
	tokensCmd.Flags().BoolVar(&tokensShowType, "show-type", false, "show token type names")
}

func runTokens(_ *cobra.Command, args []string) error {
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

	for _, tok := range tz.Tokens() {
		printToken(tok)
	}
	return nil
}

func printToken(tok token.Token) {
	var output string
	if tokensShowType {
		output = fmt.Sprintf("[%-16s]", tok.Type)
	}
	output += fmt.Sprintf(" %q", tok.Literal)
	if tokensShowPos {
		output += fmt.Sprintf(" @%s", tok.Pos)
	}
	fmt.Println(output)
}
