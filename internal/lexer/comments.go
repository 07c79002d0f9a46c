package lexer

import (
	"strings"

	"github.com/cwbudde/jackc/internal/diag"
	"github.com/cwbudde/jackc/pkg/token"
)

// stripComments implements spec.md §4.1's preprocessing pass: string
// literals pass through verbatim (including any '/' inside them), "//"
// line comments and "/*" ("/**" included) block comments are each
// replaced by a single space. An unterminated block comment is fatal.
//
// This pass is idempotent (testable property 4 in spec.md §8): running
// it again over its own output finds no comment openers left to strip,
// and string contents are reproduced byte-for-byte.
func stripComments(src string) (string, error) {
	var out strings.Builder
	out.Grow(len(src))

	line, col := 1, 0
	advance := func(r rune) {
		if r == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}

	i := 0
	n := len(src)
	for i < n {
		c := src[i]
		switch {
		case c == '"':
			start := i
			out.WriteByte(c)
			advance('"')
			i++
			for i < n && src[i] != '"' {
				if src[i] == '\n' {
					return "", &diag.LexError{
						Kind: diag.BadString,
						Pos:  token.Position{Line: line, Column: col + 1, Offset: start},
						Line: sourceLine(src, line),
					}
				}
				out.WriteByte(src[i])
				advance(rune(src[i]))
				i++
			}
			if i >= n {
				return "", &diag.LexError{
					Kind: diag.BadString,
					Pos:  token.Position{Line: line, Column: col + 1, Offset: start},
					Line: sourceLine(src, line),
				}
			}
			out.WriteByte('"')
			advance('"')
			i++

		case c == '/' && i+1 < n && src[i+1] == '/':
			rel := strings.IndexByte(src[i:], '\n')
			var consumed string
			if rel < 0 {
				consumed = src[i:]
				i = n
			} else {
				consumed = src[i : i+rel+1] // include the newline
				i += rel + 1
			}
			for _, r := range consumed {
				advance(r)
			}
			out.WriteByte(' ')

		case c == '/' && i+1 < n && src[i+1] == '*':
			startLine, startCol, startOff := line, col, i
			rest := src[i+2:]
			end := strings.Index(rest, "*/")
			if end < 0 {
				return "", &diag.LexError{
					Kind: diag.UnterminatedComment,
					Pos:  token.Position{Line: startLine, Column: startCol + 1, Offset: startOff},
					Line: sourceLine(src, startLine),
				}
			}
			// Advance line/col counters across the consumed span.
			consumed := rest[:end+2]
			for _, r := range "/*" + consumed {
				advance(r)
			}
			out.WriteByte(' ')
			i += 2 + end + 2

		default:
			out.WriteByte(c)
			advance(rune(c))
			i++
		}
	}

	return out.String(), nil
}

func sourceLine(src string, lineNo int) string {
	lines := strings.Split(src, "\n")
	if lineNo < 1 || lineNo > len(lines) {
		return ""
	}
	return lines[lineNo-1]
}
