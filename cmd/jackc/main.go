// Command jackc compiles Jack class files to Hack VM instructions.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/jackc/cmd/jackc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
