// Command graql formats, checks, and interactively runs TypeQL-family
// query text against the github.com/vishalbelsare/graql parser and
// validator. It performs no query execution and talks to no database.
package main

import (
	"fmt"
	"os"

	"github.com/vishalbelsare/graql/cmd/graql/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
