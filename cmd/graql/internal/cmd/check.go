package cmd

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vishalbelsare/graql"
)

var okStyle = color.New(color.FgGreen, color.Bold)

var checkDebug bool

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Parse and structurally validate query text without printing it",
	RunE: func(c *cobra.Command, args []string) error {
		src, _, err := readSource(args)
		if err != nil {
			return err
		}

		queries, err := graql.ParseQueryList(src)
		if err != nil {
			reportError(err)
			os.Exit(1)
		}

		if checkDebug {
			for _, q := range queries {
				spew.Fdump(os.Stdout, q)
			}
		}

		okStyle.Fprintf(os.Stdout, "ok: %d quer", len(queries))
		if len(queries) == 1 {
			fmt.Println("y")
		} else {
			fmt.Println("ies")
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkDebug, "debug", false, "dump the parsed AST of each query before reporting success")
}

// reportError prints err with its line/column snippet when it carries one
// (a *graql.Error from the lexer or parser), and as a bare message otherwise.
func reportError(err error) {
	if gerr, ok := err.(*graql.Error); ok && gerr.Snippet != "" {
		errorStyle.Fprintf(os.Stderr, "%d:%d: %s\n", gerr.Line, gerr.Col, gerr.Message)
		fmt.Fprintln(os.Stderr, gerr.Snippet)
		return
	}
	errorStyle.Fprintln(os.Stderr, err)
}
