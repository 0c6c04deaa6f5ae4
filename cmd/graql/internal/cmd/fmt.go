package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vishalbelsare/graql"
)

var (
	fmtCompact bool
	fmtWrite   bool
)

var errorStyle = color.New(color.FgRed, color.Bold)

var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Parse query text and print it back in canonical form",
	RunE: func(c *cobra.Command, args []string) error {
		src, path, err := readSource(args)
		if err != nil {
			return err
		}

		queries, err := graql.ParseQueryList(src)
		if err != nil {
			reportError(err)
			os.Exit(1)
		}

		var out string
		for _, q := range queries {
			out += graql.Print(q, !fmtCompact) + "\n"
		}

		if fmtWrite && path != "" {
			return os.WriteFile(path, []byte(out), 0o644)
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	fmtCmd.Flags().BoolVar(&fmtCompact, "compact", false, "print in compact (single-line) form instead of pretty form")
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write the formatted result back to the input file instead of stdout")
}

// readSource reads query text from args[0], or from stdin if no path was
// given. It returns the empty path when the source came from stdin, since
// there is then nowhere for --write to write back to.
func readSource(args []string) (text string, path string, err error) {
	if len(args) == 0 {
		b, err := io.ReadAll(os.Stdin)
		return string(b), "", err
	}
	path = args[0]
	b, err := os.ReadFile(path)
	return string(b), path, err
}
