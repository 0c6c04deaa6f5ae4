package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vishalbelsare/graql/cmd/graql/internal/lint"
)

var lintYAML bool

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Scan directories for query-text files that fail to parse or validate",
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{"."}
		}

		issues, err := lint.Run(args)
		if err != nil {
			return err
		}

		if lintYAML {
			out, err := yaml.Marshal(issues)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
		} else {
			for _, issue := range issues {
				if issue.Line > 0 {
					errorStyle.Printf("%s:%d:%d: %s\n", issue.File, issue.Line, issue.Col, issue.Message)
				} else {
					errorStyle.Printf("%s: %s\n", issue.File, issue.Message)
				}
			}
		}

		if len(issues) > 0 {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	lintCmd.Flags().BoolVar(&lintYAML, "yaml", false, "output issues as YAML instead of text")
}
