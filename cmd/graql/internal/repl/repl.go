// Package repl implements an interactive prompt for typing query text and
// seeing it parsed, validated, and printed back in canonical form one
// query at a time. It's grounded on go-prompt's standard executor/completer
// API; the teacher's own go-prompt usage (promq/term) drives go-prompt
// through a tcell terminal-UI bridge meant for a full-screen chart viewer,
// which this line-oriented REPL has no use for, so this package talks to
// go-prompt directly the way its own documentation does.
package repl

import (
	"context"
	"fmt"
	"strings"

	prompt "github.com/c-bata/go-prompt"

	"github.com/vishalbelsare/graql"
	glog "github.com/vishalbelsare/graql/internal/glog"
)

const promptPrefix = "graql> "

var keywords = []string{
	"match", "get", "insert", "delete", "define", "undefine", "compute",
	"isa", "isa!", "sub", "sub!", "has", "key", "plays", "relates", "as",
	"regex", "value", "abstract", "type", "when", "then", "not", "or",
	"sort", "offset", "limit", "group", "count", "sum", "max", "min",
	"mean", "median", "std", "path", "centrality", "cluster", "using",
	"where", "of", "from", "to", "in",
}

// Run starts the interactive prompt and blocks until the user exits
// (Ctrl-D). ctx should carry a session ID via glog.WithSessionID so log
// output from one run can be told apart from another.
func Run(ctx context.Context) {
	fmt.Println("graql interactive session. Type a query ending in `;` and press enter. Ctrl-D to exit.")
	p := prompt.New(
		executor(ctx),
		completer,
		prompt.OptionPrefix(promptPrefix),
		prompt.OptionTitle("graql"),
	)
	p.Run()
}

func executor(ctx context.Context) func(string) {
	return func(line string) {
		line = strings.TrimSpace(line)
		if line == "" {
			return
		}
		q, err := graql.ParseQuery(line)
		if err != nil {
			glog.Error(ctx, err, "parse query")
			fmt.Println(err)
			return
		}
		fmt.Println(graql.Print(q, true))
	}
}

func completer(d prompt.Document) []prompt.Suggest {
	word := d.GetWordBeforeCursor()
	if word == "" {
		return nil
	}
	var suggestions []prompt.Suggest
	for _, kw := range keywords {
		suggestions = append(suggestions, prompt.Suggest{Text: kw})
	}
	return prompt.FilterHasPrefix(suggestions, word, true)
}
