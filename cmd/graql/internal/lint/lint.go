// Package lint walks a set of paths looking for query-text files and
// reports every file that fails to parse or structurally validate. It
// follows the teacher corpus's engine-that-returns-a-slice-of-issues shape
// (gnoverse-tlin's lint.Engine / lints.DetectX functions), adapted to
// graql's single ParseQueryList entry point instead of a rule registry,
// since a query-language checker has one rule: "does this parse and
// validate," not a table of independently togglable lint rules.
package lint

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vishalbelsare/graql"
)

// Issue is one file that failed to parse or validate.
type Issue struct {
	File    string `yaml:"file"`
	Message string `yaml:"message"`
	Line    int    `yaml:"line,omitempty"`
	Col     int    `yaml:"col,omitempty"`
}

var (
	filesScanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "graql_lint_files_scanned_total",
		Help: "Number of query-text files lint has scanned.",
	})
	issuesFound = promauto.NewCounter(prometheus.CounterOpts{
		Name: "graql_lint_issues_found_total",
		Help: "Number of files lint found a parse or validation issue in.",
	})
)

// extensions lint treats as query-text files when walking a directory.
var extensions = map[string]bool{
	".graql": true,
	".tql":   true,
	".gql":   true,
}

// Run walks paths (files or directories) and returns one Issue per file
// that failed to parse or validate, sorted by file name for deterministic
// output.
func Run(paths []string) ([]Issue, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.Walk(p, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !fi.IsDir() && extensions[filepath.Ext(path)] {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	var issues []Issue
	for _, f := range files {
		filesScanned.Inc()
		b, err := os.ReadFile(f)
		if err != nil {
			issues = append(issues, Issue{File: f, Message: err.Error()})
			issuesFound.Inc()
			continue
		}
		if _, err := graql.ParseQueryList(string(b)); err != nil {
			issue := Issue{File: f, Message: err.Error()}
			if gerr, ok := err.(*graql.Error); ok {
				issue.Line, issue.Col = gerr.Line, gerr.Col
				issue.Message = gerr.Message
			}
			issues = append(issues, issue)
			issuesFound.Inc()
		}
	}

	sort.Slice(issues, func(i, j int) bool { return issues[i].File < issues[j].File })
	return issues, nil
}
