package graql

import "fmt"

// ErrorKind tags the taxonomy of §7: every error graql returns carries one
// of these, letting callers branch on failure category without parsing
// message text.
type ErrorKind int

const (
	// KindSyntax is a parse failure: unexpected token, missing punctuation,
	// malformed literal. Line/Col/Snippet/Expected are populated when known.
	KindSyntax ErrorKind = iota
	// KindEmptyInput is returned when a query string is empty or contains
	// only whitespace/comments (§7).
	KindEmptyInput
	// KindMultipleQueries is returned when a single-query entry point
	// (ParseQuery) is given input containing more than one query (§7).
	KindMultipleQueries
	// KindUnrecognisedToken is returned for a lexeme that cannot be
	// classified, or a keyword used where the grammar does not allow it.
	KindUnrecognisedToken
	// KindInvalidRule is returned by rule well-formedness validation (§4.4):
	// empty when-body, nested negation, unbound then-variable, and similar.
	KindInvalidRule
	// KindInvalidCompute is returned when a Compute query violates the
	// method/algorithm/argument matrix of §4.7.
	KindInvalidCompute
	// KindInvalidDateTimeNanos is returned when a datetime literal carries
	// sub-millisecond precision (§4.1, §8 S3).
	KindInvalidDateTimeNanos
	// KindInvalidCasting is returned by AST/builder construction APIs that
	// reject a structurally invalid argument: a duplicate single-valued
	// constraint, an or() with fewer than two branches, and similar
	// programmer-facing misuse that has no parse position.
	KindInvalidCasting
)

func (k ErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "syntax error"
	case KindEmptyInput:
		return "empty input"
	case KindMultipleQueries:
		return "multiple queries"
	case KindUnrecognisedToken:
		return "unrecognised token"
	case KindInvalidRule:
		return "invalid rule"
	case KindInvalidCompute:
		return "invalid compute query"
	case KindInvalidDateTimeNanos:
		return "invalid datetime literal"
	case KindInvalidCasting:
		return "invalid construction"
	}
	return "unknown error"
}

// Error is the single error type graql returns from every public entry
// point (parser, constructor, validator, builder, compute). Fields outside
// Kind/Message are populated only for the Kinds that use them; zero values
// are harmless for the rest.
type Error struct {
	Kind    ErrorKind
	Message string

	// KindSyntax
	Line, Col int
	Snippet   string
	Expected  []string

	// KindInvalidRule
	Label  string
	Reason string

	// KindInvalidCompute
	Method  string
	Missing []string
	Allowed []string
	Param   string

	// KindInvalidCasting
	From, To string

	// KindUnrecognisedToken
	Token   string
	Context string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return e.Kind.String()
}

// newSyntaxError builds a KindSyntax error rendered with a caret, matching
// the illegalCharError/parser diagnostic style of §6.3.
func newSyntaxError(source string, line, col int, expected []string, message string) *Error {
	return &Error{
		Kind:     KindSyntax,
		Message:  renderCaret(source, line, col, message),
		Line:     line,
		Col:      col,
		Snippet:  message,
		Expected: expected,
	}
}

func newRuleError(label, reason string) *Error {
	return &Error{
		Kind:    KindInvalidRule,
		Label:   label,
		Reason:  reason,
		Message: fmt.Sprintf("rule %q is invalid: %s", label, reason),
	}
}
