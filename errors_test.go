package graql

import (
	"strings"
	"testing"
)

func TestErrorErrorIncludesMessageWhenSet(t *testing.T) {
	e := &Error{Kind: KindSyntax, Message: "unexpected token"}
	if got, want := e.Error(), "syntax error: unexpected token"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorErrorFallsBackToKindString(t *testing.T) {
	e := &Error{Kind: KindEmptyInput}
	if got, want := e.Error(), "empty input"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorKindString(t *testing.T) {
	cases := []struct {
		k    ErrorKind
		want string
	}{
		{KindSyntax, "syntax error"},
		{KindEmptyInput, "empty input"},
		{KindMultipleQueries, "multiple queries"},
		{KindUnrecognisedToken, "unrecognised token"},
		{KindInvalidRule, "invalid rule"},
		{KindInvalidCompute, "invalid compute query"},
		{KindInvalidDateTimeNanos, "invalid datetime literal"},
		{KindInvalidCasting, "invalid construction"},
	}
	for _, c := range cases {
		t.Run(c.want, func(t *testing.T) {
			if got := c.k.String(); got != c.want {
				t.Errorf("String() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestNewSyntaxErrorCarriesCaretRendering(t *testing.T) {
	err := newSyntaxError("match $x @;", 1, 10, []string{"constraint"}, "unexpected character")
	if err.Kind != KindSyntax {
		t.Errorf("got Kind %v, want KindSyntax", err.Kind)
	}
	if err.Line != 1 || err.Col != 10 {
		t.Errorf("got Line=%d Col=%d, want 1/10", err.Line, err.Col)
	}
	if len(err.Expected) != 1 || err.Expected[0] != "constraint" {
		t.Errorf("got Expected %v, want [constraint]", err.Expected)
	}
	if want := "match $x @;\n         ^"; !strings.Contains(err.Message, want) {
		t.Errorf("got Message %q, want it to contain the caret rendering %q", err.Message, want)
	}
}

func TestNewRuleErrorMessage(t *testing.T) {
	err := newRuleError("my-rule", "missing-when")
	if err.Kind != KindInvalidRule {
		t.Errorf("got Kind %v, want KindInvalidRule", err.Kind)
	}
	if err.Label != "my-rule" || err.Reason != "missing-when" {
		t.Errorf("got Label=%q Reason=%q, want my-rule/missing-when", err.Label, err.Reason)
	}
}
