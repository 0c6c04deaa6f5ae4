package graql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintRoundTrip(t *testing.T) {
	cases := []string{
		`match $x isa person; get $x;`,
		`match $x isa person; $x has name "Alice"; get;`,
		`match $m (spouse: $x, spouse: $y) isa marriage; get $x, $y;`,
		`match { $x isa person; } or { $x isa company; }; get;`,
		`match $x isa person; not { $x has deleted true; }; get;`,
		`insert $x isa person, has name "Bob";`,
		`define name sub attribute, value string;`,
		`compute count in person;`,
		`compute centrality of person using k-core where min-k=3;`,
		`compute cluster in [movie, person], using k-core, where [k = 5, k = 10];`,
		`match $x !== $y; get;`,
		`match $x isa person; get $x; group $x; count;`,
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			q1, err := ParseQuery(src)
			require.NoError(t, err, "ParseQuery(%q)", src)

			printed := Print(q1, true)
			q2, err := ParseQuery(printed)
			require.NoErrorf(t, err, "re-parsing printed output %q", printed)

			assert.Equal(t, printed, Print(q2, true), "round trip unstable")
		})
	}
}

func TestPrintIsDeterministic(t *testing.T) {
	q, err := ParseQuery(`match $x isa person; get $x;`)
	require.NoError(t, err)
	assert.Equal(t, Print(q, true), Print(q, true))
}

func TestPrintCompactStripsNewlines(t *testing.T) {
	q, err := ParseQuery(`match $x isa person; get $x;`)
	require.NoError(t, err)

	compactForm := Print(q, false)
	assert.NotContains(t, compactForm, "\n")

	q2, err := ParseQuery(compactForm)
	require.NoErrorf(t, err, "re-parsing compact output %q", compactForm)
	assert.Equal(t, Print(q, true), Print(q2, true), "compact form did not round-trip to an equivalent AST")
}

func TestQuoteStringAlwaysDoubleQuoted(t *testing.T) {
	q, err := ParseQuery(`insert $x isa person, has name 'Alice';`)
	require.NoError(t, err)
	assert.Contains(t, Print(q, true), `"Alice"`)
}
