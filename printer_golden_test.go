package graql

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TestPrintCanonicalFormGolden pins the exact canonical rendering of a
// handful of representative queries against fixtures in testdata/golden, so
// an accidental change to the printer's layout shows up as a diff instead of
// a silent reformat. Run with -update to regenerate fixtures after a
// deliberate printer change.
func TestPrintCanonicalFormGolden(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"match_get_person", `match $x isa person; get $x;`},
		{"define_person_schema", `define name sub attribute, value string;`},
		{"compute_centrality_kcore", `compute centrality of person using k-core where min-k=3;`},
	}

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			q, err := ParseQuery(c.src)
			if err != nil {
				t.Fatalf("ParseQuery(%q): unexpected error: %v", c.src, err)
			}
			g.Assert(t, c.name, []byte(Print(q, true)))
		})
	}
}
