package graql

import "testing"

func TestParseQueryEmptyInput(t *testing.T) {
	_, err := ParseQuery("   \n  ")
	if err == nil {
		t.Fatal("got nil error for blank input, want one")
	}
	ge, ok := err.(*Error)
	if !ok || ge.Kind != KindEmptyInput {
		t.Fatalf("got %v, want a KindEmptyInput *Error", err)
	}
}

func TestParseQueryRejectsMultipleQueries(t *testing.T) {
	src := `match $x isa person; get; match $y isa person; get;`
	_, err := ParseQuery(src)
	if err == nil {
		t.Fatal("got nil error for multi-query input, want one")
	}
	ge, ok := err.(*Error)
	if !ok || ge.Kind != KindMultipleQueries {
		t.Fatalf("got %v, want a KindMultipleQueries *Error", err)
	}
}

func TestParseQueryListCounts(t *testing.T) {
	src := `match $x isa person; get; match $y isa person; get;`
	queries, err := ParseQueryList(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(queries) != 2 {
		t.Fatalf("got %d queries, want 2", len(queries))
	}
}

func TestParseMatchGet(t *testing.T) {
	q, err := ParseQuery(`match $x isa person; get $x;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	get, ok := q.(*Get)
	if !ok {
		t.Fatalf("got %T, want *Get", q)
	}
	if len(get.Filter) != 1 || get.Filter[0].Name != "x" {
		t.Errorf("got filter %v, want [$x]", get.Filter)
	}
}

func TestParseGetWithSortOffsetLimit(t *testing.T) {
	q, err := ParseQuery(`match $x isa person; get $x; sort $x asc; offset 5; limit 10;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	get := q.(*Get)
	if get.Sort == nil || get.Sort.Order != OrderAsc {
		t.Errorf("got sort %v, want asc on $x", get.Sort)
	}
	if get.Offset != 5 {
		t.Errorf("got offset %d, want 5", get.Offset)
	}
	if get.Limit != 10 {
		t.Errorf("got limit %d, want 10", get.Limit)
	}
}

func TestParseGetRejectsOutOfScopeSortVariable(t *testing.T) {
	_, err := ParseQuery(`match $x isa person; $y isa dog; get $x; sort $y;`)
	if err == nil {
		t.Fatal("got nil error for sort variable outside the filter, want one")
	}
}

func TestParseInsertAndDefine(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"bare insert", `insert $x isa person, has name "Alice";`},
		{"define", `define person sub entity, has name;`},
		{"undefine", `undefine person sub entity;`},
		{"match insert", `match $x isa person; insert $x has name "Bob";`},
		{"match delete", `match $x isa person; delete $x isa person;`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := ParseQuery(c.src); err != nil {
				t.Fatalf("ParseQuery(%q): unexpected error: %v", c.src, err)
			}
		})
	}
}

func TestParseRelationAndRolePlayers(t *testing.T) {
	q, err := ParseQuery(`match $m (spouse: $x, spouse: $y) isa marriage; get;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	get := q.(*Get)
	stmt := get.Match.Patterns[0].(*Statement)
	rel := stmt.Find("relation").(RelationConstraint)
	if len(rel.RolePlayers) != 2 {
		t.Fatalf("got %d role players, want 2", len(rel.RolePlayers))
	}
	if rel.RolePlayers[0].Role == nil {
		t.Error("got a nil role on the first role player, want an explicit \"spouse\" role")
	}
}

func TestParseDisjunctionAndNegation(t *testing.T) {
	src := `match { $x isa person; } or { $x isa company; }; not { $x isa deleted; }; get;`
	q, err := ParseQuery(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	get := q.(*Get)
	if len(get.Match.Patterns) != 2 {
		t.Fatalf("got %d top-level patterns, want 2", len(get.Match.Patterns))
	}
	if _, ok := get.Match.Patterns[0].(*Disjunction); !ok {
		t.Errorf("got %T for first pattern, want *Disjunction", get.Match.Patterns[0])
	}
	if _, ok := get.Match.Patterns[1].(*Negation); !ok {
		t.Errorf("got %T for second pattern, want *Negation", get.Match.Patterns[1])
	}
}

func TestParseAggregateAndGroup(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"count", `match $x isa person; get $x; count;`, "get-aggregate"},
		{"group", `match $x isa person; get $x; group $x;`, "get-group"},
		{"group count", `match $x isa person; get $x; group $x; count;`, "get-group-aggregate"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			q, err := ParseQuery(c.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := q.Kind(); got != c.want {
				t.Errorf("got Kind() %q, want %q", got, c.want)
			}
		})
	}
}

func TestParseComputeQueries(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"count", `compute count in [person, company];`},
		{"sum of", `compute sum of age;`},
		{"path", `compute path from "V123" to "V456";`},
		{"centrality default algorithm", `compute centrality of person;`},
		{"centrality k-core with where", `compute centrality of person using k-core where min-k=3;`},
		{"cluster default algorithm", `compute cluster in person;`},
		{"cluster with commas between conditions", `compute cluster in [movie, person], using k-core, where [k = 5, k = 10];`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := ParseQuery(c.src); err != nil {
				t.Fatalf("ParseQuery(%q): unexpected error: %v", c.src, err)
			}
		})
	}
}

// TestParseComputeCommaSeparatedConditionsLastWriteWins covers §8's S6: a
// comma between compute conditions is real grammar, and repeating a `where`
// parameter keeps the last value written.
func TestParseComputeCommaSeparatedConditionsLastWriteWins(t *testing.T) {
	q, err := ParseQuery(`compute cluster in [movie, person], using k-core, where [k = 5, k = 10];`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, ok := q.(*Compute)
	if !ok {
		t.Fatalf("got %T, want *Compute", q)
	}
	if c.Algorithm != AlgorithmKCore {
		t.Errorf("got Algorithm %q, want %q", c.Algorithm, AlgorithmKCore)
	}
	if len(c.In) != 2 || c.In[0].Name != "movie" || c.In[1].Name != "person" {
		t.Errorf("got In %v, want [movie, person]", c.In)
	}
	v, ok := c.Args.Get(ParamK)
	if !ok || v != "10" {
		t.Errorf("got k=%q, ok=%v, want \"10\" (last write wins)", v, ok)
	}
}

func TestParseComputeRejectsMissingCondition(t *testing.T) {
	_, err := ParseQuery(`compute sum;`)
	if err == nil {
		t.Fatal("got nil error for compute sum with no `of`, want one")
	}
	ge, ok := err.(*Error)
	if !ok || ge.Kind != KindInvalidCompute {
		t.Fatalf("got %v, want a KindInvalidCompute *Error", err)
	}
}

func TestParseValuePredicatesAndComparators(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"eq", `match $x == 5; get;`},
		{"neq literal", `match $x !== 5; get;`},
		{"neq variable", `match $x !== $y; get;`},
		{"contains", `match $x contains "abc"; get;`},
		{"like", `match $x like "^[a-z]+$"; get;`},
		{"bare eq sign", `match $x = 5; get;`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := ParseQuery(c.src); err != nil {
				t.Fatalf("ParseQuery(%q): unexpected error: %v", c.src, err)
			}
		})
	}
}

func TestParseRuleDefinition(t *testing.T) {
	src := `define transitive-location sub rule, when { (location: $x, subordinate: $y) isa located-in; (location: $y, subordinate: $z) isa located-in; }, then { (location: $x, subordinate: $z) isa located-in; };`
	q, err := ParseQuery(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := q.(*Define)
	if len(def.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(def.Statements))
	}
	if _, err := NewRule(def.Statements[0]); err != nil {
		t.Fatalf("NewRule: unexpected error: %v", err)
	}
}

func TestParseSyntaxErrorCarriesPosition(t *testing.T) {
	_, err := ParseQuery("match $x isa ; get;")
	if err == nil {
		t.Fatal("got nil error for malformed isa, want one")
	}
	ge, ok := err.(*Error)
	if !ok {
		t.Fatalf("got error of type %T, want *Error", err)
	}
	if ge.Kind != KindSyntax {
		t.Errorf("got Kind %v, want KindSyntax", ge.Kind)
	}
	if ge.Line == 0 {
		t.Error("got Line 0, want a populated line number")
	}
}
