package graql

import "testing"

func TestValidateDispatchesByQueryKind(t *testing.T) {
	x := NewNamedConcept("x")
	y := NewNamedConcept("y")
	stmt := Var(x.Name).Isa("person")

	get, err := Match(stmt).Get(x)
	if err != nil {
		t.Fatalf("unexpected error building the get query: %v", err)
	}

	cases := []struct {
		name    string
		q       Query
		wantErr bool
	}{
		{"get in scope", get, false},
		{"get out of scope", &Get{Match: MatchClause{Patterns: []Pattern{stmt}}, Filter: []*Variable{y}, Offset: -1, Limit: -1}, true},
		{"aggregate wraps get", &Aggregate{Get: &Get{Match: MatchClause{Patterns: []Pattern{stmt}}, Filter: []*Variable{y}, Offset: -1, Limit: -1}, Method: AggregateCount}, true},
		{"group wraps get", &Group{Get: &Get{Match: MatchClause{Patterns: []Pattern{stmt}}, Filter: []*Variable{y}, Offset: -1, Limit: -1}, Variable: x}, true},
		{"group-aggregate wraps group", &GroupAggregate{Group: &Group{Get: &Get{Match: MatchClause{Patterns: []Pattern{stmt}}, Filter: []*Variable{y}, Offset: -1, Limit: -1}, Variable: x}, Method: AggregateCount}, true},
		{"define carries no cross-constraint invariant", &Define{Statements: []*Statement{stmt}}, false},
		{"compute validated via its own table", &Compute{Method: ComputeSum}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := Validate(c.q)
			if (err != nil) != c.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, c.wantErr)
			}
		})
	}
}
