package graql

import "testing"

func buildLocatedInRule(t *testing.T, whenRoles, thenRoles bool) *Statement {
	t.Helper()
	stmt := NewStatement(StatementType, NewLabel("transitive-location", ""))
	if err := stmt.AddConstraint(Sub{Type: Statement{Head: NewLabel("rule", "")}}); err != nil {
		t.Fatalf("sub rule: unexpected error: %v", err)
	}

	x, y, z := NewNamedConcept("x"), NewNamedConcept("y"), NewNamedConcept("z")
	mkRel := func(a, b *Variable, withRoles bool) *Statement {
		var rps []RolePlayer
		if withRoles {
			rps = []RolePlayer{
				RolePlayerRef("location", Var(a.Name)),
				RolePlayerRef("subordinate", Var(b.Name)),
			}
		} else {
			rps = []RolePlayer{PlayerRef(Var(a.Name)), PlayerRef(Var(b.Name))}
		}
		s := Rel(rps...)
		return s.Isa("located-in")
	}

	when := and([]Pattern{mkRel(x, y, whenRoles), mkRel(y, z, whenRoles)})
	if err := stmt.AddConstraint(When{Pattern: when}); err != nil {
		t.Fatalf("when: unexpected error: %v", err)
	}

	then := mkRel(x, z, thenRoles)
	if err := stmt.AddConstraint(Then{Statement: *then}); err != nil {
		t.Fatalf("then: unexpected error: %v", err)
	}
	return stmt
}

func TestNewRuleAccepsWellFormedRule(t *testing.T) {
	stmt := buildLocatedInRule(t, false, true)
	r, err := NewRule(stmt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Label != "transitive-location" {
		t.Errorf("got label %q, want %q", r.Label, "transitive-location")
	}
}

func TestValidateRuleRejectsImplicitRoleInThen(t *testing.T) {
	stmt := buildLocatedInRule(t, false, false)
	_, err := NewRule(stmt)
	if err == nil {
		t.Fatal("got nil error for a then-clause with implicit roles, want one")
	}
	ge, ok := err.(*Error)
	if !ok || ge.Kind != KindInvalidRule {
		t.Fatalf("got %v, want a KindInvalidRule *Error", err)
	}
	if ge.Reason != "then-implicit-role" {
		t.Errorf("got Reason %q, want %q", ge.Reason, "then-implicit-role")
	}
}

func TestValidateRuleRejectsEmptyWhen(t *testing.T) {
	stmt := NewStatement(StatementType, NewLabel("bad-rule", ""))
	stmt.MustAddConstraint(Sub{Type: Statement{Head: NewLabel("rule", "")}})
	stmt.MustAddConstraint(When{Pattern: &Conjunction{}})
	then := Var("x").Isa("person")
	stmt.MustAddConstraint(Then{Statement: *then})

	_, err := NewRule(stmt)
	if err == nil {
		t.Fatal("got nil error for an empty when-body, want one")
	}
	ge := err.(*Error)
	if ge.Reason != "missing-when" {
		t.Errorf("got Reason %q, want %q", ge.Reason, "missing-when")
	}
}

func TestValidateRuleRejectsNestedNegation(t *testing.T) {
	stmt := NewStatement(StatementType, NewLabel("bad-rule", ""))
	stmt.MustAddConstraint(Sub{Type: Statement{Head: NewLabel("rule", "")}})
	x := Var("x").Isa("person")
	when := not(not(x))
	stmt.MustAddConstraint(When{Pattern: when})
	then := Var("x").Has("flagged", BoolValue(true))
	stmt.MustAddConstraint(Then{Statement: *then})

	_, err := NewRule(stmt)
	if err == nil {
		t.Fatal("got nil error for nested negation, want one")
	}
	ge := err.(*Error)
	if ge.Reason != "nested-negation" {
		t.Errorf("got Reason %q, want %q", ge.Reason, "nested-negation")
	}
}

func TestValidateRuleRejectsUnboundThenVariable(t *testing.T) {
	stmt := NewStatement(StatementType, NewLabel("bad-rule", ""))
	stmt.MustAddConstraint(Sub{Type: Statement{Head: NewLabel("rule", "")}})
	when := Var("x").Isa("person")
	stmt.MustAddConstraint(When{Pattern: when})
	then := Var("y").Has("flagged", BoolValue(true))
	stmt.MustAddConstraint(Then{Statement: *then})

	_, err := NewRule(stmt)
	if err == nil {
		t.Fatal("got nil error for an unbound then-variable, want one")
	}
	ge := err.(*Error)
	if ge.Reason != "then-unbound-variable" {
		t.Errorf("got Reason %q, want %q", ge.Reason, "then-unbound-variable")
	}
}

func TestValidateRuleAcceptsHasShapeThen(t *testing.T) {
	stmt := NewStatement(StatementType, NewLabel("flag-adults", ""))
	stmt.MustAddConstraint(Sub{Type: Statement{Head: NewLabel("rule", "")}})
	when := Var("x").Isa("person")
	stmt.MustAddConstraint(When{Pattern: when})
	then := Var("x").Has("adult", BoolValue(true))
	stmt.MustAddConstraint(Then{Statement: *then})

	if _, err := NewRule(stmt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
