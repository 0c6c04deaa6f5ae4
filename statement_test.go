package graql

import "testing"

func TestStatementAddConstraintRejectsDuplicateSingleValuedTag(t *testing.T) {
	s := NewStatement(StatementThing, NewNamedConcept("x"))
	if err := s.AddConstraint(Isa{Type: *NewStatement(StatementType, NewLabel("person", ""))}); err != nil {
		t.Fatalf("first isa: unexpected error: %v", err)
	}
	err := s.AddConstraint(Isa{Type: *NewStatement(StatementType, NewLabel("animal", ""))})
	if err == nil {
		t.Fatal("got nil error for second isa constraint, want one")
	}
	ge, ok := err.(*Error)
	if !ok {
		t.Fatalf("got error of type %T, want *Error", err)
	}
	if ge.Kind != KindInvalidCasting {
		t.Errorf("got Kind %v, want KindInvalidCasting", ge.Kind)
	}
}

func TestStatementAddConstraintDedupesIdenticalRepeatable(t *testing.T) {
	s := NewStatement(StatementThing, NewNamedConcept("x"))
	name := Label{Name: "name"}
	has := Has{AttrType: &name, Value: *NewStatement(StatementAttribute, NewNamedConcept("n"))}
	if err := s.AddConstraint(has); err != nil {
		t.Fatalf("first has: unexpected error: %v", err)
	}
	if err := s.AddConstraint(has); err != nil {
		t.Fatalf("duplicate has: unexpected error: %v", err)
	}
	if got := len(s.Constraints()); got != 1 {
		t.Errorf("got %d constraints after duplicate has, want 1", got)
	}
}

func TestStatementAddConstraintAllowsDistinctRepeatable(t *testing.T) {
	s := NewStatement(StatementThing, NewNamedConcept("x"))
	age := Label{Name: "age"}
	name := Label{Name: "name"}
	if err := s.AddConstraint(Has{AttrType: &age, Value: *NewStatement(StatementAttribute, NewNamedConcept("a"))}); err != nil {
		t.Fatalf("has age: unexpected error: %v", err)
	}
	if err := s.AddConstraint(Has{AttrType: &name, Value: *NewStatement(StatementAttribute, NewNamedConcept("n"))}); err != nil {
		t.Fatalf("has name: unexpected error: %v", err)
	}
	if got := len(s.Constraints()); got != 2 {
		t.Errorf("got %d constraints, want 2", got)
	}
}

func TestStatementFindAndFindAll(t *testing.T) {
	s := NewStatement(StatementThing, NewNamedConcept("x"))
	age := Label{Name: "age"}
	name := Label{Name: "name"}
	s.MustAddConstraint(Has{AttrType: &age, Value: *NewStatement(StatementAttribute, NewNamedConcept("a"))})
	s.MustAddConstraint(Has{AttrType: &name, Value: *NewStatement(StatementAttribute, NewNamedConcept("n"))})

	if s.Find("isa") != nil {
		t.Error("Find(\"isa\") on a statement with no isa constraint, want nil")
	}
	if got := len(s.FindAll("has")); got != 2 {
		t.Errorf("FindAll(\"has\") returned %d constraints, want 2", got)
	}
}

func TestNewStatementSubstitutesAnonymousHead(t *testing.T) {
	s := NewStatement(StatementThing, nil)
	if s.Head == nil || !s.Head.IsAnonymous() {
		t.Errorf("got head %v, want a fresh anonymous variable", s.Head)
	}
}

func TestStatementNamedVariables(t *testing.T) {
	x := NewNamedConcept("x")
	s := NewStatement(StatementThing, x)
	name := Label{Name: "name"}
	n := NewNamedConcept("n")
	s.MustAddConstraint(Has{AttrType: &name, Value: *NewStatement(StatementAttribute, n)})

	vars := s.NamedVariables()
	if _, ok := vars["$x"]; !ok {
		t.Error("NamedVariables() missing head variable $x")
	}
	if _, ok := vars["$n"]; !ok {
		t.Error("NamedVariables() missing nested variable $n")
	}
	if len(vars) != 2 {
		t.Errorf("NamedVariables() returned %d entries, want 2: %v", len(vars), vars)
	}
}

func TestStatementNamedVariablesExcludesAnonymousAndLabels(t *testing.T) {
	s := NewStatement(StatementThing, NewAnonymous())
	s.MustAddConstraint(Isa{Type: *NewStatement(StatementType, NewLabel("person", ""))})
	if got := len(s.NamedVariables()); got != 0 {
		t.Errorf("NamedVariables() returned %d entries, want 0", got)
	}
}
