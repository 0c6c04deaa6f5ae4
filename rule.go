package graql

// Rule is the convenience view over a Define'd type statement carrying a
// `when`/`then` pair (§4.4, GLOSSARY "Rule"). It is not a distinct AST
// variant — the spec models a rule as a TypeStatement whose constraints
// include a When and a Then — but validation and the builder both need a
// named, pre-checked shape to operate on.
type Rule struct {
	Label string
	When  Pattern
	Then  *Statement
}

// NewRule extracts and validates the Rule embedded in stmt, which must be a
// TypeStatement carrying a Sub (to "rule"), a When and a Then (§4.4). It is
// the single choke point both the parser (for each define statement that
// carries a when or then) and the builder's rule(...).when(...).then(...)
// chain pass through.
func NewRule(stmt *Statement) (*Rule, error) {
	if stmt.Variant != StatementType {
		return nil, &Error{Kind: KindInvalidCasting, From: "statement", To: "rule", Message: "a rule must be declared as a type statement"}
	}
	if sub, ok := stmt.Find("sub").(Sub); !ok || sub.Type.Head == nil || sub.Type.Head.Kind != VarLabel || sub.Type.Head.Label != string(KeywordRule) {
		return nil, &Error{Kind: KindInvalidCasting, From: "statement", To: "rule", Message: "a rule must be declared with `sub rule`"}
	}
	label := ""
	if stmt.Head != nil && stmt.Head.Kind == VarLabel {
		label = stmt.Head.Label
	}
	whenC, ok := stmt.Find("when").(When)
	if !ok {
		return nil, newRuleError(label, "missing-when")
	}
	thenC, ok := stmt.Find("then").(Then)
	if !ok {
		return nil, newRuleError(label, "bad-then-shape")
	}
	r := &Rule{Label: label, When: whenC.Pattern, Then: &thenC.Statement}
	if err := ValidateRule(r); err != nil {
		return nil, err
	}
	return r, nil
}

// ValidateRule runs every §4.4 rule well-formedness check against r,
// returning the first violation as an *Error of Kind KindInvalidRule.
func ValidateRule(r *Rule) error {
	if isEmptyConjunction(r.When) {
		return newRuleError(r.Label, "missing-when")
	}
	if hasNestedNegation(r.When) {
		return newRuleError(r.Label, "nested-negation")
	}
	if r.Then.Variant != StatementThing && r.Then.Variant != StatementRelation && r.Then.Variant != StatementAttribute {
		return newRuleError(r.Label, "bad-then-shape")
	}

	has := r.Then.Find("has")
	isa := r.Then.Find("isa")
	relation := r.Then.Find("relation")

	switch {
	case has != nil:
		if len(r.Then.Constraints()) != 1 {
			return newRuleError(r.Label, "bad-then-shape")
		}
		hasConstraint := has.(Has)
		if hasConstraint.AttrType != nil && hasConstraint.Value.Head != nil &&
			hasConstraint.Value.Head.Kind == VarNamedConcept {
			return newRuleError(r.Label, "then-has-variable-shape")
		}
	case isa != nil && relation != nil:
		if len(r.Then.Constraints()) != 2 {
			return newRuleError(r.Label, "bad-then-shape")
		}
		rel := relation.(RelationConstraint)
		for _, rp := range rel.RolePlayers {
			if rp.Role == nil {
				return newRuleError(r.Label, "then-implicit-role")
			}
		}
		if r.Then.Head != nil && r.Then.Head.Kind == VarNamedConcept {
			return newRuleError(r.Label, "then-named-relation")
		}
	default:
		return newRuleError(r.Label, "bad-then-shape")
	}

	whenVars := r.When.NamedVariables()
	for key := range thenNamedVariables(r.Then) {
		if _, ok := whenVars[key]; !ok {
			return newRuleError(r.Label, "then-unbound-variable")
		}
	}
	return nil
}

func thenNamedVariables(s *Statement) map[string]*Variable {
	out := map[string]*Variable{}
	addNamed(out, s.Head)
	for _, c := range s.constraints {
		collectConstraintVars(out, c)
	}
	return out
}

func isEmptyConjunction(p Pattern) bool {
	if p == nil {
		return true
	}
	if c, ok := p.(*Conjunction); ok {
		return len(c.Patterns) == 0
	}
	return false
}
