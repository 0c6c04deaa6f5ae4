package graql

// Pattern is the recursive sum of §3: Conjunction, Disjunction, Negation, or
// a bare Statement. Patterns have no structural equality method; Go's
// built-in == compares pointer identity at most, because the
// implementations hold slices.
type Pattern interface {
	isPattern()
	// NamedVariables returns the set of named concept/value variables
	// reachable in this pattern, used by rule-body scoping (§4.4) and get
	// filter validation.
	NamedVariables() map[string]*Variable
}

// Conjunction is a pattern requiring every sub-pattern to hold. and()
// collapses a single-pattern conjunction to its sole member rather than
// constructing one (§4.6); an empty `{ }` block parses to a Conjunction
// with no members.
type Conjunction struct {
	Patterns []Pattern
}

func (*Conjunction) isPattern() {}

func (c *Conjunction) NamedVariables() map[string]*Variable {
	out := map[string]*Variable{}
	for _, p := range c.Patterns {
		mergeVars(out, p.NamedVariables())
	}
	return out
}

// Disjunction is a pattern requiring at least one branch to hold. Per §3 it
// must have at least two branches.
type Disjunction struct {
	Branches []Pattern
}

func (*Disjunction) isPattern() {}

func (d *Disjunction) NamedVariables() map[string]*Variable {
	out := map[string]*Variable{}
	for _, p := range d.Branches {
		mergeVars(out, p.NamedVariables())
	}
	return out
}

// Negation wraps a single pattern that must not hold.
type Negation struct {
	Pattern Pattern
}

func (*Negation) isPattern() {}

func (n *Negation) NamedVariables() map[string]*Variable {
	return n.Pattern.NamedVariables()
}

// and builds a Conjunction from ps, collapsing a single-element slice to its
// sole member (§4.6).
func and(ps []Pattern) Pattern {
	if len(ps) == 1 {
		return ps[0]
	}
	return &Conjunction{Patterns: ps}
}

// or builds a Disjunction from ps. ps must have at least two elements;
// callers (parser, builder) are responsible for wrapping any branch with
// more than one statement as a Conjunction first.
func or(ps []Pattern) (*Disjunction, error) {
	if len(ps) < 2 {
		return nil, &Error{Kind: KindInvalidCasting, Message: "or() requires at least two branches"}
	}
	return &Disjunction{Branches: ps}, nil
}

// not wraps p in a Negation as given; it does not restructure p.
func not(p Pattern) *Negation {
	return &Negation{Pattern: p}
}

func mergeVars(dst, src map[string]*Variable) {
	for k, v := range src {
		dst[k] = v
	}
}

// containsNegation reports whether p contains a Negation anywhere beneath it
// without the caller having already crossed one; used by the rule-body
// well-formedness check (§4.4, §4.6: "no negation may appear nested inside
// another negation").
func containsNegation(p Pattern) bool {
	switch n := p.(type) {
	case *Negation:
		return true
	case *Conjunction:
		for _, sub := range n.Patterns {
			if containsNegation(sub) {
				return true
			}
		}
	case *Disjunction:
		for _, sub := range n.Branches {
			if containsNegation(sub) {
				return true
			}
		}
	}
	return false
}

// hasNestedNegation reports whether a Negation pattern appears inside
// another Negation anywhere in p (§4.4 rule validity).
func hasNestedNegation(p Pattern) bool {
	switch n := p.(type) {
	case *Negation:
		return containsNegation(n.Pattern)
	case *Conjunction:
		for _, sub := range n.Patterns {
			if hasNestedNegation(sub) {
				return true
			}
		}
	case *Disjunction:
		for _, sub := range n.Branches {
			if hasNestedNegation(sub) {
				return true
			}
		}
	}
	return false
}

func describePattern(p Pattern) string {
	switch p.(type) {
	case *Conjunction:
		return "conjunction"
	case *Disjunction:
		return "disjunction"
	case *Negation:
		return "negation"
	case *Statement:
		return "statement"
	}
	return "pattern"
}
