package graql

import "fmt"

// StatementVariant tags the four statement shapes of §3.
type StatementVariant int

const (
	StatementType StatementVariant = iota
	StatementThing
	StatementRelation
	StatementAttribute
)

// Statement binds a head variable to an ordered, deduplicated collection of
// constraints (§3). Constraints on a statement are mutually compatible: at
// most one of each tag in singleValuedTags may be present; AddConstraint
// enforces this at construction time so every Statement value that exists is
// already well-formed.
type Statement struct {
	Variant     StatementVariant
	Head        *Variable
	constraints []Constraint
}

func (Statement) isPattern() {}

// NewStatement returns an empty statement of the given variant bound to
// head. If head is nil, a fresh anonymous variable is substituted (§4.3:
// "statement heads that omit an explicit variable receive a fresh anonymous
// head").
func NewStatement(variant StatementVariant, head *Variable) *Statement {
	if head == nil {
		head = NewAnonymous()
	}
	return &Statement{Variant: variant, Head: head}
}

// Constraints returns the statement's constraints in insertion order.
func (s *Statement) Constraints() []Constraint {
	return append([]Constraint(nil), s.constraints...)
}

// AddConstraint appends c to s, rejecting a second constraint sharing a tag
// that must be unique, and deduplicating structurally-equal repeatable
// constraints (has/plays/relates/neqvar may repeat but not with identical
// content).
func (s *Statement) AddConstraint(c Constraint) error {
	tag := c.tag()
	if singleValuedTags[tag] {
		for _, existing := range s.constraints {
			if existing.tag() == tag {
				return &Error{Kind: KindInvalidCasting, Message: fmt.Sprintf("statement already has a %q constraint", tag)}
			}
		}
	}
	for _, existing := range s.constraints {
		if constraintsEqual(existing, c) {
			return nil // silently dedupe identical repeatable constraints
		}
	}
	s.constraints = append(s.constraints, c)
	return nil
}

// MustAddConstraint is AddConstraint that panics on error. The builder's
// constraint methods use it: a constraint rejected there (a second `isa`,
// say) is a caller bug rather than bad query text, so it is not returned
// as an error.
func (s *Statement) MustAddConstraint(c Constraint) *Statement {
	if err := s.AddConstraint(c); err != nil {
		panic(err)
	}
	return s
}

func constraintsEqual(a, b Constraint) bool {
	if a.tag() != b.tag() {
		return false
	}
	// Structural equality is approximated by comparing printed form; this
	// is sufficient for dedup because the printer is canonical (§4.5).
	return printConstraint(a) == printConstraint(b)
}

// Find returns the first constraint with the given tag, or nil.
func (s *Statement) Find(tag string) Constraint {
	for _, c := range s.constraints {
		if c.tag() == tag {
			return c
		}
	}
	return nil
}

// FindAll returns every constraint with the given tag, in order.
func (s *Statement) FindAll(tag string) []Constraint {
	var out []Constraint
	for _, c := range s.constraints {
		if c.tag() == tag {
			out = append(out, c)
		}
	}
	return out
}

// NamedVariables implements Pattern: the head (if named) plus every named
// variable reachable through the statement's constraints.
func (s *Statement) NamedVariables() map[string]*Variable {
	out := map[string]*Variable{}
	addNamed(out, s.Head)
	for _, c := range s.constraints {
		collectConstraintVars(out, c)
	}
	return out
}

func addNamed(dst map[string]*Variable, v *Variable) {
	if v == nil || v.IsAnonymous() || v.Kind == VarLabel {
		return
	}
	dst[namedKey(v)] = v
}

// namedKey distinguishes a concept variable from a value variable sharing a
// name, matching §3's "a named concept variable and a named value variable
// with the same name are NOT equal".
func namedKey(v *Variable) string {
	switch v.Kind {
	case VarNamedValue:
		return "?" + v.Name
	default:
		return "$" + v.Name
	}
}

func collectConstraintVars(dst map[string]*Variable, c Constraint) {
	switch k := c.(type) {
	case Isa:
		collectStatementVars(dst, k.Type)
	case Sub:
		collectStatementVars(dst, k.Type)
	case Has:
		collectStatementVars(dst, k.Value)
	case Plays:
		collectStatementVars(dst, k.RoleType)
	case Relates:
		collectStatementVars(dst, k.RoleType)
		if k.Overridden != nil {
			collectStatementVars(dst, *k.Overridden)
		}
	case When:
		mergeVars(dst, k.Pattern.NamedVariables())
	case Then:
		collectStatementVars(dst, k.Statement)
	case ValueConstraint:
		if cmp, ok := k.Operation.(Comparison); ok && cmp.Variable != nil {
			addNamed(dst, cmp.Variable)
		}
	case RelationConstraint:
		for _, rp := range k.RolePlayers {
			if rp.Role != nil {
				collectStatementVars(dst, *rp.Role)
			}
			collectStatementVars(dst, rp.Player)
		}
	case NeqVar:
		addNamed(dst, k.Other)
	}
}

func collectStatementVars(dst map[string]*Variable, s Statement) {
	addNamed(dst, s.Head)
	for _, c := range s.constraints {
		collectConstraintVars(dst, c)
	}
}
