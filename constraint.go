package graql

import "fmt"

// Constraint is the closed sum over the predicate kinds a Statement's head
// variable may carry (§3, "Constraints").
type Constraint interface {
	isConstraint()
	// tag identifies the constraint's exclusivity class: statements may
	// carry at most one constraint per tag listed in singleValuedTags
	// (isa, sub, value-type, regex, id, when, then, abstract, label, value);
	// has/plays/relates/relation/neq may repeat.
	tag() string
}

// Isa constrains the head's type, optionally requiring an exact (non-strict)
// match via `isa!`.
type Isa struct {
	Type  Statement
	Exact bool
}

func (Isa) isConstraint() {}
func (Isa) tag() string   { return "isa" }

// Sub constrains a type's supertype, optionally requiring a direct (`sub!`)
// relationship.
type Sub struct {
	Type   Statement
	Strict bool
}

func (Sub) isConstraint() {}
func (Sub) tag() string   { return "sub" }

// Has attaches an attribute to the head. AttrType is nil when the attribute
// type is inferred from context (rare; normally set by the constructor).
// Value is the attribute side: either a variable reference Statement or an
// anonymous AttributeStatement carrying a Value assignment (§4.3: "has
// shorthand... expands to a Has whose attribute side is an anonymous
// AttributeStatement").
type Has struct {
	AttrType *Label
	Value    Statement
	IsKey    bool
}

func (Has) isConstraint() {}
func (Has) tag() string   { return "has" }

// Plays declares that the head type may play RoleType in some relation.
type Plays struct {
	RoleType Statement
}

func (Plays) isConstraint() {}
func (Plays) tag() string   { return "plays" }

// Relates declares a role type owned by the head relation type, optionally
// overriding a role type from a supertype relation (`relates x as y`).
type Relates struct {
	RoleType   Statement
	Overridden *Statement
}

func (Relates) isConstraint() {}
func (Relates) tag() string   { return "relates" }

// Regex constrains an attribute type's values to match pattern.
type Regex struct {
	Pattern string
}

func (Regex) isConstraint() {}
func (Regex) tag() string   { return "regex" }

// ValueTypeConstraint declares an attribute type's value kind.
type ValueTypeConstraint struct {
	Kind ValueTypeKind
}

func (ValueTypeConstraint) isConstraint() {}
func (ValueTypeConstraint) tag() string   { return "value-type" }

// Abstract marks a type as uninstantiable.
type Abstract struct{}

func (Abstract) isConstraint() {}
func (Abstract) tag() string   { return "abstract" }

// LabelConstraint assigns a type's label (used by `$x type person;`-style
// constructs, §4.3).
type LabelConstraint struct {
	Label Label
}

func (LabelConstraint) isConstraint() {}
func (LabelConstraint) tag() string   { return "label" }

// When is a rule's body pattern, attached to the `sub rule` type statement.
type When struct {
	Pattern Pattern
}

func (When) isConstraint() {}
func (When) tag() string   { return "when" }

// Then is a rule's head statement.
type Then struct {
	Statement Statement
}

func (Then) isConstraint() {}
func (Then) tag() string   { return "then" }

// ValueConstraint wraps a value assignment or comparison attached to an
// AttributeStatement's head (§3, "Value operations").
type ValueConstraint struct {
	Operation ValueOperation
}

func (ValueConstraint) isConstraint() {}
func (ValueConstraint) tag() string   { return "value" }

// RolePlayer is one (role?, player) pair inside a RelationConstraint.
type RolePlayer struct {
	Role   *Statement // nil when the role type was not given explicitly (§4.3)
	Player Statement
}

// RelationConstraint lists the role players of a relation statement.
type RelationConstraint struct {
	RolePlayers []RolePlayer
}

func (RelationConstraint) isConstraint() {}
func (RelationConstraint) tag() string   { return "relation" }

// NeqVar constrains the head to be a different instance from Other.
type NeqVar struct {
	Other *Variable
}

func (NeqVar) isConstraint() {}
func (NeqVar) tag() string   { return "neq" }

// IdConstraint pins the head to a specific, engine-assigned identifier.
type IdConstraint struct {
	Literal string
}

func (IdConstraint) isConstraint() {}
func (IdConstraint) tag() string   { return "id" }

// Label is a type label, optionally scoped by its owning relation type
// (§3, "Scope (of a label)").
type Label struct {
	Name  string
	Scope string
}

func (l Label) String() string {
	if l.Scope != "" {
		return fmt.Sprintf("%s:%s", l.Scope, l.Name)
	}
	return l.Name
}

// singleValuedTags lists the constraint tags a Statement may carry at most
// once (§3, Statements invariant).
var singleValuedTags = map[string]bool{
	"isa": true, "sub": true, "value-type": true, "regex": true, "id": true,
	"when": true, "then": true, "abstract": true, "label": true, "value": true,
}

// ValueOperation is the sub-algebra of §3: an Assignment or a Comparison.
type ValueOperation interface {
	isValueOperation()
	String() string
}

// Assignment sets an attribute's own value.
type Assignment struct {
	Value Value
}

func (Assignment) isValueOperation() {}
func (a Assignment) String() string  { return a.Value.String() }

// Comparison compares the head's value against a literal, variable, or
// string-contains/regex-like pattern.
type Comparison struct {
	Comparator Comparator
	Value      *Value    // set when comparing against a literal
	Variable   *Variable // set when comparing against another variable
	Pattern    string    // set for `like` (regex pattern text)
}

func (Comparison) isValueOperation() {}

func (c Comparison) String() string {
	switch {
	case c.Variable != nil:
		return fmt.Sprintf("%s %s", c.Comparator, c.Variable)
	case c.Comparator == ComparatorLike:
		return fmt.Sprintf("like %s", quoteString(c.Pattern))
	case c.Value != nil:
		return fmt.Sprintf("%s %s", c.Comparator, c.Value)
	}
	return string(c.Comparator)
}
