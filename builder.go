package graql

import (
	"fmt"
	"sort"

	"github.com/vishalbelsare/graql/internal/checked"
	"github.com/vishalbelsare/graql/internal/strutil"
)

// This file is the programmatic builder surface of §4.8/§6.1: a host
// assembles queries from Go values instead of text. Every builder step
// that crosses a validation boundary (a rule's `.Then`, a compute query's
// `.Build`, a match's `.Get`) runs the matching §4.4 check and returns an
// error instead of a partially-valid value. Per-statement constraint
// builders (Statement.Isa, .Has, ...) reject only structurally impossible
// combinations already caught by AddConstraint (a second `isa`, for
// instance) and panic, the same class of misuse a nil map write panics on:
// there is no recoverable caller state to hand back at that granularity.

// Var returns a fresh ThingStatement headed by a named concept variable.
func Var(name string) *Statement {
	return NewStatement(StatementThing, NewNamedConcept(name))
}

// ValueVar returns a fresh AttributeStatement headed by a named value
// variable (§3, "NamedValue").
func ValueVar(name string) *Statement {
	return NewStatement(StatementAttribute, NewNamedValue(name))
}

// AnonymousVar returns a fresh statement headed by a fresh anonymous
// variable.
func AnonymousVar() *Statement {
	return NewStatement(StatementThing, NewAnonymous())
}

// TypeRef returns a fresh TypeStatement headed by label.
func TypeRef(label string) *Statement {
	return NewStatement(StatementType, NewLabel(label, ""))
}

// ScopedTypeRef returns a fresh TypeStatement headed by a scoped label
// (e.g. "marriage:spouse", GLOSSARY "Scope").
func ScopedTypeRef(scope, label string) *Statement {
	return NewStatement(StatementType, NewLabel(label, scope))
}

// Rel returns a fresh RelationStatement with the given role players.
func Rel(players ...RolePlayer) *Statement {
	s := NewStatement(StatementRelation, NewAnonymous())
	s.MustAddConstraint(RelationConstraint{RolePlayers: players})
	return s
}

// RolePlayerRef pairs an explicit role label with a player statement, for
// use with Rel.
func RolePlayerRef(role string, player *Statement) RolePlayer {
	roleStmt := Statement{Head: NewLabel(role, "")}
	return RolePlayer{Role: &roleStmt, Player: *player}
}

// PlayerRef is a role player with no explicit role type (§4.3: the role
// slot is left for the downstream engine to resolve).
func PlayerRef(player *Statement) RolePlayer {
	return RolePlayer{Player: *player}
}

// Isa attaches an Isa constraint referencing the given type label.
func (s *Statement) Isa(typeLabel string) *Statement {
	s.MustAddConstraint(Isa{Type: Statement{Head: NewLabel(typeLabel, "")}})
	return s
}

// IsaVar attaches an Isa constraint referencing a type bound to a variable.
func (s *Statement) IsaVar(v *Variable) *Statement {
	s.MustAddConstraint(Isa{Type: Statement{Head: v}})
	return s
}

// IsaExact attaches an exact (`isa!`) Isa constraint.
func (s *Statement) IsaExact(typeLabel string) *Statement {
	s.MustAddConstraint(Isa{Type: Statement{Head: NewLabel(typeLabel, "")}, Exact: true})
	return s
}

// Sub attaches a Sub constraint referencing the given supertype label.
func (s *Statement) Sub(typeLabel string) *Statement {
	s.MustAddConstraint(Sub{Type: Statement{Head: NewLabel(typeLabel, "")}})
	return s
}

// SubExact attaches a strict (`sub!`) Sub constraint.
func (s *Statement) SubExact(typeLabel string) *Statement {
	s.MustAddConstraint(Sub{Type: Statement{Head: NewLabel(typeLabel, "")}, Strict: true})
	return s
}

// Has attaches a Has constraint carrying an inline attribute value (the
// `has <label> <value>` shorthand of §4.3).
func (s *Statement) Has(label string, value Value) *Statement {
	s.MustAddConstraint(expandHasShorthand(Label{Name: label}, value, false))
	return s
}

// HasVar attaches a Has constraint referencing an already-bound attribute
// variable.
func (s *Statement) HasVar(label string, v *Variable) *Statement {
	s.MustAddConstraint(expandHasVariable(Label{Name: label}, v, false))
	return s
}

// Key attaches a Has constraint with its isKey flag set.
func (s *Statement) Key(label string, value Value) *Statement {
	s.MustAddConstraint(expandHasShorthand(Label{Name: label}, value, true))
	return s
}

// Plays attaches a Plays constraint referencing the given role label.
func (s *Statement) Plays(roleLabel string) *Statement {
	s.MustAddConstraint(Plays{RoleType: Statement{Head: NewLabel(roleLabel, "")}})
	return s
}

// Relates attaches a Relates constraint for the given role label.
func (s *Statement) Relates(roleLabel string) *Statement {
	s.MustAddConstraint(Relates{RoleType: Statement{Head: NewLabel(roleLabel, "")}})
	return s
}

// RelatesAs attaches a Relates constraint overriding an inherited role.
func (s *Statement) RelatesAs(roleLabel, overriddenLabel string) *Statement {
	overridden := Statement{Head: NewLabel(overriddenLabel, "")}
	s.MustAddConstraint(Relates{RoleType: Statement{Head: NewLabel(roleLabel, "")}, Overridden: &overridden})
	return s
}

// RegexConstraint attaches a Regex constraint.
func (s *Statement) RegexConstraint(pattern string) *Statement {
	s.MustAddConstraint(Regex{Pattern: pattern})
	return s
}

// ValueType attaches a ValueTypeConstraint.
func (s *Statement) ValueType(kind ValueTypeKind) *Statement {
	s.MustAddConstraint(ValueTypeConstraint{Kind: kind})
	return s
}

// Abstract attaches an Abstract constraint.
func (s *Statement) Abstract() *Statement {
	s.MustAddConstraint(Abstract{})
	return s
}

// IdConstraintRef attaches an IdConstraint.
func (s *Statement) IdConstraintRef(literal string) *Statement {
	s.MustAddConstraint(IdConstraint{Literal: literal})
	return s
}

// NeqVarConstraint attaches a NeqVar constraint.
func (s *Statement) NeqVarConstraint(other *Variable) *Statement {
	s.MustAddConstraint(NeqVar{Other: other})
	return s
}

// ValuePredicate attaches a ValueConstraint built from op directly to s's
// head (used for attribute instance statements, e.g. ValueVar("p").
// ValuePredicate(Eq(StringValue("Alice")))).
func (s *Statement) ValuePredicate(op ValueOperation) *Statement {
	s.MustAddConstraint(ValueConstraint{Operation: op})
	return s
}

// Eq builds an equality value predicate.
func Eq(v Value) ValueOperation { return Comparison{Comparator: ComparatorEq, Value: &v} }

// Neq builds an inequality value predicate.
func Neq(v Value) ValueOperation { return Comparison{Comparator: ComparatorNeq, Value: &v} }

// Lt builds a less-than value predicate.
func Lt(v Value) ValueOperation { return Comparison{Comparator: ComparatorLt, Value: &v} }

// Lte builds a less-than-or-equal value predicate.
func Lte(v Value) ValueOperation { return Comparison{Comparator: ComparatorLte, Value: &v} }

// Gt builds a greater-than value predicate.
func Gt(v Value) ValueOperation { return Comparison{Comparator: ComparatorGt, Value: &v} }

// Gte builds a greater-than-or-equal value predicate.
func Gte(v Value) ValueOperation { return Comparison{Comparator: ComparatorGte, Value: &v} }

// Contains builds a substring value predicate.
func Contains(substr string) ValueOperation {
	v := StringValue(substr)
	return Comparison{Comparator: ComparatorContains, Value: &v}
}

// Like builds a regex-match value predicate.
func Like(pattern string) ValueOperation {
	return Comparison{Comparator: ComparatorLike, Pattern: pattern}
}

// EqVar builds an equality value predicate comparing against another
// variable rather than a literal.
func EqVar(v *Variable) ValueOperation { return Comparison{Comparator: ComparatorEq, Variable: v} }

// And mirrors pattern.go's and(): a single pattern collapses to itself,
// otherwise the patterns are wrapped in a Conjunction (§4.6).
func And(patterns ...Pattern) Pattern { return and(patterns) }

// Or mirrors pattern.go's or(): requires at least two branches (§3, §4.6).
func Or(patterns ...Pattern) (Pattern, error) { return or(patterns) }

// Not mirrors pattern.go's not().
func Not(p Pattern) Pattern { return not(p) }

// MatchBuilder holds an in-progress match block awaiting a terminal
// get/insert/delete (§4.8).
type MatchBuilder struct {
	patterns []Pattern
}

// Match begins a match block over patterns.
func Match(patterns ...Pattern) *MatchBuilder {
	return &MatchBuilder{patterns: patterns}
}

// Get finalises the match into a Get query, validating the filter/sort
// invariants of §4.4. An empty vars list means "all named variables of
// match" (§3).
func (m *MatchBuilder) Get(vars ...*Variable) (*Get, error) {
	var filter []*Variable
	seen := map[string]bool{}
	for _, v := range vars {
		if k := namedKey(v); !seen[k] {
			seen[k] = true
			filter = append(filter, v)
		}
	}
	g := &Get{Match: MatchClause{Patterns: m.patterns}, Filter: filter, Offset: -1, Limit: -1}
	if err := ValidateGet(g); err != nil {
		return nil, err
	}
	return g, nil
}

// Insert finalises the match into a match-insert query (§3).
func (m *MatchBuilder) Insert(statements ...*Statement) *Insert {
	mc := MatchClause{Patterns: m.patterns}
	return &Insert{Match: &mc, Statements: statements}
}

// Delete finalises the match into a Delete query.
func (m *MatchBuilder) Delete(statements ...*Statement) *Delete {
	return &Delete{Match: MatchClause{Patterns: m.patterns}, Statements: statements}
}

// InsertQuery builds a bare insert with no preceding match.
func InsertQuery(statements ...*Statement) *Insert {
	return &Insert{Statements: statements}
}

// DefineQuery builds a Define query over the given type statements.
func DefineQuery(statements ...*Statement) *Define {
	return &Define{Statements: statements}
}

// UndefineQuery builds an Undefine query.
func UndefineQuery(statements ...*Statement) *Undefine {
	return &Undefine{Statements: statements}
}

// SortBy returns a copy of g with a sort modifier attached, validating that
// the sort variable is in scope (§4.4).
func (g *Get) SortBy(v *Variable, order Order) (*Get, error) {
	g2 := *g
	g2.Sort = &Sort{Variable: v, Order: order}
	if err := ValidateGet(&g2); err != nil {
		return nil, err
	}
	return &g2, nil
}

// WithOffset returns a copy of g with its offset set.
func (g *Get) WithOffset(n int64) *Get {
	g2 := *g
	g2.Offset = n
	return &g2
}

// WithLimit returns a copy of g with its limit set.
func (g *Get) WithLimit(n int64) *Get {
	g2 := *g
	g2.Limit = n
	return &g2
}

// EndOffset returns g's offset plus its limit, the index one past the last
// row a paginated caller should request, and false if no limit is set or
// the sum would overflow int64 (a caller chaining offsets from untrusted
// input shouldn't have that wrap silently into a small, wrong bound).
func (g *Get) EndOffset() (int64, bool) {
	if g.Limit < 0 {
		return 0, false
	}
	offset := g.Offset
	if offset < 0 {
		offset = 0
	}
	return checked.AddInt64(offset, g.Limit)
}

// AggregateBy wraps g in an Aggregate query. variable must be nil for
// AggregateCount and non-nil otherwise (§3).
func (g *Get) AggregateBy(method AggregateMethod, variable *Variable) (*Aggregate, error) {
	if method != AggregateCount && variable == nil {
		return nil, &Error{Kind: KindInvalidCasting, From: "get", To: "aggregate", Message: fmt.Sprintf("aggregate method %q requires a variable", method)}
	}
	return &Aggregate{Get: g, Method: method, Variable: variable}, nil
}

// GroupBy wraps g in a Group query.
func (g *Get) GroupBy(variable *Variable) *Group {
	return &Group{Get: g, Variable: variable}
}

// AggregateBy wraps grp in a GroupAggregate query.
func (grp *Group) AggregateBy(method AggregateMethod, variable *Variable) (*GroupAggregate, error) {
	if method != AggregateCount && variable == nil {
		return nil, &Error{Kind: KindInvalidCasting, From: "group", To: "group-aggregate", Message: fmt.Sprintf("aggregate method %q requires a variable", method)}
	}
	return &GroupAggregate{Group: grp, Method: method, Variable: variable}, nil
}

// ComputeBuilder accumulates a Compute query's conditions before a final
// Build validates it against the §4.7 matrix.
type ComputeBuilder struct {
	c *Compute
}

// ComputeQuery begins a compute builder for method.
func ComputeQuery(method ComputeMethod) *ComputeBuilder {
	return &ComputeBuilder{c: &Compute{Method: method, Args: newComputeArgs()}}
}

// Of sets the `of` condition's type labels.
func (b *ComputeBuilder) Of(labels ...string) *ComputeBuilder {
	b.c.Of = toLabels(labels)
	return b
}

// From sets the `from` condition.
func (b *ComputeBuilder) From(id string) *ComputeBuilder {
	b.c.From = id
	return b
}

// To sets the `to` condition.
func (b *ComputeBuilder) To(id string) *ComputeBuilder {
	b.c.To = id
	return b
}

// In sets the `in` scope's type labels.
func (b *ComputeBuilder) In(labels ...string) *ComputeBuilder {
	b.c.In = toLabels(labels)
	return b
}

// Using sets the `using` algorithm.
func (b *ComputeBuilder) Using(algo ComputeAlgorithm) *ComputeBuilder {
	b.c.Algorithm = algo
	return b
}

// Where sets a `where` argument, last-write-wins on repeated params (§4.7).
func (b *ComputeBuilder) Where(param ComputeParam, value string) *ComputeBuilder {
	b.c.Args.Set(param, value)
	return b
}

// WhereInt sets an integer `where` argument (e.g. ParamK, ParamMinK,
// ParamSize) formatted from n.
func (b *ComputeBuilder) WhereInt(param ComputeParam, n int64) *ComputeBuilder {
	b.c.Args.Set(param, fmt.Sprintf("%d", n))
	return b
}

// Build applies §4.7's defaults and validates the accumulated query.
func (b *ComputeBuilder) Build() (*Compute, error) {
	applyComputeDefaults(b.c)
	if err := ValidateCompute(b.c); err != nil {
		return nil, err
	}
	return b.c, nil
}

// toLabels converts names to Labels, silently deduplicating (§4.7's `of`
// and `in` type-sets are sets, not sequences: a caller building one
// programmatically from e.g. a user's multi-select UI may hand back the
// same name twice).
func toLabels(names []string) []Label {
	if len(names) == 0 {
		return nil
	}
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	sorted = strutil.Uniq(sorted)
	out := make([]Label, len(sorted))
	for i, n := range sorted {
		out[i] = Label{Name: n}
	}
	return out
}

// RuleBuilder holds a rule label awaiting its when/then pair (§4.8).
type RuleBuilder struct {
	label string
}

// RuleDef begins a rule builder named label.
func RuleDef(label string) *RuleBuilder {
	return &RuleBuilder{label: label}
}

// When attaches the rule's body pattern.
func (rb *RuleBuilder) When(when Pattern) *RuleBuilderWhen {
	return &RuleBuilderWhen{label: rb.label, when: when}
}

// RuleBuilderWhen is an intermediate builder state requiring Then to
// produce a validated rule statement.
type RuleBuilderWhen struct {
	label string
	when  Pattern
}

// Then attaches the rule's head statement and validates the assembled rule
// against every check in §4.4, returning the TypeStatement that Define
// expects (a rule is modelled as a type statement carrying sub rule, when,
// then, GLOSSARY "Rule").
func (w *RuleBuilderWhen) Then(then *Statement) (*Statement, error) {
	stmt := NewStatement(StatementType, NewLabel(w.label, ""))
	if err := stmt.AddConstraint(Sub{Type: Statement{Head: NewLabel("rule", "")}}); err != nil {
		return nil, err
	}
	if err := stmt.AddConstraint(When{Pattern: w.when}); err != nil {
		return nil, err
	}
	if err := stmt.AddConstraint(Then{Statement: *then}); err != nil {
		return nil, err
	}
	if _, err := NewRule(stmt); err != nil {
		return nil, err
	}
	return stmt, nil
}
