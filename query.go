package graql

// Query is the closed tagged sum of §3, "Queries".
type Query interface {
	isQuery()
	// Kind names the query's tag, used for error messages and tests.
	Kind() string
}

// MatchClause is a conjunction of patterns constraining a query's solution
// set (GLOSSARY: "Match block").
type MatchClause struct {
	Patterns []Pattern
}

// NamedVariables returns the named concept/value variables reachable
// anywhere in the match block.
func (m MatchClause) NamedVariables() map[string]*Variable {
	out := map[string]*Variable{}
	for _, p := range m.Patterns {
		mergeVars(out, p.NamedVariables())
	}
	return out
}

// Define declares new schema type statements.
type Define struct {
	Statements []*Statement
}

func (*Define) isQuery()      {}
func (*Define) Kind() string  { return "define" }

// Undefine retracts schema type statements.
type Undefine struct {
	Statements []*Statement
}

func (*Undefine) isQuery()     {}
func (*Undefine) Kind() string { return "undefine" }

// Insert inserts instance statements, optionally after matching existing
// data (a "match-insert" when Match is non-nil, §3).
type Insert struct {
	Match      *MatchClause
	Statements []*Statement
}

func (*Insert) isQuery()     {}
func (*Insert) Kind() string { return "insert" }

// Delete removes instance statements matched by Match.
type Delete struct {
	Match      MatchClause
	Statements []*Statement
}

func (*Delete) isQuery()     {}
func (*Delete) Kind() string { return "delete" }

// Sort is the `sort $var (asc|desc)?` modifier.
type Sort struct {
	Variable *Variable
	Order    Order // empty means unspecified, engine default applies
}

// Get is a match with a projection, optional sort/offset/limit (§3).
// Filter is ordered and deduplicated; an empty Filter means "all named
// variables of match" (§3).
type Get struct {
	Match  MatchClause
	Filter []*Variable
	Sort   *Sort
	Offset int64 // -1 means unset
	Limit  int64 // -1 means unset
}

func (*Get) isQuery()     {}
func (*Get) Kind() string { return "get" }

// EffectiveFilter returns Filter if non-empty, else the named variables
// (concept or value) that head a statement anywhere in the match block's
// pattern tree, in first-occurrence order (§3). Variables that occur only
// inside a constraint, such as `$n` in `$x has name $n`, are not included.
func (g *Get) EffectiveFilter() []*Variable {
	if len(g.Filter) > 0 {
		return g.Filter
	}
	seen := map[string]bool{}
	var out []*Variable
	var walk func(p Pattern)
	walk = func(p Pattern) {
		switch n := p.(type) {
		case *Statement:
			if n.Head != nil && !n.Head.IsAnonymous() && n.Head.Kind != VarLabel {
				k := namedKey(n.Head)
				if !seen[k] {
					seen[k] = true
					out = append(out, n.Head)
				}
			}
		case *Conjunction:
			for _, sub := range n.Patterns {
				walk(sub)
			}
		case *Disjunction:
			for _, sub := range n.Branches {
				walk(sub)
			}
		case *Negation:
			walk(n.Pattern)
		}
	}
	for _, p := range g.Match.Patterns {
		walk(p)
	}
	return out
}

// Aggregate computes a single scalar over a Get query's solutions.
type Aggregate struct {
	Get      *Get
	Method   AggregateMethod
	Variable *Variable // nil only when Method == AggregateCount
}

func (*Aggregate) isQuery()     {}
func (*Aggregate) Kind() string { return "get-aggregate" }

// Group partitions a Get query's solutions by Variable.
type Group struct {
	Get      *Get
	Variable *Variable
}

func (*Group) isQuery()     {}
func (*Group) Kind() string { return "get-group" }

// GroupAggregate computes an aggregate within each group of a Group query.
type GroupAggregate struct {
	Group    *Group
	Method   AggregateMethod
	Variable *Variable
}

func (*GroupAggregate) isQuery()     {}
func (*GroupAggregate) Kind() string { return "get-group-aggregate" }
