package graql

import (
	"fmt"
	"strings"
)

// Print renders q in canonical form (§4.5): the form that, re-parsed,
// produces an AST equal to q (§8 property 1, the round-trip invariant).
// pretty=true inserts newlines between top-level clauses; pretty=false
// collapses the same text onto one line. Both forms parse back to an
// equal AST (§8 property 1), and Print is deterministic: two calls with
// the same arguments always produce byte-identical output (§8 property 2).
func Print(q Query, pretty bool) string {
	var b strings.Builder
	printQuery(&b, q)
	out := b.String()
	if pretty {
		return out
	}
	return compact(out)
}

// compact replaces the pretty renderer's newlines with single spaces and
// trims the trailing one (§4.5 "compact mode strips newlines"); whitespace
// inside string literals is left untouched.
func compact(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}

func printQuery(b *strings.Builder, q Query) {
	switch v := q.(type) {
	case *Define:
		b.WriteString("define\n")
		printStatementBlock(b, v.Statements)
	case *Undefine:
		b.WriteString("undefine\n")
		printStatementBlock(b, v.Statements)
	case *Insert:
		if v.Match != nil {
			b.WriteString("match\n")
			printPatternBlock(b, v.Match.Patterns)
		}
		b.WriteString("insert\n")
		printStatementBlock(b, v.Statements)
	case *Delete:
		b.WriteString("match\n")
		printPatternBlock(b, v.Match.Patterns)
		b.WriteString("delete\n")
		printStatementBlock(b, v.Statements)
	case *Get:
		printGet(b, v)
	case *Aggregate:
		printGet(b, v.Get)
		if v.Method == AggregateCount {
			fmt.Fprintf(b, "%s;", v.Method)
		} else {
			fmt.Fprintf(b, "%s %s;", v.Method, v.Variable)
		}
	case *Group:
		printGet(b, v.Get)
		fmt.Fprintf(b, "group %s;", v.Variable)
	case *GroupAggregate:
		printGet(b, v.Group.Get)
		if v.Method == AggregateCount {
			fmt.Fprintf(b, "group %s; %s;", v.Group.Variable, v.Method)
		} else {
			fmt.Fprintf(b, "group %s; %s %s;", v.Group.Variable, v.Method, v.Variable)
		}
	case *Compute:
		printCompute(b, v)
	}
}

func printGet(b *strings.Builder, g *Get) {
	b.WriteString("match\n")
	printPatternBlock(b, g.Match.Patterns)
	b.WriteString("get")
	filter := g.EffectiveFilter()
	if len(g.Filter) > 0 {
		parts := make([]string, len(filter))
		for i, v := range filter {
			parts[i] = v.String()
		}
		b.WriteString(" " + strings.Join(parts, ", "))
	}
	b.WriteString(";")
	if g.Sort != nil {
		b.WriteString(" sort " + g.Sort.Variable.String())
		if g.Sort.Order != "" {
			b.WriteString(" " + string(g.Sort.Order))
		}
		b.WriteString(";")
	}
	if g.Offset >= 0 {
		fmt.Fprintf(b, " offset %d;", g.Offset)
	}
	if g.Limit >= 0 {
		fmt.Fprintf(b, " limit %d;", g.Limit)
	}
	b.WriteString("\n")
}

func printCompute(b *strings.Builder, c *Compute) {
	fmt.Fprintf(b, "compute %s", c.Method)
	var conditions []string
	if len(c.Of) > 0 {
		conditions = append(conditions, "of "+printLabelSet(c.Of))
	}
	if c.From != "" {
		conditions = append(conditions, fmt.Sprintf("from %s", c.From))
	}
	if c.To != "" {
		conditions = append(conditions, fmt.Sprintf("to %s", c.To))
	}
	if len(c.In) > 0 {
		conditions = append(conditions, "in "+printLabelSet(c.In))
	}
	if c.Algorithm != "" {
		conditions = append(conditions, fmt.Sprintf("using %s", c.Algorithm))
	}
	if c.Args.Len() > 0 {
		var parts []string
		for _, p := range c.Args.Params() {
			v, _ := c.Args.Get(p)
			parts = append(parts, fmt.Sprintf("%s=%s", p, v))
		}
		if len(parts) == 1 {
			conditions = append(conditions, "where "+parts[0])
		} else {
			conditions = append(conditions, "where ["+strings.Join(parts, ", ")+"]")
		}
	}
	if len(conditions) > 0 {
		b.WriteString(" " + strings.Join(conditions, ", "))
	}
	b.WriteString(";")
}

// printLabelSet renders a type-set condition per §4.5: a bare label when
// there is exactly one, a bracketed comma-joined list otherwise.
func printLabelSet(labels []Label) string {
	if len(labels) == 1 {
		return labels[0].String()
	}
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = l.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func printStatementBlock(b *strings.Builder, stmts []*Statement) {
	for _, s := range stmts {
		b.WriteString(printStatement(s))
		b.WriteString(";\n")
	}
}

func printPatternBlock(b *strings.Builder, patterns []Pattern) {
	for _, p := range patterns {
		b.WriteString(printPattern(p))
		b.WriteString(";\n")
	}
}

// printPattern renders a single pattern. A Conjunction always prints in
// braces; printBraced (used for when-bodies and disjunction/negation
// branches) unwraps a Conjunction itself so its members are not braced
// twice.
func printPattern(p Pattern) string {
	switch v := p.(type) {
	case *Statement:
		return printStatement(v)
	case *Conjunction:
		parts := make([]string, len(v.Patterns))
		for i, sub := range v.Patterns {
			parts[i] = printPattern(sub)
		}
		return "{ " + strings.Join(parts, "; ") + "; }"
	case *Disjunction:
		parts := make([]string, len(v.Branches))
		for i, sub := range v.Branches {
			parts[i] = printBraced(sub)
		}
		return strings.Join(parts, " or ")
	case *Negation:
		return "not " + printBraced(v.Pattern)
	}
	return ""
}

func printBraced(p Pattern) string {
	if c, ok := p.(*Conjunction); ok {
		parts := make([]string, len(c.Patterns))
		for i, sub := range c.Patterns {
			parts[i] = printPattern(sub)
		}
		return "{ " + strings.Join(parts, "; ") + "; }"
	}
	return "{ " + printPattern(p) + "; }"
}

// printStatement renders the head followed by its constraints, comma-separated
// as the parser requires; the one exception is the constraint right after a
// relation's role-player list (`(r: $x) isa t`), which the grammar also
// accepts without a comma.
func printStatement(s *Statement) string {
	var b strings.Builder
	b.WriteString(s.Head.String())
	for i, c := range s.constraints {
		sep := ", "
		if i == 0 {
			sep = " "
		} else if _, ok := s.constraints[i-1].(RelationConstraint); ok {
			sep = " "
		}
		b.WriteString(sep + printConstraint(c))
	}
	return b.String()
}

// printConstraint renders a single constraint in canonical form. It is also
// used by statement.go's constraintsEqual as a structural-equality proxy,
// since the printer is itself canonical (§4.5): two constraints print
// identically iff they are structurally equal.
func printConstraint(c Constraint) string {
	switch v := c.(type) {
	case Isa:
		kw := "isa"
		if v.Exact {
			kw = "isa!"
		}
		return fmt.Sprintf("%s %s", kw, printEmbedded(v.Type))
	case Sub:
		kw := "sub"
		if v.Strict {
			kw = "sub!"
		}
		return fmt.Sprintf("%s %s", kw, printEmbedded(v.Type))
	case Has:
		prefix := "has"
		if v.IsKey {
			prefix = "key"
		}
		if v.AttrType != nil {
			// The `has name "Alice"` shorthand: an anonymous attribute side
			// carrying only its value prints as that value.
			attr := printEmbedded(v.Value)
			if v.Value.Head != nil && v.Value.Head.IsAnonymous() && len(v.Value.constraints) == 1 {
				if vc, ok := v.Value.constraints[0].(ValueConstraint); ok {
					attr = vc.Operation.String()
				}
			}
			return fmt.Sprintf("%s %s %s", prefix, v.AttrType, attr)
		}
		return fmt.Sprintf("%s %s", prefix, printEmbedded(v.Value))
	case Plays:
		return fmt.Sprintf("plays %s", printEmbedded(v.RoleType))
	case Relates:
		if v.Overridden != nil {
			return fmt.Sprintf("relates %s as %s", printEmbedded(v.RoleType), printEmbedded(*v.Overridden))
		}
		return fmt.Sprintf("relates %s", printEmbedded(v.RoleType))
	case Regex:
		return fmt.Sprintf("regex %s", quoteString(v.Pattern))
	case ValueTypeConstraint:
		return fmt.Sprintf("value %s", v.Kind)
	case Abstract:
		return "abstract"
	case LabelConstraint:
		return "type " + v.Label.String()
	case When:
		return "when " + printBraced(v.Pattern)
	case Then:
		return "then { " + printStatement(&v.Statement) + "; }"
	case ValueConstraint:
		return v.Operation.String()
	case RelationConstraint:
		parts := make([]string, len(v.RolePlayers))
		for i, rp := range v.RolePlayers {
			if rp.Role != nil {
				parts[i] = fmt.Sprintf("%s: %s", printEmbedded(*rp.Role), printEmbedded(rp.Player))
			} else {
				parts[i] = printEmbedded(rp.Player)
			}
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case NeqVar:
		return fmt.Sprintf("!== %s", v.Other)
	case IdConstraint:
		return fmt.Sprintf("id %s", v.Literal)
	}
	return ""
}

// printEmbedded renders an inline type/role reference: a bare label
// (VarLabel head with no further constraints) prints as just its label
// text, matching common usage like `isa person`; a variable or a
// constrained statement prints in full.
func printEmbedded(s Statement) string {
	if s.Head != nil && s.Head.Kind == VarLabel && len(s.constraints) == 0 {
		return s.Head.String()
	}
	return printStatement(&s)
}
