package graql

import "fmt"

// ValidateGet checks a Get query's filter/sort modifiers against its match
// block (§4.4): a non-empty filter must be a subset of the match's named
// concept variables, and a sort variable must be among the filter (or,
// when the filter is empty, among the match's named variables).
func ValidateGet(g *Get) error {
	matchVars := g.Match.NamedVariables()

	if len(g.Filter) > 0 {
		for _, v := range g.Filter {
			if _, ok := matchVars[namedKey(v)]; !ok {
				return &Error{
					Kind:    KindInvalidCasting,
					From:    "match",
					To:      "get filter",
					Message: fmt.Sprintf("get filter variable %s does not occur in the match block", v),
				}
			}
		}
	}

	if g.Sort != nil {
		scope := matchVars
		if len(g.Filter) > 0 {
			scope = map[string]*Variable{}
			for _, v := range g.Filter {
				scope[namedKey(v)] = v
			}
		}
		if _, ok := scope[namedKey(g.Sort.Variable)]; !ok {
			return &Error{
				Kind:    KindInvalidCasting,
				From:    "get filter",
				To:      "sort",
				Message: fmt.Sprintf("sort variable %s is not in scope", g.Sort.Variable),
			}
		}
	}
	return nil
}

// Validate runs the §4.4 structural checks applicable to q's kind:
// ValidateGet for get-based queries and ValidateCompute for compute
// queries; define/undefine/insert/delete are accepted as they are (a
// define's rule statements are checked by NewRule). The parser and the
// builder call ValidateGet, ValidateCompute and NewRule directly rather
// than through Validate.
func Validate(q Query) error {
	switch v := q.(type) {
	case *Get:
		return ValidateGet(v)
	case *Aggregate:
		return ValidateGet(v.Get)
	case *Group:
		return ValidateGet(v.Get)
	case *GroupAggregate:
		return ValidateGet(v.Group.Get)
	case *Compute:
		return ValidateCompute(v)
	}
	return nil
}
