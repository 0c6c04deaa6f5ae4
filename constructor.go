package graql

import "fmt"

// The functions in this file perform the canonicalisations of §4.3 that the
// parser defers to a named helper rather than inlining, because each one
// collapses more than one surface spelling onto a single AST shape.

// normalizeComparator maps a lexed comparator token to its Comparator
// constant. `=` and `==` both normalise to equality; there is no separate
// AST node for `=` (§4.3).
func normalizeComparator(text string) (Comparator, error) {
	switch text {
	case "=", "==":
		return ComparatorEq, nil
	case "!==":
		return ComparatorNeq, nil
	case "<":
		return ComparatorLt, nil
	case "<=":
		return ComparatorLte, nil
	case ">":
		return ComparatorGt, nil
	case ">=":
		return ComparatorGte, nil
	case "contains":
		return ComparatorContains, nil
	case "like":
		return ComparatorLike, nil
	default:
		return "", &Error{Kind: KindUnrecognisedToken, Token: text, Context: "comparator", Message: fmt.Sprintf("unrecognised comparator %q", text)}
	}
}

// expandHasShorthand builds the Has constraint for `has <label> <value>`,
// where value is a literal: the attribute side becomes an anonymous
// AttributeStatement carrying a value-assignment constraint (§4.3).
func expandHasShorthand(label Label, value Value, isKey bool) Has {
	attr := Statement{Variant: StatementAttribute, Head: NewAnonymous()}
	attr.constraints = []Constraint{ValueConstraint{Operation: Assignment{Value: value}}}
	return Has{AttrType: &label, Value: attr, IsKey: isKey}
}

// expandHasVariable builds the Has constraint for `has <label> $var`, where
// the attribute side is a bare reference to an already-bound variable
// rather than an inline literal.
func expandHasVariable(label Label, v *Variable, isKey bool) Has {
	return Has{AttrType: &label, Value: Statement{Head: v}, IsKey: isKey}
}

// resolveValueTypeKind maps a lexed value-type identifier onto its
// ValueTypeKind constant, rejecting anything outside the closed set (§3).
func resolveValueTypeKind(text string) (ValueTypeKind, error) {
	kind, ok := valueTypeKinds[text]
	if !ok {
		return "", &Error{Kind: KindUnrecognisedToken, Token: text, Context: "value type", Message: fmt.Sprintf("unrecognised value type %q", text)}
	}
	return kind, nil
}

// resolveAggregateMethod maps a lexed aggregate-method identifier onto its
// AggregateMethod constant.
func resolveAggregateMethod(text string) (AggregateMethod, error) {
	method, ok := aggregateMethods[text]
	if !ok {
		return "", &Error{Kind: KindUnrecognisedToken, Token: text, Context: "aggregate method", Message: fmt.Sprintf("unrecognised aggregate method %q", text)}
	}
	return method, nil
}

// resolveComputeMethod maps a lexed compute-method identifier onto its
// ComputeMethod constant.
func resolveComputeMethod(text string) (ComputeMethod, error) {
	switch ComputeMethod(text) {
	case ComputeCount, ComputeMax, ComputeMin, ComputeMean, ComputeMedian, ComputeSum, ComputeStd,
		ComputePath, ComputeCentrality, ComputeCluster:
		return ComputeMethod(text), nil
	}
	return "", &Error{Kind: KindUnrecognisedToken, Token: text, Context: "compute method", Message: fmt.Sprintf("unrecognised compute method %q", text)}
}

// resolveComputeAlgorithm maps a lexed algorithm identifier onto its
// ComputeAlgorithm constant.
func resolveComputeAlgorithm(text string) (ComputeAlgorithm, error) {
	switch ComputeAlgorithm(text) {
	case AlgorithmDegree, AlgorithmKCore, AlgorithmConnectedComponent:
		return ComputeAlgorithm(text), nil
	}
	return "", &Error{Kind: KindUnrecognisedToken, Token: text, Context: "compute algorithm", Message: fmt.Sprintf("unrecognised algorithm %q", text)}
}

// resolveComputeParam maps a lexed `where` parameter identifier onto its
// ComputeParam constant.
func resolveComputeParam(text string) (ComputeParam, error) {
	switch ComputeParam(text) {
	case ParamMinK, ParamK, ParamSize, ParamContains:
		return ComputeParam(text), nil
	}
	return "", &Error{Kind: KindUnrecognisedToken, Token: text, Context: "compute parameter", Message: fmt.Sprintf("unrecognised where parameter %q", text)}
}
