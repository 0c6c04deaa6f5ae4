package graql

import (
	"fmt"
	"sync/atomic"
)

// VariableKind tags the four variable-reference shapes of §3.
type VariableKind int

const (
	VarNamedConcept VariableKind = iota
	VarNamedValue
	VarLabel
	VarAnonymous
)

// Variable is a reference to a concept-, value-, or label-bound variable, or
// to an anonymous slot. Equality is by structural reference (§3): two
// Variable values referring to the same *Variable pointer are the same
// variable; two distinct NamedConcept/NamedValue variables with equal names
// are equal in the Equal sense used by the validator (same binding site) but
// remain distinct Go values, and a NamedConcept and a NamedValue sharing a
// name are never equal.
type Variable struct {
	Kind  VariableKind
	Name  string // NamedConcept, NamedValue
	Label string // VarLabel
	Scope string // VarLabel, optional
	id    int64  // VarAnonymous identity tiebreaker; 0 for named/label variables
}

var anonCounter atomic.Int64

// NewNamedConcept returns a $name concept variable.
func NewNamedConcept(name string) *Variable { return &Variable{Kind: VarNamedConcept, Name: name} }

// NewNamedValue returns a ?name value variable.
func NewNamedValue(name string) *Variable { return &Variable{Kind: VarNamedValue, Name: name} }

// NewLabel returns a type reference by label, optionally scoped
// (e.g. marriage:spouse).
func NewLabel(label, scope string) *Variable {
	return &Variable{Kind: VarLabel, Label: label, Scope: scope}
}

// NewAnonymous returns a fresh anonymous variable, distinct by identity from
// every other anonymous variable (§3).
func NewAnonymous() *Variable {
	return &Variable{Kind: VarAnonymous, id: anonCounter.Add(1)}
}

// IsAnonymous reports whether v is an anonymous variable.
func (v *Variable) IsAnonymous() bool { return v != nil && v.Kind == VarAnonymous }

// Equal reports whether v and o refer to the same binding site: same kind
// and same name/label/scope for named and label variables, same identity for
// anonymous ones.
func (v *Variable) Equal(o *Variable) bool {
	if v == o {
		return true
	}
	if v == nil || o == nil || v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case VarNamedConcept, VarNamedValue:
		return v.Name == o.Name
	case VarLabel:
		return v.Label == o.Label && v.Scope == o.Scope
	case VarAnonymous:
		return v.id == o.id
	}
	return false
}

func (v *Variable) String() string {
	if v == nil {
		return "$_"
	}
	switch v.Kind {
	case VarNamedConcept:
		return "$" + v.Name
	case VarNamedValue:
		return "?" + v.Name
	case VarLabel:
		if v.Scope != "" {
			return fmt.Sprintf("%s:%s", v.Scope, v.Label)
		}
		return v.Label
	case VarAnonymous:
		return "$_"
	}
	return "$_"
}
