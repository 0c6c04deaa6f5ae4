package graql

import (
	"fmt"
	"sort"
)

// Compute is an analytics query parameterised by method, scope, targets,
// algorithm and arguments (§3, §4.7). Fields not meaningful for a given
// Method are left at their zero value; ValidateCompute (called by the
// parser and by the compute builder's Build, §4.8) is what enforces the
// matrix.
type Compute struct {
	Method    ComputeMethod
	In        []Label // scope
	Of        []Label // targets (statistics, centrality)
	From, To  string   // path endpoints (engine-assigned IDs)
	Algorithm ComputeAlgorithm
	Args      *computeArgs
}

func (*Compute) isQuery()     {}
func (*Compute) Kind() string { return "compute" }

// computeArgs is an insertion-ordered map: repeated `where` parameters keep
// the last occurrence (§4.7, §8 S6), but Params() must still report in a
// stable, deterministic order for the printer.
type computeArgs struct {
	order  []ComputeParam
	values map[ComputeParam]string
}

func newComputeArgs() *computeArgs {
	return &computeArgs{values: map[ComputeParam]string{}}
}

// Set records param=value, overwriting value and keeping the original
// position in iteration order if param was already set, per last-write-wins
// semantics (§4.7, §8 S6).
func (a *computeArgs) Set(param ComputeParam, value string) {
	if _, ok := a.values[param]; !ok {
		a.order = append(a.order, param)
	}
	a.values[param] = value
}

func (a *computeArgs) Get(param ComputeParam) (string, bool) {
	v, ok := a.values[param]
	return v, ok
}

// Params returns the set parameters in first-set order.
func (a *computeArgs) Params() []ComputeParam {
	if a == nil {
		return nil
	}
	return append([]ComputeParam(nil), a.order...)
}

func (a *computeArgs) Len() int {
	if a == nil {
		return 0
	}
	return len(a.order)
}

// computeMatrixEntry is one row of the §4.7 table: the shape data, not code,
// per §9's design note. ValidateCompute consults this table; extending it with a
// new method or algorithm is a data change.
type computeMatrixEntry struct {
	requiredConditions []string // "of", "from", "to" — "in" is always optional
	allowsOf, allowsIn bool
	allowsFromTo       bool
	algorithms         []ComputeAlgorithm // empty means "no `using` accepted"
	defaultAlgorithm   ComputeAlgorithm
	paramsByAlgorithm  map[ComputeAlgorithm][]ComputeParam
	defaultsByAlgorithm map[ComputeAlgorithm]map[ComputeParam]string
}

var computeMatrix = map[ComputeMethod]computeMatrixEntry{
	ComputeCount: {allowsIn: true},
	ComputeMax:    {requiredConditions: []string{"of"}, allowsOf: true, allowsIn: true},
	ComputeMin:    {requiredConditions: []string{"of"}, allowsOf: true, allowsIn: true},
	ComputeMean:   {requiredConditions: []string{"of"}, allowsOf: true, allowsIn: true},
	ComputeMedian: {requiredConditions: []string{"of"}, allowsOf: true, allowsIn: true},
	ComputeSum:    {requiredConditions: []string{"of"}, allowsOf: true, allowsIn: true},
	ComputeStd:    {requiredConditions: []string{"of"}, allowsOf: true, allowsIn: true},
	ComputePath: {
		requiredConditions: []string{"from", "to"},
		allowsFromTo:       true,
		allowsIn:           true,
	},
	ComputeCentrality: {
		allowsOf: true, allowsIn: true,
		algorithms:       []ComputeAlgorithm{AlgorithmDegree, AlgorithmKCore},
		defaultAlgorithm: AlgorithmDegree,
		paramsByAlgorithm: map[ComputeAlgorithm][]ComputeParam{
			AlgorithmKCore: {ParamMinK},
		},
		defaultsByAlgorithm: map[ComputeAlgorithm]map[ComputeParam]string{
			AlgorithmKCore: {ParamMinK: "2"},
		},
	},
	ComputeCluster: {
		allowsIn: true,
		algorithms:       []ComputeAlgorithm{AlgorithmConnectedComponent, AlgorithmKCore},
		defaultAlgorithm: AlgorithmConnectedComponent,
		paramsByAlgorithm: map[ComputeAlgorithm][]ComputeParam{
			AlgorithmConnectedComponent: {ParamSize, ParamContains},
			AlgorithmKCore:              {ParamK},
		},
		defaultsByAlgorithm: map[ComputeAlgorithm]map[ComputeParam]string{
			AlgorithmKCore: {ParamK: "2"},
		},
	},
}

// applyComputeDefaults fills in the default algorithm and default argument
// values for methods that accept an algorithm but had none set explicitly
// (§4.7: "Default algorithm... Defaults for arguments when algorithm-set").
func applyComputeDefaults(c *Compute) {
	entry := computeMatrix[c.Method]
	if len(entry.algorithms) == 0 {
		return
	}
	if c.Algorithm == "" {
		c.Algorithm = entry.defaultAlgorithm
	}
	defaults := entry.defaultsByAlgorithm[c.Algorithm]
	if len(defaults) == 0 {
		return
	}
	if c.Args == nil {
		c.Args = newComputeArgs()
	}
	for param, value := range defaults {
		if _, ok := c.Args.Get(param); !ok {
			c.Args.Set(param, value)
		}
	}
}

// ValidateCompute checks a Compute query against the §4.7 matrix, returning
// an *Error of Kind KindInvalidCompute on the first violation.
func ValidateCompute(c *Compute) error {
	entry, ok := computeMatrix[c.Method]
	if !ok {
		return &Error{Kind: KindUnrecognisedToken, Message: fmt.Sprintf("unrecognised compute method %q", c.Method)}
	}

	var missing []string
	for _, cond := range entry.requiredConditions {
		switch cond {
		case "of":
			if len(c.Of) == 0 {
				missing = append(missing, "of")
			}
		case "from":
			if c.From == "" {
				missing = append(missing, "from")
			}
		case "to":
			if c.To == "" {
				missing = append(missing, "to")
			}
		}
	}
	if len(missing) > 0 {
		return &Error{
			Kind:       KindInvalidCompute,
			Method:     string(c.Method),
			Missing:    missing,
			Message:    fmt.Sprintf("compute %s requires condition(s) %v", c.Method, missing),
		}
	}

	if !entry.allowsOf && len(c.Of) > 0 {
		return &Error{Kind: KindInvalidCompute, Method: string(c.Method), Message: fmt.Sprintf("compute %s does not accept an `of` condition", c.Method)}
	}
	if !entry.allowsFromTo && (c.From != "" || c.To != "") {
		return &Error{Kind: KindInvalidCompute, Method: string(c.Method), Message: fmt.Sprintf("compute %s does not accept `from`/`to` conditions", c.Method)}
	}

	if len(entry.algorithms) == 0 {
		if c.Algorithm != "" {
			return &Error{Kind: KindInvalidCompute, Method: string(c.Method), Message: fmt.Sprintf("compute %s does not accept a `using` algorithm", c.Method)}
		}
		if c.Args.Len() > 0 {
			return &Error{Kind: KindInvalidCompute, Method: string(c.Method), Message: fmt.Sprintf("compute %s does not accept `where` arguments", c.Method)}
		}
		return nil
	}

	algo := c.Algorithm
	if algo == "" {
		algo = entry.defaultAlgorithm
	}
	allowed := false
	for _, a := range entry.algorithms {
		if a == algo {
			allowed = true
			break
		}
	}
	if !allowed {
		return &Error{
			Kind:    KindInvalidCompute,
			Method:  string(c.Method),
			Allowed: algorithmStrings(entry.algorithms),
			Message: fmt.Sprintf("compute %s does not accept algorithm %q (allowed: %v)", c.Method, algo, entry.algorithms),
		}
	}

	allowedParams := entry.paramsByAlgorithm[algo]
	for _, param := range c.Args.Params() {
		ok := false
		for _, p := range allowedParams {
			if p == param {
				ok = true
				break
			}
		}
		if !ok {
			return &Error{
				Kind:    KindInvalidCompute,
				Method:  string(c.Method),
				Param:   string(param),
				Allowed: paramStrings(allowedParams),
				Message: fmt.Sprintf("compute %s using %s does not accept `where` parameter %q (allowed: %v)", c.Method, algo, param, allowedParams),
			}
		}
	}
	return nil
}

func algorithmStrings(as []ComputeAlgorithm) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = string(a)
	}
	return out
}

func paramStrings(ps []ComputeParam) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = string(p)
	}
	sort.Strings(out)
	return out
}
