package graql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchBuilderGetValidatesFilter(t *testing.T) {
	x := NewNamedConcept("x")
	y := NewNamedConcept("y")
	stmt := Var(x.Name).Isa("person")

	_, err := Match(stmt).Get(x)
	require.NoError(t, err, "filter variable present in the match")

	_, err = Match(stmt).Get(y)
	assert.Error(t, err, "filter variable absent from the match")
}

func TestGetSortByValidatesScope(t *testing.T) {
	x := NewNamedConcept("x")
	y := NewNamedConcept("y")
	stmt := Var(x.Name).Isa("person")
	g, err := Match(stmt).Get(x)
	require.NoError(t, err)

	_, err = g.SortBy(x, OrderAsc)
	assert.NoError(t, err, "sorting by a filtered variable")

	_, err = g.SortBy(y, OrderAsc)
	assert.Error(t, err, "sorting by a variable outside the filter")
}

func TestGetWithOffsetAndLimitAreImmutable(t *testing.T) {
	stmt := Var("x").Isa("person")
	g, err := Match(stmt).Get()
	require.NoError(t, err)

	g2 := g.WithOffset(5).WithLimit(10)
	assert.Equal(t, int64(-1), g.Offset, "original Get mutated")
	assert.Equal(t, int64(-1), g.Limit, "original Get mutated")
	assert.Equal(t, int64(5), g2.Offset)
	assert.Equal(t, int64(10), g2.Limit)
}

func TestGetEndOffset(t *testing.T) {
	cases := []struct {
		name          string
		offset, limit int64
		wantOK        bool
		wantEnd       int64
	}{
		{"no limit set", 5, -1, false, 0},
		{"offset and limit", 5, 10, true, 15},
		{"unset offset treated as zero", -1, 10, true, 10},
		{"overflow", 1, 9223372036854775807, false, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := &Get{Offset: c.offset, Limit: c.limit}
			end, ok := g.EndOffset()
			require.Equal(t, c.wantOK, ok)
			if ok {
				assert.Equal(t, c.wantEnd, end)
			}
		})
	}
}

func TestAggregateByRequiresVariableExceptCount(t *testing.T) {
	stmt := Var("x").Isa("person")
	g, err := Match(stmt).Get()
	require.NoError(t, err)

	_, err = g.AggregateBy(AggregateCount, nil)
	assert.NoError(t, err, "count with no variable")

	_, err = g.AggregateBy(AggregateSum, nil)
	assert.Error(t, err, "sum with no variable")
}

func TestComputeBuilderBuildValidates(t *testing.T) {
	_, err := ComputeQuery(ComputeSum).Build()
	assert.Error(t, err, "sum with no `of`")

	c, err := ComputeQuery(ComputeSum).Of("age").Build()
	require.NoError(t, err)
	require.Len(t, c.Of, 1)
	assert.Equal(t, "age", c.Of[0].Name)
}

func TestComputeBuilderOfDedupesAndSorts(t *testing.T) {
	c, err := ComputeQuery(ComputeCentrality).Of("zebra", "apple", "zebra").Build()
	require.NoError(t, err)
	require.Len(t, c.Of, 2, "dedup")
	assert.Equal(t, "apple", c.Of[0].Name)
	assert.Equal(t, "zebra", c.Of[1].Name)
}

func TestComputeBuilderWhereIntFormatsValue(t *testing.T) {
	c, err := ComputeQuery(ComputeCentrality).Using(AlgorithmKCore).WhereInt(ParamMinK, 4).Build()
	require.NoError(t, err)
	v, ok := c.Args.Get(ParamMinK)
	require.True(t, ok)
	assert.Equal(t, "4", v)
}

func TestRuleBuilderThenValidates(t *testing.T) {
	when := Var("x").Isa("person")
	then := Var("x").Has("adult", BoolValue(true))
	_, err := RuleDef("flag-adults").When(when).Then(then)
	require.NoError(t, err)

	badThen := Var("y").Has("adult", BoolValue(true))
	_, err = RuleDef("bad-rule").When(when).Then(badThen)
	assert.Error(t, err, "unbound then-variable")
}

func TestAndOrNotHelpersMatchPatternPackage(t *testing.T) {
	a := Var("x").Isa("person")
	b := Var("x").Isa("company")
	assert.Equal(t, Pattern(a), And(a), "And() of a single pattern should collapse to its sole member")

	_, err := Or(a)
	assert.Error(t, err, "Or() with one branch")

	d, err := Or(a, b)
	require.NoError(t, err)
	assert.IsType(t, &Disjunction{}, d)
	assert.IsType(t, &Negation{}, Not(a))
}
