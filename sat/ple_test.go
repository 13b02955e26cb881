package sat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPureLiteralEliminationAssignsPureVariable(t *testing.T) {
	// var 2 only ever appears positively: pure, should be assigned true.
	m, err := NewCnfModel([]Clause{{1, 2}, {-1, 2}, {2, 3}})
	require.NoError(t, err)
	s := NewPlainState(m)

	affected := PureLiteralElimination(s)
	require.Contains(t, affected, Literal(2))
	require.True(t, s.Assignments().Satisfies(Literal(2)))
}

func TestPureLiteralEliminationLoopsToFixpoint(t *testing.T) {
	// 3 is pure negative (1 appears both ways); assigning -3 satisfies both
	// clauses, so the repeat loop's second pass finds nothing and stops.
	m, err := NewCnfModel([]Clause{{1, -3}, {-1, -3}})
	require.NoError(t, err)
	s := NewPlainState(m)

	affected := PureLiteralElimination(s)
	require.NotEmpty(t, affected)
	require.True(t, s.IsSatisfied())
}

func TestPureLiteralEliminationNoOpWhenNoPureVariable(t *testing.T) {
	m, err := NewCnfModel([]Clause{{1, 2}, {-1, -2}})
	require.NoError(t, err)
	s := NewPlainState(m)

	affected := PureLiteralElimination(s)
	require.Empty(t, affected)
	require.Empty(t, s.Assignments())
}

func TestPureLiteralEliminationSkipsAlreadyAssignedVariables(t *testing.T) {
	m, err := NewCnfModel([]Clause{{1, 2}, {-1, 2}})
	require.NoError(t, err)
	s := NewPlainState(m)
	s.Assign(Literal(1))

	affected := PureLiteralElimination(s)
	require.Contains(t, affected, Literal(2))
	require.True(t, s.IsSatisfied())
}
