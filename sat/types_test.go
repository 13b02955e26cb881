package sat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xDarkicex/satsolve/satcore"
)

func TestLiteralBasics(t *testing.T) {
	l := Literal(-3)
	require.Equal(t, 3, l.Variable())
	require.False(t, l.Polarity())
	require.Equal(t, Literal(3), l.Negate())
}

func TestNewCnfModelValid(t *testing.T) {
	m, err := NewCnfModel([]Clause{
		{1, 2},
		{-1, 3},
		{-2, -3},
	})
	require.NoError(t, err)
	require.Equal(t, 3, m.NumVars)
	require.Equal(t, 3, m.NumClauses)
	require.Equal(t, []int{1, 2, 3}, m.Variables())
}

func TestCnfModelValidateRejectsEmptyClause(t *testing.T) {
	_, err := NewCnfModel([]Clause{{}})
	require.Error(t, err)
	require.True(t, satcore.IsKind(err, satcore.MalformedInput))
}

func TestCnfModelValidateRejectsZeroLiteral(t *testing.T) {
	m := &CnfModel{NumVars: 1, NumClauses: 1, Clauses: []Clause{{0}}}
	err := m.Validate()
	require.Error(t, err)
	require.True(t, satcore.IsKind(err, satcore.MalformedInput))
}

func TestCnfModelValidateMismatchedCounts(t *testing.T) {
	m := &CnfModel{NumVars: 2, NumClauses: 5, Clauses: []Clause{{1, 2}}}
	err := m.Validate()
	require.Error(t, err)
	require.True(t, satcore.IsKind(err, satcore.MalformedInput))
}

func TestAssignmentSatisfies(t *testing.T) {
	a := Assignment{1: true, 2: false}
	require.True(t, a.Satisfies(Literal(1)))
	require.False(t, a.Satisfies(Literal(-1)))
	require.True(t, a.Satisfies(Literal(-2)))
	require.False(t, a.Satisfies(Literal(3)))
	require.False(t, a.IsAssigned(Literal(3)))

	clone := a.Clone()
	clone[3] = true
	require.False(t, a.IsAssigned(Literal(3)), "Clone must be independent")
}
