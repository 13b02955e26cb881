package sat

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xDarkicex/satsolve/satcore"
)

func TestParseHeuristicKindRejectsUnknown(t *testing.T) {
	_, err := ParseHeuristicKind("nope")
	require.Error(t, err)
	require.True(t, satcore.IsKind(err, satcore.InvalidArgument))
}

func TestParseHeuristicKindRoundTrip(t *testing.T) {
	for _, name := range []string{"default", "dlcs", "dlis", "rdlcs", "rdlis", "moms", "rmoms"} {
		kind, err := ParseHeuristicKind(name)
		require.NoError(t, err)
		require.Equal(t, name, kind.String())
	}
}

func TestNewHeuristicRejectsNegativeKForMoms(t *testing.T) {
	_, err := NewHeuristic(MOMs, -1, nil)
	require.Error(t, err)
	require.True(t, satcore.IsKind(err, satcore.InvalidArgument))
}

func TestDefaultHeuristicPicksFirstUnassignedInOrder(t *testing.T) {
	m, err := NewCnfModel([]Clause{{3, -1}, {2}})
	require.NoError(t, err)
	s := NewPlainState(m)
	h, err := NewHeuristic(Default, 0, nil)
	require.NoError(t, err)

	lit, err := h.Decide(s)
	require.NoError(t, err)
	require.Equal(t, Literal(3), lit)
}

func TestDLCSPicksMostOccurringVariable(t *testing.T) {
	// var 1 appears 3 times across unsatisfied clauses, var 2 once.
	m, err := NewCnfModel([]Clause{{1, 2}, {1, -3}, {-1, 3}})
	require.NoError(t, err)
	s := NewPlainState(m)
	h, err := NewHeuristic(DLCS, 0, nil)
	require.NoError(t, err)

	lit, err := h.Decide(s)
	require.NoError(t, err)
	require.Equal(t, 1, lit.Variable())
}

func TestHeuristicReturnsNoProgressWhenNothingUnassigned(t *testing.T) {
	m, err := NewCnfModel([]Clause{{1}})
	require.NoError(t, err)
	s := NewPlainState(m)
	s.Assign(Literal(1))

	h, err := NewHeuristic(Default, 0, nil)
	require.NoError(t, err)
	_, err = h.Decide(s)
	require.Error(t, err)
	require.True(t, satcore.IsKind(err, satcore.NoProgress))
}

func TestRDLCSUsesProvidedRng(t *testing.T) {
	m, err := NewCnfModel([]Clause{{1, 2}})
	require.NoError(t, err)
	s := NewPlainState(m)

	h, err := NewHeuristic(RDLCS, 0, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	lit, err := h.Decide(s)
	require.NoError(t, err)
	require.NotZero(t, lit.Variable())
}

func TestMOMsPicksVariableFromSmallestUnsatisfiedClause(t *testing.T) {
	// {1,2,3} is larger than {1,2}, so only the latter qualifies; var 1 and
	// var 2 tie on score and var 1 sorts first.
	m, err := NewCnfModel([]Clause{{1, 2}, {1, 2, 3}})
	require.NoError(t, err)
	s := NewPlainState(m)
	h, err := NewHeuristic(MOMs, 0, nil)
	require.NoError(t, err)

	lit, err := h.Decide(s)
	require.NoError(t, err)
	require.Equal(t, Literal(1), lit)
}

func TestMOMsSkipsAlreadyAssignedVariableEvenWhenHighestScoring(t *testing.T) {
	// var 1 occurs twice (negated) in the unsatisfied clauses and would win
	// on tally alone, but it is already assigned, so it must be skipped in
	// favor of var 2, which sorts before var 3 at the next-best score.
	m, err := NewCnfModel([]Clause{{-1, 2}, {-1, 3}, {1, 2, 3, 4}})
	require.NoError(t, err)
	s := NewPlainState(m)
	s.Assign(Literal(1))

	h, err := NewHeuristic(MOMs, 0, nil)
	require.NoError(t, err)
	lit, err := h.Decide(s)
	require.NoError(t, err)
	require.Equal(t, 2, lit.Variable())
}

func TestMOMsReturnsNoProgressWhenNothingUnassigned(t *testing.T) {
	m, err := NewCnfModel([]Clause{{1}})
	require.NoError(t, err)
	s := NewPlainState(m)
	s.Assign(Literal(1))

	h, err := NewHeuristic(MOMs, 0, nil)
	require.NoError(t, err)
	_, err = h.Decide(s)
	require.Error(t, err)
	require.True(t, satcore.IsKind(err, satcore.NoProgress))
}

func TestRMOMsUsesProvidedRngForPolarity(t *testing.T) {
	m, err := NewCnfModel([]Clause{{1, 2}})
	require.NoError(t, err)
	s := NewPlainState(m)

	h, err := NewHeuristic(RMOMs, 0, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	lit, err := h.Decide(s)
	require.NoError(t, err)
	require.NotZero(t, lit.Variable())
}
