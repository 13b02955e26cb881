package sat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func solvableClauses() []Clause {
	// ( 1 v 2 ) ^ ( -1 v 3 ) ^ ( -2 v -3 ): satisfiable, e.g. 1=F,2=T,3=F.
	return []Clause{{1, 2}, {-1, 3}, {-2, -3}}
}

func unsolvableClauses() []Clause {
	return []Clause{{1}, {-1}}
}

func TestDpllEngineSolvesSatisfiableFormula(t *testing.T) {
	m, err := NewCnfModel(solvableClauses())
	require.NoError(t, err)
	e, err := NewDpllEngine(m, EngineOptions{})
	require.NoError(t, err)

	require.True(t, e.Solve())
	a := e.State().Assignments()
	for _, c := range m.Clauses {
		require.True(t, a.Satisfies(c[0]) || satisfiesAny(a, c), "clause %v must be satisfied", c)
	}
}

func satisfiesAny(a Assignment, c Clause) bool {
	for _, lit := range c {
		if a.Satisfies(lit) {
			return true
		}
	}
	return false
}

func TestDpllEngineReportsUnsatisfiable(t *testing.T) {
	m, err := NewCnfModel(unsolvableClauses())
	require.NoError(t, err)
	e, err := NewDpllEngine(m, EngineOptions{})
	require.NoError(t, err)

	require.False(t, e.Solve())
}

func TestDpllEngineAgreesAcrossWatchDisciplines(t *testing.T) {
	cases := []EngineOptions{
		{},
		{TWL: true},
		{TrueTWL: true},
	}
	for _, opts := range cases {
		m, err := NewCnfModel(solvableClauses())
		require.NoError(t, err)
		e, err := NewDpllEngine(m, opts)
		require.NoError(t, err)
		require.True(t, e.Solve())
	}
}

func TestDpllEngineRejectsBothWatchDisciplines(t *testing.T) {
	m, err := NewCnfModel(solvableClauses())
	require.NoError(t, err)
	_, err = NewDpllEngine(m, EngineOptions{TWL: true, TrueTWL: true})
	require.Error(t, err)
}

func TestDpllEngineWithPureLiteralElimination(t *testing.T) {
	m, err := NewCnfModel([]Clause{{1, 2}, {-1, 2}, {2, 3}})
	require.NoError(t, err)
	e, err := NewDpllEngine(m, EngineOptions{})
	require.NoError(t, err)

	PureLiteralElimination(e.State())
	require.True(t, e.Solve())
	require.True(t, e.State().Assignments().Satisfies(Literal(2)))
}

func TestDpllEngineStepLogRecordsDecisions(t *testing.T) {
	m, err := NewCnfModel(solvableClauses())
	require.NoError(t, err)
	e, err := NewDpllEngine(m, EngineOptions{UseLogger: true})
	require.NoError(t, err)

	require.True(t, e.Solve())
	require.NotEmpty(t, e.StepLog().Steps())
}
