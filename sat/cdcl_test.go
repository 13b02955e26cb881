package sat

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCdclEngineSolvesSatisfiableFormula(t *testing.T) {
	m, err := NewCnfModel(solvableClauses())
	require.NoError(t, err)
	e, err := NewCdclEngine(m, EngineOptions{})
	require.NoError(t, err)

	require.True(t, e.Solve())
	a := e.State().Assignments()
	for _, c := range m.Clauses {
		require.True(t, satisfiesAny(a, c), "clause %v must be satisfied", c)
	}
}

func TestCdclEngineReportsUnsatisfiable(t *testing.T) {
	m, err := NewCnfModel(unsolvableClauses())
	require.NoError(t, err)
	e, err := NewCdclEngine(m, EngineOptions{})
	require.NoError(t, err)

	require.False(t, e.Solve())
}

func TestCdclEngineRejectsLUIPCuttingMethod(t *testing.T) {
	m, err := NewCnfModel(solvableClauses())
	require.NoError(t, err)
	_, err = NewCdclEngine(m, EngineOptions{CuttingMethod: "LUIP"})
	require.Error(t, err)
}

func TestCdclEngineLearnsAtLeastOneClauseOnConflictHeavyFormula(t *testing.T) {
	// Forces a conflict: no clause is unit at the start, so a decision on 1
	// comes first; it makes {-1,2} and {-1,-2} unit, propagating 2
	// contradicts {-1,-2}, and the clause learned from that conflict is kept.
	m, err := NewCnfModel([]Clause{
		{1, 2},
		{1, -2},
		{-1, 2},
		{-1, -2},
	})
	require.NoError(t, err)
	e, err := NewCdclEngine(m, EngineOptions{UseLogger: true})
	require.NoError(t, err)

	require.False(t, e.Solve())
	require.NotEmpty(t, e.LearnedClauses())
	require.NotEmpty(t, e.StepLog().GraphSteps())
}

func TestCdclEngineAgreesWithDpllAcrossWatchDisciplines(t *testing.T) {
	clauseSets := [][]Clause{
		solvableClauses(),
		unsolvableClauses(),
		{{1, 2, 3}, {-1, 2}, {-2, -3}, {1}},
		{{1, 2}, {1, -2}, {-1, 2}, {-1, -2}},
	}
	discs := []EngineOptions{{}, {TWL: true}, {TrueTWL: true}}

	for _, clauses := range clauseSets {
		var want *bool
		for _, opts := range discs {
			m, err := NewCnfModel(clauses)
			require.NoError(t, err)
			dpll, err := NewDpllEngine(m, opts)
			require.NoError(t, err)
			gotDpll := dpll.Solve()

			m2, err := NewCnfModel(clauses)
			require.NoError(t, err)
			cdcl, err := NewCdclEngine(m2, opts)
			require.NoError(t, err)
			gotCdcl := cdcl.Solve()

			require.Equal(t, gotDpll, gotCdcl, "dpll/cdcl disagreement for %v opts=%+v", clauses, opts)
			if want == nil {
				want = &gotDpll
			} else {
				require.Equal(t, *want, gotDpll, "watch-discipline disagreement for %v opts=%+v", clauses, opts)
			}
		}
	}
}

// randomClauses3CNF generates a random 3-CNF formula over n variables with m
// clauses using rng, for cross-checking the solvers against a brute-force
// truth-table search.
func randomClauses3CNF(rng *rand.Rand, n, m int) []Clause {
	clauses := make([]Clause, 0, m)
	for i := 0; i < m; i++ {
		c := make(Clause, 0, 3)
		for len(c) < 3 {
			v := rng.Intn(n) + 1
			lit := Literal(v)
			if rng.Intn(2) == 0 {
				lit = -lit
			}
			dup := false
			for _, existing := range c {
				if existing == lit || existing == -lit {
					dup = true
					break
				}
			}
			if !dup {
				c = append(c, lit)
			}
		}
		clauses = append(clauses, c)
	}
	return clauses
}

func bruteForceSatisfiable(m *CnfModel) bool {
	vars := m.Variables()
	for mask := 0; mask < (1 << uint(len(vars))); mask++ {
		a := make(Assignment, len(vars))
		for i, v := range vars {
			a[v] = mask&(1<<uint(i)) != 0
		}
		ok := true
		for _, c := range m.Clauses {
			if !satisfiesAny(a, c) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func TestRandom3CNFMatchesBruteForce(t *testing.T) {
	disciplines := []struct {
		name string
		opts EngineOptions
	}{
		{"plain", EngineOptions{}},
		{"twl", EngineOptions{TWL: true}},
		{"true_twl", EngineOptions{TrueTWL: true}},
	}

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 25; trial++ {
		n := 4 + rng.Intn(8) // up to 11 variables
		mClauses := 2 + rng.Intn(10)
		clauses := randomClauses3CNF(rng, n, mClauses)

		m, err := NewCnfModel(clauses)
		require.NoError(t, err)
		want := bruteForceSatisfiable(m)

		for _, d := range disciplines {
			m2, err := NewCnfModel(clauses)
			require.NoError(t, err)
			dpll, err := NewDpllEngine(m2, d.opts)
			require.NoError(t, err)
			require.Equal(t, want, dpll.Solve(), "dpll/%s mismatch trial %d clauses=%v", d.name, trial, clauses)

			m3, err := NewCnfModel(clauses)
			require.NoError(t, err)
			cdcl, err := NewCdclEngine(m3, d.opts)
			require.NoError(t, err)
			require.Equal(t, want, cdcl.Solve(), "cdcl/%s mismatch trial %d clauses=%v", d.name, trial, clauses)
		}
	}
}
