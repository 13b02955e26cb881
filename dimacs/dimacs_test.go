package dimacs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xDarkicex/satsolve/sat"
)

func TestReadBasicFormula(t *testing.T) {
	text := `
c DIMACS example file
c
p cnf 4 3
1 3 -4 0
4 2 0
-3 0
`
	m, err := Read(strings.NewReader(strings.TrimSpace(text)))
	require.NoError(t, err)
	require.Equal(t, 4, m.NumVars)
	require.Equal(t, 3, m.NumClauses)
	require.Equal(t, []sat.Clause{{1, 3, -4}, {4, 2}, {-3}}, m.Clauses)
}

func TestReadToleratesMissingProblemLine(t *testing.T) {
	text := `
1 2 0
-1 2 0
`
	m, err := Read(strings.NewReader(strings.TrimSpace(text)))
	require.NoError(t, err)
	require.Equal(t, 2, m.NumVars)
	require.Equal(t, 2, m.NumClauses)
}

func TestReadStopsAtPercentTrailer(t *testing.T) {
	text := `p cnf 2 2
1 2 0
-1 2 0
%
1 2 3
x y z
`
	m, err := Read(strings.NewReader(text))
	require.NoError(t, err)
	require.Equal(t, 2, m.NumClauses)
}

func TestReadRejectsMismatchedClauseCount(t *testing.T) {
	text := `p cnf 2 5
1 2 0
`
	_, err := Read(strings.NewReader(text))
	require.Error(t, err)
}

func TestReadRejectsProblemLineAfterClauses(t *testing.T) {
	text := `1 2 0
p cnf 2 1
`
	_, err := Read(strings.NewReader(text))
	require.Error(t, err)
}

func TestReadAllowsDeclaredButUnusedVariables(t *testing.T) {
	text := `p cnf 5 1
1 2 0
`
	m, err := Read(strings.NewReader(text))
	require.NoError(t, err)
	require.Equal(t, 2, m.NumVars)
}

func TestWriteThenReadRoundTrips(t *testing.T) {
	m, err := sat.NewCnfModel([]sat.Clause{{1, 3, -4}, {4, 2}, {-3}})
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, Write(&b, m))

	m2, err := Read(strings.NewReader(b.String()))
	require.NoError(t, err)
	require.Equal(t, m.Clauses, m2.Clauses)
	require.Equal(t, m.NumVars, m2.NumVars)
}
