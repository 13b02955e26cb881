// Package sat implements a CNF satisfiability core: a shared bookkeeping
// object (State, in three watch-discipline variants), branching heuristics,
// pure literal elimination, and two engines (DPLL and CDCL) built on top of
// it.
package sat

import (
	"fmt"
	"sort"

	"github.com/xDarkicex/satsolve/satcore"
)

// Literal is a nonzero signed integer. Its absolute value names a variable;
// its sign names the polarity the variable must take to satisfy it: a
// positive literal is satisfied when the variable is true, a negative one
// when the variable is false.
type Literal int

// Variable returns the variable this literal refers to, always positive.
func (l Literal) Variable() int { return abs(int(l)) }

// Polarity reports whether this literal is satisfied by the variable being
// true.
func (l Literal) Polarity() bool { return l > 0 }

// Negate returns the complementary literal.
func (l Literal) Negate() Literal { return -l }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Clause is an ordered sequence of literals, interpreted as their
// disjunction.
type Clause []Literal

func (c Clause) String() string {
	return fmt.Sprint([]Literal(c))
}

// CnfModel is a conjunctive-normal-form formula: NumVars variables and a
// list of Clauses, each a disjunction of literals over those variables.
type CnfModel struct {
	NumVars    int
	NumClauses int
	Clauses    []Clause
}

// NewCnfModel builds and validates a CnfModel from raw clauses. NumVars and
// NumClauses are derived from the clauses themselves, matching the way the
// DIMACS reader and property-based tests construct models without having to
// precompute counts by hand.
func NewCnfModel(clauses []Clause) (*CnfModel, error) {
	m := &CnfModel{
		NumClauses: len(clauses),
		Clauses:    clauses,
	}
	vars := make(map[int]struct{})
	for _, c := range clauses {
		for _, lit := range c {
			vars[lit.Variable()] = struct{}{}
		}
	}
	m.NumVars = len(vars)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks that the model is internally consistent: declared counts
// match the actual clause/variable counts, no clause is empty, and no
// literal is zero. It mirrors the Pydantic checks the Python original's
// ClausesModel performs on load.
func (m *CnfModel) Validate() error {
	if m.NumClauses != len(m.Clauses) {
		return satcore.New("sat", "CnfModel.Validate", satcore.MalformedInput,
			fmt.Sprintf("declared NumClauses=%d but found %d clauses", m.NumClauses, len(m.Clauses)))
	}
	seen := make(map[int]struct{})
	for i, c := range m.Clauses {
		if len(c) == 0 {
			return satcore.New("sat", "CnfModel.Validate", satcore.MalformedInput,
				fmt.Sprintf("clause %d is empty", i))
		}
		for _, lit := range c {
			if lit == 0 {
				return satcore.New("sat", "CnfModel.Validate", satcore.MalformedInput,
					fmt.Sprintf("clause %d contains a zero literal", i))
			}
			seen[lit.Variable()] = struct{}{}
		}
	}
	if m.NumVars != len(seen) {
		return satcore.New("sat", "CnfModel.Validate", satcore.MalformedInput,
			fmt.Sprintf("declared NumVars=%d but found %d distinct variables", m.NumVars, len(seen)))
	}
	return nil
}

// Variables returns the sorted, distinct variable numbers appearing in the
// model.
func (m *CnfModel) Variables() []int {
	seen := make(map[int]struct{}, m.NumVars)
	for _, c := range m.Clauses {
		for _, lit := range c {
			seen[lit.Variable()] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// Assignment maps a variable number to the boolean value assigned to it.
// Unassigned variables are simply absent from the map.
type Assignment map[int]bool

// Clone returns an independent copy of the assignment.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// IsAssigned reports whether the given literal's variable has a value.
func (a Assignment) IsAssigned(lit Literal) bool {
	_, ok := a[lit.Variable()]
	return ok
}

// Satisfies reports whether the literal evaluates to true under this
// assignment. It returns false for an unassigned variable.
func (a Assignment) Satisfies(lit Literal) bool {
	v, ok := a[lit.Variable()]
	if !ok {
		return false
	}
	return v == lit.Polarity()
}
