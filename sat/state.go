package sat

import "sort"

// CnfState is the bookkeeping contract shared by the three watch
// disciplines (plain, TWL, TrueTWL). All three incrementally maintain a
// satisfaction map, a per-clause count of literals known to satisfy it and
// of literals still unassigned, and two derived sets: clauses with exactly
// one unassigned literal left (Unitary) and clauses with none and not yet
// satisfied (Contradicted).
type CnfState interface {
	// Assign makes lit true, updating every clause that mentions its
	// variable.
	Assign(lit Literal)
	// Unassign retracts lit, which must currently be true, restoring the
	// bookkeeping to what it was before Assign(lit).
	Unassign(lit Literal)
	// Flip changes the variable behind lit from false to true in place,
	// equivalent to Unassign(-lit) followed by Assign(lit) but performed
	// as one bookkeeping step so intermediate states are never observed.
	Flip(lit Literal)
	// AddClause folds a new clause (typically CDCL-learned) into the
	// state without disturbing the bookkeeping of existing clauses.
	AddClause(c Clause) int
	// IsSatisfied reports whether every clause is currently satisfied.
	IsSatisfied() bool
	// IsUnsatisfiable reports whether any clause is currently
	// contradicted (all literals assigned, none satisfying).
	IsUnsatisfiable() bool
	// UnitaryClauses returns the indices of clauses with exactly one
	// unassigned literal, in ascending order for deterministic tie-break.
	UnitaryClauses() []int
	// ContradictedClauses returns the indices of contradicted clauses, in
	// ascending order.
	ContradictedClauses() []int
	// Assignments exposes the current partial assignment.
	Assignments() Assignment
	// Model returns the underlying CnfModel (for the original clauses and
	// variable count).
	Model() *CnfModel
	// ClauseLiterals returns the literals that should be considered
	// "the clause" for unit-propagation purposes at the given index: for
	// plain state this is the full clause; for TWL/TrueTWL it is the
	// original clause (since the unit literal must be found among all of
	// a clause's literals, not just the watched pair).
	ClauseLiterals(idx int) Clause
	// NumClauses returns the current clause count (grows as learned
	// clauses are added).
	NumClauses() int
	// IsClauseSatisfied reports whether the clause at idx is currently
	// satisfied.
	IsClauseSatisfied(idx int) bool
	// NumUnassignedInClause reports the watch-discipline-specific count of
	// unassigned literals tracked for the clause at idx (the full clause
	// for plain state, the watched pair for TWL/TrueTWL).
	NumUnassignedInClause(idx int) int
}

// baseState holds the fields and derived-set bookkeeping common to all
// three State variants.
type baseState struct {
	model           *CnfModel
	assignments     Assignment
	satisfactionMap []bool
	numSatisfying   []int
	numUnassigned   []int
	contradicted    map[int]struct{}
	unitary         map[int]struct{}
}

func newBaseState(model *CnfModel) baseState {
	n := len(model.Clauses)
	b := baseState{
		model:           model,
		assignments:     make(Assignment, model.NumVars),
		satisfactionMap: make([]bool, n),
		numSatisfying:   make([]int, n),
		numUnassigned:   make([]int, n),
		contradicted:    make(map[int]struct{}),
		unitary:         make(map[int]struct{}),
	}
	for i, c := range model.Clauses {
		b.numUnassigned[i] = len(c)
		if len(c) == 1 {
			b.unitary[i] = struct{}{}
		}
	}
	return b
}

func (b *baseState) IsSatisfied() bool {
	for _, ok := range b.satisfactionMap {
		if !ok {
			return false
		}
	}
	return true
}

func (b *baseState) IsUnsatisfiable() bool {
	return len(b.contradicted) > 0
}

func sortedIndices(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for i := range set {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func (b *baseState) UnitaryClauses() []int      { return sortedIndices(b.unitary) }
func (b *baseState) ContradictedClauses() []int { return sortedIndices(b.contradicted) }
func (b *baseState) Assignments() Assignment    { return b.assignments }
func (b *baseState) Model() *CnfModel           { return b.model }
func (b *baseState) NumClauses() int            { return len(b.model.Clauses) }
func (b *baseState) IsClauseSatisfied(idx int) bool { return b.satisfactionMap[idx] }
func (b *baseState) NumUnassignedInClause(idx int) int { return b.numUnassigned[idx] }

// PlainState is the simplest CnfState: every clause's numUnassigned and
// numSatisfying counters track ALL of that clause's literals, not a watched
// subset. clausesByLiteral indexes clauses by every literal they contain.
type PlainState struct {
	baseState
	clausesByLiteral map[Literal][]int
}

// NewPlainState builds a PlainState for model with no variables assigned
// yet.
func NewPlainState(model *CnfModel) *PlainState {
	s := &PlainState{
		baseState:        newBaseState(model),
		clausesByLiteral: make(map[Literal][]int),
	}
	for i, c := range model.Clauses {
		for _, lit := range c {
			s.clausesByLiteral[lit] = append(s.clausesByLiteral[lit], i)
		}
	}
	return s
}

func (s *PlainState) ClauseLiterals(idx int) Clause { return s.model.Clauses[idx] }

// newLiteralAssigned folds in the effect of lit becoming true.
func (s *PlainState) newLiteralAssigned(lit Literal) {
	for _, idx := range s.clausesByLiteral[lit] {
		s.satisfactionMap[idx] = true
		s.numSatisfying[idx]++
		s.numUnassigned[idx]--
		delete(s.unitary, idx)
	}
	for _, idx := range s.clausesByLiteral[lit.Negate()] {
		s.numUnassigned[idx]--
		if !s.satisfactionMap[idx] {
			switch s.numUnassigned[idx] {
			case 0:
				s.contradicted[idx] = struct{}{}
			case 1:
				s.unitary[idx] = struct{}{}
			}
		}
	}
}

// oldLiteralUnassigned undoes the effect of lit (currently true) becoming
// unassigned again.
func (s *PlainState) oldLiteralUnassigned(lit Literal) {
	for _, idx := range s.clausesByLiteral[lit] {
		s.numUnassigned[idx]++
		s.numSatisfying[idx]--
		if s.numSatisfying[idx] == 0 {
			s.satisfactionMap[idx] = false
			if s.numUnassigned[idx] == 1 {
				s.unitary[idx] = struct{}{}
			}
		}
	}
	for _, idx := range s.clausesByLiteral[lit.Negate()] {
		if s.numSatisfying[idx] == 0 && !s.satisfactionMap[idx] {
			if _, ok := s.contradicted[idx]; ok {
				delete(s.contradicted, idx)
				s.unitary[idx] = struct{}{}
			}
		}
		s.numUnassigned[idx]++
		if _, ok := s.unitary[idx]; ok && !s.satisfactionMap[idx] && s.numUnassigned[idx] > 1 {
			delete(s.unitary, idx)
		}
	}
}

// Assign makes lit true.
func (s *PlainState) Assign(lit Literal) {
	s.assignments[lit.Variable()] = lit.Polarity()
	s.newLiteralAssigned(lit)
}

// Unassign retracts lit, which must currently be true.
func (s *PlainState) Unassign(lit Literal) {
	s.oldLiteralUnassigned(lit)
	delete(s.assignments, lit.Variable())
}

// Flip changes the variable behind lit from false to true.
func (s *PlainState) Flip(lit Literal) {
	s.assignments[lit.Variable()] = lit.Polarity()
	s.oldLiteralUnassigned(lit.Negate())
	s.newLiteralAssigned(lit)
}

// AddClause appends a new clause (typically CDCL-learned) and folds in the
// effect of the current assignment on it, replaying any currently-true
// literal of the clause exactly as if it had just been assigned.
func (s *PlainState) AddClause(c Clause) int {
	idx := len(s.model.Clauses)
	s.model.Clauses = append(s.model.Clauses, c)
	s.model.NumClauses++
	s.satisfactionMap = append(s.satisfactionMap, false)
	s.numSatisfying = append(s.numSatisfying, 0)
	s.numUnassigned = append(s.numUnassigned, len(c))
	for _, lit := range c {
		s.clausesByLiteral[lit] = append(s.clausesByLiteral[lit], idx)
	}
	for _, lit := range c {
		v := lit.Variable()
		val, ok := s.assignments[v]
		if !ok {
			continue
		}
		s.numUnassigned[idx]--
		if val == lit.Polarity() {
			s.satisfactionMap[idx] = true
			s.numSatisfying[idx]++
		}
	}
	if !s.satisfactionMap[idx] {
		switch s.numUnassigned[idx] {
		case 0:
			s.contradicted[idx] = struct{}{}
		case 1:
			s.unitary[idx] = struct{}{}
		}
	}
	return idx
}
