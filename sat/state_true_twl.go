package sat

// TrueTWLState is the strict two-watched-literals variant: unlike TWLState,
// a clause counts as satisfied only through its CURRENT watched pair, never
// through an unwatched literal happening to be true. Re-watching therefore
// has to actively look for a true literal to adopt as the new watch, not
// just an unassigned one, which is what makes this variant able to notice
// "satisfied via a literal that was never watched before" as it happens
// rather than lazily. This is the variant spec.md's invariants (Unitary /
// Contradicted as always-accurate derived sets) are written against.
type TrueTWLState struct {
	baseState
	watched                 []Clause
	clausesByWatchedLiteral map[Literal][]int
}

// NewTrueTWLState builds a TrueTWLState for model with no variables
// assigned yet.
func NewTrueTWLState(model *CnfModel) *TrueTWLState {
	s := &TrueTWLState{
		baseState:               newBaseState(model),
		watched:                 make([]Clause, len(model.Clauses)),
		clausesByWatchedLiteral: make(map[Literal][]int),
	}
	for i, c := range model.Clauses {
		n := len(c)
		if n > 2 {
			n = 2
		}
		w := append(Clause(nil), c[:n]...)
		s.watched[i] = w
		s.numUnassigned[i] = len(w)
		if len(w) == 1 {
			s.unitary[i] = struct{}{}
		}
		for _, lit := range w {
			s.clausesByWatchedLiteral[lit] = append(s.clausesByWatchedLiteral[lit], i)
		}
	}
	return s
}

func (s *TrueTWLState) ClauseLiterals(idx int) Clause { return s.model.Clauses[idx] }

func (s *TrueTWLState) removeWatch(idx int, lit Literal) {
	w := s.watched[idx]
	for i, l := range w {
		if l == lit {
			s.watched[idx] = append(w[:i], w[i+1:]...)
			break
		}
	}
	list := s.clausesByWatchedLiteral[lit]
	for i, ci := range list {
		if ci == idx {
			s.clausesByWatchedLiteral[lit] = append(list[:i], list[i+1:]...)
			break
		}
	}
}

func (s *TrueTWLState) addWatch(idx int, lit Literal) {
	s.watched[idx] = append(s.watched[idx], lit)
	s.clausesByWatchedLiteral[lit] = append(s.clausesByWatchedLiteral[lit], idx)
}

// updateWatchedLiterals looks for a replacement for assignedLit.Negate()
// among idx's clause literals not already watched. A currently-true
// candidate is adopted and marks the clause satisfied; an unassigned
// candidate is adopted and the clause stays unresolved; either way the
// watch moves. It reports true only in the unresolved case, signaling the
// caller that no counter bookkeeping is needed — the "no alternative
// found" and "resolved via a newly-true watch" cases are reported as false,
// both require the caller to treat the watch count as having shrunk by one
// (the latter is then a no-op because satisfactionMap is already set).
func (s *TrueTWLState) updateWatchedLiterals(idx int, assignedLit Literal) bool {
	if s.satisfactionMap[idx] {
		return false
	}
	dropped := assignedLit.Negate()
	for _, lit := range s.model.Clauses[idx] {
		if isWatched(s.watched[idx], lit) {
			continue
		}
		if s.assignments.IsAssigned(lit) {
			if s.assignments.Satisfies(lit) {
				s.removeWatch(idx, dropped)
				s.addWatch(idx, lit)
				s.numSatisfying[idx]++
				s.satisfactionMap[idx] = true
				return false
			}
			continue
		}
		s.removeWatch(idx, dropped)
		s.addWatch(idx, lit)
		return true
	}
	return false
}

func (s *TrueTWLState) newLiteralAssigned(lit Literal) {
	for _, idx := range s.clausesByWatchedLiteral[lit] {
		s.satisfactionMap[idx] = true
		s.numSatisfying[idx]++
		s.numUnassigned[idx]--
		delete(s.unitary, idx)
	}
	for _, idx := range append([]int(nil), s.clausesByWatchedLiteral[lit.Negate()]...) {
		if !s.updateWatchedLiterals(idx, lit) {
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
}

func (s *TrueTWLState) oldLiteralUnassigned(lit Literal) {
	for _, idx := range s.clausesByWatchedLiteral[lit] {
		s.numUnassigned[idx]++
		s.numSatisfying[idx]--
		if s.numSatisfying[idx] == 0 {
			s.satisfactionMap[idx] = false
			if s.numUnassigned[idx] == 1 {
				s.unitary[idx] = struct{}{}
			}
		}
	}
	for _, idx := range s.clausesByWatchedLiteral[lit.Negate()] {
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
func (s *TrueTWLState) Assign(lit Literal) {
	s.assignments[lit.Variable()] = lit.Polarity()
	s.newLiteralAssigned(lit)
}

// Unassign retracts lit, which must currently be true.
func (s *TrueTWLState) Unassign(lit Literal) {
	s.oldLiteralUnassigned(lit)
	delete(s.assignments, lit.Variable())
}

// Flip changes the variable behind lit from false to true.
func (s *TrueTWLState) Flip(lit Literal) {
	s.assignments[lit.Variable()] = lit.Polarity()
	s.oldLiteralUnassigned(lit.Negate())
	s.newLiteralAssigned(lit)
}

// AddClause appends a new clause and initializes its watched pair against
// the current assignment, without disturbing any existing clause's
// bookkeeping. The Python original achieves the same "existing clauses
// stay untouched, new clause starts correct" contract via a global
// undo/redo replay through update_satisfaction_map; here the new clause's
// watch pair is instead computed directly from the live assignment, which
// reaches the same externally observable state with no risk of an
// intermediate pass disturbing a sibling clause's counters.
func (s *TrueTWLState) AddClause(c Clause) int {
	idx := len(s.model.Clauses)
	s.model.Clauses = append(s.model.Clauses, c)
	s.model.NumClauses++
	s.satisfactionMap = append(s.satisfactionMap, false)
	s.numSatisfying = append(s.numSatisfying, 0)
	s.numUnassigned = append(s.numUnassigned, 0)

	var watch Clause
	for _, lit := range c {
		if len(watch) == 2 {
			break
		}
		if !s.assignments.IsAssigned(lit) || s.assignments.Satisfies(lit) {
			watch = append(watch, lit)
		}
	}
	for _, lit := range c {
		if len(watch) == 2 {
			break
		}
		if !isWatched(watch, lit) {
			watch = append(watch, lit)
		}
	}
	s.watched = append(s.watched, watch)
	for _, lit := range watch {
		s.clausesByWatchedLiteral[lit] = append(s.clausesByWatchedLiteral[lit], idx)
	}

	satisfied := false
	unassignedWatched := 0
	for _, lit := range watch {
		if s.assignments.Satisfies(lit) {
			satisfied = true
			s.numSatisfying[idx]++
		} else if !s.assignments.IsAssigned(lit) {
			unassignedWatched++
		}
	}
	s.satisfactionMap[idx] = satisfied
	s.numUnassigned[idx] = unassignedWatched
	if !satisfied {
		switch s.numUnassigned[idx] {
		case 0:
			s.contradicted[idx] = struct{}{}
		case 1:
			s.unitary[idx] = struct{}{}
		}
	}
	return idx
}
