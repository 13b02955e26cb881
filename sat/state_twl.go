package sat

// TWLState is the two-watched-literals variant: each clause exposes at most
// two "watched" literals, and numUnassigned/unitary/contradicted are
// maintained against that watched pair rather than the full clause. A
// clause still counts as satisfied the moment ANY of its literals (watched
// or not) is true — clausesByLiteral indexes the ORIGINAL clause so that
// check stays correct regardless of which pair is currently watched.
//
// Watched pointers are never rewound on Unassign: once a watch has moved to
// a literal further into the clause, it stays there across backtracking.
// This mirrors how two-watched-literals is implemented in practice — the
// watch invariant ("point at a true literal or an unassigned one, if any
// exists") holds regardless of assignment history, so there is nothing to
// undo.
type TWLState struct {
	baseState
	clausesByLiteral        map[Literal][]int
	watched                 []Clause
	clausesByWatchedLiteral map[Literal][]int
}

// NewTWLState builds a TWLState for model with no variables assigned yet.
func NewTWLState(model *CnfModel) *TWLState {
	s := &TWLState{
		baseState:               newBaseState(model),
		clausesByLiteral:        make(map[Literal][]int),
		watched:                 make([]Clause, len(model.Clauses)),
		clausesByWatchedLiteral: make(map[Literal][]int),
	}
	for i, c := range model.Clauses {
		for _, lit := range c {
			s.clausesByLiteral[lit] = append(s.clausesByLiteral[lit], i)
		}
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

func (s *TWLState) ClauseLiterals(idx int) Clause { return s.model.Clauses[idx] }

func isWatched(w Clause, lit Literal) bool {
	for _, l := range w {
		if l == lit {
			return true
		}
	}
	return false
}

// updateWatchedLiterals looks for a replacement for -assignedLit among
// idx's original clause literals not already watched. If one is found it
// swaps it in and returns true; otherwise it returns false, meaning no
// alternative exists and the caller must treat this as the watch count
// shrinking by one.
func (s *TWLState) updateWatchedLiterals(idx int, assignedLit Literal) bool {
	dropped := assignedLit.Negate()
	for _, lit := range s.model.Clauses[idx] {
		if isWatched(s.watched[idx], lit) {
			continue
		}
		if s.assignments.IsAssigned(lit) && !s.assignments.Satisfies(lit) {
			continue
		}
		// lit is unassigned, or already true: either makes a fine watch.
		s.removeWatch(idx, dropped)
		s.addWatch(idx, lit)
		return true
	}
	return false
}

func (s *TWLState) removeWatch(idx int, lit Literal) {
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

func (s *TWLState) addWatch(idx int, lit Literal) {
	s.watched[idx] = append(s.watched[idx], lit)
	s.clausesByWatchedLiteral[lit] = append(s.clausesByWatchedLiteral[lit], idx)
}

func (s *TWLState) newLiteralAssigned(lit Literal) {
	for _, idx := range s.clausesByLiteral[lit] {
		s.numSatisfying[idx]++
		wasSatisfied := s.satisfactionMap[idx]
		s.satisfactionMap[idx] = true
		if isWatched(s.watched[idx], lit) {
			s.numUnassigned[idx]--
			delete(s.unitary, idx)
		}
		if !wasSatisfied {
			delete(s.contradicted, idx)
		}
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

func (s *TWLState) oldLiteralUnassigned(lit Literal) {
	for _, idx := range s.clausesByLiteral[lit] {
		s.numSatisfying[idx]--
		if s.numSatisfying[idx] == 0 {
			s.satisfactionMap[idx] = false
		}
		if isWatched(s.watched[idx], lit) {
			s.numUnassigned[idx]++
			delete(s.contradicted, idx)
			delete(s.unitary, idx)
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
	// Clauses watching -lit had it counted as "assigned false" (not
	// contributing to numUnassigned); lit's variable going back to
	// unassigned means -lit is unassigned again too.
	for _, idx := range s.clausesByWatchedLiteral[lit.Negate()] {
		if s.satisfactionMap[idx] {
			continue
		}
		if _, ok := s.contradicted[idx]; ok {
			delete(s.contradicted, idx)
			s.numUnassigned[idx]++
			s.unitary[idx] = struct{}{}
			continue
		}
		s.numUnassigned[idx]++
		if _, ok := s.unitary[idx]; ok && s.numUnassigned[idx] > 1 {
			delete(s.unitary, idx)
		}
	}
}

// Assign makes lit true.
func (s *TWLState) Assign(lit Literal) {
	s.assignments[lit.Variable()] = lit.Polarity()
	s.newLiteralAssigned(lit)
}

// Unassign retracts lit, which must currently be true.
func (s *TWLState) Unassign(lit Literal) {
	s.oldLiteralUnassigned(lit)
	delete(s.assignments, lit.Variable())
}

// Flip changes the variable behind lit from false to true.
func (s *TWLState) Flip(lit Literal) {
	s.assignments[lit.Variable()] = lit.Polarity()
	s.oldLiteralUnassigned(lit.Negate())
	s.newLiteralAssigned(lit)
}

// AddClause appends a new clause and initializes its watched pair, folding
// in the effect of the current assignment.
func (s *TWLState) AddClause(c Clause) int {
	idx := len(s.model.Clauses)
	s.model.Clauses = append(s.model.Clauses, c)
	s.model.NumClauses++
	for _, lit := range c {
		s.clausesByLiteral[lit] = append(s.clausesByLiteral[lit], idx)
	}
	s.satisfactionMap = append(s.satisfactionMap, false)
	s.numSatisfying = append(s.numSatisfying, 0)
	s.numUnassigned = append(s.numUnassigned, 0)

	// Prefer unassigned or satisfying literals as the initial watch pair.
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
