package sat

import "sort"

// ConflictAnalyzer derives a learned clause and a backjump level from a
// contradicted clause and the implication graph that led to it.
type ConflictAnalyzer interface {
	Name() string
	Analyze(state CnfState, graph *ImplicationGraph, conflict Clause, decisionLevel int) (learned Clause, backtrackLevel int)
}

func sortedLiterals(set map[Literal]struct{}) []Literal {
	out := make([]Literal, 0, len(set))
	for l := range set {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func literalsAtCurrentLevel(learned map[Literal]struct{}, graph *ImplicationGraph, level int) []Literal {
	var out []Literal
	for l := range learned {
		if e, ok := graph.Get(l.Negate()); ok && e.DecisionLevel == level {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FirstUIPAnalyzer implements first-unique-implication-point conflict
// analysis: resolve the conflicted clause against antecedents, walking
// backward through the current decision level's implications, until
// exactly one literal of the learned clause remains fixed at the current
// level — the first UIP. The backtrack level is the highest decision level
// among the learned clause's literals other than the UIP, or 0 if none.
//
// Decision literals (antecedent == nil) can never be resolved away, since
// they have no antecedent clause; when one is the most-recently-removed
// candidate it is rotated to the front of the pending list instead, so the
// next pop tries a different, resolvable literal. At most one decision
// literal exists per level, so this rotates at most once before a resolve
// step makes progress.
type FirstUIPAnalyzer struct{}

func (FirstUIPAnalyzer) Name() string { return "1UIP" }

func (FirstUIPAnalyzer) Analyze(state CnfState, graph *ImplicationGraph, conflict Clause, decisionLevel int) (Clause, int) {
	learned := make(map[Literal]struct{}, len(conflict))
	for _, lit := range conflict {
		learned[lit] = struct{}{}
	}
	seen := make(map[int]struct{})

	pending := literalsAtCurrentLevel(learned, graph, decisionLevel)
	for len(pending) > 1 {
		litToRemove := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		entry, _ := graph.Get(litToRemove.Negate())
		if entry.Antecedent == nil {
			pending = append([]Literal{litToRemove}, pending...)
			continue
		}

		for _, al := range state.ClauseLiterals(*entry.Antecedent) {
			if _, ok := seen[al.Variable()]; ok {
				continue
			}
			learned[al] = struct{}{}
		}
		delete(learned, litToRemove)
		delete(learned, litToRemove.Negate())
		seen[litToRemove.Variable()] = struct{}{}

		pending = literalsAtCurrentLevel(learned, graph, decisionLevel)
	}

	var uip Literal
	if len(pending) == 1 {
		uip = pending[0]
	}
	backtrackLevel := 0
	for l := range learned {
		if l == uip {
			continue
		}
		if e, ok := graph.Get(l.Negate()); ok && e.DecisionLevel > backtrackLevel {
			backtrackLevel = e.DecisionLevel
		}
	}
	return Clause(sortedLiterals(learned)), backtrackLevel
}
