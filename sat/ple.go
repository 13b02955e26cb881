package sat

// PureLiteralElimination repeatedly scans every unsatisfied clause for
// variables that appear with only one polarity across the whole unsatisfied
// set — pure literals — and assigns them accordingly, stopping once a pass
// makes no further change. It counts every literal occurrence in an
// unsatisfied clause, including ones whose variable happens to already be
// assigned, matching the original's scan exactly; such cases never arise in
// practice here since an already-assigned variable only keeps its clause
// "unsatisfied" if the clause's other literals disagree with it, at which
// point it is no longer pure once both polarities are observed. It is a
// single, one-shot simplification step run before engines begin deciding —
// it is not re-invoked mid-search.
func PureLiteralElimination(state CnfState) []Literal {
	var allAffected []Literal
	for {
		affected := pureLiteralPass(state)
		if len(affected) == 0 {
			return allAffected
		}
		for _, lit := range affected {
			state.Assign(lit)
		}
		allAffected = append(allAffected, affected...)
	}
}

func pureLiteralPass(state CnfState) []Literal {
	counts := make(map[int][2]int)
	for i := 0; i < state.NumClauses(); i++ {
		if state.IsClauseSatisfied(i) {
			continue
		}
		for _, lit := range state.ClauseLiterals(i) {
			c := counts[lit.Variable()]
			if lit.Polarity() {
				c[0]++
			} else {
				c[1]++
			}
			counts[lit.Variable()] = c
		}
	}
	var affected []Literal
	for _, v := range sortedVars(counts) {
		if state.Assignments().IsAssigned(Literal(v)) {
			continue
		}
		c := counts[v]
		switch {
		case c[0] > 0 && c[1] == 0:
			affected = append(affected, Literal(v))
		case c[1] > 0 && c[0] == 0:
			affected = append(affected, Literal(-v))
		}
	}
	return affected
}
