package sat

import (
	"github.com/xDarkicex/satsolve/satcore"
)

// CdclStatistics tracks simple counters over a CdclEngine run.
type CdclStatistics struct {
	Decisions      int
	Propagations   int
	Conflicts      int
	LearnedClauses int
	Backjumps      int
}

// CdclEngine decides satisfiability by conflict-driven clause learning: unit
// propagate to a fixpoint recording an implication graph, and on conflict
// analyze it down to a single asserting clause via a ConflictAnalyzer, then
// backjump non-chronologically instead of undoing one decision at a time.
type CdclEngine struct {
	model         *CnfModel
	state         CnfState
	heuristic     Heuristic
	analyzer      ConflictAnalyzer
	graph         *ImplicationGraph
	decisionLevel int
	learned       []Clause
	log           *StepLog
	Statistics    CdclStatistics
}

// NewCdclEngine builds a CdclEngine over model with the given options.
// opts.CuttingMethod must be "" or "1UIP" — "LUIP" is named by the
// constructor surface this mirrors but was never actually implemented
// differently from 1UIP in the original source, so it is rejected here
// rather than silently aliased.
func NewCdclEngine(model *CnfModel, opts EngineOptions) (*CdclEngine, error) {
	state, err := newState(model, opts)
	if err != nil {
		return nil, err
	}
	h, err := NewHeuristic(opts.Heuristic, opts.K, opts.Rng)
	if err != nil {
		return nil, err
	}
	switch opts.CuttingMethod {
	case "", "1UIP":
	default:
		return nil, satcore.New("sat", "NewCdclEngine", satcore.InvalidArgument,
			"cutting_method must be \"1UIP\" (the only implemented cut)")
	}
	return &CdclEngine{
		model:     model,
		state:     state,
		heuristic: namedHeuristic{Heuristic: h, name: heuristicName(h.Name(), opts)},
		analyzer:  FirstUIPAnalyzer{},
		graph:     NewImplicationGraph(),
		log:       NewStepLog(opts.UseLogger),
	}, nil
}

// State exposes the engine's bookkeeping object.
func (e *CdclEngine) State() CnfState { return e.state }

// StepLog returns the engine's (possibly disabled) trace.
func (e *CdclEngine) StepLog() *StepLog { return e.log }

// LearnedClauses returns every clause learned over the run so far, in
// learning order.
func (e *CdclEngine) LearnedClauses() []Clause { return e.learned }

// Solve runs the CDCL loop to completion and reports whether the formula
// is satisfiable. On success, e.State().Assignments() holds a satisfying
// assignment.
func (e *CdclEngine) Solve() bool {
	for {
		if e.state.IsSatisfied() {
			return true
		}
		conflict, hasConflict := e.unitPropagate()
		if hasConflict {
			e.Statistics.Conflicts++
			if e.decisionLevel == 0 {
				return false
			}
			learned, backtrackLevel := e.analyzer.Analyze(e.state, e.graph, conflict, e.decisionLevel)
			e.learned = append(e.learned, learned)
			e.Statistics.LearnedClauses++
			bt := backtrackLevel
			e.log.LogGraphStep(e.decisionLevel, nil, nil, nil, learned, &bt, e.analyzer.Name())
			e.backjump(backtrackLevel)
			e.state.AddClause(learned)
			e.Statistics.Backjumps++
			continue
		}
		if e.state.IsSatisfied() {
			return true
		}
		lit, err := e.heuristic.Decide(e.state)
		if err != nil {
			return false
		}
		e.decisionLevel++
		e.state.Assign(lit)
		e.graph.Record(lit, e.decisionLevel, nil)
		e.Statistics.Decisions++
		e.log.LogGraphStep(e.decisionLevel, &lit, nil, &GraphNode{DecisionLevel: e.decisionLevel}, nil, nil, "")
	}
}

// unitPropagate runs unit propagation to a fixpoint, recording each forced
// literal's implication-graph node. It returns the first contradicted
// clause's literals (by ascending clause index, for determinism) if one is
// found.
func (e *CdclEngine) unitPropagate() (Clause, bool) {
	for {
		units := e.state.UnitaryClauses()
		if len(units) == 0 {
			return nil, false
		}
		idx := units[0]
		lit, ok := unitLiteralOf(e.state, idx)
		if !ok {
			return nil, false
		}
		e.state.Assign(lit)
		antecedent := idx
		e.graph.Record(lit, e.decisionLevel, &antecedent)
		e.Statistics.Propagations++
		e.log.LogGraphStep(e.decisionLevel, nil, &lit, &GraphNode{DecisionLevel: e.decisionLevel, Antecedent: &antecedent}, nil, nil, "")

		if e.state.IsSatisfied() {
			return nil, false
		}
		if e.state.IsUnsatisfiable() {
			contra := e.state.ContradictedClauses()[0]
			return e.state.ClauseLiterals(contra), true
		}
	}
}

// backjump retracts every literal fixed above level and rewinds the
// decision level, without touching anything at or below it — the
// non-chronological part of CDCL.
func (e *CdclEngine) backjump(level int) {
	for _, lit := range e.graph.LiteralsAboveLevel(level) {
		if e.state.Assignments().IsAssigned(lit) {
			e.state.Unassign(lit)
		}
		e.graph.Delete(lit)
	}
	e.decisionLevel = level
}
