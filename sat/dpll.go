package sat

import (
	"math/rand"

	"github.com/xDarkicex/satsolve/satcore"
)

// EngineOptions configures a DpllEngine or CdclEngine: which heuristic to
// branch with, the watch discipline to bookkeep with, and whether to
// record a StepLog.
type EngineOptions struct {
	Heuristic     HeuristicKind
	K             int
	TWL           bool
	TrueTWL       bool
	UseLogger     bool
	Rng           *rand.Rand
	CuttingMethod string // "" or "1UIP" (the same cut), CdclEngine only; any other value is rejected
}

func newState(model *CnfModel, opts EngineOptions) (CnfState, error) {
	if opts.TWL && opts.TrueTWL {
		return nil, satcore.New("sat", "newState", satcore.InvalidArgument,
			"twl and true_twl are mutually exclusive")
	}
	switch {
	case opts.TrueTWL:
		return NewTrueTWLState(model), nil
	case opts.TWL:
		return NewTWLState(model), nil
	default:
		return NewPlainState(model), nil
	}
}

func heuristicName(base string, opts EngineOptions) string {
	switch {
	case opts.TrueTWL:
		return base + " true_twl"
	case opts.TWL:
		return base + " twl"
	default:
		return base
	}
}

type upResult int

const (
	upInconclusive upResult = iota
	upSAT
	upConflict
)

// unitLiteralOf returns the single unassigned literal of clause idx, which
// must currently be unitary.
func unitLiteralOf(state CnfState, idx int) (Literal, bool) {
	for _, lit := range state.ClauseLiterals(idx) {
		if !state.Assignments().IsAssigned(lit) {
			return lit, true
		}
	}
	return 0, false
}

// unitPropagationLoop repeatedly picks the lowest-indexed unitary clause,
// assigns its forced literal, and continues until no unitary clause
// remains (upInconclusive, with propagated holding every literal it forced
// along the way), the formula becomes fully satisfied (upSAT), or a clause
// is contradicted (upConflict, with every literal this call forced already
// unwound before returning).
func unitPropagationLoop(state CnfState, log *StepLog, decisionLevel int) (upResult, []Literal) {
	var propagated []Literal
	for {
		units := state.UnitaryClauses()
		if len(units) == 0 {
			return upInconclusive, propagated
		}
		lit, ok := unitLiteralOf(state, units[0])
		if !ok {
			return upInconclusive, propagated
		}
		state.Assign(lit)
		propagated = append(propagated, lit)
		log.LogStep(state, decisionLevel, nil, &lit, "UP")
		if state.IsSatisfied() {
			return upSAT, propagated
		}
		if state.IsUnsatisfiable() {
			for i := len(propagated) - 1; i >= 0; i-- {
				state.Unassign(propagated[i])
			}
			return upConflict, nil
		}
	}
}

// DpllEngine decides satisfiability by recursive backtracking: unit
// propagation to a fixpoint, then branch on a heuristically chosen literal,
// trying it true before false, undoing fully on failure of both.
type DpllEngine struct {
	model         *CnfModel
	state         CnfState
	heuristic     Heuristic
	decisionLevel int
	log           *StepLog
	Statistics    DpllStatistics
}

// DpllStatistics tracks simple counters over a DpllEngine run.
type DpllStatistics struct {
	Decisions    int
	Propagations int
	Backtracks   int
}

// NewDpllEngine builds a DpllEngine over model with the given options. PLE
// is not run automatically — callers wanting it invoke PureLiteralElimination
// on the returned engine's State before calling Solve.
func NewDpllEngine(model *CnfModel, opts EngineOptions) (*DpllEngine, error) {
	state, err := newState(model, opts)
	if err != nil {
		return nil, err
	}
	h, err := NewHeuristic(opts.Heuristic, opts.K, opts.Rng)
	if err != nil {
		return nil, err
	}
	return &DpllEngine{
		model:     model,
		state:     state,
		heuristic: namedHeuristic{Heuristic: h, name: heuristicName(h.Name(), opts)},
		log:       NewStepLog(opts.UseLogger),
	}, nil
}

// State exposes the engine's bookkeeping object, e.g. so callers can run
// PureLiteralElimination on it before Solve.
func (e *DpllEngine) State() CnfState { return e.state }

// StepLog returns the engine's (possibly disabled) trace.
func (e *DpllEngine) StepLog() *StepLog { return e.log }

// Solve runs the recursive DPLL search to completion and reports whether
// the formula is satisfiable. On success, e.State().Assignments() holds a
// satisfying assignment.
func (e *DpllEngine) Solve() bool {
	return e.solve()
}

func (e *DpllEngine) solve() bool {
	if e.state.IsSatisfied() {
		return true
	}
	if e.state.IsUnsatisfiable() {
		return false
	}
	switch status, propagated := unitPropagationLoop(e.state, e.log, e.decisionLevel); status {
	case upSAT:
		e.Statistics.Propagations += len(propagated)
		return true
	case upConflict:
		return false
	default:
		e.Statistics.Propagations += len(propagated)
		return e.decide(propagated)
	}
}

func (e *DpllEngine) decide(propagated []Literal) bool {
	lit, err := e.heuristic.Decide(e.state)
	if err != nil {
		if satcore.IsKind(err, satcore.NoProgress) {
			return e.state.IsSatisfied()
		}
		return false
	}
	e.Statistics.Decisions++
	e.decisionLevel++

	e.state.Assign(lit)
	e.log.LogStep(e.state, e.decisionLevel, &lit, nil, "INC_DL "+e.heuristic.Name())
	if e.solve() {
		return true
	}

	neg := lit.Negate()
	e.state.Flip(neg)
	e.log.LogStep(e.state, e.decisionLevel, &neg, nil, "INC_DL "+e.heuristic.Name())
	if e.solve() {
		return true
	}

	e.state.Unassign(neg)
	for i := len(propagated) - 1; i >= 0; i-- {
		e.state.Unassign(propagated[i])
	}
	e.decisionLevel--
	e.Statistics.Backtracks++
	return false
}

// namedHeuristic overrides Name() to carry the watch-discipline suffix
// without each Heuristic implementation needing to know about it.
type namedHeuristic struct {
	Heuristic
	name string
}

func (n namedHeuristic) Name() string { return n.name }
