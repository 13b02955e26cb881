package sat

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/xDarkicex/satsolve/satcore"
)

// HeuristicKind names one of the seven branching heuristics a DpllEngine
// or CdclEngine can be configured with.
type HeuristicKind int

const (
	Default HeuristicKind = iota
	DLCS
	DLIS
	RDLCS
	RDLIS
	MOMs
	RMOMs
)

func (k HeuristicKind) String() string {
	switch k {
	case Default:
		return "default"
	case DLCS:
		return "dlcs"
	case DLIS:
		return "dlis"
	case RDLCS:
		return "rdlcs"
	case RDLIS:
		return "rdlis"
	case MOMs:
		return "moms"
	case RMOMs:
		return "rmoms"
	default:
		return "unknown"
	}
}

// ParseHeuristicKind resolves a heuristic name (as accepted on the CLI or
// in EngineOptions) to its HeuristicKind, or an InvalidArgument error for
// anything else.
func ParseHeuristicKind(name string) (HeuristicKind, error) {
	switch name {
	case "default", "":
		return Default, nil
	case "dlcs":
		return DLCS, nil
	case "dlis":
		return DLIS, nil
	case "rdlcs":
		return RDLCS, nil
	case "rdlis":
		return RDLIS, nil
	case "moms":
		return MOMs, nil
	case "rmoms":
		return RMOMs, nil
	default:
		return 0, satcore.New("sat", "ParseHeuristicKind", satcore.InvalidArgument,
			fmt.Sprintf("unknown heuristic %q", name))
	}
}

// Heuristic chooses the next decision literal from a State. Implementations
// never mutate the state they're given.
type Heuristic interface {
	// Name reports the heuristic's identity, suffixed with " twl" or
	// " true_twl" by the engine when running against those state
	// variants, matching the naming the original step log used.
	Name() string
	// Decide returns the literal to branch on next. It returns a
	// NoProgress error if the unsatisfied clauses it examines have no
	// unassigned literal left.
	Decide(state CnfState) (Literal, error)
}

// NewHeuristic builds a Heuristic for kind, validating k (required to be
// >= 0 for MOMs/RMOMs) and wiring rng for the randomized variants. rng may
// be nil for the non-randomized kinds.
func NewHeuristic(kind HeuristicKind, k int, rng *rand.Rand) (Heuristic, error) {
	if (kind == MOMs || kind == RMOMs) && k < 0 {
		return nil, satcore.New("sat", "NewHeuristic", satcore.InvalidArgument,
			fmt.Sprintf("k must be >= 0 for %s, got %d", kind, k))
	}
	switch kind {
	case Default:
		return defaultHeuristic{}, nil
	case DLCS:
		return countHeuristic{name: "dlcs", pick: pickDLCS}, nil
	case DLIS:
		return countHeuristic{name: "dlis", pick: pickDLIS}, nil
	case RDLCS:
		return countHeuristic{name: "rdlcs", pick: pickDLCS, randomize: true, rng: rngOrNew(rng)}, nil
	case RDLIS:
		return countHeuristic{name: "rdlis", pick: pickDLIS, randomize: true, rng: rngOrNew(rng)}, nil
	case MOMs:
		return momsHeuristic{name: "moms", k: k}, nil
	case RMOMs:
		return momsHeuristic{name: "rmoms", k: k, randomize: true, rng: rngOrNew(rng)}, nil
	default:
		return nil, satcore.New("sat", "NewHeuristic", satcore.InvalidArgument,
			fmt.Sprintf("unknown heuristic kind %v", kind))
	}
}

func rngOrNew(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewSource(1))
}

// unassignedLiteralsByVar counts, over every unassigned literal in every
// currently-unsatisfied clause, how many times each variable appears
// positively and negatively.
func unassignedLiteralsByVar(state CnfState) map[int][2]int {
	counts := make(map[int][2]int)
	for i := 0; i < state.NumClauses(); i++ {
		if state.IsClauseSatisfied(i) {
			continue
		}
		for _, lit := range state.ClauseLiterals(i) {
			if state.Assignments().IsAssigned(lit) {
				continue
			}
			c := counts[lit.Variable()]
			if lit.Polarity() {
				c[0]++
			} else {
				c[1]++
			}
			counts[lit.Variable()] = c
		}
	}
	return counts
}

func sortedVars(counts map[int][2]int) []int {
	vars := make([]int, 0, len(counts))
	for v := range counts {
		vars = append(vars, v)
	}
	sort.Ints(vars)
	return vars
}

type defaultHeuristic struct{}

func (defaultHeuristic) Name() string { return "default" }

// Decide returns the variable of the first unassigned literal found by
// scanning unsatisfied clauses in ascending index order, always as a
// positive literal.
func (defaultHeuristic) Decide(state CnfState) (Literal, error) {
	for i := 0; i < state.NumClauses(); i++ {
		if state.IsClauseSatisfied(i) {
			continue
		}
		for _, lit := range state.ClauseLiterals(i) {
			if !state.Assignments().IsAssigned(lit) {
				return Literal(lit.Variable()), nil
			}
		}
	}
	return 0, satcore.New("sat", "defaultHeuristic.Decide", satcore.NoProgress,
		"no unassigned variable remains")
}

func pickDLCS(vars []int, counts map[int][2]int) (int, bool) {
	bestVar := 0
	bestScore := -1
	bestPos := false
	for _, v := range vars {
		c := counts[v]
		score := c[0] + c[1]
		if score > bestScore {
			bestScore = score
			bestVar = v
			bestPos = c[0] >= c[1]
		}
	}
	return bestVar, bestPos
}

func pickDLIS(vars []int, counts map[int][2]int) (int, bool) {
	bestVar := 0
	bestCount := -1
	bestPos := false
	for _, v := range vars {
		c := counts[v]
		if c[0] > bestCount {
			bestCount = c[0]
			bestVar = v
			bestPos = true
		}
		if c[1] > bestCount {
			bestCount = c[1]
			bestVar = v
			bestPos = false
		}
	}
	return bestVar, bestPos
}

type countHeuristic struct {
	name      string
	pick      func(vars []int, counts map[int][2]int) (int, bool)
	randomize bool
	rng       *rand.Rand
}

func (h countHeuristic) Name() string { return h.name }

func (h countHeuristic) Decide(state CnfState) (Literal, error) {
	counts := unassignedLiteralsByVar(state)
	if len(counts) == 0 {
		return 0, satcore.New("sat", "countHeuristic.Decide", satcore.NoProgress,
			"no unassigned variable remains")
	}
	v, pos := h.pick(sortedVars(counts), counts)
	if h.randomize {
		pos = h.rng.Intn(2) == 0
	}
	if pos {
		return Literal(v), nil
	}
	return Literal(-v), nil
}

// clausesAtMinSize returns the indices of currently-unsatisfied clauses
// whose number of unassigned literals equals the smallest such count in
// the formula.
func clausesAtMinSize(state CnfState) []int {
	minSize := math.MaxInt
	var unsatisfied []int
	for i := 0; i < state.NumClauses(); i++ {
		if state.IsClauseSatisfied(i) {
			continue
		}
		unsatisfied = append(unsatisfied, i)
		n := 0
		for _, lit := range state.ClauseLiterals(i) {
			if !state.Assignments().IsAssigned(lit) {
				n++
			}
		}
		if n < minSize {
			minSize = n
		}
	}
	var out []int
	for _, i := range unsatisfied {
		n := 0
		for _, lit := range state.ClauseLiterals(i) {
			if !state.Assignments().IsAssigned(lit) {
				n++
			}
		}
		if n == minSize {
			out = append(out, i)
		}
	}
	return out
}

type momsHeuristic struct {
	name      string
	k         int
	randomize bool
	rng       *rand.Rand
}

func (h momsHeuristic) Name() string { return h.name }

// Decide counts EVERY literal occurrence (not just unassigned ones) in the
// set of unsatisfied clauses with the fewest unassigned literals, scores
// each variable as (pos+neg)*2^k + pos*neg, and picks the maximizer. This
// matches the original MOMs scoring exactly: the minimal-size filter uses
// unassigned-literal counts, but the tally over qualifying clauses counts
// every literal in them, assigned or not.
func (h momsHeuristic) Decide(state CnfState) (Literal, error) {
	clauses := clausesAtMinSize(state)
	if len(clauses) == 0 {
		return 0, satcore.New("sat", "momsHeuristic.Decide", satcore.NoProgress,
			"no unassigned variable remains")
	}
	counts := make(map[int][2]int)
	for _, i := range clauses {
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
	bestVar := 0
	bestScore := -1
	bestPos := false
	factor := 1 << uint(h.k)
	for _, v := range sortedVars(counts) {
		if state.Assignments().IsAssigned(Literal(v)) {
			continue
		}
		c := counts[v]
		score := (c[0]+c[1])*factor + c[0]*c[1]
		if score > bestScore {
			bestScore = score
			bestVar = v
			bestPos = c[0] >= c[1]
		}
	}
	if bestVar == 0 {
		return 0, satcore.New("sat", "momsHeuristic.Decide", satcore.NoProgress,
			"no unassigned variable remains")
	}
	if h.randomize {
		bestPos = h.rng.Intn(2) == 0
	}
	if bestPos {
		return Literal(bestVar), nil
	}
	return Literal(-bestVar), nil
}
