package sat

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// DpllStep is one recorded step of a DpllEngine run: the decision level and
// partial assignment at that point, which literal was decided or implied,
// the clause-index classification (satisfied / contradicted / unit /
// pending), and a short tag naming what happened.
type DpllStep struct {
	DecisionLevel       int
	PartialAssignment   Assignment
	DecisionLiteral     *Literal
	ImpliedLiteral      *Literal
	SatisfiedClauses    []int
	ContradictedClauses []int
	UnitClauses         []int
	PendingClauses      []int
	Explanation         string
}

// GraphNode mirrors one implication-graph entry: the decision level the
// literal was fixed at, and the clause index that implied it, or nil for a
// decision literal.
type GraphNode struct {
	DecisionLevel int
	Antecedent    *int
}

// GraphStep is one recorded step of a CdclEngine run.
type GraphStep struct {
	DecisionLevel   int
	DecisionLiteral *Literal
	ImpliedLiteral  *Literal
	LastNode        *GraphNode
	LearnedClause   Clause
	BacktrackLevel  *int
	CutMethod       string
}

// StepLog is an ordered, optional trace of engine activity. A disabled
// StepLog accepts Log calls as no-ops, so engines can call it
// unconditionally without branching on whether tracing is on.
type StepLog struct {
	enabled bool
	steps   []DpllStep
	graph   []GraphStep
}

// NewStepLog creates a StepLog. When enabled is false every Log call is a
// no-op and Steps/GraphSteps always return nil.
func NewStepLog(enabled bool) *StepLog {
	return &StepLog{enabled: enabled}
}

// Enabled reports whether this log records steps.
func (l *StepLog) Enabled() bool { return l.enabled }

// LogStep appends a DPLL-style record, classifying every current clause by
// inspecting state.
func (l *StepLog) LogStep(state CnfState, decisionLevel int, decisionLiteral, impliedLiteral *Literal, explanation string) {
	if l == nil || !l.enabled {
		return
	}
	step := DpllStep{
		DecisionLevel:     decisionLevel,
		PartialAssignment: state.Assignments().Clone(),
		DecisionLiteral:   decisionLiteral,
		ImpliedLiteral:    impliedLiteral,
		Explanation:       explanation,
	}
	for i := 0; i < state.NumClauses(); i++ {
		switch {
		case state.IsClauseSatisfied(i):
			step.SatisfiedClauses = append(step.SatisfiedClauses, i)
		case state.NumUnassignedInClause(i) == 0:
			step.ContradictedClauses = append(step.ContradictedClauses, i)
		case state.NumUnassignedInClause(i) == 1:
			step.UnitClauses = append(step.UnitClauses, i)
		default:
			step.PendingClauses = append(step.PendingClauses, i)
		}
	}
	l.steps = append(l.steps, step)
}

// LogGraphStep appends a CDCL implication-graph record.
func (l *StepLog) LogGraphStep(decisionLevel int, decisionLiteral, impliedLiteral *Literal, lastNode *GraphNode, learned Clause, backtrackLevel *int, cutMethod string) {
	if l == nil || !l.enabled {
		return
	}
	l.graph = append(l.graph, GraphStep{
		DecisionLevel:   decisionLevel,
		DecisionLiteral: decisionLiteral,
		ImpliedLiteral:  impliedLiteral,
		LastNode:        lastNode,
		LearnedClause:   learned,
		BacktrackLevel:  backtrackLevel,
		CutMethod:       cutMethod,
	})
}

// Steps returns the recorded DPLL steps, in order.
func (l *StepLog) Steps() []DpllStep {
	if l == nil {
		return nil
	}
	return l.steps
}

// GraphSteps returns the recorded CDCL implication-graph steps, in order.
func (l *StepLog) GraphSteps() []GraphStep {
	if l == nil {
		return nil
	}
	return l.graph
}

func formatAssignment(a Assignment) string {
	vars := make([]int, 0, len(a))
	for v := range a {
		vars = append(vars, v)
	}
	sort.Ints(vars)
	parts := make([]string, 0, len(vars))
	for _, v := range vars {
		if a[v] {
			parts = append(parts, fmt.Sprintf("%d", v))
		} else {
			parts = append(parts, fmt.Sprintf("-%d", v))
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatLiteralPtr(lit *Literal) string {
	if lit == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *lit)
}

// WriteTable renders every recorded step as one line of '|'-separated
// fields (DPLL steps first, then CDCL graph steps), in the spirit of the
// original step logger's printed output.
func (l *StepLog) WriteTable(w io.Writer) {
	if l == nil {
		return
	}
	for i, s := range l.steps {
		fmt.Fprintf(w, "step %d | DL=%d | assign=%s | decide=%s | imply=%s | sat=%v contra=%v unit=%v pending=%v | %s\n",
			i, s.DecisionLevel, formatAssignment(s.PartialAssignment),
			formatLiteralPtr(s.DecisionLiteral), formatLiteralPtr(s.ImpliedLiteral),
			s.SatisfiedClauses, s.ContradictedClauses, s.UnitClauses, s.PendingClauses, s.Explanation)
	}
	for i, g := range l.graph {
		last := "-"
		if g.LastNode != nil {
			ante := "none"
			if g.LastNode.Antecedent != nil {
				ante = fmt.Sprintf("%d", *g.LastNode.Antecedent)
			}
			last = fmt.Sprintf("{DL:%d Ante:%s}", g.LastNode.DecisionLevel, ante)
		}
		bt := "-"
		if g.BacktrackLevel != nil {
			bt = fmt.Sprintf("%d", *g.BacktrackLevel)
		}
		fmt.Fprintf(w, "graph %d | DL=%d | decide=%s | imply=%s | last=%s | learned=%v | backtrack=%s | cut=%s\n",
			i, g.DecisionLevel, formatLiteralPtr(g.DecisionLiteral), formatLiteralPtr(g.ImpliedLiteral),
			last, g.LearnedClause, bt, g.CutMethod)
	}
}

// String renders the table into a string.
func (l *StepLog) String() string {
	var b strings.Builder
	l.WriteTable(&b)
	return b.String()
}
