// Package satcore holds the error vocabulary shared by the sat and dimacs
// packages.
package satcore

import "fmt"

// Kind classifies a SolverError so callers can branch on failure category
// without parsing Message strings.
type Kind int

const (
	// MalformedInput marks a CnfModel that fails structural validation:
	// clause/variable counts that don't match the declared counts, a
	// literal of zero, or a clause referencing a variable outside range.
	MalformedInput Kind = iota
	// InvalidArgument marks a bad constructor argument: an unknown
	// heuristic name, a negative k for MOMs/RMOMs, or an unknown cutting
	// method for CDCL.
	InvalidArgument
	// InvariantViolation marks bookkeeping that disagrees with itself:
	// a clause counted satisfied and contradicted at once, a watched
	// literal no longer present in its clause, and similar internal
	// contract breaks. Seeing this means a State mutator has a bug.
	InvariantViolation
	// NoProgress marks an engine loop that could not make progress and
	// has no decision left to try (a heuristic asked to decide with no
	// unassigned literal left to branch on).
	NoProgress
)

func (k Kind) String() string {
	switch k {
	case MalformedInput:
		return "MalformedInput"
	case InvalidArgument:
		return "InvalidArgument"
	case InvariantViolation:
		return "InvariantViolation"
	case NoProgress:
		return "NoProgress"
	default:
		return "Unknown"
	}
}

// SolverError is the error type returned by every package in this module.
// System names the package of origin ("sat", "dimacs", ...), Op names the
// failing operation, and Kind lets callers branch on failure category.
type SolverError struct {
	System  string
	Op      string
	Kind    Kind
	Message string
}

func (e *SolverError) Error() string {
	if e.System != "" {
		return fmt.Sprintf("%s error in %s.%s: %s", e.Kind, e.System, e.Op, e.Message)
	}
	return fmt.Sprintf("%s error in %s: %s", e.Kind, e.Op, e.Message)
}

// New builds a SolverError for the given system, operation and kind.
func New(system, operation string, kind Kind, message string) *SolverError {
	return &SolverError{System: system, Op: operation, Kind: kind, Message: message}
}

// IsKind reports whether err is a *SolverError of the given Kind.
func IsKind(err error, kind Kind) bool {
	se, ok := err.(*SolverError)
	return ok && se.Kind == kind
}
