// Package dimacs reads and writes the DIMACS CNF text format, the
// conventional interchange format for SAT benchmarks, converting to and
// from sat.CnfModel.
package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xDarkicex/satsolve/sat"
	"github.com/xDarkicex/satsolve/satcore"
)

// Read parses DIMACS CNF text from r into a sat.CnfModel.
//
// A few non-standard variations are accepted for convenience: comment
// lines ('c') may appear anywhere, not just in the preamble; the problem
// line ('p cnf <vars> <clauses>') may be missing; and a trailer following a
// line containing a single '%' is ignored. NumVars and NumClauses are always
// derived from the clauses actually read; a problem line, when present, only
// has to match the clause count and bound the variable numbers.
func Read(r io.Reader) (*sat.CnfModel, error) {
	var declaredVars, declaredClauses int
	haveProblemLine := false
	var clauses []sat.Clause
	var clause sat.Clause

	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		if len(line) == 0 || line[0] == 'c' {
			continue
		}
		if line == "%" {
			break
		}
		if line[0] == 'p' {
			if len(clauses) > 0 {
				return nil, malformed("problem line appears after clauses")
			}
			if haveProblemLine {
				return nil, malformed("multiple problem lines")
			}
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[0] != "p" || fields[1] != "cnf" {
				return nil, malformed(fmt.Sprintf("malformed problem line %q", line))
			}
			var err error
			declaredVars, err = strconv.Atoi(fields[2])
			if err != nil || declaredVars < 0 {
				return nil, malformed(fmt.Sprintf("malformed #vars in problem line %q", line))
			}
			declaredClauses, err = strconv.Atoi(fields[3])
			if err != nil || declaredClauses < 0 {
				return nil, malformed(fmt.Sprintf("malformed #clauses in problem line %q", line))
			}
			haveProblemLine = true
			continue
		}
		for _, field := range strings.Fields(line) {
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, malformed(fmt.Sprintf("invalid literal %q", field))
			}
			if n == 0 {
				clauses = append(clauses, clause)
				clause = nil
			} else {
				clause = append(clause, sat.Literal(n))
			}
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if len(clause) > 0 {
		clauses = append(clauses, clause)
	}

	if haveProblemLine && len(clauses) != declaredClauses {
		return nil, malformed(fmt.Sprintf("problem line declares %d clauses, found %d", declaredClauses, len(clauses)))
	}

	model := &sat.CnfModel{NumClauses: len(clauses), Clauses: clauses}
	vars := make(map[int]struct{})
	for _, c := range clauses {
		for _, lit := range c {
			vars[lit.Variable()] = struct{}{}
		}
	}
	if haveProblemLine {
		for v := range vars {
			if v > declaredVars {
				return nil, malformed(fmt.Sprintf("clause references var %d, but problem line declares %d vars", v, declaredVars))
			}
		}
	}
	// CnfModel.Validate requires NumVars to equal the distinct variables
	// actually referenced; a DIMACS problem line is allowed to overstate
	// the variable count (vars with no occurrence in any clause), so that
	// slack is simply dropped rather than carried into the model.
	model.NumVars = len(vars)

	if err := model.Validate(); err != nil {
		return nil, err
	}
	return model, nil
}

func malformed(msg string) error {
	return satcore.New("dimacs", "Read", satcore.MalformedInput, msg)
}

// Write renders model as DIMACS CNF text, with a problem line derived from
// model's declared NumVars/NumClauses.
func Write(w io.Writer, model *sat.CnfModel) error {
	if _, err := fmt.Fprintf(w, "p cnf %d %d\n", model.NumVars, model.NumClauses); err != nil {
		return err
	}
	for _, c := range model.Clauses {
		parts := make([]string, 0, len(c)+1)
		for _, lit := range c {
			parts = append(parts, strconv.Itoa(int(lit)))
		}
		parts = append(parts, "0")
		if _, err := fmt.Fprintln(w, strings.Join(parts, " ")); err != nil {
			return err
		}
	}
	return nil
}
