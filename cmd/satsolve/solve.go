package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/xDarkicex/satsolve/dimacs"
	"github.com/xDarkicex/satsolve/sat"
)

var (
	heuristicFlag string
	twlFlag       bool
	trueTWLFlag   bool
	cdclFlag      bool
	pleFlag       bool
	kFlag         int
	logStepsFlag  bool
	cuttingFlag   string
)

// newSolveCmd returns the command that reads a DIMACS file and runs either
// engine against it.
func newSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Decide satisfiability of a DIMACS CNF formula",
		Long: `solve reads a DIMACS CNF formula from the given file, or from stdin if
no file is given, and reports SAT or UNSAT, along with a satisfying
assignment when SAT.

    $ satsolve solve formula.cnf --cdcl --heuristic dlcs --twl
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSolve,
	}
	cmd.Flags().StringVar(&heuristicFlag, "heuristic", "default",
		"branching heuristic: default, dlcs, dlis, rdlcs, rdlis, moms, rmoms")
	cmd.Flags().BoolVar(&twlFlag, "twl", false, "use two-watched-literals bookkeeping")
	cmd.Flags().BoolVar(&trueTWLFlag, "true-twl", false, "use strict two-watched-literals bookkeeping")
	cmd.Flags().BoolVar(&cdclFlag, "cdcl", false, "use CDCL instead of DPLL")
	cmd.Flags().BoolVar(&pleFlag, "ple", false, "run pure literal elimination before deciding (DPLL only)")
	cmd.Flags().IntVar(&kFlag, "k", 0, "k parameter for moms/rmoms")
	cmd.Flags().BoolVar(&logStepsFlag, "log-steps", false, "record and print a step trace")
	cmd.Flags().StringVar(&cuttingFlag, "cutting-method", "1UIP", "CDCL conflict-analysis cut: 1UIP")
	return cmd
}

func runSolve(cmd *cobra.Command, args []string) error {
	r := os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()
		r = f
	}

	model, err := dimacs.Read(r)
	if err != nil {
		return fmt.Errorf("reading DIMACS input: %w", err)
	}
	log.WithFields(log.Fields{"vars": model.NumVars, "clauses": model.NumClauses}).Info("parsed formula")

	kind, err := sat.ParseHeuristicKind(heuristicFlag)
	if err != nil {
		return err
	}
	opts := sat.EngineOptions{
		Heuristic:     kind,
		K:             kFlag,
		TWL:           twlFlag,
		TrueTWL:       trueTWLFlag,
		UseLogger:     logStepsFlag,
		CuttingMethod: cuttingFlag,
	}

	var solver sat.Solver
	if cdclFlag {
		engine, err := sat.NewCdclEngine(model, opts)
		if err != nil {
			return err
		}
		solver = engine
	} else {
		engine, err := sat.NewDpllEngine(model, opts)
		if err != nil {
			return err
		}
		if pleFlag {
			sat.PureLiteralElimination(engine.State())
		}
		solver = engine
	}

	satisfiable := solver.Solve()
	if logStepsFlag {
		fmt.Fprint(cmd.OutOrStdout(), solver.StepLog().String())
	}

	if !satisfiable {
		fmt.Fprintln(cmd.OutOrStdout(), "UNSAT")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "SAT")
	for _, v := range model.Variables() {
		val, ok := solver.State().Assignments()[v]
		if !ok {
			continue
		}
		if val {
			fmt.Fprintf(cmd.OutOrStdout(), "%d ", v)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "-%d ", v)
		}
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}
