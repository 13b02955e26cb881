package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// newRootCmd builds the satsolve command tree: a "solve" command (the only
// one so far) under a root that wires the shared --debug flag to logrus.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "satsolve",
		Short: "satsolve",
		Long:  "satsolve reads a DIMACS CNF formula and decides its satisfiability with DPLL or CDCL.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
	}
	root.PersistentFlags().Bool("debug", false, "enable debug logging")
	root.AddCommand(newSolveCmd())
	return root
}
