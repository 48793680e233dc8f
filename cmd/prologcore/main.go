// Command prologcore is a non-interactive driver over pkg/engine: it
// loads one of the built-in scenarios, runs its query, and prints answers
// the way the external REPL described in spec.md §6 would. It is not that
// REPL — there is no source-file loader or scanner/parser in scope (see
// SPEC_FULL.md's Non-goals) — it exists to exercise load→query→print
// end-to-end from the command line and in CI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "prologcore",
		Short: "Run the built-in Prolog core scenarios",
		Long: "prologcore drives pkg/engine against the scenarios from spec.md §8.\n" +
			"It has no parser: every scenario's clauses and query are Go-level\n" +
			"term literals (see internal/scenario).",
	}
	root.AddCommand(newRunCmd(), newFactsCmd())
	return root
}
