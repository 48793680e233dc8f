package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maxevg/prolog/internal/scenario"
)

func newFactsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "facts",
		Short: "List the available scenarios and the clauses each one loads",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range scenario.All() {
				fmt.Printf("%s — %s\n", s.Name, s.Desc)
				for _, r := range s.Rules {
					fmt.Printf("    %s\n", r.String())
				}
				fmt.Printf("    ?- %s.\n\n", s.Goal.String())
			}
			return nil
		},
	}
}
