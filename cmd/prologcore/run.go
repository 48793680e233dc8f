package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maxevg/prolog/internal/answer"
	"github.com/maxevg/prolog/internal/config"
	"github.com/maxevg/prolog/internal/scenario"
	"github.com/maxevg/prolog/internal/trace"
	"github.com/maxevg/prolog/pkg/engine"
	"github.com/maxevg/prolog/pkg/store"
)

func newRunCmd() *cobra.Command {
	var (
		name        string
		verbose     bool
		occursCheck bool
		maxSolns    int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load a scenario and print its query's solutions",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ok := scenario.ByName(name)
			if !ok {
				return fmt.Errorf("unknown scenario %q; run %q to list them", name, "prologcore facts")
			}

			db := store.New()
			if err := db.Append(s.Rules...); err != nil {
				return fmt.Errorf("loading %s: %w", s.Name, err)
			}

			opts := []engine.Option{
				engine.WithConfig(config.New(
					configOpts(occursCheck, maxSolns)...,
				)),
			}
			if verbose {
				opts = append(opts, engine.WithLogger(trace.New("prologcore")))
			}
			e := engine.New(db, opts...)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			fmt.Printf("?- %s.\n", s.Goal.String())
			count := 0
			for sol := range e.Solve(ctx, s.Goal) {
				count++
				fmt.Println(answer.Format(sol))
				if out := db.StreamRead(); out != "" {
					fmt.Print(out)
				}
			}
			if count == 0 {
				fmt.Println("false.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "scenario", "s", "family", "scenario to run (see 'prologcore facts')")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "trace resolution to stderr")
	cmd.Flags().BoolVar(&occursCheck, "occurs-check", false, "enable the occurs check during unification")
	cmd.Flags().IntVar(&maxSolns, "max-solutions", 0, "stop after this many solutions (0 = unbounded)")
	return cmd
}

func configOpts(occursCheck bool, maxSolns int) []config.Option {
	var opts []config.Option
	if occursCheck {
		opts = append(opts, config.WithOccursCheck())
	}
	if maxSolns > 0 {
		opts = append(opts, config.WithMaxSolutions(maxSolns))
	}
	return opts
}
