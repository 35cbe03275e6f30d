package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nkatzz/oledgo/internal/learner"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Drive the online loop over an example stream and report statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			examplesPath, _ := cmd.Flags().GetString("examples")

			cfg, err := loadConfig(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			examples, err := learner.LoadExamples(examplesPath)
			if err != nil {
				return fmt.Errorf("load examples: %w", err)
			}

			log := newLogger()
			l := newDemoLearner(cfg, log)

			ctx := context.Background()
			for _, ex := range examples {
				if err := l.Step(ctx, ex); err != nil {
					return fmt.Errorf("step on example %s: %w", ex.ID, err)
				}
			}

			stats := l.Stats()
			fmt.Printf("examples seen:     %d\n", stats.ExamplesSeen)
			fmt.Printf("true positives:    %d\n", stats.TP)
			fmt.Printf("false positives:   %d\n", stats.FP)
			fmt.Printf("false negatives:   %d\n", stats.FN)
			fmt.Printf("total groundings:  %d\n", stats.TotalGroundings)
			fmt.Printf("top clauses:       %d\n", len(l.Theory().TopClauses()))
			return nil
		},
	}
	addStreamFlags(cmd)
	return cmd
}
