package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nkatzz/oledgo/internal/learner"
)

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Drive the online loop over an example stream and pretty-print the induced theory",
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

			rendered := renderTheory(l.Theory())
			if rendered == "" {
				fmt.Println("(empty theory)")
				return nil
			}
			fmt.Print(rendered)
			return nil
		},
	}
	addStreamFlags(cmd)
	return cmd
}
