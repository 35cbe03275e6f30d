package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nkatzz/oledgo/internal/config"
	"github.com/nkatzz/oledgo/internal/learner"
	"github.com/nkatzz/oledgo/internal/learner/fixture"
	"github.com/nkatzz/oledgo/internal/logic"
)

// addStreamFlags registers the --config and --examples flags shared by
// every subcommand that drives the learning loop.
func addStreamFlags(cmd *cobra.Command) (configPath, examplesPath *string) {
	configPath = cmd.Flags().String("config", "", "path to a YAML config file (defaults built in if omitted)")
	examplesPath = cmd.Flags().StringP("examples", "e", "", "path to a YAML example stream (required)")
	cmd.MarkFlagRequired("examples")
	return
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// newLogger returns the logrus logger shared by every subcommand, at Info
// level with text formatting (the CLI is interactive, not a log-shipping
// target).
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(logrus.InfoLevel)
	return log
}

// newDemoLearner wires a Learner to the fixture package's stand-in
// collaborators (the naive bottom-up solver and conservative-abduction
// structure learner). Production wiring would substitute a real ASP
// solver and structure-learning component behind the same
// ASPSolver/StructureLearner interfaces; the CLI's demo path is explicitly
// scoped to the fixtures, since a real solver and structure learner are
// out of scope for this repository.
func newDemoLearner(cfg *config.Config, log *logrus.Logger) *learner.Learner {
	return learner.New(
		cfg,
		fixture.NewSolver(),
		fixture.NewAbducer(cfg.WeightFloor),
		fixture.NewScorer(0.1),
		learner.NewHoeffdingExpander(cfg.ScoringMode),
		log,
	)
}

// renderTheory pretty-prints every top clause in t, grouped by head
// predicate, one rule per line.
func renderTheory(t *logic.Theory) string {
	var out string
	for _, c := range t.Initiation {
		out += logic.Render(c) + "\n"
	}
	for _, c := range t.Termination {
		out += logic.Render(c) + "\n"
	}
	return out
}
