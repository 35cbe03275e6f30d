// Package config loads and validates the learner's CLI-facing settings: the
// specialization depth, pruning threshold, scoring function, comparison
// predicates, weight floor, Hoeffding confidence, and the open-question
// toggles around inertia handling.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nkatzz/oledgo/internal/logic"
)

// Default values applied when a field is left zero in the loaded YAML.
const (
	DefaultSpecializationDepth = 2
	DefaultPruneThreshold      = 0.6
	DefaultWeightFloor         = 1e-5
	DefaultHoeffdingDelta      = 0.05
)

// Config is the full set of settings threaded explicitly through the
// learner; nothing here is read from a package-level global.
type Config struct {
	// SpecializationDepth bounds the number of literals a single
	// refinement step may add.
	SpecializationDepth int `yaml:"specialization_depth"`

	// PruneThreshold is the minimum precision a top clause must hold to
	// stay in the candidate set used for inference and to be returned by a
	// rescore pass. Clauses below it stay in the theory and are still
	// scored and specialized; they are only left out of those two sets.
	PruneThreshold float64 `yaml:"prune_threshold"`

	// ScoringFun names the scoring function: "default", "foilgain", or
	// "fscore". Parsed once at load time into ScoringMode; nothing else
	// in the learner switches on this string.
	ScoringFun  string           `yaml:"scoring_fun"`
	ScoringMode logic.ScoringMode `yaml:"-"`

	// ComparisonPredicates lists the comparison predicates named in the
	// configuration. It is loaded but not read by the learner: the
	// refinement generator's redundancy rule identifies comparison
	// literals by their own Mode.IsComparison flag, not by this list.
	ComparisonPredicates []string `yaml:"comparison_predicates"`

	// WeightFloor is the non-zero lower bound every clause weight is
	// clamped to.
	WeightFloor float64 `yaml:"weight_floor"`

	// HoeffdingDelta is δ in the Hoeffding-bound specialization test: the
	// learner commits to a specialization decision with confidence 1-δ.
	HoeffdingDelta float64 `yaml:"hoeffding_delta"`

	// RuleLearningStrategy names the per-example learning loop's mode, if
	// the collaborator wiring supports more than one; carried through
	// untouched to internal/learner.
	RuleLearningStrategy string `yaml:"rule_learning_strategy"`

	// WithInertia enables the event-calculus inertia assumption.
	WithInertia bool `yaml:"with_inertia"`

	// DiffuseInertia controls how the learner's recorded inertia atoms
	// are updated after each example (when WithInertia is set): when true
	// (the default), the atoms reported for the latest example replace
	// the recorded set; when false, they are appended to it.
	DiffuseInertia bool `yaml:"diffuse_inertia"`
}

// Default returns a Config with every field set to its documented default.
func Default() *Config {
	return &Config{
		SpecializationDepth: DefaultSpecializationDepth,
		PruneThreshold:      DefaultPruneThreshold,
		ScoringFun:          "default",
		ScoringMode:         logic.ScoringDefault,
		WeightFloor:         DefaultWeightFloor,
		HoeffdingDelta:      DefaultHoeffdingDelta,
		WithInertia:         true,
		DiffuseInertia:      true,
	}
}

// Load reads and parses a YAML configuration file at path, applying
// defaults for any field left at its zero value, parsing ScoringFun into
// ScoringMode, and validating the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: reading %s", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "config: parsing %s", path)
	}

	applyDefaults(cfg)

	mode, err := logic.ParseScoringMode(cfg.ScoringFun)
	if err != nil {
		return nil, errors.Wrapf(err, "config: %s", path)
	}
	cfg.ScoringMode = mode

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config: %s", path)
	}
	return cfg, nil
}

// applyDefaults fills in the documented defaults for any field the loaded
// YAML left at its Go zero value.
func applyDefaults(cfg *Config) {
	if cfg.SpecializationDepth == 0 {
		cfg.SpecializationDepth = DefaultSpecializationDepth
	}
	if cfg.PruneThreshold == 0 {
		cfg.PruneThreshold = DefaultPruneThreshold
	}
	if cfg.WeightFloor == 0 {
		cfg.WeightFloor = DefaultWeightFloor
	}
	if cfg.HoeffdingDelta == 0 {
		cfg.HoeffdingDelta = DefaultHoeffdingDelta
	}
}

// Validate reports an error if cfg holds a value outside its legal range.
func (cfg *Config) Validate() error {
	if cfg.SpecializationDepth < 1 {
		return errors.New("specialization_depth must be >= 1")
	}
	if cfg.PruneThreshold < 0 || cfg.PruneThreshold > 1 {
		return errors.New("prune_threshold must be within [0, 1]")
	}
	if cfg.WeightFloor <= 0 {
		return errors.New("weight_floor must be strictly positive")
	}
	if cfg.HoeffdingDelta <= 0 || cfg.HoeffdingDelta >= 1 {
		return errors.New("hoeffding_delta must be within (0, 1)")
	}
	return nil
}
