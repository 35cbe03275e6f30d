package learner

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/nkatzz/oledgo/internal/config"
	"github.com/nkatzz/oledgo/internal/logic"
)

// Stats is the online loop's cumulative, example-count-indexed view of
// learning progress.
type Stats struct {
	TP, FP, FN      int64
	TotalGroundings int64
	ExamplesSeen    int64
}

// Learner owns one theory and runs the per-example learning protocol
// against it. It is not safe for concurrent use by more than one
// goroutine at a time; Step acquires a Weighted(1) semaphore around its
// body so that two overlapping calls serialize rather than interleave
// solver invocations for this instance.
type Learner struct {
	cfg    *config.Config
	theory *logic.Theory
	sub    *logic.Subsumption

	solver    ASPSolver
	structure StructureLearner
	scorer    RuleScorer
	expander  RuleExpander

	inertiaAtoms []*logic.Literal
	stats        Stats

	guard *semaphore.Weighted
	log   *logrus.Logger
}

// New builds a Learner over an empty theory, wired to its four external
// collaborators.
func New(cfg *config.Config, solver ASPSolver, structure StructureLearner, scorer RuleScorer, expander RuleExpander, log *logrus.Logger) *Learner {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Learner{
		cfg:       cfg,
		theory:    logic.NewTheory(),
		sub:       logic.NewSubsumption(0),
		solver:    solver,
		structure: structure,
		scorer:    scorer,
		expander:  expander,
		guard:     semaphore.NewWeighted(1),
		log:       log,
	}
}

// Theory returns the learner's current theory.
func (l *Learner) Theory() *logic.Theory { return l.theory }

// Stats returns a copy of the learner's cumulative statistics.
func (l *Learner) Stats() Stats { return l.stats }

// Step runs the per-example learning protocol against one example,
// mutating the theory in place. It returns an error only for
// ErrInvariantViolation (fatal) or a collaborator error not classified as
// a recoverable solver failure.
func (l *Learner) Step(ctx context.Context, e *Example) error {
	if err := l.guard.Acquire(ctx, 1); err != nil {
		return errors.Wrap(err, "learner: acquiring step guard")
	}
	defer l.guard.Release(1)

	entry := l.log.WithFields(logrus.Fields{"example": e.ID})

	// 1. Candidate selection.
	rules := l.candidateRules()

	// 2. Inference.
	var inferred InferredState
	var residualInertia []*logic.Literal
	var fallbackFN int64
	if len(rules) > 0 {
		var err error
		inferred, residualInertia, err = l.solver.Infer(ctx, rules, e, e.AxiomModule)
		if err != nil {
			entry.WithError(err).Warn("learner: solver call failed, skipping example for structural updates")
			return nil
		}
	} else {
		inferred = InferredState{}
		fallbackFN = int64(len(e.QueryAtoms))
	}

	// 3. Scoring, against the full theory including refinements.
	allRules := l.allRulesIncludingRefinements()
	result, err := l.scorer.ScoreAndUpdate(e, inferred, allRules, ScoringOptions{Config: l.cfg}, entry)
	if err != nil {
		return errors.Wrapf(err, "learner: scoring example %s", e.ID)
	}
	if len(rules) == 0 {
		result.FN = fallbackFN
	}

	if err := l.validateInvariants(allRules); err != nil {
		return err
	}

	l.applyInertia(result.NewInertiaAtoms, residualInertia)

	// 4. Mistake-driven structural update.
	if result.FP+result.FN > 0 {
		newRules, err := l.structure.GenerateRules(ctx, l.theory, rules, e, RuleGenOptions{Config: l.cfg})
		if err != nil {
			return errors.Wrapf(err, "learner: generating new rules for example %s", e.ID)
		}
		l.admitNewRules(newRules)

		// 5. Score newly added rules on the same example.
		if len(newRules) > 0 {
			if _, err := l.scorer.ScoreAndUpdate(e, inferred, newRules, ScoringOptions{Config: l.cfg}, entry); err != nil {
				return errors.Wrapf(err, "learner: scoring newly added rules for example %s", e.ID)
			}
		}
	}

	// 6. Rule expansion.
	newTop, replaced, err := l.expander.Expand(l.theory.TopClauses(), ExpansionOptions{Config: l.cfg}, entry)
	if err != nil {
		return errors.Wrapf(err, "learner: expanding rules for example %s", e.ID)
	}
	l.applyExpansion(newTop, replaced)

	// 7. Global statistics.
	l.stats.TP += result.TP
	l.stats.FP += result.FP
	l.stats.FN += result.FN
	l.stats.TotalGroundings += result.TotalGroundings
	l.stats.ExamplesSeen++

	entry.WithFields(logrus.Fields{
		"seen": l.stats.ExamplesSeen,
		"tps":  result.TP,
		"fps":  result.FP,
		"fns":  result.FN,
	}).Info("learner: processed example")

	return nil
}

// candidateRules implements step 1: top clauses with a non-empty body and
// precision at least the configured prune threshold.
func (l *Learner) candidateRules() []*logic.Clause {
	var out []*logic.Clause
	for _, c := range l.theory.TopClauses() {
		if len(c.Body) == 0 {
			continue
		}
		if logic.Precision(c) < l.cfg.PruneThreshold {
			continue
		}
		out = append(out, c)
	}
	return out
}

// allRulesIncludingRefinements flattens the theory's top clauses together
// with every refinement reachable from them.
func (l *Learner) allRulesIncludingRefinements() []*logic.Clause {
	var out []*logic.Clause
	for _, c := range l.theory.TopClauses() {
		out = append(out, c)
		out = append(out, c.Refinements...)
	}
	return out
}

// applyInertia updates the carried-over inertia atoms for the next
// example: when DiffuseInertia is set, the newly observed inertia atoms
// replace the carried-over set entirely (diffusing them across the gap
// and then forgetting them); otherwise they are appended to what was
// already carried forward.
func (l *Learner) applyInertia(newAtoms, residual []*logic.Literal) {
	if !l.cfg.WithInertia {
		l.inertiaAtoms = nil
		return
	}
	if l.cfg.DiffuseInertia {
		l.inertiaAtoms = append(append([]*logic.Literal{}, newAtoms...), residual...)
		return
	}
	l.inertiaAtoms = append(l.inertiaAtoms, newAtoms...)
	l.inertiaAtoms = append(l.inertiaAtoms, residual...)
}

// admitNewRules partitions newly generated rules by head predicate
// (handled by Theory.AddTop's bucketing) and merges each against the
// existing top theory rather than adding a subsumed duplicate.
func (l *Learner) admitNewRules(newRules []*logic.Clause) {
	for _, n := range newRules {
		existing := l.theory.TopClauses()
		if merged, _ := logic.MergeOnSubsume(existing, n, l.sub); merged {
			continue
		}
		l.theory.AddTop(n)
	}
	l.theory.Initiation = logic.CompressTheory(l.theory.Initiation, l.sub)
	l.theory.Termination = logic.CompressTheory(l.theory.Termination, l.sub)
}

// applyExpansion installs the rule expander's decisions: any clause in
// replaced is swapped for its mapped refinement, with statistics cleared.
func (l *Learner) applyExpansion(newTop []*logic.Clause, replaced map[*logic.Clause]*logic.Clause) {
	for old, repl := range replaced {
		repl.ClearStatistics()
		l.theory.ReplaceTop(old, repl)
	}
	_ = newTop
}

// validateInvariants checks the learner's fatal invariants after a
// scoring pass: every rule's weight must respect its floor, and every
// refinement's body must remain a strict superset of its parent's.
func (l *Learner) validateInvariants(rules []*logic.Clause) error {
	for _, c := range rules {
		if c.Weight < l.cfg.WeightFloor {
			return errors.Wrapf(logic.ErrInvariantViolation, "clause %s weight %v below floor %v", c.ID, c.Weight, l.cfg.WeightFloor)
		}
		if c.Parent != nil {
			if len(c.Body) <= len(c.Parent.Body) {
				return errors.Wrapf(logic.ErrInvariantViolation, "clause %s body not a strict superset of parent %s", c.ID, c.Parent.ID)
			}
			if c.Head.Predicate != c.Parent.Head.Predicate {
				return errors.Wrapf(logic.ErrInvariantViolation, "clause %s head predicate diverges from parent %s", c.ID, c.Parent.ID)
			}
		}
	}
	return nil
}

// Rescore runs the stream-exhaustion termination pass: clear per-rule
// statistics, iterate the full training stream once more with the final
// rule set, and return clauses meeting the prune threshold.
func (l *Learner) Rescore(ctx context.Context, stream []*Example) ([]*logic.Clause, error) {
	for _, c := range l.theory.TopClauses() {
		c.ClearStatistics()
	}
	entry := l.log.WithField("phase", "rescore")
	for _, e := range stream {
		rules := l.theory.TopClauses()
		inferred, _, err := l.solver.Infer(ctx, rules, e, e.AxiomModule)
		if err != nil {
			entry.WithError(err).Warn("learner: solver call failed during rescore, skipping example")
			continue
		}
		if _, err := l.scorer.ScoreAndUpdate(e, inferred, l.allRulesIncludingRefinements(), ScoringOptions{Config: l.cfg}, entry); err != nil {
			return nil, errors.Wrap(err, "learner: rescoring")
		}
	}

	var kept []*logic.Clause
	for _, c := range l.theory.TopClauses() {
		if logic.Precision(c) >= l.cfg.PruneThreshold {
			kept = append(kept, c)
		}
	}
	return kept, nil
}
