// Package learner implements the online per-example learning loop that
// drives internal/logic's data model, subsumption, refinement and scoring
// engines against a stream of examples, through four injected
// collaborators that are themselves out of scope: an ASP solver, a
// structure-learning (abduction) component, a per-rule scorer, and a rule
// expander.
package learner

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/nkatzz/oledgo/internal/config"
	"github.com/nkatzz/oledgo/internal/logic"
)

// GroundAtom is the canonical string key for a ground literal, used as the
// key of an InferredState map.
type GroundAtom = string

// InferredState is the result of running the ASP solver's crisp-logic
// inference over a candidate theory and an example: for each ground atom
// it considered, whether that atom holds.
type InferredState map[GroundAtom]bool

// Example is one labeled item of the training/test stream: the ground
// facts describing a world state, and the query atoms the learned theory
// must entail. AxiomModule names the event-calculus axiomatization the
// solver should load alongside the candidate rules.
type Example struct {
	ID          string
	Facts       []*logic.Literal
	QueryAtoms  []*logic.Literal
	AxiomModule string
}

// ASPSolver is the black-box crisp-logic inference oracle. Implementations
// are pure functions of their arguments; ctx is honored as a
// cancellation/timeout point, the only suspension point the loop has.
type ASPSolver interface {
	Infer(ctx context.Context, rules []*logic.Clause, example *Example, axiomModule string) (InferredState, []*logic.Literal, error)
}

// RuleGenOptions bundles the configuration a StructureLearner needs beyond
// the current theory and example.
type RuleGenOptions struct {
	Config *config.Config
}

// StructureLearner performs conservative abduction: given the rules that
// were tried against an example and the example itself, it proposes new
// top clauses, each already equipped with a support set.
type StructureLearner interface {
	GenerateRules(ctx context.Context, theory *logic.Theory, rulesTried []*logic.Clause, example *Example, opts RuleGenOptions) ([]*logic.Clause, error)
}

// ScoringOptions bundles the configuration a RuleScorer needs.
type ScoringOptions struct {
	Config *config.Config
}

// ScoreResult is the per-call outcome of RuleScorer.ScoreAndUpdate: the
// aggregate counts observed across every rule scored this call, plus any
// newly discovered inertia atoms to carry into the next example.
type ScoreResult struct {
	TP, FP, FN      int64
	TotalGroundings int64
	NewInertiaAtoms []*logic.Literal
}

// RuleScorer updates, in place, the counters and weight of every rule in
// rules against example and inferred, and reports the aggregate counts.
// It is the only collaborator permitted to mutate Clause fields outside
// of internal/logic itself.
type RuleScorer interface {
	ScoreAndUpdate(example *Example, inferred InferredState, rules []*logic.Clause, opts ScoringOptions, logger *logrus.Entry) (ScoreResult, error)
}

// ExpansionOptions bundles the configuration a RuleExpander needs.
type ExpansionOptions struct {
	Config *config.Config
}

// RuleExpander applies the Hoeffding specialization test to each eligible
// top clause, returning the (possibly updated) top-clause list and the set
// of clauses that were replaced by a refinement this call.
type RuleExpander interface {
	Expand(topClauses []*logic.Clause, opts ExpansionOptions, logger *logrus.Entry) (newTop []*logic.Clause, replaced map[*logic.Clause]*logic.Clause, err error)
}

// Parser turns textual clause syntax ("head :- lit1, lit2, ..., litN.",
// with an optional leading numeric weight token) into a Clause. The core
// only consumes the resulting tree.
type Parser interface {
	Parse(text string) (*logic.Clause, error)
}
