package fixture

import (
	"github.com/sirupsen/logrus"

	"github.com/nkatzz/oledgo/internal/learner"
	"github.com/nkatzz/oledgo/internal/logic"
)

// Scorer is a deterministic RuleScorer: for each rule it re-resolves the
// rule's body against the example's facts (the same backtracking matcher
// Solver uses) to enumerate the rule's groundings, then classifies each
// grounding against inferred and the example's query atoms to update the
// rule's confusion-matrix counters and weight.
type Scorer struct {
	// LearningRate is the weight step per grounding: each true-positive
	// grounding adds it to a rule's weight and each false-positive
	// grounding subtracts it. False negatives and true negatives leave the
	// weight alone. The result is clamped below at the weight floor and
	// has no upper bound.
	LearningRate float64
}

// NewScorer returns a Scorer with the given learning rate; a non-positive
// rate is replaced by 0.1.
func NewScorer(learningRate float64) *Scorer {
	if learningRate <= 0 {
		learningRate = 0.1
	}
	return &Scorer{LearningRate: learningRate}
}

// ScoreAndUpdate implements learner.RuleScorer.
func (s *Scorer) ScoreAndUpdate(example *learner.Example, inferred learner.InferredState, rules []*logic.Clause, opts learner.ScoringOptions, logger *logrus.Entry) (learner.ScoreResult, error) {
	query := make(map[string]bool, len(example.QueryAtoms))
	for _, q := range example.QueryAtoms {
		query[q.Key()] = true
	}

	var agg learner.ScoreResult
	floor := opts.Config.WeightFloor

	for _, rule := range rules {
		groundings := resolve(rule.Body, example.Facts, map[string]*logic.Term{})
		if len(rule.Body) == 0 {
			groundings = []map[string]*logic.Term{{}}
		}

		var tp, fp, fn, tn int64
		seenHeads := make(map[string]bool)
		for _, binding := range groundings {
			head := logic.SubstituteLiteral(rule.Head, binding)
			key := head.Key()
			if seenHeads[key] {
				continue
			}
			seenHeads[key] = true

			predicted := inferred[key]
			actual := query[key]
			switch {
			case predicted && actual:
				tp++
			case predicted && !actual:
				fp++
			case !predicted && actual:
				fn++
			default:
				tn++
			}
		}

		rule.TP += tp
		rule.FP += fp
		rule.FN += fn
		rule.TN += tn
		rule.TotalGroundings += int64(len(groundings))
		rule.Seen++

		delta := s.LearningRate * float64(tp-fp)
		rule.SetWeight(rule.Weight+delta, floor)

		agg.TP += tp
		agg.FP += fp
		agg.FN += fn
		agg.TotalGroundings += int64(len(groundings))
	}

	return agg, nil
}
