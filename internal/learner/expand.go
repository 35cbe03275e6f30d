package learner

import (
	"github.com/sirupsen/logrus"

	"github.com/nkatzz/oledgo/internal/logic"
)

// HoeffdingExpander is the default RuleExpander: it runs logic.Specialize
// per eligible top clause and, when the resulting running mean clears the
// Hoeffding bound for that clause's sample size, marks the clause for
// replacement by its best refinement.
type HoeffdingExpander struct {
	Scoring     logic.ScoringMode
	Subsumption *logic.Subsumption
}

// NewHoeffdingExpander returns a HoeffdingExpander that scores candidates
// under mode.
func NewHoeffdingExpander(mode logic.ScoringMode) *HoeffdingExpander {
	return &HoeffdingExpander{Scoring: mode, Subsumption: logic.NewSubsumption(0)}
}

// Expand implements RuleExpander. A clause's refinement list is generated
// lazily the first time it is seen with an empty one (or after
// merge-on-subsume clears it to force a rebuild) and then left alone so
// the refinements can accumulate their own scoring history across
// examples before Specialize compares them to their parent.
func (x *HoeffdingExpander) Expand(topClauses []*logic.Clause, opts ExpansionOptions, logger *logrus.Entry) ([]*logic.Clause, map[*logic.Clause]*logic.Clause, error) {
	replaced := make(map[*logic.Clause]*logic.Clause)
	newTop := make([]*logic.Clause, 0, len(topClauses))

	for _, c := range topClauses {
		if !c.EligibleForSpecialization || c.Support == nil || c.Support.Len() == 0 {
			newTop = append(newTop, c)
			continue
		}

		if len(c.Refinements) == 0 {
			logic.GenerateRefinements(c, logic.RefinementOptions{
				Depth:       opts.Config.SpecializationDepth,
				Subsumption: x.Subsumption,
			})
		}
		if len(c.Refinements) == 0 {
			newTop = append(newTop, c)
			continue
		}

		result := logic.Specialize(x.Scoring, c)
		if !result.Eligible || result.Best == c {
			newTop = append(newTop, c)
			continue
		}

		if logic.ShouldSpecialize(result.Mean, opts.Config.HoeffdingDelta, c.Seen) {
			logger.WithFields(logrus.Fields{
				"clause":   c.ID,
				"mean":     result.Mean,
				"seen":     c.Seen,
				"best_len": len(result.Best.Body),
			}).Info("learner: specializing clause")
			replaced[c] = result.Best
			newTop = append(newTop, result.Best)
			continue
		}

		newTop = append(newTop, c)
	}

	return newTop, replaced, nil
}
