package logic

import (
	"fmt"
	"math"
	"sort"
)

// ScoringMode is the closed set of per-rule scoring functions.
type ScoringMode int

const (
	// ScoringDefault scores a clause by its precision.
	ScoringDefault ScoringMode = iota
	// ScoringFoilGain scores a refinement by its FOIL-style information
	// gain over its parent.
	ScoringFoilGain
	// ScoringFScore scores a clause by the harmonic mean of precision and
	// recall.
	ScoringFScore
)

// ParseScoringMode maps the `scoring_fun` configuration string to a
// ScoringMode, the one place the closed dispatch meets the outside world.
func ParseScoringMode(s string) (ScoringMode, error) {
	switch s {
	case "default", "":
		return ScoringDefault, nil
	case "foilgain":
		return ScoringFoilGain, nil
	case "fscore":
		return ScoringFScore, nil
	default:
		return ScoringDefault, fmt.Errorf("logic: unknown scoring_fun %q", s)
	}
}

func (m ScoringMode) String() string {
	switch m {
	case ScoringDefault:
		return "default"
	case ScoringFoilGain:
		return "foilgain"
	case ScoringFScore:
		return "fscore"
	default:
		return "unknown"
	}
}

// Precision returns tps / (tps + fps), or 0 if the denominator is 0:
// undefined denominators return 0, never NaN.
func Precision(c *Clause) float64 {
	denom := c.TP + c.FP
	if denom == 0 {
		return 0
	}
	return float64(c.TP) / float64(denom)
}

// Recall returns tps / (tps + fns), or 0 if the denominator is 0.
func Recall(c *Clause) float64 {
	denom := c.TP + c.FN
	if denom == 0 {
		return 0
	}
	return float64(c.TP) / float64(denom)
}

// FScore returns the harmonic mean of precision and recall, or 0 if both
// are 0.
func FScore(c *Clause) float64 {
	p, r := Precision(c), Recall(c)
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// Score computes c's score under mode. parent is required (and only used)
// for ScoringFoilGain; it may be nil otherwise.
func Score(mode ScoringMode, c, parent *Clause) float64 {
	switch mode {
	case ScoringFScore:
		return FScore(c)
	case ScoringFoilGain:
		return foilGain(c, parent)
	default:
		return Precision(c)
	}
}

// foilGain computes FOIL-style information gain: coverage is precision;
// 0 if self-coverage is 0 or parent coverage is 0 or 1; otherwise a
// tp-weighted log-ratio, clamped at 0 and normalized by the parent's own
// maximal possible gain.
func foilGain(c, parent *Clause) float64 {
	if parent == nil {
		return 0
	}
	selfCoverage := Precision(c)
	parentCoverage := Precision(parent)
	if selfCoverage == 0 {
		return 0
	}
	if parentCoverage == 1.0 || parentCoverage == 0 {
		return 0
	}
	raw := float64(c.TP) * (math.Log(selfCoverage) - math.Log(parentCoverage))
	if raw < 0 {
		raw = 0
	}
	max := float64(parent.TP) * (-math.Log(parentCoverage))
	if max == 0 {
		return 0
	}
	return raw / max
}

// HoeffdingEpsilon returns ε = sqrt(ln(1/δ) / (2n)), the Hoeffding-bound
// threshold for confidence 1-δ over n samples.
func HoeffdingEpsilon(delta float64, n int64) float64 {
	if n <= 0 {
		return math.Inf(1)
	}
	return math.Sqrt(math.Log(1/delta) / (2 * float64(n)))
}

// ShouldSpecialize reports whether a running mean score difference of mean,
// observed over n examples at confidence 1-delta, justifies replacing a
// clause with its best refinement.
func ShouldSpecialize(mean, delta float64, n int64) bool {
	return mean > HoeffdingEpsilon(delta, n)
}

// SpecializationResult is the outcome of the per-example specialization
// decision.
type SpecializationResult struct {
	Mean     float64
	Best     *Clause
	Second   *Clause
	Eligible bool
}

// Specialize runs the per-example specialization decision for candidate
// clause c, updating c's running mean in place.
func Specialize(mode ScoringMode, c *Clause) SpecializationResult {
	if c.Support == nil || c.Support.Len() == 0 || len(c.Refinements) == 0 {
		return SpecializationResult{Best: c, Second: c}
	}
	if len(c.Body) >= len(c.Support.Bottoms[0].Body) {
		return SpecializationResult{Best: c, Second: c}
	}

	var pool []*Clause
	if mode == ScoringFoilGain {
		pool = append([]*Clause{}, c.Refinements...)
	} else {
		pool = append([]*Clause{c}, c.Refinements...)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		si, sj := Score(mode, pool[i], c), Score(mode, pool[j], c)
		if si != sj {
			return si > sj
		}
		pi, pj := Precision(pool[i]), Precision(pool[j])
		if pi != pj {
			return pi > pj
		}
		if pool[i].Weight != pool[j].Weight {
			return pool[i].Weight > pool[j].Weight
		}
		return len(pool[i].Body) < len(pool[j].Body)
	})

	best := pool[0]
	second := best
	if len(pool) > 1 {
		second = pool[1]
	}

	newDiff := Score(mode, best, c) - Score(mode, second, c)
	newMean := (c.PrevMeanDiff*float64(c.PrevMeanDiffCount) + newDiff) / float64(c.PrevMeanDiffCount+1)
	c.PrevMeanDiffCount++
	c.PrevMeanDiff = newMean

	return SpecializationResult{Mean: newMean, Best: best, Second: second, Eligible: true}
}
