package fixture

import (
	"context"
	"fmt"

	"github.com/nkatzz/oledgo/internal/learner"
	"github.com/nkatzz/oledgo/internal/logic"
)

// Abducer is a minimal conservative-abduction stand-in: for every query
// atom not already covered by rulesTried, it builds a bottom clause (the
// most specific hypothesis consistent with the example) by variabilizing
// the query atom's constants and carrying every fact that shares one of
// those constants into the bottom clause's body, then proposes a new,
// empty-bodied top clause supported by that bottom clause.
type Abducer struct {
	WeightFloor float64
}

// NewAbducer returns an Abducer using floor as the initial weight for any
// top clause it proposes.
func NewAbducer(floor float64) *Abducer {
	return &Abducer{WeightFloor: floor}
}

// GenerateRules implements learner.StructureLearner.
func (a *Abducer) GenerateRules(ctx context.Context, theory *logic.Theory, rulesTried []*logic.Clause, example *learner.Example, opts learner.RuleGenOptions) ([]*logic.Clause, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	covered := coveredHeads(rulesTried)

	var out []*logic.Clause
	for _, q := range example.QueryAtoms {
		if covered[q.Key()] {
			continue
		}
		if q.Predicate != logic.HeadInitiatedAt && q.Predicate != logic.HeadTerminatedAt {
			continue
		}
		bottom := a.buildBottomClause(q, example.Facts)
		top := logic.NewClause(variabilizeHead(q), nil, a.WeightFloor)
		top.Support = logic.NewSupportSet(bottom)
		out = append(out, top)
	}
	return out, nil
}

// coveredHeads returns the set of head literal keys of the already-tried
// rules. A query atom counts as covered only if its key equals one of
// these exactly, variables included; a rule with a variable head does not
// cover a ground query atom.
func coveredHeads(rules []*logic.Clause) map[string]bool {
	set := make(map[string]bool)
	for _, r := range rules {
		if r.Head != nil {
			set[r.Head.Key()] = true
		}
	}
	return set
}

// buildBottomClause variabilizes q's constants and carries every fact that
// shares at least one of them into the resulting bottom clause's body.
func (a *Abducer) buildBottomClause(q *logic.Literal, facts []*logic.Literal) *logic.Clause {
	mapping := make(map[string]*logic.Term)
	n := 0
	for _, arg := range q.Args {
		if arg.IsConstant() {
			key := arg.String()
			if _, ok := mapping[key]; !ok {
				mapping[key] = logic.NewVariable(fmt.Sprintf("V%d", n), logic.ModeNone, "")
				n++
			}
		}
	}

	head := variabilizeArgs(q, mapping)

	var body []*logic.Literal
	for _, f := range facts {
		if !sharesConstant(f, mapping) {
			continue
		}
		body = append(body, variabilizeArgs(f, mapping))
	}

	return logic.NewClause(head, body, a.WeightFloor)
}

func variabilizeHead(q *logic.Literal) *logic.Literal {
	mapping := make(map[string]*logic.Term)
	n := 0
	for _, arg := range q.Args {
		if arg.IsConstant() {
			mapping[arg.String()] = logic.NewVariable(fmt.Sprintf("V%d", n), logic.ModeNone, "")
			n++
		}
	}
	return variabilizeArgs(q, mapping)
}

// variabilizeArgs rewrites lit's constant arguments through mapping
// (keyed by the constant's rendered string), leaving unmapped constants
// and variables untouched.
func variabilizeArgs(lit *logic.Literal, mapping map[string]*logic.Term) *logic.Literal {
	args := make([]*logic.Term, len(lit.Args))
	for i, a := range lit.Args {
		if a.IsConstant() {
			if v, ok := mapping[a.String()]; ok {
				args[i] = v
				continue
			}
		}
		args[i] = a
	}
	return logic.NewLiteral(lit.Predicate, args...)
}

// sharesConstant reports whether any of lit's constant arguments are keys
// of mapping.
func sharesConstant(lit *logic.Literal, mapping map[string]*logic.Term) bool {
	for _, a := range lit.Args {
		if a.IsConstant() {
			if _, ok := mapping[a.String()]; ok {
				return true
			}
		}
	}
	return false
}
