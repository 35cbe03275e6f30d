// Package fixture supplies small, deterministic stand-ins for the external
// collaborators that are out of scope for this repository (the ASP
// solver and the structure-learning/abduction component): a naive
// bottom-up evaluator instead of a real answer-set solver, and a
// bottom-clause builder instead of full conservative abduction. They
// exist for the CLI's demo path and for the learner's own integration
// tests — never a competing reimplementation of either out-of-scope
// subsystem.
package fixture

import (
	"context"

	"github.com/nkatzz/oledgo/internal/learner"
	"github.com/nkatzz/oledgo/internal/logic"
)

// Solver is a naive single-pass bottom-up evaluator over ground event-
// calculus facts: it treats each candidate clause's body as a conjunctive
// query, resolves it against the example's facts by backtracking variable
// binding (no negation-as-failure stratification, no aggregation), and
// reports every grounding of the head it can derive. Derived heads are not
// added back to the facts, so no rule is evaluated against another rule's
// conclusions.
type Solver struct{}

// NewSolver returns a Solver.
func NewSolver() *Solver { return &Solver{} }

// Infer implements learner.ASPSolver.
func (s *Solver) Infer(ctx context.Context, rules []*logic.Clause, example *learner.Example, axiomModule string) (learner.InferredState, []*logic.Literal, error) {
	select {
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	default:
	}

	state := learner.InferredState{}
	for _, fact := range example.Facts {
		state[fact.Key()] = true
	}

	for _, rule := range rules {
		for _, binding := range resolve(rule.Body, example.Facts, map[string]*logic.Term{}) {
			head := logic.SubstituteLiteral(rule.Head, binding)
			state[head.Key()] = true
		}
	}

	return state, nil, nil
}

// resolve returns every binding (variable name -> ground term) under which
// every literal of body is satisfied by some fact in facts, exploring
// literal-by-literal via straightforward backtracking.
func resolve(body []*logic.Literal, facts []*logic.Literal, bound map[string]*logic.Term) []map[string]*logic.Term {
	if len(body) == 0 {
		return []map[string]*logic.Term{cloneBinding(bound)}
	}
	lit, rest := body[0], body[1:]

	var out []map[string]*logic.Term
	for _, fact := range facts {
		if fact.Predicate != lit.Predicate || len(fact.Args) != len(lit.Args) || fact.Negated != lit.Negated {
			continue
		}
		attempt := cloneBinding(bound)
		if !unifyArgs(lit.Args, fact.Args, attempt) {
			continue
		}
		out = append(out, resolve(rest, facts, attempt)...)
	}
	return out
}

// unifyArgs attempts to extend bound so that each clause argument matches
// its corresponding ground fact argument, returning false on conflict.
func unifyArgs(clauseArgs, factArgs []*logic.Term, bound map[string]*logic.Term) bool {
	for i, a := range clauseArgs {
		f := factArgs[i]
		if a.IsVariable() {
			if existing, ok := bound[a.Name()]; ok {
				if !existing.Equal(f) {
					return false
				}
				continue
			}
			bound[a.Name()] = f
			continue
		}
		if !a.Equal(f) {
			return false
		}
	}
	return true
}

func cloneBinding(b map[string]*logic.Term) map[string]*logic.Term {
	out := make(map[string]*logic.Term, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
