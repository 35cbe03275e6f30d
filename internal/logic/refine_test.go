package logic

import "testing"

func makeParentWithSupport() *Clause {
	parent := NewClause(
		NewLiteral(HeadInitiatedAt, timeVar("E")),
		[]*Literal{NewLiteral("happensAt", timeVar("E"))},
		1e-5,
	)
	bottom := NewClause(
		NewLiteral(HeadInitiatedAt, timeVar("E")),
		[]*Literal{
			NewLiteral("happensAt", timeVar("E")),
			NewLiteral("gt", NewConstant(5), NewConstant(0)),
			NewLiteral("near", timeVar("E"), NewConstant("e2")),
		},
		1e-5,
	)
	parent.Support = NewSupportSet(bottom)
	return parent
}

func TestCandidateLiteralsExcludesExistingBody(t *testing.T) {
	parent := makeParentWithSupport()
	candidates := candidateLiterals(parent)
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidate literals, got %d: %v", len(candidates), candidates)
	}
	for _, c := range candidates {
		if c.Predicate == "happensAt" {
			t.Fatalf("candidateLiterals must exclude literals already in the clause body")
		}
	}
}

func TestGenerateRefinementsProducesSpecializations(t *testing.T) {
	parent := makeParentWithSupport()
	refinements := GenerateRefinements(parent, RefinementOptions{Depth: 1})
	if len(refinements) == 0 {
		t.Fatalf("expected at least one refinement candidate")
	}
	for _, r := range refinements {
		if len(r.Body) != len(parent.Body)+1 {
			t.Fatalf("depth-1 refinement must add exactly one literal, got body %v", r.Body)
		}
		if r.Parent != parent {
			t.Fatalf("refinement must point back to its parent")
		}
		if r.IsTopRule {
			t.Fatalf("a refinement must not be marked as a top rule")
		}
	}
}

func TestGenerateRefinementsDropsSeen(t *testing.T) {
	parent := makeParentWithSupport()
	first := GenerateRefinements(parent, RefinementOptions{Depth: 1})
	if len(first) == 0 {
		t.Fatalf("expected refinements to seed the seen set")
	}
	again := GenerateRefinements(parent, RefinementOptions{Depth: 1, Seen: first})
	if len(again) != 0 {
		t.Fatalf("refinements mutually subsumed by an already-seen clause must be dropped, got %d", len(again))
	}
}

func TestIsRedundantAdditionSingletonNeverRedundant(t *testing.T) {
	c := NewClause(NewLiteral(HeadInitiatedAt, timeVar("E")), nil, 1e-5)
	lit := NewLiteral("happensAt", timeVar("E"))
	if isRedundantAddition(c, []*Literal{lit}) {
		t.Fatalf("a singleton addition must never be reported redundant")
	}
}

func TestIsRedundantAdditionAllComparison(t *testing.T) {
	mode := &ModeDeclaration{Predicate: "gt", ArgModes: []ArgMode{ModeInput, ModeConstant}, IsComparison: true}
	lit1 := NewLiteral("gt", timeVar("T"), NewConstant(0))
	lit1.Mode = mode
	lit2 := NewLiteral("gt", timeVar("T"), NewConstant(1))
	lit2.Mode = mode
	c := NewClause(NewLiteral(HeadInitiatedAt, timeVar("T")), nil, 1e-5)
	if !isRedundantAddition(c, []*Literal{lit1, lit2}) {
		t.Fatalf("a multi-literal addition of only comparison literals on the same predicate must be redundant")
	}
}

func TestInheritSupportFiltersByChildSubsumption(t *testing.T) {
	parent := makeParentWithSupport()
	sub := NewSubsumption(0)
	refinements := GenerateRefinements(parent, RefinementOptions{Depth: 1, Subsumption: sub})
	for _, r := range refinements {
		if r.Support.Len() == 0 {
			t.Fatalf("a refinement that still subsumes the bottom rule must inherit it in its support set")
		}
	}
}
