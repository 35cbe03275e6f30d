package fixture

import (
	"context"
	"testing"

	"github.com/nkatzz/oledgo/internal/learner"
	"github.com/nkatzz/oledgo/internal/logic"
)

func TestVariabilizeHeadMapsConstantsToFreshVariables(t *testing.T) {
	q := logic.NewLiteral(logic.HeadInitiatedAt, c("e1"))
	head := variabilizeHead(q)

	if head.Predicate != logic.HeadInitiatedAt {
		t.Fatalf("predicate = %s, want %s", head.Predicate, logic.HeadInitiatedAt)
	}
	if !head.Args[0].IsVariable() {
		t.Fatalf("expected the constant argument to be variabilized, got %v", head.Args[0])
	}
}

func TestSharesConstantDetectsOverlap(t *testing.T) {
	mapping := map[string]*logic.Term{"e1": v("V0")}
	match := logic.NewLiteral("happensAt", c("e1"))
	noMatch := logic.NewLiteral("happensAt", c("e2"))

	if !sharesConstant(match, mapping) {
		t.Fatalf("expected happensAt(e1) to share a constant with the mapping")
	}
	if sharesConstant(noMatch, mapping) {
		t.Fatalf("happensAt(e2) shares no constant with the mapping")
	}
}

func TestBuildBottomClauseCarriesOverlappingFactsOnly(t *testing.T) {
	a := NewAbducer(1e-5)
	q := logic.NewLiteral(logic.HeadInitiatedAt, c("e1"))
	facts := []*logic.Literal{
		logic.NewLiteral("happensAt", c("e1")),
		logic.NewLiteral("near", c("e1"), c("zone1")),
		logic.NewLiteral("happensAt", c("e2")),
	}

	bottom := a.buildBottomClause(q, facts)

	if len(bottom.Body) != 2 {
		t.Fatalf("len(bottom.Body) = %d, want 2 (only the two facts mentioning e1)", len(bottom.Body))
	}
	if !bottom.Head.Args[0].IsVariable() {
		t.Fatalf("expected the bottom clause's head to be variabilized")
	}
	for _, lit := range bottom.Body {
		if lit.Predicate == "happensAt" && lit.Args[0].String() == "e2" {
			t.Fatalf("fact mentioning an unrelated constant must not be carried into the bottom clause")
		}
	}
}

func TestGenerateRulesSkipsAlreadyCoveredQueryAtoms(t *testing.T) {
	a := NewAbducer(1e-5)
	existing := logic.NewClause(logic.NewLiteral(logic.HeadInitiatedAt, v("V0")), nil, 1e-5)

	example := &learner.Example{
		QueryAtoms: []*logic.Literal{logic.NewLiteral(logic.HeadInitiatedAt, v("V0"))},
	}

	rules, err := a.GenerateRules(context.Background(), logic.NewTheory(), []*logic.Clause{existing}, example, learner.RuleGenOptions{})
	if err != nil {
		t.Fatalf("GenerateRules returned error: %v", err)
	}
	if len(rules) != 0 {
		t.Fatalf("expected no new rules for an already-covered query atom, got %d", len(rules))
	}
}

func TestGenerateRulesIgnoresNonEventCalculusHeads(t *testing.T) {
	a := NewAbducer(1e-5)
	example := &learner.Example{
		QueryAtoms: []*logic.Literal{logic.NewLiteral("holdsAt", c("e1"))},
	}

	rules, err := a.GenerateRules(context.Background(), logic.NewTheory(), nil, example, learner.RuleGenOptions{})
	if err != nil {
		t.Fatalf("GenerateRules returned error: %v", err)
	}
	if len(rules) != 0 {
		t.Fatalf("expected holdsAt query atoms to be ignored, got %d rules", len(rules))
	}
}

func TestGenerateRulesProposesSupportedTopClause(t *testing.T) {
	a := NewAbducer(1e-5)
	example := &learner.Example{
		Facts:      []*logic.Literal{logic.NewLiteral("happensAt", c("e1"))},
		QueryAtoms: []*logic.Literal{logic.NewLiteral(logic.HeadInitiatedAt, c("e1"))},
	}

	rules, err := a.GenerateRules(context.Background(), logic.NewTheory(), nil, example, learner.RuleGenOptions{})
	if err != nil {
		t.Fatalf("GenerateRules returned error: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("len(rules) = %d, want 1", len(rules))
	}
	top := rules[0]
	if len(top.Body) != 0 {
		t.Fatalf("a freshly abduced top clause must start with an empty body, got %d literals", len(top.Body))
	}
	if top.Support == nil || top.Support.Len() != 1 {
		t.Fatalf("expected the proposed top clause to carry exactly one bottom clause of support")
	}
}

func TestCoveredHeadsIndexesByHeadKey(t *testing.T) {
	r := logic.NewClause(logic.NewLiteral(logic.HeadInitiatedAt, c("e1")), nil, 1e-5)
	set := coveredHeads([]*logic.Clause{r})
	if !set["initiatedAt(e1)"] {
		t.Fatalf("expected initiatedAt(e1) to be marked covered, got %v", set)
	}
}
