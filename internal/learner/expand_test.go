package learner

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/nkatzz/oledgo/internal/config"
	"github.com/nkatzz/oledgo/internal/logic"
)

func testLogger() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

func TestHoeffdingExpanderSkipsIneligibleClauses(t *testing.T) {
	x := NewHoeffdingExpander(logic.ScoringDefault)
	c := logic.NewClause(logic.NewLiteral(logic.HeadInitiatedAt, NewVarTerm("E")), nil, 1e-5)
	c.EligibleForSpecialization = false

	newTop, replaced, err := x.Expand([]*logic.Clause{c}, ExpansionOptions{Config: config.Default()}, testLogger())
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if len(replaced) != 0 {
		t.Fatalf("an ineligible clause must never be replaced")
	}
	if len(newTop) != 1 || newTop[0] != c {
		t.Fatalf("an ineligible clause must pass through unchanged")
	}
}

func TestHoeffdingExpanderSpecializesWhenBoundCleared(t *testing.T) {
	x := NewHoeffdingExpander(logic.ScoringDefault)
	cfg := config.Default()
	cfg.HoeffdingDelta = 0.05

	head := logic.NewLiteral(logic.HeadInitiatedAt, NewVarTerm("E"))
	c := logic.NewClause(head, []*logic.Literal{logic.NewLiteral("happensAt", NewVarTerm("E"))}, 1e-5)
	c.TP, c.FP = 5, 5 // precision 0.5
	c.Seen = 100000

	bottom := logic.NewClause(head, []*logic.Literal{
		logic.NewLiteral("happensAt", NewVarTerm("E")),
		logic.NewLiteral("gt", NewVarTerm("E"), logic.NewConstant(0)),
	}, 1e-5)
	c.Support = logic.NewSupportSet(bottom)

	// Simulate a refinement that has already accumulated a scoring
	// history across prior examples and now strictly out-performs its
	// parent (precision 1.0 vs. the parent's 0.5).
	refinement := logic.NewClause(head, []*logic.Literal{
		logic.NewLiteral("happensAt", NewVarTerm("E")),
		logic.NewLiteral("gt", NewVarTerm("E"), logic.NewConstant(0)),
	}, 1e-5)
	refinement.Parent = c
	refinement.TP = 10
	c.Refinements = []*logic.Clause{refinement}

	newTop, replaced, err := x.Expand([]*logic.Clause{c}, ExpansionOptions{Config: cfg}, testLogger())
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if len(replaced) != 1 || replaced[c] != refinement {
		t.Fatalf("expected the parent clause to be replaced by its out-performing refinement, got %v", replaced)
	}
	if len(newTop) != 1 || newTop[0] != refinement {
		t.Fatalf("expected the refinement to take the parent's place in the top-clause list")
	}
}

func TestHoeffdingExpanderKeepsParentBelowBound(t *testing.T) {
	x := NewHoeffdingExpander(logic.ScoringDefault)
	cfg := config.Default()
	cfg.HoeffdingDelta = 0.05

	head := logic.NewLiteral(logic.HeadInitiatedAt, NewVarTerm("E"))
	c := logic.NewClause(head, []*logic.Literal{logic.NewLiteral("happensAt", NewVarTerm("E"))}, 1e-5)
	c.TP, c.FP = 50, 50
	c.Seen = 10 // small sample: epsilon is large, bound should not clear

	refinement := logic.NewClause(head, []*logic.Literal{
		logic.NewLiteral("happensAt", NewVarTerm("E")),
		logic.NewLiteral("gt", NewVarTerm("E"), logic.NewConstant(0)),
	}, 1e-5)
	refinement.TP = 51
	refinement.FP = 49
	c.Support = logic.NewSupportSet(logic.NewClause(head, []*logic.Literal{
		logic.NewLiteral("happensAt", NewVarTerm("E")),
		logic.NewLiteral("gt", NewVarTerm("E"), logic.NewConstant(0)),
	}, 1e-5))
	c.Refinements = []*logic.Clause{refinement}

	_, replaced, err := x.Expand([]*logic.Clause{c}, ExpansionOptions{Config: cfg}, testLogger())
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if len(replaced) != 0 {
		t.Fatalf("a marginal precision improvement at tiny sample size must not clear the Hoeffding bound")
	}
}

// NewVarTerm is a small test helper mirroring internal/logic's timeVar.
func NewVarTerm(name string) *logic.Term {
	return logic.NewVariable(name, logic.ModeInput, "")
}
