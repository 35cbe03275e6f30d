package fixture

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/nkatzz/oledgo/internal/learner"
	"github.com/nkatzz/oledgo/internal/logic"
)

func v(name string) *logic.Term       { return logic.NewVariable(name, logic.ModeNone, "") }
func c(value interface{}) *logic.Term { return logic.NewConstant(value) }

func testLogrusEntry() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

func TestResolveGroundFactMatchesVariableBody(t *testing.T) {
	body := []*logic.Literal{logic.NewLiteral("happensAt", v("E"))}
	facts := []*logic.Literal{logic.NewLiteral("happensAt", c("e1"))}

	bindings := resolve(body, facts, map[string]*logic.Term{})
	if len(bindings) != 1 {
		t.Fatalf("len(bindings) = %d, want 1", len(bindings))
	}
	bound, ok := bindings[0]["E"]
	if !ok || bound.String() != "e1" {
		t.Fatalf("E bound to %v, want e1", bound)
	}
}

func TestResolveConjunctionRequiresConsistentBinding(t *testing.T) {
	body := []*logic.Literal{
		logic.NewLiteral("happensAt", v("E")),
		logic.NewLiteral("near", v("E"), c("zone1")),
	}
	facts := []*logic.Literal{
		logic.NewLiteral("happensAt", c("e1")),
		logic.NewLiteral("happensAt", c("e2")),
		logic.NewLiteral("near", c("e1"), c("zone1")),
		logic.NewLiteral("near", c("e2"), c("zone2")),
	}

	bindings := resolve(body, facts, map[string]*logic.Term{})
	if len(bindings) != 1 {
		t.Fatalf("len(bindings) = %d, want 1 (only e1 satisfies both literals)", len(bindings))
	}
	if bindings[0]["E"].String() != "e1" {
		t.Fatalf("E bound to %v, want e1", bindings[0]["E"])
	}
}

func TestResolveEmptyBodyReturnsSingleEmptyBinding(t *testing.T) {
	bindings := resolve(nil, nil, map[string]*logic.Term{})
	if len(bindings) != 1 || len(bindings[0]) != 0 {
		t.Fatalf("resolve(nil, nil, {}) = %v, want one empty binding", bindings)
	}
}

func TestResolveNoMatchingFactYieldsNoBindings(t *testing.T) {
	body := []*logic.Literal{logic.NewLiteral("happensAt", v("E"))}
	bindings := resolve(body, nil, map[string]*logic.Term{})
	if len(bindings) != 0 {
		t.Fatalf("len(bindings) = %d, want 0", len(bindings))
	}
}

func TestUnifyArgsRejectsConstantMismatch(t *testing.T) {
	bound := map[string]*logic.Term{}
	if unifyArgs([]*logic.Term{c("e1")}, []*logic.Term{c("e2")}, bound) {
		t.Fatalf("unifyArgs must reject mismatched constants")
	}
}

func TestUnifyArgsRejectsInconsistentRebinding(t *testing.T) {
	bound := map[string]*logic.Term{"E": c("e1")}
	if unifyArgs([]*logic.Term{v("E")}, []*logic.Term{c("e2")}, bound) {
		t.Fatalf("unifyArgs must reject a variable rebound to a different ground term")
	}
}

func TestInferDerivesHeadGroundingsFromBody(t *testing.T) {
	s := NewSolver()
	rule := logic.NewClause(
		logic.NewLiteral(logic.HeadInitiatedAt, v("E")),
		[]*logic.Literal{logic.NewLiteral("happensAt", v("E"))},
		1e-5,
	)
	example := &learner.Example{
		ID:    "ex1",
		Facts: []*logic.Literal{logic.NewLiteral("happensAt", c("e1"))},
	}

	state, residual, err := s.Infer(context.Background(), []*logic.Clause{rule}, example, "ec")
	if err != nil {
		t.Fatalf("Infer returned error: %v", err)
	}
	if residual != nil {
		t.Fatalf("fixture solver never reports residual inertia atoms, got %v", residual)
	}
	if !state["initiatedAt(e1)"] {
		t.Fatalf("expected initiatedAt(e1) to be derived, state = %v", state)
	}
	if !state["happensAt(e1)"] {
		t.Fatalf("facts must also be carried into the inferred state, state = %v", state)
	}
}

func TestInferHonorsContextCancellation(t *testing.T) {
	s := NewSolver()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.Infer(ctx, nil, &learner.Example{}, "ec")
	if err == nil {
		t.Fatalf("expected Infer to report the cancelled context")
	}
}
