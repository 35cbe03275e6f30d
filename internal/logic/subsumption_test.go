package logic

import "testing"

func TestSubsumesPositiveCase(t *testing.T) {
	sub := NewSubsumption(0)

	general := NewClause(
		NewLiteral(HeadInitiatedAt, timeVar("E"), timeVar("T")),
		[]*Literal{
			NewLiteral("happensAt", timeVar("E")),
			NewLiteral("gt", timeVar("T"), NewConstant(0)),
		},
		1e-5,
	)

	specific := NewClause(
		NewLiteral(HeadInitiatedAt, NewConstant("e1"), NewConstant(5)),
		[]*Literal{
			NewLiteral("happensAt", NewConstant("e1")),
			NewLiteral("gt", NewConstant(5), NewConstant(0)),
			NewLiteral("extra", NewConstant("foo")),
		},
		1e-5,
	)

	if !sub.Subsumes(general, specific) {
		t.Fatalf("expected general clause to subsume the more specific, wider-bodied clause")
	}
}

func TestSubsumesFailsOnHeadPredicateMismatch(t *testing.T) {
	sub := NewSubsumption(0)
	c1 := NewClause(NewLiteral(HeadInitiatedAt, timeVar("E")), nil, 1e-5)
	c2 := NewClause(NewLiteral(HeadTerminatedAt, NewConstant("e1")), nil, 1e-5)
	if sub.Subsumes(c1, c2) {
		t.Fatalf("clauses with different head predicates must never subsume")
	}
}

func TestSubsumesFailsWhenBodyMissing(t *testing.T) {
	sub := NewSubsumption(0)
	general := NewClause(
		NewLiteral(HeadInitiatedAt, timeVar("E")),
		[]*Literal{NewLiteral("happensAt", timeVar("E")), NewLiteral("missingPredicate", timeVar("E"))},
		1e-5,
	)
	specific := NewClause(
		NewLiteral(HeadInitiatedAt, NewConstant("e1")),
		[]*Literal{NewLiteral("happensAt", NewConstant("e1"))},
		1e-5,
	)
	if sub.Subsumes(general, specific) {
		t.Fatalf("a clause requiring a literal absent from the target body must not subsume it")
	}
}

func TestSubsumesIsReflexive(t *testing.T) {
	sub := NewSubsumption(0)
	c := NewClause(
		NewLiteral(HeadInitiatedAt, timeVar("E"), timeVar("T")),
		[]*Literal{NewLiteral("happensAt", timeVar("E")), NewLiteral("gt", timeVar("T"), NewConstant(0))},
		1e-5,
	)
	if !sub.Subsumes(c, c) {
		t.Fatalf("every clause must subsume itself")
	}
}

func TestSubsumesRespectsMaxVarsCap(t *testing.T) {
	sub := NewSubsumption(1)
	c1 := NewClause(
		NewLiteral(HeadInitiatedAt, timeVar("A"), timeVar("B")),
		nil,
		1e-5,
	)
	c2 := NewClause(
		NewLiteral(HeadInitiatedAt, NewConstant(1), NewConstant(2)),
		nil,
		1e-5,
	)
	if sub.Subsumes(c1, c2) {
		t.Fatalf("Subsumes must conservatively return false once |vars| exceeds MaxVars")
	}
}

func TestSubsumesEmptyClauses(t *testing.T) {
	sub := NewSubsumption(0)
	if !sub.Subsumes(EmptyClause(), EmptyClause()) {
		t.Fatalf("the empty clause must subsume itself")
	}
}
