package logic

import "testing"

func TestModeDeclarationMatchesAndArity(t *testing.T) {
	decl := &ModeDeclaration{Predicate: "gt", ArgModes: []ArgMode{ModeInput, ModeConstant}, IsComparison: true}
	if decl.Arity() != 2 {
		t.Fatalf("Arity() = %d, want 2", decl.Arity())
	}
	lit := NewLiteral("gt", NewVariable("X", ModeInput, ""), NewConstant(5))
	if !decl.Matches(lit) {
		t.Fatalf("Matches must accept same predicate/arity")
	}
	wrongArity := NewLiteral("gt", NewVariable("X", ModeInput, ""))
	if decl.Matches(wrongArity) {
		t.Fatalf("Matches must reject a different arity")
	}
}

func TestModeSetConsistent(t *testing.T) {
	decl := &ModeDeclaration{Predicate: "gt", ArgModes: []ArgMode{ModeInput, ModeConstant}, IsComparison: true}
	ms := NewModeSet(decl)

	ok := NewLiteral("gt", NewVariable("X", ModeInput, ""), NewConstant(5))
	if !ms.Consistent(ok) {
		t.Fatalf("expected literal to be consistent with its mode declaration")
	}

	bad := NewLiteral("gt", NewVariable("X", ModeInput, ""), NewVariable("Y", ModeInput, ""))
	if ms.Consistent(bad) {
		t.Fatalf("expected literal with a non-constant in a # position to be inconsistent")
	}
}

func TestModeSetEmptyAcceptsEverything(t *testing.T) {
	ms := NewModeSet()
	lit := NewLiteral("whatever", NewConstant(1))
	if !ms.Consistent(lit) {
		t.Fatalf("an empty ModeSet must accept every literal")
	}
}

func TestArgModeString(t *testing.T) {
	cases := map[ArgMode]string{
		ModeNone:     "",
		ModeInput:    "+",
		ModeOutput:   "-",
		ModeConstant: "#",
		ModeDontCare: "_",
	}
	for mode, want := range cases {
		if got := mode.String(); got != want {
			t.Fatalf("ArgMode(%d).String() = %q, want %q", mode, got, want)
		}
	}
}
