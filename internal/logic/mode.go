package logic

// ArgMode tags an argument position of a Mode Declaration (and, where
// copied down, the Variable occupying that position in a clause):
// input, output, constant-placeholder, or don't-care.
type ArgMode int

const (
	// ModeNone means no mode tag applies (used for Constants/Compounds,
	// which are not subject to +/-/# tagging).
	ModeNone ArgMode = iota
	// ModeInput marks a "+" argument: must be bound on entry.
	ModeInput
	// ModeOutput marks a "-" argument: produced by the literal.
	ModeOutput
	// ModeConstant marks a "#" argument: must be a ground Constant.
	ModeConstant
	// ModeDontCare marks an argument with no input/output constraint.
	ModeDontCare
)

// String renders the mode in its traditional +/-/# notation.
func (m ArgMode) String() string {
	switch m {
	case ModeInput:
		return "+"
	case ModeOutput:
		return "-"
	case ModeConstant:
		return "#"
	case ModeDontCare:
		return "_"
	default:
		return ""
	}
}

// ModeDeclaration is a template literal in which every argument position is
// tagged with an ArgMode. It constrains refinement generation and flags
// comparison predicates (e.g. numeric inequalities) for redundancy
// detection in the refinement generator.
type ModeDeclaration struct {
	// Predicate is the predicate symbol this declaration applies to.
	Predicate string
	// ArgModes gives the mode tag for each argument position, in order.
	ArgModes []ArgMode
	// IsComparison marks this predicate as a comparison predicate (e.g.
	// "<", ">=") for the refinement generator's redundancy rule.
	IsComparison bool
}

// Arity returns the number of argument positions this declaration covers.
func (m *ModeDeclaration) Arity() int { return len(m.ArgModes) }

// Matches reports whether lit is consistent with m: same predicate and
// arity. Per-argument mode compatibility (e.g. a "#" position holding a
// ground Constant) is checked by ModeSet.Consistent, which also tries
// alternate declarations for the same predicate.
func (m *ModeDeclaration) Matches(lit *Literal) bool {
	if m == nil || lit == nil {
		return false
	}
	return m.Predicate == lit.Predicate && len(m.ArgModes) == len(lit.Args)
}

// argConsistent reports whether term t is consistent with mode tag at a
// single argument position.
func argConsistent(mode ArgMode, t *Term) bool {
	switch mode {
	case ModeConstant:
		return t.IsConstant()
	case ModeInput, ModeOutput, ModeDontCare, ModeNone:
		return true
	default:
		return true
	}
}

// ModeSet indexes mode declarations by predicate symbol, supporting the
// invariant that every body literal of a clause is consistent with at
// least one mode declaration.
type ModeSet struct {
	byPredicate map[string][]*ModeDeclaration
}

// NewModeSet builds a ModeSet from an unordered list of declarations.
func NewModeSet(decls ...*ModeDeclaration) *ModeSet {
	ms := &ModeSet{byPredicate: make(map[string][]*ModeDeclaration)}
	for _, d := range decls {
		ms.byPredicate[d.Predicate] = append(ms.byPredicate[d.Predicate], d)
	}
	return ms
}

// For returns the mode declarations registered for predicate.
func (ms *ModeSet) For(predicate string) []*ModeDeclaration {
	if ms == nil {
		return nil
	}
	return ms.byPredicate[predicate]
}

// Consistent reports whether lit matches at least one registered mode
// declaration for its predicate, argument-for-argument. A nil or empty
// ModeSet (no declarations at all) accepts every literal.
func (ms *ModeSet) Consistent(lit *Literal) bool {
	if ms == nil {
		return true
	}
	for _, d := range ms.byPredicate[lit.Predicate] {
		if !d.Matches(lit) {
			continue
		}
		ok := true
		for i, mode := range d.ArgModes {
			if !argConsistent(mode, lit.Args[i]) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return len(ms.byPredicate) == 0
}
