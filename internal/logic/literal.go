package logic

import "strings"

// Literal is a predicate symbol applied to an ordered list of term
// arguments, together with a negation-as-failure flag, an associated mode
// declaration, and an optional list of type-guard literals.
type Literal struct {
	Predicate  string
	Args       []*Term
	Negated    bool
	Mode       *ModeDeclaration
	TypeGuards []*Literal
}

// NewLiteral returns a new positive Literal.
func NewLiteral(predicate string, args ...*Term) *Literal {
	return &Literal{Predicate: predicate, Args: append([]*Term{}, args...)}
}

// Negate returns a copy of lit with its negation-as-failure flag flipped.
func (lit *Literal) Negate() *Literal {
	if lit == nil {
		return nil
	}
	clone := *lit
	clone.Negated = !lit.Negated
	return &clone
}

// IsGround reports whether lit contains no Variable sub-term.
func (lit *Literal) IsGround() bool {
	if lit == nil {
		return true
	}
	for _, a := range lit.Args {
		if !a.IsGround() {
			return false
		}
	}
	return true
}

// Equal reports structural equality: same predicate, same negation flag,
// and pairwise-equal arguments. Mode declarations and type guards are
// metadata and are not part of the comparison.
func (lit *Literal) Equal(other *Literal) bool {
	if lit == nil || other == nil {
		return lit == other
	}
	if lit.Predicate != other.Predicate || lit.Negated != other.Negated || len(lit.Args) != len(other.Args) {
		return false
	}
	for i := range lit.Args {
		if !lit.Args[i].Equal(other.Args[i]) {
			return false
		}
	}
	return true
}

// Key renders a canonical string uniquely identifying lit up to structural
// equality; used as a map/set key throughout subsumption and refinement.
func (lit *Literal) Key() string {
	if lit == nil {
		return ""
	}
	return lit.String()
}

// String renders lit in canonical Prolog-like syntax.
func (lit *Literal) String() string {
	if lit == nil {
		return ""
	}
	var b strings.Builder
	if lit.Negated {
		b.WriteString("not ")
	}
	b.WriteString(lit.Predicate)
	if len(lit.Args) > 0 {
		b.WriteByte('(')
		for i, a := range lit.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.String())
		}
		b.WriteByte(')')
	}
	return b.String()
}

// substituteLiteral applies mapping homomorphically to every argument of
// lit, preserving its predicate, negation flag, mode and type guards.
func substituteLiteral(lit *Literal, mapping map[string]*Term) *Literal {
	if lit == nil {
		return nil
	}
	newArgs := make([]*Term, len(lit.Args))
	for i, a := range lit.Args {
		newArgs[i] = substituteTerm(a, mapping)
	}
	return &Literal{
		Predicate:  lit.Predicate,
		Args:       newArgs,
		Negated:    lit.Negated,
		Mode:       lit.Mode,
		TypeGuards: lit.TypeGuards,
	}
}

// SubstituteLiteral is the exported form of substituteLiteral, used by
// collaborator implementations (e.g. a RuleScorer) that need to ground a
// clause head against a binding found while evaluating its body.
func SubstituteLiteral(lit *Literal, mapping map[string]*Term) *Literal {
	return substituteLiteral(lit, mapping)
}
