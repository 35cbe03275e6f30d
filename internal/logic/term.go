// Package logic implements the core data model and algorithms of the
// online ILP learner: terms, literals, clauses and theories,
// θ-subsumption, refinement generation, scoring and the Hoeffding
// specialization test, and support-set / theory compression. Every
// function here is total on well-typed input — none of it returns an
// error except ParseScoringMode and the explicit lookup helper in
// errors.go.
package logic

import (
	"fmt"
	"sort"
	"strings"
)

// Kind distinguishes the three cases of Term.
type Kind int

const (
	// KindVariable marks a Term as a logic variable. By convention its
	// Name begins with an uppercase letter.
	KindVariable Kind = iota
	// KindConstant marks a Term as an atomic value (symbolic or numeric;
	// this layer does not distinguish the two).
	KindConstant
	// KindCompound marks a Term as a function symbol applied to an
	// ordered list of argument Terms.
	KindCompound
)

func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindConstant:
		return "constant"
	case KindCompound:
		return "compound"
	default:
		return "unknown"
	}
}

// Term is a tagged variant with three cases: Variable, Constant, and
// Compound. Equality is structural (Equal).
type Term struct {
	kind Kind

	// name holds the Variable's name or the Compound's functor. Unused
	// for Constant.
	name string

	// mode and sort are Variable-only metadata: the optional I/O-mode
	// marker and the optional sort/type tag from a mode declaration.
	mode ArgMode
	sort string

	// value holds a Constant's atomic value (string, int, float64, ...).
	// Unused for Variable and Compound.
	value interface{}

	// args holds a Compound's ordered sub-terms. Unused otherwise.
	args []*Term
}

// NewVariable returns a fresh Variable term. mode and sort may be the zero
// value (ModeNone, "") when the variable carries no mode-declaration
// metadata.
//
// Example:
//
//	t := logic.NewVariable("X", logic.ModeInput, "time")
func NewVariable(name string, mode ArgMode, sort string) *Term {
	return &Term{kind: KindVariable, name: name, mode: mode, sort: sort}
}

// NewConstant returns a Constant term wrapping value. Numeric and symbolic
// values are both accepted; this layer does not distinguish them.
func NewConstant(value interface{}) *Term {
	return &Term{kind: KindConstant, value: value}
}

// NewCompound returns a Compound term with the given functor and ordered
// arguments.
func NewCompound(functor string, args ...*Term) *Term {
	return &Term{kind: KindCompound, name: functor, args: append([]*Term{}, args...)}
}

// Kind reports which of the three cases t is.
func (t *Term) Kind() Kind { return t.kind }

// IsVariable reports whether t is a Variable.
func (t *Term) IsVariable() bool { return t != nil && t.kind == KindVariable }

// IsConstant reports whether t is a Constant.
func (t *Term) IsConstant() bool { return t != nil && t.kind == KindConstant }

// IsCompound reports whether t is a Compound.
func (t *Term) IsCompound() bool { return t != nil && t.kind == KindCompound }

// Name returns the Variable's name or the Compound's functor. It is the
// empty string for a Constant.
func (t *Term) Name() string { return t.name }

// Mode returns the Variable's I/O-mode marker (ModeNone for non-Variables).
func (t *Term) Mode() ArgMode { return t.mode }

// Sort returns the Variable's optional sort/type tag.
func (t *Term) Sort() string { return t.sort }

// Value returns the Constant's wrapped value, or nil for non-Constants.
func (t *Term) Value() interface{} { return t.value }

// Args returns the Compound's ordered sub-terms, or nil for non-Compounds.
// The returned slice must not be mutated by callers.
func (t *Term) Args() []*Term { return t.args }

// IsGround reports whether t contains no Variable sub-term.
func (t *Term) IsGround() bool {
	switch t.kind {
	case KindVariable:
		return false
	case KindConstant:
		return true
	default:
		for _, a := range t.args {
			if !a.IsGround() {
				return false
			}
		}
		return true
	}
}

// Equal reports whether t and other are structurally identical: same kind,
// and same name/value/args (mode and sort are metadata, not part of
// structural identity, so two differently-sorted copies of the same
// variable are still Equal).
func (t *Term) Equal(other *Term) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case KindVariable:
		return t.name == other.name
	case KindConstant:
		return fmt.Sprintf("%v", t.value) == fmt.Sprintf("%v", other.value) &&
			fmt.Sprintf("%T", t.value) == fmt.Sprintf("%T", other.value)
	default:
		if t.name != other.name || len(t.args) != len(other.args) {
			return false
		}
		for i := range t.args {
			if !t.args[i].Equal(other.args[i]) {
				return false
			}
		}
		return true
	}
}

// collectVariables appends the distinct Variable terms within t, in
// left-to-right traversal order, to ordered (skipping names already in
// seen, a set keyed by variable name, and recording new ones there) and
// returns the updated ordered slice.
func collectVariables(t *Term, seen map[string]bool, ordered []*Term) []*Term {
	if t == nil {
		return ordered
	}
	switch t.kind {
	case KindVariable:
		if !seen[t.name] {
			seen[t.name] = true
			ordered = append(ordered, t)
		}
	case KindCompound:
		for _, a := range t.args {
			ordered = collectVariables(a, seen, ordered)
		}
	}
	return ordered
}

// substituteTerm applies mapping (variable name -> replacement Term)
// homomorphically to t, preserving the mode/sort metadata of any Variable
// left unsubstituted.
func substituteTerm(t *Term, mapping map[string]*Term) *Term {
	if t == nil {
		return nil
	}
	switch t.kind {
	case KindVariable:
		if repl, ok := mapping[t.name]; ok {
			return repl
		}
		return t
	case KindConstant:
		return t
	default:
		newArgs := make([]*Term, len(t.args))
		for i, a := range t.args {
			newArgs[i] = substituteTerm(a, mapping)
		}
		return &Term{kind: KindCompound, name: t.name, args: newArgs}
	}
}

// collectConstants walks t (including nested Compound arguments) and
// records every distinct Constant it contains into set, using each
// Constant's rendered string as the key.
func collectConstants(t *Term, set map[string]*Term) {
	if t == nil {
		return
	}
	switch t.kind {
	case KindConstant:
		set[t.String()] = t
	case KindCompound:
		for _, a := range t.args {
			collectConstants(a, set)
		}
	}
}

// String renders t in canonical Prolog-like syntax.
func (t *Term) String() string {
	if t == nil {
		return ""
	}
	switch t.kind {
	case KindVariable:
		return t.name
	case KindConstant:
		switch v := t.value.(type) {
		case string:
			return v
		default:
			return fmt.Sprintf("%v", v)
		}
	default:
		if len(t.args) == 0 {
			return t.name
		}
		parts := make([]string, len(t.args))
		for i, a := range t.args {
			parts[i] = a.String()
		}
		return t.name + "(" + strings.Join(parts, ", ") + ")"
	}
}

// sortedConstantKeys returns the keys of a constant set in a deterministic
// order, used wherever a stable traversal order is required (e.g. building
// a skolem-constant pool for subsumption).
func sortedConstantKeys(set map[string]*Term) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
