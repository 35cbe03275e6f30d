package logic

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// HeadInitiatedAt and HeadTerminatedAt are the two event-calculus head
// predicates this learner is specialized for.
const (
	HeadInitiatedAt  = "initiatedAt"
	HeadTerminatedAt = "terminatedAt"
)

// seqCounter hands out monotonically increasing creation-order numbers for
// Clause.seq, the same way pkg/minikanren's varCounter hands out globally
// unique variable IDs (primitives.go).
var seqCounter int64

func nextSeq() int64 {
	return atomic.AddInt64(&seqCounter, 1)
}

// Clause is a Horn rule: a head Literal and an ordered body sequence of
// Literals. The body's order matters only for pretty-printing; its
// semantics is the conjunction of its literals.
type Clause struct {
	ID   uuid.UUID
	Head *Literal
	Body []*Literal

	// seq records creation order, used by theory compression to pick a
	// deterministic representative among mutually subsuming clauses.
	seq int64

	// Weight is a real value with a documented non-zero floor, enforced
	// by SetWeight rather than direct field assignment wherever possible.
	Weight float64

	// Streaming confusion-matrix counters.
	TP, FP, FN, TN  int64
	TotalGroundings int64

	// Seen is the number of examples this clause has been scored
	// against.
	Seen int64

	// Parent is a non-owning back-pointer to the clause this one was
	// refined from, or nil if this is a top-level clause.
	Parent *Clause

	// Support is the set of bottom-rules this clause was abstracted
	// from.
	Support *SupportSet

	// Refinements holds the currently live candidate specializations of
	// this clause.
	Refinements []*Clause

	// Running statistics for the Hoeffding specialization test.
	PrevMeanDiff      float64
	PrevMeanDiffCount int64

	// Lifecycle flags.
	IsTopRule                 bool
	IsBottomRule              bool
	EligibleForSpecialization bool
	IsNew                     bool
}

// NewClause returns a new top-level Clause with the given head and body
// literals, a fresh identity, and the given weight floor as its initial
// weight.
func NewClause(head *Literal, body []*Literal, weightFloor float64) *Clause {
	return &Clause{
		ID:                        uuid.New(),
		Head:                      head,
		Body:                      append([]*Literal{}, body...),
		seq:                       nextSeq(),
		Weight:                    weightFloor,
		Support:                   NewSupportSet(),
		IsTopRule:                 true,
		IsNew:                     true,
		EligibleForSpecialization: true,
	}
}

// EmptyClause returns the distinct well-formed sentinel clause with no
// head literal, used wherever the data model needs an explicit "no rule"
// value.
func EmptyClause() *Clause {
	return &Clause{ID: uuid.New(), seq: nextSeq()}
}

// IsEmpty reports whether c is the empty-clause sentinel.
func (c *Clause) IsEmpty() bool { return c == nil || c.Head == nil }

// SetWeight assigns w to c.Weight, clamping to floor if w would otherwise
// violate the weight-floor invariant.
func (c *Clause) SetWeight(w, floor float64) {
	if w < floor {
		w = floor
	}
	c.Weight = w
}

// ClearStatistics is the only legal reset of a clause's streaming
// counters: it resets tps, fps, fns, seen, refinements, and the Hoeffding
// running means. TN and TotalGroundings are left untouched.
func (c *Clause) ClearStatistics() {
	c.TP, c.FP, c.FN = 0, 0, 0
	c.Seen = 0
	c.Refinements = nil
	c.PrevMeanDiff = 0
	c.PrevMeanDiffCount = 0
}

// Variables returns the ordered list of distinct Variable terms occurring
// in c, obtained by a left-to-right traversal of the head followed by the
// body.
func Variables(c *Clause) []*Term {
	seen := make(map[string]bool)
	var ordered []*Term
	if c.Head != nil {
		for _, a := range c.Head.Args {
			ordered = collectVariables(a, seen, ordered)
		}
	}
	for _, lit := range c.Body {
		for _, a := range lit.Args {
			ordered = collectVariables(a, seen, ordered)
		}
	}
	return ordered
}

// Substitute applies mapping (Variable name -> Term) homomorphically to
// every literal of c, preserving mode/type metadata, and returns the
// resulting clause. The returned clause keeps c's ID and Weight; counters,
// lineage, support set and lifecycle flags are NOT copied: Substitute
// produces a term-level transform, not a new rule in the theory.
func Substitute(c *Clause, mapping map[string]*Term) *Clause {
	if c == nil {
		return nil
	}
	newBody := make([]*Literal, len(c.Body))
	for i, lit := range c.Body {
		newBody[i] = substituteLiteral(lit, mapping)
	}
	return &Clause{
		ID:     c.ID,
		Head:   substituteLiteral(c.Head, mapping),
		Body:   newBody,
		Weight: c.Weight,
	}
}

// Skolemize assigns a fresh constant ("skolem0", "skolem1", ...) to each
// distinct Variable of c, in left-to-right traversal order, and returns
// the resulting ground clause together with the Variable-name -> fresh-
// Constant mapping used to build it. Constants already present in c are
// passed through unchanged.
func Skolemize(c *Clause) (*Clause, map[string]*Term) {
	vars := Variables(c)
	mapping := make(map[string]*Term, len(vars))
	for i, v := range vars {
		mapping[v.Name()] = NewConstant(fmt.Sprintf("skolem%d", i))
	}
	return Substitute(c, mapping), mapping
}

// Render renders c in canonical "head :- body1, body2, ..." syntax,
// preserving body literal order. A clause with an empty body renders as
// just its head.
func Render(c *Clause) string {
	if c == nil || c.IsEmpty() {
		return ""
	}
	if len(c.Body) == 0 {
		return c.Head.String()
	}
	parts := make([]string, len(c.Body))
	for i, lit := range c.Body {
		parts[i] = lit.String()
	}
	return c.Head.String() + " :- " + strings.Join(parts, ", ")
}

// String implements fmt.Stringer via Render.
func (c *Clause) String() string { return Render(c) }

// bodyKeySet returns the set of canonical literal keys in c's body, used
// by the refinement generator and subsumption's set-inclusion test.
func (c *Clause) bodyKeySet() map[string]bool {
	set := make(map[string]bool, len(c.Body))
	for _, lit := range c.Body {
		set[lit.Key()] = true
	}
	return set
}

// Theory is a set of top clauses partitioned by head predicate into
// initiation and termination sub-theories.
type Theory struct {
	Initiation  []*Clause
	Termination []*Clause
}

// NewTheory returns an empty Theory.
func NewTheory() *Theory {
	return &Theory{}
}

// bucketFor returns a pointer to the slice a clause with the given head
// predicate belongs to, or nil if the predicate is neither initiatedAt nor
// terminatedAt.
func (t *Theory) bucketFor(headPredicate string) *[]*Clause {
	switch headPredicate {
	case HeadInitiatedAt:
		return &t.Initiation
	case HeadTerminatedAt:
		return &t.Termination
	default:
		return nil
	}
}

// AddTop admits c as a new top-level clause, partitioned by its head
// predicate.
func (t *Theory) AddTop(c *Clause) {
	c.IsTopRule = true
	c.Parent = nil
	if bucket := t.bucketFor(c.Head.Predicate); bucket != nil {
		*bucket = append(*bucket, c)
	}
}

// TopClauses returns every top clause in the theory, initiation then
// termination.
func (t *Theory) TopClauses() []*Clause {
	out := make([]*Clause, 0, len(t.Initiation)+len(t.Termination))
	out = append(out, t.Initiation...)
	out = append(out, t.Termination...)
	return out
}

// ReplaceTop swaps old for replacement in whichever bucket old belongs to.
// It is a no-op if old is not found.
func (t *Theory) ReplaceTop(old, replacement *Clause) bool {
	bucket := t.bucketFor(old.Head.Predicate)
	if bucket == nil {
		return false
	}
	for i, c := range *bucket {
		if c == old {
			replacement.IsTopRule = true
			replacement.Parent = nil
			(*bucket)[i] = replacement
			return true
		}
	}
	return false
}

// RemoveTop deletes c from whichever bucket it belongs to.
func (t *Theory) RemoveTop(c *Clause) {
	bucket := t.bucketFor(c.Head.Predicate)
	if bucket == nil {
		return
	}
	out := (*bucket)[:0]
	for _, existing := range *bucket {
		if existing != c {
			out = append(out, existing)
		}
	}
	*bucket = out
}
