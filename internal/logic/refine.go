package logic

import "github.com/google/uuid"

// RefinementOptions bundles the inputs to GenerateRefinements beyond the
// clause itself.
type RefinementOptions struct {
	// Depth is the specialization depth d >= 1: the maximum number of
	// literals added in a single refinement step.
	Depth int
	// Seen is an optional already-seen set of clauses (R): any candidate
	// mutually subsumed by a member of Seen is dropped.
	Seen []*Clause
	// Subsumption is the engine used for redundancy/compression checks.
	// A nil value uses NewSubsumption(0) (the default cap).
	Subsumption *Subsumption
}

func (o RefinementOptions) subsumption() *Subsumption {
	if o.Subsumption == nil {
		return NewSubsumption(0)
	}
	return o.Subsumption
}

// GenerateRefinements sets c.Refinements to a new list of candidate
// specializations of c and returns that list.
func GenerateRefinements(c *Clause, opts RefinementOptions) []*Clause {
	candidates := candidateLiterals(c)

	var generated []*Clause
	for k := 1; k <= opts.Depth; k++ {
		for _, subset := range kSubsets(candidates, k) {
			if isRedundantAddition(c, subset) {
				continue
			}
			generated = append(generated, buildRefinement(c, subset, opts.subsumption()))
		}
	}

	compressed := compressBySubsumption(generated, opts.subsumption())
	filtered := dropSeen(compressed, opts.Seen, opts.subsumption())

	c.Refinements = filtered
	return filtered
}

// candidateLiterals returns the distinct literals appearing in the body of
// any of c's support-set bottom rules but not already in c's own body.
func candidateLiterals(c *Clause) []*Literal {
	existing := c.bodyKeySet()
	seen := make(map[string]bool)
	var out []*Literal
	if c.Support == nil {
		return out
	}
	for _, bottom := range c.Support.Bottoms {
		for _, lit := range bottom.Body {
			key := lit.Key()
			if existing[key] || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, lit)
		}
	}
	return out
}

// kSubsets enumerates every k-element subset of items, preserving relative
// order within each subset.
func kSubsets(items []*Literal, k int) [][]*Literal {
	n := len(items)
	if k <= 0 || k > n {
		return nil
	}
	var out [][]*Literal
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		subset := make([]*Literal, k)
		for i, v := range idx {
			subset[i] = items[v]
		}
		out = append(out, subset)

		pos := k - 1
		for pos >= 0 && idx[pos] == n-k+pos {
			pos--
		}
		if pos < 0 {
			break
		}
		idx[pos]++
		for j := pos + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
	return out
}

// isRedundantAddition reports whether a subset is redundant: iff body(c)
// ∪ subset consists entirely of literals whose mode atom is the same
// comparison-predicate mode. Singletons are never redundant.
func isRedundantAddition(c *Clause, subset []*Literal) bool {
	if len(subset) <= 1 {
		return false
	}
	all := append(append([]*Literal{}, c.Body...), subset...)
	if len(all) == 0 {
		return false
	}
	var commonMode *ModeDeclaration
	for _, lit := range all {
		if lit.Mode == nil || !lit.Mode.IsComparison {
			return false
		}
		if commonMode == nil {
			commonMode = lit.Mode
		} else if commonMode.Predicate != lit.Mode.Predicate {
			return false
		}
	}
	return true
}

// buildRefinement forms the candidate clause (head(c), body(c) ++ subset)
// and sets its parent, weight, lifecycle flags and inherited support set.
func buildRefinement(c *Clause, subset []*Literal, sub *Subsumption) *Clause {
	body := make([]*Literal, 0, len(c.Body)+len(subset))
	body = append(body, c.Body...)
	body = append(body, subset...)

	child := &Clause{
		ID:        uuid.New(),
		Head:      c.Head,
		Body:      body,
		seq:       nextSeq(),
		Weight:    c.Weight,
		Parent:    c,
		IsTopRule: false,
		IsNew:     true,
	}
	child.Support = NewSupportSet(inheritSupport(c, child, sub)...)
	return child
}

// inheritSupport returns { s in c.Support : child subsumes s }.
func inheritSupport(c *Clause, child *Clause, sub *Subsumption) []*Clause {
	if c.Support == nil {
		return nil
	}
	var out []*Clause
	for _, s := range c.Support.Bottoms {
		if sub.Subsumes(child, s) {
			out = append(out, s)
		}
	}
	return out
}

// dropSeen removes from candidates any clause mutually θ-subsumed by a
// member of seen.
func dropSeen(candidates []*Clause, seen []*Clause, sub *Subsumption) []*Clause {
	if len(seen) == 0 {
		return candidates
	}
	var out []*Clause
	for _, cand := range candidates {
		dup := false
		for _, s := range seen {
			if sub.Subsumes(cand, s) && sub.Subsumes(s, cand) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, cand)
		}
	}
	return out
}
