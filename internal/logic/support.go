package logic

// SupportSet is a list of bottom-rules (most-specific witnesses) from
// which a clause was abstracted.
type SupportSet struct {
	Bottoms []*Clause
}

// NewSupportSet returns a SupportSet containing the given bottom rules.
func NewSupportSet(bottoms ...*Clause) *SupportSet {
	return &SupportSet{Bottoms: append([]*Clause{}, bottoms...)}
}

// Len returns the number of bottom rules in the set.
func (s *SupportSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Bottoms)
}

// Add appends rule to the support set.
func (s *SupportSet) Add(rule *Clause) {
	s.Bottoms = append(s.Bottoms, rule)
}

// AddAll appends every clause in rules to the support set.
func (s *SupportSet) AddAll(rules []*Clause) {
	s.Bottoms = append(s.Bottoms, rules...)
}

// Remove deletes rule (by identity) from the support set, if present.
func (s *SupportSet) Remove(rule *Clause) {
	out := s.Bottoms[:0]
	for _, b := range s.Bottoms {
		if b != rule {
			out = append(out, b)
		}
	}
	s.Bottoms = out
}

// Compress removes any rule p from the set for which some other rule q in
// the same set has p subsumes q: the more general witness is dropped,
// keeping the more specific ones.
func (s *SupportSet) Compress(sub *Subsumption) {
	s.Bottoms = dropMoreGeneral(s.Bottoms, sub)
}

// dropMoreGeneral implements SupportSet.Compress's rule: drop p if there
// exists q != p in the same list with p subsumes q. (The refinement
// generator compresses its candidates with compressBySubsumption instead.)
func dropMoreGeneral(clauses []*Clause, sub *Subsumption) []*Clause {
	keep := make([]bool, len(clauses))
	for i := range clauses {
		keep[i] = true
	}
	for i, p := range clauses {
		for j, q := range clauses {
			if i == j {
				continue
			}
			if sub.Subsumes(p, q) {
				keep[i] = false
				break
			}
		}
	}
	var out []*Clause
	for i, k := range keep {
		if k {
			out = append(out, clauses[i])
		}
	}
	return out
}

// compressBySubsumption removes, from a list of freshly generated
// refinement candidates, any candidate c' for which another candidate c''
// in the list mutually θ-subsumes it (mutual subsumption implies logical
// equivalence).
func compressBySubsumption(clauses []*Clause, sub *Subsumption) []*Clause {
	keep := make([]bool, len(clauses))
	for i := range clauses {
		keep[i] = true
	}
	for i, p := range clauses {
		if !keep[i] {
			continue
		}
		for j := i + 1; j < len(clauses); j++ {
			if !keep[j] {
				continue
			}
			q := clauses[j]
			if sub.Subsumes(p, q) && sub.Subsumes(q, p) {
				keep[j] = false
			}
		}
	}
	var out []*Clause
	for i, k := range keep {
		if k {
			out = append(out, clauses[i])
		}
	}
	return out
}

// CompressTheory removes, from a list of top clauses, any clause p for
// which another clause q exists with both p subsumes q and q subsumes p
// (mutual subsumption implies logical equivalence), keeping the one with
// the lowest creation order.
func CompressTheory(clauses []*Clause, sub *Subsumption) []*Clause {
	keep := make([]bool, len(clauses))
	for i := range clauses {
		keep[i] = true
	}
	for i, p := range clauses {
		if !keep[i] {
			continue
		}
		for j := i + 1; j < len(clauses); j++ {
			if !keep[j] {
				continue
			}
			q := clauses[j]
			if sub.Subsumes(p, q) && sub.Subsumes(q, p) {
				if q.seq < p.seq {
					keep[i] = false
				} else {
					keep[j] = false
				}
			}
		}
	}
	var out []*Clause
	for i, k := range keep {
		if k {
			out = append(out, clauses[i])
		}
	}
	return out
}

// MergeOnSubsume implements the merge-on-subsume rule: if an existing top
// rule t satisfies n subsumes t, t's support set absorbs n's and t's
// refinements are cleared for regeneration, and n is discarded (reported
// via merged=true). Otherwise the caller should admit n as a new top
// clause.
func MergeOnSubsume(existing []*Clause, n *Clause, sub *Subsumption) (merged bool, into *Clause) {
	for _, t := range existing {
		if sub.Subsumes(n, t) {
			t.Support.AddAll(n.Support.Bottoms)
			t.Refinements = nil
			return true, t
		}
	}
	return false, nil
}
