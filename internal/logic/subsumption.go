package logic

// DefaultMaxSubsumptionVars bounds |V| in the permutation search of
// Subsumes: above this many distinct variables in c1, Subsumes
// conservatively returns false rather than exploring a factorial search
// space.
const DefaultMaxSubsumptionVars = 8

// Subsumption holds the tunable parameters of the θ-subsumption engine.
// It carries no other state: Subsumes is otherwise a pure function of its
// two clause arguments.
type Subsumption struct {
	// MaxVars caps the number of distinct variables in c1 that Subsumes
	// is willing to search permutations over.
	MaxVars int
}

// NewSubsumption returns a Subsumption engine with the given variable cap.
// A non-positive maxVars falls back to DefaultMaxSubsumptionVars.
func NewSubsumption(maxVars int) *Subsumption {
	if maxVars <= 0 {
		maxVars = DefaultMaxSubsumptionVars
	}
	return &Subsumption{MaxVars: maxVars}
}

// Subsumes reports whether c1 θ-subsumes c2: there exists a substitution θ
// over c1's variables such that head(c1)θ = head(c2) and every literal of
// body(c1)θ appears in body(c2).
func (s *Subsumption) Subsumes(c1, c2 *Clause) bool {
	if c1 == nil || c2 == nil || c1.IsEmpty() || c2.IsEmpty() {
		return c1.IsEmpty() && c2.IsEmpty()
	}
	if c1.Head.Predicate != c2.Head.Predicate {
		return false
	}

	ground2, _ := Skolemize(c2)
	vars := Variables(c1)
	if len(vars) > s.MaxVars {
		return false
	}
	if len(vars) == 0 {
		return matches(c1, c2, ground2)
	}

	constants := make(map[string]*Term)
	if ground2.Head != nil {
		for _, a := range ground2.Head.Args {
			collectConstants(a, constants)
		}
	}
	for _, lit := range ground2.Body {
		for _, a := range lit.Args {
			collectConstants(a, constants)
		}
	}
	keys := sortedConstantKeys(constants)
	pool := make([]*Term, len(keys))
	for i, k := range keys {
		pool[i] = constants[k]
	}
	if len(pool) == 0 {
		return false
	}

	// If |V| > |S|, multiply S by repetition so permutations cover all
	// assignments with replacement semantics over the original pool.
	extended := append([]*Term{}, pool...)
	for len(extended) < len(vars) {
		extended = append(extended, pool...)
	}

	used := make([]bool, len(extended))
	assignment := make([]*Term, len(vars))
	return searchPermutations(c1, vars, extended, used, assignment, 0, ground2, c2)
}

// searchPermutations enumerates permutations of extended of length
// len(vars), forming a substitution at each leaf and testing it, returning
// true on the first match.
func searchPermutations(c1 *Clause, vars []*Term, extended []*Term, used []bool, assignment []*Term, depth int, ground2, original2 *Clause) bool {
	if depth == len(vars) {
		mapping := make(map[string]*Term, len(vars))
		for i, v := range vars {
			mapping[v.Name()] = assignment[i]
		}
		themed := Substitute(c1, mapping)
		return matches(themed, original2, ground2)
	}
	for i := range extended {
		if used[i] {
			continue
		}
		used[i] = true
		assignment[depth] = extended[i]
		if searchPermutations(c1, vars, extended, used, assignment, depth+1, ground2, original2) {
			used[i] = false
			return true
		}
		used[i] = false
	}
	return false
}

// matches reports whether themed (c1 with θ already applied, or c1 itself
// if it has no variables) has a head equal to ground2's head and a body
// wholly included in ground2's body. original2 is accepted only so the
// predicate check before skolemization is honored by callers; ground2
// (the skolemized form) is what the inclusion test runs against.
func matches(themed, original2, ground2 *Clause) bool {
	if themed.Head.Predicate != original2.Head.Predicate {
		return false
	}
	if !themed.Head.Equal(ground2.Head) {
		return false
	}
	target := ground2.bodyKeySet()
	for _, lit := range themed.Body {
		if !target[lit.Key()] {
			return false
		}
	}
	return true
}
