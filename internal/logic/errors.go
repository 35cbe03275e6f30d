package logic

import "errors"

// Sentinel errors for the logic package's closed error taxonomy. Callers
// identify them with errors.Is; internal/learner attaches context with
// github.com/pkg/errors, and cmd/oledctl wraps with fmt.Errorf("%w").
var (
	// ErrSupportIndexRange is returned when a support-set or body-literal
	// index falls outside its valid 1-indexed bounds.
	ErrSupportIndexRange = errors.New("logic: support/body index out of range")

	// ErrInvariantViolation is returned when an operation would leave a
	// Clause or Theory in a state its structural invariants forbid.
	ErrInvariantViolation = errors.New("logic: invariant violation")
)

// GetSupportLiteral returns the j-th body literal (1-indexed) of the i-th
// bottom rule (1-indexed) in c's support set, mirroring the 1-indexed
// addressing used to describe support-set contents.
func GetSupportLiteral(c *Clause, i, j int) (*Literal, error) {
	if c == nil || c.Support == nil {
		return nil, ErrSupportIndexRange
	}
	if i < 1 || i > len(c.Support.Bottoms) {
		return nil, ErrSupportIndexRange
	}
	bottom := c.Support.Bottoms[i-1]
	if j < 1 || j > len(bottom.Body) {
		return nil, ErrSupportIndexRange
	}
	return bottom.Body[j-1], nil
}
