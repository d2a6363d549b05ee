// internal/sparse/sparse.go
package sparse

import (
	"errors"
	"fmt"
)

// ErrPairOrder marks a triplet whose row index is not strictly below its
// column index. plink emits one triangular half (no self-pairs, no mirrored
// duplicates); the lower-triangular renderer depends on that and checks it
// instead of re-deriving it.
var ErrPairOrder = errors.New("row index not below column index")

// Triplet is one resolved off-diagonal matrix entry.
type Triplet struct {
	Row int
	Col int
	Val float64
}

type pairKey struct{ r, c int }

// Collection accumulates resolved triplets across streamed batches in
// arrival order. It is the only whole-run state of the pipeline.
type Collection struct {
	trips []Triplet
}

// Add appends one triplet, preserving arrival order.
func (c *Collection) Add(t Triplet) { c.trips = append(c.trips, t) }

// Len returns the number of triplets currently held.
func (c *Collection) Len() int { return len(c.trips) }

// Triplets exposes the backing slice; callers must not mutate it.
func (c *Collection) Triplets() []Triplet { return c.trips }

// Dedup removes triplets whose (row, col) pair was already seen, keeping the
// first occurrence. Returns the number removed. Stable: survivors keep their
// arrival order, so ties across batch boundaries resolve to the earlier row.
func (c *Collection) Dedup() int {
	seen := make(map[pairKey]struct{}, len(c.trips))
	kept := c.trips[:0]
	for _, t := range c.trips {
		k := pairKey{t.Row, t.Col}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, t)
	}
	removed := len(c.trips) - len(kept)
	c.trips = kept
	return removed
}

// VerifyPairOrder checks the row < col precondition for every triplet and
// reports the first violator.
func VerifyPairOrder(trips []Triplet) error {
	for i, t := range trips {
		if t.Row >= t.Col {
			return fmt.Errorf("triplet %d (%d,%d): %w", i, t.Row, t.Col, ErrPairOrder)
		}
	}
	return nil
}
