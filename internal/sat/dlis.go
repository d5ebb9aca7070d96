package sat

import (
	"github.com/rhartert/yagh"
)

// dlisOrder maintains, for each variable, the number of currently
// unresolved clauses containing each of its two literals (the DLIS table of
// §3), and a binary heap over variables keyed by the larger of the two
// counts so the engine can pick a branching literal in O(log n) instead of
// scanning every unassigned variable.
//
// This mirrors the reference engine's VSIDS VarOrder (internal/sat/ordering.go
// in the original codebase): a yagh.IntMap heap that is popped to select the
// next decision and explicitly reinserted into when the engine backtracks
// past a variable. The difference is what drives the score: VSIDS bumps a
// single decaying activity counter on conflict involvement, while DLIS here
// tracks exact occurrence counts that move up and down as clauses flip
// between satisfied and unresolved (§4.2, §4.3).
type dlisOrder struct {
	heap *yagh.IntMap[int]

	// pos[v] and neg[v] are the DLIS counts for the positive and negative
	// literal of variable v, i.e. pos[v] == counts[PositiveLiteral(v)].
	pos []int
	neg []int
}

func newDLISOrder(capacityHint int) *dlisOrder {
	return &dlisOrder{
		heap: yagh.New[int](capacityHint),
		pos:  make([]int, 0, capacityHint),
		neg:  make([]int, 0, capacityHint),
	}
}

// addVar registers a new variable with the given initial occurrence counts
// (both zero for a variable that does not yet occur in any clause).
func (o *dlisOrder) addVar(initPos, initNeg int) {
	v := len(o.pos)
	o.pos = append(o.pos, initPos)
	o.neg = append(o.neg, initNeg)
	o.heap.GrowBy(1)
	o.heap.Put(v, -o.priority(v))
}

func (o *dlisOrder) priority(v int) int {
	if o.pos[v] > o.neg[v] {
		return o.pos[v]
	}
	return o.neg[v]
}

// bump adjusts the occurrence count for lit by delta. If lit's variable is
// currently a candidate in the heap (i.e. unassigned), its position is
// refreshed immediately; otherwise the stored count is updated and the heap
// entry is brought in sync lazily, the next time the variable is reinserted.
func (o *dlisOrder) bump(lit Literal, delta int) {
	v := lit.VarID()
	if lit.IsPositive() {
		o.pos[v] += delta
	} else {
		o.neg[v] += delta
	}
	if o.heap.Contains(v) {
		o.heap.Put(v, -o.priority(v))
	}
}

// reinsert brings variable v back into the set of branching candidates.
// Must be called whenever v is unassigned, whether it was a free decision or
// an implication (both leave the heap when popped by next, see below).
func (o *dlisOrder) reinsert(v int) {
	o.heap.Put(v, -o.priority(v))
}

// next pops candidate variables from the heap, skipping ones that
// isAssigned reports as already assigned (these left the heap when first
// popped and will return to it via reinsert on backtrack), and returns the
// literal with the larger DLIS count for the first unassigned variable
// found. Ties between a variable's own two polarities favor the positive
// literal; ties between variables are broken by the heap's declaration-order
// tie-break, i.e. the lowest variable ID wins.
func (o *dlisOrder) next(isAssigned func(v int) bool) (Literal, bool) {
	for {
		e, ok := o.heap.Pop()
		if !ok {
			return 0, false
		}
		v := e.Elem
		if isAssigned(v) {
			continue
		}
		if o.pos[v] >= o.neg[v] {
			return PositiveLiteral(v), true
		}
		return NegativeLiteral(v), true
	}
}
