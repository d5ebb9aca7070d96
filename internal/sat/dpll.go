package sat

import "context"

type setResult int8

const (
	setNormal setResult = iota
	setCausesConflict
)

type forceResult int8

const (
	forceNormal forceResult = iota
	forceCausesConflict
)

type decisionResult int8

const (
	decisionCausesConflict decisionResult = iota
	decisionCausesSat
	decisionAborted
)

// setAssigned marks l true (and its complement false) in assigns. It does
// not touch the trail: callers are responsible for pushing l onto the trail
// themselves (via trail.push or trail.pushDecision) before or after calling
// this, and for invoking set afterward to propagate the consequences to
// clauses watching l's variable.
func (s *Solver) setAssigned(l Literal) {
	s.assigns[l] = True
	s.assigns[l.Opposite()] = False
}

func (s *Solver) pushPropagation(l Literal) {
	s.propQueue.Push(l)
	s.queuedFlags[l] = true
}

func (s *Solver) popPropagation() Literal {
	l := s.propQueue.Pop()
	s.queuedFlags[l] = false
	return l
}

func (s *Solver) clearPropagation() {
	for !s.propQueue.IsEmpty() {
		l := s.propQueue.Pop()
		s.queuedFlags[l] = false
	}
}

func (s *Solver) isQueued(l Literal) bool {
	return s.queuedFlags[l]
}

// set implements §4.4: l has just been pushed onto the trail and marked true
// via setAssigned; this walks the clauses watching l's variable and reacts
// to whatever each one reports.
func (s *Solver) set(l Literal) setResult {
	v := l.VarID()
	for _, i := range s.watches.snapshot(v) {
		if s.satisfied[i] {
			continue
		}
		c := s.clauses[i]
		switch c.updateWatch(s.assigns, s.dlis.bump) {
		case watchNormal:
			pv1, pv2 := c.prevWatch1.VarID(), c.prevWatch2.VarID()
			nv1, nv2 := c.watch1.VarID(), c.watch2.VarID()
			s.watches.remove(i, pv1)
			s.watches.remove(i, pv2)
			s.watches.register(i, nv1, nv2, true)
		case watchOneLeft:
			r := c.lastLiteral
			if s.assigns[r.Opposite()] == True || s.isQueued(r.Opposite()) {
				return setCausesConflict
			}
			s.pushPropagation(r)
		case watchSat:
			s.satisfied[i] = true
			s.numSatisfied++
		case watchConflict:
			return setCausesConflict
		}
	}
	return setNormal
}

// bcp implements §4.6: it drains the propagation queue to a fixpoint. The
// spec's two-cursor window and a plain Pop-until-empty loop are equivalent
// here: both process every literal exactly once, in FIFO order, including
// ones pushed while processing earlier ones, and both stop exactly when the
// queue is exhausted.
func (s *Solver) bcp() forceResult {
	for !s.propQueue.IsEmpty() {
		force := s.popPropagation()

		if s.assigns[force.Opposite()] == True {
			return forceCausesConflict
		}
		if s.assigns[force] == True {
			continue // already assigned, nothing to do
		}

		s.tr.push(force)
		s.setAssigned(force)
		if s.set(force) == setCausesConflict {
			return forceCausesConflict
		}
	}
	return forceNormal
}

// unsetClausesFor implements the clause-facing half of §4.5 for a single
// literal l being rolled back: every clause watching l's variable that is
// currently satisfied gets re-evaluated against assigns, which by this point
// already reflects the trail as it will be once the whole backtrack group is
// gone (see backtrack).
func (s *Solver) unsetClausesFor(l Literal) {
	v := l.VarID()
	for _, i := range s.watches.snapshot(v) {
		if !s.satisfied[i] {
			continue
		}
		c := s.clauses[i]
		switch c.recheckSat(s.assigns, l, s.dlis.bump) {
		case unsetCausesUnres:
			s.satisfied[i] = false
			s.numSatisfied--
		case unsetStillSat:
			pv1, pv2 := c.prevWatch1.VarID(), c.prevWatch2.VarID()
			nv1, nv2 := c.watch1.VarID(), c.watch2.VarID()
			s.watches.remove(i, pv1)
			s.watches.remove(i, pv2)
			s.watches.register(i, nv1, nv2, true)
		}
	}
}

// backtrack implements §4.7. Every literal from the top decision's anchor
// onward is unassigned and its variable returned to the DLIS heap; the
// propagation queue is cleared since none of its pending implications are
// still valid.
func (s *Solver) backtrack() {
	if !s.tr.hasDecision() {
		s.unsat = true
		return
	}

	k := s.tr.popDecisionAnchor()

	// Clear assigns for the whole group first so that clause rechecks (which
	// depend on the trail as it will be once the group is fully gone) see a
	// consistent view regardless of processing order.
	for i := k; i < s.tr.len(); i++ {
		l := s.tr.lits[i]
		s.assigns[l] = Unknown
		s.assigns[l.Opposite()] = Unknown
	}

	for i := k; i < s.tr.len(); i++ {
		l := s.tr.lits[i]
		s.unsetClausesFor(l)
		s.dlis.reinsert(l.VarID())
	}

	s.tr.truncate(k)
	s.clearPropagation()
	s.TotalBacktracks++
}

// decide implements the recursive branching procedure of §4.9.
func (s *Solver) decide(ctx context.Context, lit Literal) decisionResult {
	if err := ctx.Err(); err != nil {
		return decisionAborted
	}

	candidates := [2]Literal{lit, lit.Opposite()}
	for _, c := range candidates {
		s.TotalDecisions++

		s.tr.pushDecision(c)
		s.setAssigned(c)

		if s.set(c) == setCausesConflict {
			s.backtrack()
			continue
		}
		if s.allSatisfied() {
			return decisionCausesSat
		}

		if s.bcp() == forceCausesConflict {
			s.backtrack()
			continue
		}
		if s.allSatisfied() {
			return decisionCausesSat
		}

		if next, ok := s.dlis.next(s.isAssigned); ok {
			switch s.decide(ctx, next) {
			case decisionAborted:
				return decisionAborted
			}
		}
		if s.allSatisfied() {
			return decisionCausesSat
		}

		s.backtrack()
	}

	return decisionCausesConflict
}
