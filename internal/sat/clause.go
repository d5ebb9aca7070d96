package sat

// watchResult is returned by Clause.updateWatch to tell the engine how to
// react to a watch becoming invalid.
type watchResult int8

const (
	watchNormal   watchResult = iota // two new watches were picked, caller must patch the watch index
	watchSat                         // the clause is now satisfied
	watchOneLeft                     // the clause is unit; lastLiteral must be propagated
	watchConflict                    // every literal in the clause is falsified
)

// unsetResult is returned by Clause.recheckSat to tell the engine how to
// react to one of a satisfied clause's watches being rolled back.
type unsetResult int8

const (
	unsetStillSat    unsetResult = iota // the clause remains satisfied by another literal
	unsetCausesUnres                    // the clause is no longer satisfied
)

// Clause is an input disjunction, deduplicated on literals and stripped of
// tautologies before it ever reaches the engine (see newClause). It owns two
// watched literals: while the clause is unsatisfied and has more than one
// literal left, both watches are guaranteed to be unassigned or true. The
// prevWatch fields remember the watches immediately before the most recent
// successful update so the engine can patch the watch index's reverse
// mapping without re-deriving it.
type Clause struct {
	terms []Literal // deduplicated, order is the order literals were first seen

	watch1, watch2 Literal
	hasWatch2      bool // false for unit clauses, which have no second watch

	prevWatch1, prevWatch2 Literal

	lastLiteral Literal // set by updateWatch when it returns watchOneLeft

	satisfied bool
}

// newClause builds a Clause from a raw list of literals. It returns
// (nil, false) if the clause is a tautology (contains both a literal and its
// complement), in which case the clause contributes no constraint and must
// be discarded entirely rather than stored.
func newClause(lits []Literal) (*Clause, bool) {
	seen := make(map[Literal]bool, len(lits))
	terms := make([]Literal, 0, len(lits))
	for _, l := range lits {
		if seen[l.Opposite()] {
			return nil, false
		}
		if seen[l] {
			continue
		}
		seen[l] = true
		terms = append(terms, l)
	}

	c := &Clause{terms: terms}
	if len(terms) == 0 {
		return c, true // caller detects the empty clause and marks the instance unsat
	}
	c.watch1 = terms[0]
	if len(terms) > 1 {
		c.watch2 = terms[1]
		c.hasWatch2 = true
	}
	return c, true
}

// watchedVars returns the variables this clause is currently registered
// under in the watch index.
func (c *Clause) watchedVars() (v1 int, v2 int, hasV2 bool) {
	return c.watch1.VarID(), c.watch2.VarID(), c.hasWatch2
}

func (c *Clause) isTrue(assigns []LBool) bool {
	for _, l := range c.terms {
		if assigns[l] == True {
			return true
		}
	}
	return false
}

// updateWatch implements the clause side of the "set" protocol (§4.2): it is
// invoked whenever one of the clause's watches just became false under the
// trail. assigns is indexed by Literal and reflects the trail as it stands
// right now (the literal that triggered this call is already assigned).
func (c *Clause) updateWatch(assigns []LBool, bumpDLIS func(Literal, int)) watchResult {
	if c.isTrue(assigns) {
		for _, l := range c.terms {
			bumpDLIS(l, -1)
		}
		c.satisfied = true
		return watchSat
	}

	// U = literals not yet falsified.
	var u1, u2 Literal
	nU := 0
	for _, l := range c.terms {
		if assigns[l.Opposite()] == True {
			continue // l is falsified
		}
		switch nU {
		case 0:
			u1 = l
		case 1:
			u2 = l
		}
		nU++
		if nU == 2 {
			break // no need to keep scanning once we have two watch candidates
		}
	}

	switch nU {
	case 0:
		return watchConflict
	case 1:
		c.lastLiteral = u1
		return watchOneLeft
	default:
		c.prevWatch1, c.prevWatch2 = c.watch1, c.watch2
		c.watch1, c.watch2 = u1, u2
		c.hasWatch2 = true
		return watchNormal
	}
}

// recheckSat implements the clause side of the "unset" protocol (§4.3): it
// is invoked for a satisfied clause when one of its watches, a, is being
// rolled back. assigns must already reflect the trail as it will be once the
// entire backtrack group containing a has been removed (trail[0:k] in the
// spec's terms), not a partially-rolled-back snapshot.
func (c *Clause) recheckSat(assigns []LBool, a Literal, bumpDLIS func(Literal, int)) unsetResult {
	for _, l := range c.terms {
		if assigns[l] != True {
			continue
		}
		c.prevWatch1, c.prevWatch2 = c.watch1, c.watch2
		c.watch1 = l
		if _, ok := indexOf(c.terms, a); ok {
			c.watch2 = a
		} else {
			c.watch2 = a.Opposite()
		}
		c.hasWatch2 = true
		return unsetStillSat
	}

	for _, l := range c.terms {
		bumpDLIS(l, 1)
	}
	c.satisfied = false
	return unsetCausesUnres
}

func indexOf(terms []Literal, l Literal) (int, bool) {
	for i, t := range terms {
		if t == l {
			return i, true
		}
	}
	return 0, false
}
