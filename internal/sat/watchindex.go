package sat

// watchIndex maps each variable to the clause indices currently watching it
// under either polarity (§3, "Watch index"). It is the exact inverse of the
// watch1/watch2 fields across all clauses and must be kept in sync by the
// engine every time a clause's watches move.
type watchIndex struct {
	byVar [][]int
}

func newWatchIndex(capacityHint int) *watchIndex {
	return &watchIndex{byVar: make([][]int, 0, capacityHint)}
}

func (w *watchIndex) addVar() {
	w.byVar = append(w.byVar, nil)
}

// register adds clause index i to the watch lists of v1 and, if present, v2.
func (w *watchIndex) register(i int, v1 int, v2 int, hasV2 bool) {
	w.byVar[v1] = append(w.byVar[v1], i)
	if hasV2 {
		w.byVar[v2] = append(w.byVar[v2], i)
	}
}

// snapshot returns a copy of the clause indices watching v. Callers that
// mutate the index while iterating (§4.4, §4.5) must iterate this copy, not
// the live slice.
func (w *watchIndex) snapshot(v int) []int {
	live := w.byVar[v]
	cp := make([]int, len(live))
	copy(cp, live)
	return cp
}

// move removes clause index i from oldVar's list and adds it to newVar's.
func (w *watchIndex) move(i int, oldVar int, newVar int) {
	w.remove(i, oldVar)
	w.byVar[newVar] = append(w.byVar[newVar], i)
}

func (w *watchIndex) remove(i int, v int) {
	list := w.byVar[v]
	for j, idx := range list {
		if idx == i {
			list[j] = list[len(list)-1]
			w.byVar[v] = list[:len(list)-1]
			return
		}
	}
}
