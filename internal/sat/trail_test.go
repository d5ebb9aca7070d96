package sat

import "testing"

func TestTrail_PushDecisionAndBacktrack(t *testing.T) {
	tr := &trail{}

	tr.pushDecision(PositiveLiteral(0))
	tr.push(NegativeLiteral(1)) // implied by BCP, same level

	if tr.len() != 2 {
		t.Fatalf("got len %d, want 2", tr.len())
	}

	tr.pushDecision(PositiveLiteral(2))
	if tr.len() != 3 {
		t.Fatalf("got len %d, want 3", tr.len())
	}

	if !tr.hasDecision() {
		t.Fatal("expected a decision to be on the stack")
	}

	k := tr.popDecisionAnchor()
	if k != 2 {
		t.Fatalf("got anchor %d, want 2", k)
	}
	tr.truncate(k)
	if tr.len() != 2 {
		t.Fatalf("got len %d after truncate, want 2", tr.len())
	}

	k = tr.popDecisionAnchor()
	if k != 0 {
		t.Fatalf("got anchor %d, want 0", k)
	}
	tr.truncate(k)
	if tr.len() != 0 {
		t.Fatalf("got len %d after truncate, want 0", tr.len())
	}
	if tr.hasDecision() {
		t.Fatal("expected no decisions left")
	}
}
