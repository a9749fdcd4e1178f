package rope

import "testing"

func TestTracker_SinglePointer(t *testing.T) {
	var tr Tracker
	if tr.Tracking() {
		t.Fatalf("zero tracker should not be tracking")
	}
	if !tr.PointerDown(1, GridPoint{3, 0}) {
		t.Fatalf("first pointer should be accepted")
	}
	if tr.PointerDown(2, GridPoint{0, 3}) {
		t.Fatalf("second pointer should be rejected while one is active")
	}
	if tr.PointerMove(2, GridPoint{9, 9}) {
		t.Fatalf("move from inactive pointer should be ignored")
	}
	if tr.Target != (GridPoint{3, 0}) {
		t.Fatalf("target changed by foreign pointer: %v", tr.Target)
	}
	if tr.PointerUp(2) {
		t.Fatalf("release from inactive pointer should be ignored")
	}
	if !tr.PointerUp(1) || tr.Tracking() || tr.Active != nil {
		t.Fatalf("release of active pointer should stop tracking")
	}
	if !tr.PointerDown(2, GridPoint{0, 3}) {
		t.Fatalf("pointer 2 should be accepted after release")
	}
}

func TestTracker_OffsetResetOnTargetChange(t *testing.T) {
	var tr Tracker
	tr.PointerDown(7, GridPoint{5, 0})
	c := mustNew(t, 1, 0, 0)
	tr.Step(c)
	if tr.Offset != (StepOffset{1, 0}) {
		t.Fatalf("offset: got %v want (1,0)", tr.Offset)
	}
	tr.PointerMove(7, GridPoint{5, 0})
	if tr.Offset != (StepOffset{1, 0}) {
		t.Fatalf("unchanged target should keep offset, got %v", tr.Offset)
	}
	tr.PointerMove(7, GridPoint{5, 1})
	if tr.Offset != (StepOffset{}) {
		t.Fatalf("new target should reset offset, got %v", tr.Offset)
	}
}

func TestTracker_ReachesTarget(t *testing.T) {
	targets := []GridPoint{{5, 0}, {0, 5}, {3, 3}, {3, 1}, {-4, 2}, {7, -3}, {-10, -10}, {1, -9}}
	for _, target := range targets {
		var tr Tracker
		tr.PointerDown(0, target)
		c := mustNew(t, 4, 0, 0)
		limit := 2*GridPoint{}.Chebyshev(target) + 2
		for i := 0; i < limit && c.Head() != target; i++ {
			tr.Step(c)
		}
		if c.Head() != target {
			t.Fatalf("target %v: head stopped at %v after %d ticks", target, c.Head(), limit)
		}
		if tr.Step(c) {
			t.Fatalf("target %v: head moved after arriving", target)
		}
	}
}

func TestTracker_StepIdleWhenNotTracking(t *testing.T) {
	var tr Tracker
	c := mustNew(t, 1, 0, 0)
	if tr.Step(c) || c.Head() != (GridPoint{}) {
		t.Fatalf("idle tracker moved the chain")
	}
}
