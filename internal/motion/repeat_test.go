package motion

import (
	"math"
	"testing"
)

func TestRepeatingLinearSweep(t *testing.T) {
	r, err := NewRepeating(0, 1, 1.0, false, 0, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	if got := r.Position(0); got != 0 {
		t.Errorf("expected 0 at t=0, got %f", got)
	}
	if got := r.Position(0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("expected 0.5 mid-cycle, got %f", got)
	}
	// Without reverse the value snaps back each period.
	if got := r.Position(1.25); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("expected 0.25 in second cycle, got %f", got)
	}
	if r.Done(100) {
		t.Error("count 0 must repeat forever")
	}
}

func TestRepeatingPingPong(t *testing.T) {
	r, err := NewRepeating(0, 1, 1.0, true, 0, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	if got := r.Position(0.25); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("expected 0.25 ascending, got %f", got)
	}
	// Odd cycles mirror: t=1.25 folds to progress 0.25, mirrored to 0.75.
	if got := r.Position(1.25); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("expected 0.75 descending, got %f", got)
	}
	if got := r.Velocity(0.25); got <= 0 {
		t.Errorf("expected positive velocity ascending, got %f", got)
	}
	if got := r.Velocity(1.25); got >= 0 {
		t.Errorf("expected negative velocity descending, got %f", got)
	}
}

func TestRepeatingCountTerminates(t *testing.T) {
	r, err := NewRepeating(0, 1, 0.5, true, 2, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	if r.Done(0.99) {
		t.Error("not done before two cycles")
	}
	if !r.Done(1.0) {
		t.Error("done after two cycles")
	}
	// Final cycle was mirrored, so it rests at min.
	if got := r.Position(1.0); got != 0 {
		t.Errorf("expected rest at min, got %f", got)
	}
	if got := r.Velocity(1.0); got != 0 {
		t.Errorf("expected zero velocity at rest, got %f", got)
	}
}

func TestRepeatingCountWithoutReverse(t *testing.T) {
	r, err := NewRepeating(0, 1, 0.5, false, 3, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Done(1.5) {
		t.Error("done after three cycles")
	}
	if got := r.Position(1.5); got != 1 {
		t.Errorf("expected rest at max, got %f", got)
	}
}

func TestRepeatingDirectionCallback(t *testing.T) {
	var dirs []Direction
	r, err := NewRepeating(0, 1, 1.0, true, 2, nil, func(d Direction) {
		dirs = append(dirs, d)
	})
	if err != nil {
		t.Fatal(err)
	}

	// Walk two full cycles in small steps, like a tick loop would.
	for tt := 0.0; tt < 2.0; tt += 0.05 {
		r.Position(tt)
	}

	if len(dirs) != 2 {
		t.Fatalf("expected exactly 2 direction notifications, got %d (%v)", len(dirs), dirs)
	}
	if dirs[0] != Forward || dirs[1] != Reverse {
		t.Errorf("expected [forward reverse], got %v", dirs)
	}
}

func TestRepeatingCallbackDeduped(t *testing.T) {
	calls := 0
	r, err := NewRepeating(0, 1, 1.0, false, 0, nil, func(Direction) { calls++ })
	if err != nil {
		t.Fatal(err)
	}

	// Direction never flips without reverse.
	for tt := 0.0; tt < 3.0; tt += 0.1 {
		r.Position(tt)
	}
	if calls != 1 {
		t.Errorf("expected a single notification, got %d", calls)
	}
}

func TestRepeatingCustomRange(t *testing.T) {
	r, err := NewRepeating(-2, 6, 1.0, false, 0, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Position(0); got != -2 {
		t.Errorf("expected min, got %f", got)
	}
	if got := r.Position(0.5); math.Abs(got-2) > 1e-9 {
		t.Errorf("expected midpoint 2, got %f", got)
	}
}

func TestRepeatingValidation(t *testing.T) {
	if _, err := NewRepeating(0, 1, 0, false, 0, nil, nil); err == nil {
		t.Error("expected error for zero period")
	}
	if _, err := NewRepeating(0, 1, -1, false, 0, nil, nil); err == nil {
		t.Error("expected error for negative period")
	}
	if _, err := NewRepeating(0, 1, 1, false, -1, nil, nil); err == nil {
		t.Error("expected error for negative count")
	}
}
