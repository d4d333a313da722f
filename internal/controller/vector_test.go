package controller

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/san-kum/kinema/internal/motion"
	"github.com/san-kum/kinema/internal/spring"
)

func vectorSpringConfig() VectorConfig {
	return VectorConfig{
		Dimensions: 2,
		LowerBound: motion.Vector{0, 0},
		UpperBound: motion.Vector{100, 100},
		Law:        springLaw(),
	}
}

func TestNewVectorValidation(t *testing.T) {
	if _, err := NewVector(VectorConfig{Dimensions: 0}); !errors.Is(err, motion.ErrInvalidArgument) {
		t.Errorf("expected invalid argument, got %v", err)
	}
	if _, err := NewVector(VectorConfig{
		Dimensions: 2,
		LowerBound: motion.Vector{0},
		UpperBound: motion.Vector{1, 1},
	}); !errors.Is(err, motion.ErrDimensionMismatch) {
		t.Errorf("expected dimension mismatch, got %v", err)
	}
	if _, err := NewVector(VectorConfig{
		Dimensions:   3,
		InitialValue: motion.Vector{1, 2},
	}); !errors.Is(err, motion.ErrDimensionMismatch) {
		t.Errorf("expected dimension mismatch, got %v", err)
	}
}

func TestVectorInitialState(t *testing.T) {
	vc, err := NewVector(vectorSpringConfig())
	if err != nil {
		t.Fatal(err)
	}
	if vc.Dimensions() != 2 {
		t.Errorf("expected 2 dimensions, got %d", vc.Dimensions())
	}
	if vc.Status() != motion.StatusDismissed {
		t.Errorf("expected dismissed at lower corner, got %v", vc.Status())
	}
	if vc.IsAnimating() {
		t.Error("expected idle controller")
	}
}

func TestVectorSpringSettles(t *testing.T) {
	vc, err := NewVector(vectorSpringConfig())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := vc.AnimateTo(motion.Vector{100, 100}); err != nil {
		t.Fatal(err)
	}
	if vc.Status() != motion.StatusForward {
		t.Errorf("expected forward, got %v", vc.Status())
	}

	dt := time.Second / 60
	elapsed := time.Duration(0)
	for i := 0; i < 60*5 && vc.IsAnimating(); i++ {
		elapsed += dt
		if err := vc.Tick(elapsed); err != nil {
			t.Fatal(err)
		}
	}

	if vc.IsAnimating() {
		t.Fatal("expected both axes settled within 5s")
	}
	v := vc.Value()
	if math.Abs(v[0]-100) > 0.1 || math.Abs(v[1]-100) > 0.1 {
		t.Errorf("expected rest near (100,100), got %v", v)
	}
	if vc.Status() != motion.StatusCompleted {
		t.Errorf("expected completed, got %v", vc.Status())
	}
}

func TestVectorDimensionMismatch(t *testing.T) {
	vc, err := NewVector(vectorSpringConfig())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := vc.AnimateTo(motion.Vector{1}); !errors.Is(err, motion.ErrDimensionMismatch) {
		t.Errorf("expected dimension mismatch, got %v", err)
	}
	if _, err := vc.AnimateTo(motion.Vector{1, 2, 3}); !errors.Is(err, motion.ErrDimensionMismatch) {
		t.Errorf("expected dimension mismatch, got %v", err)
	}
	if _, err := vc.AnimateTo(motion.Vector{1, 2}, WithVelocityDeltas(motion.Vector{1})); !errors.Is(err, motion.ErrDimensionMismatch) {
		t.Errorf("expected dimension mismatch for deltas, got %v", err)
	}
	if _, err := vc.AnimateTo(motion.Vector{1, 2}, WithPerAxisLaws([]Law{springLaw()})); !errors.Is(err, motion.ErrDimensionMismatch) {
		t.Errorf("expected dimension mismatch for laws, got %v", err)
	}
	if err := vc.SetValue(motion.Vector{1}); !errors.Is(err, motion.ErrDimensionMismatch) {
		t.Errorf("expected dimension mismatch, got %v", err)
	}
}

func TestVectorEuclideanFractionalDuration(t *testing.T) {
	cfg := VectorConfig{
		Dimensions: 2,
		LowerBound: motion.Vector{0, 0},
		UpperBound: motion.Vector{3, 4},
		Duration:   time.Second,
	}
	vc, err := NewVector(cfg)
	if err != nil {
		t.Fatal(err)
	}

	// Span norm is 5; traveling to (1.5, 2) covers half of it.
	if _, err := vc.AnimateTo(motion.Vector{1.5, 2}); err != nil {
		t.Fatal(err)
	}
	if err := vc.Tick(500 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if vc.IsAnimating() {
		t.Error("expected half-distance hop done at half the duration")
	}
	v := vc.Value()
	if math.Abs(v[0]-1.5) > 1e-9 || math.Abs(v[1]-2) > 1e-9 {
		t.Errorf("expected (1.5,2), got %v", v)
	}
}

func TestVectorForwardReverse(t *testing.T) {
	cfg := VectorConfig{
		Dimensions: 2,
		LowerBound: motion.Vector{0, 0},
		UpperBound: motion.Vector{1, 1},
		Duration:   200 * time.Millisecond,
	}
	vc, err := NewVector(cfg)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := vc.Forward(); err != nil {
		t.Fatal(err)
	}
	if err := vc.Tick(200 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if vc.Status() != motion.StatusCompleted {
		t.Errorf("expected completed, got %v", vc.Status())
	}

	if _, err := vc.Reverse(); err != nil {
		t.Fatal(err)
	}
	if vc.Status() != motion.StatusReverse {
		t.Errorf("expected reverse, got %v", vc.Status())
	}
	if err := vc.Tick(200 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if vc.Status() != motion.StatusDismissed {
		t.Errorf("expected dismissed, got %v", vc.Status())
	}

	unbounded, err := NewVector(VectorConfig{Dimensions: 2, Duration: time.Second})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := unbounded.Forward(); !errors.Is(err, motion.ErrInvalidConfiguration) {
		t.Errorf("expected invalid configuration on infinite bounds, got %v", err)
	}
}

func TestVectorVelocityCapturedBeforeStart(t *testing.T) {
	vc, err := NewVector(vectorSpringConfig())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := vc.AnimateTo(motion.Vector{100, 50}); err != nil {
		t.Fatal(err)
	}
	if err := vc.Tick(100 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	before := vc.Velocity()
	if before[0] <= 0 || before[1] <= 0 {
		t.Fatalf("expected in-flight velocities, got %v", before)
	}

	if _, err := vc.AnimateTo(motion.Vector{0, 0}); err != nil {
		t.Fatal(err)
	}
	after := vc.Velocity()
	for i := range before {
		if math.Abs(after[i]-before[i]) > 1e-9 {
			t.Errorf("axis %d velocity not preserved: %f vs %f", i, before[i], after[i])
		}
	}
}

func TestVectorFusedStatusMixedAxes(t *testing.T) {
	// Axis 0 travels, axis 1 is already at its target: the fused status
	// follows the still-running axis.
	vc, err := NewVector(vectorSpringConfig())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := vc.AnimateTo(motion.Vector{100, 0}); err != nil {
		t.Fatal(err)
	}
	if !vc.IsAnimating() {
		t.Fatal("expected axis 0 running")
	}
	if vc.Status() != motion.StatusForward {
		t.Errorf("expected forward while any axis runs, got %v", vc.Status())
	}
}

func TestVectorValueBeforeStatus(t *testing.T) {
	cfg := VectorConfig{
		Dimensions: 2,
		LowerBound: motion.Vector{0, 0},
		UpperBound: motion.Vector{1, 1},
		Duration:   100 * time.Millisecond,
	}
	vc, err := NewVector(cfg)
	if err != nil {
		t.Fatal(err)
	}

	var events []string
	vc.OnValue(func(motion.Vector) { events = append(events, "value") })
	vc.OnStatus(func(s motion.Status) { events = append(events, "status:"+s.String()) })

	if _, err := vc.Forward(); err != nil {
		t.Fatal(err)
	}
	events = events[:0]

	if err := vc.Tick(100 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 || events[0] != "value" || events[1] != "status:completed" {
		t.Errorf("expected value before status, got %v", events)
	}
}

func TestVectorStop(t *testing.T) {
	vc, err := NewVector(vectorSpringConfig())
	if err != nil {
		t.Fatal(err)
	}

	h, err := vc.AnimateTo(motion.Vector{100, 100})
	if err != nil {
		t.Fatal(err)
	}
	vc.Tick(100 * time.Millisecond)

	vels, err := vc.Stop()
	if err != nil {
		t.Fatal(err)
	}
	if vels[0] <= 0 || vels[1] <= 0 {
		t.Errorf("expected positive stop velocities, got %v", vels)
	}
	if vc.IsAnimating() {
		t.Error("expected idle after stop")
	}
	if !h.Canceled() {
		t.Error("expected handle canceled")
	}
}

func TestVectorHandleCompletes(t *testing.T) {
	cfg := VectorConfig{
		Dimensions: 2,
		LowerBound: motion.Vector{0, 0},
		UpperBound: motion.Vector{1, 1},
		Duration:   100 * time.Millisecond,
	}
	vc, err := NewVector(cfg)
	if err != nil {
		t.Fatal(err)
	}

	h, err := vc.Forward()
	if err != nil {
		t.Fatal(err)
	}
	if err := vc.Tick(100 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if !h.Done() || h.Canceled() {
		t.Error("expected fused handle completed")
	}
}

func TestVectorDispose(t *testing.T) {
	vc, err := NewVector(vectorSpringConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := vc.Dispose(); err != nil {
		t.Fatal(err)
	}
	if err := vc.Dispose(); !errors.Is(err, motion.ErrDisposed) {
		t.Errorf("expected disposed error, got %v", err)
	}
	if _, err := vc.AnimateTo(motion.Vector{1, 1}); !errors.Is(err, motion.ErrDisposed) {
		t.Errorf("expected disposed error, got %v", err)
	}
}

func TestVectorPerAxisLaws(t *testing.T) {
	cfg := VectorConfig{
		Dimensions: 2,
		LowerBound: motion.Vector{0, 0},
		UpperBound: motion.Vector{1, 1},
		Duration:   200 * time.Millisecond,
	}
	vc, err := NewVector(cfg)
	if err != nil {
		t.Fatal(err)
	}

	// Axis 0 springs, axis 1 follows the fixed-duration curve.
	laws := []Law{
		Physics{Spring: spring.Description{Mass: 1, Stiffness: 100, Damping: 20}},
		nil,
	}
	if _, err := vc.AnimateTo(motion.Vector{1, 1}, WithPerAxisLaws(laws)); err != nil {
		t.Fatal(err)
	}

	dt := time.Second / 60
	elapsed := time.Duration(0)
	for i := 0; i < 600 && vc.IsAnimating(); i++ {
		elapsed += dt
		if err := vc.Tick(elapsed); err != nil {
			t.Fatal(err)
		}
	}
	v := vc.Value()
	if math.Abs(v[0]-1) > 0.05 || math.Abs(v[1]-1) > 1e-9 {
		t.Errorf("expected both axes at 1, got %v", v)
	}
	if vc.Status() != motion.StatusCompleted {
		t.Errorf("expected completed, got %v", vc.Status())
	}
}
