package scenario

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/san-kum/kinema/internal/controller"
	"github.com/san-kum/kinema/internal/metrics"
	"github.com/san-kum/kinema/internal/motion"
	"github.com/san-kum/kinema/internal/spring"
)

func TestRunCurveSettles(t *testing.T) {
	cfg := controller.DefaultConfig()
	cfg.Duration = 300 * time.Millisecond
	ctrl, err := controller.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ctrl.Forward(); err != nil {
		t.Fatal(err)
	}

	r := New(ctrl)
	result, err := r.Run(context.Background(), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	if !result.Settled {
		t.Error("expected run to settle")
	}
	if got := ctrl.Value(); got != 1 {
		t.Errorf("expected final value 1, got %f", got)
	}
	if ctrl.Status() != motion.StatusCompleted {
		t.Errorf("expected completed status, got %v", ctrl.Status())
	}
	if len(result.Trace) < 2 {
		t.Fatalf("expected multiple samples, got %d", len(result.Trace))
	}
	for i := 1; i < len(result.Trace); i++ {
		if result.Trace[i].T <= result.Trace[i-1].T {
			t.Fatal("expected strictly increasing sample times")
		}
	}
}

func TestRunSpringMetrics(t *testing.T) {
	cfg := controller.DefaultConfig()
	cfg.UpperBound = 100
	cfg.Law = controller.Physics{
		Spring: spring.Description{Mass: 1, Stiffness: 100, Damping: 10},
	}
	ctrl, err := controller.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ctrl.AnimateTo(100); err != nil {
		t.Fatal(err)
	}

	r := New(ctrl)
	r.AddMetric(metrics.NewOvershoot(0, 100))
	r.AddMetric(metrics.NewPeakVelocity())

	result, err := r.Run(context.Background(), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	if !result.Settled {
		t.Error("expected spring run to settle")
	}
	if math.Abs(ctrl.Value()-100) > 1 {
		t.Errorf("expected final value near 100, got %f", ctrl.Value())
	}
	if result.Metrics["peak_velocity"] <= 0 {
		t.Error("expected non-zero peak velocity")
	}
	if _, ok := result.Metrics["overshoot"]; !ok {
		t.Error("expected overshoot metric in result")
	}
}

func TestRunValidatesConfig(t *testing.T) {
	ctrl, err := controller.New(controller.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	r := New(ctrl)
	if _, err := r.Run(context.Background(), Config{FPS: 0, MaxTime: 1}); err == nil {
		t.Error("expected error for zero fps")
	}
	if _, err := r.Run(context.Background(), Config{FPS: 60, MaxTime: 0}); err == nil {
		t.Error("expected error for zero max time")
	}
}

func TestRunCanceled(t *testing.T) {
	cfg := controller.DefaultConfig()
	cfg.Duration = time.Hour
	ctrl, err := controller.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ctrl.Forward(); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(ctrl)
	if _, err := r.Run(ctx, DefaultConfig()); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
