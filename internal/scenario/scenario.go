// Package scenario runs animations offline: it owns a fixed-rate clock,
// ticks a controller until the animation settles or a time cap is hit, and
// collects the resulting trace together with metric values.
package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/kinema/internal/controller"
	"github.com/san-kum/kinema/internal/metrics"
	"github.com/san-kum/kinema/internal/motion"
)

// Sample is one observed point of a run.
type Sample struct {
	T        float64
	Value    float64
	Velocity float64
	Status   motion.Status
}

// Result holds the full trace of a run plus final metric values keyed by
// metric name.
type Result struct {
	Trace   []Sample
	Metrics map[string]float64
	Settled bool
}

// Config sets the clock for a run. FPS is the tick rate; MaxTime caps the
// run for animations that never settle (repeats, undamped springs).
type Config struct {
	FPS     int
	MaxTime float64
}

// DefaultConfig runs at 60 fps for at most 30 simulated seconds.
func DefaultConfig() Config {
	return Config{FPS: 60, MaxTime: 30}
}

func (c Config) validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.MaxTime <= 0 {
		return fmt.Errorf("max time must be positive, got %f", c.MaxTime)
	}
	return nil
}

// Runner ticks one controller and feeds every sample to its metrics.
type Runner struct {
	ctrl    *controller.Controller
	metrics []metrics.Metric
}

func New(ctrl *controller.Controller) *Runner {
	return &Runner{ctrl: ctrl}
}

func (r *Runner) AddMetric(m metrics.Metric) { r.metrics = append(r.metrics, m) }

// Run drives the controller from its current state until it goes idle or
// cfg.MaxTime elapses. The animation must already be started; Run only
// advances the clock.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	dt := time.Second / time.Duration(cfg.FPS)
	steps := int(cfg.MaxTime * float64(cfg.FPS))

	result := &Result{
		Trace:   make([]Sample, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	r.observe(result, 0)

	elapsed := time.Duration(0)
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if !r.ctrl.IsAnimating() {
			result.Settled = true
			break
		}

		elapsed += dt
		if err := r.ctrl.Tick(elapsed); err != nil {
			return result, err
		}
		r.observe(result, elapsed.Seconds())
	}

	if !result.Settled && !r.ctrl.IsAnimating() {
		result.Settled = true
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

func (r *Runner) observe(result *Result, t float64) {
	value := r.ctrl.Value()
	velocity := r.ctrl.Velocity()
	for _, m := range r.metrics {
		m.Observe(value, velocity, t)
	}
	result.Trace = append(result.Trace, Sample{
		T:        t,
		Value:    value,
		Velocity: velocity,
		Status:   r.ctrl.Status(),
	})
}
