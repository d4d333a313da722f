// Package metrics provides offline quality measures for animation traces:
// overshoot past the target, time to settle inside a tolerance band, and
// peak velocity. Metrics are fed one sample per tick and report a single
// scalar at the end of a run.
package metrics

import (
	"math"

	"github.com/san-kum/kinema/internal/motion"
)

// Metric accumulates a quality measure over one animation run.
type Metric interface {
	Name() string
	Observe(value, velocity, t float64)
	Value() float64
	Reset()
}

// Overshoot measures how far the value travels past the target, as a
// fraction of the start-to-target distance.
type Overshoot struct {
	name    string
	start   float64
	target  float64
	maxOver float64
}

func NewOvershoot(start, target float64) *Overshoot {
	return &Overshoot{
		name:   "overshoot",
		start:  start,
		target: target,
	}
}

func (o *Overshoot) Name() string { return o.name }

func (o *Overshoot) Observe(value, velocity, t float64) {
	span := o.target - o.start
	if span == 0 {
		return
	}
	over := (value - o.target) / span
	if over > o.maxOver {
		o.maxOver = over
	}
}

func (o *Overshoot) Value() float64 { return o.maxOver }

func (o *Overshoot) Reset() { o.maxOver = 0 }

// SettleTime reports the earliest time after which every observed sample
// stayed within the tolerance band around the target. Leaving the band
// resets the candidate.
type SettleTime struct {
	name    string
	target  float64
	tol     motion.Tolerance
	settled float64
	inside  bool
	last    float64
}

func NewSettleTime(target float64, tol motion.Tolerance) *SettleTime {
	return &SettleTime{
		name:   "settle_time",
		target: target,
		tol:    tol,
	}
}

func (s *SettleTime) Name() string { return s.name }

func (s *SettleTime) Observe(value, velocity, t float64) {
	s.last = t
	within := math.Abs(value-s.target) <= s.tol.Distance &&
		math.Abs(velocity) <= s.tol.Velocity
	if within {
		if !s.inside {
			s.inside = true
			s.settled = t
		}
		return
	}
	s.inside = false
}

// Value returns the settle time, or the last observed time when the run
// never settled.
func (s *SettleTime) Value() float64 {
	if !s.inside {
		return s.last
	}
	return s.settled
}

func (s *SettleTime) Reset() {
	s.settled = 0
	s.inside = false
	s.last = 0
}

// PeakVelocity tracks the largest absolute velocity seen during the run.
type PeakVelocity struct {
	name string
	peak float64
}

func NewPeakVelocity() *PeakVelocity {
	return &PeakVelocity{name: "peak_velocity"}
}

func (p *PeakVelocity) Name() string { return p.name }

func (p *PeakVelocity) Observe(value, velocity, t float64) {
	if v := math.Abs(velocity); v > p.peak {
		p.peak = v
	}
}

func (p *PeakVelocity) Value() float64 { return p.peak }

func (p *PeakVelocity) Reset() { p.peak = 0 }

// PathLength sums the absolute value change between consecutive samples.
// For a monotone animation it equals the start-to-target distance; anything
// above that is oscillation.
type PathLength struct {
	name    string
	total   float64
	prev    float64
	samples int
}

func NewPathLength() *PathLength {
	return &PathLength{name: "path_length"}
}

func (p *PathLength) Name() string { return p.name }

func (p *PathLength) Observe(value, velocity, t float64) {
	if p.samples > 0 {
		p.total += math.Abs(value - p.prev)
	}
	p.prev = value
	p.samples++
}

func (p *PathLength) Value() float64 { return p.total }

func (p *PathLength) Reset() {
	p.total = 0
	p.prev = 0
	p.samples = 0
}
