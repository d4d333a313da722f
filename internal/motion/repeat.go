package motion

import "fmt"

// Repeating wraps a base progress law into a periodic, optionally
// ping-ponging oscillator between min and max.
//
// Elapsed time is folded into [0, period) by modulo; when Reverse is set,
// odd fold counts mirror the progress so the value sweeps back. Count, when
// positive, caps the total number of cycles; a zero Count repeats forever.
//
// The direction callback is the one sanctioned side effect of a simulation:
// it fires synchronously, before Position returns, whenever the logical
// direction flips, so the owning controller never observes direction and
// value out of sync.
type Repeating struct {
	min, max float64
	period   float64
	reverse  bool
	count    int
	base     Simulation

	onDirection func(Direction)
	lastDir     Direction
	notified    bool
}

// NewRepeating builds a repeating simulation. base, when non-nil, supplies
// the progress shape over a single period and is expected to run 0..1 over
// [0, period]; a nil base is a linear sweep. onDirection may be nil.
func NewRepeating(min, max, period float64, reverse bool, count int, base Simulation, onDirection func(Direction)) (*Repeating, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: repeat period must be positive, got %f", ErrInvalidConfiguration, period)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: repeat count must be non-negative, got %d", ErrInvalidArgument, count)
	}
	return &Repeating{
		min:         min,
		max:         max,
		period:      period,
		reverse:     reverse,
		count:       count,
		base:        base,
		onDirection: onDirection,
	}, nil
}

func (r *Repeating) mirrored(cycle int) bool {
	return r.reverse && cycle%2 == 1
}

func (r *Repeating) progressAt(ft float64) float64 {
	p := ft / r.period
	if r.base != nil {
		p = r.base.Position(ft)
	}
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func (r *Repeating) fire(dir Direction) {
	if r.notified && dir == r.lastDir {
		return
	}
	r.lastDir = dir
	r.notified = true
	if r.onDirection != nil {
		r.onDirection(dir)
	}
}

func (r *Repeating) Position(t float64) float64 {
	if r.Done(t) {
		// Rest at the endpoint of the final cycle.
		cycle := r.count - 1
		if cycle < 0 {
			cycle = 0
		}
		if r.mirrored(cycle) {
			return r.min
		}
		return r.max
	}
	cycle := int(t / r.period)
	ft := t - float64(cycle)*r.period
	p := r.progressAt(ft)
	dir := Forward
	if r.mirrored(cycle) {
		p = 1 - p
		dir = Reverse
	}
	r.fire(dir)
	return r.min + (r.max-r.min)*p
}

func (r *Repeating) Velocity(t float64) float64 {
	if r.Done(t) {
		return 0
	}
	cycle := int(t / r.period)
	ft := t - float64(cycle)*r.period
	v := (r.max - r.min) / r.period
	if r.base != nil {
		v = (r.max - r.min) * r.base.Velocity(ft)
	}
	if r.mirrored(cycle) {
		v = -v
	}
	return v
}

func (r *Repeating) Done(t float64) bool {
	if r.count == 0 {
		return false
	}
	return t >= float64(r.count)*r.period
}
