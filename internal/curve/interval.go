package curve

import (
	"fmt"

	"github.com/san-kum/kinema/internal/motion"
)

// Interval interpolates begin -> end over a fixed duration through an
// easing function, satisfying the same Simulation contract as the spring
// solver.
//
// Velocity is estimated with a symmetric finite difference of width
// motion.TimeEpsilon. This is an intentional approximation: easing
// functions carry no closed-form derivative in general, and the estimate is
// only consumed to seed velocity-preserving retargets.
type Interval struct {
	begin    float64
	end      float64
	duration float64
	fn       Func
}

// NewInterval builds a fixed-duration interpolation. The duration must be
// strictly positive; a zero-duration animation is a snap, which the
// controller handles before ever constructing a simulation.
func NewInterval(begin, end, duration float64, fn Func) (*Interval, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%w: curve interval needs a positive duration, got %f", motion.ErrInvalidConfiguration, duration)
	}
	if fn == nil {
		fn = Linear
	}
	return &Interval{begin: begin, end: end, duration: duration, fn: fn}, nil
}

func (i *Interval) Position(t float64) float64 {
	if t <= 0 {
		return i.begin
	}
	if t >= i.duration {
		return i.end
	}
	return i.begin + (i.end-i.begin)*i.fn(t/i.duration)
}

func (i *Interval) Velocity(t float64) float64 {
	eps := motion.TimeEpsilon
	return (i.Position(t+eps) - i.Position(t-eps)) / (2 * eps)
}

func (i *Interval) Done(t float64) bool { return t >= i.duration }

// Duration returns the fixed playback time in seconds.
func (i *Interval) Duration() float64 { return i.duration }
