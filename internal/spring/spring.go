// Package spring implements the closed-form solution of a damped harmonic
// oscillator and exposes it through the engine's Simulation contract.
//
// Evaluation is O(1): position, velocity, and the settle duration are all
// derived analytically from the regime's closed form, never by stepping or
// sampling.
package spring

import (
	"fmt"
	"math"

	"github.com/san-kum/kinema/internal/motion"
)

// solution is the per-regime closed form. Both functions are pure in t.
type solution interface {
	x(t float64) float64
	dx(t float64) float64
}

// Spring is an analytic damped-spring simulation from start to end with a
// given launch velocity. Immutable; retargeting produces a new Spring via
// CopyWith.
type Spring struct {
	desc     Description
	start    float64
	end      float64
	velocity float64
	tol      motion.Tolerance

	sol      solution
	duration float64
}

// New builds a spring from desc moving start -> end with initial velocity
// v0 (units per second).
func New(desc Description, start, end, v0 float64, tol motion.Tolerance) (*Spring, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	if tol.Distance <= 0 || tol.Velocity <= 0 {
		return nil, fmt.Errorf("%w: tolerance must be positive, got %+v", motion.ErrInvalidArgument, tol)
	}
	s := &Spring{
		desc:     desc,
		start:    start,
		end:      end,
		velocity: v0,
		tol:      tol,
	}
	s.sol = solve(desc, start-end, v0, end)
	s.duration = settleTime(desc, start-end, v0, tol)
	return s, nil
}

// solve picks the closed form for the regime. delta is start-end, the
// initial displacement from rest.
func solve(desc Description, delta, v0, end float64) solution {
	omega0 := desc.NaturalFrequency()
	zeta := desc.DampingRatio()

	switch desc.Regime() {
	case CriticallyDamped:
		return &criticalSolution{
			omega0: omega0,
			a:      delta,
			b:      v0 + omega0*delta,
			end:    end,
		}
	case Overdamped:
		// Two real negative roots of m·r² + c·r + k = 0.
		disc := math.Sqrt(desc.Damping*desc.Damping - 4*desc.Mass*desc.Stiffness)
		r1 := (-desc.Damping - disc) / (2 * desc.Mass)
		r2 := (-desc.Damping + disc) / (2 * desc.Mass)
		b := (v0 - r1*delta) / (r2 - r1)
		return &overdampedSolution{
			r1:  r1,
			r2:  r2,
			a:   delta - b,
			b:   b,
			end: end,
		}
	default:
		sigma := zeta * omega0
		omegaD := omega0 * math.Sqrt(1-zeta*zeta)
		return &underdampedSolution{
			sigma:  sigma,
			omegaD: omegaD,
			a:      delta,
			b:      (v0 + sigma*delta) / omegaD,
			end:    end,
		}
	}
}

// settleTime estimates the smallest t beyond which the motion stays inside
// the tolerance band, from the exponential decay envelope. The decay rate σ
// (the slow root for overdamped springs) and the amplitude scale C are both
// continuous functions of the damping ratio, so the estimate has no jump as
// ζ crosses 1.
func settleTime(desc Description, delta, v0 float64, tol motion.Tolerance) float64 {
	omega0 := desc.NaturalFrequency()
	zeta := desc.DampingRatio()

	sigma := zeta * omega0
	if zeta > 1 {
		sigma = omega0 * (zeta - math.Sqrt(zeta*zeta-1))
	}
	if sigma <= 0 {
		// Undamped: the motion never decays.
		if delta == 0 && v0 == 0 {
			return 0
		}
		return math.Inf(1)
	}

	c := math.Abs(delta) + math.Abs(v0+sigma*delta)/sigma
	if c == 0 {
		return 0
	}
	td := math.Log(c/tol.Distance) / sigma
	tv := math.Log(c*omega0/tol.Velocity) / sigma
	return math.Max(0, math.Max(td, tv))
}

// Position returns the value at elapsed time t.
func (s *Spring) Position(t float64) float64 { return s.sol.x(t) }

// Velocity returns the rate of change at elapsed time t.
func (s *Spring) Velocity(t float64) float64 { return s.sol.dx(t) }

// Done reports whether the motion has settled within tolerance.
func (s *Spring) Done(t float64) bool { return t >= s.duration }

// Duration is the analytic settle-time estimate in seconds. Infinite for an
// undamped spring that is not already at rest.
func (s *Spring) Duration() float64 { return s.duration }

// End returns the rest target of the spring.
func (s *Spring) End() float64 { return s.end }

// Description returns the physical constants driving the spring.
func (s *Spring) Description() Description { return s.desc }

// CopyWith returns a new spring over the same description and tolerance
// with fresh boundary conditions. The receiver is not modified.
func (s *Spring) CopyWith(start, end, v0 float64) (*Spring, error) {
	return New(s.desc, start, end, v0, s.tol)
}

// WithDuration returns a copy re-timed so the motion completes in exactly d
// seconds (multiplied by scale when scale > 0). Stiffness is rescaled by s²
// and damping by s, which preserves the damping ratio: the motion is the
// same shape, time-warped. The launch velocity scales by s for the same
// reason.
func (s *Spring) WithDuration(d float64, scale float64) (*Spring, error) {
	if scale > 0 {
		d *= scale
	}
	if d <= 0 {
		return nil, fmt.Errorf("%w: target duration must be positive, got %f", motion.ErrInvalidConfiguration, d)
	}
	natural := s.duration
	if natural == 0 {
		// Already at rest; any duration is trivially satisfied.
		return s.CopyWith(s.start, s.end, s.velocity)
	}
	if math.IsInf(natural, 1) {
		return nil, fmt.Errorf("%w: undamped spring has no finite duration to rescale", motion.ErrInvalidConfiguration)
	}
	factor := natural / d
	warped := Description{
		Mass:      s.desc.Mass,
		Stiffness: s.desc.Stiffness * factor * factor,
		Damping:   s.desc.Damping * factor,
	}
	out, err := New(warped, s.start, s.end, s.velocity*factor, s.tol)
	if err != nil {
		return nil, err
	}
	// The envelope estimate of the warped spring lands within rounding of
	// d; pin it exactly so completion is deterministic.
	out.duration = d
	return out, nil
}

type underdampedSolution struct {
	sigma  float64
	omegaD float64
	a, b   float64
	end    float64
}

func (u *underdampedSolution) x(t float64) float64 {
	decay := math.Exp(-u.sigma * t)
	return u.end + decay*(u.a*math.Cos(u.omegaD*t)+u.b*math.Sin(u.omegaD*t))
}

func (u *underdampedSolution) dx(t float64) float64 {
	decay := math.Exp(-u.sigma * t)
	cos := math.Cos(u.omegaD * t)
	sin := math.Sin(u.omegaD * t)
	return decay * ((u.b*u.omegaD-u.a*u.sigma)*cos - (u.a*u.omegaD+u.b*u.sigma)*sin)
}

type criticalSolution struct {
	omega0 float64
	a, b   float64
	end    float64
}

func (c *criticalSolution) x(t float64) float64 {
	return c.end + (c.a+c.b*t)*math.Exp(-c.omega0*t)
}

func (c *criticalSolution) dx(t float64) float64 {
	return (c.b - c.omega0*(c.a+c.b*t)) * math.Exp(-c.omega0*t)
}

type overdampedSolution struct {
	r1, r2 float64
	a, b   float64
	end    float64
}

func (o *overdampedSolution) x(t float64) float64 {
	return o.end + o.a*math.Exp(o.r1*t) + o.b*math.Exp(o.r2*t)
}

func (o *overdampedSolution) dx(t float64) float64 {
	return o.a*o.r1*math.Exp(o.r1*t) + o.b*o.r2*math.Exp(o.r2*t)
}
