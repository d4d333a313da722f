package spring

import (
	"fmt"
	"math"

	"github.com/san-kum/kinema/internal/motion"
)

// Description holds the physical constants of a damped harmonic oscillator.
type Description struct {
	Mass      float64
	Stiffness float64
	Damping   float64
}

// WithDampingRatio builds a description from a dimensionless damping ratio
// instead of a raw damping coefficient. ratio < 1 oscillates, ratio = 1 is
// critically damped, ratio > 1 creeps to rest without overshoot.
func WithDampingRatio(mass, stiffness, ratio float64) Description {
	return Description{
		Mass:      mass,
		Stiffness: stiffness,
		Damping:   ratio * 2 * math.Sqrt(mass*stiffness),
	}
}

// DefaultFling is the description used for fling/ballistic motion when the
// caller does not supply one. Deliberately a variable: the right feel is
// environment-dependent, so embedders may tune it.
var DefaultFling = WithDampingRatio(0.5, 100, 1.1)

// criticalBand is the half-width of the damping-ratio band treated as
// critically damped. The duration estimate is continuous across the band
// edges, so the classification itself carries no numeric jump.
const criticalBand = 1e-3

// Regime classifies the analytic solution family of a description.
type Regime int

const (
	Underdamped Regime = iota
	CriticallyDamped
	Overdamped
)

func (r Regime) String() string {
	switch r {
	case Underdamped:
		return "underdamped"
	case CriticallyDamped:
		return "critically damped"
	case Overdamped:
		return "overdamped"
	}
	return "unknown"
}

// DampingRatio returns ζ = damping / (2·√(stiffness·mass)).
func (d Description) DampingRatio() float64 {
	return d.Damping / (2 * math.Sqrt(d.Stiffness*d.Mass))
}

// NaturalFrequency returns ω₀ = √(stiffness/mass) in rad/s.
func (d Description) NaturalFrequency() float64 {
	return math.Sqrt(d.Stiffness / d.Mass)
}

// Regime classifies the description by damping ratio.
func (d Description) Regime() Regime {
	zeta := d.DampingRatio()
	switch {
	case math.Abs(zeta-1) < criticalBand:
		return CriticallyDamped
	case zeta < 1:
		return Underdamped
	default:
		return Overdamped
	}
}

// Validate checks the physical constants. Mass and stiffness must be
// strictly positive, damping non-negative.
func (d Description) Validate() error {
	if d.Mass <= 0 || math.IsNaN(d.Mass) {
		return fmt.Errorf("%w: spring mass must be positive, got %f", motion.ErrInvalidArgument, d.Mass)
	}
	if d.Stiffness <= 0 || math.IsNaN(d.Stiffness) {
		return fmt.Errorf("%w: spring stiffness must be positive, got %f", motion.ErrInvalidArgument, d.Stiffness)
	}
	if d.Damping < 0 || math.IsNaN(d.Damping) {
		return fmt.Errorf("%w: spring damping must be non-negative, got %f", motion.ErrInvalidArgument, d.Damping)
	}
	return nil
}
