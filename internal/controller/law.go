// Package controller implements the tick-driven animation state machines:
// the scalar [Controller], the two-axis [Controller2D], and the
// N-dimensional [VectorController].
//
// An external scheduler owns the clock. It calls Tick with the time elapsed
// since the current simulation started; the controller evaluates its active
// simulation, updates the retained value and status, and notifies
// listeners. Nothing here blocks, spawns goroutines, or retains timers.
package controller

import (
	"time"

	"github.com/san-kum/kinema/internal/curve"
	"github.com/san-kum/kinema/internal/spring"
)

// Law is the driving law of an animation: either a fixed-duration easing
// curve or a physical spring description. It is a sealed sum type so the
// physics-or-curve branch in the controller is an exhaustive type switch
// rather than a runtime capability test.
type Law interface {
	isLaw()
}

// Curve plays begin -> end over a fixed duration through an easing
// function. A zero Duration defers to the controller's configured duration;
// a nil Ease means linear.
type Curve struct {
	Duration time.Duration
	Ease     curve.Func
}

func (Curve) isLaw() {}

// Physics drives the value with a damped spring. InitialVelocity is added
// on top of whatever velocity is preserved from an interrupted animation.
type Physics struct {
	Spring          spring.Description
	InitialVelocity float64
}

func (Physics) isLaw() {}
