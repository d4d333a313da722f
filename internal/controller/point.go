package controller

import (
	"time"

	"github.com/san-kum/kinema/internal/motion"
)

// Point is a value on the plane.
type Point struct {
	X, Y float64
}

func (p Point) vector() motion.Vector { return motion.Vector{p.X, p.Y} }

func pointFrom(v motion.Vector) Point { return Point{X: v[0], Y: v[1]} }

// Config2D configures a two-axis controller. Nil corner pointers mean
// unbounded axes.
type Config2D struct {
	LowerBound      *Point
	UpperBound      *Point
	Duration        time.Duration
	ReverseDuration time.Duration
	Law             Law
	InitialValue    Point
	Tolerance       motion.Tolerance
	TimeScale       float64
}

// Controller2D animates a point: two independent per-axis simulations fused
// into one logical animation, with the same status policy as
// VectorController.
type Controller2D struct {
	vc *VectorController
}

// New2D builds a two-axis controller.
func New2D(cfg Config2D) (*Controller2D, error) {
	vcfg := VectorConfig{
		Dimensions:      2,
		Duration:        cfg.Duration,
		ReverseDuration: cfg.ReverseDuration,
		Law:             cfg.Law,
		InitialValue:    cfg.InitialValue.vector(),
		Tolerance:       cfg.Tolerance,
		TimeScale:       cfg.TimeScale,
	}
	if cfg.LowerBound != nil {
		vcfg.LowerBound = cfg.LowerBound.vector()
	}
	if cfg.UpperBound != nil {
		vcfg.UpperBound = cfg.UpperBound.vector()
	}
	vc, err := NewVector(vcfg)
	if err != nil {
		return nil, err
	}
	return &Controller2D{vc: vc}, nil
}

// Value returns the current point.
func (c *Controller2D) Value() Point { return pointFrom(c.vc.Value()) }

// Velocity returns the current per-axis velocities as a point.
func (c *Controller2D) Velocity() Point { return pointFrom(c.vc.Velocity()) }

// Status returns the fused status.
func (c *Controller2D) Status() motion.Status { return c.vc.Status() }

// IsAnimating reports whether either axis is still running.
func (c *Controller2D) IsAnimating() bool { return c.vc.IsAnimating() }

// AnimateTo animates both axes toward target as one logical animation.
func (c *Controller2D) AnimateTo(target Point, opts ...VectorOption) (*Handle, error) {
	return c.vc.AnimateTo(target.vector(), opts...)
}

// Forward animates both axes to the upper corner.
func (c *Controller2D) Forward(opts ...VectorOption) (*Handle, error) {
	return c.vc.Forward(opts...)
}

// Reverse animates both axes to the lower corner.
func (c *Controller2D) Reverse(opts ...VectorOption) (*Handle, error) {
	return c.vc.Reverse(opts...)
}

// Tick advances both axes to the shared elapsed time.
func (c *Controller2D) Tick(elapsed time.Duration) error { return c.vc.Tick(elapsed) }

// Stop halts both axes and returns the velocity at the moment of stopping.
func (c *Controller2D) Stop() (Point, error) {
	v, err := c.vc.Stop()
	if err != nil {
		return Point{}, err
	}
	return pointFrom(v), nil
}

// SetValue stops and snaps to p.
func (c *Controller2D) SetValue(p Point) error { return c.vc.SetValue(p.vector()) }

// OnValue registers a listener for the point published each tick.
func (c *Controller2D) OnValue(fn func(Point)) (func(), error) {
	return c.vc.OnValue(func(v motion.Vector) { fn(pointFrom(v)) })
}

// OnStatus registers a listener for fused status changes.
func (c *Controller2D) OnStatus(fn func(motion.Status)) (func(), error) {
	return c.vc.OnStatus(fn)
}

// Dispose tears down both axes.
func (c *Controller2D) Dispose() error { return c.vc.Dispose() }
