package controller

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/kinema/internal/curve"
	"github.com/san-kum/kinema/internal/motion"
	"github.com/san-kum/kinema/internal/spring"
)

// Config holds construction-time options for a scalar controller. The zero
// value of a field means "use the default": bounds default to [0,1] only
// through DefaultConfig, Tolerance to motion.DefaultTolerance, TimeScale
// to 1.
type Config struct {
	LowerBound      float64
	UpperBound      float64
	Duration        time.Duration
	ReverseDuration time.Duration
	Law             Law
	InitialValue    float64
	Tolerance       motion.Tolerance
	TimeScale       float64
}

// DefaultConfig animates over the unit interval.
func DefaultConfig() Config {
	return Config{
		LowerBound: 0,
		UpperBound: 1,
		Tolerance:  motion.DefaultTolerance,
		TimeScale:  1,
	}
}

// Controller is the scalar animation state machine. It retains the current
// value, the active simulation, and the run direction; all mutation happens
// synchronously inside Tick, AnimateTo, SetValue, Stop, or Dispose.
type Controller struct {
	lower           float64
	upper           float64
	duration        time.Duration
	reverseDuration time.Duration
	law             Law
	tol             motion.Tolerance
	timeScale       float64
	initialValue    float64

	value       float64
	direction   motion.Direction
	status      motion.Status
	reported    motion.Status
	active      motion.Simulation
	lastElapsed float64
	handle      *Handle
	disposed    bool

	valueListeners  map[int]func(float64)
	statusListeners map[int]func(motion.Status)
	nextListener    int
}

// New builds a bounded controller. Lower must not exceed upper; equal
// bounds are legal (degenerate, always terminal).
func New(cfg Config) (*Controller, error) {
	if math.IsNaN(cfg.LowerBound) || math.IsNaN(cfg.UpperBound) || cfg.LowerBound > cfg.UpperBound {
		return nil, fmt.Errorf("%w: bounds [%f, %f]", motion.ErrInvalidArgument, cfg.LowerBound, cfg.UpperBound)
	}
	return newController(cfg, cfg.LowerBound, cfg.UpperBound), nil
}

// NewUnbounded builds a controller over (-inf, +inf). Clamping on infinite
// bounds is a natural no-op, not a separate code path.
func NewUnbounded(cfg Config) *Controller {
	return newController(cfg, math.Inf(-1), math.Inf(1))
}

func newController(cfg Config, lower, upper float64) *Controller {
	tol := cfg.Tolerance
	if tol.Distance <= 0 || tol.Velocity <= 0 {
		tol = motion.DefaultTolerance
	}
	scale := cfg.TimeScale
	if scale == 0 {
		scale = 1
	}
	c := &Controller{
		lower:           lower,
		upper:           upper,
		duration:        cfg.Duration,
		reverseDuration: cfg.ReverseDuration,
		law:             cfg.Law,
		tol:             tol,
		timeScale:       scale,
		initialValue:    cfg.InitialValue,
		valueListeners:  make(map[int]func(float64)),
		statusListeners: make(map[int]func(motion.Status)),
	}
	c.value = c.clamp(cfg.InitialValue)
	c.status = c.deriveStatus(c.value)
	c.reported = c.status
	return c
}

// Value returns the current animated value, already clamped.
func (c *Controller) Value() float64 { return c.value }

// Velocity returns the instantaneous rate of change in units per second,
// zero when idle.
func (c *Controller) Velocity() float64 {
	if c.active == nil {
		return 0
	}
	return c.active.Velocity(c.lastElapsed)
}

// Status returns the current state-machine status.
func (c *Controller) Status() motion.Status { return c.status }

// Direction returns the direction of the current or most recent run.
func (c *Controller) Direction() motion.Direction { return c.direction }

// IsAnimating reports whether a simulation is in flight.
func (c *Controller) IsAnimating() bool { return c.active != nil }

// LowerBound returns the inclusive lower clamp bound.
func (c *Controller) LowerBound() float64 { return c.lower }

// UpperBound returns the inclusive upper clamp bound.
func (c *Controller) UpperBound() float64 { return c.upper }

// SetTimeScale adjusts the factor applied to fixed durations. Zero snaps
// every fixed-duration animation immediately, the "disable animations"
// accessibility setting.
func (c *Controller) SetTimeScale(scale float64) error {
	if c.disposed {
		return c.disposedErr("SetTimeScale")
	}
	if scale < 0 || math.IsNaN(scale) {
		return fmt.Errorf("%w: time scale must be non-negative, got %f", motion.ErrInvalidArgument, scale)
	}
	c.timeScale = scale
	return nil
}

// OnValue registers a listener for every tick's published value. The
// returned function removes the listener.
func (c *Controller) OnValue(fn func(float64)) (func(), error) {
	if c.disposed {
		return nil, c.disposedErr("OnValue")
	}
	id := c.nextListener
	c.nextListener++
	c.valueListeners[id] = fn
	return func() { delete(c.valueListeners, id) }, nil
}

// OnStatus registers a listener fired only when the derived status actually
// changes. The returned function removes the listener.
func (c *Controller) OnStatus(fn func(motion.Status)) (func(), error) {
	if c.disposed {
		return nil, c.disposedErr("OnStatus")
	}
	id := c.nextListener
	c.nextListener++
	c.statusListeners[id] = fn
	return func() { delete(c.statusListeners, id) }, nil
}

// Forward runs the value toward the upper bound.
func (c *Controller) Forward() (*Handle, error) {
	if c.disposed {
		return nil, c.disposedErr("Forward")
	}
	return c.animateTo(c.upper, motion.Forward, nil)
}

// Reverse runs the value toward the lower bound.
func (c *Controller) Reverse() (*Handle, error) {
	if c.disposed {
		return nil, c.disposedErr("Reverse")
	}
	return c.animateTo(c.lower, motion.Reverse, nil)
}

// Option modifies a single AnimateTo call.
type Option func(*animateOptions)

type animateOptions struct {
	duration         *time.Duration
	law              Law
	velocityDelta    float64
	hasDelta         bool
	velocityOverride *float64
}

// WithDuration forces an explicit playback duration. On a physics law the
// spring is re-timed to complete in exactly this duration, preserving its
// damping ratio.
func WithDuration(d time.Duration) Option {
	return func(o *animateOptions) { o.duration = &d }
}

// WithLaw overrides the controller's default driving law for this call.
func WithLaw(law Law) Option {
	return func(o *animateOptions) { o.law = law }
}

// WithVelocityDelta adds to the preserved launch velocity. Physics laws
// only.
func WithVelocityDelta(v float64) Option {
	return func(o *animateOptions) { o.velocityDelta = v; o.hasDelta = true }
}

// WithVelocity replaces the launch velocity entirely, discarding whatever
// the interrupted animation carried. Physics laws only.
func WithVelocity(v float64) Option {
	return func(o *animateOptions) { o.velocityOverride = &v }
}

// AnimateTo animates the value from its current position to target.
//
// Retargeting mid-flight preserves momentum: unless WithVelocity is given,
// the new trajectory launches with the old trajectory's velocity at the
// moment of interruption (plus the law's own initial velocity and any
// WithVelocityDelta). This is what makes interrupted animations feel
// continuous instead of restarting cold.
func (c *Controller) AnimateTo(target float64, opts ...Option) (*Handle, error) {
	if c.disposed {
		return nil, c.disposedErr("AnimateTo")
	}
	o := &animateOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return c.animateTo(target, motion.Forward, o)
}

// AnimateWith drives the controller with an arbitrary simulation. The
// simulation's own Done decides completion; the value is still clamped to
// the controller's bounds each tick.
func (c *Controller) AnimateWith(sim motion.Simulation) (*Handle, error) {
	if c.disposed {
		return nil, c.disposedErr("AnimateWith")
	}
	if sim == nil {
		return nil, fmt.Errorf("%w: AnimateWith requires a simulation", motion.ErrInvalidArgument)
	}
	c.stopInternal()
	return c.start(sim, c.direction), nil
}

// Fling launches a ballistic run with the given velocity using the default
// fling spring, toward the upper bound for positive velocity and the lower
// bound otherwise.
func (c *Controller) Fling(velocity float64) (*Handle, error) {
	if c.disposed {
		return nil, c.disposedErr("Fling")
	}
	target := c.upper
	dir := motion.Forward
	if velocity < 0 {
		target = c.lower
		dir = motion.Reverse
	}
	if math.IsInf(target, 0) {
		return nil, fmt.Errorf("%w: fling needs a finite bound to settle at", motion.ErrInvalidConfiguration)
	}
	v := velocity
	return c.animateTo(target, dir, &animateOptions{
		law:              Physics{Spring: spring.DefaultFling},
		velocityOverride: &v,
	})
}

func (c *Controller) animateTo(target float64, dir motion.Direction, o *animateOptions) (*Handle, error) {
	if o == nil {
		o = &animateOptions{}
	}
	law := o.law
	if law == nil {
		law = c.law
	}
	if law == nil {
		law = Curve{}
	}

	if _, isPhysics := law.(Physics); !isPhysics && (o.hasDelta || o.velocityOverride != nil) {
		return nil, fmt.Errorf("%w: velocity delta/override requires a physics-based law", motion.ErrInvalidArgument)
	}
	if math.IsNaN(target) {
		return nil, fmt.Errorf("%w: animation target is NaN", motion.ErrInvalidArgument)
	}
	c.direction = dir
	target = c.clamp(target)

	switch law := law.(type) {
	case Curve:
		d, err := c.resolveDuration(target, dir, law, o.duration)
		if err != nil {
			return nil, err
		}
		c.stopInternal()
		if d <= 0 || target == c.value {
			return c.snapTo(target), nil
		}
		ease := law.Ease
		if ease == nil {
			ease = curve.Linear
		}
		sim, err := curve.NewInterval(c.value, target, d.Seconds(), ease)
		if err != nil {
			return nil, err
		}
		return c.start(sim, dir), nil

	case Physics:
		prior := c.stopInternal()
		v0 := prior + law.InitialVelocity + o.velocityDelta
		if o.velocityOverride != nil {
			v0 = *o.velocityOverride
		}
		sp, err := spring.New(law.Spring, c.value, target, v0, c.tol)
		if err != nil {
			return nil, err
		}
		if o.duration != nil {
			sp, err = sp.WithDuration(o.duration.Seconds(), c.timeScale)
			if err != nil {
				return nil, err
			}
		}
		if sp.Done(0) {
			return c.snapTo(target), nil
		}
		return c.start(sp, dir), nil
	}
	return nil, fmt.Errorf("%w: unknown driving law %T", motion.ErrInvalidArgument, law)
}

// resolveDuration picks the playback time for a fixed-duration law:
// explicit argument first, then the law's own duration, then the
// direction-appropriate configured duration scaled by the fraction of the
// range actually traveled, so a short remaining hop plays proportionally
// faster.
func (c *Controller) resolveDuration(target float64, dir motion.Direction, law Curve, explicit *time.Duration) (time.Duration, error) {
	if explicit != nil {
		return time.Duration(float64(*explicit) * c.timeScale), nil
	}
	cfgDur := law.Duration
	if cfgDur == 0 {
		cfgDur = c.duration
		if dir == motion.Reverse && c.reverseDuration > 0 {
			cfgDur = c.reverseDuration
		}
	}
	if cfgDur == 0 {
		return 0, fmt.Errorf("%w: fixed-duration law with no duration configured", motion.ErrInvalidConfiguration)
	}
	span := c.upper - c.lower
	if !math.IsInf(span, 0) && span > 0 {
		frac := math.Abs(target-c.value) / span
		cfgDur = time.Duration(float64(cfgDur) * frac)
	}
	return time.Duration(float64(cfgDur) * c.timeScale), nil
}

// RepeatConfig describes a periodic run between Min and Max.
type RepeatConfig struct {
	Min     float64
	Max     float64
	Reverse bool
	Period  time.Duration
	Law     Law
	Count   int
}

// Repeat stops any active simulation and starts a periodic one. Each cycle
// follows the given law (defaulting to the controller's law, then linear);
// with Reverse the value ping-pongs; Count caps the cycles, zero repeats
// until stopped. The repeating simulation's direction callback keeps the
// controller's direction and status in sync with the fold parity.
func (c *Controller) Repeat(cfg RepeatConfig) (*Handle, error) {
	if c.disposed {
		return nil, c.disposedErr("Repeat")
	}
	if cfg.Period <= 0 {
		return nil, fmt.Errorf("%w: repeat needs a positive period", motion.ErrInvalidConfiguration)
	}
	prior := c.stopInternal()

	law := cfg.Law
	if law == nil {
		law = c.law
	}
	if law == nil {
		law = Curve{}
	}
	var base motion.Simulation
	switch law := law.(type) {
	case Curve:
		ease := law.Ease
		if ease == nil {
			ease = curve.Linear
		}
		iv, err := curve.NewInterval(0, 1, cfg.Period.Seconds(), ease)
		if err != nil {
			return nil, err
		}
		base = iv
	case Physics:
		sp, err := spring.New(law.Spring, 0, 1, prior+law.InitialVelocity, c.tol)
		if err != nil {
			return nil, err
		}
		sp, err = sp.WithDuration(cfg.Period.Seconds(), 0)
		if err != nil {
			return nil, err
		}
		base = sp
	}

	rep, err := motion.NewRepeating(cfg.Min, cfg.Max, cfg.Period.Seconds(), cfg.Reverse, cfg.Count, base, c.onRepeatDirection)
	if err != nil {
		return nil, err
	}
	return c.start(rep, motion.Forward), nil
}

// onRepeatDirection fires from inside Repeating.Position, before the
// position is returned, so direction and value are never observed out of
// sync.
func (c *Controller) onRepeatDirection(dir motion.Direction) {
	c.direction = dir
	if dir == motion.Forward {
		c.status = motion.StatusForward
	} else {
		c.status = motion.StatusReverse
	}
}

// Stop freezes the value where the last tick left it, discards the active
// simulation, and returns the velocity at the moment of stopping (zero if
// nothing was running).
func (c *Controller) Stop() (float64, error) {
	if c.disposed {
		return 0, c.disposedErr("Stop")
	}
	return c.stopInternal(), nil
}

// SetValue stops any animation and snaps to v, clamped to the bounds.
func (c *Controller) SetValue(v float64) error {
	if c.disposed {
		return c.disposedErr("SetValue")
	}
	if math.IsNaN(v) {
		return fmt.Errorf("%w: value is NaN", motion.ErrInvalidArgument)
	}
	c.stopInternal()
	c.value = c.clamp(v)
	c.status = c.deriveStatus(c.value)
	c.notifyValue()
	c.notifyStatus()
	return nil
}

// Reset stops and snaps back to the configured initial value.
func (c *Controller) Reset() error {
	if c.disposed {
		return c.disposedErr("Reset")
	}
	return c.SetValue(c.initialValue)
}

// Tick advances the controller to the given elapsed time, measured from the
// start of the active simulation. Value listeners are notified on every
// tick, status listeners only when the status changed, and always after the
// value notification.
func (c *Controller) Tick(elapsed time.Duration) error {
	if c.disposed {
		return c.disposedErr("Tick")
	}
	if elapsed < 0 {
		return fmt.Errorf("%w: negative elapsed time %v", motion.ErrInvalidArgument, elapsed)
	}
	if c.active == nil {
		return nil
	}
	t := elapsed.Seconds()
	c.lastElapsed = t
	c.value = c.clamp(c.active.Position(t))

	var finished *Handle
	if c.active.Done(t) {
		if c.direction == motion.Forward {
			c.status = motion.StatusCompleted
		} else {
			c.status = motion.StatusDismissed
		}
		c.active = nil
		finished = c.handle
		c.handle = nil
	}
	c.notifyValue()
	c.notifyStatus()
	if finished != nil {
		finished.finish(false)
	}
	return nil
}

// Dispose tears the controller down: the in-flight animation is canceled
// and all listeners released. Every later call, including a second Dispose,
// fails with motion.ErrDisposed.
func (c *Controller) Dispose() error {
	if c.disposed {
		return c.disposedErr("Dispose")
	}
	c.stopInternal()
	c.valueListeners = nil
	c.statusListeners = nil
	c.disposed = true
	return nil
}

func (c *Controller) start(sim motion.Simulation, dir motion.Direction) *Handle {
	c.active = sim
	c.lastElapsed = 0
	c.handle = &Handle{}
	if dir == motion.Forward {
		c.status = motion.StatusForward
	} else {
		c.status = motion.StatusReverse
	}
	c.notifyStatus()
	return c.handle
}

// snapTo finishes an animation synchronously: one value notification, then
// the terminal status for the current direction.
func (c *Controller) snapTo(target float64) *Handle {
	c.value = c.clamp(target)
	if c.direction == motion.Forward {
		c.status = motion.StatusCompleted
	} else {
		c.status = motion.StatusDismissed
	}
	c.notifyValue()
	c.notifyStatus()
	return completedHandle()
}

func (c *Controller) stopInternal() float64 {
	if c.active == nil {
		return 0
	}
	v := c.active.Velocity(c.lastElapsed)
	c.active = nil
	if c.handle != nil {
		h := c.handle
		c.handle = nil
		h.finish(true)
	}
	return v
}

func (c *Controller) clamp(v float64) float64 {
	return math.Max(c.lower, math.Min(c.upper, v))
}

// deriveStatus applies the bound-derivation rule: upper wins over lower
// when the bounds coincide, and mid-range values report the run direction.
func (c *Controller) deriveStatus(v float64) motion.Status {
	switch {
	case v == c.upper && !math.IsInf(c.upper, 0):
		return motion.StatusCompleted
	case v == c.lower && !math.IsInf(c.lower, 0):
		return motion.StatusDismissed
	case c.direction == motion.Reverse:
		return motion.StatusReverse
	default:
		return motion.StatusForward
	}
}

func (c *Controller) notifyValue() {
	for _, fn := range c.valueListeners {
		fn(c.value)
	}
}

func (c *Controller) notifyStatus() {
	if c.status == c.reported {
		return
	}
	c.reported = c.status
	for _, fn := range c.statusListeners {
		fn(c.status)
	}
}

func (c *Controller) disposedErr(op string) error {
	return fmt.Errorf("%w: %s called after Dispose", motion.ErrDisposed, op)
}
