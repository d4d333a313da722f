package controller

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/kinema/internal/motion"
)

// VectorConfig configures an N-dimensional controller. Bounds and initial
// value, when non-nil, must have exactly Dimensions entries; nil bounds
// mean unbounded axes.
type VectorConfig struct {
	Dimensions      int
	LowerBound      motion.Vector
	UpperBound      motion.Vector
	Duration        time.Duration
	ReverseDuration time.Duration
	Law             Law
	InitialValue    motion.Vector
	Tolerance       motion.Tolerance
	TimeScale       float64
}

// VectorController runs one scalar state machine per axis and fuses them
// into a single logical animation with one status signal.
//
// Fusion policy (a choice, not an accident): the controller is animating
// while any axis is; a running Forward axis outranks a running Reverse
// axis; once every axis is terminal, the fused status is Completed for a
// forward run and Dismissed for a reverse one.
type VectorController struct {
	axes      []*Controller
	dims      int
	direction motion.Direction
	status    motion.Status
	reported  motion.Status
	handle    *Handle
	disposed  bool

	duration        time.Duration
	reverseDuration time.Duration
	law             Law
	timeScale       float64

	valueListeners  map[int]func(motion.Vector)
	statusListeners map[int]func(motion.Status)
	nextListener    int
}

// NewVector builds an N-dimensional controller from per-axis bounds.
func NewVector(cfg VectorConfig) (*VectorController, error) {
	if cfg.Dimensions <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive, got %d", motion.ErrInvalidArgument, cfg.Dimensions)
	}
	for name, v := range map[string]motion.Vector{
		"lower bound":   cfg.LowerBound,
		"upper bound":   cfg.UpperBound,
		"initial value": cfg.InitialValue,
	} {
		if v != nil && len(v) != cfg.Dimensions {
			return nil, fmt.Errorf("%w: %s has %d entries, want %d", motion.ErrDimensionMismatch, name, len(v), cfg.Dimensions)
		}
	}
	scale := cfg.TimeScale
	if scale == 0 {
		scale = 1
	}
	vc := &VectorController{
		axes:            make([]*Controller, cfg.Dimensions),
		dims:            cfg.Dimensions,
		duration:        cfg.Duration,
		reverseDuration: cfg.ReverseDuration,
		law:             cfg.Law,
		timeScale:       scale,
		valueListeners:  make(map[int]func(motion.Vector)),
		statusListeners: make(map[int]func(motion.Status)),
	}
	for i := 0; i < cfg.Dimensions; i++ {
		axisCfg := Config{
			Tolerance: cfg.Tolerance,
			TimeScale: scale,
		}
		if cfg.InitialValue != nil {
			axisCfg.InitialValue = cfg.InitialValue[i]
		}
		if cfg.LowerBound == nil && cfg.UpperBound == nil {
			vc.axes[i] = NewUnbounded(axisCfg)
			continue
		}
		axisCfg.LowerBound = math.Inf(-1)
		axisCfg.UpperBound = math.Inf(1)
		if cfg.LowerBound != nil {
			axisCfg.LowerBound = cfg.LowerBound[i]
		}
		if cfg.UpperBound != nil {
			axisCfg.UpperBound = cfg.UpperBound[i]
		}
		axis, err := New(axisCfg)
		if err != nil {
			return nil, err
		}
		vc.axes[i] = axis
	}
	vc.status = vc.fuseStatus()
	vc.reported = vc.status
	return vc, nil
}

// Dimensions returns the axis count.
func (vc *VectorController) Dimensions() int { return vc.dims }

// Value returns the current per-axis values.
func (vc *VectorController) Value() motion.Vector {
	out := make(motion.Vector, vc.dims)
	for i, axis := range vc.axes {
		out[i] = axis.Value()
	}
	return out
}

// Velocity returns the current per-axis velocities.
func (vc *VectorController) Velocity() motion.Vector {
	out := make(motion.Vector, vc.dims)
	for i, axis := range vc.axes {
		out[i] = axis.Velocity()
	}
	return out
}

// Status returns the fused status across all axes.
func (vc *VectorController) Status() motion.Status { return vc.status }

// IsAnimating reports whether any axis still has a simulation in flight.
func (vc *VectorController) IsAnimating() bool {
	for _, axis := range vc.axes {
		if axis.IsAnimating() {
			return true
		}
	}
	return false
}

// OnValue registers a listener for the fused value published each tick.
func (vc *VectorController) OnValue(fn func(motion.Vector)) (func(), error) {
	if vc.disposed {
		return nil, vc.disposedErr("OnValue")
	}
	id := vc.nextListener
	vc.nextListener++
	vc.valueListeners[id] = fn
	return func() { delete(vc.valueListeners, id) }, nil
}

// OnStatus registers a listener for fused status changes.
func (vc *VectorController) OnStatus(fn func(motion.Status)) (func(), error) {
	if vc.disposed {
		return nil, vc.disposedErr("OnStatus")
	}
	id := vc.nextListener
	vc.nextListener++
	vc.statusListeners[id] = fn
	return func() { delete(vc.statusListeners, id) }, nil
}

// VectorOption modifies a single vector AnimateTo call.
type VectorOption func(*vectorAnimateOptions)

type vectorAnimateOptions struct {
	duration   *time.Duration
	law        Law
	perAxisLaw []Law
	deltas     motion.Vector
	overrides  motion.Vector
}

// WithVectorDuration forces an explicit playback duration for every axis.
func WithVectorDuration(d time.Duration) VectorOption {
	return func(o *vectorAnimateOptions) { o.duration = &d }
}

// WithVectorLaw overrides the controller's default law for every axis.
func WithVectorLaw(law Law) VectorOption {
	return func(o *vectorAnimateOptions) { o.law = law }
}

// WithPerAxisLaws supplies one law per axis. Length must match the
// dimension count.
func WithPerAxisLaws(laws []Law) VectorOption {
	return func(o *vectorAnimateOptions) { o.perAxisLaw = laws }
}

// WithVelocityDeltas adds per-axis velocity to the preserved launch
// velocities. Physics laws only; length must match the dimension count.
func WithVelocityDeltas(deltas motion.Vector) VectorOption {
	return func(o *vectorAnimateOptions) { o.deltas = deltas }
}

// WithVelocities replaces the per-axis launch velocities entirely. Physics
// laws only; length must match the dimension count.
func WithVelocities(overrides motion.Vector) VectorOption {
	return func(o *vectorAnimateOptions) { o.overrides = overrides }
}

// AnimateTo animates every axis toward its entry in target as one logical
// animation. Fractional-duration scaling uses the Euclidean distance across
// all axes, so a multi-axis retarget plays in proportion to the overall
// distance traveled, not the longest single axis.
//
// Per-axis launch velocities are captured for all axes before any axis
// starts, so no axis ever observes another's half-updated state.
func (vc *VectorController) AnimateTo(target motion.Vector, opts ...VectorOption) (*Handle, error) {
	if vc.disposed {
		return nil, vc.disposedErr("AnimateTo")
	}
	o := &vectorAnimateOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return vc.animate(target, motion.Forward, o)
}

// Forward animates every axis to its upper bound.
func (vc *VectorController) Forward(opts ...VectorOption) (*Handle, error) {
	if vc.disposed {
		return nil, vc.disposedErr("Forward")
	}
	return vc.animateToBound(motion.Forward, opts)
}

// Reverse animates every axis to its lower bound.
func (vc *VectorController) Reverse(opts ...VectorOption) (*Handle, error) {
	if vc.disposed {
		return nil, vc.disposedErr("Reverse")
	}
	return vc.animateToBound(motion.Reverse, opts)
}

func (vc *VectorController) animateToBound(dir motion.Direction, opts []VectorOption) (*Handle, error) {
	o := &vectorAnimateOptions{}
	for _, opt := range opts {
		opt(o)
	}
	target := make(motion.Vector, vc.dims)
	for i, axis := range vc.axes {
		bound := axis.UpperBound()
		if dir == motion.Reverse {
			bound = axis.LowerBound()
		}
		if math.IsInf(bound, 0) {
			return nil, fmt.Errorf("%w: %s needs finite bounds", motion.ErrInvalidConfiguration, dir)
		}
		target[i] = bound
	}
	return vc.animate(target, dir, o)
}

func (vc *VectorController) animate(target motion.Vector, dir motion.Direction, o *vectorAnimateOptions) (*Handle, error) {
	if len(target) != vc.dims {
		return nil, fmt.Errorf("%w: target has %d entries, want %d", motion.ErrDimensionMismatch, len(target), vc.dims)
	}
	for name, v := range map[string]motion.Vector{
		"velocity deltas":    o.deltas,
		"velocity overrides": o.overrides,
	} {
		if v != nil && len(v) != vc.dims {
			return nil, fmt.Errorf("%w: %s has %d entries, want %d", motion.ErrDimensionMismatch, name, len(v), vc.dims)
		}
	}
	if o.perAxisLaw != nil && len(o.perAxisLaw) != vc.dims {
		return nil, fmt.Errorf("%w: per-axis laws has %d entries, want %d", motion.ErrDimensionMismatch, len(o.perAxisLaw), vc.dims)
	}

	laws := make([]Law, vc.dims)
	anyCurve := false
	for i := range laws {
		law := Law(nil)
		if o.perAxisLaw != nil {
			law = o.perAxisLaw[i]
		}
		if law == nil {
			law = o.law
		}
		if law == nil {
			law = vc.law
		}
		if law == nil {
			law = Curve{}
		}
		if _, isPhysics := law.(Physics); !isPhysics {
			anyCurve = true
			if o.deltas != nil || o.overrides != nil {
				return nil, fmt.Errorf("%w: velocity delta/override requires a physics-based law on every axis", motion.ErrInvalidArgument)
			}
		}
		laws[i] = law
	}

	vc.direction = dir

	// Resolve one shared duration for the fixed-duration axes.
	var shared *time.Duration
	if o.duration != nil {
		shared = o.duration
	} else if anyCurve {
		d, err := vc.fractionalDuration(target)
		if err != nil {
			return nil, err
		}
		shared = &d
	}

	// Capture every axis's outgoing velocity before starting any of them.
	prior := make(motion.Vector, vc.dims)
	for i, axis := range vc.axes {
		prior[i] = axis.stopInternal()
	}
	if vc.handle != nil {
		vc.handle.finish(true)
		vc.handle = nil
	}

	for i, axis := range vc.axes {
		axisOpts := &animateOptions{law: laws[i]}
		if phys, ok := laws[i].(Physics); ok {
			v0 := prior[i] + phys.InitialVelocity
			if o.deltas != nil {
				v0 += o.deltas[i]
			}
			if o.overrides != nil {
				v0 = o.overrides[i]
			}
			axisOpts.velocityOverride = &v0
			if o.duration != nil {
				axisOpts.duration = o.duration
			}
		} else if shared != nil {
			axisOpts.duration = shared
		}
		if _, err := axis.animateTo(target[i], dir, axisOpts); err != nil {
			return nil, err
		}
	}

	if !vc.IsAnimating() {
		vc.refreshStatus()
		return completedHandle(), nil
	}
	vc.handle = &Handle{}
	vc.refreshStatus()
	return vc.handle, nil
}

// fractionalDuration scales the configured duration by the Euclidean
// distance traveled relative to the Euclidean span of the bounds.
func (vc *VectorController) fractionalDuration(target motion.Vector) (time.Duration, error) {
	cfgDur := vc.duration
	if vc.direction == motion.Reverse && vc.reverseDuration > 0 {
		cfgDur = vc.reverseDuration
	}
	if cfgDur == 0 {
		return 0, fmt.Errorf("%w: fixed-duration law with no duration configured", motion.ErrInvalidConfiguration)
	}
	span := make(motion.Vector, vc.dims)
	finite := true
	for i, axis := range vc.axes {
		span[i] = axis.UpperBound() - axis.LowerBound()
		if math.IsInf(span[i], 0) {
			finite = false
			break
		}
	}
	if finite {
		if norm := span.Norm(); norm > 0 {
			frac := target.Distance(vc.Value()) / norm
			cfgDur = time.Duration(float64(cfgDur) * frac)
		}
	}
	return cfgDur, nil
}

// Tick advances every axis to the shared elapsed time, then publishes the
// fused value and, when it changed, the fused status.
func (vc *VectorController) Tick(elapsed time.Duration) error {
	if vc.disposed {
		return vc.disposedErr("Tick")
	}
	for _, axis := range vc.axes {
		if err := axis.Tick(elapsed); err != nil {
			return err
		}
	}
	var finished *Handle
	if !vc.IsAnimating() && vc.handle != nil {
		finished = vc.handle
		vc.handle = nil
	}
	vc.status = vc.fuseStatus()
	vc.notifyValue()
	vc.notifyStatus()
	if finished != nil {
		finished.finish(false)
	}
	return nil
}

// Stop halts every axis and returns the per-axis velocities at the moment
// of stopping.
func (vc *VectorController) Stop() (motion.Vector, error) {
	if vc.disposed {
		return nil, vc.disposedErr("Stop")
	}
	out := make(motion.Vector, vc.dims)
	for i, axis := range vc.axes {
		out[i] = axis.stopInternal()
	}
	if vc.handle != nil {
		vc.handle.finish(true)
		vc.handle = nil
	}
	vc.refreshStatus()
	return out, nil
}

// SetValue stops every axis and snaps the fused value.
func (vc *VectorController) SetValue(v motion.Vector) error {
	if vc.disposed {
		return vc.disposedErr("SetValue")
	}
	if len(v) != vc.dims {
		return fmt.Errorf("%w: value has %d entries, want %d", motion.ErrDimensionMismatch, len(v), vc.dims)
	}
	for i, axis := range vc.axes {
		axis.stopInternal()
		if err := axis.SetValue(v[i]); err != nil {
			return err
		}
	}
	if vc.handle != nil {
		vc.handle.finish(true)
		vc.handle = nil
	}
	vc.status = vc.fuseStatus()
	vc.notifyValue()
	vc.notifyStatus()
	return nil
}

// Dispose tears down every axis and releases the fused listeners. Further
// calls fail with motion.ErrDisposed.
func (vc *VectorController) Dispose() error {
	if vc.disposed {
		return vc.disposedErr("Dispose")
	}
	for _, axis := range vc.axes {
		if err := axis.Dispose(); err != nil {
			return err
		}
	}
	if vc.handle != nil {
		vc.handle.finish(true)
		vc.handle = nil
	}
	vc.valueListeners = nil
	vc.statusListeners = nil
	vc.disposed = true
	return nil
}

func (vc *VectorController) refreshStatus() {
	vc.status = vc.fuseStatus()
	vc.notifyStatus()
}

func (vc *VectorController) fuseStatus() motion.Status {
	anyForward, anyReverse := false, false
	for _, axis := range vc.axes {
		if !axis.IsAnimating() {
			continue
		}
		switch axis.Status() {
		case motion.StatusForward:
			anyForward = true
		case motion.StatusReverse:
			anyReverse = true
		}
	}
	if anyForward {
		return motion.StatusForward
	}
	if anyReverse {
		return motion.StatusReverse
	}
	// All axes terminal: dismissed only when every axis is, completed when
	// any axis reached its upper bound, otherwise by run direction.
	allDismissed := true
	anyCompleted := false
	for _, axis := range vc.axes {
		switch axis.Status() {
		case motion.StatusCompleted:
			anyCompleted = true
			allDismissed = false
		case motion.StatusDismissed:
		default:
			allDismissed = false
		}
	}
	switch {
	case allDismissed:
		return motion.StatusDismissed
	case anyCompleted:
		return motion.StatusCompleted
	case vc.direction == motion.Reverse:
		return motion.StatusDismissed
	default:
		return motion.StatusCompleted
	}
}

func (vc *VectorController) notifyValue() {
	if len(vc.valueListeners) == 0 {
		return
	}
	v := vc.Value()
	for _, fn := range vc.valueListeners {
		fn(v)
	}
}

func (vc *VectorController) notifyStatus() {
	if vc.status == vc.reported {
		return
	}
	vc.reported = vc.status
	for _, fn := range vc.statusListeners {
		fn(vc.status)
	}
}

func (vc *VectorController) disposedErr(op string) error {
	return fmt.Errorf("%w: %s called after Dispose", motion.ErrDisposed, op)
}
