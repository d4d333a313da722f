package motion

import "errors"

// Domain errors for the animation engine. All of these represent
// integration bugs in the caller, detected eagerly at call time. There is
// no recovery path; the only "retry" is the caller issuing a new animation.
var (
	// ErrInvalidArgument indicates a bad call-site value, such as bounds
	// with lower > upper, or a velocity override supplied without a
	// physics-based law.
	ErrInvalidArgument = errors.New("motion: invalid argument")

	// ErrInvalidConfiguration indicates a fixed-duration curve was
	// requested with no duration available from either the call site or
	// the controller configuration.
	ErrInvalidConfiguration = errors.New("motion: invalid configuration")

	// ErrDimensionMismatch indicates a vector controller was given a
	// value, bound, or law list of the wrong length.
	ErrDimensionMismatch = errors.New("motion: dimension mismatch")

	// ErrDisposed indicates an operation on a controller after teardown,
	// including a second teardown.
	ErrDisposed = errors.New("motion: controller disposed")
)
