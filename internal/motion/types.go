package motion

import "math"

// Simulation evaluates an animated value over elapsed time, measured in
// seconds from the moment the simulation was started. Implementations must
// be pure in t: repeated calls with the same t return identical results.
type Simulation interface {
	Position(t float64) float64
	Velocity(t float64) float64
	Done(t float64) bool
}

// Tolerance holds the thresholds below which a simulation is considered
// settled.
type Tolerance struct {
	Distance float64
	Velocity float64
}

// DefaultTolerance matches the scale of typical UI values (logical pixels
// and fractions of a bounded range).
var DefaultTolerance = Tolerance{Distance: 0.01, Velocity: 0.1}

// TimeEpsilon is the small time step used for symmetric finite-difference
// velocity estimates where no closed-form derivative exists.
const TimeEpsilon = 1e-4

// Direction is the direction a controller is driving its value in.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// Status is the observable state of a controller.
type Status int

const (
	// StatusDismissed means the value sits at the lower bound, idle.
	StatusDismissed Status = iota
	// StatusForward means the value is running toward the upper bound.
	StatusForward
	// StatusReverse means the value is running toward the lower bound.
	StatusReverse
	// StatusCompleted means the value sits at the upper bound, idle.
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusDismissed:
		return "dismissed"
	case StatusForward:
		return "forward"
	case StatusReverse:
		return "reverse"
	case StatusCompleted:
		return "completed"
	}
	return "unknown"
}

// Vector packs one value per axis for the multi-dimensional controllers.
type Vector []float64

func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

func (v Vector) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (v Vector) Norm() float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

func (v Vector) Sub(other Vector) Vector {
	result := make(Vector, len(v))
	for i := range v {
		if i < len(other) {
			result[i] = v[i] - other[i]
		} else {
			result[i] = v[i]
		}
	}
	return result
}

// Distance is the Euclidean distance to other.
func (v Vector) Distance(other Vector) float64 {
	return v.Sub(other).Norm()
}
