// Package curve provides monotonic easing functions and the fixed-duration
// curve simulation used for non-physics playback.
package curve

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/kinema/internal/motion"
)

// Func maps normalized progress t ∈ [0,1] to eased progress ∈ [0,1].
// Implementations must be monotonic with f(0)=0 and f(1)=1.
type Func func(t float64) float64

func Linear(t float64) float64 { return t }

func EaseInQuad(t float64) float64 { return t * t }

func EaseOutQuad(t float64) float64 { return 1 - (1-t)*(1-t) }

func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

func EaseInCubic(t float64) float64 { return t * t * t }

func EaseOutCubic(t float64) float64 { return 1 - math.Pow(1-t, 3) }

func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

func EaseInSine(t float64) float64 { return 1 - math.Cos(t*math.Pi/2) }

func EaseOutSine(t float64) float64 { return math.Sin(t * math.Pi / 2) }

func EaseInOutSine(t float64) float64 { return -(math.Cos(math.Pi*t) - 1) / 2 }

// CubicBezier builds an easing from a cubic Bézier curve anchored at (0,0)
// and (1,1) with control points (x0,y0) and (x1,y1). The horizontal
// component is inverted with a few Newton iterations.
func CubicBezier(x0, y0, x1, y1 float64) Func {
	return func(x float64) float64 {
		if x <= 0 {
			return 0
		}
		if x >= 1 {
			return 1
		}
		t := x
		for i := 0; i < 5; i++ {
			t2 := t * t
			t3 := t2 * t
			d := 1 - t
			d2 := d * d

			nx := 3*d2*t*x0 + 3*d*t2*x1 + t3
			dxdt := 3*d2*x0 + 6*d*t*(x1-x0) + 3*t2*(1-x1)
			if dxdt == 0 {
				break
			}
			t -= (nx - x) / dxdt
			if t <= 0 || t >= 1 {
				break
			}
		}
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		t2 := t * t
		t3 := t2 * t
		d := 1 - t
		return 3*d*d*t*y0 + 3*d*t2*y1 + t3
	}
}

// Ease is the standard material ease curve.
var Ease = CubicBezier(0.25, 0.1, 0.25, 1.0)

// FastOutSlowIn starts quickly and settles gently; the usual pick for
// elements entering the screen.
var FastOutSlowIn = CubicBezier(0.4, 0.0, 0.2, 1.0)

var registry = map[string]Func{
	"linear":           Linear,
	"ease":             Ease,
	"ease-in-quad":     EaseInQuad,
	"ease-out-quad":    EaseOutQuad,
	"ease-in-out-quad": EaseInOutQuad,
	"ease-in":          EaseInCubic,
	"ease-out":         EaseOutCubic,
	"ease-in-out":      EaseInOutCubic,
	"ease-in-sine":     EaseInSine,
	"ease-out-sine":    EaseOutSine,
	"ease-in-out-sine": EaseInOutSine,
	"fast-out-slow-in": FastOutSlowIn,
}

// ByName resolves a named easing for config files and CLI flags.
func ByName(name string) (Func, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown curve %q", motion.ErrInvalidConfiguration, name)
	}
	return fn, nil
}

// Names lists the registered easings, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
