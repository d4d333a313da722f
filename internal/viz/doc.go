// Package viz provides terminal visualization for animations.
//
// The live view is a Bubble Tea model that owns the frame clock: each tick
// advances the controller, appends the value to a scrolling history, and
// renders an asciigraph chart next to the controller's state.
//
// # Key Bindings
//
//	Space - Pause/Resume the clock
//	R     - Reset to the initial value
//	F     - Animate to the upper bound
//	B     - Animate to the lower bound
//	S     - Stop mid-flight
//	Q     - Quit
//
// Retargeting mid-flight (F/B) demonstrates velocity preservation: the new
// spring takes over at the interrupted animation's velocity.
package viz
