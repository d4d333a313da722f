// Package motion provides the core primitives of the animation engine.
//
// The package defines the fundamental types shared by the solver, curve,
// and controller layers:
//
//   - [Simulation]: position/velocity/done as pure functions of elapsed time
//   - [Tolerance]: the settled-enough thresholds for distance and velocity
//   - [Status] and [Direction]: the observable controller state machine
//   - [Vector]: axis packing for multi-dimensional controllers
//   - [Repeating]: periodic (optionally ping-ponging) wrapper simulation
//
// A Simulation is immutable once constructed. Retargeting an animation
// always builds a new Simulation; nothing is mutated in flight. Done is
// monotonic: once a simulation reports done at some t, it reports done for
// every later t.
//
// # Thread Safety
//
// Everything here is single-threaded by contract. The external scheduler
// invokes at most one tick at a time and never re-enters a controller
// while a tick is in progress.
package motion
