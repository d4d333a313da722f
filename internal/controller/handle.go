package controller

// Handle is the caller's view of one started animation. It settles exactly
// once: either completing naturally on a tick, or canceling when the
// animation is stopped, retargeted, or the controller disposed.
//
// Completion callbacks run synchronously inside whichever call settles the
// handle, after listener notification.
type Handle struct {
	settled   bool
	canceled  bool
	callbacks []func(canceled bool)
}

// Done reports whether the animation has settled, by completion or
// cancellation.
func (h *Handle) Done() bool { return h.settled }

// Canceled reports whether the animation was interrupted before finishing.
func (h *Handle) Canceled() bool { return h.settled && h.canceled }

// WhenComplete registers fn to run when the handle settles. If the handle
// has already settled, fn runs immediately.
func (h *Handle) WhenComplete(fn func(canceled bool)) {
	if h.settled {
		fn(h.canceled)
		return
	}
	h.callbacks = append(h.callbacks, fn)
}

func (h *Handle) finish(canceled bool) {
	if h.settled {
		return
	}
	h.settled = true
	h.canceled = canceled
	for _, fn := range h.callbacks {
		fn(canceled)
	}
	h.callbacks = nil
}

// completedHandle is returned by operations that finish synchronously, such
// as a zero-duration snap.
func completedHandle() *Handle {
	return &Handle{settled: true}
}
