package engine

import "errors"

// Construction failures. All are non-fatal to the host program: the
// caller is expected to log and carry on without the animation.
var (
	// ErrNoContainer indicates construction without a container node.
	ErrNoContainer = errors.New("engine: no container")

	// ErrSurfaceUnavailable indicates the drawing surface could not be
	// created or attached.
	ErrSurfaceUnavailable = errors.New("engine: drawing surface unavailable")

	// ErrMotionDisabled indicates the motion scale was zero at
	// construction; the engine declines to initialize at all.
	ErrMotionDisabled = errors.New("engine: motion preference is zero")

	// ErrDestroyed indicates an operation on a destroyed engine.
	ErrDestroyed = errors.New("engine: destroyed")
)
