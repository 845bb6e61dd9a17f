package animator

import "github.com/go-gl/mathgl/mgl32"

// FigureAnimatorBuilderOption is a functional option for configuring a figure Animator.
type FigureAnimatorBuilderOption func(*figureAnimator)

// WithSpeed is an option builder that sets the gait phase advanced per millisecond.
//
// Parameters:
//   - speed: the gait speed
//
// Returns:
//   - FigureAnimatorBuilderOption: a function that applies the speed to a figureAnimator
func WithSpeed(speed float32) FigureAnimatorBuilderOption {
	return func(a *figureAnimator) {
		a.speed = speed
	}
}

// WithWalk is an option builder that sets the per-tick walk step and the end point past which
// the walk wraps. A zero step keeps the figure in place.
//
// Parameters:
//   - step: translation per tick
//   - end: the wrap point
//
// Returns:
//   - FigureAnimatorBuilderOption: a function that applies the walk to a figureAnimator
func WithWalk(step, end mgl32.Vec3) FigureAnimatorBuilderOption {
	return func(a *figureAnimator) {
		a.step = step
		a.end = end
	}
}
