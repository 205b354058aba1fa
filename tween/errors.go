package tween

import "errors"

// Sentinel errors returned while building and running tweens.
var (
	// ErrInvalidConfig indicates an Info or goal set that cannot be played.
	ErrInvalidConfig = errors.New("invalid tween config")
	// ErrUnknownEasing indicates a style/direction pair with no easing curve.
	ErrUnknownEasing = errors.New("unknown easing")
	// ErrMissingStartValue indicates a goal property whose start value could not be read.
	ErrMissingStartValue = errors.New("missing start value")
)
