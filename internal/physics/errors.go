package physics

import "errors"

var (
	// ErrInvalidLayout indicates a layout with a non-positive width or step,
	// or radius bounds that are inverted or non-positive.
	ErrInvalidLayout = errors.New("physics: invalid layout")

	// ErrOverlappingStart indicates start positions close enough that the
	// bodies would overlap on the first tick evaluation.
	ErrOverlappingStart = errors.New("physics: start positions overlap")
)
