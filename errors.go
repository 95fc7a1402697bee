package geodome

import "errors"

var (
	// ErrInvalidRadius is returned for a radius that is not a positive finite number.
	ErrInvalidRadius = errors.New("radius must be positive and finite")
	// ErrInvalidCoverage is returned for a window coverage ratio outside of (0, 1].
	ErrInvalidCoverage = errors.New("coverage ratio must be in (0, 1]")
	// ErrDegenerateFace is returned for faces with fewer than 3 vertices.
	ErrDegenerateFace = errors.New("face needs at least 3 vertices")
)
