package simplex

import "errors"

// Sentinel errors returned by NewTableau. Every message is prefixed with
// "simplex: ..." so callers matching with errors.Is don't need to inspect
// formatted text.
var (
	// ErrNilMatrix indicates a nil constraint matrix was passed to NewTableau.
	ErrNilMatrix = errors.New("simplex: nil constraint matrix")

	// ErrEmptyProblem indicates a constraint matrix with zero rows or columns.
	ErrEmptyProblem = errors.New("simplex: no constraints or variables")

	// ErrDimensionMismatch indicates b, c, or senses doesn't match A's shape.
	ErrDimensionMismatch = errors.New("simplex: dimension mismatch")
)
