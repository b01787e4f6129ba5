package stats

import "errors"

// Numeric input validation errors.
// These are package-level sentinel errors so callers can use errors.Is()
// for programmatic handling while still getting readable messages.
var (
	// ErrEmptyInput is returned when an operation requires at least one value.
	ErrEmptyInput = errors.New("empty input: at least one value is required")

	// ErrLengthMismatch is returned when paired series differ in length.
	ErrLengthMismatch = errors.New("length mismatch: input series must have the same length")

	// ErrInsufficientData is returned when an operation needs more values
	// than were provided (e.g., sample variance of a single value).
	ErrInsufficientData = errors.New("insufficient data for this statistic")

	// ErrZeroVariance is returned when a statistic is undefined because
	// the input has no spread (e.g., correlation of a constant series).
	ErrZeroVariance = errors.New("zero variance: statistic is undefined for constant input")

	// ErrNotSquare is returned when a matrix operation requires a square matrix.
	ErrNotSquare = errors.New("matrix is not square")

	// ErrRaggedMatrix is returned when matrix rows have different lengths.
	ErrRaggedMatrix = errors.New("matrix rows have different lengths")

	// ErrDimensionMismatch is returned when matrix or vector dimensions
	// are incompatible for the requested operation.
	ErrDimensionMismatch = errors.New("incompatible dimensions")

	// ErrInvalidPercentile is returned when a percentile is outside [0, 100].
	ErrInvalidPercentile = errors.New("percentile must be between 0 and 100")

	// ErrInvalidBins is returned when a histogram is requested with a
	// non-positive bin count.
	ErrInvalidBins = errors.New("histogram requires at least one bin")
)
