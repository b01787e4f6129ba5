package evaluate

import "errors"

var (
	// ErrEmptyInput is returned when predictions or ground truth are empty.
	ErrEmptyInput = errors.New("evaluate: empty input")

	// ErrLengthMismatch is returned when predictions and ground truth
	// have different lengths.
	ErrLengthMismatch = errors.New("evaluate: predictions and ground truth length mismatch")

	// ErrNotBinary is returned when a binary metric receives more than
	// two distinct labels.
	ErrNotBinary = errors.New("evaluate: binary metric requires exactly two distinct labels")

	// ErrUnknownTask is returned for an unrecognized evaluation task.
	ErrUnknownTask = errors.New("evaluate: unknown task")

	// ErrUnsupportedFormat is returned when a data file's extension is
	// not a recognized format.
	ErrUnsupportedFormat = errors.New("evaluate: unsupported data format")
)
