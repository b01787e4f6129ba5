package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoTarget is returned when no file or directory target is specified.
	ErrNoTarget = errors.New("no target specified: provide a file or directory path")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A timeout of zero or negative would cancel the analysis immediately.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no concurrent workers, effectively
	// stopping the analysis.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidMaxFileSize is returned when the max file size is negative.
	// A negative size is invalid; use 0 to use the default limit.
	ErrInvalidMaxFileSize = errors.New("invalid max file size: must be non-negative")

	// ErrInvalidEmbedDimension is returned when the embedding dimension
	// is not positive.
	ErrInvalidEmbedDimension = errors.New("invalid embedding dimension: must be positive")
)
