package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These values are chosen for typical research workspaces: mostly text
// and source files with the occasional large dataset that should be
// skipped rather than loaded.
const (
	// DefaultTimeout is the overall time budget for analyzing one target.
	// Analysis is local I/O and regex work, so a minute covers even
	// large workspaces; hitting it usually means a runaway dataset
	// directory that should be ignored instead.
	DefaultTimeout = 60 * time.Second

	// DefaultBatchSize of 4 concurrent document analyses balances
	// throughput with memory usage, since each worker holds a file
	// snapshot in memory.
	DefaultBatchSize = 4

	// DefaultMaxFileSize skips files larger than 10MB. Model weights
	// and datasets blow past this; the files worth analyzing do not.
	DefaultMaxFileSize = 10 * 1024 * 1024

	// DefaultMaxFiles caps one analysis run. This prevents runaway
	// walks over virtualenvs or dataset mirrors.
	DefaultMaxFiles = 10000

	// DefaultEmbedDimension is the embedding vector size.
	DefaultEmbedDimension = 256

	// DefaultDebounce is the file watcher's debounce window.
	DefaultDebounce = 500 * time.Millisecond

	// AppName is the application name used for XDG directory paths.
	AppName = "aion"
)

// DefaultIgnorePatterns are directory and file patterns excluded from
// every analysis. Trailing slashes mark directory patterns.
var DefaultIgnorePatterns = []string{
	".git/",
	".hg/",
	".svn/",
	"node_modules/",
	"vendor/",
	"__pycache__/",
	".venv/",
	"venv/",
	".idea/",
	".vscode/",
	"*.pyc",
}

// Config holds all configuration options for Aion.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., ScanConfig, EmbedConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
// If the configuration grows significantly, consider refactoring into sub-structs.
type Config struct {
	// Targets is the list of files or directories to analyze.
	// Must contain at least one existing path.
	Targets []string

	// Timeout is the overall time budget for analyzing one target.
	Timeout time.Duration

	// BatchSize is the number of documents analyzed concurrently.
	BatchSize int

	// MaxFileSize is the largest file in bytes loaded for analysis.
	// Larger files are recorded as skipped. Zero means the default.
	MaxFileSize int64

	// MaxFiles caps the number of files collected per target.
	// Zero means the default.
	MaxFiles int

	// IgnorePatterns are glob patterns for paths excluded from the
	// walk, merged with DefaultIgnorePatterns unless NoDefaultIgnores
	// is set.
	IgnorePatterns []string

	// NoDefaultIgnores disables the built-in ignore patterns.
	NoDefaultIgnores bool

	// EmbedDimension is the embedding vector size.
	EmbedDimension int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .aion in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// Rules holds per-path rule overrides and custom prompt templates
	// loaded from the config file. Populated by LoadConfigFile.
	Rules *File

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// DBDir is the directory path for storing the SQLite archive.
	// When set, results are saved for historical comparison.
	// When empty, results are not persisted.
	// Defaults to XDG data directory (~/.local/share/aion on Linux).
	DBDir string

	// SaveToDB indicates whether to save results to the archive.
	// This is automatically set to true when DBDir is configured.
	SaveToDB bool

	// Debounce is the file watcher's debounce window for watch mode.
	Debounce time.Duration
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, sizes).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Timeout:        DefaultTimeout,
		BatchSize:      DefaultBatchSize,
		MaxFileSize:    DefaultMaxFileSize,
		MaxFiles:       DefaultMaxFiles,
		EmbedDimension: DefaultEmbedDimension,
		Debounce:       DefaultDebounce,
	}
}

// EffectiveIgnorePatterns returns the ignore patterns for a run:
// the defaults (unless disabled) plus any user patterns.
func (c *Config) EffectiveIgnorePatterns() []string {
	var patterns []string
	if !c.NoDefaultIgnores {
		patterns = append(patterns, DefaultIgnorePatterns...)
	}
	return append(patterns, c.IgnorePatterns...)
}

// XDGDataDir returns the XDG data directory for Aion.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/aion
// On macOS: ~/Library/Application Support/aion
// On Windows: %LOCALAPPDATA%\aion
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for Aion.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/aion
// On macOS: ~/Library/Application Support/aion
// On Windows: %APPDATA%\aion
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for Aion.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.cache/aion
// On macOS: ~/Library/Caches/aion
// On Windows: %LOCALAPPDATA%\aion\cache
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any analysis begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// We must have at least one target to analyze
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}

	// Timeout must be positive; zero timeout would cancel immediately
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	// BatchSize must be positive; zero would mean no workers
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	// MaxFileSize must be non-negative; 0 means default
	if c.MaxFileSize < 0 {
		return ErrInvalidMaxFileSize
	}

	// EmbedDimension must be positive
	if c.EmbedDimension <= 0 {
		return ErrInvalidEmbedDimension
	}

	return nil
}
