package scan

import (
	"context"

	"github.com/aqwel-ai/aion/internal/model"
)

// Analyzer category constants.
const (
	// CategorySecrets is used by analyzers that find credentials and tokens.
	CategorySecrets = "secrets"
	// CategoryIdentity is used by analyzers that find identity information.
	CategoryIdentity = "identity"
	// CategoryMetadata is used by analyzers that inspect file metadata.
	CategoryMetadata = "metadata"
)

// Analyzer coordinates sensitive-data checks across multiple analyzers.
// It aggregates findings from different analysis types into a unified report.
//
// Design decision: We use a coordinator pattern rather than running analyzers
// independently because:
//  1. Unified severity assessment across all findings
//  2. Deduplication of similar findings
//  3. Consistent context and cancellation handling
type Analyzer struct {
	// analyzers is the list of registered analyzers to run.
	analyzers []CheckAnalyzer

	// options configures analyzer behavior.
	options AnalyzerOptions
}

// AnalyzerOptions configures the analyzer behavior.
type AnalyzerOptions struct {
	// EnableEXIF enables EXIF metadata extraction from images.
	EnableEXIF bool

	// DisabledAnalyzers lists analyzer names to skip.
	// Names match CheckAnalyzer.Name (e.g., "email", "secrets").
	DisabledAnalyzers []string
}

// DefaultOptions returns sensible default analyzer options.
func DefaultOptions() AnalyzerOptions {
	return AnalyzerOptions{
		EnableEXIF: true,
	}
}

// CheckAnalyzer defines the interface for individual analyzers.
// Each analyzer focuses on a specific type of sensitive-data check.
//
// Design decision: We use an interface rather than concrete types because:
//  1. Allows for easy extension with new analyzers
//  2. Enables testing with mock analyzers
//  3. Supports different analyzer implementations for the same check type
type CheckAnalyzer interface {
	// Name returns the analyzer's name for logging and reporting.
	Name() string

	// Category returns the analyzer's category (e.g., "secrets", "identity").
	Category() string

	// Analyze runs the analysis on the provided data.
	// It returns findings discovered during analysis.
	Analyze(ctx context.Context, data *AnalysisData) ([]model.Finding, error)
}

// AnalysisData contains all data available for analysis.
//
// Design decision: We pass all data in a single struct rather than
// multiple parameters because:
//  1. Not all analyzers need all document kinds
//  2. Adding new data types doesn't change analyzer signatures
//  3. Easier to mock in tests
type AnalysisData struct {
	// Target is the path being analyzed.
	Target string

	// Documents contains all collected documents.
	Documents []*model.Document

	// Report is the current report (for adding findings).
	Report *model.Report
}

// NewAnalyzer creates a new Analyzer with all built-in analyzers registered.
func NewAnalyzer(opts ...func(*AnalyzerOptions)) *Analyzer {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	a := &Analyzer{
		options:   options,
		analyzers: make([]CheckAnalyzer, 0),
	}

	// Register built-in analyzers
	a.Register(NewSecretAnalyzer())
	a.Register(NewEmailAnalyzer())
	a.Register(NewPIIAnalyzer())
	if options.EnableEXIF {
		a.Register(NewEXIFAnalyzer())
	}

	return a
}

// WithEXIF enables or disables EXIF metadata analysis.
func WithEXIF(enabled bool) func(*AnalyzerOptions) {
	return func(o *AnalyzerOptions) {
		o.EnableEXIF = enabled
	}
}

// WithDisabledAnalyzers sets analyzer names to skip.
func WithDisabledAnalyzers(names []string) func(*AnalyzerOptions) {
	return func(o *AnalyzerOptions) {
		o.DisabledAnalyzers = names
	}
}

// Register adds an analyzer to the list.
func (a *Analyzer) Register(analyzer CheckAnalyzer) {
	a.analyzers = append(a.analyzers, analyzer)
}

// Analyze runs all registered analyzers and aggregates findings.
func (a *Analyzer) Analyze(ctx context.Context, data *AnalysisData) ([]model.Finding, error) {
	var allFindings []model.Finding

	for _, analyzer := range a.analyzers {
		select {
		case <-ctx.Done():
			return allFindings, ctx.Err()
		default:
		}

		if a.isDisabled(analyzer.Name()) {
			continue
		}

		findings, err := analyzer.Analyze(ctx, data)
		if err != nil {
			// Log error but continue with other analyzers
			// We want to collect as many findings as possible
			continue
		}

		allFindings = append(allFindings, findings...)
	}

	// Deduplicate findings
	allFindings = deduplicateFindings(allFindings)

	return allFindings, nil
}

// isDisabled reports whether the named analyzer is disabled by options.
func (a *Analyzer) isDisabled(name string) bool {
	for _, disabled := range a.options.DisabledAnalyzers {
		if disabled == name {
			return true
		}
	}
	return false
}

// deduplicateFindings removes duplicate findings based on title and value.
//
// Design decision: We deduplicate by title+value rather than just value because:
//  1. Same value might have different meanings in different contexts
//  2. Multiple analyzers might find the same thing
//  3. We want to keep the most severe instance of each finding
func deduplicateFindings(findings []model.Finding) []model.Finding {
	seen := make(map[string]int) // key -> index in result
	result := make([]model.Finding, 0)

	for _, f := range findings {
		key := f.Title + "|" + f.Value
		if idx, exists := seen[key]; exists {
			// Keep the more severe finding
			if f.Severity > result[idx].Severity {
				result[idx] = f
			}
		} else {
			seen[key] = len(result)
			result = append(result, f)
		}
	}

	return result
}
