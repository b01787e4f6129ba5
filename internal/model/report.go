package model

import (
	"time"
)

// Report is the main analysis result structure.
// It contains everything collected while analyzing one target path.
//
// Design decision: We use a single large struct rather than many small ones
// to simplify serialization and database storage. The Summary sub-struct
// groups the curated findings view for human-readable output.
type Report struct {
	// Target is the analyzed file or directory path.
	Target string `json:"target"`

	// DateAnalyzed is the timestamp when the analysis was performed.
	DateAnalyzed time.Time `json:"date_analyzed"`

	// Documents contains all analyzed files.
	Documents []*Document `json:"documents,omitempty"`

	// documentIndex maps paths to documents for fast lookup.
	documentIndex map[string]*Document

	// SkippedFiles lists files excluded from analysis (binary, oversized,
	// or matching ignore patterns) with the reason.
	SkippedFiles map[string]string `json:"skipped_files,omitempty"`

	// Summary contains the summarized findings for human-readable output.
	Summary *Summary `json:"summary,omitempty"`

	// TimedOut is true if the analysis was terminated by cancellation.
	TimedOut bool `json:"timed_out"`

	// PerformedSteps lists the pipeline steps that actually ran.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Error contains any error that occurred during analysis.
	// Only set if the run failed or partially failed.
	Error error `json:"-"` // Excluded from JSON

	// ErrorMessage is the string representation of Error for serialization.
	ErrorMessage string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// NewReport creates a new report for the given target path.
func NewReport(target string) *Report {
	return &Report{
		Target:        target,
		DateAnalyzed:  time.Now(),
		documentIndex: make(map[string]*Document),
		SkippedFiles:  make(map[string]string),
	}
}

// AddDocument adds an analyzed document to the report.
// Re-adding a path replaces the previous document.
func (r *Report) AddDocument(doc *Document) {
	if r.documentIndex == nil {
		r.documentIndex = make(map[string]*Document)
	}
	if existing, ok := r.documentIndex[doc.Path]; ok {
		for i, d := range r.Documents {
			if d == existing {
				r.Documents[i] = doc
				break
			}
		}
	} else {
		r.Documents = append(r.Documents, doc)
	}
	r.documentIndex[doc.Path] = doc
}

// GetDocument retrieves a document by path.
// Returns nil if the path was not analyzed.
func (r *Report) GetDocument(path string) *Document {
	return r.documentIndex[path]
}

// AddSkipped records a file excluded from analysis with the reason.
func (r *Report) AddSkipped(path, reason string) {
	if r.SkippedFiles == nil {
		r.SkippedFiles = make(map[string]string)
	}
	r.SkippedFiles[path] = reason
}

// AddFinding adds a finding to the summary.
// If the summary doesn't exist yet, it initializes one.
//
// Design decision: We store findings in Summary rather than a separate
// findings slice because:
// 1. Summary already has finding aggregation logic
// 2. It avoids duplicating findings data
// 3. It keeps the main report focused on raw data
func (r *Report) AddFinding(finding Finding) {
	if r.Summary == nil {
		r.Summary = &Summary{
			Target:       r.Target,
			DateAnalyzed: r.DateAnalyzed,
			Findings:     make([]Finding, 0),
		}
	}

	// Keep document count in sync when Summary is first created here.
	if r.Summary.DocumentsAnalyzed == 0 && len(r.Documents) > 0 {
		r.Summary.DocumentsAnalyzed = len(r.Documents)
	}

	// Avoid duplicates based on type, value, and location
	for _, f := range r.Summary.Findings {
		if f.Type == finding.Type && f.Value == finding.Value && f.Location == finding.Location {
			return
		}
	}

	r.Summary.Findings = append(r.Summary.Findings, finding)

	switch finding.Severity {
	case SeverityCritical:
		r.Summary.CriticalCount++
	case SeverityHigh:
		r.Summary.HighCount++
	case SeverityMedium:
		r.Summary.MediumCount++
	case SeverityLow:
		r.Summary.LowCount++
	case SeverityInfo:
		r.Summary.InfoCount++
	}
}
