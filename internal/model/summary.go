package model

import "time"

// Summary is a summarized, human-readable view of a report.
// It extracts key findings from the full analysis for quick review.
//
// Design decision: We create a separate summary rather than just printing
// parts of Report because:
// 1. It provides a consistent, curated view of the most important findings
// 2. It can be serialized to JSON for tools that want structured but simple output
// 3. It separates presentation concerns from data collection
type Summary struct {
	// Target is the analyzed path.
	Target string `json:"target"`

	// DateAnalyzed is when the analysis was performed.
	DateAnalyzed time.Time `json:"date_analyzed"`

	// === Severity Summary ===

	// CriticalCount is the number of critical findings.
	CriticalCount int `json:"critical_count"`

	// HighCount is the number of high severity findings.
	HighCount int `json:"high_count"`

	// MediumCount is the number of medium severity findings.
	MediumCount int `json:"medium_count"`

	// LowCount is the number of low severity findings.
	LowCount int `json:"low_count"`

	// InfoCount is the number of informational findings.
	InfoCount int `json:"info_count"`

	// === Document Statistics ===

	// DocumentsAnalyzed is the number of files analyzed.
	DocumentsAnalyzed int `json:"documents_analyzed"`

	// KindCounts maps document kinds to how many files of each were seen.
	KindCounts map[DocumentKind]int `json:"kind_counts,omitempty"`

	// TotalWords is the word count summed over all text documents.
	TotalWords int `json:"total_words"`

	// TotalCodeLines is the non-empty line count summed over code documents.
	TotalCodeLines int `json:"total_code_lines"`

	// Languages lists distinct source languages encountered.
	Languages []string `json:"languages,omitempty"`

	// === Findings ===

	// Findings contains all categorized findings.
	Findings []Finding `json:"findings,omitempty"`

	// TimedOut indicates if the run was terminated by cancellation.
	TimedOut bool `json:"timed_out"`

	// Error contains any error message if the run failed.
	Error string `json:"error,omitempty"`
}

// Finding represents a single finding in the summary.
type Finding struct {
	// Type is the finding type identifier.
	// This maps to findingInfoMapping in severity.go.
	Type string `json:"type"`

	// Severity is the risk level.
	Severity Severity `json:"severity"`

	// SeverityText is the human-readable severity.
	SeverityText string `json:"severity_text"`

	// Title is a short description of the finding.
	Title string `json:"title"`

	// Description provides more detail about the finding.
	Description string `json:"description,omitempty"`

	// Impact explains why this finding matters.
	Impact string `json:"impact,omitempty"`

	// Recommendation provides guidance on how to address this finding.
	Recommendation string `json:"recommendation,omitempty"`

	// Value is the specific value found (address, token, metric, etc.).
	Value string `json:"value,omitempty"`

	// Location is the file (and optionally line) where it was found.
	Location string `json:"location,omitempty"`
}

// NewFinding builds a Finding for a known type, filling severity, impact,
// and recommendation from the central mapping.
func NewFinding(findingType, title, value, location string) Finding {
	severity := GetSeverity(findingType)
	f := Finding{
		Type:         findingType,
		Severity:     severity,
		SeverityText: severity.String(),
		Title:        title,
		Value:        value,
		Location:     location,
	}
	if info, ok := GetFindingInfo(findingType); ok {
		f.Impact = info.Impact
		f.Recommendation = info.Recommendation
	}
	return f
}

// NewSummary creates a Summary from a Report.
// This extracts and aggregates document statistics; findings already
// accumulated via AddFinding are preserved.
func NewSummary(report *Report) *Summary {
	summary := report.Summary
	if summary == nil {
		summary = &Summary{
			Target:       report.Target,
			DateAnalyzed: report.DateAnalyzed,
		}
	}

	summary.DocumentsAnalyzed = len(report.Documents)
	summary.TimedOut = report.TimedOut
	if report.Error != nil {
		summary.Error = report.Error.Error()
	}

	summary.collectDocumentStats(report)
	return summary
}

// collectDocumentStats aggregates per-document statistics.
func (s *Summary) collectDocumentStats(report *Report) {
	s.KindCounts = make(map[DocumentKind]int)
	s.TotalWords = 0
	s.TotalCodeLines = 0

	languages := make(map[string]bool)
	for _, doc := range report.Documents {
		s.KindCounts[doc.Kind]++

		if doc.TextStats != nil {
			s.TotalWords += doc.TextStats.Words
		}
		if doc.CodeStats != nil {
			s.TotalCodeLines += doc.CodeStats.CodeLines
		}
		if doc.SourceLanguage != "" && !languages[doc.SourceLanguage] {
			languages[doc.SourceLanguage] = true
			s.Languages = append(s.Languages, doc.SourceLanguage)
		}
	}
}

// TotalFindings returns the total number of findings.
func (s *Summary) TotalFindings() int {
	return s.CriticalCount + s.HighCount + s.MediumCount + s.LowCount + s.InfoCount
}

// HasFindings reports whether the summary contains any findings.
func (s *Summary) HasFindings() bool {
	return s.TotalFindings() > 0
}

// GetFindingsBySeverity returns all findings at the given severity level.
func (s *Summary) GetFindingsBySeverity(severity Severity) []Finding {
	findings := make([]Finding, 0)
	for _, f := range s.Findings {
		if f.Severity == severity {
			findings = append(findings, f)
		}
	}
	return findings
}
