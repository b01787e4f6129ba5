package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aqwel-ai/aion/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting and severity indicators.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no findings are shown.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in human-readable format.
// It generates a Summary from the Report if not already present.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	summary := report.Summary
	if summary == nil {
		summary = model.NewSummary(report)
	}

	return w.WriteSummary(summary)
}

// WriteSummary outputs the summary in human-readable format.
func (w *SimpleWriter) WriteSummary(summary *model.Summary) (int, error) {
	var sb strings.Builder

	// Header
	w.writeHeader(&sb, summary)

	// Severity summary
	w.writeSeveritySummary(&sb, summary)

	// Document statistics
	w.writeDocumentStats(&sb, summary)

	// Findings by severity
	w.writeFindings(&sb, summary)

	// Footer
	w.writeFooter(&sb, summary)

	// Write to output
	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with analysis information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, summary *model.Summary) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                          AION ANALYSIS REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Target:         %s\n", summary.Target))
	sb.WriteString(fmt.Sprintf("Analyzed:       %s\n", summary.DateAnalyzed.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Documents:      %d\n", summary.DocumentsAnalyzed))

	if summary.TimedOut {
		sb.WriteString("Status:         TIMED OUT (partial results)\n")
	} else if summary.Error != "" {
		sb.WriteString(fmt.Sprintf("Status:         ERROR - %s\n", summary.Error))
	} else {
		sb.WriteString("Status:         Complete\n")
	}

	sb.WriteString("\n")
}

// writeSeveritySummary writes the severity summary section.
func (w *SimpleWriter) writeSeveritySummary(sb *strings.Builder, summary *model.Summary) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SEVERITY SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	// Create a visual summary
	sb.WriteString(fmt.Sprintf("  CRITICAL: %d\n", summary.CriticalCount))
	sb.WriteString(fmt.Sprintf("  HIGH:     %d\n", summary.HighCount))
	sb.WriteString(fmt.Sprintf("  MEDIUM:   %d\n", summary.MediumCount))
	sb.WriteString(fmt.Sprintf("  LOW:      %d\n", summary.LowCount))
	sb.WriteString(fmt.Sprintf("  INFO:     %d\n", summary.InfoCount))
	sb.WriteString("\n")

	total := summary.TotalFindings()
	sb.WriteString(fmt.Sprintf("  TOTAL:    %d findings\n", total))
	sb.WriteString("\n")
}

// writeDocumentStats writes the document statistics section.
func (w *SimpleWriter) writeDocumentStats(sb *strings.Builder, summary *model.Summary) {
	if summary.DocumentsAnalyzed == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("DOCUMENT OVERVIEW\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if summary.DocumentsAnalyzed == 0 {
		sb.WriteString("  No documents analyzed\n\n")
		return
	}

	for _, kind := range sortedKinds(summary.KindCounts) {
		sb.WriteString(fmt.Sprintf("  [+] %-8s %d\n", string(kind), summary.KindCounts[kind]))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("  Total words:      %d\n", summary.TotalWords))
	sb.WriteString(fmt.Sprintf("  Total code lines: %d\n", summary.TotalCodeLines))
	if len(summary.Languages) > 0 {
		sb.WriteString(fmt.Sprintf("  Languages:        %s\n", strings.Join(summary.Languages, ", ")))
	}
	sb.WriteString("\n")
}

// sortedKinds returns document kinds in a stable order for display.
func sortedKinds(counts map[model.DocumentKind]int) []model.DocumentKind {
	kinds := make([]model.DocumentKind, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// writeFindings writes all findings grouped by severity.
func (w *SimpleWriter) writeFindings(sb *strings.Builder, summary *model.Summary) {
	if !summary.HasFindings() && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FINDINGS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	// Write findings in order of severity (critical first)
	severities := []model.Severity{
		model.SeverityCritical,
		model.SeverityHigh,
		model.SeverityMedium,
		model.SeverityLow,
		model.SeverityInfo,
	}

	for _, severity := range severities {
		findings := summary.GetFindingsBySeverity(severity)
		if len(findings) == 0 && !w.showEmpty {
			continue
		}

		w.writeFindingsForSeverity(sb, severity, findings)
	}
}

// writeFindingsForSeverity writes findings of a specific severity level.
func (w *SimpleWriter) writeFindingsForSeverity(sb *strings.Builder, severity model.Severity, findings []model.Finding) {
	// Severity header with visual indicator
	indicator := w.getSeverityIndicator(severity)
	sb.WriteString(fmt.Sprintf("[%s] %s\n", indicator, severity.String()))

	if len(findings) == 0 {
		sb.WriteString("  No findings\n\n")
		return
	}

	for _, finding := range findings {
		sb.WriteString(fmt.Sprintf("  * %s\n", finding.Title))
		if finding.Value != "" {
			sb.WriteString(fmt.Sprintf("    Value: %s\n", finding.Value))
		}
		if finding.Location != "" {
			sb.WriteString(fmt.Sprintf("    Location: %s\n", finding.Location))
		}
		if w.verbose && finding.Description != "" {
			sb.WriteString(fmt.Sprintf("    Description: %s\n", finding.Description))
		}
	}
	sb.WriteString("\n")
}

// getSeverityIndicator returns a visual indicator for the severity level.
func (w *SimpleWriter) getSeverityIndicator(severity model.Severity) string {
	switch severity {
	case model.SeverityCritical:
		return "!!!"
	case model.SeverityHigh:
		return "!!"
	case model.SeverityMedium:
		return "!"
	case model.SeverityLow:
		return "-"
	case model.SeverityInfo:
		return "i"
	default:
		return "?"
	}
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder, _ *model.Summary) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by Aion\n")
	sb.WriteString("https://github.com/aqwel-ai/aion\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
