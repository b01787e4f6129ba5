package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/aqwel-ai/aion/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	summary := report.Summary
	if summary == nil {
		summary = model.NewSummary(report)
	}

	return w.WriteSummary(summary)
}

// WriteSummary outputs the summary in Markdown format.
func (w *MarkdownWriter) WriteSummary(summary *model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	// Header
	w.writeHeader(md, summary)

	// Severity summary
	w.writeSeveritySummary(md, summary)

	// Document statistics
	w.writeDocumentStats(md, summary)

	// Findings by severity
	w.writeFindings(md, summary)

	// Footer
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with analysis information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *model.Summary) {
	md.H1("Aion Analysis Report")
	md.PlainText("")

	// Basic info table
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Target", "`" + summary.Target + "`"},
			{"Analyzed", summary.DateAnalyzed.Format("2006-01-02 15:04:05 MST")},
			{"Documents", strconv.Itoa(summary.DocumentsAnalyzed)},
			{"Status", w.getStatusText(summary)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on summary state.
func (w *MarkdownWriter) getStatusText(summary *model.Summary) string {
	if summary.TimedOut {
		return "⚠️ Timed Out (partial results)"
	}
	if summary.Error != "" {
		return "❌ Error - " + summary.Error
	}
	return "✅ Complete"
}

// writeSeveritySummary writes the severity summary section.
func (w *MarkdownWriter) writeSeveritySummary(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Severity Summary")
	md.PlainText("")

	// Summary table
	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Count"},
		Rows: [][]string{
			{"🔴 Critical", strconv.Itoa(summary.CriticalCount)},
			{"🟠 High", strconv.Itoa(summary.HighCount)},
			{"🟡 Medium", strconv.Itoa(summary.MediumCount)},
			{"🔵 Low", strconv.Itoa(summary.LowCount)},
			{"⚪ Info", strconv.Itoa(summary.InfoCount)},
			{"**Total**", "**" + strconv.Itoa(summary.TotalFindings()) + "**"},
		},
	})
	md.PlainText("")

	// Add pie chart if there are findings
	if summary.HasFindings() {
		w.writePieChart(md, summary)
	}

	// Add alert based on severity
	w.writeAlert(md, summary)
}

// writePieChart writes a mermaid pie chart for severity distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Finding Severity Distribution"),
		piechart.WithShowData(true),
	)

	if summary.CriticalCount > 0 {
		chart.LabelAndIntValue("Critical", uint64(summary.CriticalCount))
	}
	if summary.HighCount > 0 {
		chart.LabelAndIntValue("High", uint64(summary.HighCount))
	}
	if summary.MediumCount > 0 {
		chart.LabelAndIntValue("Medium", uint64(summary.MediumCount))
	}
	if summary.LowCount > 0 {
		chart.LabelAndIntValue("Low", uint64(summary.LowCount))
	}
	if summary.InfoCount > 0 {
		chart.LabelAndIntValue("Info", uint64(summary.InfoCount))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on severity counts.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *model.Summary) {
	switch {
	case summary.CriticalCount > 0:
		md.Cautionf(
			"Critical data exposure detected! %d critical finding(s) require immediate attention.",
			summary.CriticalCount,
		)
	case summary.HighCount > 0:
		md.Warningf(
			"High severity issues detected. %d high severity finding(s) should be addressed.",
			summary.HighCount,
		)
	case summary.MediumCount > 0:
		md.Importantf(
			"Medium severity issues found. %d finding(s) may expose sensitive information.",
			summary.MediumCount,
		)
	case summary.TotalFindings() > 0:
		md.Note("Only low severity and informational findings detected.")
	default:
		md.Tip("No sensitive data issues detected.")
	}
	md.PlainText("")
}

// writeDocumentStats writes the document statistics section.
func (w *MarkdownWriter) writeDocumentStats(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Document Overview")
	md.PlainText("")

	if summary.DocumentsAnalyzed == 0 {
		md.PlainText("No documents analyzed.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(summary.KindCounts)+2)
	for _, kind := range sortedKinds(summary.KindCounts) {
		rows = append(rows, []string{string(kind), strconv.Itoa(summary.KindCounts[kind])})
	}
	rows = append(rows,
		[]string{"total words", strconv.Itoa(summary.TotalWords)},
		[]string{"total code lines", strconv.Itoa(summary.TotalCodeLines)},
	)

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(summary.Languages) > 0 {
		md.PlainTextf("Languages: %s", strings.Join(summary.Languages, ", "))
		md.PlainText("")
	}
}

// writeFindings writes all findings grouped by severity.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, summary *model.Summary) {
	if !summary.HasFindings() {
		md.H2("Findings")
		md.PlainText("")
		md.PlainText("No sensitive data findings detected.")
		md.PlainText("")
		return
	}

	md.H2("Findings")
	md.PlainText("")

	severities := []struct {
		level  model.Severity
		header string
	}{
		{model.SeverityCritical, "### 🔴 Critical"},
		{model.SeverityHigh, "### 🟠 High"},
		{model.SeverityMedium, "### 🟡 Medium"},
		{model.SeverityLow, "### 🔵 Low"},
		{model.SeverityInfo, "### ⚪ Info"},
	}

	for _, sev := range severities {
		findings := summary.GetFindingsBySeverity(sev.level)
		if len(findings) == 0 {
			continue
		}

		md.PlainText(sev.header)
		md.PlainText("")
		w.writeFindingsTable(md, findings)
	}
}

// writeFindingsTable writes a table of findings with details.
func (w *MarkdownWriter) writeFindingsTable(md *markdown.Markdown, findings []model.Finding) {
	headers := []string{"Title", "Value", "Location", "Recommendation"}

	rows := make([][]string, len(findings))
	for i, f := range findings {
		value := f.Value
		if value == "" {
			value = "-"
		}
		location := f.Location
		if location == "" {
			location = "-"
		}
		rec := f.Recommendation
		if rec == "" {
			rec = "-"
		}

		rows[i] = []string{
			f.Title,
			truncateString(value, 50),
			truncateString(location, 40),
			truncateString(rec, 60),
		}
	}

	md.Table(markdown.TableSet{
		Header: headers,
		Rows:   rows,
	})
	md.PlainText("")

	// Add detailed descriptions for all findings
	for _, f := range findings {
		if f.Description != "" {
			md.Details(f.Title, f.Description)
		}
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [Aion](https://github.com/aqwel-ai/aion)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
