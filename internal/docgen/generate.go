package docgen

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aqwel-ai/aion/internal/code"
	"github.com/aqwel-ai/aion/internal/model"
)

// Generator assembles project documentation from an analysis report.
type Generator struct {
	// version is the aion version recorded in the document metadata.
	version string

	// includeFindings controls whether sensitive-data findings are
	// listed in the document. Off by default: documentation is often
	// shared more widely than analysis reports.
	includeFindings bool
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithVersion sets the generator version shown in document metadata.
func WithVersion(version string) GeneratorOption {
	return func(g *Generator) {
		g.version = version
	}
}

// WithFindings includes the findings section in the generated document.
func WithFindings(include bool) GeneratorOption {
	return func(g *Generator) {
		g.includeFindings = include
	}
}

// NewGenerator creates a documentation generator.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		version:         "dev",
		includeFindings: false,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate renders project documentation for the report to the output.
// Returns the number of bytes in the rendered document.
func (g *Generator) Generate(report *model.Report, output io.Writer) (int, error) {
	summary := report.Summary
	if summary == nil {
		summary = model.NewSummary(report)
	}

	b := NewBuilder("Project Documentation: " + report.Target)
	b.Meta("Target", "`"+report.Target+"`")
	b.Meta("Generated", report.DateAnalyzed.Format("2006-01-02 15:04:05 MST"))
	b.Meta("Documents", strconv.Itoa(len(report.Documents)))
	b.Meta("Generator", "Aion "+g.version)

	g.writeOverview(b, summary)
	g.writeModuleIndex(b, report)
	g.writeModules(b, report)
	g.writeTextDocuments(b, report)
	if g.includeFindings {
		g.writeFindings(b, summary)
	}

	return b.Render(output)
}

// writeOverview summarizes document kinds and aggregate statistics.
func (g *Generator) writeOverview(b *Builder, summary *model.Summary) {
	s := b.Section("Overview")

	if summary.DocumentsAnalyzed == 0 {
		s.Paragraph("No documents were analyzed.")
		return
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d document(s) analyzed", summary.DocumentsAnalyzed))
	if summary.TotalCodeLines > 0 {
		parts = append(parts, fmt.Sprintf("%d line(s) of code", summary.TotalCodeLines))
	}
	if summary.TotalWords > 0 {
		parts = append(parts, fmt.Sprintf("%d word(s) of prose", summary.TotalWords))
	}
	s.Paragraph(strings.Join(parts, ", ") + ".")

	if len(summary.Languages) > 0 {
		s.Paragraph("Languages: " + strings.Join(summary.Languages, ", ") + ".")
	}

	rows := make([][]string, 0, len(summary.KindCounts))
	for _, kind := range sortedKinds(summary.KindCounts) {
		rows = append(rows, []string{string(kind), strconv.Itoa(summary.KindCounts[kind])})
	}
	if len(rows) > 0 {
		s.Table([]string{"Kind", "Count"}, rows)
	}
}

// sortedKinds returns document kinds in a stable order for display.
func sortedKinds(counts map[model.DocumentKind]int) []model.DocumentKind {
	order := []model.DocumentKind{model.KindCode, model.KindText, model.KindImage, model.KindBinary}
	kinds := make([]model.DocumentKind, 0, len(counts))
	for _, kind := range order {
		if counts[kind] > 0 {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// writeModuleIndex writes the summary table of all code documents.
func (g *Generator) writeModuleIndex(b *Builder, report *model.Report) {
	docs := codeDocuments(report)
	if len(docs) == 0 {
		return
	}

	rows := make([][]string, len(docs))
	for i, doc := range docs {
		funcs, complexity := "-", "-"
		if doc.CodeStats != nil {
			funcs = strconv.Itoa(len(doc.CodeStats.Functions))
			complexity = strconv.Itoa(doc.CodeStats.CyclomaticComplexity)
		}
		rows[i] = []string{
			"`" + doc.Path + "`",
			doc.SourceLanguage,
			strconv.Itoa(doc.Lines),
			funcs,
			complexity,
		}
	}

	b.Section("Modules").Table(
		[]string{"Module", "Language", "Lines", "Functions", "Complexity"},
		rows,
	)
}

// writeModules writes one section per code document with its structure.
func (g *Generator) writeModules(b *Builder, report *model.Report) {
	for _, doc := range codeDocuments(report) {
		s := b.Section(doc.Path)

		if doc.Snapshot != "" {
			s.Paragraph(code.Explain(doc.Snapshot, doc.SourceLanguage))
		}

		if doc.CodeStats == nil {
			continue
		}

		if len(doc.CodeStats.Functions) > 0 {
			s.Paragraph("Functions:")
			s.BulletList(backtick(doc.CodeStats.Functions)...)
		}
		if len(doc.CodeStats.Types) > 0 {
			s.Paragraph("Types:")
			s.BulletList(backtick(doc.CodeStats.Types)...)
		}
		if len(doc.CodeStats.Imports) > 0 {
			s.Paragraph("Imports:")
			s.BulletList(backtick(doc.CodeStats.Imports)...)
		}
	}
}

// writeTextDocuments writes the statistics table for prose documents.
func (g *Generator) writeTextDocuments(b *Builder, report *model.Report) {
	rows := make([][]string, 0)
	for _, doc := range report.Documents {
		if doc.Kind != model.KindText || doc.TextStats == nil {
			continue
		}
		language := doc.TextStats.Language
		if language == "" {
			language = "-"
		}
		rows = append(rows, []string{
			"`" + doc.Path + "`",
			strconv.Itoa(doc.TextStats.Words),
			strconv.Itoa(doc.TextStats.Sentences),
			language,
		})
	}
	if len(rows) == 0 {
		return
	}

	b.Section("Text Documents").Table(
		[]string{"Document", "Words", "Sentences", "Language"},
		rows,
	)
}

// writeFindings writes the sensitive-data findings table.
func (g *Generator) writeFindings(b *Builder, summary *model.Summary) {
	s := b.Section("Findings")

	if !summary.HasFindings() {
		s.Paragraph("No sensitive data findings.")
		return
	}

	rows := make([][]string, len(summary.Findings))
	for i, f := range summary.Findings {
		location := f.Location
		if location == "" {
			location = "-"
		}
		rows[i] = []string{f.Title, f.SeverityText, location}
	}
	s.Table([]string{"Finding", "Severity", "Location"}, rows)
}

// codeDocuments returns the report's code documents in collection order.
func codeDocuments(report *model.Report) []*model.Document {
	docs := make([]*model.Document, 0)
	for _, doc := range report.Documents {
		if doc.Kind == model.KindCode {
			docs = append(docs, doc)
		}
	}
	return docs
}

// backtick wraps each item in inline code markers.
func backtick(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = "`" + item + "`"
	}
	return out
}
