package docgen

import (
	"io"

	"github.com/aqwel-ai/aion/internal/textutil"
	"github.com/nao1215/markdown"
)

// Builder accumulates a structured document and renders it as Markdown.
//
// Design decision: We keep a small intermediate model (sections holding
// render closures) instead of writing markdown directly because:
// 1. The table of contents needs all section titles before any body renders
// 2. Callers can assemble sections in any order
// 3. Rendering concerns stay in one place
type Builder struct {
	title string

	// metadata holds key/value pairs rendered as a table under the title.
	// Order is preserved.
	metadata [][2]string

	sections []*Section

	// withIndex controls whether a Contents section is rendered.
	withIndex bool
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithoutIndex disables the Contents section.
func WithoutIndex() BuilderOption {
	return func(b *Builder) {
		b.withIndex = false
	}
}

// NewBuilder creates a document builder with the given title.
func NewBuilder(title string, opts ...BuilderOption) *Builder {
	b := &Builder{
		title:     title,
		withIndex: true,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Meta adds a metadata key/value pair shown in the header table.
func (b *Builder) Meta(key, value string) *Builder {
	b.metadata = append(b.metadata, [2]string{key, value})
	return b
}

// Section appends a new section and returns it for content population.
func (b *Builder) Section(title string) *Section {
	s := &Section{title: title}
	b.sections = append(b.sections, s)
	return s
}

// Render writes the assembled document as Markdown.
// Returns the number of bytes in the rendered document.
func (b *Builder) Render(output io.Writer) (int, error) {
	md := markdown.NewMarkdown(output)

	md.H1(b.title)
	md.PlainText("")

	if len(b.metadata) > 0 {
		rows := make([][]string, len(b.metadata))
		for i, kv := range b.metadata {
			rows[i] = []string{kv[0], kv[1]}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Property", "Value"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if b.withIndex && len(b.sections) > 1 {
		md.H2("Contents")
		md.PlainText("")
		items := make([]string, len(b.sections))
		for i, s := range b.sections {
			items[i] = "[" + s.title + "](#" + textutil.Slugify(s.title) + ")"
		}
		md.BulletList(items...)
		md.PlainText("")
	}

	for _, s := range b.sections {
		md.H2(s.title)
		md.PlainText("")
		for _, block := range s.blocks {
			block(md)
		}
	}

	return len(md.String()), md.Build()
}

// Section is one titled portion of the document.
// Content methods return the section for chaining.
type Section struct {
	title string

	// blocks are deferred render steps applied in insertion order.
	blocks []func(md *markdown.Markdown)
}

// Title returns the section title.
func (s *Section) Title() string {
	return s.title
}

// Paragraph adds a plain text paragraph.
func (s *Section) Paragraph(text string) *Section {
	s.blocks = append(s.blocks, func(md *markdown.Markdown) {
		md.PlainText(text)
		md.PlainText("")
	})
	return s
}

// BulletList adds an unordered list.
func (s *Section) BulletList(items ...string) *Section {
	s.blocks = append(s.blocks, func(md *markdown.Markdown) {
		md.BulletList(items...)
		md.PlainText("")
	})
	return s
}

// Table adds a table with the given headers and rows.
func (s *Section) Table(headers []string, rows [][]string) *Section {
	s.blocks = append(s.blocks, func(md *markdown.Markdown) {
		md.Table(markdown.TableSet{
			Header: headers,
			Rows:   rows,
		})
		md.PlainText("")
	})
	return s
}

// CodeBlock adds a fenced code block with syntax highlighting.
func (s *Section) CodeBlock(language, source string) *Section {
	s.blocks = append(s.blocks, func(md *markdown.Markdown) {
		md.CodeBlocks(markdown.SyntaxHighlight(language), source)
		md.PlainText("")
	})
	return s
}
