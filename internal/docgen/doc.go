// Package docgen builds project documentation artifacts in Markdown.
//
// The package has two layers:
//   - Builder: a small document model (title, metadata, sections with
//     paragraphs, lists, tables, and code blocks) rendered through the
//     nao1215/markdown fluent API
//   - Generator: assembles a Builder document from an analysis report,
//     turning code structure and text statistics into readable
//     project documentation
//
// Design decision: The artifact format is GitHub-flavored Markdown
// rather than PDF because:
// 1. Markdown renders everywhere (GitHub, editors, static site generators)
// 2. It diffs cleanly in version control
// 3. It needs no rendering engine or font handling
package docgen
