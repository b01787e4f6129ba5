// Package prompt manages reusable prompt templates for language models.
//
// Templates use {placeholder} syntax filled from a variable map.
// A built-in registry covers common research tasks (summarization,
// code explanation, comparison, and so on), and custom templates can
// be merged in from configuration.
package prompt
