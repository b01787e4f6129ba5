// Package textutil provides text processing utilities: counting,
// extraction of emails and URLs, slug generation, case conversion,
// HTML text extraction, and natural language detection.
package textutil
