package model

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
)

// MaxSnapshotSize is the maximum size of the text snapshot in bytes.
// Snapshots are what the text and secret analyzers operate on; the cap
// prevents memory blowups on very large files.
const MaxSnapshotSize = 512 * 1024 // 512 KB

// DocumentKind classifies an analyzed file by how Aion treats it.
type DocumentKind string

const (
	// KindText is prose or data files analyzed for text statistics.
	KindText DocumentKind = "text"
	// KindCode is source code analyzed for structure and complexity.
	KindCode DocumentKind = "code"
	// KindImage is an image file analyzed for EXIF metadata.
	KindImage DocumentKind = "image"
	// KindBinary is any other non-text file; excluded from text analysis.
	KindBinary DocumentKind = "binary"
)

// codeExtensions maps file extensions to source languages Aion understands.
// The code analyzer uses regex pattern tables per language.
var codeExtensions = map[string]string{
	".py":   "python",
	".go":   "go",
	".js":   "javascript",
	".ts":   "typescript",
	".sh":   "shell",
	".rb":   "ruby",
	".rs":   "rust",
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".cc":   "cpp",
	".java": "java",
}

// imageExtensions lists extensions treated as images for EXIF analysis.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
	".heic": true,
	".png":  true,
	".webp": true,
}

// Document represents one analyzed file with its extracted information.
//
// Design decision: We store both raw bytes and a text snapshot because:
// 1. Raw bytes are needed for binary analysis (EXIF, hashing)
// 2. The snapshot is what text-oriented analyzers scan
// 3. The hash allows change detection between runs
type Document struct {
	// Path is the file path relative to the analysis target.
	Path string `json:"path"`

	// Kind classifies the document (text, code, image, binary).
	Kind DocumentKind `json:"kind"`

	// SourceLanguage is the programming language for KindCode documents.
	// Empty for other kinds.
	SourceLanguage string `json:"source_language,omitempty"`

	// Size is the file size in bytes.
	Size int64 `json:"size"`

	// Lines is the number of lines in text-like documents.
	Lines int `json:"lines,omitempty"`

	// Snapshot is the UTF-8 text content, capped at MaxSnapshotSize.
	// Empty for binary documents.
	Snapshot string `json:"-"` // Excluded from JSON to keep reports small

	// Raw contains the raw file bytes, capped at the configured limit.
	Raw []byte `json:"-"` // Excluded from JSON due to size

	// Hash is the SHA-256 hash of the raw content.
	// Used for change detection between analysis runs.
	Hash string `json:"hash"`

	// Truncated is true if the file exceeded the size limit and only a
	// prefix was loaded.
	Truncated bool `json:"truncated,omitempty"`

	// TextStats holds text statistics for text and code documents.
	TextStats *TextStats `json:"text_stats,omitempty"`

	// CodeStats holds code structure metrics for KindCode documents.
	CodeStats *CodeStats `json:"code_stats,omitempty"`
}

// TextStats holds text statistics for a document.
type TextStats struct {
	// Words is the whitespace-delimited word count.
	Words int `json:"words"`

	// Characters is the rune count including whitespace.
	Characters int `json:"characters"`

	// Sentences is the approximate sentence count.
	Sentences int `json:"sentences"`

	// UniqueWords is the number of distinct lowercased words.
	UniqueWords int `json:"unique_words"`

	// Language is the detected natural language as a BCP 47 tag
	// (e.g., "en", "de"). "und" when detection is inconclusive.
	Language string `json:"language,omitempty"`

	// LanguageConfidence is the detector's confidence in [0, 1].
	LanguageConfidence float64 `json:"language_confidence,omitempty"`
}

// CodeStats holds structure and complexity metrics for source code.
type CodeStats struct {
	// TotalLines includes blank and comment lines.
	TotalLines int `json:"total_lines"`

	// CodeLines is the count of non-empty lines.
	CodeLines int `json:"code_lines"`

	// Functions lists extracted function names.
	Functions []string `json:"functions,omitempty"`

	// Types lists extracted class or type names.
	Types []string `json:"types,omitempty"`

	// Imports lists imported modules or packages.
	Imports []string `json:"imports,omitempty"`

	// Conditionals is the number of if statements.
	Conditionals int `json:"conditionals"`

	// Loops is the combined for/while loop count.
	Loops int `json:"loops"`

	// ErrorHandlers is the number of try/recover style constructs.
	ErrorHandlers int `json:"error_handlers"`

	// CyclomaticComplexity is the simplified cyclomatic complexity:
	// 1 + conditionals + loops + error handlers.
	CyclomaticComplexity int `json:"cyclomatic_complexity"`

	// OperatorCounts maps operator categories to occurrence counts.
	OperatorCounts map[string]int `json:"operator_counts,omitempty"`

	// Docstrings is the number of documentation strings or comments
	// attached to declarations.
	Docstrings int `json:"docstrings"`
}

// NewDocument creates a Document for the given path and raw content.
// It computes the content hash and classifies the document by extension.
func NewDocument(path string, raw []byte) *Document {
	sum := sha256.Sum256(raw)

	doc := &Document{
		Path: path,
		Size: int64(len(raw)),
		Raw:  raw,
		Hash: hex.EncodeToString(sum[:]),
	}
	doc.Kind, doc.SourceLanguage = ClassifyPath(path)
	return doc
}

// ClassifyPath determines the document kind and source language from the
// file extension. Unknown extensions default to KindText; binary content
// detection happens later when the snapshot is built.
func ClassifyPath(path string) (DocumentKind, string) {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := codeExtensions[ext]; ok {
		return KindCode, lang
	}
	if imageExtensions[ext] {
		return KindImage, ""
	}
	return KindText, ""
}
