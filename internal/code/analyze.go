package code

import (
	"regexp"
	"sort"
	"strings"

	"github.com/aqwel-ai/aion/internal/model"
)

// ExtractFunctions returns function names declared in source, in order
// of appearance.
func ExtractFunctions(source, language string) []string {
	syn := SyntaxFor(language)
	var names []string
	for _, re := range syn.Function {
		for _, m := range re.FindAllStringSubmatch(source, -1) {
			names = append(names, m[1])
		}
	}
	return names
}

// ExtractTypes returns class, struct, or interface names declared in
// source.
func ExtractTypes(source, language string) []string {
	syn := SyntaxFor(language)
	var names []string
	for _, re := range syn.Type {
		for _, m := range re.FindAllStringSubmatch(source, -1) {
			names = append(names, m[1])
		}
	}
	return names
}

// ExtractImports returns the sorted distinct modules or packages
// imported by source.
func ExtractImports(source, language string) []string {
	syn := SyntaxFor(language)
	seen := make(map[string]bool)
	for _, re := range syn.Import {
		for _, m := range re.FindAllStringSubmatch(source, -1) {
			seen[m[1]] = true
		}
	}
	imports := make([]string, 0, len(seen))
	for imp := range seen {
		imports = append(imports, imp)
	}
	sort.Strings(imports)
	return imports
}

// StripComments removes single-line comments and the resulting empty
// lines. Comment markers inside string literals are not recognized, so
// lines containing them are truncated early.
func StripComments(source, language string) string {
	syn := SyntaxFor(language)
	if syn.LineComment == "" {
		return source
	}
	var lines []string
	for _, line := range strings.Split(source, "\n") {
		if pos := strings.Index(line, syn.LineComment); pos >= 0 {
			line = strings.TrimRight(line[:pos], " \t")
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// ExtractDocstrings returns the trimmed documentation strings found in
// source. Languages without a docstring convention return nil.
func ExtractDocstrings(source, language string) []string {
	syn := SyntaxFor(language)
	if syn.Docstring == nil {
		return nil
	}
	var docs []string
	for _, m := range syn.Docstring.FindAllStringSubmatch(source, -1) {
		// The pattern may have alternated capture groups; take the
		// first non-empty one, or the whole match for group-free
		// patterns.
		text := m[0]
		for _, g := range m[1:] {
			if g != "" {
				text = g
				break
			}
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			docs = append(docs, trimmed)
		}
	}
	return docs
}

// operatorCategories groups operator tokens for CountOperators.
// Word operators are matched on word boundaries; symbol operators are
// counted as substrings, so "==" also counts both of its "=" runes.
var operatorCategories = []struct {
	name string
	ops  []string
}{
	{name: "arithmetic", ops: []string{"+", "-", "*", "/", "//", "%", "**"}},
	{name: "comparison", ops: []string{"==", "!=", "<", ">", "<=", ">="}},
	{name: "logical", ops: []string{"and", "or", "not", "&&", "||"}},
	{name: "assignment", ops: []string{"=", "+=", "-=", "*=", "/=", ":="}},
	{name: "bitwise", ops: []string{"&", "|", "^", "~", "<<", ">>"}},
}

func isWordOp(op string) bool {
	for _, r := range op {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// wordOpRegex holds precompiled word-boundary patterns for keyword
// operators like "and" and "not".
var wordOpRegex = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp)
	for _, cat := range operatorCategories {
		for _, op := range cat.ops {
			if isWordOp(op) {
				m[op] = regexp.MustCompile(`\b` + op + `\b`)
			}
		}
	}
	return m
}()

// CountOperators counts operator occurrences by category.
func CountOperators(source string) map[string]int {
	counts := make(map[string]int, len(operatorCategories))
	for _, cat := range operatorCategories {
		total := 0
		for _, op := range cat.ops {
			if re, ok := wordOpRegex[op]; ok {
				total += len(re.FindAllString(source, -1))
			} else {
				total += strings.Count(source, op)
			}
		}
		counts[cat.name] = total
	}
	return counts
}

// AnalyzeComplexity computes structure and complexity metrics for
// source. The cyclomatic complexity is the simplified form: one plus
// the counts of conditionals, loops, and error handlers.
func AnalyzeComplexity(source, language string) *model.CodeStats {
	syn := SyntaxFor(language)

	lines := strings.Split(source, "\n")
	codeLines := 0
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			codeLines++
		}
	}

	conditionals := len(syn.Conditional.FindAllString(source, -1))
	loops := len(syn.Loop.FindAllString(source, -1))
	handlers := 0
	if syn.ErrorHandler != nil {
		handlers = len(syn.ErrorHandler.FindAllString(source, -1))
	}

	return &model.CodeStats{
		TotalLines:           len(lines),
		CodeLines:            codeLines,
		Functions:            ExtractFunctions(source, language),
		Types:                ExtractTypes(source, language),
		Imports:              ExtractImports(source, language),
		Conditionals:         conditionals,
		Loops:                loops,
		ErrorHandlers:        handlers,
		CyclomaticComplexity: 1 + conditionals + loops + handlers,
		OperatorCounts:       CountOperators(source),
		Docstrings:           len(ExtractDocstrings(source, language)),
	}
}
