package code

import (
	"fmt"
	"strings"
)

// Explain produces a prose description of the code's structure: its
// functions, types, imports, control flow, and size.
func Explain(source, language string) string {
	syn := SyntaxFor(language)
	var parts []string

	if funcs := ExtractFunctions(source, language); len(funcs) > 0 {
		parts = append(parts, fmt.Sprintf("Defines %d function(s): %s", len(funcs), strings.Join(funcs, ", ")))
	}
	if types := ExtractTypes(source, language); len(types) > 0 {
		parts = append(parts, fmt.Sprintf("Defines %d type(s): %s", len(types), strings.Join(types, ", ")))
	}
	if imports := ExtractImports(source, language); len(imports) > 0 {
		parts = append(parts, fmt.Sprintf("Imports %d module(s)", len(imports)))
	}
	if syn.Loop.MatchString(source) {
		parts = append(parts, "Contains loops for iteration")
	}
	if syn.Conditional.MatchString(source) {
		parts = append(parts, "Contains conditional statements")
	}
	if syn.ErrorHandler != nil && syn.ErrorHandler.MatchString(source) {
		parts = append(parts, "Contains error handling")
	}

	codeLines := 0
	for _, line := range strings.Split(source, "\n") {
		if strings.TrimSpace(line) != "" {
			codeLines++
		}
	}
	parts = append(parts, fmt.Sprintf("Contains %d non-empty lines", codeLines))

	if len(parts) == 1 && codeLines == 0 {
		return "Empty source."
	}
	return strings.Join(parts, ". ") + "."
}
