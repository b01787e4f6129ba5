package code

import "regexp"

// Syntax holds the regex pattern table for one language.
type Syntax struct {
	// Name is the language identifier, e.g. "python" or "go".
	Name string

	// Function patterns capture the declared name in group 1.
	Function []*regexp.Regexp

	// Type patterns capture class, struct, or interface names in group 1.
	Type []*regexp.Regexp

	// Import patterns capture the imported module or package in group 1.
	Import []*regexp.Regexp

	// Conditional matches if statements.
	Conditional *regexp.Regexp

	// Loop matches for and while statements.
	Loop *regexp.Regexp

	// ErrorHandler matches try/except, recover, catch and similar.
	ErrorHandler *regexp.Regexp

	// Docstring matches documentation strings or comment blocks.
	Docstring *regexp.Regexp

	// LineComment is the single-line comment marker.
	LineComment string

	// IndentWidth is one indentation level in spaces for nesting depth.
	IndentWidth int
}

var (
	pythonSyntax = &Syntax{
		Name: "python",
		Function: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\s*(?:async\s+)?def\s+(\w+)\s*\(`),
		},
		Type: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\s*class\s+(\w+)`),
		},
		Import: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\s*import\s+([^\s,]+)`),
			regexp.MustCompile(`(?m)^\s*from\s+(\S+)\s+import`),
		},
		Conditional:  regexp.MustCompile(`\bif\b`),
		Loop:         regexp.MustCompile(`\bfor\b|\bwhile\b`),
		ErrorHandler: regexp.MustCompile(`\btry\b`),
		Docstring:    regexp.MustCompile(`(?s)"""(.*?)"""|'''(.*?)'''`),
		LineComment:  "#",
		IndentWidth:  4,
	}

	goSyntax = &Syntax{
		Name: "go",
		Function: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^func\s+(?:\([^)]*\)\s+)?(\w+)\s*[(\[]`),
		},
		Type: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^type\s+(\w+)\s+(?:struct|interface)\b`),
		},
		Import: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\s*(?:import\s+)?(?:\w+\s+)?"([^"]+)"`),
		},
		Conditional:  regexp.MustCompile(`\bif\b`),
		Loop:         regexp.MustCompile(`\bfor\b`),
		ErrorHandler: regexp.MustCompile(`\brecover\b|\berrors\.Is\b|\berrors\.As\b`),
		Docstring:    regexp.MustCompile(`(?m)^//\s*\w+.*\n(?:^//.*\n)*^(?:func|type|var|const)\b`),
		LineComment:  "//",
		IndentWidth:  4, // tabs count as one level each
	}

	jsSyntax = &Syntax{
		Name: "javascript",
		Function: []*regexp.Regexp{
			regexp.MustCompile(`(?m)\bfunction\s+(\w+)\s*\(`),
			regexp.MustCompile(`(?m)\b(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s+)?(?:function\b|\([^)]*\)\s*=>)`),
		},
		Type: []*regexp.Regexp{
			regexp.MustCompile(`(?m)\bclass\s+(\w+)`),
		},
		Import: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\s*import\b[^'"]*['"]([^'"]+)['"]`),
			regexp.MustCompile(`\brequire\(\s*['"]([^'"]+)['"]\s*\)`),
		},
		Conditional:  regexp.MustCompile(`\bif\b`),
		Loop:         regexp.MustCompile(`\bfor\b|\bwhile\b`),
		ErrorHandler: regexp.MustCompile(`\btry\b`),
		Docstring:    regexp.MustCompile(`(?s)/\*\*(.*?)\*/`),
		LineComment:  "//",
		IndentWidth:  2,
	}

	shellSyntax = &Syntax{
		Name: "shell",
		Function: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\s*(?:function\s+)?(\w+)\s*\(\)\s*\{`),
		},
		Type: nil,
		Import: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\s*(?:source|\.)\s+(\S+)`),
		},
		Conditional:  regexp.MustCompile(`\bif\b`),
		Loop:         regexp.MustCompile(`\bfor\b|\bwhile\b|\buntil\b`),
		ErrorHandler: regexp.MustCompile(`\btrap\b`),
		LineComment:  "#",
		IndentWidth:  2,
	}

	rubySyntax = &Syntax{
		Name: "ruby",
		Function: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\s*def\s+(\w+[?!]?)`),
		},
		Type: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\s*(?:class|module)\s+(\w+)`),
		},
		Import: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\s*require(?:_relative)?\s+['"]([^'"]+)['"]`),
		},
		Conditional:  regexp.MustCompile(`\bif\b|\bunless\b`),
		Loop:         regexp.MustCompile(`\bfor\b|\bwhile\b|\buntil\b|\.each\b`),
		ErrorHandler: regexp.MustCompile(`\bbegin\b|\brescue\b`),
		LineComment:  "#",
		IndentWidth:  2,
	}

	rustSyntax = &Syntax{
		Name: "rust",
		Function: []*regexp.Regexp{
			regexp.MustCompile(`(?m)\bfn\s+(\w+)`),
		},
		Type: []*regexp.Regexp{
			regexp.MustCompile(`(?m)\b(?:struct|enum|trait)\s+(\w+)`),
		},
		Import: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\s*use\s+([\w:]+)`),
		},
		Conditional:  regexp.MustCompile(`\bif\b|\bmatch\b`),
		Loop:         regexp.MustCompile(`\bfor\b|\bwhile\b|\bloop\b`),
		ErrorHandler: regexp.MustCompile(`\.unwrap_or\b|\bResult<|\?;`),
		Docstring:    regexp.MustCompile(`(?m)^\s*///.*`),
		LineComment:  "//",
		IndentWidth:  4,
	}

	cSyntax = &Syntax{
		Name: "c",
		Function: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\w[\w\s*]*?\b(\w+)\s*\([^;]*\)\s*\{`),
		},
		Type: []*regexp.Regexp{
			regexp.MustCompile(`(?m)\b(?:struct|union|enum)\s+(\w+)`),
		},
		Import: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\s*#include\s+[<"]([^>"]+)[>"]`),
		},
		Conditional:  regexp.MustCompile(`\bif\b|\bswitch\b`),
		Loop:         regexp.MustCompile(`\bfor\b|\bwhile\b|\bdo\b`),
		ErrorHandler: regexp.MustCompile(`\bgoto\s+\w*err\w*\b|\bsetjmp\b`),
		Docstring:    regexp.MustCompile(`(?s)/\*\*(.*?)\*/`),
		LineComment:  "//",
		IndentWidth:  4,
	}

	javaSyntax = &Syntax{
		Name: "java",
		Function: []*regexp.Regexp{
			regexp.MustCompile(`(?m)(?:public|private|protected|static|final|\s)+[\w<>\[\]]+\s+(\w+)\s*\([^)]*\)\s*(?:throws\s+[\w,\s]+)?\{`),
		},
		Type: []*regexp.Regexp{
			regexp.MustCompile(`(?m)\b(?:class|interface|enum|record)\s+(\w+)`),
		},
		Import: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\s*import\s+(?:static\s+)?([\w.]+)\s*;`),
		},
		Conditional:  regexp.MustCompile(`\bif\b|\bswitch\b`),
		Loop:         regexp.MustCompile(`\bfor\b|\bwhile\b`),
		ErrorHandler: regexp.MustCompile(`\btry\b`),
		Docstring:    regexp.MustCompile(`(?s)/\*\*(.*?)\*/`),
		LineComment:  "//",
		IndentWidth:  4,
	}
)

// syntaxes maps language identifiers to their pattern tables.
var syntaxes = map[string]*Syntax{
	"python":     pythonSyntax,
	"go":         goSyntax,
	"javascript": jsSyntax,
	"typescript": jsSyntax,
	"shell":      shellSyntax,
	"ruby":       rubySyntax,
	"rust":       rustSyntax,
	"c":          cSyntax,
	"cpp":        cSyntax,
	"java":       javaSyntax,
}

// SyntaxFor returns the pattern table for a language identifier.
// Unknown languages fall back to the Python table, whose keyword set
// covers most scripting languages well enough for rough metrics.
func SyntaxFor(language string) *Syntax {
	if s, ok := syntaxes[language]; ok {
		return s
	}
	return pythonSyntax
}

// SupportedLanguages returns the identifiers with dedicated tables.
func SupportedLanguages() []string {
	langs := make([]string, 0, len(syntaxes))
	for l := range syntaxes {
		langs = append(langs, l)
	}
	return langs
}
