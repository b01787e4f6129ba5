package code

import (
	"fmt"
	"regexp"
	"strings"
)

// Smell thresholds. Values apply across languages.
const (
	longFunctionLines = 50
	maxNestingLevels  = 4
	longLineChars     = 100
	magicNumberLimit  = 5
)

var (
	magicNumberRegex = regexp.MustCompile(`\b\d{2,}\b`)
	todoRegex        = regexp.MustCompile(`(?i)\bTODO\b|\bFIXME\b|\bHACK\b`)
	bareExceptRegex  = regexp.MustCompile(`(?m)^\s*except\s*:`)
)

// Smell describes one detected code quality issue.
type Smell struct {
	// Type is the finding identifier, e.g. "long_function".
	Type string

	// Description is a human-readable explanation with counts.
	Description string

	// Location is a line reference when the smell is line-specific.
	Location string
}

// FindCodeSmells scans source for common quality issues: functions
// over 50 lines, nesting beyond 4 levels, clusters of magic numbers,
// lines over 100 characters, leftover TODO markers, and Python bare
// excepts. One smell per type is reported with a count.
func FindCodeSmells(source, language string) []Smell {
	syn := SyntaxFor(language)
	lines := strings.Split(source, "\n")
	var smells []Smell

	if n, first := countLongFunctions(source, language); n > 0 {
		smells = append(smells, Smell{
			Type:        "long_function",
			Description: fmt.Sprintf("%d function(s) longer than %d lines", n, longFunctionLines),
			Location:    first,
		})
	}

	for i, line := range lines {
		if indentLevel(line, syn.IndentWidth) > maxNestingLevels {
			smells = append(smells, Smell{
				Type:        "deep_nesting",
				Description: fmt.Sprintf("indentation deeper than %d levels", maxNestingLevels),
				Location:    fmt.Sprintf("line %d", i+1),
			})
			break
		}
	}

	if magic := magicNumberRegex.FindAllString(source, -1); len(magic) > magicNumberLimit {
		smells = append(smells, Smell{
			Type:        "magic_numbers",
			Description: fmt.Sprintf("%d numeric literals; consider named constants", len(magic)),
		})
	}

	longLines := 0
	firstLong := 0
	for i, line := range lines {
		if len(line) > longLineChars {
			if longLines == 0 {
				firstLong = i + 1
			}
			longLines++
		}
	}
	if longLines > 0 {
		smells = append(smells, Smell{
			Type:        "long_lines",
			Description: fmt.Sprintf("%d line(s) longer than %d characters", longLines, longLineChars),
			Location:    fmt.Sprintf("line %d", firstLong),
		})
	}

	if todos := todoRegex.FindAllString(source, -1); len(todos) > 0 {
		smells = append(smells, Smell{
			Type:        "todo_comment",
			Description: fmt.Sprintf("%d TODO/FIXME/HACK marker(s)", len(todos)),
		})
	}

	if language == "python" {
		if bare := bareExceptRegex.FindAllString(source, -1); len(bare) > 0 {
			smells = append(smells, Smell{
				Type:        "bare_except",
				Description: fmt.Sprintf("%d bare except clause(s) swallow all exceptions", len(bare)),
			})
		}
	}

	return smells
}

// countLongFunctions counts function bodies exceeding the line limit.
// A body extends from its declaration to the next declaration at any
// position, which mirrors how a reader skims a file.
func countLongFunctions(source, language string) (int, string) {
	syn := SyntaxFor(language)
	if len(syn.Function) == 0 {
		return 0, ""
	}

	lines := strings.Split(source, "\n")
	var starts []int
	for i, line := range lines {
		for _, re := range syn.Function {
			if re.MatchString(line) {
				starts = append(starts, i)
				break
			}
		}
	}

	count := 0
	first := ""
	for i, start := range starts {
		end := len(lines)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		if end-start > longFunctionLines {
			if count == 0 {
				first = fmt.Sprintf("line %d", start+1)
			}
			count++
		}
	}
	return count, first
}

// indentLevel returns the indentation depth of a line. Leading tabs
// count one level each; spaces count in units of width.
func indentLevel(line string, width int) int {
	if width <= 0 {
		width = 4
	}
	level := 0
	spaces := 0
	for _, r := range line {
		switch r {
		case '\t':
			level++
		case ' ':
			spaces++
		default:
			return level + spaces/width
		}
	}
	return 0 // blank or whitespace-only line
}
