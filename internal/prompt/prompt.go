package prompt

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	// ErrTemplateNotFound is returned for an unknown template name.
	ErrTemplateNotFound = errors.New("prompt: template not found")

	// ErrMissingVariable is returned when a placeholder has no value.
	ErrMissingVariable = errors.New("prompt: missing variable")
)

// placeholderRegex matches {name} placeholders. Names are simple
// identifiers so JSON braces in surrounding text are left alone.
var placeholderRegex = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Template is a named prompt with {placeholder} variables.
type Template struct {
	Name        string
	Description string
	Text        string
}

// Variables returns the sorted distinct placeholder names in the template.
func (t Template) Variables() []string {
	seen := make(map[string]bool)
	for _, m := range placeholderRegex.FindAllStringSubmatch(t.Text, -1) {
		seen[m[1]] = true
	}
	vars := make([]string, 0, len(seen))
	for v := range seen {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	return vars
}

// builtins are the templates available without any configuration.
var builtins = []Template{
	{
		Name:        "summarize",
		Description: "Summarize a text in a fixed number of sentences",
		Text:        "Summarize the following text in {sentences} sentences. Focus on the key findings and conclusions.\n\nText:\n{text}",
	},
	{
		Name:        "explain-code",
		Description: "Explain what a piece of code does",
		Text:        "Explain what the following {language} code does, step by step. Note any bugs or edge cases you see.\n\n```{language}\n{code}\n```",
	},
	{
		Name:        "compare",
		Description: "Compare two texts or approaches",
		Text:        "Compare the following two items. List their similarities, their differences, and when you would prefer each.\n\nItem A:\n{a}\n\nItem B:\n{b}",
	},
	{
		Name:        "extract-keywords",
		Description: "Extract the most important keywords from a text",
		Text:        "Extract the {count} most important keywords from the following text. Return them as a comma-separated list.\n\nText:\n{text}",
	},
	{
		Name:        "classify",
		Description: "Classify a text into one of a set of labels",
		Text:        "Classify the following text into exactly one of these categories: {labels}. Respond with the category name only.\n\nText:\n{text}",
	},
	{
		Name:        "improve-writing",
		Description: "Rewrite a text for clarity and concision",
		Text:        "Rewrite the following text to be clearer and more concise while keeping its meaning. Preserve any technical terms.\n\nText:\n{text}",
	},
	{
		Name:        "generate-tests",
		Description: "Generate test cases for a function",
		Text:        "Write test cases for the following {language} function. Cover normal inputs, edge cases, and error conditions.\n\n```{language}\n{code}\n```",
	},
}

// Registry holds built-in and custom templates by name.
type Registry struct {
	templates map[string]Template
}

// NewRegistry creates a Registry with the built-in templates.
func NewRegistry() *Registry {
	r := &Registry{templates: make(map[string]Template, len(builtins))}
	for _, t := range builtins {
		r.templates[t.Name] = t
	}
	return r
}

// Add registers a template, replacing any existing one with the same
// name. Custom templates from configuration override built-ins.
func (r *Registry) Add(t Template) {
	r.templates[t.Name] = t
}

// Get returns the named template.
func (r *Registry) Get(name string) (Template, error) {
	t, ok := r.templates[name]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return t, nil
}

// Templates returns all registered templates sorted by name.
func (r *Registry) Templates() []Template {
	list := make([]Template, 0, len(r.templates))
	for _, t := range r.templates {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Render fills the named template's placeholders from vars.
func (r *Registry) Render(name string, vars map[string]string) (string, error) {
	t, err := r.Get(name)
	if err != nil {
		return "", err
	}
	return RenderString(t.Text, vars)
}

// RenderString substitutes {placeholder} variables in text. Every
// placeholder must have a value in vars; unused vars are ignored.
func RenderString(text string, vars map[string]string) (string, error) {
	var missing []string
	result := placeholderRegex.ReplaceAllStringFunc(text, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := vars[name]
		if !ok {
			missing = append(missing, name)
			return m
		}
		return v
	})
	if len(missing) > 0 {
		sort.Strings(missing)
		return "", fmt.Errorf("%w: %s", ErrMissingVariable, strings.Join(dedupe(missing), ", "))
	}
	return result, nil
}

// dedupe removes adjacent duplicates from a sorted slice.
func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
