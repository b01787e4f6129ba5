package prompt

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestRegistryBuiltins(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	list := r.Templates()
	if len(list) == 0 {
		t.Fatal("Templates() returned no built-ins")
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Name >= list[i].Name {
			t.Errorf("Templates() not sorted: %q before %q", list[i-1].Name, list[i].Name)
		}
	}

	for _, name := range []string{"summarize", "explain-code", "compare"} {
		if _, err := r.Get(name); err != nil {
			t.Errorf("Get(%q) error = %v", name, err)
		}
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if _, err := r.Get("no-such-template"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("Get() error = %v, want ErrTemplateNotFound", err)
	}
}

func TestRegistryAddOverrides(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Add(Template{Name: "summarize", Text: "custom {text}"})

	got, err := r.Render("summarize", map[string]string{"text": "hello"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "custom hello" {
		t.Errorf("Render() = %q, want %q", got, "custom hello")
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	got, err := r.Render("summarize", map[string]string{
		"sentences": "3",
		"text":      "A long article.",
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(got, "3 sentences") {
		t.Errorf("Render() = %q, want sentence count substituted", got)
	}
	if !strings.Contains(got, "A long article.") {
		t.Errorf("Render() = %q, want text substituted", got)
	}
	if strings.Contains(got, "{") {
		t.Errorf("Render() = %q, contains unresolved placeholder", got)
	}
}

func TestRenderString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		vars    map[string]string
		want    string
		wantErr error
	}{
		{
			name: "simple substitution",
			text: "Hello {name}!",
			vars: map[string]string{"name": "world"},
			want: "Hello world!",
		},
		{
			name: "repeated placeholder",
			text: "{x} and {x}",
			vars: map[string]string{"x": "a"},
			want: "a and a",
		},
		{
			name: "unused vars ignored",
			text: "no placeholders",
			vars: map[string]string{"extra": "v"},
			want: "no placeholders",
		},
		{
			name:    "missing variable",
			text:    "needs {a} and {b}",
			vars:    map[string]string{"a": "1"},
			wantErr: ErrMissingVariable,
		},
		{
			name: "json braces untouched",
			text: `{"key": "value"} with {var}`,
			vars: map[string]string{"var": "x"},
			want: `{"key": "value"} with x`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RenderString(tt.text, tt.vars)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("RenderString() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("RenderString() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("RenderString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTemplateVariables(t *testing.T) {
	t.Parallel()

	tmpl := Template{Text: "{b} then {a} then {b}"}
	got := tmpl.Variables()
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Variables() = %v, want %v", got, want)
	}
}
