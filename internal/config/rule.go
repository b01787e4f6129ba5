package config

import "strings"

// RuleConfig holds path-specific analysis rules. This allows tuning
// behavior per directory, for example relaxing size limits under docs/
// while disabling code analysis under third_party/.
type RuleConfig struct {
	// IgnorePatterns are extra glob patterns to skip under this path.
	IgnorePatterns []string `yaml:"ignorePatterns,omitempty"`

	// MaxFileSize overrides the global size limit for this path.
	// If zero, the global MaxFileSize is used.
	MaxFileSize int64 `yaml:"maxFileSize,omitempty"`

	// DisabledAnalyzers lists analyzer names to skip for this path
	// (e.g., "secrets", "exif", "pii").
	DisabledAnalyzers []string `yaml:"disabledAnalyzers,omitempty"`
}

// Template is a custom prompt template defined in the config file.
type Template struct {
	// Description is shown in template listings.
	Description string `yaml:"description,omitempty"`

	// Text is the template body with {placeholder} variables.
	Text string `yaml:"text"`
}

// File represents the structure of the .aion configuration file.
type File struct {
	// Rules maps path prefixes to their rule overrides.
	// Keys are slash-separated paths relative to the analysis target.
	Rules map[string]RuleConfig `yaml:"rules,omitempty"`

	// Defaults contains the default rule configuration applied to all
	// paths unless overridden by a more specific rule.
	Defaults RuleConfig `yaml:"defaults,omitempty"`

	// Templates defines custom prompt templates by name. They are
	// merged into the built-in registry and may override built-ins.
	Templates map[string]Template `yaml:"templates,omitempty"`
}

// GetRuleConfig returns the rule configuration for a path.
// It merges the path-specific rules with defaults.
func (cf *File) GetRuleConfig(path string) RuleConfig {
	// Start with defaults
	result := cf.Defaults

	// Override with path-specific configuration if present
	if rule, ok := cf.Rules[path]; ok {
		result = mergeRule(result, rule)
	}

	return result
}

// RuleForPath returns the merged rule configuration governing a
// document path. Rule keys match their own subtree, so the rule for
// "third_party" governs "third_party/vendor/lib.py". When several
// keys match, the longest (most specific) one wins.
func (cf *File) RuleForPath(path string) RuleConfig {
	bestKey := ""
	for key := range cf.Rules {
		if key == "" || !underPrefix(path, key) {
			continue
		}
		if len(key) > len(bestKey) {
			bestKey = key
		}
	}
	if bestKey == "" {
		return cf.Defaults
	}
	return cf.GetRuleConfig(bestKey)
}

// underPrefix reports whether the slash-separated path is the prefix
// itself or lies inside its subtree.
func underPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// mergeRule overlays a path-specific rule on top of base.
func mergeRule(base, rule RuleConfig) RuleConfig {
	if rule.MaxFileSize != 0 {
		base.MaxFileSize = rule.MaxFileSize
	}
	if len(rule.IgnorePatterns) > 0 {
		merged := make([]string, 0, len(base.IgnorePatterns)+len(rule.IgnorePatterns))
		merged = append(merged, base.IgnorePatterns...)
		merged = append(merged, rule.IgnorePatterns...)
		base.IgnorePatterns = merged
	}
	if len(rule.DisabledAnalyzers) > 0 {
		base.DisabledAnalyzers = rule.DisabledAnalyzers
	}
	return base
}
