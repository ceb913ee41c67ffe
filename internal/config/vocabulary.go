package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Vocabulary is the keyword table driving requirement extraction. The
// matching logic (lower-case substring containment, first-bucket-wins) lives
// in the routing package; the vocabulary itself is data and can be replaced
// from a YAML file.
type Vocabulary struct {
	// Skills maps a skill name to the keywords that imply it.
	Skills map[string][]string `yaml:"skills"`

	// Complexity buckets, checked high then medium then low.
	ComplexityHigh   []string `yaml:"complexity_high"`
	ComplexityMedium []string `yaml:"complexity_medium"`
	ComplexityLow    []string `yaml:"complexity_low"`

	// Ticket type buckets, checked bug then feature then enhancement.
	TypeBug         []string `yaml:"type_bug"`
	TypeFeature     []string `yaml:"type_feature"`
	TypeEnhancement []string `yaml:"type_enhancement"`

	// Priority buckets, checked critical then high then low.
	PriorityCritical []string `yaml:"priority_critical"`
	PriorityHigh     []string `yaml:"priority_high"`
	PriorityLow      []string `yaml:"priority_low"`

	// Capability flags, each an independent keyword check.
	Design       []string `yaml:"design"`
	Backend      []string `yaml:"backend"`
	Frontend     []string `yaml:"frontend"`
	Mobile       []string `yaml:"mobile"`
	Testing      []string `yaml:"testing"`
	Localization []string `yaml:"localization"`
}

// DefaultVocabulary returns the built-in keyword tables.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Skills: map[string][]string{
			"react_native":    {"react native", "mobile app", "ios", "android"},
			"javascript":      {"javascript", "js", "frontend", "ui"},
			"python":          {"python", "backend", "api", "django", "flask"},
			"figma":           {"figma", "design", "mockup", "prototype"},
			"japanese":        {"japanese", "japan", "localization", "i18n"},
			"testing":         {"test", "testing", "qa", "quality"},
			"api_integration": {"api", "integration", "endpoint", "rest"},
			"database":        {"database", "sql", "data", "storage"},
			"ui_ux":           {"ui", "ux", "user interface", "user experience"},
			"accessibility":   {"accessibility", "a11y", "wcag", "screen reader"},
		},

		ComplexityHigh:   []string{"complex", "difficult", "challenging", "advanced", "sophisticated"},
		ComplexityMedium: []string{"moderate", "standard", "typical", "normal"},
		ComplexityLow:    []string{"simple", "easy", "basic", "straightforward"},

		TypeBug:         []string{"bug", "fix", "error"},
		TypeFeature:     []string{"feature", "new", "add"},
		TypeEnhancement: []string{"improve", "enhance", "optimize"},

		PriorityCritical: []string{"urgent", "critical", "asap"},
		PriorityHigh:     []string{"high", "important"},
		PriorityLow:      []string{"low", "minor"},

		Design:       []string{"design", "figma", "ui", "ux"},
		Backend:      []string{"backend", "api", "database", "python"},
		Frontend:     []string{"frontend", "ui", "react", "javascript"},
		Mobile:       []string{"mobile", "react native", "ios", "android"},
		Testing:      []string{"test", "testing"},
		Localization: []string{"japanese", "japan"},
	}
}

// LoadVocabulary reads a vocabulary from a YAML file. Fields absent from the
// file fall back to the built-in defaults, so a file can override just the
// skills table.
func LoadVocabulary(path string) (Vocabulary, error) {
	vocab := DefaultVocabulary()

	data, err := os.ReadFile(path)
	if err != nil {
		return vocab, fmt.Errorf("read vocabulary file: %w", err)
	}
	if err := yaml.Unmarshal(data, &vocab); err != nil {
		return vocab, fmt.Errorf("parse vocabulary file: %w", err)
	}
	return vocab, nil
}

// Vocabulary resolves the active vocabulary for this configuration.
func (c Config) Vocabulary() (Vocabulary, error) {
	if c.VocabularyFile == "" {
		return DefaultVocabulary(), nil
	}
	return LoadVocabulary(c.VocabularyFile)
}
