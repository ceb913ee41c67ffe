package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultVocabularyComplete(t *testing.T) {
	vocab := DefaultVocabulary()

	if len(vocab.Skills) == 0 {
		t.Fatal("default vocabulary has no skills")
	}
	for skill, keywords := range vocab.Skills {
		if len(keywords) == 0 {
			t.Errorf("skill %q has no keywords", skill)
		}
	}
	if len(vocab.ComplexityHigh) == 0 || len(vocab.ComplexityLow) == 0 {
		t.Error("complexity buckets incomplete")
	}
	if len(vocab.PriorityCritical) == 0 || len(vocab.TypeBug) == 0 {
		t.Error("priority/type buckets incomplete")
	}
}

func TestLoadVocabularyOverridesSkills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	content := `skills:
  golang: ["go", "golang", "goroutine"]
priority_critical: ["blocker"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	vocab, err := LoadVocabulary(path)
	if err != nil {
		t.Fatalf("LoadVocabulary: %v", err)
	}

	if _, ok := vocab.Skills["golang"]; !ok {
		t.Error("file skills not applied")
	}
	if len(vocab.PriorityCritical) != 1 || vocab.PriorityCritical[0] != "blocker" {
		t.Errorf("priority_critical = %v, want [blocker]", vocab.PriorityCritical)
	}
	// Fields absent from the file keep their defaults.
	if len(vocab.ComplexityHigh) == 0 {
		t.Error("defaults not preserved for absent fields")
	}
}

func TestLoadVocabularyMissingFile(t *testing.T) {
	_, err := LoadVocabulary("/nonexistent/vocab.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"DEBUG", "DEBUG"},
		{"debug", "DEBUG"},
		{"WARNING", "WARN"},
		{"ERROR", "ERROR"},
		{"bogus", "INFO"},
		{"", "INFO"},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.in).String(); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
