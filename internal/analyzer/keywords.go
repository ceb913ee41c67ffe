package analyzer

import (
	"strings"

	"github.com/jharward/ticketwise/internal/models"
)

// contentFlags captures which topics a ticket touches. The flags drive the
// heuristic question generators and the risk checks.
type contentFlags struct {
	Mobile               bool
	Performance          bool
	Accessibility        bool
	Integration          bool
	Security             bool
	Internationalization bool
	Animation            bool
	ErrorHandling        bool
	Data                 bool
	UserFlow             bool

	FigmaCount int
	Priority   string
}

func analyzeContent(ticket models.Ticket) contentFlags {
	text := strings.ToLower(ticket.Title + " " + ticket.Description)

	has := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(text, w) {
				return true
			}
		}
		return false
	}

	return contentFlags{
		Mobile:               has("mobile", "responsive", "tablet", "ios", "android"),
		Performance:          has("performance", "speed", "load", "optimization"),
		Accessibility:        has("accessibility", "a11y", "wcag", "screen reader"),
		Integration:          has("api", "integration", "third-party", "external"),
		Security:             has("security", "authentication", "authorization", "encryption"),
		Internationalization: has("i18n", "internationalization", "localization", "multi-language"),
		Animation:            has("animation", "transition", "motion", "interaction"),
		ErrorHandling:        has("error", "exception", "fallback", "edge case"),
		Data:                 has("data", "database", "storage", "cache"),
		UserFlow:             has("user flow", "workflow", "process", "journey"),
		FigmaCount:           len(ticket.FigmaLinks),
		Priority:             ticket.Priority,
	}
}

func highPriority(priority string) bool {
	return priority == models.PriorityHigh || priority == models.PriorityCritical
}
