// Package routing implements the ticket routing core: requirement extraction
// from ticket text, candidate scoring, developer selection, team workload
// analysis, and the performance feedback math applied on completion.
//
// Everything in this package is a pure function of its inputs. Persistence
// and roster loading live in the service and db packages.
package routing

import (
	"sort"
	"strings"

	"github.com/jharward/ticketwise/internal/config"
	"github.com/jharward/ticketwise/internal/models"
)

// Extractor derives a structured Requirement from freeform ticket text using
// keyword tables. The vocabulary is data; the matching rules are fixed:
// lower-cased substring containment, first matching bucket wins.
type Extractor struct {
	vocab config.Vocabulary
}

// NewExtractor creates an extractor over the given vocabulary.
func NewExtractor(vocab config.Vocabulary) *Extractor {
	return &Extractor{vocab: vocab}
}

// Extract analyzes a ticket and returns its requirement record. It is a
// total function: any input, including empty strings, yields a fully
// populated record with defaults.
func (e *Extractor) Extract(ticket models.Ticket) models.Requirement {
	content := strings.ToLower(ticket.Title + " " + ticket.Description)

	req := models.Requirement{
		TicketID:    ticket.TicketID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Deadline:    ticket.Deadline,
	}

	// Skill detection: any keyword hit adds the skill, no weighting by count.
	// Iterate sorted so required_skills order is stable across runs.
	for _, skill := range sortedKeys(e.vocab.Skills) {
		if containsAny(content, e.vocab.Skills[skill]) {
			req.RequiredSkills = append(req.RequiredSkills, skill)
		}
	}

	// Complexity: high bucket checked first, then medium, then low.
	switch {
	case containsAny(content, e.vocab.ComplexityHigh):
		req.ComplexityLevel = 8
	case containsAny(content, e.vocab.ComplexityMedium):
		req.ComplexityLevel = 5
	case containsAny(content, e.vocab.ComplexityLow):
		req.ComplexityLevel = 2
	default:
		req.ComplexityLevel = 5
	}

	req.EstimatedEffort = estimateEffort(req.ComplexityLevel, len(content))

	switch {
	case containsAny(content, e.vocab.TypeBug):
		req.TicketType = models.TypeBug
	case containsAny(content, e.vocab.TypeFeature):
		req.TicketType = models.TypeFeature
	case containsAny(content, e.vocab.TypeEnhancement):
		req.TicketType = models.TypeEnhancement
	default:
		req.TicketType = models.TypeTask
	}

	switch {
	case containsAny(content, e.vocab.PriorityCritical):
		req.Priority = models.PriorityCritical
	case containsAny(content, e.vocab.PriorityHigh):
		req.Priority = models.PriorityHigh
	case containsAny(content, e.vocab.PriorityLow):
		req.Priority = models.PriorityLow
	default:
		req.Priority = models.PriorityMedium
	}

	// Capability flags are independent checks, not mutually exclusive.
	req.NeedsDesign = containsAny(content, e.vocab.Design)
	req.NeedsBackend = containsAny(content, e.vocab.Backend)
	req.NeedsFrontend = containsAny(content, e.vocab.Frontend)
	req.NeedsMobile = containsAny(content, e.vocab.Mobile)
	req.NeedsTesting = containsAny(content, e.vocab.Testing)
	req.NeedsLocalization = containsAny(content, e.vocab.Localization)

	return req
}

// estimateEffort derives story points from complexity and content length.
// Long tickets push effort up, short ones pull it down.
func estimateEffort(complexity, contentLength int) int {
	switch {
	case contentLength > 1000:
		return min(8, complexity+2)
	case contentLength > 500:
		return min(5, complexity+1)
	default:
		return max(1, complexity-1)
	}
}

func containsAny(content string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(content, kw) {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
