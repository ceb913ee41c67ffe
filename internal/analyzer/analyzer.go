package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jharward/ticketwise/internal/models"
)

const systemPrompt = `You are a senior business analyst reviewing software tickets.
Answer with a plain bullet list, one item per line, no headings and no numbering.`

// generator is the slice of llm.Model the analyzer needs.
type generator interface {
	GenerateWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Analyzer produces analysis reports for tickets. With a model it asks the
// LLM for the question sections; without one (or when a call fails) it falls
// back to the keyword heuristics.
type Analyzer struct {
	model  generator
	logger *slog.Logger
}

// New creates an analyzer. model may be nil for heuristics-only operation.
func New(model generator, logger *slog.Logger) *Analyzer {
	return &Analyzer{model: model, logger: logger}
}

// Analyze builds the report sections for a ticket. The routing recommendation
// and workload snapshot are attached by the caller; rep.Recommendation and
// rep.Workload stay nil here.
func (a *Analyzer) Analyze(ctx context.Context, ticket models.Ticket, req models.Requirement) models.Report {
	if len(ticket.FigmaLinks) == 0 {
		ticket.FigmaLinks = ExtractFigmaLinks(ticket.Title + " " + ticket.Description)
	}
	flags := analyzeContent(ticket)

	rep := models.Report{
		Ticket:                  ticket,
		Requirement:             req,
		ClarificationsNeeded:    clarifications(ticket, flags),
		TechnicalConsiderations: technicalConsiderations(flags),
		RiskAreas:               riskAreas(flags),
		TestCases:               testCases(ticket, flags),
		GeneratedBy:             models.GeneratedHeuristic,
		GeneratedAt:             time.Now().UTC(),
	}

	if a.model != nil {
		if ok := a.generateQuestions(ctx, ticket, &rep); ok {
			rep.GeneratedBy = models.GeneratedLLM
			return rep
		}
	}

	rep.SuggestedQuestions = generalQuestions(ticket, flags)
	rep.DesignQuestions = designQuestions(flags)
	rep.BusinessQuestions = businessQuestions(flags)
	return rep
}

// generateQuestions fills the three question sections from the LLM. Returns
// false on the first failed call so the caller can fall back to heuristics.
func (a *Analyzer) generateQuestions(ctx context.Context, ticket models.Ticket, rep *models.Report) bool {
	sections := []struct {
		name   string
		prompt string
		out    *[]string
	}{
		{"general", "List the most important clarifying questions to ask the client before implementation starts.", &rep.SuggestedQuestions},
		{"design", "List the UI/UX and design questions that need answers before implementation starts.", &rep.DesignQuestions},
		{"business", "List the business and product questions that need answers before implementation starts.", &rep.BusinessQuestions},
	}

	for _, section := range sections {
		response, err := a.model.GenerateWithSystem(ctx, systemPrompt, ticketPrompt(ticket, section.prompt))
		if err != nil {
			a.logger.Warn("llm generation failed, falling back to heuristics",
				"section", section.name, "ticket", ticket.TicketID, "error", err)
			return false
		}
		items := parseBullets(response)
		if len(items) == 0 {
			a.logger.Warn("llm returned no usable items, falling back to heuristics",
				"section", section.name, "ticket", ticket.TicketID)
			return false
		}
		*section.out = items
	}
	return true
}

func ticketPrompt(ticket models.Ticket, instruction string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ticket %s: %s\n\n", ticket.TicketID, ticket.Title)
	fmt.Fprintf(&b, "Description:\n%s\n", ticket.Description)
	if ticket.Priority != "" {
		fmt.Fprintf(&b, "\nPriority: %s\n", ticket.Priority)
	}
	if len(ticket.FigmaLinks) > 0 {
		fmt.Fprintf(&b, "Design references: %s\n", strings.Join(ticket.FigmaLinks, ", "))
	}
	fmt.Fprintf(&b, "\n%s", instruction)
	return b.String()
}

// parseBullets extracts list items from an LLM response. Accepts "-", "*",
// and "1." style prefixes and skips headings and blank lines.
func parseBullets(response string) []string {
	var items []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "* ")
		if i := strings.IndexByte(line, '.'); i > 0 && i <= 2 && isDigits(line[:i]) {
			line = strings.TrimSpace(line[i+1:])
		}
		if line == "" || strings.HasSuffix(line, ":") {
			continue
		}
		items = append(items, line)
	}
	return items
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
