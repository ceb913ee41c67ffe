package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jharward/ticketwise/internal/models"
	"github.com/jharward/ticketwise/internal/service"
)

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// loadTicketFile reads a ticket from a JSON file. Files exported from Jira
// (with a "fields" object) are parsed as Jira payloads.
func loadTicketFile(path string) (models.Ticket, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Ticket{}, fmt.Errorf("read ticket file: %w", err)
	}
	return parseTicketJSON(data)
}

func parseTicketJSON(data []byte) (models.Ticket, error) {
	var probe struct {
		Fields *json.RawMessage `json:"fields"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return models.Ticket{}, fmt.Errorf("parse ticket JSON: %w", err)
	}

	if probe.Fields != nil {
		return parseJiraTicketJSON(data)
	}

	var ticket models.Ticket
	if err := json.Unmarshal(data, &ticket); err != nil {
		return models.Ticket{}, fmt.Errorf("parse ticket JSON: %w", err)
	}
	if ticket.TicketID == "" {
		return models.Ticket{}, fmt.Errorf("ticket JSON missing ticket_id")
	}
	return ticket, nil
}

// parseJiraTicketJSON parses a raw Jira issue payload into a ticket.
func parseJiraTicketJSON(data []byte) (models.Ticket, error) {
	var payload service.JiraPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return models.Ticket{}, fmt.Errorf("parse jira JSON: %w", err)
	}
	return service.ParseJiraPayload(payload)
}

// parseSkills converts "python=9,react=6.5" into a skill map.
func parseSkills(spec string) (map[string]float64, error) {
	skills := make(map[string]float64)
	if spec == "" {
		return skills, nil
	}
	for _, pair := range strings.Split(spec, ",") {
		name, value, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found {
			return nil, fmt.Errorf("invalid skill %q (expected name=proficiency)", pair)
		}
		prof, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid proficiency for %q: %w", name, err)
		}
		if prof < 0 || prof > 10 {
			return nil, fmt.Errorf("proficiency for %q must be 0-10", name)
		}
		skills[strings.ToLower(name)] = prof
	}
	return skills, nil
}

// printRecommendation renders a recommendation as readable text.
func printRecommendation(rec *models.Recommendation) {
	if rec.RecommendedDeveloper == models.NoDeveloper {
		fmt.Println("No developer available.")
		return
	}

	name := rec.DeveloperName
	if name == "" {
		name = rec.RecommendedDeveloper
	}
	fmt.Printf("Recommended: %s (%s)\n", name, rec.RecommendedDeveloper)
	fmt.Printf("  Confidence:     %.2f\n", rec.ConfidenceScore)
	fmt.Printf("  Estimated time: %d days\n", rec.EstimatedCompletionTime)
	fmt.Printf("  Workload impact: %s\n", rec.WorkloadImpact)

	if len(rec.Reasoning) > 0 {
		fmt.Println("  Reasoning:")
		for _, reason := range rec.Reasoning {
			fmt.Printf("    - %s\n", reason)
		}
	}
	if len(rec.SkillGaps) > 0 {
		fmt.Printf("  Skill gaps: %s\n", strings.Join(rec.SkillGaps, ", "))
	}
	if len(rec.RiskFactors) > 0 {
		fmt.Println("  Risks:")
		for _, risk := range rec.RiskFactors {
			fmt.Printf("    - %s\n", risk)
		}
	}
	if len(rec.Alternatives) > 0 {
		fmt.Println("  Alternatives:")
		for _, alt := range rec.Alternatives {
			fmt.Printf("    - %s (%.2f)\n", alt.DeveloperID, alt.Score)
		}
	}
}

// printSection prints a titled bullet list, skipping empty sections.
func printSection(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", title)
	for _, item := range items {
		fmt.Printf("  - %s\n", item)
	}
}
