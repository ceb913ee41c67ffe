package models

import "time"

// Report generation modes.
const (
	GeneratedLLM       = "llm"
	GeneratedHeuristic = "heuristic"
)

// Report is the full analysis output for one ticket: the generated questions
// and risks, the requirement summary, the routing recommendation, and a team
// workload snapshot. JSON-serializable for the CLI and HTTP API.
type Report struct {
	Ticket                  Ticket            `json:"ticket"`
	Requirement             Requirement       `json:"requirement"`
	SuggestedQuestions      []string          `json:"suggested_questions"`
	ClarificationsNeeded    []string          `json:"clarifications_needed"`
	TechnicalConsiderations []string          `json:"technical_considerations"`
	DesignQuestions         []string          `json:"design_questions"`
	BusinessQuestions       []string          `json:"business_questions"`
	RiskAreas               []string          `json:"risk_areas"`
	TestCases               []string          `json:"test_cases"`
	Recommendation          *Recommendation   `json:"recommendation,omitempty"`
	Workload                *WorkloadAnalysis `json:"workload_analysis,omitempty"`
	GeneratedBy             string            `json:"generated_by"` // GeneratedLLM or GeneratedHeuristic
	GeneratedAt             time.Time         `json:"generated_at"`
}
