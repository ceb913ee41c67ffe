package models

// NoDeveloper is the sentinel developer id returned when selection finds no
// candidate (empty roster).
const NoDeveloper = "none"

// Workload impact categories.
const (
	ImpactLow     = "low"
	ImpactMedium  = "medium"
	ImpactHigh    = "high"
	ImpactUnknown = "unknown"
)

// ScoreBreakdown holds the sub-scores behind one candidate's final score.
type ScoreBreakdown struct {
	Skill        float64 `json:"skill"`
	Availability float64 `json:"availability"`
	Performance  float64 `json:"performance"`
	Final        float64 `json:"final"`
	Impact       string  `json:"workload_impact"`
}

// Alternate is a runner-up candidate with its score.
type Alternate struct {
	DeveloperID string  `json:"developer_id"`
	Name        string  `json:"name,omitempty"`
	Score       float64 `json:"score"`
}

// Recommendation is the output of one selection run. It is ephemeral; only
// the resulting assignment is persisted.
type Recommendation struct {
	TicketID                string      `json:"ticket_id"`
	RecommendedDeveloper    string      `json:"recommended_developer"`
	DeveloperName           string      `json:"developer_name,omitempty"`
	ConfidenceScore         float64     `json:"confidence_score"` // 0-1
	Reasoning               []string    `json:"reasoning"`
	Alternatives            []Alternate `json:"alternatives"`
	EstimatedCompletionTime int         `json:"estimated_completion_time"` // days
	RiskFactors             []string    `json:"risk_factors"`
	SkillGaps               []string    `json:"skill_gaps"`
	WorkloadImpact          string      `json:"workload_impact"`
	SkillMatchScore         float64     `json:"skill_match_score"`
}

// ReassignmentSuggestion proposes moving work between developers.
type ReassignmentSuggestion struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Reason string `json:"reason"`
}

// WorkloadAnalysis summarizes workload distribution across the roster.
type WorkloadAnalysis struct {
	TotalDevelopers          int                      `json:"total_developers"`
	TotalCapacity            int                      `json:"total_capacity"`
	CurrentUtilization       float64                  `json:"current_utilization"`
	OverloadedDevelopers     []string                 `json:"overloaded_developers"`
	UnderutilizedDevelopers  []string                 `json:"underutilized_developers"`
	BalancedDevelopers       []string                 `json:"balanced_developers"`
	RecommendedReassignments []ReassignmentSuggestion `json:"recommended_reassignments"`
	CapacityForecast         map[string]int           `json:"capacity_forecast"`
}
