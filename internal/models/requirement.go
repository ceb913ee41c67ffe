package models

// Ticket priorities.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Ticket types.
const (
	TypeBug         = "bug"
	TypeFeature     = "feature"
	TypeEnhancement = "enhancement"
	TypeTask        = "task"
)

// Requirement is the structured view of one ticket derived by the
// requirement extractor. It is computed fresh per analysis and never stored.
type Requirement struct {
	TicketID        string   `json:"ticket_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	RequiredSkills  []string `json:"required_skills"`
	ComplexityLevel int      `json:"complexity_level"` // 1-10
	EstimatedEffort int      `json:"estimated_effort"` // story points
	Priority        string   `json:"priority"`
	TicketType      string   `json:"ticket_type"`
	Deadline        *string  `json:"deadline,omitempty"`

	NeedsDesign       bool `json:"needs_design"`
	NeedsBackend      bool `json:"needs_backend"`
	NeedsFrontend     bool `json:"needs_frontend"`
	NeedsMobile       bool `json:"needs_mobile"`
	NeedsTesting      bool `json:"needs_testing"`
	NeedsLocalization bool `json:"needs_localization"`
}
