package models

import "time"

// Assignment is one row of assignment history. Completion fields stay nil
// until the ticket is closed out.
type Assignment struct {
	AssignmentID    string     `json:"assignment_id"`
	TicketID        string     `json:"ticket_id"`
	DeveloperID     string     `json:"developer_id"`
	AssignedAt      time.Time  `json:"assigned_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	SuccessRating   *float64   `json:"success_rating,omitempty"`   // 1-5
	ActualDays      *float64   `json:"actual_days,omitempty"`
	SkillMatchScore float64    `json:"skill_match_score"`
	WorkloadImpact  string     `json:"workload_impact"`
	Notes           string     `json:"notes,omitempty"`
}

// Open reports whether the assignment has not been completed yet.
func (a Assignment) Open() bool {
	return a.CompletedAt == nil
}
