// Package models defines data structures for the Ticketwise analyzer.
package models

import (
	"sort"
	"time"
)

// Availability states for a developer.
const (
	Available   = "available"
	Busy        = "busy"
	Unavailable = "unavailable"
)

// Developer is a team member eligible for ticket assignment.
type Developer struct {
	DeveloperID          string             `json:"developer_id"`
	Name                 string             `json:"name"`
	Email                string             `json:"email"`
	Skills               map[string]float64 `json:"skills"` // skill name -> proficiency 0-10
	Specializations      []string           `json:"specializations"`
	CurrentWorkload      int                `json:"current_workload"`
	MaxCapacity          int                `json:"max_capacity"`
	PerformanceScore     float64            `json:"performance_score"` // 0-10
	Availability         string             `json:"availability"`
	Timezone             string             `json:"timezone,omitempty"`
	PreferredTicketTypes []string           `json:"preferred_ticket_types,omitempty"`
	SuccessRate          float64            `json:"success_rate"`        // percentage 0-100
	AvgCompletionTime    float64            `json:"avg_completion_time"` // days
	LastActive           time.Time          `json:"last_active,omitempty"`
	Created              time.Time          `json:"created,omitempty"`
}

// Utilization returns current workload as a fraction of capacity.
// Returns 0 for zero capacity so callers never divide by zero.
func (d Developer) Utilization() float64 {
	if d.MaxCapacity <= 0 {
		return 0
	}
	return float64(d.CurrentWorkload) / float64(d.MaxCapacity)
}

// SkillRating pairs a skill name with its proficiency.
type SkillRating struct {
	Name        string  `json:"name"`
	Proficiency float64 `json:"proficiency"`
}

// TopSkills returns the developer's n strongest skills, proficiency descending.
// Ties are broken by skill name so output is stable.
func (d Developer) TopSkills(n int) []SkillRating {
	ratings := make([]SkillRating, 0, len(d.Skills))
	for name, prof := range d.Skills {
		ratings = append(ratings, SkillRating{Name: name, Proficiency: prof})
	}
	sort.Slice(ratings, func(i, j int) bool {
		if ratings[i].Proficiency != ratings[j].Proficiency {
			return ratings[i].Proficiency > ratings[j].Proficiency
		}
		return ratings[i].Name < ratings[j].Name
	})
	if n > 0 && len(ratings) > n {
		ratings = ratings[:n]
	}
	return ratings
}
