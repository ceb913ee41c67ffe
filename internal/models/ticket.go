package models

import "time"

// Ticket is a stored Jira-style ticket record.
// Only id, title, and description are required on ingest; everything else
// defaults safely.
type Ticket struct {
	TicketID    string    `json:"ticket_id"`
	Key         string    `json:"key,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority,omitempty"`
	Assignee    string    `json:"assignee,omitempty"`
	Reporter    string    `json:"reporter,omitempty"`
	Labels      []string  `json:"labels,omitempty"`
	Components  []string  `json:"components,omitempty"`
	FigmaLinks  []string  `json:"figma_links,omitempty"`
	Deadline    *string   `json:"deadline,omitempty"`
	Created     time.Time `json:"created,omitempty"`
	Updated     time.Time `json:"updated,omitempty"`
}

// TicketStats summarizes the ticket store.
type TicketStats struct {
	TotalTickets         int            `json:"total_tickets"`
	TotalAssignments     int            `json:"total_assignments"`
	OpenAssignments      int            `json:"open_assignments"`
	PriorityDistribution map[string]int `json:"priority_distribution"`
}
