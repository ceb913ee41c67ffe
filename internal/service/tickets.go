package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jharward/ticketwise/internal/analyzer"
	"github.com/jharward/ticketwise/internal/db"
	"github.com/jharward/ticketwise/internal/models"
)

// TicketService handles ticket storage and Jira payload ingestion.
type TicketService struct {
	db     *db.Client
	logger *slog.Logger
}

// NewTicketService creates a new ticket service.
func NewTicketService(dbClient *db.Client, logger *slog.Logger) *TicketService {
	return &TicketService{db: dbClient, logger: logger}
}

// Store validates and upserts a ticket.
func (s *TicketService) Store(ctx context.Context, ticket models.Ticket) (*models.Ticket, bool, error) {
	if ticket.TicketID == "" {
		return nil, false, fmt.Errorf("ticket id is required")
	}
	if ticket.Title == "" {
		return nil, false, fmt.Errorf("ticket title is required")
	}
	if ticket.Priority != "" && !models.ValidPriority(ticket.Priority) {
		return nil, false, fmt.Errorf("invalid priority %q", ticket.Priority)
	}
	if len(ticket.FigmaLinks) == 0 {
		ticket.FigmaLinks = analyzer.ExtractFigmaLinks(ticket.Title + " " + ticket.Description)
	}

	stored, wasCreated, err := s.db.QueryUpsertTicket(ctx, ticket)
	if err != nil {
		return nil, false, fmt.Errorf("upsert ticket: %w", err)
	}
	s.logger.Info("ticket stored", "ticket", ticket.TicketID, "created", wasCreated)
	return stored, wasCreated, nil
}

// Get returns a ticket or db.ErrNotFound.
func (s *TicketService) Get(ctx context.Context, id string) (*models.Ticket, error) {
	ticket, err := s.db.QueryGetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, fmt.Errorf("ticket %s: %w", id, db.ErrNotFound)
	}
	return ticket, nil
}

// List returns tickets, most recently updated first.
func (s *TicketService) List(ctx context.Context, limit int) ([]models.Ticket, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.db.QueryListTickets(ctx, limit)
}

// Search performs a case-insensitive substring search.
func (s *TicketService) Search(ctx context.Context, term string, limit int) ([]models.Ticket, error) {
	if strings.TrimSpace(term) == "" {
		return s.List(ctx, limit)
	}
	if limit <= 0 {
		limit = 50
	}
	return s.db.QuerySearchTickets(ctx, term, limit)
}

// Delete removes a ticket and its assignment history. Deleting a missing
// ticket is not an error.
func (s *TicketService) Delete(ctx context.Context, id string) (bool, error) {
	count, err := s.db.QueryDeleteTicket(ctx, id)
	if err != nil {
		return false, err
	}
	if count > 0 {
		s.logger.Info("ticket deleted", "ticket", id)
	}
	return count > 0, nil
}

// DeleteAll wipes the ticket store and all assignment history. Returns how
// many tickets were removed.
func (s *TicketService) DeleteAll(ctx context.Context) (int, error) {
	count, err := s.db.QueryDeleteAllTickets(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Warn("all tickets deleted", "count", count)
	return count, nil
}

// Stats summarizes the ticket store.
func (s *TicketService) Stats(ctx context.Context) (*models.TicketStats, error) {
	return s.db.QueryTicketStats(ctx)
}

// History returns assignment history, optionally filtered to one ticket.
func (s *TicketService) History(ctx context.Context, ticketID string, limit int) ([]models.Assignment, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.db.QueryListAssignments(ctx, ticketID, limit)
}

// JiraPayload is the subset of a Jira webhook/issue payload we ingest.
type JiraPayload struct {
	Key    string `json:"key"`
	Fields struct {
		Summary     string `json:"summary"`
		Description string `json:"description"`
		Priority    struct {
			Name string `json:"name"`
		} `json:"priority"`
		Assignee struct {
			DisplayName string `json:"displayName"`
		} `json:"assignee"`
		Reporter struct {
			DisplayName string `json:"displayName"`
		} `json:"reporter"`
		Labels     []string `json:"labels"`
		Components []struct {
			Name string `json:"name"`
		} `json:"components"`
	} `json:"fields"`
	Comments []struct {
		Body string `json:"body"`
	} `json:"comments"`
}

// ParseJiraPayload converts a Jira issue payload into a ticket. Figma links
// are extracted from the description and all comment bodies.
func ParseJiraPayload(payload JiraPayload) (models.Ticket, error) {
	if payload.Key == "" {
		return models.Ticket{}, fmt.Errorf("jira payload missing issue key")
	}

	allText := payload.Fields.Description
	for _, comment := range payload.Comments {
		allText += " " + comment.Body
	}

	components := make([]string, 0, len(payload.Fields.Components))
	for _, component := range payload.Fields.Components {
		components = append(components, component.Name)
	}

	return models.Ticket{
		TicketID:    payload.Key,
		Key:         payload.Key,
		Title:       payload.Fields.Summary,
		Description: payload.Fields.Description,
		Priority:    normalizeJiraPriority(payload.Fields.Priority.Name),
		Assignee:    payload.Fields.Assignee.DisplayName,
		Reporter:    payload.Fields.Reporter.DisplayName,
		Labels:      payload.Fields.Labels,
		Components:  components,
		FigmaLinks:  analyzer.ExtractFigmaLinks(allText),
	}, nil
}

// normalizeJiraPriority maps Jira priority names onto our enum. Unknown
// names pass through lowercased so nothing is silently dropped.
func normalizeJiraPriority(name string) string {
	switch strings.ToLower(name) {
	case "":
		return ""
	case "highest", "blocker", "critical":
		return models.PriorityCritical
	case "high", "major":
		return models.PriorityHigh
	case "medium", "normal":
		return models.PriorityMedium
	case "low", "lowest", "minor", "trivial":
		return models.PriorityLow
	default:
		return strings.ToLower(name)
	}
}
