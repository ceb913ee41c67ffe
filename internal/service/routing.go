// Package service provides business logic for Ticketwise operations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jharward/ticketwise/internal/config"
	"github.com/jharward/ticketwise/internal/db"
	"github.com/jharward/ticketwise/internal/metrics"
	"github.com/jharward/ticketwise/internal/models"
	"github.com/jharward/ticketwise/internal/routing"
)

// routingStore is the slice of db.Client the routing service needs.
type routingStore interface {
	QueryListDevelopers(ctx context.Context) ([]models.Developer, error)
	QueryGetDeveloper(ctx context.Context, id string) (*models.Developer, error)
	QueryUpsertDeveloper(ctx context.Context, dev models.Developer) (*models.Developer, bool, error)
	QueryRecordAssignment(ctx context.Context, a models.Assignment) error
	QueryFindOpenAssignment(ctx context.Context, ticketID string) (*models.Assignment, error)
	QueryCompleteAssignment(ctx context.Context, assignmentID string, successRating, actualDays float64, dev models.Developer) error
}

// RoutingService handles developer recommendation, assignment, and completion
// feedback on top of the pure routing core.
type RoutingService struct {
	db        routingStore
	extractor *routing.Extractor
	collector *metrics.Collector
	logger    *slog.Logger
}

// NewRoutingService creates a new routing service.
func NewRoutingService(store routingStore, vocab config.Vocabulary, collector *metrics.Collector, logger *slog.Logger) *RoutingService {
	return &RoutingService{
		db:        store,
		extractor: routing.NewExtractor(vocab),
		collector: collector,
		logger:    logger,
	}
}

// Extract derives the structured requirement for a ticket.
func (s *RoutingService) Extract(ticket models.Ticket) models.Requirement {
	return s.extractor.Extract(ticket)
}

// Recommend scores the full roster against the ticket's requirement and
// returns the winner with alternates, reasoning, and risks.
func (s *RoutingService) Recommend(ctx context.Context, ticket models.Ticket) (*models.Recommendation, models.Requirement, error) {
	req := s.extractor.Extract(ticket)

	roster, err := s.db.QueryListDevelopers(ctx)
	if err != nil {
		s.collector.RecordError(metrics.OpDBQuery)
		return nil, req, fmt.Errorf("load roster: %w", err)
	}

	start := time.Now()
	rec := routing.Select(req, roster)
	s.collector.RecordTiming(metrics.OpScoring, time.Since(start))

	s.logger.Info("recommendation computed",
		"ticket", ticket.TicketID,
		"developer", rec.RecommendedDeveloper,
		"confidence", rec.ConfidenceScore,
		"candidates", len(roster))
	return &rec, req, nil
}

// Assign records an assignment for a ticket. With an empty developerID the
// recommendation winner is used; an explicit developerID overrides it.
func (s *RoutingService) Assign(ctx context.Context, ticket models.Ticket, developerID string) (*models.Assignment, *models.Recommendation, error) {
	rec, req, err := s.Recommend(ctx, ticket)
	if err != nil {
		return nil, nil, err
	}

	skillScore := rec.SkillMatchScore
	impact := rec.WorkloadImpact
	if developerID == "" {
		developerID = rec.RecommendedDeveloper
	} else if developerID != rec.RecommendedDeveloper {
		// Override: the recorded scores describe the developer who actually
		// gets the ticket, not the recommendation winner.
		dev, err := s.db.QueryGetDeveloper(ctx, developerID)
		if err != nil {
			return nil, rec, fmt.Errorf("load developer: %w", err)
		}
		if dev == nil {
			return nil, rec, fmt.Errorf("developer %s: %w", developerID, db.ErrNotFound)
		}
		score := routing.Score(*dev, req)
		skillScore = score.Skill
		impact = score.Impact
	}
	if developerID == models.NoDeveloper {
		return nil, rec, fmt.Errorf("no developer available for ticket %s", ticket.TicketID)
	}

	assignment := models.Assignment{
		AssignmentID:    uuid.New().String()[:8], // Short ID for convenience
		TicketID:        ticket.TicketID,
		DeveloperID:     developerID,
		AssignedAt:      time.Now().UTC(),
		SkillMatchScore: skillScore,
		WorkloadImpact:  impact,
	}
	if err := s.db.QueryRecordAssignment(ctx, assignment); err != nil {
		s.collector.RecordError(metrics.OpDBQuery)
		return nil, rec, fmt.Errorf("record assignment: %w", err)
	}

	s.logger.Info("ticket assigned",
		"ticket", ticket.TicketID,
		"developer", developerID,
		"assignment", assignment.AssignmentID)
	return &assignment, rec, nil
}

// Complete closes the ticket's open assignment and feeds the outcome back
// into the developer's performance profile. Returns db.ErrNoOpenAssignment
// when the ticket has no open assignment.
func (s *RoutingService) Complete(ctx context.Context, ticketID string, successRating, actualDays float64) (*models.Developer, error) {
	if successRating < 1 || successRating > 5 {
		return nil, fmt.Errorf("success rating %.1f out of range 1-5", successRating)
	}

	assignment, err := s.db.QueryFindOpenAssignment(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("find open assignment: %w", err)
	}
	if assignment == nil {
		return nil, fmt.Errorf("ticket %s: %w", ticketID, db.ErrNoOpenAssignment)
	}

	dev, err := s.db.QueryGetDeveloper(ctx, assignment.DeveloperID)
	if err != nil {
		return nil, fmt.Errorf("load developer: %w", err)
	}
	if dev == nil {
		return nil, fmt.Errorf("developer %s: %w", assignment.DeveloperID, db.ErrNotFound)
	}

	// The completion stamp and the feedback write-back travel in one
	// transaction, so a failure cannot leave the assignment closed while the
	// developer's workload is still counting it.
	routing.ApplyCompletion(dev, successRating, actualDays)
	if err := s.db.QueryCompleteAssignment(ctx, assignment.AssignmentID, successRating, actualDays, *dev); err != nil {
		return nil, fmt.Errorf("complete assignment: %w", err)
	}

	s.logger.Info("ticket completed",
		"ticket", ticketID,
		"developer", dev.DeveloperID,
		"rating", successRating,
		"days", actualDays,
		"new_success_rate", dev.SuccessRate)
	return dev, nil
}

// TeamAnalytics returns the workload analysis together with the roster it
// was computed from.
func (s *RoutingService) TeamAnalytics(ctx context.Context) (*models.WorkloadAnalysis, []models.Developer, error) {
	roster, err := s.db.QueryListDevelopers(ctx)
	if err != nil {
		s.collector.RecordError(metrics.OpDBQuery)
		return nil, nil, fmt.Errorf("load roster: %w", err)
	}

	analysis := routing.AnalyzeWorkload(roster)
	return &analysis, roster, nil
}

// AddDeveloper validates and stores a developer profile.
func (s *RoutingService) AddDeveloper(ctx context.Context, dev models.Developer) (*models.Developer, bool, error) {
	if dev.DeveloperID == "" {
		return nil, false, fmt.Errorf("developer id is required")
	}
	if dev.Availability == "" {
		dev.Availability = models.Available
	}
	if !models.ValidAvailability(dev.Availability) {
		return nil, false, fmt.Errorf("invalid availability %q", dev.Availability)
	}
	if dev.MaxCapacity <= 0 {
		dev.MaxCapacity = 5
	}

	stored, wasCreated, err := s.db.QueryUpsertDeveloper(ctx, dev)
	if err != nil {
		return nil, false, fmt.Errorf("upsert developer: %w", err)
	}
	s.logger.Info("developer stored", "developer", dev.DeveloperID, "created", wasCreated)
	return stored, wasCreated, nil
}

// ListDevelopers returns the roster ordered by developer id.
func (s *RoutingService) ListDevelopers(ctx context.Context) ([]models.Developer, error) {
	return s.db.QueryListDevelopers(ctx)
}
