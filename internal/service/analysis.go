package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jharward/ticketwise/internal/analyzer"
	"github.com/jharward/ticketwise/internal/metrics"
	"github.com/jharward/ticketwise/internal/models"
)

// AnalysisService produces full ticket reports: analyzer output plus the
// routing recommendation and a team workload snapshot.
type AnalysisService struct {
	analyzer  *analyzer.Analyzer
	routing   *RoutingService
	tickets   *TicketService
	collector *metrics.Collector
	logger    *slog.Logger
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(a *analyzer.Analyzer, routing *RoutingService, tickets *TicketService, collector *metrics.Collector, logger *slog.Logger) *AnalysisService {
	return &AnalysisService{
		analyzer:  a,
		routing:   routing,
		tickets:   tickets,
		collector: collector,
		logger:    logger,
	}
}

// AnalyzeOptions controls which optional sections Analyze attaches.
type AnalyzeOptions struct {
	// Recommend attaches the developer recommendation and workload snapshot.
	// Requires at least one stored developer to be meaningful.
	Recommend bool
	// Store persists the ticket before analysis.
	Store bool
}

// Analyze runs the full analysis pipeline for a ticket.
func (s *AnalysisService) Analyze(ctx context.Context, ticket models.Ticket, opts AnalyzeOptions) (*models.Report, error) {
	if opts.Store {
		stored, _, err := s.tickets.Store(ctx, ticket)
		if err != nil {
			return nil, err
		}
		ticket = *stored
	}

	req := s.routing.Extract(ticket)

	var rep models.Report
	err := s.collector.Time(metrics.OpAnalyze, func() error {
		rep = s.analyzer.Analyze(ctx, ticket, req)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if opts.Recommend {
		rec, _, err := s.routing.Recommend(ctx, ticket)
		if err != nil {
			return nil, err
		}
		rep.Recommendation = rec

		workload, _, err := s.routing.TeamAnalytics(ctx)
		if err != nil {
			return nil, err
		}
		rep.Workload = workload
	}

	s.logger.Info("ticket analyzed",
		"ticket", ticket.TicketID,
		"generated_by", rep.GeneratedBy,
		"questions", len(rep.SuggestedQuestions),
		"risks", len(rep.RiskAreas))
	return &rep, nil
}

// IngestJira parses a Jira payload, stores the ticket, and analyzes it.
// Used by the webhook endpoint.
func (s *AnalysisService) IngestJira(ctx context.Context, payload JiraPayload) (*models.Report, error) {
	ticket, err := ParseJiraPayload(payload)
	if err != nil {
		return nil, fmt.Errorf("parse jira payload: %w", err)
	}

	var rep *models.Report
	err = s.collector.Time(metrics.OpWebhook, func() error {
		var analyzeErr error
		rep, analyzeErr = s.Analyze(ctx, ticket, AnalyzeOptions{Store: true, Recommend: true})
		return analyzeErr
	})
	if err != nil {
		return nil, err
	}
	return rep, nil
}
