package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jharward/ticketwise/internal/db"
	"github.com/jharward/ticketwise/internal/models"
	"github.com/jharward/ticketwise/internal/service"
)

// webhookTimeout bounds the background processing of one Jira payload.
const webhookTimeout = 2 * time.Minute

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"version":        s.version,
		"uptime_seconds": time.Since(s.startTime).Seconds(),
	})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var ticket models.Ticket
	if err := c.ShouldBindJSON(&ticket); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket payload: " + err.Error()})
		return
	}

	opts := service.AnalyzeOptions{
		Recommend: c.DefaultQuery("recommend", "true") == "true",
		Store:     c.Query("store") == "true",
	}
	report, err := s.analysis.Analyze(c.Request.Context(), ticket, opts)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.hub.Publish(Event{Type: EventTicketAnalyzed, TicketID: ticket.TicketID, Detail: report.GeneratedBy})
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleRecommend(c *gin.Context) {
	var ticket models.Ticket
	if err := c.ShouldBindJSON(&ticket); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket payload: " + err.Error()})
		return
	}

	rec, req, err := s.routing.Recommend(c.Request.Context(), ticket)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendation": rec, "requirement": req})
}

type assignRequest struct {
	Ticket      models.Ticket `json:"ticket"`
	DeveloperID string        `json:"developer_id"`
}

func (s *Server) handleAssign(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assign payload: " + err.Error()})
		return
	}
	if req.Ticket.TicketID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticket.ticket_id is required"})
		return
	}

	assignment, rec, err := s.routing.Assign(c.Request.Context(), req.Ticket, req.DeveloperID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.hub.Publish(Event{Type: EventTicketAssigned, TicketID: assignment.TicketID, DeveloperID: assignment.DeveloperID})
	c.JSON(http.StatusCreated, gin.H{"assignment": assignment, "recommendation": rec})
}

type completeRequest struct {
	TicketID      string  `json:"ticket_id"`
	SuccessRating float64 `json:"success_rating"`
	ActualDays    float64 `json:"actual_days"`
}

func (s *Server) handleComplete(c *gin.Context) {
	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid complete payload: " + err.Error()})
		return
	}
	if req.TicketID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticket_id is required"})
		return
	}

	dev, err := s.routing.Complete(c.Request.Context(), req.TicketID, req.SuccessRating, req.ActualDays)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.hub.Publish(Event{Type: EventTicketCompleted, TicketID: req.TicketID, DeveloperID: dev.DeveloperID})
	c.JSON(http.StatusOK, gin.H{"developer": dev})
}

func (s *Server) handleTeam(c *gin.Context) {
	analysis, roster, err := s.routing.TeamAnalytics(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workload": analysis, "developers": roster})
}

func (s *Server) handleWorkload(c *gin.Context) {
	analysis, _, err := s.routing.TeamAnalytics(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (s *Server) handleListDevelopers(c *gin.Context) {
	roster, err := s.routing.ListDevelopers(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"developers": roster})
}

func (s *Server) handleAddDeveloper(c *gin.Context) {
	var dev models.Developer
	if err := c.ShouldBindJSON(&dev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid developer payload: " + err.Error()})
		return
	}

	stored, wasCreated, err := s.routing.AddDeveloper(c.Request.Context(), dev)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusOK
	if wasCreated {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"developer": stored})
}

func (s *Server) handleListTickets(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	var (
		tickets []models.Ticket
		err     error
	)
	if term := c.Query("q"); term != "" {
		tickets, err = s.tickets.Search(c.Request.Context(), term, limit)
	} else {
		tickets, err = s.tickets.List(c.Request.Context(), limit)
	}
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

func (s *Server) handleGetTicket(c *gin.Context) {
	ticket, err := s.tickets.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (s *Server) handleDeleteTicket(c *gin.Context) {
	deleted, err := s.tickets.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (s *Server) handleStats(c *gin.Context) {
	ticketStats, err := s.tickets.Stats(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tickets": ticketStats,
		"runtime": s.collector.Snapshot(),
	})
}

// handleJiraWebhook accepts the payload immediately and processes it in the
// background so Jira's delivery timeout is never hit.
func (s *Server) handleJiraWebhook(c *gin.Context) {
	var payload service.JiraPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid jira payload: " + err.Error()})
		return
	}
	if payload.Key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "jira payload missing issue key"})
		return
	}

	s.hub.Publish(Event{Type: EventWebhookReceived, TicketID: payload.Key})
	go s.processWebhook(payload)

	c.JSON(http.StatusAccepted, gin.H{"accepted": true, "key": payload.Key})
}

func (s *Server) processWebhook(payload service.JiraPayload) {
	ctx, cancel := context.WithTimeout(context.Background(), webhookTimeout)
	defer cancel()

	report, err := s.analysis.IngestJira(ctx, payload)
	if err != nil {
		s.logger.Error("webhook processing failed", "key", payload.Key, "error", err)
		return
	}

	event := Event{Type: EventTicketAnalyzed, TicketID: payload.Key, Detail: report.GeneratedBy}
	if report.Recommendation != nil {
		event.DeveloperID = report.Recommendation.RecommendedDeveloper
	}
	s.hub.Publish(event)
}

// respondError maps service errors onto HTTP status codes.
func (s *Server) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, db.ErrNotFound), errors.Is(err, db.ErrNoOpenAssignment):
		status = http.StatusNotFound
	case errors.Is(err, db.ErrAlreadyExists), errors.Is(err, db.ErrTransactionConflict):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
