// Package server provides the HTTP API, Jira webhook, and websocket event
// stream for Ticketwise.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jharward/ticketwise/internal/metrics"
	"github.com/jharward/ticketwise/internal/models"
	"github.com/jharward/ticketwise/internal/service"
)

// routingAPI is the slice of service.RoutingService the server needs.
type routingAPI interface {
	Recommend(ctx context.Context, ticket models.Ticket) (*models.Recommendation, models.Requirement, error)
	Assign(ctx context.Context, ticket models.Ticket, developerID string) (*models.Assignment, *models.Recommendation, error)
	Complete(ctx context.Context, ticketID string, successRating, actualDays float64) (*models.Developer, error)
	TeamAnalytics(ctx context.Context) (*models.WorkloadAnalysis, []models.Developer, error)
	AddDeveloper(ctx context.Context, dev models.Developer) (*models.Developer, bool, error)
	ListDevelopers(ctx context.Context) ([]models.Developer, error)
}

// ticketAPI is the slice of service.TicketService the server needs.
type ticketAPI interface {
	Get(ctx context.Context, id string) (*models.Ticket, error)
	List(ctx context.Context, limit int) ([]models.Ticket, error)
	Search(ctx context.Context, term string, limit int) ([]models.Ticket, error)
	Delete(ctx context.Context, id string) (bool, error)
	Stats(ctx context.Context) (*models.TicketStats, error)
}

// analysisAPI is the slice of service.AnalysisService the server needs.
type analysisAPI interface {
	Analyze(ctx context.Context, ticket models.Ticket, opts service.AnalyzeOptions) (*models.Report, error)
	IngestJira(ctx context.Context, payload service.JiraPayload) (*models.Report, error)
}

// Config holds HTTP server settings.
type Config struct {
	Host  string
	Port  int
	Debug bool
}

// Server is the Ticketwise HTTP server.
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	hub        *Hub

	routing   routingAPI
	tickets   ticketAPI
	analysis  analysisAPI
	collector *metrics.Collector

	logger    *slog.Logger
	version   string
	startTime time.Time
}

// New creates the server and registers all routes.
func New(cfg Config, routing routingAPI, tickets ticketAPI, analysis analysisAPI, collector *metrics.Collector, version string, logger *slog.Logger) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(logger))

	s := &Server{
		engine:    engine,
		hub:       NewHub(logger),
		routing:   routing,
		tickets:   tickets,
		analysis:  analysis,
		collector: collector,
		logger:    logger,
		version:   version,
		startTime: time.Now(),
	}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      engine,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second, // Long for LLM-backed analysis
		IdleTimeout:  120 * time.Second,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/health", s.handleHealth)

	s.engine.POST("/analyze", s.handleAnalyze)
	s.engine.POST("/recommend", s.handleRecommend)
	s.engine.POST("/assign", s.handleAssign)
	s.engine.POST("/complete", s.handleComplete)

	s.engine.GET("/team", s.handleTeam)
	s.engine.GET("/workload", s.handleWorkload)
	s.engine.GET("/developers", s.handleListDevelopers)
	s.engine.POST("/developers", s.handleAddDeveloper)

	s.engine.GET("/tickets", s.handleListTickets)
	s.engine.GET("/tickets/:id", s.handleGetTicket)
	s.engine.DELETE("/tickets/:id", s.handleDeleteTicket)

	s.engine.GET("/stats", s.handleStats)

	s.engine.POST("/webhook/jira", s.handleJiraWebhook)
	s.engine.GET("/ws/events", func(c *gin.Context) {
		s.hub.ServeWS(c.Writer, c.Request)
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the server and blocks until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server...")
	s.hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}
