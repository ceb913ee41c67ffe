package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jharward/ticketwise/internal/db"
	"github.com/jharward/ticketwise/internal/metrics"
	"github.com/jharward/ticketwise/internal/models"
	"github.com/jharward/ticketwise/internal/service"
)

type fakeRouting struct {
	recommendFn func(context.Context, models.Ticket) (*models.Recommendation, models.Requirement, error)
	assignFn    func(context.Context, models.Ticket, string) (*models.Assignment, *models.Recommendation, error)
	completeFn  func(context.Context, string, float64, float64) (*models.Developer, error)
	teamFn      func(context.Context) (*models.WorkloadAnalysis, []models.Developer, error)
	addFn       func(context.Context, models.Developer) (*models.Developer, bool, error)
	listFn      func(context.Context) ([]models.Developer, error)
}

func (f *fakeRouting) Recommend(ctx context.Context, t models.Ticket) (*models.Recommendation, models.Requirement, error) {
	if f.recommendFn != nil {
		return f.recommendFn(ctx, t)
	}
	return &models.Recommendation{RecommendedDeveloper: "dev1"}, models.Requirement{}, nil
}

func (f *fakeRouting) Assign(ctx context.Context, t models.Ticket, devID string) (*models.Assignment, *models.Recommendation, error) {
	if f.assignFn != nil {
		return f.assignFn(ctx, t, devID)
	}
	return &models.Assignment{AssignmentID: "a1", TicketID: t.TicketID, DeveloperID: "dev1"}, &models.Recommendation{}, nil
}

func (f *fakeRouting) Complete(ctx context.Context, ticketID string, rating, days float64) (*models.Developer, error) {
	if f.completeFn != nil {
		return f.completeFn(ctx, ticketID, rating, days)
	}
	return &models.Developer{DeveloperID: "dev1"}, nil
}

func (f *fakeRouting) TeamAnalytics(ctx context.Context) (*models.WorkloadAnalysis, []models.Developer, error) {
	if f.teamFn != nil {
		return f.teamFn(ctx)
	}
	return &models.WorkloadAnalysis{}, nil, nil
}

func (f *fakeRouting) AddDeveloper(ctx context.Context, dev models.Developer) (*models.Developer, bool, error) {
	if f.addFn != nil {
		return f.addFn(ctx, dev)
	}
	return &dev, true, nil
}

func (f *fakeRouting) ListDevelopers(ctx context.Context) ([]models.Developer, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return nil, nil
}

type fakeTickets struct {
	searchFn func(context.Context, string, int) ([]models.Ticket, error)
	getFn    func(context.Context, string) (*models.Ticket, error)
}

func (f *fakeTickets) Get(ctx context.Context, id string) (*models.Ticket, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return &models.Ticket{TicketID: id}, nil
}

func (f *fakeTickets) List(ctx context.Context, limit int) ([]models.Ticket, error) {
	return nil, nil
}

func (f *fakeTickets) Search(ctx context.Context, term string, limit int) ([]models.Ticket, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, term, limit)
	}
	return nil, nil
}

func (f *fakeTickets) Delete(ctx context.Context, id string) (bool, error) { return true, nil }

func (f *fakeTickets) Stats(ctx context.Context) (*models.TicketStats, error) {
	return &models.TicketStats{}, nil
}

type fakeAnalysis struct {
	analyzeFn func(context.Context, models.Ticket, service.AnalyzeOptions) (*models.Report, error)
	ingestFn  func(context.Context, service.JiraPayload) (*models.Report, error)
}

func (f *fakeAnalysis) Analyze(ctx context.Context, t models.Ticket, opts service.AnalyzeOptions) (*models.Report, error) {
	if f.analyzeFn != nil {
		return f.analyzeFn(ctx, t, opts)
	}
	return &models.Report{Ticket: t, GeneratedBy: models.GeneratedHeuristic}, nil
}

func (f *fakeAnalysis) IngestJira(ctx context.Context, payload service.JiraPayload) (*models.Report, error) {
	if f.ingestFn != nil {
		return f.ingestFn(ctx, payload)
	}
	return &models.Report{GeneratedBy: models.GeneratedHeuristic}, nil
}

func testServer(routing routingAPI, tickets ticketAPI, analysis analysisAPI) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if routing == nil {
		routing = &fakeRouting{}
	}
	if tickets == nil {
		tickets = &fakeTickets{}
	}
	if analysis == nil {
		analysis = &fakeAnalysis{}
	}
	return New(Config{Host: "localhost", Port: 0}, routing, tickets, analysis, metrics.NewCollector(), "test", logger)
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestHandleHealth(t *testing.T) {
	s := testServer(nil, nil, nil)

	w := doJSON(t, s.Handler(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), `"version":"test"`)
}

func TestHandleAnalyze(t *testing.T) {
	var gotOpts service.AnalyzeOptions
	analysis := &fakeAnalysis{
		analyzeFn: func(_ context.Context, ticket models.Ticket, opts service.AnalyzeOptions) (*models.Report, error) {
			gotOpts = opts
			return &models.Report{Ticket: ticket, GeneratedBy: models.GeneratedHeuristic}, nil
		},
	}
	s := testServer(nil, nil, analysis)

	ticket := models.Ticket{TicketID: "PROJ-1", Title: "Add search"}
	w := doJSON(t, s.Handler(), http.MethodPost, "/analyze?store=true", ticket)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, gotOpts.Recommend, "recommend should default to true")
	assert.True(t, gotOpts.Store)

	var rep models.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Equal(t, "PROJ-1", rep.Ticket.TicketID)
	assert.Equal(t, models.GeneratedHeuristic, rep.GeneratedBy)
}

func TestHandleAnalyzeInvalidJSON(t *testing.T) {
	s := testServer(nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAssignRequiresTicketID(t *testing.T) {
	s := testServer(nil, nil, nil)

	w := doJSON(t, s.Handler(), http.MethodPost, "/assign", map[string]any{"developer_id": "dev1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAssign(t *testing.T) {
	s := testServer(nil, nil, nil)

	body := map[string]any{
		"ticket":       models.Ticket{TicketID: "PROJ-2", Title: "Fix login"},
		"developer_id": "",
	}
	w := doJSON(t, s.Handler(), http.MethodPost, "/assign", body)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"developer_id":"dev1"`)
}

func TestHandleCompleteNoOpenAssignment(t *testing.T) {
	routing := &fakeRouting{
		completeFn: func(_ context.Context, ticketID string, _, _ float64) (*models.Developer, error) {
			return nil, fmt.Errorf("ticket %s: %w", ticketID, db.ErrNoOpenAssignment)
		},
	}
	s := testServer(routing, nil, nil)

	w := doJSON(t, s.Handler(), http.MethodPost, "/complete", completeRequest{TicketID: "PROJ-3", SuccessRating: 4})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleAddDeveloper(t *testing.T) {
	s := testServer(nil, nil, nil)

	dev := models.Developer{DeveloperID: "dev9", Name: "Dana"}
	w := doJSON(t, s.Handler(), http.MethodPost, "/developers", dev)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestHandleListTicketsSearch(t *testing.T) {
	var gotTerm string
	tickets := &fakeTickets{
		searchFn: func(_ context.Context, term string, _ int) ([]models.Ticket, error) {
			gotTerm = term
			return []models.Ticket{{TicketID: "PROJ-4"}}, nil
		},
	}
	s := testServer(nil, tickets, nil)

	w := doJSON(t, s.Handler(), http.MethodGet, "/tickets?q=login", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "login", gotTerm)
	assert.Contains(t, w.Body.String(), "PROJ-4")
}

func TestHandleGetTicketNotFound(t *testing.T) {
	tickets := &fakeTickets{
		getFn: func(_ context.Context, id string) (*models.Ticket, error) {
			return nil, fmt.Errorf("ticket %s: %w", id, db.ErrNotFound)
		},
	}
	s := testServer(nil, tickets, nil)

	w := doJSON(t, s.Handler(), http.MethodGet, "/tickets/PROJ-404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleJiraWebhook(t *testing.T) {
	processed := make(chan string, 1)
	analysis := &fakeAnalysis{
		ingestFn: func(_ context.Context, payload service.JiraPayload) (*models.Report, error) {
			processed <- payload.Key
			return &models.Report{GeneratedBy: models.GeneratedHeuristic}, nil
		},
	}
	s := testServer(nil, nil, analysis)

	w := doJSON(t, s.Handler(), http.MethodPost, "/webhook/jira", map[string]any{"key": "PROJ-5"})
	assert.Equal(t, http.StatusAccepted, w.Code)

	select {
	case key := <-processed:
		assert.Equal(t, "PROJ-5", key)
	case <-time.After(2 * time.Second):
		t.Fatal("webhook was not processed in the background")
	}
}

func TestHandleJiraWebhookMissingKey(t *testing.T) {
	s := testServer(nil, nil, nil)

	w := doJSON(t, s.Handler(), http.MethodPost, "/webhook/jira", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventStream(t *testing.T) {
	s := testServer(nil, nil, nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Wait for the hub to register the client before publishing.
	require.Eventually(t, func() bool { return s.hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	s.hub.Publish(Event{Type: EventTicketAssigned, TicketID: "PROJ-6", DeveloperID: "dev1"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(payload, &event))
	assert.Equal(t, EventTicketAssigned, event.Type)
	assert.Equal(t, "PROJ-6", event.TicketID)
	assert.False(t, event.At.IsZero())
}

func TestHubDropsDisconnectedClients(t *testing.T) {
	s := testServer(nil, nil, nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return s.hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return s.hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}
