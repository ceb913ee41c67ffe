// Package client provides a Go client for the Ticketwise HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jharward/ticketwise/internal/models"
	"github.com/jharward/ticketwise/internal/server"
)

// Client talks to a running ticketwise server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
// If baseURL is empty, uses the TICKETWISE_SERVER_URL env var or defaults to
// localhost:8585. Timeout can be configured via TICKETWISE_CLIENT_TIMEOUT
// (default 5m for LLM-backed analysis).
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("TICKETWISE_SERVER_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:8585"
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	timeout := 5 * time.Minute
	if t := os.Getenv("TICKETWISE_CLIENT_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// apiError is the error body returned by the server.
type apiError struct {
	Error string `json:"error"`
}

// do sends a request and decodes the JSON response into result.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var e apiError
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			return fmt.Errorf("server error (%s): %s", resp.Status, e.Error)
		}
		return fmt.Errorf("server error: %s - %s", resp.Status, string(data))
	}

	if result != nil && len(data) > 0 {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

// Health reports server status and version.
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Analyze submits a ticket for analysis.
func (c *Client) Analyze(ctx context.Context, ticket models.Ticket, store bool) (*models.Report, error) {
	path := "/analyze"
	if store {
		path += "?store=true"
	}
	var report models.Report
	if err := c.do(ctx, http.MethodPost, path, ticket, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// RecommendResult pairs a recommendation with the extracted requirement.
type RecommendResult struct {
	Recommendation models.Recommendation `json:"recommendation"`
	Requirement    models.Requirement    `json:"requirement"`
}

// Recommend asks for the best developer for a ticket.
func (c *Client) Recommend(ctx context.Context, ticket models.Ticket) (*RecommendResult, error) {
	var out RecommendResult
	if err := c.do(ctx, http.MethodPost, "/recommend", ticket, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AssignResult pairs the recorded assignment with the recommendation behind it.
type AssignResult struct {
	Assignment     models.Assignment      `json:"assignment"`
	Recommendation *models.Recommendation `json:"recommendation,omitempty"`
}

// Assign records an assignment. An empty developerID accepts the
// recommendation winner.
func (c *Client) Assign(ctx context.Context, ticket models.Ticket, developerID string) (*AssignResult, error) {
	body := map[string]any{"ticket": ticket, "developer_id": developerID}
	var out AssignResult
	if err := c.do(ctx, http.MethodPost, "/assign", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Complete closes a ticket's open assignment and returns the updated
// developer profile.
func (c *Client) Complete(ctx context.Context, ticketID string, successRating, actualDays float64) (*models.Developer, error) {
	body := map[string]any{
		"ticket_id":      ticketID,
		"success_rating": successRating,
		"actual_days":    actualDays,
	}
	var out struct {
		Developer models.Developer `json:"developer"`
	}
	if err := c.do(ctx, http.MethodPost, "/complete", body, &out); err != nil {
		return nil, err
	}
	return &out.Developer, nil
}

// TeamResult pairs the workload analysis with the roster.
type TeamResult struct {
	Workload   models.WorkloadAnalysis `json:"workload"`
	Developers []models.Developer      `json:"developers"`
}

// Team returns the workload analysis together with the roster.
func (c *Client) Team(ctx context.Context) (*TeamResult, error) {
	var out TeamResult
	if err := c.do(ctx, http.MethodGet, "/team", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddDeveloper creates or updates a developer profile.
func (c *Client) AddDeveloper(ctx context.Context, dev models.Developer) (*models.Developer, error) {
	var out struct {
		Developer models.Developer `json:"developer"`
	}
	if err := c.do(ctx, http.MethodPost, "/developers", dev, &out); err != nil {
		return nil, err
	}
	return &out.Developer, nil
}

// ListDevelopers returns the roster.
func (c *Client) ListDevelopers(ctx context.Context) ([]models.Developer, error) {
	var out struct {
		Developers []models.Developer `json:"developers"`
	}
	if err := c.do(ctx, http.MethodGet, "/developers", nil, &out); err != nil {
		return nil, err
	}
	return out.Developers, nil
}

// ListTickets returns stored tickets, optionally filtered by a search term.
func (c *Client) ListTickets(ctx context.Context, term string, limit int) ([]models.Ticket, error) {
	query := url.Values{}
	if term != "" {
		query.Set("q", term)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	path := "/tickets"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var out struct {
		Tickets []models.Ticket `json:"tickets"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Tickets, nil
}

// DeleteTicket removes a ticket. Returns false when it did not exist.
func (c *Client) DeleteTicket(ctx context.Context, id string) (bool, error) {
	var out struct {
		Deleted bool `json:"deleted"`
	}
	if err := c.do(ctx, http.MethodDelete, "/tickets/"+url.PathEscape(id), nil, &out); err != nil {
		return false, err
	}
	return out.Deleted, nil
}

// WatchEvents connects to the websocket stream and delivers events until ctx
// is cancelled or the connection drops.
func (c *Client) WatchEvents(ctx context.Context, handle func(server.Event)) error {
	wsURL := strings.Replace(c.baseURL, "http", "ws", 1) + "/ws/events"

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial events: %w", err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read event: %w", err)
		}

		var event server.Event
		if err := json.Unmarshal(payload, &event); err != nil {
			return fmt.Errorf("decode event: %w", err)
		}
		handle(event)
	}
}
