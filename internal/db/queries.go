// Package db provides SurrealDB query functions for the ticket, developer,
// and assignment tables.
package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jharward/ticketwise/internal/models"
	"github.com/surrealdb/surrealdb.go"
)

// PriorityCount is one row of the ticket priority distribution.
type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int    `json:"count"`
}

// developerFields is the explicit select list for developer records. The
// record id is intentionally omitted; developer_id carries the id back.
const developerFields = `developer_id, name, email, skills, specializations,
	current_workload, max_capacity, performance_score, availability, timezone,
	preferred_ticket_types, success_rate, avg_completion_time, last_active, created`

const ticketFields = `ticket_id, key, title, description, priority, assignee,
	reporter, labels, components, figma_links, deadline, created, updated`

const assignmentFields = `assignment_id, ticket_id, developer_id, assigned_at,
	completed_at, success_rating, actual_days, skill_match_score, workload_impact, notes`

// QueryUpsertDeveloper creates or updates a developer by ID.
// Returns (developer, wasCreated, error).
func (c *Client) QueryUpsertDeveloper(ctx context.Context, dev models.Developer) (*models.Developer, bool, error) {
	existsSQL := `SELECT count() AS c FROM type::record("developer", $id)`
	existsResult, err := surrealdb.Query[[]struct{ C int }](ctx, c.db, existsSQL, map[string]any{"id": dev.DeveloperID})
	if err != nil {
		return nil, false, fmt.Errorf("check developer exists: %w", wrapQueryError(err))
	}

	wasCreated := true
	if existsResult != nil && len(*existsResult) > 0 && len((*existsResult)[0].Result) > 0 {
		wasCreated = (*existsResult)[0].Result[0].C == 0
	}

	sql := fmt.Sprintf(`
		UPSERT type::record("developer", $id) SET
			developer_id = $id,
			name = $name,
			email = $email,
			skills = $skills,
			specializations = $specializations,
			current_workload = $current_workload,
			max_capacity = $max_capacity,
			performance_score = $performance_score,
			availability = $availability,
			timezone = $timezone,
			preferred_ticket_types = $preferred_ticket_types,
			success_rate = $success_rate,
			avg_completion_time = $avg_completion_time,
			last_active = time::now(),
			created = IF created THEN created ELSE time::now() END
		RETURN %s
	`, developerFields)

	results, err := surrealdb.Query[[]models.Developer](ctx, c.db, sql, map[string]any{
		"id":                     dev.DeveloperID,
		"name":                   dev.Name,
		"email":                  dev.Email,
		"skills":                 nonNilSkills(dev.Skills),
		"specializations":        nonNilStrings(dev.Specializations),
		"current_workload":       dev.CurrentWorkload,
		"max_capacity":           dev.MaxCapacity,
		"performance_score":      dev.PerformanceScore,
		"availability":           dev.Availability,
		"timezone":               optString(dev.Timezone),
		"preferred_ticket_types": nonNilStrings(dev.PreferredTicketTypes),
		"success_rate":           dev.SuccessRate,
		"avg_completion_time":    dev.AvgCompletionTime,
	})
	if err != nil {
		return nil, false, fmt.Errorf("upsert developer: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, false, fmt.Errorf("upsert developer: no result returned")
	}
	return &(*results)[0].Result[0], wasCreated, nil
}

// QueryGetDeveloper retrieves a developer by ID.
// Returns nil if not found.
func (c *Client) QueryGetDeveloper(ctx context.Context, id string) (*models.Developer, error) {
	sql := fmt.Sprintf(`SELECT %s FROM type::record("developer", $id)`, developerFields)
	results, err := surrealdb.Query[[]models.Developer](ctx, c.db, sql, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("get developer: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, nil
	}
	return &(*results)[0].Result[0], nil
}

// QueryListDevelopers returns the full roster ordered by developer_id, so
// scoring over the result is deterministic.
func (c *Client) QueryListDevelopers(ctx context.Context) ([]models.Developer, error) {
	sql := fmt.Sprintf(`SELECT %s FROM developer ORDER BY developer_id`, developerFields)
	results, err := surrealdb.Query[[]models.Developer](ctx, c.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("list developers: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 {
		return []models.Developer{}, nil
	}
	return (*results)[0].Result, nil
}

// QueryRecordAssignment inserts an assignment row and bumps the developer's
// workload in one transaction, so history and workload never drift apart.
func (c *Client) QueryRecordAssignment(ctx context.Context, a models.Assignment) error {
	sql := `
		BEGIN TRANSACTION;

		LET $dev = (SELECT count() AS c FROM type::record("developer", $developer_id));
		IF !array::first($dev).c {
			THROW "developer not found"
		};

		CREATE type::record("assignment", $id) SET
			assignment_id = $id,
			ticket_id = $ticket_id,
			developer_id = $developer_id,
			assigned_at = time::now(),
			skill_match_score = $skill_match_score,
			workload_impact = $workload_impact,
			notes = $notes;

		UPDATE type::record("developer", $developer_id) SET
			current_workload += 1,
			last_active = time::now();

		COMMIT TRANSACTION;
	`

	_, err := surrealdb.Query[any](ctx, c.db, sql, map[string]any{
		"id":                a.AssignmentID,
		"ticket_id":         a.TicketID,
		"developer_id":      a.DeveloperID,
		"skill_match_score": a.SkillMatchScore,
		"workload_impact":   a.WorkloadImpact,
		"notes":             a.Notes,
	})
	if err != nil {
		return fmt.Errorf("record assignment: %w", wrapQueryError(err))
	}
	return nil
}

// QueryFindOpenAssignment returns the most recent open assignment for a
// ticket, or nil when the ticket has none.
func (c *Client) QueryFindOpenAssignment(ctx context.Context, ticketID string) (*models.Assignment, error) {
	sql := fmt.Sprintf(`
		SELECT %s FROM assignment
		WHERE ticket_id = $ticket_id AND completed_at = NONE
		ORDER BY assigned_at DESC
		LIMIT 1
	`, assignmentFields)

	results, err := surrealdb.Query[[]models.Assignment](ctx, c.db, sql, map[string]any{"ticket_id": ticketID})
	if err != nil {
		return nil, fmt.Errorf("find open assignment: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, nil
	}
	return &(*results)[0].Result[0], nil
}

// QueryCompleteAssignment stamps an assignment with its outcome and writes
// back the developer's smoothed feedback fields in one transaction, so the
// event history and the profile never drift apart.
func (c *Client) QueryCompleteAssignment(ctx context.Context, assignmentID string, successRating, actualDays float64, dev models.Developer) error {
	sql := `
		BEGIN TRANSACTION;

		LET $open = (SELECT count() AS c FROM type::record("assignment", $id) WHERE completed_at = NONE);
		IF !array::first($open).c {
			THROW "no open assignment"
		};

		UPDATE type::record("assignment", $id) SET
			completed_at = time::now(),
			success_rating = $success_rating,
			actual_days = $actual_days;

		UPDATE type::record("developer", $developer_id) SET
			current_workload = $current_workload,
			success_rate = $success_rate,
			avg_completion_time = $avg_completion_time,
			performance_score = $performance_score,
			last_active = time::now();

		COMMIT TRANSACTION;
	`

	_, err := surrealdb.Query[any](ctx, c.db, sql, map[string]any{
		"id":                  assignmentID,
		"success_rating":      successRating,
		"actual_days":         actualDays,
		"developer_id":        dev.DeveloperID,
		"current_workload":    dev.CurrentWorkload,
		"success_rate":        dev.SuccessRate,
		"avg_completion_time": dev.AvgCompletionTime,
		"performance_score":   dev.PerformanceScore,
	})
	if err != nil {
		return fmt.Errorf("complete assignment: %w", wrapQueryError(err))
	}
	return nil
}

// QueryListAssignments returns assignment history, most recent first.
// ticketID filters to one ticket when non-empty.
func (c *Client) QueryListAssignments(ctx context.Context, ticketID string, limit int) ([]models.Assignment, error) {
	filter := ""
	vars := map[string]any{"limit": limit}
	if ticketID != "" {
		filter = "WHERE ticket_id = $ticket_id"
		vars["ticket_id"] = ticketID
	}

	sql := fmt.Sprintf(`
		SELECT %s FROM assignment %s
		ORDER BY assigned_at DESC
		LIMIT $limit
	`, assignmentFields, filter)

	results, err := surrealdb.Query[[]models.Assignment](ctx, c.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 {
		return []models.Assignment{}, nil
	}
	return (*results)[0].Result, nil
}

// QueryUpsertTicket creates or updates a ticket by ID.
// Returns (ticket, wasCreated, error).
func (c *Client) QueryUpsertTicket(ctx context.Context, t models.Ticket) (*models.Ticket, bool, error) {
	existsSQL := `SELECT count() AS c FROM type::record("ticket", $id)`
	existsResult, err := surrealdb.Query[[]struct{ C int }](ctx, c.db, existsSQL, map[string]any{"id": t.TicketID})
	if err != nil {
		return nil, false, fmt.Errorf("check ticket exists: %w", wrapQueryError(err))
	}

	wasCreated := true
	if existsResult != nil && len(*existsResult) > 0 && len((*existsResult)[0].Result) > 0 {
		wasCreated = (*existsResult)[0].Result[0].C == 0
	}

	sql := fmt.Sprintf(`
		UPSERT type::record("ticket", $id) SET
			ticket_id = $id,
			key = $key,
			title = $title,
			description = $description,
			priority = $priority,
			assignee = $assignee,
			reporter = $reporter,
			labels = $labels,
			components = $components,
			figma_links = $figma_links,
			deadline = $deadline,
			updated = time::now(),
			created = IF created THEN created ELSE time::now() END
		RETURN %s
	`, ticketFields)

	results, err := surrealdb.Query[[]models.Ticket](ctx, c.db, sql, map[string]any{
		"id":          t.TicketID,
		"key":         t.Key,
		"title":       t.Title,
		"description": t.Description,
		"priority":    t.Priority,
		"assignee":    t.Assignee,
		"reporter":    t.Reporter,
		"labels":      nonNilStrings(t.Labels),
		"components":  nonNilStrings(t.Components),
		"figma_links": nonNilStrings(t.FigmaLinks),
		"deadline":    t.Deadline,
	})
	if err != nil {
		return nil, false, fmt.Errorf("upsert ticket: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, false, fmt.Errorf("upsert ticket: no result returned")
	}
	return &(*results)[0].Result[0], wasCreated, nil
}

// QueryGetTicket retrieves a ticket by ID.
// Returns nil if not found.
func (c *Client) QueryGetTicket(ctx context.Context, id string) (*models.Ticket, error) {
	sql := fmt.Sprintf(`SELECT %s FROM type::record("ticket", $id)`, ticketFields)
	results, err := surrealdb.Query[[]models.Ticket](ctx, c.db, sql, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, nil
	}
	return &(*results)[0].Result[0], nil
}

// QueryListTickets returns tickets, most recently updated first.
func (c *Client) QueryListTickets(ctx context.Context, limit int) ([]models.Ticket, error) {
	sql := fmt.Sprintf(`
		SELECT %s FROM ticket ORDER BY updated DESC LIMIT $limit
	`, ticketFields)

	results, err := surrealdb.Query[[]models.Ticket](ctx, c.db, sql, map[string]any{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 {
		return []models.Ticket{}, nil
	}
	return (*results)[0].Result, nil
}

// QuerySearchTickets performs a case-insensitive substring search over ticket
// titles and descriptions.
func (c *Client) QuerySearchTickets(ctx context.Context, term string, limit int) ([]models.Ticket, error) {
	sql := fmt.Sprintf(`
		SELECT %s FROM ticket
		WHERE string::contains(string::lowercase(title), $term)
			OR string::contains(string::lowercase(description), $term)
		ORDER BY updated DESC
		LIMIT $limit
	`, ticketFields)

	results, err := surrealdb.Query[[]models.Ticket](ctx, c.db, sql, map[string]any{
		"term":  strings.ToLower(term),
		"limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search tickets: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 {
		return []models.Ticket{}, nil
	}
	return (*results)[0].Result, nil
}

// QueryDeleteTicket deletes a ticket and its assignment history.
// Returns count of deleted tickets (0 if not found - idempotent).
func (c *Client) QueryDeleteTicket(ctx context.Context, id string) (int, error) {
	sql := `
		DELETE assignment WHERE ticket_id = $id;
		DELETE type::record("ticket", $id) RETURN BEFORE;
	`

	results, err := surrealdb.Query[[]models.Ticket](ctx, c.db, sql, map[string]any{"id": id})
	if err != nil {
		return 0, fmt.Errorf("delete ticket: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 {
		return 0, nil
	}
	// The last statement's result carries the deleted ticket records.
	return len((*results)[len(*results)-1].Result), nil
}

// QueryDeleteAllTickets wipes the ticket store and all assignment history.
// Returns the number of tickets deleted.
func (c *Client) QueryDeleteAllTickets(ctx context.Context) (int, error) {
	sql := `
		DELETE assignment;
		DELETE ticket RETURN BEFORE;
	`

	results, err := surrealdb.Query[[]models.Ticket](ctx, c.db, sql, nil)
	if err != nil {
		return 0, fmt.Errorf("delete all tickets: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 {
		return 0, nil
	}
	return len((*results)[len(*results)-1].Result), nil
}

// QueryTicketStats summarizes the ticket store.
func (c *Client) QueryTicketStats(ctx context.Context) (*models.TicketStats, error) {
	stats := &models.TicketStats{PriorityDistribution: map[string]int{}}

	counts, err := surrealdb.Query[[]struct{ C int }](ctx, c.db, `
		SELECT count() AS c FROM ticket GROUP ALL;
		SELECT count() AS c FROM assignment GROUP ALL;
		SELECT count() AS c FROM assignment WHERE completed_at = NONE GROUP ALL;
	`, nil)
	if err != nil {
		return nil, fmt.Errorf("ticket stats: %w", wrapQueryError(err))
	}
	if counts == nil || len(*counts) != 3 {
		return nil, fmt.Errorf("ticket stats: unexpected result shape")
	}
	if rows := (*counts)[0].Result; len(rows) > 0 {
		stats.TotalTickets = rows[0].C
	}
	if rows := (*counts)[1].Result; len(rows) > 0 {
		stats.TotalAssignments = rows[0].C
	}
	if rows := (*counts)[2].Result; len(rows) > 0 {
		stats.OpenAssignments = rows[0].C
	}

	priorities, err := surrealdb.Query[[]PriorityCount](ctx, c.db, `
		SELECT priority, count() AS count FROM ticket WHERE priority != "" GROUP BY priority
	`, nil)
	if err != nil {
		return nil, fmt.Errorf("priority distribution: %w", wrapQueryError(err))
	}
	if priorities != nil && len(*priorities) > 0 {
		for _, row := range (*priorities)[0].Result {
			stats.PriorityDistribution[row.Priority] = row.Count
		}
	}

	return stats, nil
}

// SurrealDB rejects null where the schema expects an array or object, so nil
// slices and maps are replaced with empty ones before binding.

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilSkills(m map[string]float64) map[string]float64 {
	if m == nil {
		return map[string]float64{}
	}
	return m
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
