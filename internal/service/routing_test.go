package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/jharward/ticketwise/internal/config"
	"github.com/jharward/ticketwise/internal/db"
	"github.com/jharward/ticketwise/internal/metrics"
	"github.com/jharward/ticketwise/internal/models"
	"github.com/jharward/ticketwise/internal/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	listDevelopers     func(ctx context.Context) ([]models.Developer, error)
	getDeveloper       func(ctx context.Context, id string) (*models.Developer, error)
	upsertDeveloper    func(ctx context.Context, dev models.Developer) (*models.Developer, bool, error)
	recordAssignment   func(ctx context.Context, a models.Assignment) error
	findOpenAssignment func(ctx context.Context, ticketID string) (*models.Assignment, error)
	completeAssignment func(ctx context.Context, assignmentID string, successRating, actualDays float64, dev models.Developer) error
}

func (f *fakeStore) QueryListDevelopers(ctx context.Context) ([]models.Developer, error) {
	return f.listDevelopers(ctx)
}

func (f *fakeStore) QueryGetDeveloper(ctx context.Context, id string) (*models.Developer, error) {
	return f.getDeveloper(ctx, id)
}

func (f *fakeStore) QueryUpsertDeveloper(ctx context.Context, dev models.Developer) (*models.Developer, bool, error) {
	return f.upsertDeveloper(ctx, dev)
}

func (f *fakeStore) QueryRecordAssignment(ctx context.Context, a models.Assignment) error {
	return f.recordAssignment(ctx, a)
}

func (f *fakeStore) QueryFindOpenAssignment(ctx context.Context, ticketID string) (*models.Assignment, error) {
	return f.findOpenAssignment(ctx, ticketID)
}

func (f *fakeStore) QueryCompleteAssignment(ctx context.Context, assignmentID string, successRating, actualDays float64, dev models.Developer) error {
	return f.completeAssignment(ctx, assignmentID, successRating, actualDays, dev)
}

func testRoutingService(store *fakeStore) *RoutingService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRoutingService(store, config.DefaultVocabulary(), metrics.NewCollector(), logger)
}

func routingAlice() models.Developer {
	return models.Developer{
		DeveloperID:      "alice",
		Name:             "Alice",
		Skills:           map[string]float64{"python": 8},
		Availability:     models.Available,
		MaxCapacity:      5,
		PerformanceScore: 6,
		SuccessRate:      80,
	}
}

func routingBob() models.Developer {
	return models.Developer{
		DeveloperID:      "bob",
		Name:             "Bob",
		Skills:           map[string]float64{"python": 4},
		Availability:     models.Busy,
		CurrentWorkload:  4,
		MaxCapacity:      5,
		PerformanceScore: 5,
		SuccessRate:      70,
	}
}

func pythonTicket() models.Ticket {
	return models.Ticket{
		TicketID: "TW-100",
		Title:    "Optimize python backend",
	}
}

func TestAssignRecordsSkillSubScore(t *testing.T) {
	var recorded models.Assignment
	store := &fakeStore{
		listDevelopers: func(ctx context.Context) ([]models.Developer, error) {
			return []models.Developer{routingAlice()}, nil
		},
		recordAssignment: func(ctx context.Context, a models.Assignment) error {
			recorded = a
			return nil
		},
	}
	svc := testRoutingService(store)

	assignment, rec, err := svc.Assign(context.Background(), pythonTicket(), "")
	require.NoError(t, err)
	require.NotNil(t, rec)

	// One required skill at proficiency 8, no specialization bonus.
	assert.Equal(t, 0.8, recorded.SkillMatchScore)
	assert.Equal(t, recorded.SkillMatchScore, assignment.SkillMatchScore)
	assert.Equal(t, rec.SkillMatchScore, recorded.SkillMatchScore,
		"the skill sub-score is recorded, not the blended confidence")
	assert.NotEqual(t, rec.ConfidenceScore, recorded.SkillMatchScore)
	assert.Equal(t, rec.WorkloadImpact, recorded.WorkloadImpact)
}

func TestAssignOverrideRescoresChosenDeveloper(t *testing.T) {
	bob := routingBob()
	var recorded models.Assignment
	store := &fakeStore{
		listDevelopers: func(ctx context.Context) ([]models.Developer, error) {
			return []models.Developer{routingAlice(), routingBob()}, nil
		},
		getDeveloper: func(ctx context.Context, id string) (*models.Developer, error) {
			require.Equal(t, "bob", id)
			return &bob, nil
		},
		recordAssignment: func(ctx context.Context, a models.Assignment) error {
			recorded = a
			return nil
		},
	}
	svc := testRoutingService(store)

	ticket := pythonTicket()
	assignment, rec, err := svc.Assign(context.Background(), ticket, "bob")
	require.NoError(t, err)
	require.Equal(t, "alice", rec.RecommendedDeveloper, "alice should win the recommendation")

	// The recorded scores describe bob, who actually got the ticket.
	want := routing.Score(bob, svc.Extract(ticket))
	assert.Equal(t, "bob", assignment.DeveloperID)
	assert.Equal(t, want.Skill, recorded.SkillMatchScore)
	assert.Equal(t, want.Impact, recorded.WorkloadImpact)
	assert.NotEqual(t, rec.SkillMatchScore, recorded.SkillMatchScore)
}

func TestAssignOverrideUnknownDeveloper(t *testing.T) {
	store := &fakeStore{
		listDevelopers: func(ctx context.Context) ([]models.Developer, error) {
			return []models.Developer{routingAlice()}, nil
		},
		getDeveloper: func(ctx context.Context, id string) (*models.Developer, error) {
			return nil, nil
		},
	}
	svc := testRoutingService(store)

	_, _, err := svc.Assign(context.Background(), pythonTicket(), "ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestCompleteWritesFeedbackWithStamp(t *testing.T) {
	alice := routingAlice()
	alice.CurrentWorkload = 2

	var gotID string
	var gotDev models.Developer
	store := &fakeStore{
		findOpenAssignment: func(ctx context.Context, ticketID string) (*models.Assignment, error) {
			return &models.Assignment{AssignmentID: "as1", TicketID: ticketID, DeveloperID: "alice"}, nil
		},
		getDeveloper: func(ctx context.Context, id string) (*models.Developer, error) {
			dev := alice
			return &dev, nil
		},
		completeAssignment: func(ctx context.Context, assignmentID string, successRating, actualDays float64, dev models.Developer) error {
			gotID = assignmentID
			gotDev = dev
			return nil
		},
	}
	svc := testRoutingService(store)

	dev, err := svc.Complete(context.Background(), "TW-100", 4, 2)
	require.NoError(t, err)

	// The single write carries the already-blended profile.
	assert.Equal(t, "as1", gotID)
	assert.Equal(t, 1, gotDev.CurrentWorkload, "completion decrements workload")
	assert.NotEqual(t, alice.SuccessRate, gotDev.SuccessRate, "success rate is blended before the write")
	assert.Equal(t, *dev, gotDev, "the returned developer matches what was persisted")
}

func TestCompleteNoOpenAssignment(t *testing.T) {
	store := &fakeStore{
		findOpenAssignment: func(ctx context.Context, ticketID string) (*models.Assignment, error) {
			return nil, nil
		},
	}
	svc := testRoutingService(store)

	_, err := svc.Complete(context.Background(), "TW-404", 4, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, db.ErrNoOpenAssignment))
}
