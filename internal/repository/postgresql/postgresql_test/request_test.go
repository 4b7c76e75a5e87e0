package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/samriddhi-018/infosys-LGD/internal/domain/feedback"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/request"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/user"
	"github.com/samriddhi-018/infosys-LGD/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestRepository_ConditionalTransition(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	admin := createTestUser(t, ctx, "admin", "admin@example.com", user.RoleAdmin)
	jane := createTestUser(t, ctx, "jane", "jane@example.com", user.RoleEmployee)
	repo := postgresql.NewRequestRepository(testDB)

	created, err := repo.Create(ctx, request.Request{
		Kind:        request.KindEmployee,
		Title:       "Laptop",
		Description: "New laptop please",
		Status:      request.StatusPending,
		SubmittedBy: jane.ID,
	})
	require.NoError(t, err)

	approve := created
	require.True(t, approve.Transition(request.StatusApproved, admin.ID, time.Now()))
	updated, err := repo.UpdateStatusIfPending(ctx, approve)
	require.NoError(t, err)
	assert.Equal(t, request.StatusApproved, updated.Status)
	require.NotNil(t, updated.HandledBy)
	assert.Equal(t, admin.ID, *updated.HandledBy)
	assert.Equal(t, "jane", updated.SubmittedByUsername)

	reject := created
	require.True(t, reject.Transition(request.StatusRejected, admin.ID, time.Now()))
	_, err = repo.UpdateStatusIfPending(ctx, reject)
	assert.ErrorIs(t, err, request.ErrRequestAlreadyProcessed)

	missing := request.Request{ID: "0190a4b0-0000-7000-8000-000000000000", Status: request.StatusApproved}
	_, err = repo.UpdateStatusIfPending(ctx, missing)
	assert.ErrorIs(t, err, request.ErrRequestNotFound)
}

func TestRequestRepository_ListFilterAndDelete(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	jane := createTestUser(t, ctx, "jane", "jane@example.com", user.RoleEmployee)
	mark := createTestUser(t, ctx, "mark", "mark@example.com", user.RoleManager)
	repo := postgresql.NewRequestRepository(testDB)

	for _, r := range []request.Request{
		{Kind: request.KindEmployee, Title: "A", Description: "a", Status: request.StatusPending, SubmittedBy: jane.ID},
		{Kind: request.KindEmployee, Title: "B", Description: "b", Status: request.StatusPending, SubmittedBy: jane.ID},
		{Kind: request.KindManager, Title: "C", Description: "c", Status: request.StatusPending, SubmittedBy: mark.ID},
	} {
		_, err := repo.Create(ctx, r)
		require.NoError(t, err)
	}

	kind := request.KindEmployee
	list, err := repo.List(ctx, request.RequestFilter{Kind: &kind})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	all, err := repo.List(ctx, request.RequestFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	managerKind := request.KindManager
	own, err := repo.List(ctx, request.RequestFilter{Kind: &managerKind, SubmittedBy: &mark.ID})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "C", own[0].Title)

	require.NoError(t, repo.Delete(ctx, list[0].ID))
	assert.ErrorIs(t, repo.Delete(ctx, list[0].ID), request.ErrRequestNotFound)

	counts, err := postgresql.NewDashboardRepository(testDB).GetRequestCounts(ctx, string(request.KindEmployee))
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Pending)
	assert.Zero(t, counts.Approved)
}

func TestFeedbackRepository_CreateAndList(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	jane := createTestUser(t, ctx, "jane", "jane@example.com", user.RoleEmployee)
	repo := postgresql.NewFeedbackRepository(testDB)

	rating := 4
	_, err := repo.Create(ctx, feedback.Feedback{UserID: jane.ID, CourseName: "Go", Feedback: "Great", Rating: &rating})
	require.NoError(t, err)
	_, err = repo.Create(ctx, feedback.Feedback{UserID: jane.ID, CourseName: "Go", Feedback: "No score"})
	require.NoError(t, err)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "jane", items[0].Username)

	summary := feedback.Aggregate(items)
	require.Len(t, summary.Courses, 1)
	assert.Equal(t, 4.0, summary.Courses[0].AverageRating)
	assert.Equal(t, 2, summary.Courses[0].FeedbackCount)
}
