package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/crm-service/internal/events"
	apperrors "github.com/spec-kit/crm-service/pkg/util"
)

func TestFeedbackCreateRejectsOutOfRangeRating(t *testing.T) {
	repo := newFakeFeedbackRepo()
	svc := NewFeedbackService(repo, nil)
	ctx := context.Background()

	for _, rating := range []int{0, -1, 6, 100} {
		_, err := svc.Create(ctx, "user-1", FeedbackCreateInput{
			Title: "t", Message: "m", Rating: rating,
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	}
	// Nothing reached storage.
	assert.Empty(t, repo.feedback)
}

func TestFeedbackCreateAcceptsBoundaryRatings(t *testing.T) {
	svc := NewFeedbackService(newFakeFeedbackRepo(), nil)
	ctx := context.Background()

	for _, rating := range []int{1, 5} {
		feedback, err := svc.Create(ctx, "user-1", FeedbackCreateInput{
			Title: "t", Message: "m", Rating: rating,
		})
		require.NoError(t, err)
		assert.Equal(t, rating, feedback.Rating)
	}
}

func TestFeedbackCreatePublishesEvent(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewFeedbackService(newFakeFeedbackRepo(), dispatcher)

	var received events.Event
	dispatcher.Subscribe(events.EventFeedbackCreated, func(_ context.Context, event events.Event) error {
		received = event
		return nil
	})

	feedback, err := svc.Create(context.Background(), "user-1", FeedbackCreateInput{
		Title: "Nice", Message: "works", Rating: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, feedback.ID, received.SubjectID)
}

func TestFeedbackListOwnScopesToOwner(t *testing.T) {
	svc := NewFeedbackService(newFakeFeedbackRepo(), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", FeedbackCreateInput{Title: "a", Message: "a", Rating: 3})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "user-2", FeedbackCreateInput{Title: "b", Message: "b", Rating: 4})
	require.NoError(t, err)

	own, err := svc.ListOwn(ctx, "user-2")
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "user-2", own[0].OwnerID)
}
