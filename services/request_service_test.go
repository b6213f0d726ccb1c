package services

import (
	"context"
	"testing"

	"github.com/Tanjim-Noor/hands-on-volunteering-platform/models"
	"github.com/stretchr/testify/require"
)

func TestRequestService_Create(t *testing.T) {
	svc := NewRequestService(newFakeRequestRepo())

	request, err := svc.Create(context.Background(), 3, CreateRequestInput{
		Title:   "Winter Clothing Distribution",
		Urgency: models.UrgencyUrgent,
	})
	require.NoError(t, err)
	require.NotZero(t, request.ID)
	require.Equal(t, 3, request.CreatedByID)
	require.Equal(t, models.UrgencyUrgent, request.Urgency)
}

func TestRequestService_Create_Validation(t *testing.T) {
	svc := NewRequestService(newFakeRequestRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, CreateRequestInput{Title: "", Urgency: models.UrgencyLow})
	require.ErrorIs(t, err, ErrRequestTitleRequired)

	_, err = svc.Create(ctx, 1, CreateRequestInput{Title: "Tutoring", Urgency: ""})
	require.ErrorIs(t, err, ErrRequestTitleRequired)

	_, err = svc.Create(ctx, 1, CreateRequestInput{Title: "Tutoring", Urgency: "critical"})
	require.ErrorIs(t, err, ErrInvalidUrgency)
}

func TestRequestService_AddComment(t *testing.T) {
	svc := NewRequestService(newFakeRequestRepo())
	ctx := context.Background()

	request, err := svc.Create(ctx, 1, CreateRequestInput{Title: "Tutoring", Urgency: models.UrgencyMedium})
	require.NoError(t, err)

	comment, err := svc.AddComment(ctx, request.ID, 2, "I can help on weekends.")
	require.NoError(t, err)
	require.Equal(t, request.ID, comment.RequestID)
	require.Equal(t, 2, comment.AuthorID)

	reloaded, err := svc.GetByID(ctx, request.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Comments, 1)
	require.Equal(t, "I can help on weekends.", reloaded.Comments[0].Text)
}

func TestRequestService_AddComment_EmptyText(t *testing.T) {
	svc := NewRequestService(newFakeRequestRepo())
	ctx := context.Background()

	request, err := svc.Create(ctx, 1, CreateRequestInput{Title: "Tutoring", Urgency: models.UrgencyMedium})
	require.NoError(t, err)

	_, err = svc.AddComment(ctx, request.ID, 2, "")
	require.ErrorIs(t, err, ErrCommentTextRequired)
}

func TestRequestService_AddComment_UnknownRequest(t *testing.T) {
	svc := NewRequestService(newFakeRequestRepo())

	_, err := svc.AddComment(context.Background(), 42, 2, "hello")
	require.ErrorIs(t, err, ErrRequestNotFound)
}

func TestRequestService_GetByID_Unknown(t *testing.T) {
	svc := NewRequestService(newFakeRequestRepo())

	_, err := svc.GetByID(context.Background(), 42)
	require.ErrorIs(t, err, ErrRequestNotFound)
}
