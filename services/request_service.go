package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Tanjim-Noor/hands-on-volunteering-platform/models"
	"github.com/Tanjim-Noor/hands-on-volunteering-platform/repositories"
)

type RequestService interface {
	List(ctx context.Context) ([]*models.CommunityRequest, error)
	GetByID(ctx context.Context, requestID int) (*models.CommunityRequest, error)
	Create(ctx context.Context, creatorID int, input CreateRequestInput) (*models.CommunityRequest, error)
	AddComment(ctx context.Context, requestID, authorID int, text string) (*models.Comment, error)
}

type CreateRequestInput struct {
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	Urgency     models.Urgency `json:"urgency"`
}

type requestService struct {
	requestRepo repositories.RequestRepository
}

func NewRequestService(requestRepo repositories.RequestRepository) RequestService {
	return &requestService{requestRepo: requestRepo}
}

func (s *requestService) List(ctx context.Context) ([]*models.CommunityRequest, error) {
	requests, err := s.requestRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list community requests: %w", err)
	}
	return requests, nil
}

func (s *requestService) GetByID(ctx context.Context, requestID int) (*models.CommunityRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrRequestNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get community request %d: %w", requestID, err)
	}
	return request, nil
}

func (s *requestService) Create(ctx context.Context, creatorID int, input CreateRequestInput) (*models.CommunityRequest, error) {
	if input.Title == "" || input.Urgency == "" {
		return nil, ErrRequestTitleRequired
	}
	if !input.Urgency.Valid() {
		return nil, ErrInvalidUrgency
	}

	request := &models.CommunityRequest{
		Title:       input.Title,
		Description: input.Description,
		Urgency:     input.Urgency,
		CreatedByID: creatorID,
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create community request: %w", err)
	}
	return request, nil
}

func (s *requestService) AddComment(ctx context.Context, requestID, authorID int, text string) (*models.Comment, error) {
	if text == "" {
		return nil, ErrCommentTextRequired
	}

	comment := &models.Comment{
		Text:      text,
		RequestID: requestID,
		AuthorID:  authorID,
	}

	if err := s.requestRepo.CreateComment(ctx, comment); err != nil {
		if errors.Is(err, repositories.ErrRequestNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}
