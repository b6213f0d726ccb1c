package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Tanjim-Noor/hands-on-volunteering-platform/models"
	"github.com/Tanjim-Noor/hands-on-volunteering-platform/repositories"
)

type EventService interface {
	List(ctx context.Context, filter models.EventFilter) ([]*models.VolunteerEvent, error)
	Create(ctx context.Context, creatorID int, input CreateEventInput) (*models.VolunteerEvent, error)
	GetByID(ctx context.Context, eventID int) (*models.VolunteerEvent, error)
	// Join registers the user as an attendee and returns the event with
	// the updated attendee set.
	Join(ctx context.Context, eventID, userID int) (*models.VolunteerEvent, error)
}

type CreateEventInput struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
	Location    string     `json:"location"`
	Category    string     `json:"category"`
}

type eventService struct {
	eventRepo repositories.EventRepository
}

func NewEventService(eventRepo repositories.EventRepository) EventService {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) List(ctx context.Context, filter models.EventFilter) ([]*models.VolunteerEvent, error) {
	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *eventService) Create(ctx context.Context, creatorID int, input CreateEventInput) (*models.VolunteerEvent, error) {
	if input.Title == "" || input.Date == nil || input.Location == "" || input.Category == "" {
		return nil, ErrEventFieldsRequired
	}

	event := &models.VolunteerEvent{
		Title:       input.Title,
		Description: input.Description,
		Date:        *input.Date,
		Location:    input.Location,
		Category:    input.Category,
		CreatedByID: creatorID,
	}

	if err := s.eventRepo.Create(ctx, nil, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetByID(ctx context.Context, eventID int) (*models.VolunteerEvent, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event %d: %w", eventID, err)
	}
	return event, nil
}

func (s *eventService) Join(ctx context.Context, eventID, userID int) (*models.VolunteerEvent, error) {
	// Existence check first so an unknown event is a 404, not a FK error.
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event %d: %w", eventID, err)
	}

	if err := s.eventRepo.AddAttendee(ctx, eventID, userID); err != nil {
		if errors.Is(err, repositories.ErrEventAttendeeConflict) {
			return nil, ErrEventAlreadyJoined
		}
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to add attendee: %w", err)
	}

	return s.GetByID(ctx, eventID)
}
