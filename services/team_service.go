package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Tanjim-Noor/hands-on-volunteering-platform/models"
	"github.com/Tanjim-Noor/hands-on-volunteering-platform/repositories"
	"github.com/Tanjim-Noor/hands-on-volunteering-platform/storage"
)

// ActivityBroadcaster pushes team activity to dashboard watchers.
// A nil broadcaster disables notifications.
type ActivityBroadcaster interface {
	TeamActivity(teamID int, kind string, payload interface{})
}

const (
	ActivityMemberJoined = "MEMBER_JOINED"
	ActivityEventCreated = "EVENT_CREATED"
)

type TeamService interface {
	Create(ctx context.Context, creatorID int, input CreateTeamInput) (*models.Team, error)
	// UpdateInvites replaces the team's invite list with the supplied
	// emails. Member-only.
	UpdateInvites(ctx context.Context, teamID, userID int, emails []string) error
	// Join adds the user to the team. Public teams are open; private
	// teams require an invite matching the user's email
	// case-insensitively, consumed on success.
	Join(ctx context.Context, teamID, userID int) error
	// Dashboard returns the team with members, events and invites.
	// Member-only.
	Dashboard(ctx context.Context, teamID, userID int) (*models.Team, error)
	CreateTeamEvent(ctx context.Context, teamID, userID int, input CreateEventInput) (*models.VolunteerEvent, error)
	ListMine(ctx context.Context, userID int) ([]*models.Team, error)
	ListAvailable(ctx context.Context, userID int) ([]*models.Team, error)
	UploadLogo(ctx context.Context, teamID, userID int, contentType string, file io.Reader) (string, error)
}

type CreateTeamInput struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	IsPrivate   bool     `json:"is_private"`
	Invites     []string `json:"invites"`
}

type teamService struct {
	teamRepo    repositories.TeamRepository
	userRepo    repositories.UserRepository
	eventRepo   repositories.EventRepository
	uploader    storage.FileUploader
	broadcaster ActivityBroadcaster
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
	eventRepo repositories.EventRepository,
	uploader storage.FileUploader,
	broadcaster ActivityBroadcaster,
) TeamService {
	return &teamService{
		teamRepo:    teamRepo,
		userRepo:    userRepo,
		eventRepo:   eventRepo,
		uploader:    uploader,
		broadcaster: broadcaster,
	}
}

func (s *teamService) Create(ctx context.Context, creatorID int, input CreateTeamInput) (*models.Team, error) {
	if input.Name == "" {
		return nil, ErrTeamNameRequired
	}

	// Public teams carry no invite gate: a supplied invite list is
	// discarded unless the team is private.
	invites := input.Invites
	if !input.IsPrivate {
		invites = nil
	}

	team := &models.Team{
		Name:        input.Name,
		Description: input.Description,
		IsPrivate:   input.IsPrivate,
	}

	if err := s.teamRepo.Create(ctx, team, creatorID, invites); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return s.withDetails(ctx, team.ID)
}

func (s *teamService) UpdateInvites(ctx context.Context, teamID, userID int, emails []string) error {
	if err := s.requireMember(ctx, teamID, userID); err != nil {
		return err
	}
	if err := s.teamRepo.ReplaceInvites(ctx, teamID, emails); err != nil {
		return fmt.Errorf("failed to replace invites for team %d: %w", teamID, err)
	}
	return nil
}

func (s *teamService) Join(ctx context.Context, teamID, userID int) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user %d: %w", userID, err)
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to get team %d: %w", teamID, err)
	}

	isMember, err := s.teamRepo.IsMember(ctx, teamID, userID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if isMember {
		return ErrAlreadyTeamMember
	}

	if team.IsPrivate {
		invited, err := s.teamRepo.HasInviteForEmail(ctx, teamID, user.Email)
		if err != nil {
			return fmt.Errorf("failed to check invite: %w", err)
		}
		if !invited {
			return ErrNotInvited
		}
		err = s.teamRepo.AddMemberConsumingInvite(ctx, teamID, userID, user.Email)
	} else {
		err = s.teamRepo.AddMember(ctx, teamID, userID)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrTeamMemberConflict) {
			return ErrAlreadyTeamMember
		}
		return fmt.Errorf("failed to add member to team %d: %w", teamID, err)
	}

	s.notify(teamID, ActivityMemberJoined, user.Summary())
	return nil
}

func (s *teamService) Dashboard(ctx context.Context, teamID, userID int) (*models.Team, error) {
	if err := s.requireMember(ctx, teamID, userID); err != nil {
		return nil, err
	}
	return s.withDetails(ctx, teamID)
}

func (s *teamService) CreateTeamEvent(ctx context.Context, teamID, userID int, input CreateEventInput) (*models.VolunteerEvent, error) {
	if err := s.requireMember(ctx, teamID, userID); err != nil {
		return nil, err
	}
	if input.Title == "" || input.Date == nil || input.Location == "" || input.Category == "" {
		return nil, ErrEventFieldsRequired
	}

	event := &models.VolunteerEvent{
		Title:       input.Title,
		Description: input.Description,
		Date:        *input.Date,
		Location:    input.Location,
		Category:    input.Category,
		CreatedByID: userID,
		TeamID:      &teamID,
	}

	if err := s.eventRepo.Create(ctx, nil, event); err != nil {
		return nil, fmt.Errorf("failed to create team event: %w", err)
	}

	s.notify(teamID, ActivityEventCreated, event)
	return event, nil
}

func (s *teamService) ListMine(ctx context.Context, userID int) ([]*models.Team, error) {
	teams, err := s.teamRepo.ListByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for user %d: %w", userID, err)
	}
	s.fillLogoURLs(teams)
	return teams, nil
}

func (s *teamService) ListAvailable(ctx context.Context, userID int) ([]*models.Team, error) {
	teams, err := s.teamRepo.ListByNonMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list available teams for user %d: %w", userID, err)
	}
	s.fillLogoURLs(teams)
	return teams, nil
}

func (s *teamService) UploadLogo(ctx context.Context, teamID, userID int, contentType string, file io.Reader) (string, error) {
	if err := s.requireMember(ctx, teamID, userID); err != nil {
		return "", err
	}
	if s.uploader == nil {
		return "", ErrUploadsNotConfigured
	}

	ext, ok := imageExtension(contentType)
	if !ok {
		return "", ErrUnsupportedFileType
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return "", ErrTeamNotFound
		}
		return "", fmt.Errorf("failed to get team %d: %w", teamID, err)
	}

	key := fmt.Sprintf("logos/team_%d%s", teamID, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return "", fmt.Errorf("failed to upload team logo: %w", err)
	}

	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, &result.Key); err != nil {
		return "", fmt.Errorf("failed to store logo key: %w", err)
	}

	if team.LogoKey != nil && *team.LogoKey != result.Key {
		_ = s.uploader.Delete(ctx, *team.LogoKey)
	}

	return result.Location, nil
}

// requireMember resolves the membership gate shared by the dashboard,
// invite management, team events and logo upload.
func (s *teamService) requireMember(ctx context.Context, teamID, userID int) error {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to get team %d: %w", teamID, err)
	}

	isMember, err := s.teamRepo.IsMember(ctx, teamID, userID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !isMember {
		return ErrNotTeamMember
	}
	return nil
}

func (s *teamService) withDetails(ctx context.Context, teamID int) (*models.Team, error) {
	team, err := s.teamRepo.GetWithDetails(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team %d: %w", teamID, err)
	}
	s.fillLogoURLs([]*models.Team{team})
	return team, nil
}

func (s *teamService) fillLogoURLs(teams []*models.Team) {
	if s.uploader == nil {
		return
	}
	for _, team := range teams {
		if team.LogoKey != nil {
			url := s.uploader.GetPublicURL(*team.LogoKey)
			team.LogoURL = &url
		}
	}
}

func (s *teamService) notify(teamID int, kind string, payload interface{}) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.TeamActivity(teamID, kind, payload)
}
