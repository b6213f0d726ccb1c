package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Tanjim-Noor/hands-on-volunteering-platform/models"
	"github.com/Tanjim-Noor/hands-on-volunteering-platform/repositories"
	"github.com/Tanjim-Noor/hands-on-volunteering-platform/storage"
	"golang.org/x/sync/errgroup"
)

type UserService interface {
	// GetProfile returns the user with created events, attended events,
	// teams and impact logs.
	GetProfile(ctx context.Context, userID int) (*models.User, error)
	UploadAvatar(ctx context.Context, userID int, contentType string, file io.Reader) (string, error)
}

type userService struct {
	userRepo   repositories.UserRepository
	eventRepo  repositories.EventRepository
	teamRepo   repositories.TeamRepository
	impactRepo repositories.ImpactLogRepository
	uploader   storage.FileUploader
}

func NewUserService(
	userRepo repositories.UserRepository,
	eventRepo repositories.EventRepository,
	teamRepo repositories.TeamRepository,
	impactRepo repositories.ImpactLogRepository,
	uploader storage.FileUploader,
) UserService {
	return &userService{
		userRepo:   userRepo,
		eventRepo:  eventRepo,
		teamRepo:   teamRepo,
		impactRepo: impactRepo,
		uploader:   uploader,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	user.PasswordHash = ""

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		created, err := s.eventRepo.ListByCreator(gCtx, userID)
		if err != nil {
			return fmt.Errorf("failed to list created events: %w", err)
		}
		user.CreatedEvents = created
		return nil
	})

	g.Go(func() error {
		attended, err := s.eventRepo.ListByAttendee(gCtx, userID)
		if err != nil {
			return fmt.Errorf("failed to list attended events: %w", err)
		}
		user.AttendedEvents = attended
		return nil
	})

	g.Go(func() error {
		teams, err := s.teamRepo.ListByMember(gCtx, userID)
		if err != nil {
			return fmt.Errorf("failed to list teams: %w", err)
		}
		summaries := make([]models.Team, 0, len(teams))
		for _, team := range teams {
			summaries = append(summaries, *team)
		}
		user.Teams = summaries
		return nil
	})

	g.Go(func() error {
		logs, err := s.impactRepo.ListByUserID(gCtx, userID)
		if err != nil {
			return fmt.Errorf("failed to list impact logs: %w", err)
		}
		user.ImpactLogs = logs
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if user.AvatarKey != nil && s.uploader != nil {
		url := s.uploader.GetPublicURL(*user.AvatarKey)
		user.AvatarURL = &url
	}

	return user, nil
}

func (s *userService) UploadAvatar(ctx context.Context, userID int, contentType string, file io.Reader) (string, error) {
	if s.uploader == nil {
		return "", ErrUploadsNotConfigured
	}

	ext, ok := imageExtension(contentType)
	if !ok {
		return "", ErrUnsupportedFileType
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to get user %d: %w", userID, err)
	}

	key := fmt.Sprintf("avatars/user_%d%s", userID, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := s.userRepo.UpdateAvatarKey(ctx, userID, &result.Key); err != nil {
		return "", fmt.Errorf("failed to store avatar key: %w", err)
	}

	// Old object with a different extension becomes unreferenced;
	// remove it best-effort.
	if user.AvatarKey != nil && *user.AvatarKey != result.Key {
		_ = s.uploader.Delete(ctx, *user.AvatarKey)
	}

	return result.Location, nil
}

func imageExtension(contentType string) (string, bool) {
	switch contentType {
	case "image/png":
		return ".png", true
	case "image/jpeg":
		return ".jpg", true
	case "image/webp":
		return ".webp", true
	default:
		return "", false
	}
}
