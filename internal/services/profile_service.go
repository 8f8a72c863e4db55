package services

import (
	"context"
	"time"

	"github.com/vytor/profilesvc/internal/errors"
	"github.com/vytor/profilesvc/internal/logger"
	"github.com/vytor/profilesvc/internal/models"
	"github.com/vytor/profilesvc/internal/repository"
)

// ProfileService handles profile lookup and create-or-update.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpsertProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.UpsertResult, error)
	CountProfiles(ctx context.Context) (int, error)
}

// Clock returns the current time. Tests swap it for a fixed sequence.
type Clock func() time.Time

// SystemClock is UTC wall time at millisecond resolution, which is what
// the JSON timestamps can carry.
func SystemClock() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	now         Clock
}

// NewProfileService creates a new ProfileService. A nil clock means SystemClock.
func NewProfileService(profileRepo repository.ProfileRepository, clock Clock) ProfileService {
	if clock == nil {
		clock = SystemClock
	}
	return &profileService{profileRepo: profileRepo, now: clock}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting profile: user_id=%s", userID)

	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("User")
	}
	return profile, nil
}

func (s *profileService) UpsertProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.UpsertResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("upserting profile: user_id=%s", userID)

	res, err := s.profileRepo.Upsert(ctx, userID, update, s.now())
	if err != nil {
		log.Error("failed to upsert profile: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("profile %s: user_id=%s", res.Outcome, userID)
	return res, nil
}

func (s *profileService) CountProfiles(ctx context.Context) (int, error) {
	n, err := s.profileRepo.Count(ctx)
	if err != nil {
		return 0, errors.NewInternalError(err)
	}
	return n, nil
}
