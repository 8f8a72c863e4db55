package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vytor/profilesvc/internal/logger"
	"github.com/vytor/profilesvc/internal/models"
	"github.com/vytor/profilesvc/internal/repository"
)

type profileRepository struct {
	mu       sync.RWMutex
	profiles map[string]*models.Profile
}

// NewProfileRepository creates a process-local ProfileRepository.
// Records live only as long as the returned value.
func NewProfileRepository() repository.ProfileRepository {
	return &profileRepository{profiles: make(map[string]*models.Profile)}
}

func (r *profileRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")

	r.mu.RLock()
	p, ok := r.profiles[userID]
	r.mu.RUnlock()

	if !ok {
		log.Debug("profile not found: user_id=%s", userID)
		return nil, nil
	}
	return p.Clone(), nil
}

func (r *profileRepository) Upsert(ctx context.Context, userID string, update models.ProfileUpdate, now time.Time) (*models.UpsertResult, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")

	r.mu.Lock()
	res := repository.UpsertInPlace(r.profiles[userID], userID, update, now)
	r.profiles[userID] = res.Profile
	out := res.Profile.Clone()
	r.mu.Unlock()

	log.Debug("profile %s: user_id=%s", res.Outcome, userID)
	return &models.UpsertResult{Profile: out, Outcome: res.Outcome}, nil
}

func (r *profileRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.profiles), nil
}
