package repository

import (
	"context"
	"time"

	"github.com/vytor/profilesvc/internal/models"
)

// ProfileRepository is the record store for user profiles.
//
// Upsert performs lookup, create-or-update and write as one atomic step:
// two concurrent upserts for the same user never lose each other's fields.
// Get returns nil, nil when no record exists.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Upsert(ctx context.Context, userID string, update models.ProfileUpdate, now time.Time) (*models.UpsertResult, error)
	Count(ctx context.Context) (int, error)
}

// UpsertInPlace applies the create-or-update rule to existing (which may be nil).
// Callers must hold whatever lock or transaction guards existing.
func UpsertInPlace(existing *models.Profile, userID string, update models.ProfileUpdate, now time.Time) *models.UpsertResult {
	if existing == nil {
		return &models.UpsertResult{
			Profile: models.NewProfile(userID, update, now),
			Outcome: models.Created,
		}
	}
	update.Apply(existing)
	if now.Before(existing.CreatedAt) {
		now = existing.CreatedAt
	}
	existing.UpdatedAt = now
	return &models.UpsertResult{Profile: existing, Outcome: models.Updated}
}
