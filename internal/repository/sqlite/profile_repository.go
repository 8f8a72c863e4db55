package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/profilesvc/internal/logger"
	"github.com/vytor/profilesvc/internal/models"
	"github.com/vytor/profilesvc/internal/repository"
)

var profileColumns = []string{"user_id", "email", "name", "created_at", "updated_at"}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a ProfileRepository backed by the profiles table.
func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("getting profile: user_id=%s", userID)

	p, err := getProfile(ctx, r.db, userID)
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, err
	}
	if p == nil {
		log.Debug("profile not found: user_id=%s", userID)
	}
	return p, nil
}

func (r *profileRepository) Upsert(ctx context.Context, userID string, update models.ProfileUpdate, now time.Time) (*models.UpsertResult, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("upserting profile: user_id=%s", userID)

	var res *models.UpsertResult
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		existing, err := getProfile(ctx, tx, userID)
		if err != nil {
			return err
		}

		res = repository.UpsertInPlace(existing, userID, update, now)
		p := res.Profile

		var query string
		var args []any
		if res.Outcome == models.Created {
			query, args, err = sqlBuilder.Insert("profiles").
				Columns(profileColumns...).
				Values(p.UserID, p.Email, p.Name, p.CreatedAt, p.UpdatedAt).
				ToSql()
		} else {
			query, args, err = sqlBuilder.Update("profiles").
				Set("email", p.Email).
				Set("name", p.Name).
				Set("updated_at", p.UpdatedAt).
				Where(squirrel.Eq{"user_id": p.UserID}).
				ToSql()
		}
		if err != nil {
			return fmt.Errorf("build upsert query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("write profile %s: %w", userID, err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to upsert profile: %v", err)
		return nil, err
	}

	log.Debug("profile %s: user_id=%s", res.Outcome, userID)
	return res, nil
}

func (r *profileRepository) Count(ctx context.Context) (int, error) {
	query, args, err := sqlBuilder.Select("COUNT(*)").From("profiles").ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		logger.FromContext(ctx).WithPrefix("profile_repo").Error("failed to count profiles: %v", err)
		return 0, err
	}
	return count, nil
}

func getProfile(ctx context.Context, q queryRower, userID string) (*models.Profile, error) {
	query, args, err := sqlBuilder.Select(profileColumns...).
		From("profiles").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var p models.Profile
	err = q.QueryRowContext(ctx, query, args...).Scan(&p.UserID, &p.Email, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
