package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/prepforge/examprep-backend/internal/analytics/models"
	"github.com/prepforge/examprep-backend/internal/common/errors"
	"github.com/prepforge/examprep-backend/pkg/logger"
)

type StreakRepository interface {
	// LatestStreak returns the most recently updated streak row for the
	// user, or nil if none exists.
	LatestStreak(ctx context.Context, userID uint) (*models.Streak, error)
	SaveStreak(ctx context.Context, streak *models.Streak) error
}

type streakRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStreakRepository(db *gorm.DB, baseLog *logger.Logger) StreakRepository {
	return &streakRepository{db: db, log: baseLog.With("repo", "StreakRepository")}
}

func (r *streakRepository) LatestStreak(ctx context.Context, userID uint) (*models.Streak, error) {
	var streak models.Streak
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		First(&streak)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Internal("failed to load streak", result.Error.Error())
	}
	return &streak, nil
}

func (r *streakRepository) SaveStreak(ctx context.Context, streak *models.Streak) error {
	result := r.db.WithContext(ctx).Save(streak)
	if result.Error != nil {
		return errors.Internal("failed to save streak", result.Error.Error())
	}
	return nil
}
