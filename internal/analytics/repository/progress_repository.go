package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/prepforge/examprep-backend/internal/analytics/models"
	"github.com/prepforge/examprep-backend/internal/common/errors"
	"github.com/prepforge/examprep-backend/pkg/logger"
)

type ProgressRepository interface {
	UpsertProgress(ctx context.Context, userID uint, topicID uint, correct bool) error
	ListByUser(ctx context.Context, userID uint) ([]models.UserProgress, error)
}

type progressRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressRepository(db *gorm.DB, baseLog *logger.Logger) ProgressRepository {
	return &progressRepository{db: db, log: baseLog.With("repo", "ProgressRepository")}
}

// UpsertProgress bumps mastery on correct attempts and always refreshes
// last_reviewed.
func (r *progressRepository) UpsertProgress(ctx context.Context, userID uint, topicID uint, correct bool) error {
	var progress models.UserProgress
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND topic_id = ?", userID, topicID).
		First(&progress)

	now := time.Now()
	if result.Error != nil {
		score := 0
		if correct {
			score = 1
		}
		progress = models.UserProgress{
			UserID:       userID,
			TopicID:      topicID,
			MasteryScore: score,
			LastReviewed: now,
		}
		if err := r.db.WithContext(ctx).Create(&progress).Error; err != nil {
			return errors.Internal("failed to create progress", err.Error())
		}
		return nil
	}

	if correct {
		progress.MasteryScore++
	}
	progress.LastReviewed = now
	if err := r.db.WithContext(ctx).Save(&progress).Error; err != nil {
		return errors.Internal("failed to update progress", err.Error())
	}
	return nil
}

func (r *progressRepository) ListByUser(ctx context.Context, userID uint) ([]models.UserProgress, error) {
	var rows []models.UserProgress
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows)
	if result.Error != nil {
		return nil, errors.Internal("failed to list progress", result.Error.Error())
	}
	return rows, nil
}
