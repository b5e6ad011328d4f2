package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/prepforge/examprep-backend/internal/common/errors"
	"github.com/prepforge/examprep-backend/internal/question/models"
	"github.com/prepforge/examprep-backend/pkg/logger"
)

// AttemptCounts aggregates graded attempts for one scope.
type AttemptCounts struct {
	Total   int64
	Correct int64
}

type AttemptRepository interface {
	FindRecent(ctx context.Context, userID uint, limit int) ([]models.QuestionAttempt, error)
	CreateAttempt(ctx context.Context, attempt *models.QuestionAttempt) error
	CountByTopic(ctx context.Context, userID uint, topicID uint) (AttemptCounts, error)
	CountBySubject(ctx context.Context, userID uint, subjectID uint) (AttemptCounts, error)
	CountAll(ctx context.Context, userID uint) (AttemptCounts, error)
}

type attemptRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAttemptRepository(db *gorm.DB, baseLog *logger.Logger) AttemptRepository {
	return &attemptRepository{db: db, log: baseLog.With("repo", "AttemptRepository")}
}

// FindRecent returns the newest attempts first, with the question joined in
// for topic lookups.
func (r *attemptRepository) FindRecent(ctx context.Context, userID uint, limit int) ([]models.QuestionAttempt, error) {
	var attempts []models.QuestionAttempt
	result := r.db.WithContext(ctx).
		Preload("Question").
		Where("user_id = ?", userID).
		Order("attempted_at DESC").
		Limit(limit).
		Find(&attempts)
	if result.Error != nil {
		return nil, errors.Internal("failed to load recent attempts", result.Error.Error())
	}
	return attempts, nil
}

func (r *attemptRepository) CreateAttempt(ctx context.Context, attempt *models.QuestionAttempt) error {
	result := r.db.WithContext(ctx).Create(attempt)
	if result.Error != nil {
		return errors.Internal("failed to create attempt", result.Error.Error())
	}
	return nil
}

func (r *attemptRepository) CountByTopic(ctx context.Context, userID uint, topicID uint) (AttemptCounts, error) {
	return r.count(func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&models.QuestionAttempt{}).
			Joins("JOIN questions ON questions.id = question_attempts.question_id").
			Where("question_attempts.user_id = ? AND questions.topic_id = ?", userID, topicID)
	})
}

func (r *attemptRepository) CountBySubject(ctx context.Context, userID uint, subjectID uint) (AttemptCounts, error) {
	return r.count(func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&models.QuestionAttempt{}).
			Joins("JOIN questions ON questions.id = question_attempts.question_id").
			Where("question_attempts.user_id = ? AND questions.subject_id = ?", userID, subjectID)
	})
}

func (r *attemptRepository) CountAll(ctx context.Context, userID uint) (AttemptCounts, error) {
	return r.count(func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&models.QuestionAttempt{}).
			Where("question_attempts.user_id = ?", userID)
	})
}

// count runs the scoped query twice, once unfiltered and once restricted to
// correct attempts. The builder is re-invoked so finisher state never leaks
// between the two counts.
func (r *attemptRepository) count(scope func() *gorm.DB) (AttemptCounts, error) {
	var counts AttemptCounts
	if err := scope().Count(&counts.Total).Error; err != nil {
		return counts, errors.Internal("failed to count attempts", err.Error())
	}
	if err := scope().Where("question_attempts.is_correct = ?", true).Count(&counts.Correct).Error; err != nil {
		return counts, errors.Internal("failed to count correct attempts", err.Error())
	}
	return counts, nil
}
