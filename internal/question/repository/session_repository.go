package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/prepforge/examprep-backend/internal/common/errors"
	"github.com/prepforge/examprep-backend/internal/question/models"
	"github.com/prepforge/examprep-backend/pkg/logger"
)

type SessionRepository interface {
	CreateSession(ctx context.Context, session *models.PracticeSession) error
	GetSession(ctx context.Context, id uint) (*models.PracticeSession, error)
	RecordAnswer(ctx context.Context, id uint, correct bool) error
	FinishSession(ctx context.Context, id uint, endTime time.Time) error
}

type sessionRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionRepository(db *gorm.DB, baseLog *logger.Logger) SessionRepository {
	return &sessionRepository{db: db, log: baseLog.With("repo", "SessionRepository")}
}

func (r *sessionRepository) CreateSession(ctx context.Context, session *models.PracticeSession) error {
	result := r.db.WithContext(ctx).Create(session)
	if result.Error != nil {
		return errors.Internal("failed to create practice session", result.Error.Error())
	}
	return nil
}

func (r *sessionRepository) GetSession(ctx context.Context, id uint) (*models.PracticeSession, error) {
	var session models.PracticeSession
	result := r.db.WithContext(ctx).First(&session, id)
	if result.Error != nil {
		return nil, errors.NotFound("practice session")
	}
	return &session, nil
}

func (r *sessionRepository) RecordAnswer(ctx context.Context, id uint, correct bool) error {
	updates := map[string]interface{}{
		"answered_count": gorm.Expr("answered_count + 1"),
	}
	if correct {
		updates["correct_count"] = gorm.Expr("correct_count + 1")
	}
	result := r.db.WithContext(ctx).
		Model(&models.PracticeSession{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return errors.Internal("failed to update session counters", result.Error.Error())
	}
	return nil
}

func (r *sessionRepository) FinishSession(ctx context.Context, id uint, endTime time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.PracticeSession{}).
		Where("id = ?", id).
		Update("end_time", endTime)
	if result.Error != nil {
		return errors.Internal("failed to finish session", result.Error.Error())
	}
	return nil
}
