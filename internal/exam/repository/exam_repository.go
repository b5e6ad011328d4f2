package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/prepforge/examprep-backend/internal/common/errors"
	"github.com/prepforge/examprep-backend/internal/exam/models"
	"github.com/prepforge/examprep-backend/pkg/logger"
)

type ExamRepository interface {
	CreateExam(ctx context.Context, exam *models.MockExam) error
	GetExamWithQuestions(ctx context.Context, id uint) (*models.MockExam, error)
	// SaveGrading persists the graded question rows and the exam summary
	// in one transaction.
	SaveGrading(ctx context.Context, exam *models.MockExam, questions []models.MockExamQuestion) error
}

type examRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExamRepository(db *gorm.DB, baseLog *logger.Logger) ExamRepository {
	return &examRepository{db: db, log: baseLog.With("repo", "ExamRepository")}
}

func (r *examRepository) CreateExam(ctx context.Context, exam *models.MockExam) error {
	result := r.db.WithContext(ctx).Create(exam)
	if result.Error != nil {
		return errors.Internal("failed to create exam", result.Error.Error())
	}
	return nil
}

func (r *examRepository) GetExamWithQuestions(ctx context.Context, id uint) (*models.MockExam, error) {
	var exam models.MockExam
	result := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Subjects").
		First(&exam, id)
	if result.Error != nil {
		return nil, errors.NotFound("mock exam")
	}
	return &exam, nil
}

func (r *examRepository) SaveGrading(ctx context.Context, exam *models.MockExam, questions []models.MockExamQuestion) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range questions {
			q := &questions[i]
			if err := tx.Model(&models.MockExamQuestion{}).
				Where("id = ?", q.ID).
				Updates(map[string]interface{}{
					"user_answer":           q.UserAnswer,
					"is_correct":            q.IsCorrect,
					"response_time_seconds": q.ResponseTimeSeconds,
				}).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.MockExam{}).
			Where("id = ?", exam.ID).
			Updates(map[string]interface{}{
				"status":          exam.Status,
				"correct_answers": exam.CorrectAnswers,
				"percentage":      exam.Percentage,
				"end_time":        exam.EndTime,
				"completed_at":    exam.CompletedAt,
			}).Error
	})
	if err != nil {
		return errors.Internal("failed to save grading", err.Error())
	}
	return nil
}
