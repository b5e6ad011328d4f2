package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/prepforge/examprep-backend/internal/common/errors"
	"github.com/prepforge/examprep-backend/internal/subject/models"
	"github.com/prepforge/examprep-backend/pkg/logger"
)

type SubjectRepository interface {
	ListSubjects(ctx context.Context) ([]models.Subject, error)
	GetSubject(ctx context.Context, id uint) (*models.Subject, error)
	GetTopic(ctx context.Context, id uint) (*models.Topic, error)
	FindSubjectByName(ctx context.Context, name string) (*models.Subject, error)
	FindTopicByName(ctx context.Context, subjectID uint, name string) (*models.Topic, error)
	GetUserSubjectIDs(ctx context.Context, userID uint) ([]uint, error)
	SetUserSubjects(ctx context.Context, userID uint, subjectIDs []uint) error
}

type subjectRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubjectRepository(db *gorm.DB, baseLog *logger.Logger) SubjectRepository {
	return &subjectRepository{db: db, log: baseLog.With("repo", "SubjectRepository")}
}

func (r *subjectRepository) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	var subjects []models.Subject
	result := r.db.WithContext(ctx).Preload("Topics").Order("name ASC").Find(&subjects)
	if result.Error != nil {
		return nil, errors.Internal("failed to list subjects", result.Error.Error())
	}
	return subjects, nil
}

func (r *subjectRepository) GetSubject(ctx context.Context, id uint) (*models.Subject, error) {
	var subject models.Subject
	result := r.db.WithContext(ctx).Preload("Topics").First(&subject, id)
	if result.Error != nil {
		return nil, errors.NotFound("subject")
	}
	return &subject, nil
}

func (r *subjectRepository) GetTopic(ctx context.Context, id uint) (*models.Topic, error) {
	var topic models.Topic
	result := r.db.WithContext(ctx).First(&topic, id)
	if result.Error != nil {
		return nil, errors.NotFound("topic")
	}
	return &topic, nil
}

func (r *subjectRepository) FindSubjectByName(ctx context.Context, name string) (*models.Subject, error) {
	var subject models.Subject
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&subject)
	if result.Error != nil {
		return nil, errors.InvalidInput("unknown subject", name)
	}
	return &subject, nil
}

func (r *subjectRepository) FindTopicByName(ctx context.Context, subjectID uint, name string) (*models.Topic, error) {
	var topic models.Topic
	result := r.db.WithContext(ctx).
		Where("subject_id = ? AND name = ?", subjectID, name).
		First(&topic)
	if result.Error != nil {
		return nil, errors.InvalidInput("unknown topic", name)
	}
	return &topic, nil
}

func (r *subjectRepository) GetUserSubjectIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	result := r.db.WithContext(ctx).
		Model(&models.UserSubject{}).
		Where("user_id = ?", userID).
		Pluck("subject_id", &ids)
	if result.Error != nil {
		return nil, errors.Internal("failed to load user subjects", result.Error.Error())
	}
	return ids, nil
}

func (r *subjectRepository) SetUserSubjects(ctx context.Context, userID uint, subjectIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserSubject{}).Error; err != nil {
			return err
		}
		rows := make([]models.UserSubject, 0, len(subjectIDs))
		for _, id := range subjectIDs {
			rows = append(rows, models.UserSubject{UserID: userID, SubjectID: id})
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return errors.Internal("failed to set user subjects", err.Error())
	}
	return nil
}
