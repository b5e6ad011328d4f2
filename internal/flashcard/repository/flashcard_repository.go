package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/prepforge/examprep-backend/internal/common/errors"
	"github.com/prepforge/examprep-backend/internal/flashcard/models"
	"github.com/prepforge/examprep-backend/pkg/logger"
)

type FlashcardRepository interface {
	GetFlashcard(ctx context.Context, id uint) (*models.Flashcard, error)
	FindBySubjects(ctx context.Context, subjectIDs []uint) ([]models.Flashcard, error)
	CreateFlashcard(ctx context.Context, card *models.Flashcard) error
}

type flashcardRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFlashcardRepository(db *gorm.DB, baseLog *logger.Logger) FlashcardRepository {
	return &flashcardRepository{db: db, log: baseLog.With("repo", "FlashcardRepository")}
}

func (r *flashcardRepository) GetFlashcard(ctx context.Context, id uint) (*models.Flashcard, error) {
	var card models.Flashcard
	result := r.db.WithContext(ctx).First(&card, id)
	if result.Error != nil {
		return nil, errors.NotFound("flashcard")
	}
	return &card, nil
}

func (r *flashcardRepository) FindBySubjects(ctx context.Context, subjectIDs []uint) ([]models.Flashcard, error) {
	if len(subjectIDs) == 0 {
		return []models.Flashcard{}, nil
	}
	var cards []models.Flashcard
	result := r.db.WithContext(ctx).
		Where("subject_id IN ?", subjectIDs).
		Order("created_at ASC").
		Find(&cards)
	if result.Error != nil {
		return nil, errors.Internal("failed to load flashcards", result.Error.Error())
	}
	return cards, nil
}

func (r *flashcardRepository) CreateFlashcard(ctx context.Context, card *models.Flashcard) error {
	result := r.db.WithContext(ctx).Create(card)
	if result.Error != nil {
		return errors.Internal("failed to create flashcard", result.Error.Error())
	}
	return nil
}
