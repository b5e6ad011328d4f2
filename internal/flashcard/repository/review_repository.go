package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/prepforge/examprep-backend/internal/common/errors"
	"github.com/prepforge/examprep-backend/internal/flashcard/models"
	"github.com/prepforge/examprep-backend/pkg/logger"
)

type ReviewRepository interface {
	// LatestReview returns the newest review row for the pair, or nil.
	LatestReview(ctx context.Context, userID uint, flashcardID uint) (*models.FlashcardReview, error)
	// LatestPerCard returns the newest review per card for one user.
	LatestPerCard(ctx context.Context, userID uint, cardIDs []uint) (map[uint]models.FlashcardReview, error)
	CreateReview(ctx context.Context, review *models.FlashcardReview) error
}

type reviewRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReviewRepository(db *gorm.DB, baseLog *logger.Logger) ReviewRepository {
	return &reviewRepository{db: db, log: baseLog.With("repo", "ReviewRepository")}
}

func (r *reviewRepository) LatestReview(ctx context.Context, userID uint, flashcardID uint) (*models.FlashcardReview, error) {
	var review models.FlashcardReview
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND flashcard_id = ?", userID, flashcardID).
		Order("created_at DESC, id DESC").
		First(&review)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Internal("failed to load review", result.Error.Error())
	}
	return &review, nil
}

func (r *reviewRepository) LatestPerCard(ctx context.Context, userID uint, cardIDs []uint) (map[uint]models.FlashcardReview, error) {
	latest := make(map[uint]models.FlashcardReview, len(cardIDs))
	if len(cardIDs) == 0 {
		return latest, nil
	}

	var reviews []models.FlashcardReview
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND flashcard_id IN ?", userID, cardIDs).
		Order("created_at DESC, id DESC").
		Find(&reviews)
	if result.Error != nil {
		return nil, errors.Internal("failed to load reviews", result.Error.Error())
	}

	// Rows come back newest first; keep the first seen per card.
	for _, review := range reviews {
		if _, seen := latest[review.FlashcardID]; !seen {
			latest[review.FlashcardID] = review
		}
	}
	return latest, nil
}

func (r *reviewRepository) CreateReview(ctx context.Context, review *models.FlashcardReview) error {
	result := r.db.WithContext(ctx).Create(review)
	if result.Error != nil {
		return errors.Internal("failed to create review", result.Error.Error())
	}
	return nil
}
