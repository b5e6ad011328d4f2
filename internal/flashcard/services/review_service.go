package services

import (
	"context"
	"math"
	"time"

	"github.com/prepforge/examprep-backend/internal/common/errors"
	"github.com/prepforge/examprep-backend/internal/flashcard/models"
	"github.com/prepforge/examprep-backend/internal/flashcard/repository"
	subjectrepo "github.com/prepforge/examprep-backend/internal/subject/repository"
	"github.com/prepforge/examprep-backend/pkg/logger"
)

// Cards whose ease climbed past the default are considered mastered once
// their last review succeeded.
const masteredEaseThreshold = models.DefaultEaseFactor

type ReviewService struct {
	cards    repository.FlashcardRepository
	reviews  repository.ReviewRepository
	subjects subjectrepo.SubjectRepository
	log      *logger.Logger
	now      func() time.Time
}

func NewReviewService(
	cards repository.FlashcardRepository,
	reviews repository.ReviewRepository,
	subjects subjectrepo.SubjectRepository,
	baseLog *logger.Logger,
) *ReviewService {
	return &ReviewService{
		cards:    cards,
		reviews:  reviews,
		subjects: subjects,
		log:      baseLog.With("service", "ReviewService"),
		now:      time.Now,
	}
}

// NextSchedule applies one review outcome to the carried-forward
// (interval, ease) state. The table follows the SuperMemo family:
//
//	again: interval resets to a day, ease drops 0.2
//	hard:  interval grows 1.2x, ease drops 0.15
//	good:  interval grows by ease, ease unchanged
//	easy:  interval grows by ease with a 1.3x bonus, ease gains 0.15
//
// Ease is floored at 1.3 and intervals at one day.
func NextSchedule(intervalDays int, ease float64, response models.ReviewResponse) (int, float64) {
	var newInterval int
	newEase := ease

	switch response {
	case models.ResponseAgain:
		newInterval = 1
		newEase = math.Max(models.MinEaseFactor, ease-0.2)
	case models.ResponseHard:
		newInterval = int(math.Round(float64(intervalDays) * 1.2))
		newEase = math.Max(models.MinEaseFactor, ease-0.15)
	case models.ResponseGood:
		newInterval = int(math.Round(float64(intervalDays) * ease))
	case models.ResponseEasy:
		newInterval = int(math.Round(float64(intervalDays) * ease * 1.3))
		newEase = ease + 0.15
	}

	if newInterval < models.MinIntervalDays {
		newInterval = models.MinIntervalDays
	}
	return newInterval, newEase
}

// Review grades one flashcard review and appends the new scheduling row.
// Prior history is never rewritten; concurrent reviews of the same card
// both land and the later row wins for scheduling.
func (s *ReviewService) Review(ctx context.Context, userID uint, flashcardID uint, req models.ReviewRequest) (*models.FlashcardReview, error) {
	response := models.ReviewResponse(req.Response)
	if !response.Valid() {
		return nil, errors.InvalidInput("unknown review response", req.Response)
	}

	if _, err := s.cards.GetFlashcard(ctx, flashcardID); err != nil {
		return nil, err
	}

	intervalDays := models.DefaultIntervalDays
	ease := models.DefaultEaseFactor
	if latest, err := s.reviews.LatestReview(ctx, userID, flashcardID); err != nil {
		return nil, err
	} else if latest != nil {
		intervalDays = latest.IntervalDays
		ease = latest.EaseFactor
	}

	newInterval, newEase := NextSchedule(intervalDays, ease, response)
	nextReview := s.now().AddDate(0, 0, newInterval)

	review := &models.FlashcardReview{
		UserID:         userID,
		FlashcardID:    flashcardID,
		RecallSuccess:  response == models.ResponseGood || response == models.ResponseEasy,
		ResponseTimeMs: req.ResponseTimeMs,
		IntervalDays:   newInterval,
		EaseFactor:     newEase,
		NextReview:     &nextReview,
	}
	if err := s.reviews.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// DueForReview returns up to limit due cards from the user's selected
// subjects, plus the new/learning/mastered split across the whole pool.
// A card is due when it has no review yet, its latest review has no next
// time, or that time has passed.
func (s *ReviewService) DueForReview(ctx context.Context, userID uint, limit int) (*models.DueCardsResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	subjectIDs, err := s.subjects.GetUserSubjectIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	cards, err := s.cards.FindBySubjects(ctx, subjectIDs)
	if err != nil {
		return nil, err
	}

	cardIDs := make([]uint, len(cards))
	for i, card := range cards {
		cardIDs[i] = card.ID
	}
	latest, err := s.reviews.LatestPerCard(ctx, userID, cardIDs)
	if err != nil {
		return nil, err
	}

	now := s.now()
	response := &models.DueCardsResponse{Cards: make([]models.Flashcard, 0, limit)}

	for _, card := range cards {
		review, reviewed := latest[card.ID]

		switch {
		case !reviewed:
			response.Stats.New++
		case review.EaseFactor > masteredEaseThreshold && review.RecallSuccess:
			response.Stats.Mastered++
		default:
			response.Stats.Learning++
		}

		due := !reviewed || review.NextReview == nil || !review.NextReview.After(now)
		if due && len(response.Cards) < limit {
			response.Cards = append(response.Cards, card)
		}
	}

	return response, nil
}
