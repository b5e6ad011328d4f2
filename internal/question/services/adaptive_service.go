package services

import (
	"context"
	"math"
	"time"

	"github.com/prepforge/examprep-backend/internal/common/errors"
	"github.com/prepforge/examprep-backend/internal/question/models"
	"github.com/prepforge/examprep-backend/internal/question/repository"
	subjectrepo "github.com/prepforge/examprep-backend/internal/subject/repository"
	"github.com/prepforge/examprep-backend/pkg/logger"
)

const (
	// Attempts outside this window are treated as if they never happened,
	// both for proficiency and for the per-question repetition filter.
	recentAttemptWindow = 50

	// Proficiency thresholds for the difficulty bias.
	lowProficiencyMean  = 0.4
	highProficiencyMean = 0.8

	// Candidate headroom so the repetition filter has room to drop items.
	candidateMultiplier = 2
)

type AdaptiveService struct {
	questions repository.QuestionRepository
	attempts  repository.AttemptRepository
	subjects  subjectrepo.SubjectRepository
	log       *logger.Logger
	now       func() time.Time
}

func NewAdaptiveService(
	questions repository.QuestionRepository,
	attempts repository.AttemptRepository,
	subjects subjectrepo.SubjectRepository,
	baseLog *logger.Logger,
) *AdaptiveService {
	return &AdaptiveService{
		questions: questions,
		attempts:  attempts,
		subjects:  subjects,
		log:       baseLog.With("service", "AdaptiveService"),
		now:       time.Now,
	}
}

// SelectQuestions picks the user's next practice batch: candidates matching
// the filters, ordered by the proficiency-derived difficulty bias, thinned
// by the spaced-repetition filter, capped at count. Fewer than count
// survivors is a valid result.
func (s *AdaptiveService) SelectQuestions(ctx context.Context, userID uint, req models.SelectQuestionsRequest) ([]models.QuestionView, error) {
	filter, err := s.buildFilter(ctx, req)
	if err != nil {
		return nil, err
	}

	recent, err := s.attempts.FindRecent(ctx, userID, recentAttemptWindow)
	if err != nil {
		return nil, err
	}

	proficiency := TopicProficiency(recent)
	filter.Order = difficultyOrder(meanProficiency(proficiency))
	filter.Limit = req.Count * candidateMultiplier

	candidates, err := s.questions.FindCandidates(ctx, *filter)
	if err != nil {
		return nil, err
	}

	byQuestion := attemptsByQuestion(recent)
	now := s.now()

	views := make([]models.QuestionView, 0, req.Count)
	for _, q := range candidates {
		if !questionDue(byQuestion[q.ID], now) {
			continue
		}
		views = append(views, q.View())
		if len(views) == req.Count {
			break
		}
	}

	s.log.Debug("adaptive selection",
		"user_id", userID,
		"candidates", len(candidates),
		"selected", len(views),
	)
	return views, nil
}

func (s *AdaptiveService) buildFilter(ctx context.Context, req models.SelectQuestionsRequest) (*repository.CandidateFilter, error) {
	if _, err := s.subjects.GetSubject(ctx, req.SubjectID); err != nil {
		return nil, err
	}
	if req.TopicID != nil {
		if _, err := s.subjects.GetTopic(ctx, *req.TopicID); err != nil {
			return nil, err
		}
	}

	filter := &repository.CandidateFilter{
		SubjectID:  req.SubjectID,
		TopicID:    req.TopicID,
		ExcludeIDs: req.ExcludeIDs,
	}

	if req.Difficulty != "" {
		d := models.Difficulty(req.Difficulty)
		if !d.Valid() {
			return nil, errors.InvalidInput("unknown difficulty", req.Difficulty)
		}
		filter.Difficulty = &d
	}
	if req.CognitiveLevel != "" {
		l := models.CognitiveLevel(req.CognitiveLevel)
		if !l.Valid() {
			return nil, errors.InvalidInput("unknown cognitive level", req.CognitiveLevel)
		}
		filter.CognitiveLevel = &l
	}
	return filter, nil
}

// TopicProficiency computes the per-topic correct ratio over the attempt
// sample. Attempts on questions without a topic are ignored.
func TopicProficiency(attempts []models.QuestionAttempt) map[uint]float64 {
	totals := make(map[uint]int)
	corrects := make(map[uint]int)

	for _, attempt := range attempts {
		if attempt.Question == nil || attempt.Question.TopicID == nil {
			continue
		}
		topicID := *attempt.Question.TopicID
		totals[topicID]++
		if attempt.IsCorrect {
			corrects[topicID]++
		}
	}

	proficiency := make(map[uint]float64, len(totals))
	for topicID, total := range totals {
		proficiency[topicID] = float64(corrects[topicID]) / float64(total)
	}
	return proficiency
}

func meanProficiency(proficiency map[uint]float64) float64 {
	if len(proficiency) == 0 {
		return 0
	}
	sum := 0.0
	for _, ratio := range proficiency {
		sum += ratio
	}
	return sum / float64(len(proficiency))
}

// difficultyOrder maps mean proficiency to an ordering bias. Strong users
// get hard questions first; everyone else, including the middle band,
// starts easy.
func difficultyOrder(mean float64) repository.DifficultyOrder {
	if mean < lowProficiencyMean {
		return repository.EasiestFirst
	}
	if mean > highProficiencyMean {
		return repository.HardestFirst
	}
	return repository.EasiestFirst
}

func attemptsByQuestion(attempts []models.QuestionAttempt) map[uint][]models.QuestionAttempt {
	byQuestion := make(map[uint][]models.QuestionAttempt)
	for _, attempt := range attempts {
		byQuestion[attempt.QuestionID] = append(byQuestion[attempt.QuestionID], attempt)
	}
	return byQuestion
}

// questionDue decides eligibility from the user's attempts on one question,
// newest first. Never-attempted questions are always due. After a correct
// answer the question backs off exponentially in the cumulative number of
// correct attempts; after an incorrect one it returns the next day.
func questionDue(attempts []models.QuestionAttempt, now time.Time) bool {
	if len(attempts) == 0 {
		return true
	}

	latest := attempts[0]
	daysSince := now.Sub(latest.AttemptedAt).Hours() / 24

	if !latest.IsCorrect {
		return daysSince >= 1
	}

	correctCount := 0
	for _, attempt := range attempts {
		if attempt.IsCorrect {
			correctCount++
		}
	}
	return daysSince >= math.Pow(2, float64(correctCount))
}
