package services

import (
	"context"
	"strconv"

	analyticsservices "github.com/prepforge/examprep-backend/internal/analytics/services"
	"github.com/prepforge/examprep-backend/internal/common/errors"
	"github.com/prepforge/examprep-backend/internal/question/models"
	"github.com/prepforge/examprep-backend/internal/question/repository"
	"github.com/prepforge/examprep-backend/pkg/logger"
)

type AttemptService struct {
	questions repository.QuestionRepository
	attempts  repository.AttemptRepository
	sessions  repository.SessionRepository
	analytics *analyticsservices.AnalyticsService
	log       *logger.Logger
}

func NewAttemptService(
	questions repository.QuestionRepository,
	attempts repository.AttemptRepository,
	sessions repository.SessionRepository,
	analytics *analyticsservices.AnalyticsService,
	baseLog *logger.Logger,
) *AttemptService {
	return &AttemptService{
		questions: questions,
		attempts:  attempts,
		sessions:  sessions,
		analytics: analytics,
		log:       baseLog.With("service", "AttemptService"),
	}
}

// SubmitAnswer grades one answer. Correctness is recomputed against the
// stored correct option; the attempt row is append-only. Topic mastery,
// the daily streak, and the open session's counters are updated afterward.
func (s *AttemptService) SubmitAnswer(ctx context.Context, userID uint, req models.SubmitAnswerRequest) (*models.SubmitAnswerResponse, error) {
	question, err := s.questions.GetQuestion(ctx, req.QuestionID)
	if err != nil {
		return nil, err
	}

	if !optionBelongs(question, req.SelectedOptionID) {
		return nil, errors.InvalidInput("selected option does not belong to question",
			strconv.FormatUint(uint64(req.SelectedOptionID), 10))
	}

	if req.PracticeSessionID != nil {
		session, err := s.sessions.GetSession(ctx, *req.PracticeSessionID)
		if err != nil {
			return nil, err
		}
		if session.UserID != userID {
			return nil, errors.Forbidden("session belongs to another user")
		}
	}

	isCorrect := req.SelectedOptionID == question.CorrectOptionID

	attempt := &models.QuestionAttempt{
		UserID:            userID,
		QuestionID:        question.ID,
		SelectedOption:    strconv.FormatUint(uint64(req.SelectedOptionID), 10),
		IsCorrect:         isCorrect,
		TimeTakenSeconds:  req.TimeTakenSeconds,
		PracticeSessionID: req.PracticeSessionID,
		ConfidenceLevel:   req.ConfidenceLevel,
	}
	if err := s.attempts.CreateAttempt(ctx, attempt); err != nil {
		return nil, err
	}

	if question.TopicID != nil {
		if err := s.analytics.RecordTopicOutcome(ctx, userID, *question.TopicID, isCorrect); err != nil {
			s.log.Warn("failed to update topic progress", "user_id", userID, "error", err)
		}
	}
	if err := s.analytics.RecordActivity(ctx, userID); err != nil {
		s.log.Warn("failed to update streak", "user_id", userID, "error", err)
	}
	if req.PracticeSessionID != nil {
		if err := s.sessions.RecordAnswer(ctx, *req.PracticeSessionID, isCorrect); err != nil {
			s.log.Warn("failed to update session counters", "session_id", *req.PracticeSessionID, "error", err)
		}
	}

	return &models.SubmitAnswerResponse{
		AttemptID:       attempt.ID,
		IsCorrect:       isCorrect,
		CorrectOptionID: question.CorrectOptionID,
	}, nil
}

func optionBelongs(question *models.Question, optionID uint) bool {
	for _, option := range question.Options {
		if option.ID == optionID {
			return true
		}
	}
	return false
}
