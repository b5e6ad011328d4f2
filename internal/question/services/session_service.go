package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/prepforge/examprep-backend/internal/common/errors"
	"github.com/prepforge/examprep-backend/internal/question/models"
	"github.com/prepforge/examprep-backend/internal/question/repository"
	subjectrepo "github.com/prepforge/examprep-backend/internal/subject/repository"
)

type SessionService struct {
	sessions repository.SessionRepository
	subjects subjectrepo.SubjectRepository
}

func NewSessionService(sessions repository.SessionRepository, subjects subjectrepo.SubjectRepository) *SessionService {
	return &SessionService{sessions: sessions, subjects: subjects}
}

// StartSession opens a practice session for a subject.
func (s *SessionService) StartSession(ctx context.Context, userID uint, req models.StartSessionRequest) (*models.PracticeSession, error) {
	if _, err := s.subjects.GetSubject(ctx, req.SubjectID); err != nil {
		return nil, err
	}
	if req.TopicID != nil {
		if _, err := s.subjects.GetTopic(ctx, *req.TopicID); err != nil {
			return nil, err
		}
	}

	session := &models.PracticeSession{
		Token:         uuid.NewString(),
		UserID:        userID,
		SubjectID:     req.SubjectID,
		TopicID:       req.TopicID,
		QuestionCount: req.QuestionCount,
		StartTime:     time.Now(),
	}
	if req.Difficulty != "" {
		d := models.Difficulty(req.Difficulty)
		if !d.Valid() {
			return nil, errors.InvalidInput("unknown difficulty", req.Difficulty)
		}
		session.Difficulty = &d
	}

	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// FinishSession closes a session and returns its summary.
func (s *SessionService) FinishSession(ctx context.Context, userID uint, sessionID uint) (*models.SessionSummaryResponse, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, errors.Forbidden("session belongs to another user")
	}
	if session.EndTime != nil {
		return nil, errors.Conflict("session already finished")
	}

	endTime := time.Now()
	if err := s.sessions.FinishSession(ctx, sessionID, endTime); err != nil {
		return nil, err
	}

	// Re-read for final counters.
	session, err = s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	accuracy := 0.0
	if session.AnsweredCount > 0 {
		accuracy = float64(session.CorrectCount) / float64(session.AnsweredCount) * 100
	}
	duration := endTime.Sub(session.StartTime).Seconds()

	return &models.SessionSummaryResponse{
		SessionID:     session.ID,
		QuestionCount: session.QuestionCount,
		AnsweredCount: session.AnsweredCount,
		CorrectCount:  session.CorrectCount,
		Accuracy:      accuracy,
		DurationSec:   &duration,
	}, nil
}
