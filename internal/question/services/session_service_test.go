package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/prepforge/examprep-backend/internal/common/errors"
	"github.com/prepforge/examprep-backend/internal/question/models"
	"github.com/prepforge/examprep-backend/internal/question/repository"
	subjectrepo "github.com/prepforge/examprep-backend/internal/subject/repository"
	"github.com/prepforge/examprep-backend/pkg/logger"
)

func newSessionService(t *testing.T, db *gorm.DB) *SessionService {
	t.Helper()
	log := logger.NewNop()
	return NewSessionService(
		repository.NewSessionRepository(db, log),
		subjectrepo.NewSubjectRepository(db, log),
	)
}

func TestStartSession(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(t, db)

	subject, _ := seedSubjectWithQuestions(t, db, 1)

	session, err := svc.StartSession(context.Background(), 1, models.StartSessionRequest{
		SubjectID:     subject.ID,
		QuestionCount: 10,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, uint(1), session.UserID)
	assert.Equal(t, 10, session.QuestionCount)
	assert.Nil(t, session.EndTime)
}

func TestStartSession_UnknownSubject(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(t, db)

	_, err := svc.StartSession(context.Background(), 1, models.StartSessionRequest{
		SubjectID:     999,
		QuestionCount: 10,
	})

	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.CodeNotFound, appErr.Code)
}

func TestStartSession_UnknownDifficulty(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(t, db)

	subject, _ := seedSubjectWithQuestions(t, db, 1)

	_, err := svc.StartSession(context.Background(), 1, models.StartSessionRequest{
		SubjectID:     subject.ID,
		Difficulty:    "BRUTAL",
		QuestionCount: 10,
	})

	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.CodeInvalidInput, appErr.Code)
}

func TestFinishSession(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(t, db)

	subject, _ := seedSubjectWithQuestions(t, db, 1)

	session, err := svc.StartSession(context.Background(), 1, models.StartSessionRequest{
		SubjectID:     subject.ID,
		QuestionCount: 4,
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.PracticeSession{}).
		Where("id = ?", session.ID).
		Updates(map[string]interface{}{"answered_count": 4, "correct_count": 3}).Error)

	summary, err := svc.FinishSession(context.Background(), 1, session.ID)

	require.NoError(t, err)
	assert.Equal(t, 4, summary.AnsweredCount)
	assert.Equal(t, 3, summary.CorrectCount)
	assert.InDelta(t, 75.0, summary.Accuracy, 1e-9)
	require.NotNil(t, summary.DurationSec)
}

func TestFinishSession_WrongUser(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(t, db)

	subject, _ := seedSubjectWithQuestions(t, db, 1)

	session, err := svc.StartSession(context.Background(), 1, models.StartSessionRequest{
		SubjectID:     subject.ID,
		QuestionCount: 4,
	})
	require.NoError(t, err)

	_, err = svc.FinishSession(context.Background(), 2, session.ID)

	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.CodeForbidden, appErr.Code)
}

func TestFinishSession_AlreadyFinished(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(t, db)

	subject, _ := seedSubjectWithQuestions(t, db, 1)

	session, err := svc.StartSession(context.Background(), 1, models.StartSessionRequest{
		SubjectID:     subject.ID,
		QuestionCount: 4,
	})
	require.NoError(t, err)

	_, err = svc.FinishSession(context.Background(), 1, session.ID)
	require.NoError(t, err)

	_, err = svc.FinishSession(context.Background(), 1, session.ID)
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.CodeConflict, appErr.Code)
}
