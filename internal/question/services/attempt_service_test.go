package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	analyticsrepo "github.com/prepforge/examprep-backend/internal/analytics/repository"
	analyticsservices "github.com/prepforge/examprep-backend/internal/analytics/services"
	"github.com/prepforge/examprep-backend/internal/common/errors"
	"github.com/prepforge/examprep-backend/internal/question/models"
	"github.com/prepforge/examprep-backend/internal/question/repository"
	subjectrepo "github.com/prepforge/examprep-backend/internal/subject/repository"
	"github.com/prepforge/examprep-backend/pkg/logger"
)

func newAttemptService(t *testing.T, db *gorm.DB) *AttemptService {
	t.Helper()
	log := logger.NewNop()
	analytics := analyticsservices.NewAnalyticsService(
		analyticsrepo.NewProgressRepository(db, log),
		analyticsrepo.NewStreakRepository(db, log),
		repository.NewAttemptRepository(db, log),
		subjectrepo.NewSubjectRepository(db, log),
		log,
	)
	return NewAttemptService(
		repository.NewQuestionRepository(db, log),
		repository.NewAttemptRepository(db, log),
		repository.NewSessionRepository(db, log),
		analytics,
		log,
	)
}

func TestSubmitAnswer_CorrectnessComputedServerSide(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptService(t, db)

	_, questions := seedSubjectWithQuestions(t, db, 1)
	question := questions[0]

	correctID := question.Options[1].ID
	require.NoError(t, db.Model(&question).Update("correct_option_id", correctID).Error)

	resp, err := svc.SubmitAnswer(context.Background(), 1, models.SubmitAnswerRequest{
		QuestionID:       question.ID,
		SelectedOptionID: correctID,
	})
	require.NoError(t, err)
	assert.True(t, resp.IsCorrect)
	assert.Equal(t, correctID, resp.CorrectOptionID)

	resp, err = svc.SubmitAnswer(context.Background(), 1, models.SubmitAnswerRequest{
		QuestionID:       question.ID,
		SelectedOptionID: question.Options[0].ID,
	})
	require.NoError(t, err)
	assert.False(t, resp.IsCorrect)

	// Both attempts land; nothing is rewritten.
	var count int64
	require.NoError(t, db.Model(&models.QuestionAttempt{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestSubmitAnswer_OptionMustBelongToQuestion(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptService(t, db)

	_, questions := seedSubjectWithQuestions(t, db, 2)
	foreignOption := questions[1].Options[0].ID

	_, err := svc.SubmitAnswer(context.Background(), 1, models.SubmitAnswerRequest{
		QuestionID:       questions[0].ID,
		SelectedOptionID: foreignOption,
	})

	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.CodeInvalidInput, appErr.Code)
}

func TestSubmitAnswer_UpdatesTopicProgressAndStreak(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptService(t, db)

	_, questions := seedSubjectWithQuestions(t, db, 1)
	question := questions[0]
	correctID := question.Options[0].ID
	require.NoError(t, db.Model(&question).Update("correct_option_id", correctID).Error)

	_, err := svc.SubmitAnswer(context.Background(), 1, models.SubmitAnswerRequest{
		QuestionID:       question.ID,
		SelectedOptionID: correctID,
	})
	require.NoError(t, err)

	var progressRows, streakRows int64
	require.NoError(t, db.Table("user_progresses").Count(&progressRows).Error)
	require.NoError(t, db.Table("streaks").Count(&streakRows).Error)
	assert.Equal(t, int64(1), progressRows)
	assert.Equal(t, int64(1), streakRows)
}

func TestSubmitAnswer_SessionOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptService(t, db)

	subject, questions := seedSubjectWithQuestions(t, db, 1)

	session := models.PracticeSession{
		Token:     "token-1",
		UserID:    2,
		SubjectID: subject.ID,
	}
	require.NoError(t, db.Create(&session).Error)

	_, err := svc.SubmitAnswer(context.Background(), 1, models.SubmitAnswerRequest{
		QuestionID:        questions[0].ID,
		SelectedOptionID:  questions[0].Options[0].ID,
		PracticeSessionID: &session.ID,
	})

	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.CodeForbidden, appErr.Code)
}

func TestSubmitAnswer_SessionCountersAdvance(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptService(t, db)

	subject, questions := seedSubjectWithQuestions(t, db, 1)
	question := questions[0]
	correctID := question.Options[0].ID
	require.NoError(t, db.Model(&question).Update("correct_option_id", correctID).Error)

	session := models.PracticeSession{
		Token:         "token-2",
		UserID:        1,
		SubjectID:     subject.ID,
		QuestionCount: 5,
	}
	require.NoError(t, db.Create(&session).Error)

	_, err := svc.SubmitAnswer(context.Background(), 1, models.SubmitAnswerRequest{
		QuestionID:        question.ID,
		SelectedOptionID:  correctID,
		PracticeSessionID: &session.ID,
	})
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(context.Background(), 1, models.SubmitAnswerRequest{
		QuestionID:        question.ID,
		SelectedOptionID:  question.Options[1].ID,
		PracticeSessionID: &session.ID,
	})
	require.NoError(t, err)

	var reloaded models.PracticeSession
	require.NoError(t, db.First(&reloaded, session.ID).Error)
	assert.Equal(t, 2, reloaded.AnsweredCount)
	assert.Equal(t, 1, reloaded.CorrectCount)
}

func TestSubmitAnswer_UnknownQuestion(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptService(t, db)

	_, err := svc.SubmitAnswer(context.Background(), 1, models.SubmitAnswerRequest{
		QuestionID:       999,
		SelectedOptionID: 1,
	})

	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.CodeNotFound, appErr.Code)
}
