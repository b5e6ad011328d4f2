package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	analyticsmodels "github.com/prepforge/examprep-backend/internal/analytics/models"
	analyticsrepo "github.com/prepforge/examprep-backend/internal/analytics/repository"
	analyticsservices "github.com/prepforge/examprep-backend/internal/analytics/services"
	"github.com/prepforge/examprep-backend/internal/common/middleware"
	"github.com/prepforge/examprep-backend/internal/question/models"
	"github.com/prepforge/examprep-backend/internal/question/repository"
	"github.com/prepforge/examprep-backend/internal/question/services"
	subjectmodels "github.com/prepforge/examprep-backend/internal/subject/models"
	subjectrepo "github.com/prepforge/examprep-backend/internal/subject/repository"
	"github.com/prepforge/examprep-backend/pkg/logger"
)

const testSecret = "test-secret"

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	token  string
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&subjectmodels.Subject{},
		&subjectmodels.Topic{},
		&models.Question{},
		&models.QuestionOption{},
		&models.QuestionAttempt{},
		&models.PracticeSession{},
		&analyticsmodels.UserProgress{},
		&analyticsmodels.Streak{},
	))

	log := logger.NewNop()
	subjects := subjectrepo.NewSubjectRepository(db, log)
	questions := repository.NewQuestionRepository(db, log)
	attempts := repository.NewAttemptRepository(db, log)
	sessions := repository.NewSessionRepository(db, log)

	analytics := analyticsservices.NewAnalyticsService(
		analyticsrepo.NewProgressRepository(db, log),
		analyticsrepo.NewStreakRepository(db, log),
		attempts,
		subjects,
		log,
	)
	questionHandler := NewQuestionHandler(
		services.NewAdaptiveService(questions, attempts, subjects, log),
		services.NewAttemptService(questions, attempts, sessions, analytics, log),
	)
	sessionHandler := NewSessionHandler(services.NewSessionService(sessions, subjects))

	auth := middleware.AuthRequired(testSecret)
	router := gin.New()
	router.POST("/api/v1/questions/select", auth, questionHandler.SelectQuestions)
	router.POST("/api/v1/questions/answer", auth, questionHandler.SubmitAnswer)
	router.POST("/api/v1/sessions", auth, sessionHandler.StartSession)
	router.POST("/api/v1/sessions/:id/finish", auth, sessionHandler.FinishSession)

	token, err := middleware.SignToken(testSecret, 1, time.Hour)
	require.NoError(t, err)

	return &testEnv{router: router, db: db, token: token}
}

func (e *testEnv) request(t *testing.T, method, path string, body interface{}, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func seedQuestion(t *testing.T, db *gorm.DB) (subjectmodels.Subject, models.Question) {
	t.Helper()
	subject := subjectmodels.Subject{Name: "Anatomy"}
	require.NoError(t, db.Create(&subject).Error)

	q := models.Question{
		Text:      "question",
		SubjectID: subject.ID,
		Options: []models.QuestionOption{
			{Text: "a"}, {Text: "b"}, {Text: "c"}, {Text: "d"},
		},
	}
	require.NoError(t, db.Create(&q).Error)
	q.CorrectOptionID = q.Options[0].ID
	require.NoError(t, db.Model(&q).Update("correct_option_id", q.CorrectOptionID).Error)
	return subject, q
}

func TestSelectQuestions_RequiresAuth(t *testing.T) {
	env := setupTestRouter(t)

	w := env.request(t, "POST", "/api/v1/questions/select", gin.H{
		"subject_id": 1,
		"count":      5,
	}, false)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSelectQuestions_Success(t *testing.T) {
	env := setupTestRouter(t)
	subject, _ := seedQuestion(t, env.db)

	w := env.request(t, "POST", "/api/v1/questions/select", gin.H{
		"subject_id": subject.ID,
		"count":      5,
	}, true)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Questions []models.QuestionView `json:"questions"`
		Count     int                   `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Questions, 1)
	assert.Len(t, body.Questions[0].Options, 4)
}

func TestSelectQuestions_InvalidBody(t *testing.T) {
	env := setupTestRouter(t)

	w := env.request(t, "POST", "/api/v1/questions/select", gin.H{
		"subject_id": 1,
		"count":      0, // below binding minimum
	}, true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitAnswer_Success(t *testing.T) {
	env := setupTestRouter(t)
	_, question := seedQuestion(t, env.db)

	w := env.request(t, "POST", "/api/v1/questions/answer", gin.H{
		"question_id":        question.ID,
		"selected_option_id": question.CorrectOptionID,
	}, true)

	require.Equal(t, http.StatusCreated, w.Code)

	var body models.SubmitAnswerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.IsCorrect)
	assert.Equal(t, question.CorrectOptionID, body.CorrectOptionID)
}

func TestSubmitAnswer_UnknownQuestion(t *testing.T) {
	env := setupTestRouter(t)

	w := env.request(t, "POST", "/api/v1/questions/answer", gin.H{
		"question_id":        999,
		"selected_option_id": 1,
	}, true)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionLifecycle(t *testing.T) {
	env := setupTestRouter(t)
	subject, _ := seedQuestion(t, env.db)

	w := env.request(t, "POST", "/api/v1/sessions", gin.H{
		"subject_id":     subject.ID,
		"question_count": 5,
	}, true)
	require.Equal(t, http.StatusCreated, w.Code)

	var session models.PracticeSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	assert.NotEmpty(t, session.Token)

	w = env.request(t, "POST", "/api/v1/sessions/"+strconv.FormatUint(uint64(session.ID), 10)+"/finish", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	var summary models.SessionSummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, session.ID, summary.SessionID)
}
