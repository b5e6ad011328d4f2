package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/prepforge/examprep-backend/internal/common/errors"
	"github.com/prepforge/examprep-backend/internal/exam/models"
	"github.com/prepforge/examprep-backend/internal/exam/repository"
	questionmodels "github.com/prepforge/examprep-backend/internal/question/models"
	questionrepo "github.com/prepforge/examprep-backend/internal/question/repository"
	subjectmodels "github.com/prepforge/examprep-backend/internal/subject/models"
	subjectrepo "github.com/prepforge/examprep-backend/internal/subject/repository"
	"github.com/prepforge/examprep-backend/pkg/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
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
		&questionmodels.Question{},
		&questionmodels.QuestionOption{},
		&models.MockExam{},
		&models.MockExamQuestion{},
	))
	return db
}

func newExamService(t *testing.T, db *gorm.DB) *ExamService {
	t.Helper()
	log := logger.NewNop()
	return NewExamService(
		repository.NewExamRepository(db, log),
		questionrepo.NewQuestionRepository(db, log),
		subjectrepo.NewSubjectRepository(db, log),
		log,
	)
}

// seedSubject creates a subject with questions whose second option is the
// correct one.
func seedSubject(t *testing.T, db *gorm.DB, name string, questionCount int) (subjectmodels.Subject, []questionmodels.Question) {
	t.Helper()
	subject := subjectmodels.Subject{Name: name}
	require.NoError(t, db.Create(&subject).Error)

	questions := make([]questionmodels.Question, 0, questionCount)
	for i := 0; i < questionCount; i++ {
		q := questionmodels.Question{
			Text:           "question",
			SubjectID:      subject.ID,
			Difficulty:     questionmodels.DifficultyMedium,
			CognitiveLevel: questionmodels.CognitiveRemember,
			Options: []questionmodels.QuestionOption{
				{Text: "a"}, {Text: "b"}, {Text: "c"}, {Text: "d"},
			},
		}
		require.NoError(t, db.Create(&q).Error)
		q.CorrectOptionID = q.Options[1].ID
		require.NoError(t, db.Model(&q).Update("correct_option_id", q.CorrectOptionID).Error)
		questions = append(questions, q)
	}
	return subject, questions
}

func TestCreateExam_SplitsAcrossSubjects(t *testing.T) {
	db := newTestDB(t)
	svc := newExamService(t, db)

	anatomy, _ := seedSubject(t, db, "Anatomy", 5)
	physiology, _ := seedSubject(t, db, "Physiology", 5)

	exam, err := svc.CreateExam(context.Background(), 1, models.CreateExamRequest{
		ExamType:         "FULL",
		SubjectIDs:       []uint{anatomy.ID, physiology.ID},
		QuestionCount:    6,
		TimeLimitMinutes: 90,
	})

	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, exam.Status)
	assert.Equal(t, 6, exam.QuestionCount)
	require.Len(t, exam.Questions, 6)

	perSubject := map[uint]int{}
	for i, q := range exam.Questions {
		assert.Equal(t, i, q.Position)
		perSubject[q.SubjectID]++
	}
	assert.Equal(t, 3, perSubject[anatomy.ID])
	assert.Equal(t, 3, perSubject[physiology.ID])
}

func TestCreateExam_NoQuestionsAvailable(t *testing.T) {
	db := newTestDB(t)
	svc := newExamService(t, db)

	empty, _ := seedSubject(t, db, "Anatomy", 0)

	_, err := svc.CreateExam(context.Background(), 1, models.CreateExamRequest{
		ExamType:         "FULL",
		SubjectIDs:       []uint{empty.ID},
		QuestionCount:    10,
		TimeLimitMinutes: 60,
	})

	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.CodeInvalidInput, appErr.Code)
}

func TestCreateExam_UnknownSubject(t *testing.T) {
	db := newTestDB(t)
	svc := newExamService(t, db)

	_, err := svc.CreateExam(context.Background(), 1, models.CreateExamRequest{
		ExamType:         "FULL",
		SubjectIDs:       []uint{999},
		QuestionCount:    10,
		TimeLimitMinutes: 60,
	})

	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.CodeNotFound, appErr.Code)
}

func TestGrade(t *testing.T) {
	db := newTestDB(t)
	svc := newExamService(t, db)

	anatomy, questions := seedSubject(t, db, "Anatomy", 4)

	exam, err := svc.CreateExam(context.Background(), 1, models.CreateExamRequest{
		ExamType:         "FULL",
		SubjectIDs:       []uint{anatomy.ID},
		QuestionCount:    4,
		TimeLimitMinutes: 60,
	})
	require.NoError(t, err)

	byID := map[uint]questionmodels.Question{}
	for _, q := range questions {
		byID[q.ID] = q
	}

	// Three correct, one wrong.
	answers := make([]models.AnswerSubmission, 0, 4)
	for i, eq := range exam.Questions {
		bank := byID[eq.QuestionID]
		selected := bank.CorrectOptionID
		if i == 3 {
			selected = bank.Options[0].ID
		}
		answers = append(answers, models.AnswerSubmission{
			QuestionID:       eq.QuestionID,
			SelectedOptionID: selected,
		})
	}

	graded, err := svc.Grade(context.Background(), exam.ID, 1, models.GradeExamRequest{Answers: answers})

	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, graded.Status)
	assert.Equal(t, 3, graded.CorrectAnswers)
	assert.Equal(t, 75, graded.Percentage)
	require.Len(t, graded.SubjectBreakdown, 1)
	assert.Equal(t, anatomy.ID, graded.SubjectBreakdown[0].SubjectID)
	assert.Equal(t, 4, graded.SubjectBreakdown[0].Total)
	assert.Equal(t, 3, graded.SubjectBreakdown[0].Correct)
	assert.Equal(t, 75, graded.SubjectBreakdown[0].Percentage)
}

func TestGrade_WrongUser(t *testing.T) {
	db := newTestDB(t)
	svc := newExamService(t, db)

	anatomy, _ := seedSubject(t, db, "Anatomy", 2)

	exam, err := svc.CreateExam(context.Background(), 1, models.CreateExamRequest{
		ExamType:         "FULL",
		SubjectIDs:       []uint{anatomy.ID},
		QuestionCount:    2,
		TimeLimitMinutes: 60,
	})
	require.NoError(t, err)

	_, err = svc.Grade(context.Background(), exam.ID, 2, models.GradeExamRequest{})

	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.CodeUnauthorized, appErr.Code)
}

func TestGrade_AlreadyCompleted(t *testing.T) {
	db := newTestDB(t)
	svc := newExamService(t, db)

	anatomy, _ := seedSubject(t, db, "Anatomy", 2)

	exam, err := svc.CreateExam(context.Background(), 1, models.CreateExamRequest{
		ExamType:         "FULL",
		SubjectIDs:       []uint{anatomy.ID},
		QuestionCount:    2,
		TimeLimitMinutes: 60,
	})
	require.NoError(t, err)

	_, err = svc.Grade(context.Background(), exam.ID, 1, models.GradeExamRequest{})
	require.NoError(t, err)

	_, err = svc.Grade(context.Background(), exam.ID, 1, models.GradeExamRequest{})
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.CodeConflict, appErr.Code)
}

func TestGrade_AnswerNotOnExam(t *testing.T) {
	db := newTestDB(t)
	svc := newExamService(t, db)

	anatomy, _ := seedSubject(t, db, "Anatomy", 2)
	_, other := seedSubject(t, db, "Physiology", 1)

	exam, err := svc.CreateExam(context.Background(), 1, models.CreateExamRequest{
		ExamType:         "FULL",
		SubjectIDs:       []uint{anatomy.ID},
		QuestionCount:    2,
		TimeLimitMinutes: 60,
	})
	require.NoError(t, err)

	_, err = svc.Grade(context.Background(), exam.ID, 1, models.GradeExamRequest{
		Answers: []models.AnswerSubmission{
			{QuestionID: other[0].ID, SelectedOptionID: other[0].Options[0].ID},
		},
	})

	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.CodeInvalidInput, appErr.Code)
}

func TestGrade_EmptyAnswerSheetScoresZero(t *testing.T) {
	db := newTestDB(t)
	svc := newExamService(t, db)

	anatomy, _ := seedSubject(t, db, "Anatomy", 2)

	exam, err := svc.CreateExam(context.Background(), 1, models.CreateExamRequest{
		ExamType:         "FULL",
		SubjectIDs:       []uint{anatomy.ID},
		QuestionCount:    2,
		TimeLimitMinutes: 60,
	})
	require.NoError(t, err)

	graded, err := svc.Grade(context.Background(), exam.ID, 1, models.GradeExamRequest{})

	require.NoError(t, err)
	assert.Equal(t, 0, graded.CorrectAnswers)
	assert.Equal(t, 0, graded.Percentage)
}

func TestScorePercentage(t *testing.T) {
	assert.Equal(t, 0, scorePercentage(0, 0))
	assert.Equal(t, 0, scorePercentage(0, 10))
	assert.Equal(t, 100, scorePercentage(10, 10))
	assert.Equal(t, 67, scorePercentage(2, 3))
	assert.Equal(t, 33, scorePercentage(1, 3))
}

func TestResume(t *testing.T) {
	db := newTestDB(t)
	svc := newExamService(t, db)

	anatomy, _ := seedSubject(t, db, "Anatomy", 2)

	start := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	exam, err := svc.CreateExam(context.Background(), 1, models.CreateExamRequest{
		ExamType:         "FULL",
		SubjectIDs:       []uint{anatomy.ID},
		QuestionCount:    2,
		TimeLimitMinutes: 60,
	})
	require.NoError(t, err)

	answered := "1"
	require.NoError(t, db.Model(&models.MockExamQuestion{}).
		Where("id = ?", exam.Questions[0].ID).
		Update("user_answer", &answered).Error)

	svc.now = func() time.Time { return start.Add(10 * time.Minute) }

	state, err := svc.Resume(context.Background(), exam.ID, 1)

	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, state.Status)
	assert.Equal(t, 1, state.AnsweredCount)
	assert.Equal(t, 50*60, state.TimeRemainingSeconds)
}

func TestResume_TimeRemainingClampedAtZero(t *testing.T) {
	db := newTestDB(t)
	svc := newExamService(t, db)

	anatomy, _ := seedSubject(t, db, "Anatomy", 1)

	start := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	exam, err := svc.CreateExam(context.Background(), 1, models.CreateExamRequest{
		ExamType:         "FULL",
		SubjectIDs:       []uint{anatomy.ID},
		QuestionCount:    1,
		TimeLimitMinutes: 30,
	})
	require.NoError(t, err)

	svc.now = func() time.Time { return start.Add(2 * time.Hour) }

	state, err := svc.Resume(context.Background(), exam.ID, 1)

	require.NoError(t, err)
	assert.Equal(t, 0, state.TimeRemainingSeconds)
}

func TestResume_WrongUser(t *testing.T) {
	db := newTestDB(t)
	svc := newExamService(t, db)

	anatomy, _ := seedSubject(t, db, "Anatomy", 1)

	exam, err := svc.CreateExam(context.Background(), 1, models.CreateExamRequest{
		ExamType:         "FULL",
		SubjectIDs:       []uint{anatomy.ID},
		QuestionCount:    1,
		TimeLimitMinutes: 30,
	})
	require.NoError(t, err)

	_, err = svc.Resume(context.Background(), exam.ID, 2)

	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.CodeUnauthorized, appErr.Code)
}
