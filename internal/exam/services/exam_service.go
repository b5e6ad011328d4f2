package services

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/prepforge/examprep-backend/internal/common/errors"
	"github.com/prepforge/examprep-backend/internal/exam/models"
	"github.com/prepforge/examprep-backend/internal/exam/repository"
	questionmodels "github.com/prepforge/examprep-backend/internal/question/models"
	questionrepo "github.com/prepforge/examprep-backend/internal/question/repository"
	subjectmodels "github.com/prepforge/examprep-backend/internal/subject/models"
	subjectrepo "github.com/prepforge/examprep-backend/internal/subject/repository"
	"github.com/prepforge/examprep-backend/pkg/logger"
)

type ExamService struct {
	exams     repository.ExamRepository
	questions questionrepo.QuestionRepository
	subjects  subjectrepo.SubjectRepository
	log       *logger.Logger
	now       func() time.Time
}

func NewExamService(
	exams repository.ExamRepository,
	questions questionrepo.QuestionRepository,
	subjects subjectrepo.SubjectRepository,
	baseLog *logger.Logger,
) *ExamService {
	return &ExamService{
		exams:     exams,
		questions: questions,
		subjects:  subjects,
		log:       baseLog.With("service", "ExamService"),
		now:       time.Now,
	}
}

// CreateExam assembles a mock exam by drawing questions evenly across the
// requested subjects and snapshotting them onto the exam.
func (s *ExamService) CreateExam(ctx context.Context, userID uint, req models.CreateExamRequest) (*models.MockExam, error) {
	subjects := make([]subjectmodels.Subject, 0, len(req.SubjectIDs))
	for _, id := range req.SubjectIDs {
		subject, err := s.subjects.GetSubject(ctx, id)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, *subject)
	}

	perSubject := req.QuestionCount / len(req.SubjectIDs)
	if perSubject == 0 {
		perSubject = 1
	}

	examQuestions := make([]models.MockExamQuestion, 0, req.QuestionCount)
	position := 0
	for _, subject := range subjects {
		candidates, err := s.questions.FindCandidates(ctx, questionrepo.CandidateFilter{
			SubjectID: subject.ID,
			Limit:     perSubject,
		})
		if err != nil {
			return nil, err
		}
		for _, q := range candidates {
			if len(examQuestions) == req.QuestionCount {
				break
			}
			examQuestions = append(examQuestions, models.MockExamQuestion{
				QuestionID: q.ID,
				SubjectID:  q.SubjectID,
				Position:   position,
			})
			position++
		}
	}

	if len(examQuestions) == 0 {
		return nil, errors.InvalidInput("no questions available for the requested subjects", "")
	}

	exam := &models.MockExam{
		UserID:           userID,
		ExamType:         req.ExamType,
		Status:           models.StatusInProgress,
		Subjects:         subjects,
		Questions:        examQuestions,
		QuestionCount:    len(examQuestions),
		TimeLimitMinutes: req.TimeLimitMinutes,
		StartTime:        s.now(),
	}
	if err := s.exams.CreateExam(ctx, exam); err != nil {
		return nil, err
	}

	s.log.Info("mock exam created", "exam_id", exam.ID, "user_id", userID, "questions", len(examQuestions))
	return exam, nil
}

// Grade scores a submitted answer sheet. Each answer is matched to its
// exam question by question id and graded against the stored correct
// option; the whole write is one transaction.
func (s *ExamService) Grade(ctx context.Context, examID uint, userID uint, req models.GradeExamRequest) (*models.GradedExamResponse, error) {
	exam, err := s.exams.GetExamWithQuestions(ctx, examID)
	if err != nil {
		return nil, err
	}
	if exam.UserID != userID {
		return nil, errors.Unauthorized("exam belongs to another user")
	}
	if exam.Status == models.StatusCompleted {
		return nil, errors.Conflict("exam already completed")
	}

	questionIDs := make([]uint, len(exam.Questions))
	examQuestionByID := make(map[uint]*models.MockExamQuestion, len(exam.Questions))
	for i := range exam.Questions {
		questionIDs[i] = exam.Questions[i].QuestionID
		examQuestionByID[exam.Questions[i].QuestionID] = &exam.Questions[i]
	}

	bank, err := s.questions.GetQuestionsByIDs(ctx, questionIDs)
	if err != nil {
		return nil, err
	}
	bankByID := make(map[uint]questionmodels.Question, len(bank))
	for _, q := range bank {
		bankByID[q.ID] = q
	}

	correctAnswers := 0
	for _, answer := range req.Answers {
		examQuestion, onExam := examQuestionByID[answer.QuestionID]
		if !onExam {
			return nil, errors.InvalidInput("answer references a question not on this exam",
				strconv.FormatUint(uint64(answer.QuestionID), 10))
		}
		question, ok := bankByID[answer.QuestionID]
		if !ok {
			return nil, errors.NotFound("question")
		}

		isCorrect := answer.SelectedOptionID == question.CorrectOptionID
		if isCorrect {
			correctAnswers++
		}

		selected := strconv.FormatUint(uint64(answer.SelectedOptionID), 10)
		responseTime := answer.ResponseTimeSeconds
		examQuestion.UserAnswer = &selected
		examQuestion.IsCorrect = &isCorrect
		examQuestion.ResponseTimeSeconds = &responseTime
	}

	now := s.now()
	exam.Status = models.StatusCompleted
	exam.CorrectAnswers = correctAnswers
	exam.Percentage = scorePercentage(correctAnswers, exam.QuestionCount)
	exam.EndTime = &now
	exam.CompletedAt = &now

	if err := s.exams.SaveGrading(ctx, exam, exam.Questions); err != nil {
		return nil, err
	}

	return &models.GradedExamResponse{
		ExamID:           exam.ID,
		Status:           exam.Status,
		QuestionCount:    exam.QuestionCount,
		CorrectAnswers:   exam.CorrectAnswers,
		Percentage:       exam.Percentage,
		SubjectBreakdown: subjectBreakdown(exam.Questions),
		CompletedAt:      now,
	}, nil
}

// Resume reports the state of an in-progress exam, with the remaining
// time clamped at zero.
func (s *ExamService) Resume(ctx context.Context, examID uint, userID uint) (*models.ExamStateResponse, error) {
	exam, err := s.exams.GetExamWithQuestions(ctx, examID)
	if err != nil {
		return nil, err
	}
	if exam.UserID != userID {
		return nil, errors.Unauthorized("exam belongs to another user")
	}

	answered := 0
	for _, q := range exam.Questions {
		if q.UserAnswer != nil {
			answered++
		}
	}

	remaining := 0
	if exam.Status == models.StatusInProgress {
		elapsed := int(s.now().Sub(exam.StartTime).Seconds())
		remaining = exam.TimeLimitMinutes*60 - elapsed
		if remaining < 0 {
			remaining = 0
		}
	}

	return &models.ExamStateResponse{
		ExamID:               exam.ID,
		Status:               exam.Status,
		QuestionCount:        exam.QuestionCount,
		AnsweredCount:        answered,
		TimeRemainingSeconds: remaining,
	}, nil
}

// scorePercentage guards the zero-question case.
func scorePercentage(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// subjectBreakdown tallies graded results per subject.
func subjectBreakdown(questions []models.MockExamQuestion) []models.SubjectBreakdown {
	totals := make(map[uint]*models.SubjectBreakdown)
	order := make([]uint, 0)

	for _, q := range questions {
		entry, seen := totals[q.SubjectID]
		if !seen {
			entry = &models.SubjectBreakdown{SubjectID: q.SubjectID}
			totals[q.SubjectID] = entry
			order = append(order, q.SubjectID)
		}
		entry.Total++
		if q.IsCorrect != nil && *q.IsCorrect {
			entry.Correct++
		}
	}

	breakdown := make([]models.SubjectBreakdown, 0, len(order))
	for _, subjectID := range order {
		entry := totals[subjectID]
		entry.Percentage = scorePercentage(entry.Correct, entry.Total)
		breakdown = append(breakdown, *entry)
	}
	return breakdown
}
