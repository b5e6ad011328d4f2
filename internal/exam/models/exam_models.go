package models

import (
	"time"

	subjectmodels "github.com/prepforge/examprep-backend/internal/subject/models"
)

// ExamStatus tracks the mock exam lifecycle.
type ExamStatus string

const (
	StatusInProgress ExamStatus = "IN_PROGRESS"
	StatusCompleted  ExamStatus = "COMPLETED"
)

// MockExam is a timed exam instance built for one user.
type MockExam struct {
	ID               uint                    `gorm:"primaryKey" json:"id"`
	UserID           uint                    `gorm:"not null;index" json:"user_id"`
	ExamType         string                  `json:"exam_type"`
	Status           ExamStatus              `gorm:"not null;default:IN_PROGRESS" json:"status"`
	Subjects         []subjectmodels.Subject `gorm:"many2many:mock_exam_subjects" json:"subjects,omitempty"`
	Questions        []MockExamQuestion      `json:"questions,omitempty"`
	QuestionCount    int                     `json:"question_count"`
	CorrectAnswers   int                     `json:"correct_answers"`
	Percentage       int                     `json:"percentage"`
	TimeLimitMinutes int                     `json:"time_limit_minutes"`
	StartTime        time.Time               `json:"start_time"`
	EndTime          *time.Time              `json:"end_time,omitempty"`
	CompletedAt      *time.Time              `json:"completed_at,omitempty"`
}

// MockExamQuestion snapshots one question onto an exam and later carries
// the graded answer.
type MockExamQuestion struct {
	ID                  uint    `gorm:"primaryKey" json:"id"`
	MockExamID          uint    `gorm:"not null;index" json:"-"`
	QuestionID          uint    `gorm:"not null" json:"question_id"`
	SubjectID           uint    `gorm:"not null" json:"subject_id"`
	Position            int     `json:"position"`
	UserAnswer          *string `json:"user_answer,omitempty"`
	IsCorrect           *bool   `json:"is_correct,omitempty"`
	ResponseTimeSeconds *int    `json:"response_time_seconds,omitempty"`
}

// CreateExamRequest builds a new mock exam.
type CreateExamRequest struct {
	ExamType         string `json:"exam_type" binding:"required"`
	SubjectIDs       []uint `json:"subject_ids" binding:"required,min=1"`
	QuestionCount    int    `json:"question_count" binding:"required,min=1,max=200"`
	TimeLimitMinutes int    `json:"time_limit_minutes" binding:"required,min=1,max=600"`
}

// AnswerSubmission is one answer in a grading request.
type AnswerSubmission struct {
	QuestionID          uint `json:"question_id" binding:"required"`
	SelectedOptionID    uint `json:"selected_option_id" binding:"required"`
	ResponseTimeSeconds int  `json:"response_time_seconds" binding:"min=0"`
}

// GradeExamRequest submits the full answer sheet.
type GradeExamRequest struct {
	Answers []AnswerSubmission `json:"answers" binding:"required"`
}

// SubjectBreakdown is the per-subject grading summary.
type SubjectBreakdown struct {
	SubjectID  uint   `json:"subject_id"`
	Total      int    `json:"total"`
	Correct    int    `json:"correct"`
	Percentage int    `json:"percentage"`
}

// GradedExamResponse is returned after grading.
type GradedExamResponse struct {
	ExamID           uint               `json:"exam_id"`
	Status           ExamStatus         `json:"status"`
	QuestionCount    int                `json:"question_count"`
	CorrectAnswers   int                `json:"correct_answers"`
	Percentage       int                `json:"percentage"`
	SubjectBreakdown []SubjectBreakdown `json:"subject_breakdown"`
	CompletedAt      time.Time          `json:"completed_at"`
}

// ExamStateResponse describes an exam being resumed.
type ExamStateResponse struct {
	ExamID               uint       `json:"exam_id"`
	Status               ExamStatus `json:"status"`
	QuestionCount        int        `json:"question_count"`
	AnsweredCount        int        `json:"answered_count"`
	TimeRemainingSeconds int        `json:"time_remaining_seconds"`
}
