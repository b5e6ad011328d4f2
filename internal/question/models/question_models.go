package models

import (
	"time"
)

// Difficulty buckets questions for ordering and filtering.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// CognitiveLevel follows Bloom's taxonomy.
type CognitiveLevel string

const (
	CognitiveRemember   CognitiveLevel = "REMEMBER"
	CognitiveUnderstand CognitiveLevel = "UNDERSTAND"
	CognitiveApply      CognitiveLevel = "APPLY"
	CognitiveAnalyze    CognitiveLevel = "ANALYZE"
	CognitiveEvaluate   CognitiveLevel = "EVALUATE"
	CognitiveCreate     CognitiveLevel = "CREATE"
)

func (l CognitiveLevel) Valid() bool {
	switch l {
	case CognitiveRemember, CognitiveUnderstand, CognitiveApply,
		CognitiveAnalyze, CognitiveEvaluate, CognitiveCreate:
		return true
	}
	return false
}

// Question is an exam practice question with its answer options.
type Question struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	Text            string           `gorm:"not null" json:"text"`
	Options         []QuestionOption `json:"options"`
	CorrectOptionID uint             `gorm:"not null" json:"-"`
	SubjectID       uint             `gorm:"not null;index" json:"subject_id"`
	TopicID         *uint            `gorm:"index" json:"topic_id"`
	Difficulty      Difficulty       `gorm:"not null;default:MEDIUM" json:"difficulty"`
	CognitiveLevel  CognitiveLevel   `gorm:"not null;default:REMEMBER" json:"cognitive_level"`
	IsDiagnostic    bool             `gorm:"default:false" json:"is_diagnostic"`
	Tags            string           `json:"tags"` // Comma-separated
	YearAsked       *int             `json:"year_asked,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// QuestionOption is one answer choice.
type QuestionOption struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;index" json:"-"`
	Text       string `gorm:"not null" json:"text"`
}

// QuestionAttempt is one graded answer submission. Rows are append-only;
// IsCorrect is always computed server-side against the stored correct option.
type QuestionAttempt struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"not null;index" json:"user_id"`
	QuestionID        uint      `gorm:"not null;index" json:"question_id"`
	SelectedOption    string    `gorm:"not null" json:"selected_option"`
	IsCorrect         bool      `gorm:"not null" json:"is_correct"`
	TimeTakenSeconds  int       `json:"time_taken_seconds"`
	AttemptedAt       time.Time `gorm:"autoCreateTime;index" json:"attempted_at"`
	PracticeSessionID *uint     `json:"practice_session_id,omitempty"`
	ConfidenceLevel   *int      `json:"confidence_level,omitempty"`
	Question          *Question `json:"question,omitempty"`
}

// PracticeSession groups attempts made in one sitting.
type PracticeSession struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	Token         string      `gorm:"uniqueIndex" json:"token"`
	UserID        uint        `gorm:"not null;index" json:"user_id"`
	SubjectID     uint        `gorm:"not null" json:"subject_id"`
	TopicID       *uint       `json:"topic_id,omitempty"`
	Difficulty    *Difficulty `json:"difficulty,omitempty"`
	QuestionCount int         `json:"question_count"`
	AnsweredCount int         `json:"answered_count"`
	CorrectCount  int         `json:"correct_count"`
	StartTime     time.Time   `json:"start_time"`
	EndTime       *time.Time  `json:"end_time,omitempty"`
}

// SelectQuestionsRequest asks for the next adaptive batch.
type SelectQuestionsRequest struct {
	SubjectID      uint   `json:"subject_id" binding:"required"`
	TopicID        *uint  `json:"topic_id"`
	Difficulty     string `json:"difficulty"`
	CognitiveLevel string `json:"cognitive_level"`
	ExcludeIDs     []uint `json:"exclude_ids"`
	Count          int    `json:"count" binding:"required,min=1,max=50"`
}

// SubmitAnswerRequest records one answer. Correctness is never taken from
// the client.
type SubmitAnswerRequest struct {
	QuestionID        uint  `json:"question_id" binding:"required"`
	SelectedOptionID  uint  `json:"selected_option_id" binding:"required"`
	TimeTakenSeconds  int   `json:"time_taken_seconds" binding:"min=0"`
	PracticeSessionID *uint `json:"practice_session_id"`
	ConfidenceLevel   *int  `json:"confidence_level" binding:"omitempty,min=1,max=5"`
}

// SubmitAnswerResponse echoes the grading outcome.
type SubmitAnswerResponse struct {
	AttemptID       uint `json:"attempt_id"`
	IsCorrect       bool `json:"is_correct"`
	CorrectOptionID uint `json:"correct_option_id"`
}

// StartSessionRequest opens a practice session.
type StartSessionRequest struct {
	SubjectID     uint   `json:"subject_id" binding:"required"`
	TopicID       *uint  `json:"topic_id"`
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"question_count" binding:"required,min=1,max=100"`
}

// SessionSummaryResponse is returned when a session is finished.
type SessionSummaryResponse struct {
	SessionID     uint     `json:"session_id"`
	QuestionCount int      `json:"question_count"`
	AnsweredCount int      `json:"answered_count"`
	CorrectCount  int      `json:"correct_count"`
	Accuracy      float64  `json:"accuracy"`
	DurationSec   *float64 `json:"duration_seconds,omitempty"`
}

// QuestionView is the client-facing question shape (no correct option).
type QuestionView struct {
	ID             uint             `json:"id"`
	Text           string           `json:"text"`
	Options        []QuestionOption `json:"options"`
	SubjectID      uint             `json:"subject_id"`
	TopicID        *uint            `json:"topic_id,omitempty"`
	Difficulty     Difficulty       `json:"difficulty"`
	CognitiveLevel CognitiveLevel   `json:"cognitive_level"`
	Tags           string           `json:"tags,omitempty"`
	YearAsked      *int             `json:"year_asked,omitempty"`
}

// View strips grading data from a question.
func (q *Question) View() QuestionView {
	return QuestionView{
		ID:             q.ID,
		Text:           q.Text,
		Options:        q.Options,
		SubjectID:      q.SubjectID,
		TopicID:        q.TopicID,
		Difficulty:     q.Difficulty,
		CognitiveLevel: q.CognitiveLevel,
		Tags:           q.Tags,
		YearAsked:      q.YearAsked,
	}
}
