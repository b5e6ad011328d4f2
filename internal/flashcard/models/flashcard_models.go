package models

import (
	"time"
)

// ReviewResponse is the user's self-assessment for a card review.
type ReviewResponse string

const (
	ResponseAgain ReviewResponse = "again"
	ResponseHard  ReviewResponse = "hard"
	ResponseGood  ReviewResponse = "good"
	ResponseEasy  ReviewResponse = "easy"
)

func (r ReviewResponse) Valid() bool {
	switch r {
	case ResponseAgain, ResponseHard, ResponseGood, ResponseEasy:
		return true
	}
	return false
}

// Scheduling bounds. The ease factor never drops below 1.3 and intervals
// never go below one day.
const (
	MinEaseFactor   = 1.3
	MinIntervalDays = 1

	DefaultIntervalDays = 1
	DefaultEaseFactor   = 2.5
)

// Flashcard is a prompt/answer pair belonging to a subject.
type Flashcard struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Prompt     string    `gorm:"not null" json:"prompt"`
	Answer     string    `gorm:"not null" json:"answer"`
	SubjectID  uint      `gorm:"not null;index" json:"subject_id"`
	TopicID    *uint     `gorm:"index" json:"topic_id,omitempty"`
	Tags       string    `json:"tags"` // Comma-separated
	Difficulty *string   `json:"difficulty,omitempty"`
	MediaURL   *string   `json:"media_url,omitempty"`
	CreatedBy  *uint     `json:"created_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// FlashcardReview is one review outcome. History is append-only; the
// latest row per (user, card) carries the scheduling state forward.
type FlashcardReview struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"not null;index:idx_user_card" json:"user_id"`
	FlashcardID    uint       `gorm:"not null;index:idx_user_card" json:"flashcard_id"`
	RecallSuccess  bool       `json:"recall_success"`
	ResponseTimeMs int        `json:"response_time_ms"`
	IntervalDays   int        `gorm:"not null" json:"interval_days"`
	EaseFactor     float64    `gorm:"not null" json:"ease_factor"`
	NextReview     *time.Time `json:"next_review"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// ReviewRequest submits one review outcome.
type ReviewRequest struct {
	Response       string `json:"response" binding:"required"`
	ResponseTimeMs int    `json:"response_time_ms" binding:"min=0"`
}

// DueStats buckets the user's cards for the review dashboard.
type DueStats struct {
	New      int `json:"new"`
	Learning int `json:"learning"`
	Mastered int `json:"mastered"`
}

// DueCardsResponse is the due-for-review payload.
type DueCardsResponse struct {
	Cards []Flashcard `json:"cards"`
	Stats DueStats    `json:"stats"`
}
