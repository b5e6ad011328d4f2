package models

import (
	"time"
)

// UserProgress is a per-(user, topic) running mastery counter. The score
// only ever increases, and only on correct attempts.
type UserProgress struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index:idx_user_topic,unique" json:"user_id"`
	TopicID      uint      `gorm:"not null;index:idx_user_topic,unique" json:"topic_id"`
	MasteryScore int       `gorm:"default:0" json:"mastery_score"`
	LastReviewed time.Time `json:"last_reviewed"`
}

// Streak is a per-user daily activity counter.
type Streak struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Count      int       `gorm:"default:0" json:"count"`
	LastActive time.Time `json:"last_active"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// WeakTopic is one entry of the weak-topic ranking.
type WeakTopic struct {
	TopicID         uint    `json:"topic_id"`
	TopicName       string  `json:"topic_name"`
	TotalAttempts   int64   `json:"total_attempts"`
	CorrectAttempts int64   `json:"correct_attempts"`
	Accuracy        float64 `json:"accuracy"`
	MasteryScore    int     `json:"mastery_score"`
}

// SubjectAnalytics summarizes a user's performance in one subject.
type SubjectAnalytics struct {
	SubjectID       uint    `json:"subject_id"`
	SubjectName     string  `json:"subject_name"`
	TotalAttempts   int64   `json:"total_attempts"`
	CorrectAttempts int64   `json:"correct_attempts"`
	Accuracy        float64 `json:"accuracy"`
}

// OverviewStats feeds the dashboard.
type OverviewStats struct {
	TotalAttempts   int64   `json:"total_attempts"`
	CorrectAttempts int64   `json:"correct_attempts"`
	Accuracy        float64 `json:"accuracy"`
	CurrentStreak   int     `json:"current_streak"`
	TopicsTracked   int     `json:"topics_tracked"`
}
