package models

import (
	"time"
)

// Subject is a top-level exam subject (e.g. Anatomy, Physiology).
type Subject struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"unique;not null" json:"name"`
	Description string    `json:"description"`
	Topics      []Topic   `json:"topics,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Topic is a subdivision of a subject.
type Topic struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SubjectID uint      `gorm:"not null;index" json:"subject_id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserSubject records a subject the user opted into. Flashcard due
// selection draws its candidate pool from these rows.
type UserSubject struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_user_subject,unique" json:"user_id"`
	SubjectID uint      `gorm:"not null;index:idx_user_subject,unique" json:"subject_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SelectSubjectsRequest is the request body for choosing subjects.
type SelectSubjectsRequest struct {
	SubjectIDs []uint `json:"subject_ids" binding:"required,min=1"`
}
