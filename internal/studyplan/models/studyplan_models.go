package models

import (
	"time"
)

// PlanItem is one focus area in a daily study plan.
type PlanItem struct {
	TopicID              uint    `json:"topic_id"`
	TopicName            string  `json:"topic_name"`
	Accuracy             float64 `json:"accuracy"`
	RecommendedQuestions int     `json:"recommended_questions"`
}

// DailyPlan is the generated plan for one day.
type DailyPlan struct {
	GeneratedAt      time.Time  `json:"generated_at"`
	Items            []PlanItem `json:"items"`
	DueFlashcards    int        `json:"due_flashcards"`
	NewFlashcards    int        `json:"new_flashcards"`
	TotalQuestions   int        `json:"total_questions"`
}
