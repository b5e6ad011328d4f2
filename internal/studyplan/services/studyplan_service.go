package services

import (
	"context"
	"time"

	analyticsservices "github.com/prepforge/examprep-backend/internal/analytics/services"
	flashcardservices "github.com/prepforge/examprep-backend/internal/flashcard/services"
	"github.com/prepforge/examprep-backend/internal/studyplan/models"
	"github.com/prepforge/examprep-backend/pkg/logger"
)

const planTopicLimit = 5

type StudyPlanService struct {
	analytics  *analyticsservices.AnalyticsService
	flashcards *flashcardservices.ReviewService
	log        *logger.Logger
}

func NewStudyPlanService(
	analytics *analyticsservices.AnalyticsService,
	flashcards *flashcardservices.ReviewService,
	baseLog *logger.Logger,
) *StudyPlanService {
	return &StudyPlanService{
		analytics:  analytics,
		flashcards: flashcards,
		log:        baseLog.With("service", "StudyPlanService"),
	}
}

// GenerateDailyPlan builds today's plan from the user's weakest topics and
// outstanding flashcard reviews. Weaker topics get larger question quotas.
func (s *StudyPlanService) GenerateDailyPlan(ctx context.Context, userID uint) (*models.DailyPlan, error) {
	weakTopics, err := s.analytics.WeakTopics(ctx, userID, planTopicLimit)
	if err != nil {
		return nil, err
	}

	due, err := s.flashcards.DueForReview(ctx, userID, 1)
	if err != nil {
		return nil, err
	}

	plan := &models.DailyPlan{
		GeneratedAt:   time.Now(),
		Items:         make([]models.PlanItem, 0, len(weakTopics)),
		DueFlashcards: due.Stats.Learning,
		NewFlashcards: due.Stats.New,
	}

	for _, topic := range weakTopics {
		quota := questionQuota(topic.Accuracy)
		plan.Items = append(plan.Items, models.PlanItem{
			TopicID:              topic.TopicID,
			TopicName:            topic.TopicName,
			Accuracy:             topic.Accuracy,
			RecommendedQuestions: quota,
		})
		plan.TotalQuestions += quota
	}
	return plan, nil
}

func questionQuota(accuracy float64) int {
	switch {
	case accuracy < 40:
		return 10
	case accuracy < 60:
		return 7
	default:
		return 5
	}
}
