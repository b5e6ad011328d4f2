package services

import (
	"context"
	"sort"
	"time"

	"github.com/prepforge/examprep-backend/internal/analytics/models"
	"github.com/prepforge/examprep-backend/internal/analytics/repository"
	"github.com/prepforge/examprep-backend/internal/common/errors"
	questionrepo "github.com/prepforge/examprep-backend/internal/question/repository"
	subjectrepo "github.com/prepforge/examprep-backend/internal/subject/repository"
	"github.com/prepforge/examprep-backend/pkg/logger"
)

// Topics with fewer attempts than this are too noisy to rank.
const weakTopicMinAttempts = 3

type AnalyticsService struct {
	progress repository.ProgressRepository
	streaks  repository.StreakRepository
	attempts questionrepo.AttemptRepository
	subjects subjectrepo.SubjectRepository
	log      *logger.Logger
}

func NewAnalyticsService(
	progress repository.ProgressRepository,
	streaks repository.StreakRepository,
	attempts questionrepo.AttemptRepository,
	subjects subjectrepo.SubjectRepository,
	baseLog *logger.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		progress: progress,
		streaks:  streaks,
		attempts: attempts,
		subjects: subjects,
		log:      baseLog.With("service", "AnalyticsService"),
	}
}

// RecordTopicOutcome upserts per-topic mastery after a graded attempt.
func (s *AnalyticsService) RecordTopicOutcome(ctx context.Context, userID uint, topicID uint, correct bool) error {
	return s.progress.UpsertProgress(ctx, userID, topicID, correct)
}

// RecordActivity advances the user's daily streak. Any graded attempt
// counts as activity; correctness does not gate continuation. Same-day
// activity is a no-op so repeated submissions cost nothing.
func (s *AnalyticsService) RecordActivity(ctx context.Context, userID uint) error {
	streak, err := s.streaks.LatestStreak(ctx, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	if streak == nil {
		return s.streaks.SaveStreak(ctx, &models.Streak{
			UserID:     userID,
			Count:      1,
			LastActive: now,
		})
	}

	today := now.Truncate(24 * time.Hour)
	lastDay := streak.LastActive.Truncate(24 * time.Hour)

	if today.Equal(lastDay) {
		return nil
	}

	if today.AddDate(0, 0, -1).Equal(lastDay) {
		streak.Count++
	} else {
		streak.Count = 1
	}
	streak.LastActive = now
	return s.streaks.SaveStreak(ctx, streak)
}

// CurrentStreak returns the user's streak count, zero if none.
func (s *AnalyticsService) CurrentStreak(ctx context.Context, userID uint) (int, error) {
	streak, err := s.streaks.LatestStreak(ctx, userID)
	if err != nil {
		return 0, err
	}
	if streak == nil {
		return 0, nil
	}
	return streak.Count, nil
}

// WeakTopics ranks the user's tracked topics from weakest up. Topics with
// fewer than three attempts are dropped; ties on accuracy surface the
// more-attempted topic first.
func (s *AnalyticsService) WeakTopics(ctx context.Context, userID uint, limit int) ([]models.WeakTopic, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}

	rows, err := s.progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ranked := make([]models.WeakTopic, 0, len(rows))
	for _, row := range rows {
		counts, err := s.attempts.CountByTopic(ctx, userID, row.TopicID)
		if err != nil {
			return nil, err
		}
		if counts.Total < weakTopicMinAttempts {
			continue
		}

		topicName := ""
		if topic, err := s.subjects.GetTopic(ctx, row.TopicID); err == nil {
			topicName = topic.Name
		}

		ranked = append(ranked, models.WeakTopic{
			TopicID:         row.TopicID,
			TopicName:       topicName,
			TotalAttempts:   counts.Total,
			CorrectAttempts: counts.Correct,
			Accuracy:        float64(counts.Correct) / float64(counts.Total) * 100,
			MasteryScore:    row.MasteryScore,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Accuracy != ranked[j].Accuracy {
			return ranked[i].Accuracy < ranked[j].Accuracy
		}
		return ranked[i].TotalAttempts > ranked[j].TotalAttempts
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// SubjectAnalytics computes per-subject accuracy for a batch of subject
// names. Unresolvable names are skipped rather than failing the batch;
// single-subject lookups elsewhere hard-fail instead.
func (s *AnalyticsService) SubjectAnalytics(ctx context.Context, userID uint, subjectNames []string) ([]models.SubjectAnalytics, error) {
	if len(subjectNames) == 0 {
		return nil, errors.InvalidInput("at least one subject name is required", "")
	}

	results := make([]models.SubjectAnalytics, 0, len(subjectNames))
	for _, name := range subjectNames {
		subject, err := s.subjects.FindSubjectByName(ctx, name)
		if err != nil {
			s.log.Warn("skipping unresolvable subject", "name", name)
			continue
		}

		counts, err := s.attempts.CountBySubject(ctx, userID, subject.ID)
		if err != nil {
			return nil, err
		}

		accuracy := 0.0
		if counts.Total > 0 {
			accuracy = float64(counts.Correct) / float64(counts.Total) * 100
		}

		results = append(results, models.SubjectAnalytics{
			SubjectID:       subject.ID,
			SubjectName:     subject.Name,
			TotalAttempts:   counts.Total,
			CorrectAttempts: counts.Correct,
			Accuracy:        accuracy,
		})
	}
	return results, nil
}

// Overview aggregates headline stats for the dashboard.
func (s *AnalyticsService) Overview(ctx context.Context, userID uint) (*models.OverviewStats, error) {
	counts, err := s.attempts.CountAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	accuracy := 0.0
	if counts.Total > 0 {
		accuracy = float64(counts.Correct) / float64(counts.Total) * 100
	}

	streakCount, err := s.CurrentStreak(ctx, userID)
	if err != nil {
		return nil, err
	}

	progressRows, err := s.progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.OverviewStats{
		TotalAttempts:   counts.Total,
		CorrectAttempts: counts.Correct,
		Accuracy:        accuracy,
		CurrentStreak:   streakCount,
		TopicsTracked:   len(progressRows),
	}, nil
}
