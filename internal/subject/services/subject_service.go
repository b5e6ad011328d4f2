package services

import (
	"context"

	"github.com/prepforge/examprep-backend/internal/common/errors"
	"github.com/prepforge/examprep-backend/internal/subject/models"
	"github.com/prepforge/examprep-backend/internal/subject/repository"
)

type SubjectService struct {
	subjects repository.SubjectRepository
}

func NewSubjectService(subjects repository.SubjectRepository) *SubjectService {
	return &SubjectService{subjects: subjects}
}

func (s *SubjectService) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	return s.subjects.ListSubjects(ctx)
}

func (s *SubjectService) GetSubject(ctx context.Context, id uint) (*models.Subject, error) {
	if id == 0 {
		return nil, errors.InvalidInput("invalid subject id", "")
	}
	return s.subjects.GetSubject(ctx, id)
}

// ResolveSubjectByName maps a subject name to its record. Unknown names
// fail hard; callers that want partial success over a batch skip failures
// themselves.
func (s *SubjectService) ResolveSubjectByName(ctx context.Context, name string) (*models.Subject, error) {
	if name == "" {
		return nil, errors.InvalidInput("subject name is required", "")
	}
	return s.subjects.FindSubjectByName(ctx, name)
}

func (s *SubjectService) ResolveTopicByName(ctx context.Context, subjectID uint, name string) (*models.Topic, error) {
	if name == "" {
		return nil, errors.InvalidInput("topic name is required", "")
	}
	return s.subjects.FindTopicByName(ctx, subjectID, name)
}

// SelectSubjects replaces the user's chosen subject set.
func (s *SubjectService) SelectSubjects(ctx context.Context, userID uint, subjectIDs []uint) error {
	if len(subjectIDs) == 0 {
		return errors.InvalidInput("at least one subject is required", "")
	}
	for _, id := range subjectIDs {
		if _, err := s.subjects.GetSubject(ctx, id); err != nil {
			return err
		}
	}
	return s.subjects.SetUserSubjects(ctx, userID, subjectIDs)
}

func (s *SubjectService) UserSubjectIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.subjects.GetUserSubjectIDs(ctx, userID)
}
