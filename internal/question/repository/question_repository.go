package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/prepforge/examprep-backend/internal/common/errors"
	"github.com/prepforge/examprep-backend/internal/question/models"
	"github.com/prepforge/examprep-backend/pkg/logger"
)

// DifficultyOrder biases candidate ordering.
type DifficultyOrder int

const (
	EasiestFirst DifficultyOrder = iota
	HardestFirst
)

// CandidateFilter narrows the candidate question query.
type CandidateFilter struct {
	SubjectID      uint
	TopicID        *uint
	Difficulty     *models.Difficulty
	CognitiveLevel *models.CognitiveLevel
	ExcludeIDs     []uint
	Order          DifficultyOrder
	Limit          int
}

type QuestionRepository interface {
	FindCandidates(ctx context.Context, filter CandidateFilter) ([]models.Question, error)
	GetQuestion(ctx context.Context, id uint) (*models.Question, error)
	GetQuestionsByIDs(ctx context.Context, ids []uint) ([]models.Question, error)
	CreateQuestion(ctx context.Context, question *models.Question) error
}

type questionRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionRepository(db *gorm.DB, baseLog *logger.Logger) QuestionRepository {
	return &questionRepository{db: db, log: baseLog.With("repo", "QuestionRepository")}
}

const difficultyRank = "CASE difficulty WHEN 'EASY' THEN 1 WHEN 'MEDIUM' THEN 2 WHEN 'HARD' THEN 3 END"

func (r *questionRepository) FindCandidates(ctx context.Context, filter CandidateFilter) ([]models.Question, error) {
	query := r.db.WithContext(ctx).
		Preload("Options").
		Where("subject_id = ?", filter.SubjectID)

	if filter.TopicID != nil {
		query = query.Where("topic_id = ?", *filter.TopicID)
	}
	if filter.Difficulty != nil {
		query = query.Where("difficulty = ?", *filter.Difficulty)
	}
	if filter.CognitiveLevel != nil {
		query = query.Where("cognitive_level = ?", *filter.CognitiveLevel)
	}
	if len(filter.ExcludeIDs) > 0 {
		query = query.Where("id NOT IN ?", filter.ExcludeIDs)
	}

	order := difficultyRank + " ASC, created_at DESC"
	if filter.Order == HardestFirst {
		order = difficultyRank + " DESC, created_at DESC"
	}

	var questions []models.Question
	result := query.Order(order).Limit(filter.Limit).Find(&questions)
	if result.Error != nil {
		return nil, errors.Internal("failed to query candidate questions", result.Error.Error())
	}
	return questions, nil
}

func (r *questionRepository) GetQuestion(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	result := r.db.WithContext(ctx).Preload("Options").First(&question, id)
	if result.Error != nil {
		return nil, errors.NotFound("question")
	}
	return &question, nil
}

func (r *questionRepository) GetQuestionsByIDs(ctx context.Context, ids []uint) ([]models.Question, error) {
	if len(ids) == 0 {
		return []models.Question{}, nil
	}
	var questions []models.Question
	result := r.db.WithContext(ctx).Preload("Options").Where("id IN ?", ids).Find(&questions)
	if result.Error != nil {
		return nil, errors.Internal("failed to load questions", result.Error.Error())
	}
	return questions, nil
}

func (r *questionRepository) CreateQuestion(ctx context.Context, question *models.Question) error {
	result := r.db.WithContext(ctx).Create(question)
	if result.Error != nil {
		return errors.Internal("failed to create question", result.Error.Error())
	}
	return nil
}
