package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	analyticsmodels "github.com/prepforge/examprep-backend/internal/analytics/models"
	exammodels "github.com/prepforge/examprep-backend/internal/exam/models"
	flashcardmodels "github.com/prepforge/examprep-backend/internal/flashcard/models"
	questionmodels "github.com/prepforge/examprep-backend/internal/question/models"
	subjectmodels "github.com/prepforge/examprep-backend/internal/subject/models"
)

// Connect opens a database connection based on type and returns the handle.
// The handle is passed down to repositories explicitly; nothing in this
// package keeps process-wide state.
func Connect(dbType string, dsn string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	if dbType == "postgres" {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	} else {
		// Default to SQLite
		db, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Conservative pool settings for SQLite
	if dbType == "sqlite" {
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetMaxOpenConns(10)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	}

	return db, nil
}

// Migrate runs auto-migration for all domain models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&subjectmodels.Subject{},
		&subjectmodels.Topic{},
		&subjectmodels.UserSubject{},
		&questionmodels.Question{},
		&questionmodels.QuestionOption{},
		&questionmodels.QuestionAttempt{},
		&questionmodels.PracticeSession{},
		&flashcardmodels.Flashcard{},
		&flashcardmodels.FlashcardReview{},
		&analyticsmodels.UserProgress{},
		&analyticsmodels.Streak{},
		&exammodels.MockExam{},
		&exammodels.MockExamQuestion{},
	)
}

// Close closes the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
