package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	analyticshandlers "github.com/prepforge/examprep-backend/internal/analytics/handlers"
	analyticsrepo "github.com/prepforge/examprep-backend/internal/analytics/repository"
	analyticsservices "github.com/prepforge/examprep-backend/internal/analytics/services"
	"github.com/prepforge/examprep-backend/internal/common/database"
	commonhandlers "github.com/prepforge/examprep-backend/internal/common/handlers"
	"github.com/prepforge/examprep-backend/internal/common/health"
	"github.com/prepforge/examprep-backend/internal/common/middleware"
	examhandlers "github.com/prepforge/examprep-backend/internal/exam/handlers"
	examrepo "github.com/prepforge/examprep-backend/internal/exam/repository"
	examservices "github.com/prepforge/examprep-backend/internal/exam/services"
	flashcardhandlers "github.com/prepforge/examprep-backend/internal/flashcard/handlers"
	flashcardrepo "github.com/prepforge/examprep-backend/internal/flashcard/repository"
	flashcardservices "github.com/prepforge/examprep-backend/internal/flashcard/services"
	questionhandlers "github.com/prepforge/examprep-backend/internal/question/handlers"
	questionrepo "github.com/prepforge/examprep-backend/internal/question/repository"
	questionservices "github.com/prepforge/examprep-backend/internal/question/services"
	studyplanhandlers "github.com/prepforge/examprep-backend/internal/studyplan/handlers"
	studyplanservices "github.com/prepforge/examprep-backend/internal/studyplan/services"
	subjecthandlers "github.com/prepforge/examprep-backend/internal/subject/handlers"
	subjectrepo "github.com/prepforge/examprep-backend/internal/subject/repository"
	subjectservices "github.com/prepforge/examprep-backend/internal/subject/services"
	"github.com/prepforge/examprep-backend/pkg/config"
	"github.com/prepforge/examprep-backend/pkg/logger"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog, err := logger.New(cfg.Server.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	db, err := database.Connect(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		appLog.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		appLog.Fatal("Failed to run migrations", "error", err)
	}

	// Repositories
	subjects := subjectrepo.NewSubjectRepository(db, appLog)
	questions := questionrepo.NewQuestionRepository(db, appLog)
	attempts := questionrepo.NewAttemptRepository(db, appLog)
	sessions := questionrepo.NewSessionRepository(db, appLog)
	cards := flashcardrepo.NewFlashcardRepository(db, appLog)
	reviews := flashcardrepo.NewReviewRepository(db, appLog)
	progress := analyticsrepo.NewProgressRepository(db, appLog)
	streaks := analyticsrepo.NewStreakRepository(db, appLog)
	exams := examrepo.NewExamRepository(db, appLog)

	// Services
	subjectService := subjectservices.NewSubjectService(subjects)
	analyticsService := analyticsservices.NewAnalyticsService(progress, streaks, attempts, subjects, appLog)
	adaptiveService := questionservices.NewAdaptiveService(questions, attempts, subjects, appLog)
	attemptService := questionservices.NewAttemptService(questions, attempts, sessions, analyticsService, appLog)
	sessionService := questionservices.NewSessionService(sessions, subjects)
	reviewService := flashcardservices.NewReviewService(cards, reviews, subjects, appLog)
	examService := examservices.NewExamService(exams, questions, subjects, appLog)
	studyPlanService := studyplanservices.NewStudyPlanService(analyticsService, reviewService, appLog)

	// Handlers
	subjectHandler := subjecthandlers.NewSubjectHandler(subjectService)
	questionHandler := questionhandlers.NewQuestionHandler(adaptiveService, attemptService)
	sessionHandler := questionhandlers.NewSessionHandler(sessionService)
	flashcardHandler := flashcardhandlers.NewFlashcardHandler(reviewService)
	analyticsHandler := analyticshandlers.NewAnalyticsHandler(analyticsService)
	examHandler := examhandlers.NewExamHandler(examService)
	studyPlanHandler := studyplanhandlers.NewStudyPlanHandler(studyPlanService)
	healthHandler := commonhandlers.NewHealthHandler(health.NewChecker(db, version))

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.Recovery(appLog))
	router.Use(middleware.RequestLogger(appLog))
	router.Use(middleware.CORS())

	router.GET("/health", healthHandler.Health)
	router.GET("/health/liveness", healthHandler.Liveness)
	router.GET("/health/readiness", healthHandler.Readiness)

	v1 := router.Group("/api/v1")
	auth := middleware.AuthRequired(cfg.Auth.JWTSecret)
	{
		subjectGroup := v1.Group("/subjects")
		{
			subjectGroup.GET("", subjectHandler.ListSubjects)
			subjectGroup.GET("/:id", subjectHandler.GetSubject)
			subjectGroup.POST("/select", auth, subjectHandler.SelectSubjects)
		}

		questionGroup := v1.Group("/questions")
		{
			questionGroup.POST("/select", auth, questionHandler.SelectQuestions)
			questionGroup.POST("/answer", auth, questionHandler.SubmitAnswer)
		}

		sessionGroup := v1.Group("/sessions")
		{
			sessionGroup.POST("", auth, sessionHandler.StartSession)
			sessionGroup.POST("/:id/finish", auth, sessionHandler.FinishSession)
		}

		flashcardGroup := v1.Group("/flashcards")
		{
			flashcardGroup.GET("/due", auth, flashcardHandler.DueForReview)
			flashcardGroup.POST("/:id/review", auth, flashcardHandler.Review)
		}

		analyticsGroup := v1.Group("/analytics")
		{
			analyticsGroup.GET("/weak-topics", auth, analyticsHandler.WeakTopics)
			analyticsGroup.GET("/subjects", auth, analyticsHandler.SubjectAnalytics)
			analyticsGroup.GET("/overview", auth, analyticsHandler.Overview)
			analyticsGroup.GET("/streak", auth, analyticsHandler.Streak)
		}

		examGroup := v1.Group("/exams")
		{
			examGroup.POST("", auth, examHandler.CreateExam)
			examGroup.POST("/:id/grade", auth, examHandler.Grade)
			examGroup.GET("/:id/resume", auth, examHandler.Resume)
		}

		planGroup := v1.Group("/study-plan")
		{
			planGroup.GET("/daily", auth, studyPlanHandler.DailyPlan)
		}
	}

	address := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	appLog.Info("Starting server", "address", address, "env", cfg.Server.Env)

	if err := router.Run(address); err != nil {
		appLog.Fatal("Failed to start server", "error", err)
	}
}
