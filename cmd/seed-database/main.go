package main

import (
	"flag"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/prepforge/examprep-backend/internal/common/database"
	flashcardmodels "github.com/prepforge/examprep-backend/internal/flashcard/models"
	questionmodels "github.com/prepforge/examprep-backend/internal/question/models"
	subjectmodels "github.com/prepforge/examprep-backend/internal/subject/models"
)

var (
	dbType = flag.String("db-type", "sqlite", "Database type: sqlite or postgres")
	dbPath = flag.String("output", "./data/examprep.db", "SQLite database path")
	dsn    = flag.String("conn", "", "PostgreSQL connection string")
)

func main() {
	flag.Parse()

	connStr := *dsn
	if *dbType == "sqlite" {
		os.MkdirAll("./data", 0755)
		connStr = *dbPath + "?mode=rwc&cache=shared&timeout=5000"
	}

	db, err := database.Connect(*dbType, connStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("🌱 Starting data seeding...")

	subjects, err := seedSubjects(db)
	if err != nil {
		log.Fatalf("Failed to seed subjects: %v", err)
	}
	log.Printf("✅ Created %d subjects", len(subjects))

	questionCount, err := seedQuestions(db, subjects)
	if err != nil {
		log.Fatalf("Failed to seed questions: %v", err)
	}
	log.Printf("✅ Created %d questions", questionCount)

	cardCount, err := seedFlashcards(db, subjects)
	if err != nil {
		log.Fatalf("Failed to seed flashcards: %v", err)
	}
	log.Printf("✅ Created %d flashcards", cardCount)

	log.Println("🎉 Data seeding complete!")
}

func seedSubjects(db *gorm.DB) ([]subjectmodels.Subject, error) {
	subjects := []subjectmodels.Subject{
		{
			Name:        "Anatomy",
			Description: "Structure of the human body",
			Topics: []subjectmodels.Topic{
				{Name: "Upper Limb"},
				{Name: "Thorax"},
				{Name: "Neuroanatomy"},
			},
		},
		{
			Name:        "Physiology",
			Description: "Function of body systems",
			Topics: []subjectmodels.Topic{
				{Name: "Cardiovascular"},
				{Name: "Respiratory"},
				{Name: "Renal"},
			},
		},
		{
			Name:        "Biochemistry",
			Description: "Molecular basis of life",
			Topics: []subjectmodels.Topic{
				{Name: "Enzymes"},
				{Name: "Metabolism"},
			},
		},
	}

	for i := range subjects {
		if err := db.Create(&subjects[i]).Error; err != nil {
			return nil, err
		}
	}
	return subjects, nil
}

type seedQuestion struct {
	text       string
	options    [4]string
	correctIdx int
	difficulty questionmodels.Difficulty
	cognitive  questionmodels.CognitiveLevel
	topicIdx   int
}

func seedQuestions(db *gorm.DB, subjects []subjectmodels.Subject) (int, error) {
	bank := map[string][]seedQuestion{
		"Anatomy": {
			{
				text:       "Which nerve is at risk in a midshaft humeral fracture?",
				options:    [4]string{"Radial nerve", "Ulnar nerve", "Median nerve", "Axillary nerve"},
				correctIdx: 0, difficulty: questionmodels.DifficultyEasy,
				cognitive: questionmodels.CognitiveRemember, topicIdx: 0,
			},
			{
				text:       "Which structure passes through the foramen magnum?",
				options:    [4]string{"Medulla oblongata", "Pons", "Optic nerve", "Internal carotid artery"},
				correctIdx: 0, difficulty: questionmodels.DifficultyMedium,
				cognitive: questionmodels.CognitiveRemember, topicIdx: 2,
			},
			{
				text:       "A stab wound at the 5th intercostal space, midclavicular line, most likely injures which organ?",
				options:    [4]string{"Liver", "Lung", "Heart", "Spleen"},
				correctIdx: 2, difficulty: questionmodels.DifficultyHard,
				cognitive: questionmodels.CognitiveApply, topicIdx: 1,
			},
		},
		"Physiology": {
			{
				text:       "What is the normal ejection fraction of the left ventricle?",
				options:    [4]string{"25-35%", "40-50%", "55-70%", "80-90%"},
				correctIdx: 2, difficulty: questionmodels.DifficultyEasy,
				cognitive: questionmodels.CognitiveRemember, topicIdx: 0,
			},
			{
				text:       "Which part of the nephron reabsorbs the most sodium?",
				options:    [4]string{"Proximal tubule", "Loop of Henle", "Distal tubule", "Collecting duct"},
				correctIdx: 0, difficulty: questionmodels.DifficultyMedium,
				cognitive: questionmodels.CognitiveUnderstand, topicIdx: 2,
			},
		},
		"Biochemistry": {
			{
				text:       "Which enzyme is the rate-limiting step of glycolysis?",
				options:    [4]string{"Hexokinase", "Phosphofructokinase-1", "Pyruvate kinase", "Aldolase"},
				correctIdx: 1, difficulty: questionmodels.DifficultyMedium,
				cognitive: questionmodels.CognitiveRemember, topicIdx: 1,
			},
		},
	}

	created := 0
	for _, subject := range subjects {
		for _, sq := range bank[subject.Name] {
			question := questionmodels.Question{
				Text:           sq.text,
				SubjectID:      subject.ID,
				Difficulty:     sq.difficulty,
				CognitiveLevel: sq.cognitive,
			}
			if sq.topicIdx < len(subject.Topics) {
				topicID := subject.Topics[sq.topicIdx].ID
				question.TopicID = &topicID
			}
			for _, text := range sq.options {
				question.Options = append(question.Options, questionmodels.QuestionOption{Text: text})
			}

			if err := db.Create(&question).Error; err != nil {
				return created, err
			}
			// Option ids are assigned on insert, so the correct option
			// reference is written in a second step.
			question.CorrectOptionID = question.Options[sq.correctIdx].ID
			if err := db.Model(&question).Update("correct_option_id", question.CorrectOptionID).Error; err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

func seedFlashcards(db *gorm.DB, subjects []subjectmodels.Subject) (int, error) {
	bank := map[string][]flashcardmodels.Flashcard{
		"Anatomy": {
			{Prompt: "Contents of the carpal tunnel?", Answer: "Median nerve and nine flexor tendons", Tags: "upper-limb"},
			{Prompt: "Borders of the cubital fossa?", Answer: "Pronator teres, brachioradialis, line between epicondyles", Tags: "upper-limb"},
		},
		"Physiology": {
			{Prompt: "Frank-Starling law?", Answer: "Stroke volume increases with end-diastolic volume", Tags: "cardiovascular"},
		},
		"Biochemistry": {
			{Prompt: "Cofactor of transaminases?", Answer: "Pyridoxal phosphate (vitamin B6)", Tags: "enzymes"},
		},
	}

	created := 0
	for _, subject := range subjects {
		for _, card := range bank[subject.Name] {
			card.SubjectID = subject.ID
			if err := db.Create(&card).Error; err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}
