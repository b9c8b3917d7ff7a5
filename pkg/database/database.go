package database

import (
	"encoding/json"
	"fmt"
	"log"

	"cleanleb_backend/internal/config"
	"cleanleb_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, runMigrations bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if runMigrations {
		if err := Migrate(db); err != nil {
			return nil, err
		}

		log.Println("Database migration completed")

		if err := seedQuizzes(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Badge{},
		&model.Report{},
		&model.ReportImage{},
		&model.ReportVote{},
		&model.ReportComment{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizSubmission{},
		&model.QuizAnswer{},
	)
}

func mustJSON(v interface{}) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

// seedQuizzes inserts the starter quizzes when the table is empty.
func seedQuizzes(db *gorm.DB) error {
	var count int64
	db.Model(&model.Quiz{}).Count(&count)
	if count > 0 {
		return nil
	}

	quizzes := []model.Quiz{
		{
			Title:       "Lebanon Waste Management Basics",
			Description: "Test your knowledge about waste management in Lebanon",
			Category:    model.WasteManagement,
			Difficulty:  model.Easy,
			IsActive:    true,
			Questions: []model.QuizQuestion{
				{
					Text: "What is the main waste management challenge in Lebanon?",
					Options: mustJSON([]string{
						"Too much recycling",
						"Lack of proper waste collection systems",
						"Too many landfills",
						"Excessive composting",
					}),
					CorrectAnswer: 1,
					Points:        10,
					Order:         1,
				},
				{
					Text: "Which of these is a recyclable material?",
					Options: mustJSON([]string{
						"Plastic bottles",
						"Food waste",
						"Dirty diapers",
						"Broken glass mixed with food",
					}),
					CorrectAnswer: 0,
					Points:        10,
					Order:         2,
				},
				{
					Text: "What should you do when you see illegal dumping?",
					Options: mustJSON([]string{
						"Ignore it",
						"Add your trash to the pile",
						"Report it through CleanLeb app",
						"Move it to another location",
					}),
					CorrectAnswer: 2,
					Points:        15,
					Order:         3,
				},
			},
		},
		{
			Title:       "Recycling Champions Quiz",
			Description: "Advanced quiz about recycling practices and environmental impact",
			Category:    model.RecyclingQuiz,
			Difficulty:  model.Medium,
			IsActive:    true,
			Questions: []model.QuizQuestion{
				{
					Text: "How long does it take for a plastic bottle to decompose?",
					Options: mustJSON([]string{
						"1 year",
						"10 years",
						"100 years",
						"450+ years",
					}),
					CorrectAnswer: 3,
					Points:        15,
					Order:         1,
				},
				{
					Text: "Which recycling symbol indicates PET plastic?",
					Options: mustJSON([]string{
						"Symbol 1",
						"Symbol 3",
						"Symbol 5",
						"Symbol 7",
					}),
					CorrectAnswer: 0,
					Points:        20,
					Order:         2,
				},
			},
		},
	}

	for i := range quizzes {
		total := 0
		for _, q := range quizzes[i].Questions {
			total += q.Points
		}
		quizzes[i].TotalPoints = total
		if err := db.Create(&quizzes[i]).Error; err != nil {
			return err
		}
	}

	log.Println("Seeded default quizzes")
	return nil
}
