package repository

import (
	"cleanleb_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

// ListActive returns active quizzes without their question sets.
func (r *QuizRepository) ListActive(category, difficulty string, limit int) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	query := r.DB.Model(&model.Quiz{}).Where("is_active = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}
	err := query.
		Preload("CreatedBy", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Order("created_at desc").
		Limit(limit).
		Find(&quizzes).Error
	return quizzes, err
}

// FindActiveByID loads the quiz with its questions in order.
func (r *QuizRepository) FindActiveByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("`order` asc, id asc")
		}).
		Preload("CreatedBy", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Where("is_active = ?", true).
		First(&quiz, id).Error
	return &quiz, err
}

func (r *QuizRepository) FindSubmission(quizID, userID uint) (*model.QuizSubmission, error) {
	var s model.QuizSubmission
	err := r.DB.Where("quiz_id = ? AND user_id = ?", quizID, userID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *QuizRepository) ListSubmissionsByUser(userID uint, limit int) ([]model.QuizSubmission, error) {
	var subs []model.QuizSubmission
	err := r.DB.
		Preload("Quiz", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "category", "difficulty", "total_points")
		}).
		Where("user_id = ?", userID).
		Order("completed_at desc").
		Limit(limit).
		Find(&subs).Error
	return subs, err
}
