package repository

import (
	"time"

	"cleanleb_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByIDWithBadges(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.Preload("Badges").First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

// AddPoints increments atomically; points never decrease through this path.
// Callers inside a transaction pass the tx handle.
func (r *UserRepository) AddPoints(tx *gorm.DB, userID uint, points int) error {
	return tx.Model(&model.User{}).
		Where("id = ?", userID).
		Update("points", gorm.Expr("points + ?", points)).
		Error
}

func (r *UserRepository) IncrementReportsCount(tx *gorm.DB, userID uint) error {
	return tx.Model(&model.User{}).
		Where("id = ?", userID).
		Update("reports_count", gorm.Expr("reports_count + 1")).
		Error
}

func (r *UserRepository) FindTopByPoints(limit int) ([]model.User, error) {
	var users []model.User
	err := r.DB.Preload("Badges").Order("points DESC").Limit(limit).Find(&users).Error
	return users, err
}

func (r *UserRepository) CountUsers() (int64, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_seen", time.Now()).
		Error
}

// AwardBadge inserts the badge unless the user already holds one by that
// name. Used inside transactions; pass the tx handle.
func (r *UserRepository) AwardBadge(tx *gorm.DB, userID uint, name, description string) error {
	var count int64
	if err := tx.Model(&model.Badge{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return tx.Create(&model.Badge{
		UserID:      userID,
		Name:        name,
		Description: description,
		EarnedAt:    time.Now(),
	}).Error
}
