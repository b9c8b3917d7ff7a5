package repository

import (
	"errors"

	"cleanleb_backend/internal/model"

	"gorm.io/gorm"
)

type ReportRepository struct {
	DB *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{DB: db}
}

// ReportFilter narrows List; zero values mean "no filter".
type ReportFilter struct {
	Category   string
	Status     string
	City       string
	ReporterID uint
}

func (r *ReportRepository) Create(report *model.Report) error {
	return r.DB.Create(report).Error
}

func (r *ReportRepository) FindByID(id uint) (*model.Report, error) {
	var report model.Report
	err := r.DB.
		Preload("Reporter", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Preload("Images").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		Preload("Comments.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		First(&report, id).Error
	return &report, err
}

func (r *ReportRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Report{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *ReportRepository) List(filter ReportFilter, page, limit int) ([]model.Report, int64, error) {
	var reports []model.Report
	var total int64

	query := r.DB.Model(&model.Report{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.City != "" {
		query = query.Where("city LIKE ?", "%"+filter.City+"%")
	}
	if filter.ReporterID > 0 {
		query = query.Where("reporter_id = ?", filter.ReporterID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.
		Preload("Reporter", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Preload("Images").
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&reports).Error
	return reports, total, err
}

func (r *ReportRepository) Save(report *model.Report) error {
	return r.DB.Save(report).Error
}

func (r *ReportRepository) CountByStatus(status model.ReportStatus) (int64, error) {
	var count int64
	query := r.DB.Model(&model.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}

// ToggleVote flips the user's vote on a report inside one transaction:
// same direction removes the row, the opposite direction rewrites it,
// no row creates one. The (report_id, user_id) unique index keeps
// concurrent toggles from producing a second row.
func (r *ReportRepository) ToggleVote(reportID, userID uint, voteType model.VoteType) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.ReportVote
		err := tx.Where("report_id = ? AND user_id = ?", reportID, userID).
			First(&existing).Error

		switch {
		case err == nil && existing.Type == voteType:
			return tx.Unscoped().Delete(&existing).Error
		case err == nil:
			return tx.Model(&existing).Update("type", voteType).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&model.ReportVote{
				ReportID: reportID,
				UserID:   userID,
				Type:     voteType,
			}).Error
		default:
			return err
		}
	})
}

func (r *ReportRepository) VoteCounts(reportID uint) (up int64, down int64, err error) {
	if err = r.DB.Model(&model.ReportVote{}).
		Where("report_id = ? AND type = ?", reportID, model.VoteUp).
		Count(&up).Error; err != nil {
		return
	}
	err = r.DB.Model(&model.ReportVote{}).
		Where("report_id = ? AND type = ?", reportID, model.VoteDown).
		Count(&down).Error
	return
}

func (r *ReportRepository) FindVote(reportID, userID uint) (*model.ReportVote, error) {
	var vote model.ReportVote
	err := r.DB.Where("report_id = ? AND user_id = ?", reportID, userID).First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

func (r *ReportRepository) AddComment(comment *model.ReportComment) error {
	return r.DB.Create(comment).Error
}
