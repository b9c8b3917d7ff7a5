package service

import (
	"errors"
	"time"

	"cleanleb_backend/internal/model"
	"cleanleb_backend/internal/repository"
	"cleanleb_backend/internal/util"
	"cleanleb_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ReportService struct {
	ReportRepo *repository.ReportRepository
	UserRepo   *repository.UserRepository
	DB         *gorm.DB
}

func NewReportService(reportRepo *repository.ReportRepository, userRepo *repository.UserRepository, db *gorm.DB) *ReportService {
	return &ReportService{
		ReportRepo: reportRepo,
		UserRepo:   userRepo,
		DB:         db,
	}
}

type CreateReportRequest struct {
	Title       string  `form:"title" binding:"required"`
	Description string  `form:"description" binding:"required"`
	Category    string  `form:"category" binding:"required"`
	Latitude    float64 `form:"latitude" binding:"required"`
	Longitude   float64 `form:"longitude" binding:"required"`
	Address     string  `form:"address"`
	City        string  `form:"city"`
	Region      string  `form:"region"`
}

type VoteCounts struct {
	Up       int64          `json:"up"`
	Down     int64          `json:"down"`
	UserVote model.VoteType `json:"userVote"`
}

type ReportPage struct {
	Reports     []model.Report `json:"reports"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
	Total       int64          `json:"total"`
	HasMore     bool           `json:"hasMore"`
}

func (s *ReportService) List(filter repository.ReportFilter, page, limit int) (*ReportPage, error) {
	reports, total, err := s.ReportRepo.List(filter, page, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ReportPage{
		Reports:     reports,
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
		HasMore:     page < totalPages,
	}, nil
}

func (s *ReportService) Get(id uint) (*model.Report, error) {
	report, err := s.ReportRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrReportNotFound
	}
	return report, err
}

// Create persists the report and applies the creation award in one
// transaction: +10 points and reports_count+1 on the reporter.
func (s *ReportService) Create(userID uint, req CreateReportRequest, images []model.ReportImage) (*model.Report, error) {
	report := &model.Report{
		Title:       req.Title,
		Description: req.Description,
		Category:    model.ReportCategory(req.Category),
		Status:      model.StatusPending,
		Priority:    model.PriorityMedium,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Address:     req.Address,
		City:        req.City,
		Region:      req.Region,
		ReporterID:  userID,
		Images:      images,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(report).Error; err != nil {
			return err
		}
		if err := s.UserRepo.AddPoints(tx, userID, util.PointsReportCreated); err != nil {
			return err
		}
		return s.UserRepo.IncrementReportsCount(tx, userID)
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("report created",
		zap.Uint("reportId", report.ID),
		zap.Uint("reporterId", userID),
		zap.String("category", string(report.Category)))
	return report, nil
}

// Vote applies the toggle rule: voting the current direction again removes
// the vote, the opposite direction switches it, otherwise it is added. A
// user is never in both lists. Unknown directions are rejected.
func (s *ReportService) Vote(reportID, userID uint, voteType string) (*VoteCounts, error) {
	vt := model.VoteType(voteType)
	if vt != model.VoteUp && vt != model.VoteDown {
		return nil, util.ErrInvalidVoteType
	}

	exists, err := s.ReportRepo.Exists(reportID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrReportNotFound
	}

	if err := s.ReportRepo.ToggleVote(reportID, userID, vt); err != nil {
		return nil, err
	}

	up, down, err := s.ReportRepo.VoteCounts(reportID)
	if err != nil {
		return nil, err
	}

	counts := &VoteCounts{Up: up, Down: down}
	// Empty after the toggle removed the vote.
	if vote, err := s.ReportRepo.FindVote(reportID, userID); err == nil {
		counts.UserVote = vote.Type
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return counts, nil
}

// UpdateStatus transitions the report. The first transition into resolved
// stamps resolvedAt/resolvedBy and awards +20 points to the reporter,
// all in one transaction.
func (s *ReportService) UpdateStatus(reportID, actorID uint, status string) (*model.Report, error) {
	if !model.ValidStatus(status) {
		return nil, util.ErrInvalidStatus
	}

	report, err := s.ReportRepo.FindByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrReportNotFound
		}
		return nil, err
	}

	newStatus := model.ReportStatus(status)
	firstResolve := newStatus == model.StatusResolved && report.ResolvedAt == nil

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": newStatus}
		if firstResolve {
			now := time.Now()
			updates["resolved_at"] = now
			updates["resolved_by_id"] = actorID
			report.ResolvedAt = &now
			report.ResolvedByID = &actorID
		}
		if err := tx.Model(&model.Report{}).Where("id = ?", reportID).Updates(updates).Error; err != nil {
			return err
		}
		if firstResolve {
			return s.UserRepo.AddPoints(tx, report.ReporterID, util.PointsReportResolved)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	report.Status = newStatus
	return report, nil
}

type AdminReportUpdate struct {
	Status       string `json:"status"`
	Priority     string `json:"priority"`
	AssignedToID *uint  `json:"assignedToId"`
}

// AdminUpdate patches status/priority/assignee. Status changes go through
// UpdateStatus so the resolve award fires exactly once. Reports are only
// assignable to staff accounts.
func (s *ReportService) AdminUpdate(reportID, actorID uint, req AdminReportUpdate) (*model.Report, error) {
	if req.Priority != "" && !model.ValidPriority(req.Priority) {
		return nil, util.ErrInvalidPriority
	}

	if req.AssignedToID != nil {
		assignee, err := s.UserRepo.FindByID(*req.AssignedToID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrInvalidAssignee
			}
			return nil, err
		}
		if !assignee.Role.IsStaff() {
			return nil, util.ErrInvalidAssignee
		}
	}

	report, err := s.ReportRepo.FindByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrReportNotFound
		}
		return nil, err
	}

	if req.Status != "" && model.ReportStatus(req.Status) != report.Status {
		if report, err = s.UpdateStatus(reportID, actorID, req.Status); err != nil {
			return nil, err
		}
	}

	if req.Priority != "" {
		report.Priority = model.ReportPriority(req.Priority)
	}
	if req.AssignedToID != nil {
		report.AssignedToID = req.AssignedToID
	}

	if err := s.ReportRepo.Save(report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) AddComment(reportID, userID uint, text string) (*model.ReportComment, error) {
	exists, err := s.ReportRepo.Exists(reportID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrReportNotFound
	}

	comment := &model.ReportComment{
		ReportID: reportID,
		UserID:   userID,
		Text:     text,
	}
	if err := s.ReportRepo.AddComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}
