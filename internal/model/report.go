package model

import "time"

type ReportCategory string

const (
	IllegalDumping   ReportCategory = "illegal_dumping"
	OverflowingBins  ReportCategory = "overflowing_bins"
	MissedCollection ReportCategory = "missed_collection"
	HazardousWaste   ReportCategory = "hazardous_waste"
	Littering        ReportCategory = "littering"
	Recycling        ReportCategory = "recycling"
	OtherCategory    ReportCategory = "other"
)

func ValidCategory(c string) bool {
	switch ReportCategory(c) {
	case IllegalDumping, OverflowingBins, MissedCollection, HazardousWaste, Littering, Recycling, OtherCategory:
		return true
	}
	return false
}

type ReportStatus string

const (
	StatusPending    ReportStatus = "pending"
	StatusInProgress ReportStatus = "in_progress"
	StatusResolved   ReportStatus = "resolved"
	StatusRejected   ReportStatus = "rejected"
)

func ValidStatus(s string) bool {
	switch ReportStatus(s) {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

type ReportPriority string

const (
	PriorityLow    ReportPriority = "low"
	PriorityMedium ReportPriority = "medium"
	PriorityHigh   ReportPriority = "high"
	PriorityUrgent ReportPriority = "urgent"
)

func ValidPriority(p string) bool {
	switch ReportPriority(p) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

// swagger:model Report
type Report struct {
	BaseModel
	Title        string          `gorm:"size:255;not null" json:"title"`
	Description  string          `gorm:"type:text;not null" json:"description"`
	Category     ReportCategory  `gorm:"size:50;not null;index" json:"category"`
	Status       ReportStatus    `gorm:"size:20;default:'pending';index" json:"status"`
	Priority     ReportPriority  `gorm:"size:20;default:'medium'" json:"priority"`
	Latitude     float64         `gorm:"not null" json:"latitude"`
	Longitude    float64         `gorm:"not null" json:"longitude"`
	Address      string          `gorm:"size:255" json:"address"`
	City         string          `gorm:"size:100;index" json:"city"`
	Region       string          `gorm:"size:100" json:"region"`
	ReporterID   uint            `gorm:"index;type:bigint unsigned;not null" json:"reporterId"`
	Reporter     *User           `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
	AssignedToID *uint           `gorm:"type:bigint unsigned" json:"assignedToId,omitempty"`
	ResolvedAt   *time.Time      `json:"resolvedAt,omitempty"`
	ResolvedByID *uint           `gorm:"type:bigint unsigned" json:"resolvedById,omitempty"`
	Images       []ReportImage   `gorm:"foreignKey:ReportID" json:"images"`
	Comments     []ReportComment `gorm:"foreignKey:ReportID" json:"comments,omitempty"`
}

func (Report) TableName() string {
	return "reports"
}

type ReportImage struct {
	BaseModel
	ReportID  uint   `gorm:"index;type:bigint unsigned" json:"-"`
	URL       string `gorm:"size:512;not null" json:"url"`
	ObjectKey string `gorm:"size:512" json:"-"`
}

func (ReportImage) TableName() string {
	return "report_images"
}

// ReportVote is one user's vote on one report. The unique index makes the
// mutual-exclusion invariant structural: a user has a single row whose type
// is either up or down.
type ReportVote struct {
	BaseModel
	ReportID uint     `gorm:"uniqueIndex:idx_report_voter;type:bigint unsigned" json:"reportId"`
	UserID   uint     `gorm:"uniqueIndex:idx_report_voter;type:bigint unsigned" json:"userId"`
	Type     VoteType `gorm:"size:8;not null" json:"type"`
}

func (ReportVote) TableName() string {
	return "report_votes"
}

type ReportComment struct {
	BaseModel
	ReportID uint   `gorm:"index;type:bigint unsigned" json:"reportId"`
	UserID   uint   `gorm:"index;type:bigint unsigned" json:"userId"`
	User     *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Text     string `gorm:"type:text;not null" json:"text"`
}

func (ReportComment) TableName() string {
	return "report_comments"
}
