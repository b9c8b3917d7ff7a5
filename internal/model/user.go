package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	Citizen   UserRole = "citizen"
	Municipal UserRole = "municipal"
	Admin     UserRole = "admin"
)

// IsStaff reports whether the role may triage reports.
func (r UserRole) IsStaff() bool {
	return r == Admin || r == Municipal
}

func ValidRole(r string) bool {
	switch UserRole(r) {
	case Citizen, Municipal, Admin:
		return true
	}
	return false
}

// swagger:model User
type User struct {
	BaseModel
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:100;unique;not null" json:"email"`
	Password     string    `gorm:"size:100;not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(20);default:'citizen'" json:"role"`
	Points       int       `gorm:"default:0" json:"points"`
	ReportsCount int       `gorm:"default:0" json:"reportsCount"`
	City         string    `gorm:"size:100" json:"city"`
	Region       string    `gorm:"size:100" json:"region"`
	Avatar       string    `gorm:"size:255" json:"avatar"`
	IsActive     bool      `gorm:"default:true" json:"isActive"`
	LastSeen     time.Time `json:"lastSeen"`
	Badges       []Badge   `gorm:"foreignKey:UserID" json:"badges,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.LastSeen.IsZero() {
		u.LastSeen = time.Now()
	}
	return
}

// Badge is a named achievement on a user's profile. A user holds at most
// one badge per name.
type Badge struct {
	BaseModel
	UserID      uint      `gorm:"uniqueIndex:idx_user_badge;type:bigint unsigned" json:"-"`
	Name        string    `gorm:"uniqueIndex:idx_user_badge;size:100;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	EarnedAt    time.Time `json:"earnedAt"`
}

func (Badge) TableName() string {
	return "badges"
}
