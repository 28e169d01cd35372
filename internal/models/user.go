package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of principal roles.
type Role string

const (
	RoleCandidate   Role = "CANDIDATE"
	RoleInterviewer Role = "INTERVIEWER"
	RoleAdmin       Role = "ADMIN"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleCandidate, RoleInterviewer, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered account.
type User struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"type:varchar(16);not null;index" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// RoleCounts is the per-role user tally shown on the admin dashboard.
type RoleCounts struct {
	Candidates   int64 `json:"candidates"`
	Interviewers int64 `json:"interviewers"`
	Admins       int64 `json:"admins"`
}

// UserFilter narrows admin user listings.
type UserFilter struct {
	Role   Role
	Search string
	Limit  int
}

// All lists every persisted type in migration order.
func All() []any {
	return []any{&User{}, &Interview{}, &CodingAssessment{}, &FinalReport{}}
}
