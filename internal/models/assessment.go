package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AssessmentStatus string

const (
	AssessmentPending   AssessmentStatus = "PENDING"
	AssessmentSubmitted AssessmentStatus = "SUBMITTED"
	AssessmentReviewed  AssessmentStatus = "REVIEWED"
)

func (s AssessmentStatus) IsValid() bool {
	switch s {
	case AssessmentPending, AssessmentSubmitted, AssessmentReviewed:
		return true
	}
	return false
}

const (
	MinScore = 0
	MaxScore = 100
)

// CodingAssessment is a take-home coding task assigned to a candidate.
type CodingAssessment struct {
	ID             string           `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title          string           `gorm:"not null" json:"title"`
	Description    string           `gorm:"type:text;not null" json:"description"`
	Requirements   string           `gorm:"type:text;not null" json:"requirements"`
	Status         AssessmentStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	CodeSubmission *string          `gorm:"type:text" json:"codeSubmission,omitempty"`
	AIAnalysis     datatypes.JSON   `json:"aiAnalysis,omitempty"`
	Score          *int             `json:"score,omitempty"`
	Feedback       *string          `gorm:"type:text" json:"feedback,omitempty"`
	CandidateID    string           `gorm:"type:varchar(36);not null;index" json:"candidateId"`
	ReviewerID     *string          `gorm:"type:varchar(36);index" json:"reviewerId"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`

	Candidate *User `gorm:"foreignKey:CandidateID" json:"candidate,omitempty"`
	Reviewer  *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

func (a *CodingAssessment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// AssessmentFilter narrows assessment listings.
// VisibleTo applies the interviewer visibility rule: assigned to them, or unassigned and SUBMITTED.
type AssessmentFilter struct {
	CandidateID string
	VisibleTo   string
	Status      AssessmentStatus
}

// ActivityCounts backs the admin activity widget.
type ActivityCounts struct {
	PendingInterviews    int64 `json:"pendingInterviews"`
	CompletedInterviews  int64 `json:"completedInterviews"`
	PendingAssessments   int64 `json:"pendingAssessments"`
	CompletedAssessments int64 `json:"completedAssessments"`
}
