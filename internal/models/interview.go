package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type InterviewType string

const (
	InterviewTechnical  InterviewType = "TECHNICAL"
	InterviewManagerial InterviewType = "MANAGERIAL"
)

func (t InterviewType) IsValid() bool {
	return t == InterviewTechnical || t == InterviewManagerial
}

type InterviewStatus string

const (
	InterviewScheduled InterviewStatus = "SCHEDULED"
	InterviewCompleted InterviewStatus = "COMPLETED"
	InterviewCancelled InterviewStatus = "CANCELLED"
)

func (s InterviewStatus) IsValid() bool {
	switch s {
	case InterviewScheduled, InterviewCompleted, InterviewCancelled:
		return true
	}
	return false
}

const (
	MinInterviewDuration = 15
	MaxInterviewDuration = 120
)

// Interview is a scheduled conversation between one candidate and one interviewer.
// RoomID is assigned on the first join request and never changes afterwards.
type Interview struct {
	ID            string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title         string          `gorm:"not null" json:"title"`
	Type          InterviewType   `gorm:"type:varchar(16);not null" json:"type"`
	Status        InterviewStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	ScheduledAt   time.Time       `gorm:"not null;index" json:"scheduledAt"`
	Duration      int             `gorm:"not null" json:"duration"`
	CandidateID   string          `gorm:"type:varchar(36);not null;index" json:"candidateId"`
	InterviewerID string          `gorm:"type:varchar(36);not null;index" json:"interviewerId"`
	RoomID        *string         `gorm:"type:varchar(128)" json:"roomId,omitempty"`
	Transcript    *string         `gorm:"type:text" json:"transcript,omitempty"`
	AIAnalysis    datatypes.JSON  `json:"aiAnalysis,omitempty"`
	Feedback      *string         `gorm:"type:text" json:"feedback,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`

	Candidate   *User `gorm:"foreignKey:CandidateID" json:"candidate,omitempty"`
	Interviewer *User `gorm:"foreignKey:InterviewerID" json:"interviewer,omitempty"`
}

func (i *Interview) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// InterviewFilter narrows interview listings. Empty fields match everything.
type InterviewFilter struct {
	CandidateID   string
	InterviewerID string
	Status        InterviewStatus
	Type          InterviewType
}

// TranscriptView is the read model for GET /interviews/{id}/transcript.
type TranscriptView struct {
	Transcript string         `json:"transcript"`
	Analysis   datatypes.JSON `json:"analysis"`
}

// RoomAssignment is returned by the room endpoint.
type RoomAssignment struct {
	RoomID   string `json:"roomId"`
	Token    string `json:"token,omitempty"`
	Fallback bool   `json:"fallback"`
}
