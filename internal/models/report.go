package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FinalReport is the composite hiring report. There is at most one per candidate.
type FinalReport struct {
	ID                string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	CandidateID       string         `gorm:"type:varchar(36);uniqueIndex;not null" json:"candidateId"`
	InterviewScore    float64        `json:"interviewScore"`
	CodingScore       float64        `json:"codingScore"`
	ManagerialScore   float64        `json:"managerialScore"`
	OverallRating     float64        `json:"overallRating"`
	Strengths         []string       `gorm:"serializer:json;type:text" json:"strengths"`
	Weaknesses        []string       `gorm:"serializer:json;type:text" json:"weaknesses"`
	Summary           string         `gorm:"type:text" json:"summary"`
	TechnicalSummary  string         `gorm:"type:text" json:"technicalSummary"`
	CodingSummary     string         `gorm:"type:text" json:"codingSummary"`
	ManagerialSummary string         `gorm:"type:text" json:"managerialSummary"`
	Recommendation    Recommendation `gorm:"type:varchar(16);not null" json:"recommendation"`
	SuggestedHike     *float64       `json:"suggestedHike,omitempty"`
	SuggestedRole     string         `json:"suggestedRole,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

func (r *FinalReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// ReportColumns are overwritten when a report is regenerated. id and created_at are kept.
var ReportColumns = []string{
	"interview_score", "coding_score", "managerial_score", "overall_rating",
	"strengths", "weaknesses", "summary", "technical_summary", "coding_summary",
	"managerial_summary", "recommendation", "suggested_hike", "suggested_role", "updated_at",
}
