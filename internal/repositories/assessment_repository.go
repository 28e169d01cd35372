package repositories

import (
	"context"
	"errors"

	"github.com/darshan4295/interview-app/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

// ReviewDecision inspects the row as read inside the review transaction and
// returns an error to abort before anything is written.
type ReviewDecision func(current *models.CodingAssessment) error

func (r *AssessmentRepository) Create(ctx context.Context, assessment *models.CodingAssessment) error {
	return r.DB.WithContext(ctx).Omit("Candidate", "Reviewer").Create(assessment).Error
}

func (r *AssessmentRepository) GetByID(ctx context.Context, id string) (*models.CodingAssessment, error) {
	var assessment models.CodingAssessment
	err := r.DB.WithContext(ctx).
		Preload("Candidate").
		Preload("Reviewer").
		First(&assessment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAssessmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

// List returns assessments newest first.
func (r *AssessmentRepository) List(ctx context.Context, filter models.AssessmentFilter) ([]models.CodingAssessment, error) {
	q := r.DB.WithContext(ctx).Preload("Candidate").Preload("Reviewer")
	if filter.CandidateID != "" {
		q = q.Where("candidate_id = ?", filter.CandidateID)
	}
	if filter.VisibleTo != "" {
		q = q.Where("(reviewer_id = ?) OR (reviewer_id IS NULL AND status = ?)", filter.VisibleTo, models.AssessmentSubmitted)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	assessments := []models.CodingAssessment{}
	if err := q.Order("created_at DESC").Find(&assessments).Error; err != nil {
		return nil, err
	}
	return assessments, nil
}

// Submit stores the code, its analysis and the SUBMITTED status in one statement,
// only while the assessment is still PENDING.
func (r *AssessmentRepository) Submit(ctx context.Context, id, code string, analysis datatypes.JSON) error {
	result := r.DB.WithContext(ctx).Model(&models.CodingAssessment{}).
		Where("id = ? AND status = ?", id, models.AssessmentPending).
		Updates(map[string]any{
			"code_submission": code,
			"ai_analysis":     analysis,
			"status":          models.AssessmentSubmitted,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleState
	}
	return nil
}

// Review re-reads the assessment, lets decide veto the review, then writes the
// review conditioned on the status and reviewer that were just read.
func (r *AssessmentRepository) Review(ctx context.Context, id, reviewerID string, score int, feedback string, decide ReviewDecision) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.CodingAssessment
		if err := tx.First(&current, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssessmentNotFound
			}
			return err
		}
		if err := decide(&current); err != nil {
			return err
		}

		q := tx.Model(&models.CodingAssessment{}).Where("id = ? AND status = ?", id, current.Status)
		if current.ReviewerID == nil {
			q = q.Where("reviewer_id IS NULL")
		} else {
			q = q.Where("reviewer_id = ?", *current.ReviewerID)
		}
		result := q.Updates(map[string]any{
			"score":       score,
			"feedback":    feedback,
			"reviewer_id": reviewerID,
			"status":      models.AssessmentReviewed,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStaleState
		}
		return nil
	})
}

// LatestAnalysis returns the most recent coding analysis for a candidate.
func (r *AssessmentRepository) LatestAnalysis(ctx context.Context, candidateID string) (datatypes.JSON, error) {
	var assessment models.CodingAssessment
	err := r.DB.WithContext(ctx).
		Select("id", "ai_analysis").
		Where("candidate_id = ? AND ai_analysis IS NOT NULL", candidateID).
		Order("updated_at DESC").
		First(&assessment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return assessment.AIAnalysis, nil
}

func (r *AssessmentRepository) CountByStatus(ctx context.Context, statuses ...models.AssessmentStatus) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.CodingAssessment{}).Where("status IN ?", statuses).Count(&count).Error
	return count, err
}
