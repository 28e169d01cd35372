package repositories

import (
	"context"
	"errors"

	"github.com/darshan4295/interview-app/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type InterviewRepository struct {
	DB *gorm.DB
}

func (r *InterviewRepository) Create(ctx context.Context, interview *models.Interview) error {
	return r.DB.WithContext(ctx).Omit("Candidate", "Interviewer").Create(interview).Error
}

// GetByID loads the interview with both participants.
func (r *InterviewRepository) GetByID(ctx context.Context, id string) (*models.Interview, error) {
	var interview models.Interview
	err := r.DB.WithContext(ctx).
		Preload("Candidate").
		Preload("Interviewer").
		First(&interview, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInterviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &interview, nil
}

// List returns interviews ordered by scheduled time, earliest first.
func (r *InterviewRepository) List(ctx context.Context, filter models.InterviewFilter) ([]models.Interview, error) {
	q := r.DB.WithContext(ctx).Preload("Candidate").Preload("Interviewer")
	if filter.CandidateID != "" {
		q = q.Where("candidate_id = ?", filter.CandidateID)
	}
	if filter.InterviewerID != "" {
		q = q.Where("interviewer_id = ?", filter.InterviewerID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	interviews := []models.Interview{}
	if err := q.Order("scheduled_at ASC").Find(&interviews).Error; err != nil {
		return nil, err
	}
	return interviews, nil
}

// conditional applies updates only while the row still has status from.
func (r *InterviewRepository) conditional(ctx context.Context, id string, from models.InterviewStatus, updates map[string]any) error {
	result := r.DB.WithContext(ctx).Model(&models.Interview{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleState
	}
	return nil
}

func (r *InterviewRepository) UpdateStatus(ctx context.Context, id string, from, to models.InterviewStatus) error {
	return r.conditional(ctx, id, from, map[string]any{"status": to})
}

// SaveTranscript writes the transcript and its analysis in a single statement.
func (r *InterviewRepository) SaveTranscript(ctx context.Context, id string, from models.InterviewStatus, transcript string, analysis datatypes.JSON) error {
	return r.conditional(ctx, id, from, map[string]any{
		"transcript":  transcript,
		"ai_analysis": analysis,
	})
}

func (r *InterviewRepository) SaveFeedback(ctx context.Context, id string, feedback string) error {
	return r.conditional(ctx, id, models.InterviewCompleted, map[string]any{"feedback": feedback})
}

// Reschedule updates title, time or duration of an interview that is still SCHEDULED.
func (r *InterviewRepository) Reschedule(ctx context.Context, id string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.conditional(ctx, id, models.InterviewScheduled, updates)
}

// AssignRoom stores roomID only if no room is stored yet. It reports whether this call won.
func (r *InterviewRepository) AssignRoom(ctx context.Context, id, roomID string) (bool, error) {
	result := r.DB.WithContext(ctx).Model(&models.Interview{}).
		Where("id = ? AND room_id IS NULL", id).
		Update("room_id", roomID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// LatestAnalysis returns the most recent analysis of the given interview type for a candidate.
func (r *InterviewRepository) LatestAnalysis(ctx context.Context, candidateID string, kind models.InterviewType) (datatypes.JSON, error) {
	var interview models.Interview
	err := r.DB.WithContext(ctx).
		Select("id", "ai_analysis").
		Where("candidate_id = ? AND type = ? AND ai_analysis IS NOT NULL", candidateID, kind).
		Order("updated_at DESC").
		First(&interview).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return interview.AIAnalysis, nil
}

func (r *InterviewRepository) CountByStatus(ctx context.Context, status models.InterviewStatus) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Interview{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
