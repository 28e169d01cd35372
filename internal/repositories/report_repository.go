package repositories

import (
	"context"
	"errors"

	"github.com/darshan4295/interview-app/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReportRepository struct {
	DB *gorm.DB
}

func (r *ReportRepository) GetByCandidate(ctx context.Context, candidateID string) (*models.FinalReport, error) {
	var report models.FinalReport
	err := r.DB.WithContext(ctx).First(&report, "candidate_id = ?", candidateID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Upsert inserts the report or overwrites every generated column of the existing
// report for the same candidate. The stored row is returned.
func (r *ReportRepository) Upsert(ctx context.Context, report *models.FinalReport) (*models.FinalReport, error) {
	var stored models.FinalReport
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "candidate_id"}},
			DoUpdates: clause.AssignmentColumns(models.ReportColumns),
		}).Create(report).Error; err != nil {
			return err
		}
		return tx.First(&stored, "candidate_id = ?", report.CandidateID).Error
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}
