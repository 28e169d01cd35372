package services

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/darshan4295/interview-app/internal/access"
	"github.com/darshan4295/interview-app/internal/analysis"
	"github.com/darshan4295/interview-app/internal/models"
	"github.com/darshan4295/interview-app/internal/repositories"
)

type ReportService struct {
	reports     ReportStore
	users       UserStore
	interviews  InterviewStore
	assessments AssessmentStore
	oracle      analysis.Oracle
	logger      *zap.Logger
}

func NewReportService(reports ReportStore, users UserStore, interviews InterviewStore, assessments AssessmentStore, oracle analysis.Oracle, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		reports:     reports,
		users:       users,
		interviews:  interviews,
		assessments: assessments,
		oracle:      oracle,
		logger:      logger,
	}
}

// Generate composes a final report from the three analyses and upserts it.
// Analyses missing from in are looked up from the candidate's latest records.
// Nothing is written unless all three are present and the oracle succeeds.
func (s *ReportService) Generate(ctx context.Context, p *access.Principal, candidateID string, in models.ReportInputs) (*models.FinalReport, error) {
	if err := access.CanAccess(p, access.ReportResource(candidateID), access.ActionGenerate); err != nil {
		return nil, err
	}
	if _, err := userWithRole(ctx, s.users, candidateID, models.RoleCandidate, "candidateId", "Candidate"); err != nil {
		return nil, err
	}
	if err := s.resolve(ctx, candidateID, &in); err != nil {
		return nil, err
	}
	if missing := in.Missing(); len(missing) > 0 {
		details := make([]models.ValidationErrorDetail, 0, len(missing))
		for _, field := range missing {
			details = append(details, models.FieldError(field, "analysis is not available"))
		}
		return nil, models.ValidationError("Missing required assessment data", details...)
	}

	draft, err := s.oracle.ComposeReport(ctx, in)
	if err != nil {
		s.logger.Error("report composition failed", zap.String("candidate_id", candidateID), zap.Error(err))
		return nil, err
	}

	report, err := s.reports.Upsert(ctx, reportFromDraft(candidateID, draft))
	if err != nil {
		return nil, storeError(err, "")
	}
	s.logger.Info("final report generated",
		zap.String("candidate_id", candidateID),
		zap.String("recommendation", string(report.Recommendation)),
		zap.String("actor", p.ID))
	return report, nil
}

func (s *ReportService) Get(ctx context.Context, p *access.Principal, candidateID string) (*models.FinalReport, error) {
	if err := access.CanAccess(p, access.ReportResource(candidateID), access.ActionView); err != nil {
		return nil, err
	}
	report, err := s.reports.GetByCandidate(ctx, candidateID)
	if errors.Is(err, repositories.ErrReportNotFound) {
		return nil, models.NotFoundError("Report not found")
	}
	if err != nil {
		return nil, storeError(err, "")
	}
	return report, nil
}

func (s *ReportService) resolve(ctx context.Context, candidateID string, in *models.ReportInputs) error {
	if absent(in.TechnicalInterview) {
		raw, err := s.interviews.LatestAnalysis(ctx, candidateID, models.InterviewTechnical)
		if err != nil {
			return storeError(err, "")
		}
		in.TechnicalInterview = json.RawMessage(raw)
	}
	if absent(in.CodingAssessment) {
		raw, err := s.assessments.LatestAnalysis(ctx, candidateID)
		if err != nil {
			return storeError(err, "")
		}
		in.CodingAssessment = json.RawMessage(raw)
	}
	if absent(in.ManagerialInterview) {
		raw, err := s.interviews.LatestAnalysis(ctx, candidateID, models.InterviewManagerial)
		if err != nil {
			return storeError(err, "")
		}
		in.ManagerialInterview = json.RawMessage(raw)
	}
	return nil
}

func absent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// reportFromDraft copies every field so regeneration fully overwrites the previous report.
func reportFromDraft(candidateID string, d *models.ReportDraft) *models.FinalReport {
	strengths, weaknesses := d.Strengths, d.Weaknesses
	if strengths == nil {
		strengths = []string{}
	}
	if weaknesses == nil {
		weaknesses = []string{}
	}
	return &models.FinalReport{
		CandidateID:       candidateID,
		InterviewScore:    d.TechnicalScore,
		CodingScore:       d.CodingScore,
		ManagerialScore:   d.ManagerialScore,
		OverallRating:     d.OverallRating,
		Strengths:         strengths,
		Weaknesses:        weaknesses,
		Summary:           d.Summary,
		TechnicalSummary:  d.TechnicalSummary,
		CodingSummary:     d.CodingSummary,
		ManagerialSummary: d.ManagerialSummary,
		Recommendation:    d.Recommendation,
		SuggestedHike:     d.SuggestedHike,
		SuggestedRole:     d.SuggestedRole,
	}
}
