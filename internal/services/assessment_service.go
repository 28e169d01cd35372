package services

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/darshan4295/interview-app/internal/access"
	"github.com/darshan4295/interview-app/internal/analysis"
	"github.com/darshan4295/interview-app/internal/lifecycle"
	"github.com/darshan4295/interview-app/internal/metrics"
	"github.com/darshan4295/interview-app/internal/models"
)

type AssessmentService struct {
	assessments AssessmentStore
	users       UserStore
	oracle      analysis.Oracle
	logger      *zap.Logger
}

func NewAssessmentService(assessments AssessmentStore, users UserStore, oracle analysis.Oracle, logger *zap.Logger) *AssessmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentService{assessments: assessments, users: users, oracle: oracle, logger: logger}
}

func (s *AssessmentService) Create(ctx context.Context, p *access.Principal, req *models.CreateAssessmentRequest) (*models.CodingAssessment, error) {
	if err := access.CanAccess(p, access.Collection(access.KindAssessment), access.ActionCreate); err != nil {
		return nil, err
	}
	if _, err := userWithRole(ctx, s.users, req.CandidateID, models.RoleCandidate, "candidateId", "Candidate"); err != nil {
		return nil, err
	}

	assessment := &models.CodingAssessment{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Status:       models.AssessmentPending,
		CandidateID:  req.CandidateID,
	}
	if err := s.assessments.Create(ctx, assessment); err != nil {
		return nil, storeError(err, "")
	}
	s.logger.Info("assessment created",
		zap.String("assessment_id", assessment.ID),
		zap.String("candidate_id", assessment.CandidateID),
		zap.String("actor", p.ID))
	return s.load(ctx, assessment.ID)
}

// List applies the visibility rule: candidates see their own, interviewers see
// what they reviewed plus anything claimable, admins see everything.
func (s *AssessmentService) List(ctx context.Context, p *access.Principal, status models.AssessmentStatus) ([]models.CodingAssessment, error) {
	if err := access.CanAccess(p, access.Collection(access.KindAssessment), access.ActionList); err != nil {
		return nil, err
	}
	filter := models.AssessmentFilter{Status: status}
	switch p.Role {
	case models.RoleCandidate:
		filter.CandidateID = p.ID
	case models.RoleInterviewer:
		filter.VisibleTo = p.ID
	}
	assessments, err := s.assessments.List(ctx, filter)
	if err != nil {
		return nil, storeError(err, "")
	}
	for i := range assessments {
		redact(p, &assessments[i])
	}
	return assessments, nil
}

func (s *AssessmentService) Get(ctx context.Context, p *access.Principal, id string) (*models.CodingAssessment, error) {
	assessment, err := s.authorized(ctx, p, id, access.ActionView)
	if err != nil {
		return nil, err
	}
	redact(p, assessment)
	return assessment, nil
}

// Submit analyzes the code and then stores code, analysis and the SUBMITTED
// status in one conditional write. A failed analysis leaves the assessment PENDING.
func (s *AssessmentService) Submit(ctx context.Context, p *access.Principal, id, code string) (*models.CodeAnalysis, error) {
	assessment, err := s.authorized(ctx, p, id, access.ActionSubmit)
	if err != nil {
		return nil, err
	}
	const msg = "Assessment has already been submitted"
	if err := lifecycle.Assessments.Check(assessment.Status, models.AssessmentSubmitted, msg); err != nil {
		return nil, err
	}

	result, err := s.oracle.AnalyzeCode(ctx, code, assessment.Requirements)
	if err != nil {
		s.logger.Error("code analysis failed", zap.String("assessment_id", id), zap.Error(err))
		return nil, err
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, models.InternalError(err)
	}
	if err := s.assessments.Submit(ctx, id, code, raw); err != nil {
		return nil, storeError(err, msg)
	}

	s.recordTransition(id, p.ID, assessment.Status, models.AssessmentSubmitted)
	return result, nil
}

// Review records score and feedback. The reviewer rule is evaluated inside the
// store transaction against the row as it is at write time.
func (s *AssessmentService) Review(ctx context.Context, p *access.Principal, id string, score int, feedback string) (*models.CodingAssessment, error) {
	if _, err := s.authorized(ctx, p, id, access.ActionReview); err != nil {
		return nil, err
	}

	var (
		from     models.AssessmentStatus
		previous lifecycle.Assignment
	)
	decide := func(current *models.CodingAssessment) error {
		if err := access.CanAccess(p, access.AssessmentResource(current), access.ActionReview); err != nil {
			return err
		}
		from = current.Status
		previous = lifecycle.AssignmentOf(current.ReviewerID)
		return lifecycle.CheckReview(current.Status, previous, p.ID, p.IsAdmin())
	}
	if err := s.assessments.Review(ctx, id, p.ID, score, feedback, decide); err != nil {
		return nil, storeError(err, "Assessment was reviewed concurrently, please retry")
	}
	if prev, ok := previous.ReviewerID(); ok && prev != p.ID {
		s.logger.Info("review overridden by admin",
			zap.String("assessment_id", id),
			zap.String("previous_reviewer", prev),
			zap.String("actor", p.ID))
	}

	s.recordTransition(id, p.ID, from, models.AssessmentReviewed)
	return s.load(ctx, id)
}

func (s *AssessmentService) recordTransition(id, actor string, from, to models.AssessmentStatus) {
	metrics.RecordTransition(lifecycle.Assessments.Entity(), string(from), string(to))
	s.logger.Info("assessment status changed",
		zap.String("assessment_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("actor", actor))
}

func (s *AssessmentService) authorized(ctx context.Context, p *access.Principal, id string, action access.Action) (*models.CodingAssessment, error) {
	if p == nil {
		return nil, models.AuthenticationError("")
	}
	assessment, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.CanAccess(p, access.AssessmentResource(assessment), action); err != nil {
		return nil, err
	}
	return assessment, nil
}

func (s *AssessmentService) load(ctx context.Context, id string) (*models.CodingAssessment, error) {
	assessment, err := s.assessments.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "")
	}
	return assessment, nil
}

// redact withholds the analysis from a candidate until the assessment is reviewed.
func redact(p *access.Principal, a *models.CodingAssessment) {
	if p.Role == models.RoleCandidate && a.Status != models.AssessmentReviewed {
		a.AIAnalysis = nil
	}
}
