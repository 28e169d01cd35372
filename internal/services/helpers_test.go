package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/darshan4295/interview-app/internal/access"
	"github.com/darshan4295/interview-app/internal/auth"
	"github.com/darshan4295/interview-app/internal/models"
	"github.com/darshan4295/interview-app/internal/repositories"
	"github.com/darshan4295/interview-app/internal/testhelpers"
)

type mockOracle struct {
	transcriptFunc func(ctx context.Context, transcript string, kind models.InterviewType) (*models.TranscriptAnalysis, error)
	codeFunc       func(ctx context.Context, code, requirements string) (*models.CodeAnalysis, error)
	reportFunc     func(ctx context.Context, in models.ReportInputs) (*models.ReportDraft, error)
	calls          int
}

func (m *mockOracle) AnalyzeTranscript(ctx context.Context, transcript string, kind models.InterviewType) (*models.TranscriptAnalysis, error) {
	m.calls++
	if m.transcriptFunc != nil {
		return m.transcriptFunc(ctx, transcript, kind)
	}
	return &models.TranscriptAnalysis{OverallScore: 80, Strengths: []string{"clear"}, Recommendation: models.RecommendHire}, nil
}

func (m *mockOracle) AnalyzeCode(ctx context.Context, code, requirements string) (*models.CodeAnalysis, error) {
	m.calls++
	if m.codeFunc != nil {
		return m.codeFunc(ctx, code, requirements)
	}
	return &models.CodeAnalysis{OverallScore: 70, Recommendation: models.VerdictPass}, nil
}

func (m *mockOracle) ComposeReport(ctx context.Context, in models.ReportInputs) (*models.ReportDraft, error) {
	m.calls++
	if m.reportFunc != nil {
		return m.reportFunc(ctx, in)
	}
	return &models.ReportDraft{OverallRating: 75, TechnicalScore: 80, CodingScore: 70, ManagerialScore: 72, Recommendation: models.RecommendHire}, nil
}

// testEnv wires every service to real repositories over an in-memory database.
type testEnv struct {
	db          *gorm.DB
	oracle      *mockOracle
	users       *repositories.UserRepository
	interviews  *repositories.InterviewRepository
	assessments *repositories.AssessmentRepository
	reports     *repositories.ReportRepository

	interviewSvc  *InterviewService
	assessmentSvc *AssessmentService
	reportSvc     *ReportService
	userSvc       *UserService

	admin, candidate, interviewer, otherInterviewer, otherCandidate *access.Principal
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	env := &testEnv{
		db:          db,
		oracle:      &mockOracle{},
		users:       &repositories.UserRepository{DB: db},
		interviews:  &repositories.InterviewRepository{DB: db},
		assessments: &repositories.AssessmentRepository{DB: db},
		reports:     &repositories.ReportRepository{DB: db},
	}
	env.interviewSvc = NewInterviewService(env.interviews, env.users, env.oracle, nil)
	env.assessmentSvc = NewAssessmentService(env.assessments, env.users, env.oracle, nil)
	env.reportSvc = NewReportService(env.reports, env.users, env.interviews, env.assessments, env.oracle, nil)
	env.userSvc = NewUserService(env.users, env.interviews, env.assessments, auth.NewTokens("test-secret", time.Hour), nil)

	env.admin = access.PrincipalOf(testhelpers.SeedUser(t, db, "admin", models.RoleAdmin))
	env.candidate = access.PrincipalOf(testhelpers.SeedUser(t, db, "candidate", models.RoleCandidate))
	env.otherCandidate = access.PrincipalOf(testhelpers.SeedUser(t, db, "other-candidate", models.RoleCandidate))
	env.interviewer = access.PrincipalOf(testhelpers.SeedUser(t, db, "interviewer", models.RoleInterviewer))
	env.otherInterviewer = access.PrincipalOf(testhelpers.SeedUser(t, db, "other-interviewer", models.RoleInterviewer))
	return env
}

func (e *testEnv) seedInterview(t *testing.T, kind models.InterviewType) *models.Interview {
	t.Helper()
	return testhelpers.SeedInterview(t, e.db, e.candidate.ID, e.interviewer.ID, kind)
}

func (e *testEnv) seedAssessment(t *testing.T) *models.CodingAssessment {
	t.Helper()
	return testhelpers.SeedAssessment(t, e.db, e.candidate.ID)
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
