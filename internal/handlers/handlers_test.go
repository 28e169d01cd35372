package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/darshan4295/interview-app/internal/access"
	"github.com/darshan4295/interview-app/internal/auth"
	"github.com/darshan4295/interview-app/internal/middleware"
	"github.com/darshan4295/interview-app/internal/models"
	"github.com/darshan4295/interview-app/internal/repositories"
	"github.com/darshan4295/interview-app/internal/rooms"
	"github.com/darshan4295/interview-app/internal/services"
	"github.com/darshan4295/interview-app/internal/testhelpers"

	"gorm.io/gorm"
)

type mockOracle struct {
	transcriptFn func(ctx context.Context, transcript string, kind models.InterviewType) (*models.TranscriptAnalysis, error)
	codeFn       func(ctx context.Context, code, requirements string) (*models.CodeAnalysis, error)
	reportFn     func(ctx context.Context, in models.ReportInputs) (*models.ReportDraft, error)
}

func (m *mockOracle) AnalyzeTranscript(ctx context.Context, transcript string, kind models.InterviewType) (*models.TranscriptAnalysis, error) {
	if m.transcriptFn == nil {
		return &models.TranscriptAnalysis{OverallScore: 75, Recommendation: models.RecommendHire}, nil
	}
	return m.transcriptFn(ctx, transcript, kind)
}

func (m *mockOracle) AnalyzeCode(ctx context.Context, code, requirements string) (*models.CodeAnalysis, error) {
	if m.codeFn == nil {
		return &models.CodeAnalysis{OverallScore: 70, Recommendation: models.VerdictPass}, nil
	}
	return m.codeFn(ctx, code, requirements)
}

func (m *mockOracle) ComposeReport(ctx context.Context, in models.ReportInputs) (*models.ReportDraft, error) {
	if m.reportFn == nil {
		return &models.ReportDraft{OverallRating: 70, Recommendation: models.RecommendConsider}, nil
	}
	return m.reportFn(ctx, in)
}

type mockProvisioner struct {
	provisionFn func(ctx context.Context) (rooms.Provisioned, error)
}

func (m *mockProvisioner) Provision(ctx context.Context) (rooms.Provisioned, error) {
	if m.provisionFn == nil {
		return rooms.Provisioned{RoomID: "abcd-efgh-ijkl"}, nil
	}
	return m.provisionFn(ctx)
}

type handlerEnv struct {
	db         *gorm.DB
	oracle     *mockOracle
	auth       *AuthHandler
	interviews *InterviewHandler
	assessment *AssessmentHandler
	reports    *ReportHandler
	admin      *AdminHandler
	video      *VideoHandler

	adminP, candidateP, interviewerP, strangerP *access.Principal
}

func newHandlerEnv(t *testing.T) *handlerEnv {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	users := &repositories.UserRepository{DB: db}
	interviews := &repositories.InterviewRepository{DB: db}
	assessments := &repositories.AssessmentRepository{DB: db}
	reports := &repositories.ReportRepository{DB: db}
	oracle := &mockOracle{}
	logger := zap.NewNop()

	userSvc := services.NewUserService(users, interviews, assessments, auth.NewTokens("test-secret", time.Hour), logger)
	roomSvc := services.NewRoomService(interviews, &mockProvisioner{}, nil, rooms.NewTokenIssuer("key", "secret", time.Hour), time.Second, logger)

	return &handlerEnv{
		db:           db,
		oracle:       oracle,
		auth:         NewAuthHandler(userSvc, logger),
		interviews:   NewInterviewHandler(services.NewInterviewService(interviews, users, oracle, logger), roomSvc, logger),
		assessment:   NewAssessmentHandler(services.NewAssessmentService(assessments, users, oracle, logger), logger),
		reports:      NewReportHandler(services.NewReportService(reports, users, interviews, assessments, oracle, logger), logger),
		admin:        NewAdminHandler(userSvc, logger),
		video:        NewVideoHandler(roomSvc, logger),
		adminP:       access.PrincipalOf(testhelpers.SeedUser(t, db, "admin", models.RoleAdmin)),
		candidateP:   access.PrincipalOf(testhelpers.SeedUser(t, db, "candidate", models.RoleCandidate)),
		interviewerP: access.PrincipalOf(testhelpers.SeedUser(t, db, "interviewer", models.RoleInterviewer)),
		strangerP:    access.PrincipalOf(testhelpers.SeedUser(t, db, "stranger", models.RoleCandidate)),
	}
}

// serve runs h as if routed, with the given URL params and caller.
func serve(h http.Handler, method, target, body string, p *access.Principal, params map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if p != nil {
		ctx = middleware.WithPrincipal(ctx, p)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(ctx))
	return rec
}

func validated[T middleware.Validator](h http.HandlerFunc) http.Handler {
	return middleware.ValidateRequest[T]()(h)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response: %v (%s)", err, rec.Body.String())
	}
	return out
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
}
