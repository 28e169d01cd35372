//go:build integration
// +build integration

package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/darshan4295/interview-app/internal/models"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupPostgres starts a PostgreSQL container, migrates it and returns a gorm handle.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("interviews"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	db, err := OpenPostgres(connStr, logger.Silent)
	if err != nil {
		t.Fatalf("OpenPostgres: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func TestPostgres_LifecycleAndCascade(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	users := &UserRepository{DB: db}
	interviews := &InterviewRepository{DB: db}
	assessments := &AssessmentRepository{DB: db}
	reports := &ReportRepository{DB: db}

	cand := &models.User{Name: "Cand", Email: "cand@example.com", PasswordHash: "h", Role: models.RoleCandidate}
	rev := &models.User{Name: "Rev", Email: "rev@example.com", PasswordHash: "h", Role: models.RoleInterviewer}
	for _, u := range []*models.User{cand, rev} {
		if err := users.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
	}
	if err := users.CreateUser(ctx, &models.User{Name: "Dup", Email: "cand@example.com", PasswordHash: "h", Role: models.RoleCandidate}); err != ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken from unique index, got %v", err)
	}

	iv := &models.Interview{
		Title: "Tech", Type: models.InterviewTechnical, Status: models.InterviewScheduled,
		ScheduledAt: time.Now().Add(time.Hour), Duration: 60, CandidateID: cand.ID, InterviewerID: rev.ID,
	}
	if err := interviews.Create(ctx, iv); err != nil {
		t.Fatalf("Create interview: %v", err)
	}
	if err := interviews.SaveTranscript(ctx, iv.ID, models.InterviewScheduled, "Q/A", datatypes.JSON(`{"overallScore":90}`)); err != nil {
		t.Fatalf("SaveTranscript: %v", err)
	}
	if won, err := interviews.AssignRoom(ctx, iv.ID, "room-x"); err != nil || !won {
		t.Fatalf("AssignRoom: %v %v", won, err)
	}

	a := &models.CodingAssessment{Title: "T", Description: "D", Requirements: "R", Status: models.AssessmentPending, CandidateID: cand.ID}
	if err := assessments.Create(ctx, a); err != nil {
		t.Fatalf("Create assessment: %v", err)
	}
	if err := assessments.Submit(ctx, a.ID, "code", datatypes.JSON(`{"overallScore":75}`)); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := assessments.Review(ctx, a.ID, rev.ID, 80, "good", func(*models.CodingAssessment) error { return nil }); err != nil {
		t.Fatalf("Review: %v", err)
	}

	if _, err := reports.Upsert(ctx, &models.FinalReport{CandidateID: cand.ID, Strengths: []string{"a"}, Recommendation: models.RecommendHire}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	again, err := reports.Upsert(ctx, &models.FinalReport{CandidateID: cand.ID, Strengths: []string{"b"}, Recommendation: models.RecommendReject})
	if err != nil || again.Recommendation != models.RecommendReject {
		t.Fatalf("second Upsert: %+v %v", again, err)
	}

	// reviewer delete clears the reviewer but keeps the assessment
	if err := users.DeleteUser(ctx, rev.ID); err != nil {
		t.Fatalf("DeleteUser reviewer: %v", err)
	}
	kept, err := assessments.GetByID(ctx, a.ID)
	if err != nil || kept.ReviewerID != nil {
		t.Fatalf("expected assessment kept with reviewer cleared: %+v %v", kept, err)
	}
	if _, err := interviews.GetByID(ctx, iv.ID); err != ErrInterviewNotFound {
		t.Fatalf("expected interview deleted with its interviewer, got %v", err)
	}

	if err := users.DeleteUser(ctx, cand.ID); err != nil {
		t.Fatalf("DeleteUser candidate: %v", err)
	}
	if _, err := reports.GetByCandidate(ctx, cand.ID); err != ErrReportNotFound {
		t.Fatalf("expected report deleted, got %v", err)
	}
}
