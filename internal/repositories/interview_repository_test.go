package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/darshan4295/interview-app/internal/models"
	"github.com/darshan4295/interview-app/internal/testhelpers"

	"gorm.io/datatypes"
)

func TestInterviewRepository_CreateAndGet(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := &InterviewRepository{DB: db}
	ctx := context.Background()
	cand := testhelpers.SeedUser(t, db, "cand", models.RoleCandidate)
	intv := testhelpers.SeedUser(t, db, "intv", models.RoleInterviewer)

	iv := &models.Interview{
		Title: "System design", Type: models.InterviewTechnical, Status: models.InterviewScheduled,
		ScheduledAt: time.Now().Add(time.Hour), Duration: 45, CandidateID: cand.ID, InterviewerID: intv.ID,
	}
	if err := repo.Create(ctx, iv); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, iv.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Candidate == nil || got.Candidate.ID != cand.ID || got.Interviewer == nil || got.Interviewer.ID != intv.ID {
		t.Fatalf("expected participants to be preloaded: %+v", got)
	}
	if _, err := repo.GetByID(ctx, "missing"); err != ErrInterviewNotFound {
		t.Fatalf("expected ErrInterviewNotFound, got %v", err)
	}
}

func TestInterviewRepository_ListFiltersAndOrder(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := &InterviewRepository{DB: db}
	ctx := context.Background()
	cand := testhelpers.SeedUser(t, db, "cand", models.RoleCandidate)
	other := testhelpers.SeedUser(t, db, "other", models.RoleCandidate)
	intv := testhelpers.SeedUser(t, db, "intv", models.RoleInterviewer)

	late := testhelpers.SeedInterview(t, db, cand.ID, intv.ID, models.InterviewTechnical)
	early := testhelpers.SeedInterview(t, db, cand.ID, intv.ID, models.InterviewManagerial)
	db.Model(early).Update("scheduled_at", time.Now().Add(time.Hour))
	testhelpers.SeedInterview(t, db, other.ID, intv.ID, models.InterviewTechnical)

	mine, err := repo.List(ctx, models.InterviewFilter{CandidateID: cand.ID})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(mine) != 2 || mine[0].ID != early.ID || mine[1].ID != late.ID {
		t.Fatalf("expected candidate interviews ordered by schedule, got %+v", mine)
	}

	technical, _ := repo.List(ctx, models.InterviewFilter{InterviewerID: intv.ID, Type: models.InterviewTechnical})
	if len(technical) != 2 {
		t.Fatalf("expected 2 technical interviews, got %d", len(technical))
	}

	cancelled, _ := repo.List(ctx, models.InterviewFilter{Status: models.InterviewCancelled})
	if len(cancelled) != 0 {
		t.Fatalf("expected no cancelled interviews, got %d", len(cancelled))
	}
}

func TestInterviewRepository_ConditionalUpdates(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := &InterviewRepository{DB: db}
	ctx := context.Background()
	cand := testhelpers.SeedUser(t, db, "cand", models.RoleCandidate)
	intv := testhelpers.SeedUser(t, db, "intv", models.RoleInterviewer)
	iv := testhelpers.SeedInterview(t, db, cand.ID, intv.ID, models.InterviewTechnical)

	if err := repo.SaveFeedback(ctx, iv.ID, "great"); err != ErrStaleState {
		t.Fatalf("feedback before completion should be stale, got %v", err)
	}
	if err := repo.UpdateStatus(ctx, iv.ID, models.InterviewScheduled, models.InterviewCompleted); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if err := repo.UpdateStatus(ctx, iv.ID, models.InterviewScheduled, models.InterviewCancelled); err != ErrStaleState {
		t.Fatalf("expected ErrStaleState for outdated from-state, got %v", err)
	}
	if err := repo.SaveFeedback(ctx, iv.ID, "great"); err != nil {
		t.Fatalf("SaveFeedback: %v", err)
	}

	analysis := datatypes.JSON(`{"overallScore":80}`)
	if err := repo.SaveTranscript(ctx, iv.ID, models.InterviewCompleted, "Q: hi", analysis); err != nil {
		t.Fatalf("SaveTranscript: %v", err)
	}
	got, _ := repo.GetByID(ctx, iv.ID)
	if got.Transcript == nil || *got.Transcript != "Q: hi" || len(got.AIAnalysis) == 0 {
		t.Fatalf("expected transcript and analysis stored together: %+v", got)
	}
	if got.Feedback == nil || *got.Feedback != "great" {
		t.Fatalf("expected feedback stored")
	}

	latest, err := repo.LatestAnalysis(ctx, cand.ID, models.InterviewTechnical)
	if err != nil || len(latest) == 0 {
		t.Fatalf("expected latest technical analysis, got %s (%v)", latest, err)
	}
	none, err := repo.LatestAnalysis(ctx, cand.ID, models.InterviewManagerial)
	if err != nil || none != nil {
		t.Fatalf("expected no managerial analysis, got %s (%v)", none, err)
	}

	completed, _ := repo.CountByStatus(ctx, models.InterviewCompleted)
	if completed != 1 {
		t.Fatalf("expected 1 completed interview, got %d", completed)
	}
}

func TestInterviewRepository_AssignRoomOnce(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := &InterviewRepository{DB: db}
	ctx := context.Background()
	cand := testhelpers.SeedUser(t, db, "cand", models.RoleCandidate)
	intv := testhelpers.SeedUser(t, db, "intv", models.RoleInterviewer)
	iv := testhelpers.SeedInterview(t, db, cand.ID, intv.ID, models.InterviewTechnical)

	won, err := repo.AssignRoom(ctx, iv.ID, "room-1")
	if err != nil || !won {
		t.Fatalf("first assignment should win: %v %v", won, err)
	}
	won, err = repo.AssignRoom(ctx, iv.ID, "room-2")
	if err != nil || won {
		t.Fatalf("second assignment must lose: %v %v", won, err)
	}
	got, _ := repo.GetByID(ctx, iv.ID)
	if got.RoomID == nil || *got.RoomID != "room-1" {
		t.Fatalf("room must stay room-1, got %v", got.RoomID)
	}
}

func TestInterviewRepository_Reschedule(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := &InterviewRepository{DB: db}
	ctx := context.Background()
	cand := testhelpers.SeedUser(t, db, "cand", models.RoleCandidate)
	intv := testhelpers.SeedUser(t, db, "intv", models.RoleInterviewer)
	iv := testhelpers.SeedInterview(t, db, cand.ID, intv.ID, models.InterviewTechnical)

	if err := repo.Reschedule(ctx, iv.ID, map[string]any{"duration": 90}); err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	_ = repo.UpdateStatus(ctx, iv.ID, models.InterviewScheduled, models.InterviewCancelled)
	if err := repo.Reschedule(ctx, iv.ID, map[string]any{"duration": 30}); err != ErrStaleState {
		t.Fatalf("expected ErrStaleState for cancelled interview, got %v", err)
	}
	got, _ := repo.GetByID(ctx, iv.ID)
	if got.Duration != 90 {
		t.Fatalf("expected duration 90, got %d", got.Duration)
	}
}
