package lifecycle

import (
	"testing"

	"github.com/darshan4295/interview-app/internal/models"
)

func TestInterviewTransitions(t *testing.T) {
	statuses := []models.InterviewStatus{models.InterviewScheduled, models.InterviewCompleted, models.InterviewCancelled}
	legal := map[[2]models.InterviewStatus]bool{
		{models.InterviewScheduled, models.InterviewCompleted}: true,
		{models.InterviewScheduled, models.InterviewCancelled}: true,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			want := legal[[2]models.InterviewStatus{from, to}]
			if got := Interviews.Allows(from, to); got != want {
				t.Errorf("Allows(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}

	if Interviews.IsTerminal(models.InterviewScheduled) {
		t.Errorf("SCHEDULED must not be terminal")
	}
	if !Interviews.IsTerminal(models.InterviewCompleted) || !Interviews.IsTerminal(models.InterviewCancelled) {
		t.Errorf("COMPLETED and CANCELLED must be terminal")
	}
}

func TestAssessmentTransitions(t *testing.T) {
	cases := []struct {
		from, to models.AssessmentStatus
		want     bool
	}{
		{models.AssessmentPending, models.AssessmentSubmitted, true},
		{models.AssessmentSubmitted, models.AssessmentReviewed, true},
		{models.AssessmentReviewed, models.AssessmentReviewed, true},
		{models.AssessmentPending, models.AssessmentReviewed, false},
		{models.AssessmentSubmitted, models.AssessmentPending, false},
		{models.AssessmentReviewed, models.AssessmentSubmitted, false},
		{models.AssessmentReviewed, models.AssessmentPending, false},
		{models.AssessmentSubmitted, models.AssessmentSubmitted, false},
	}
	for _, tc := range cases {
		if got := Assessments.Allows(tc.from, tc.to); got != tc.want {
			t.Errorf("Allows(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
	if !Assessments.IsTerminal(models.AssessmentReviewed) {
		t.Errorf("REVIEWED must be terminal")
	}
}

func TestCheckReturnsConflict(t *testing.T) {
	err := Interviews.Check(models.InterviewCompleted, models.InterviewCancelled, "Cannot cancel an interview that is not scheduled")
	if !models.IsKind(err, models.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := Interviews.Check(models.InterviewScheduled, models.InterviewCancelled, "unused"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAssignment(t *testing.T) {
	if Unassigned().IsAssigned() {
		t.Fatal("Unassigned reports assigned")
	}
	if AssignmentOf(nil).IsAssigned() {
		t.Fatal("nil column should be unassigned")
	}
	empty := ""
	if AssignmentOf(&empty).IsAssigned() {
		t.Fatal("empty column should be unassigned")
	}

	a := AssignedTo("rev-1")
	if !a.Is("rev-1") || a.Is("rev-2") {
		t.Fatalf("unexpected Is results for %+v", a)
	}
	if col := a.Column(); col == nil || *col != "rev-1" {
		t.Fatalf("unexpected column %v", col)
	}
	if Unassigned().Column() != nil {
		t.Fatal("unassigned column should be nil")
	}
}

func TestClaimable(t *testing.T) {
	if !Claimable(models.AssessmentSubmitted, Unassigned()) {
		t.Error("submitted and unassigned should be claimable")
	}
	if Claimable(models.AssessmentPending, Unassigned()) {
		t.Error("pending should not be claimable")
	}
	if Claimable(models.AssessmentSubmitted, AssignedTo("rev")) {
		t.Error("assigned should not be claimable")
	}
}

func TestCheckReview(t *testing.T) {
	cases := []struct {
		name     string
		status   models.AssessmentStatus
		current  Assignment
		reviewer string
		override bool
		wantErr  string
	}{
		{"pending rejected", models.AssessmentPending, Unassigned(), "a", false, "Assessment has not been submitted yet"},
		{"first review", models.AssessmentSubmitted, Unassigned(), "a", false, ""},
		{"same reviewer again", models.AssessmentReviewed, AssignedTo("a"), "a", false, ""},
		{"different reviewer", models.AssessmentReviewed, AssignedTo("a"), "b", false, "Assessment has already been reviewed by another interviewer"},
		{"admin override", models.AssessmentReviewed, AssignedTo("a"), "admin", true, ""},
		{"reviewed without reviewer", models.AssessmentReviewed, Unassigned(), "b", false, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckReview(tc.status, tc.current, tc.reviewer, tc.override)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			appErr := models.AsAppError(err)
			if appErr.Kind != models.KindConflict || appErr.Message != tc.wantErr {
				t.Fatalf("expected conflict %q, got %v", tc.wantErr, err)
			}
		})
	}
}
