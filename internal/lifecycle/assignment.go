package lifecycle

import "github.com/darshan4295/interview-app/internal/models"

// Assignment is either Unassigned or AssignedTo(reviewerID).
// The persisted form is the nullable reviewer_id column.
type Assignment struct {
	reviewerID string
}

func Unassigned() Assignment { return Assignment{} }

func AssignedTo(reviewerID string) Assignment { return Assignment{reviewerID: reviewerID} }

// AssignmentOf lifts the nullable column into an Assignment.
func AssignmentOf(reviewerID *string) Assignment {
	if reviewerID == nil || *reviewerID == "" {
		return Unassigned()
	}
	return AssignedTo(*reviewerID)
}

func (a Assignment) IsAssigned() bool { return a.reviewerID != "" }

func (a Assignment) ReviewerID() (string, bool) { return a.reviewerID, a.reviewerID != "" }

// Is reports whether the assessment is assigned to reviewerID.
func (a Assignment) Is(reviewerID string) bool {
	return a.reviewerID != "" && a.reviewerID == reviewerID
}

// Column returns the value to persist.
func (a Assignment) Column() *string {
	if a.reviewerID == "" {
		return nil
	}
	id := a.reviewerID
	return &id
}

// Claimable reports whether any interviewer may pick the assessment up.
func Claimable(status models.AssessmentStatus, a Assignment) bool {
	return status == models.AssessmentSubmitted && !a.IsAssigned()
}

// CheckReview applies the review rule against the state just read from the store.
// override is true for administrators, who may replace another reviewer's review.
func CheckReview(status models.AssessmentStatus, current Assignment, reviewerID string, override bool) error {
	if status == models.AssessmentPending {
		return models.ConflictError("Assessment has not been submitted yet")
	}
	if status == models.AssessmentReviewed && current.IsAssigned() && !current.Is(reviewerID) && !override {
		return models.ConflictError("Assessment has already been reviewed by another interviewer")
	}
	return Assessments.Check(status, models.AssessmentReviewed, "Assessment cannot be reviewed in its current state")
}
