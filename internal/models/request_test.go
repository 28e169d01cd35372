package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestRegisterRequestValidate(t *testing.T) {
	req := &RegisterRequest{Name: "  Ada ", Email: " ADA@Example.com", Password: "secret1"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "Ada", req.Name)
	assert.Equal(t, "ada@example.com", req.Email)
	assert.Equal(t, RoleCandidate, req.Role)

	bad := &RegisterRequest{Name: "A", Email: "not-an-email", Password: "123", Role: RoleAdmin}
	err := bad.Validate()
	require.Error(t, err)
	appErr := AsAppError(err)
	assert.Equal(t, 400, appErr.StatusCode())
	assert.ElementsMatch(t, []string{"name", "email", "password", "role"}, appErr.Fields())
}

func TestCreateInterviewRequestValidate(t *testing.T) {
	at := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	valid := func() *CreateInterviewRequest {
		return &CreateInterviewRequest{
			Title: "Round 1", Type: InterviewTechnical, CandidateID: "c", InterviewerID: "i",
			ScheduledAt: at.Format(time.RFC3339), Duration: intPtr(45),
		}
	}

	req := valid()
	require.NoError(t, req.Validate())
	assert.True(t, req.ScheduledTime().Equal(at))

	tests := []struct {
		name    string
		mutate  func(r *CreateInterviewRequest)
		message string
	}{
		{"too short", func(r *CreateInterviewRequest) { r.Duration = intPtr(10) }, "Duration must be between 15 and 120 minutes"},
		{"too long", func(r *CreateInterviewRequest) { r.Duration = intPtr(121) }, "Duration must be between 15 and 120 minutes"},
		{"bad type", func(r *CreateInterviewRequest) { r.Type = "HR" }, "Invalid interview type"},
		{"bad time", func(r *CreateInterviewRequest) { r.ScheduledAt = "tomorrow" }, "must be an RFC 3339 timestamp"},
		{"missing fields", func(r *CreateInterviewRequest) { r.Title = ""; r.CandidateID = "" }, "Missing required fields"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			tt.mutate(r)
			err := r.Validate()
			require.Error(t, err)
			assert.Equal(t, tt.message, AsAppError(err).Message)
		})
	}

	for _, minutes := range []int{MinInterviewDuration, MaxInterviewDuration} {
		r := valid()
		r.Duration = intPtr(minutes)
		assert.NoError(t, r.Validate())
	}
}

func TestUpdateProfileRequestRejectsRole(t *testing.T) {
	role := "ADMIN"
	err := (&UpdateProfileRequest{Role: &role}).Validate()
	require.Error(t, err)
	assert.Equal(t, "Role cannot be changed", AsAppError(err).Message)

	assert.Error(t, (&UpdateProfileRequest{}).Validate())
}

func TestReviewAssessmentRequestValidate(t *testing.T) {
	assert.NoError(t, (&ReviewAssessmentRequest{Score: intPtr(0), Feedback: "ok"}).Validate())
	assert.NoError(t, (&ReviewAssessmentRequest{Score: intPtr(100), Feedback: "ok"}).Validate())

	err := (&ReviewAssessmentRequest{Score: intPtr(101), Feedback: "ok"}).Validate()
	assert.Equal(t, "Score must be between 0 and 100", AsAppError(err).Message)

	err = (&ReviewAssessmentRequest{Feedback: "  "}).Validate()
	assert.Equal(t, "Score and feedback are required", AsAppError(err).Message)
	assert.ElementsMatch(t, []string{"score", "feedback"}, AsAppError(err).Fields())
}

func TestReportInputsMissing(t *testing.T) {
	in := ReportInputs{TechnicalInterview: []byte(`{"overallScore":1}`), CodingAssessment: []byte("null")}
	assert.Equal(t, []string{"codingAssessment", "managerialInterview"}, in.Missing())
}

func TestAppErrorStatusCodes(t *testing.T) {
	assert.Equal(t, 400, ConflictError("x").StatusCode())
	assert.Equal(t, "state_conflict", ConflictError("x").Response().Code)
	assert.Equal(t, 409, DuplicateError("x").StatusCode())
	assert.Equal(t, 500, UpstreamError("x", nil).StatusCode())
	assert.Equal(t, 403, ForbiddenError("").StatusCode())
	assert.Equal(t, 401, AuthenticationError("").StatusCode())
	assert.Equal(t, 500, AsAppError(assert.AnError).StatusCode())
}
