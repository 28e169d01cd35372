package models

import (
	"net/mail"
	"strings"
	"time"
)

const (
	MinNameLength     = 2
	MinPasswordLength = 6
)

// fieldErrors collects validation failures so one response can name every bad field.
type fieldErrors []ValidationErrorDetail

func (f *fieldErrors) add(field, reason string) {
	*f = append(*f, FieldError(field, reason))
}

func (f fieldErrors) err(message string) error {
	if len(f) == 0 {
		return nil
	}
	return ValidationError(message, f...)
}

// NormalizeEmail trims and lower-cases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func checkName(errs *fieldErrors, name string) {
	if len(strings.TrimSpace(name)) < MinNameLength {
		errs.add("name", "must be at least 2 characters")
	}
}

func checkEmail(errs *fieldErrors, email string) {
	if email == "" {
		errs.add("email", "is required")
	} else if !validEmail(email) {
		errs.add("email", "must be a valid email address")
	}
}

func checkPassword(errs *fieldErrors, password string) {
	if len(password) < MinPasswordLength {
		errs.add("password", "must be at least 6 characters")
	}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// Validate normalizes the request. Self-registration is limited to candidates and interviewers.
func (r *RegisterRequest) Validate() error {
	var errs fieldErrors
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
	if r.Role == "" {
		r.Role = RoleCandidate
	}

	checkName(&errs, r.Name)
	checkEmail(&errs, r.Email)
	checkPassword(&errs, r.Password)
	if r.Role != RoleCandidate && r.Role != RoleInterviewer {
		errs.add("role", "must be CANDIDATE or INTERVIEWER")
	}
	return errs.err("Invalid registration data")
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs fieldErrors
	r.Email = NormalizeEmail(r.Email)
	if r.Email == "" {
		errs.add("email", "is required")
	}
	if r.Password == "" {
		errs.add("password", "is required")
	}
	return errs.err("Email and password are required")
}

// UpdateProfileRequest is a self-service profile change. Role is decoded only to reject it.
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs fieldErrors
	if r.Role != nil {
		return ValidationError("Role cannot be changed", FieldError("role", "is managed by administrators"))
	}
	if r.Name == nil && r.Password == nil {
		return ValidationError("Nothing to update", FieldError("name", "or password is required"))
	}
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		r.Name = &trimmed
		checkName(&errs, trimmed)
	}
	if r.Password != nil {
		checkPassword(&errs, *r.Password)
	}
	return errs.err("Invalid profile data")
}

// CreateUserRequest is the admin variant of registration; every role is allowed.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

func (r *CreateUserRequest) Validate() error {
	var errs fieldErrors
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)

	checkName(&errs, r.Name)
	checkEmail(&errs, r.Email)
	checkPassword(&errs, r.Password)
	if !r.Role.IsValid() {
		errs.add("role", "Invalid role")
	}
	return errs.err("Invalid user data")
}

type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *Role   `json:"role"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs fieldErrors
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		r.Name = &trimmed
		checkName(&errs, trimmed)
	}
	if r.Email != nil {
		normalized := NormalizeEmail(*r.Email)
		r.Email = &normalized
		checkEmail(&errs, normalized)
	}
	if r.Role != nil && !r.Role.IsValid() {
		errs.add("role", "Invalid role")
	}
	return errs.err("Invalid user data")
}

type CreateInterviewRequest struct {
	Title         string        `json:"title"`
	Type          InterviewType `json:"type"`
	CandidateID   string        `json:"candidateId"`
	InterviewerID string        `json:"interviewerId"`
	ScheduledAt   string        `json:"scheduledAt"`
	Duration      *int          `json:"duration"`

	scheduledAt time.Time
}

func (r *CreateInterviewRequest) Validate() error {
	var errs fieldErrors
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		errs.add("title", "is required")
	}
	if r.Type == "" {
		errs.add("type", "is required")
	} else if !r.Type.IsValid() {
		errs.add("type", "Invalid interview type")
	}
	if r.CandidateID == "" {
		errs.add("candidateId", "is required")
	}
	if r.InterviewerID == "" {
		errs.add("interviewerId", "is required")
	}
	if at, ok := parseSchedule(&errs, r.ScheduledAt, true); ok {
		r.scheduledAt = at
	}
	if r.Duration == nil {
		errs.add("duration", "is required")
	} else {
		checkDuration(&errs, *r.Duration)
	}
	return errs.err(interviewMessage(errs))
}

// ScheduledTime is the parsed scheduledAt, valid after Validate succeeds.
func (r *CreateInterviewRequest) ScheduledTime() time.Time { return r.scheduledAt }

type UpdateInterviewRequest struct {
	Title       *string `json:"title"`
	ScheduledAt *string `json:"scheduledAt"`
	Duration    *int    `json:"duration"`

	scheduledAt *time.Time
}

func (r *UpdateInterviewRequest) Validate() error {
	var errs fieldErrors
	if r.Title == nil && r.ScheduledAt == nil && r.Duration == nil {
		return ValidationError("Nothing to update", FieldError("title", "or scheduledAt or duration is required"))
	}
	if r.Title != nil {
		trimmed := strings.TrimSpace(*r.Title)
		r.Title = &trimmed
		if trimmed == "" {
			errs.add("title", "must not be empty")
		}
	}
	if r.ScheduledAt != nil {
		if at, ok := parseSchedule(&errs, *r.ScheduledAt, true); ok {
			r.scheduledAt = &at
		}
	}
	if r.Duration != nil {
		checkDuration(&errs, *r.Duration)
	}
	return errs.err(interviewMessage(errs))
}

func (r *UpdateInterviewRequest) ScheduledTime() *time.Time { return r.scheduledAt }

func parseSchedule(errs *fieldErrors, value string, required bool) (time.Time, bool) {
	if value == "" {
		if required {
			errs.add("scheduledAt", "is required")
		}
		return time.Time{}, false
	}
	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		errs.add("scheduledAt", "must be an RFC 3339 timestamp")
		return time.Time{}, false
	}
	return at, true
}

func checkDuration(errs *fieldErrors, minutes int) {
	if minutes < MinInterviewDuration || minutes > MaxInterviewDuration {
		errs.add("duration", "Duration must be between 15 and 120 minutes")
	}
}

// interviewMessage keeps the single-field duration message readable on its own.
func interviewMessage(errs fieldErrors) string {
	if len(errs) == 1 {
		return errs[0].Reason
	}
	for _, e := range errs {
		if e.Reason == "is required" {
			return "Missing required fields"
		}
	}
	return "Invalid interview data"
}

type TranscriptRequest struct {
	Transcript string `json:"transcript"`
}

func (r *TranscriptRequest) Validate() error {
	if strings.TrimSpace(r.Transcript) == "" {
		return ValidationError("Transcript is required", FieldError("transcript", "is required"))
	}
	return nil
}

type FeedbackRequest struct {
	Feedback string `json:"feedback"`
}

func (r *FeedbackRequest) Validate() error {
	r.Feedback = strings.TrimSpace(r.Feedback)
	if r.Feedback == "" {
		return ValidationError("Feedback is required", FieldError("feedback", "is required"))
	}
	return nil
}

type CreateAssessmentRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	CandidateID  string `json:"candidateId"`
}

func (r *CreateAssessmentRequest) Validate() error {
	var errs fieldErrors
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		errs.add("title", "is required")
	}
	if strings.TrimSpace(r.Description) == "" {
		errs.add("description", "is required")
	}
	if strings.TrimSpace(r.Requirements) == "" {
		errs.add("requirements", "is required")
	}
	if r.CandidateID == "" {
		errs.add("candidateId", "is required")
	}
	return errs.err("Missing required fields")
}

type SubmitAssessmentRequest struct {
	Code string `json:"code"`
}

func (r *SubmitAssessmentRequest) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return ValidationError("Code submission is required", FieldError("code", "is required"))
	}
	return nil
}

type ReviewAssessmentRequest struct {
	Score    *int   `json:"score"`
	Feedback string `json:"feedback"`
}

func (r *ReviewAssessmentRequest) Validate() error {
	var errs fieldErrors
	r.Feedback = strings.TrimSpace(r.Feedback)
	if r.Score == nil {
		errs.add("score", "is required")
	}
	if r.Feedback == "" {
		errs.add("feedback", "is required")
	}
	if len(errs) > 0 {
		return errs.err("Score and feedback are required")
	}
	if *r.Score < MinScore || *r.Score > MaxScore {
		return ValidationError("Score must be between 0 and 100", FieldError("score", "must be between 0 and 100"))
	}
	return nil
}
