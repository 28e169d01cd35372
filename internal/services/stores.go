// Package services holds the interview and assessment lifecycles, report
// composition and account management. Every operation authorizes through
// access.CanAccess against the state it has just read from the store.
package services

import (
	"context"
	"errors"

	"gorm.io/datatypes"

	"github.com/darshan4295/interview-app/internal/models"
	"github.com/darshan4295/interview-app/internal/repositories"
)

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	UpdateUser(ctx context.Context, userID string, updates map[string]any) (*models.User, error)
	CountByRole(ctx context.Context) (models.RoleCounts, error)
	DeleteUser(ctx context.Context, userID string) error
}

type InterviewStore interface {
	Create(ctx context.Context, interview *models.Interview) error
	GetByID(ctx context.Context, id string) (*models.Interview, error)
	List(ctx context.Context, filter models.InterviewFilter) ([]models.Interview, error)
	UpdateStatus(ctx context.Context, id string, from, to models.InterviewStatus) error
	SaveTranscript(ctx context.Context, id string, from models.InterviewStatus, transcript string, analysis datatypes.JSON) error
	SaveFeedback(ctx context.Context, id string, feedback string) error
	Reschedule(ctx context.Context, id string, updates map[string]any) error
	AssignRoom(ctx context.Context, id, roomID string) (bool, error)
	LatestAnalysis(ctx context.Context, candidateID string, kind models.InterviewType) (datatypes.JSON, error)
	CountByStatus(ctx context.Context, status models.InterviewStatus) (int64, error)
}

type AssessmentStore interface {
	Create(ctx context.Context, assessment *models.CodingAssessment) error
	GetByID(ctx context.Context, id string) (*models.CodingAssessment, error)
	List(ctx context.Context, filter models.AssessmentFilter) ([]models.CodingAssessment, error)
	Submit(ctx context.Context, id, code string, analysis datatypes.JSON) error
	Review(ctx context.Context, id, reviewerID string, score int, feedback string, decide repositories.ReviewDecision) error
	LatestAnalysis(ctx context.Context, candidateID string) (datatypes.JSON, error)
	CountByStatus(ctx context.Context, statuses ...models.AssessmentStatus) (int64, error)
}

type ReportStore interface {
	GetByCandidate(ctx context.Context, candidateID string) (*models.FinalReport, error)
	Upsert(ctx context.Context, report *models.FinalReport) (*models.FinalReport, error)
}

// storeError maps repository sentinels onto the error taxonomy.
// stale is the conflict message used when a conditional write lost a race.
func storeError(err error, stale string) error {
	var appErr *models.AppError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, repositories.ErrUserNotFound):
		return models.NotFoundError("User not found")
	case errors.Is(err, repositories.ErrInterviewNotFound):
		return models.NotFoundError("Interview not found")
	case errors.Is(err, repositories.ErrAssessmentNotFound):
		return models.NotFoundError("Assessment not found")
	case errors.Is(err, repositories.ErrReportNotFound):
		return models.NotFoundError("Report not found")
	case errors.Is(err, repositories.ErrEmailTaken):
		return models.DuplicateError("Email is already registered")
	case errors.Is(err, repositories.ErrStaleState):
		if stale == "" {
			stale = "The record was changed by another request"
		}
		return models.ConflictError(stale)
	default:
		return models.InternalError(err)
	}
}

// userWithRole loads a referenced user and checks its role.
// field names the request field that referenced it.
func userWithRole(ctx context.Context, users UserStore, id string, role models.Role, field, label string) (*models.User, error) {
	user, err := users.GetUserByID(ctx, id)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, models.NotFoundError(label + " not found")
	}
	if err != nil {
		return nil, storeError(err, "")
	}
	if user.Role != role {
		return nil, models.ValidationError(label+" must have role "+string(role),
			models.FieldError(field, "must reference a user with role "+string(role)))
	}
	return user, nil
}
