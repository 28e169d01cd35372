package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/darshan4295/interview-app/internal/access"
	"github.com/darshan4295/interview-app/internal/auth"
	"github.com/darshan4295/interview-app/internal/models"
	"github.com/darshan4295/interview-app/internal/repositories"
)

const recentUsersLimit = 10

// UserService covers registration, sessions, profiles and user administration.
type UserService struct {
	users       UserStore
	interviews  InterviewStore
	assessments AssessmentStore
	tokens      *auth.Tokens
	logger      *zap.Logger
}

func NewUserService(users UserStore, interviews InterviewStore, assessments AssessmentStore, tokens *auth.Tokens, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{users: users, interviews: interviews, assessments: assessments, tokens: tokens, logger: logger}
}

// Register creates a CANDIDATE or INTERVIEWER account.
func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	return s.create(ctx, req.Name, req.Email, req.Password, req.Role)
}

func (s *UserService) create(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, models.DuplicateError("Email is already registered")
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, storeError(err, "")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, models.InternalError(err)
	}
	user := &models.User{Name: name, Email: email, PasswordHash: hash, Role: role}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, storeError(err, "")
	}
	s.logger.Info("user created", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// Login checks credentials and issues a session token.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	invalid := models.AuthenticationError("Invalid email or password")
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, invalid
	}
	if err != nil {
		return nil, storeError(err, "")
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, invalid
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, models.InternalError(err)
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}

// Authenticate verifies a session token and reloads its user.
// The stored role wins over whatever role the token was issued with.
func (s *UserService) Authenticate(ctx context.Context, token string) (*access.Principal, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, models.AuthenticationError("")
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, models.AuthenticationError("")
	}
	if err != nil {
		return nil, storeError(err, "")
	}
	return access.PrincipalOf(user), nil
}

func (s *UserService) Me(ctx context.Context, p *access.Principal) (*models.User, error) {
	if p == nil {
		return nil, models.AuthenticationError("")
	}
	user, err := s.users.GetUserByID(ctx, p.ID)
	if err != nil {
		return nil, storeError(err, "")
	}
	return user, nil
}

// UpdateProfile changes the caller's own name or password. Role changes are rejected by validation.
func (s *UserService) UpdateProfile(ctx context.Context, p *access.Principal, req *models.UpdateProfileRequest) (*models.User, error) {
	if p == nil {
		return nil, models.AuthenticationError("")
	}
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, models.InternalError(err)
		}
		updates["password_hash"] = hash
	}
	user, err := s.users.UpdateUser(ctx, p.ID, updates)
	if err != nil {
		return nil, storeError(err, "")
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, p *access.Principal, filter models.UserFilter) ([]models.User, error) {
	if err := access.CanAccess(p, access.Collection(access.KindUser), access.ActionList); err != nil {
		return nil, err
	}
	users, err := s.users.ListUsers(ctx, filter)
	if err != nil {
		return nil, storeError(err, "")
	}
	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, p *access.Principal, id string) (*models.User, error) {
	if err := access.CanAccess(p, access.UserResource(id), access.ActionView); err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "")
	}
	return user, nil
}

// CreateUser is the administrative create; any role is allowed.
func (s *UserService) CreateUser(ctx context.Context, p *access.Principal, req *models.CreateUserRequest) (*models.User, error) {
	if err := access.CanAccess(p, access.Collection(access.KindUser), access.ActionCreate); err != nil {
		return nil, err
	}
	return s.create(ctx, req.Name, req.Email, req.Password, req.Role)
}

// CreateAdmin bootstraps an administrator outside of any request.
func (s *UserService) CreateAdmin(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	req.Role = models.RoleAdmin
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.create(ctx, req.Name, req.Email, req.Password, req.Role)
}

func (s *UserService) UpdateUser(ctx context.Context, p *access.Principal, id string, req *models.UpdateUserRequest) (*models.User, error) {
	if err := access.CanAccess(p, access.UserResource(id), access.ActionUpdate); err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	user, err := s.users.UpdateUser(ctx, id, updates)
	if err != nil {
		return nil, storeError(err, "")
	}
	s.logger.Info("user updated", zap.String("user_id", id), zap.String("actor", p.ID))
	return user, nil
}

// DeleteUser removes a user and cascades to their records.
func (s *UserService) DeleteUser(ctx context.Context, p *access.Principal, id string) error {
	if err := access.CanAccess(p, access.UserResource(id), access.ActionDelete); err != nil {
		return err
	}
	if id == p.ID {
		return models.ValidationError("Cannot delete your own account", models.FieldError("id", "must not be the current user"))
	}
	if err := s.users.DeleteUser(ctx, id); err != nil {
		return storeError(err, "")
	}
	s.logger.Info("user deleted", zap.String("user_id", id), zap.String("actor", p.ID))
	return nil
}

func (s *UserService) CountUsers(ctx context.Context, p *access.Principal) (models.RoleCounts, error) {
	if err := access.CanAccess(p, access.Collection(access.KindUser), access.ActionStats); err != nil {
		return models.RoleCounts{}, err
	}
	counts, err := s.users.CountByRole(ctx)
	if err != nil {
		return models.RoleCounts{}, storeError(err, "")
	}
	return counts, nil
}

func (s *UserService) RecentUsers(ctx context.Context, p *access.Principal) ([]models.User, error) {
	if err := access.CanAccess(p, access.Collection(access.KindUser), access.ActionStats); err != nil {
		return nil, err
	}
	users, err := s.users.ListUsers(ctx, models.UserFilter{Limit: recentUsersLimit})
	if err != nil {
		return nil, storeError(err, "")
	}
	return users, nil
}

// Activity counts open and finished work. Pending assessments include submitted ones awaiting review.
func (s *UserService) Activity(ctx context.Context, p *access.Principal) (*models.ActivityCounts, error) {
	if err := access.CanAccess(p, access.Collection(access.KindUser), access.ActionStats); err != nil {
		return nil, err
	}
	var (
		counts models.ActivityCounts
		err    error
	)
	if counts.PendingInterviews, err = s.interviews.CountByStatus(ctx, models.InterviewScheduled); err != nil {
		return nil, storeError(err, "")
	}
	if counts.CompletedInterviews, err = s.interviews.CountByStatus(ctx, models.InterviewCompleted); err != nil {
		return nil, storeError(err, "")
	}
	if counts.PendingAssessments, err = s.assessments.CountByStatus(ctx, models.AssessmentPending, models.AssessmentSubmitted); err != nil {
		return nil, storeError(err, "")
	}
	if counts.CompletedAssessments, err = s.assessments.CountByStatus(ctx, models.AssessmentReviewed); err != nil {
		return nil, storeError(err, "")
	}
	return &counts, nil
}
