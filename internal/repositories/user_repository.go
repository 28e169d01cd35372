package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/darshan4295/interview-app/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	err := r.DB.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	return err
}

func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).First(&user, "email = ?", models.NormalizeEmail(email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns users newest first. Search matches name or email case-insensitively.
func (r *UserRepository) ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	q := r.DB.WithContext(ctx).Model(&models.User{})
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	users := []models.User{}
	if err := q.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser applies column updates and returns the fresh row.
func (r *UserRepository) UpdateUser(ctx context.Context, userID string, updates map[string]any) (*models.User, error) {
	var user models.User
	db := r.DB.WithContext(ctx)
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if len(updates) == 0 {
		return &user, nil
	}

	if err := db.Model(&user).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return r.GetUserByID(ctx, userID)
}

func (r *UserRepository) CountByRole(ctx context.Context) (models.RoleCounts, error) {
	var rows []struct {
		Role  models.Role
		Count int64
	}
	var counts models.RoleCounts
	err := r.DB.WithContext(ctx).Model(&models.User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return counts, err
	}
	for _, row := range rows {
		switch row.Role {
		case models.RoleCandidate:
			counts.Candidates = row.Count
		case models.RoleInterviewer:
			counts.Interviewers = row.Count
		case models.RoleAdmin:
			counts.Admins = row.Count
		}
	}
	return counts, nil
}

// DeleteUser removes a user and everything that depends on them in one transaction:
// their report and assessments as candidate, their interviews on either side,
// and their reviewer assignment on assessments they reviewed, which is cleared.
func (r *UserRepository) DeleteUser(ctx context.Context, userID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if err := tx.Where("candidate_id = ?", userID).Delete(&models.FinalReport{}).Error; err != nil {
			return err
		}
		if err := tx.Where("candidate_id = ?", userID).Delete(&models.CodingAssessment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.CodingAssessment{}).
			Where("reviewer_id = ?", userID).
			Update("reviewer_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("candidate_id = ? OR interviewer_id = ?", userID, userID).Delete(&models.Interview{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}
