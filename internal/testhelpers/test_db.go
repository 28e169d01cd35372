package testhelpers

import (
	"fmt"
	"testing"
	"time"

	"github.com/darshan4295/interview-app/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	openSQLite = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{
			TranslateError: true,
			Logger:         logger.Default.LogMode(logger.Silent),
		})
	}
	migrateSchema = func(db *gorm.DB) error { return db.AutoMigrate(models.All()...) }
)

// SetupTestDB creates an isolated in-memory SQLite database for tests.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := openSQLite(dsn)
	if err != nil {
		panic(fmt.Sprintf("failed to open test database: %v", err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		panic(fmt.Sprintf("failed to get test database handle: %v", err))
	}
	// one connection keeps the shared in-memory database alive and serializes writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := migrateSchema(db); err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}
	return db
}

// SeedUser inserts a user with the given role and returns it.
func SeedUser(t *testing.T, db *gorm.DB, name string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		PasswordHash: "hash",
		Role:         role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

// SeedInterview inserts a SCHEDULED interview one day out.
func SeedInterview(t *testing.T, db *gorm.DB, candidateID, interviewerID string, kind models.InterviewType) *models.Interview {
	t.Helper()
	interview := &models.Interview{
		Title:         "Interview",
		Type:          kind,
		Status:        models.InterviewScheduled,
		ScheduledAt:   time.Now().Add(24 * time.Hour).UTC(),
		Duration:      60,
		CandidateID:   candidateID,
		InterviewerID: interviewerID,
	}
	if err := db.Omit("Candidate", "Interviewer").Create(interview).Error; err != nil {
		t.Fatalf("failed to seed interview: %v", err)
	}
	return interview
}

// SeedAssessment inserts a PENDING assessment.
func SeedAssessment(t *testing.T, db *gorm.DB, candidateID string) *models.CodingAssessment {
	t.Helper()
	assessment := &models.CodingAssessment{
		Title:        "Two sum",
		Description:  "Find two numbers",
		Requirements: "Return indices",
		Status:       models.AssessmentPending,
		CandidateID:  candidateID,
	}
	if err := db.Omit("Candidate", "Reviewer").Create(assessment).Error; err != nil {
		t.Fatalf("failed to seed assessment: %v", err)
	}
	return assessment
}
