package commands

import (
	"fmt"

	"github.com/darshan4295/interview-app/internal/auth"
	"github.com/darshan4295/interview-app/internal/models"
	"github.com/darshan4295/interview-app/internal/repositories"
	"github.com/darshan4295/interview-app/internal/services"
	"github.com/darshan4295/interview-app/internal/utils"

	"github.com/spf13/cobra"
)

var (
	adminName     string
	adminEmail    string
	adminPassword string
)

// createAdminCmd bootstraps the first administrator, since self-registration
// cannot grant the ADMIN role.
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account",
	Long: `Create an administrator account.

Examples:
  intervuectl create-admin --name "Ada" --email ada@example.com --password s3cret!`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		if err := repositories.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}

		users := services.NewUserService(
			&repositories.UserRepository{DB: db},
			&repositories.InterviewRepository{DB: db},
			&repositories.AssessmentRepository{DB: db},
			auth.NewTokens("unused", 0),
			utils.NewLogger(verbose),
		)
		req := &models.CreateUserRequest{Name: adminName, Email: adminEmail, Password: adminPassword, Role: models.RoleAdmin}
		user, err := users.CreateAdmin(cmd.Context(), req)
		if err != nil {
			return describe(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created admin %s (%s)\n", user.Email, user.ID)
		return nil
	},
}

// describe flattens an application error with its field details for the terminal.
func describe(err error) error {
	appErr := models.AsAppError(err)
	msg := appErr.Message
	for _, d := range appErr.Details {
		msg += fmt.Sprintf("\n  %s: %s", d.Field, d.Reason)
	}
	return fmt.Errorf("%s", msg)
}

func init() {
	createAdminCmd.Flags().StringVar(&adminName, "name", "", "Display name")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Login email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Initial password")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(createAdminCmd)
}
