package main

import (
	"fmt"

	"github.com/anonto42/linkfeed/backend/internal/models"
	"github.com/anonto42/linkfeed/backend/internal/repositories"
	"github.com/anonto42/linkfeed/backend/validators"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userCreateFlags struct {
	models.CreateUserRequest
	firebaseUID string
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	Example: `  linkctl user create --name alice --email alice@example.com --password hunter2hunter2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := userCreateFlags.CreateUserRequest
		if err := validators.NewValidator().Validate(req); err != nil {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user := &models.User{Name: req.Name, Email: req.Email, Password: string(hashed)}
		if uid := userCreateFlags.firebaseUID; uid != "" {
			user.FirebaseUID = &uid
		}

		db, closeDB, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB()

		if err := repositories.NewGormUserRepository(db).Create(cmd.Context(), user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created user %d (%s)\n", user.ID, user.Email)
		return nil
	},
}

func init() {
	f := userCreateCmd.Flags()
	f.StringVar(&userCreateFlags.Name, "name", "", "display name (required)")
	f.StringVar(&userCreateFlags.Email, "email", "", "email address (required)")
	f.StringVar(&userCreateFlags.Password, "password", "", "password, at least 8 characters (required)")
	f.StringVar(&userCreateFlags.firebaseUID, "firebase-uid", "", "Firebase UID to link the account to")
	for _, name := range []string{"name", "email", "password"} {
		_ = userCreateCmd.MarkFlagRequired(name)
	}
	userCmd.AddCommand(userCreateCmd)
}
