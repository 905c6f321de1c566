package main

import (
	"fmt"
	"time"

	"github.com/anonto42/linkfeed/backend/internal/auth"
	"github.com/anonto42/linkfeed/backend/internal/repositories"
	"github.com/anonto42/linkfeed/backend/pkg/config"
	"github.com/spf13/cobra"
)

var tokenFlags struct {
	userID uint
	ttl    time.Duration
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a bearer token for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Auth.Provider != config.AuthJWT {
			return fmt.Errorf("tokens can only be issued with AUTH_PROVIDER=%s", config.AuthJWT)
		}

		db, closeDB, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB()

		user, err := repositories.NewGormUserRepository(db).FindByID(cmd.Context(), tokenFlags.userID, nil)
		if err != nil {
			return fmt.Errorf("user %d: %w", tokenFlags.userID, err)
		}

		token, err := auth.IssueToken(cfg.Auth.JWTSecret, user.ID, tokenFlags.ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().UintVar(&tokenFlags.userID, "user-id", 0, "id of the user (required)")
	tokenCmd.Flags().DurationVar(&tokenFlags.ttl, "ttl", 72*time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("user-id")
}
