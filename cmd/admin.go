package cmd

import (
	"errors"
	"fmt"

	"breeder-site-backend/internal/repository"
	"breeder-site-backend/internal/services"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	adminEmail    string
	adminName     string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an operator account",
	Long: `Create an account with the admin role. Admins manage puppies, reviews
and settings and can read inquiries.

Examples:
  breeder-site create-admin --email owner@example.com --name Owner --password s3cret!`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(adminPassword) < 6 {
			return errors.New("password must contain at least 6 characters")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openDatabase(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		auth := services.NewAuthService(repository.NewUserRepository(db.X), cfg.JWT.Secret, cfg.JWT.TTL)
		user, err := auth.CreateAdmin(cmd.Context(), adminName, adminEmail, adminPassword)
		if err != nil {
			if errors.Is(err, services.ErrConflict) {
				return fmt.Errorf("an account for %s already exists", adminEmail)
			}
			return err
		}

		log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("Admin created")
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Admin email address")
	createAdminCmd.Flags().StringVar(&adminName, "name", "Admin", "Display name")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Password (at least 6 characters)")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}
