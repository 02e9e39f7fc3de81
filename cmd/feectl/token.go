package main

import (
	"fmt"

	"github.com/erp/feeengine/internal/infrastructure/auth"
	"github.com/erp/feeengine/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Access tokens",
	}
	cmd.AddCommand(tokenIssueCmd())
	return cmd
}

// tokenIssueCmd signs an access token with the configured secret, for local use and smoke tests
func tokenIssueCmd() *cobra.Command {
	var (
		tenant   string
		user     string
		username string
		roles    []string
	)
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Sign an access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.App.Env == "production" {
				return fmt.Errorf("refusing to issue tokens in production")
			}
			tenantID, err := uuid.Parse(tenant)
			if err != nil {
				return fmt.Errorf("--tenant: %w", err)
			}
			userID := uuid.New()
			if user != "" {
				if userID, err = uuid.Parse(user); err != nil {
					return fmt.Errorf("--user: %w", err)
				}
			}

			token, expires, err := auth.NewJWTService(cfg.JWT).GenerateAccessToken(auth.GenerateTokenInput{
				TenantID: tenantID,
				UserID:   userID,
				Username: username,
				Roles:    roles,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expires.UTC().Format("2006-01-02T15:04:05Z"))
			return nil
		},
	}
	cmd.Flags().StringVar(&tenant, "tenant", "", "Tenant id")
	cmd.Flags().StringVar(&user, "user", "", "User id (random when empty)")
	cmd.Flags().StringVar(&username, "username", "operator", "Username claim")
	cmd.Flags().StringSliceVar(&roles, "role", []string{"staff_admin"}, "Role claim (repeatable)")
	_ = cmd.MarkFlagRequired("tenant")
	return cmd
}
