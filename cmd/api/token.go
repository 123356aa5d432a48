package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	httpmiddleware "cmms/internal/adapter/http/middleware"
)

func tokenCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API bearer token for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			user, err := a.users.GetUserByEmail(cmd.Context(), email)
			if err != nil {
				return fmt.Errorf("look up %s: %w", email, err)
			}

			token, err := httpmiddleware.IssueToken(a.cfg.JwtSecret, user, a.cfg.JwtTTL, time.Now())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "user email")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
