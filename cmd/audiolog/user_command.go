package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/audiologapp/audiolog/internal/auth"
	"github.com/audiologapp/audiolog/internal/errors"
)

func newCreateUserCommand(ctx *commandContext) *cobra.Command {
	var username string
	var email string

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a catalog user",
		Long: "Create a catalog user. The password is read from " +
			"AUDIOLOG_PASSWORD and stored as an argon2id hash.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.Password == "" {
				return errors.Validation("AUDIOLOG_PASSWORD must be set")
			}

			hash, err := auth.HashPassword(cfg.Password)
			if err != nil {
				return err
			}

			s, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if _, err := s.CreateUser(cmd.Context(), username, email, hash); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %s\n", username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username for the new user")
	cmd.Flags().StringVar(&email, "email", "", "Email address for the new user")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")

	return cmd
}
